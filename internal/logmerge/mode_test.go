// Copyright (C) 2025 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package logmerge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModeForFileCount(t *testing.T) {
	assert.Equal(t, Lexicographic, ModeForFileCount(1, 2000))
	assert.Equal(t, Lexicographic, ModeForFileCount(2000, 2000))
	assert.Equal(t, ParsedEpoch, ModeForFileCount(2001, 2000))

	// Non-positive threshold falls back to the default.
	assert.Equal(t, Lexicographic, ModeForFileCount(DefaultParseThreshold, 0))
	assert.Equal(t, ParsedEpoch, ModeForFileCount(DefaultParseThreshold+1, 0))
}

func TestCompareModeString(t *testing.T) {
	assert.Equal(t, "lexicographic", Lexicographic.String())
	assert.Equal(t, "parsed-epoch", ParsedEpoch.String())
	assert.Equal(t, "unknown", CompareMode(42).String())
}
