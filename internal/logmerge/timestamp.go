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
	"fmt"
	"strings"
	"time"
)

// isoLayout is the timestamp body without its UTC suffix. Input uses
// either the "Z" or "+00" suffix form; fractional seconds and nonzero
// offsets are not supported.
const isoLayout = "2006-01-02T15:04:05"

// ParseTimestamp parses an ISO-8601 UTC timestamp into epoch
// milliseconds. It is pure and stateless; there is no shared formatter.
func ParseTimestamp(s string) (int64, error) {
	var body string
	switch {
	case strings.HasSuffix(s, "Z"):
		body = s[:len(s)-1]
	case strings.HasSuffix(s, "+00"):
		body = s[:len(s)-3]
	default:
		return 0, fmt.Errorf("timestamp %q is not UTC (expected Z or +00 suffix)", s)
	}

	t, err := time.ParseInLocation(isoLayout, body, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t.UnixMilli(), nil
}

// FormatTimestamp renders epoch milliseconds as an ISO-8601 UTC
// timestamp with the Z suffix, truncated to whole seconds.
func FormatTimestamp(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(isoLayout) + "Z"
}
