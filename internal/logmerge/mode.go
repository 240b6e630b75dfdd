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

// CompareMode selects how cursor sort keys are compared. The mode is
// chosen once per run and applies to every cursor; mixing modes within
// one merge is not supported.
type CompareMode int

const (
	// Lexicographic compares the raw timestamp substrings. Valid because
	// fixed-width ISO-8601 UTC timestamps sort lexicographically in
	// chronological order.
	Lexicographic CompareMode = iota

	// ParsedEpoch parses each timestamp to epoch milliseconds once per
	// line and compares int64s. Worth the parse cost only when the file
	// count makes per-scan string comparisons expensive.
	ParsedEpoch
)

// DefaultParseThreshold is the file count above which ParsedEpoch is
// selected by ModeForFileCount.
const DefaultParseThreshold = 2000

func (m CompareMode) String() string {
	switch m {
	case Lexicographic:
		return "lexicographic"
	case ParsedEpoch:
		return "parsed-epoch"
	default:
		return "unknown"
	}
}

// ModeForFileCount returns the compare mode for a merge over n input
// files. A non-positive threshold falls back to DefaultParseThreshold.
func ModeForFileCount(n, threshold int) CompareMode {
	if threshold <= 0 {
		threshold = DefaultParseThreshold
	}
	if n > threshold {
		return ParsedEpoch
	}
	return Lexicographic
}
