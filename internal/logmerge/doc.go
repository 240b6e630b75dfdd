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

// Package logmerge implements a streaming k-way merge over pre-sorted
// log files.
//
// Each input file is a two-column CSV: an ISO-8601 UTC timestamp,
// a comma, and arbitrary event text. Files are individually sorted by
// timestamp; nothing is assumed about ordering across files. The merge
// holds exactly one line per open file in memory, so total input size
// is bounded only by disk, not RAM.
//
// # Components
//
//   - Cursor: owns one file, exposes the current line and its sort key,
//     advances on demand, and closes itself on end-of-stream or the
//     first read error.
//   - Engine: repeatedly finds the cursor with the globally smallest
//     key and drains it until a crossover, emitting lines to a LineSink.
//   - CompareMode: lexicographic string keys by default, parsed
//     epoch-millisecond keys when the file count is large enough that
//     cheaper comparisons beat the parse cost.
//
// For conforming fixed-width UTC timestamps (no fractional seconds, no
// offsets) lexicographic order equals chronological order, so the two
// modes produce identical output.
//
// Typical usage:
//
//	files, err := logmerge.DiscoverLogFiles(dir, ".log")
//	if err != nil {
//	    return err
//	}
//	mode := logmerge.ModeForFileCount(len(files), logmerge.DefaultParseThreshold)
//
//	var cursors []*logmerge.Cursor
//	for _, path := range files {
//	    cur, err := logmerge.Open(path, mode)
//	    if err != nil {
//	        continue // unreadable or no well-formed lines
//	    }
//	    cursors = append(cursors, cur)
//	}
//
//	engine := logmerge.NewEngine(cursors, sink)
//	engine.Run()
//
// Malformed lines (no comma delimiter) and, in parsed mode, lines whose
// timestamp does not parse are dropped with a diagnostic; they never
// appear in output. Per-file read errors remove only that file from the
// merge. Ties between files are emitted in unspecified order; order is
// stable only within a single file.
package logmerge
