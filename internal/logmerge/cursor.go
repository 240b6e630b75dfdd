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
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

// maxLineSize bounds a single input line. Lines beyond this abort the
// file the same way any other read error does.
const maxLineSize = 1024 * 1024

// Cursor owns one pre-sorted input file and exposes its current
// unconsumed line plus the sort key derived from it. While a line is
// present the key is always derived from that line; a cursor whose file
// is exhausted or failed holds no line and must not be compared.
type Cursor struct {
	name    string
	closer  io.Closer
	scanner *bufio.Scanner
	mode    CompareMode

	line    string
	key     string
	epoch   int64
	lineNum int64 // diagnostics only
	closed  bool
}

// Open opens the file at path for buffered sequential reading and
// primes the cursor with its first well-formed line. A file that yields
// no well-formed line at all is closed and reported as io.EOF.
func Open(path string, mode CompareMode) (*Cursor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return NewCursor(filepath.Base(path), f, mode)
}

// NewCursor creates a cursor over the given io.ReadCloser. The cursor
// takes ownership of the closer and closes it exactly once, on
// end-of-stream or the first read error. The name is used only in
// diagnostics.
func NewCursor(name string, rc io.ReadCloser, mode CompareMode) (*Cursor, error) {
	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	c := &Cursor{
		name:    name,
		closer:  rc,
		scanner: scanner,
		mode:    mode,
	}
	if !c.Advance() {
		return nil, fmt.Errorf("no usable lines in %s: %w", name, io.EOF)
	}
	return c, nil
}

// Line returns the current unconsumed line. Valid only while the last
// Advance (or construction) returned true.
func (c *Cursor) Line() string { return c.line }

// Name returns the cursor's diagnostic identity, normally the file name.
func (c *Cursor) Name() string { return c.name }

// Advance reads until the next well-formed line. Malformed lines are
// dropped with a diagnostic and never surface as data. Returns false
// once the file is exhausted or a read error occurs; either way the
// underlying reader has been closed and the cursor must leave the
// active set.
func (c *Cursor) Advance() bool {
	if c.closed {
		return false
	}

	ctx := context.Background()
	for c.scanner.Scan() {
		line := c.scanner.Text()
		c.lineNum++

		comma := strings.IndexByte(line, ',')
		if comma < 0 {
			slog.Warn("no comma found on line",
				slog.String("file", c.name),
				slog.Int64("line", c.lineNum))
			linesDroppedCounter.Add(ctx, 1, otelmetric.WithAttributes(
				attribute.String("reason", "missing_delimiter"),
			))
			continue
		}

		key := line[:comma]
		if c.mode == ParsedEpoch {
			epoch, err := ParseTimestamp(key)
			if err != nil {
				slog.Warn("unparseable timestamp, dropping line",
					slog.String("file", c.name),
					slog.Int64("line", c.lineNum),
					slog.Any("error", err))
				linesDroppedCounter.Add(ctx, 1, otelmetric.WithAttributes(
					attribute.String("reason", "bad_timestamp"),
				))
				continue
			}
			c.epoch = epoch
		}

		c.line = line
		c.key = key
		linesInCounter.Add(ctx, 1)
		return true
	}

	if err := c.scanner.Err(); err != nil {
		slog.Error("read error, abandoning file",
			slog.String("file", c.name),
			slog.Int64("line", c.lineNum),
			slog.Any("error", err))
		filesFailedCounter.Add(ctx, 1)
	}
	c.close()
	return false
}

// Less reports whether the cursor's current line sorts strictly before
// the other cursor's. Both cursors must hold a line; the engine removes
// exhausted cursors before ever comparing.
func (c *Cursor) Less(other *Cursor) bool {
	if c.mode == ParsedEpoch {
		return c.epoch < other.epoch
	}
	return c.key < other.key
}

func (c *Cursor) close() {
	if c.closed {
		return
	}
	c.closed = true
	c.line = ""
	c.key = ""
	if err := c.closer.Close(); err != nil {
		slog.Error("failed to close file", slog.String("file", c.name), slog.Any("error", err))
	}
}
