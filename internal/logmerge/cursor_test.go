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
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeLog writes a log file with the given lines and returns its path.
func writeLog(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// stringCursor builds a cursor over in-memory lines.
func stringCursor(t *testing.T, name string, mode CompareMode, lines ...string) *Cursor {
	t.Helper()
	rc := io.NopCloser(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	c, err := NewCursor(name, rc, mode)
	require.NoError(t, err)
	return c
}

// closeRecorder counts Close calls on a wrapped reader.
type closeRecorder struct {
	io.Reader
	closes int
}

func (c *closeRecorder) Close() error {
	c.closes++
	return nil
}

// flakyReader yields one line per Read call, then a permanent read
// error. It simulates a file that dies mid-stream.
type flakyReader struct {
	lines  []string
	next   int
	closed bool
}

func (f *flakyReader) Read(p []byte) (int, error) {
	if f.next >= len(f.lines) {
		return 0, errors.New("simulated read failure")
	}
	s := f.lines[f.next] + "\n"
	f.next++
	return copy(p, s), nil
}

func (f *flakyReader) Close() error {
	f.closed = true
	return nil
}

func TestOpenPrimesFirstLine(t *testing.T) {
	dir := t.TempDir()
	path := writeLog(t, dir, "a.log",
		"2016-12-20T19:00:45Z,Server A started.",
		"2016-12-20T19:02:48Z,Server A terminated.",
	)

	c, err := Open(path, Lexicographic)
	require.NoError(t, err)
	require.Equal(t, "2016-12-20T19:00:45Z,Server A started.", c.Line())
	require.Equal(t, "a.log", c.Name())

	require.True(t, c.Advance())
	require.Equal(t, "2016-12-20T19:02:48Z,Server A terminated.", c.Line())

	require.False(t, c.Advance())
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.log"), Lexicographic)
	require.Error(t, err)
}

func TestOpenNoUsableLines(t *testing.T) {
	dir := t.TempDir()

	empty := writeLog(t, dir, "empty.log")
	_, err := Open(empty, Lexicographic)
	require.ErrorIs(t, err, io.EOF)

	malformed := writeLog(t, dir, "bad.log", "not-a-valid-line", "also no delimiter")
	_, err = Open(malformed, Lexicographic)
	require.ErrorIs(t, err, io.EOF)
}

func TestCursorSkipsMalformedLines(t *testing.T) {
	c := stringCursor(t, "mixed.log", Lexicographic,
		"2016-12-20T19:00:45Z,first",
		"not-a-valid-line",
		"2016-12-20T19:01:00Z,second",
	)

	require.Equal(t, "2016-12-20T19:00:45Z,first", c.Line())
	require.True(t, c.Advance())
	require.Equal(t, "2016-12-20T19:01:00Z,second", c.Line())
	require.False(t, c.Advance())
}

func TestCursorSkipsLeadingMalformedLines(t *testing.T) {
	c := stringCursor(t, "leading.log", Lexicographic,
		"garbage",
		"more garbage",
		"2016-12-20T19:00:45Z,first valid",
	)
	require.Equal(t, "2016-12-20T19:00:45Z,first valid", c.Line())
	require.False(t, c.Advance())
}

func TestCursorClosesOnceAtEOF(t *testing.T) {
	rec := &closeRecorder{Reader: strings.NewReader("2016-12-20T19:00:45Z,only line\n")}
	c, err := NewCursor("rec.log", rec, Lexicographic)
	require.NoError(t, err)

	require.False(t, c.Advance())
	require.Equal(t, 1, rec.closes)

	// Further advances are inert and do not close again.
	require.False(t, c.Advance())
	require.Equal(t, 1, rec.closes)
}

func TestCursorReadErrorClosesAndStops(t *testing.T) {
	fr := &flakyReader{lines: []string{
		"2016-12-20T19:00:45Z,one",
		"2016-12-20T19:00:46Z,two",
	}}
	c, err := NewCursor("flaky.log", fr, Lexicographic)
	require.NoError(t, err)
	require.Equal(t, "2016-12-20T19:00:45Z,one", c.Line())

	require.True(t, c.Advance())
	require.Equal(t, "2016-12-20T19:00:46Z,two", c.Line())

	require.False(t, c.Advance())
	require.True(t, fr.closed)
}

func TestCursorParsedEpochDropsBadTimestamp(t *testing.T) {
	c := stringCursor(t, "parsed.log", ParsedEpoch,
		"2016-12-20T19:00:45Z,good",
		"garbage-timestamp,still has a comma",
		"2016-12-20T19:00:50Z,also good",
	)

	require.Equal(t, "2016-12-20T19:00:45Z,good", c.Line())
	require.True(t, c.Advance())
	require.Equal(t, "2016-12-20T19:00:50Z,also good", c.Line())
	require.False(t, c.Advance())
}

func TestCursorLexKeepsUnparseableKey(t *testing.T) {
	// Lexicographic mode never parses, so a line with any key before the
	// comma is structurally valid.
	c := stringCursor(t, "lex.log", Lexicographic,
		"garbage-timestamp,still has a comma",
	)
	require.Equal(t, "garbage-timestamp,still has a comma", c.Line())
}

func TestCursorLess(t *testing.T) {
	a := stringCursor(t, "a.log", Lexicographic, "2016-12-20T19:00:45Z,a")
	b := stringCursor(t, "b.log", Lexicographic, "2016-12-20T19:01:16Z,b")
	require.True(t, a.Less(b))
	require.False(t, b.Less(a))
	require.False(t, a.Less(a))

	pa := stringCursor(t, "pa.log", ParsedEpoch, "2016-12-20T19:00:45Z,a")
	pb := stringCursor(t, "pb.log", ParsedEpoch, "2016-12-20T19:01:16Z,b")
	require.True(t, pa.Less(pb))
	require.False(t, pb.Less(pa))
	require.False(t, pa.Less(pa))
}
