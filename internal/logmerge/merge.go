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

import "context"

// LineSink receives merged output lines. Enqueue may block; that
// blocking is the merge's only backpressure mechanism.
type LineSink interface {
	Enqueue(line string)
}

// Engine merges the active set of cursors into a LineSink in key order.
// The active set shrinks monotonically as files exhaust or fail; every
// member always holds a current line. The engine runs on a single
// goroutine and the active set needs no locking.
type Engine struct {
	active  []*Cursor
	sink    LineSink
	emitted int64
}

// NewEngine creates an engine over already-primed cursors. Cursors that
// failed to prime must not be passed in.
func NewEngine(cursors []*Cursor, sink LineSink) *Engine {
	active := make([]*Cursor, len(cursors))
	copy(active, cursors)
	return &Engine{active: active, sink: sink}
}

// Run merges until every cursor is exhausted. Rather than re-scanning
// all cursors per line, each full scan tracks the minimum and
// second-minimum cursor, then drains the minimum until its key is no
// longer strictly less than the second-minimum's (a crossover) or the
// file ends. The last surviving cursor is drained with no comparisons
// at all.
func (e *Engine) Run() {
	for len(e.active) > 1 {
		first, second := e.minPair()

		for {
			e.emit(first.Line())

			if !first.Advance() {
				e.remove(first)
				break
			}
			if !first.Less(second) {
				break
			}
		}
	}

	if len(e.active) == 1 {
		last := e.active[0]
		for {
			e.emit(last.Line())
			if !last.Advance() {
				break
			}
		}
		e.active = e.active[:0]
	}
}

// minPair finds the cursors with the smallest and second-smallest keys
// in one linear pass. Only these two candidates are ever needed, so no
// sort or heap is maintained. On equal keys either cursor may win; tie
// order across files is unspecified.
func (e *Engine) minPair() (first, second *Cursor) {
	first, second = e.active[0], e.active[1]
	if second.Less(first) {
		first, second = second, first
	}
	for _, c := range e.active[2:] {
		switch {
		case c.Less(first):
			second = first
			first = c
		case c.Less(second):
			second = c
		}
	}
	return first, second
}

func (e *Engine) emit(line string) {
	e.sink.Enqueue(line)
	e.emitted++
	linesOutCounter.Add(context.Background(), 1)
}

func (e *Engine) remove(target *Cursor) {
	for i, c := range e.active {
		if c == target {
			last := len(e.active) - 1
			e.active[i] = e.active[last]
			e.active[last] = nil
			e.active = e.active[:last]
			return
		}
	}
}

// ActiveCount returns the number of cursors that still have data.
func (e *Engine) ActiveCount() int { return len(e.active) }

// LinesEmitted returns the total number of lines handed to the sink.
func (e *Engine) LinesEmitted() int64 { return e.emitted }
