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

// Package sink decouples merge production from output consumption.
//
// A Sink is a bounded channel feeding a single writer goroutine that
// flushes lines through a buffered writer. When output (console, disk)
// is slower than the merge, the producer blocks on Enqueue once the
// channel is full; in-flight memory never exceeds the configured
// capacity. Shutdown is signaled by closing the channel, so no reserved
// line value can collide with real data.
package sink

import (
	"bufio"
	"io"
	"sync/atomic"
)

// DefaultCapacity is the queue capacity used when New is given a
// non-positive one.
const DefaultCapacity = 10_000

const writeBufferSize = 8192

// Sink is a single-producer, single-consumer output queue. Enqueue and
// Shutdown must be called from one goroutine; the writer goroutine is
// the only consumer.
type Sink struct {
	lines   chan string
	done    chan struct{}
	w       *bufio.Writer
	err     error // written by the consumer, read after done is closed
	written atomic.Int64
}

// New creates a sink writing to w and starts its writer goroutine.
func New(w io.Writer, capacity int) *Sink {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := &Sink{
		lines: make(chan string, capacity),
		done:  make(chan struct{}),
		w:     bufio.NewWriterSize(w, writeBufferSize),
	}
	go s.run()
	return s
}

// Enqueue queues one output line, blocking while the queue is full.
func (s *Sink) Enqueue(line string) {
	s.lines <- line
}

// Shutdown signals that no more lines will be enqueued, waits for every
// previously enqueued line to be written and flushed, and returns the
// first write or flush error encountered.
func (s *Sink) Shutdown() error {
	close(s.lines)
	<-s.done
	return s.err
}

// LinesWritten returns the number of lines successfully written so far.
func (s *Sink) LinesWritten() int64 {
	return s.written.Load()
}

func (s *Sink) run() {
	defer close(s.done)

	for line := range s.lines {
		if s.err != nil {
			// Keep draining so the producer never blocks on a dead writer.
			continue
		}
		if _, err := s.w.WriteString(line); err != nil {
			s.err = err
			continue
		}
		if err := s.w.WriteByte('\n'); err != nil {
			s.err = err
			continue
		}
		s.written.Add(1)
	}

	if err := s.w.Flush(); err != nil && s.err == nil {
		s.err = err
	}
}
