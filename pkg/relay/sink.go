package relay

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Sink receives renderer output lines. Line is called from the relay
// goroutine, one line at a time, in order.
type Sink interface {
	Line(line string)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(line string)

// Line calls f(line).
func (f SinkFunc) Line(line string) { f(line) }

// WriterSink writes each line to an io.Writer followed by a newline.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink creates a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Line implements Sink.
func (s *WriterSink) Line(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, line)
}

// LoggerSink prints each line through a logger without a level prefix.
type LoggerSink struct {
	Logger *log.Logger
}

// Line implements Sink.
func (s LoggerSink) Line(line string) {
	s.Logger.Print(line)
}

// =============================================================================
// QueueSink
// =============================================================================

// QueueSink decouples the relay from a slow sink. Line never blocks on the
// downstream sink; lines wait in a queue that grows as needed up to
// hardLimit, after which the oldest queued line is dropped.
type QueueSink struct {
	in      chan string
	done    chan struct{}
	mu      sync.Mutex
	dropped int
	once    sync.Once
}

// NewQueueSink starts a queue in front of next.
func NewQueueSink(next Sink, hardLimit int) *QueueSink {
	if hardLimit <= 0 {
		hardLimit = 10000
	}
	q := &QueueSink{
		in:   make(chan string, 16),
		done: make(chan struct{}),
	}
	out := make(chan string)

	go func() {
		defer close(out)
		queue := make([]string, 0, 64)
		for {
			var next string
			var downstream chan string
			if len(queue) > 0 {
				next = queue[0]
				downstream = out
			}

			select {
			case line, ok := <-q.in:
				if !ok {
					for _, l := range queue {
						out <- l
					}
					return
				}
				if len(queue) >= hardLimit {
					queue = queue[1:]
					q.mu.Lock()
					q.dropped++
					q.mu.Unlock()
				}
				queue = append(queue, line)
			case downstream <- next:
				queue = queue[1:]
			}
		}
	}()

	go func() {
		defer close(q.done)
		for line := range out {
			next.Line(line)
		}
	}()

	return q
}

// Line implements Sink.
func (q *QueueSink) Line(line string) {
	q.in <- line
}

// Close flushes queued lines to the downstream sink and waits until they
// have been delivered. Line must not be called after Close.
func (q *QueueSink) Close() {
	q.once.Do(func() { close(q.in) })
	<-q.done
}

// Dropped returns how many lines were discarded because the queue was full.
func (q *QueueSink) Dropped() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}
