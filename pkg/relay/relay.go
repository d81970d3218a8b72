// Package relay forwards the renderer's output lines to a user-visible sink.
//
// Lines are delivered verbatim and in emission order. Empty lines are
// dropped. A read error ends the relay like EOF would; it is kept for the
// caller to inspect via [Relay.Err] but never escalated.
package relay

import (
	"bufio"
	"io"
	"sync"

	"github.com/matzehuels/scenelaunch/pkg/errors"
)

// maxLineSize bounds a single renderer line.
const maxLineSize = 1024 * 1024

// Run reads r line by line and forwards every non-empty line to sink. It
// returns when r reaches EOF or fails; a failure is returned as OUTPUT_READ.
// After a failure the rest of r is read and discarded so the writer is never
// blocked on a full pipe. Run returns the number of forwarded lines.
func Run(r io.Reader, sink Sink) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	n := 0
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		sink.Line(line)
		n++
	}
	if err := scanner.Err(); err != nil {
		io.Copy(io.Discard, r)
		return n, errors.Wrap(errors.ErrCodeOutputRead, err, "read renderer output")
	}
	return n, nil
}

// Relay is a Run executing on its own goroutine.
type Relay struct {
	done  chan struct{}
	mu    sync.Mutex
	lines int
	err   error
}

// Start begins relaying r to sink in the background and returns immediately.
func Start(r io.Reader, sink Sink) *Relay {
	rl := &Relay{done: make(chan struct{})}
	go func() {
		defer close(rl.done)
		n, err := Run(r, sink)
		rl.mu.Lock()
		rl.lines, rl.err = n, err
		rl.mu.Unlock()
	}()
	return rl
}

// Done is closed once the output stream has ended.
func (r *Relay) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the output stream has ended.
func (r *Relay) Wait() {
	<-r.done
}

// Lines returns how many lines were forwarded. Only final after Done.
func (r *Relay) Lines() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lines
}

// Err returns the read error that ended the relay, if any.
func (r *Relay) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
