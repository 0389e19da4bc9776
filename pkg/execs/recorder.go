package execs

import (
	"context"
	"slices"
	"sync"
)

// Recorder is a [Launcher] that records command lines instead of starting
// processes. Err, when set, is returned from every Launch call.
type Recorder struct {
	Err   error
	lines []string
	mu    sync.Mutex
}

func (r *Recorder) Launch(_ context.Context, commandLine string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lines = append(r.lines, commandLine)

	return r.Err
}

// CommandLines returns a copy of the recorded command lines, oldest first.
func (r *Recorder) CommandLines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.lines)
}
