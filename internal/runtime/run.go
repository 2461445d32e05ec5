package runtime

import (
	"context"
	"slices"
	"sync"
)

// Run tracks one admitted build, traversal or clear.
type Run struct {
	kind string
	done chan struct{}

	mu     sync.Mutex
	err    error
	result []int
}

func newRun(kind string) *Run {
	return &Run{kind: kind, done: make(chan struct{})}
}

// Kind is "build", "traverse" or "clear".
func (r *Run) Kind() string { return r.kind }

// Done is closed once the run has finished or was aborted.
func (r *Run) Done() <-chan struct{} { return r.done }

// Err returns the abort reason, nil while running or after a normal completion.
func (r *Run) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Result returns the insertion order of a build or the visit order of a traversal.
func (r *Run) Result() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.result)
}

// Wait blocks until the run finishes or ctx is done.
func (r *Run) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-r.done:
		return r.Err()
	}
}

func (r *Run) setResult(values []int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result = slices.Clone(values)
}

func (r *Run) finish(err error) {
	r.mu.Lock()
	r.err = err
	r.mu.Unlock()
	close(r.done)
}
