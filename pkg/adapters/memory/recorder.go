package memory

import (
	"slices"
	"sync"

	"github.com/aretw0/arbor/pkg/adapters/event"
	"github.com/aretw0/arbor/pkg/domain"
)

// Recorder keeps every animation event in memory.
// It implements ports.Renderer and the ports sinks. Safe for concurrent use.
type Recorder struct {
	*event.Adapter

	mu     sync.RWMutex
	events []domain.Event
}

// NewRecorder creates an empty recorder.
func NewRecorder(opts ...event.Option) *Recorder {
	r := &Recorder{}
	r.Adapter = event.New(r.record, opts...)
	return r
}

func (r *Recorder) record(e domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []domain.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.events)
}

// Types returns the recorded event types, in order.
func (r *Recorder) Types() []domain.EventType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]domain.EventType, len(r.events))
	for i, e := range r.events {
		types[i] = e.Type
	}
	return types
}

// Of returns the recorded events of type t.
func (r *Recorder) Of(t domain.EventType) []domain.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.events)
}

// Reset drops every recorded event.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
