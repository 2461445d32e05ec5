package event

import (
	"time"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

var (
	_ ports.Renderer     = (*Adapter)(nil)
	_ ports.StatsSink    = (*Adapter)(nil)
	_ ports.ProgressSink = (*Adapter)(nil)
	_ ports.ResultSink   = (*Adapter)(nil)
)

// Adapter turns every renderer and sink call into a domain.Event.
// The node value doubles as the handle, since a BST holds each value once.
type Adapter struct {
	publish func(domain.Event)
	now     func() time.Time
}

// Option configures the Adapter.
type Option func(*Adapter)

// WithNow overrides the timestamp source.
func WithNow(now func() time.Time) Option {
	return func(a *Adapter) {
		a.now = now
	}
}

// New creates an adapter that hands events to publish, on the caller's goroutine.
func New(publish func(domain.Event), opts ...Option) *Adapter {
	a := &Adapter{publish: publish, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Adapter) emit(e domain.Event) {
	e.Timestamp = a.now()
	a.publish(e)
}

func (a *Adapter) BeginRedraw(canvas domain.Canvas) {
	a.emit(domain.Event{Type: domain.EventBeginRedraw, Canvas: &canvas})
}

func (a *Adapter) DrawEdge(from, to domain.Point) {
	a.emit(domain.Event{Type: domain.EventEdge, From: &from, To: &to})
}

func (a *Adapter) DrawNode(at domain.Point, value int) domain.Handle {
	a.emit(domain.Event{Type: domain.EventNode, At: &at, Value: &value})
	return value
}

func (a *Adapter) EndRedraw() {
	a.emit(domain.Event{Type: domain.EventEndRedraw})
}

func (a *Adapter) SetHighlight(h domain.Handle, on bool) {
	a.emit(domain.Event{Type: domain.EventHighlight, Value: valueOf(h), On: &on})
}

func (a *Adapter) SetVisited(h domain.Handle) {
	a.emit(domain.Event{Type: domain.EventVisited, Value: valueOf(h)})
}

func (a *Adapter) ResetAllStyles() {
	a.emit(domain.Event{Type: domain.EventResetStyles})
}

func (a *Adapter) Clear() {
	a.emit(domain.Event{Type: domain.EventClear})
}

func (a *Adapter) PublishStats(stats domain.Stats) {
	a.emit(domain.Event{Type: domain.EventStats, Stats: &stats})
}

func (a *Adapter) PublishProgress(current, total int) {
	a.emit(domain.Event{Type: domain.EventProgress, Progress: &domain.Progress{Current: current, Total: total}})
}

func (a *Adapter) PublishResult(kind domain.TraversalKind, values []int) {
	a.emit(domain.Event{Type: domain.EventResult, Kind: kind, Values: append([]int(nil), values...)})
}

func valueOf(h domain.Handle) *int {
	if v, ok := h.(int); ok {
		return &v
	}
	return nil
}
