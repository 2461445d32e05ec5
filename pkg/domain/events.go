package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventClear       EventType = "clear"
	EventBeginRedraw EventType = "begin_redraw"
	EventEdge        EventType = "edge"
	EventNode        EventType = "node"
	EventEndRedraw   EventType = "end_redraw"
	EventHighlight   EventType = "highlight"
	EventVisited     EventType = "visited"
	EventResetStyles EventType = "reset_styles"
	EventProgress    EventType = "progress"
	EventStats       EventType = "stats"
	EventResult      EventType = "result"
)

// Event is the serializable form of a single collaborator call.
// Adapters that stream or record the animation (SSE, Redis, memory) exchange these.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`

	Canvas   *Canvas       `json:"canvas,omitempty"`
	From     *Point        `json:"from,omitempty"`
	To       *Point        `json:"to,omitempty"`
	At       *Point        `json:"at,omitempty"`
	Value    *int          `json:"value,omitempty"`
	On       *bool         `json:"on,omitempty"`
	Progress *Progress     `json:"progress,omitempty"`
	Stats    *Stats        `json:"stats,omitempty"`
	Kind     TraversalKind `json:"kind,omitempty"`
	Values   []int         `json:"values,omitempty"`
}

// LifecycleHooks defines callbacks for scheduler observability.
// Every field is optional.
type LifecycleHooks struct {
	OnBuildStart        func(ctx context.Context, total int)
	OnInsert            func(ctx context.Context, value int, p Progress)
	OnBuildComplete     func(ctx context.Context, stats Stats)
	OnTraversalStart    func(ctx context.Context, kind TraversalKind)
	OnVisit             func(ctx context.Context, kind TraversalKind, value int)
	OnTraversalComplete func(ctx context.Context, kind TraversalKind, values []int)
	OnRejected          func(ctx context.Context, request string, err error)
}

// ChainHooks combines several hook sets; each callback runs in argument order.
func ChainHooks(sets ...LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnBuildStart: func(ctx context.Context, total int) {
			for _, h := range sets {
				if h.OnBuildStart != nil {
					h.OnBuildStart(ctx, total)
				}
			}
		},
		OnInsert: func(ctx context.Context, value int, p Progress) {
			for _, h := range sets {
				if h.OnInsert != nil {
					h.OnInsert(ctx, value, p)
				}
			}
		},
		OnBuildComplete: func(ctx context.Context, stats Stats) {
			for _, h := range sets {
				if h.OnBuildComplete != nil {
					h.OnBuildComplete(ctx, stats)
				}
			}
		},
		OnTraversalStart: func(ctx context.Context, kind TraversalKind) {
			for _, h := range sets {
				if h.OnTraversalStart != nil {
					h.OnTraversalStart(ctx, kind)
				}
			}
		},
		OnVisit: func(ctx context.Context, kind TraversalKind, value int) {
			for _, h := range sets {
				if h.OnVisit != nil {
					h.OnVisit(ctx, kind, value)
				}
			}
		},
		OnTraversalComplete: func(ctx context.Context, kind TraversalKind, values []int) {
			for _, h := range sets {
				if h.OnTraversalComplete != nil {
					h.OnTraversalComplete(ctx, kind, values)
				}
			}
		},
		OnRejected: func(ctx context.Context, request string, err error) {
			for _, h := range sets {
				if h.OnRejected != nil {
					h.OnRejected(ctx, request, err)
				}
			}
		},
	}
}
