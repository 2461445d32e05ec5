package fanout

import (
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

var (
	_ ports.Renderer     = Renderer(nil)
	_ ports.StatsSink    = Stats(nil)
	_ ports.ProgressSink = Progress(nil)
	_ ports.ResultSink   = Results(nil)
)

// handles carries one handle per fanned-out renderer, by position.
type handles []domain.Handle

// Renderer broadcasts every drawing call to each renderer, in order.
type Renderer []ports.Renderer

func (f Renderer) BeginRedraw(canvas domain.Canvas) {
	for _, r := range f {
		r.BeginRedraw(canvas)
	}
}

func (f Renderer) DrawEdge(from, to domain.Point) {
	for _, r := range f {
		r.DrawEdge(from, to)
	}
}

func (f Renderer) DrawNode(at domain.Point, value int) domain.Handle {
	hs := make(handles, len(f))
	for i, r := range f {
		hs[i] = r.DrawNode(at, value)
	}
	return hs
}

func (f Renderer) EndRedraw() {
	for _, r := range f {
		r.EndRedraw()
	}
}

func (f Renderer) SetHighlight(h domain.Handle, on bool) {
	for i, r := range f {
		r.SetHighlight(f.handle(h, i), on)
	}
}

func (f Renderer) SetVisited(h domain.Handle) {
	for i, r := range f {
		r.SetVisited(f.handle(h, i))
	}
}

func (f Renderer) ResetAllStyles() {
	for _, r := range f {
		r.ResetAllStyles()
	}
}

func (f Renderer) Clear() {
	for _, r := range f {
		r.Clear()
	}
}

func (f Renderer) handle(h domain.Handle, i int) domain.Handle {
	if hs, ok := h.(handles); ok && i < len(hs) {
		return hs[i]
	}
	return nil
}

// Stats broadcasts statistics.
type Stats []ports.StatsSink

func (f Stats) PublishStats(stats domain.Stats) {
	for _, s := range f {
		s.PublishStats(stats)
	}
}

// Progress broadcasts build progress.
type Progress []ports.ProgressSink

func (f Progress) PublishProgress(current, total int) {
	for _, s := range f {
		s.PublishProgress(current, total)
	}
}

// Results broadcasts traversal results.
type Results []ports.ResultSink

func (f Results) PublishResult(kind domain.TraversalKind, values []int) {
	for _, s := range f {
		s.PublishResult(kind, values)
	}
}
