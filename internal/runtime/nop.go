package runtime

import (
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

// nopSink stands in for every collaborator the caller did not provide.
type nopSink struct{}

var (
	_ ports.Renderer     = nopSink{}
	_ ports.StatsSink    = nopSink{}
	_ ports.ProgressSink = nopSink{}
	_ ports.ResultSink   = nopSink{}
)

func (nopSink) BeginRedraw(domain.Canvas)                 {}
func (nopSink) DrawEdge(domain.Point, domain.Point)       {}
func (nopSink) DrawNode(domain.Point, int) domain.Handle  { return nil }
func (nopSink) EndRedraw()                                {}
func (nopSink) SetHighlight(domain.Handle, bool)          {}
func (nopSink) SetVisited(domain.Handle)                  {}
func (nopSink) ResetAllStyles()                           {}
func (nopSink) Clear()                                    {}
func (nopSink) PublishStats(domain.Stats)                 {}
func (nopSink) PublishProgress(int, int)                  {}
func (nopSink) PublishResult(domain.TraversalKind, []int) {}
