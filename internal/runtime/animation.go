package runtime

import (
	"context"
	"fmt"
	"slices"

	"github.com/aretw0/arbor/pkg/bst"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/layout"
)

// Build admits an incremental build of values into a fresh tree.
// Values are inserted in the given order; duplicates are ignored by the tree.
func (s *Scheduler) Build(ctx context.Context, values []int) (*Run, error) {
	if len(values) == 0 {
		return nil, s.reject(ctx, "build", domain.ErrEmptyInput)
	}
	if err := s.session.Admit(domain.StateBuilding, nil); err != nil {
		return nil, s.reject(ctx, "build", err)
	}

	run := newRun("build")
	run.setResult(values)
	if err := s.submit(run.kind, s.buildSteps(slices.Clone(values)), run); err != nil {
		return nil, s.reject(ctx, "build", err)
	}
	return run, nil
}

// Traverse admits an animated traversal of the current tree.
func (s *Scheduler) Traverse(ctx context.Context, kind domain.TraversalKind) (*Run, error) {
	if !slices.Contains(domain.TraversalKinds(), kind) {
		return nil, s.reject(ctx, "traverse", fmt.Errorf("%w: %q", domain.ErrUnknownTraversal, kind))
	}
	err := s.session.Admit(domain.StateTraversing, func(root *domain.Node) error {
		if root == nil {
			return domain.ErrEmptyTree
		}
		return nil
	})
	if err != nil {
		return nil, s.reject(ctx, "traverse", err)
	}

	run := newRun("traverse")
	if err := s.submit(run.kind, s.traversalSteps(kind, run), run); err != nil {
		return nil, s.reject(ctx, "traverse", err)
	}
	return run, nil
}

// Clear admits removal of the tree, the drawing and the published statistics.
func (s *Scheduler) Clear(ctx context.Context) (*Run, error) {
	if err := s.session.Admit(domain.StateBuilding, nil); err != nil {
		return nil, s.reject(ctx, "clear", err)
	}

	run := newRun("clear")
	steps := []Step{{Name: "clear", Do: func(context.Context) []Step {
		s.wipe()
		s.logger.Info("Tree cleared")
		return nil
	}}}
	if err := s.submit(run.kind, steps, run); err != nil {
		return nil, s.reject(ctx, "clear", err)
	}
	return run, nil
}

func (s *Scheduler) wipe() {
	s.cancelHighlights()
	s.session.Reset()
	s.renderer.Clear()
	s.stats.PublishStats(domain.Stats{})
}

func (s *Scheduler) buildSteps(values []int) []Step {
	total := len(values)
	steps := make([]Step, 0, total+2)

	steps = append(steps, Step{Name: "build:start", Do: func(ctx context.Context) []Step {
		s.wipe()
		if s.hooks.OnBuildStart != nil {
			s.hooks.OnBuildStart(ctx, total)
		}
		return nil
	}})

	for i, value := range values {
		current := i + 1
		steps = append(steps, Step{Name: fmt.Sprintf("build:insert %d", value), Do: func(ctx context.Context) []Step {
			root, canvas := s.session.Insert(value)
			return append(s.redrawSteps(root, canvas), Step{
				Name: "build:progress",
				Do: func(ctx context.Context) []Step {
					s.session.SetProgress(current, total)
					s.progress.PublishProgress(current, total)
					if s.hooks.OnInsert != nil {
						s.hooks.OnInsert(ctx, value, domain.Progress{Current: current, Total: total})
					}
					return nil
				},
				Delay: s.timings.Build,
			})
		}})
	}

	steps = append(steps, Step{Name: "build:complete", Do: func(ctx context.Context) []Step {
		stats := s.session.RefreshStats()
		s.stats.PublishStats(stats)
		s.logger.Info("Build complete", "inserted", total, "count", stats.Count, "height", stats.Height)
		if s.hooks.OnBuildComplete != nil {
			s.hooks.OnBuildComplete(ctx, stats)
		}
		return nil
	}})

	return steps
}

// redrawSteps repaints the whole tree: edges at once, then nodes one by one in pre-order.
func (s *Scheduler) redrawSteps(root *domain.Node, canvas domain.Canvas) []Step {
	nodes := bst.Collect(root, domain.PreOrder)
	steps := make([]Step, 0, len(nodes)+2)

	steps = append(steps, Step{Name: "redraw:begin", Do: func(context.Context) []Step {
		s.renderer.BeginRedraw(canvas)
		for _, e := range layout.Edges(root) {
			s.renderer.DrawEdge(e.From, e.To)
		}
		return nil
	}})

	for _, n := range nodes {
		steps = append(steps, Step{
			Name: fmt.Sprintf("redraw:node %d", n.Value),
			Do: func(context.Context) []Step {
				n.Handle = s.renderer.DrawNode(n.Point(), n.Value)
				return nil
			},
			Delay: s.timings.Reveal,
		})
	}

	return append(steps, Step{Name: "redraw:end", Do: func(context.Context) []Step {
		s.renderer.EndRedraw()
		return nil
	}})
}

func (s *Scheduler) traversalSteps(kind domain.TraversalKind, run *Run) []Step {
	var visited []int

	start := Step{Name: "traverse:start " + string(kind), Do: func(ctx context.Context) []Step {
		s.cancelHighlights()
		s.renderer.ResetAllStyles()
		if s.hooks.OnTraversalStart != nil {
			s.hooks.OnTraversalStart(ctx, kind)
		}

		nodes := bst.Collect(s.session.Root(), kind)
		steps := make([]Step, 0, len(nodes)+1)
		for _, n := range nodes {
			steps = append(steps, Step{
				Name: fmt.Sprintf("traverse:visit %d", n.Value),
				Do: func(ctx context.Context) []Step {
					visited = append(visited, n.Value)
					s.renderer.SetHighlight(n.Handle, true)
					s.scheduleUnhighlight(n.Handle)
					if s.hooks.OnVisit != nil {
						s.hooks.OnVisit(ctx, kind, n.Value)
					}
					return nil
				},
				Delay: s.timings.Traversal,
			})
		}

		return append(steps, Step{Name: "traverse:complete", Do: func(ctx context.Context) []Step {
			s.session.SetResult(kind, visited)
			s.results.PublishResult(kind, slices.Clone(visited))
			run.setResult(visited)
			s.logger.Info("Traversal complete", "kind", kind, "result", domain.FormatResult(visited))
			if s.hooks.OnTraversalComplete != nil {
				s.hooks.OnTraversalComplete(ctx, kind, slices.Clone(visited))
			}
			return nil
		}})
	}}

	return []Step{start}
}
