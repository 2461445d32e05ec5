package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/config"
	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/aretw0/arbor/pkg/domain"
)

// Display groups the terminal presenters of one visualizer.
type Display struct {
	Tree     *tui.Tree
	Progress *tui.Progress
	Stats    *tui.StatsTable
	Report   *tui.Report
}

// NewDisplay creates presenters writing to out. Frames are repainted in
// place only when out is a terminal.
func NewDisplay(out io.Writer, cfg config.Config, logger *slog.Logger) *Display {
	tty := IsTerminal(out)

	style := "notty"
	if tty {
		style = ""
	}
	render, err := tui.NewMarkdownRenderer(style, Columns(out))
	if err != nil {
		logger.Warn("Markdown rendering disabled", "error", err)
	}

	return &Display{
		Tree: tui.NewTree(out,
			tui.WithColumns(Columns(out)),
			tui.WithLayout(cfg.Layout),
			tui.WithRepaint(tty),
		),
		Progress: tui.NewProgress(out, "inserting", logger),
		Stats:    tui.NewStatsTable(out),
		Report:   tui.NewReport(out, render),
	}
}

// Options wires the presenters into a visualizer.
func (d *Display) Options() []arbor.Option {
	return []arbor.Option{
		arbor.WithRenderer(d.Tree),
		arbor.WithProgressSink(d.Progress),
		arbor.WithStatsSink(d.Stats),
		arbor.WithResultSink(d.Report),
	}
}

// VisualizerOptions translates the configuration into visualizer options.
func VisualizerOptions(cfg config.Config, logger *slog.Logger, instant bool, seed uint64) []arbor.Option {
	opts := []arbor.Option{
		arbor.WithLogger(logger),
		arbor.WithLayout(cfg.Layout),
		arbor.WithLifecycleHooks(debugHooks(logger)),
	}
	if instant {
		opts = append(opts, arbor.WithInstant())
	} else {
		opts = append(opts, arbor.WithTimings(cfg.Timings))
	}
	if seed != 0 {
		opts = append(opts, arbor.WithSeed(seed))
	}
	return opts
}

func debugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnBuildStart: func(ctx context.Context, total int) {
			logger.Debug("Build started", "total", total)
		},
		OnInsert: func(ctx context.Context, value int, p domain.Progress) {
			logger.Debug("Inserted", "value", value, "current", p.Current, "total", p.Total)
		},
		OnTraversalStart: func(ctx context.Context, kind domain.TraversalKind) {
			logger.Debug("Traversal started", "kind", kind)
		},
		OnVisit: func(ctx context.Context, kind domain.TraversalKind, value int) {
			logger.Debug("Visit", "kind", kind, "value", value)
		},
		OnRejected: func(ctx context.Context, request string, err error) {
			logger.Debug("Request rejected", "request", request, "error", err)
		},
	}
}
