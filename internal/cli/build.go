package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/config"
	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/shape"
)

// BuildOptions contains everything the build command needs.
type BuildOptions struct {
	Source     ports.InputSource
	Shape      string
	Traversals []string
	Instant    bool
	Seed       uint64
	Mermaid    bool
	// Headless prints the results as text instead of drawing.
	Headless bool
	// Graph prints nothing but the Mermaid diagram.
	Graph bool
}

// RunBuild animates one build followed by the requested traversals.
func RunBuild(ctx context.Context, out io.Writer, cfg config.Config, logger *slog.Logger, opts BuildOptions) error {
	kinds := make([]domain.TraversalKind, 0, len(opts.Traversals))
	for _, name := range opts.Traversals {
		kind, err := domain.ParseTraversal(name)
		if err != nil {
			return err
		}
		kinds = append(kinds, kind)
	}

	shapeName := opts.Shape
	if shapeName == "" {
		shapeName = cfg.Shape
	}
	var strategy shape.Kind
	if shapeName != "" {
		k, err := shape.Parse(shapeName)
		if err != nil {
			return err
		}
		strategy = k
	}

	values, err := opts.Source.ReadIntegers()
	if err != nil {
		return err
	}

	vopts := VisualizerOptions(cfg, logger, opts.Instant, opts.Seed)
	if !opts.Headless && !opts.Graph {
		if IsTerminal(out) {
			tui.PrintBanner(out, arbor.Version)
		}
		vopts = append(vopts, NewDisplay(out, cfg, logger).Options()...)
	}
	v := arbor.New(vopts...)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	loopDone := make(chan error, 1)
	go func() { loopDone <- v.Run(runCtx) }()
	defer func() {
		cancel()
		<-loopDone
	}()

	var run *arbor.Run
	if strategy != "" {
		run, err = v.BuildShaped(ctx, strategy, values)
	} else {
		run, err = v.Build(ctx, values)
	}
	if err != nil {
		return err
	}
	if err := run.Wait(ctx); err != nil {
		return err
	}
	order := run.Result()

	var last []int
	for _, kind := range kinds {
		run, err := v.Traverse(ctx, kind)
		if err != nil {
			return err
		}
		if err := run.Wait(ctx); err != nil {
			return err
		}
		last = run.Result()
	}

	if opts.Headless {
		snap := v.Snapshot()
		fmt.Fprintf(out, "order: %s\n", domain.FormatResult(order))
		for _, kind := range kinds {
			fmt.Fprintf(out, "%s: %s\n", kind, domain.FormatResult(snap.Results[kind]))
		}
	}

	if opts.Mermaid || opts.Graph {
		var overlay *graph.GraphOverlay
		if len(last) > 0 {
			overlay = &graph.GraphOverlay{Visited: last}
		}
		fmt.Fprint(out, graph.GenerateMermaid(v.Snapshot().Tree, overlay))
	}
	return nil
}
