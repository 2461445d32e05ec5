package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/config"
	"github.com/aretw0/arbor/pkg/adapters/event"
	"github.com/aretw0/arbor/pkg/adapters/fanout"
	arborhttp "github.com/aretw0/arbor/pkg/adapters/http"
	"github.com/aretw0/arbor/pkg/adapters/mcp"
	"github.com/aretw0/arbor/pkg/adapters/redis"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

// ServeOptions configures the HTTP server.
type ServeOptions struct {
	Addr string
	// Echo mirrors the animation on the terminal.
	Echo io.Writer
}

// Publishers collects the event consumers of a served visualizer.
type Publishers struct {
	Streams *arborhttp.StreamManager
	Redis   *redis.Publisher
}

// Publish hands e to every configured consumer.
func (p *Publishers) Publish(e domain.Event) {
	p.Streams.Publish(e)
	if p.Redis != nil {
		p.Redis.Publish(e)
	}
}

// NewPublishers connects the SSE stream and, when configured, Redis.
func NewPublishers(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Publishers, error) {
	p := &Publishers{Streams: arborhttp.NewStreamManager(0, logger)}
	if cfg.Redis.Addr == "" {
		return p, nil
	}

	pub := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
		redis.WithChannel(cfg.Redis.Channel),
		redis.WithLogger(logger),
	)
	if err := pub.Ping(ctx); err != nil {
		_ = pub.Close()
		return nil, err
	}
	logger.Info("Publishing events to Redis", "address", cfg.Redis.Addr, "channel", pub.Channel())
	p.Redis = pub
	return p, nil
}

// Close releases the Redis client, if any.
func (p *Publishers) Close() error {
	if p.Redis == nil {
		return nil
	}
	return p.Redis.Close()
}

// NewServedVisualizer builds a visualizer whose every call becomes an event.
// With echo set, the animation is also drawn on that terminal.
func NewServedVisualizer(cfg config.Config, logger *slog.Logger, pubs *Publishers, hooks domain.LifecycleHooks, echo io.Writer) *arbor.Visualizer {
	adapter := event.New(pubs.Publish)

	renderer := fanout.Renderer{adapter}
	stats := fanout.Stats{adapter}
	progress := fanout.Progress{adapter}
	results := fanout.Results{adapter}
	if echo != nil {
		d := NewDisplay(echo, cfg, logger)
		renderer = append(renderer, d.Tree)
		stats = append(stats, d.Stats)
		progress = append(progress, d.Progress)
		results = append(results, d.Report)
	}

	opts := VisualizerOptions(cfg, logger, false, 0)
	opts = append(opts,
		arbor.WithRenderer(renderer),
		arbor.WithStatsSink(stats),
		arbor.WithProgressSink(progress),
		arbor.WithResultSink(results),
		arbor.WithLifecycleHooks(hooks),
	)
	return arbor.New(opts...)
}

// RunServe serves the HTTP API, SSE events and metrics until ctx is done.
func RunServe(ctx context.Context, cfg config.Config, logger *slog.Logger, opts ServeOptions) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	pubs, err := NewPublishers(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer pubs.Close()

	v := NewServedVisualizer(cfg, logger, pubs, metrics.Hooks(), opts.Echo)
	handler := arborhttp.NewHandler(v,
		arborhttp.WithLogger(logger),
		arborhttp.WithStreams(pubs.Streams),
		arborhttp.WithMetrics(reg),
	)

	addr := opts.Addr
	if addr == "" {
		addr = cfg.Server.Addr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return v.Run(ctx)
	})
	g.Go(func() error {
		logger.Info("Arbor server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown did not complete: %w", err)
		}
		logger.Info("Arbor server stopped gracefully")
		return nil
	})
	return g.Wait()
}

// MCPOptions configures the MCP server.
type MCPOptions struct {
	Transport string // "stdio" or "sse"
	Addr      string
}

// RunMCP exposes the visualizer as MCP tools until ctx is done or, for
// stdio, until the client closes the stream.
func RunMCP(ctx context.Context, cfg config.Config, logger *slog.Logger, opts MCPOptions) error {
	addr := opts.Addr
	if addr == "" {
		addr = cfg.Server.MCPAddr
	}
	switch opts.Transport {
	case "", "stdio", "sse":
	default:
		return fmt.Errorf("unknown transport %q, supported: stdio, sse", opts.Transport)
	}

	pubs, err := NewPublishers(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer pubs.Close()

	v := NewServedVisualizer(cfg, logger, pubs, domain.LifecycleHooks{}, nil)
	srv := mcp.NewServer(v, logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return v.Run(ctx)
	})
	g.Go(func() error {
		defer cancel()
		if opts.Transport == "sse" {
			return srv.ServeSSE(ctx, addr)
		}
		logger.Info("Starting Arbor MCP Server (Stdio)")
		return srv.ServeStdio()
	})
	return g.Wait()
}
