package arbor

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/internal/runtime"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/layout"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/session"
	"github.com/aretw0/arbor/pkg/shape"
)

// Run tracks an admitted animation. See runtime.Run.
type Run = runtime.Run

// Timings holds the animation pauses. See runtime.Timings.
type Timings = runtime.Timings

// DefaultTimings returns the stock pacing (500ms build, 800ms visit, 600ms highlight, 100ms reveal).
func DefaultTimings() Timings { return runtime.DefaultTimings() }

// Visualizer is the high-level entry point of Arbor.
// It owns the tree session and the animation scheduler and exposes the user operations.
type Visualizer struct {
	session   *session.Session
	scheduler *runtime.Scheduler

	renderer ports.Renderer
	stats    ports.StatsSink
	progress ports.ProgressSink
	results  ports.ResultSink
	clock    ports.Clock
	timings  Timings
	layout   layout.Config
	hooks    []domain.LifecycleHooks
	logger   *slog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// Option defines a functional option for configuring the Visualizer.
type Option func(*Visualizer)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Visualizer) {
		v.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks. May be given more than once.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(v *Visualizer) {
		v.hooks = append(v.hooks, hooks)
	}
}

// WithRenderer sets the drawing surface.
func WithRenderer(r ports.Renderer) Option {
	return func(v *Visualizer) {
		v.renderer = r
	}
}

// WithStatsSink sets the receiver of tree statistics.
func WithStatsSink(s ports.StatsSink) Option {
	return func(v *Visualizer) {
		v.stats = s
	}
}

// WithProgressSink sets the receiver of build progress.
func WithProgressSink(s ports.ProgressSink) Option {
	return func(v *Visualizer) {
		v.progress = s
	}
}

// WithResultSink sets the receiver of traversal results.
func WithResultSink(s ports.ResultSink) Option {
	return func(v *Visualizer) {
		v.results = s
	}
}

// WithClock replaces the wall clock. See also WithInstant.
func WithClock(c ports.Clock) Option {
	return func(v *Visualizer) {
		v.clock = c
	}
}

// WithInstant plays every animation on a virtual clock, without waiting.
func WithInstant() Option {
	return func(v *Visualizer) {
		v.clock = runtime.NewVirtualClock()
	}
}

// WithTimings overrides the animation pacing.
func WithTimings(t Timings) Option {
	return func(v *Visualizer) {
		v.timings = t
	}
}

// WithLayout overrides the layout geometry.
func WithLayout(cfg layout.Config) Option {
	return func(v *Visualizer) {
		v.layout = cfg
	}
}

// WithSeed makes the binary shape strategy reproducible.
func WithSeed(seed uint64) Option {
	return func(v *Visualizer) {
		v.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// New initializes a Visualizer with an empty tree.
// Nothing is animated until Run is started.
func New(opts ...Option) *Visualizer {
	v := &Visualizer{
		timings: runtime.DefaultTimings(),
		layout:  layout.DefaultConfig(),
		clock:   runtime.RealClock{},
	}
	for _, opt := range opts {
		opt(v)
	}

	if v.logger == nil {
		v.logger = logging.NewNop()
	}
	if v.rng == nil {
		v.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	v.session = session.New(
		session.WithLogger(v.logger.With("component", "session")),
		session.WithLayout(v.layout),
	)

	schedOpts := []runtime.Option{
		runtime.WithLogger(v.logger.With("component", "scheduler")),
		runtime.WithClock(v.clock),
		runtime.WithTimings(v.timings),
		runtime.WithLifecycleHooks(domain.ChainHooks(v.hooks...)),
	}
	if v.renderer != nil {
		schedOpts = append(schedOpts, runtime.WithRenderer(v.renderer))
	}
	if v.stats != nil {
		schedOpts = append(schedOpts, runtime.WithStatsSink(v.stats))
	}
	if v.progress != nil {
		schedOpts = append(schedOpts, runtime.WithProgressSink(v.progress))
	}
	if v.results != nil {
		schedOpts = append(schedOpts, runtime.WithResultSink(v.results))
	}
	v.scheduler = runtime.NewScheduler(v.session, schedOpts...)

	return v
}

// Run drives the animations until ctx is cancelled.
func (v *Visualizer) Run(ctx context.Context) error {
	return v.scheduler.Loop(ctx)
}

// Build animates inserting values, in order, into a fresh tree.
func (v *Visualizer) Build(ctx context.Context, values []int) (*Run, error) {
	return v.scheduler.Build(ctx, values)
}

// BuildFrom reads the values to build from src.
func (v *Visualizer) BuildFrom(ctx context.Context, src ports.InputSource) (*Run, error) {
	values, err := src.ReadIntegers()
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return v.Build(ctx, values)
}

// BuildShaped reorders values with the named strategy before building.
// The insertion order is available from the returned Run.
func (v *Visualizer) BuildShaped(ctx context.Context, kind shape.Kind, values []int) (*Run, error) {
	v.rngMu.Lock()
	order, err := shape.Order(kind, values, v.rng)
	v.rngMu.Unlock()
	if err != nil {
		return nil, err
	}

	v.logger.Debug("Shape applied", "shape", kind, "order", order)
	return v.Build(ctx, order)
}

// Traverse animates a traversal of the current tree.
func (v *Visualizer) Traverse(ctx context.Context, kind domain.TraversalKind) (*Run, error) {
	return v.scheduler.Traverse(ctx, kind)
}

// Clear removes the tree and resets the published statistics.
func (v *Visualizer) Clear(ctx context.Context) (*Run, error) {
	return v.scheduler.Clear(ctx)
}

// Snapshot returns a detached copy of the tree, statistics and results.
func (v *Visualizer) Snapshot() session.Snapshot {
	return v.session.Snapshot()
}

// State reports whether an animation is running.
func (v *Visualizer) State() domain.State {
	return v.session.State()
}

// Timings returns the configured pacing.
func (v *Visualizer) Timings() Timings {
	return v.timings
}
