package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/session"
)

var (
	// ErrStopped is returned when a request arrives after the driver loop has exited.
	ErrStopped = errors.New("scheduler stopped")

	// ErrAborted is the Run error of a sequence cut short by driver shutdown.
	ErrAborted = errors.New("animation aborted")
)

// Step is a single action of an animation followed by a pause.
// Do may return follow-up steps; they run before the rest of the sequence.
type Step struct {
	Name  string
	Do    func(ctx context.Context) []Step
	Delay time.Duration
}

type sequence struct {
	steps []Step
	run   *Run
}

// Scheduler serializes every animation step on a single driver goroutine.
// Build, Traverse and Clear are admitted synchronously against the session's
// busy guard; the driver started by Loop executes what was admitted.
type Scheduler struct {
	session  *session.Session
	renderer ports.Renderer
	stats    ports.StatsSink
	progress ports.ProgressSink
	results  ports.ResultSink
	clock    ports.Clock
	timings  Timings
	hooks    domain.LifecycleHooks
	logger   *slog.Logger

	mu      sync.Mutex
	stopped bool
	queue   chan *sequence

	inboxMu sync.Mutex
	inbox   []func()
	notify  chan struct{}

	// Owned by the driver goroutine.
	highlights map[int]func() bool
	nextTimer  int
	generation uint64
}

// Option configures the Scheduler.
type Option func(*Scheduler)

// WithLogger configures a logger for the Scheduler.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithClock replaces the wall clock, typically with a VirtualClock.
func WithClock(c ports.Clock) Option {
	return func(s *Scheduler) {
		s.clock = c
	}
}

// WithTimings overrides the animation pacing.
func WithTimings(t Timings) Option {
	return func(s *Scheduler) {
		s.timings = t
	}
}

// WithRenderer sets the drawing surface.
func WithRenderer(r ports.Renderer) Option {
	return func(s *Scheduler) {
		s.renderer = r
	}
}

// WithStatsSink sets the receiver of tree statistics.
func WithStatsSink(sink ports.StatsSink) Option {
	return func(s *Scheduler) {
		s.stats = sink
	}
}

// WithProgressSink sets the receiver of build progress.
func WithProgressSink(sink ports.ProgressSink) Option {
	return func(s *Scheduler) {
		s.progress = sink
	}
}

// WithResultSink sets the receiver of traversal results.
func WithResultSink(sink ports.ResultSink) Option {
	return func(s *Scheduler) {
		s.results = sink
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Scheduler) {
		s.hooks = hooks
	}
}

// NewScheduler creates a scheduler bound to sess.
func NewScheduler(sess *session.Session, opts ...Option) *Scheduler {
	s := &Scheduler{
		session:    sess,
		renderer:   nopSink{},
		stats:      nopSink{},
		progress:   nopSink{},
		results:    nopSink{},
		clock:      RealClock{},
		timings:    DefaultTimings(),
		logger:     logging.NewNop(),
		queue:      make(chan *sequence, 1),
		notify:     make(chan struct{}, 1),
		highlights: make(map[int]func() bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Timings returns the configured pacing.
func (s *Scheduler) Timings() Timings {
	return s.timings
}

// Loop runs the driver until ctx is done. Cancelling ctx aborts the sequence
// in flight, releases the busy guard and rejects every later request with ErrStopped.
func (s *Scheduler) Loop(ctx context.Context) error {
	s.logger.Debug("Scheduler loop started")
	defer s.shutdown(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case seq := <-s.queue:
			s.execute(ctx, seq)
		case <-s.notify:
			s.drainInbox()
		}
	}
}

func (s *Scheduler) shutdown(ctx context.Context) {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	for {
		select {
		case seq := <-s.queue:
			s.abort(seq, ctx.Err())
		default:
			s.cancelHighlights()
			s.logger.Debug("Scheduler loop stopped")
			return
		}
	}
}

func (s *Scheduler) submit(kind string, steps []Step, run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		s.session.Release()
		return ErrStopped
	}

	select {
	case s.queue <- &sequence{steps: steps, run: run}:
		s.logger.Debug("Animation admitted", "run", kind, "steps", len(steps))
		return nil
	default:
		// Unreachable while the busy guard holds; kept so a misuse never blocks.
		s.session.Release()
		return fmt.Errorf("%w (queue full)", domain.ErrBusy)
	}
}

func (s *Scheduler) execute(ctx context.Context, seq *sequence) {
	queue := slices.Clone(seq.steps)
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			s.abort(seq, err)
			return
		}

		step := queue[0]
		queue = queue[1:]

		s.logger.Debug("Step", "run", seq.run.kind, "step", step.Name)
		if step.Do != nil {
			if next := step.Do(ctx); len(next) > 0 {
				queue = append(slices.Clone(next), queue...)
			}
		}

		if err := s.pause(ctx, step.Delay); err != nil {
			s.abort(seq, err)
			return
		}
	}

	s.session.Release()
	seq.run.finish(nil)
}

func (s *Scheduler) abort(seq *sequence, cause error) {
	s.logger.Warn("Animation aborted", "run", seq.run.kind, "error", cause)
	s.session.Release()
	seq.run.finish(fmt.Errorf("%w: %w", ErrAborted, cause))
}

// pause suspends the driver for d while still running posted tasks.
func (s *Scheduler) pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		s.drainInbox()
		return ctx.Err()
	}

	woke := make(chan error, 1)
	go func() {
		woke <- s.clock.Sleep(ctx, d)
	}()

	for {
		select {
		case err := <-woke:
			s.drainInbox()
			return err
		case <-s.notify:
			s.drainInbox()
		}
	}
}

// post hands f to the driver goroutine. Safe from any goroutine.
func (s *Scheduler) post(f func()) {
	s.inboxMu.Lock()
	s.inbox = append(s.inbox, f)
	s.inboxMu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func (s *Scheduler) drainInbox() {
	for {
		s.inboxMu.Lock()
		tasks := s.inbox
		s.inbox = nil
		s.inboxMu.Unlock()

		if len(tasks) == 0 {
			return
		}
		for _, task := range tasks {
			task()
		}
	}
}

// scheduleUnhighlight turns h from highlighted into visited once the highlight delay has passed.
func (s *Scheduler) scheduleUnhighlight(h domain.Handle) {
	gen := s.generation
	id := s.nextTimer
	s.nextTimer++

	s.highlights[id] = s.clock.AfterFunc(s.timings.Highlight, func() {
		s.post(func() {
			if gen != s.generation {
				return
			}
			delete(s.highlights, id)
			s.renderer.SetHighlight(h, false)
			s.renderer.SetVisited(h)
		})
	})
}

// cancelHighlights drops every pending highlight clear, including those already posted.
func (s *Scheduler) cancelHighlights() {
	for id, stop := range s.highlights {
		stop()
		delete(s.highlights, id)
	}
	s.generation++
}

func (s *Scheduler) reject(ctx context.Context, request string, err error) error {
	s.logger.Warn("Request rejected", "request", request, "error", err)
	if s.hooks.OnRejected != nil {
		s.hooks.OnRejected(ctx, request, err)
	}
	return err
}
