package runtime_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/internal/runtime"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/session"
)

// tape records every collaborator call as a short string.
type tape struct {
	mu    sync.Mutex
	calls []string
}

func (t *tape) add(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = append(t.calls, fmt.Sprintf(format, args...))
}

func (t *tape) all() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.calls...)
}

func (t *tape) filter(prefix string) []string {
	var out []string
	for _, c := range t.all() {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			out = append(out, c)
		}
	}
	return out
}

func (t *tape) BeginRedraw(c domain.Canvas) { t.add("begin %vx%v", c.Width, c.Height) }
func (t *tape) DrawEdge(from, to domain.Point) {
	t.add("edge %v,%v->%v,%v", from.X, from.Y, to.X, to.Y)
}
func (t *tape) DrawNode(at domain.Point, v int) domain.Handle {
	t.add("node %d@%v,%v", v, at.X, at.Y)
	return v
}
func (t *tape) EndRedraw() { t.add("end") }
func (t *tape) SetHighlight(h domain.Handle, on bool) {
	if on {
		t.add("highlight %v", h)
		return
	}
	t.add("unhighlight %v", h)
}
func (t *tape) SetVisited(h domain.Handle) { t.add("visited %v", h) }
func (t *tape) ResetAllStyles()            { t.add("reset") }
func (t *tape) Clear()                     { t.add("clear") }
func (t *tape) PublishStats(s domain.Stats) {
	t.add("stats count=%d height=%d leaves=%d balance=%d", s.Count, s.Height, s.LeafCount, s.BalanceFactor)
}
func (t *tape) PublishProgress(current, total int) { t.add("progress %d/%d", current, total) }
func (t *tape) PublishResult(kind domain.TraversalKind, values []int) {
	t.add("result %s %s", kind, domain.FormatResult(values))
}

type fixture struct {
	sess  *session.Session
	sched *runtime.Scheduler
	clock *runtime.VirtualClock
	tape  *tape
}

func newFixture(t *testing.T, opts ...runtime.Option) *fixture {
	t.Helper()

	f := &fixture{
		sess:  session.New(),
		clock: runtime.NewVirtualClock(),
		tape:  &tape{},
	}
	base := []runtime.Option{
		runtime.WithClock(f.clock),
		runtime.WithRenderer(f.tape),
		runtime.WithStatsSink(f.tape),
		runtime.WithProgressSink(f.tape),
		runtime.WithResultSink(f.tape),
	}
	f.sched = runtime.NewScheduler(f.sess, append(base, opts...)...)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = f.sched.Loop(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return f
}

func wait(t *testing.T, run *runtime.Run) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, run.Wait(ctx))
}

func TestScheduler_BuildSequence(t *testing.T) {
	f := newFixture(t)

	run, err := f.sched.Build(context.Background(), []int{50, 30, 70})
	require.NoError(t, err)
	wait(t, run)

	want := []string{
		"clear",
		"stats count=0 height=0 leaves=0 balance=0",
		"begin 800x600",
		"node 50@400,50",
		"end",
		"progress 1/3",
		"begin 800x600",
		"edge 400,50->200,120",
		"node 50@400,50",
		"node 30@200,120",
		"end",
		"progress 2/3",
		"begin 800x600",
		"edge 400,50->200,120",
		"edge 400,50->600,120",
		"node 50@400,50",
		"node 30@200,120",
		"node 70@600,120",
		"end",
		"progress 3/3",
		"stats count=3 height=2 leaves=2 balance=0",
	}
	assert.Equal(t, want, f.tape.all())
	assert.Equal(t, []int{50, 30, 70}, run.Result())
	assert.Equal(t, domain.StateIdle, f.sess.State())

	// 1+2+3 node reveals at 100ms plus three 500ms build pauses.
	assert.Equal(t, 2100*time.Millisecond, f.clock.Now())
}

func TestScheduler_TraversalOrders(t *testing.T) {
	tests := []struct {
		kind domain.TraversalKind
		want []int
	}{
		{domain.InOrder, []int{30, 50, 70}},
		{domain.PreOrder, []int{50, 30, 70}},
		{domain.PostOrder, []int{30, 70, 50}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			f := newFixture(t)
			run, err := f.sched.Build(context.Background(), []int{50, 30, 70})
			require.NoError(t, err)
			wait(t, run)

			run, err = f.sched.Traverse(context.Background(), tt.kind)
			require.NoError(t, err)
			wait(t, run)

			assert.Equal(t, tt.want, run.Result())
			assert.Equal(t, tt.want, f.sess.Snapshot().Results[tt.kind])
			assert.Equal(t, []string{fmt.Sprintf("result %s %s", tt.kind, domain.FormatResult(tt.want))}, f.tape.filter("result"))
		})
	}
}

func TestScheduler_HighlightThenVisited(t *testing.T) {
	f := newFixture(t)
	run, err := f.sched.Build(context.Background(), []int{50, 30, 70})
	require.NoError(t, err)
	wait(t, run)
	built := len(f.tape.all())
	start := f.clock.Now()

	run, err = f.sched.Traverse(context.Background(), domain.InOrder)
	require.NoError(t, err)
	wait(t, run)

	want := []string{
		"reset",
		"highlight 30",
		"unhighlight 30",
		"visited 30",
		"highlight 50",
		"unhighlight 50",
		"visited 50",
		"highlight 70",
		"unhighlight 70",
		"visited 70",
		"result inorder 30 → 50 → 70",
	}
	assert.Equal(t, want, f.tape.all()[built:])
	assert.Equal(t, 3*800*time.Millisecond, f.clock.Now()-start)
	assert.Zero(t, f.clock.Pending())
}

func TestScheduler_NewTraversalCancelsPendingHighlights(t *testing.T) {
	// Highlight outlives the visit pause, so clears are still pending when the traversal ends.
	timings := runtime.Timings{Traversal: 100 * time.Millisecond, Highlight: time.Second}
	f := newFixture(t, runtime.WithTimings(timings))

	run, err := f.sched.Build(context.Background(), []int{2, 1, 3})
	require.NoError(t, err)
	wait(t, run)

	run, err = f.sched.Traverse(context.Background(), domain.PreOrder)
	require.NoError(t, err)
	wait(t, run)
	assert.Equal(t, 3, f.clock.Pending())

	run, err = f.sched.Traverse(context.Background(), domain.PostOrder)
	require.NoError(t, err)
	wait(t, run)

	assert.Equal(t, 3, f.clock.Pending(), "only the latest traversal keeps clears")

	run, err = f.sched.Clear(context.Background())
	require.NoError(t, err)
	wait(t, run)
	f.clock.Advance(5 * time.Second)

	assert.Empty(t, f.tape.filter("visited"), "stale clears must never fire")
	assert.Zero(t, f.clock.Pending())
}

func TestScheduler_Rejections(t *testing.T) {
	var rejected []string
	hooks := domain.LifecycleHooks{
		OnRejected: func(_ context.Context, request string, err error) {
			rejected = append(rejected, request+": "+err.Error())
		},
	}
	f := newFixture(t, runtime.WithLifecycleHooks(hooks))
	ctx := context.Background()

	_, err := f.sched.Build(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrEmptyInput)

	_, err = f.sched.Traverse(ctx, domain.InOrder)
	assert.ErrorIs(t, err, domain.ErrEmptyTree)

	_, err = f.sched.Traverse(ctx, domain.TraversalKind("sideways"))
	assert.ErrorIs(t, err, domain.ErrUnknownTraversal)

	assert.Len(t, rejected, 3)
	assert.Empty(t, f.tape.all(), "rejections must not touch the renderer")
	assert.Equal(t, domain.StateIdle, f.sess.State())
}

// gatedClock blocks every Sleep until the test releases it.
type gatedClock struct {
	*runtime.VirtualClock
	entered chan struct{}
	release chan struct{}
}

func (c *gatedClock) Sleep(ctx context.Context, d time.Duration) error {
	c.entered <- struct{}{}
	select {
	case <-c.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	return c.VirtualClock.Sleep(ctx, d)
}

func TestScheduler_BusyGuard(t *testing.T) {
	clock := &gatedClock{
		VirtualClock: runtime.NewVirtualClock(),
		entered:      make(chan struct{}),
		release:      make(chan struct{}),
	}
	f := newFixture(t, runtime.WithClock(clock), runtime.WithTimings(runtime.Timings{Build: time.Millisecond}))
	ctx := context.Background()

	run, err := f.sched.Build(ctx, []int{5, 3})
	require.NoError(t, err)

	<-clock.entered // first insertion is paused
	assert.Equal(t, domain.StateBuilding, f.sess.State())

	_, err = f.sched.Build(ctx, []int{9})
	assert.ErrorIs(t, err, domain.ErrBusy)
	_, err = f.sched.Traverse(ctx, domain.InOrder)
	assert.ErrorIs(t, err, domain.ErrBusy)
	_, err = f.sched.Clear(ctx)
	assert.ErrorIs(t, err, domain.ErrBusy)

	clock.release <- struct{}{}
	<-clock.entered
	clock.release <- struct{}{}
	wait(t, run)

	snap := f.sess.Snapshot()
	assert.Equal(t, []int{3, 5}, []int{snap.Tree.Left.Value, snap.Tree.Value})
	assert.Equal(t, 2, snap.Stats.Count)
	assert.Equal(t, domain.StateIdle, snap.State)
}

func TestScheduler_BusyGuardDuringTraversal(t *testing.T) {
	clock := &gatedClock{
		VirtualClock: runtime.NewVirtualClock(),
		entered:      make(chan struct{}),
		release:      make(chan struct{}),
	}
	f := newFixture(t, runtime.WithClock(clock), runtime.WithTimings(runtime.Timings{
		Traversal: time.Millisecond,
		Highlight: time.Millisecond,
	}))
	ctx := context.Background()

	run, err := f.sched.Build(ctx, []int{5, 3, 8, 1, 4})
	require.NoError(t, err)
	wait(t, run)

	run, err = f.sched.Traverse(ctx, domain.InOrder)
	require.NoError(t, err)

	<-clock.entered // first visit is paused
	assert.Equal(t, domain.StateTraversing, f.sess.State())

	_, err = f.sched.Traverse(ctx, domain.PreOrder)
	assert.ErrorIs(t, err, domain.ErrBusy)
	_, err = f.sched.Build(ctx, []int{1})
	assert.ErrorIs(t, err, domain.ErrBusy)
	_, err = f.sched.Clear(ctx)
	assert.ErrorIs(t, err, domain.ErrBusy)

	clock.release <- struct{}{}
	for range 4 {
		<-clock.entered
		clock.release <- struct{}{}
	}
	wait(t, run)

	assert.Equal(t, []int{1, 3, 4, 5, 8}, run.Result())
	assert.Len(t, f.tape.filter("visited "), 5)

	snap := f.sess.Snapshot()
	require.NotNil(t, snap.Tree)
	assert.Equal(t, 5, snap.Tree.Value)
	assert.Equal(t, 5, snap.Stats.Count)
	assert.Equal(t, []int{1, 3, 4, 5, 8}, snap.Results[domain.InOrder])
	assert.Equal(t, domain.StateIdle, snap.State)
}

func TestScheduler_EmptyInputKeepsPreviousTree(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	run, err := f.sched.Build(ctx, []int{4, 2, 6})
	require.NoError(t, err)
	wait(t, run)
	before := len(f.tape.all())

	_, err = f.sched.Build(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrEmptyInput)

	assert.Len(t, f.tape.all(), before, "a rejected build must not redraw or publish")
	snap := f.sess.Snapshot()
	require.NotNil(t, snap.Tree)
	assert.Equal(t, 4, snap.Tree.Value)
	assert.Equal(t, 3, snap.Stats.Count)
	assert.Equal(t, 2, snap.Stats.Height)
	assert.Equal(t, 2, snap.Stats.LeafCount)
	require.NotNil(t, snap.Stats.LastValue)
	assert.Equal(t, 6, *snap.Stats.LastValue)
	assert.Equal(t, domain.StateIdle, snap.State)
}

func TestScheduler_ClearPublishesZeroStats(t *testing.T) {
	f := newFixture(t)
	run, err := f.sched.Build(context.Background(), []int{4, 2, 6})
	require.NoError(t, err)
	wait(t, run)
	run, err = f.sched.Traverse(context.Background(), domain.InOrder)
	require.NoError(t, err)
	wait(t, run)

	run, err = f.sched.Clear(context.Background())
	require.NoError(t, err)
	wait(t, run)

	calls := f.tape.all()
	assert.Equal(t, []string{"clear", "stats count=0 height=0 leaves=0 balance=0"}, calls[len(calls)-2:])

	snap := f.sess.Snapshot()
	assert.Nil(t, snap.Tree)
	assert.Empty(t, snap.Results)
	assert.Equal(t, domain.Stats{}, snap.Stats)
}

func TestScheduler_LifecycleHooks(t *testing.T) {
	var events []string
	hooks := domain.LifecycleHooks{
		OnBuildStart: func(_ context.Context, total int) { events = append(events, fmt.Sprintf("build %d", total)) },
		OnInsert: func(_ context.Context, v int, p domain.Progress) {
			events = append(events, fmt.Sprintf("insert %d %d/%d", v, p.Current, p.Total))
		},
		OnBuildComplete:  func(_ context.Context, s domain.Stats) { events = append(events, fmt.Sprintf("built %d", s.Count)) },
		OnTraversalStart: func(_ context.Context, k domain.TraversalKind) { events = append(events, "traverse "+string(k)) },
		OnVisit: func(_ context.Context, _ domain.TraversalKind, v int) {
			events = append(events, fmt.Sprintf("visit %d", v))
		},
		OnTraversalComplete: func(_ context.Context, k domain.TraversalKind, values []int) {
			events = append(events, "done "+domain.FormatResult(values))
		},
	}
	f := newFixture(t, runtime.WithLifecycleHooks(hooks))

	run, err := f.sched.Build(context.Background(), []int{2, 1, 2})
	require.NoError(t, err)
	wait(t, run)
	run, err = f.sched.Traverse(context.Background(), domain.PostOrder)
	require.NoError(t, err)
	wait(t, run)

	want := []string{
		"build 3",
		"insert 2 1/3",
		"insert 1 2/3",
		"insert 2 3/3",
		"built 2",
		"traverse postorder",
		"visit 1",
		"visit 2",
		"done 1 → 2",
	}
	assert.Equal(t, want, events)

	last := f.sess.Snapshot().Stats.LastValue
	require.NotNil(t, last)
	assert.Equal(t, 2, *last)
}

func TestScheduler_ShutdownAbortsAndReleases(t *testing.T) {
	clock := &gatedClock{
		VirtualClock: runtime.NewVirtualClock(),
		entered:      make(chan struct{}),
		release:      make(chan struct{}),
	}
	sess := session.New()
	sched := runtime.NewScheduler(sess, runtime.WithClock(clock))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sched.Loop(ctx) }()

	run, err := sched.Build(context.Background(), []int{1, 2, 3})
	require.NoError(t, err)
	<-clock.entered

	cancel()
	require.NoError(t, <-done)

	<-run.Done()
	assert.True(t, errors.Is(run.Err(), runtime.ErrAborted))
	assert.Equal(t, domain.StateIdle, sess.State())

	_, err = sched.Build(context.Background(), []int{4})
	assert.ErrorIs(t, err, runtime.ErrStopped)
	assert.Equal(t, domain.StateIdle, sess.State())
}
