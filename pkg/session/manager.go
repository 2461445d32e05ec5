package session

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/bst"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/layout"
)

// Session owns the tree and the busy guard.
// Only the scheduler mutates it; the mutex lets other goroutines take snapshots.
type Session struct {
	mu sync.Mutex

	root     *domain.Node
	state    domain.State
	canvas   domain.Canvas
	progress domain.Progress
	stats    domain.Stats
	last     *int
	results  map[domain.TraversalKind][]int

	layout layout.Config
	logger *slog.Logger
}

// Option configures the Session.
type Option func(*Session)

// WithLogger configures a logger for the Session.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithLayout overrides the layout geometry.
func WithLayout(cfg layout.Config) Option {
	return func(s *Session) {
		s.layout = cfg
	}
}

// New creates an empty, idle session.
func New(opts ...Option) *Session {
	s := &Session{
		state:   domain.StateIdle,
		results: make(map[domain.TraversalKind][]int),
		layout:  layout.DefaultConfig(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.canvas = s.layout.CanvasFor(0)
	return s
}

// Admit moves an idle session into next. check runs under the lock against the
// current root and may veto the request; a vetoed or busy session is left untouched.
func (s *Session) Admit(next domain.State, check func(root *domain.Node) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Busy() {
		return fmt.Errorf("%w (%s)", domain.ErrBusy, s.state)
	}
	if check != nil {
		if err := check(s.root); err != nil {
			return err
		}
	}

	s.logger.Debug("Session state change", "from", s.state, "to", next)
	s.state = next
	return nil
}

// Release returns the session to idle.
func (s *Session) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Debug("Session state change", "from", s.state, "to", domain.StateIdle)
	s.state = domain.StateIdle
}

// State returns the current admission state.
func (s *Session) State() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Reset drops the tree, progress, stats and results. The state is not touched.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.root = nil
	s.last = nil
	s.progress = domain.Progress{}
	s.stats = domain.Stats{}
	s.canvas = s.layout.CanvasFor(0)
	clear(s.results)
}

// Insert adds value to the tree, recomputes the full layout and returns the
// live root and its canvas. The returned root must only be read by the scheduler.
func (s *Session) Insert(value int) (*domain.Node, domain.Canvas) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.root = bst.Insert(s.root, value)
	v := value
	s.last = &v
	s.canvas = layout.Compute(s.root, s.layout)
	return s.root, s.canvas
}

// Root returns the live root for the scheduler.
func (s *Session) Root() *domain.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root
}

// SetProgress records the build position.
func (s *Session) SetProgress(current, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = domain.Progress{Current: current, Total: total}
}

// RefreshStats recomputes and stores the statistics of the current tree.
func (s *Session) RefreshStats() domain.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = bst.ComputeStats(s.root, s.last)
	return s.stats
}

// SetResult stores the outcome of a traversal.
func (s *Session) SetResult(kind domain.TraversalKind, values []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[kind] = slices.Clone(values)
}

// Snapshot is a detached copy of the session, safe to share across goroutines.
type Snapshot struct {
	State    domain.State                   `json:"state"`
	Tree     *domain.Node                   `json:"tree"`
	Canvas   domain.Canvas                  `json:"canvas"`
	Progress domain.Progress                `json:"progress"`
	Stats    domain.Stats                   `json:"stats"`
	Results  map[domain.TraversalKind][]int `json:"results"`
}

// Snapshot copies the current session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make(map[domain.TraversalKind][]int, len(s.results))
	for k, v := range s.results {
		results[k] = slices.Clone(v)
	}

	return Snapshot{
		State:    s.state,
		Tree:     bst.Clone(s.root),
		Canvas:   s.canvas,
		Progress: s.progress,
		Stats:    s.stats,
		Results:  results,
	}
}
