package observability

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/arbor/pkg/domain"
)

// Metrics holds the Prometheus collectors fed by the scheduler's lifecycle hooks.
type Metrics struct {
	Builds      prometheus.Counter
	Insertions  prometheus.Counter
	Traversals  *prometheus.CounterVec
	Visits      *prometheus.CounterVec
	Rejections  *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
	TreeNodes   prometheus.Gauge
	TreeHeight  prometheus.Gauge
	TreeBalance prometheus.Gauge

	now     func() time.Time
	mu      sync.Mutex
	started map[string]time.Time
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Builds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arbor_builds_total",
			Help: "Total number of completed tree builds",
		}),
		Insertions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arbor_insertions_total",
			Help: "Total number of values inserted by builds",
		}),
		Traversals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arbor_traversals_total",
			Help: "Total number of completed traversals",
		}, []string{"kind"}),
		Visits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arbor_visits_total",
			Help: "Total number of nodes visited by traversals",
		}, []string{"kind"}),
		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arbor_rejections_total",
			Help: "Requests refused by the scheduler",
		}, []string{"request", "reason"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "arbor_animation_duration_seconds",
			Help:    "Wall time of build and traversal animations",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 8),
		}, []string{"animation"}),
		TreeNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "arbor_tree_nodes",
			Help: "Node count of the last built tree",
		}),
		TreeHeight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "arbor_tree_height",
			Help: "Height of the last built tree",
		}),
		TreeBalance: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "arbor_tree_balance_factor",
			Help: "Root balance factor of the last built tree",
		}),
		now:     time.Now,
		started: make(map[string]time.Time),
	}

	for _, c := range []prometheus.Collector{
		m.Builds, m.Insertions, m.Traversals, m.Visits, m.Rejections,
		m.Duration, m.TreeNodes, m.TreeHeight, m.TreeBalance,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnBuildStart: func(context.Context, int) {
			m.start("build")
		},
		OnInsert: func(context.Context, int, domain.Progress) {
			m.Insertions.Inc()
		},
		OnBuildComplete: func(_ context.Context, stats domain.Stats) {
			m.Builds.Inc()
			m.TreeNodes.Set(float64(stats.Count))
			m.TreeHeight.Set(float64(stats.Height))
			m.TreeBalance.Set(float64(stats.BalanceFactor))
			m.observe("build")
		},
		OnTraversalStart: func(context.Context, domain.TraversalKind) {
			m.start("traverse")
		},
		OnVisit: func(_ context.Context, kind domain.TraversalKind, _ int) {
			m.Visits.WithLabelValues(string(kind)).Inc()
		},
		OnTraversalComplete: func(_ context.Context, kind domain.TraversalKind, _ []int) {
			m.Traversals.WithLabelValues(string(kind)).Inc()
			m.observe("traverse")
		},
		OnRejected: func(_ context.Context, request string, err error) {
			m.Rejections.WithLabelValues(request, Reason(err)).Inc()
		},
	}
}

func (m *Metrics) start(animation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started[animation] = m.now()
}

func (m *Metrics) observe(animation string) {
	m.mu.Lock()
	began, ok := m.started[animation]
	delete(m.started, animation)
	m.mu.Unlock()

	if ok {
		m.Duration.WithLabelValues(animation).Observe(m.now().Sub(began).Seconds())
	}
}

// Reason maps a rejection error to a short, bounded label value.
func Reason(err error) string {
	switch {
	case errors.Is(err, domain.ErrBusy):
		return "busy"
	case errors.Is(err, domain.ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, domain.ErrEmptyTree):
		return "empty_tree"
	case errors.Is(err, domain.ErrUnknownTraversal):
		return "unknown_traversal"
	}
	return "other"
}
