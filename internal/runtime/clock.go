package runtime

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/arbor/pkg/ports"
)

var (
	_ ports.Clock = RealClock{}
	_ ports.Clock = (*VirtualClock)(nil)
)

// RealClock suspends on the wall clock.
type RealClock struct{}

// Sleep blocks for d or until ctx is done.
func (RealClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// AfterFunc schedules f on its own goroutine after d.
func (RealClock) AfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// VirtualClock is a clock whose time only moves when someone sleeps on it.
// Sleep advances time instantly and runs every AfterFunc that falls due on the
// way, in deadline order. It makes animations deterministic and wait-free.
type VirtualClock struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*virtualTimer
}

type virtualTimer struct {
	at  time.Duration
	seq int
	f   func()
}

// NewVirtualClock returns a clock at virtual time zero.
func NewVirtualClock() *VirtualClock {
	return &VirtualClock{}
}

// Now returns the virtual time elapsed since creation.
func (c *VirtualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Pending returns the number of scheduled callbacks that have not run.
func (c *VirtualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// Sleep advances the clock by d.
func (c *VirtualClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.Advance(d)
	return nil
}

// Advance moves time forward by d, running due callbacks without holding the lock.
func (c *VirtualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	for len(c.timers) > 0 && c.timers[0].at <= target {
		t := c.timers[0]
		c.timers = c.timers[1:]
		c.now = t.at

		c.mu.Unlock()
		t.f()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

// AfterFunc registers f to run once the clock reaches now+d.
func (c *VirtualClock) AfterFunc(d time.Duration, f func()) func() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &virtualTimer{at: c.now + d, seq: c.seq, f: f}
	c.seq++
	c.timers = append(c.timers, t)
	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].at != c.timers[j].at {
			return c.timers[i].at < c.timers[j].at
		}
		return c.timers[i].seq < c.timers[j].seq
	})

	return func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, pending := range c.timers {
			if pending == t {
				c.timers = append(c.timers[:i], c.timers[i+1:]...)
				return true
			}
		}
		return false
	}
}
