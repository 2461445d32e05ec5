package ports

import (
	"context"
	"time"
)

// Clock provides the suspension points of the animation.
type Clock interface {
	// Sleep suspends the caller for d. It returns ctx.Err() if ctx ends first.
	Sleep(ctx context.Context, d time.Duration) error

	// AfterFunc runs f once d has elapsed, without blocking the caller.
	// The returned stop func cancels f if it has not run yet and reports whether it did so.
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}
