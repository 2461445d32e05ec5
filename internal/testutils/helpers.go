package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/arbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// WaitTimeout bounds how long Wait blocks on a run.
const WaitTimeout = 5 * time.Second

// StartVisualizer creates a visualizer on a virtual clock and drives it until
// the test ends. Later options override the instant clock.
func StartVisualizer(t *testing.T, opts ...arbor.Option) *arbor.Visualizer {
	t.Helper()

	v := arbor.New(append([]arbor.Option{arbor.WithInstant()}, opts...)...)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.NoError(t, v.Run(ctx))
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return v
}

// Wait returns a checker that fails the test unless the run was admitted
// and finished cleanly. It takes the pair returned by Build, Traverse or Clear:
//
//	testutils.Wait(t)(v.Build(ctx, values))
func Wait(t *testing.T) func(*arbor.Run, error) *arbor.Run {
	return func(run *arbor.Run, err error) *arbor.Run {
		t.Helper()
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), WaitTimeout)
		defer cancel()
		require.NoError(t, run.Wait(ctx))
		return run
	}
}
