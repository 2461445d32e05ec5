package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/adapters/memory"
	"github.com/aretw0/arbor/pkg/domain"
)

func TestRecorder_FullAnimation(t *testing.T) {
	rec := memory.NewRecorder()
	v := arbor.New(
		arbor.WithInstant(),
		arbor.WithRenderer(rec),
		arbor.WithStatsSink(rec),
		arbor.WithProgressSink(rec),
		arbor.WithResultSink(rec),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go v.Run(ctx)

	run, err := v.Build(ctx, []int{2, 1})
	require.NoError(t, err)
	require.NoError(t, run.Wait(ctx))

	assert.Equal(t, []domain.EventType{
		domain.EventClear, domain.EventStats,
		domain.EventBeginRedraw, domain.EventNode, domain.EventEndRedraw, domain.EventProgress,
		domain.EventBeginRedraw, domain.EventEdge, domain.EventNode, domain.EventNode, domain.EventEndRedraw, domain.EventProgress,
		domain.EventStats,
	}, rec.Types())

	rec.Reset()
	run, err = v.Traverse(ctx, domain.PreOrder)
	require.NoError(t, err)
	require.NoError(t, run.Wait(ctx))

	visited := rec.Of(domain.EventVisited)
	require.Len(t, visited, 2)
	assert.Equal(t, 2, *visited[0].Value)
	assert.Equal(t, 1, *visited[1].Value)

	results := rec.Of(domain.EventResult)
	require.Len(t, results, 1)
	assert.Equal(t, []int{2, 1}, results[0].Values)
	assert.Equal(t, domain.PreOrder, results[0].Kind)
	assert.Equal(t, 8, rec.Len()) // reset, 2x(highlight, unhighlight, visited), result
}
