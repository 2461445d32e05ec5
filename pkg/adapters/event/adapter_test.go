package event_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/pkg/adapters/event"
	"github.com/aretw0/arbor/pkg/domain"
)

func TestAdapter_Events(t *testing.T) {
	var got []domain.Event
	stamp := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	a := event.New(func(e domain.Event) { got = append(got, e) }, event.WithNow(func() time.Time { return stamp }))

	a.Clear()
	a.BeginRedraw(domain.Canvas{Width: 800, Height: 600})
	a.DrawEdge(domain.Point{X: 400, Y: 50}, domain.Point{X: 200, Y: 120})
	h := a.DrawNode(domain.Point{X: 400, Y: 50}, 42)
	a.EndRedraw()
	a.SetHighlight(h, true)
	a.SetVisited(h)
	a.SetHighlight(nil, false)
	a.PublishProgress(1, 3)
	a.PublishResult(domain.InOrder, []int{1, 2})

	require.Len(t, got, 10)
	assert.Equal(t, 42, h)

	types := make([]domain.EventType, len(got))
	for i, e := range got {
		types[i] = e.Type
		assert.Equal(t, stamp, e.Timestamp)
	}
	assert.Equal(t, []domain.EventType{
		domain.EventClear, domain.EventBeginRedraw, domain.EventEdge, domain.EventNode, domain.EventEndRedraw,
		domain.EventHighlight, domain.EventVisited, domain.EventHighlight, domain.EventProgress, domain.EventResult,
	}, types)

	assert.Equal(t, 42, *got[5].Value)
	assert.True(t, *got[5].On)
	assert.Nil(t, got[7].Value)
	assert.Equal(t, domain.Progress{Current: 1, Total: 3}, *got[8].Progress)
}

func TestAdapter_JSONShape(t *testing.T) {
	var got domain.Event
	a := event.New(func(e domain.Event) { got = e }, event.WithNow(func() time.Time { return time.Unix(0, 0).UTC() }))

	a.DrawNode(domain.Point{X: 1.5, Y: 2}, 7)
	data, err := json.Marshal(got)
	require.NoError(t, err)

	assert.JSONEq(t, `{"timestamp":"1970-01-01T00:00:00Z","type":"node","at":{"x":1.5,"y":2},"value":7}`, string(data))
}
