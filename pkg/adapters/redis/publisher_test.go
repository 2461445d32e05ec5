package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/testutils"
	"github.com/aretw0/arbor/pkg/adapters/event"
	"github.com/aretw0/arbor/pkg/adapters/redis"
	"github.com/aretw0/arbor/pkg/domain"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, opts ...redis.Option) (*redis.Publisher, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redis.NewFromClient(client, opts...), client
}

func receive(t *testing.T, sub *backend.PubSub) domain.Event {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	var e domain.Event
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &e))
	return e
}

func TestPublisher_Channel(t *testing.T) {
	p, _ := setup(t)
	assert.Equal(t, redis.DefaultChannel, p.Channel())

	p, _ = setup(t, redis.WithChannel("custom"))
	assert.Equal(t, "custom", p.Channel())

	p, _ = setup(t, redis.WithChannel(""))
	assert.Equal(t, redis.DefaultChannel, p.Channel())
}

func TestPublisher_PublishContext(t *testing.T) {
	p, client := setup(t)
	ctx := context.Background()
	require.NoError(t, p.Ping(ctx))

	sub := client.Subscribe(ctx, p.Channel())
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	v := 42
	require.NoError(t, p.PublishContext(ctx, domain.Event{Type: domain.EventNode, Value: &v}))

	got := receive(t, sub)
	assert.Equal(t, domain.EventNode, got.Type)
	require.NotNil(t, got.Value)
	assert.Equal(t, 42, *got.Value)
}

func TestPublisher_StreamsAnimation(t *testing.T) {
	p, client := setup(t, redis.WithChannel("tree"))
	ctx := context.Background()

	sub := client.Subscribe(ctx, "tree")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	adapter := event.New(p.Publish)
	v := testutils.StartVisualizer(t,
		arbor.WithRenderer(adapter),
		arbor.WithResultSink(adapter),
	)
	testutils.Wait(t)(v.Build(ctx, []int{2, 1}))

	var types []domain.EventType
	for range 6 {
		types = append(types, receive(t, sub).Type)
	}
	assert.Equal(t, []domain.EventType{
		domain.EventClear,
		domain.EventBeginRedraw, domain.EventNode, domain.EventEndRedraw,
		domain.EventBeginRedraw, domain.EventEdge,
	}, types)
}

func TestPublisher_FailureDoesNotPanic(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	p := redis.NewFromClient(client, redis.WithTimeout(100*time.Millisecond))
	mr.Close()

	assert.Error(t, p.PublishContext(context.Background(), domain.Event{Type: domain.EventClear}))
	assert.NotPanics(t, func() { p.Publish(domain.Event{Type: domain.EventClear}) })
	assert.NoError(t, p.Close())
}
