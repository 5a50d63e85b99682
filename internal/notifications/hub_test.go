package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub()

	client, err := hub.Register(1, nil)
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.Equal(t, 1, hub.ConnectionCount(1), "one registration per connection")

	second, err := hub.Register(1, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, hub.ConnectionCount(1))

	hub.UnregisterClient(client)
	assert.Equal(t, 1, hub.ConnectionCount(1))

	// Unregistering twice must not disturb the remaining registration.
	hub.UnregisterClient(client)
	assert.Equal(t, 1, hub.ConnectionCount(1))

	hub.UnregisterClient(second)
	assert.Equal(t, 0, hub.ConnectionCount(1))
}

func TestHubPerUserLimit(t *testing.T) {
	hub := NewHub()

	for i := 0; i < maxConnsPerUser; i++ {
		_, err := hub.Register(1, nil)
		require.NoError(t, err)
	}

	_, err := hub.Register(1, nil)
	assert.Error(t, err, "per-user connection limit enforced")

	// Other users are unaffected.
	_, err = hub.Register(2, nil)
	assert.NoError(t, err)
}

func TestHubBroadcastAll(t *testing.T) {
	hub := NewHub()

	alice, err := hub.Register(1, nil)
	require.NoError(t, err)
	bob, err := hub.Register(2, nil)
	require.NoError(t, err)

	hub.BroadcastAll(`{"type":"post_created"}`)

	for _, c := range []*Client{alice, bob} {
		select {
		case msg := <-c.Send:
			assert.JSONEq(t, `{"type":"post_created"}`, string(msg))
		default:
			t.Fatalf("client %d did not receive broadcast", c.UserID)
		}
	}
}

func TestHubBroadcastSkipsUnregistered(t *testing.T) {
	hub := NewHub()

	gone, err := hub.Register(1, nil)
	require.NoError(t, err)
	stays, err := hub.Register(2, nil)
	require.NoError(t, err)

	hub.UnregisterClient(gone)
	hub.BroadcastAll("event")

	select {
	case <-gone.Send:
		t.Fatal("unregistered client must not receive events")
	default:
	}

	select {
	case msg := <-stays.Send:
		assert.Equal(t, "event", string(msg))
	default:
		t.Fatal("registered client should receive the event")
	}
}

func TestTrySendDropsWhenFull(t *testing.T) {
	hub := NewHub()
	client, err := hub.Register(1, nil)
	require.NoError(t, err)

	// Fill the buffer; nothing is reading.
	for i := 0; i < cap(client.Send); i++ {
		client.TrySend([]byte("x"))
	}
	// Full buffer: message dropped, no block, no panic.
	done := make(chan struct{})
	go func() {
		client.TrySend([]byte("overflow"))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("TrySend blocked on a full buffer")
	}
}

func TestNotifierRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	hub := NewHub()
	client, err := hub.Register(1, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notifier := NewNotifier(rdb)
	require.NoError(t, hub.StartWiring(ctx, notifier))

	// Give the subscriber a moment to attach.
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, notifier.PublishFeedEvent(ctx, `{"type":"post_liked"}`))

	select {
	case msg := <-client.Send:
		assert.JSONEq(t, `{"type":"post_liked"}`, string(msg))
	case <-time.After(2 * time.Second):
		t.Fatal("event did not reach the subscriber")
	}
}

func TestNotifierNilRedisIsNoop(t *testing.T) {
	notifier := NewNotifier(nil)
	assert.NoError(t, notifier.PublishFeedEvent(context.Background(), "x"))
	assert.NoError(t, notifier.StartFeedSubscriber(context.Background(), nil))
}
