package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastEventReachesAllClients(t *testing.T) {
	hub := NewHub()
	a := &Client{UserID: 1, Role: "admin", Send: make(chan []byte, 1)}
	b := &Client{UserID: 2, Role: "employee", Send: make(chan []byte, 1)}
	hub.Clients[a.UserID] = a
	hub.Clients[b.UserID] = b

	hub.broadcastEvent(&Event{Type: "booking_update", BookingID: 7, Status: "In Progress"})

	for _, client := range []*Client{a, b} {
		var event Event
		require.NoError(t, json.Unmarshal(<-client.Send, &event))
		assert.Equal(t, "booking_update", event.Type)
		assert.Equal(t, uint(7), event.BookingID)
		assert.Equal(t, "In Progress", event.Status)
	}
}

func TestBroadcastEventSkipsSlowConsumers(t *testing.T) {
	hub := NewHub()
	slow := &Client{UserID: 1, Send: make(chan []byte)} // no buffer, nobody reading
	hub.Clients[slow.UserID] = slow

	// Must not block.
	hub.broadcastEvent(&Event{Type: "booking_update", BookingID: 1})
}

func TestPublishDropsWhenChannelFull(t *testing.T) {
	hub := NewHub()

	// Nobody draining Broadcast; fill it past capacity.
	for i := 0; i < cap(hub.Broadcast)+10; i++ {
		hub.Publish(&Event{Type: "booking_update", BookingID: uint(i)})
	}

	assert.Equal(t, cap(hub.Broadcast), len(hub.Broadcast))
}

func TestPublishStampsTimestamp(t *testing.T) {
	hub := NewHub()
	event := &Event{Type: "booking_created", BookingID: 3}

	hub.Publish(event)

	assert.False(t, event.Timestamp.IsZero())
}

func TestReconnectReplacesEarlierSession(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	first := &Client{UserID: 5, Role: "admin", Send: make(chan []byte, 4)}
	second := &Client{UserID: 5, Role: "admin", Send: make(chan []byte, 4)}
	hub.Register <- first
	hub.Register <- second

	// Registering a second session for the same user closes the first's channel.
	select {
	case _, open := <-first.Send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("first session's send channel was not closed on replacement")
	}

	// The stale session disconnecting must not evict the newer one.
	hub.Unregister <- first
	hub.Register <- &Client{UserID: 99, Send: make(chan []byte, 1)} // drains the loop past the unregister

	hub.mu.RLock()
	current := hub.Clients[5]
	hub.mu.RUnlock()
	require.Same(t, second, current)

	hub.Publish(&Event{Type: "booking_update", BookingID: 12, Status: "In Progress"})
	select {
	case payload := <-second.Send:
		var event Event
		require.NoError(t, json.Unmarshal(payload, &event))
		assert.Equal(t, uint(12), event.BookingID)
	case <-time.After(time.Second):
		t.Fatal("newer session stopped receiving events")
	}
}

func TestClientCount(t *testing.T) {
	hub := NewHub()
	assert.Equal(t, 0, hub.ClientCount())

	hub.Clients[1] = &Client{UserID: 1}
	assert.Equal(t, 1, hub.ClientCount())
}
