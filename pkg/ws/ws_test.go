package ws

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubDropsSlowClientsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	fast := &Client{hub: hub, send: make(chan []byte, 16)}
	slow := &Client{hub: hub, send: make(chan []byte)} // nobody drains this

	hub.register <- fast
	hub.register <- slow
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 },
		time.Second, 5*time.Millisecond)

	hub.Broadcast <- []byte(`{"event":"cart.updated"}`)

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 5*time.Millisecond, "full send buffer must drop the client, not stall the hub")

	select {
	case msg := <-fast.send:
		assert.Equal(t, `{"event":"cart.updated"}`, string(msg))
	case <-time.After(time.Second):
		t.Fatal("healthy client never received the broadcast")
	}
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.register <- c
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 5*time.Millisecond)

	hub.unregister <- c
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 },
		time.Second, 5*time.Millisecond)

	// send channel is closed on unregister
	_, open := <-c.send
	assert.False(t, open)
}
