package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_SendToUser(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	userID := uuid.New()
	client := &Client{hub: hub, send: make(chan []byte, 1), userID: userID}
	hub.Register(client)

	// Registration goes through a channel; give the hub a beat.
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients[userID]) == 1
	}, time.Second, 10*time.Millisecond)

	event, err := NewEvent(EventMessageNew, map[string]string{"body": "hola"})
	require.NoError(t, err)
	hub.SendToUser(userID, event)

	select {
	case data := <-client.send:
		var got Event
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, EventMessageNew, got.Type)
	case <-time.After(time.Second):
		t.Fatal("expected event on client send channel")
	}

	// Events for other users never reach this client.
	hub.SendToUser(uuid.New(), event)
	select {
	case <-client.send:
		t.Fatal("unexpected event for another user")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_SlowConsumerDropsEvent(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	userID := uuid.New()
	client := &Client{hub: hub, send: make(chan []byte, 1), userID: userID}
	hub.Register(client)

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients[userID]) == 1
	}, time.Second, 10*time.Millisecond)

	event, err := NewEvent(EventMessageNew, "first")
	require.NoError(t, err)

	// Fill the buffer, then send again: the second must be dropped
	// rather than block.
	hub.SendToUser(userID, event)
	hub.SendToUser(userID, event)

	assert.Len(t, client.send, 1)
}
