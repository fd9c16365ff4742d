package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Hub tracks connected clients per user and pushes events to them. A user
// may hold several connections (multiple tabs); an event goes to all of
// them. Delivery is best effort: chat history lives in the database, the
// socket only saves a refresh.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	stop       chan struct{}
	done       chan struct{}
	stopped    bool
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for _, conns := range h.clients {
				for client := range conns {
					client.Close()
				}
			}
			h.clients = make(map[uuid.UUID]map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				if h.clients[client.userID] == nil {
					h.clients[client.userID] = make(map[*Client]bool)
				}
				h.clients[client.userID][client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if !h.stopped {
				if conns, ok := h.clients[client.userID]; ok {
					if _, ok := conns[client]; ok {
						delete(conns, client)
						client.Close()
						if len(conns) == 0 {
							delete(h.clients, client.userID)
						}
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// Stop shuts down the hub and closes every connection.
func (h *Hub) Stop() {
	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()
	if stopped {
		return
	}
	close(h.stop)
	<-h.done
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

// SendToUser pushes an event to every connection the user has open.
// Unreachable users are skipped silently.
func (h *Hub) SendToUser(userID uuid.UUID, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("websocket: failed to marshal event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[userID] {
		select {
		case client.send <- data:
		default:
			// Slow consumer, drop the event rather than block the sender.
		}
	}
}
