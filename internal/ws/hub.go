// Package ws maintains WebSocket subscribers and broadcasts tracker events
// to them: render views after each refresh cycle, cycle summaries, and
// lifecycle state changes.
package ws

import (
	"context"
	"sync"
	"time"

	"github.com/RomanDataLab/Brazil-flightradar/internal/domain"
	"github.com/RomanDataLab/Brazil-flightradar/internal/metrics"
	"github.com/RomanDataLab/Brazil-flightradar/internal/ports"
)

// Message types sent to subscribers. Every render view travels as a
// cache_render message; the data's source field tells the client which
// tier produced it.
const (
	MessageTypeView  = "cache_render"
	MessageTypeCycle = "cycle_complete"
	MessageTypeState = "state_change"
	MessageTypePing  = "ping"
	MessageTypePong  = "pong"
)

// Message is the envelope for everything sent over the socket.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// CycleData summarizes one refresh cycle for subscribers.
type CycleData struct {
	Source     string `json:"source"`
	Entries    int    `json:"entries"`
	Failures   int    `json:"failures"`
	Reason     string `json:"reason,omitempty"`
	NoUpdate   bool   `json:"no_update,omitempty"`
	DurationMS int64  `json:"duration_ms"`
	Timestamp  string `json:"timestamp"`
}

// StateChangeData reports a lifecycle transition.
type StateChangeData struct {
	Previous  string `json:"previous"`
	Current   string `json:"current"`
	Reason    string `json:"reason,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Hub tracks connected clients and fans broadcasts out to them. Register,
// unregister, and broadcast all flow through channels serviced by
// RunWithContext.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	logger     ports.Logger
}

// NewHub creates a hub. Call RunWithContext to start servicing it.
func NewHub(logger ports.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// RunWithContext services the hub until the context is canceled, then closes
// every client and returns the context error.
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return ctx.Err()

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			metrics.TrackWSConnection(true)
			h.logger.Debug("websocket client connected", ports.Int("total_clients", total))

		case client := <-h.unregister:
			h.remove(client)

		case message := <-h.broadcast:
			h.fanout(message)
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mu.Unlock()

	if ok {
		metrics.TrackWSConnection(false)
		h.logger.Debug("websocket client disconnected", ports.Int("total_clients", total))
	}
}

// fanout delivers a message to every client. Clients whose send buffer is
// full are dropped; a stalled reader must not block the tracker.
func (h *Hub) fanout(message Message) {
	h.mu.Lock()

	var stalled []*Client
	delivered := 0
	for client := range h.clients {
		select {
		case client.send <- message:
			delivered++
		default:
			stalled = append(stalled, client)
		}
	}
	for _, client := range stalled {
		close(client.send)
		delete(h.clients, client)
	}
	h.mu.Unlock()

	metrics.RecordWSBroadcast(delivered)
	for range stalled {
		metrics.TrackWSConnection(false)
	}
	if len(stalled) > 0 {
		h.logger.Warn("dropped stalled websocket clients", ports.Int("count", len(stalled)))
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	count := len(h.clients)
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
	h.mu.Unlock()

	for i := 0; i < count; i++ {
		metrics.TrackWSConnection(false)
	}
	h.logger.Info("websocket hub stopped", ports.Int("clients_closed", count))
}

// BroadcastView sends a render view to all subscribers. Non-blocking: the
// message is dropped when the broadcast queue is full.
func (h *Hub) BroadcastView(view domain.RenderView) {
	h.enqueue(Message{Type: MessageTypeView, Data: view})
}

// BroadcastCycle sends a cycle summary to all subscribers.
func (h *Hub) BroadcastCycle(data CycleData) {
	if data.Timestamp == "" {
		data.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	h.enqueue(Message{Type: MessageTypeCycle, Data: data})
}

// BroadcastStateChange sends a lifecycle transition to all subscribers.
func (h *Hub) BroadcastStateChange(previous, current, reason string) {
	h.enqueue(Message{Type: MessageTypeState, Data: StateChangeData{
		Previous:  previous,
		Current:   current,
		Reason:    reason,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}})
}

func (h *Hub) enqueue(message Message) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("broadcast queue full, dropping message", ports.String("type", message.Type))
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
