package socket

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event is the wire format for dashboard push messages.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub tracks every connected admin dashboard and fans events out to all
// of them.
type Hub struct {
	logger *zap.Logger

	// mu guards clients; connections come and go on handler goroutines.
	mu      sync.RWMutex
	clients map[string]*websocket.Conn
}

// NewHub creates an empty Hub.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		logger:  logger,
		clients: make(map[string]*websocket.Conn),
	}
}

// Register adds a client connection to the Hub.
func (h *Hub) Register(clientID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[clientID] = conn
	h.logger.Info("websocket client registered", zap.String("clientID", clientID))
}

// Unregister removes a client from the Hub.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[clientID]; ok {
		delete(h.clients, clientID)
		h.logger.Info("websocket client unregistered", zap.String("clientID", clientID))
	}
}

// Broadcast sends an event to every connected client. A client whose
// write fails is logged and skipped; it will drop off through its own
// read loop.
func (h *Hub) Broadcast(eventType string, data interface{}) {
	payload, err := json.Marshal(Event{Type: eventType, Data: data})
	if err != nil {
		h.logger.Error("failed to marshal event", zap.String("type", eventType), zap.Error(err))
		return
	}

	// Write lock: gorilla connections allow a single concurrent writer,
	// so broadcasts must not interleave.
	h.mu.Lock()
	defer h.mu.Unlock()

	for clientID, conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.Warn("failed to push event to client",
				zap.String("clientID", clientID),
				zap.String("type", eventType),
				zap.Error(err))
		}
	}
}
