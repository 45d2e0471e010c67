package handler

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WebSocket configuration constants.
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

// Event is a change notification broadcast to connected clients after
// a successful mutation. The web UI subscribes to refresh its tables.
type Event struct {
	Entity    string    `json:"entity"`
	Action    string    `json:"action"`
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// Event actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// EventHub accepts WebSocket subscribers and fans change events out
// to them. Slow clients are dropped rather than allowed to block the
// publishing request.
type EventHub struct {
	upgrader websocket.Upgrader
	logger   *zap.Logger
	mu       sync.RWMutex
	clients  map[*websocket.Conn]chan Event
	closed   bool
}

// NewEventHub creates a new EventHub instance.
func NewEventHub(logger *zap.Logger) *EventHub {
	return &EventHub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true // same-origin UI plus local development
			},
		},
		logger:  logger,
		clients: make(map[*websocket.Conn]chan Event),
	}
}

// RegisterRoutes registers the WebSocket route with the router.
func (h *EventHub) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/ws", h.HandleWebSocket).Methods(http.MethodGet)
}

// Publish broadcasts an event to every connected client.
func (h *EventHub) Publish(entity, action string, id int64) {
	event := Event{
		Entity:    entity,
		Action:    action,
		ID:        id,
		Timestamp: time.Now().UTC(),
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn, send := range h.clients {
		select {
		case send <- event:
		default:
			// Client is not draining its queue; readPump's deadline
			// will reap the connection.
			h.logger.Debug("dropping event for slow client",
				zap.String("remote_addr", conn.RemoteAddr().String()))
		}
	}
}

// HandleWebSocket upgrades the connection and registers the client.
func (h *EventHub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("failed to upgrade connection", zap.Error(err))
		return
	}

	send := make(chan Event, sendBuffer)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.clients[conn] = send
	h.mu.Unlock()

	h.logger.Info("event subscriber connected",
		zap.String("remote_addr", conn.RemoteAddr().String()))

	go h.writePump(conn, send)
	go h.readPump(conn)
}

// readPump discards inbound messages and reaps dead connections via
// the pong deadline.
func (h *EventHub) readPump(conn *websocket.Conn) {
	defer func() {
		h.removeClient(conn)
		if err := conn.Close(); err != nil {
			h.logger.Debug("error closing connection", zap.Error(err))
		}
	}()

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		h.logger.Error("failed to set read deadline", zap.Error(err))
		return
	}

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("websocket read error", zap.Error(err))
			}
			return
		}
	}
}

// writePump forwards queued events to the connection and keeps it
// alive with pings.
func (h *EventHub) writePump(conn *websocket.Conn, send <-chan Event) {
	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	for {
		select {
		case event, ok := <-send:
			if !ok {
				h.sendCloseMessage(conn)
				return
			}
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				h.logger.Debug("failed to send event", zap.Error(err))
				return
			}
		case <-pingTicker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.logger.Debug("failed to send ping", zap.Error(err))
				return
			}
		}
	}
}

// sendCloseMessage sends a close frame, best effort.
func (h *EventHub) sendCloseMessage(conn *websocket.Conn) {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	)
}

// removeClient unregisters a client and closes its queue.
func (h *EventHub) removeClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if send, ok := h.clients[conn]; ok {
		close(send)
		delete(h.clients, conn)
	}
}

// CloseAll disconnects every subscriber, used during shutdown.
func (h *EventHub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for conn, send := range h.clients {
		close(send)
		delete(h.clients, conn)
		_ = conn.Close()
	}
}
