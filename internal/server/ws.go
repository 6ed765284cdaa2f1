package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/cubescan/internal/app"
	"github.com/ayusman/cubescan/internal/logging"
)

const (
	// sendBufferSize is the per-client outbound queue. Events for a client
	// whose queue is full are dropped.
	sendBufferSize = 64

	// replaySize is how many recent events a new client receives.
	replaySize = 32

	writeWait = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

type progressClient struct {
	conn *websocket.Conn
	send chan []byte
}

// ProgressHandler broadcasts scan progress events to WebSocket clients.
// It implements app.EventSink.
type ProgressHandler struct {
	mu      sync.RWMutex
	clients map[*progressClient]struct{}
	recent  [][]byte
	closed  bool
	logger  *logging.Logger
}

// NewProgressHandler creates a handler with no clients.
func NewProgressHandler(logger *logging.Logger) *ProgressHandler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &ProgressHandler{
		clients: make(map[*progressClient]struct{}),
		logger:  logger.Component("progress"),
	}
}

// Publish sends ev to every connected client without blocking.
func (h *ProgressHandler) Publish(ev app.Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("failed to marshal event", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.recent = append(h.recent, msg)
	if len(h.recent) > replaySize {
		h.recent = h.recent[len(h.recent)-replaySize:]
	}

	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.logger.Debug("dropping event for slow client", "type", string(ev.Type))
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *ProgressHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client. Later events are discarded.
func (h *ProgressHandler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// ServeHTTP upgrades the request and streams events until either side
// closes.
func (h *ProgressHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade error", "error", err)
		return
	}

	c := &progressClient{conn: conn, send: make(chan []byte, sendBufferSize+replaySize)}
	if !h.register(c) {
		conn.Close()
		return
	}

	go h.writeLoop(c)

	// Reads only detect the client going away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.unregister(c)
}

func (h *ProgressHandler) register(c *progressClient) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	for _, msg := range h.recent {
		c.send <- msg
	}
	h.clients[c] = struct{}{}
	h.logger.Debug("websocket client connected", "clients", len(h.clients))
	return true
}

func (h *ProgressHandler) unregister(c *progressClient) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.logger.Debug("websocket client disconnected", "clients", len(h.clients))
}

func (h *ProgressHandler) writeLoop(c *progressClient) {
	defer c.conn.Close()

	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
