// Package spectate streams match events to websocket viewers.
package spectate

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/milk9111/streetfighter/system"
)

const (
	sendQueue    = 64
	writeTimeout = 5 * time.Second
	readTimeout  = 60 * time.Second
)

type client struct {
	ws   *websocket.Conn
	send chan []byte
	once sync.Once
}

func newClient(ws *websocket.Conn) *client {
	return &client{ws: ws, send: make(chan []byte, sendQueue)}
}

// enqueue never blocks; a slow viewer loses messages instead of stalling the
// match.
func (c *client) enqueue(b []byte) {
	select {
	case c.send <- b:
	default:
	}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.send)
	})
}

func (c *client) writePump() {
	defer c.ws.Close()
	for msg := range c.send {
		_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// readPump only watches for the viewer going away.
func (c *client) readPump(h *Hub) {
	defer h.remove(c)
	c.ws.SetReadLimit(1 << 10)
	_ = c.ws.SetReadDeadline(time.Now().Add(readTimeout))
	c.ws.SetPongHandler(func(string) error { return c.ws.SetReadDeadline(time.Now().Add(readTimeout)) })
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			return
		}
	}
}

// Hub fans match events out to every connected viewer. Handle is meant to be
// registered on a MatchLoop; ServeHTTP accepts viewers.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	last    []byte
	every   int64
	logger  *zap.Logger

	upgrader websocket.Upgrader
}

// Option configures a Hub.
type Option func(*Hub)

// WithLogger sets the hub's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Hub) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithSnapshotEvery forwards one snapshot per n frames. Other events are
// always forwarded.
func WithSnapshotEvery(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.every = int64(n)
		}
	}
}

func NewHub(opts ...Option) *Hub {
	h := &Hub{
		clients: make(map[*client]struct{}),
		every:   1,
		logger:  zap.NewNop(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// viewers are read-only
				return true
			},
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle encodes evt and broadcasts it. Timer ticks are not forwarded since
// every snapshot carries the time remaining.
func (h *Hub) Handle(evt system.Event) {
	if h == nil || evt.Type == system.EventTimer {
		return
	}
	// the decided snapshot always goes out
	if evt.Type == system.EventSnapshot && evt.Frame%h.every != 0 && (evt.Snapshot == nil || evt.Snapshot.Outcome == system.OutcomeOngoing) {
		return
	}
	b, err := json.Marshal(evt)
	if err != nil {
		h.logger.Warn("encode event", zap.String("type", string(evt.Type)), zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if evt.Type == system.EventSnapshot || evt.Type == system.EventResult {
		h.last = b
	}
	for c := range h.clients {
		c.enqueue(b)
	}
}

// ServeHTTP upgrades the request and registers a viewer. The viewer first
// receives the latest snapshot or result, if any.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade", zap.Error(err))
		return
	}

	c := newClient(ws)
	h.mu.Lock()
	h.clients[c] = struct{}{}
	if h.last != nil {
		c.enqueue(h.last)
	}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("viewer joined", zap.String("remote", r.RemoteAddr), zap.Int("viewers", n))

	go c.writePump()
	go c.readPump(h)
}

// Clients returns the number of connected viewers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.close()
		delete(h.clients, c)
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	n := len(h.clients)
	h.mu.Unlock()
	c.close()
	if ok {
		h.logger.Info("viewer left", zap.Int("viewers", n))
	}
}
