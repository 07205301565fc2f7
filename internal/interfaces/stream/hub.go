package stream

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/riskibarqy/draft-companion/internal/domain/draft"
	"github.com/riskibarqy/draft-companion/internal/platform/logging"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 64
)

type client struct {
	hub     *Hub
	draftID string
	conn    *websocket.Conn
	send    chan []byte
}

// Hub fans draft events out to websocket subscribers of the same draft.
// Publish never blocks: a subscriber whose buffer is full is dropped.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]map[*client]struct{}
	stopped  bool
	upgrader websocket.Upgrader
	logger   *logging.Logger
}

func NewHub(allowedOrigins []string, logger *logging.Logger) *Hub {
	if logger == nil {
		logger = logging.Default()
	}

	h := &Hub{
		clients: make(map[string]map[*client]struct{}),
		logger:  logger,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	allowAll := false
	allowMap := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		if origin == "*" {
			allowAll = true
			continue
		}
		allowMap[origin] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || allowAll {
			return true
		}
		_, ok := allowMap[origin]
		return ok
	}
}

func (h *Hub) Publish(ctx context.Context, event draft.Event) {
	payload, err := sonic.Marshal(event)
	if err != nil {
		h.logger.WarnContext(ctx, "encode draft event failed", "draft_id", event.DraftID, "type", event.Type, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients[event.DraftID] {
		select {
		case c.send <- payload:
		default:
			h.removeLocked(c)
			h.logger.WarnContext(ctx, "dropping slow draft subscriber", "draft_id", event.DraftID)
		}
	}
}

// Subscribers returns how many connections follow the draft.
func (h *Hub) Subscribers(draftID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[draftID])
}

// Close disconnects every subscriber and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopped = true
	for _, set := range h.clients {
		for c := range set {
			h.removeLocked(c)
		}
	}
}

// Serve upgrades the request and streams events for draftID until the peer
// goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, draftID string) {
	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()
	if stopped {
		http.Error(w, "event stream is shutting down", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnContext(r.Context(), "websocket upgrade failed", "draft_id", draftID, "error", err)
		return
	}

	c := &client{hub: h, draftID: draftID, conn: conn, send: make(chan []byte, sendBuffer)}
	if !h.add(c) {
		_ = conn.Close()
		return
	}
	h.logger.Debug("draft subscriber connected", "draft_id", draftID)

	go c.writePump()
	go c.readPump()
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return false
	}
	set, ok := h.clients[c.draftID]
	if !ok {
		set = make(map[*client]struct{})
		h.clients[c.draftID] = set
	}
	set[c] = struct{}{}
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	set, ok := h.clients[c.draftID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, c.draftID)
	}
}

// readPump only services control frames; clients do not send commands.
func (c *client) readPump() {
	defer func() {
		c.hub.remove(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("draft subscriber read failed", "draft_id", c.draftID, "error", err)
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
