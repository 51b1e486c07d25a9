package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"transit-dashboard/model"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 8
)

// MessageTypeStats tags pushed real-time stats
const MessageTypeStats = "real_time_stats"

// StatsSource computes the live counters pushed to clients
type StatsSource interface {
	RealTimeStats(ctx context.Context) (*model.RealTimeStats, error)
}

// Message is the JSON frame sent to clients
type Message struct {
	Type string               `json:"type"`
	Data *model.RealTimeStats `json:"data"`
}

type client struct {
	conn   *websocket.Conn
	remote string
	send   chan []byte
}

// Hub pushes real-time stats to every connected dashboard.
// Clients that fall behind by more than their send buffer are dropped.
type Hub struct {
	source   StatsSource
	interval time.Duration
	timeout  time.Duration
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

// NewHub creates a hub that polls source every interval
func NewHub(source StatsSource, interval, queryTimeout time.Duration) *Hub {
	if interval <= 0 {
		interval = time.Minute
	}
	if queryTimeout <= 0 {
		queryTimeout = 10 * time.Second
	}
	return &Hub{
		source:   source,
		interval: interval,
		timeout:  queryTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// admin auth runs before the upgrade; origins are enforced by CORS
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// Run broadcasts on every tick until ctx is cancelled, then disconnects all clients
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", h.interval).Msg("Real-time hub started")

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			log.Info().Msg("Real-time hub stopped")
			return
		case <-ticker.C:
			if h.ClientCount() == 0 {
				continue
			}
			stats, err := h.fetch(ctx)
			if err != nil {
				log.Error().Err(err).Msg("Failed to compute real-time stats")
				continue
			}
			h.Broadcast(stats)
		}
	}
}

func (h *Hub) fetch(ctx context.Context) (*model.RealTimeStats, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	return h.source.RealTimeStats(ctx)
}

// Broadcast sends stats to every client without blocking
func (h *Hub) Broadcast(stats *model.RealTimeStats) {
	payload, err := json.Marshal(Message{Type: MessageTypeStats, Data: stats})
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode real-time stats")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			log.Warn().Str("remote", c.remote).Msg("Dropping slow real-time client")
			h.removeLocked(c)
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeWS upgrades the request and registers the connection.
// The client receives the current stats right away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	c := &client{conn: conn, remote: conn.RemoteAddr().String(), send: make(chan []byte, sendBuffer)}
	if !h.add(c) {
		conn.Close()
		return
	}

	go h.writePump(c)
	go h.readPump(c)

	stats, err := h.fetch(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute initial real-time stats")
		return
	}
	payload, err := json.Marshal(Message{Type: MessageTypeStats, Data: stats})
	if err != nil {
		return
	}
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		select {
		case c.send <- payload:
		default:
		}
	}
	h.mu.Unlock()
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
}

// readPump discards client frames and unregisters the client when the connection ends
func (h *Hub) readPump(c *client) {
	defer func() {
		h.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Msg("Real-time client disconnected")
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
