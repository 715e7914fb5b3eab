// Package stream pushes market snapshots to websocket clients.
package stream

import (
	"encoding/json"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/model"
)

// Defaults for the keep-alive loop.
const (
	DefaultPingInterval = 5 * time.Second
	DefaultDeadline     = 15 * time.Second
	writeTimeout        = time.Second
)

// MessageTypeMarket tags market snapshot messages.
const MessageTypeMarket = "market"

// Message is the JSON document sent to clients.
type Message struct {
	Type      string               `json:"type"`
	Market    model.MarketOverview `json:"market"`
	UpdatedAt time.Time            `json:"updated_at"`
}

type client struct {
	conn    *websocket.Conn
	writeMx sync.Mutex
}

func (c *client) write(data []byte) error {
	c.writeMx.Lock()
	defer c.writeMx.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *client) ping() error {
	c.writeMx.Lock()
	defer c.writeMx.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
}

// Hub keeps the connected clients and the latest snapshot.
// New clients receive the latest snapshot right after connecting.
type Hub struct {
	upgrader     websocket.Upgrader
	pingInterval time.Duration
	deadline     time.Duration
	logger       *zap.Logger

	mx      sync.RWMutex
	clients map[*client]struct{}
	latest  []byte
}

// Option customises a Hub.
type Option func(*Hub)

// WithKeepAlive sets how often clients are pinged and how long a silent client is kept.
func WithKeepAlive(pingInterval, deadline time.Duration) Option {
	return func(h *Hub) {
		h.pingInterval = pingInterval
		h.deadline = deadline
	}
}

// NewHub creates a Hub accepting connections from allowedOrigins.
// "*" accepts any origin; an empty list only accepts same-origin requests.
func NewHub(allowedOrigins []string, logger *zap.Logger, opts ...Option) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Hub{
		pingInterval: DefaultPingInterval,
		deadline:     DefaultDeadline,
		logger:       logger.With(zap.String("component", "stream")),
		clients:      make(map[*client]struct{}),
	}
	if len(allowedOrigins) > 0 {
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
		}
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Publish stores overview as the latest snapshot and sends it to every client.
// Clients that cannot be written to are dropped.
func (h *Hub) Publish(overview model.MarketOverview, at time.Time) {
	data, err := json.Marshal(Message{
		Type:      MessageTypeMarket,
		Market:    overview,
		UpdatedAt: at.UTC(),
	})
	if err != nil {
		h.logger.Error("failed to encode market snapshot", zap.Error(err))
		return
	}

	h.mx.Lock()
	h.latest = data
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mx.Unlock()

	for _, c := range clients {
		if err := c.write(data); err != nil {
			h.logger.Debug("dropping stream client", zap.Error(err))
			h.remove(c)
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mx.RLock()
	defer h.mx.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and keeps the connection until the client
// leaves or stops answering pings.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		h.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{conn: conn}

	// The client's write lock is taken before the hub lock is released, so a
	// concurrent Publish queues behind the initial snapshot instead of overtaking it.
	h.mx.Lock()
	h.clients[c] = struct{}{}
	latest := h.latest
	c.writeMx.Lock()
	h.mx.Unlock()

	if latest != nil {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		err = c.conn.WriteMessage(websocket.TextMessage, latest)
	}
	c.writeMx.Unlock()
	if err != nil {
		h.remove(c)
		return
	}

	h.logger.Debug("stream client connected", zap.String("remote", r.RemoteAddr))

	h.keep(c)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mx.Lock()
	clients := h.clients
	h.clients = make(map[*client]struct{})
	h.mx.Unlock()

	for c := range clients {
		c.writeMx.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeTimeout))
		c.writeMx.Unlock()
		_ = c.conn.Close()
	}
}

func (h *Hub) remove(c *client) {
	h.mx.Lock()
	delete(h.clients, c)
	h.mx.Unlock()
	_ = c.conn.Close()
}

func (h *Hub) keep(c *client) {
	defer h.remove(c)

	pinger := time.NewTicker(h.pingInterval)
	defer pinger.Stop()

	var aliveMx sync.Mutex
	lastAlive := time.Now()
	touch := func() {
		aliveMx.Lock()
		lastAlive = time.Now()
		aliveMx.Unlock()
	}

	// Drop any read deadline inherited from the HTTP server.
	_ = c.conn.SetReadDeadline(time.Time{})

	ponger := c.conn.PongHandler()
	c.conn.SetPongHandler(func(appData string) error {
		touch()
		return ponger(appData)
	})

	// Client messages carry no meaning; reading drives the pong and close handlers.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.conn.ReadMessage(); err != nil {
				return
			}
			touch()
		}
	}()

	for {
		select {
		case <-closed:
			return
		case <-pinger.C:
			if err := c.ping(); err != nil {
				return
			}
			aliveMx.Lock()
			silent := time.Since(lastAlive)
			aliveMx.Unlock()
			if silent > h.deadline {
				h.logger.Debug("stream client stopped answering", zap.Duration("silent", silent))
				return
			}
		}
	}
}
