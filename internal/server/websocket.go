package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/conneroisu/lectern/internal/logging"
	"github.com/conneroisu/lectern/internal/monitoring"
	"github.com/conneroisu/lectern/internal/registry"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Messages queued per client before it is dropped.
	sendBuffer = 16
)

// UpdateMessage tells preview pages that the content changed.
type UpdateMessage struct {
	Type       string    `json:"type"`
	Generation uint64    `json:"generation"`
	Source     string    `json:"source,omitempty"`
	Error      string    `json:"error,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

func newUpdateMessage(event registry.SnapshotEvent) UpdateMessage {
	msg := UpdateMessage{
		Type:       event.Type.String(),
		Generation: event.Generation,
		Source:     event.Source,
		Timestamp:  event.Timestamp,
	}
	if event.Err != nil {
		msg.Error = event.Err.Error()
	}
	return msg
}

// Client is one connected preview page
type Client struct {
	conn *websocket.Conn
	send chan []byte
	hub  *Hub
}

// Hub fans update messages out to the connected clients. Run owns the
// client set; everything else talks to it over channels.
type Hub struct {
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	closeOnce  sync.Once

	allowedOrigins []string
	originPatterns []string
	metrics        *monitoring.Metrics
	logger         logging.Logger
}

// NewHub creates a hub accepting connections from allowedOrigins. metrics
// may be nil.
func NewHub(allowedOrigins []string, metrics *monitoring.Metrics, logger logging.Logger) *Hub {
	patterns := make([]string, 0, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			patterns = append(patterns, u.Host)
		}
	}

	return &Hub{
		clients:        make(map[*Client]struct{}),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		broadcast:      make(chan []byte, 16),
		done:           make(chan struct{}),
		allowedOrigins: allowedOrigins,
		originPatterns: patterns,
		metrics:        metrics,
		logger:         logger.WithComponent("websocket"),
	}
}

// Run serves the hub until ctx is done or CloseAll is called.
func (h *Hub) Run(ctx context.Context) {
	defer h.closeClients()

	for {
		select {
		case <-ctx.Done():
			h.CloseAll()
			return
		case <-h.done:
			return

		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.clientsChanged(ctx, "Client connected")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.remove(client)
				h.clientsChanged(ctx, "Client disconnected")
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					h.remove(client)
					h.logger.Warn(ctx, nil, "Dropping slow client")
				}
			}
			if h.metrics != nil {
				h.metrics.SetWebsocketClients(len(h.clients))
			}
		}
	}
}

func (h *Hub) clientsChanged(ctx context.Context, msg string) {
	h.logger.Debug(ctx, msg, "clients", len(h.clients))
	if h.metrics != nil {
		h.metrics.SetWebsocketClients(len(h.clients))
	}
}

func (h *Hub) remove(client *Client) {
	delete(h.clients, client)
	close(client.send)
}

func (h *Hub) closeClients() {
	for client := range h.clients {
		h.remove(client)
	}
	if h.metrics != nil {
		h.metrics.SetWebsocketClients(0)
	}
}

// Broadcast queues msg for every client. It never blocks; messages are
// dropped when the hub is closed or its queue is full.
func (h *Hub) Broadcast(msg UpdateMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error(context.Background(), err, "Failed to marshal update message")
		return
	}

	select {
	case <-h.done:
	case h.broadcast <- data:
	default:
		h.logger.Warn(context.Background(), nil, "Broadcast queue full, dropping update", "type", msg.Type)
	}
}

// CloseAll stops the hub and disconnects every client.
func (h *Hub) CloseAll() {
	h.closeOnce.Do(func() { close(h.done) })
}

// HandleWebSocket upgrades the request and registers the client.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !h.checkOrigin(r) {
		http.Error(w, "Origin not allowed", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		h.logger.Warn(r.Context(), err, "WebSocket upgrade failed")
		return
	}

	client := &Client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		hub:  h,
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}

	go client.writePump()
	go client.readPump()
}

// checkOrigin requires an Origin header naming one of the allowed origins.
func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return false
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if originURL.Scheme != "http" && originURL.Scheme != "https" {
		return false
	}

	for _, allowed := range h.allowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// readPump discards client messages and unregisters the client once the
// connection closes.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMessageSize)

	for {
		ctx, cancel := context.WithTimeout(context.Background(), pongWait)
		_, _, err := c.conn.Read(ctx)
		cancel()

		if err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
				c.hub.logger.Debug(context.Background(), "WebSocket read ended", "error", err.Error())
			}
			return
		}
	}
}

// writePump pumps messages to the websocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				c.conn.Close(websocket.StatusGoingAway, "server shutting down")
				return
			}

			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Write(ctx, websocket.MessageText, message)
			cancel()
			if err != nil {
				c.hub.logger.Debug(context.Background(), "WebSocket write failed", "error", err.Error())
				return
			}

		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Ping(ctx)
			cancel()
			if err != nil {
				return
			}
		}
	}
}
