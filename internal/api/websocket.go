package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/wellsgz/pingpong/internal/logging"
	"github.com/wellsgz/pingpong/internal/report"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ClientMessage represents a message from client to server
type ClientMessage struct {
	Type string `json:"type"` // "pause" or "resume"
}

// ServerMessage represents a message from server to client
type ServerMessage struct {
	Type string      `json:"type"` // "snapshot" or "error"
	Data interface{} `json:"data"`
}

// Hub keeps the latest snapshot and fans every new one out to the
// connected WebSocket clients. It implements report.Renderer.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan ServerMessage
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once

	mu     sync.RWMutex
	latest report.Snapshot
	ready  bool
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan ServerMessage, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Render stores snap as the latest snapshot and queues it for clients.
// It never blocks; when the queue is full the broadcast is skipped.
func (h *Hub) Render(snap report.Snapshot) error {
	h.mu.Lock()
	h.latest = snap
	h.ready = true
	h.mu.Unlock()

	select {
	case h.broadcast <- ServerMessage{Type: "snapshot", Data: snap}:
	default:
	}
	return nil
}

// Latest returns the most recent snapshot and whether one has been rendered
func (h *Hub) Latest() (report.Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest, h.ready
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			for client := range h.clients {
				client.close()
				delete(h.clients, client)
			}
			logging.Info("WebSocket", "Hub stopped", nil)
			return

		case client := <-h.register:
			h.clients[client] = true
			// Send the current state right away
			if snap, ok := h.Latest(); ok {
				client.trySend(ServerMessage{Type: "snapshot", Data: snap})
			}

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.close()
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				if client.isPaused() {
					continue
				}
				if !client.trySend(message) {
					// Client buffer full, drop it
					client.close()
					delete(h.clients, client)
				}
			}
		}
	}
}

// Stop signals the hub to shutdown
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// Client represents a WebSocket client
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan ServerMessage

	mu     sync.RWMutex
	paused bool
	closed bool
}

func (c *Client) isPaused() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.paused
}

func (c *Client) setPaused(p bool) {
	c.mu.Lock()
	c.paused = p
	c.mu.Unlock()
}

// trySend queues msg without blocking. It reports false when the queue is
// full or the hub has already closed it.
func (c *Client) trySend(msg ServerMessage) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// close closes the send queue once; later trySend calls are no-ops
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// readPump handles pause/resume requests until the connection closes
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Error("WebSocket", "Read error", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.trySend(ServerMessage{Type: "error", Data: "Invalid message format"})
			continue
		}

		switch msg.Type {
		case "pause":
			c.setPaused(true)
		case "resume":
			c.setPaused(false)
		default:
			c.trySend(ServerMessage{Type: "error", Data: "Unknown message type: " + msg.Type})
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
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

// ServeWebSocket streams snapshots to WebSocket clients
func ServeWebSocket(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logging.Error("WebSocket", "Upgrade error", err)
			return
		}

		client := &Client{
			hub:  hub,
			conn: conn,
			send: make(chan ServerMessage, 64),
		}

		select {
		case hub.register <- client:
		case <-hub.done:
			conn.Close()
			return
		}

		go client.writePump()
		go client.readPump()
	}
}
