// internal/ws/hub.go
package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/BijayDhakal25/citizen-compass-app/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Envelope is the frame pushed to connected clients.
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Hub fans notifications out to the websocket connections of their
// target user. It is the in-app replacement for the original's toast
// mechanism: fire-and-forget, no acknowledgment expected.
type Hub struct {
	clients    map[string]map[*Client]bool // keyed by user id
	register   chan *Client
	unregister chan *Client
	push       chan models.Notification
	done       chan struct{} // closed when Run exits

	mutex sync.RWMutex
	log   logrus.FieldLogger
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID string
}

func NewHub(log logrus.FieldLogger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		push:       make(chan models.Notification, 64),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Push queues a notification for delivery. Never blocks; when the hub
// is saturated the notification is dropped (clients still see it via
// the REST listing).
func (h *Hub) Push(notif models.Notification) {
	select {
	case h.push <- notif:
	default:
		h.log.WithField("user_id", notif.UserID).Warn("Push channel full, dropping realtime notification")
	}
}

// Run processes registration and delivery until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			close(h.done)
			return

		case client := <-h.register:
			h.mutex.Lock()
			if h.clients[client.userID] == nil {
				h.clients[client.userID] = make(map[*Client]bool)
			}
			h.clients[client.userID][client] = true
			h.mutex.Unlock()
			h.log.WithField("user_id", client.userID).Debug("Websocket client registered")

		case client := <-h.unregister:
			h.mutex.Lock()
			if clients, ok := h.clients[client.userID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.clients, client.userID)
					}
				}
			}
			h.mutex.Unlock()
			h.log.WithField("user_id", client.userID).Debug("Websocket client unregistered")

		case notif := <-h.push:
			h.deliver(notif)
		}
	}
}

func (h *Hub) deliver(notif models.Notification) {
	h.mutex.RLock()
	clients := h.clients[notif.UserID]
	h.mutex.RUnlock()

	if len(clients) == 0 {
		return
	}

	frame, err := json.Marshal(Envelope{Type: "notification", Data: notif})
	if err != nil {
		h.log.WithError(err).Error("Failed to encode notification frame")
		return
	}

	for client := range clients {
		select {
		case client.send <- frame:
		default:
			h.mutex.Lock()
			close(client.send)
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.clients, notif.UserID)
			}
			h.mutex.Unlock()
		}
	}
}

func (h *Hub) shutdown() {
	frame, _ := json.Marshal(Envelope{Type: "system", Data: map[string]string{
		"message": "Server is shutting down",
	}})

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for _, clients := range h.clients {
		for client := range clients {
			select {
			case client.send <- frame:
			default:
			}
			close(client.send)
		}
	}
	h.clients = make(map[string]map[*Client]bool)
}

// ConnectionCount reports live connections, for the health endpoint.
func (h *Hub) ConnectionCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	count := 0
	for _, clients := range h.clients {
		count += len(clients)
	}
	return count
}

// ServeClient attaches an upgraded connection to the hub and runs the
// read/write pumps until the peer goes away. Connections arriving while
// the hub is shutting down are closed immediately instead of blocking
// on a loop that no longer drains.
func (h *Hub) ServeClient(conn *websocket.Conn, userID string) {
	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: userID,
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

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
		var frame Envelope
		if err := c.conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.WithError(err).Debug("Websocket read error")
			}
			break
		}

		// The push channel is one-way; clients only keep-alive.
		if frame.Type == "ping" {
			select {
			case c.send <- []byte(`{"type":"pong"}`):
			default:
			}
		}
	}
}

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
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Flush any queued frames into the same write
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
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
