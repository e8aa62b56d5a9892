package server

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// client is one websocket connection. Outbound frames go through the send
// channel so only the writePump touches the connection. The closed flag and
// the close of send are guarded by mu: the readPump may still be replying
// when the hub drops the client, so every send must check the flag under
// the same lock that closes the channel.
type client struct {
	conn   *websocket.Conn
	send   chan []byte
	gameID string
	mu     sync.Mutex
	closed bool
}

func (c *client) subscribe(gameID string) {
	c.mu.Lock()
	c.gameID = gameID
	c.mu.Unlock()
}

func (c *client) subscribed(gameID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gameID == gameID
}

// trySend queues a frame without blocking. False means the buffer is full
// or the client is already closed.
func (c *client) trySend(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// closeSend closes the send channel exactly once.
func (c *client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// hub tracks connected clients and fans game events out to the clients
// subscribed to each game.
type hub struct {
	logger *zap.Logger

	mu      sync.RWMutex
	clients map[*client]bool
}

func newHub(logger *zap.Logger) *hub {
	return &hub{
		logger:  logger,
		clients: make(map[*client]bool),
	}
}

func (h *hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
}

func (h *hub) unregister(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.closeSend()
}

// broadcast sends a frame to every client subscribed to the game. Clients
// with a full send buffer are dropped rather than blocking the hub.
func (h *hub) broadcast(gameID string, resp Response) {
	payload, err := json.Marshal(resp)
	if err != nil {
		h.logger.Error("marshaling broadcast", zap.Error(err))
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if !c.subscribed(gameID) {
			continue
		}
		if !c.trySend(payload) {
			delete(h.clients, c)
			c.closeSend()
			h.logger.Warn("dropping slow client", zap.String("game_id", gameID))
		}
	}
}

// closeAll disconnects every client, for shutdown.
func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		c.closeSend()
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
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
