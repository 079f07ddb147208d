package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WSClient is one live feed connection for a user.
type WSClient struct {
	UserID primitive.ObjectID
	Conn   *websocket.Conn

	writeMu sync.Mutex
}

// WriteMessage serializes writes to the connection: the hub fan-out and
// the keep-alive ping run on different goroutines, and gorilla/websocket
// allows only one concurrent writer.
func (c *WSClient) WriteMessage(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteMessage(messageType, data)
}

// FeedHub fans newly published meals out to connected followers. A user
// may hold several connections (multiple devices).
type FeedHub struct {
	mu      sync.RWMutex
	clients map[primitive.ObjectID]map[*WSClient]struct{}
}

func NewFeedHub() *FeedHub {
	return &FeedHub{clients: make(map[primitive.ObjectID]map[*WSClient]struct{})}
}

func (h *FeedHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *FeedHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

// Send writes the payload to every connection the user holds. Write
// failures are dropped; the read loop notices the dead connection.
func (h *FeedHub) Send(userID primitive.ObjectID, payload any) {
	msg, _ := json.Marshal(payload)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		_ = c.WriteMessage(websocket.TextMessage, msg)
	}
}
