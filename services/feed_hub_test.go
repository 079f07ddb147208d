package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The hub fan-out and the keep-alive ping write to the same connection
// from different goroutines; every feed message must still arrive intact.
func TestFeedHubSerializesConcurrentWrites(t *testing.T) {
	hub := NewFeedHub()
	userID := primitive.NewObjectID()
	up := websocket.Upgrader{}

	registered := make(chan *WSClient, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		cl := &WSClient{UserID: userID, Conn: conn}
		hub.Register(cl)
		registered <- cl
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial(strings.Replace(srv.URL, "http", "ws", 1), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	cl := <-registered

	const msgs = 20
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < msgs; i++ {
			hub.Send(userID, map[string]interface{}{"type": "meal_published", "seq": i})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < msgs; i++ {
			if err := cl.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}()

	// Control frames are consumed inside ReadMessage; only the feed
	// messages surface here.
	for i := 0; i < msgs; i++ {
		if _, _, err := conn.ReadMessage(); err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
	}
	wg.Wait()
	hub.Unregister(cl)
}

func TestFeedHubDropsUnregisteredClients(t *testing.T) {
	hub := NewFeedHub()
	userID := primitive.NewObjectID()
	up := websocket.Upgrader{}

	registered := make(chan *WSClient, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		cl := &WSClient{UserID: userID, Conn: conn}
		hub.Register(cl)
		registered <- cl
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial(strings.Replace(srv.URL, "http", "ws", 1), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	cl := <-registered

	hub.Unregister(cl)
	// Sends to a user with no live connections are a silent no-op.
	hub.Send(userID, map[string]interface{}{"type": "meal_published"})

	hub.mu.RLock()
	_, present := hub.clients[userID]
	hub.mu.RUnlock()
	if present {
		t.Fatal("unregistering the last connection must drop the user entry")
	}
}
