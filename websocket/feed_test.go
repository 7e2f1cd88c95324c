package websocket

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func TestBroadcastResultDeliversToSubscriber(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ws/results", ResultFeedHandler)
	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/results"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial feed: %v", err)
	}
	defer conn.Close()

	// Give the handler a moment to register the subscriber.
	time.Sleep(100 * time.Millisecond)

	BroadcastResult(map[string]string{"matchId": "abc123"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read broadcast: %v", err)
	}
	if !strings.Contains(string(data), "abc123") {
		t.Errorf("Broadcast payload missing match ID: %s", data)
	}
}

func TestBroadcastResultDropsClosedClient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ws/results", ResultFeedHandler)
	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/results"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial feed: %v", err)
	}
	time.Sleep(100 * time.Millisecond)
	conn.Close()
	time.Sleep(100 * time.Millisecond)

	// Broadcasting to a gone client must return promptly instead of
	// blocking the caller.
	done := make(chan struct{})
	go func() {
		BroadcastResult(map[string]string{"matchId": "after-close"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(writeWait + 2*time.Second):
		t.Fatal("Broadcast blocked on a disconnected client")
	}
}
