package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// writeWait caps how long a broadcast waits on one client before that
// client is dropped, so a stalled subscriber cannot block result posting.
const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	// In production, adjust the CheckOrigin function to allow only trusted origins.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// resultFeed holds every client subscribed to the live results stream.
var resultFeed = struct {
	clients map[*websocket.Conn]bool
	mutex   sync.Mutex
}{clients: make(map[*websocket.Conn]bool)}

// ResultFeedHandler upgrades the connection and keeps it subscribed to
// recorded match results until the client disconnects.
func ResultFeedHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed: %v", err)
		return
	}

	resultFeed.mutex.Lock()
	resultFeed.clients[conn] = true
	resultFeed.mutex.Unlock()

	// The feed is write-only; reads just detect disconnects.
	go func() {
		defer removeClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// BroadcastResult pushes a recorded result summary to every subscriber.
func BroadcastResult(summary interface{}) {
	data, err := json.Marshal(summary)
	if err != nil {
		log.Printf("Failed to marshal result broadcast: %v", err)
		return
	}

	resultFeed.mutex.Lock()
	defer resultFeed.mutex.Unlock()

	for conn := range resultFeed.clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(resultFeed.clients, conn)
		}
	}
}

func removeClient(conn *websocket.Conn) {
	resultFeed.mutex.Lock()
	defer resultFeed.mutex.Unlock()
	conn.Close()
	delete(resultFeed.clients, conn)
}
