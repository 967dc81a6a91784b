package controllers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// upgrader configures the WebSocket connection.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is enforced at the HTTP layer
	},
}

// FeedHub pushes newly created restrooms to connected map clients so
// pins appear without polling. Connections are registered on upgrade and
// dropped on the first failed write.
type FeedHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewFeedHub returns an empty hub.
func NewFeedHub() *FeedHub {
	return &FeedHub{conns: make(map[*websocket.Conn]struct{})}
}

// HandleRestroomFeed upgrades the request and holds the connection open
// until the client goes away. Clients only listen; inbound messages are
// discarded.
func (h *FeedHub) HandleRestroomFeed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("FeedHub: websocket upgrade failed")
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.drop(conn)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends one JSON frame to every connected client. Writes are
// serialized under the hub lock; a connection that fails to accept the
// frame is dropped.
func (h *FeedHub) Broadcast(v interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		if err := conn.WriteJSON(v); err != nil {
			logrus.WithError(err).Warn("FeedHub: dropping dead connection")
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

func (h *FeedHub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conn.Close()
	delete(h.conns, conn)
}
