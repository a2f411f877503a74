package handler

import (
	"net/http"

	"govlens/backend/internal/feed"
	"govlens/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten in production!
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the connection and registers the caller as a live
// status-feed subscriber. Any valid session token (citizen or officer) may
// subscribe; the feed is read-only.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
		return
	}
	if _, err := parseToken(tokenString); err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := &feed.WebSocketClient{
		ID:   uuid.New().String(),
		Conn: conn,
		Hub:  h.Hub,
		Send: make(chan models.StatusUpdate, 256),
	}

	h.Hub.RegisterCh <- client
	client.Run()
}
