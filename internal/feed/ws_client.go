package feed

import (
	"encoding/json"
	"log"
	"time"

	"govlens/backend/internal/models"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// WebSocketClient implements the feed.Client interface over a gorilla
// WebSocket connection. The feed is one-way: subscribers only receive.
type WebSocketClient struct {
	ID   string
	Conn *websocket.Conn
	Hub  *Hub
	Send chan models.StatusUpdate
}

func (c *WebSocketClient) GetID() string                              { return c.ID }
func (c *WebSocketClient) GetSendChannel() chan<- models.StatusUpdate { return c.Send }

// Run starts the pumps for the WebSocket connection.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close closes the Send channel, which stops the writePump.
func (c *WebSocketClient) Close() {
	close(c.Send)
}

// readPump discards inbound frames; its job is keeping pong deadlines honored
// and unregistering the client once the connection drops.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message: %v", err)
			}
			break
		}
	}
}

// writePump reads updates from the Send channel and writes them to the
// WebSocket, coalescing queued updates into a single frame.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case update, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			dataToWrite, err := json.Marshal(update)
			if err != nil {
				log.Printf("Error encoding JSON for subscriber %s: %v", c.ID, err)
				continue
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(dataToWrite)

			// Drain anything already queued to cut frame overhead.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				next := <-c.Send
				extraData, _ := json.Marshal(next)
				w.Write(extraData)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
