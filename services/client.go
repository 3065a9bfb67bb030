package services

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/dinarex/exchange-backend/utils/logger"
)

// Client is one live websocket connection for a user.
type Client struct {
	userID uint
	conn   *websocket.Conn
	hub    *Hub
	send   chan []byte
	once   sync.Once
}

func NewClient(userID uint, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		userID: userID,
		conn:   conn,
		hub:    hub,
		send:   make(chan []byte, 32),
	}
}

// closeSend tears down the outbound channel. Must only be called while
// holding the hub mutex, so it can never race a Push sending on it.
func (c *Client) closeSend() {
	c.once.Do(func() {
		close(c.send)
	})
}

// readPump drains incoming frames to keep the connection alive and
// detects disconnects. Clients never send commands on this channel.
func (c *Client) readPump() {
	defer c.hub.remove(c)

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debugf("[ws] user %d disconnected", c.userID)
			} else {
				logger.Debugf("[ws] user %d read error: %v", c.userID, err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Debugf("[ws] user %d write error: %v", c.userID, err)
			return
		}
	}
}
