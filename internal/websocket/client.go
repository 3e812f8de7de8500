package websocket

import (
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10

	// tabs only send dismiss frames
	maxFrameSize = 512
	sendBuffer   = 256
)

// conn is the part of *websocket.Conn the pumps need
type conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(kind int, data []byte) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

// Client is one open tab of a user
type Client struct {
	Hub    *Hub
	Conn   conn
	UserID uuid.UUID

	// Outbound frames. Closed by the hub only.
	Send chan []byte
}

func newClient(hub *Hub, c conn, userID uuid.UUID) *Client {
	return &Client{Hub: hub, Conn: c, UserID: userID, Send: make(chan []byte, sendBuffer)}
}

func (c *Client) leave() {
	select {
	case c.Hub.unregister <- c:
	case <-c.Hub.done:
	}
}

// readPump hands dismiss frames to the hub until the tab goes away
func (c *Client) readPump() {
	defer func() {
		c.leave()
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxFrameSize)
	extend := func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	}
	extend("")
	c.Conn.SetPongHandler(extend)

	for {
		kind, frame, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("Client", "Unexpected close", map[string]interface{}{
					"user_id": c.UserID,
					"error":   err.Error(),
				})
			}
			return
		}
		if kind == websocket.TextMessage {
			c.Hub.handleClientMessage(c.UserID, frame)
		}
	}
}

func (c *Client) write(kind int, data []byte) error {
	if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.Conn.WriteMessage(kind, data)
}

// writePump sends one text message per hub frame and pings between them
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.Send:
			if !ok {
				c.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.write(websocket.TextMessage, frame); err != nil {
				c.Hub.logger.Debug("Client", "Write failed", map[string]interface{}{"user_id": c.UserID, "error": err.Error()})
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				c.Hub.logger.Debug("Client", "Ping failed", map[string]interface{}{"user_id": c.UserID})
				return
			}
		}
	}
}
