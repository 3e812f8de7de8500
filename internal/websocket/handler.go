package websocket

import (
	"digraph-be/pkg/flash"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs attaches an upgraded connection to the hub and blocks until it
// closes. Alerts still queued for the user are pushed first.
func ServeWs(hub *Hub, c *websocket.Conn, userID uuid.UUID, pending []flash.Alert) {
	client := newClient(hub, c, userID)

	select {
	case hub.register <- client:
	case <-hub.done:
		c.Close()
		return
	}
	hub.replay(client, pending)

	go client.writePump()
	client.readPump()
}
