package handler

import (
	"digraph-be/internal/pkg/logger"
	"digraph-be/internal/pkg/serverutils"
	internalWS "digraph-be/internal/websocket"
	"digraph-be/pkg/flash"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// FlashHandler serves the alerts produced by mutations and background jobs:
// live over a websocket, or by polling for clients without one.
type FlashHandler struct {
	queue     *flash.Queue
	messenger flash.Messenger
	hub       *internalWS.Hub
	jwtSecret string
	logger    logger.ILogger
}

func NewFlashHandler(queue *flash.Queue, messenger flash.Messenger, hub *internalWS.Hub, jwtSecret string, log logger.ILogger) *FlashHandler {
	return &FlashHandler{
		queue:     queue,
		messenger: messenger,
		hub:       hub,
		jwtSecret: jwtSecret,
		logger:    log,
	}
}

// ServeWs upgrades the connection. Browsers cannot set headers on the
// handshake so the token may also come as ?token=.
func (h *FlashHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := serverutils.BearerToken(c)
	if tokenStr == "" {
		return serverutils.Unauthorized("Missing token (Query 'token' or Header 'Authorization')")
	}

	userID, err := serverutils.ParseToken(h.jwtSecret, tokenStr)
	if err != nil {
		h.logger.Warn("FlashHandler", "Invalid Token in WS Handshake", map[string]interface{}{"error": err.Error()})
		return err
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("FlashHandler", "Starting WebSocket session", map[string]interface{}{"user_id": userID})
		internalWS.ServeWs(h.hub, conn, userID, h.queue.Take(userID))
		h.logger.Info("FlashHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID})
	})(c)
}

// Take returns and clears the queued alerts of the user
func (h *FlashHandler) Take(c *fiber.Ctx) error {
	userID, err := serverutils.UserID(c)
	if err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse("Success get alerts", h.queue.Take(userID)))
}

// Dismiss withdraws an alert from the queue and from every open tab
func (h *FlashHandler) Dismiss(c *fiber.Ctx) error {
	userID, err := serverutils.UserID(c)
	if err != nil {
		return err
	}
	alertID := c.Params("id")
	if alertID == "" {
		return serverutils.BadRequest("Invalid ID")
	}
	h.messenger.RemoveMessage(userID, alertID)
	return c.JSON(serverutils.SuccessResponse[any]("Alert dismissed", nil))
}

func (h *FlashHandler) RegisterRoutes(router fiber.Router) {
	fl := router.Group("/flash")
	fl.Get("/ws", h.ServeWs)

	v1 := fl.Group("/v1")
	v1.Use(serverutils.JwtMiddleware(h.jwtSecret))
	v1.Get("", h.Take)
	v1.Delete(":id", h.Dismiss)
}
