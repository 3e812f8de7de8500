package handler

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"digraph-be/internal/pkg/logger"
	"digraph-be/internal/pkg/serverutils"
	internalWS "digraph-be/internal/websocket"
	"digraph-be/pkg/flash"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func token(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID.String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func TestFlashHandler(t *testing.T) {
	user := uuid.New()
	queue := flash.NewQueue(time.Minute, 10)
	hub := internalWS.NewHub(nil, logger.NewNopLogger())
	h := NewFlashHandler(queue, flash.Fanout{queue, hub}, hub, testSecret, logger.NewNopLogger())

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	h.RegisterRoutes(app.Group("/api"))

	keep := flash.Success("keep me")
	drop := flash.Warn("drop me")
	queue.AddMessage(user, keep)
	queue.AddMessage(user, drop)

	req := httptest.NewRequest("DELETE", "/api/flash/v1/"+drop.Id, nil)
	req.Header.Set("Authorization", "Bearer "+token(t, user))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	req = httptest.NewRequest("GET", "/api/flash/v1", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, user))
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body serverutils.BaseResponse[[]flash.Alert]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []flash.Alert{keep}, body.Data)
	assert.Empty(t, queue.Pending(user))
}

func TestFlashHandler_ServeWsRejectsBadTokens(t *testing.T) {
	hub := internalWS.NewHub(nil, logger.NewNopLogger())
	queue := flash.NewQueue(time.Minute, 10)
	h := NewFlashHandler(queue, queue, hub, testSecret, logger.NewNopLogger())

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	h.RegisterRoutes(app.Group("/api"))

	tests := []struct {
		name     string
		target   string
		wantCode int
	}{
		{name: "missing", target: "/api/flash/ws", wantCode: 401},
		{name: "invalid", target: "/api/flash/ws?token=garbage", wantCode: 401},
		{name: "valid but not an upgrade", target: "/api/flash/ws?token=" + token(t, uuid.New()), wantCode: 426},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.target, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, resp.StatusCode)
		})
	}
}
