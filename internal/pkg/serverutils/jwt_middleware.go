package serverutils

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ParseToken validates an HS256 token and returns its user_id claim
func ParseToken(secret, tokenStr string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, Unauthorized("Unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, Unauthorized("Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, Unauthorized("Invalid claims")
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, Unauthorized("Token missing user_id")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, Unauthorized("Invalid user ID format in token")
	}
	return userID, nil
}

// BearerToken reads the Authorization header, falling back to ?token= for
// websocket handshakes
func BearerToken(ctx *fiber.Ctx) string {
	if h := ctx.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return h[7:]
	}
	return ctx.Query("token")
}

func JwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := BearerToken(ctx)
		if tokenStr == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
		}

		userID, err := ParseToken(secret, tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, err.Error()))
		}

		ctx.Locals("user_id", userID.String())
		return ctx.Next()
	}
}

// UserID returns the id stored by JwtMiddleware
func UserID(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, Unauthorized("Unauthorized")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, Unauthorized("Invalid user ID")
	}
	return id, nil
}
