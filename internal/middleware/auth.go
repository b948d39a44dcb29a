package middleware

import (
	"context"
	"strconv"
	"strings"

	"ripple/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// AuthRequired is a middleware that enforces authentication for protected routes.
func AuthRequired(c *fiber.Ctx) error {
	userID, ok := parseBearerToken(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or missing authorization token",
		})
	}

	setUserIdentity(c, userID)
	return c.Next()
}

// AuthOptional resolves the user identity when a valid token is present but
// never rejects the request. Anonymous callers proceed with no identity.
func AuthOptional(c *fiber.Ctx) error {
	if userID, ok := parseBearerToken(c); ok {
		setUserIdentity(c, userID)
	}
	return c.Next()
}

// setUserIdentity stores the user ID in Fiber locals and syncs it into the
// request context so the context-aware logger picks it up downstream.
func setUserIdentity(c *fiber.Ctx, userID uint) {
	c.Locals("userID", userID)
	c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, userID))
}

// parseBearerToken validates the Authorization header and extracts the user
// ID from the "sub" claim (subject claim per RFC 7519).
func parseBearerToken(c *fiber.Ctx) (uint, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}

	subStr, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}

	userID, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return 0, false
	}

	return uint(userID), true
}
