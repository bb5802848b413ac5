// Package middleware provides HTTP middleware components for the gateway.
package middleware

import (
	"strings"

	"konnadex/internal/logger"
	"konnadex/internal/models"
	"konnadex/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by AuthMiddleware
const (
	LocalClaims = "claims"
	LocalCaller = "caller"
)

// AuthMiddleware validates bearer tokens and records the calling account.
type AuthMiddleware struct {
	secret string
	log    logger.Logger
}

func NewAuthMiddleware(secret string, log logger.Logger) *AuthMiddleware {
	if log == nil {
		log = logger.NoopLogger{}
	}
	return &AuthMiddleware{secret: secret, log: log}
}

// Handler validates the JWT in the Authorization header and stores the
// caller's account id in the request context.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
	}

	claims, err := utils.ParseToken(strings.TrimPrefix(authHeader, "Bearer "), m.secret)
	if err != nil {
		m.log.Debug("token rejected", map[string]any{"path": c.Path(), "error": err.Error()})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
	}

	c.Locals(LocalClaims, claims)
	c.Locals(LocalCaller, claims.AccountID)

	return c.Next()
}

// Caller returns the authenticated account id, or "" outside AuthMiddleware.
func Caller(c *fiber.Ctx) string {
	caller, _ := c.Locals(LocalCaller).(string)
	return caller
}

// Claims returns the validated token claims, if any.
func Claims(c *fiber.Ctx) (*models.CallerClaims, bool) {
	claims, ok := c.Locals(LocalClaims).(*models.CallerClaims)
	return claims, ok
}
