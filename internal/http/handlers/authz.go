package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "pahnawa/internal/log"
	"pahnawa/internal/services"
)

const claimsKey = "authClaims"

// CurrentUser returns the verified token claims for the request, or nil
// when the request was not authenticated.
func CurrentUser(c *fiber.Ctx) *services.Claims {
	claims, _ := c.Locals(claimsKey).(*services.Claims)
	return claims
}

// RequireUser rejects requests without a valid bearer token.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return failMsg(c, fiber.StatusUnauthorized, "authentication required")
		}
		claims, err := auth.Parse(token)
		if err != nil {
			applog.Security(c, "auth.token.invalid", map[string]any{"reason": err.Error()})
			return failMsg(c, fiber.StatusUnauthorized, "invalid token")
		}
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// RequireAdmin rejects requests whose token does not carry the admin role.
// Must run after RequireUser.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := CurrentUser(c)
		if claims == nil {
			return failMsg(c, fiber.StatusUnauthorized, "authentication required")
		}
		if claims.Role != "ADMIN" {
			applog.Security(c, "auth.admin.denied", map[string]any{"user_id": claims.UserID, "role": claims.Role})
			return failMsg(c, fiber.StatusForbidden, "admin access required")
		}
		return c.Next()
	}
}
