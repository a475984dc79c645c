package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "pahnawa/internal/log"
	"pahnawa/internal/services"
	"pahnawa/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token. POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return failMsg(c, fiber.StatusBadRequest, "invalid request body")
	}
	email, ok := validate.Email(req.Email)
	if !ok || req.Password == "" {
		return failMsg(c, fiber.StatusBadRequest, "email and password required")
	}

	token, user, err := h.Auth.Login(c.Context(), email, req.Password)
	if errors.Is(err, services.ErrBadCreds) {
		applog.Security(c, "auth.login.denied", map[string]any{"email": email})
		return failMsg(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		applog.Error(c, "auth.login.fail", err, nil)
		return failMsg(c, fiber.StatusInternalServerError, "login failed")
	}

	applog.Audit(c, "auth.login", map[string]any{"user_id": user.ID, "role": user.Role})
	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user":    fiber.Map{"id": user.ID, "name": user.Name, "email": user.Email, "role": user.Role},
	})
}

// Me returns the identity behind the presented token. GET /api/v1/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims := CurrentUser(c)
	if claims == nil {
		return failMsg(c, fiber.StatusUnauthorized, "authentication required")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"user":    fiber.Map{"id": claims.UserID, "name": claims.Name, "role": claims.Role},
	})
}

func bearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
