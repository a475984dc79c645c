package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "pahnawa/internal/log"
	"pahnawa/internal/services"
	"pahnawa/internal/validate"
)

type FavoriteHandler struct {
	Favorites *services.FavoriteService
}

type favoriteRequest struct {
	ItemID   string `json:"itemId"`
	ItemKind string `json:"itemKind"`
}

func (h *FavoriteHandler) parse(c *fiber.Ctx) (string, string, error) {
	var req favoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return "", "", failMsg(c, fiber.StatusBadRequest, "invalid request body")
	}
	itemID, ok := validate.ID(req.ItemID)
	if !ok {
		return "", "", failMsg(c, fiber.StatusBadRequest, "invalid item id")
	}
	kind, ok := validate.ItemKind(req.ItemKind)
	if !ok {
		return "", "", failMsg(c, fiber.StatusBadRequest, "invalid item kind")
	}
	return itemID, kind, nil
}

// Save adds an item to the caller's favorites. POST /api/v1/favorites
func (h *FavoriteHandler) Save(c *fiber.Ctx) error {
	claims := CurrentUser(c)
	itemID, kind, err := h.parse(c)
	if err != nil {
		return err
	}
	if err := h.Favorites.Save(c.Context(), claims.UserID, itemID, kind); err != nil {
		applog.Error(c, "favorites.save.fail", err, map[string]any{"item_id": itemID})
		return failMsg(c, fiber.StatusInternalServerError, "could not save favorite")
	}
	return c.JSON(fiber.Map{"success": true})
}

// Remove drops an item from the caller's favorites. DELETE /api/v1/favorites
func (h *FavoriteHandler) Remove(c *fiber.Ctx) error {
	claims := CurrentUser(c)
	itemID, kind, err := h.parse(c)
	if err != nil {
		return err
	}
	if err := h.Favorites.Unsave(c.Context(), claims.UserID, itemID, kind); err != nil {
		applog.Error(c, "favorites.remove.fail", err, map[string]any{"item_id": itemID})
		return failMsg(c, fiber.StatusInternalServerError, "could not remove favorite")
	}
	return c.JSON(fiber.Map{"success": true})
}

// List returns the caller's favorites. GET /api/v1/favorites
func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	claims := CurrentUser(c)
	out, err := h.Favorites.List(c.Context(), claims.UserID)
	if err != nil {
		applog.Error(c, "favorites.list.fail", err, nil)
		return failMsg(c, fiber.StatusInternalServerError, "could not load favorites")
	}
	return c.JSON(fiber.Map{"success": true, "favorites": out})
}
