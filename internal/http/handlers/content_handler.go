package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "pahnawa/internal/log"
	"pahnawa/internal/repos"
	"pahnawa/internal/validate"
)

// ContentHandler serves the CMS-style collections: storefront documents,
// cities, categories, spots and ambassadors.
type ContentHandler struct {
	Content *repos.ContentRepo
}

var storefrontKeys = map[string]bool{"home_content": true, "navigation": true}

// Storefront serves one storefront document. GET /api/v1/storefront/:key
func (h *ContentHandler) Storefront(c *fiber.Ctx) error {
	key := c.Params("key")
	if !storefrontKeys[key] {
		return failMsg(c, fiber.StatusNotFound, "unknown storefront document")
	}
	doc, err := h.Content.Storefront(c.Context(), key)
	if errors.Is(err, sql.ErrNoRows) {
		return failMsg(c, fiber.StatusNotFound, "storefront document missing")
	}
	if err != nil {
		applog.Error(c, "content.storefront.fail", err, map[string]any{"key": key})
		return failMsg(c, fiber.StatusInternalServerError, "could not load content")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.SendString(`{"success":true,"key":"` + doc.Key + `","body":` + doc.BodyJSON + `}`)
}

func (h *ContentHandler) Categories(c *fiber.Ctx) error {
	out, err := h.Content.Categories(c.Context())
	if err != nil {
		applog.Error(c, "content.categories.fail", err, nil)
		return failMsg(c, fiber.StatusInternalServerError, "could not load categories")
	}
	return c.JSON(fiber.Map{"success": true, "categories": out})
}

func (h *ContentHandler) Cities(c *fiber.Ctx) error {
	out, err := h.Content.Cities(c.Context())
	if err != nil {
		applog.Error(c, "content.cities.fail", err, nil)
		return failMsg(c, fiber.StatusInternalServerError, "could not load cities")
	}
	return c.JSON(fiber.Map{"success": true, "cities": out})
}

// Spots lists spots, optionally filtered by city. GET /api/v1/spots?city=
func (h *ContentHandler) Spots(c *fiber.Ctx) error {
	cityID := c.Query("city")
	if cityID != "" {
		if _, ok := validate.ID(cityID); !ok {
			return failMsg(c, fiber.StatusBadRequest, "invalid city id")
		}
	}
	out, err := h.Content.SpotsByCity(c.Context(), cityID)
	if err != nil {
		applog.Error(c, "content.spots.fail", err, nil)
		return failMsg(c, fiber.StatusInternalServerError, "could not load spots")
	}
	return c.JSON(fiber.Map{"success": true, "spots": out})
}

func (h *ContentHandler) Spot(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return failMsg(c, fiber.StatusBadRequest, "invalid spot id")
	}
	s, err := h.Content.Spot(c.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		return failMsg(c, fiber.StatusNotFound, "spot not found")
	}
	if err != nil {
		applog.Error(c, "content.spot.fail", err, map[string]any{"spot_id": id})
		return failMsg(c, fiber.StatusInternalServerError, "could not load spot")
	}
	return c.JSON(fiber.Map{"success": true, "spot": s})
}

func (h *ContentHandler) Ambassadors(c *fiber.Ctx) error {
	out, err := h.Content.Ambassadors(c.Context())
	if err != nil {
		applog.Error(c, "content.ambassadors.fail", err, nil)
		return failMsg(c, fiber.StatusInternalServerError, "could not load ambassadors")
	}
	return c.JSON(fiber.Map{"success": true, "ambassadors": out})
}
