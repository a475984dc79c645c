package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"pahnawa/internal/domain"
	applog "pahnawa/internal/log"
	"pahnawa/internal/services"
)

type PreviewHandler struct {
	Preview *services.PreviewService
}

// ServeProduct returns the entry document with product meta tags swapped in,
// for social link unfurlers. GET /serveProduct/:productId (the id may also
// arrive as the last path segment). A miss redirects to the site root.
func (h *PreviewHandler) ServeProduct(c *fiber.Ctx) error {
	productID := c.Params("productId")
	if productID == "" {
		// Path-suffix form: /serveProduct/anything/<id>
		parts := strings.Split(strings.TrimRight(c.Path(), "/"), "/")
		productID = parts[len(parts)-1]
	}
	if productID == "" || productID == "serveProduct" {
		return c.Redirect("/")
	}

	doc, err := h.Preview.Render(c.Context(), productID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			applog.Error(c, "preview.render.fail", err, map[string]any{"product_id": productID})
		}
		return c.Redirect("/")
	}

	c.Set(fiber.HeaderCacheControl, "public, max-age=300, s-maxage=600")
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(doc)
}
