package handlers

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "pahnawa/internal/log"
	"pahnawa/internal/services"
	"pahnawa/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

// List serves the storefront product listing. GET /api/v1/products
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	category := strings.TrimSpace(c.Query("category"))
	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 24)

	out, err := h.Catalog.ListProducts(c.Context(), category, q, page, pageSize)
	if err != nil {
		applog.Error(c, "catalog.list.fail", err, nil)
		return failMsg(c, fiber.StatusInternalServerError, "could not load products")
	}
	return c.JSON(fiber.Map{"success": true, "products": out})
}

// Detail serves one product. GET /api/v1/products/:id
func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return failMsg(c, fiber.StatusBadRequest, "invalid product id")
	}
	p, err := h.Catalog.GetProduct(c.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		return failMsg(c, fiber.StatusNotFound, "product not found")
	}
	if err != nil {
		applog.Error(c, "catalog.detail.fail", err, map[string]any{"product_id": id})
		return failMsg(c, fiber.StatusInternalServerError, "could not load product")
	}
	return c.JSON(fiber.Map{"success": true, "product": p})
}

// Options serves the fixed option -> surcharge table so the client can show
// add-on prices without hardcoding them. GET /api/v1/options
func (h *CatalogHandler) Options(c *fiber.Ctx) error {
	opts, err := h.Catalog.Options(c.Context())
	if err != nil {
		applog.Error(c, "catalog.options.fail", err, nil)
		return failMsg(c, fiber.StatusInternalServerError, "could not load options")
	}
	return c.JSON(fiber.Map{"success": true, "options": opts})
}
