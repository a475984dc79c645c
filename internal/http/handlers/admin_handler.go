package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pahnawa/internal/domain"
	applog "pahnawa/internal/log"
	"pahnawa/internal/repos"
	"pahnawa/internal/services"
	"pahnawa/internal/validate"
)

// AdminHandler groups the dashboard endpoints: product management,
// order review and content editing. All routes behind RequireAdmin.
type AdminHandler struct {
	Products *repos.ProductRepo
	Orders   *repos.OrderRepo
	Coupons  *repos.CouponRepo
	Content  *repos.ContentRepo
	Catalog  *services.CatalogService
}

type productRequest struct {
	CategoryID  string `json:"categoryId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PricePaise  int64  `json:"price"`
	Stock       int    `json:"stock"`
	FeaturedImg string `json:"featuredImageUrl"`
	Active      *bool  `json:"active"`
}

func (r *productRequest) valid() (string, bool) {
	if strings.TrimSpace(r.Name) == "" {
		return "product name required", false
	}
	if r.PricePaise <= 0 {
		return "price must be positive", false
	}
	if r.Stock < 0 {
		return "stock cannot be negative", false
	}
	return "", true
}

// CreateProduct handles POST /api/v1/admin/products.
func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return failMsg(c, fiber.StatusBadRequest, "invalid request body")
	}
	if msg, ok := req.valid(); !ok {
		return failMsg(c, fiber.StatusBadRequest, msg)
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	p := domain.Product{
		ID:          uuid.NewString(),
		CategoryID:  req.CategoryID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		PricePaise:  req.PricePaise,
		Stock:       req.Stock,
		FeaturedImg: req.FeaturedImg,
		Active:      active,
	}
	if err := h.Products.Create(c.Context(), p); err != nil {
		applog.Error(c, "admin.product.create.fail", err, nil)
		return failMsg(c, fiber.StatusInternalServerError, "could not create product")
	}
	h.Catalog.InvalidateListing()
	applog.Audit(c, "admin.product.create", map[string]any{"product_id": p.ID, "name": p.Name})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "id": p.ID})
}

// UpdateProduct handles PUT /api/v1/admin/products/:id.
func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return failMsg(c, fiber.StatusBadRequest, "invalid product id")
	}
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return failMsg(c, fiber.StatusBadRequest, "invalid request body")
	}
	if msg, ok := req.valid(); !ok {
		return failMsg(c, fiber.StatusBadRequest, msg)
	}
	existing, err := h.Products.Get(c.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		return failMsg(c, fiber.StatusNotFound, "product not found")
	}
	if err != nil {
		applog.Error(c, "admin.product.update.fail", err, map[string]any{"product_id": id})
		return failMsg(c, fiber.StatusInternalServerError, "could not update product")
	}
	existing.CategoryID = req.CategoryID
	existing.Name = strings.TrimSpace(req.Name)
	existing.Description = req.Description
	existing.PricePaise = req.PricePaise
	existing.FeaturedImg = req.FeaturedImg
	if req.Active != nil {
		existing.Active = *req.Active
	}
	if err := h.Products.Update(c.Context(), existing); err != nil {
		applog.Error(c, "admin.product.update.fail", err, map[string]any{"product_id": id})
		return failMsg(c, fiber.StatusInternalServerError, "could not update product")
	}
	h.Catalog.InvalidateListing()
	applog.Audit(c, "admin.product.update", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"success": true})
}

type stockRequest struct {
	Stock int `json:"stock"`
}

// SetStock handles PUT /api/v1/admin/products/:id/stock. The manual
// override bumps the version so in-flight checkouts retry against the
// corrected count.
func (h *AdminHandler) SetStock(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return failMsg(c, fiber.StatusBadRequest, "invalid product id")
	}
	var req stockRequest
	if err := c.BodyParser(&req); err != nil {
		return failMsg(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Stock < 0 {
		return failMsg(c, fiber.StatusBadRequest, "stock cannot be negative")
	}
	if err := h.Products.SetStock(c.Context(), id, req.Stock); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return failMsg(c, fiber.StatusNotFound, "product not found")
		}
		applog.Error(c, "admin.stock.set.fail", err, map[string]any{"product_id": id})
		return failMsg(c, fiber.StatusInternalServerError, "could not update stock")
	}
	h.Catalog.InvalidateListing()
	applog.Audit(c, "admin.stock.set", map[string]any{"product_id": id, "stock": req.Stock})
	return c.JSON(fiber.Map{"success": true})
}

// DeleteProduct handles DELETE /api/v1/admin/products/:id. Soft delete,
// the row stays for order history.
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return failMsg(c, fiber.StatusBadRequest, "invalid product id")
	}
	if err := h.Products.Delete(c.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return failMsg(c, fiber.StatusNotFound, "product not found")
		}
		applog.Error(c, "admin.product.delete.fail", err, map[string]any{"product_id": id})
		return failMsg(c, fiber.StatusInternalServerError, "could not delete product")
	}
	h.Catalog.InvalidateListing()
	applog.Audit(c, "admin.product.delete", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"success": true})
}

// ListOrders handles GET /api/v1/admin/orders.
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	out, err := h.Orders.ListLatest(c.Context(), limit)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return failMsg(c, fiber.StatusInternalServerError, "could not load orders")
	}
	return c.JSON(fiber.Map{"success": true, "orders": out})
}

// GetOrder handles GET /api/v1/admin/orders/:id.
func (h *AdminHandler) GetOrder(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return failMsg(c, fiber.StatusBadRequest, "invalid order id")
	}
	o, err := h.Orders.Get(c.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		return failMsg(c, fiber.StatusNotFound, "order not found")
	}
	if err != nil {
		applog.Error(c, "admin.order.get.fail", err, map[string]any{"order_id": id})
		return failMsg(c, fiber.StatusInternalServerError, "could not load order")
	}
	return c.JSON(fiber.Map{"success": true, "order": o})
}

var orderStatuses = map[string]bool{
	"Pending": true, "Paid": true, "Shipped": true, "Delivered": true, "Cancelled": true,
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus handles PUT /api/v1/admin/orders/:id/status.
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return failMsg(c, fiber.StatusBadRequest, "invalid order id")
	}
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return failMsg(c, fiber.StatusBadRequest, "invalid request body")
	}
	if !orderStatuses[req.Status] {
		return failMsg(c, fiber.StatusBadRequest, "unknown order status")
	}
	if err := h.Orders.UpdateStatus(c.Context(), id, req.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return failMsg(c, fiber.StatusNotFound, "order not found")
		}
		applog.Error(c, "admin.order.status.fail", err, map[string]any{"order_id": id})
		return failMsg(c, fiber.StatusInternalServerError, "could not update order")
	}
	applog.Audit(c, "admin.order.status", map[string]any{"order_id": id, "status": req.Status})
	return c.JSON(fiber.Map{"success": true})
}

// UpsertCoupon handles PUT /api/v1/admin/coupons/:code.
func (h *AdminHandler) UpsertCoupon(c *fiber.Ctx) error {
	code, ok := validate.CouponCode(c.Params("code"))
	if !ok || code == "" {
		return failMsg(c, fiber.StatusBadRequest, "invalid coupon code")
	}
	var cp domain.Coupon
	if err := c.BodyParser(&cp); err != nil {
		return failMsg(c, fiber.StatusBadRequest, "invalid request body")
	}
	cp.Code = code
	if cp.Kind != "percent" && cp.Kind != "flat" {
		return failMsg(c, fiber.StatusBadRequest, "coupon kind must be percent or flat")
	}
	if cp.Value <= 0 || (cp.Kind == "percent" && cp.Value > 100) {
		return failMsg(c, fiber.StatusBadRequest, "invalid coupon value")
	}
	if err := h.Coupons.Upsert(c.Context(), cp); err != nil {
		applog.Error(c, "admin.coupon.upsert.fail", err, map[string]any{"code": code})
		return failMsg(c, fiber.StatusInternalServerError, "could not save coupon")
	}
	applog.Audit(c, "admin.coupon.upsert", map[string]any{"code": code, "kind": cp.Kind, "value": cp.Value})
	return c.JSON(fiber.Map{"success": true})
}

type storefrontRequest struct {
	Body json.RawMessage `json:"body"`
}

// SetStorefront handles PUT /api/v1/admin/storefront/:key.
func (h *AdminHandler) SetStorefront(c *fiber.Ctx) error {
	key := c.Params("key")
	if !storefrontKeys[key] {
		return failMsg(c, fiber.StatusBadRequest, "unknown storefront document")
	}
	var req storefrontRequest
	if err := c.BodyParser(&req); err != nil || len(req.Body) == 0 {
		return failMsg(c, fiber.StatusBadRequest, "invalid request body")
	}
	if !json.Valid(req.Body) {
		return failMsg(c, fiber.StatusBadRequest, "body must be valid JSON")
	}
	if err := h.Content.SetStorefront(c.Context(), key, string(req.Body)); err != nil {
		applog.Error(c, "admin.storefront.set.fail", err, map[string]any{"key": key})
		return failMsg(c, fiber.StatusInternalServerError, "could not save content")
	}
	applog.Audit(c, "admin.storefront.set", map[string]any{"key": key})
	return c.JSON(fiber.Map{"success": true})
}
