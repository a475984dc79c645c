package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "pahnawa/internal/log"
	"pahnawa/internal/services"
	"pahnawa/internal/validate"
)

type CouponHandler struct {
	Pricing *services.PricingService
}

// Validate checks a coupon against a subtotal without placing an order.
// GET /api/v1/coupons/:code?subtotal=<paise>
func (h *CouponHandler) Validate(c *fiber.Ctx) error {
	code, ok := validate.CouponCode(c.Params("code"))
	if !ok || code == "" {
		return failMsg(c, fiber.StatusBadRequest, "invalid coupon code")
	}
	subtotal := int64(c.QueryInt("subtotal", 0))
	if subtotal < 0 {
		return failMsg(c, fiber.StatusBadRequest, "invalid subtotal")
	}

	discount, applied, err := h.Pricing.Discount(c.Context(), code, subtotal)
	if err != nil {
		return failMsg(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	applog.Info(c, "coupon.validate", map[string]any{"code": applied, "discount": discount})
	return c.JSON(fiber.Map{"success": true, "code": applied, "discount": discount})
}
