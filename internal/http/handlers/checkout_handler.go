package handlers

import (
	"github.com/gofiber/fiber/v2"

	"pahnawa/internal/domain"
	applog "pahnawa/internal/log"
	"pahnawa/internal/repos"
	"pahnawa/internal/services"
	"pahnawa/internal/validate"
)

type CheckoutHandler struct {
	Pricing  *services.PricingService
	Checkout *services.CheckoutService
	Verifier *services.PaymentVerifier
	Orders   *repos.OrderRepo
}

type createOrderRequest struct {
	Items           []services.LineInput   `json:"items"`
	DeliveryDetails domain.ShippingDetails `json:"deliveryDetails"`
	CouponCode      string                 `json:"couponCode"`
}

// CreateOrder recomputes the cart total from the live catalog and opens a
// gateway order for it. POST /createOrder
func (h *CheckoutHandler) CreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return failMsg(c, fiber.StatusBadRequest, "malformed request body")
	}
	if len(req.Items) == 0 {
		return failMsg(c, fiber.StatusBadRequest, "empty cart")
	}
	email, ok := validate.Email(req.DeliveryDetails.Email)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "email"})
		return failMsg(c, fiber.StatusBadRequest, "invalid email")
	}
	coupon, ok := validate.CouponCode(req.CouponCode)
	if !ok {
		return failMsg(c, fiber.StatusBadRequest, "invalid coupon code")
	}
	for i := range req.Items {
		if _, ok := validate.ID(req.Items[i].ProductID); !ok {
			return failMsg(c, fiber.StatusBadRequest, "invalid product id")
		}
		req.Items[i].Quantity = validate.Qty(req.Items[i].Quantity)
	}

	q, err := h.Pricing.QuoteCart(c.Context(), req.Items, email, coupon)
	if err != nil {
		applog.Error(c, "order.create.fail", err, nil)
		return fail(c, err)
	}

	applog.Audit(c, "order.create", map[string]any{
		"order_id": q.OrderID,
		"amount":   q.AmountPaise,
		"lines":    len(q.Items),
	})
	return c.JSON(fiber.Map{
		"success":  true,
		"orderId":  q.OrderID,
		"amount":   q.AmountPaise,
		"currency": q.Currency,
		"items":    q.Items,
		"discount": q.DiscountPaise,
	})
}

type orderDetails struct {
	Items           []services.LineInput   `json:"items"`
	ShippingDetails domain.ShippingDetails `json:"shippingDetails"`
	CouponCode      string                 `json:"couponCode"`
}

type verifyPaymentRequest struct {
	RazorpayOrderID   string       `json:"razorpay_order_id"`
	RazorpayPaymentID string       `json:"razorpay_payment_id"`
	RazorpaySignature string       `json:"razorpay_signature"`
	OrderDetails      orderDetails `json:"orderDetails"`
}

// VerifyPayment checks the gateway callback signature, then writes the order
// and its stock decrements in one atomic batch. POST /verifyPayment
func (h *CheckoutHandler) VerifyPayment(c *fiber.Ctx) error {
	var req verifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return failMsg(c, fiber.StatusBadRequest, "malformed request body")
	}
	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" {
		return failMsg(c, fiber.StatusBadRequest, "missing payment identifiers")
	}

	if err := h.Verifier.Verify(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature); err != nil {
		applog.Security(c, "payment.signature.fail", map[string]any{"order_id": req.RazorpayOrderID})
		return fail(c, err)
	}

	shipping, verr := cleanShipping(req.OrderDetails.ShippingDetails)
	if verr != "" {
		return failMsg(c, fiber.StatusBadRequest, verr)
	}

	orderID, err := h.Checkout.PlaceVerified(c.Context(), services.PlaceRequest{
		OrderID:    req.RazorpayOrderID,
		PaymentID:  req.RazorpayPaymentID,
		Items:      req.OrderDetails.Items,
		Shipping:   shipping,
		CouponCode: req.OrderDetails.CouponCode,
	})
	if err != nil {
		applog.Error(c, "payment.verify.fail", err, map[string]any{"order_id": req.RazorpayOrderID})
		return fail(c, err)
	}

	applog.Audit(c, "order.paid", map[string]any{"order_id": orderID})
	return c.JSON(fiber.Map{"success": true, "orderId": orderID})
}

type codOrderRequest struct {
	Items           []services.LineInput   `json:"items"`
	DeliveryDetails domain.ShippingDetails `json:"deliveryDetails"`
	CouponCode      string                 `json:"couponCode"`
}

// PlaceCOD writes a cash-on-delivery order through the same atomic order
// writer, with the COD handling fee applied. POST /placeCodOrder
func (h *CheckoutHandler) PlaceCOD(c *fiber.Ctx) error {
	var req codOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return failMsg(c, fiber.StatusBadRequest, "malformed request body")
	}
	if len(req.Items) == 0 {
		return failMsg(c, fiber.StatusBadRequest, "empty cart")
	}
	shipping, verr := cleanShipping(req.DeliveryDetails)
	if verr != "" {
		return failMsg(c, fiber.StatusBadRequest, verr)
	}
	for i := range req.Items {
		if _, ok := validate.ID(req.Items[i].ProductID); !ok {
			return failMsg(c, fiber.StatusBadRequest, "invalid product id")
		}
		req.Items[i].Quantity = validate.Qty(req.Items[i].Quantity)
	}

	orderID, err := h.Checkout.PlaceCOD(c.Context(), services.PlaceRequest{
		Items:      req.Items,
		Shipping:   shipping,
		CouponCode: req.CouponCode,
	})
	if err != nil {
		applog.Error(c, "order.cod.fail", err, nil)
		return fail(c, err)
	}

	applog.Audit(c, "order.cod", map[string]any{"order_id": orderID})
	return c.JSON(fiber.Map{"success": true, "orderId": orderID})
}

func cleanShipping(in domain.ShippingDetails) (domain.ShippingDetails, string) {
	email, ok := validate.Email(in.Email)
	if !ok {
		return in, "invalid email"
	}
	first, ok := validate.Name(in.FirstName)
	if !ok {
		return in, "invalid first name"
	}
	pincode, ok := validate.Pincode(in.Pincode)
	if !ok {
		return in, "invalid pincode"
	}
	phone, ok := validate.Phone(in.Phone)
	if !ok {
		return in, "invalid phone number"
	}
	in.Email, in.FirstName, in.Pincode, in.Phone = email, first, pincode, phone
	return in, ""
}
