package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"pahnawa/internal/domain"
	"pahnawa/internal/gateway"
	"pahnawa/internal/repos"
)

var tracer = otel.Tracer("pahnawa/services")

// LineInput is one client cart line. Prices are never part of it: the
// client's displayed price carries no authority.
type LineInput struct {
	ProductID       string   `json:"id"`
	Quantity        int      `json:"quantity"`
	SelectedOptions []string `json:"selectedOptions"`
}

// Quote is the server-priced reconstruction of a cart plus the gateway
// order handle the client pays against.
type Quote struct {
	OrderID       string
	AmountPaise   int64
	Currency      string
	Items         []domain.OrderItem
	SubtotalPaise int64
	ShippingPaise int64
	DiscountPaise int64
	CouponCode    string
}

type PricingService struct {
	Products *repos.ProductRepo
	Coupons  *repos.CouponRepo
	Gateway  gateway.OrderCreator
}

func NewPricingService(products *repos.ProductRepo, coupons *repos.CouponRepo, gw gateway.OrderCreator) *PricingService {
	return &PricingService{Products: products, Coupons: coupons, Gateway: gw}
}

// QuoteCart recomputes the authoritative total from the live catalog, opens a
// gateway order for it, and returns the handle plus the server-priced item
// list. Any per-item failure aborts the whole calculation; nothing is
// mutated and the caller must not proceed to payment.
func (s *PricingService) QuoteCart(ctx context.Context, items []LineInput, email, couponCode string) (Quote, error) {
	ctx, span := tracer.Start(ctx, "pricing.quote")
	defer span.End()

	priced, subtotal, err := s.PriceItems(ctx, items)
	if err != nil {
		return Quote{}, err
	}

	discount, code, err := s.Discount(ctx, couponCode, subtotal)
	if err != nil {
		return Quote{}, err
	}

	// The gateway amount is the same grand total the order writer records.
	shipping := shippingFor(subtotal)
	amount := subtotal + shipping - discount
	receipt := fmt.Sprintf("receipt_%d", time.Now().UnixMilli())
	orderID, err := s.Gateway.CreateOrder(amount, receipt, email)
	if err != nil {
		return Quote{}, err
	}

	span.SetAttributes(
		attribute.String("order.id", orderID),
		attribute.Int64("order.amount_paise", amount),
		attribute.Int("order.lines", len(priced)),
	)

	return Quote{
		OrderID:       orderID,
		AmountPaise:   amount,
		Currency:      "INR",
		Items:         priced,
		SubtotalPaise: subtotal,
		ShippingPaise: shipping,
		DiscountPaise: discount,
		CouponCode:    code,
	}, nil
}

// PriceItems fetches each product and computes unit prices from the catalog:
// base price plus the surcharge of every selected option present in the
// fixed option table. Unknown option codes carry no surcharge.
func (s *PricingService) PriceItems(ctx context.Context, items []LineInput) ([]domain.OrderItem, int64, error) {
	if len(items) == 0 {
		return nil, 0, errors.New("empty cart")
	}

	addons, err := s.Products.Options(ctx)
	if err != nil {
		return nil, 0, err
	}
	surcharge := make(map[string]int64, len(addons))
	for _, a := range addons {
		surcharge[a.Code] = a.SurchargePaise
	}

	var out []domain.OrderItem
	var subtotal int64
	for _, in := range items {
		p, err := s.Products.Get(ctx, in.ProductID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, &domain.UnavailableError{Name: in.ProductID}
		}
		if err != nil {
			return nil, 0, err
		}
		if !p.Active {
			return nil, 0, &domain.UnavailableError{Name: p.Name}
		}
		if p.Stock < in.Quantity {
			return nil, 0, &domain.StockError{Name: p.Name, Have: p.Stock}
		}

		unit := p.PricePaise
		for _, code := range in.SelectedOptions {
			unit += surcharge[code]
		}
		subtotal += unit * int64(in.Quantity)

		opts, _ := json.Marshal(in.SelectedOptions)
		out = append(out, domain.OrderItem{
			ProductID:      p.ID,
			Name:           p.Name,
			UnitPricePaise: unit,
			Quantity:       in.Quantity,
			OptionsJSON:    string(opts),
			ImageURL:       p.FeaturedImg,
		})
	}
	return out, subtotal, nil
}

// Discount resolves a coupon against a subtotal. An unknown, inactive,
// expired or below-minimum coupon is an error so the client can surface it
// before payment, not after.
func (s *PricingService) Discount(ctx context.Context, code string, subtotal int64) (int64, string, error) {
	if code == "" {
		return 0, "", nil
	}
	c, err := s.Coupons.Get(ctx, code)
	return resolveCoupon(c, err, code, subtotal)
}

// DiscountForUpdate is Discount read through the caller's transaction, for
// the order writer's write-time recomputation.
func (s *PricingService) DiscountForUpdate(ctx context.Context, tx *sqlx.Tx, code string, subtotal int64) (int64, string, error) {
	if code == "" {
		return 0, "", nil
	}
	c, err := s.Coupons.GetForUpdate(ctx, tx, code)
	return resolveCoupon(c, err, code, subtotal)
}

func resolveCoupon(c domain.Coupon, err error, code string, subtotal int64) (int64, string, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return 0, "", fmt.Errorf("coupon %s not found", code)
	}
	if err != nil {
		return 0, "", err
	}
	if !c.Active {
		return 0, "", fmt.Errorf("coupon %s is no longer active", code)
	}
	if c.ExpiresAt != "" {
		if t, perr := time.Parse(time.RFC3339, c.ExpiresAt); perr == nil && time.Now().After(t) {
			return 0, "", fmt.Errorf("coupon %s has expired", code)
		}
	}
	if subtotal < c.MinSubtotalPaise {
		return 0, "", fmt.Errorf("coupon %s needs a minimum subtotal", code)
	}

	var d int64
	switch c.Kind {
	case "percent":
		d = subtotal * c.Value / 100
	case "flat":
		d = c.Value
	}
	if d > subtotal {
		d = subtotal
	}
	return d, c.Code, nil
}
