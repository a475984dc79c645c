package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"

	"pahnawa/internal/domain"
	"pahnawa/internal/metrics"
	"pahnawa/internal/repos"
)

const (
	freeShippingAbovePaise = 49900 // subtotal over Rs.499 ships free
	shippingFeePaise       = 9900
	codFeePaise            = 4900

	// Bounded retries for the optimistic stock decrement before the
	// conflict surfaces as insufficient stock.
	stockRetries = 3
)

func shippingFor(subtotal int64) int64 {
	if subtotal > freeShippingAbovePaise {
		return 0
	}
	return shippingFeePaise
}

// Notifier receives the id of every committed order. The dispatcher behind
// it is fire-and-forget.
type Notifier interface {
	Enqueue(orderID string)
}

// PlaceRequest is a verified order ready to be written. Item prices are
// recomputed from the catalog inside the write transaction; nothing
// client-priced survives into the order record.
type PlaceRequest struct {
	OrderID       string // gateway order handle; empty for COD
	PaymentID     string
	Items         []LineInput
	Shipping      domain.ShippingDetails
	CouponCode    string
	PaymentMethod string // ONLINE | COD
}

// CheckoutService is the order writer: one transaction creates the order
// record, its line-item snapshots, and the stock decrements, all or nothing.
type CheckoutService struct {
	DB       *sqlx.DB
	Products *repos.ProductRepo
	Orders   *repos.OrderRepo
	Pricing  *PricingService
	Notify   Notifier
}

func NewCheckoutService(db *sqlx.DB, products *repos.ProductRepo, orders *repos.OrderRepo, pricing *PricingService, notify Notifier) *CheckoutService {
	return &CheckoutService{DB: db, Products: products, Orders: orders, Pricing: pricing, Notify: notify}
}

// PlaceVerified persists an online order after its payment signature has
// been verified. The order row is keyed by the gateway order handle, so a
// replayed callback finds the existing row and returns it instead of
// writing a duplicate and double-decrementing stock.
func (s *CheckoutService) PlaceVerified(ctx context.Context, req PlaceRequest) (string, error) {
	if req.OrderID == "" {
		return "", errors.New("missing gateway order id")
	}
	req.PaymentMethod = "ONLINE"
	return s.place(ctx, req)
}

// PlaceCOD persists a cash-on-delivery order. No gateway handle exists, so
// the id is generated here.
func (s *CheckoutService) PlaceCOD(ctx context.Context, req PlaceRequest) (string, error) {
	req.OrderID = uuid.NewString()
	req.PaymentID = ""
	req.PaymentMethod = "COD"
	return s.place(ctx, req)
}

func (s *CheckoutService) place(ctx context.Context, req PlaceRequest) (string, error) {
	ctx, span := tracer.Start(ctx, "checkout.place")
	defer span.End()
	span.SetAttributes(
		attribute.String("order.id", req.OrderID),
		attribute.String("order.method", req.PaymentMethod),
	)

	start := time.Now()
	defer func() { metrics.CheckoutDuration.Observe(time.Since(start).Seconds()) }()

	// Replay?
	if exists, err := s.Orders.Exists(ctx, req.OrderID); err != nil {
		return "", err
	} else if exists {
		return req.OrderID, nil
	}

	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrWriteFailure, err)
	}
	defer func() { _ = tx.Rollback() }()

	items, subtotal, err := s.priceAndDecrement(ctx, tx, req.Items)
	if err != nil {
		return "", err
	}

	discount, coupon, err := s.Pricing.DiscountForUpdate(ctx, tx, req.CouponCode, subtotal)
	if err != nil {
		return "", err
	}

	shipping := shippingFor(subtotal)
	var codFee int64
	paymentStatus, status := "Paid", "Paid"
	if req.PaymentMethod == "COD" {
		codFee = codFeePaise
		paymentStatus, status = "Pending", "Pending"
	}

	order := domain.Order{
		ID:            req.OrderID,
		PaymentID:     req.PaymentID,
		SubtotalPaise: subtotal,
		ShippingPaise: shipping,
		CODFeePaise:   codFee,
		DiscountPaise: discount,
		TotalPaise:    subtotal + shipping + codFee - discount,
		CouponCode:    coupon,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: paymentStatus,
		Status:        status,
		Shipping:      req.Shipping,
	}

	if err := s.Orders.InsertHeader(ctx, tx, order); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// A concurrent delivery of the same callback won the insert
			// between the replay check and here. Drop our work and return
			// the committed order.
			_ = tx.Rollback()
			return req.OrderID, nil
		}
		return "", fmt.Errorf("%w: %v", domain.ErrWriteFailure, err)
	}
	for _, it := range items {
		it.OrderID = req.OrderID
		if err := s.Orders.InsertItem(ctx, tx, it); err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrWriteFailure, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrWriteFailure, err)
	}

	metrics.OrdersPlaced.WithLabelValues(req.PaymentMethod).Inc()
	if s.Notify != nil {
		s.Notify.Enqueue(req.OrderID)
	}
	return req.OrderID, nil
}

// priceAndDecrement re-reads each product inside the transaction, computes
// the write-time unit price, and applies the optimistic stock decrement:
// the UPDATE is conditional on the version read, and a lost race re-reads
// and retries a bounded number of times before surfacing insufficient stock.
func (s *CheckoutService) priceAndDecrement(ctx context.Context, tx *sqlx.Tx, items []LineInput) ([]domain.OrderItem, int64, error) {
	if len(items) == 0 {
		return nil, 0, errors.New("empty cart")
	}

	addons, err := s.Products.OptionsForUpdate(ctx, tx)
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
		qty := in.Quantity
		if qty < 1 {
			qty = 1
		}

		var p domain.Product
		decremented := false
		for attempt := 0; attempt < stockRetries; attempt++ {
			p, err = s.Products.GetForUpdate(ctx, tx, in.ProductID)
			if errors.Is(err, sql.ErrNoRows) {
				return nil, 0, &domain.UnavailableError{Name: in.ProductID}
			}
			if err != nil {
				return nil, 0, err
			}
			if !p.Active {
				return nil, 0, &domain.UnavailableError{Name: p.Name}
			}
			if p.Stock < qty {
				return nil, 0, &domain.StockError{Name: p.Name, Have: p.Stock}
			}

			err = s.Products.DecrementStock(ctx, tx, p.ID, qty, p.Version)
			if err == nil {
				decremented = true
				break
			}
			if !errors.Is(err, sql.ErrNoRows) {
				return nil, 0, err
			}
			// Version moved under us; re-read and retry.
			metrics.StockConflicts.Inc()
		}
		if !decremented {
			return nil, 0, &domain.StockError{Name: p.Name, Have: p.Stock}
		}

		unit := p.PricePaise
		for _, code := range in.SelectedOptions {
			unit += surcharge[code]
		}
		subtotal += unit * int64(qty)

		out = append(out, domain.OrderItem{
			ProductID:      p.ID,
			Name:           p.Name,
			UnitPricePaise: unit,
			Quantity:       qty,
			OptionsJSON:    optionsJSON(in.SelectedOptions),
			ImageURL:       p.FeaturedImg,
		})
	}
	return out, subtotal, nil
}

func optionsJSON(codes []string) string {
	if len(codes) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(codes)
	return string(b)
}
