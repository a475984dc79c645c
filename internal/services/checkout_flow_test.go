package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"pahnawa/internal/domain"
	"pahnawa/internal/repos"
	"pahnawa/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	// One connection: every pooled conn of a :memory: DSN is its own database.
	db.SetMaxOpenConns(1)
	if err := repos.EnsureSchema(db); err != nil {
		t.Fatal(err)
	}
	seed := `
	INSERT INTO products(id,category_id,name,description,price_paise,stock,version,featured_image_url,active)
	  VALUES ('saree-001','sarees','Katan Silk Saree','Handwoven katan silk',50000,10,0,'https://img/saree-001.jpg',1),
	         ('saree-002','sarees','Organza Saree','Light organza',75000,1,0,'https://img/saree-002.jpg',1),
	         ('saree-003','sarees','Retired Saree','No longer sold',60000,5,0,'',0),
	         ('stole-001','stoles','Silk Stole','Small everyday stole',30000,5,0,'',1);
	INSERT INTO option_addons(code,label,surcharge_paise)
	  VALUES ('fall_pico','Fall & Pico',15000),
	         ('blouse_stitching','Blouse Stitching',120000),
	         ('tassels','Tassels',25000);
	INSERT INTO coupons(code,kind,value,min_subtotal_paise,active)
	  VALUES ('FESTIVE10','percent',10,0,1);
	`
	if _, err := db.Exec(seed); err != nil {
		t.Fatal(err)
	}
	return db
}

type fakeGateway struct {
	orderID     string
	amountPaise int64
}

func (f *fakeGateway) CreateOrder(amountPaise int64, receipt, email string) (string, error) {
	f.amountPaise = amountPaise
	return f.orderID, nil
}

type recordingNotifier struct{ ids []string }

func (n *recordingNotifier) Enqueue(orderID string) { n.ids = append(n.ids, orderID) }

func newCheckout(db *sqlx.DB, notify services.Notifier) *services.CheckoutService {
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	pricing := services.NewPricingService(prodRepo, repos.NewCouponRepo(db), &fakeGateway{orderID: "order_unused"})
	return services.NewCheckoutService(db, prodRepo, orderRepo, pricing, notify)
}

func shipping() domain.ShippingDetails {
	return domain.ShippingDetails{
		Email:     "meera@example.com",
		FirstName: "Meera",
		LastName:  "Iyer",
		Address:   "12 Dashashwamedh Rd",
		City:      "Varanasi",
		State:     "UP",
		Pincode:   "221001",
		Phone:     "9876543210",
	}
}

func TestPlaceVerified_WritesOrderAndDecrementsStock(t *testing.T) {
	db := memdb(t)
	notify := &recordingNotifier{}
	svc := newCheckout(db, notify)

	id, err := svc.PlaceVerified(context.Background(), services.PlaceRequest{
		OrderID:   "order_abc123",
		PaymentID: "pay_xyz789",
		Items: []services.LineInput{
			{ProductID: "saree-001", Quantity: 2, SelectedOptions: []string{"fall_pico"}},
		},
		Shipping: shipping(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if id != "order_abc123" {
		t.Fatalf("want gateway handle back, got %q", id)
	}

	var stock int
	if err := db.Get(&stock, `SELECT stock FROM products WHERE id='saree-001'`); err != nil {
		t.Fatal(err)
	}
	if stock != 8 {
		t.Fatalf("want stock 8 after decrement, got %d", stock)
	}

	o, err := repos.NewOrderRepo(db).Get(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	// (50000+15000)*2 = 130000, over the free-shipping threshold
	if o.SubtotalPaise != 130000 || o.ShippingPaise != 0 || o.TotalPaise != 130000 {
		t.Fatalf("bad totals: %+v", o)
	}
	if o.PaymentStatus != "Paid" || o.Status != "Paid" || o.PaymentMethod != "ONLINE" {
		t.Fatalf("bad statuses: %+v", o)
	}
	if len(o.Items) != 1 || o.Items[0].UnitPricePaise != 65000 || o.Items[0].Quantity != 2 {
		t.Fatalf("bad items: %+v", o.Items)
	}
	if o.Shipping.Pincode != "221001" {
		t.Fatalf("shipping details not persisted: %+v", o.Shipping)
	}
	if len(notify.ids) != 1 || notify.ids[0] != id {
		t.Fatalf("notifier not told about order: %v", notify.ids)
	}
}

func TestPlaceVerified_ReplayReturnsExistingOrder(t *testing.T) {
	db := memdb(t)
	svc := newCheckout(db, nil)

	req := services.PlaceRequest{
		OrderID:   "order_replay",
		PaymentID: "pay_1",
		Items:     []services.LineInput{{ProductID: "saree-001", Quantity: 3}},
		Shipping:  shipping(),
	}
	if _, err := svc.PlaceVerified(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	id2, err := svc.PlaceVerified(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if id2 != "order_replay" {
		t.Fatalf("replay should return same id, got %q", id2)
	}

	var stock, count int
	if err := db.Get(&stock, `SELECT stock FROM products WHERE id='saree-001'`); err != nil {
		t.Fatal(err)
	}
	if stock != 7 {
		t.Fatalf("replay must not double-decrement: stock %d", stock)
	}
	if err := db.Get(&count, `SELECT COUNT(*) FROM orders`); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("replay must not duplicate the order row: %d", count)
	}
}

func TestPlaceVerified_InsufficientStockLeavesNothingBehind(t *testing.T) {
	db := memdb(t)
	svc := newCheckout(db, nil)

	// saree-002 has stock 1; the first line succeeds before the second fails,
	// and the rollback must undo it.
	_, err := svc.PlaceVerified(context.Background(), services.PlaceRequest{
		OrderID:   "order_fail",
		PaymentID: "pay_2",
		Items: []services.LineInput{
			{ProductID: "saree-001", Quantity: 1},
			{ProductID: "saree-002", Quantity: 2},
		},
		Shipping: shipping(),
	})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("want insufficient stock, got %v", err)
	}

	var s1, s2, orders int
	if err := db.Get(&s1, `SELECT stock FROM products WHERE id='saree-001'`); err != nil {
		t.Fatal(err)
	}
	if err := db.Get(&s2, `SELECT stock FROM products WHERE id='saree-002'`); err != nil {
		t.Fatal(err)
	}
	if err := db.Get(&orders, `SELECT COUNT(*) FROM orders`); err != nil {
		t.Fatal(err)
	}
	if s1 != 10 || s2 != 1 || orders != 0 {
		t.Fatalf("partial write leaked: stock=%d,%d orders=%d", s1, s2, orders)
	}
}

func TestPlaceVerified_InactiveProductRejected(t *testing.T) {
	db := memdb(t)
	svc := newCheckout(db, nil)

	_, err := svc.PlaceVerified(context.Background(), services.PlaceRequest{
		OrderID:   "order_inactive",
		PaymentID: "pay_3",
		Items:     []services.LineInput{{ProductID: "saree-003", Quantity: 1}},
		Shipping:  shipping(),
	})
	if !errors.Is(err, domain.ErrProductUnavailable) {
		t.Fatalf("want unavailable, got %v", err)
	}
}

func TestPlaceVerified_ChargedAmountMatchesOrderTotal(t *testing.T) {
	db := memdb(t)
	svc := newCheckout(db, nil)

	// A sub-threshold cart, so shipping actually shows up in both figures.
	cart := []services.LineInput{{ProductID: "stole-001", Quantity: 1}}

	gw := &fakeGateway{orderID: "order_parity"}
	pricing := services.NewPricingService(repos.NewProductRepo(db), repos.NewCouponRepo(db), gw)
	q, err := pricing.QuoteCart(context.Background(), cart, "meera@example.com", "")
	if err != nil {
		t.Fatal(err)
	}

	id, err := svc.PlaceVerified(context.Background(), services.PlaceRequest{
		OrderID:   q.OrderID,
		PaymentID: "pay_parity",
		Items:     cart,
		Shipping:  shipping(),
	})
	if err != nil {
		t.Fatal(err)
	}

	o, err := repos.NewOrderRepo(db).Get(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if o.ShippingPaise != 9900 || o.TotalPaise != 39900 {
		t.Fatalf("bad order totals: %+v", o)
	}
	if gw.amountPaise != o.TotalPaise {
		t.Fatalf("customer charged %d but order records %d", gw.amountPaise, o.TotalPaise)
	}
}

func TestPlaceCOD_AddsFeeAndPendingStatus(t *testing.T) {
	db := memdb(t)
	svc := newCheckout(db, nil)

	id, err := svc.PlaceCOD(context.Background(), services.PlaceRequest{
		Items:    []services.LineInput{{ProductID: "saree-001", Quantity: 1}},
		Shipping: shipping(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if id == "" {
		t.Fatal("no order id")
	}

	o, err := repos.NewOrderRepo(db).Get(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	// subtotal 50000 is over the threshold so shipping is free, plus COD fee
	if o.CODFeePaise != 4900 || o.TotalPaise != 54900 {
		t.Fatalf("bad COD totals: %+v", o)
	}
	if o.PaymentStatus != "Pending" || o.Status != "Pending" || o.PaymentMethod != "COD" {
		t.Fatalf("bad COD statuses: %+v", o)
	}
}

func TestPlaceVerified_CouponDiscountApplied(t *testing.T) {
	db := memdb(t)
	svc := newCheckout(db, nil)

	id, err := svc.PlaceVerified(context.Background(), services.PlaceRequest{
		OrderID:    "order_coupon",
		PaymentID:  "pay_4",
		Items:      []services.LineInput{{ProductID: "saree-001", Quantity: 2}},
		Shipping:   shipping(),
		CouponCode: "FESTIVE10",
	})
	if err != nil {
		t.Fatal(err)
	}

	o, err := repos.NewOrderRepo(db).Get(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	// 100000 subtotal, 10% off, free shipping
	if o.DiscountPaise != 10000 || o.TotalPaise != 90000 || o.CouponCode != "FESTIVE10" {
		t.Fatalf("bad coupon totals: %+v", o)
	}
}
