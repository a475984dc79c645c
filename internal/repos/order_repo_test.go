package repos_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"pahnawa/internal/domain"
	"pahnawa/internal/repos"
)

func orderdb(t *testing.T) (*sqlx.DB, *repos.OrderRepo) {
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
	return db, repos.NewOrderRepo(db)
}

func sampleOrder(id string) domain.Order {
	return domain.Order{
		ID:            id,
		PaymentID:     "pay_1",
		SubtotalPaise: 50000,
		TotalPaise:    50000,
		PaymentMethod: "ONLINE",
		PaymentStatus: "Paid",
		Status:        "Paid",
		Shipping: domain.ShippingDetails{
			Email:     "meera@example.com",
			FirstName: "Meera",
			LastName:  "Iyer",
			Address:   "12 Dashashwamedh Rd",
			City:      "Varanasi",
			State:     "UP",
			Pincode:   "221001",
			Phone:     "9876543210",
		},
	}
}

func TestInsertHeader_DuplicateIDSignalsNoRows(t *testing.T) {
	db, orders := orderdb(t)
	ctx := context.Background()

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := orders.InsertHeader(ctx, tx, sampleOrder("order_dup")); err != nil {
		t.Fatal(err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}

	// A second delivery of the same callback lands on the same id. The
	// insert must be a no-op signalled with sql.ErrNoRows, not a driver
	// constraint error, so the caller can return the committed order.
	tx, err = db.BeginTxx(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	dup := sampleOrder("order_dup")
	dup.PaymentID = "pay_2"
	if err := orders.InsertHeader(ctx, tx, dup); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("want sql.ErrNoRows on duplicate id, got %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatal(err)
	}

	var pay string
	if err := db.Get(&pay, `SELECT payment_id FROM orders WHERE id='order_dup'`); err != nil {
		t.Fatal(err)
	}
	if pay != "pay_1" {
		t.Fatalf("first write must win, got payment_id %q", pay)
	}
}

func TestUpdateStatus_UnknownOrder(t *testing.T) {
	_, orders := orderdb(t)
	err := orders.UpdateStatus(context.Background(), "nope", "Shipped")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("want sql.ErrNoRows, got %v", err)
	}
}
