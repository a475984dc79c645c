package repos

import (
	"context"
	"database/sql"

	"pahnawa/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) DB() *sqlx.DB { return r.db }

// Exists reports whether an order row with this id is already committed.
// The order id is the gateway order handle, so this is the replay check.
func (r *OrderRepo) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM orders WHERE id=?`, id); err != nil {
		return false, err
	}
	return n > 0, nil
}

// InsertHeader writes the order row inside the caller's transaction. The id
// is the idempotency key: when the row already exists the insert is a no-op
// and sql.ErrNoRows comes back so the caller can take the replay path.
func (r *OrderRepo) InsertHeader(ctx context.Context, tx *sqlx.Tx, o domain.Order) error {
	res, err := tx.ExecContext(ctx, `
	  INSERT INTO orders
	    (id, payment_id, receipt, subtotal_paise, shipping_paise, cod_fee_paise,
	     discount_paise, total_paise, coupon_code, payment_method, payment_status,
	     status, email, first_name, last_name, address, apartment, city, state,
	     pincode, phone, email_sent, created_at)
	  VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,0,CURRENT_TIMESTAMP)
	  ON CONFLICT(id) DO NOTHING
	`, o.ID, o.PaymentID, o.Receipt, o.SubtotalPaise, o.ShippingPaise, o.CODFeePaise,
		o.DiscountPaise, o.TotalPaise, o.CouponCode, o.PaymentMethod, o.PaymentStatus,
		o.Status, o.Shipping.Email, o.Shipping.FirstName, o.Shipping.LastName,
		o.Shipping.Address, o.Shipping.Apartment, o.Shipping.City, o.Shipping.State,
		o.Shipping.Pincode, o.Shipping.Phone)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// InsertItem writes one immutable line-item snapshot inside the transaction.
func (r *OrderRepo) InsertItem(ctx context.Context, tx *sqlx.Tx, it domain.OrderItem) error {
	_, err := tx.ExecContext(ctx, `
	  INSERT INTO order_items(order_id, product_id, name, unit_price_paise, qty, options_json, image_url)
	  VALUES(?,?,?,?,?,?,?)
	`, it.OrderID, it.ProductID, it.Name, it.UnitPricePaise, it.Quantity,
		orDefault(it.OptionsJSON, "{}"), it.ImageURL)
	return err
}

type orderRow struct {
	domain.Order
	Email     string `db:"email"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Address   string `db:"address"`
	Apartment string `db:"apartment"`
	City      string `db:"city"`
	State     string `db:"state"`
	Pincode   string `db:"pincode"`
	Phone     string `db:"phone"`
}

func (r *OrderRepo) Get(ctx context.Context, id string) (domain.Order, error) {
	var row orderRow
	if err := r.db.GetContext(ctx, &row, `SELECT * FROM orders WHERE id = ?`, id); err != nil {
		return domain.Order{}, err
	}
	o := row.Order
	o.Shipping = domain.ShippingDetails{
		Email: row.Email, FirstName: row.FirstName, LastName: row.LastName,
		Address: row.Address, Apartment: row.Apartment, City: row.City,
		State: row.State, Pincode: row.Pincode, Phone: row.Phone,
	}
	if err := r.db.SelectContext(ctx, &o.Items, `
	  SELECT order_id, product_id, name, unit_price_paise, qty, options_json, image_url
	  FROM order_items WHERE order_id = ? ORDER BY product_id
	`, id); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

type OrderSummary struct {
	ID            string `db:"id"`
	Email         string `db:"email"`
	TotalPaise    int64  `db:"total_paise"`
	PaymentMethod string `db:"payment_method"`
	Status        string `db:"status"`
	CreatedAt     string `db:"created_at"`
}

func (r *OrderRepo) ListLatest(ctx context.Context, limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []OrderSummary
	err := r.db.SelectContext(ctx, &out, `
	  SELECT id, email, total_paise, payment_method, status, created_at
	  FROM orders
	  ORDER BY datetime(created_at) DESC
	  LIMIT ?`, limit)
	return out, err
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// MarkEmailSent flips the fire-once confirmation flag.
func (r *OrderRepo) MarkEmailSent(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE orders SET email_sent = 1 WHERE id = ?`, id)
	return err
}
