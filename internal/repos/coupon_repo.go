package repos

import (
	"context"

	"pahnawa/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CouponRepo struct{ db *sqlx.DB }

func NewCouponRepo(db *sqlx.DB) *CouponRepo { return &CouponRepo{db: db} }

func (r *CouponRepo) Get(ctx context.Context, code string) (domain.Coupon, error) {
	var c domain.Coupon
	err := r.db.GetContext(ctx, &c, `
	  SELECT code, kind, value, min_subtotal_paise, active, COALESCE(expires_at,'') AS expires_at
	  FROM coupons WHERE code = ?`, code)
	return c, err
}

// GetForUpdate reads a coupon inside the caller's transaction so the
// write-time discount uses the same snapshot as the rest of the order write.
func (r *CouponRepo) GetForUpdate(ctx context.Context, tx *sqlx.Tx, code string) (domain.Coupon, error) {
	var c domain.Coupon
	err := tx.GetContext(ctx, &c, `
	  SELECT code, kind, value, min_subtotal_paise, active, COALESCE(expires_at,'') AS expires_at
	  FROM coupons WHERE code = ?`, code)
	return c, err
}

func (r *CouponRepo) Upsert(ctx context.Context, c domain.Coupon) error {
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO coupons(code, kind, value, min_subtotal_paise, active, expires_at)
	  VALUES(?,?,?,?,?,?)
	  ON CONFLICT(code) DO UPDATE SET
	    kind = excluded.kind,
	    value = excluded.value,
	    min_subtotal_paise = excluded.min_subtotal_paise,
	    active = excluded.active,
	    expires_at = excluded.expires_at
	`, c.Code, c.Kind, c.Value, c.MinSubtotalPaise, c.Active, c.ExpiresAt)
	return err
}
