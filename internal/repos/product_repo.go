package repos

import (
	"context"
	"database/sql"

	"pahnawa/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, category_id, name, description, price_paise, stock, version,
  featured_image_url, gallery_json, detail_images_json, active,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

// GetForUpdate reads a product inside the caller's transaction so the stock
// check and the conditional decrement see the same row.
func (r *ProductRepo) GetForUpdate(ctx context.Context, tx *sqlx.Tx, id string) (domain.Product, error) {
	var p domain.Product
	err := tx.GetContext(ctx, &p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) List(ctx context.Context, categoryID, q string, limit, offset int) ([]domain.Product, error) {
	where := `active = 1`
	args := []any{}
	if categoryID != "" {
		where += ` AND category_id = ?`
		args = append(args, categoryID)
	}
	if q != "" {
		where += ` AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)`
		args = append(args, "%"+q+"%", "%"+q+"%")
	}
	args = append(args, limit, offset)

	var out []domain.Product
	err := r.db.SelectContext(ctx, &out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE `+where+`
	  ORDER BY created_at DESC
	  LIMIT ? OFFSET ?`, args...)
	return out, err
}

// DecrementStock subtracts qty conditionally on the version still being the
// one the caller read. Returns sql.ErrNoRows when the version moved (or the
// stock guard failed) so the caller can re-read and retry.
func (r *ProductRepo) DecrementStock(ctx context.Context, tx *sqlx.Tx, id string, qty int, version int64) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE products
		SET stock = stock - ?, version = version + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND version = ? AND stock >= ?
	`, qty, id, version, qty)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Options returns the fixed option -> surcharge table.
func (r *ProductRepo) Options(ctx context.Context) ([]domain.OptionAddon, error) {
	var out []domain.OptionAddon
	err := r.db.SelectContext(ctx, &out, `SELECT code, label, surcharge_paise FROM option_addons ORDER BY code`)
	return out, err
}

// OptionsForUpdate reads the option table inside the caller's transaction so
// write-time pricing sees the same snapshot as the stock decrements.
func (r *ProductRepo) OptionsForUpdate(ctx context.Context, tx *sqlx.Tx) ([]domain.OptionAddon, error) {
	var out []domain.OptionAddon
	err := tx.SelectContext(ctx, &out, `SELECT code, label, surcharge_paise FROM option_addons ORDER BY code`)
	return out, err
}

// ---------- Admin mutations ----------

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) error {
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO products(id, category_id, name, description, price_paise, stock,
	    featured_image_url, gallery_json, detail_images_json, active, created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, p.ID, p.CategoryID, p.Name, p.Description, p.PricePaise, p.Stock,
		p.FeaturedImg, orDefault(p.GalleryJSON, "[]"), orDefault(p.DetailJSON, "[]"), p.Active)
	return err
}

func (r *ProductRepo) Update(ctx context.Context, p domain.Product) error {
	res, err := r.db.ExecContext(ctx, `
	  UPDATE products SET category_id=?, name=?, description=?, price_paise=?,
	    featured_image_url=?, gallery_json=?, detail_images_json=?, active=?,
	    updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, p.CategoryID, p.Name, p.Description, p.PricePaise,
		p.FeaturedImg, orDefault(p.GalleryJSON, "[]"), orDefault(p.DetailJSON, "[]"), p.Active, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetStock is the admin override; it bumps the version so in-flight
// optimistic decrements re-read.
func (r *ProductRepo) SetStock(ctx context.Context, id string, stock int) error {
	res, err := r.db.ExecContext(ctx, `
	  UPDATE products SET stock=?, version=version+1, updated_at=CURRENT_TIMESTAMP WHERE id=?
	`, stock, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete retires a product. The row stays so order-item snapshots keep a
// valid subject; it just becomes invisible to the storefront and checkout.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
	  UPDATE products SET active=0, updated_at=CURRENT_TIMESTAMP WHERE id=?
	`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
