package repos

import (
	"context"

	"pahnawa/internal/domain"

	"github.com/jmoiron/sqlx"
)

// ContentRepo serves the CMS-style collections: storefront documents,
// cities, categories, spots and ambassadors.
type ContentRepo struct{ db *sqlx.DB }

func NewContentRepo(db *sqlx.DB) *ContentRepo { return &ContentRepo{db: db} }

func (r *ContentRepo) Storefront(ctx context.Context, key string) (domain.StorefrontContent, error) {
	var c domain.StorefrontContent
	err := r.db.GetContext(ctx, &c, `
	  SELECT key, body_json, COALESCE(updated_at,'') AS updated_at
	  FROM storefront WHERE key = ?`, key)
	return c, err
}

func (r *ContentRepo) SetStorefront(ctx context.Context, key, bodyJSON string) error {
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO storefront(key, body_json, updated_at)
	  VALUES(?,?,CURRENT_TIMESTAMP)
	  ON CONFLICT(key) DO UPDATE SET body_json = excluded.body_json, updated_at = CURRENT_TIMESTAMP
	`, key, bodyJSON)
	return err
}

func (r *ContentRepo) Categories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.SelectContext(ctx, &out, `
	  SELECT id, name, image_url, sort_order FROM categories ORDER BY sort_order, name`)
	return out, err
}

func (r *ContentRepo) Cities(ctx context.Context) ([]domain.City, error) {
	var out []domain.City
	err := r.db.SelectContext(ctx, &out, `
	  SELECT id, name, state, hero_image_url, featured FROM cities ORDER BY name`)
	return out, err
}

func (r *ContentRepo) SpotsByCity(ctx context.Context, cityID string) ([]domain.Spot, error) {
	where, args := ``, []any{}
	if cityID != "" {
		where = ` WHERE city_id = ?`
		args = append(args, cityID)
	}
	var out []domain.Spot
	err := r.db.SelectContext(ctx, &out, `
	  SELECT id, city_id, name, category, description, image_url, map_url, avg_rating
	  FROM spots`+where+` ORDER BY name`, args...)
	return out, err
}

func (r *ContentRepo) Spot(ctx context.Context, id string) (domain.Spot, error) {
	var s domain.Spot
	err := r.db.GetContext(ctx, &s, `
	  SELECT id, city_id, name, category, description, image_url, map_url, avg_rating
	  FROM spots WHERE id = ?`, id)
	return s, err
}

func (r *ContentRepo) Ambassadors(ctx context.Context) ([]domain.Ambassador, error) {
	var out []domain.Ambassador
	err := r.db.SelectContext(ctx, &out, `
	  SELECT id, name, city_id, bio, avatar_url, instagram FROM ambassadors ORDER BY name`)
	return out, err
}
