package repos

import (
	"context"

	"pahnawa/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ReviewRepo struct{ db *sqlx.DB }

func NewReviewRepo(db *sqlx.DB) *ReviewRepo { return &ReviewRepo{db: db} }

func (r *ReviewRepo) ListForItem(ctx context.Context, kind, itemID string, limit, offset int) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.SelectContext(ctx, &out, `
	  SELECT id, item_id, item_kind, author, rating, body, created_at
	  FROM reviews
	  WHERE item_kind = ? AND item_id = ?
	  ORDER BY datetime(created_at) DESC
	  LIMIT ? OFFSET ?`, kind, itemID, limit, offset)
	return out, err
}

func (r *ReviewRepo) Create(ctx context.Context, rv domain.Review) error {
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO reviews(id, item_id, item_kind, author, rating, body, created_at)
	  VALUES(?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, rv.ID, rv.ItemID, rv.ItemKind, rv.Author, rv.Rating, rv.Body)
	if err != nil {
		return err
	}
	// Keep the spot's denormalized average in step; products render their
	// rating from the review list directly.
	if rv.ItemKind == "spot" {
		_, err = r.db.ExecContext(ctx, `
		  UPDATE spots SET avg_rating =
		    (SELECT AVG(rating) FROM reviews WHERE item_kind='spot' AND item_id=?)
		  WHERE id = ?`, rv.ItemID, rv.ItemID)
	}
	return err
}
