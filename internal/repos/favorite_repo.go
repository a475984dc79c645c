package repos

import (
	"context"

	"pahnawa/internal/domain"

	"github.com/jmoiron/sqlx"
)

type FavoriteRepo struct{ db *sqlx.DB }

func NewFavoriteRepo(db *sqlx.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

func (r *FavoriteRepo) Add(ctx context.Context, userID, itemID, kind string) error {
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO user_favorites(user_id, item_id, item_kind, created_at)
	  VALUES(?,?,?,CURRENT_TIMESTAMP)
	  ON CONFLICT(user_id, item_id, item_kind) DO NOTHING
	`, userID, itemID, kind)
	return err
}

func (r *FavoriteRepo) Remove(ctx context.Context, userID, itemID, kind string) error {
	_, err := r.db.ExecContext(ctx, `
	  DELETE FROM user_favorites WHERE user_id=? AND item_id=? AND item_kind=?
	`, userID, itemID, kind)
	return err
}

func (r *FavoriteRepo) List(ctx context.Context, userID string) ([]domain.Favorite, error) {
	var out []domain.Favorite
	err := r.db.SelectContext(ctx, &out, `
	  SELECT user_id, item_id, item_kind, created_at
	  FROM user_favorites
	  WHERE user_id = ?
	  ORDER BY datetime(created_at) DESC`, userID)
	return out, err
}
