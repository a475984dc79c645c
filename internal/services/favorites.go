package services

import (
	"context"

	"pahnawa/internal/domain"
	"pahnawa/internal/repos"
)

type FavoriteService struct {
	Repo *repos.FavoriteRepo
}

func NewFavoriteService(r *repos.FavoriteRepo) *FavoriteService { return &FavoriteService{Repo: r} }

func (s *FavoriteService) Save(ctx context.Context, userID, itemID, kind string) error {
	return s.Repo.Add(ctx, userID, itemID, kind)
}

func (s *FavoriteService) Unsave(ctx context.Context, userID, itemID, kind string) error {
	return s.Repo.Remove(ctx, userID, itemID, kind)
}

func (s *FavoriteService) List(ctx context.Context, userID string) ([]domain.Favorite, error) {
	return s.Repo.List(ctx, userID)
}
