package services

import (
	"context"
	"time"

	"pahnawa/internal/cache"
	"pahnawa/internal/domain"
	"pahnawa/internal/repos"
)

const productListCacheKey = "products:all"

type CatalogService struct {
	Products *repos.ProductRepo
	listings *cache.Store[[]domain.Product]
}

// NewCatalogService caches the unfiltered storefront listing for an hour,
// matching the storefront's product-list cache window. Filtered queries
// always hit the database.
func NewCatalogService(products *repos.ProductRepo) *CatalogService {
	return &CatalogService{
		Products: products,
		listings: cache.New[[]domain.Product](time.Hour),
	}
}

func (s *CatalogService) ListProducts(ctx context.Context, categoryID, q string, page, pageSize int) ([]domain.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 60 {
		pageSize = 24
	}
	offset := (page - 1) * pageSize

	if categoryID == "" && q == "" && page == 1 {
		out, err := s.listings.Get(ctx, productListCacheKey, func(ctx context.Context) ([]domain.Product, error) {
			return s.Products.List(ctx, "", "", pageSize, 0)
		})
		return annotate(out), err
	}

	out, err := s.Products.List(ctx, categoryID, q, pageSize, offset)
	return annotate(out), err
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	p, err := s.Products.Get(ctx, id)
	if err != nil {
		return p, err
	}
	p.Availability = availability(p.Stock)
	return p, nil
}

func (s *CatalogService) Options(ctx context.Context) ([]domain.OptionAddon, error) {
	return s.Products.Options(ctx)
}

// InvalidateListing drops the cached storefront listing after an admin
// catalog mutation.
func (s *CatalogService) InvalidateListing() {
	s.listings.Invalidate(productListCacheKey)
}

func annotate(ps []domain.Product) []domain.Product {
	for i := range ps {
		ps[i].Availability = availability(ps[i].Stock)
	}
	return ps
}

func availability(stock int) string {
	switch {
	case stock >= 5:
		return "IN_STOCK"
	case stock > 0:
		return "LOW_STOCK"
	default:
		return "OUT_OF_STOCK"
	}
}
