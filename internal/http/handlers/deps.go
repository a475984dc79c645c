package handlers

import (
	"pahnawa/internal/config"
	"pahnawa/internal/gateway"
	"pahnawa/internal/repos"
	"pahnawa/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	CheckoutHandler *CheckoutHandler
	PreviewHandler  *PreviewHandler
	CatalogHandler  *CatalogHandler
	ContentHandler  *ContentHandler
	ReviewHandler   *ReviewHandler
	CouponHandler   *CouponHandler
	FavoriteHandler *FavoriteHandler
	AuthHandler     *AuthHandler
	AdminHandler    *AdminHandler

	Auth *services.AuthService
}

func NewDeps(db *sqlx.DB, cfg config.Config, notify services.Notifier) *Deps {
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	couponRepo := repos.NewCouponRepo(db)
	contentRepo := repos.NewContentRepo(db)
	reviewRepo := repos.NewReviewRepo(db)
	favRepo := repos.NewFavoriteRepo(db)
	userRepo := repos.NewUserRepo(db)

	gw := gateway.NewRazorpay(cfg.RazorpayKeyID, cfg.RazorpaySecret)
	pricingSvc := services.NewPricingService(prodRepo, couponRepo, gw)
	checkoutSvc := services.NewCheckoutService(db, prodRepo, orderRepo, pricingSvc, notify)
	verifier := services.NewPaymentVerifier(cfg.RazorpaySecret)
	catalogSvc := services.NewCatalogService(prodRepo)
	previewSvc := services.NewPreviewService(prodRepo, cfg.HostingBaseURL, cfg.SiteName)
	favSvc := services.NewFavoriteService(favRepo)
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret)

	return &Deps{
		CheckoutHandler: &CheckoutHandler{Pricing: pricingSvc, Checkout: checkoutSvc, Verifier: verifier, Orders: orderRepo},
		PreviewHandler:  &PreviewHandler{Preview: previewSvc},
		CatalogHandler:  &CatalogHandler{Catalog: catalogSvc},
		ContentHandler:  &ContentHandler{Content: contentRepo},
		ReviewHandler:   &ReviewHandler{Reviews: reviewRepo},
		CouponHandler:   &CouponHandler{Pricing: pricingSvc},
		FavoriteHandler: &FavoriteHandler{Favorites: favSvc},
		AuthHandler:     &AuthHandler{Auth: authSvc},
		AdminHandler: &AdminHandler{
			Products: prodRepo,
			Orders:   orderRepo,
			Coupons:  couponRepo,
			Content:  contentRepo,
			Catalog:  catalogSvc,
		},
		Auth: authSvc,
	}
}
