package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pahnawa/internal/config"
	"pahnawa/internal/http/handlers"
	applog "pahnawa/internal/log"
	"pahnawa/internal/mail"
	"pahnawa/internal/notify"
	"pahnawa/internal/repos"
)

func main() {
	cfg := config.Load()

	applog.Init(cfg.LogFile)
	defer applog.Sync()

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Email wiring
	mailer, err := mail.New(mail.SMTPConfig{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort,
		User:       cfg.SMTPUser,
		Pass:       cfg.SMTPPass,
		FromName:   cfg.FromName,
		AdminEmail: cfg.AdminEmail,
	}, "./web/templates")
	if err != nil {
		log.Fatal(err)
	}
	dispatcher := notify.NewDispatcher(repos.NewOrderRepo(db), mailer)
	dispatcher.Start()

	deps := handlers.NewDeps(db, cfg, dispatcher)

	app := fiber.New(fiber.Config{
		AppName: cfg.SiteName,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			msg := "Something went wrong. Please try again."
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
				msg = fe.Message
			} else {
				applog.Error(c, "server.error", err, nil)
			}
			return c.Status(code).JSON(fiber.Map{"success": false, "error": msg})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return p == "/healthz" || p == "/metrics" || strings.HasPrefix(p, "/serveProduct/")
		},
	}))

	// ---------- Checkout callable surface ----------
	app.Post("/createOrder", deps.CheckoutHandler.CreateOrder)
	app.Post("/verifyPayment", deps.CheckoutHandler.VerifyPayment)
	app.Post("/placeCodOrder", deps.CheckoutHandler.PlaceCOD)

	// Social preview; crawlers may hit either shape.
	app.Get("/serveProduct/:productId", deps.PreviewHandler.ServeProduct)
	app.Get("/serveProduct/*", deps.PreviewHandler.ServeProduct)

	// ---------- Public API ----------
	api := app.Group("/api/v1")
	api.Get("/products", deps.CatalogHandler.List)
	api.Get("/products/:id", deps.CatalogHandler.Detail)
	api.Get("/options", deps.CatalogHandler.Options)
	api.Get("/storefront/:key", deps.ContentHandler.Storefront)
	api.Get("/categories", deps.ContentHandler.Categories)
	api.Get("/cities", deps.ContentHandler.Cities)
	api.Get("/spots", deps.ContentHandler.Spots)
	api.Get("/spots/:id", deps.ContentHandler.Spot)
	api.Get("/ambassadors", deps.ContentHandler.Ambassadors)
	api.Get("/reviews/:kind/:itemId", deps.ReviewHandler.List)
	api.Post("/reviews", deps.ReviewHandler.Create)
	api.Get("/coupons/:code", deps.CouponHandler.Validate)
	api.Post("/auth/login", deps.AuthHandler.Login)
	api.Get("/auth/me", handlers.RequireUser(deps.Auth), deps.AuthHandler.Me)

	fav := api.Group("/favorites", handlers.RequireUser(deps.Auth))
	fav.Get("/", deps.FavoriteHandler.List)
	fav.Post("/", deps.FavoriteHandler.Save)
	fav.Delete("/", deps.FavoriteHandler.Remove)

	// ---------- Admin ----------
	admin := api.Group("/admin", handlers.RequireUser(deps.Auth), handlers.RequireAdmin())
	admin.Post("/products", deps.AdminHandler.CreateProduct)
	admin.Put("/products/:id", deps.AdminHandler.UpdateProduct)
	admin.Put("/products/:id/stock", deps.AdminHandler.SetStock)
	admin.Delete("/products/:id", deps.AdminHandler.DeleteProduct)
	admin.Get("/orders", deps.AdminHandler.ListOrders)
	admin.Get("/orders/:id", deps.AdminHandler.GetOrder)
	admin.Put("/orders/:id/status", deps.AdminHandler.UpdateOrderStatus)
	admin.Put("/coupons/:code", deps.AdminHandler.UpsertCoupon)
	admin.Put("/storefront/:key", deps.AdminHandler.SetStorefront)

	// ---------- Operational ----------
	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := db.PingContext(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"success": false, "error": "db unreachable"})
		}
		return c.JSON(fiber.Map{"success": true})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// ---------- Serve ----------
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[shutdown] draining connections")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("[shutdown] %v", err)
	}
	dispatcher.Stop()
	_ = db.Close()
}
