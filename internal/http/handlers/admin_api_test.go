package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"pahnawa/internal/http/handlers"
	"pahnawa/internal/repos"
	"pahnawa/internal/services"
)

// Minimal app for admin guard testing
func newAdminApp(t *testing.T) (*fiber.App, *services.AuthService, *sqlx.DB) {
	t.Helper()
	_, db := newApp(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO users(id,email,name,password_hash,role)
		VALUES ('u-admin','admin@pahnawa.test','Admin',?,'ADMIN'),
		       ('u-meera','meera@pahnawa.test','Meera',?,'USER')`,
		string(hash), string(hash)); err != nil {
		t.Fatal(err)
	}

	prodRepo := repos.NewProductRepo(db)
	auth := services.NewAuthService(repos.NewUserRepo(db), testSecret)
	adminH := &handlers.AdminHandler{
		Products: prodRepo,
		Orders:   repos.NewOrderRepo(db),
		Coupons:  repos.NewCouponRepo(db),
		Content:  repos.NewContentRepo(db),
		Catalog:  services.NewCatalogService(prodRepo),
	}

	app := fiber.New()
	admin := app.Group("/api/v1/admin", handlers.RequireUser(auth), handlers.RequireAdmin())
	admin.Get("/orders", adminH.ListOrders)
	admin.Delete("/products/:id", adminH.DeleteProduct)
	return app, auth, db
}

func login(t *testing.T, auth *services.AuthService, email string) string {
	t.Helper()
	token, _, err := auth.Login(context.Background(), email, "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func adminReq(method, path, token string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return req
}

func TestAdminRoutes_RequireAdminRole(t *testing.T) {
	app, auth, _ := newAdminApp(t)

	// Anonymous -> 401
	resp, err := app.Test(adminReq(http.MethodGet, "/api/v1/admin/orders", ""), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous: want 401, got %d", resp.StatusCode)
	}

	// Logged-in non-admin -> 403
	resp, err = app.Test(adminReq(http.MethodGet, "/api/v1/admin/orders", login(t, auth, "meera@pahnawa.test")), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("non-admin: want 403, got %d", resp.StatusCode)
	}

	// Admin -> 200
	resp, err = app.Test(adminReq(http.MethodGet, "/api/v1/admin/orders", login(t, auth, "admin@pahnawa.test")), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin: want 200, got %d", resp.StatusCode)
	}
}

func TestDeleteProduct_RetiresRowInPlace(t *testing.T) {
	app, auth, db := newAdminApp(t)
	token := login(t, auth, "admin@pahnawa.test")

	resp, err := app.Test(adminReq(http.MethodDelete, "/api/v1/admin/products/saree-001", token), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}

	// The row survives for order history; it just goes inactive.
	var active int
	if err := db.Get(&active, `SELECT active FROM products WHERE id='saree-001'`); err != nil {
		t.Fatal(err)
	}
	if active != 0 {
		t.Fatal("product still active after delete")
	}

	resp, err = app.Test(adminReq(http.MethodDelete, "/api/v1/admin/products/no-such-product", token), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown product: want 404, got %d", resp.StatusCode)
	}
}
