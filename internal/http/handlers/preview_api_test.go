package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"pahnawa/internal/http/handlers"
	"pahnawa/internal/repos"
	"pahnawa/internal/services"
)

const previewShell = `<!doctype html><html><head>
<title>Pahnawa Banaras</title>
<meta name="description" content="Default description" />
<meta property="og:title" content="Pahnawa Banaras" />
<meta property="og:description" content="Default description" />
<meta property="og:image" content="https://pahnawabanaras.com/og-image.jpg" />
</head><body><div id="root"></div></body></html>`

func newPreviewApp(t *testing.T) *fiber.App {
	t.Helper()
	_, db := newApp(t)

	hosting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(previewShell))
	}))
	t.Cleanup(hosting.Close)

	h := &handlers.PreviewHandler{
		Preview: services.NewPreviewService(repos.NewProductRepo(db), hosting.URL, "Pahnawa Banaras"),
	}
	app := fiber.New()
	app.Get("/serveProduct/:productId", h.ServeProduct)
	app.Get("/serveProduct/*", h.ServeProduct)
	return app
}

func TestServeProduct_SubstitutesAndCaches(t *testing.T) {
	app := newPreviewApp(t)

	req := httptest.NewRequest(http.MethodGet, "/serveProduct/saree-001", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if cc := resp.Header.Get("Cache-Control"); cc != "public, max-age=300, s-maxage=600" {
		t.Fatalf("bad cache header: %q", cc)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "<title>Katan Silk Saree | Pahnawa Banaras</title>") {
		t.Fatalf("title not substituted:\n%s", body)
	}
}

func TestServeProduct_UnknownIDRedirectsHome(t *testing.T) {
	app := newPreviewApp(t)

	req := httptest.NewRequest(http.MethodGet, "/serveProduct/nope", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("want 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Fatalf("want redirect to /, got %q", loc)
	}
}
