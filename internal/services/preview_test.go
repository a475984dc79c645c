package services_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"

	"pahnawa/internal/domain"
	"pahnawa/internal/repos"
	"pahnawa/internal/services"
)

const indexShell = `<!doctype html><html><head>
<title>Pahnawa Banaras</title>
<meta name="description" content="Default description" />
<meta property="og:title" content="Pahnawa Banaras" />
<meta property="og:description" content="Default description" />
<meta property="og:image" content="https://pahnawabanaras.com/og-image.jpg" />
</head><body><div id="root"></div></body></html>`

func newPreview(t *testing.T) (*services.PreviewService, *sqlx.DB) {
	t.Helper()
	db := memdb(t)
	hosting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/index.html" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(indexShell))
	}))
	t.Cleanup(hosting.Close)
	return services.NewPreviewService(repos.NewProductRepo(db), hosting.URL, "Pahnawa Banaras"), db
}

func TestRender_SwapsMetaTags(t *testing.T) {
	svc, _ := newPreview(t)

	doc, err := svc.Render(context.Background(), "saree-001")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"<title>Katan Silk Saree | Pahnawa Banaras</title>",
		`<meta name="description" content="Handwoven katan silk" />`,
		`<meta property="og:title" content="Katan Silk Saree | Pahnawa Banaras" />`,
		`<meta property="og:image" content="https://img/saree-001.jpg" />`,
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("missing %q in:\n%s", want, doc)
		}
	}
	if strings.Contains(doc, "Default description") {
		t.Fatal("shell description survived substitution")
	}
	// the SPA mount point must survive untouched
	if !strings.Contains(doc, `<div id="root"></div>`) {
		t.Fatal("body was mangled")
	}
}

func TestRender_EscapesProductFields(t *testing.T) {
	svc, db := newPreview(t)
	if _, err := db.Exec(`UPDATE products
		SET name='<script>alert(1)</script>', description='"quoted" & <markup>'
		WHERE id='saree-001'`); err != nil {
		t.Fatal(err)
	}

	doc, err := svc.Render(context.Background(), "saree-001")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(doc, "<script>alert(1)</script>") {
		t.Fatal("product name reached the document unescaped")
	}
	if !strings.Contains(doc, "&lt;script&gt;") {
		t.Fatalf("escaped name missing:\n%s", doc)
	}
	if !strings.Contains(doc, "&#34;quoted&#34; &amp; &lt;markup&gt;") {
		t.Fatalf("escaped description missing:\n%s", doc)
	}
}

func TestRender_TruncatesDescriptionOnRuneBoundary(t *testing.T) {
	svc, db := newPreview(t)
	// Devanagari copy: every rune is 3 bytes, so a byte-count cut would land
	// mid-rune. The leading ASCII byte shifts the boundaries to force that.
	long := "a" + strings.Repeat("बनारसी सिल्क", 20)
	if _, err := db.Exec(`UPDATE products SET description=? WHERE id='saree-001'`, long); err != nil {
		t.Fatal(err)
	}

	doc, err := svc.Render(context.Background(), "saree-001")
	if err != nil {
		t.Fatal(err)
	}
	if !utf8.ValidString(doc) {
		t.Fatal("rendered document contains broken UTF-8")
	}
	if strings.Contains(doc, "�") {
		t.Fatal("replacement character leaked into the document")
	}
	if strings.Contains(doc, long) {
		t.Fatal("description was not truncated")
	}
}

func TestRender_MissingProductIsNotFound(t *testing.T) {
	svc, _ := newPreview(t)

	_, err := svc.Render(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestRender_FallbackDescriptionAndImage(t *testing.T) {
	svc, db := newPreview(t)
	if _, err := db.Exec(`UPDATE products SET description='' WHERE id='saree-003'`); err != nil {
		t.Fatal(err)
	}

	// saree-003 has no description and no image
	doc, err := svc.Render(context.Background(), "saree-003")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc, `content="Authentic Banarasi Silk"`) {
		t.Fatal("default description not applied")
	}
	if !strings.Contains(doc, `og:image" content="`+svc.BaseURL+`/og-image.jpg"`) {
		t.Fatalf("default image not applied:\n%s", doc)
	}
}

func TestRender_HostingFailureSurfaces(t *testing.T) {
	db := memdb(t)
	hosting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(hosting.Close)
	svc := services.NewPreviewService(repos.NewProductRepo(db), hosting.URL, "Pahnawa Banaras")

	if _, err := svc.Render(context.Background(), "saree-001"); err == nil {
		t.Fatal("hosting error must surface, not render an empty shell")
	}
}
