package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"pahnawa/internal/domain"
	"pahnawa/internal/repos"
)

// Meta-tag substitution targets in the hosted entry document.
var (
	reTitle   = regexp.MustCompile(`<title>.*?</title>`)
	reDesc    = regexp.MustCompile(`<meta name="description" content=".*?" />`)
	reOGTitle = regexp.MustCompile(`<meta property="og:title" content=".*?" />`)
	reOGDesc  = regexp.MustCompile(`<meta property="og:description" content=".*?" />`)
	reOGImage = regexp.MustCompile(`<meta property="og:image" content=".*?" />`)
)

const previewDescLimit = 150

// PreviewService serves a product page's HTML with swapped meta tags so link
// unfurlers see the product instead of the SPA shell. Stateless, read-only,
// safe to retry and cache.
type PreviewService struct {
	Products *repos.ProductRepo
	Client   *http.Client

	BaseURL      string // hosting root holding index.html
	SiteName     string
	DefaultImage string
}

func NewPreviewService(products *repos.ProductRepo, baseURL, siteName string) *PreviewService {
	return &PreviewService{
		Products: products,
		Client:   &http.Client{Timeout: 10 * time.Second},
		BaseURL:  strings.TrimRight(baseURL, "/"),
		SiteName: siteName,
	}
}

// Render returns the substituted document for productID. A missing product
// returns domain.ErrNotFound; the handler redirects to the site root.
func (s *PreviewService) Render(ctx context.Context, productID string) (string, error) {
	p, err := s.Products.Get(ctx, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", err
	}

	doc, err := s.fetchIndex(ctx)
	if err != nil {
		return "", err
	}

	title := html.EscapeString(p.Name + " | " + s.SiteName)
	desc := p.Description
	if desc == "" {
		desc = "Authentic Banarasi Silk"
	}
	if len(desc) > previewDescLimit {
		// Cut on a rune boundary; Devanagari copy must not yield broken UTF-8.
		cut := previewDescLimit
		for cut > 0 && !utf8.RuneStart(desc[cut]) {
			cut--
		}
		desc = desc[:cut]
	}
	desc = html.EscapeString(desc)
	image := p.FeaturedImg
	if image == "" {
		image = s.DefaultImage
	}
	if image == "" {
		image = s.BaseURL + "/og-image.jpg"
	}
	image = html.EscapeString(image)

	doc = reTitle.ReplaceAllString(doc, "<title>"+title+"</title>")
	doc = reDesc.ReplaceAllString(doc, `<meta name="description" content="`+desc+`" />`)
	doc = reOGTitle.ReplaceAllString(doc, `<meta property="og:title" content="`+title+`" />`)
	doc = reOGDesc.ReplaceAllString(doc, `<meta property="og:description" content="`+desc+`" />`)
	doc = reOGImage.ReplaceAllString(doc, `<meta property="og:image" content="`+image+`" />`)
	return doc, nil
}

func (s *PreviewService) fetchIndex(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/index.html", nil)
	if err != nil {
		return "", err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("hosting returned %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return "", err
	}
	return string(body), nil
}
