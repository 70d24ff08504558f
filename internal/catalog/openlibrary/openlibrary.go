package openlibrary

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/bookhive/bookhive-go/internal/catalog"
	"github.com/bookhive/bookhive-go/internal/models"
)

// OpenLibraryProvider implements the Provider interface by scraping the Open
// Library search results page. It serves as a fallback catalog when the
// primary JSON API has no record for an ISBN.
type OpenLibraryProvider struct {
	client  *http.Client
	baseURL string
}

// New creates a new instance of the OpenLibraryProvider.
func New() *OpenLibraryProvider {
	return &OpenLibraryProvider{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: "https://openlibrary.org",
	}
}

// NewWithBaseURL creates a provider pointed at an alternate host. Used by tests.
func NewWithBaseURL(baseURL string) *OpenLibraryProvider {
	p := New()
	p.baseURL = baseURL
	return p
}

func (p *OpenLibraryProvider) GetInfo() models.ProviderInfo {
	return models.ProviderInfo{
		ID:   "openlibrary",
		Name: "Open Library",
	}
}

// Lookup scrapes the search results page for the ISBN and takes the first
// hit. Page counts are not present on the results page and stay 0.
func (p *OpenLibraryProvider) Lookup(ctx context.Context, isbn string) (*models.BookMetadata, error) {
	searchURL := fmt.Sprintf("%s/search?isbn=%s", p.baseURL, url.QueryEscape(isbn))
	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("open library request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, catalog.ErrNotFound
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, catalog.ErrNotFound
	}

	item := doc.Find("li.searchResultItem").First()
	if item.Length() == 0 {
		return nil, catalog.ErrNotFound
	}

	title := strings.TrimSpace(item.Find("h3.booktitle a").First().Text())
	if title == "" {
		return nil, catalog.ErrNotFound
	}

	var authors []string
	item.Find("span.bookauthor a").Each(func(i int, s *goquery.Selection) {
		if name := strings.TrimSpace(s.Text()); name != "" {
			authors = append(authors, name)
		}
	})

	coverURL := ""
	if src, ok := item.Find("img.bookcover").Attr("src"); ok {
		coverURL = normalizeCoverSrc(src)
	}

	return &models.BookMetadata{
		Title:    title,
		Authors:  authors,
		CoverURL: coverURL,
		ISBN:     isbn,
	}, nil
}

// normalizeCoverSrc resolves protocol-relative image sources and requests the
// larger cover size Open Library offers.
func normalizeCoverSrc(src string) string {
	if strings.HasPrefix(src, "//") {
		src = "https:" + src
	}
	// The results page links the small rendition; swap for the medium one.
	return strings.Replace(src, "-S.jpg", "-M.jpg", 1)
}
