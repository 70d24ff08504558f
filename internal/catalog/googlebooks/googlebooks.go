package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bookhive/bookhive-go/internal/catalog"
	"github.com/bookhive/bookhive-go/internal/models"
)

// GoogleBooksProvider implements the Provider interface against the Google
// Books volumes API.
type GoogleBooksProvider struct {
	client     *http.Client
	apiBaseURL string
}

// New creates a new instance of the GoogleBooksProvider.
func New() *GoogleBooksProvider {
	return &GoogleBooksProvider{
		client:     &http.Client{Timeout: 20 * time.Second},
		apiBaseURL: "https://www.googleapis.com/books/v1",
	}
}

// NewWithBaseURL creates a provider pointed at an alternate API host. Used by tests.
func NewWithBaseURL(baseURL string) *GoogleBooksProvider {
	p := New()
	p.apiBaseURL = baseURL
	return p
}

// GetInfo returns static information about this provider.
func (p *GoogleBooksProvider) GetInfo() models.ProviderInfo {
	return models.ProviderInfo{
		ID:   "googlebooks",
		Name: "Google Books",
	}
}

// Lookup resolves an ISBN via the volumes search endpoint. Any non-2xx
// response or unparseable payload is treated as a miss, never as fatal.
func (p *GoogleBooksProvider) Lookup(ctx context.Context, isbn string) (*models.BookMetadata, error) {
	url := fmt.Sprintf("%s/volumes?q=isbn:%s", p.apiBaseURL, isbn)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google books request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, catalog.ErrNotFound
	}

	var apiResponse volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, catalog.ErrNotFound
	}
	if len(apiResponse.Items) == 0 {
		return nil, catalog.ErrNotFound
	}

	info := apiResponse.Items[0].VolumeInfo
	return &models.BookMetadata{
		Title:         info.Title,
		Authors:       info.Authors,
		CoverURL:      pickCover(info.ImageLinks),
		Description:   info.Description,
		PageCount:     info.PageCount,
		Categories:    info.Categories,
		PublishedDate: info.PublishedDate,
		ISBN:          isbn,
	}, nil
}

// pickCover prefers the larger thumbnail and upgrades plain-http links,
// since the API still serves http:// image URLs.
func pickCover(links imageLinks) string {
	url := links.Thumbnail
	if url == "" {
		url = links.SmallThumbnail
	}
	return strings.Replace(url, "http://", "https://", 1)
}
