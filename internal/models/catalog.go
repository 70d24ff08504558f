package models

import "context"

// BookMetadata is the raw result of an external catalog lookup, before it
// has been normalized into a library Book.
type BookMetadata struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	CoverURL      string   `json:"cover_url"`
	Description   string   `json:"description"`
	PageCount     int      `json:"page_count"`
	Categories    []string `json:"categories"`
	PublishedDate string   `json:"published_date"`
	ISBN          string   `json:"isbn"`
}

// ProviderInfo contains static metadata about a catalog provider.
type ProviderInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Provider is the interface all metadata catalog sources must implement.
type Provider interface {
	GetInfo() ProviderInfo
	// Lookup resolves an ISBN to book metadata. It returns catalog.ErrNotFound
	// when the identifier has no match; any other error is a transport failure.
	Lookup(ctx context.Context, isbn string) (*BookMetadata, error)
}
