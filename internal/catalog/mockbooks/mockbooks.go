// A mock catalog provider for development and testing purposes. It simulates
// lookups against a real service without making network calls.
package mockbooks

import (
	"context"
	"fmt"
	"strings"

	"github.com/bookhive/bookhive-go/internal/catalog"
	"github.com/bookhive/bookhive-go/internal/models"
)

type MockbooksProvider struct{}

func New() *MockbooksProvider {
	return &MockbooksProvider{}
}

func (p *MockbooksProvider) GetInfo() models.ProviderInfo {
	return models.ProviderInfo{
		ID:   "mockbooks",
		Name: "Mockbooks",
	}
}

// Lookup fabricates deterministic metadata for any ISBN. Identifiers starting
// with "000" simulate a catalog miss so failure paths can be exercised.
func (p *MockbooksProvider) Lookup(ctx context.Context, isbn string) (*models.BookMetadata, error) {
	if strings.HasPrefix(isbn, "000") {
		return nil, catalog.ErrNotFound
	}
	return &models.BookMetadata{
		Title:         fmt.Sprintf("Mock Book %s", isbn),
		Authors:       []string{"Mock Author"},
		CoverURL:      fmt.Sprintf("https://placehold.co/300x450?text=Book+%s", isbn),
		Description:   "A thoroughly mocked book.",
		PageCount:     320,
		Categories:    []string{"Fiction", "Testing", "Extra"},
		PublishedDate: "2024",
		ISBN:          isbn,
	}, nil
}
