// Package catalog holds the registry of book-metadata providers. Providers
// resolve ISBNs against external catalog services; the registry lets the rest
// of the application address them by ID.
package catalog

import (
	"errors"
	"fmt"

	"github.com/bookhive/bookhive-go/internal/models"
)

// ErrNotFound is returned by providers when an identifier has no match.
// Lookup misses are a benign outcome, not a failure of the provider.
var ErrNotFound = errors.New("no book found for identifier")

var registry = make(map[string]models.Provider)

// Register adds a new provider to the registry. It's called at startup.
func Register(p models.Provider) {
	info := p.GetInfo()
	if _, exists := registry[info.ID]; exists {
		// Panic is appropriate here as it's a developer error during setup.
		panic(fmt.Sprintf("provider with ID '%s' is already registered", info.ID))
	}
	registry[info.ID] = p
}

// Get returns a provider by its ID.
func Get(id string) (models.Provider, bool) {
	p, ok := registry[id]
	return p, ok
}

// GetAll returns a list of information for all registered providers.
func GetAll() []models.ProviderInfo {
	var providers []models.ProviderInfo
	for _, p := range registry {
		providers = append(providers, p.GetInfo())
	}
	return providers
}

// UnregisterAll clears the registry. Used by tests.
func UnregisterAll() {
	registry = make(map[string]models.Provider)
}
