package api

import (
	"errors"
	"net/http"

	"github.com/bookhive/bookhive-go/internal/catalog"
	"github.com/bookhive/bookhive-go/internal/importer"
)

func (s *Server) handleListProviders(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, catalog.GetAll())
}

// handleCatalogLookup resolves a single ISBN against a catalog provider.
// The provider query parameter overrides the configured default.
func (s *Server) handleCatalogLookup(w http.ResponseWriter, r *http.Request) {
	isbn, ok := importer.NormalizeISBN(r.URL.Query().Get("isbn"))
	if !ok {
		RespondWithError(w, http.StatusBadRequest, "Invalid ISBN: must be 10 or 13 digits")
		return
	}

	providerID := r.URL.Query().Get("provider")
	if providerID == "" {
		providerID = s.app.Config().Catalog.Provider
	}
	provider, ok := catalog.Get(providerID)
	if !ok {
		RespondWithError(w, http.StatusBadRequest, "Unknown catalog provider")
		return
	}

	meta, err := provider.Lookup(r.Context(), isbn)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			RespondWithError(w, http.StatusNotFound, "No catalog entry for that ISBN")
			return
		}
		RespondWithError(w, http.StatusBadGateway, "Catalog lookup failed")
		return
	}

	RespondWithJSON(w, http.StatusOK, meta)
}
