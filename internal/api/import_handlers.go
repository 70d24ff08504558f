package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bookhive/bookhive-go/internal/catalog"
	"github.com/bookhive/bookhive-go/internal/importer"
	"github.com/bookhive/bookhive-go/internal/jobs"
	"github.com/bookhive/bookhive-go/internal/library"
)

// handleImportISBNs runs the bulk lookup pipeline over pasted identifier
// text. It returns the resolved metadata and the identifiers that failed;
// nothing is added to the library until the client posts the books it wants
// to keep. Progress is broadcast over the WebSocket hub while the pipeline
// runs.
func (s *Server) handleImportISBNs(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text     string `json:"text"`
		Provider string `json:"provider"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	providerID := payload.Provider
	if providerID == "" {
		providerID = s.app.Config().Catalog.Provider
	}
	provider, ok := catalog.Get(providerID)
	if !ok {
		RespondWithError(w, http.StatusBadRequest, "Unknown catalog provider")
		return
	}

	cfg := s.app.Config()
	pipeline := importer.New(provider, cfg.Catalog.BatchSize, time.Duration(cfg.Catalog.BatchDelayMs)*time.Millisecond)

	result, err := pipeline.Run(r.Context(), payload.Text, func(processed, total int) {
		jobs.SendProgressUpdate(s.app, jobs.ProgressUpdate{
			JobID:     "isbn-import",
			Message:   "Looking up identifiers",
			Processed: processed,
			Total:     total,
			Done:      processed == total,
		})
	})
	if err != nil {
		// The client went away; there is nobody left to respond to.
		return
	}

	RespondWithJSON(w, http.StatusOK, result)
}

// handleImportLegacy ingests records exported from the previous app version.
// Unlike the ISBN pipeline this commits directly: the records already carry
// full book data.
func (s *Server) handleImportLegacy(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var records []library.LegacyRecord
	if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	now := time.Now()
	var imported, failed int
	for i := range records {
		book := library.BookFromLegacy(&records[i])
		if err := s.store.AddBook(user.ID, book, now); err != nil {
			failed++
			continue
		}
		imported++
	}

	RespondWithJSON(w, http.StatusOK, map[string]int{
		"imported": imported,
		"failed":   failed,
	})
}
