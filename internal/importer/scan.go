package importer

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bookhive/bookhive-go/internal/catalog"
	"github.com/bookhive/bookhive-go/internal/jobs"
	"github.com/bookhive/bookhive-go/internal/library"
	"github.com/bookhive/bookhive-go/internal/store"
)

const jobID = "import-scan"

// doneSuffix marks files that have already been imported so repeated scans
// skip them.
const doneSuffix = ".done"

// RunImportScan processes identifier lists dropped into the import folder.
// Each .txt or .csv file is parsed, its ISBNs are looked up against the
// configured catalog provider, and successful hits are added to the default
// admin library. Processed files are renamed with a ".done" suffix.
func RunImportScan(ctx jobs.JobContext) {
	cfg := ctx.Config()

	entries, err := os.ReadDir(cfg.Import.Path)
	if err != nil {
		log.Printf("Import scan: cannot read import folder %s: %v", cfg.Import.Path, err)
		sendProgress(ctx, "Import folder unavailable", 0, 0, true)
		return
	}

	st := store.New(ctx.DB())
	user, err := st.GetDefaultImportUser()
	if err != nil {
		log.Printf("Import scan: no admin user to file imports under: %v", err)
		sendProgress(ctx, "No admin user available", 0, 0, true)
		return
	}

	provider, ok := catalog.Get(cfg.Catalog.Provider)
	if !ok {
		log.Printf("Import scan: catalog provider %q is not registered", cfg.Catalog.Provider)
		sendProgress(ctx, "Catalog provider unavailable", 0, 0, true)
		return
	}

	pipeline := New(provider, cfg.Catalog.BatchSize, time.Duration(cfg.Catalog.BatchDelayMs)*time.Millisecond)

	var imported, failed int
	for _, entry := range entries {
		if entry.IsDir() || !isImportFile(entry.Name()) {
			continue
		}
		path := filepath.Join(cfg.Import.Path, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Import scan: failed to read %s: %v", path, err)
			continue
		}

		result, err := pipeline.Run(context.Background(), string(data), func(processed, total int) {
			sendProgress(ctx, fmt.Sprintf("Processing %s", entry.Name()), processed, total, false)
		})
		if err != nil {
			log.Printf("Import scan: pipeline error for %s: %v", path, err)
			continue
		}

		now := time.Now()
		for _, meta := range result.Succeeded {
			book := library.BookFromLookup(meta)
			if err := st.AddBook(user.ID, book, now); err != nil {
				log.Printf("Import scan: failed to add %q: %v", meta.Title, err)
				continue
			}
			imported++
		}
		failed += len(result.Failed)

		if err := os.Rename(path, path+doneSuffix); err != nil {
			log.Printf("Import scan: failed to mark %s as done: %v", path, err)
		}
	}

	sendProgress(ctx, fmt.Sprintf("Import scan complete. Added %d book(s), %d lookup(s) failed.", imported, failed), 1, 1, true)
}

func isImportFile(name string) bool {
	if strings.HasSuffix(name, doneSuffix) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".txt" || ext == ".csv"
}

func sendProgress(ctx jobs.JobContext, message string, processed, total int, done bool) {
	jobs.SendProgressUpdate(ctx, jobs.ProgressUpdate{
		JobID:     jobID,
		Message:   message,
		Processed: processed,
		Total:     total,
		Done:      done,
	})
}
