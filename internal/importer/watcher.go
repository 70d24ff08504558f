// This file implements a file system watcher for the import drop folder.
// Dropping an identifier list into the folder triggers an import scan
// without waiting for the next scheduled run.

package importer

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bookhive/bookhive-go/internal/jobs"
)

// WatcherService watches the import folder and submits the import-scan job
// when new identifier lists appear.
type WatcherService struct {
	ctx           jobs.JobContext
	watcher       *fsnotify.Watcher
	mu            sync.Mutex
	debounceTimer *time.Timer
	debounceDelay time.Duration
	stopChan      chan struct{}
}

// NewWatcherService creates a new import folder watcher.
func NewWatcherService(ctx jobs.JobContext) *WatcherService {
	return &WatcherService{
		ctx:           ctx,
		debounceDelay: 2 * time.Second, // Wait 2 seconds after last change before scanning
		stopChan:      make(chan struct{}),
	}
}

// Start begins watching the import folder, creating it if necessary.
func (w *WatcherService) Start() error {
	importPath := w.ctx.Config().Import.Path
	if err := os.MkdirAll(importPath, 0o755); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = watcher

	if err := watcher.Add(importPath); err != nil {
		watcher.Close()
		return err
	}

	log.Printf("File watcher started for import folder: %s", importPath)

	go w.processEvents()

	return nil
}

// Stop stops the file watcher service.
func (w *WatcherService) Stop() error {
	close(w.stopChan)
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

func (w *WatcherService) processEvents() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Import watcher error: %v", err)

		case <-w.stopChan:
			return
		}
	}
}

func (w *WatcherService) handleEvent(event fsnotify.Event) {
	// Chmod events fire when folders are merely opened or browsed.
	if event.Op == fsnotify.Chmod {
		return
	}

	hasRelevantOp := (event.Op&fsnotify.Create == fsnotify.Create) ||
		(event.Op&fsnotify.Write == fsnotify.Write)
	if !hasRelevantOp {
		return
	}

	if !isImportFile(event.Name) {
		return
	}

	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounceDelay, w.triggerScan)
	w.mu.Unlock()
}

func (w *WatcherService) triggerScan() {
	log.Println("Import watcher detected new identifier list(s), triggering scan")
	if err := w.ctx.JobManager().RunJob(jobID, w.ctx); err != nil {
		log.Printf("Import watcher could not start scan: %v", err)
	}
}
