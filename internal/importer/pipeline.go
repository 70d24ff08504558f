package importer

import (
	"context"
	"sync"
	"time"

	"github.com/bookhive/bookhive-go/internal/models"
)

const defaultBatchSize = 3

// ProgressFunc receives a monotonically increasing processed count after
// each batch completes. total is fixed for the lifetime of a Run call.
type ProgressFunc func(processed, total int)

// Result collects the outcome of a pipeline run. Failed holds the
// identifiers that produced no metadata so the caller can report them.
type Result struct {
	Succeeded []*models.BookMetadata `json:"succeeded"`
	Failed    []string               `json:"failed"`
}

// Pipeline performs catalog lookups for batches of identifiers. It remembers
// which identifiers it has already processed, so re-submitting an overlapping
// list does not repeat lookups until ResetSession is called.
type Pipeline struct {
	provider   models.Provider
	batchSize  int
	batchDelay time.Duration

	mu   sync.Mutex
	seen map[string]bool
}

func New(provider models.Provider, batchSize int, batchDelay time.Duration) *Pipeline {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Pipeline{
		provider:   provider,
		batchSize:  batchSize,
		batchDelay: batchDelay,
		seen:       make(map[string]bool),
	}
}

// Run parses input into identifiers and looks each one up against the
// catalog provider, batchSize at a time. Lookups within a batch run
// concurrently; the pipeline waits for the whole batch and then sleeps for
// batchDelay before starting the next one. onProgress (optional) is invoked
// once per completed batch. Run persists nothing; the caller decides what to
// do with the results.
//
// Cancelling ctx stops the run between batches. The partial Result gathered
// so far is returned alongside ctx.Err().
func (p *Pipeline) Run(ctx context.Context, input string, onProgress ProgressFunc) (*Result, error) {
	if onProgress == nil {
		onProgress = func(int, int) {}
	}

	candidates := p.claimUnseen(ParseIdentifiers(input))
	total := len(candidates)
	result := &Result{}

	for start := 0; start < total; start += p.batchSize {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		end := start + p.batchSize
		if end > total {
			end = total
		}
		batch := candidates[start:end]

		type lookupResult struct {
			isbn string
			meta *models.BookMetadata
			err  error
		}
		results := make([]lookupResult, len(batch))

		var wg sync.WaitGroup
		for i, isbn := range batch {
			wg.Add(1)
			go func(i int, isbn string) {
				defer wg.Done()
				meta, err := p.provider.Lookup(ctx, isbn)
				results[i] = lookupResult{isbn: isbn, meta: meta, err: err}
			}(i, isbn)
		}
		wg.Wait()

		for _, r := range results {
			if r.err != nil || r.meta == nil {
				result.Failed = append(result.Failed, r.isbn)
			} else {
				result.Succeeded = append(result.Succeeded, r.meta)
			}
		}

		onProgress(end, total)

		if end < total && p.batchDelay > 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(p.batchDelay):
			}
		}
	}

	return result, nil
}

// claimUnseen filters out identifiers this pipeline has already processed
// and marks the remainder as seen.
func (p *Pipeline) claimUnseen(ids []string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var fresh []string
	for _, id := range ids {
		if p.seen[id] {
			continue
		}
		p.seen[id] = true
		fresh = append(fresh, id)
	}
	return fresh
}

// ResetSession forgets all previously processed identifiers.
func (p *Pipeline) ResetSession() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seen = make(map[string]bool)
}
