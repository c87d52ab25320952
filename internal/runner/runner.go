// Package runner maps input blobs to independent extraction calls. The
// engine is pure and shares no state across statements, so blobs run
// concurrently with no locking; results come back in input order.
package runner

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/sqlscout/internal/source"
	"github.com/leapstack-labs/sqlscout/pkg/extract"
)

// Item pairs a blob with its per-statement results.
type Item struct {
	Blob    source.Blob
	Results []*extract.Result
}

// Runner executes extraction over a batch of blobs.
type Runner struct {
	Jobs   int // max concurrent blobs; <= 0 means unbounded
	Logger *slog.Logger
}

// New creates a runner.
func New(jobs int, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{Jobs: jobs, Logger: logger}
}

// Run extracts every blob and returns the items in input order. Extraction
// errors are carried inside the results, never returned here; only context
// cancellation aborts the run.
func (r *Runner) Run(ctx context.Context, blobs []source.Blob) ([]Item, error) {
	items := make([]Item, len(blobs))

	g, ctx := errgroup.WithContext(ctx)
	if r.Jobs > 0 {
		g.SetLimit(r.Jobs)
	}

	for i, blob := range blobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r.Logger.Debug("extracting blob", "origin", blob.Origin, "bytes", len(blob.Text))
			items[i] = Item{
				Blob:    blob,
				Results: extract.Extract(blob.Text, blob.Origin),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}
