package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/imgscribe/imgscribe/internal/model"
)

// Batch drives a Fetcher over a full reference list.
//
// Downloads run strictly sequentially in list order. The input lists are
// small and finite, and sequential fetching keeps the load on remote
// servers polite; parallelism is deliberately out of scope.
type Batch struct {
	// fetcher handles the individual downloads.
	fetcher *Fetcher

	// progress receives the per-item [i/total] lines.
	progress io.Writer

	// logger for batch-level diagnostics.
	logger *slog.Logger
}

// BatchOption configures a Batch.
type BatchOption func(*Batch)

// WithProgressWriter redirects the per-item progress output.
// Defaults to stdout.
func WithProgressWriter(w io.Writer) BatchOption {
	return func(b *Batch) {
		b.progress = w
	}
}

// WithBatchLogger sets a custom logger for the batch.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *Batch) {
		b.logger = logger
	}
}

// NewBatch creates a Batch around the given Fetcher.
func NewBatch(fetcher *Fetcher, opts ...BatchOption) *Batch {
	b := &Batch{
		fetcher:  fetcher,
		progress: os.Stdout,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

// Run downloads every reference in list order and returns the number of
// successes against the total. Per-item failures never abort the
// remaining items; an empty list returns (0, 0). Cancellation stops the
// loop and returns the tally so far.
func (b *Batch) Run(ctx context.Context, refs []model.ImageReference) (succeeded, total int) {
	total = len(refs)
	if total == 0 {
		b.logger.Info("no images to download")
		return 0, 0
	}

	for i, ref := range refs {
		select {
		case <-ctx.Done():
			b.logger.Warn("batch cancelled", "completed", i, "total", total)
			return succeeded, total
		default:
		}

		fmt.Fprintf(b.progress, "[%d/%d] downloading %s...\n", i+1, total, ref.Name)

		outcome := b.fetcher.Fetch(ctx, ref)
		if outcome.Succeeded {
			succeeded++
		} else {
			fmt.Fprintf(b.progress, "[%d/%d] failed: %s\n", i+1, total, ref.Name)
		}
	}

	return succeeded, total
}
