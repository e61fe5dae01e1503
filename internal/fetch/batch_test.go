package fetch

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/imgscribe/imgscribe/internal/model"
)

// TestBatchRun tests the sequential batch driver.
func TestBatchRun(t *testing.T) {
	t.Parallel()

	t.Run("empty list returns zero zero", func(t *testing.T) {
		t.Parallel()

		fetcher := NewFetcher(&http.Client{}, t.TempDir(), WithRetryDelay(0))
		batch := NewBatch(fetcher, WithProgressWriter(&bytes.Buffer{}))

		succeeded, total := batch.Run(context.Background(), nil)
		if succeeded != 0 || total != 0 {
			t.Errorf("expected (0, 0), got (%d, %d)", succeeded, total)
		}
	})

	t.Run("tallies successes against total", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.Contains(r.URL.Path, "missing") {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Write([]byte("png-bytes"))
		}))
		defer server.Close()

		fetcher := NewFetcher(server.Client(), t.TempDir(), WithRetryDelay(0))
		var progress bytes.Buffer
		batch := NewBatch(fetcher, WithProgressWriter(&progress))

		refs := []model.ImageReference{
			{Name: "fig1", SourceURL: server.URL + "/fig1.png"},
			{Name: "fig2", SourceURL: server.URL + "/missing.png"},
			{Name: "fig3", SourceURL: server.URL + "/fig3.png"},
		}

		succeeded, total := batch.Run(context.Background(), refs)
		if total != 3 {
			t.Errorf("expected total 3, got %d", total)
		}
		if succeeded != 2 {
			t.Errorf("expected 2 successes, got %d", succeeded)
		}

		out := progress.String()
		if !strings.Contains(out, "[1/3] downloading fig1...") {
			t.Errorf("expected first progress line, got:\n%s", out)
		}
		if !strings.Contains(out, "[2/3] failed: fig2") {
			t.Errorf("expected failure line for fig2, got:\n%s", out)
		}
		if !strings.Contains(out, "[3/3] downloading fig3...") {
			t.Errorf("expected last progress line, got:\n%s", out)
		}
	})

	t.Run("cancellation returns the tally so far", func(t *testing.T) {
		t.Parallel()

		fetcher := NewFetcher(&http.Client{}, t.TempDir(), WithRetryDelay(0))
		batch := NewBatch(fetcher, WithProgressWriter(&bytes.Buffer{}))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		refs := []model.ImageReference{
			{Name: "fig1", SourceURL: "http://example.invalid/fig1.png"},
		}
		succeeded, total := batch.Run(ctx, refs)
		if succeeded != 0 {
			t.Errorf("expected 0 successes, got %d", succeeded)
		}
		if total != 1 {
			t.Errorf("expected total 1, got %d", total)
		}
	})
}
