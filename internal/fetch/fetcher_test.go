package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/imgscribe/imgscribe/internal/model"
)

// TestFetcherFetch tests single-image downloads against a local server.
func TestFetcherFetch(t *testing.T) {
	t.Parallel()

	t.Run("downloads and stores the image", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "image/png")
			w.Write([]byte("png-bytes"))
		}))
		defer server.Close()

		dir := t.TempDir()
		fetcher := NewFetcher(server.Client(), dir, WithRetryDelay(0))

		outcome := fetcher.Fetch(context.Background(), model.ImageReference{
			Name:      "fig1",
			SourceURL: server.URL + "/fig1.png",
		})

		if !outcome.Succeeded {
			t.Fatal("expected success")
		}
		wantPath := filepath.Join(dir, "fig1.png")
		if outcome.FinalPath != wantPath {
			t.Errorf("expected path %q, got %q", wantPath, outcome.FinalPath)
		}
		data, err := os.ReadFile(wantPath)
		if err != nil {
			t.Fatalf("stored file unreadable: %v", err)
		}
		if string(data) != "png-bytes" {
			t.Errorf("expected body 'png-bytes', got %q", data)
		}
	})

	t.Run("extension comes from content type when url has none", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "image/gif")
			w.Write([]byte("gif-bytes"))
		}))
		defer server.Close()

		dir := t.TempDir()
		fetcher := NewFetcher(server.Client(), dir, WithRetryDelay(0))

		outcome := fetcher.Fetch(context.Background(), model.ImageReference{
			Name:      "fig1",
			SourceURL: server.URL + "/download?id=42",
		})

		if !outcome.Succeeded {
			t.Fatal("expected success")
		}
		if filepath.Base(outcome.FinalPath) != "fig1.gif" {
			t.Errorf("expected filename fig1.gif, got %q", filepath.Base(outcome.FinalPath))
		}
	})

	t.Run("404 gives up after exactly one attempt", func(t *testing.T) {
		t.Parallel()

		var requests atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			requests.Add(1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		fetcher := NewFetcher(server.Client(), t.TempDir(),
			WithMaxRetries(5),
			WithRetryDelay(0),
		)

		outcome := fetcher.Fetch(context.Background(), model.ImageReference{
			Name:      "fig1",
			SourceURL: server.URL + "/missing.png",
		})

		if outcome.Succeeded {
			t.Error("expected failure")
		}
		if got := requests.Load(); got != 1 {
			t.Errorf("expected exactly 1 request, got %d", got)
		}
	})

	t.Run("persistent 500 exhausts exactly maxRetries attempts", func(t *testing.T) {
		t.Parallel()

		var requests atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			requests.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		fetcher := NewFetcher(server.Client(), t.TempDir(),
			WithMaxRetries(3),
			WithRetryDelay(0),
		)

		outcome := fetcher.Fetch(context.Background(), model.ImageReference{
			Name:      "fig1",
			SourceURL: server.URL + "/flaky.png",
		})

		if outcome.Succeeded {
			t.Error("expected failure")
		}
		if got := requests.Load(); got != 3 {
			t.Errorf("expected exactly 3 requests, got %d", got)
		}
	})

	t.Run("transient 500 recovers on retry", func(t *testing.T) {
		t.Parallel()

		var requests atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if requests.Add(1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte("png-bytes"))
		}))
		defer server.Close()

		fetcher := NewFetcher(server.Client(), t.TempDir(),
			WithMaxRetries(3),
			WithRetryDelay(0),
		)

		outcome := fetcher.Fetch(context.Background(), model.ImageReference{
			Name:      "fig1",
			SourceURL: server.URL + "/flaky.png",
		})

		if !outcome.Succeeded {
			t.Fatal("expected success after retry")
		}
		if got := requests.Load(); got != 2 {
			t.Errorf("expected 2 requests, got %d", got)
		}
	})

	t.Run("existing file is kept and counts as success", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("fresh-bytes"))
		}))
		defer server.Close()

		dir := t.TempDir()
		existing := filepath.Join(dir, "fig1.png")
		if err := os.WriteFile(existing, []byte("old-bytes"), 0644); err != nil {
			t.Fatal(err)
		}

		fetcher := NewFetcher(server.Client(), dir, WithRetryDelay(0))
		outcome := fetcher.Fetch(context.Background(), model.ImageReference{
			Name:      "fig1",
			SourceURL: server.URL + "/fig1.png",
		})

		if !outcome.Succeeded {
			t.Fatal("expected success")
		}
		data, err := os.ReadFile(existing)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "old-bytes" {
			t.Errorf("existing file was overwritten: got %q", data)
		}
	})

	t.Run("storage failure gives up after one attempt", func(t *testing.T) {
		t.Parallel()

		var requests atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			requests.Add(1)
			w.Write([]byte("png-bytes"))
		}))
		defer server.Close()

		// A regular file where the image directory should be makes every
		// write fail locally.
		blocked := filepath.Join(t.TempDir(), "pics")
		if err := os.WriteFile(blocked, []byte("in the way"), 0644); err != nil {
			t.Fatal(err)
		}

		fetcher := NewFetcher(server.Client(), blocked,
			WithMaxRetries(5),
			WithRetryDelay(0),
		)

		outcome := fetcher.Fetch(context.Background(), model.ImageReference{
			Name:      "fig1",
			SourceURL: server.URL + "/fig1.png",
		})

		if outcome.Succeeded {
			t.Error("expected failure")
		}
		if got := requests.Load(); got != 1 {
			t.Errorf("expected exactly 1 request, got %d", got)
		}
	})

	t.Run("creates the image directory on demand", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("png-bytes"))
		}))
		defer server.Close()

		dir := filepath.Join(t.TempDir(), "pics")
		fetcher := NewFetcher(server.Client(), dir, WithRetryDelay(0))

		outcome := fetcher.Fetch(context.Background(), model.ImageReference{
			Name:      "fig1",
			SourceURL: server.URL + "/fig1.png",
		})

		if !outcome.Succeeded {
			t.Fatal("expected success")
		}
		if _, err := os.Stat(filepath.Join(dir, "fig1.png")); err != nil {
			t.Errorf("expected stored file: %v", err)
		}
	})

	t.Run("unreachable server fails without panicking", func(t *testing.T) {
		t.Parallel()

		// Reserve a port, then close it so connections are refused.
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		fetcher := NewFetcher(&http.Client{}, t.TempDir(),
			WithMaxRetries(2),
			WithRetryDelay(0),
		)

		outcome := fetcher.Fetch(context.Background(), model.ImageReference{
			Name:      "fig1",
			SourceURL: url + "/fig1.png",
		})
		if outcome.Succeeded {
			t.Error("expected failure")
		}
	})
}
