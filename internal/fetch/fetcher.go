package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/imgscribe/imgscribe/internal/config"
	"github.com/imgscribe/imgscribe/internal/model"
)

// Fetcher downloads single images into the image directory.
//
// Design decision: We require an external *http.Client rather than
// constructing one because:
//  1. The per-attempt timeout is client configuration, owned by the caller
//  2. Tests can substitute an httptest client
//  3. One client is shared across the whole batch, reusing connections
type Fetcher struct {
	// client performs the GET requests. Its Timeout bounds each attempt.
	client *http.Client

	// dir is the image directory, created on demand before the first write.
	dir string

	// maxRetries is the maximum number of attempts per reference.
	maxRetries int

	// retryDelay is the fixed pause before attempts 2..n.
	retryDelay time.Duration

	// chunkSize is the buffer size for streaming the body to disk.
	chunkSize int

	// userAgent is sent with every request.
	userAgent string

	// logger for per-attempt diagnostics.
	logger *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithMaxRetries sets the maximum number of download attempts.
func WithMaxRetries(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxRetries = n
		}
	}
}

// WithRetryDelay sets the fixed pause before retry attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.retryDelay = d
	}
}

// WithChunkSize sets the streaming buffer size.
func WithChunkSize(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.chunkSize = n
		}
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithLogger sets a custom logger for the fetcher.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a Fetcher storing images under dir.
func NewFetcher(client *http.Client, dir string, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:     client,
		dir:        dir,
		maxRetries: config.DefaultMaxRetries,
		retryDelay: config.DefaultRetryDelay,
		chunkSize:  config.DefaultChunkSize,
		userAgent:  config.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.logger == nil {
		f.logger = slog.Default()
	}

	return f
}

// Fetch downloads one referenced image, retrying transient failures up to
// the configured attempt cap. A file already present at the computed path
// counts as success without re-downloading. The outcome reports failure
// after a 404, a local storage error, or retry exhaustion; the fetcher
// never deletes or overwrites a pre-existing file.
func (f *Fetcher) Fetch(ctx context.Context, ref model.ImageReference) model.DownloadOutcome {
	for attempt := 1; attempt <= f.maxRetries; attempt++ {
		// Fixed pause between attempts so a struggling server is not
		// hammered back to back.
		if attempt > 1 {
			select {
			case <-ctx.Done():
				f.logger.Warn("download cancelled", "name", ref.Name)
				return model.DownloadOutcome{}
			case <-time.After(f.retryDelay):
			}
		}

		f.logger.Debug("downloading",
			"name", ref.Name,
			"url", ref.SourceURL,
			"attempt", attempt,
		)

		path, err := f.attempt(ctx, ref)
		if err == nil {
			return model.DownloadOutcome{Succeeded: true, FinalPath: path}
		}

		switch classify(err) {
		case failureNotFound:
			// Retrying a permanently missing resource is pointless.
			f.logger.Warn("resource not found, giving up",
				"name", ref.Name,
				"url", ref.SourceURL,
			)
			return model.DownloadOutcome{}
		case failureStorage:
			f.logger.Error("storage failure, giving up",
				"name", ref.Name,
				"error", err,
			)
			return model.DownloadOutcome{}
		case failureTimeout:
			f.logger.Warn("download timed out",
				"name", ref.Name,
				"attempt", attempt,
			)
		case failureHTTP:
			f.logger.Warn("http error",
				"name", ref.Name,
				"attempt", attempt,
				"error", err,
			)
		case failureTransport:
			f.logger.Warn("network error",
				"name", ref.Name,
				"attempt", attempt,
				"error", err,
			)
		case failureUnknown:
			f.logger.Warn("unexpected download error",
				"name", ref.Name,
				"attempt", attempt,
				"error", err,
			)
		}
	}

	f.logger.Warn("download failed after all attempts",
		"name", ref.Name,
		"attempts", f.maxRetries,
	)
	return model.DownloadOutcome{}
}

// attempt performs a single GET and persists the body. It returns the
// final path on success; errors come back classified via the types in
// errors.go.
func (f *Fetcher) attempt(ctx context.Context, ref model.ImageReference) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref.SourceURL, nil)
	if err != nil {
		return "", fmt.Errorf("invalid request for %s: %w", ref.SourceURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &HTTPError{StatusCode: resp.StatusCode}
	}

	ext := inferExtension(ref.SourceURL, resp.Header.Get("Content-Type"))
	path := filepath.Join(f.dir, ensureExtension(ref.Name, ext))

	// A file already on disk is proof of a prior successful download;
	// content is never re-validated.
	if _, err := os.Stat(path); err == nil {
		f.logger.Debug("file already exists, skipping", "path", path)
		return path, nil
	}

	if err := os.MkdirAll(f.dir, 0750); err != nil {
		return "", &StorageError{Err: err}
	}

	if err := f.stream(resp.Body, path); err != nil {
		return "", err
	}

	f.logger.Debug("downloaded", "path", path)
	return path, nil
}

// stream copies the response body to path in fixed-size chunks, skipping
// empty reads. On any failure the partial file is removed so that on-disk
// presence stays a reliable marker of a completed download.
func (f *Fetcher) stream(body io.Reader, path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644) //nolint:gosec // Images are not secrets
	if err != nil {
		return &StorageError{Err: err}
	}

	buf := make([]byte, f.chunkSize)
	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			if _, writeErr := file.Write(buf[:n]); writeErr != nil {
				file.Close()
				os.Remove(path)
				return &StorageError{Err: writeErr}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			// Body read failures are transport problems: drop the
			// partial file and let the retry loop decide.
			file.Close()
			os.Remove(path)
			return readErr
		}
	}

	if err := file.Close(); err != nil {
		os.Remove(path)
		return &StorageError{Err: err}
	}
	return nil
}
