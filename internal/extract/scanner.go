package extract

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/imgscribe/imgscribe/internal/model"
)

// Scanner reads every regular file in a directory and aggregates the
// image references found on its lines.
//
// Design decision: the whole file is read into memory before splitting
// into lines. Input files are small HTML snippets, and having the full
// content up front lets us validate the encoding once and re-decode the
// entire file on the Windows-1251 fallback path instead of guessing
// per line.
type Scanner struct {
	// logger for per-match and per-file diagnostics.
	logger *slog.Logger
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithScannerLogger sets a custom logger for the scanner.
func WithScannerLogger(logger *slog.Logger) ScannerOption {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// NewScanner creates a Scanner.
func NewScanner(opts ...ScannerOption) *Scanner {
	s := &Scanner{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Scan walks the regular files of dir and returns all image references,
// in file-then-line order of discovery. A file that cannot be read or
// decoded is logged and skipped; only a missing or unreadable directory
// aborts the scan.
func (s *Scanner) Scan(ctx context.Context, dir string) ([]model.ImageReference, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %s: %w", dir, err)
	}

	refs := make([]model.ImageReference, 0)
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return refs, ctx.Err()
		default:
		}

		if !entry.Type().IsRegular() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		fileRefs, err := s.scanFile(path)
		if err != nil {
			s.logger.Warn("skipping unreadable file",
				"file", path,
				"error", err,
			)
			continue
		}
		refs = append(refs, fileRefs...)
	}

	return refs, nil
}

// scanFile extracts references from a single file.
func (s *Scanner) scanFile(path string) ([]model.ImageReference, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Scanning user-supplied input files is the point
	if err != nil {
		return nil, err
	}

	// UTF-8 is the primary encoding. Legacy snippets saved by Windows
	// tools come in as Windows-1251, so retry the whole file with that
	// decoder before giving up on it.
	if !utf8.Valid(data) {
		decoded, err := decodeWindows1251(data)
		if err != nil {
			return nil, fmt.Errorf("not valid UTF-8 and Windows-1251 decoding failed: %w", err)
		}
		s.logger.Debug("decoded file as Windows-1251", "file", path)
		data = decoded
	}

	refs := make([]model.ImageReference, 0)
	sc := bufio.NewScanner(bytes.NewReader(data))
	lineNumber := 0
	for sc.Scan() {
		lineNumber++
		ref, ok := ParseImgTag(sc.Text())
		if !ok {
			continue
		}
		refs = append(refs, ref)
		s.logger.Debug("found image reference",
			"file", filepath.Base(path),
			"line", lineNumber,
			"name", ref.Name,
			"src", ref.SourceURL,
		)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return refs, nil
}

// decodeWindows1251 converts Windows-1251 bytes to UTF-8.
func decodeWindows1251(data []byte) ([]byte, error) {
	decoded, _, err := transform.Bytes(charmap.Windows1251.NewDecoder(), data)
	if err != nil {
		return nil, err
	}
	return decoded, nil
}
