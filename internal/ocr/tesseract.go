package ocr

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract is the gosseract-backed Engine implementation.
//
// Recognition runs in page-segmentation mode 6 (assume a single uniform
// block of text), which suits dense lecture slides far better than the
// automatic layout analysis default.
type Tesseract struct {
	// language is the Tesseract language model, e.g. "rus".
	language string

	// logger for recognition diagnostics.
	logger *slog.Logger
}

// TesseractOption configures a Tesseract engine.
type TesseractOption func(*Tesseract)

// WithTesseractLogger sets a custom logger for the engine.
func WithTesseractLogger(logger *slog.Logger) TesseractOption {
	return func(t *Tesseract) {
		t.logger = logger
	}
}

// NewTesseract creates a Tesseract engine fixed to one language model.
func NewTesseract(language string, opts ...TesseractOption) *Tesseract {
	t := &Tesseract{language: language}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	return t
}

// Verify checks that the Tesseract engine is reachable and that the
// configured language pack is installed.
func (t *Tesseract) Verify() error {
	client := gosseract.NewClient()
	defer client.Close()

	languages, err := client.GetAvailableLanguages()
	if err != nil {
		return fmt.Errorf("tesseract is not available: %w", err)
	}
	if !slices.Contains(languages, t.language) {
		return fmt.Errorf("tesseract language %q is not installed (available: %s)",
			t.language, strings.Join(languages, ", "))
	}

	t.logger.Debug("tesseract verified",
		"version", client.Version(),
		"language", t.language,
	)
	return nil
}

// Recognize extracts text from the image at path. Per the Engine
// contract it never returns an error: problems come back as sentinel
// placeholder strings.
func (t *Tesseract) Recognize(imagePath string) string {
	if _, err := os.Stat(imagePath); err != nil {
		return fmt.Sprintf(sentinelNotFoundFormat, imagePath)
	}

	text, err := t.recognize(imagePath)
	if err != nil {
		t.logger.Warn("recognition failed", "image", imagePath, "error", err)
		return fmt.Sprintf(sentinelFailureFormat, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return SentinelNoText
	}
	return text
}

// recognize runs a single Tesseract pass over the image.
//
// A fresh client per image keeps recognitions independent: gosseract
// clients carry internal state, and one corrupt image must not poison
// the rest of the run.
func (t *Tesseract) recognize(imagePath string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.language); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognition failed: %w", err)
	}
	return text, nil
}
