package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/imgscribe/imgscribe/internal/model"
	"github.com/imgscribe/imgscribe/internal/ocr"
)

// reportExtensions is the set of image extensions the transcription
// stage picks up from the image folder. Note it differs from the
// download set: TIFFs dropped into the folder by hand are transcribed,
// while WebP and SVG are not (Tesseract reads neither).
var reportExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tiff": true,
	".gif":  true,
}

// Builder produces the markdown transcription document.
type Builder struct {
	// imageDir is the folder of stored images to transcribe.
	imageDir string

	// outputPath is the markdown document path, truncated each run.
	outputPath string

	// engine performs the text recognition.
	engine ocr.Engine

	// includeEXIF adds a per-image metadata table when EXIF is present.
	includeEXIF bool

	// progress receives the per-image [i/total] lines.
	progress io.Writer

	// logger for build diagnostics.
	logger *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithEXIF enables the per-image EXIF metadata table.
func WithEXIF(enabled bool) BuilderOption {
	return func(b *Builder) {
		b.includeEXIF = enabled
	}
}

// WithProgressWriter redirects the per-image progress output.
// Defaults to stdout.
func WithProgressWriter(w io.Writer) BuilderOption {
	return func(b *Builder) {
		b.progress = w
	}
}

// WithBuilderLogger sets a custom logger for the builder.
func WithBuilderLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

// NewBuilder creates a Builder reading images from imageDir and writing
// the document to outputPath.
func NewBuilder(imageDir, outputPath string, engine ocr.Engine, opts ...BuilderOption) *Builder {
	b := &Builder{
		imageDir:   imageDir,
		outputPath: outputPath,
		engine:     engine,
		progress:   os.Stdout,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

// Build transcribes every image in the folder and writes the document.
//
// Callers must verify the engine first (pipeline.VerifyEngineStep); an
// unusable engine must abort the run before the previous report, if any,
// is touched. Per-image recognition problems never abort the run; they
// appear in the document as the engine's sentinel texts.
func (b *Builder) Build(ctx context.Context) (*model.TranscriptionSummary, error) {
	images, err := b.listImages()
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		b.logger.Info("no images to transcribe", "dir", b.imageDir)
		return &model.TranscriptionSummary{ReportPath: b.outputPath}, nil
	}

	file, err := os.OpenFile(b.outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644) //nolint:gosec // Lecture notes are not secrets
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	md := markdown.NewMarkdown(file)
	for i, name := range images {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		fmt.Fprintf(b.progress, "[%d/%d] processing %s\n", i+1, len(images), name)

		path := filepath.Join(b.imageDir, name)
		text := b.engine.Recognize(path)
		b.writeSection(md, name, path, text)

		b.logger.Debug("transcribed image",
			"image", name,
			"characters", len(text),
		)
	}

	if err := md.Build(); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}

	return &model.TranscriptionSummary{
		ImagesProcessed: len(images),
		ReportPath:      b.outputPath,
	}, nil
}

// writeSection appends one image's block: header, optional EXIF table,
// recognized text, separator.
func (b *Builder) writeSection(md *markdown.Markdown, name, path, text string) {
	md.H1(name)
	md.PlainText("")

	if b.includeEXIF {
		b.writeMetadata(md, path)
	}

	md.PlainText(text)
	md.PlainText("")
	md.HorizontalRule()
	md.PlainText("")
}

// writeMetadata inserts the EXIF table when the image carries metadata.
// Images without EXIF get no table; unreadable files are only logged
// since recognition already produced its own sentinel for them.
func (b *Builder) writeMetadata(md *markdown.Markdown, path string) {
	fields, err := imageMetadata(path)
	if err != nil {
		b.logger.Warn("failed to read image metadata", "image", path, "error", err)
		return
	}
	if len(fields) == 0 {
		return
	}

	rows := make([][]string, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, []string{f.Name, f.Value})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Tag", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// listImages returns the transcribable filenames of the image folder in
// lexicographic order (os.ReadDir already sorts by filename).
func (b *Builder) listImages() ([]string, error) {
	entries, err := os.ReadDir(b.imageDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read image directory %s: %w", b.imageDir, err)
	}

	images := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if reportExtensions[ext] {
			images = append(images, entry.Name())
		}
	}
	return images, nil
}
