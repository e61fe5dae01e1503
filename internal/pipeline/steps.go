package pipeline

import (
	"context"
	"fmt"

	"github.com/imgscribe/imgscribe/internal/extract"
	"github.com/imgscribe/imgscribe/internal/fetch"
	"github.com/imgscribe/imgscribe/internal/model"
	"github.com/imgscribe/imgscribe/internal/ocr"
	"github.com/imgscribe/imgscribe/internal/report"
)

// ScanStep aggregates image references from the input directory.
type ScanStep struct {
	// scanner reads and parses the snippet files.
	scanner *extract.Scanner

	// inputDir is the directory of HTML snippet files.
	inputDir string
}

// NewScanStep creates a scan step over inputDir.
func NewScanStep(scanner *extract.Scanner, inputDir string) *ScanStep {
	return &ScanStep{scanner: scanner, inputDir: inputDir}
}

// Name returns the step name.
func (s *ScanStep) Name() string {
	return "scan"
}

// Do scans the input directory and stores the references on the result.
// A missing input directory is fatal: there is nothing to download.
func (s *ScanStep) Do(ctx context.Context, result *model.RunResult) error {
	refs, err := s.scanner.Scan(ctx, s.inputDir)
	if err != nil {
		return err
	}
	result.References = refs
	return nil
}

// DownloadStep runs the batch downloader over the scanned references.
type DownloadStep struct {
	// batch drives the sequential downloads.
	batch *fetch.Batch
}

// NewDownloadStep creates a download step around the given batch.
func NewDownloadStep(batch *fetch.Batch) *DownloadStep {
	return &DownloadStep{batch: batch}
}

// Name returns the step name.
func (s *DownloadStep) Name() string {
	return "download"
}

// Do downloads every reference and records the tally. Individual
// download failures are absorbed by the batch; only cancellation is
// surfaced as an error.
func (s *DownloadStep) Do(ctx context.Context, result *model.RunResult) error {
	result.Succeeded, result.Total = s.batch.Run(ctx, result.References)
	return ctx.Err()
}

// VerifyEngineStep checks the OCR engine before any report work begins.
// It runs first in the transcribe pipeline so an unreachable engine
// aborts the run before the previous report is touched.
type VerifyEngineStep struct {
	// engine is the OCR engine to check.
	engine ocr.Engine
}

// NewVerifyEngineStep creates the engine precondition step.
func NewVerifyEngineStep(engine ocr.Engine) *VerifyEngineStep {
	return &VerifyEngineStep{engine: engine}
}

// Name returns the step name.
func (s *VerifyEngineStep) Name() string {
	return "verify_engine"
}

// Do verifies the engine is usable.
func (s *VerifyEngineStep) Do(_ context.Context, _ *model.RunResult) error {
	if err := s.engine.Verify(); err != nil {
		return fmt.Errorf("OCR engine unavailable: %w", err)
	}
	return nil
}

// TranscribeStep builds the markdown transcription document.
type TranscribeStep struct {
	// builder produces the document.
	builder *report.Builder
}

// NewTranscribeStep creates a transcribe step around the given builder.
func NewTranscribeStep(builder *report.Builder) *TranscribeStep {
	return &TranscribeStep{builder: builder}
}

// Name returns the step name.
func (s *TranscribeStep) Name() string {
	return "transcribe"
}

// Do builds the document and records the summary on the result.
func (s *TranscribeStep) Do(ctx context.Context, result *model.RunResult) error {
	summary, err := s.builder.Build(ctx)
	if err != nil {
		return err
	}
	result.Transcription = summary
	return nil
}
