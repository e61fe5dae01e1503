package model

import "time"

// RunResult accumulates the state of a pipeline run. Steps read what
// earlier steps produced and record their own results here.
//
// Design decision: a single mutable result struct threaded through the
// pipeline keeps the Step interface uniform; each stage uses only the
// fields relevant to it.
type RunResult struct {
	// StartedAt is the timestamp when the run began.
	StartedAt time.Time

	// References are the image references aggregated by the scan step,
	// in file-then-line discovery order.
	References []ImageReference

	// Succeeded is the number of references the download step stored
	// (including idempotent skips of already-present files).
	Succeeded int

	// Total is the number of references the download step attempted.
	Total int

	// Transcription holds the transcription stage summary, nil until
	// the report step has run.
	Transcription *TranscriptionSummary
}

// NewRunResult creates a RunResult stamped with the current time.
func NewRunResult() *RunResult {
	return &RunResult{StartedAt: time.Now()}
}

// TranscriptionSummary describes a completed transcription run.
type TranscriptionSummary struct {
	// ImagesProcessed is the number of images the report covers.
	ImagesProcessed int

	// ReportPath is the path of the written markdown document.
	ReportPath string
}
