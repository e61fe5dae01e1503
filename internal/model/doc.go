// Package model defines the core data structures shared by the imgscribe
// pipeline stages.
//
// This package contains the following main types:
//   - ImageReference: A (name, source URL) pair extracted from markup
//   - DownloadOutcome: The result of fetching a single ImageReference
//   - RunResult: Accumulated state passed through pipeline steps
//   - TranscriptionSummary: The result of the transcription stage
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (extract, fetch, report, pipeline) need to
// use these types, so centralizing them prevents import cycles.
package model
