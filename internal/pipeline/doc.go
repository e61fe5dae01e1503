// Package pipeline orchestrates the imgscribe stages as sequences of steps.
//
// The fetch pipeline runs scan then download; the transcribe pipeline runs
// the engine check then the report build. Steps share a *model.RunResult
// and execute strictly in order; the first error stops the pipeline, which
// is how fatal preconditions (missing input directory, unreachable OCR
// engine) abort a run before any output is touched.
package pipeline
