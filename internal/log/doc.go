// Package log provides logging utilities for imgscribe.
//
// The main component is TruncateHandler, an slog.Handler wrapper that
// caps the length of string attribute values. Recognized OCR text and
// raw markup lines can run to tens of kilobytes; logging them whole
// makes the debug output unreadable.
package log
