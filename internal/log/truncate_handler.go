package log

import (
	"context"
	"log/slog"
	"unicode/utf8"
)

// DefaultMaxValueLen is the attribute value cap used by NewTruncateHandler.
// Long enough to keep URLs and paths intact, short enough that a page of
// recognized text cannot flood the log.
const DefaultMaxValueLen = 256

// truncationMarker is appended to values that were cut.
const truncationMarker = "...(truncated)"

// TruncateHandler wraps an slog.Handler and truncates oversized string
// attribute values before passing records on.
//
// Design decision: We use a handler wrapper rather than trimming at each
// call site because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites stay free to log whatever value they have
type TruncateHandler struct {
	// handler is the underlying slog handler receiving trimmed records.
	handler slog.Handler

	// maxLen is the maximum string value length in bytes.
	maxLen int
}

// NewTruncateHandler creates a TruncateHandler wrapping the given handler
// with the default value cap. If handler is nil, slog.Default()'s handler
// is used.
func NewTruncateHandler(handler slog.Handler) *TruncateHandler {
	return NewTruncateHandlerWithLimit(handler, DefaultMaxValueLen)
}

// NewTruncateHandlerWithLimit creates a TruncateHandler with an explicit
// value cap. A non-positive limit falls back to the default.
func NewTruncateHandlerWithLimit(handler slog.Handler, maxLen int) *TruncateHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxValueLen
	}
	return &TruncateHandler{handler: handler, maxLen: maxLen}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *TruncateHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle trims the record's attributes and passes it on.
func (h *TruncateHandler) Handle(ctx context.Context, r slog.Record) error {
	trimmed := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		trimmed.AddAttrs(h.truncateAttr(a))
		return true
	})

	return h.handler.Handle(ctx, trimmed)
}

// WithAttrs returns a new TruncateHandler whose underlying handler has
// the given (trimmed) attributes attached.
func (h *TruncateHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	trimmed := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		trimmed = append(trimmed, h.truncateAttr(a))
	}
	return &TruncateHandler{handler: h.handler.WithAttrs(trimmed), maxLen: h.maxLen}
}

// WithGroup returns a new TruncateHandler with the given group opened on
// the underlying handler.
func (h *TruncateHandler) WithGroup(name string) slog.Handler {
	return &TruncateHandler{handler: h.handler.WithGroup(name), maxLen: h.maxLen}
}

// truncateAttr caps string values, recursing into groups.
func (h *TruncateHandler) truncateAttr(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		s := a.Value.String()
		if len(s) > h.maxLen {
			cut := h.maxLen
			// Back off to a rune boundary so Cyrillic OCR text is
			// not cut mid-character.
			for cut > 0 && !utf8.RuneStart(s[cut]) {
				cut--
			}
			a.Value = slog.StringValue(s[:cut] + truncationMarker)
		}
	case slog.KindGroup:
		members := a.Value.Group()
		trimmed := make([]slog.Attr, 0, len(members))
		for _, m := range members {
			trimmed = append(trimmed, h.truncateAttr(m))
		}
		a.Value = slog.GroupValue(trimmed...)
	default:
		// Non-string scalars are already bounded.
	}
	return a
}
