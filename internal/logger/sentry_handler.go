package logger

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
)

// SentryHandler wraps an slog.Handler and reports errors to Sentry
type SentryHandler struct {
	handler slog.Handler
	attrs   []slog.Attr
	capture func(err error, message string, extra map[string]any)
}

// NewSentryHandler creates a new SentryHandler wrapping the given handler
func NewSentryHandler(handler slog.Handler) *SentryHandler {
	return &SentryHandler{handler: handler, capture: captureWithScope}
}

func captureWithScope(err error, message string, extra map[string]any) {
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentry.LevelError)
		scope.SetTag("log_message", message)
		scope.SetExtras(extra)
		sentry.CaptureException(err)
	})
}

// Enabled reports whether the handler handles records at the given level
func (h *SentryHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle forwards the record and, for Error level records carrying an
// "error" attribute, reports that error with the other attributes as extras.
func (h *SentryHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		var reported error
		extra := make(map[string]any, len(h.attrs)+r.NumAttrs())
		for _, a := range h.attrs {
			extra[a.Key] = a.Value.Any()
		}
		r.Attrs(func(a slog.Attr) bool {
			if err, ok := a.Value.Any().(error); ok && a.Key == "error" {
				reported = err
				return true
			}
			extra[a.Key] = a.Value.Any()
			return true
		})
		if reported != nil {
			h.capture(reported, r.Message, extra)
		}
	}
	return h.handler.Handle(ctx, r)
}

// WithAttrs returns a new handler with the given attributes
func (h *SentryHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &SentryHandler{handler: h.handler.WithAttrs(attrs), attrs: merged, capture: h.capture}
}

// WithGroup returns a new handler with the given group name
func (h *SentryHandler) WithGroup(name string) slog.Handler {
	return &SentryHandler{handler: h.handler.WithGroup(name), attrs: h.attrs, capture: h.capture}
}
