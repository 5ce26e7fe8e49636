package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	err     error
	message string
	extra   map[string]any
}

func newTestHandler(buf *bytes.Buffer) (*SentryHandler, *[]captured) {
	var calls []captured
	h := NewSentryHandler(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h.capture = func(err error, message string, extra map[string]any) {
		calls = append(calls, captured{err, message, extra})
	}
	return h, &calls
}

func TestSentryHandler_ReportsErrors(t *testing.T) {
	var buf bytes.Buffer
	h, calls := newTestHandler(&buf)
	log := slog.New(h).With("user_id", "42")

	cause := errors.New("missing access")
	log.Error("failed to post poll", "error", cause, "channel_id", "C")

	require.Len(t, *calls, 1)
	got := (*calls)[0]
	assert.Equal(t, cause, got.err)
	assert.Equal(t, "failed to post poll", got.message)
	assert.Equal(t, "42", got.extra["user_id"])
	assert.Equal(t, "C", got.extra["channel_id"])
	assert.NotContains(t, got.extra, "error")
	assert.Contains(t, buf.String(), "failed to post poll")
}

func TestSentryHandler_SkipsBelowError(t *testing.T) {
	var buf bytes.Buffer
	h, calls := newTestHandler(&buf)
	log := slog.New(h)

	log.Warn("failed to delete message", "error", errors.New("forbidden"))
	log.Info("poll posted")

	assert.Empty(t, *calls)
	assert.Contains(t, buf.String(), "failed to delete message")
}

func TestSentryHandler_SkipsErrorsWithoutCause(t *testing.T) {
	var buf bytes.Buffer
	h, calls := newTestHandler(&buf)

	slog.New(h).Error("something odd", "error", "not an error value")

	assert.Empty(t, *calls)
}
