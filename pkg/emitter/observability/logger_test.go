package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHandler captures log records as JSON lines.
type testHandler struct {
	buf   *bytes.Buffer
	level slog.Level
	attrs []slog.Attr
}

func newTestHandler() *testHandler {
	return &testHandler{
		buf:   &bytes.Buffer{},
		level: slog.LevelDebug,
	}
}

func (h *testHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *testHandler) Handle(_ context.Context, r slog.Record) error {
	data := map[string]any{
		"level": r.Level.String(),
		"msg":   r.Message,
	}
	for _, attr := range h.attrs {
		data[attr.Key] = attr.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		data[a.Key] = a.Value.Any()
		return true
	})
	return json.NewEncoder(h.buf).Encode(data)
}

func (h *testHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &testHandler{buf: h.buf, level: h.level, attrs: merged}
}

func (h *testHandler) WithGroup(_ string) slog.Handler {
	return h
}

func (h *testHandler) records(t *testing.T) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(h.buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		out = append(out, rec)
	}
	return out
}

func TestEnrichLogger(t *testing.T) {
	t.Run("adds emitter fields", func(t *testing.T) {
		h := newTestHandler()
		logger := EnrichLogger(slog.New(h), "em-1")
		logger.Info("hello")

		recs := h.records(t)
		require.Len(t, recs, 1)
		assert.Equal(t, "emitter", recs[0]["component"])
		assert.Equal(t, "em-1", recs[0]["emitter_id"])
	})

	t.Run("nil logger", func(t *testing.T) {
		assert.Nil(t, EnrichLogger(nil, "em-1"))
	})
}

func TestLogUnhandledError(t *testing.T) {
	h := newTestHandler()
	LogUnhandledError(slog.New(h), "error", []any{"boom", 2})

	recs := h.records(t)
	require.Len(t, recs, 1)
	assert.Equal(t, "WARN", recs[0]["level"])
	assert.Equal(t, "unhandled error resolution", recs[0]["msg"])
	assert.Equal(t, "error", recs[0]["channel"])
	assert.Equal(t, "[boom 2]", recs[0]["args"])
}

func TestLogUnhandledException(t *testing.T) {
	h := newTestHandler()
	LogUnhandledException(slog.New(h), "catch", nil)

	recs := h.records(t)
	require.Len(t, recs, 1)
	assert.Equal(t, "unhandled exception", recs[0]["msg"])
	assert.Equal(t, "[]", recs[0]["args"])
}

func TestLogDeliveryFailure(t *testing.T) {
	h := newTestHandler()
	LogDeliveryFailure(slog.New(h), "done", "catch", errors.New("callback failed"))

	recs := h.records(t)
	require.Len(t, recs, 1)
	assert.Equal(t, "DEBUG", recs[0]["level"])
	assert.Equal(t, "done", recs[0]["channel"])
	assert.Equal(t, "catch", recs[0]["route"])
	assert.Equal(t, "callback failed", recs[0]["error"])
}

func TestLogReplayAndDestroyed(t *testing.T) {
	h := newTestHandler()
	logger := slog.New(h)
	LogReplay(logger, "notify", 3)
	LogDestroyed(logger, 7)

	recs := h.records(t)
	require.Len(t, recs, 2)
	assert.Equal(t, float64(3), recs[0]["count"])
	assert.Equal(t, float64(7), recs[1]["channels"])
}

func TestLogHandlerPanic(t *testing.T) {
	h := newTestHandler()
	LogHandlerPanic(slog.New(h), "kaboom")

	recs := h.records(t)
	require.Len(t, recs, 1)
	assert.Equal(t, "ERROR", recs[0]["level"])
	assert.Equal(t, "kaboom", recs[0]["panic"])
}

func TestLogHelpersNilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		LogUnhandledError(nil, "error", nil)
		LogUnhandledException(nil, "catch", nil)
		LogDeliveryFailure(nil, "done", "catch", errors.New("x"))
		LogReplay(nil, "done", 1)
		LogDestroyed(nil, 1)
		LogHandlerPanic(nil, "x")
	})
}
