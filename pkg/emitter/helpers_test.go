package emitter

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/randalmurphal/emitkit/pkg/emitter/unhandled"
)

// syncBuffer is a goroutine-safe log sink.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) count(substr string) int {
	return strings.Count(b.String(), substr)
}

func newBufferLogger() (*slog.Logger, *syncBuffer) {
	buf := &syncBuffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

// unhandledSink collects notifications from a private registry.
type unhandledSink struct {
	mu    sync.Mutex
	calls [][]any
}

func (s *unhandledSink) handler(args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, args)
}

func (s *unhandledSink) snapshot() [][]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]any, len(s.calls))
	copy(out, s.calls)
	return out
}

// newTestEmitter returns an emitter wired to a private unhandled registry.
func newTestEmitter(t *testing.T, opts ...Option) (*Emitter, *unhandledSink) {
	t.Helper()
	reg := unhandled.New(nil)
	sink := &unhandledSink{}
	reg.Subscribe(sink.handler)
	opts = append([]Option{WithUnhandledRegistry(reg)}, opts...)
	return New(opts...), sink
}

// recorder collects the arguments of every call.
type recorder struct {
	mu    sync.Mutex
	calls [][]any
}

func (r *recorder) callback(args ...any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, args)
	return nil
}

func (r *recorder) snapshot() [][]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]any, len(r.calls))
	copy(out, r.calls)
	return out
}

func (r *recorder) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// fakeMetrics counts recorder calls by channel or kind.
type fakeMetrics struct {
	mu          sync.Mutex
	resolutions map[string]int
	failures    map[string]int
	unhandled   map[string]int
	replays     map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{
		resolutions: map[string]int{},
		failures:    map[string]int{},
		unhandled:   map[string]int{},
		replays:     map[string]int{},
	}
}

func (m *fakeMetrics) RecordResolution(_ context.Context, channel, _ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolutions[channel]++
}

func (m *fakeMetrics) RecordDeliveryFailure(_ context.Context, channel string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[channel]++
}

func (m *fakeMetrics) RecordUnhandled(_ context.Context, kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unhandled[kind]++
}

func (m *fakeMetrics) RecordReplay(_ context.Context, channel string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replays[channel] += count
}

func (m *fakeMetrics) get(table map[string]int, key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return table[key]
}
