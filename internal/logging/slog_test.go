package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New("warn", &buf)
	ctx := context.Background()

	log.Debug(ctx, "dbg")
	log.Info(ctx, "inf")
	log.Warn(ctx, "wrn", "kind", "budgets")
	log.Error(ctx, "err", "id", 7)

	out := buf.String()
	assert.NotContains(t, out, "msg=dbg")
	assert.NotContains(t, out, "msg=inf")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "kind=budgets")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "id=7")
}

func TestWith_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := New("debug", &buf).With("component", "transport")

	log.Info(context.Background(), "hello", "request_id", "abc")

	out := buf.String()
	require.Contains(t, out, "component=transport")
	require.Contains(t, out, "request_id=abc")
	require.Contains(t, out, "msg=hello")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestDiscard_DoesNotPanic(t *testing.T) {
	log := Discard()
	log.Error(context.TODO(), "dropped")
	log.With("a", 1).Warn(context.TODO(), "dropped")
}
