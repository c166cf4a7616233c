package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestSlogLogger_WritesLevelsAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	ctx := context.Background()
	l.Debug(ctx, "dbg")
	l.Info(ctx, "hello", "k", "v")
	l.Warn(ctx, "warned")
	l.Error(ctx, "failed", "err", "boom")

	out := buf.String()
	for _, want := range []string{"dbg", "hello", "k=v", "warned", "err=boom"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q: %s", want, out)
		}
	}
}

func TestSlogLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	child := l.With("component", "session")
	child.Info(context.Background(), "restored")

	if !strings.Contains(buf.String(), "component=session") {
		t.Fatalf("child logger did not carry attrs: %s", buf.String())
	}
}
