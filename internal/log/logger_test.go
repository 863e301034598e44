package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerStampsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Component: ComponentBot,
		Handler:   slog.NewTextHandler(&buf, nil),
	})

	logger.Info("hello", "key", "value")

	out := buf.String()
	if !strings.Contains(out, "component=bot") {
		t.Fatalf("output missing component attr: %q", out)
	}
	if !strings.Contains(out, "key=value") {
		t.Fatalf("output missing custom attr: %q", out)
	}
}

func TestWithComponent(t *testing.T) {
	logger := New(DefaultConfig())
	child := logger.WithComponent(ComponentStorage)

	if child.Component() != ComponentStorage {
		t.Fatalf("component = %q, want %q", child.Component(), ComponentStorage)
	}
	if logger.Component() != ComponentApp {
		t.Fatalf("parent component changed to %q", logger.Component())
	}
}
