package blur

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLogger_DefaultIsSilent(t *testing.T) {
	SetLogger(nil)
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	// Must not panic and must report disabled at every level.
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger reports enabled at error level")
	}
	l.Warn("discarded")
}

func TestSetLogger_RoutesOutput(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	Logger().Warn("gutter overflow", "padding", 3)
	if out := buf.String(); !strings.Contains(out, "gutter overflow") {
		t.Errorf("log output = %q, want it to contain the warning", out)
	}
}

func TestSetLogger_NilRestoresSilence(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	SetLogger(nil)

	Logger().Warn("should vanish")
	if buf.Len() != 0 {
		t.Errorf("log output = %q, want empty after SetLogger(nil)", buf.String())
	}
}
