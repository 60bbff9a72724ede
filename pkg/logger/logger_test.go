package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below the level leaked through:\n%s", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("messages at or above the level missing:\n%s", out)
	}
}

func TestLogger_Formatting(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo)

	l.Info("checked %d fields", 3)

	out := buf.String()
	if !strings.Contains(out, "checked 3 fields") {
		t.Errorf("format args not applied:\n%s", out)
	}
	if !strings.Contains(out, "[INFO]") {
		t.Errorf("level tag missing:\n%s", out)
	}
	if !strings.Contains(out, "fieldsafe") {
		t.Errorf("prefix missing:\n%s", out)
	}
}

func TestLogger_Structured(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)

	l.Warnw("primary matcher bypassed",
		"field", "Email",
		"input_len", 4000,
		"reason", "guardrail",
	)

	out := buf.String()
	for _, want := range []string{"primary matcher bypassed", "field=Email", "input_len=4000", "reason=guardrail"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLogger_StructuredOddPair(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo)

	l.Infow("msg", "key", "value", "dangling")

	if out := buf.String(); !strings.Contains(out, "EXTRA=dangling") {
		t.Errorf("dangling value not flagged:\n%s", out)
	}
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelNone)

	l.Error("suppressed")
	if buf.Len() != 0 {
		t.Errorf("LevelNone should suppress everything:\n%s", buf.String())
	}

	l.SetLevel(LevelError)
	l.Error("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Error("message missing after lowering the level")
	}
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LevelNone, ""},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q; want %q", tt.level, got, tt.want)
		}
	}
}
