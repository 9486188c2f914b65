package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNormalizeLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"debug", "debug"},
		{"DEBUG", "debug"},
		{"  Warn ", "warn"},
		{"", "info"},
		{"bogus", "info"},
	}

	for _, tt := range tests {
		if got := normalizeLogLevel(tt.input); got != tt.want {
			t.Errorf("normalizeLogLevel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "warn")

	cl.Infof("hidden")
	cl.Warnf("shown warning")
	cl.Errorf("shown error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(out, "shown warning") {
		t.Error("warn message should be logged")
	}
	if !strings.Contains(out, "shown error") {
		t.Error("error message should be logged")
	}
}

func TestTimestampPrefix(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")

	cl.Infof("message")

	out := buf.String()
	if !strings.HasPrefix(out, "[") || !strings.Contains(out, "] message\n") {
		t.Errorf("output %q should carry a [HH:MM:SS] prefix", out)
	}
}

func TestNilWriterDiscards(t *testing.T) {
	cl := NewConsoleLogger(nil, "trace")
	// Must not panic.
	cl.Tracef("into the void")
	cl.Errorf("still nothing")
}

func TestNoColorForPlainWriter(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")

	cl.Errorf("plain")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Error("non-terminal writer should not receive ANSI color codes")
	}
}
