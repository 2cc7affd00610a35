package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestInitAndLevelString(t *testing.T) {
	Init("debug")
	if got := LevelString(); got != "debug" {
		t.Fatalf("LevelString() = %q, want %q", got, "debug")
	}
	Init("WARN")
	if got := LevelString(); got != "warn" {
		t.Fatalf("LevelString() = %q, want %q", got, "warn")
	}
	Init("Error")
	if got := LevelString(); got != "error" {
		t.Fatalf("LevelString() = %q, want %q", got, "error")
	}
	Init("nonsense")
	if got := LevelString(); got != "info" {
		t.Fatalf("LevelString() = %q, want %q for unknown input", got, "info")
	}
}

func TestLevelFilteringAndPrintln(t *testing.T) {
	var buf bytes.Buffer
	Init("warn")
	std.SetOutput(&buf)
	defer std.SetOutput(os.Stderr)

	Debugf("debug-msg")
	Infof("info-msg")
	Warnf("warn-msg")
	Errorf("error-msg")

	out := buf.String()
	if strings.Contains(out, "debug-msg") {
		t.Fatalf("debug messages should be suppressed at warn level")
	}
	if strings.Contains(out, "info-msg") {
		t.Fatalf("info messages should be suppressed at warn level")
	}
	if !strings.Contains(out, "warn-msg") {
		t.Fatalf("warn message missing: %q", out)
	}
	if !strings.Contains(out, "error-msg") {
		t.Fatalf("error message missing: %q", out)
	}

	// Println maps to info and is suppressed at warn
	buf.Reset()
	Println("hello")
	if strings.Contains(buf.String(), "hello") {
		t.Fatalf("Println should be suppressed at warn level")
	}

	// at info level Println should appear
	Init("info")
	std.SetOutput(&buf)
	buf.Reset()
	Println("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("Println expected at info level, got: %q", buf.String())
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	Init("info")
	std.SetOutput(&buf)
	defer std.SetOutput(os.Stderr)

	WithFields(Fields{"request_id": "req-1"}).Info("tagged")

	out := buf.String()
	if !strings.Contains(out, "tagged") || !strings.Contains(out, "req-1") {
		t.Fatalf("expected tagged entry with request_id, got: %q", out)
	}
}

func TestErrorWithTraceID(t *testing.T) {
	var buf bytes.Buffer
	Init("info")
	std.SetOutput(&buf)
	defer std.SetOutput(os.Stderr)

	// Reuses the request id when one is present.
	got := ErrorWithTraceID(Fields{"request_id": "req-42"}, "boom")
	if got != "req-42" {
		t.Fatalf("trace id = %q, want request id %q", got, "req-42")
	}
	if !strings.Contains(buf.String(), "req-42") {
		t.Fatalf("log line missing trace id: %q", buf.String())
	}

	// Generates one otherwise.
	buf.Reset()
	got = ErrorWithTraceID(nil, "boom again")
	if got == "" || got == "unknown" {
		t.Fatalf("expected generated trace id, got %q", got)
	}
	if !strings.Contains(buf.String(), got) {
		t.Fatalf("log line missing generated trace id %q: %q", got, buf.String())
	}
}
