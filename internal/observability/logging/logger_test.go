package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestJSONLoggerCarriesService(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "resume-api", "info", "json")

	logger.Debug("hidden")
	logger.Info("screening_completed", "category", "Data Science")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected debug record to be filtered, got %d lines", len(lines))
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if record["service"] != "resume-api" || record["category"] != "Data Science" {
		t.Fatalf("unexpected record %v", record)
	}
}

func TestTextLogger(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, "resume-mcp", "debug", "text").Debug("tool_called")
	if !strings.Contains(buf.String(), "service=resume-mcp") || !strings.Contains(buf.String(), "msg=tool_called") {
		t.Fatalf("unexpected text output %q", buf.String())
	}
}
