package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConsoleHandlerFoldsComponent(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl, false, false))

	logger.With(String(FieldComponent, "monitor")).Info("change polled",
		String(FieldChangeID, "42"),
		Float64("progress", 0.5),
	)

	line := buf.String()
	if !strings.Contains(line, "INFO monitor: change polled") {
		t.Fatalf("expected component prefix, got %q", line)
	}
	if !strings.Contains(line, "change_id=42") {
		t.Fatalf("expected change_id attribute, got %q", line)
	}
	if !strings.Contains(line, "progress=0.5") {
		t.Fatalf("expected progress attribute, got %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should not render as key=value, got %q", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl, false, false))

	logger.Info("task", String("summary", "Download snap \"firefox\""))

	if !strings.Contains(buf.String(), `summary="Download snap \"firefox\""`) {
		t.Fatalf("expected quoted summary, got %q", buf.String())
	}
}

func TestConsoleHandlerHonoursLevel(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelInfo)
	logger := slog.New(newConsoleHandler(&buf, lvl, false, false))

	logger.Debug("unknown change status", String("status", "Mystery"))
	if buf.Len() != 0 {
		t.Fatalf("debug record should be suppressed at info level, got %q", buf.String())
	}

	lvl.Set(slog.LevelDebug)
	logger.Debug("unknown change status", String("status", "Mystery"))
	if buf.Len() == 0 {
		t.Fatal("debug record should render at debug level")
	}
}

func TestNewWritesToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "snapwatch.log")

	logger, err := New(Options{Level: "info", Format: "json", OutputPaths: []string{path}, ErrorOutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("subscription restarted")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"subscription restarted"`) {
		t.Fatalf("expected json record in file, got %q", string(data))
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	if got := parseLevel("verbose"); got != slog.LevelInfo {
		t.Fatalf("expected info fallback, got %v", got)
	}
	if got := parseLevel("ERROR"); got != slog.LevelError {
		t.Fatalf("expected error level, got %v", got)
	}
}
