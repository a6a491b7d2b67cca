package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	t.Run("creates log file at the given path", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "logs", "run.log")

		logger, err := NewLogger(logPath, LevelDebug, FormatText)
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		defer logger.Close()

		if _, err := os.Stat(logPath); os.IsNotExist(err) {
			t.Errorf("log file was not created at %s", logPath)
		}
	})

	t.Run("writes to stderr when path is empty", func(t *testing.T) {
		logger, err := NewLogger("", LevelInfo, FormatText)
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		defer logger.Close()

		if logger.file != nil {
			t.Error("expected file to be nil when path is empty")
		}
		if logger.Writer() != os.Stderr {
			t.Error("expected Writer() to be stderr")
		}
	})

	t.Run("appends to an existing file", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "run.log")
		if err := os.WriteFile(logPath, []byte("previous run\n"), 0644); err != nil {
			t.Fatal(err)
		}

		logger, err := NewLogger(logPath, LevelInfo, FormatText)
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		logger.Info("second run")
		logger.Close()

		content, err := os.ReadFile(logPath)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(string(content), "previous run\n") {
			t.Errorf("existing content was not preserved: %q", content)
		}
		if !strings.Contains(string(content), "second run") {
			t.Errorf("new message missing: %q", content)
		}
	})
}

func TestTimestampPrefix(t *testing.T) {
	for _, format := range ValidFormats() {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWriterLogger(&buf, LevelInfo, format)

			logger.Info("hello")

			line := strings.TrimSpace(buf.String())
			var prefix string
			if format == FormatJSON {
				prefix = `{"time":`
			} else {
				prefix = "time="
			}
			if !strings.HasPrefix(line, prefix) {
				t.Errorf("line %q does not start with %q", line, prefix)
			}
		})
	}
}

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, LevelWarn, FormatJSON)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines at WARN level, got %d: %q", len(lines), buf.String())
	}

	expectedLevels := []string{"WARN", "ERROR"}
	for i, line := range lines {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", i, err)
		}
		if entry["level"] != expectedLevels[i] {
			t.Errorf("line %d level = %v, want %s", i, entry["level"], expectedLevels[i])
		}
	}
}

func TestContextAttributes(t *testing.T) {
	var buf bytes.Buffer
	root := NewWriterLogger(&buf, LevelInfo, FormatJSON)

	root.WithRun("run-1").WithPart("g").WithStage("generate").With("path", "/tmp/x").Info("generating")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	want := map[string]string{
		"run_id": "run-1",
		"part":   "g",
		"stage":  "generate",
		"path":   "/tmp/x",
		"msg":    "generating",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s = %v, want %q", k, entry[k], v)
		}
	}
}

func TestWith_IgnoresNonStringKeys(t *testing.T) {
	logger := NopLogger()

	child := logger.With(42, "value", "ok", "yes")
	if len(child.attrs) != 1 {
		t.Errorf("expected 1 attribute, got %d", len(child.attrs))
	}
	if same := logger.With(); same != logger {
		t.Error("With() with no args should return the same logger")
	}
}

func TestClose_Idempotent(t *testing.T) {
	logger, err := NewLogger(filepath.Join(t.TempDir(), "run.log"), LevelInfo, FormatText)
	if err != nil {
		t.Fatal(err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
}
