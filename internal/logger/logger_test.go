package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		format      string
		output      string
		shouldError bool
	}{
		{"debug text stderr", "debug", "text", "stderr", false},
		{"info json stdout", "info", "json", "stdout", false},
		{"warn text stderr", "warn", "text", "stderr", false},
		{"error json stderr", "error", "json", "stderr", false},
		{"empty level is info", "", "text", "", false},
		{"invalid level", "invalid", "text", "stderr", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.level, tt.format, tt.output)

			if tt.shouldError {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if log == nil {
				t.Fatal("Logger is nil")
			}

			log.Sync()
		})
	}
}

func TestLoggerToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "parse.log")

	log, err := New("info", "text", logFile)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	log.Info("parsed script", "statements", 3)
	log.Sync()

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	if !strings.Contains(string(content), "parsed script") {
		t.Error("Log file doesn't contain expected message")
	}
}

func TestLoggerJSONFields(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter("debug", "json", &buf)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	log.Named("parse").With("file", "schema.sql").Debug("built", "statements", 42)
	log.Sync()

	out := buf.String()
	for _, want := range []string{`"msg":"built"`, `"logger":"parse"`, `"file":"schema.sql"`, `"statements":42`} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON log %s missing %s", out, want)
		}
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter("warn", "json", &buf)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	log.Info("hidden")
	log.Warn("shown")
	log.Sync()

	if strings.Contains(buf.String(), "hidden") {
		t.Error("info entry written at warn level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("warn entry missing")
	}
}

func TestLoggerNop(t *testing.T) {
	log := NewNop()
	if log == nil {
		t.Fatal("NewNop returned nil")
	}

	// Should not panic
	log.Info("test")
	log.Debug("test")
	log.Warn("test")
	log.Error("test")
	log.With("k", "v").Named("sub").Info("test")
	log.Sync()
}
