package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTraceWritesOnlyWhenEnabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "trace.log")
	Configure(path)
	t.Cleanup(func() {
		Configure("")
		SetTraceEnabled(false)
	})

	SetTraceEnabled(false)
	Trace("menu.open", map[string]interface{}{"items": 3})
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no log file while tracing is off, got %v", err)
	}

	SetTraceEnabled(true)
	Trace("menu.open", map[string]interface{}{"items": 3})
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected trace file: %v", err)
	}
	if !strings.Contains(string(data), "menu.open") {
		t.Fatalf("expected event name in trace, got %q", data)
	}
}

func TestErrorAppendsToLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error.log")
	Configure(path)
	t.Cleanup(func() { Configure("") })

	Error(nil)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected nil error to be ignored")
	}
	Error(errors.New("patch failed"))
	Warn("watch fallback", "path", "/tmp/x.md")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected log file: %v", err)
	}
	if !strings.Contains(string(data), "patch failed") || !strings.Contains(string(data), "watch fallback") {
		t.Fatalf("unexpected log content %q", data)
	}
}

func TestConfigureEmptyUsesDefault(t *testing.T) {
	Configure("")
	if Path() != DefaultPath() {
		t.Fatalf("expected default path, got %s", Path())
	}
}
