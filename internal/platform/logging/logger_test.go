package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mfarhila/ABSENSI-GURU/internal/platform/config"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	logger, closeFn, err := New(config.LogConfig{Level: "debug", File: path, MaxSizeMB: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("hello file")
	closeFn()

	buf, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(buf), `"msg":"hello file"`) {
		t.Fatalf("expected JSON entry in log file, got %s", buf)
	}
	if !strings.Contains(string(buf), `"level":"[INFO]"`) {
		t.Fatalf("expected bracketed level, got %s", buf)
	}
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	logger, closeFn, err := New(config.LogConfig{Level: "loud"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closeFn()

	if logger.Core().Enabled(-1) {
		t.Fatal("debug should be disabled when falling back to info")
	}
	if !logger.Core().Enabled(0) {
		t.Fatal("info should be enabled")
	}
}
