package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.log")
	logger, err := New(Config{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Debug("hit landed")
	logger.Info("match over")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "DEBUG") || !strings.Contains(out, "hit landed") || !strings.Contains(out, "match over") {
		t.Fatalf("unexpected log output %q", out)
	}
}

func TestNewLevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.log")
	logger, err := New(Config{Level: "warn", File: path})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Info("quiet")
	logger.Warn("loud")
	_ = logger.Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "quiet") || !strings.Contains(string(data), "loud") {
		t.Fatalf("unexpected log output %q", data)
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New(Config{Level: "loudest"}); err == nil {
		t.Fatalf("expected an error for an unknown level")
	}
}

func TestNewWithoutOutputs(t *testing.T) {
	logger, err := New(Config{})
	if err != nil || logger == nil {
		t.Fatalf("expected a nop logger, got %v %v", logger, err)
	}
	logger.Info("dropped")
}
