package logger_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/evdnx/gowave/logger"
	"github.com/evdnx/gowave/testutils"
)

func TestMockLogger(t *testing.T) {
	l := testutils.NewMockLogger()
	l.Info("hello", logger.String("k", "v"))
	if got := l.LastMessage(); got != "hello" {
		t.Fatalf("expected last message 'hello', got %q", got)
	}
}

func TestNewZapLoggerRejectsBadLevel(t *testing.T) {
	if _, err := logger.NewZapLogger(logger.Options{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewZapLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gowave.log")
	l, err := logger.NewZapLogger(logger.Options{Level: "warn", File: path, MaxSizeMB: 1})
	if err != nil {
		t.Fatalf("NewZapLogger failed: %v", err)
	}
	l.Info("filtered_out")
	l.Warn("kept", logger.Int("n", 3))
	logger.Sync(l)

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	out := string(raw)
	if strings.Contains(out, "filtered_out") {
		t.Fatalf("info entry should be below the warn level: %s", out)
	}
	if !strings.Contains(out, `"msg":"kept"`) || !strings.Contains(out, `"n":3`) {
		t.Fatalf("expected warn entry with field, got %s", out)
	}
}

func TestNop(t *testing.T) {
	l := logger.Nop()
	l.Error("ignored", logger.Err(os.ErrNotExist))
	logger.Sync(l)
}
