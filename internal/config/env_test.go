package config

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("ZOMBIE_TEST_INT", "42")
	t.Setenv("ZOMBIE_TEST_BAD", "forty")
	t.Setenv("ZOMBIE_TEST_DUR", "150ms")

	if got := GetEnv("ZOMBIE_TEST_UNSET", "x"); got != "x" {
		t.Errorf("GetEnv fallback = %q", got)
	}
	if got := GetEnvInt("ZOMBIE_TEST_INT", 1); got != 42 {
		t.Errorf("GetEnvInt = %d, want 42", got)
	}
	if got := GetEnvInt("ZOMBIE_TEST_BAD", 7); got != 7 {
		t.Errorf("GetEnvInt on junk = %d, want fallback 7", got)
	}
	if got := GetEnvDuration("ZOMBIE_TEST_DUR", time.Second); got != 150*time.Millisecond {
		t.Errorf("GetEnvDuration = %v", got)
	}
}

func TestNewLoggerHonoursLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test")

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("log output = %q", out)
	}
}
