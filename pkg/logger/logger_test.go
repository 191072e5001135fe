package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitAndLevelString(t *testing.T) {
	defer Init("info")
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

// capture swaps the package logger for an observer that honors the shared level.
func capture(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(atom)
	mu.Lock()
	orig := sugar
	sugar = zap.New(core).Sugar()
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		sugar = orig
		mu.Unlock()
		Init("info")
	})
	return logs
}

func TestLevelFiltering(t *testing.T) {
	logs := capture(t)

	Init("warn")
	Debugf("debug-msg")
	Infof("info-msg %d", 1)
	Warnf("warn-msg")
	Errorf("error-msg: %s", "boom")

	if n := logs.FilterMessage("info-msg 1").Len(); n != 0 {
		t.Fatalf("info messages should be suppressed at warn level")
	}
	if n := logs.FilterMessage("debug-msg").Len(); n != 0 {
		t.Fatalf("debug messages should be suppressed at warn level")
	}
	if n := logs.FilterMessage("warn-msg").Len(); n != 1 {
		t.Fatalf("warn message missing: %v", logs.All())
	}
	if n := logs.FilterMessage("error-msg: boom").Len(); n != 1 {
		t.Fatalf("error message missing: %v", logs.All())
	}

	Init("info")
	Info("hello")
	if n := logs.FilterMessage("hello").Len(); n != 1 {
		t.Fatalf("Info expected at info level, got: %v", logs.All())
	}
}
