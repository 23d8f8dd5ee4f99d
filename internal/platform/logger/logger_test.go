package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		expects zapcore.Level
	}{
		{in: "debug", expects: zapcore.DebugLevel},
		{in: " WARN ", expects: zapcore.WarnLevel},
		{in: "error", expects: zapcore.ErrorLevel},
		{in: "info", expects: zapcore.InfoLevel},
		{in: "bogus", expects: zapcore.InfoLevel},
	}

	for _, tc := range tests {
		if got := parseLevel(tc.in); got != tc.expects {
			t.Fatalf("parseLevel(%q): got %v want %v", tc.in, got, tc.expects)
		}
	}
}

func TestNew(t *testing.T) {
	log, err := New("development", "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	log.Debug("logger_test", "key", "value")
	_ = log.Sync()
}

func TestLevelsAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := &Logger{sugar: zap.New(core).Sugar()}

	log.Debug("d")
	log.Info("i", "key", "value")
	log.Warn("w", "status", 422)
	log.Error("e")

	entries := logs.AllUntimed()
	if len(entries) != 4 {
		t.Fatalf("got %d entries, expected 4", len(entries))
	}
	levels := []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}
	for i, want := range levels {
		if entries[i].Level != want {
			t.Fatalf("entry %d level = %v, expected %v", i, entries[i].Level, want)
		}
	}
	if got := entries[2].ContextMap()["status"]; got != int64(422) {
		t.Fatalf("warn status field = %v (%T)", got, got)
	}
}
