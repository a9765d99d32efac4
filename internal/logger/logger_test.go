package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestReplaceAndNamed(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	Replace(zap.New(core))

	Named("workflow").Infow("rule saved", "pattern", "DEBIN FARMACIA SUR")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].LoggerName != "workflow" {
		t.Errorf("expected logger name workflow, got %q", entries[0].LoggerName)
	}
	if got := entries[0].ContextMap()["pattern"]; got != "DEBIN FARMACIA SUR" {
		t.Errorf("expected pattern field, got %v", got)
	}
}

func TestGetNeverNil(t *testing.T) {
	if Get() == nil {
		t.Fatal("Get() returned nil")
	}
	Sync()
}
