package logging

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func sampleJobMetrics() JobMetrics {
	return JobMetrics{
		JobID:   "job-123",
		Emoji:   "😀",
		Mode:    "flux2klein",
		Seed:    42,
		Render:  80 * time.Millisecond,
		Diffuse: 9 * time.Second,
		Matting: 700 * time.Millisecond,
		Save:    12 * time.Millisecond,
		Total:   10 * time.Second,
	}
}

func TestJobMetricsMarshalLogObject(t *testing.T) {
	enc := zapcore.NewMapObjectEncoder()
	if err := sampleJobMetrics().MarshalLogObject(enc); err != nil {
		t.Fatalf("MarshalLogObject() error: %v", err)
	}

	want := map[string]any{
		"job_id":     "job-123",
		"emoji":      "😀",
		"mode":       "flux2klein",
		"seed":       int64(42),
		"render_ms":  int64(80),
		"diffuse_ms": int64(9000),
		"matting_ms": int64(700),
		"save_ms":    int64(12),
		"total_ms":   int64(10000),
	}
	for key, expected := range want {
		if got := enc.Fields[key]; got != expected {
			t.Errorf("field %s = %v, want %v", key, got, expected)
		}
	}
}

func TestJobFields(t *testing.T) {
	observed, logs := observer.New(zap.InfoLevel)
	logger := zap.New(observed)

	logger.Info("job complete", JobFields(sampleJobMetrics()))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entry count = %d, want 1", len(entries))
	}
	ctx := entries[0].ContextMap()
	job, ok := ctx["job"].(map[string]any)
	if !ok {
		t.Fatalf("job field missing or wrong shape: %#v", ctx["job"])
	}
	if job["emoji"] != "😀" {
		t.Errorf("job.emoji = %v, want 😀", job["emoji"])
	}
	if job["diffuse_ms"] != int64(9000) {
		t.Errorf("job.diffuse_ms = %v, want 9000", job["diffuse_ms"])
	}
}
