package logging

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// JobMetrics represents per-stage timings collected while running one
// generation job. Implements zapcore.ObjectMarshaler for structured
// logging.
//
// This is a pure data structure with no dependencies on other logging
// atoms. One JobMetrics line is emitted per job regardless of outcome.
//
// Example:
//
//	metrics := JobMetrics{
//		JobID:    "b4f1...",
//		Emoji:    "😀",
//		Mode:     "flux2klein",
//		Seed:     42,
//		Render:   80 * time.Millisecond,
//		Diffuse:  9 * time.Second,
//		Matting:  700 * time.Millisecond,
//		Save:     12 * time.Millisecond,
//		Total:    10 * time.Second,
//	}
//	logger.Info("job complete", logging.JobFields(metrics))
type JobMetrics struct {
	// JobID identifies the job this timing line belongs to
	JobID string `json:"job_id"`

	// Emoji is the character being generated
	Emoji string `json:"emoji"`

	// Mode is the active pipeline mode
	Mode string `json:"mode"`

	// Seed is the reduced deterministic seed used for the job
	Seed int64 `json:"seed"`

	// Render is the glyph rasterization duration
	Render time.Duration `json:"render"`

	// Diffuse is the generative model call duration
	Diffuse time.Duration `json:"diffuse"`

	// Matting is the background removal duration (zero when disabled)
	Matting time.Duration `json:"matting"`

	// Save is the output persistence duration
	Save time.Duration `json:"save"`

	// Total is the end-to-end job duration
	Total time.Duration `json:"total"`
}

// MarshalLogObject implements zapcore.ObjectMarshaler for structured
// logging. Durations are encoded in milliseconds for readability.
func (m JobMetrics) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("job_id", m.JobID)
	enc.AddString("emoji", m.Emoji)
	enc.AddString("mode", m.Mode)
	enc.AddInt64("seed", m.Seed)
	enc.AddInt64("render_ms", m.Render.Milliseconds())
	enc.AddInt64("diffuse_ms", m.Diffuse.Milliseconds())
	enc.AddInt64("matting_ms", m.Matting.Milliseconds())
	enc.AddInt64("save_ms", m.Save.Milliseconds())
	enc.AddInt64("total_ms", m.Total.Milliseconds())
	return nil
}

// JobFields creates a structured zap field from job metrics.
// This is a molecule that composes the JobMetrics atom into a
// ready-to-use zap.Field.
func JobFields(metrics JobMetrics) zap.Field {
	return zap.Object("job", metrics)
}
