package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cskillzmartin/genmoji/catalog"
	"github.com/cskillzmartin/genmoji/engine"
	"github.com/cskillzmartin/genmoji/imaging"
	"github.com/cskillzmartin/genmoji/logging"
	"github.com/cskillzmartin/genmoji/protocol"
)

// job is one generate invocation, ephemeral: created per command,
// discarded after its result/error event.
type job struct {
	id         string
	emoji      string
	prompt     string
	outputPath string
	settings   protocol.Settings

	// preserveProgress keeps the shared progress counters untouched,
	// set by the batch orchestrator which owns them for the run.
	preserveProgress bool
}

// runJob executes one emoji→image job end to end and emits exactly one
// of result or error, never both, never neither. Panics inside the
// stages are converted to error events; nothing propagates to the
// caller.
func (b *Backend) runJob(ctx context.Context, j job) {
	eng := b.state.Engine()
	if eng == nil {
		b.emit(protocol.NewError(j.id, "Generator not initialized."))
		return
	}

	if !j.preserveProgress {
		b.state.SetProgress(1, 1, j.emoji)
		defer b.state.ResetProgress()
	}
	b.state.SetLastOutputDir(filepath.Dir(j.outputPath))

	if err := b.executeJob(ctx, eng, j); err != nil {
		b.emit(protocol.NewError(j.id, err.Error()))
		return
	}
	b.emit(protocol.NewResult(j.id, j.emoji, j.outputPath))
}

// executeJob runs the fallible stages: render, flatten+diffuse, matting,
// persist, debug artifact cleanup. One timing line is logged regardless
// of outcome.
func (b *Backend) executeJob(ctx context.Context, eng diffuser, j job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generation panicked: %v", r)
		}
	}()

	var metrics logging.JobMetrics
	metrics.JobID = j.id
	metrics.Emoji = j.emoji
	metrics.Mode = eng.Mode()
	metrics.Seed = engine.ReduceSeed(j.settings.Seed)
	start := time.Now()
	defer func() {
		metrics.Total = time.Since(start)
		b.logger.Info("job finished", logging.JobFields(metrics))
	}()

	base, err := b.state.renderer.Render(j.emoji, b.state.FontPath(), j.settings.OutputSizePx)
	if err != nil {
		return err
	}
	metrics.Render = time.Since(start)

	if bounds, visible := imaging.AlphaBounds(base); visible {
		b.logger.Debug("rendered emoji glyph",
			zap.String("emoji", j.emoji),
			zap.Int("size", j.settings.OutputSizePx),
			zap.String("alpha_bbox", bounds.String()),
		)
	}

	var debugBase, debugConditioning string
	if j.settings.DebugSaveConditioning {
		debugBase, debugConditioning = protocol.DebugArtifactPaths(j.outputPath)
		if err := writePNGFile(debugBase, base); err != nil {
			return err
		}
		b.logger.Debug("saved base RGBA image", zap.String("path", debugBase))
	}

	diffuseStart := time.Now()
	result, err := eng.Generate(ctx, engine.Request{
		Prompt:                j.prompt,
		Conditioning:          base,
		Steps:                 j.settings.NumInferenceSteps,
		GuidanceScale:         j.settings.GuidanceScale,
		Strength:              j.settings.Strength,
		Seed:                  j.settings.Seed,
		DebugConditioningPath: debugConditioning,
	})
	if err != nil {
		return err
	}
	metrics.Diffuse = time.Since(diffuseStart)

	final := result
	if j.settings.RemoveBackground {
		mattingStart := time.Now()
		final, err = b.removeBackground(ctx, result, j.settings)
		if err != nil {
			return err
		}
		metrics.Matting = time.Since(mattingStart)
	}

	saveStart := time.Now()
	if err := writePNGFile(j.outputPath, final); err != nil {
		return err
	}
	metrics.Save = time.Since(saveStart)

	// Debug artifacts are useful while iterating but should not remain
	// in successful output directories.
	if debugBase != "" {
		os.Remove(debugBase)
	}
	if debugConditioning != "" {
		os.Remove(debugConditioning)
	}

	return nil
}

// removeBackground mattes the generated image with a cached session and
// optionally softens the matte toward full opacity.
func (b *Backend) removeBackground(ctx context.Context, img image.Image, settings protocol.Settings) (image.Image, error) {
	session, err := b.state.MattingSession(settings.RembgModel)
	if err != nil {
		return nil, err
	}

	matte, err := b.state.remover.Remove(ctx, session, img)
	if err != nil {
		return nil, err
	}

	if settings.RemoveBackgroundStrength < 1.0 {
		blended := imaging.BlendAlpha(matte, settings.RemoveBackgroundStrength)
		b.logger.Debug("toned-down background removal applied",
			zap.Float64("strength", settings.RemoveBackgroundStrength))
		return blended, nil
	}
	return matte, nil
}

// runBatch drives the full catalog × batch multiplier through runJob
// with progress events and cooperative cancellation at item boundaries.
// A per-item failure emits its error event and iteration continues.
func (b *Backend) runBatch(ctx context.Context, prompt, outputDir string, settings protocol.Settings) {
	if b.state.Engine() == nil {
		b.emit(protocol.NewError("", "Generator not initialized."))
		return
	}

	b.state.SetLastOutputDir(outputDir)

	emojis := catalog.All()
	batchSize := settings.BatchSize
	if batchSize < 1 {
		batchSize = 1
	}
	total := len(emojis) * batchSize
	b.state.SetProgress(0, total, "")

	baseSeed := settings.Seed
	ordinal := 0

	for batchIndex := 1; batchIndex <= batchSize; batchIndex++ {
		for _, item := range emojis {
			if b.state.CancelRequested() {
				b.logger.Info("cancel completed",
					zap.Int("completed", ordinal),
					zap.Int("total", total),
				)
				b.emit(protocol.NewCanceled(ordinal, total, "Generation canceled by user."))
				b.state.ResetProgress()
				return
			}

			ordinal++
			b.state.SetProgress(ordinal, total, item.Char)

			seed := baseSeed
			if !settings.SameSeed {
				seed = baseSeed + int64(ordinal-1)
			}
			outputPath := protocol.OutputFileName(outputDir, item.Char, seed, batchIndex, batchSize)
			jobID := uuid.NewString()

			b.emit(protocol.NewProgress(jobID, ordinal, total, item.Char))

			perItem := settings
			perItem.Seed = seed
			b.runJob(ctx, job{
				id:               jobID,
				emoji:            item.Char,
				prompt:           prompt,
				outputPath:       outputPath,
				settings:         perItem,
				preserveProgress: true,
			})
		}
	}

	b.state.ResetProgress()
}

func newJobID() string {
	return uuid.NewString()
}

// writePNGFile persists img to path, creating parent directories.
func writePNGFile(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	data, err := imaging.EncodePNG(img)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
