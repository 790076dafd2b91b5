// engine.go implements the Engine organism: candidate pipeline selection
// with explicit fallback, capability-filtered generation calls, and
// conditioning diagnostics.
package engine

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/cskillzmartin/genmoji/core"
	"github.com/cskillzmartin/genmoji/imaging"
)

// Version identifies the engine build reported in ready events.
const Version = "0.3.0"

// TraceEnv forces per-call conditioning diagnostics regardless of the
// per-job debug request (1/true/yes/on).
const TraceEnv = "GENMOJI_TRACE"

// Config holds pipeline construction parameters from the init command.
type Config struct {
	// ModelPath is a model repo id or local directory.
	ModelPath string

	// Device is the requested accelerator ("cuda", "cuda:1", "cpu").
	Device string

	// EnableCPUOffload trades VRAM for latency on constrained GPUs.
	EnableCPUOffload bool
}

// Engine wraps the selected diffusion pipeline. Construction never fails:
// when no candidate pipeline loads, the engine enters an explicitly
// labeled fallback mode that reports why generation is unavailable while
// the process stays alive.
type Engine struct {
	logger *zap.Logger
	cfg    Config
	trace  bool

	pipe           Pipeline
	mode           string
	supported      ParamSet
	fallback       bool
	fallbackReason string
}

// New constructs an Engine by trying each pipeline candidate in order.
// A candidate is rejected when it fails to load or does not declare
// image-conditioning support; the loader errors are folded into the
// fallback reason when every candidate is rejected.
func New(cfg Config, logger *zap.Logger) *Engine {
	return newFromCandidates(cfg, logger, candidates())
}

func newFromCandidates(cfg Config, logger *zap.Logger, cands []pipelineCandidate) *Engine {
	e := &Engine{
		logger: logger,
		cfg:    cfg,
		trace:  core.ParseBoolEnv(TraceEnv, false),
		mode:   ModeUnknown,
	}

	var loaderErrors []string
	for _, cand := range cands {
		pipe, err := cand.load(cfg)
		if err != nil {
			loaderErrors = append(loaderErrors, fmt.Sprintf("%s: %v", cand.name, err))
			continue
		}

		supported := pipe.SupportedParams()
		if !supported.Has(ParamImage) {
			loaderErrors = append(loaderErrors,
				fmt.Sprintf("%s: %v: declares %s", cand.name, ErrNoConditioning, supported))
			pipe.Close()
			continue
		}

		e.pipe = pipe
		e.mode = pipe.Mode()
		e.supported = supported
		logger.Info("selected diffusion pipeline",
			zap.String("mode", e.mode),
			zap.String("params", supported.String()),
			zap.String("model", cfg.ModelPath),
			zap.String("device", cfg.Device),
			zap.Bool("cpu_offload", cfg.EnableCPUOffload),
		)
		return e
	}

	e.fallback = true
	e.mode = ModeFallback
	e.fallbackReason = "Unable to initialize a diffusion pipeline with image-to-image conditioning.\n" +
		strings.Join(loaderErrors, "\n") +
		"\nCheck the native runtime build and model path, or configure a cloud pipeline."
	logger.Warn("engine entered fallback mode", zap.String("reason", e.fallbackReason))
	return e
}

// Mode returns the selected pipeline mode ("fallback" when degraded).
func (e *Engine) Mode() string { return e.mode }

// Fallback reports whether generation is unavailable.
func (e *Engine) Fallback() bool { return e.fallback }

// FallbackReason returns the human-readable degradation reason, empty
// when the engine is usable.
func (e *Engine) FallbackReason() string { return e.fallbackReason }

// SupportedParams returns the selected pipeline's declared parameter set.
func (e *Engine) SupportedParams() ParamSet { return e.supported }

// Request holds one generation call. The conditioning image is the raw
// transparent glyph render; flattening happens inside Generate.
type Request struct {
	Prompt       string
	Conditioning image.Image

	Steps         int
	GuidanceScale float64
	Strength      float64
	Seed          int64

	// DebugConditioningPath persists the flattened conditioning image
	// when set. The caller owns deletion of the artifact.
	DebugConditioningPath string

	// Diagnostics computes conditioning statistics even without a debug
	// path. The GENMOJI_TRACE toggle forces this for every call.
	Diagnostics bool
}

// Generate runs one image-conditioned generation end to end: flatten the
// glyph onto white, optionally persist and diagnose the conditioning
// image, filter arguments against the pipeline's declared parameters and
// execute the pipeline.
func (e *Engine) Generate(ctx context.Context, req Request) (image.Image, error) {
	if e.fallback || e.pipe == nil {
		return nil, fmt.Errorf("%w: %s", ErrFallback, e.fallbackReason)
	}
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	seed := ReduceSeed(req.Seed)

	// Flatten onto white before conditioning. The pipeline's own
	// preprocessing converts transparent pixels to black, which would
	// erase the glyph shape from the conditioning signal.
	conditioning := imaging.FlattenToWhite(req.Conditioning)

	if req.DebugConditioningPath != "" {
		if err := writeImage(req.DebugConditioningPath, conditioning); err != nil {
			return nil, err
		}
		e.logger.Debug("saved conditioning image",
			zap.String("path", req.DebugConditioningPath))
	}

	diagnostics := req.Diagnostics || req.DebugConditioningPath != "" || e.trace
	var stats imaging.Stats
	if diagnostics {
		stats = imaging.ComputeStats(conditioning)
		if stats.IsWeak() {
			e.logger.Warn("weak conditioning image detected; output may follow prompt more than emoji shape",
				zap.Float64("non_white_ratio", stats.NonWhiteRatio),
				zap.Float64("mean_luminance", stats.MeanLuminance),
				zap.Float64("stddev_luminance", stats.StddevLuminance),
			)
		}
	}

	in := PipelineInput{
		Prompt:        req.Prompt,
		Steps:         req.Steps,
		GuidanceScale: req.GuidanceScale,
		Seed:          seed,
	}
	if e.pipe.ReferenceList() {
		in.ImageList = []image.Image{conditioning}
	} else {
		in.Image = conditioning
	}
	if e.supported.Has(ParamStrength) {
		in.Strength = req.Strength
		in.HasStrength = true
	} else {
		e.logger.Warn("pipeline does not support native strength; strength setting has reduced effect",
			zap.String("mode", e.mode))
	}

	fields := []zap.Field{
		zap.String("mode", e.mode),
		zap.Bool("reference_list", e.pipe.ReferenceList()),
		zap.Bool("supports_strength", in.HasStrength),
		zap.Float64("strength", req.Strength),
		zap.Float64("guidance", req.GuidanceScale),
		zap.Int("steps", req.Steps),
		zap.Int64("seed", seed),
	}
	if diagnostics {
		fields = append(fields,
			zap.Float64("non_white_ratio", stats.NonWhiteRatio),
			zap.Float64("mean_luminance", stats.MeanLuminance),
			zap.Float64("stddev_luminance", stats.StddevLuminance),
		)
	}
	e.logger.Debug("img2img run", fields...)

	out, err := e.pipe.Run(ctx, in)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("%w: pipeline returned no image", ErrGenerationFailed)
	}
	return out, nil
}

// Close releases the selected pipeline.
func (e *Engine) Close() error {
	if e.pipe == nil {
		return nil
	}
	return e.pipe.Close()
}

func writeImage(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("engine: creating debug directory: %w", err)
	}
	data, err := imaging.EncodePNG(img)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("engine: writing debug artifact: %w", err)
	}
	return nil
}
