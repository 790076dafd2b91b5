// Package engine provides the image-conditioned diffusion runtime behind
// the generation pipeline.
package engine

import "errors"

// Sentinel errors for engine operations.
// These are domain-specific errors that provide clear failure modes.
var (
	// Initialization errors
	ErrPipelineInit    = errors.New("engine: failed to initialize diffusion pipeline")
	ErrCUDAUnavailable = errors.New("engine: CUDA not available")
	ErrNoConditioning  = errors.New("engine: pipeline lacks image-conditioning support")

	// Generation errors
	ErrFallback         = errors.New("engine: diffusion pipeline unavailable")
	ErrGenerationFailed = errors.New("engine: image generation failed")

	// Input validation errors
	ErrInvalidPrompt = errors.New("engine: invalid prompt")
	ErrInvalidParams = errors.New("engine: invalid generation parameters")
)
