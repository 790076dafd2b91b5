package engine

import (
	"context"
	"image"
)

// PipelineInput carries the filtered argument set for one pipeline call.
// Exactly one of Image or ImageList is populated: pipelines with
// reference-list addressing receive the conditioning image wrapped in a
// single-element list, all others receive it directly.
type PipelineInput struct {
	Prompt    string
	Image     image.Image
	ImageList []image.Image

	Steps         int
	GuidanceScale float64

	// Strength is forwarded only when HasStrength is set; pipelines must
	// ignore it otherwise.
	Strength    float64
	HasStrength bool

	// Seed is already reduced modulo MaxSeed.
	Seed int64
}

// Pipeline is one loadable diffusion backend. Implementations declare
// their accepted parameter names at construction; the engine filters its
// argument set against that declaration instead of probing at call time.
type Pipeline interface {
	// Mode identifies the pipeline for ready events and logs.
	Mode() string

	// SupportedParams returns the declared parameter set.
	SupportedParams() ParamSet

	// ReferenceList reports whether conditioning images use
	// reference-list addressing (single-reference editing mode).
	ReferenceList() bool

	// Run executes one generation. The returned image is opaque RGB.
	Run(ctx context.Context, in PipelineInput) (image.Image, error)

	// Close releases pipeline resources. Safe to call multiple times.
	Close() error
}

// pipelineCandidate is one entry in the loader chain. Candidates are
// tried in order; the first that constructs with image-conditioning
// support wins.
type pipelineCandidate struct {
	name string
	load func(cfg Config) (Pipeline, error)
}

func candidates() []pipelineCandidate {
	return []pipelineCandidate{
		{name: ModeFlux2Klein, load: newFluxPipeline},
		{name: ModeOpenAIEdit, load: newOpenAIPipeline},
	}
}

// Pipeline mode names.
const (
	ModeFlux2Klein = "flux2klein"
	ModeOpenAIEdit = "openai-edit"
	ModeFallback   = "fallback"
	ModeUnknown    = "unknown"
)
