package engine

import (
	"fmt"
	"sort"
	"strings"
)

// Canonical pipeline parameter names used for capability negotiation.
// A pipeline declares the subset it accepts at construction time and the
// engine never forwards a parameter outside that declared set.
const (
	ParamPrompt    = "prompt"
	ParamImage     = "image"
	ParamSteps     = "num_inference_steps"
	ParamGuidance  = "guidance_scale"
	ParamGenerator = "generator"
	ParamStrength  = "strength"
)

// Parameter validation constants
const (
	MinSteps = 1
	MaxSteps = 200

	MinGuidanceScale = 0.0
	MaxGuidanceScale = 100.0

	MaxPromptLength = 1000

	// MaxSeed is the modulus applied to client-supplied seeds before
	// seeding the deterministic generator: 2^63 - 1.
	MaxSeed = int64(1<<63 - 1)
)

// ParamSet is the declared set of parameter names a pipeline accepts.
type ParamSet map[string]struct{}

// NewParamSet builds a ParamSet from names.
func NewParamSet(names ...string) ParamSet {
	set := make(ParamSet, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// Has reports whether the set declares the given parameter name.
func (s ParamSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the sorted parameter names, for logging.
func (s ParamSet) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// String renders the set for log output.
func (s ParamSet) String() string {
	return strings.Join(s.Names(), ",")
}

// ReduceSeed maps an arbitrary client seed into [0, MaxSeed) for the
// deterministic generator. Negative seeds wrap rather than error.
// This is a pure function with no side effects.
func ReduceSeed(seed int64) int64 {
	reduced := seed % MaxSeed
	if reduced < 0 {
		reduced += MaxSeed
	}
	return reduced
}

// ValidatePrompt validates a prompt string for generation.
// This is a pure function with no side effects.
func ValidatePrompt(prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return fmt.Errorf("%w: prompt cannot be empty", ErrInvalidPrompt)
	}
	if len(prompt) > MaxPromptLength {
		return fmt.Errorf("%w: prompt length %d exceeds maximum %d",
			ErrInvalidPrompt, len(prompt), MaxPromptLength)
	}
	return nil
}

// ValidateRequest validates the numeric generation parameters.
func ValidateRequest(req Request) error {
	if err := ValidatePrompt(req.Prompt); err != nil {
		return err
	}
	if req.Conditioning == nil {
		return fmt.Errorf("%w: conditioning image is required", ErrInvalidParams)
	}
	if req.Steps < MinSteps || req.Steps > MaxSteps {
		return fmt.Errorf("%w: steps %d must be between %d and %d",
			ErrInvalidParams, req.Steps, MinSteps, MaxSteps)
	}
	if req.GuidanceScale < MinGuidanceScale || req.GuidanceScale > MaxGuidanceScale {
		return fmt.Errorf("%w: guidance scale %.2f must be between %.1f and %.1f",
			ErrInvalidParams, req.GuidanceScale, MinGuidanceScale, MaxGuidanceScale)
	}
	return nil
}
