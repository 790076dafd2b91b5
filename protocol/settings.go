package protocol

import (
	"strconv"
	"strings"
)

// Settings default values. These mirror the pipeline defaults the driving
// process assumes when it omits the settings bag.
const (
	DefaultOutputSizePx     = 512
	DefaultInferenceSteps   = 30
	DefaultGuidanceScale    = 30.0
	DefaultStrength         = 0.1
	DefaultSeed             = 42
	DefaultBatchSize        = 1
	DefaultRemoveBGStrength = 1.0
	DefaultRembgModel       = "birefnet-general"
)

// Settings is the normalized per-job configuration bag. Unknown keys in
// the raw input are dropped; only keys the generation pipeline understands
// survive normalization.
type Settings struct {
	OutputSizePx             int
	NumInferenceSteps        int
	GuidanceScale            float64
	Strength                 float64
	Seed                     int64
	BatchSize                int
	SameSeed                 bool
	RemoveBackground         bool
	RemoveBackgroundStrength float64
	RembgModel               string
	DebugSaveConditioning    bool
}

// DefaultSettings returns the settings used when a command omits the bag.
func DefaultSettings() Settings {
	return Settings{
		OutputSizePx:             DefaultOutputSizePx,
		NumInferenceSteps:        DefaultInferenceSteps,
		GuidanceScale:            DefaultGuidanceScale,
		Strength:                 DefaultStrength,
		Seed:                     DefaultSeed,
		BatchSize:                DefaultBatchSize,
		SameSeed:                 false,
		RemoveBackground:         true,
		RemoveBackgroundStrength: DefaultRemoveBGStrength,
		RembgModel:               DefaultRembgModel,
		DebugSaveConditioning:    false,
	}
}

// Normalize resolves a raw settings map into a typed Settings value.
// Aliases are resolved (cfg_scale overrides guidance_scale), values are
// coerced from the loosely-typed JSON forms the client sends (numbers,
// numeric strings, booleans), out-of-range strengths are clamped and
// unknown keys are ignored. Normalize is idempotent: normalizing the Map()
// of a normalized bag yields the same bag.
func Normalize(raw map[string]any) Settings {
	s := DefaultSettings()
	if raw == nil {
		return s
	}

	if v, ok := intValue(raw["output_size_px"]); ok {
		s.OutputSizePx = int(v)
	}
	if v, ok := intValue(raw["num_inference_steps"]); ok {
		s.NumInferenceSteps = int(v)
	}
	if v, ok := floatValue(raw["guidance_scale"]); ok {
		s.GuidanceScale = v
	}
	if v, ok := floatValue(raw["cfg_scale"]); ok {
		s.GuidanceScale = v
	}
	if v, ok := floatValue(raw["strength"]); ok {
		s.Strength = v
	}
	if v, ok := intValue(raw["seed"]); ok {
		s.Seed = v
	}
	if v, ok := intValue(raw["batch_size"]); ok {
		s.BatchSize = int(v)
	}
	if s.BatchSize < 1 {
		s.BatchSize = 1
	}
	if v, ok := boolValue(raw["same_seed"]); ok {
		s.SameSeed = v
	}
	if v, ok := boolValue(raw["remove_background"]); ok {
		s.RemoveBackground = v
	}
	if v, ok := floatValue(raw["remove_background_strength"]); ok {
		s.RemoveBackgroundStrength = clamp01(v)
	}
	if v, ok := stringValue(raw["rembg_model"]); ok && v != "" {
		s.RembgModel = v
	}
	if v, ok := boolValue(raw["debug_save_conditioning"]); ok {
		s.DebugSaveConditioning = v
	}

	return s
}

// Map converts a Settings value back to its wire form. Aliases are already
// resolved, so the result round-trips through Normalize unchanged.
func (s Settings) Map() map[string]any {
	return map[string]any{
		"output_size_px":             s.OutputSizePx,
		"num_inference_steps":        s.NumInferenceSteps,
		"guidance_scale":             s.GuidanceScale,
		"strength":                   s.Strength,
		"seed":                       s.Seed,
		"batch_size":                 s.BatchSize,
		"same_seed":                  s.SameSeed,
		"remove_background":          s.RemoveBackground,
		"remove_background_strength": s.RemoveBackgroundStrength,
		"rembg_model":                s.RembgModel,
		"debug_save_conditioning":    s.DebugSaveConditioning,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// intValue coerces a JSON value to int64. JSON numbers decode as float64;
// numeric strings are accepted for client convenience.
func intValue(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func floatValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func boolValue(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "1", "yes", "on":
			return true, true
		case "false", "0", "no", "off":
			return false, true
		}
		return false, false
	case float64:
		return b != 0, true
	default:
		return false, false
	}
}

func stringValue(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}
