package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cskillzmartin/genmoji/core"
	"github.com/cskillzmartin/genmoji/glyph"
	"github.com/cskillzmartin/genmoji/logging"
)

// ConfigFile is the optional YAML overrides file, read from the working
// directory when present.
const ConfigFile = "genmoji.yaml"

// Config holds process-level settings. Init commands may override the
// model/device/font fields per session.
type Config struct {
	ModelPath        string `yaml:"model_path"`
	Device           string `yaml:"device"`
	FontPath         string `yaml:"font_path"`
	EnableCPUOffload bool   `yaml:"enable_cpu_offload"`

	LogFile string `yaml:"log_file"`

	// WorkerJoinTimeout bounds how long quit waits for a running batch
	// worker before exiting anyway.
	WorkerJoinTimeout time.Duration `yaml:"worker_join_timeout"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		ModelPath:         "black-forest-labs/FLUX.2-klein-4B",
		Device:            "cuda",
		FontPath:          glyph.DefaultFontPath,
		EnableCPUOffload:  false,
		LogFile:           logging.DefaultLogFile,
		WorkerJoinTimeout: 30 * time.Second,
	}
}

// LoadConfig builds the effective configuration: defaults, then
// genmoji.yaml when present, then environment variables.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if data, err := os.ReadFile(ConfigFile); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", ConfigFile, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("reading %s: %w", ConfigFile, err)
	}

	cfg.ModelPath = core.GetEnvOrDefault("GENMOJI_MODEL_PATH", cfg.ModelPath)
	cfg.Device = core.GetEnvOrDefault("GENMOJI_DEVICE", cfg.Device)
	cfg.FontPath = core.GetEnvOrDefault("GENMOJI_FONT_PATH", cfg.FontPath)
	cfg.EnableCPUOffload = core.ParseBoolEnv("GENMOJI_CPU_OFFLOAD", cfg.EnableCPUOffload)
	cfg.LogFile = core.GetEnvOrDefault("GENMOJI_LOG_FILE", cfg.LogFile)

	return cfg, nil
}
