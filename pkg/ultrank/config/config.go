// Package config loads and validates TOML configuration for ultrank.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"ultrank/pkg/ultrank/interp"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the input and output directory configuration.
type Paths struct {
	// InputDir is scanned for .xlsx survey files.
	InputDir string `toml:"input_dir"`
	// OutputDir receives the per-file artifacts.
	OutputDir string `toml:"output_dir"`
}

// Analysis contains the profile aggregation parameters.
type Analysis struct {
	// DistanceStep is the common axis step in meters.
	DistanceStep float64 `toml:"distance_step"`
	// InterpolationKind is one of linear, nearest, zero, slinear, quadratic,
	// cubic.
	InterpolationKind string `toml:"interpolation_kind"`
	// ScoreEpsilon floors the score divisor.
	ScoreEpsilon float64 `toml:"score_epsilon"`
}

// ModePreset describes one measurement mode.
type ModePreset struct {
	// YAxisLabel labels the plot y axis for this mode.
	YAxisLabel string `toml:"y_axis_label"`
}

// Config encapsulates all configuration values for ultrank.
type Config struct {
	Paths    Paths                 `toml:"paths"`
	Analysis Analysis              `toml:"analysis"`
	Modes    map[string]ModePreset `toml:"modes"`
}

// Default returns the built-in configuration: current directory in,
// output_profiles out, linear interpolation at a 0.5 m step, and the ec/ms
// mode presets.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:  ".",
			OutputDir: "output_profiles",
		},
		Analysis: Analysis{
			DistanceStep:      0.5,
			InterpolationKind: string(interp.KindLinear),
			ScoreEpsilon:      1e-8,
		},
		Modes: map[string]ModePreset{
			"ec": {YAxisLabel: "Mean EC Response S/m"},
			"ms": {YAxisLabel: "Mean MS Response 10^-5 SI"},
		},
	}
}

// Load parses the configuration file at path, layered over the defaults.
// A missing file is not an error when path is empty: the defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file not found: %s", path)
			}
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the analysis parameters and mode presets.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.InputDir) == "" {
		return errors.New("paths.input_dir must not be empty")
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must not be empty")
	}
	if c.Analysis.DistanceStep <= 0 {
		return fmt.Errorf("analysis.distance_step must be positive, got %g", c.Analysis.DistanceStep)
	}
	if c.Analysis.ScoreEpsilon <= 0 {
		return fmt.Errorf("analysis.score_epsilon must be positive, got %g", c.Analysis.ScoreEpsilon)
	}
	if kind := interp.Kind(c.Analysis.InterpolationKind); !kind.Valid() {
		return fmt.Errorf("analysis.interpolation_kind %q is not one of %v", c.Analysis.InterpolationKind, interp.Kinds())
	}
	if len(c.Modes) == 0 {
		return errors.New("at least one mode preset is required")
	}
	for tag, preset := range c.Modes {
		if strings.TrimSpace(preset.YAxisLabel) == "" {
			return fmt.Errorf("modes.%s.y_axis_label must not be empty", tag)
		}
	}
	return nil
}

// Mode returns the preset for tag. Unknown tags name the configured
// alternatives in the error.
func (c *Config) Mode(tag string) (ModePreset, error) {
	preset, ok := c.Modes[tag]
	if !ok {
		tags := make([]string, 0, len(c.Modes))
		for t := range c.Modes {
			tags = append(tags, t)
		}
		sort.Strings(tags)
		return ModePreset{}, fmt.Errorf("unknown mode %q (configured modes: %s)", tag, strings.Join(tags, ", "))
	}
	return preset, nil
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
