// Package config holds the experiment parameters and their YAML overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MarkTee/Psych403-FinalProject/constants"
	"github.com/MarkTee/Psych403-FinalProject/placement"
)

// Config collects every tunable of a session. Zero values are filled from
// DefaultConfig before validation, so a YAML file only needs the fields it
// changes.
type Config struct {
	Blocks int `yaml:"blocks"`
	Trials int `yaml:"trials"`

	FixationSeconds   float64 `yaml:"fixation_seconds"`
	StimulusSeconds   float64 `yaml:"stimulus_seconds"`
	BlockPauseSeconds float64 `yaml:"block_pause_seconds"`

	WindowWidth  float64 `yaml:"window_width"`
	WindowHeight float64 `yaml:"window_height"`
	WindowMargin float64 `yaml:"window_margin"`
	CircleRadius float64 `yaml:"circle_radius"`

	DataDir string `yaml:"data_dir"`
	DBFile  string `yaml:"db_file"`
	Audio   bool   `yaml:"audio"`
}

// DefaultConfig returns the original experiment's parameters.
func DefaultConfig() *Config {
	return &Config{
		Blocks:            constants.DefaultBlocks,
		Trials:            constants.DefaultTrials,
		FixationSeconds:   constants.FixationDuration.Seconds(),
		StimulusSeconds:   constants.StimulusDuration.Seconds(),
		BlockPauseSeconds: constants.BlockStartDuration.Seconds(),
		WindowWidth:       constants.WindowWidth,
		WindowHeight:      constants.WindowHeight,
		WindowMargin:      constants.WindowMargin,
		CircleRadius:      constants.CircleRadius,
		DataDir:           "data",
		DBFile:            "subitize.db",
		Audio:             true,
	}
}

// Load reads a YAML file over the defaults. A missing path is not an error;
// the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects geometrically or structurally impossible parameter sets
// before a run starts, rather than mid-session.
func (c *Config) Validate() error {
	if c.Blocks < 1 {
		return fmt.Errorf("blocks must be at least 1, got %d", c.Blocks)
	}
	if c.Trials < 1 || c.Trials > 10 {
		// Responses are single digits (0 means 10), so conditions beyond
		// ten are unanswerable
		return fmt.Errorf("trials must be between 1 and 10, got %d", c.Trials)
	}
	if c.FixationSeconds < 0 || c.StimulusSeconds < 0 || c.BlockPauseSeconds < 0 {
		return fmt.Errorf("phase durations must not be negative")
	}
	if c.CircleRadius <= 0 {
		return fmt.Errorf("circle radius must be positive, got %v", c.CircleRadius)
	}
	halfW, halfH := c.Region().Bounds(c.MinSeparation())
	if halfW <= 0 || halfH <= 0 {
		return fmt.Errorf("window %vx%v with margin %v leaves no placeable area",
			c.WindowWidth, c.WindowHeight, c.WindowMargin)
	}
	return nil
}

// Region returns the stimulus placement region.
func (c *Config) Region() placement.Region {
	return placement.Region{
		Width:  c.WindowWidth,
		Height: c.WindowHeight,
		Margin: c.WindowMargin,
	}
}

// MinSeparation is the minimum center-to-center distance, one stimulus
// diameter.
func (c *Config) MinSeparation() float64 {
	return 2 * c.CircleRadius
}

func (c *Config) FixationTime() time.Duration {
	return time.Duration(c.FixationSeconds * float64(time.Second))
}

func (c *Config) StimulusTime() time.Duration {
	return time.Duration(c.StimulusSeconds * float64(time.Second))
}

func (c *Config) BlockPause() time.Duration {
	return time.Duration(c.BlockPauseSeconds * float64(time.Second))
}
