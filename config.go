package main

import (
	"fmt"
	"log"

	"github.com/BurntSushi/toml"
)

// Config holds the planner settings
type Config struct {
	Width      float64 `toml:"width"`
	Height     float64 `toml:"height"`
	StepSize   float64 `toml:"step_size"`
	GoalRadius float64 `toml:"goal_radius"`

	// NodeBudget is the tree size at which the session gives up
	NodeBudget int `toml:"node_budget"`

	// MinDistanceToAdd is only applied when GateMinDistance is set
	MinDistanceToAdd float64 `toml:"min_distance_to_add"`
	GateMinDistance  bool    `toml:"gate_min_distance"`

	Layout      int    `toml:"layout"`
	LayoutsFile string `toml:"layouts_file"`

	// Seed 0 picks a time-based seed
	Seed int64 `toml:"seed"`

	// Attempt caps; 0 means unbounded
	MaxSampleTries int `toml:"max_sample_attempts"`
	MaxExtendTries int `toml:"max_extend_attempts"`

	// Start and Goal are used by the headless run
	Start *Point `toml:"start"`
	Goal  *Point `toml:"goal"`
}

// DefaultConfig returns the reference settings
func DefaultConfig() Config {
	return Config{
		Width:            ReferenceWidth,
		Height:           ReferenceHeight,
		StepSize:         7.0,
		NodeBudget:       5000,
		GoalRadius:       10,
		MinDistanceToAdd: 1.0,
		Layout:           1,
	}
}

// LoadConfig reads a TOML file over the defaults
func LoadConfig(filename string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(filename, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}
	for _, key := range md.Undecoded() {
		log.Printf("⚠️  Unknown config key %q ignored\n", key.String())
	}
	return cfg, cfg.Validate()
}

// Validate checks the settings for values the planner cannot run with
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: region %gx%g must be positive", ErrInvalidConfig, c.Width, c.Height)
	case c.StepSize <= 0:
		return fmt.Errorf("%w: step_size %g must be positive", ErrInvalidConfig, c.StepSize)
	case c.GoalRadius <= 0:
		return fmt.Errorf("%w: goal_radius %g must be positive", ErrInvalidConfig, c.GoalRadius)
	case c.NodeBudget <= 0:
		return fmt.Errorf("%w: node_budget %d must be positive", ErrInvalidConfig, c.NodeBudget)
	case c.MinDistanceToAdd < 0:
		return fmt.Errorf("%w: min_distance_to_add %g is negative", ErrInvalidConfig, c.MinDistanceToAdd)
	case c.MaxSampleTries < 0 || c.MaxExtendTries < 0:
		return fmt.Errorf("%w: attempt caps cannot be negative", ErrInvalidConfig)
	}
	return nil
}
