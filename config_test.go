package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "planner.toml")
	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestDefaultConfigMatchesReference(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Width != 720 || cfg.Height != 500 {
		t.Errorf("region = %vx%v, want 720x500", cfg.Width, cfg.Height)
	}
	if cfg.StepSize != 7 || cfg.NodeBudget != 5000 || cfg.GoalRadius != 10 {
		t.Errorf("step, budget, radius = %v, %v, %v", cfg.StepSize, cfg.NodeBudget, cfg.GoalRadius)
	}
	if cfg.GateMinDistance {
		t.Error("min distance gate should be off by default")
	}
	if cfg.Layout != 1 {
		t.Errorf("Layout = %d, want 1", cfg.Layout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	filename := writeConfig(t, `
width = 1000
step_size = 5.5
layout = 0
seed = 42
gate_min_distance = true
unknown_key = "ignored"

[start]
x = 10
y = 20

[goal]
x = 900
y = 480
`)

	cfg, err := LoadConfig(filename)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Width != 1000 || cfg.Height != 500 {
		t.Errorf("region = %vx%v, want 1000x500", cfg.Width, cfg.Height)
	}
	if cfg.StepSize != 5.5 || cfg.Layout != 0 || cfg.Seed != 42 || !cfg.GateMinDistance {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.NodeBudget != 5000 {
		t.Errorf("NodeBudget = %d, want default 5000", cfg.NodeBudget)
	}
	if cfg.Start == nil || *cfg.Start != (Point{10, 20}) {
		t.Errorf("Start = %+v", cfg.Start)
	}
	if cfg.Goal == nil || *cfg.Goal != (Point{900, 480}) {
		t.Errorf("Goal = %+v", cfg.Goal)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		invalid bool
	}{
		{"syntax", "width = = 3", false},
		{"negative width", "width = -1", true},
		{"zero step", "step_size = 0", true},
		{"zero budget", "node_budget = 0", true},
		{"negative attempts", "max_sample_attempts = -2", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.invalid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
