package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Particles.Count != 16384 {
		t.Errorf("expected 16384 particles, got %d", cfg.Particles.Count)
	}
	if cfg.Derived.Side != 128 {
		t.Errorf("expected side 128, got %d", cfg.Derived.Side)
	}
	if cfg.Derived.DT32 != float32(cfg.Simulation.DT) {
		t.Errorf("DT32 = %v, want %v", cfg.Derived.DT32, cfg.Simulation.DT)
	}
	if cfg.Sampling.MaxSpacing < cfg.Sampling.MinSpacing {
		t.Errorf("default spacing range inverted: %v..%v", cfg.Sampling.MinSpacing, cfg.Sampling.MaxSpacing)
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("particles:\n  count: 256\nsimulation:\n  integrator: spring\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Particles.Count != 256 || cfg.Derived.Side != 16 {
		t.Errorf("expected 256 particles (side 16), got %d (side %d)", cfg.Particles.Count, cfg.Derived.Side)
	}
	if cfg.Simulation.Integrator != IntegratorSpring {
		t.Errorf("expected spring integrator, got %q", cfg.Simulation.Integrator)
	}
	// Untouched fields keep their defaults
	if cfg.Sampling.MaxTries != 30 {
		t.Errorf("expected default max_tries 30, got %d", cfg.Sampling.MaxTries)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.toml")
	data := []byte("[sampling]\ngrid_resolution = 64\ndensity_threshold = 0.5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sampling.GridResolution != 64 {
		t.Errorf("expected grid resolution 64, got %d", cfg.Sampling.GridResolution)
	}
	if cfg.Sampling.DensityThreshold != 0.5 {
		t.Errorf("expected threshold 0.5, got %v", cfg.Sampling.DensityThreshold)
	}
	if cfg.Particles.Count != 16384 {
		t.Errorf("expected default count, got %d", cfg.Particles.Count)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"non-square count", func(c *Config) { c.Particles.Count = 1000 }},
		{"zero count", func(c *Config) { c.Particles.Count = 0 }},
		{"zero min spacing", func(c *Config) { c.Sampling.MinSpacing = 0 }},
		{"inverted spacing", func(c *Config) { c.Sampling.MaxSpacing = c.Sampling.MinSpacing / 2 }},
		{"no tries", func(c *Config) { c.Sampling.MaxTries = 0 }},
		{"negative bias", func(c *Config) { c.Sampling.Bias = -1 }},
		{"unknown model", func(c *Config) { c.Sampling.DensityModel = "hue" }},
		{"zero dt", func(c *Config) { c.Simulation.DT = 0 }},
		{"unknown integrator", func(c *Config) { c.Simulation.Integrator = "verlet" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Simulation.Attraction = 7.5

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if loaded.Simulation.Attraction != 7.5 {
		t.Errorf("expected attraction 7.5, got %v", loaded.Simulation.Attraction)
	}
}
