// Package config provides configuration loading and access for the morph simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen" toml:"screen"`
	Sampling   SamplingConfig   `yaml:"sampling" toml:"sampling"`
	Particles  ParticlesConfig  `yaml:"particles" toml:"particles"`
	Simulation SimulationConfig `yaml:"simulation" toml:"simulation"`
	Render     RenderConfig     `yaml:"render" toml:"render"`
	Telemetry  TelemetryConfig  `yaml:"telemetry" toml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-" toml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width" toml:"width"`
	Height    int `yaml:"height" toml:"height"`
	TargetFPS int `yaml:"target_fps" toml:"target_fps"`
}

// SamplingConfig holds density field and point sampling parameters.
type SamplingConfig struct {
	GridResolution   int     `yaml:"grid_resolution" toml:"grid_resolution"`     // N of the N×N density grid
	MinSpacing       float64 `yaml:"min_spacing" toml:"min_spacing"`             // Spacing in fully dark cells
	MaxSpacing       float64 `yaml:"max_spacing" toml:"max_spacing"`             // Spacing in fully lit cells
	MaxTries         int     `yaml:"max_tries" toml:"max_tries"`                 // Candidates per active point
	Bias             float64 `yaml:"bias" toml:"bias"`                           // Spacing exponent offset (0 = linear)
	DensityThreshold float64 `yaml:"density_threshold" toml:"density_threshold"` // Drop points lighter than this
	DensityModel     string  `yaml:"density_model" toml:"density_model"`         // red, average, luma
	Equalize         bool    `yaml:"equalize" toml:"equalize"`                   // Truncate both targets to the shorter set
}

// ParticlesConfig holds particle buffer parameters.
type ParticlesConfig struct {
	Count          int     `yaml:"count" toml:"count"`                     // Must be a perfect square
	VelocityJitter float64 `yaml:"velocity_jitter" toml:"velocity_jitter"` // Initial velocity scale per axis
}

// SimulationConfig holds stepping parameters.
type SimulationConfig struct {
	DT                float64 `yaml:"dt" toml:"dt"`
	Integrator        string  `yaml:"integrator" toml:"integrator"` // pull or spring
	Attraction        float64 `yaml:"attraction" toml:"attraction"`
	Drag              float64 `yaml:"drag" toml:"drag"`
	SpringFrequency   float64 `yaml:"spring_frequency" toml:"spring_frequency"`
	SpringDamping     float64 `yaml:"spring_damping" toml:"spring_damping"`
	ParallelThreshold int     `yaml:"parallel_threshold" toml:"parallel_threshold"` // Particle count above which stepping fans out
	Workers           int     `yaml:"workers" toml:"workers"`                       // 0 = GOMAXPROCS
}

// RenderConfig holds viewer parameters.
type RenderConfig struct {
	PointSize   float64 `yaml:"point_size" toml:"point_size"`
	LinkCount   int     `yaml:"link_count" toml:"link_count"`     // Random segments re-picked every frame
	LinkOpacity float64 `yaml:"link_opacity" toml:"link_opacity"` // 0 hides links
	Background  string  `yaml:"background" toml:"background"`     // Hex RGB
	Ink         string  `yaml:"ink" toml:"ink"`                   // Hex RGB
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window" toml:"stats_window"` // Simulated seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window" toml:"perf_collector_window"`
	SettleThreshold     float64 `yaml:"settle_threshold" toml:"settle_threshold"` // MSD at which a morph counts as settled
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32          float32 // Simulation.DT as float32
	Side          int     // sqrt(Particles.Count)
	ParticleCount int     // Particles.Count
	ScreenW32     float32
	ScreenH32     float32
	Background    RGB
	Ink           RGB
}

// Integrator names accepted by Simulation.Integrator.
const (
	IntegratorPull   = "pull"
	IntegratorSpring = "spring"
)

// ErrInvalid is wrapped by all validation errors.
var ErrInvalid = errors.New("config: invalid")

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML or TOML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Decode into same struct - only overwrites fields present in file
		if strings.EqualFold(filepath.Ext(path), ".toml") {
			if _, err := toml.Decode(string(data), cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks parameter ranges that would otherwise surface as setup failures.
func (c *Config) Validate() error {
	s := c.Sampling
	switch {
	case s.GridResolution < 1:
		return fmt.Errorf("%w: sampling.grid_resolution must be >= 1, got %d", ErrInvalid, s.GridResolution)
	case s.MinSpacing <= 0:
		return fmt.Errorf("%w: sampling.min_spacing must be > 0, got %g", ErrInvalid, s.MinSpacing)
	case s.MaxSpacing < s.MinSpacing:
		return fmt.Errorf("%w: sampling.max_spacing (%g) < min_spacing (%g)", ErrInvalid, s.MaxSpacing, s.MinSpacing)
	case s.MaxTries < 1:
		return fmt.Errorf("%w: sampling.max_tries must be >= 1, got %d", ErrInvalid, s.MaxTries)
	case s.Bias < 0:
		return fmt.Errorf("%w: sampling.bias must be >= 0, got %g", ErrInvalid, s.Bias)
	}
	switch strings.ToLower(s.DensityModel) {
	case "red", "average", "luma":
	default:
		return fmt.Errorf("%w: unknown sampling.density_model %q", ErrInvalid, s.DensityModel)
	}

	if _, ok := perfectSquareRoot(c.Particles.Count); !ok {
		return fmt.Errorf("%w: particles.count must be a positive perfect square, got %d", ErrInvalid, c.Particles.Count)
	}

	sim := c.Simulation
	if sim.DT <= 0 {
		return fmt.Errorf("%w: simulation.dt must be > 0, got %g", ErrInvalid, sim.DT)
	}
	switch sim.Integrator {
	case IntegratorPull, IntegratorSpring:
	default:
		return fmt.Errorf("%w: unknown simulation.integrator %q", ErrInvalid, sim.Integrator)
	}

	if _, err := ParseHexColor(c.Render.Background); err != nil {
		return fmt.Errorf("render.background: %w", err)
	}
	if _, err := ParseHexColor(c.Render.Ink); err != nil {
		return fmt.Errorf("render.ink: %w", err)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Simulation.DT)
	c.Derived.Side, _ = perfectSquareRoot(c.Particles.Count)
	c.Derived.ParticleCount = c.Particles.Count
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.Background, _ = ParseHexColor(c.Render.Background)
	c.Derived.Ink, _ = ParseHexColor(c.Render.Ink)
}

// perfectSquareRoot returns the integer root of n if n is a positive perfect square.
func perfectSquareRoot(n int) (int, bool) {
	if n <= 0 {
		return 0, false
	}
	r := int(math.Round(math.Sqrt(float64(n))))
	return r, r*r == n
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
