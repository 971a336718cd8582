package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/density"
)

func TestParamVector_NormalizeRoundtrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()

	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-12 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestParamVector_ApplyClamps(t *testing.T) {
	pv := NewParamVector()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Simulation.Integrator = config.IntegratorSpring

	pv.ApplyToConfig(cfg, []float64{-3, 1000})

	if cfg.Simulation.Integrator != config.IntegratorPull {
		t.Errorf("integrator = %q, want pull", cfg.Simulation.Integrator)
	}
	got := pv.ExtractFromConfig(cfg)
	if got[0] != pv.Specs[0].Min || got[1] != pv.Specs[1].Max {
		t.Errorf("clamped params = %v", got)
	}
}

func TestFitnessEvaluator_DefaultsSettle(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Particles.Count = 16
	cfg.Sampling.MinSpacing = 0.05
	cfg.Sampling.MaxSpacing = 0.1
	dark := density.Uniform(4, 0)

	pv := NewParamVector()
	const maxSteps = 2000
	fe, err := NewFitnessEvaluator(pv, maxSteps, 2, []int64{1, 2}, cfg, dark, dark)
	if err != nil {
		t.Fatal(err)
	}

	fitness := fe.Evaluate(pv.DefaultVector())
	if fitness <= 0 || fitness >= maxSteps {
		t.Errorf("mean settle steps = %v, want within (0, %d)", fitness, maxSteps)
	}
	if fe.LastSettled() != 1 {
		t.Errorf("settled fraction = %v, want 1", fe.LastSettled())
	}

	// Weak attraction with heavy drag crawls toward the target.
	slow := fe.Evaluate([]float64{0.5, 20})
	if slow <= fitness {
		t.Errorf("sluggish params scored %v, defaults %v", slow, fitness)
	}
}
