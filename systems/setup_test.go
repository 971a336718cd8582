package systems

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/density"
)

func testConfig(t *testing.T, count int) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Particles.Count = count
	cfg.Sampling.MinSpacing = 0.05
	cfg.Sampling.MaxSpacing = 0.1
	return cfg
}

func TestSetup_DarkImagesSeedOnA(t *testing.T) {
	cfg := testConfig(t, 16)
	dark := density.Uniform(4, 0)

	st, err := Setup(cfg, dark, dark, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if st.Buffers.Len() != 16 || st.Targets.Len() != 16 {
		t.Fatalf("expected 16 particles, got buffers=%d targets=%d", st.Buffers.Len(), st.Targets.Len())
	}
	if st.Active != MorphA || st.Steps != 0 || st.Clock != 0 {
		t.Errorf("unexpected initial state: active=%v steps=%d clock=%v", st.Active, st.Steps, st.Clock)
	}

	pos := st.Buffers.Positions()
	tgt := st.Targets.Get(MorphA).Positions
	for i := range pos {
		if pos[i] != tgt[i] {
			t.Fatalf("coordinate %d not seeded on target A", i)
		}
	}
	if len(st.Sources[0]) != 16 || len(st.Sources[1]) != 16 {
		t.Errorf("sources not retained: %d, %d", len(st.Sources[0]), len(st.Sources[1]))
	}
}

func TestSetup_WhiteImageHasNoParticles(t *testing.T) {
	cfg := testConfig(t, 16)
	white := density.Uniform(8, 1)

	_, err := Setup(cfg, white, white, rand.New(rand.NewSource(2)))
	if !errors.Is(err, ErrEmptyTarget) {
		t.Fatalf("expected ErrEmptyTarget, got %v", err)
	}
}

func TestSetup_MismatchedSets(t *testing.T) {
	// Both sets come up short of a huge count, by different amounts.
	dark := density.Uniform(16, 0)
	half := splitGrid(16)

	cfg := testConfig(t, 1<<20)
	_, err := Setup(cfg, dark, half, rand.New(rand.NewSource(3)))
	var mismatch *TargetSizeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected TargetSizeMismatchError, got %v", err)
	}

	cfg.Sampling.Equalize = true
	st, err := Setup(cfg, dark, half, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("Setup with equalize: %v", err)
	}
	if len(st.Sources[0]) != len(st.Sources[1]) || st.Buffers.Len() != len(st.Sources[0]) {
		t.Errorf("equalized sets differ: %d, %d, buffers %d", len(st.Sources[0]), len(st.Sources[1]), st.Buffers.Len())
	}
}

func TestSnapshot_CopiesFrontBuffer(t *testing.T) {
	st := newTestState(t, 32, 0.01, 12)
	s := NewStepper(PullIntegrator{Attraction: 4, Drag: 5}, 0, 1)
	defer s.Close()

	var f Frame
	st.Snapshot(&f)
	if f.Len() != 32 {
		t.Fatalf("frame holds %d particles, want 32", f.Len())
	}
	before := append([]float32(nil), f.Positions...)

	if err := s.Step(st, MorphB, 0.05); err != nil {
		t.Fatal(err)
	}
	for i := range before {
		if f.Positions[i] != before[i] {
			t.Fatal("snapshot changed when state advanced")
		}
	}

	st.Snapshot(&f)
	if f.Steps != 1 || f.Active != MorphB {
		t.Errorf("frame steps=%d active=%v, want 1, B", f.Steps, f.Active)
	}
}
