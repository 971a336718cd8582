package systems

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/pthm-cable/morph/density"
	"gonum.org/v1/gonum/spatial/r2"
)

func randomGrid(size int, rng *rand.Rand) *density.Grid {
	values := make([]float32, size*size)
	for i := range values {
		values[i] = rng.Float32()
	}
	return density.NewGrid(size, values)
}

func TestCurate_DarkGridKeepsExactCount(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	grid := density.Uniform(4, 0)
	params := SamplerParams{MinSpacing: 0.05, MaxSpacing: 0.1, MaxTries: 30}

	raw, err := Sample(grid, params, rng)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) < 16 {
		t.Fatalf("expected at least 16 raw points, got %d", len(raw))
	}

	ps, err := Curate(raw, grid, 0.9, 16, rng)
	if err != nil {
		t.Fatalf("Curate: %v", err)
	}
	if len(ps) != 16 {
		t.Fatalf("expected 16 points, got %d", len(ps))
	}
	for i, p := range ps {
		if p.Alpha != 1 {
			t.Errorf("point %d alpha = %v, want 1", i, p.Alpha)
		}
	}
}

func TestCurate_WhiteGridIsEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	grid := density.Uniform(8, 1)

	ps, err := BuildPointSet(grid, testParams(), 0.9, 16, rng)
	var short *InsufficientSamplesWarning
	if !errors.As(err, &short) {
		t.Fatalf("expected InsufficientSamplesWarning, got %v", err)
	}
	if short.Got != 0 || short.Want != 16 {
		t.Errorf("warning = %+v", short)
	}
	if len(ps) != 0 {
		t.Fatalf("expected empty point set, got %d", len(ps))
	}

	if _, err := SeedBuffers(NewTarget(ps), 0.01, rng); !errors.Is(err, ErrEmptyTarget) {
		t.Fatalf("expected ErrEmptyTarget, got %v", err)
	}
}

func TestCurate_ThresholdMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	grid := randomGrid(16, rng)
	raw, err := Sample(grid, testParams(), rng)
	if err != nil {
		t.Fatal(err)
	}

	prev := len(raw) + 1
	for _, threshold := range []float64{1, 0.9, 0.7, 0.5, 0.3, 0.1, 0} {
		ps, _ := Curate(raw, grid, threshold, len(raw), rand.New(rand.NewSource(6)))
		if len(ps) > prev {
			t.Errorf("threshold %v kept %d points, more than %d at a higher threshold", threshold, len(ps), prev)
		}
		prev = len(ps)
	}
}

func TestCurate_SubsetWithAlphaFromDensity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	grid := randomGrid(8, rng)
	raw, err := Sample(grid, testParams(), rng)
	if err != nil {
		t.Fatal(err)
	}
	original := append([]r2.Vec(nil), raw...)

	ps, _ := Curate(raw, grid, 0.6, 100, rng)

	for i := range raw {
		if raw[i] != original[i] {
			t.Fatal("Curate modified its input")
		}
	}

	inRaw := make(map[r2.Vec]bool, len(raw))
	for _, p := range raw {
		inRaw[p] = true
	}
	seen := make(map[r2.Vec]bool, len(ps))
	for _, p := range ps {
		v := r2.Vec{X: p.X, Y: p.Y}
		if !inRaw[v] {
			t.Fatalf("curated point %v not in raw sample", v)
		}
		if seen[v] {
			t.Fatalf("curated point %v duplicated", v)
		}
		seen[v] = true

		d := grid.AtPoint(p.X, p.Y)
		if float64(d) > 0.6 {
			t.Errorf("point %v has density %v above threshold", v, d)
		}
		if p.Alpha != 1-d {
			t.Errorf("point %v alpha = %v, want %v", v, p.Alpha, 1-d)
		}
	}
}

func TestCurate_ShortSetReturnsWarning(t *testing.T) {
	raw := []r2.Vec{{X: 0.1, Y: 0.1}, {X: 0.6, Y: 0.6}, {X: 0.3, Y: 0.8}}
	ps, err := Curate(raw, density.Uniform(2, 0.2), 0.9, 10, rand.New(rand.NewSource(1)))

	var short *InsufficientSamplesWarning
	if !errors.As(err, &short) {
		t.Fatalf("expected InsufficientSamplesWarning, got %v", err)
	}
	if short.Got != 3 || len(ps) != 3 {
		t.Errorf("expected 3 points, got warning %+v and %d points", short, len(ps))
	}
}
