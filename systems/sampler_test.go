package systems

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/morph/density"
	"gonum.org/v1/gonum/spatial/r2"
)

// gradientGrid returns a grid whose density rises linearly from 0 at the
// left edge to 1 at the right edge.
func gradientGrid(size int) *density.Grid {
	values := make([]float32, size*size)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			values[row*size+col] = float32(col) / float32(size-1)
		}
	}
	return density.NewGrid(size, values)
}

// splitGrid returns a grid that is fully dark on the left half and fully lit on the right.
func splitGrid(size int) *density.Grid {
	values := make([]float32, size*size)
	for row := 0; row < size; row++ {
		for col := size / 2; col < size; col++ {
			values[row*size+col] = 1
		}
	}
	return density.NewGrid(size, values)
}

func testParams() SamplerParams {
	return SamplerParams{MinSpacing: 0.02, MaxSpacing: 0.08, MaxTries: 30}
}

// ---------- Spacing ----------

func TestSpacing_Monotonic(t *testing.T) {
	for _, bias := range []float64{0, 0.5, 2} {
		p := testParams()
		p.Bias = bias
		prev := p.Spacing(0)
		if prev != p.MinSpacing {
			t.Errorf("bias %v: Spacing(0) = %v, want %v", bias, prev, p.MinSpacing)
		}
		for d := float32(0.1); d <= 1.0001; d += 0.1 {
			s := p.Spacing(d)
			if s < prev {
				t.Errorf("bias %v: Spacing(%v) = %v < %v", bias, d, s, prev)
			}
			prev = s
		}
		if math.Abs(p.Spacing(1)-p.MaxSpacing) > 1e-12 {
			t.Errorf("bias %v: Spacing(1) = %v, want %v", bias, p.Spacing(1), p.MaxSpacing)
		}
	}
}

// ---------- Sample ----------

func TestSample_SpacingRespectsLocalDensity(t *testing.T) {
	grid := gradientGrid(16)
	params := testParams()

	points, err := Sample(grid, params, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if len(points) < 50 {
		t.Fatalf("expected a reasonable number of points, got %d", len(points))
	}

	spacing := func(p r2.Vec) float64 { return params.Spacing(grid.AtPoint(p.X, p.Y)) }
	for i, a := range points {
		if !inUnitSquare(a.X, a.Y) {
			t.Fatalf("point %d at %v outside unit square", i, a)
		}
		for j := i + 1; j < len(points); j++ {
			b := points[j]
			limit := math.Min(spacing(a), spacing(b))
			if d := r2.Norm(r2.Sub(a, b)); d < limit-1e-12 {
				t.Fatalf("points %d and %d are %v apart, need %v", i, j, d, limit)
			}
		}
	}
}

func TestSample_DarkRegionsDenser(t *testing.T) {
	points, err := Sample(splitGrid(16), testParams(), rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatal(err)
	}

	var left, right int
	for _, p := range points {
		if p.X < 0.5 {
			left++
		} else {
			right++
		}
	}
	if left < 4*right {
		t.Errorf("expected dark half to be much denser: left=%d right=%d", left, right)
	}
}

func TestSample_Deterministic(t *testing.T) {
	grid := gradientGrid(8)
	a, err := Sample(grid, testParams(), rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Sample(grid, testParams(), rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestSample_InvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		params SamplerParams
	}{
		{"zero min spacing", SamplerParams{MinSpacing: 0, MaxSpacing: 0.1, MaxTries: 30}},
		{"max below min", SamplerParams{MinSpacing: 0.1, MaxSpacing: 0.05, MaxTries: 30}},
		{"no tries", SamplerParams{MinSpacing: 0.01, MaxSpacing: 0.05, MaxTries: 0}},
		{"bias too low", SamplerParams{MinSpacing: 0.01, MaxSpacing: 0.05, MaxTries: 30, Bias: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Sample(density.Uniform(4, 0), tt.params, rand.New(rand.NewSource(1)))
			if !errors.Is(err, ErrInvalidSampling) {
				t.Fatalf("expected ErrInvalidSampling, got %v", err)
			}
		})
	}
}

// ---------- PointGrid ----------

func TestPointGrid_QueryRadius(t *testing.T) {
	points := []r2.Vec{
		{X: 0.10, Y: 0.10},
		{X: 0.12, Y: 0.10},
		{X: 0.50, Y: 0.50},
		{X: 0.99, Y: 0.99},
	}
	g := NewPointGrid(0.05)
	for i, p := range points {
		g.Insert(int32(i), p)
	}

	got := g.QueryRadiusInto(nil, points, r2.Vec{X: 0.11, Y: 0.10}, 0.02)
	if len(got) != 2 {
		t.Fatalf("expected 2 neighbours, got %v", got)
	}
	if !g.AnyWithin(points, r2.Vec{X: 0.98, Y: 0.98}, 0.05) {
		t.Error("expected a neighbour near the corner")
	}
	if g.AnyWithin(points, r2.Vec{X: 0.3, Y: 0.3}, 0.1) {
		t.Error("expected no neighbour in empty region")
	}

	g.Clear()
	if g.AnyWithin(points, r2.Vec{X: 0.5, Y: 0.5}, 0.1) {
		t.Error("expected empty grid after Clear")
	}
}
