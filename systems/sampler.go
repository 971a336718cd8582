package systems

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/density"
	"gonum.org/v1/gonum/spatial/r2"
)

// SamplerParams controls density-biased Poisson-disk sampling.
type SamplerParams struct {
	// MinSpacing is the required gap between points in fully dark regions.
	MinSpacing float64
	// MaxSpacing is the required gap between points in fully lit regions.
	MaxSpacing float64
	// MaxTries is the number of candidates tried around an active point
	// before it is retired.
	MaxTries int
	// Bias bends the density-to-spacing curve. Zero is linear.
	Bias float64
}

// SamplerParamsFrom reads sampler parameters from configuration.
func SamplerParamsFrom(cfg *config.Config) SamplerParams {
	return SamplerParams{
		MinSpacing: cfg.Sampling.MinSpacing,
		MaxSpacing: cfg.Sampling.MaxSpacing,
		MaxTries:   cfg.Sampling.MaxTries,
		Bias:       cfg.Sampling.Bias,
	}
}

// Validate checks that the parameters describe a usable sampler.
func (p SamplerParams) Validate() error {
	switch {
	case !(p.MinSpacing > 0):
		return fmt.Errorf("%w: min spacing %v must be positive", ErrInvalidSampling, p.MinSpacing)
	case p.MaxSpacing < p.MinSpacing:
		return fmt.Errorf("%w: max spacing %v below min spacing %v", ErrInvalidSampling, p.MaxSpacing, p.MinSpacing)
	case p.MaxTries < 1:
		return fmt.Errorf("%w: max tries %d", ErrInvalidSampling, p.MaxTries)
	case p.Bias <= -1:
		return fmt.Errorf("%w: bias %v must exceed -1", ErrInvalidSampling, p.Bias)
	}
	return nil
}

// Spacing returns the local minimum distance for a cell of density d.
// Spacing grows monotonically with density.
func (p SamplerParams) Spacing(d float32) float64 {
	t := clamp01(float64(d))
	if p.Bias != 0 {
		t = math.Pow(t, 1+p.Bias)
	}
	return p.MinSpacing + (p.MaxSpacing-p.MinSpacing)*t
}

// Sample fills the unit square with points whose spacing follows the density
// grid: dark cells pack tightly, lit cells sparsely. Any two points a and b
// end up at least min(Spacing(a), Spacing(b)) apart. The result depends only
// on grid, params and the state of rng.
func Sample(grid *density.Grid, params SamplerParams, rng *rand.Rand) ([]r2.Vec, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	spacing := func(p r2.Vec) float64 {
		return params.Spacing(grid.AtPoint(p.X, p.Y))
	}

	index := NewPointGrid(params.MinSpacing / math.Sqrt2)
	points := make([]r2.Vec, 0, 1024)
	active := make([]int32, 0, 256)

	insert := func(p r2.Vec) {
		idx := int32(len(points))
		points = append(points, p)
		active = append(active, idx)
		index.Insert(idx, p)
	}

	insert(r2.Vec{X: rng.Float64(), Y: rng.Float64()})

	for len(active) > 0 {
		slot := rng.Intn(len(active))
		p := points[active[slot]]
		r := spacing(p)

		placed := false
		for try := 0; try < params.MaxTries; try++ {
			angle := rng.Float64() * 2 * math.Pi
			dist := r * (1 + rng.Float64())
			c := r2.Add(p, r2.Vec{X: dist * math.Cos(angle), Y: dist * math.Sin(angle)})
			if !inUnitSquare(c.X, c.Y) {
				continue
			}
			if index.AnyWithin(points, c, spacing(c)) {
				continue
			}
			insert(c)
			placed = true
			break
		}

		if !placed {
			// Retire: swap-remove from the active list.
			last := len(active) - 1
			active[slot] = active[last]
			active = active[:last]
		}
	}

	return points, nil
}
