package systems

import (
	"math/rand"

	"github.com/pthm-cable/morph/density"
	"gonum.org/v1/gonum/spatial/r2"
)

// SamplePoint is a curated point in the unit square with its render opacity.
type SamplePoint struct {
	X     float64 `csv:"x"`
	Y     float64 `csv:"y"`
	Alpha float32 `csv:"alpha"`
}

// PointSet is an ordered list of curated points. Order is significant:
// index i of one set is paired with index i of the other.
type PointSet []SamplePoint

// Curate drops points whose density exceeds threshold, shuffles the rest with
// rng and truncates to targetCount. Each surviving point gets Alpha = 1 - density.
//
// When fewer than targetCount points survive, the full shuffled set is returned
// together with an *InsufficientSamplesWarning. raw is not modified.
func Curate(raw []r2.Vec, grid *density.Grid, threshold float64, targetCount int, rng *rand.Rand) (PointSet, error) {
	kept := make([]SamplePoint, 0, len(raw))
	for _, p := range raw {
		d := grid.AtPoint(p.X, p.Y)
		if float64(d) > threshold {
			continue
		}
		kept = append(kept, SamplePoint{X: p.X, Y: p.Y, Alpha: 1 - d})
	}

	rng.Shuffle(len(kept), func(i, j int) {
		kept[i], kept[j] = kept[j], kept[i]
	})

	if len(kept) < targetCount {
		return PointSet(kept), &InsufficientSamplesWarning{Want: targetCount, Got: len(kept)}
	}
	return PointSet(kept[:targetCount]), nil
}

// BuildPointSet samples grid and curates the result in one pass.
func BuildPointSet(grid *density.Grid, params SamplerParams, threshold float64, targetCount int, rng *rand.Rand) (PointSet, error) {
	raw, err := Sample(grid, params, rng)
	if err != nil {
		return nil, err
	}
	return Curate(raw, grid, threshold, targetCount, rng)
}
