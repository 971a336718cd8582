package systems

import (
	"math"

	"gonum.org/v1/gonum/blas/blas32"
)

// clamp01 clamps a float64 value to the [0, 1] range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// inUnitSquare reports whether (x, y) lies in [0,1)×[0,1).
func inUnitSquare(x, y float64) bool {
	return x >= 0 && x < 1 && y >= 0 && y < 1
}

// vector wraps a flat float32 slice for blas32 calls.
func vector(data []float32) blas32.Vector {
	return blas32.Vector{N: len(data), Inc: 1, Data: data}
}

// finite reports whether v is neither NaN nor infinite.
func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
