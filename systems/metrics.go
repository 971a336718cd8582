package systems

import (
	"math"

	"gonum.org/v1/gonum/blas/blas32"
)

// MeanSquaredDistance returns the mean over particles of the squared distance
// between pos and target. scratch must have len(pos) capacity and is overwritten.
func MeanSquaredDistance(pos, target, scratch []float32) float64 {
	n := len(pos) / 3
	if n == 0 {
		return 0
	}
	diff := vector(scratch[:len(pos)])
	blas32.Copy(vector(pos), diff)
	blas32.Axpy(-1, vector(target), diff)
	return float64(blas32.Dot(diff, diff)) / float64(n)
}

// Speeds writes each particle's speed into dst and returns it.
func Speeds(vel []float32, dst []float64) []float64 {
	n := len(vel) / 3
	dst = dst[:0]
	for i := 0; i < n; i++ {
		vx, vy, vz := vel[3*i], vel[3*i+1], vel[3*i+2]
		dst = append(dst, math.Sqrt(float64(vx*vx+vy*vy+vz*vz)))
	}
	return dst
}
