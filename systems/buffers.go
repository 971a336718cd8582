package systems

import (
	"math/rand"

	"gonum.org/v1/gonum/blas/blas32"
)

// Buffers holds the double-buffered particle state. Positions and velocities
// are stride-3 flat arrays. Only the front pair is visible to readers; the
// stepper writes the back pair and swaps.
type Buffers struct {
	n     int
	pos   [2][]float32
	vel   [2][]float32
	alpha []float32
	front int
}

// SeedBuffers places every particle on its target position with a small random
// velocity in x and y drawn from [-jitter/2, jitter/2).
func SeedBuffers(t *Target, jitter float32, rng *rand.Rand) (*Buffers, error) {
	n := t.Len()
	if n == 0 {
		return nil, ErrEmptyTarget
	}

	b := &Buffers{n: n, alpha: make([]float32, n)}
	for i := range b.pos {
		b.pos[i] = make([]float32, 3*n)
		b.vel[i] = make([]float32, 3*n)
	}
	copy(b.pos[0], t.Positions)
	copy(b.alpha, t.Alpha)

	vel := b.vel[0]
	for i := 0; i < n; i++ {
		vel[3*i] = jitter * (rng.Float32() - 0.5)
		vel[3*i+1] = jitter * (rng.Float32() - 0.5)
	}
	return b, nil
}

// Len returns the particle count.
func (b *Buffers) Len() int {
	return b.n
}

// Positions returns the front position buffer. Treat as read-only.
func (b *Buffers) Positions() []float32 {
	return b.pos[b.front]
}

// Velocities returns the front velocity buffer. Treat as read-only.
func (b *Buffers) Velocities() []float32 {
	return b.vel[b.front]
}

// Alpha returns per-particle opacity, fixed at seed time.
func (b *Buffers) Alpha() []float32 {
	return b.alpha
}

// NegateVelocities reverses every particle's velocity in place.
func (b *Buffers) NegateVelocities() {
	blas32.Scal(-1, vector(b.vel[b.front]))
}

func (b *Buffers) back() (pos, vel []float32) {
	return b.pos[1-b.front], b.vel[1-b.front]
}

func (b *Buffers) swap() {
	b.front = 1 - b.front
}
