package systems

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/density"
)

// State is the full simulation state owned by the frame loop.
type State struct {
	Buffers *Buffers
	Targets *MorphTargets
	// Clock is simulated time in seconds.
	Clock  float64
	Steps  int64
	Active Morph
	// Sources holds the curated point sets the targets were built from.
	Sources [2]PointSet
}

// Frame is a read-only copy of the particle state for rendering.
type Frame struct {
	Positions []float32
	Alpha     []float32
	Clock     float64
	Steps     int64
	Active    Morph
}

// Len returns the number of particles in the frame.
func (f *Frame) Len() int {
	return len(f.Alpha)
}

// Snapshot copies the front buffers into dst, reusing its storage.
func (st *State) Snapshot(dst *Frame) {
	pos := st.Buffers.Positions()
	if cap(dst.Positions) < len(pos) {
		dst.Positions = make([]float32, len(pos))
	}
	dst.Positions = dst.Positions[:len(pos)]
	copy(dst.Positions, pos)

	alpha := st.Buffers.Alpha()
	if len(dst.Alpha) != len(alpha) {
		dst.Alpha = append(dst.Alpha[:0], alpha...)
	}

	dst.Clock = st.Clock
	dst.Steps = st.Steps
	dst.Active = st.Active
}

// Setup samples and curates both density grids, builds the morph targets and
// seeds particles on target A. Short point sets are logged; mismatched sets
// fail unless equalization is enabled.
func Setup(cfg *config.Config, a, b *density.Grid, rng *rand.Rand) (*State, error) {
	params := SamplerParamsFrom(cfg)

	var sets [2]PointSet
	for i, grid := range []*density.Grid{a, b} {
		which := Morph(i)
		ps, err := BuildPointSet(grid, params, cfg.Sampling.DensityThreshold, cfg.Particles.Count, rng)
		var short *InsufficientSamplesWarning
		switch {
		case errors.As(err, &short):
			slog.Warn("point set short", "target", which.String(), "want", short.Want, "got", short.Got)
		case err != nil:
			return nil, fmt.Errorf("sampling target %s: %w", which, err)
		}
		sets[i] = ps
	}

	if cfg.Sampling.Equalize && len(sets[0]) != len(sets[1]) {
		n := min(len(sets[0]), len(sets[1]))
		slog.Warn("equalizing point sets", "a", len(sets[0]), "b", len(sets[1]), "count", n)
		sets[0], sets[1] = sets[0][:n], sets[1][:n]
	}

	targets, err := BuildTargets(sets[0], sets[1])
	if err != nil {
		return nil, err
	}

	buffers, err := SeedBuffers(targets.Get(MorphA), float32(cfg.Particles.VelocityJitter), rng)
	if err != nil {
		return nil, err
	}

	slog.Info("simulation seeded", "particles", buffers.Len())

	return &State{
		Buffers: buffers,
		Targets: targets,
		Active:  MorphA,
		Sources: sets,
	}, nil
}
