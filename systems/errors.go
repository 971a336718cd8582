package systems

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSampling is wrapped by sampler parameter errors.
	ErrInvalidSampling = errors.New("invalid sampling parameters")
	// ErrEmptyTarget is returned when buffers would be seeded from a zero-length target.
	ErrEmptyTarget = errors.New("empty morph target")
	// ErrStepInProgress is returned when Step is called while another step is running.
	ErrStepInProgress = errors.New("step already in progress")
)

// InsufficientSamplesWarning reports a curated point set shorter than requested.
// The set returned alongside it is still valid, just short.
type InsufficientSamplesWarning struct {
	Want, Got int
}

func (w *InsufficientSamplesWarning) Error() string {
	return fmt.Sprintf("insufficient samples: got %d of %d points", w.Got, w.Want)
}

// TargetSizeMismatchError reports morph targets of different lengths.
type TargetSizeMismatchError struct {
	A, B int
}

func (e *TargetSizeMismatchError) Error() string {
	return fmt.Sprintf("morph target size mismatch: A has %d points, B has %d", e.A, e.B)
}

// StateCorruptionError reports a violated simulation invariant. The frame
// loop must stop when it sees one.
type StateCorruptionError struct {
	Step   int64
	Reason string
}

func (e *StateCorruptionError) Error() string {
	return fmt.Sprintf("simulation state corrupted at step %d: %s", e.Step, e.Reason)
}
