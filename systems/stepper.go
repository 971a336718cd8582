package systems

import (
	"sync/atomic"

	"gonum.org/v1/gonum/blas/blas32"

	"github.com/pthm-cable/morph/config"
)

// StepperState reports whether a step is running.
type StepperState int32

const (
	StepperIdle StepperState = iota
	StepperStepping
)

func (s StepperState) String() string {
	if s == StepperStepping {
		return "stepping"
	}
	return "idle"
}

// Stepper advances particle state by one integration step at a time.
// Above parallelThreshold particles the step is split across a worker pool.
type Stepper struct {
	integrator        Integrator
	parallelThreshold int
	pool              *workerPool
	state             atomic.Int32
}

// NewStepper creates a stepper. A parallelThreshold <= 0 disables the
// worker pool; workers <= 0 uses GOMAXPROCS.
func NewStepper(integrator Integrator, parallelThreshold, workers int) *Stepper {
	s := &Stepper{
		integrator:        integrator,
		parallelThreshold: parallelThreshold,
	}
	if parallelThreshold > 0 {
		s.pool = newWorkerPool(workers)
	}
	return s
}

// NewStepperFromConfig creates a stepper using the configured integrator.
func NewStepperFromConfig(cfg *config.Config) (*Stepper, error) {
	in, err := NewIntegrator(cfg)
	if err != nil {
		return nil, err
	}
	return NewStepper(in, cfg.Simulation.ParallelThreshold, cfg.Simulation.Workers), nil
}

// State returns the current stepper state.
func (s *Stepper) State() StepperState {
	return StepperState(s.state.Load())
}

// Step integrates st toward the target named by active and publishes the
// result by swapping buffers. Readers never see a partial step. On error the
// front buffers are left untouched.
func (s *Stepper) Step(st *State, active Morph, dt float32) error {
	if !s.state.CompareAndSwap(int32(StepperIdle), int32(StepperStepping)) {
		return ErrStepInProgress
	}
	defer s.state.Store(int32(StepperIdle))

	b := st.Buffers
	target := st.Targets.Get(active)
	if target.Len() != b.Len() {
		return &StateCorruptionError{Step: st.Steps, Reason: "target length differs from particle count"}
	}

	pos, vel := b.Positions(), b.Velocities()
	nextPos, nextVel := b.back()
	tgt := target.Positions

	job := func(start, end int) {
		lo, hi := 3*start, 3*end
		s.integrator.Integrate(pos[lo:hi], vel[lo:hi], tgt[lo:hi], nextPos[lo:hi], nextVel[lo:hi], dt)
	}

	n := b.Len()
	if s.pool == nil || n < s.parallelThreshold {
		job(0, n)
	} else {
		s.pool.run(n, job)
	}

	if !finite(blas32.Asum(vector(nextPos))) || !finite(blas32.Asum(vector(nextVel))) {
		return &StateCorruptionError{Step: st.Steps, Reason: "non-finite particle state"}
	}

	b.swap()
	st.Clock += float64(dt)
	st.Steps++
	st.Active = active
	return nil
}

// Close stops the worker pool.
func (s *Stepper) Close() {
	if s.pool != nil {
		s.pool.stop()
	}
}
