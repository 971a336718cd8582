package systems

import (
	"fmt"
	"math"

	"github.com/charmbracelet/harmonica"
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/pthm-cable/morph/config"
)

// Integrator advances one contiguous particle range by dt. All slices are
// stride-3 views of the same range; it reads pos, vel and target and writes
// nextPos and nextVel. Implementations are pure and deterministic so ranges
// can run in parallel.
type Integrator interface {
	Integrate(pos, vel, target, nextPos, nextVel []float32, dt float32)
}

// PullIntegrator pulls particles linearly toward their target with
// exponential velocity drag:
//
//	v' = v·exp(-Drag·dt) + Attraction·dt·(target - p)
//	p' = p + v'·dt
//
// With Attraction = 0 and Drag = 0 it is exactly time-reversible.
type PullIntegrator struct {
	Attraction float32
	Drag       float32
}

func (in PullIntegrator) Integrate(pos, vel, target, nextPos, nextVel []float32, dt float32) {
	damp := float32(math.Exp(-float64(in.Drag * dt)))
	k := in.Attraction * dt

	nv := vector(nextVel)
	blas32.Copy(vector(vel), nv)
	blas32.Scal(damp, nv)
	blas32.Axpy(k, vector(target), nv)
	blas32.Axpy(-k, vector(pos), nv)

	np := vector(nextPos)
	blas32.Copy(vector(pos), np)
	blas32.Axpy(dt, nv, np)
}

// SpringIntegrator drives each coordinate with a damped harmonic spring
// anchored at the target.
type SpringIntegrator struct {
	Frequency float64
	Damping   float64
}

func (in SpringIntegrator) Integrate(pos, vel, target, nextPos, nextVel []float32, dt float32) {
	spring := harmonica.NewSpring(float64(dt), in.Frequency, in.Damping)
	for i := range pos {
		_, v := spring.Update(float64(pos[i]), float64(vel[i]), float64(target[i]))
		nextVel[i] = float32(v)
		nextPos[i] = pos[i] + nextVel[i]*dt
	}
}

// NewIntegrator builds the integrator selected by configuration.
func NewIntegrator(cfg *config.Config) (Integrator, error) {
	sim := cfg.Simulation
	switch sim.Integrator {
	case config.IntegratorPull, "":
		return PullIntegrator{Attraction: float32(sim.Attraction), Drag: float32(sim.Drag)}, nil
	case config.IntegratorSpring:
		return SpringIntegrator{Frequency: sim.SpringFrequency, Damping: sim.SpringDamping}, nil
	default:
		return nil, fmt.Errorf("unknown integrator %q", sim.Integrator)
	}
}
