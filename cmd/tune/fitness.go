package main

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/density"
	"github.com/pthm-cable/morph/systems"
	"github.com/pthm-cable/morph/telemetry"
)

// unsettledPenalty multiplies the step cap for a morph that never settles.
const unsettledPenalty = 2

// seedSources are the curated point sets for one seed. Sampling is done once
// per seed; every evaluation reseeds buffers from the same sets.
type seedSources struct {
	seed int64
	sets [2]systems.PointSet
}

// FitnessEvaluator runs headless morph sequences and scores settle time.
type FitnessEvaluator struct {
	params     *ParamVector
	maxSteps   int64
	morphs     int
	baseConfig *config.Config
	sources    []seedSources

	mu          sync.Mutex
	lastSettled float64 // fraction of morphs settled in the most recent Evaluate call
}

// NewFitnessEvaluator samples both grids once per seed.
func NewFitnessEvaluator(params *ParamVector, maxSteps int64, morphs int, seeds []int64, baseCfg *config.Config, a, b *density.Grid) (*FitnessEvaluator, error) {
	fe := &FitnessEvaluator{
		params:     params,
		maxSteps:   maxSteps,
		morphs:     morphs,
		baseConfig: baseCfg,
	}
	for _, seed := range seeds {
		st, err := systems.Setup(baseCfg, a, b, rand.New(rand.NewSource(seed)))
		if err != nil {
			return nil, fmt.Errorf("seed %d: %w", seed, err)
		}
		fe.sources = append(fe.sources, seedSources{seed: seed, sets: st.Sources})
	}
	return fe, nil
}

// LastSettled returns the settled fraction from the most recent evaluation.
func (fe *FitnessEvaluator) LastSettled() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSettled
}

// runResult holds the outcome of one morph sequence.
type runResult struct {
	settleSteps []int64 // per morph; unsettled morphs are penalized
	settled     int
	err         error
}

// Evaluate computes fitness for a parameter vector (lower = better): the mean
// number of steps a morph needs to settle, across all seeds and morphs.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	results := make([]runResult, len(fe.sources))
	var wg sync.WaitGroup
	for i, src := range fe.sources {
		wg.Add(1)
		go func(idx int, src seedSources) {
			defer wg.Done()
			results[idx] = fe.runSequence(cfg, src)
		}(i, src)
	}
	wg.Wait()

	var total float64
	var count, settled int
	for _, r := range results {
		if r.err != nil {
			// Diverged: worse than never settling.
			total += float64(fe.morphs * unsettledPenalty * 2 * int(fe.maxSteps))
			count += fe.morphs
			continue
		}
		for _, s := range r.settleSteps {
			total += float64(s)
		}
		count += len(r.settleSteps)
		settled += r.settled
	}

	fe.mu.Lock()
	fe.lastSettled = float64(settled) / float64(max(count, 1))
	fe.mu.Unlock()

	return total / float64(max(count, 1))
}

// runSequence seeds particles on target A and then alternates targets,
// switching as soon as each morph settles or the step cap is hit.
func (fe *FitnessEvaluator) runSequence(cfg *config.Config, src seedSources) runResult {
	rng := rand.New(rand.NewSource(src.seed))

	targets, err := systems.BuildTargets(src.sets[0], src.sets[1])
	if err != nil {
		return runResult{err: err}
	}
	buffers, err := systems.SeedBuffers(targets.Get(systems.MorphA), float32(cfg.Particles.VelocityJitter), rng)
	if err != nil {
		return runResult{err: err}
	}
	state := &systems.State{Buffers: buffers, Targets: targets, Active: systems.MorphA}

	stepper, err := systems.NewStepperFromConfig(cfg)
	if err != nil {
		return runResult{err: err}
	}
	defer stepper.Close()

	driver := &systems.Driver{
		State:   state,
		Stepper: stepper,
		Switch:  systems.NewMorphSwitch(systems.MorphA),
		DT:      cfg.Derived.DT32,
	}
	tracker := telemetry.NewSettleTracker(cfg.Telemetry.SettleThreshold, 0)
	scratch := make([]float32, 3*buffers.Len())

	var result runResult
	for m := 0; m < fe.morphs; m++ {
		driver.Switch.Trigger()
		start := state.Steps
		settled := false

		for state.Steps-start < fe.maxSteps {
			switched, err := driver.Advance()
			if err != nil {
				return runResult{err: err}
			}

			msd := systems.MeanSquaredDistance(buffers.Positions(), targets.Get(state.Active).Positions, scratch)
			if switched {
				tracker.Start(state.Active.String(), state.Steps, state.Clock, msd)
				continue
			}
			tracker.Observe(state.Steps, state.Clock, msd)
			if tracker.Settled() {
				settled = true
				break
			}
		}

		if settled {
			result.settled++
			result.settleSteps = append(result.settleSteps, state.Steps-start)
		} else {
			result.settleSteps = append(result.settleSteps, unsettledPenalty*fe.maxSteps)
		}
	}
	return result
}

// copyConfig creates a copy of the base config for one evaluation.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
