package game

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pthm-cable/morph/systems"
	"github.com/pthm-cable/morph/telemetry"
	"github.com/pthm-cable/morph/ui"
)

// Update runs one viewer frame: input, simulation steps and scene sync.
func (g *Game) Update() {
	g.handleInput()
	g.perfCollector.RecordFrame()

	g.perfCollector.StartTick()
	if !g.paused && g.err == nil {
		for i := 0; i < g.stepsPerFrame; i++ {
			if !g.step() {
				break
			}
		}
	}

	g.perfCollector.StartPhase(telemetry.PhaseSnapshot)
	g.state.Snapshot(&g.frame)

	g.perfCollector.StartPhase(telemetry.PhaseSceneSync)
	g.scene.Sync(&g.frame)
	if g.overlays.IsEnabled(ui.OverlayLinks) {
		g.scene.Relink(g.cfg.Render.LinkCount, float32(g.cfg.Render.LinkOpacity))
	} else {
		g.scene.Relink(0, 0)
	}
	g.perfCollector.EndTick()
}

// UpdateHeadless runs one batch of steps without touching the viewer.
// It returns false once the simulation has stopped on an error.
func (g *Game) UpdateHeadless() bool {
	for i := 0; i < g.stepsPerFrame && g.err == nil; i++ {
		g.perfCollector.StartTick()
		g.step()
		g.perfCollector.EndTick()
	}
	return g.err == nil
}

// RunHeadless steps until ctx is done, maxSteps is reached (0 = unlimited)
// or the simulation fails.
func (g *Game) RunHeadless(ctx context.Context, maxSteps int64) error {
	for {
		select {
		case <-ctx.Done():
			slog.Info("headless run cancelled", "steps", g.state.Steps)
			return nil
		default:
		}

		if !g.UpdateHeadless() {
			return g.err
		}
		if maxSteps > 0 && g.state.Steps >= maxSteps {
			slog.Info("max steps reached", "steps", g.state.Steps)
			return nil
		}
	}
}

// step advances the simulation once. It returns false when stepping failed.
func (g *Game) step() bool {
	g.perfCollector.StartPhase(telemetry.PhaseSwitch)
	if g.switchEvery > 0 && g.state.Steps > 0 && g.state.Steps%g.switchEvery == 0 {
		g.driver.Switch.Trigger()
	}

	g.perfCollector.StartPhase(telemetry.PhaseIntegrate)
	switched, err := g.driver.Advance()
	if err != nil {
		g.fail(err)
		return false
	}

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.observe(switched)
	return true
}

// fail stops the simulation. A corrupted state is never stepped again.
func (g *Game) fail(err error) {
	g.err = err
	var corrupt *systems.StateCorruptionError
	if errors.As(err, &corrupt) {
		slog.Error("simulation state corrupted", "step", corrupt.Step, "reason", corrupt.Reason)
		return
	}
	slog.Error("simulation step failed", "step", g.state.Steps, "error", err)
}

// observe feeds the settle tracker and stats collector after a step.
func (g *Game) observe(switched bool) {
	g.lastMSD = g.distanceToActive()

	var events []telemetry.MorphEvent
	if switched {
		g.collector.RecordSwitch()
		events = g.settle.Start(g.state.Active.String(), g.state.Steps, g.state.Clock, g.lastMSD)
	} else {
		events = g.settle.Observe(g.state.Steps, g.state.Clock, g.lastMSD)
	}
	g.recordMorphEvents(events)
	g.flushTelemetry()
}

// distanceToActive returns the mean squared distance from the particles to
// the active target.
func (g *Game) distanceToActive() float64 {
	target := g.state.Targets.Get(g.state.Active)
	return systems.MeanSquaredDistance(g.state.Buffers.Positions(), target.Positions, g.msdScratch)
}
