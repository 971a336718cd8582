package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/components"
	"github.com/pthm-cable/morph/ui"
)

const controlsLegend = "Click/T: switch | Space: pause | ,/.: speed | N: scatter | Right-click: inspect | Arrows/Wheel: camera | Home: reset"

// Draw renders the current frame.
func (g *Game) Draw() {
	rl.BeginDrawing()

	g.background.Draw(g.camera, g.overlays.IsEnabled(ui.OverlayBounds))

	if g.overlays.IsEnabled(ui.OverlayLinks) {
		g.particles.DrawLinks(g.scene, g.camera)
	}
	g.particles.Draw(g.scene, g.camera)

	if g.selected >= 0 && g.selected < g.frame.Len() {
		g.particles.DrawSelection(components.Position{
			X: g.frame.Positions[3*g.selected],
			Y: g.frame.Positions[3*g.selected+1],
		}, g.camera)
	}

	g.drawUI()

	rl.EndDrawing()
}

// drawUI renders the HUD and enabled panels.
func (g *Game) drawUI() {
	g.hud.Draw(ui.HUDData{
		Title:         "Morph",
		Particles:     g.scene.ParticleCount(),
		Links:         g.scene.LinkCount(),
		Step:          g.frame.Steps,
		Clock:         g.frame.Clock,
		Active:        g.frame.Active.String(),
		Pending:       g.driver.Switch.Pending() != 0,
		StepsPerFrame: g.stepsPerFrame,
		FPS:           rl.GetFPS(),
		Paused:        g.paused || g.err != nil,
		MSD:           g.lastMSD,
		Settled:       g.settle.Settled(),
	})

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.perfCollector.Stats())
	}
	if g.overlays.IsEnabled(ui.OverlayControls) {
		g.controls.Draw(g.overlays)
	}
	if g.overlays.IsEnabled(ui.OverlayInspector) && g.selected >= 0 && g.selected < g.frame.Len() {
		g.inspector.Draw(g.particleData(g.selected))
	}

	if g.err != nil {
		rl.DrawText("Simulation stopped: "+g.err.Error(), 10, int32(g.screenHeight)-50, 16, rl.Red)
	}
	g.hud.DrawControls(int32(g.screenHeight), controlsLegend)
}

// particleData gathers the inspector readout for particle i.
func (g *Game) particleData(i int) *ui.ParticleData {
	pos := g.frame.Positions
	vel := g.state.Buffers.Velocities()
	target := g.state.Targets.Get(g.frame.Active).Positions

	dx := target[3*i] - pos[3*i]
	dy := target[3*i+1] - pos[3*i+1]
	return &ui.ParticleData{
		Index:    i,
		X:        pos[3*i],
		Y:        pos[3*i+1],
		VX:       vel[3*i],
		VY:       vel[3*i+1],
		Alpha:    g.frame.Alpha[i],
		TargetX:  target[3*i],
		TargetY:  target[3*i+1],
		Distance: float32(math.Hypot(float64(dx), float64(dy))),
	}
}
