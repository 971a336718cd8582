package ui

import (
	"fmt"
	"sort"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title         string
	Particles     int
	Links         int
	Step          int64
	Clock         float64
	Active        string
	Pending       bool
	StepsPerFrame int
	FPS           int32
	Paused        bool
	MSD           float64
	Settled       bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	x, y := int32(10), int32(10)
	r.DrawPanel(x-4, y-4, 330, 86)

	rl.DrawText(data.Title, x, y, 20, rl.White)
	y += 25

	rl.DrawText(
		fmt.Sprintf("Particles: %d | Links: %d | Target: %s", data.Particles, data.Links, data.Active),
		x, y, 14, r.Theme.LabelColor,
	)
	y += 18

	rl.DrawText(
		fmt.Sprintf("Step: %d | t=%.1fs | Speed: %dx | FPS: %d", data.Step, data.Clock, data.StepsPerFrame, data.FPS),
		x, y, 14, r.Theme.LabelColor,
	)
	y += 18

	status, color := "Morphing", r.Theme.SectionHeader
	switch {
	case data.Paused:
		status, color = "PAUSED", rl.Orange
	case data.Pending:
		status = "Switch pending"
	case data.Settled:
		status, color = "Settled", r.Theme.BarFillPositive
	}
	rl.DrawText(fmt.Sprintf("%s | MSD %.2e", status, data.MSD), x, y, 14, color)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase frame timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel, slowest phase first.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	padding := r.Theme.Padding

	names := make([]string, 0, len(stats.PhaseAvg))
	for name := range stats.PhaseAvg {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return stats.PhaseAvg[names[i]] > stats.PhaseAvg[names[j]]
	})

	height := int32(len(names)+2)*14 + padding*2 + 6
	r.DrawPanel(p.x, p.y, p.width, height)

	x, y := p.x+padding, p.y+padding
	rl.DrawText("Frame Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(
		fmt.Sprintf("Step: %s | %.0f steps/s", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond),
		x, y, 12, r.Theme.SectionHeader,
	)
	y += 16

	for _, name := range names {
		pct := stats.PhasePct[name]
		color := r.Theme.LabelColor
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", name, stats.PhaseAvg[name].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
