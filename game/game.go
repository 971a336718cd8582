// Package game ties the morph simulation, telemetry and viewer together
// into a runnable frame loop.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/morph/assets"
	"github.com/pthm-cable/morph/camera"
	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/density"
	"github.com/pthm-cable/morph/renderer"
	"github.com/pthm-cable/morph/scene"
	"github.com/pthm-cable/morph/systems"
	"github.com/pthm-cable/morph/telemetry"
	"github.com/pthm-cable/morph/ui"
)

// Steps-per-frame bounds for the viewer.
const (
	MinStepsPerFrame = 1
	MaxStepsPerFrame = 10
)

// Options configures a game run beyond the config file.
type Options struct {
	Seed           int64
	ImageA         string
	ImageB         string
	Headless       bool
	OutputDir      string
	LogStats       bool
	StatsWindowSec float64
	SwitchEvery    int  // Trigger a switch every N steps (0 = never)
	StepsPerFrame  int  // Simulation steps per Update call
	ExportPoints   bool // Write the curated point sets to the output dir
}

// Game holds the complete game state.
type Game struct {
	cfg *config.Config
	rng *rand.Rand

	state  *systems.State
	driver *systems.Driver
	frame  systems.Frame

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	settle        *telemetry.SettleTracker
	outputManager *telemetry.OutputManager
	logStats      bool
	msdScratch    []float32
	speeds        []float64
	lastMSD       float64

	// Loop state
	paused        bool
	stepsPerFrame int
	switchEvery   int64
	err           error

	// Viewer (nil when headless)
	scene      *scene.Scene
	camera     *camera.Camera
	background *renderer.BackgroundRenderer
	particles  *renderer.ParticleRenderer
	hud        *ui.HUD
	perfPanel  *ui.PerfPanel
	inspector  *ui.Inspector
	controls   *ui.ControlsPanel
	overlays   *ui.OverlayRegistry
	selected   int

	screenWidth, screenHeight float32
}

// NewGame loads both images, seeds the simulation and, unless headless,
// prepares the viewer. The raylib window must already be open in that case.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	if opts.ImageA == "" || opts.ImageB == "" {
		return nil, errors.New("game: both images are required")
	}

	model, err := density.ModelByName(cfg.Sampling.DensityModel)
	if err != nil {
		return nil, err
	}
	gridA, err := assets.LoadGrid(opts.ImageA, cfg.Sampling.GridResolution, model)
	if err != nil {
		return nil, fmt.Errorf("image A: %w", err)
	}
	gridB, err := assets.LoadGrid(opts.ImageB, cfg.Sampling.GridResolution, model)
	if err != nil {
		return nil, fmt.Errorf("image B: %w", err)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	state, err := systems.Setup(cfg, gridA, gridB, rng)
	if err != nil {
		return nil, err
	}

	stepper, err := systems.NewStepperFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	g := &Game{
		cfg:   cfg,
		rng:   rng,
		state: state,
		driver: &systems.Driver{
			State:   state,
			Stepper: stepper,
			Switch:  systems.NewMorphSwitch(state.Active),
			DT:      cfg.Derived.DT32,
		},
		collector:     telemetry.NewCollector(statsWindow, cfg.Derived.DT32),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:      opts.LogStats,
		msdScratch:    make([]float32, 3*state.Buffers.Len()),
		stepsPerFrame: max(opts.StepsPerFrame, MinStepsPerFrame),
		switchEvery:   int64(opts.SwitchEvery),
		selected:      -1,
	}
	// A morph that has not settled within four stats windows is reported.
	g.settle = telemetry.NewSettleTracker(cfg.Telemetry.SettleThreshold, 4*g.collector.WindowDurationSteps())

	g.outputManager, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		stepper.Close()
		return nil, err
	}
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}
	if opts.ExportPoints {
		g.exportPoints()
	}

	g.lastMSD = g.distanceToActive()
	g.recordMorphEvents(g.settle.Start(state.Active.String(), 0, 0, g.lastMSD))

	if !opts.Headless {
		g.initViewer()
	}

	slog.Info("game ready",
		"particles", state.Buffers.Len(),
		"image_a", opts.ImageA,
		"image_b", opts.ImageB,
		"headless", opts.Headless,
	)
	return g, nil
}

// initViewer creates the scene mirror, camera and renderers.
func (g *Game) initViewer() {
	cfg := g.cfg
	g.screenWidth = cfg.Derived.ScreenW32
	g.screenHeight = cfg.Derived.ScreenH32

	g.scene = scene.New(g.rng)
	g.state.Snapshot(&g.frame)
	g.scene.Sync(&g.frame)

	g.camera = camera.New(g.screenWidth, g.screenHeight)
	g.background = renderer.NewBackgroundRenderer(cfg.Derived.Background)
	g.particles = renderer.NewParticleRenderer(cfg.Derived.Ink, float32(cfg.Render.PointSize))

	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(10, 110, 260)
	g.inspector = ui.NewInspector(int32(g.screenWidth)-250, 10, 240)
	g.controls = g.controlsAt(int32(g.screenWidth))
	g.overlays = ui.NewOverlayRegistry(cfg.Render.LinkCount > 0 && cfg.Render.LinkOpacity > 0)
}

// controlsAt places the overlay panel left of the inspector.
func (g *Game) controlsAt(screenWidth int32) *ui.ControlsPanel {
	return ui.NewControlsPanel(screenWidth-450, 10, 190)
}

// Trigger requests a switch of the active target. Safe to call from any goroutine.
func (g *Game) Trigger() {
	g.driver.Switch.Trigger()
}

// Steps returns the number of completed simulation steps.
func (g *Game) Steps() int64 {
	return g.state.Steps
}

// Err returns the error that stopped the simulation, if any.
func (g *Game) Err() error {
	return g.err
}

// SettleHistory returns the steps each completed morph took to settle.
func (g *Game) SettleHistory() []int64 {
	return g.settle.History()
}

// Unload releases resources and flushes output files.
func (g *Game) Unload() {
	g.driver.Stepper.Close()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
