package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml or config.toml (empty = use defaults)")
	imageA := flag.String("image-a", "", "Image for morph target A")
	imageB := flag.String("image-b", "", "Image for morph target B")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	exportPoints := flag.Bool("export-points", false, "Write curated point sets to the output directory")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N steps (0 = unlimited)")
	switchEvery := flag.Int("switch-every", 0, "Switch target every N steps (0 = only on input)")
	stepsPerFrame := flag.Int("steps-per-frame", 1, "Simulation steps per update call")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *imageA == "" || *imageB == "" {
		slog.Error("both -image-a and -image-b are required")
		flag.Usage()
		os.Exit(2)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		ImageA:         *imageA,
		ImageB:         *imageB,
		Headless:       *headless,
		OutputDir:      *outputDir,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		SwitchEvery:    *switchEvery,
		StepsPerFrame:  *stepsPerFrame,
		ExportPoints:   *exportPoints,
	}

	if *headless {
		os.Exit(runHeadless(cfg, opts, *maxTicks))
	}
	os.Exit(runWindow(cfg, opts, *maxTicks))
}

func runHeadless(cfg *config.Config, opts game.Options, maxTicks int64) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("setup failed", "error", err)
		return 1
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_ticks", maxTicks,
		"switch_every", opts.SwitchEvery,
		"steps_per_frame", opts.StepsPerFrame,
	)

	if err := g.RunHeadless(ctx, maxTicks); err != nil {
		return 1
	}
	slog.Info("headless simulation finished", "steps", g.Steps(), "settle_history", g.SettleHistory())
	return 0
}

func runWindow(cfg *config.Config, opts game.Options, maxTicks int64) int {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Morph")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("setup failed", "error", err)
		return 1
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if maxTicks > 0 && g.Steps() >= maxTicks {
			break
		}
	}
	if g.Err() != nil {
		return 1
	}
	return 0
}
