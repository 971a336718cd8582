// Package main is an interactive preview of density-biased sampling for one
// image: sliders adjust spacing, bias and threshold and the curated point set
// is redrawn next to the density grid.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/morph/assets"
	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/density"
	"github.com/pthm-cable/morph/systems"
)

const (
	windowWidth  = 1400
	windowHeight = 760
	previewSize  = 512
	panelX       = 2*previewSize + 40
	panelWidth   = windowWidth - panelX - 10
)

// previewParams are the slider-controlled values.
type previewParams struct {
	MinSpacing float32
	MaxSpacing float32
	Bias       float32
	Threshold  float32
	Side       float32 // particle count = Side²
	Seed       float32
}

func paramsFromConfig(cfg *config.Config) previewParams {
	return previewParams{
		MinSpacing: float32(cfg.Sampling.MinSpacing),
		MaxSpacing: float32(cfg.Sampling.MaxSpacing),
		Bias:       float32(cfg.Sampling.Bias),
		Threshold:  float32(cfg.Sampling.DensityThreshold),
		Side:       float32(cfg.Derived.Side),
		Seed:       1,
	}
}

// result is the outcome of one sampling pass.
type result struct {
	raw    int
	points systems.PointSet
	err    error
}

func sample(grid *density.Grid, cfg *config.Config, p previewParams) result {
	params := systems.SamplerParams{
		MinSpacing: float64(p.MinSpacing),
		MaxSpacing: float64(max(p.MaxSpacing, p.MinSpacing)),
		MaxTries:   cfg.Sampling.MaxTries,
		Bias:       float64(p.Bias),
	}
	rng := rand.New(rand.NewSource(int64(p.Seed)))

	raw, err := systems.Sample(grid, params, rng)
	if err != nil {
		return result{err: err}
	}
	side := int(p.Side)
	ps, err := systems.Curate(raw, grid, float64(p.Threshold), side*side, rng)
	return result{raw: len(raw), points: ps, err: err}
}

func main() {
	configPath := flag.String("config", "", "Config file (empty = use defaults)")
	imagePath := flag.String("image", "", "Image to sample")
	flag.Parse()

	if *imagePath == "" {
		log.Fatal("--image is required")
	}
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	model, err := density.ModelByName(cfg.Sampling.DensityModel)
	if err != nil {
		log.Fatal(err)
	}
	grid, err := assets.LoadGrid(*imagePath, cfg.Sampling.GridResolution, model)
	if err != nil {
		log.Fatal(err)
	}

	rl.InitWindow(windowWidth, windowHeight, "Sample Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	img := rl.GenImageColor(grid.Size, grid.Size, rl.White)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)
	updateTexture(texture, grid)

	params := paramsFromConfig(cfg)
	current := sample(grid, cfg, params)
	needsResample := false
	status := ""

	for !rl.WindowShouldClose() {
		// Resample after the mouse is released so dragging stays responsive.
		if needsResample && !rl.IsMouseButtonDown(rl.MouseButtonLeft) {
			current = sample(grid, cfg, params)
			needsResample = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 0xEE, G: 0xED, B: 0xF0, A: 255})

		// Density grid on the left
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(grid.Size), Height: float32(grid.Size)},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Curated points on the right
		ox := float32(previewSize + 30)
		rl.DrawRectangleLines(int32(ox), 10, previewSize, previewSize, rl.DarkGray)
		for _, pt := range current.points {
			c := rl.Color{A: uint8(pt.Alpha * 255)}
			rl.DrawPixelV(rl.Vector2{X: ox + float32(pt.X)*previewSize, Y: 10 + float32(pt.Y)*previewSize}, c)
		}

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Grid: %dx%d  mean density: %.3f", grid.Size, grid.Size, grid.Mean()), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Raw samples: %d  curated: %d / %d", current.raw, len(current.points), int(params.Side)*int(params.Side)), 15, statsY+20, 16, rl.DarkGray)
		var short *systems.InsufficientSamplesWarning
		switch {
		case errors.As(current.err, &short):
			rl.DrawText(fmt.Sprintf("Short by %d points", short.Want-short.Got), 15, statsY+40, 16, rl.Orange)
		case current.err != nil:
			rl.DrawText(current.err.Error(), 15, statsY+40, 16, rl.Red)
		}
		if needsResample {
			rl.DrawText("resampling...", 15, statsY+60, 16, rl.Gray)
		}

		y := float32(10)
		rl.DrawText("Sampling Parameters", panelX, int32(y), 20, rl.DarkGray)
		y += 35

		changed := false
		y = slider(y, "Min spacing", "%.4f", &params.MinSpacing, 0.001, 0.02, &changed)
		y = slider(y, "Max spacing", "%.4f", &params.MaxSpacing, 0.001, 0.05, &changed)
		y = slider(y, "Bias (spacing exponent offset)", "%.2f", &params.Bias, 0, 4, &changed)
		y = slider(y, "Density threshold", "%.2f", &params.Threshold, 0, 1, &changed)
		y = slider(y, "Particle side (count = side²)", "%.0f", &params.Side, 8, 256, &changed)
		y = slider(y, "Seed", "%.0f", &params.Seed, 1, 9999, &changed)
		params.Side = float32(int(params.Side))
		params.Seed = float32(int(params.Seed))
		if changed {
			needsResample = true
		}

		y += 10
		if gui.Button(rl.Rectangle{X: panelX, Y: y, Width: 120, Height: 30}, "Reset") {
			params = paramsFromConfig(cfg)
			needsResample = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: y, Width: 120, Height: 30}, "Save CSV") {
			status = savePoints("points.csv", current.points)
		}
		y += 45

		rl.DrawText("YAML Config:", panelX, int32(y), 16, rl.DarkGray)
		y += 25
		snippet := yamlSnippet(params)
		rl.DrawText(snippet, panelX, int32(y), 14, rl.Gray)

		rl.DrawText("Press C to copy YAML to clipboard", panelX, windowHeight-30, 12, rl.Gray)
		if status != "" {
			rl.DrawText(status, panelX, windowHeight-50, 12, rl.DarkGray)
		}
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(snippet)
			status = "YAML copied"
		}

		rl.EndDrawing()
	}
}

// slider draws a labelled slider bar and returns the Y below it.
func slider(y float32, label, format string, value *float32, lo, hi float32, changed *bool) float32 {
	rl.DrawText(label, panelX, int32(y), 14, rl.Gray)
	y += 18
	next := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: y, Width: panelWidth - 80, Height: 20},
		"", "",
		*value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, *value), int32(panelX+panelWidth-70), int32(y+2), 16, rl.DarkGray)
	if next != *value {
		*value = next
		*changed = true
	}
	return y + 35
}

func yamlSnippet(p previewParams) string {
	return fmt.Sprintf(`sampling:
  min_spacing: %.4f
  max_spacing: %.4f
  bias: %.2f
  density_threshold: %.2f
particles:
  count: %d`,
		p.MinSpacing, max(p.MaxSpacing, p.MinSpacing), p.Bias, p.Threshold, int(p.Side)*int(p.Side))
}

func savePoints(path string, ps systems.PointSet) string {
	f, err := os.Create(path)
	if err != nil {
		return err.Error()
	}
	defer f.Close()

	points := []systems.SamplePoint(ps)
	if err := gocsv.MarshalFile(&points, f); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("saved %d points to %s", len(points), path)
}

// updateTexture uploads the density grid as grayscale, dark = dense.
func updateTexture(texture rl.Texture2D, grid *density.Grid) {
	pixels := make([]color.RGBA, len(grid.Values))
	for i, v := range grid.Values {
		g := uint8(v * 255)
		pixels[i] = color.RGBA{R: g, G: g, B: g, A: 255}
	}
	rl.UpdateTexture(texture, pixels)
}
