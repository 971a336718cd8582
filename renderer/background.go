package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/camera"
	"github.com/pthm-cable/morph/config"
)

// BackgroundRenderer clears the screen and outlines the particle square.
type BackgroundRenderer struct {
	color  rl.Color
	border rl.Color
}

// NewBackgroundRenderer creates a background in the given color.
func NewBackgroundRenderer(c config.RGB) *BackgroundRenderer {
	return &BackgroundRenderer{
		color:  rl.Color{R: c.R, G: c.G, B: c.B, A: 255},
		border: rl.Color{R: c.R / 10 * 9, G: c.G / 10 * 9, B: c.B / 10 * 9, A: 255},
	}
}

// Draw clears the frame and, when outline is set, traces the particle square.
func (b *BackgroundRenderer) Draw(cam *camera.Camera, outline bool) {
	rl.ClearBackground(b.color)

	if !outline {
		return
	}
	x0, y0 := cam.WorldToScreen(-1, 1)
	x1, y1 := cam.WorldToScreen(1, -1)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, 1, b.border)
}
