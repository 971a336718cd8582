// Package renderer draws the particle scene with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/camera"
	"github.com/pthm-cable/morph/components"
	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/scene"
)

// ParticleRenderer renders particles as ink dots and links as faint lines.
type ParticleRenderer struct {
	ink       rl.Color
	pointSize float32
}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer(ink config.RGB, pointSize float32) *ParticleRenderer {
	return &ParticleRenderer{
		ink:       rl.Color{R: ink.R, G: ink.G, B: ink.B, A: 255},
		pointSize: pointSize,
	}
}

// Draw renders every visible particle, tinted by its alpha.
func (r *ParticleRenderer) Draw(s *scene.Scene, cam *camera.Camera) {
	// Dot radius grows with zoom but never vanishes.
	radius := r.pointSize * max(cam.Zoom, 1) / 2
	cull := radius / cam.PixelsPerUnit()

	s.EachParticle(func(pos components.Position, alpha float32) {
		if alpha <= 0 || !cam.IsVisible(pos.X, pos.Y, cull) {
			return
		}
		sx, sy := cam.WorldToScreen(pos.X, pos.Y)
		color := r.ink
		color.A = uint8(alpha * 255)
		if radius <= 1 {
			rl.DrawPixelV(rl.Vector2{X: sx, Y: sy}, color)
			return
		}
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, radius, color)
	})
}

// DrawLinks renders the scene's link segments.
func (r *ParticleRenderer) DrawLinks(s *scene.Scene, cam *camera.Camera) {
	s.EachLink(func(a, b components.Position, opacity float32) {
		if opacity <= 0 {
			return
		}
		ax, ay := cam.WorldToScreen(a.X, a.Y)
		bx, by := cam.WorldToScreen(b.X, b.Y)
		color := r.ink
		color.A = uint8(min(opacity, 1) * 255)
		rl.DrawLineV(rl.Vector2{X: ax, Y: ay}, rl.Vector2{X: bx, Y: by}, color)
	})
}

// DrawSelection circles the particle at pos.
func (r *ParticleRenderer) DrawSelection(pos components.Position, cam *camera.Camera) {
	sx, sy := cam.WorldToScreen(pos.X, pos.Y)
	rl.DrawCircleLines(int32(sx), int32(sy), 8, rl.Red)
}
