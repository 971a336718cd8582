// Package camera provides a 2D camera system for viewport control.
package camera

// Camera controls the viewport into particle space, the square [-1, 1]²
// with y pointing up. At zoom 1 the whole square fits the shorter screen side.
type Camera struct {
	// Position is the camera center in particle space
	X, Y float32

	// Zoom level (1.0 = fit, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Zoom constraints
	MinZoom, MaxZoom float32

	// pixels per particle-space unit at zoom 1
	scale float32
}

// New creates a camera centered on the origin with the square fitted to the viewport.
func New(viewportW, viewportH float32) *Camera {
	c := &Camera{
		Zoom:    1.0,
		MinZoom: 0.5,
		MaxZoom: 8.0,
	}
	c.Resize(viewportW, viewportH)
	return c
}

// PixelsPerUnit returns the current screen pixels per particle-space unit.
func (c *Camera) PixelsPerUnit() float32 {
	return c.scale * c.Zoom
}

// WorldToScreen converts particle-space coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	k := c.PixelsPerUnit()
	sx = c.ViewportW/2 + (wx-c.X)*k
	sy = c.ViewportH/2 - (wy-c.Y)*k
	return sx, sy
}

// ScreenToWorld converts screen coordinates to particle-space coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	k := c.PixelsPerUnit()
	wx = c.X + (sx-c.ViewportW/2)/k
	wy = c.Y - (sy-c.ViewportH/2)/k
	return wx, wy
}

// IsVisible returns true if a circle at (wx, wy) with the given particle-space
// radius could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return wx+radius >= minX && wx-radius <= maxX &&
		wy+radius >= minY && wy-radius <= maxY
}

// Resize updates viewport dimensions and the fit scale.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.scale = min(viewportW, viewportH) / 2
}

// Pan moves the camera by the given delta in screen pixels. The center stays
// inside the particle square.
func (c *Camera) Pan(dx, dy float32) {
	k := c.PixelsPerUnit()
	c.X = clamp(c.X+dx/k, -1, 1)
	c.Y = clamp(c.Y-dy/k, -1, 1)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor while keeping the point under (sx, sy) fixed on screen.
func (c *Camera) ZoomAt(sx, sy, factor float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.ZoomBy(factor)
	nx, ny := c.ScreenToWorld(sx, sy)
	c.X = clamp(c.X+wx-nx, -1, 1)
	c.Y = clamp(c.Y+wy-ny, -1, 1)
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = 0
	c.Y = 0
	c.Zoom = 1.0
}

// VisibleWorldBounds returns the particle-space bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	k := c.PixelsPerUnit()
	halfW := c.ViewportW / (2 * k)
	halfH := c.ViewportH / (2 * k)

	minX = c.X - halfW
	maxX = c.X + halfW
	minY = c.Y - halfH
	maxY = c.Y + halfH
	return
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
