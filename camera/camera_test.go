package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNew(t *testing.T) {
	cam := New(1280, 720)

	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("expected camera at origin, got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
	// Square fits the shorter side
	if cam.PixelsPerUnit() != 360 {
		t.Errorf("expected 360 px per unit, got %f", cam.PixelsPerUnit())
	}
}

func TestWorldToScreenCorners(t *testing.T) {
	cam := New(1000, 1000)

	tests := []struct {
		wx, wy, sx, sy float32
	}{
		{0, 0, 500, 500},
		{-1, 1, 0, 0},      // top-left
		{1, -1, 1000, 1000}, // bottom-right
		{0.5, 0.5, 750, 250},
	}
	for _, tt := range tests {
		sx, sy := cam.WorldToScreen(tt.wx, tt.wy)
		if !near(sx, tt.sx) || !near(sy, tt.sy) {
			t.Errorf("WorldToScreen(%v, %v) = (%v, %v), want (%v, %v)", tt.wx, tt.wy, sx, sy, tt.sx, tt.sy)
		}
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720)
	cam.SetZoom(2.5)
	cam.Pan(40, -25)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanStaysInSquare(t *testing.T) {
	cam := New(1000, 1000)

	cam.Pan(-100000, 100000)
	if cam.X != -1 || cam.Y != -1 {
		t.Errorf("expected center clamped to (-1, -1), got (%f, %f)", cam.X, cam.Y)
	}

	// Dragging right moves the view right, screen-down moves it down.
	cam.Reset()
	cam.Pan(50, 50)
	if cam.X <= 0 || cam.Y >= 0 {
		t.Errorf("unexpected pan direction: (%f, %f)", cam.X, cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720)

	cam.SetZoom(0.1)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}

	cam.SetZoom(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MaxZoom, cam.Zoom)
	}
}

func TestZoomAtKeepsCursorFixed(t *testing.T) {
	cam := New(1000, 1000)
	wx, wy := cam.ScreenToWorld(700, 300)

	cam.ZoomAt(700, 300, 2)
	sx, sy := cam.WorldToScreen(wx, wy)
	if !near(sx, 700) || !near(sy, 300) {
		t.Errorf("point under cursor moved to (%f, %f)", sx, sy)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1000, 1000)
	cam.SetZoom(4)

	if !cam.IsVisible(0, 0, 0.01) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(0.9, 0.9, 0.01) {
		t.Error("corner should be culled at 4x zoom")
	}
	if !cam.IsVisible(0.26, 0, 0.02) {
		t.Error("circle overlapping the view edge should be visible")
	}
}

func TestResize(t *testing.T) {
	cam := New(1000, 1000)
	cam.Resize(800, 400)
	if cam.PixelsPerUnit() != 200 {
		t.Errorf("expected 200 px per unit after resize, got %f", cam.PixelsPerUnit())
	}
	sx, sy := cam.WorldToScreen(0, 0)
	if !near(sx, 400) || !near(sy, 200) {
		t.Errorf("origin maps to (%f, %f), want viewport center", sx, sy)
	}
}

func TestReset(t *testing.T) {
	cam := New(1000, 1000)
	cam.Pan(100, 100)
	cam.SetZoom(3)

	cam.Reset()
	if cam.X != 0 || cam.Y != 0 || cam.Zoom != 1 {
		t.Errorf("reset left camera at (%f, %f) zoom %f", cam.X, cam.Y, cam.Zoom)
	}
}
