package density

import (
	"fmt"
	"image/color"
	"strings"
)

// A Model converts any color to a density in [0, 1], where 1 is fully lit
// (background) and 0 is fully dark (subject).
type Model interface {
	Convert(c color.Color) float32
}

// ModelFunc returns a Model that invokes f to implement the conversion.
func ModelFunc(f func(color.Color) float32) Model {
	return &modelFunc{f}
}

type modelFunc struct {
	f func(color.Color) float32
}

func (m *modelFunc) Convert(c color.Color) float32 {
	return m.f(c)
}

// Default models. These all linearly map their respective channels to a
// density value.
var (
	Red     Model = ModelFunc(redDensity)
	Average Model = ModelFunc(avgDensity)
	Luma    Model = ModelFunc(lumaDensity)
)

const maxChannel = 0xFFFF

func redDensity(c color.Color) float32 {
	r, _, _, _ := c.RGBA()
	return float32(r) / maxChannel
}

func avgDensity(c color.Color) float32 {
	r, g, b, _ := c.RGBA()
	return float32(r+g+b) / (3 * maxChannel)
}

// lumaDensity uses the Rec. 601 weights.
func lumaDensity(c color.Color) float32 {
	r, g, b, _ := c.RGBA()
	return (0.299*float32(r) + 0.587*float32(g) + 0.114*float32(b)) / maxChannel
}

// ModelByName returns the built-in model with the given name
// ("red", "average" or "luma", case-insensitive).
func ModelByName(name string) (Model, error) {
	switch strings.ToLower(name) {
	case "red":
		return Red, nil
	case "average", "avg":
		return Average, nil
	case "luma":
		return Luma, nil
	}
	return nil, fmt.Errorf("density: unknown model %q", name)
}
