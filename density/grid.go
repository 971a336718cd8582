/*
Package density maps the pixels of a decoded image onto a square grid of
density values in [0, 1]. A value of 1 is fully lit (background), 0 is fully
dark (subject). The grid is what biases point sampling: darker cells receive
more points.

Conversion from color to density is pluggable through Model. Downsampling is
nearest-neighbour, so every cell takes the value of exactly one source pixel.
*/
package density

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// Grid is an immutable Size×Size grid of density values.
type Grid struct {
	// Size is the number of rows and columns.
	Size int
	// Values holds the densities in row-major order. The value at
	// (row, col) is Values[row*Size+col].
	Values []float32
}

// NewGrid returns a grid wrapping values. It panics if len(values) != size*size.
func NewGrid(size int, values []float32) *Grid {
	if size < 1 || len(values) != size*size {
		panic(fmt.Sprintf("density: %d values for a %dx%d grid", len(values), size, size))
	}
	return &Grid{Size: size, Values: values}
}

// Uniform returns a size×size grid where every cell holds v.
func Uniform(size int, v float32) *Grid {
	values := make([]float32, size*size)
	for i := range values {
		values[i] = v
	}
	return NewGrid(size, values)
}

// At returns the density at (row, col). Out-of-range indices panic;
// callers working in unit-square coordinates should use AtPoint.
func (g *Grid) At(row, col int) float32 {
	if row < 0 || row >= g.Size || col < 0 || col >= g.Size {
		panic(fmt.Sprintf("density: At(%d, %d) outside %dx%d grid", row, col, g.Size, g.Size))
	}
	return g.Values[row*g.Size+col]
}

// Cell returns the (row, col) of the cell containing the unit-square point
// (x, y), clamped to the grid.
func (g *Grid) Cell(x, y float64) (row, col int) {
	col = clampIndex(int(x*float64(g.Size)), g.Size)
	row = clampIndex(int(y*float64(g.Size)), g.Size)
	return row, col
}

// AtPoint returns the density of the cell containing the unit-square point (x, y).
func (g *Grid) AtPoint(x, y float64) float32 {
	row, col := g.Cell(x, y)
	return g.Values[row*g.Size+col]
}

// Mean returns the average density of the grid.
func (g *Grid) Mean() float64 {
	var sum float64
	for _, v := range g.Values {
		sum += float64(v)
	}
	return sum / float64(len(g.Values))
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// FromImage downsamples img to a size×size grid with nearest-neighbour
// sampling and converts every cell with m.
func FromImage(img image.Image, size int, m Model) (*Grid, error) {
	if img == nil {
		return nil, &InvalidImageError{Reason: "nil image"}
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, &InvalidImageError{Width: b.Dx(), Height: b.Dy(), Reason: "zero dimension"}
	}
	if size < 1 {
		return nil, &InvalidImageError{Width: b.Dx(), Height: b.Dy(), Reason: fmt.Sprintf("grid size %d", size)}
	}
	if m == nil {
		m = Red
	}

	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)

	values := make([]float32, size*size)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			values[row*size+col] = clamp01(m.Convert(dst.NRGBAAt(col, row)))
		}
	}
	return NewGrid(size, values), nil
}

// Build converts a decoded pixel buffer into a size×size grid. channels must be
// 1 (8-bit gray) or 4 (8-bit non-premultiplied RGBA); pixels are row-major with
// no padding.
func Build(pixels []uint8, width, height, channels, size int, m Model) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, &InvalidImageError{Width: width, Height: height, Reason: "zero dimension"}
	}
	if len(pixels) != width*height*channels {
		return nil, &InvalidImageError{
			Width:  width,
			Height: height,
			Reason: fmt.Sprintf("buffer holds %d bytes, want %d", len(pixels), width*height*channels),
		}
	}

	rect := image.Rect(0, 0, width, height)
	var img image.Image
	switch channels {
	case 1:
		img = &image.Gray{Pix: pixels, Stride: width, Rect: rect}
	case 4:
		img = &image.NRGBA{Pix: pixels, Stride: 4 * width, Rect: rect}
	default:
		return nil, &InvalidImageError{Width: width, Height: height, Reason: fmt.Sprintf("%d channels", channels)}
	}
	return FromImage(img, size, m)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
