// Package systems implements the sampling pipeline and the particle
// simulation that morphs between two sampled point sets.
package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// PointGrid provides neighbour lookups for points in the unit square using a
// uniform cell grid. Cells hold indices into a caller-owned point slice.
type PointGrid struct {
	cellSize float64
	cols     int
	cells    [][]int32 // flat grid of index lists
}

// NewPointGrid creates a grid covering [0,1)×[0,1) with the given cell size.
func NewPointGrid(cellSize float64) *PointGrid {
	cols := int(math.Ceil(1/cellSize)) + 1
	return &PointGrid{
		cellSize: cellSize,
		cols:     cols,
		cells:    make([][]int32, cols*cols),
	}
}

// Clear removes all indices from the grid.
func (g *PointGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds point index idx at position p.
func (g *PointGrid) Insert(idx int32, p r2.Vec) {
	c := g.cellIndex(p.X, p.Y)
	g.cells[c] = append(g.cells[c], idx)
}

// AnyWithin reports whether any indexed point lies strictly closer than radius to p.
func (g *PointGrid) AnyWithin(points []r2.Vec, p r2.Vec, radius float64) bool {
	found := false
	g.visit(p, radius, func(idx int32) bool {
		if r2.Norm2(r2.Sub(points[idx], p)) < radius*radius {
			found = true
			return false
		}
		return true
	})
	return found
}

// QueryRadiusInto appends the indices of points strictly closer than radius to p.
// Reuse dst across calls to avoid allocations.
func (g *PointGrid) QueryRadiusInto(dst []int32, points []r2.Vec, p r2.Vec, radius float64) []int32 {
	g.visit(p, radius, func(idx int32) bool {
		if r2.Norm2(r2.Sub(points[idx], p)) < radius*radius {
			dst = append(dst, idx)
		}
		return true
	})
	return dst
}

// visit calls fn for every index in the cells overlapping the square of
// half-width radius around p, stopping early when fn returns false.
func (g *PointGrid) visit(p r2.Vec, radius float64, fn func(int32) bool) {
	cellRadius := int(math.Ceil(radius / g.cellSize))
	centerCol := int(p.X / g.cellSize)
	centerRow := int(p.Y / g.cellSize)

	for dr := -cellRadius; dr <= cellRadius; dr++ {
		row := centerRow + dr
		if row < 0 || row >= g.cols {
			continue
		}
		for dc := -cellRadius; dc <= cellRadius; dc++ {
			col := centerCol + dc
			if col < 0 || col >= g.cols {
				continue
			}
			for _, idx := range g.cells[row*g.cols+col] {
				if !fn(idx) {
					return
				}
			}
		}
	}
}

// cellIndex returns the flat index for a unit-square position.
func (g *PointGrid) cellIndex(x, y float64) int {
	col := int(x / g.cellSize)
	row := int(y / g.cellSize)

	// Clamp to valid range
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.cols {
		row = g.cols - 1
	}

	return row*g.cols + col
}
