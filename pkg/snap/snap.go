// Package snap rounds coordinates to a uniform grid.
//
// Snapping is pure: it never consults document state and never fails.
// Rounding is half away from zero, so 20 snaps to 40 on a 40 px grid and
// -20 snaps to -40.
package snap

import (
	"math"

	"github.com/matzehuels/svgmapper/pkg/geom"
)

// DefaultGridSize is the grid spacing in image pixels used when none is
// configured.
const DefaultGridSize = 40

// MinGridSize is the smallest grid the editor accepts. Smaller values are
// raised to it by [ClampGridSize].
const MinGridSize = 4

// Snap rounds (x, y) to the nearest multiple of gridSize on each axis.
// A non-positive gridSize returns the input unchanged.
func Snap(x, y, gridSize float64) (float64, float64) {
	if gridSize <= 0 {
		return x, y
	}
	return round(x, gridSize), round(y, gridSize)
}

// Point is [Snap] for a [geom.Point].
func Point(p geom.Point, gridSize float64) geom.Point {
	x, y := Snap(p.X, p.Y, gridSize)
	return geom.Point{X: x, Y: y}
}

func round(v, g float64) float64 {
	return math.Round(v/g) * g
}

// ClampGridSize raises g to [MinGridSize].
func ClampGridSize(g float64) float64 {
	if g < MinGridSize {
		return MinGridSize
	}
	return g
}

// Snapper applies snapping when enabled.
type Snapper struct {
	Enabled  bool
	GridSize float64
}

// Apply returns p snapped to the grid, or p itself when snapping is off.
func (s Snapper) Apply(p geom.Point) geom.Point {
	if !s.Enabled {
		return p
	}
	return Point(p, ClampGridSize(s.GridSize))
}
