// Package viewport implements the pan/zoom camera that sits between the
// window and the fitted background image.
//
// A [Camera] maps world coordinates (the control space produced by package
// transform) to window coordinates with a uniform zoom followed by a
// translation:
//
//	screen = world*Zoom + Pan
//	world  = (screen - Pan) / Zoom
//
// Zoom steps multiply by [ZoomStep] and keep the point under the cursor
// fixed. Grid lines and tolerance snapping are computed in world units so
// they stay aligned with the image while zooming.
package viewport

import (
	"math"

	"github.com/samber/lo"

	"github.com/matzehuels/svgmapper/pkg/geom"
)

const (
	// ZoomStep is the factor applied per wheel notch or zoom key.
	ZoomStep = 1.1

	MinZoom = 0.05
	MaxZoom = 40.0

	// DefaultSnapTolerance is the world distance within which SnapWithin
	// pulls a point onto a grid intersection.
	DefaultSnapTolerance = 8.0
)

// Camera is the pan/zoom state of a canvas. The zero value is not usable;
// start from [NewCamera].
type Camera struct {
	Zoom float64
	PanX float64
	PanY float64
}

// NewCamera returns a camera at zoom 1 with no pan.
func NewCamera() Camera { return Camera{Zoom: 1} }

func (c Camera) zoom() float64 {
	if c.Zoom <= 0 {
		return 1
	}
	return c.Zoom
}

// ScreenToWorld maps a window point into world space.
func (c Camera) ScreenToWorld(s geom.Point) geom.Point {
	z := c.zoom()
	return geom.Point{X: (s.X - c.PanX) / z, Y: (s.Y - c.PanY) / z}
}

// WorldToScreen maps a world point into window space.
func (c Camera) WorldToScreen(w geom.Point) geom.Point {
	z := c.zoom()
	return geom.Point{X: w.X*z + c.PanX, Y: w.Y*z + c.PanY}
}

// Pan returns c translated by (dx, dy) window units.
func (c Camera) Pan(dx, dy float64) Camera {
	c.PanX += dx
	c.PanY += dy
	return c
}

// ZoomAt returns c zoomed by factor around anchor, a window point. The
// world point under anchor is unchanged. The resulting zoom is clamped to
// [MinZoom, MaxZoom].
func (c Camera) ZoomAt(factor float64, anchor geom.Point) Camera {
	if factor <= 0 {
		return c
	}
	world := c.ScreenToWorld(anchor)
	z := lo.Clamp(c.zoom()*factor, MinZoom, MaxZoom)
	return Camera{
		Zoom: z,
		PanX: anchor.X - world.X*z,
		PanY: anchor.Y - world.Y*z,
	}
}

// ZoomIn zooms one step in around anchor.
func (c Camera) ZoomIn(anchor geom.Point) Camera { return c.ZoomAt(ZoomStep, anchor) }

// ZoomOut zooms one step out around anchor.
func (c Camera) ZoomOut(anchor geom.Point) Camera { return c.ZoomAt(1/ZoomStep, anchor) }

// StrokeWidth returns the world-space width that renders as base window
// units at the current zoom, keeping outlines visually constant.
func (c Camera) StrokeWidth(base float64) float64 { return base / c.zoom() }

// VisibleRect returns the world rectangle covered by a window of size
// viewport.
func (c Camera) VisibleRect(viewport geom.Size) geom.Rect {
	a := c.ScreenToWorld(geom.Point{})
	b := c.ScreenToWorld(geom.Point{X: viewport.W, Y: viewport.H})
	return geom.Rect{
		X: math.Min(a.X, b.X),
		Y: math.Min(a.Y, b.Y),
		W: math.Abs(b.X - a.X),
		H: math.Abs(b.Y - a.Y),
	}
}

// Lines holds grid line positions in world units.
type Lines struct {
	Vertical   []float64 // x positions
	Horizontal []float64 // y positions
}

// maxGridLines bounds GridLines output per axis when zoomed far out.
const maxGridLines = 4096

// GridLines returns grid positions covering visible, extended outward to the
// nearest grid multiple on each side. A non-positive gridSize yields no
// lines.
func GridLines(visible geom.Rect, gridSize float64) Lines {
	if gridSize <= 0 {
		return Lines{}
	}
	return Lines{
		Vertical:   axisLines(visible.X, visible.X+visible.W, gridSize),
		Horizontal: axisLines(visible.Y, visible.Y+visible.H, gridSize),
	}
}

func axisLines(from, to, g float64) []float64 {
	start := math.Floor(math.Min(from, to)/g) * g
	end := math.Ceil(math.Max(from, to)/g) * g
	n := int(math.Round((end-start)/g)) + 1
	if n > maxGridLines {
		n = maxGridLines
	}
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, start+float64(i)*g)
	}
	return out
}

// SnapWithin snaps p to the nearest grid intersection when it lies within
// tolerance (Euclidean) of it, and returns p unchanged otherwise.
func SnapWithin(p geom.Point, gridSize, tolerance float64) geom.Point {
	if gridSize <= 0 {
		return p
	}
	g := geom.Point{
		X: math.Round(p.X/gridSize) * gridSize,
		Y: math.Round(p.Y/gridSize) * gridSize,
	}
	if geom.Distance(p, g) <= tolerance {
		return g
	}
	return p
}
