package editor

import (
	"math"

	"github.com/matzehuels/svgmapper/pkg/geom"
	"github.com/matzehuels/svgmapper/pkg/transform"
	"github.com/matzehuels/svgmapper/pkg/viewport"
)

// SetControlSize sets the size of the area the background is fitted into.
// Without a control size, screen and pixel coordinates coincide up to the
// camera.
func (s *Session) SetControlSize(size geom.Size) { s.control = size }

// ControlSize returns the fitted area size.
func (s *Session) ControlSize() geom.Size { return s.control }

// Camera returns the pan/zoom state.
func (s *Session) Camera() viewport.Camera { return s.camera }

// Pan shifts the view by (dx, dy) screen units.
func (s *Session) Pan(dx, dy float64) { s.camera = s.camera.Pan(dx, dy) }

// ZoomAt zooms by factor keeping the screen point anchor fixed.
func (s *Session) ZoomAt(factor float64, anchor geom.Point) {
	s.camera = s.camera.ZoomAt(factor, anchor)
}

// ResetView restores zoom 1 without pan.
func (s *Session) ResetView() { s.camera = viewport.NewCamera() }

// Params returns the current fitted-image layout.
func (s *Session) Params() transform.Params {
	bg := s.Doc.Background
	dx, dy := bg.DPIScale()
	return transform.Params{
		Image:     s.Doc.ImageSize(),
		Control:   s.control,
		DPIScaleX: dx,
		DPIScaleY: dy,
		Stretch:   s.cfg.Stretch,
	}
}

// Transform returns the current image-to-control transform.
func (s *Session) Transform() transform.Result { return transform.Calculate(s.Params()) }

// ScreenToPixel maps a window point to image pixels, clamped to the image.
func (s *Session) ScreenToPixel(screen geom.Point) geom.Point {
	return transform.ToPixel(s.camera.ScreenToWorld(screen), s.Params())
}

// PixelToScreen maps an image pixel to a window point.
func (s *Session) PixelToScreen(pixel geom.Point) geom.Point {
	return s.camera.WorldToScreen(transform.ToScreen(pixel, s.Params()))
}

// pixelsPerScreenUnit is the pixel distance covered by one window unit
// along the less magnified axis, so a hit radius covers both axes under
// Fill.
func (s *Session) pixelsPerScreenUnit() float64 {
	p := s.Params()
	r := transform.Calculate(p)
	scale := s.camera.Zoom * min(r.ScaleX/p.DPIScaleX, r.ScaleY/p.DPIScaleY)
	if scale <= 0 || math.IsNaN(scale) {
		return 1
	}
	return 1 / scale
}

// PixelGrid returns the grid lines, in image pixels, visible in a window of
// the given size.
func (s *Session) PixelGrid(window geom.Size) viewport.Lines {
	world := s.camera.VisibleRect(window)
	p := s.Params()
	r := transform.Calculate(p)
	dx, dy := p.DPIScaleX, p.DPIScaleY
	toPixel := func(w geom.Point) geom.Point {
		return geom.Point{X: (w.X - r.OffsetX) / r.ScaleX * dx, Y: (w.Y - r.OffsetY) / r.ScaleY * dy}
	}
	a := toPixel(geom.Point{X: world.X, Y: world.Y})
	b := toPixel(geom.Point{X: world.X + world.W, Y: world.Y + world.H})
	visible := geom.Rect{X: a.X, Y: a.Y, W: b.X - a.X, H: b.Y - a.Y}
	return viewport.GridLines(visible, s.cfg.GridSize)
}
