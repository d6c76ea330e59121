package transform

import (
	"math"

	"github.com/matzehuels/svgmapper/pkg/geom"
)

// ReferenceDPI is the DPI at which one image pixel equals one
// device-independent unit.
const ReferenceDPI = 96.0

// Rounding applied to computed transforms so repeated layouts produce
// bit-identical results.
const (
	offsetPlaces = 4
	scalePlaces  = 8
)

// Params describes one layout of an image inside a control.
type Params struct {
	Image     geom.Size   // image size in pixels
	Control   geom.Size   // rendered area in device-independent units
	DPIScaleX float64     // image DPI / 96; non-positive means 1
	DPIScaleY float64     // image DPI / 96; non-positive means 1
	Stretch   StretchMode // fitting policy
}

func (p Params) dpi() (float64, float64) {
	x, y := p.DPIScaleX, p.DPIScaleY
	if x <= 0 {
		x = 1
	}
	if y <= 0 {
		y = 1
	}
	return x, y
}

// DPIScale converts an image DPI into the scale factor used by Params.
// Unknown (non-positive) DPI yields 1.
func DPIScale(dpi float64) float64 {
	if dpi <= 0 {
		return 1
	}
	return dpi / ReferenceDPI
}

// Result is the affine map from image device-independent units to control
// space: screen = dip*Scale + Offset.
type Result struct {
	ScaleX, ScaleY   float64
	OffsetX, OffsetY float64
}

// Identity is the no-op transform returned for degenerate input.
var Identity = Result{ScaleX: 1, ScaleY: 1}

// IsIdentity reports whether r is the identity transform.
func (r Result) IsIdentity() bool { return r == Identity }

// Calculate computes the transform for p. Non-positive image or control
// dimensions yield [Identity].
func Calculate(p Params) Result {
	if !p.Image.Positive() || !p.Control.Positive() {
		return Identity
	}
	dpiX, dpiY := p.dpi()

	imageDipW := p.Image.W / dpiX
	imageDipH := p.Image.H / dpiY

	scaleX := p.Control.W / imageDipW
	scaleY := p.Control.H / imageDipH

	var finalX, finalY float64
	switch p.Stretch {
	case UniformToFill:
		s := math.Max(scaleX, scaleY)
		finalX, finalY = s, s
	case Fill:
		finalX, finalY = scaleX, scaleY
	default:
		s := math.Min(scaleX, scaleY)
		finalX, finalY = s, s
	}

	offsetX := (p.Control.W - imageDipW*finalX) / 2
	offsetY := (p.Control.H - imageDipH*finalY) / 2

	return Result{
		ScaleX:  geom.Round(finalX, scalePlaces),
		ScaleY:  geom.Round(finalY, scalePlaces),
		OffsetX: geom.Round(offsetX, offsetPlaces),
		OffsetY: geom.Round(offsetY, offsetPlaces),
	}
}

// ToScreen maps an image-pixel point into control space.
func ToScreen(pixel geom.Point, p Params) geom.Point {
	return Calculate(p).ToScreen(pixel, p)
}

// ToPixel maps a control-space point back into image pixels, clamped to
// [0, w-1] × [0, h-1]. With a degenerate image size no bounds are known and
// the unclamped identity mapping is returned.
func ToPixel(screen geom.Point, p Params) geom.Point {
	return Calculate(p).ToPixel(screen, p)
}

// ToScreen applies r to an image-pixel point. p supplies the DPI scales.
func (r Result) ToScreen(pixel geom.Point, p Params) geom.Point {
	dpiX, dpiY := p.dpi()
	return geom.Point{
		X: pixel.X/dpiX*r.ScaleX + r.OffsetX,
		Y: pixel.Y/dpiY*r.ScaleY + r.OffsetY,
	}
}

// ToPixel applies the inverse of r and clamps into the image bounds.
func (r Result) ToPixel(screen geom.Point, p Params) geom.Point {
	dpiX, dpiY := p.dpi()
	px := geom.Point{
		X: (screen.X - r.OffsetX) / r.ScaleX * dpiX,
		Y: (screen.Y - r.OffsetY) / r.ScaleY * dpiY,
	}
	if !p.Image.Positive() {
		return px
	}
	return Clamp(px, p.Image)
}

// Clamp limits p to the valid pixel range of an image of the given size.
func Clamp(p geom.Point, image geom.Size) geom.Point {
	maxX := math.Max(0, image.W-1)
	maxY := math.Max(0, image.H-1)
	return geom.Point{
		X: math.Max(0, math.Min(maxX, p.X)),
		Y: math.Max(0, math.Min(maxY, p.Y)),
	}
}

// Normalize expresses a pixel point as a fraction of the image size.
// A degenerate image size maps to the origin.
func Normalize(pixel geom.Point, image geom.Size) geom.Point {
	if !image.Positive() {
		return geom.Point{}
	}
	return geom.Point{X: pixel.X / image.W, Y: pixel.Y / image.H}
}

// Denormalize maps a fractional point back into pixels.
func Denormalize(norm geom.Point, image geom.Size) geom.Point {
	if !image.Positive() {
		return geom.Point{}
	}
	return geom.Point{X: norm.X * image.W, Y: norm.Y * image.H}
}

// NormalizedToScreen maps a normalized (0..1) image point straight into
// control space.
func NormalizedToScreen(norm geom.Point, p Params) geom.Point {
	r := Calculate(p)
	dpiX, dpiY := p.dpi()
	return geom.Point{
		X: r.OffsetX + norm.X*(p.Image.W/dpiX)*r.ScaleX,
		Y: r.OffsetY + norm.Y*(p.Image.H/dpiY)*r.ScaleY,
	}
}
