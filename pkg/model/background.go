package model

import "github.com/matzehuels/svgmapper/pkg/geom"

// Background describes the image the document is annotated on. A zero
// Background means none is loaded.
type Background struct {
	Path      string  `json:"path"`
	Format    string  `json:"format"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	DPIScaleX float64 `json:"dpi_scale_x"`
	DPIScaleY float64 `json:"dpi_scale_y"`
}

// Size returns the pixel size.
func (b Background) Size() geom.Size {
	return geom.Size{W: float64(b.Width), H: float64(b.Height)}
}

// Loaded reports whether the background has usable pixel dimensions.
func (b Background) Loaded() bool { return b.Width > 0 && b.Height > 0 }

// DPIScale returns the DPI scales, substituting 1 for unknown values.
func (b Background) DPIScale() (float64, float64) {
	x, y := b.DPIScaleX, b.DPIScaleY
	if x <= 0 {
		x = 1
	}
	if y <= 0 {
		y = 1
	}
	return x, y
}
