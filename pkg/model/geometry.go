package model

import "github.com/matzehuels/svgmapper/pkg/geom"

// GeometryKind tags the variants of [Geometry].
type GeometryKind int

const (
	KindPolygon GeometryKind = iota
	KindPath
)

func (k GeometryKind) String() string {
	if k == KindPath {
		return "path"
	}
	return "polygon"
}

// Geometry is the outline of a room. Polygons expose editable vertices;
// paths imported from other drawings are opaque and only report bounds.
type Geometry interface {
	Kind() GeometryKind
	Bounds() geom.Rect
	// Vertices returns the editable vertices, or nil when the shape has
	// none.
	Vertices() []geom.Point
}

// Polygon is a closed outline through Points in winding order.
type Polygon struct {
	Points []geom.Point
}

func (Polygon) Kind() GeometryKind       { return KindPolygon }
func (p Polygon) Bounds() geom.Rect      { return geom.Bounds(p.Points) }
func (p Polygon) Vertices() []geom.Point { return p.Points }

// Path is raw SVG path data with precomputed bounds.
type Path struct {
	Data string    `json:"d"`
	Box  geom.Rect `json:"bounds"`
}

func (Path) Kind() GeometryKind     { return KindPath }
func (p Path) Bounds() geom.Rect    { return p.Box }
func (Path) Vertices() []geom.Point { return nil }
