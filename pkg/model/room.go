package model

import (
	"slices"
	"strconv"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/matzehuels/svgmapper/pkg/geom"
	"github.com/matzehuels/svgmapper/pkg/transform"
)

// DefaultRoomName is used when a room is closed with a blank name.
const DefaultRoomName = "Room"

// MinRoomPoints is the fewest vertices a closed room may have.
const MinRoomPoints = 3

// Room is an annotated polygon.
type Room struct {
	ID               uuid.UUID
	Name             string
	Points           []geom.Point // pixel space, winding order
	NormalizedPoints []geom.Point // parallel to Points, or empty
	IsSelected       bool
	FieldNumber      string
	Path             *Path // set for imported path shapes; Points is then empty
	Style            RoomStyle
}

// RoomStyle overrides the exported colors of one room. Unset fields fall
// back to the exporter's style.
type RoomStyle struct {
	Fill        string
	Stroke      string
	FillOpacity *float64
}

// IsZero reports whether no override is set.
func (s RoomStyle) IsZero() bool {
	return s.Fill == "" && s.Stroke == "" && s.FillOpacity == nil
}

// Clone returns a copy that shares no memory with s.
func (s RoomStyle) Clone() RoomStyle {
	if s.FillOpacity != nil {
		v := *s.FillOpacity
		s.FillOpacity = &v
	}
	return s
}

// NewRoom returns a polygon room with a fresh ID. The points are copied.
func NewRoom(name string, points []geom.Point) *Room {
	return &Room{
		ID:     uuid.New(),
		Name:   name,
		Points: geom.Clone(points),
	}
}

// NewPathRoom returns a room backed by raw path data.
func NewPathRoom(name, data string, bounds geom.Rect) *Room {
	return &Room{ID: uuid.New(), Name: name, Path: &Path{Data: data, Box: bounds}}
}

// Geometry returns the room's shape variant.
func (r *Room) Geometry() Geometry {
	if r.Path != nil {
		return *r.Path
	}
	return Polygon{Points: r.Points}
}

// Label is the text exported for the room: FieldNumber, else Name, else the
// 1-based position.
func (r *Room) Label(index int) string {
	switch {
	case r.FieldNumber != "":
		return r.FieldNumber
	case r.Name != "":
		return r.Name
	}
	return strconv.Itoa(index + 1)
}

// SyncNormalized recomputes NormalizedPoints from Points. Without a usable
// image size the normalized outline is cleared and Points become
// authoritative.
func (r *Room) SyncNormalized(image geom.Size) {
	if !image.Positive() || len(r.Points) == 0 {
		r.NormalizedPoints = nil
		return
	}
	r.NormalizedPoints = lo.Map(r.Points, func(p geom.Point, _ int) geom.Point {
		return transform.Normalize(p, image)
	})
}

// RefreshPoints regenerates Points from NormalizedPoints when both a
// normalized outline and an image size are available. It reports whether
// Points changed.
func (r *Room) RefreshPoints(image geom.Size) bool {
	if len(r.NormalizedPoints) == 0 || !image.Positive() {
		return false
	}
	r.Points = lo.Map(r.NormalizedPoints, func(n geom.Point, _ int) geom.Point {
		return transform.Denormalize(n, image)
	})
	return true
}

// PixelPoints returns the outline in pixel space without modifying r,
// preferring the normalized outline when the image size is known.
func (r *Room) PixelPoints(image geom.Size) []geom.Point {
	if len(r.NormalizedPoints) > 0 && image.Positive() {
		return lo.Map(r.NormalizedPoints, func(n geom.Point, _ int) geom.Point {
			return transform.Denormalize(n, image)
		})
	}
	return geom.Clone(r.Points)
}

// Stale reports whether Points needs regenerating from NormalizedPoints.
func (r *Room) Stale() bool {
	return len(r.NormalizedPoints) > 0 && len(r.Points) != len(r.NormalizedPoints)
}

// Shape is a captured copy of a room's outline, used for exact
// before/after undo records. Image is the background size the pixel
// outline was captured at.
type Shape struct {
	Points           []geom.Point
	NormalizedPoints []geom.Point
	Image            geom.Size
}

// Snapshot copies the current outline, captured at image size image.
func (r *Room) Snapshot(image geom.Size) Shape {
	return Shape{Points: geom.Clone(r.Points), NormalizedPoints: geom.Clone(r.NormalizedPoints), Image: image}
}

// Restore replaces the outline with a copy of s. When the background has
// changed size since s was captured, Points are regenerated from the
// normalized outline.
func (r *Room) Restore(s Shape, image geom.Size) {
	r.Points = geom.Clone(s.Points)
	r.NormalizedPoints = geom.Clone(s.NormalizedPoints)
	if image != s.Image {
		r.RefreshPoints(image)
	}
}

// SetPoints replaces the pixel outline and keeps the normalized outline in
// lock-step.
func (r *Room) SetPoints(points []geom.Point, image geom.Size) {
	r.Points = geom.Clone(points)
	r.SyncNormalized(image)
}

// SetVertex moves vertex i.
func (r *Room) SetVertex(i int, p geom.Point, image geom.Size) {
	r.Points[i] = p
	r.syncVertex(i, image)
}

// InsertVertex inserts p so that it becomes vertex i.
func (r *Room) InsertVertex(i int, p geom.Point, image geom.Size) {
	r.Points = slices.Insert(geom.Clone(r.Points), i, p)
	if len(r.NormalizedPoints) == len(r.Points)-1 && image.Positive() {
		n := transform.Normalize(p, image)
		r.NormalizedPoints = slices.Insert(geom.Clone(r.NormalizedPoints), i, n)
		return
	}
	r.SyncNormalized(image)
}

// RemoveVertex deletes vertex i and returns it.
func (r *Room) RemoveVertex(i int, image geom.Size) geom.Point {
	p := r.Points[i]
	r.Points = slices.Delete(geom.Clone(r.Points), i, i+1)
	if len(r.NormalizedPoints) == len(r.Points)+1 && image.Positive() {
		r.NormalizedPoints = slices.Delete(geom.Clone(r.NormalizedPoints), i, i+1)
		return p
	}
	r.SyncNormalized(image)
	return p
}

func (r *Room) syncVertex(i int, image geom.Size) {
	if len(r.NormalizedPoints) == len(r.Points) && image.Positive() {
		r.NormalizedPoints[i] = transform.Normalize(r.Points[i], image)
		return
	}
	r.SyncNormalized(image)
}

// Clone returns a deep copy of r with the same ID.
func (r *Room) Clone() *Room {
	c := *r
	c.Points = geom.Clone(r.Points)
	c.NormalizedPoints = geom.Clone(r.NormalizedPoints)
	c.Style = r.Style.Clone()
	if r.Path != nil {
		p := *r.Path
		c.Path = &p
	}
	return &c
}
