package model

import "github.com/matzehuels/svgmapper/pkg/geom"

// Document is the aggregate of everything that is exported.
type Document struct {
	Rooms      *Collection[*Room]
	Seats      *Collection[*Seat]
	Background Background

	seatSeq int
	rowSeq  int
}

// NewDocument returns an empty document without a background.
func NewDocument() *Document {
	return &Document{
		Rooms: NewCollection[*Room](),
		Seats: NewCollection[*Seat](),
	}
}

// ImageSize is the background pixel size, zero when none is loaded.
func (d *Document) ImageSize() geom.Size {
	if !d.Background.Loaded() {
		return geom.Size{}
	}
	return d.Background.Size()
}

// SetBackground replaces the background and regenerates the pixel outline
// of every room whose normalized outline is authoritative. Rooms drawn
// before any background existed are given a normalized outline.
func (d *Document) SetBackground(bg Background) {
	d.Background = bg
	size := d.ImageSize()
	for _, r := range d.Rooms.Items() {
		if fit(r, size) {
			d.Rooms.Notify(r)
		}
	}
}

// FitRoom brings the outline of a room that left the document while the
// background measured from back in line with the current background. Undo
// and redo call it before a room re-enters the document. It reports
// whether Points changed.
func (d *Document) FitRoom(r *Room, from geom.Size) bool {
	size := d.ImageSize()
	if size == from {
		return false
	}
	return fit(r, size)
}

func fit(r *Room, size geom.Size) bool {
	switch {
	case len(r.NormalizedPoints) > 0:
		return r.RefreshPoints(size)
	case size.Positive() && len(r.Points) > 0:
		r.SyncNormalized(size)
	}
	return false
}

// ClearBackground removes the background. Rooms keep their last pixel
// outline.
func (d *Document) ClearBackground() {
	d.Background = Background{}
}

// RefreshStale regenerates Points for rooms whose pixel outline is missing
// or out of step with the normalized outline.
func (d *Document) RefreshStale() int {
	size := d.ImageSize()
	n := 0
	for _, r := range d.Rooms.Items() {
		if r.Stale() && r.RefreshPoints(size) {
			d.Rooms.Notify(r)
			n++
		}
	}
	return n
}

// Snapshot is a deep, comparable copy of a document's state.
type Snapshot struct {
	Rooms      []Room
	Seats      []Seat
	Background Background
}

// Snapshot captures the document for equality checks and previews.
func (d *Document) Snapshot() Snapshot {
	s := Snapshot{Background: d.Background}
	for _, r := range d.Rooms.Items() {
		s.Rooms = append(s.Rooms, *r.Clone())
	}
	for _, seat := range d.Seats.Items() {
		s.Seats = append(s.Seats, *seat)
	}
	return s
}

// Extent is the bottom-right corner covering every room vertex and seat
// marker, in pixels.
func (d *Document) Extent() geom.Point {
	var ext geom.Point
	size := d.ImageSize()
	for _, r := range d.Rooms.Items() {
		var pts []geom.Point
		if r.Path != nil {
			pts = []geom.Point{r.Path.Box.Max()}
		} else {
			pts = r.PixelPoints(size)
		}
		for _, p := range pts {
			ext.X = max(ext.X, p.X)
			ext.Y = max(ext.Y, p.Y)
		}
	}
	for _, s := range d.Seats.Items() {
		ext.X = max(ext.X, s.X+SeatSize)
		ext.Y = max(ext.Y, s.Y+SeatSize)
	}
	return ext
}
