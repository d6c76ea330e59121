package model

import (
	"github.com/google/uuid"

	"github.com/matzehuels/svgmapper/pkg/geom"
)

// SeatSize is the side length of the square seat marker in pixels. X and Y
// of a seat are the marker's top-left corner.
const SeatSize = 16

// Seat is a point marker. Seats placed as part of a row carry the row
// name; single seats leave Row empty.
type Seat struct {
	ID    uuid.UUID
	Label string
	Row   string
	X, Y  float64
}

// NewSeatAt returns a seat whose marker is centered on center.
func NewSeatAt(label string, center geom.Point) *Seat {
	return &Seat{
		ID:    uuid.New(),
		Label: label,
		X:     center.X - SeatSize/2,
		Y:     center.Y - SeatSize/2,
	}
}

// Pos is the marker's top-left corner.
func (s *Seat) Pos() geom.Point { return geom.Point{X: s.X, Y: s.Y} }

// Center is the marker's center.
func (s *Seat) Center() geom.Point {
	return geom.Point{X: s.X + SeatSize/2, Y: s.Y + SeatSize/2}
}

// Bounds is the marker square.
func (s *Seat) Bounds() geom.Rect { return geom.R(s.X, s.Y, SeatSize, SeatSize) }

// Clone returns a copy of s with the same ID.
func (s *Seat) Clone() *Seat {
	c := *s
	return &c
}

// Row is a named run of seats, in document order.
type Row struct {
	Name  string
	Seats []*Seat
}

// GroupRows splits seats into rows in order of first appearance. Seats
// without a row are returned separately.
func GroupRows(seats []*Seat) (rows []Row, single []*Seat) {
	index := map[string]int{}
	for _, s := range seats {
		if s.Row == "" {
			single = append(single, s)
			continue
		}
		i, ok := index[s.Row]
		if !ok {
			i = len(rows)
			index[s.Row] = i
			rows = append(rows, Row{Name: s.Row})
		}
		rows[i].Seats = append(rows[i].Seats, s)
	}
	return rows, single
}
