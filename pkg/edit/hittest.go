package edit

import (
	"github.com/matzehuels/svgmapper/pkg/geom"
	"github.com/matzehuels/svgmapper/pkg/model"
)

// HitTestVertex returns the vertex of room within radius of p.
func HitTestVertex(room *model.Room, p geom.Point, radius float64) (int, bool) {
	if room == nil || room.Path != nil {
		return -1, false
	}
	i, d := geom.NearestVertex(room.Points, p)
	if i < 0 || d > radius {
		return -1, false
	}
	return i, true
}

// HitTestEdge returns the edge of room within tolerance of p. Edge i runs
// from vertex i to vertex i+1 (wrapping).
func HitTestEdge(room *model.Room, p geom.Point, tolerance float64) (int, bool) {
	if room == nil || room.Path != nil {
		return -1, false
	}
	i, d := geom.NearestEdge(room.Points, p)
	if i < 0 || d > tolerance {
		return -1, false
	}
	return i, true
}

// HitTestRoom returns the topmost room containing p.
func HitTestRoom(doc *model.Document, p geom.Point) *model.Room {
	rooms := doc.Rooms.Items()
	for i := len(rooms) - 1; i >= 0; i-- {
		r := rooms[i]
		if r.Path != nil {
			if r.Path.Box.Contains(p) {
				return r
			}
			continue
		}
		if geom.Contains(r.Points, p) {
			return r
		}
	}
	return nil
}

// HitTestSeat returns the topmost seat whose marker contains p.
func HitTestSeat(doc *model.Document, p geom.Point) *model.Seat {
	seats := doc.Seats.Items()
	for i := len(seats) - 1; i >= 0; i-- {
		if seats[i].Bounds().Contains(p) {
			return seats[i]
		}
	}
	return nil
}
