package edit

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/matzehuels/svgmapper/pkg/errors"
	"github.com/matzehuels/svgmapper/pkg/geom"
	"github.com/matzehuels/svgmapper/pkg/model"
	"github.com/matzehuels/svgmapper/pkg/snap"
	"github.com/matzehuels/svgmapper/pkg/undo"
)

// DefaultRowSpacing is the distance between seat centers in a row when no
// positive spacing is given.
const DefaultRowSpacing = 40.0

// AddSeat places a seat centered on the snapped center. Labels run S1, S2,
// ... per document and are never reused.
func AddSeat(doc *model.Document, h *undo.History, s snap.Snapper, center geom.Point) (*model.Seat, error) {
	seat := model.NewSeatAt(doc.NextSeatLabel(), s.Apply(center))
	seats := doc.Seats
	err := h.ExecuteNamed("add seat "+seat.Label,
		func() { seats.Append(seat) },
		func() { seats.Remove(seat) },
	)
	if err != nil {
		return nil, err
	}
	return seat, nil
}

// RowPositions spreads seat centers evenly from a to b, both included.
// There are floor(|ab|/spacing)+1 of them and never fewer than two; a row
// of zero length is the single point a. A non-positive spacing means
// [DefaultRowSpacing].
func RowPositions(a, b geom.Point, spacing float64) []geom.Point {
	if spacing <= 0 {
		spacing = DefaultRowSpacing
	}
	dist := geom.Distance(a, b)
	if dist == 0 {
		return []geom.Point{a}
	}
	n := max(int(math.Floor(dist/spacing))+1, 2)
	return lo.Times(n, func(i int) geom.Point {
		t := float64(i) / float64(n-1)
		return geom.Pt(a.X+(b.X-a.X)*t, a.Y+(b.Y-a.Y)*t)
	})
}

// AddSeatRow places a row of seats along the snapped line from a to b as
// one transaction. The row gets the document's next row name and its
// seats are labelled A1, A2, ... in order from a.
func AddSeatRow(doc *model.Document, h *undo.History, s snap.Snapper, a, b geom.Point, spacing float64) ([]*model.Seat, error) {
	centers := RowPositions(s.Apply(a), s.Apply(b), spacing)
	name, labels := doc.NextRow(len(centers))
	row := lo.Map(centers, func(c geom.Point, i int) *model.Seat {
		seat := model.NewSeatAt(labels[i], c)
		seat.Row = name
		return seat
	})

	seats := doc.Seats
	err := h.ExecuteNamed(fmt.Sprintf("add row %s (%d seats)", name, len(row)),
		func() {
			for _, seat := range row {
				seats.Append(seat)
			}
		},
		func() {
			for _, seat := range row {
				seats.Remove(seat)
			}
		},
	)
	if err != nil {
		return nil, err
	}
	return row, nil
}

// DeleteSeat removes seat. Undo puts it back at the index it had.
func DeleteSeat(doc *model.Document, h *undo.History, seat *model.Seat) error {
	seats := doc.Seats
	index := seats.IndexOf(seat)
	if index < 0 {
		return errors.New(errors.ErrCodeNotFound, "seat %q is not in the document", seat.Label)
	}
	return h.ExecuteNamed("delete seat "+seat.Label,
		func() { seats.Remove(seat) },
		func() { seats.Insert(index, seat) },
	)
}

// MoveSeats translates the given seats by (dx, dy) as one transaction.
func MoveSeats(doc *model.Document, h *undo.History, moved []*model.Seat, dx, dy float64) error {
	moved = lo.Filter(moved, func(s *model.Seat, _ int) bool { return doc.Seats.Contains(s) })
	if len(moved) == 0 || (dx == 0 && dy == 0) {
		return nil
	}
	before := lo.Map(moved, func(s *model.Seat, _ int) geom.Point { return s.Pos() })
	seats := doc.Seats
	return h.ExecuteNamed(fmt.Sprintf("move %d seats", len(moved)),
		func() {
			for i, s := range moved {
				s.X, s.Y = before[i].X+dx, before[i].Y+dy
				seats.Notify(s)
			}
		},
		func() {
			for i, s := range moved {
				s.X, s.Y = before[i].X, before[i].Y
				seats.Notify(s)
			}
		},
	)
}
