package edit

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/matzehuels/svgmapper/pkg/geom"
	"github.com/matzehuels/svgmapper/pkg/model"
	"github.com/matzehuels/svgmapper/pkg/undo"
)

// PasteOffset is how far pasted items are shifted from their source.
const PasteOffset = 10.0

// CopySuffix is appended to the names of pasted rooms.
const CopySuffix = " Copy"

// Clipboard holds copies of rooms and seats for pasting.
type Clipboard struct {
	rooms []*model.Room
	seats []*model.Seat
}

// Copy replaces the clipboard contents with copies of rooms and seats.
func (c *Clipboard) Copy(rooms []*model.Room, seats []*model.Seat) {
	c.rooms = lo.Map(rooms, func(r *model.Room, _ int) *model.Room { return r.Clone() })
	c.seats = lo.Map(seats, func(s *model.Seat, _ int) *model.Seat { return s.Clone() })
}

func (c *Clipboard) Empty() bool { return len(c.rooms) == 0 && len(c.seats) == 0 }

// Paste adds fresh copies of the clipboard to doc, offset by
// [PasteOffset], as one transaction. Pasted rooms get new IDs and the
// [CopySuffix]; pasted seats get new IDs and fresh single-seat labels.
func (c *Clipboard) Paste(doc *model.Document, h *undo.History) ([]*model.Room, []*model.Seat, error) {
	if c.Empty() {
		return nil, nil, nil
	}
	size := doc.ImageSize()

	rooms := lo.Map(c.rooms, func(src *model.Room, _ int) *model.Room {
		r := src.Clone()
		r.ID = uuid.New()
		r.Name = src.Name + CopySuffix
		r.IsSelected = false
		if r.Path != nil {
			r.Path.Box = r.Path.Box.Translate(PasteOffset, PasteOffset)
			return r
		}
		r.SetPoints(geom.Translate(src.PixelPoints(size), PasteOffset, PasteOffset), size)
		return r
	})
	seats := lo.Map(c.seats, func(src *model.Seat, _ int) *model.Seat {
		s := src.Clone()
		s.ID = uuid.New()
		s.Label = doc.NextSeatLabel()
		s.Row = ""
		s.X += PasteOffset
		s.Y += PasteOffset
		return s
	})

	err := h.ExecuteNamed(fmt.Sprintf("paste %d rooms, %d seats", len(rooms), len(seats)),
		func() {
			for _, r := range rooms {
				doc.FitRoom(r, size)
				doc.Rooms.Append(r)
			}
			for _, s := range seats {
				doc.Seats.Append(s)
			}
		},
		func() {
			for _, s := range seats {
				doc.Seats.Remove(s)
			}
			for _, r := range rooms {
				doc.Rooms.Remove(r)
			}
			size = doc.ImageSize()
		},
	)
	if err != nil {
		return nil, nil, err
	}
	return rooms, seats, nil
}

// Duplicate copies and pastes in one step.
func (c *Clipboard) Duplicate(doc *model.Document, h *undo.History, rooms []*model.Room, seats []*model.Seat) ([]*model.Room, []*model.Seat, error) {
	c.Copy(rooms, seats)
	return c.Paste(doc, h)
}
