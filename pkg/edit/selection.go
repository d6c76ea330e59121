package edit

import (
	"github.com/samber/lo"

	"github.com/matzehuels/svgmapper/pkg/model"
)

// Selection tracks the selected rooms and seats. Room selection is mirrored
// into Room.IsSelected so renderers can read it from the model. Selection
// changes are not undoable.
type Selection struct {
	doc   *model.Document
	rooms []*model.Room
	seats []*model.Seat
}

// NewSelection returns an empty selection over doc.
func NewSelection(doc *model.Document) *Selection {
	return &Selection{doc: doc}
}

func (s *Selection) Rooms() []*model.Room { return append([]*model.Room(nil), s.rooms...) }
func (s *Selection) Seats() []*model.Seat { return append([]*model.Seat(nil), s.seats...) }
func (s *Selection) Empty() bool          { return len(s.rooms) == 0 && len(s.seats) == 0 }

// Room returns the selected room when exactly one room is selected.
func (s *Selection) Room() *model.Room {
	if len(s.rooms) != 1 {
		return nil
	}
	return s.rooms[0]
}

// SelectRoom replaces the selection with room.
func (s *Selection) SelectRoom(room *model.Room) {
	s.Clear()
	s.addRoom(room)
}

// SelectSeat replaces the selection with seat.
func (s *Selection) SelectSeat(seat *model.Seat) {
	s.Clear()
	s.seats = append(s.seats, seat)
}

// ToggleRoom adds or removes room from the selection.
func (s *Selection) ToggleRoom(room *model.Room) {
	if lo.Contains(s.rooms, room) {
		s.rooms = lo.Without(s.rooms, room)
		s.mark(room, false)
		return
	}
	s.addRoom(room)
}

// ToggleSeat adds or removes seat from the selection.
func (s *Selection) ToggleSeat(seat *model.Seat) {
	if lo.Contains(s.seats, seat) {
		s.seats = lo.Without(s.seats, seat)
		return
	}
	s.seats = append(s.seats, seat)
}

// Clear deselects everything.
func (s *Selection) Clear() {
	for _, r := range s.rooms {
		s.mark(r, false)
	}
	s.rooms, s.seats = nil, nil
}

// Prune drops items that are no longer in the document, for example after
// an undo removed them.
func (s *Selection) Prune() {
	s.rooms = lo.Filter(s.rooms, func(r *model.Room, _ int) bool {
		if s.doc.Rooms.Contains(r) {
			return true
		}
		r.IsSelected = false
		return false
	})
	s.seats = lo.Filter(s.seats, func(seat *model.Seat, _ int) bool { return s.doc.Seats.Contains(seat) })
}

func (s *Selection) addRoom(room *model.Room) {
	if room == nil || lo.Contains(s.rooms, room) {
		return
	}
	s.rooms = append(s.rooms, room)
	s.mark(room, true)
}

func (s *Selection) mark(room *model.Room, on bool) {
	if room.IsSelected == on {
		return
	}
	room.IsSelected = on
	s.doc.Rooms.Notify(room)
}
