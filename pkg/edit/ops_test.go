package edit

import (
	"testing"

	"github.com/matzehuels/svgmapper/pkg/errors"
	"github.com/matzehuels/svgmapper/pkg/geom"
	"github.com/matzehuels/svgmapper/pkg/model"
	"github.com/matzehuels/svgmapper/pkg/snap"
)

func TestDeleteRoomRestoresIndex(t *testing.T) {
	doc, h, first, _ := fixture(t)
	second := model.NewRoom("B", first.Points)
	third := model.NewRoom("C", first.Points)
	doc.Rooms.Append(second)
	doc.Rooms.Append(third)

	if err := DeleteRoom(doc, h, second); err != nil {
		t.Fatal(err)
	}
	if doc.Rooms.Len() != 2 {
		t.Fatalf("Len() = %d", doc.Rooms.Len())
	}
	_ = h.Undo()
	if doc.Rooms.IndexOf(second) != 1 {
		t.Errorf("IndexOf() after undo = %d, want 1", doc.Rooms.IndexOf(second))
	}
	if err := DeleteRoom(doc, h, model.NewRoom("X", nil)); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("DeleteRoom(unknown) = %v", err)
	}
}

func TestDeletedRoomFollowsBackground(t *testing.T) {
	doc, h, room, _ := fixture(t)
	doc.SetBackground(model.Background{Width: 800, Height: 600})
	if err := DeleteRoom(doc, h, room); err != nil {
		t.Fatal(err)
	}
	doc.SetBackground(model.Background{Width: 400, Height: 300})

	_ = h.Undo()
	if !closeTo(room.Points[2], geom.Pt(50, 50)) {
		t.Errorf("undo delete: Points = %v, want the outline at 400x300", room.Points)
	}

	_ = h.Redo()
	doc.SetBackground(model.Background{Width: 800, Height: 600})
	_ = h.Undo()
	if !closeTo(room.Points[2], geom.Pt(100, 100)) {
		t.Errorf("second undo: Points = %v, want the outline at 800x600", room.Points)
	}
}

func TestAddRoomRefusesShortPolygon(t *testing.T) {
	doc, h, _, _ := fixture(t)
	err := AddRoom(doc, h, model.NewRoom("Line", []geom.Point{geom.Pt(0, 0), geom.Pt(1, 1)}))
	if !errors.Is(err, errors.ErrCodeInvalidGeometry) {
		t.Errorf("AddRoom() = %v", err)
	}
}

func TestRenameRoom(t *testing.T) {
	doc, h, room, _ := fixture(t)

	if err := RenameRoom(doc, h, room, "  "); err != nil || room.Name != "A" || h.CanUndo() {
		t.Errorf("blank rename: err=%v name=%q", err, room.Name)
	}
	if err := RenameRoom(doc, h, room, " Kitchen "); err != nil || room.Name != "Kitchen" {
		t.Errorf("rename: err=%v name=%q", err, room.Name)
	}
	_ = h.Undo()
	if room.Name != "A" {
		t.Errorf("undo rename: name=%q", room.Name)
	}
	if err := RenameRoom(doc, h, room, "tab\there"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("rename with control char = %v", err)
	}
}

func TestAddSeat(t *testing.T) {
	doc, h, _, _ := fixture(t)
	grid := snap.Snapper{Enabled: true, GridSize: 40}

	s1, _ := AddSeat(doc, h, grid, geom.Pt(103, 98))
	s2, _ := AddSeat(doc, h, grid, geom.Pt(10, 10))

	if s1.Label != "S1" || s2.Label != "S2" {
		t.Errorf("labels = %q, %q", s1.Label, s2.Label)
	}
	if s1.X != 112 || s1.Y != 72 {
		t.Errorf("seat corner = (%v,%v), want (112,72)", s1.X, s1.Y)
	}
	if doc.Seats.Len() != 2 {
		t.Errorf("Seats.Len() = %d, want 2", doc.Seats.Len())
	}
	_ = h.Undo()
	if doc.Seats.Len() != 1 {
		t.Errorf("undo add seat: Len() = %d", doc.Seats.Len())
	}
}

func TestSeatLabelsStayUnique(t *testing.T) {
	doc, h, _, _ := fixture(t)
	var none snap.Snapper

	var added []*model.Seat
	for i := range 3 {
		seat, err := AddSeat(doc, h, none, geom.Pt(float64(i*40), 0))
		if err != nil {
			t.Fatal(err)
		}
		added = append(added, seat)
	}
	if err := DeleteSeat(doc, h, added[0]); err != nil {
		t.Fatal(err)
	}
	s4, _ := AddSeat(doc, h, none, geom.Pt(200, 0))
	if s4.Label != "S4" {
		t.Errorf("label after delete = %q, want S4", s4.Label)
	}

	_ = h.Undo()
	s5, _ := AddSeat(doc, h, none, geom.Pt(240, 0))
	if s5.Label != "S5" {
		t.Errorf("label after undo = %q, want S5", s5.Label)
	}

	doc.Seats.Append(&model.Seat{Label: "S6"})
	if s, _ := AddSeat(doc, h, none, geom.Pt(280, 0)); s.Label != "S7" {
		t.Errorf("label next to an existing S6 = %q, want S7", s.Label)
	}

	seen := map[string]int{}
	for _, s := range doc.Seats.Items() {
		seen[s.Label]++
		if seen[s.Label] > 1 {
			t.Errorf("label %q used by %d seats", s.Label, seen[s.Label])
		}
	}
}

func TestRowPositions(t *testing.T) {
	tests := []struct {
		name    string
		a, b    geom.Point
		spacing float64
		want    []geom.Point
	}{
		{"same point", geom.Pt(10, 10), geom.Pt(10, 10), 40, []geom.Point{geom.Pt(10, 10)}},
		{"shorter than spacing", geom.Pt(0, 0), geom.Pt(10, 0), 40, []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0)}},
		{"exact multiple", geom.Pt(0, 0), geom.Pt(120, 0), 40, []geom.Point{geom.Pt(0, 0), geom.Pt(40, 0), geom.Pt(80, 0), geom.Pt(120, 0)}},
		{"spread evenly", geom.Pt(0, 0), geom.Pt(0, 100), 40, []geom.Point{geom.Pt(0, 0), geom.Pt(0, 50), geom.Pt(0, 100)}},
		{"zero spacing uses default", geom.Pt(0, 0), geom.Pt(80, 0), 0, []geom.Point{geom.Pt(0, 0), geom.Pt(40, 0), geom.Pt(80, 0)}},
		{"negative spacing uses default", geom.Pt(0, 0), geom.Pt(80, 0), -5, []geom.Point{geom.Pt(0, 0), geom.Pt(40, 0), geom.Pt(80, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RowPositions(tt.a, tt.b, tt.spacing)
			if len(got) != len(tt.want) {
				t.Fatalf("RowPositions() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if !closeTo(got[i], tt.want[i]) {
					t.Errorf("RowPositions()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAddSeatRow(t *testing.T) {
	doc, h, _, _ := fixture(t)
	grid := snap.Snapper{Enabled: true, GridSize: 40}

	row, err := AddSeatRow(doc, h, grid, geom.Pt(3, 38), geom.Pt(118, 41), 40)
	if err != nil {
		t.Fatal(err)
	}
	if len(row) != 4 || h.UndoLen() != 1 {
		t.Fatalf("row of %d seats in %d transactions", len(row), h.UndoLen())
	}
	for i, seat := range row {
		want := geom.Pt(float64(i*40), 40)
		if seat.Row != "A" || seat.Label != "A"+string(rune('1'+i)) || seat.Center() != want {
			t.Errorf("seat %d = %q row %q at %v, want A%d at %v", i, seat.Label, seat.Row, seat.Center(), i+1, want)
		}
	}

	next, _ := AddSeatRow(doc, h, grid, geom.Pt(0, 80), geom.Pt(0, 80), 0)
	if len(next) != 1 || next[0].Row != "B" || next[0].Label != "B1" {
		t.Errorf("second row = %+v", next[0])
	}

	_ = h.Undo()
	_ = h.Undo()
	if doc.Seats.Len() != 0 {
		t.Errorf("undo rows left %d seats", doc.Seats.Len())
	}
	_ = h.Redo()
	if doc.Seats.Len() != 4 {
		t.Errorf("redo row: %d seats", doc.Seats.Len())
	}
}

func TestDeleteSeatRestoresIndex(t *testing.T) {
	doc, h, _, _ := fixture(t)
	a, _ := AddSeat(doc, h, snap.Snapper{}, geom.Pt(10, 10))
	b, _ := AddSeat(doc, h, snap.Snapper{}, geom.Pt(50, 10))
	_, _ = AddSeat(doc, h, snap.Snapper{}, geom.Pt(90, 10))
	_ = a

	_ = DeleteSeat(doc, h, b)
	_ = h.Undo()
	if doc.Seats.IndexOf(b) != 1 {
		t.Errorf("IndexOf() = %d, want 1", doc.Seats.IndexOf(b))
	}
}

func TestSelection(t *testing.T) {
	doc, _, a, _ := fixture(t)
	b := model.NewRoom("B", a.Points)
	doc.Rooms.Append(b)
	sel := NewSelection(doc)

	sel.SelectRoom(a)
	if !a.IsSelected || sel.Room() != a {
		t.Fatal("SelectRoom did not select")
	}
	sel.ToggleRoom(b)
	if !b.IsSelected || sel.Room() != nil || len(sel.Rooms()) != 2 {
		t.Errorf("toggle add: rooms=%d", len(sel.Rooms()))
	}
	sel.ToggleRoom(a)
	if a.IsSelected || sel.Room() != b {
		t.Error("toggle remove failed")
	}
	sel.SelectRoom(a)
	if b.IsSelected {
		t.Error("SelectRoom should deselect others")
	}

	doc.Rooms.Remove(a)
	sel.Prune()
	if !sel.Empty() || a.IsSelected {
		t.Error("Prune should drop removed rooms")
	}
}

func TestClipboardPaste(t *testing.T) {
	doc, h, room, _ := fixture(t)
	seat, _ := AddSeat(doc, h, snap.Snapper{}, geom.Pt(58, 58))
	undoBefore := h.UndoLen()

	var cb Clipboard
	cb.Copy([]*model.Room{room}, []*model.Seat{seat})
	rooms, seats, err := cb.Paste(doc, h)
	if err != nil {
		t.Fatal(err)
	}
	if len(rooms) != 1 || len(seats) != 1 {
		t.Fatalf("pasted %d rooms, %d seats", len(rooms), len(seats))
	}
	r := rooms[0]
	if r.ID == room.ID || r.Name != "A Copy" || r.Points[0] != geom.Pt(10, 10) {
		t.Errorf("pasted room = %+v", r)
	}
	if seats[0].ID == seat.ID || seats[0].X != 60 || seats[0].Y != 60 {
		t.Errorf("pasted seat = %+v", seats[0])
	}
	if h.UndoLen() != undoBefore+1 {
		t.Errorf("paste should be one transaction, got %d", h.UndoLen()-undoBefore)
	}

	_ = h.Undo()
	if doc.Rooms.Len() != 1 || doc.Seats.Len() != 1 {
		t.Errorf("undo paste: rooms=%d seats=%d", doc.Rooms.Len(), doc.Seats.Len())
	}

	var empty Clipboard
	if r, s, err := empty.Paste(doc, h); r != nil || s != nil || err != nil {
		t.Error("pasting an empty clipboard should do nothing")
	}
}
