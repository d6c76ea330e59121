package editor

import (
	"github.com/matzehuels/svgmapper/pkg/draft"
	"github.com/matzehuels/svgmapper/pkg/edit"
	"github.com/matzehuels/svgmapper/pkg/errors"
	"github.com/matzehuels/svgmapper/pkg/geom"
	"github.com/matzehuels/svgmapper/pkg/model"
)

// OutcomeKind says what a click did.
type OutcomeKind int

const (
	Nothing OutcomeKind = iota
	PointAdded
	NeedsName // closing gesture; call ClosePolygon with a name
	SeatAdded
	RoomSelected
	SeatSelected
	VertexSelected
	VertexInserted
	SelectionCleared
	RowStarted
	RowAdded
)

var outcomeNames = [...]string{
	"nothing", "point-added", "needs-name", "seat-added", "room-selected",
	"seat-selected", "vertex-selected", "vertex-inserted", "selection-cleared",
	"row-started", "row-added",
}

func (k OutcomeKind) String() string {
	if int(k) < len(outcomeNames) {
		return outcomeNames[k]
	}
	return "unknown"
}

// Outcome describes the effect of one click.
type Outcome struct {
	Kind   OutcomeKind
	Pixel  geom.Point // click position in image pixels, after snapping where applied
	Room   *model.Room
	Seat   *model.Seat
	Row    []*model.Seat
	Vertex int
}

// Click handles a pointer press at a window point. clicks is the click
// count of the gesture: 1 for a single click, 2 for the second press of a
// double click.
func (s *Session) Click(screen geom.Point, clicks int) (Outcome, error) {
	p := s.ScreenToPixel(screen)
	switch s.tool {
	case PolygonTool:
		return s.clickPolygon(p, clicks)
	case SeatTool:
		if clicks > 1 {
			return Outcome{Kind: Nothing, Pixel: p}, nil
		}
		seat, err := edit.AddSeat(s.Doc, s.History, s.cfg.Snapper(), p)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Kind: SeatAdded, Pixel: seat.Center(), Seat: seat}, nil
	case RowTool:
		if clicks > 1 {
			return Outcome{Kind: Nothing, Pixel: p}, nil
		}
		return s.clickRow(p)
	default:
		return s.clickSelect(p, clicks)
	}
}

func (s *Session) clickPolygon(p geom.Point, clicks int) (Outcome, error) {
	if clicks > 1 {
		// The first press of the double click added a point on top of the
		// start marker; it is not part of the outline.
		if s.Draft.IsClosingGesture(p) {
			if pts := s.Draft.Points(); len(pts) > 1 && draft.DetectClosingGesture(pts[len(pts)-1], pts[0], s.Draft.Threshold()) {
				_ = s.Draft.RevokeLastPoint()
			}
			return Outcome{Kind: NeedsName, Pixel: p}, nil
		}
		return Outcome{Kind: Nothing, Pixel: p}, nil
	}
	if !s.Draft.Drawing() {
		if err := s.Draft.Start(); err != nil {
			return Outcome{}, err
		}
	}
	stored, err := s.Draft.AddPoint(p)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Kind: PointAdded, Pixel: stored}, nil
}

// clickRow starts a seat row on the first click and places it on the
// second.
func (s *Session) clickRow(p geom.Point) (Outcome, error) {
	if s.rowStart == nil {
		start := s.cfg.Snapper().Apply(p)
		s.rowStart = &start
		return Outcome{Kind: RowStarted, Pixel: start}, nil
	}
	start := *s.rowStart
	s.rowStart = nil
	row, err := edit.AddSeatRow(s.Doc, s.History, s.cfg.Snapper(), start, p, s.cfg.RowSpacing)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Kind: RowAdded, Pixel: row[len(row)-1].Center(), Row: row}, nil
}

// RowStart returns the start of a row begun with the row tool.
func (s *Session) RowStart() (geom.Point, bool) {
	if s.rowStart == nil {
		return geom.Point{}, false
	}
	return *s.rowStart, true
}

// CancelRow drops a started row.
func (s *Session) CancelRow() { s.rowStart = nil }

// AddSeatRow places a row of seats between two window points with the
// configured spacing, or spacing when it is positive.
func (s *Session) AddSeatRow(from, to geom.Point, spacing float64) ([]*model.Seat, error) {
	if spacing <= 0 {
		spacing = s.cfg.RowSpacing
	}
	return edit.AddSeatRow(s.Doc, s.History, s.cfg.Snapper(), s.ScreenToPixel(from), s.ScreenToPixel(to), spacing)
}

func (s *Session) clickSelect(p geom.Point, clicks int) (Outcome, error) {
	radius := edit.DefaultHandleRadius * s.pixelsPerScreenUnit()

	if room := s.Selection.Room(); room != nil && room.Path == nil {
		if i, ok := edit.HitTestVertex(room, p, radius); ok {
			if err := s.Vertex.SelectVertex(room, i); err != nil {
				return Outcome{}, err
			}
			return Outcome{Kind: VertexSelected, Pixel: p, Room: room, Vertex: i}, nil
		}
		if clicks > 1 {
			if _, ok := edit.HitTestEdge(room, p, radius); ok {
				i, err := s.Vertex.InsertVertex(room, p)
				if err != nil {
					return Outcome{}, err
				}
				return Outcome{Kind: VertexInserted, Pixel: room.Points[i], Room: room, Vertex: i}, nil
			}
		}
	}
	s.Vertex.Deselect()

	if seat := edit.HitTestSeat(s.Doc, p); seat != nil {
		s.Selection.SelectSeat(seat)
		return Outcome{Kind: SeatSelected, Pixel: p, Seat: seat}, nil
	}
	if room := edit.HitTestRoom(s.Doc, p); room != nil {
		s.Selection.SelectRoom(room)
		return Outcome{Kind: RoomSelected, Pixel: p, Room: room}, nil
	}
	if s.Selection.Empty() {
		return Outcome{Kind: Nothing, Pixel: p}, nil
	}
	s.Selection.Clear()
	return Outcome{Kind: SelectionCleared, Pixel: p}, nil
}

// DragTo moves the active vertex to a window point as a live preview.
func (s *Session) DragTo(screen geom.Point) (geom.Point, error) {
	room, i, ok := s.Vertex.Active()
	if !ok {
		return geom.Point{}, errors.New(errors.ErrCodeInvalidState, "drag: no vertex selected")
	}
	return s.Vertex.DragVertex(room, i, s.ScreenToPixel(screen))
}

// Release ends a vertex drag, committing the move as one transaction.
func (s *Session) Release() error {
	room, i, ok := s.Vertex.Active()
	if !ok {
		return nil
	}
	return s.Vertex.CommitVertexDrag(room, i, s.Vertex.Origin())
}

// ClosePolygon closes the draft as a room named name. Drafts of fewer than
// three points are discarded and a nil room is returned.
func (s *Session) ClosePolygon(name string) (*model.Room, error) {
	room, err := s.Draft.Close(name)
	if err != nil || room == nil {
		return nil, err
	}
	s.Selection.SelectRoom(room)
	return room, nil
}

// CancelPolygon abandons the draft.
func (s *Session) CancelPolygon() error { return s.Draft.Cancel() }

// RevokePoint removes the last draft point.
func (s *Session) RevokePoint() error { return s.Draft.RevokeLastPoint() }

// DeleteSelection deletes the active vertex when one is selected,
// otherwise the selected rooms and seats.
func (s *Session) DeleteSelection() error {
	if room, i, ok := s.Vertex.Active(); ok {
		return s.Vertex.DeleteVertex(room, i)
	}
	for _, room := range s.Selection.Rooms() {
		if err := edit.DeleteRoom(s.Doc, s.History, room); err != nil {
			return err
		}
	}
	for _, seat := range s.Selection.Seats() {
		if err := edit.DeleteSeat(s.Doc, s.History, seat); err != nil {
			return err
		}
	}
	s.Selection.Clear()
	return nil
}

// MoveSelection translates the selected rooms and seats by (dx, dy) pixels.
func (s *Session) MoveSelection(dx, dy float64) error {
	for _, room := range s.Selection.Rooms() {
		if err := s.Vertex.MoveRoom(room, dx, dy); err != nil {
			return err
		}
	}
	if seats := s.Selection.Seats(); len(seats) > 0 {
		return edit.MoveSeats(s.Doc, s.History, seats, dx, dy)
	}
	return nil
}

// ResizeSelected maps the selected room's bounding box onto to.
func (s *Session) ResizeSelected(to geom.Rect) error {
	room := s.Selection.Room()
	if room == nil {
		return errors.New(errors.ErrCodeInvalidState, "resize: select exactly one room")
	}
	from := geom.Bounds(room.PixelPoints(s.Doc.ImageSize()))
	return s.Vertex.ApplyBoundingBoxTransform(room, from, to)
}

// RenameSelected renames the selected room.
func (s *Session) RenameSelected(name string) error {
	room := s.Selection.Room()
	if room == nil {
		return errors.New(errors.ErrCodeInvalidState, "rename: select exactly one room")
	}
	return edit.RenameRoom(s.Doc, s.History, room, name)
}

// SetSelectedFieldNumber sets the exported label of the selected room.
func (s *Session) SetSelectedFieldNumber(field string) error {
	room := s.Selection.Room()
	if room == nil {
		return errors.New(errors.ErrCodeInvalidState, "field number: select exactly one room")
	}
	return edit.SetFieldNumber(s.Doc, s.History, room, field)
}

// SetSelectedStyle replaces the export style of the selected room.
func (s *Session) SetSelectedStyle(style model.RoomStyle) error {
	room := s.Selection.Room()
	if room == nil {
		return errors.New(errors.ErrCodeInvalidState, "style: select exactly one room")
	}
	return edit.SetRoomStyle(s.Doc, s.History, room, style)
}

// Copy puts the selection on the clipboard.
func (s *Session) Copy() { s.Clipboard.Copy(s.Selection.Rooms(), s.Selection.Seats()) }

// Paste inserts the clipboard contents and selects them.
func (s *Session) Paste() error {
	rooms, seats, err := s.Clipboard.Paste(s.Doc, s.History)
	if err != nil {
		return err
	}
	s.selectAll(rooms, seats)
	return nil
}

// Duplicate copies and pastes the selection in one step.
func (s *Session) Duplicate() error {
	rooms, seats, err := s.Clipboard.Duplicate(s.Doc, s.History, s.Selection.Rooms(), s.Selection.Seats())
	if err != nil {
		return err
	}
	s.selectAll(rooms, seats)
	return nil
}

func (s *Session) selectAll(rooms []*model.Room, seats []*model.Seat) {
	s.Selection.Clear()
	for _, r := range rooms {
		s.Selection.ToggleRoom(r)
	}
	for _, st := range seats {
		s.Selection.ToggleSeat(st)
	}
}

// InsertVertex inserts a vertex into the selected room on the edge nearest
// to a window point.
func (s *Session) InsertVertex(screen geom.Point) (int, error) {
	room := s.Selection.Room()
	if room == nil {
		return -1, errors.New(errors.ErrCodeInvalidState, "insert vertex: select exactly one room")
	}
	return s.Vertex.InsertVertex(room, s.ScreenToPixel(screen))
}
