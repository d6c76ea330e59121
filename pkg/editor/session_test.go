package editor

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/svgmapper/pkg/errors"
	"github.com/matzehuels/svgmapper/pkg/geom"
	"github.com/matzehuels/svgmapper/pkg/model"
	"github.com/matzehuels/svgmapper/pkg/transform"
)

func newSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	return New(append([]Option{WithLogger(log.New(io.Discard))}, opts...)...)
}

func click(t *testing.T, s *Session, x, y float64, clicks int) Outcome {
	t.Helper()
	out, err := s.Click(geom.Pt(x, y), clicks)
	if err != nil {
		t.Fatalf("Click(%v,%v,%d) = %v", x, y, clicks, err)
	}
	return out
}

func drawSquare(t *testing.T, s *Session) *model.Room {
	t.Helper()
	s.SetTool(PolygonTool)
	click(t, s, 0, 0, 1)
	click(t, s, 200, 0, 1)
	click(t, s, 200, 200, 1)
	click(t, s, 0, 200, 1)
	click(t, s, 3, 3, 1)
	if out := click(t, s, 3, 3, 2); out.Kind != NeedsName {
		t.Fatalf("double click on start = %v, want needs-name", out.Kind)
	}
	room, err := s.ClosePolygon("Lobby")
	if err != nil || room == nil {
		t.Fatalf("ClosePolygon() = %v, %v", room, err)
	}
	return room
}

func TestDrawPolygon(t *testing.T) {
	s := newSession(t)
	room := drawSquare(t, s)

	want := []geom.Point{geom.Pt(0, 0), geom.Pt(200, 0), geom.Pt(200, 200), geom.Pt(0, 200)}
	if len(room.Points) != len(want) {
		t.Fatalf("room points = %v, want %v", room.Points, want)
	}
	for i := range want {
		if room.Points[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, room.Points[i], want[i])
		}
	}
	if s.Doc.Rooms.Len() != 1 || s.Draft.Drawing() {
		t.Errorf("rooms=%d drawing=%v", s.Doc.Rooms.Len(), s.Draft.Drawing())
	}
	if s.Selection.Room() != room {
		t.Error("closed room is not selected")
	}

	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if s.Doc.Rooms.Len() != 0 {
		t.Error("undo did not remove the room")
	}
	if !s.Selection.Empty() {
		t.Error("selection still holds the removed room")
	}
	if err := s.Redo(); err != nil {
		t.Fatal(err)
	}
	if s.Doc.Rooms.Len() != 1 {
		t.Error("redo did not restore the room")
	}
}

func TestDoubleClickAwayFromStartDoesNotClose(t *testing.T) {
	s := newSession(t)
	s.SetTool(PolygonTool)
	click(t, s, 0, 0, 1)
	click(t, s, 200, 0, 1)
	if out := click(t, s, 200, 0, 2); out.Kind != Nothing {
		t.Errorf("double click away from start = %v", out.Kind)
	}
	if s.Draft.Count() != 2 {
		t.Errorf("draft points = %d, want 2", s.Draft.Count())
	}
}

func TestSwitchingToolCancelsDraft(t *testing.T) {
	s := newSession(t)
	s.SetTool(PolygonTool)
	click(t, s, 0, 0, 1)
	click(t, s, 80, 0, 1)
	s.SetTool(SelectTool)
	if s.Draft.Drawing() || s.Draft.Marker() != nil {
		t.Error("draft survived tool switch")
	}
	if s.History.CanUndo() {
		t.Error("start marker left on the undo stack")
	}
}

func TestSeatTool(t *testing.T) {
	s := newSession(t)
	s.SetTool(SeatTool)
	out := click(t, s, 105, 95, 1)
	if out.Kind != SeatAdded || out.Seat == nil {
		t.Fatalf("seat click = %+v", out)
	}
	if out.Seat.X != 112 || out.Seat.Y != 72 {
		t.Errorf("seat at %v,%v, want 112,72", out.Seat.X, out.Seat.Y)
	}

	s.SetSnap(false)
	out = click(t, s, 105, 95, 1)
	if out.Seat.X != 97 || out.Seat.Y != 87 {
		t.Errorf("unsnapped seat at %v,%v, want 97,87", out.Seat.X, out.Seat.Y)
	}
}

func TestRowTool(t *testing.T) {
	s := newSession(t)
	s.SetTool(RowTool)

	out := click(t, s, 3, 42, 1)
	if out.Kind != RowStarted || out.Pixel != geom.Pt(0, 40) {
		t.Fatalf("first click = %+v", out)
	}
	if p, ok := s.RowStart(); !ok || p != geom.Pt(0, 40) {
		t.Errorf("RowStart() = %v, %v", p, ok)
	}
	out = click(t, s, 118, 38, 1)
	if out.Kind != RowAdded || len(out.Row) != 4 {
		t.Fatalf("second click = %v with %d seats", out.Kind, len(out.Row))
	}
	if out.Row[0].Label != "A1" || out.Row[3].Label != "A4" || out.Row[3].Center() != geom.Pt(120, 40) {
		t.Errorf("row = %s..%s ending at %v", out.Row[0].Label, out.Row[3].Label, out.Row[3].Center())
	}
	if _, ok := s.RowStart(); ok {
		t.Error("row start kept after placing the row")
	}
	if s.History.UndoLen() != 1 {
		t.Errorf("undo depth = %d, want one transaction", s.History.UndoLen())
	}

	click(t, s, 0, 80, 1)
	s.SetTool(SelectTool)
	if _, ok := s.RowStart(); ok {
		t.Error("switching tools kept the row start")
	}
}

func TestSetSelectedStyle(t *testing.T) {
	s := newSession(t)
	red := model.RoomStyle{Fill: "red"}
	if err := s.SetSelectedStyle(red); !errors.Is(err, errors.ErrCodeInvalidState) {
		t.Errorf("style without selection = %v", err)
	}
	room := drawSquare(t, s)
	if err := s.SetSelectedStyle(red); err != nil {
		t.Fatal(err)
	}
	if room.Style.Fill != "red" {
		t.Errorf("Style = %+v", room.Style)
	}
	if err := s.SetSelectedStyle(model.RoomStyle{Stroke: "#zz0000"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad color = %v", err)
	}
	_ = s.Undo()
	if !room.Style.IsZero() {
		t.Errorf("undo style = %+v", room.Style)
	}
}

func TestSelectAndDragVertex(t *testing.T) {
	s := newSession(t)
	room := drawSquare(t, s)
	s.SetTool(SelectTool)
	s.Selection.Clear()

	if out := click(t, s, 100, 100, 1); out.Kind != RoomSelected || out.Room != room {
		t.Fatalf("click inside = %+v", out)
	}
	out := click(t, s, 198, 2, 1)
	if out.Kind != VertexSelected || out.Vertex != 1 {
		t.Fatalf("click on vertex = %+v", out)
	}

	depth := s.History.UndoLen()
	for _, x := range []float64{210, 230, 251} {
		if _, err := s.DragTo(geom.Pt(x, 13)); err != nil {
			t.Fatal(err)
		}
	}
	if s.History.UndoLen() != depth {
		t.Error("drag frames were recorded")
	}
	if err := s.Release(); err != nil {
		t.Fatal(err)
	}
	if s.History.UndoLen() != depth+1 {
		t.Errorf("undo depth = %d, want %d", s.History.UndoLen(), depth+1)
	}
	if room.Points[1] != geom.Pt(251, 13) {
		t.Errorf("vertex = %v, want unsnapped 251,13", room.Points[1])
	}

	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if room.Points[1] != geom.Pt(200, 0) {
		t.Errorf("after undo vertex = %v, want 200,0", room.Points[1])
	}
}

func TestInsertAndDeleteVertex(t *testing.T) {
	s := newSession(t)
	s.SetSnap(false)
	s.SetTool(PolygonTool)
	click(t, s, 0, 0, 1)
	click(t, s, 100, 0, 1)
	click(t, s, 0, 100, 1)
	click(t, s, 1, 1, 1)
	click(t, s, 1, 1, 2)
	room, err := s.ClosePolygon("")
	if err != nil {
		t.Fatal(err)
	}
	if room.Name != model.DefaultRoomName || len(room.Points) != 3 {
		t.Fatalf("room = %q %v", room.Name, room.Points)
	}

	s.SetTool(SelectTool)
	if out := click(t, s, 50, 1, 2); out.Kind != VertexInserted || out.Vertex != 1 {
		t.Fatalf("double click on edge = %+v", out)
	}
	if len(room.Points) != 4 {
		t.Fatalf("points after insert = %v", room.Points)
	}

	click(t, s, 50, 1, 1)
	if err := s.DeleteSelection(); err != nil {
		t.Fatal(err)
	}
	if len(room.Points) != 3 {
		t.Fatalf("points after delete = %v", room.Points)
	}

	click(t, s, 0, 0, 1)
	err = s.DeleteSelection()
	if !errors.Is(err, errors.ErrCodeInvalidGeometry) {
		t.Errorf("deleting from a triangle = %v, want INVALID_GEOMETRY", err)
	}
	if len(room.Points) != 3 {
		t.Error("refused delete changed the room")
	}
}

func TestDeleteSelectionRemovesRoomsAndSeats(t *testing.T) {
	s := newSession(t)
	room := drawSquare(t, s)
	s.SetTool(SeatTool)
	seat := click(t, s, 400, 400, 1).Seat

	s.Selection.SelectRoom(room)
	s.Selection.ToggleSeat(seat)
	if err := s.DeleteSelection(); err != nil {
		t.Fatal(err)
	}
	if s.Doc.Rooms.Len() != 0 || s.Doc.Seats.Len() != 0 {
		t.Errorf("rooms=%d seats=%d after delete", s.Doc.Rooms.Len(), s.Doc.Seats.Len())
	}
	_ = s.Undo()
	_ = s.Undo()
	if s.Doc.Rooms.Len() != 1 || s.Doc.Seats.Len() != 1 {
		t.Errorf("rooms=%d seats=%d after undo", s.Doc.Rooms.Len(), s.Doc.Seats.Len())
	}
}

func TestMoveResizeRename(t *testing.T) {
	s := newSession(t)
	room := drawSquare(t, s)

	if err := s.MoveSelection(10, 20); err != nil {
		t.Fatal(err)
	}
	if room.Points[0] != geom.Pt(10, 20) {
		t.Errorf("moved origin = %v", room.Points[0])
	}
	if err := s.ResizeSelected(geom.R(0, 0, 100, 50)); err != nil {
		t.Fatal(err)
	}
	if room.Points[2] != geom.Pt(100, 50) {
		t.Errorf("resized corner = %v", room.Points[2])
	}
	if err := s.RenameSelected("Hall"); err != nil || room.Name != "Hall" {
		t.Errorf("rename: %v %q", err, room.Name)
	}
	if err := s.SetSelectedFieldNumber("F-1"); err != nil || room.FieldNumber != "F-1" {
		t.Errorf("field number: %v %q", err, room.FieldNumber)
	}

	s.Selection.Clear()
	if err := s.RenameSelected("x"); !errors.Is(err, errors.ErrCodeInvalidState) {
		t.Errorf("rename without selection = %v", err)
	}
}

func TestCopyPaste(t *testing.T) {
	s := newSession(t)
	room := drawSquare(t, s)
	s.Copy()
	if err := s.Paste(); err != nil {
		t.Fatal(err)
	}
	if s.Doc.Rooms.Len() != 2 {
		t.Fatalf("rooms = %d after paste", s.Doc.Rooms.Len())
	}
	pasted := s.Selection.Room()
	if pasted == nil || pasted == room || pasted.Points[0] != geom.Pt(10, 10) {
		t.Errorf("pasted room = %+v", pasted)
	}
	if err := s.Duplicate(); err != nil {
		t.Fatal(err)
	}
	if s.Doc.Rooms.Len() != 3 {
		t.Errorf("rooms = %d after duplicate", s.Doc.Rooms.Len())
	}
}

func TestCoordinateMapping(t *testing.T) {
	s := newSession(t)
	s.Doc.SetBackground(model.Background{Path: "plan.png", Width: 800, Height: 600})
	s.SetControlSize(geom.Sz(1024, 600))

	if got := s.Transform(); got != (transform.Result{ScaleX: 1, ScaleY: 1, OffsetX: 112}) {
		t.Errorf("Transform() = %+v", got)
	}
	if got := s.ScreenToPixel(geom.Pt(112, 0)); got != geom.Pt(0, 0) {
		t.Errorf("ScreenToPixel(112,0) = %v", got)
	}
	if got := s.ScreenToPixel(geom.Pt(5000, 5000)); got != geom.Pt(799, 599) {
		t.Errorf("ScreenToPixel clamps to %v, want 799,599", got)
	}
	if got := s.PixelToScreen(geom.Pt(400, 300)); got != geom.Pt(512, 300) {
		t.Errorf("PixelToScreen(400,300) = %v", got)
	}

	s.ZoomAt(2, geom.Pt(0, 0))
	if got := s.ScreenToPixel(geom.Pt(224, 100)); got != geom.Pt(0, 50) {
		t.Errorf("zoomed ScreenToPixel = %v, want 0,50", got)
	}
	if got := s.pixelsPerScreenUnit(); got != 0.5 {
		t.Errorf("pixelsPerScreenUnit = %v, want 0.5", got)
	}
	s.ResetView()
	s.Pan(10, 0)
	if got := s.ScreenToPixel(geom.Pt(122, 0)); got != geom.Pt(0, 0) {
		t.Errorf("panned ScreenToPixel = %v", got)
	}
}

func TestVertexHitRadiusUnderFill(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Stretch = transform.Fill
	s := newSession(t, WithConfig(cfg))
	s.Doc.SetBackground(model.Background{Width: 1000, Height: 1000})
	s.SetControlSize(geom.Sz(1000, 100))

	if got := s.pixelsPerScreenUnit(); got != 10 {
		t.Fatalf("pixelsPerScreenUnit() = %v, want 10 from the squeezed axis", got)
	}

	room := model.NewRoom("Tall", []geom.Point{geom.Pt(100, 100), geom.Pt(500, 100), geom.Pt(500, 500)})
	s.Doc.Rooms.Append(room)
	s.Selection.SelectRoom(room)

	// 6 window units below vertex 2 is 60 pixels on the squeezed axis.
	out := click(t, s, 500, 56, 1)
	if out.Kind != VertexSelected || out.Vertex != 2 {
		t.Errorf("click near vertex = %v (vertex %d), want vertex-selected 2", out.Kind, out.Vertex)
	}
}

func TestPixelGrid(t *testing.T) {
	s := newSession(t)
	lines := s.PixelGrid(geom.Sz(100, 80))
	if len(lines.Vertical) != 4 || lines.Vertical[3] != 120 {
		t.Errorf("vertical = %v", lines.Vertical)
	}
	if len(lines.Horizontal) != 3 || lines.Horizontal[2] != 80 {
		t.Errorf("horizontal = %v", lines.Horizontal)
	}
}

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "plan.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportBackground(t *testing.T) {
	s := newSession(t)
	room := drawSquare(t, s)

	path := writePNG(t, 400, 400)
	if err := s.ImportBackground(context.Background(), path); err != nil {
		t.Fatal(err)
	}
	if s.Doc.Background.Width != 400 || s.Doc.Background.Path != path {
		t.Errorf("background = %+v", s.Doc.Background)
	}
	if len(room.NormalizedPoints) != 4 || room.NormalizedPoints[2] != geom.Pt(0.5, 0.5) {
		t.Errorf("normalized = %v", room.NormalizedPoints)
	}

	err := s.ImportBackground(context.Background(), filepath.Join(t.TempDir(), "gone.png"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing background = %v", err)
	}
	if s.Doc.Background.Loaded() {
		t.Error("failed import kept the old background")
	}
	if s.Doc.Rooms.Len() != 1 {
		t.Error("failed import dropped rooms")
	}
}

func TestSessionExport(t *testing.T) {
	s := newSession(t, WithConfig(Config{DefaultWidth: 640, DefaultHeight: 480, EmbedBackground: true}))
	drawSquare(t, s)

	out := s.ExportSVG(context.Background())
	if !strings.Contains(out, `viewBox="0 0 640 480"`) || !strings.Contains(out, `data-label="Lobby"`) {
		t.Errorf("export:\n%s", out)
	}

	dir := t.TempDir()
	if err := s.ExportToFile(context.Background(), filepath.Join(dir, "plan.svg")); err != nil {
		t.Fatal(err)
	}
	if err := s.ExportPNGToFile(context.Background(), filepath.Join(dir, "plan.png"), 0.25); err != nil {
		t.Fatal(err)
	}
}

func TestConfigNormalize(t *testing.T) {
	c := Config{GridSize: 1, MaxHistory: -3}.Normalize()
	if c.GridSize != 4 || c.MaxHistory != 0 || c.CloseThreshold != 12 || c.DefaultWidth != 2000 || c.DefaultHeight != 1400 {
		t.Errorf("Normalize() = %+v", c)
	}
	if d := DefaultConfig(); !d.Snap || !d.EmbedBackground || d.GridSize != 40 || d.Stretch != transform.Uniform {
		t.Errorf("DefaultConfig() = %+v", d)
	}

	s := newSession(t)
	s.SetGridSize(2)
	if s.Config().GridSize != 4 {
		t.Errorf("SetGridSize(2) = %v, want clamped 4", s.Config().GridSize)
	}
}

func TestParseTool(t *testing.T) {
	for _, tool := range []Tool{SelectTool, PolygonTool, SeatTool, RowTool} {
		got, err := ParseTool(tool.String())
		if err != nil || got != tool {
			t.Errorf("ParseTool(%q) = %v, %v", tool, got, err)
		}
	}
	if _, err := ParseTool("lasso"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ParseTool(lasso) = %v", err)
	}
}
