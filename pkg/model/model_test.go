package model

import (
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/svgmapper/pkg/geom"
)

func square() []geom.Point {
	return []geom.Point{geom.Pt(100, 100), geom.Pt(300, 100), geom.Pt(300, 300), geom.Pt(100, 300)}
}

func near(a, b geom.Point) bool {
	return math.Abs(a.X-b.X) < 1e-3 && math.Abs(a.Y-b.Y) < 1e-3
}

func TestRoomSyncNormalized(t *testing.T) {
	r := NewRoom("Lobby", square())
	r.SyncNormalized(geom.Sz(800, 600))

	want := []geom.Point{geom.Pt(0.125, 0.1667), geom.Pt(0.375, 0.1667), geom.Pt(0.375, 0.5), geom.Pt(0.125, 0.5)}
	if len(r.NormalizedPoints) != len(want) {
		t.Fatalf("NormalizedPoints len = %d, want %d", len(r.NormalizedPoints), len(want))
	}
	for i := range want {
		if !near(r.NormalizedPoints[i], want[i]) {
			t.Errorf("NormalizedPoints[%d] = %v, want %v", i, r.NormalizedPoints[i], want[i])
		}
	}

	r.SyncNormalized(geom.Size{})
	if r.NormalizedPoints != nil {
		t.Errorf("SyncNormalized(no image) = %v, want nil", r.NormalizedPoints)
	}
}

func TestRoomRefreshPoints(t *testing.T) {
	r := NewRoom("A", nil)
	r.NormalizedPoints = []geom.Point{geom.Pt(0.5, 0.5), geom.Pt(1, 0), geom.Pt(0, 1)}
	if !r.Stale() {
		t.Fatal("room without pixel points should be stale")
	}
	if r.RefreshPoints(geom.Size{}) {
		t.Error("RefreshPoints without image should not change anything")
	}
	if !r.RefreshPoints(geom.Sz(200, 100)) {
		t.Fatal("RefreshPoints should regenerate points")
	}
	want := []geom.Point{geom.Pt(100, 50), geom.Pt(200, 0), geom.Pt(0, 100)}
	if !reflect.DeepEqual(r.Points, want) {
		t.Errorf("Points = %v, want %v", r.Points, want)
	}
}

func TestRoomPixelPointsPrefersNormalized(t *testing.T) {
	r := NewRoom("A", []geom.Point{geom.Pt(1, 1), geom.Pt(2, 2), geom.Pt(3, 3)})
	r.NormalizedPoints = []geom.Point{geom.Pt(0.1, 0.1), geom.Pt(0.2, 0.2), geom.Pt(0.3, 0.3)}

	got := r.PixelPoints(geom.Sz(100, 100))
	if !near(got[2], geom.Pt(30, 30)) {
		t.Errorf("PixelPoints()[2] = %v, want (30,30)", got[2])
	}
	if got := r.PixelPoints(geom.Size{}); got[2] != geom.Pt(3, 3) {
		t.Errorf("PixelPoints(no image)[2] = %v, want raw (3,3)", got[2])
	}
}

func TestRoomVertexEditsKeepNormalizedInStep(t *testing.T) {
	img := geom.Sz(400, 400)
	r := NewRoom("A", square())
	r.SyncNormalized(img)

	r.InsertVertex(1, geom.Pt(200, 100), img)
	r.SetVertex(0, geom.Pt(120, 80), img)
	removed := r.RemoveVertex(3, img)

	if removed != geom.Pt(300, 300) {
		t.Errorf("RemoveVertex returned %v, want (300,300)", removed)
	}
	if len(r.Points) != len(r.NormalizedPoints) {
		t.Fatalf("points=%d normalized=%d", len(r.Points), len(r.NormalizedPoints))
	}
	for i, p := range r.Points {
		n := r.NormalizedPoints[i]
		if !near(geom.Pt(n.X*400, n.Y*400), p) {
			t.Errorf("vertex %d: normalized %v does not match %v", i, n, p)
		}
	}
}

func TestRoomSnapshotRestore(t *testing.T) {
	r := NewRoom("A", square())
	size := geom.Sz(800, 600)
	r.SyncNormalized(size)
	s := r.Snapshot(size)

	r.SetPoints([]geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(0, 1)}, geom.Size{})
	r.Restore(s, size)

	if !reflect.DeepEqual(r.Snapshot(size), s) {
		t.Errorf("Restore() = %+v, want %+v", r.Snapshot(size), s)
	}
	r.Points[0] = geom.Pt(-1, -1)
	if s.Points[0] == geom.Pt(-1, -1) {
		t.Error("Restore must copy, not alias")
	}
}

func TestRoomRestoreAtNewSize(t *testing.T) {
	r := NewRoom("A", square())
	r.SyncNormalized(geom.Sz(800, 600))
	s := r.Snapshot(geom.Sz(800, 600))

	r.Restore(s, geom.Sz(1600, 1200))
	if !near(r.Points[0], geom.Pt(200, 200)) || !near(r.Points[2], geom.Pt(600, 600)) {
		t.Errorf("Restore() at 1600x1200 = %v", r.Points)
	}
}

func TestDocumentFitRoom(t *testing.T) {
	d := NewDocument()
	d.SetBackground(Background{Width: 1600, Height: 1200})

	r := NewRoom("A", square())
	r.SyncNormalized(geom.Sz(800, 600))
	if d.FitRoom(r, geom.Sz(1600, 1200)) || r.Points[0] != geom.Pt(100, 100) {
		t.Errorf("FitRoom at the same size changed %v", r.Points)
	}
	if !d.FitRoom(r, geom.Sz(800, 600)) || !near(r.Points[0], geom.Pt(200, 200)) {
		t.Errorf("FitRoom after a size change = %v", r.Points)
	}

	drawn := NewRoom("B", square())
	if d.FitRoom(drawn, geom.Size{}) || len(drawn.NormalizedPoints) != 4 {
		t.Errorf("FitRoom should give a room drawn without background a normalized outline, got %v", drawn.NormalizedPoints)
	}
}

func TestRoomGeometry(t *testing.T) {
	r := NewRoom("A", square())
	g := r.Geometry()
	if g.Kind() != KindPolygon || len(g.Vertices()) != 4 {
		t.Errorf("polygon geometry = %v with %d vertices", g.Kind(), len(g.Vertices()))
	}
	if got := g.Bounds(); got != geom.R(100, 100, 200, 200) {
		t.Errorf("Bounds() = %+v", got)
	}

	p := NewPathRoom("Imported", "M0 0 L10 0 L10 10 Z", geom.R(0, 0, 10, 10))
	if g := p.Geometry(); g.Kind() != KindPath || g.Vertices() != nil {
		t.Errorf("path geometry = %v with vertices %v", g.Kind(), g.Vertices())
	}
}

func TestRoomLabel(t *testing.T) {
	tests := []struct {
		room  Room
		index int
		want  string
	}{
		{Room{Name: "Lobby", FieldNumber: "F-12"}, 0, "F-12"},
		{Room{Name: "Lobby"}, 0, "Lobby"},
		{Room{}, 2, "3"},
	}
	for _, tt := range tests {
		if got := tt.room.Label(tt.index); got != tt.want {
			t.Errorf("Label(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestSeat(t *testing.T) {
	s := NewSeatAt("S1", geom.Pt(120, 80))
	if s.X != 112 || s.Y != 72 {
		t.Errorf("seat corner = (%v,%v), want (112,72)", s.X, s.Y)
	}
	if s.Center() != geom.Pt(120, 80) {
		t.Errorf("Center() = %v, want (120,80)", s.Center())
	}
}

func TestRowName(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "A"}, {2, "B"}, {26, "Z"}, {27, "AA"}, {28, "AB"}, {52, "AZ"}, {53, "BA"}, {702, "ZZ"}, {703, "AAA"},
	}
	for _, tt := range tests {
		if got := RowName(tt.n); got != tt.want {
			t.Errorf("RowName(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestNextRowSkipsUsedNames(t *testing.T) {
	d := NewDocument()
	d.Seats.Append(&Seat{Label: "A1", Row: "A"})
	d.Seats.Append(&Seat{Label: "B2"})

	name, labels := d.NextRow(2)
	if name != "C" || len(labels) != 2 || labels[0] != "C1" || labels[1] != "C2" {
		t.Errorf("NextRow(2) = %q %v, want C [C1 C2]", name, labels)
	}
	if name, _ := d.NextRow(1); name != "D" {
		t.Errorf("NextRow(1) = %q, want D", name)
	}
}

func TestGroupRows(t *testing.T) {
	a1 := &Seat{Label: "A1", Row: "A"}
	b1 := &Seat{Label: "B1", Row: "B"}
	a2 := &Seat{Label: "A2", Row: "A"}
	s1 := &Seat{Label: "S1"}

	rows, single := GroupRows([]*Seat{a1, s1, b1, a2})
	if len(rows) != 2 || rows[0].Name != "A" || rows[1].Name != "B" {
		t.Fatalf("rows = %+v", rows)
	}
	if !reflect.DeepEqual(rows[0].Seats, []*Seat{a1, a2}) || !reflect.DeepEqual(rows[1].Seats, []*Seat{b1}) {
		t.Errorf("row seats = %v / %v", rows[0].Seats, rows[1].Seats)
	}
	if len(single) != 1 || single[0] != s1 {
		t.Errorf("single = %v", single)
	}
}

func TestCollectionEvents(t *testing.T) {
	c := NewCollection[*Seat]()
	var events []Change[*Seat]
	cancel := c.Subscribe(func(ch Change[*Seat]) { events = append(events, ch) })

	a, b, x := &Seat{Label: "a"}, &Seat{Label: "b"}, &Seat{Label: "x"}
	c.Append(a)
	c.Append(b)
	c.Insert(1, x)
	c.Append(a) // duplicate ignored
	c.Notify(b)
	if i := c.Remove(x); i != 1 {
		t.Errorf("Remove() = %d, want 1", i)
	}
	if i := c.Remove(x); i != -1 {
		t.Errorf("Remove(missing) = %d, want -1", i)
	}

	wantKinds := []ChangeKind{Inserted, Inserted, Inserted, Updated, Removed}
	wantIdx := []int{0, 1, 1, 2, 1}
	if len(events) != len(wantKinds) {
		t.Fatalf("got %d events, want %d", len(events), len(wantKinds))
	}
	for i := range events {
		if events[i].Kind != wantKinds[i] || events[i].Index != wantIdx[i] {
			t.Errorf("event %d = %v@%d, want %v@%d", i, events[i].Kind, events[i].Index, wantKinds[i], wantIdx[i])
		}
	}

	cancel()
	c.Clear()
	if len(events) != len(wantKinds) {
		t.Error("cancelled subscriber still receives events")
	}
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d", c.Len())
	}
}

func TestCollectionInsertClamps(t *testing.T) {
	c := NewCollection[*Seat]()
	a, b := &Seat{Label: "a"}, &Seat{Label: "b"}
	c.Insert(10, a)
	c.Insert(-3, b)
	if c.At(0) != b || c.At(1) != a {
		t.Errorf("Items() = %v", c.Items())
	}
}

func TestDocumentSetBackground(t *testing.T) {
	d := NewDocument()
	drawn := NewRoom("Drawn", square())
	d.Rooms.Append(drawn)

	stale := NewRoom("Stale", nil)
	stale.NormalizedPoints = []geom.Point{geom.Pt(0, 0), geom.Pt(0.5, 0), geom.Pt(0.5, 0.5)}
	d.Rooms.Append(stale)

	updates := 0
	d.Rooms.Subscribe(func(ch Change[*Room]) {
		if ch.Kind == Updated {
			updates++
		}
	})

	d.SetBackground(Background{Path: "plan.png", Width: 800, Height: 600})

	if len(drawn.NormalizedPoints) != 4 {
		t.Errorf("drawn room normalized = %v", drawn.NormalizedPoints)
	}
	if len(stale.Points) != 3 || stale.Points[1] != geom.Pt(400, 0) {
		t.Errorf("stale room points = %v", stale.Points)
	}
	if updates != 1 {
		t.Errorf("updates = %d, want 1", updates)
	}
	if d.ImageSize() != geom.Sz(800, 600) {
		t.Errorf("ImageSize() = %v", d.ImageSize())
	}
}

func TestDocumentExtent(t *testing.T) {
	d := NewDocument()
	d.Rooms.Append(NewRoom("A", square()))
	d.Seats.Append(&Seat{X: 500, Y: 10})
	d.Rooms.Append(NewPathRoom("P", "M0 0", geom.R(0, 0, 50, 450)))

	if got := d.Extent(); got != geom.Pt(516, 450) {
		t.Errorf("Extent() = %v, want (516,450)", got)
	}
}

func TestDocumentSnapshotIsDeep(t *testing.T) {
	d := NewDocument()
	r := NewRoom("A", square())
	d.Rooms.Append(r)
	s := d.Snapshot()

	r.Points[0] = geom.Pt(0, 0)
	r.Name = "B"
	if s.Rooms[0].Points[0] != geom.Pt(100, 100) || s.Rooms[0].Name != "A" {
		t.Errorf("snapshot changed with document: %+v", s.Rooms[0])
	}
}
