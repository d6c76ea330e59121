package edit

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/svgmapper/pkg/errors"
	"github.com/matzehuels/svgmapper/pkg/geom"
	"github.com/matzehuels/svgmapper/pkg/model"
	"github.com/matzehuels/svgmapper/pkg/snap"
	"github.com/matzehuels/svgmapper/pkg/undo"
)

// DefaultHandleRadius is the hit radius of a vertex handle in pixels.
const DefaultHandleRadius = 8.0

// Vertex edits the vertices of one room at a time.
type Vertex struct {
	doc     *model.Document
	history *undo.History
	snapper snap.Snapper
	logger  *log.Logger

	snapDuringDrag bool

	room   *model.Room
	index  int
	before model.Shape
	origin geom.Point
}

// VertexOption configures a Vertex controller.
type VertexOption func(*Vertex)

// WithSnapper sets the grid used by inserts and, when enabled, drags.
func WithSnapper(s snap.Snapper) VertexOption {
	return func(v *Vertex) { v.snapper = s }
}

// SnapDuringDrag snaps dragged vertices to the grid.
func SnapDuringDrag(on bool) VertexOption {
	return func(v *Vertex) { v.snapDuringDrag = on }
}

// WithVertexLogger sets the logger.
func WithVertexLogger(l *log.Logger) VertexOption {
	return func(v *Vertex) {
		if l != nil {
			v.logger = l
		}
	}
}

// NewVertex returns a controller editing rooms of doc.
func NewVertex(doc *model.Document, history *undo.History, opts ...VertexOption) *Vertex {
	v := &Vertex{doc: doc, history: history, logger: log.Default(), index: -1}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// SetSnapper replaces the grid settings.
func (v *Vertex) SetSnapper(s snap.Snapper) { v.snapper = s }

// SetSnapDuringDrag toggles drag snapping.
func (v *Vertex) SetSnapDuringDrag(on bool) { v.snapDuringDrag = on }

func editable(room *model.Room) error {
	if room == nil {
		return errors.New(errors.ErrCodeInvalidInput, "no room")
	}
	if room.Geometry().Kind() != model.KindPolygon {
		return errors.New(errors.ErrCodeInvalidGeometry, "room %q has no editable vertices", room.Name)
	}
	return nil
}

func checkIndex(room *model.Room, i int) error {
	if i < 0 || i >= len(room.Points) {
		return errors.New(errors.ErrCodeInvalidInput, "vertex %d out of range (room has %d)", i, len(room.Points))
	}
	return nil
}

// SelectVertex makes vertex i of room the active handle and remembers its
// position for the drag commit.
func (v *Vertex) SelectVertex(room *model.Room, i int) error {
	if err := editable(room); err != nil {
		return err
	}
	if err := checkIndex(room, i); err != nil {
		return err
	}
	v.room, v.index = room, i
	v.before = room.Snapshot(v.doc.ImageSize())
	v.origin = room.Points[i]
	return nil
}

// Active returns the active handle.
func (v *Vertex) Active() (*model.Room, int, bool) {
	if v.room == nil {
		return nil, -1, false
	}
	return v.room, v.index, true
}

// Origin is the position the active vertex had when it was selected.
func (v *Vertex) Origin() geom.Point { return v.origin }

// Deselect clears the active handle.
func (v *Vertex) Deselect() {
	v.room, v.index = nil, -1
	v.before = model.Shape{}
}

// DragVertex moves vertex i to p without recording history. It returns the
// stored position.
func (v *Vertex) DragVertex(room *model.Room, i int, p geom.Point) (geom.Point, error) {
	if err := editable(room); err != nil {
		return geom.Point{}, err
	}
	if err := checkIndex(room, i); err != nil {
		return geom.Point{}, err
	}
	if v.snapDuringDrag {
		p = v.snapper.Apply(p)
	}
	room.SetVertex(i, p, v.doc.ImageSize())
	v.doc.Rooms.Notify(room)
	return p, nil
}

// CommitVertexDrag records the move of vertex i from original to its
// current position as one transaction. A drag that ended where it started
// records nothing.
func (v *Vertex) CommitVertexDrag(room *model.Room, i int, original geom.Point) error {
	if err := editable(room); err != nil {
		return err
	}
	if err := checkIndex(room, i); err != nil {
		return err
	}
	final := room.Points[i]
	if final == original {
		return nil
	}

	after := room.Snapshot(v.doc.ImageSize())
	var before model.Shape
	if v.room == room && v.index == i && v.origin == original {
		before = v.before
	} else {
		tmp := room.Clone()
		tmp.SetVertex(i, original, v.doc.ImageSize())
		before = tmp.Snapshot(v.doc.ImageSize())
	}
	v.before = after

	v.origin = final
	return v.record("move vertex", room, before, after)
}

// InsertVertex inserts a vertex at near on the closest edge and returns its
// index. near is snapped when snapping is enabled.
func (v *Vertex) InsertVertex(room *model.Room, near geom.Point) (int, error) {
	if err := editable(room); err != nil {
		return -1, err
	}
	edge, _ := geom.NearestEdge(room.Points, near)
	if edge < 0 {
		return -1, errors.New(errors.ErrCodeInvalidGeometry, "room %q has no edges", room.Name)
	}
	at := edge + 1
	p := v.snapper.Apply(near)

	before := room.Snapshot(v.doc.ImageSize())
	tmp := room.Clone()
	tmp.InsertVertex(at, p, v.doc.ImageSize())
	if err := v.record("insert vertex", room, before, tmp.Snapshot(v.doc.ImageSize())); err != nil {
		return -1, err
	}
	return at, nil
}

// DeleteVertex removes vertex i. Rooms with three or fewer vertices are
// refused.
func (v *Vertex) DeleteVertex(room *model.Room, i int) error {
	if err := editable(room); err != nil {
		return err
	}
	if len(room.Points) <= model.MinRoomPoints {
		return errors.New(errors.ErrCodeInvalidGeometry, "polygon must have at least %d points", model.MinRoomPoints)
	}
	if err := checkIndex(room, i); err != nil {
		return err
	}

	before := room.Snapshot(v.doc.ImageSize())
	tmp := room.Clone()
	tmp.RemoveVertex(i, v.doc.ImageSize())
	if v.room == room {
		v.Deselect()
	}
	return v.record("delete vertex", room, before, tmp.Snapshot(v.doc.ImageSize()))
}

// ApplyBoundingBoxTransform maps every vertex from its fractional position
// in from to the same position in to, as one transaction.
func (v *Vertex) ApplyBoundingBoxTransform(room *model.Room, from, to geom.Rect) error {
	if err := editable(room); err != nil {
		return err
	}
	size := v.doc.ImageSize()
	before := room.Snapshot(v.doc.ImageSize())
	tmp := room.Clone()
	tmp.SetPoints(geom.RemapBounds(room.PixelPoints(size), from, to), size)
	return v.record("resize room", room, before, tmp.Snapshot(v.doc.ImageSize()))
}

// MoveRoom translates every vertex by (dx, dy).
func (v *Vertex) MoveRoom(room *model.Room, dx, dy float64) error {
	if err := editable(room); err != nil {
		return err
	}
	b := geom.Bounds(room.PixelPoints(v.doc.ImageSize()))
	return v.ApplyBoundingBoxTransform(room, b, b.Translate(dx, dy))
}

func (v *Vertex) record(what string, room *model.Room, before, after model.Shape) error {
	doc := v.doc
	return v.history.ExecuteNamed(what+" "+room.Name,
		func() {
			room.Restore(after, doc.ImageSize())
			doc.Rooms.Notify(room)
		},
		func() {
			room.Restore(before, doc.ImageSize())
			doc.Rooms.Notify(room)
		},
	)
}
