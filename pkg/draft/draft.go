// Package draft implements the state machine for authoring a new room.
//
// A [Controller] is Idle until Start is called. While Drawing it collects
// snapped pixel points; the first point also places a start marker through
// the undo history, so undoing the marker while points remain abandons the
// draft. Close promotes a draft of at least three points to a room in one
// undoable transaction; Cancel and a short Close discard it.
//
//	d := draft.New(doc, history)
//	d.Start()
//	d.AddPoint(geom.Pt(100, 100))
//	d.AddPoint(geom.Pt(300, 100))
//	d.AddPoint(geom.Pt(300, 300))
//	room, _ := d.Close("Lobby")
package draft

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/svgmapper/pkg/errors"
	"github.com/matzehuels/svgmapper/pkg/geom"
	"github.com/matzehuels/svgmapper/pkg/model"
	"github.com/matzehuels/svgmapper/pkg/snap"
	"github.com/matzehuels/svgmapper/pkg/undo"
)

// DefaultCloseThreshold is the distance within which a double click closes
// the draft.
const DefaultCloseThreshold = 12.0

// State is the controller state.
type State int

const (
	Idle State = iota
	Drawing
)

func (s State) String() string {
	if s == Drawing {
		return "drawing"
	}
	return "idle"
}

// Marker is the visual placed on the first draft point.
type Marker struct {
	Center geom.Point
}

// Controller drives one document's polygon drafts.
type Controller struct {
	doc       *model.Document
	history   *undo.History
	snapper   snap.Snapper
	threshold float64
	logger    *log.Logger

	state    State
	points   []geom.Point
	marker   *Marker
	markerID uint64
	gen      uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithSnapper sets the snapping applied to added points.
func WithSnapper(s snap.Snapper) Option {
	return func(c *Controller) { c.snapper = s }
}

// WithCloseThreshold sets the closing gesture distance.
func WithCloseThreshold(t float64) Option {
	return func(c *Controller) {
		if t > 0 {
			c.threshold = t
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns an idle controller that adds closed rooms to doc.
func New(doc *model.Document, history *undo.History, opts ...Option) *Controller {
	c := &Controller{
		doc:       doc,
		history:   history,
		threshold: DefaultCloseThreshold,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetSnapper replaces the snapping used for subsequent points.
func (c *Controller) SetSnapper(s snap.Snapper) { c.snapper = s }

func (c *Controller) State() State         { return c.state }
func (c *Controller) Drawing() bool        { return c.state == Drawing }
func (c *Controller) Count() int           { return len(c.points) }
func (c *Controller) Threshold() float64   { return c.threshold }
func (c *Controller) Points() []geom.Point { return geom.Clone(c.points) }

// Marker returns the start marker, or nil when none is shown.
func (c *Controller) Marker() *Marker {
	if c.marker == nil {
		return nil
	}
	m := *c.marker
	return &m
}

// FirstPoint returns the first draft point.
func (c *Controller) FirstPoint() (geom.Point, bool) {
	if len(c.points) == 0 {
		return geom.Point{}, false
	}
	return c.points[0], true
}

// Start begins a new draft.
func (c *Controller) Start() error {
	if c.state == Drawing {
		return errors.New(errors.ErrCodeInvalidState, "already drawing a polygon")
	}
	c.gen++
	c.state = Drawing
	c.points = nil
	c.marker = nil
	c.markerID = 0
	c.logger.Debug("draft started")
	return nil
}

// AddPoint snaps p and appends it to the draft, returning the stored point.
func (c *Controller) AddPoint(p geom.Point) (geom.Point, error) {
	if c.state != Drawing {
		return geom.Point{}, errors.New(errors.ErrCodeInvalidState, "add point: not drawing")
	}
	p = c.snapper.Apply(p)
	c.points = append(c.points, p)
	if len(c.points) == 1 {
		c.placeMarker(p)
	}
	return p, nil
}

// placeMarker registers the start marker as an undoable transaction. The
// closures only act on the draft generation that created them, so markers
// of earlier drafts left in the history are inert.
func (c *Controller) placeMarker(center geom.Point) {
	gen := c.gen
	err := c.history.ExecuteNamed("start polygon",
		func() {
			if c.gen == gen && c.state == Drawing && len(c.points) > 0 {
				c.marker = &Marker{Center: center}
			}
		},
		func() {
			if c.gen != gen {
				return
			}
			c.marker = nil
			if c.state == Drawing && len(c.points) > 0 {
				c.logger.Debug("start marker undone, abandoning draft", "points", len(c.points))
				c.reset()
			}
		},
	)
	if err != nil {
		c.logger.Warn("start marker not recorded", "err", err)
		return
	}
	c.markerID = c.history.LastID()
}

// removeMarker takes the marker down, through the history when its entry
// is still the most recent transaction.
func (c *Controller) removeMarker() {
	if c.marker == nil && c.markerID == 0 {
		return
	}
	if c.markerID != 0 && c.history.LastID() == c.markerID {
		if err := c.history.Undo(); err != nil {
			c.logger.Warn("undo start marker", "err", err)
		}
	}
	c.marker = nil
	c.markerID = 0
}

// RevokeLastPoint removes the most recent draft point. Emptying the draft
// removes the start marker but stays in Drawing.
func (c *Controller) RevokeLastPoint() error {
	if c.state != Drawing {
		return errors.New(errors.ErrCodeInvalidState, "revoke point: not drawing")
	}
	if len(c.points) == 0 {
		return nil
	}
	c.points = c.points[:len(c.points)-1]
	if len(c.points) == 0 {
		c.removeMarker()
	}
	return nil
}

// Cancel discards the draft and returns to Idle.
func (c *Controller) Cancel() error {
	if c.state != Drawing {
		return errors.New(errors.ErrCodeInvalidState, "cancel: not drawing")
	}
	c.removeMarker()
	c.reset()
	c.logger.Debug("draft cancelled")
	return nil
}

// Close promotes the draft to a room named name ("Room" when blank) and
// appends it to the document as one transaction, replacing the start
// marker entry. A draft of fewer than
// three points is discarded and Close returns (nil, nil).
func (c *Controller) Close(name string) (*model.Room, error) {
	if c.state != Drawing {
		return nil, errors.New(errors.ErrCodeInvalidState, "close: not drawing")
	}
	if len(c.points) < model.MinRoomPoints {
		c.logger.Debug("draft too short, discarded", "points", len(c.points))
		return nil, c.Cancel()
	}
	name = strings.TrimSpace(name)
	if err := errors.ValidateName(name); err != nil {
		return nil, err
	}
	if name == "" {
		name = model.DefaultRoomName
	}

	size := c.doc.ImageSize()
	room := model.NewRoom(name, c.points)
	room.SyncNormalized(size)

	rooms := c.doc.Rooms
	// The room replaces the marker as the draft's single undo step.
	c.history.Forget(c.markerID)
	c.reset()

	err := c.history.ExecuteNamed("add room "+name,
		func() {
			c.doc.FitRoom(room, size)
			rooms.Append(room)
		},
		func() {
			rooms.Remove(room)
			size = c.doc.ImageSize()
		},
	)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("room closed", "name", name, "points", len(room.Points))
	return room, nil
}

// IsClosingGesture reports whether a double click at p (pixel space) should
// close the draft.
func (c *Controller) IsClosingGesture(p geom.Point) bool {
	if c.state != Drawing || c.marker == nil {
		return false
	}
	return DetectClosingGesture(p, c.marker.Center, c.threshold)
}

func (c *Controller) reset() {
	c.state = Idle
	c.points = nil
	c.marker = nil
	c.markerID = 0
	c.gen++
}

// DetectClosingGesture reports whether p lies within threshold of the start
// marker center.
func DetectClosingGesture(p, start geom.Point, threshold float64) bool {
	return geom.Distance(p, start) <= threshold
}
