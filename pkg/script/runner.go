package script

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/svgmapper/pkg/editor"
	"github.com/matzehuels/svgmapper/pkg/errors"
	"github.com/matzehuels/svgmapper/pkg/geom"
	"github.com/matzehuels/svgmapper/pkg/model"
	"github.com/matzehuels/svgmapper/pkg/viewport"
)

// Warning is a refused step that did not stop the replay.
type Warning struct {
	Step   int // 1-based
	Action string
	Err    error
}

func (w Warning) String() string {
	return fmt.Sprintf("step %d (%s): %s", w.Step, w.Action, errors.UserMessage(w.Err))
}

// Report summarizes a replay.
type Report struct {
	Steps    int
	Warnings []Warning
	Exports  []string
}

// Runner replays scripts.
type Runner struct {
	strict bool
	logger *log.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// Strict makes refused steps fail the replay.
func Strict(on bool) Option { return func(r *Runner) { r.strict = on } }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner returns a runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{logger: log.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run replays sc against s.
func (r *Runner) Run(ctx context.Context, s *editor.Session, sc *Script) (*Report, error) {
	rep := &Report{}
	if len(sc.Control) == 2 {
		s.SetControlSize(geom.Sz(sc.Control[0], sc.Control[1]))
	}
	if sc.Background != "" {
		if err := s.ImportBackground(ctx, sc.resolve(sc.Background)); err != nil {
			rep.Warnings = append(rep.Warnings, Warning{Step: 0, Action: "background", Err: err})
		}
	}

	for i, st := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		n := i + 1
		err := r.step(ctx, s, sc, st, rep)
		rep.Steps = n
		if err == nil {
			continue
		}
		if errors.IsRefusal(err) && !r.strict {
			r.logger.Warn("step refused", "step", n, "action", st.Action, "err", errors.UserMessage(err))
			rep.Warnings = append(rep.Warnings, Warning{Step: n, Action: st.Action, Err: err})
			continue
		}
		return rep, errors.Wrap(errors.GetCode(err), err, "step %d (%s)", n, st.Action)
	}
	r.logger.Debug("script replayed", "steps", rep.Steps, "warnings", len(rep.Warnings))
	return rep, nil
}

func (sc *Script) resolve(path string) string {
	if filepath.IsAbs(path) || sc.Dir == "" {
		return path
	}
	return filepath.Join(sc.Dir, path)
}

// screen converts a step point into window coordinates.
func (sc *Script) screen(s *editor.Session, v []float64) geom.Point {
	p := point(v)
	if sc.Space == PixelSpace {
		return s.PixelToScreen(p)
	}
	return p
}

func (r *Runner) step(ctx context.Context, s *editor.Session, sc *Script, st Step, rep *Report) error {
	switch st.Action {
	case "click":
		_, err := s.Click(sc.screen(s, st.At), 1)
		return err
	case "dblclick":
		at := sc.screen(s, st.At)
		if _, err := s.Click(at, 1); err != nil {
			return err
		}
		out, err := s.Click(at, 2)
		if err != nil {
			return err
		}
		if out.Kind == editor.NeedsName && st.Name != "" {
			_, err = s.ClosePolygon(st.Name)
		}
		return err
	case "close":
		_, err := s.ClosePolygon(st.Name)
		return err
	case "cancel":
		return s.CancelPolygon()
	case "revoke":
		return s.RevokePoint()
	case "undo":
		return s.Undo()
	case "redo":
		return s.Redo()
	case "tool":
		t, err := editor.ParseTool(st.Tool)
		if err != nil {
			return err
		}
		s.SetTool(t)
		return nil
	case "drag":
		out, err := s.Click(sc.screen(s, st.At), 1)
		if err != nil {
			return err
		}
		if out.Kind != editor.VertexSelected {
			return errors.New(errors.ErrCodeInvalidState, "no vertex at %v", st.At)
		}
		if _, err := s.DragTo(sc.screen(s, st.To)); err != nil {
			return err
		}
		return s.Release()
	case "insert":
		_, err := s.InsertVertex(sc.screen(s, st.At))
		return err
	case "delete":
		return s.DeleteSelection()
	case "delete-vertex":
		if _, _, ok := s.Vertex.Active(); !ok {
			return errors.New(errors.ErrCodeInvalidState, "no vertex selected")
		}
		return s.DeleteSelection()
	case "seat":
		prev := s.Tool()
		s.SetTool(editor.SeatTool)
		_, err := s.Click(sc.screen(s, st.At), 1)
		s.SetTool(prev)
		return err
	case "row":
		_, err := s.AddSeatRow(sc.screen(s, st.At), sc.screen(s, st.To), st.Spacing)
		return err
	case "style":
		return s.SetSelectedStyle(model.RoomStyle{Fill: st.Fill, Stroke: st.Stroke, FillOpacity: st.Opacity})
	case "rename":
		return s.RenameSelected(st.Name)
	case "field":
		return s.SetSelectedFieldNumber(st.Name)
	case "move":
		return s.MoveSelection(st.By[0], st.By[1])
	case "resize":
		return s.ResizeSelected(geom.R(st.Rect[0], st.Rect[1], st.Rect[2], st.Rect[3]))
	case "copy":
		s.Copy()
		return nil
	case "paste":
		return s.Paste()
	case "duplicate":
		return s.Duplicate()
	case "snap":
		s.SetSnap(*st.On)
		return nil
	case "grid":
		s.SetGridSize(st.Size)
		return nil
	case "zoom":
		f := st.Factor
		if f == 0 {
			f = viewport.ZoomStep
		}
		s.ZoomAt(f, point(st.At))
		return nil
	case "pan":
		s.Pan(st.By[0], st.By[1])
		return nil
	case "background":
		if err := s.ImportBackground(ctx, sc.resolve(st.Path)); err != nil {
			rep.Warnings = append(rep.Warnings, Warning{Step: rep.Steps + 1, Action: st.Action, Err: err})
		}
		return nil
	case "export":
		path := sc.resolve(st.Path)
		if err := s.ExportToFile(ctx, path); err != nil {
			return err
		}
		rep.Exports = append(rep.Exports, path)
		return nil
	case "export-png":
		path := sc.resolve(st.Path)
		if err := s.ExportPNGToFile(ctx, path, st.Scale); err != nil {
			return err
		}
		rep.Exports = append(rep.Exports, path)
		return nil
	case "expect":
		return expect(s, st)
	}
	return errors.New(errors.ErrCodeInvalidInput, "unknown action %q", st.Action)
}

func expect(s *editor.Session, st Step) error {
	checks := []struct {
		what string
		want *int
		got  int
	}{
		{"rooms", st.Rooms, s.Doc.Rooms.Len()},
		{"seats", st.Seats, s.Doc.Seats.Len()},
		{"undo depth", st.Undo, s.History.UndoLen()},
		{"redo depth", st.Redo, s.History.RedoLen()},
	}
	for _, c := range checks {
		if c.want != nil && *c.want != c.got {
			return errors.New(errors.ErrCodeAssertion, "expected %d %s, got %d", *c.want, c.what, c.got)
		}
	}
	return nil
}
