// Package editor ties the document, its history and the interactive
// controllers into one editing session.
//
// A [Session] owns exactly one [model.Document] for its lifetime. Input
// arrives as screen points (window coordinates); the session maps them
// through the pan/zoom camera and the fitted-image transform into image
// pixel space before handing them to the draft and vertex controllers.
// Every committed change flows through the session's [undo.History].
//
// Sessions are not safe for concurrent use. Callers serialize input on one
// goroutine, the way a UI event loop does.
package editor

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/svgmapper/pkg/background"
	"github.com/matzehuels/svgmapper/pkg/cache"
	"github.com/matzehuels/svgmapper/pkg/draft"
	"github.com/matzehuels/svgmapper/pkg/edit"
	"github.com/matzehuels/svgmapper/pkg/errors"
	"github.com/matzehuels/svgmapper/pkg/export"
	"github.com/matzehuels/svgmapper/pkg/geom"
	"github.com/matzehuels/svgmapper/pkg/model"
	"github.com/matzehuels/svgmapper/pkg/undo"
	"github.com/matzehuels/svgmapper/pkg/viewport"
)

// Tool is the active input tool.
type Tool int

const (
	SelectTool Tool = iota
	PolygonTool
	SeatTool
	RowTool
)

var toolNames = map[Tool]string{
	SelectTool:  "select",
	PolygonTool: "polygon",
	SeatTool:    "seat",
	RowTool:     "row",
}

func (t Tool) String() string {
	if s, ok := toolNames[t]; ok {
		return s
	}
	return "unknown"
}

// ParseTool parses a tool name.
func ParseTool(s string) (Tool, error) {
	for t, name := range toolNames {
		if name == s {
			return t, nil
		}
	}
	return SelectTool, errors.New(errors.ErrCodeInvalidInput, "unknown tool %q (want select, polygon, seat or row)", s)
}

// Session is one editing session over a single document.
type Session struct {
	Doc       *model.Document
	History   *undo.History
	Draft     *draft.Controller
	Vertex    *edit.Vertex
	Selection *edit.Selection
	Clipboard *edit.Clipboard

	cfg      Config
	tool     Tool
	rowStart *geom.Point
	control  geom.Size
	camera   viewport.Camera
	loader   *background.Loader
	exporter *export.Exporter
	logger   *log.Logger

	cache cache.Cache
	keyer cache.Keyer
}

// Option configures a Session.
type Option func(*Session)

// WithConfig sets the editor settings.
func WithConfig(c Config) Option {
	return func(s *Session) { s.cfg = c.Normalize() }
}

// WithLogger sets the logger shared by the session's components.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCache caches background image info and data URIs.
func WithCache(c cache.Cache, k cache.Keyer) Option {
	return func(s *Session) {
		s.cache = c
		s.keyer = k
	}
}

// New starts a session with an empty document.
func New(opts ...Option) *Session {
	s := &Session{
		cfg:    DefaultConfig(),
		camera: viewport.NewCamera(),
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Doc = model.NewDocument()
	s.History = undo.New(
		undo.WithMaxHistory(s.cfg.MaxHistory),
		undo.WithFailurePolicy(s.cfg.UndoFailurePolicy),
		undo.WithLogger(s.logger),
	)
	s.Draft = draft.New(s.Doc, s.History,
		draft.WithSnapper(s.cfg.Snapper()),
		draft.WithCloseThreshold(s.cfg.CloseThreshold),
		draft.WithLogger(s.logger),
	)
	s.Vertex = edit.NewVertex(s.Doc, s.History,
		edit.WithSnapper(s.cfg.Snapper()),
		edit.SnapDuringDrag(s.cfg.SnapDuringDrag),
		edit.WithVertexLogger(s.logger),
	)
	s.Selection = edit.NewSelection(s.Doc)
	s.Clipboard = &edit.Clipboard{}

	s.loader = background.NewLoader(
		background.WithCache(s.cache, s.keyer),
		background.WithLogger(s.logger),
	)
	exportOpts := []export.Option{
		export.WithDefaultSize(s.cfg.DefaultWidth, s.cfg.DefaultHeight),
		export.WithCache(s.cache, s.keyer),
		export.WithLogger(s.logger),
	}
	if !s.cfg.EmbedBackground {
		exportOpts = append(exportOpts, export.WithoutBackground())
	}
	if !s.cfg.RoomLabels {
		exportOpts = append(exportOpts, export.WithoutLabels())
	}
	s.exporter = export.New(exportOpts...)

	s.History.OnChange(s.Selection.Prune)
	return s
}

// Config returns the session settings.
func (s *Session) Config() Config { return s.cfg }

// Tool returns the active tool.
func (s *Session) Tool() Tool { return s.tool }

// SetTool switches tools. Leaving the polygon tool abandons an open draft
// and leaving the row tool drops a started row.
func (s *Session) SetTool(t Tool) {
	if t == s.tool {
		return
	}
	if s.tool == PolygonTool && s.Draft.Drawing() {
		_ = s.Draft.Cancel()
	}
	s.rowStart = nil
	if t != SelectTool {
		s.Vertex.Deselect()
	}
	s.tool = t
	s.logger.Debug("tool changed", "tool", t)
}

// SetSnap enables or disables grid snapping.
func (s *Session) SetSnap(on bool) {
	s.cfg.Snap = on
	s.applySnapper()
}

// SetGridSize changes the grid, clamped to the minimum.
func (s *Session) SetGridSize(g float64) {
	s.cfg.GridSize = g
	s.cfg = s.cfg.Normalize()
	s.applySnapper()
}

func (s *Session) applySnapper() {
	sn := s.cfg.Snapper()
	s.Draft.SetSnapper(sn)
	s.Vertex.SetSnapper(sn)
}

// Undo reverts the last transaction.
func (s *Session) Undo() error { return s.History.Undo() }

// Redo reapplies the last undone transaction.
func (s *Session) Redo() error { return s.History.Redo() }

// ImportBackground inspects path and makes it the document background. On
// failure the background is cleared, the error is returned and the
// session continues without one.
func (s *Session) ImportBackground(ctx context.Context, path string) error {
	bg, err := s.loader.Load(ctx, path)
	if err != nil {
		s.Doc.ClearBackground()
		s.logger.Warn("background not loaded", "path", path, "err", err)
		return err
	}
	s.Doc.SetBackground(bg)
	s.logger.Info("background loaded", "path", path, "width", bg.Width, "height", bg.Height)
	return nil
}

// ExportSVG returns the document as SVG.
func (s *Session) ExportSVG(ctx context.Context) string {
	return s.exporter.ExportSVG(ctx, s.Doc)
}

// ExportToFile writes the SVG export to path.
func (s *Session) ExportToFile(ctx context.Context, path string) error {
	return s.exporter.ExportToFile(ctx, s.Doc, path)
}

// ExportPNGToFile writes a preview of the annotation layer to path.
func (s *Session) ExportPNGToFile(ctx context.Context, path string, scale float64) error {
	return s.exporter.ExportPNGToFile(ctx, s.Doc, path, scale)
}
