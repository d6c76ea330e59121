package export

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"io"
	"math"
	"os"
	"time"

	svg "github.com/ajstarks/svgo"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/svgmapper/pkg/cache"
	"github.com/matzehuels/svgmapper/pkg/errors"
	"github.com/matzehuels/svgmapper/pkg/geom"
	"github.com/matzehuels/svgmapper/pkg/model"
	"github.com/matzehuels/svgmapper/pkg/observability"
)

// Default canvas used when no background is loaded.
const (
	DefaultWidth  = 2000
	DefaultHeight = 1400
)

// SeatRadius is the exported seat circle radius.
const SeatRadius = model.SeatSize / 2

// LabelFontSize is the font size of room labels.
const LabelFontSize = 14

// Style holds the presentation attributes of exported shapes. Rooms with
// their own [model.RoomStyle] override the room fields.
type Style struct {
	RoomFill        string
	RoomFillOpacity float64
	RoomStroke      string
	RoomStrokeWidth float64
	SeatFill        string
	SeatStroke      string
}

// DefaultStyle matches the editor's on-screen colors.
var DefaultStyle = Style{
	RoomFill:        "#1e90ff",
	RoomFillOpacity: 0.2,
	RoomStroke:      "#1e90ff",
	RoomStrokeWidth: 2,
	SeatFill:        "#ff6347",
	SeatStroke:      "#8b0000",
}

// Exporter serializes documents. The zero value is not usable; see [New].
type Exporter struct {
	defaultSize geom.Size
	embed       bool
	labels      bool
	style       Style
	logger      *log.Logger
	cache       cache.Cache
	keyer       cache.Keyer
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithDefaultSize sets the canvas used without a background.
func WithDefaultSize(w, h int) Option {
	return func(e *Exporter) {
		if w > 0 && h > 0 {
			e.defaultSize = geom.Sz(float64(w), float64(h))
		}
	}
}

// WithoutBackground omits the background image.
func WithoutBackground() Option { return func(e *Exporter) { e.embed = false } }

// WithoutLabels omits the room name text drawn at each room's center.
func WithoutLabels() Option { return func(e *Exporter) { e.labels = false } }

// WithStyle overrides the shape colors.
func WithStyle(s Style) Option { return func(e *Exporter) { e.style = s } }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Exporter) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithCache caches encoded background data URIs.
func WithCache(c cache.Cache, k cache.Keyer) Option {
	return func(e *Exporter) {
		if c != nil {
			e.cache = c
		}
		if k != nil {
			e.keyer = k
		}
	}
}

// New returns an exporter with the default canvas, embedding enabled and
// no cache.
func New(opts ...Option) *Exporter {
	e := &Exporter{
		defaultSize: geom.Sz(DefaultWidth, DefaultHeight),
		embed:       true,
		labels:      true,
		style:       DefaultStyle,
		logger:      log.Default(),
		cache:       cache.NewNullCache(),
		keyer:       cache.NewDefaultKeyer(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ViewBox returns the export canvas size for doc.
func (e *Exporter) ViewBox(doc *model.Document) (int, int) {
	return viewBox(doc, e.defaultSize)
}

func viewBox(doc *model.Document, def geom.Size) (int, int) {
	w, h := def.W, def.H
	if doc.Background.Loaded() {
		w, h = float64(doc.Background.Width), float64(doc.Background.Height)
	}
	ext := doc.Extent()
	w = math.Max(w, math.Ceil(ext.X))
	h = math.Max(h, math.Ceil(ext.Y))
	return int(w), int(h)
}

// ExportSVG returns the SVG document for doc.
func (e *Exporter) ExportSVG(ctx context.Context, doc *model.Document) string {
	var buf bytes.Buffer
	_ = e.WriteSVG(ctx, &buf, doc)
	return buf.String()
}

// WriteSVG writes the SVG document for doc to w.
func (e *Exporter) WriteSVG(ctx context.Context, w io.Writer, doc *model.Document) error {
	start := time.Now()
	observability.Export().OnExportStart(ctx, "svg", doc.Rooms.Len(), doc.Seats.Len())

	var buf bytes.Buffer
	e.render(ctx, &buf, doc, e.embed)
	n, err := w.Write(buf.Bytes())
	if err != nil {
		err = errors.Wrap(errors.ErrCodeIO, err, "write svg")
	}

	observability.Export().OnExportComplete(ctx, "svg", n, time.Since(start), err)
	return err
}

// ExportToFile writes the SVG document for doc to path.
func (e *Exporter) ExportToFile(ctx context.Context, doc *model.Document, path string) error {
	if err := errors.ValidateExportPath(path, ".svg"); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := e.WriteSVG(ctx, &buf, doc); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	e.logger.Info("exported svg", "path", path, "rooms", doc.Rooms.Len(), "seats", doc.Seats.Len(), "bytes", buf.Len())
	return nil
}

func (e *Exporter) render(ctx context.Context, buf *bytes.Buffer, doc *model.Document, embed bool) {
	w, h := viewBox(doc, e.defaultSize)
	size := doc.ImageSize()

	canvas := svg.New(buf)
	canvas.Startview(w, h, 0, 0, w, h)

	canvas.Gid("background")
	if embed && doc.Background.Path != "" {
		if uri, err := e.dataURI(ctx, doc.Background.Path); err != nil {
			e.logger.Debug("background not embedded", "path", doc.Background.Path, "err", err)
		} else {
			canvas.Image(0, 0, w, h, uri, `preserveAspectRatio="none"`)
		}
	}
	canvas.Gend()

	canvas.Gid("rooms")
	for i, r := range doc.Rooms.Items() {
		label := html.EscapeString(r.Label(i))
		var center geom.Point
		if r.Path != nil {
			fmt.Fprintf(canvas.Writer, `<path d="%s" data-label="%s" %s/>`+"\n",
				html.EscapeString(r.Path.Data), label, e.roomAttrs(r.Style))
			center = r.Path.Box.Center()
		} else {
			pts := r.PixelPoints(size)
			fmt.Fprintf(canvas.Writer, `<polygon points="%s" data-label="%s" %s/>`+"\n",
				FormatPoints(pts), label, e.roomAttrs(r.Style))
			center = geom.Centroid(pts)
		}
		if e.labels {
			fmt.Fprintf(canvas.Writer, `<text x="%s" y="%s" text-anchor="middle" dominant-baseline="middle" font-size="%d">%s</text>`+"\n",
				FormatNumber(center.X), FormatNumber(center.Y), LabelFontSize, label)
		}
	}
	canvas.Gend()

	rows, single := model.GroupRows(doc.Seats.Items())
	canvas.Gid("seats")
	for _, s := range single {
		e.seat(canvas.Writer, s)
	}
	for _, row := range rows {
		canvas.Gid("row-" + row.Name)
		for _, s := range row.Seats {
			e.seat(canvas.Writer, s)
		}
		canvas.Gend()
	}
	canvas.Gend()

	canvas.End()
}

func (e *Exporter) seat(w io.Writer, s *model.Seat) {
	c := s.Center()
	fmt.Fprintf(w, `<circle cx="%s" cy="%s" r="%s" data-label="%s" fill="%s" stroke="%s"/>`+"\n",
		FormatNumber(c.X), FormatNumber(c.Y), FormatNumber(SeatRadius),
		html.EscapeString(s.Label), e.style.SeatFill, e.style.SeatStroke)
}

func (e *Exporter) roomAttrs(rs model.RoomStyle) string {
	fill, stroke, opacity := e.style.RoomFill, e.style.RoomStroke, e.style.RoomFillOpacity
	if rs.Fill != "" {
		fill = rs.Fill
	}
	if rs.Stroke != "" {
		stroke = rs.Stroke
	}
	if rs.FillOpacity != nil {
		opacity = *rs.FillOpacity
	}
	return fmt.Sprintf(`fill="%s" fill-opacity="%s" stroke="%s" stroke-width="%s"`,
		html.EscapeString(fill), FormatNumber(opacity),
		html.EscapeString(stroke), FormatNumber(e.style.RoomStrokeWidth))
}

// dataURI returns the background as a data URI, from the cache when the
// file is unchanged.
func (e *Exporter) dataURI(ctx context.Context, path string) (string, error) {
	stamp, err := cache.Stamp(path)
	if err != nil {
		return "", err
	}
	key := e.keyer.DataURIKey(stamp)

	var uri string
	if err := cache.GetJSON(ctx, e.cache, key, &uri); err == nil {
		return uri, nil
	}

	uri, err = DataURI(path)
	if err != nil {
		return "", err
	}
	if err := cache.SetJSON(ctx, e.cache, key, uri, cache.DataURITTL); err != nil {
		e.logger.Debug("cache data uri", "err", err)
	}
	return uri, nil
}

// DataURI reads path and encodes it as a base64 data URI.
func DataURI(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return "data:" + MIMEType(path) + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
