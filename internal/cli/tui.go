package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/svgmapper/pkg/editor"
	"github.com/matzehuels/svgmapper/pkg/errors"
	"github.com/matzehuels/svgmapper/pkg/geom"
	"github.com/matzehuels/svgmapper/pkg/model"
	"github.com/matzehuels/svgmapper/pkg/viewport"
)

// Terminal cells are about twice as tall as wide; one row spans two
// screen units so the drawing keeps its aspect ratio.
const rowUnits = 2

// chromeRows is the number of rows used by the status and help lines.
const chromeRows = 3

var (
	styleRoom     = lipgloss.NewStyle().Foreground(colorBlue)
	styleSelected = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	styleVertex   = lipgloss.NewStyle().Foreground(colorWhite)
	styleSeat     = lipgloss.NewStyle().Foreground(colorOrange)
	styleDraft    = lipgloss.NewStyle().Foreground(colorYellow)
	styleGrid     = lipgloss.NewStyle().Foreground(colorDim)
	styleCursor   = lipgloss.NewStyle().Reverse(true)
)

type cell struct {
	r     rune
	style *lipgloss.Style
}

// editModel is the bubbletea model of the terminal editor. It renders the
// session into a character canvas and turns keys into session input at the
// cursor cell.
type editModel struct {
	ctx    context.Context
	s      *editor.Session
	output string

	cols, rows int // canvas size in cells
	cursor     [2]int
	dragging   bool

	naming bool
	name   string

	status string
	isErr  bool
}

func newEditModel(ctx context.Context, s *editor.Session, output string) editModel {
	m := editModel{ctx: ctx, s: s, output: output, status: "p polygon · s seat · v select · ? keys"}
	m.resize(80, 24)
	return m
}

// resize fits the canvas to a terminal of w×h cells. Without a background
// the camera zooms so the default export canvas is visible.
func (m *editModel) resize(w, h int) {
	m.cols = max(w, 10)
	m.rows = max(h-chromeRows, 5)
	control := geom.Sz(float64(m.cols), float64(m.rows*rowUnits))
	m.s.SetControlSize(control)
	m.s.ResetView()
	if !m.s.Doc.Background.Loaded() {
		cfg := m.s.Config()
		fit := math.Min(control.W/float64(cfg.DefaultWidth), control.H/float64(cfg.DefaultHeight))
		m.s.ZoomAt(fit, geom.Point{})
	}
	m.cursor[0] = min(m.cursor[0], m.cols-1)
	m.cursor[1] = min(m.cursor[1], m.rows-1)
}

// screen is the window point of the cursor cell.
func (m editModel) screen() geom.Point {
	return geom.Pt(float64(m.cursor[0]), float64(m.cursor[1]*rowUnits))
}

func (m editModel) Init() tea.Cmd { return nil }

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if m.naming {
			return m.updateName(msg)
		}
		return m.updateKey(msg)
	}
	return m, nil
}

func (m editModel) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.naming = false
		room, err := m.s.ClosePolygon(m.name)
		m.name = ""
		if err != nil {
			return m.fail(err), nil
		}
		if room == nil {
			return m.info("draft discarded: fewer than 3 points"), nil
		}
		return m.info(fmt.Sprintf("added %s (%d points)", room.Name, len(room.Points))), nil
	case tea.KeyEsc:
		m.naming = false
		m.name = ""
		return m.info("naming cancelled, still drawing"), nil
	case tea.KeyBackspace:
		if r := []rune(m.name); len(r) > 0 {
			m.name = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.name += " "
	case tea.KeyRunes:
		m.name += string(msg.Runes)
	}
	return m, nil
}

func (m editModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "left", "h":
		return m.move(-1, 0), nil
	case "right", "l":
		return m.move(1, 0), nil
	case "up", "k":
		return m.move(0, -1), nil
	case "down", "j":
		return m.move(0, 1), nil
	case "H":
		return m.move(-5, 0), nil
	case "L":
		return m.move(5, 0), nil
	case "K":
		return m.move(0, -5), nil
	case "J":
		return m.move(0, 5), nil
	case "p":
		m.s.SetTool(editor.PolygonTool)
		return m.info("polygon tool"), nil
	case "s":
		m.s.SetTool(editor.SeatTool)
		return m.info("seat tool"), nil
	case "v":
		m.s.SetTool(editor.SelectTool)
		return m.info("select tool"), nil
	case "w":
		m.s.SetTool(editor.RowTool)
		return m.info("row tool: space at the first seat, space at the last"), nil
	case "c":
		return m.recolor(), nil
	case " ":
		return m.click(1), nil
	case "enter":
		if next := m.click(1); next.isErr {
			return next, nil
		}
		return m.click(2), nil
	case "g":
		return m.grab(), nil
	case "esc":
		if m.s.Draft.Drawing() {
			return m.report(m.s.CancelPolygon(), "draft cancelled"), nil
		}
		if _, ok := m.s.RowStart(); ok {
			m.s.CancelRow()
			return m.info("row cancelled"), nil
		}
		m.s.Selection.Clear()
		m.s.Vertex.Deselect()
		return m.info("selection cleared"), nil
	case "backspace":
		if m.s.Draft.Drawing() {
			return m.report(m.s.RevokePoint(), "point removed"), nil
		}
		if _, _, ok := m.s.Vertex.Active(); !ok && m.s.Selection.Empty() {
			return m.fail(errors.New(errors.ErrCodeInvalidState, "nothing selected")), nil
		}
		return m.report(m.s.DeleteSelection(), "deleted"), nil
	case "u", "ctrl+z":
		desc := m.s.History.UndoDescription()
		return m.report(m.s.Undo(), "undo "+desc), nil
	case "r", "ctrl+y":
		desc := m.s.History.RedoDescription()
		return m.report(m.s.Redo(), "redo "+desc), nil
	case "y":
		m.s.Copy()
		return m.info("copied"), nil
	case "P":
		return m.report(m.s.Paste(), "pasted"), nil
	case "D":
		return m.report(m.s.Duplicate(), "duplicated"), nil
	case "#":
		snap := !m.s.Config().Snap
		m.s.SetSnap(snap)
		return m.info(fmt.Sprintf("snap %v", snap)), nil
	case "]":
		m.s.ZoomAt(viewport.ZoomStep, m.screen())
		return m, nil
	case "[":
		m.s.ZoomAt(1/viewport.ZoomStep, m.screen())
		return m, nil
	case "e":
		err := m.s.ExportToFile(m.ctx, m.output)
		return m.report(err, "exported "+m.output), nil
	case "?":
		return m.info("arrows move · p/s/w/v tools · space click · enter double-click · g grab vertex · c color · ⌫ delete · u/r undo/redo · y/P copy/paste · [ ] zoom · # snap · e export · q quit"), nil
	}
	return m, nil
}

func (m editModel) move(dx, dy int) editModel {
	m.cursor[0] = min(max(m.cursor[0]+dx, 0), m.cols-1)
	m.cursor[1] = min(max(m.cursor[1]+dy, 0), m.rows-1)
	if m.dragging {
		if _, err := m.s.DragTo(m.screen()); err != nil {
			m.dragging = false
			return m.fail(err)
		}
	}
	return m
}

func (m editModel) click(n int) editModel {
	out, err := m.s.Click(m.screen(), n)
	if err != nil {
		return m.fail(err)
	}
	switch out.Kind {
	case editor.NeedsName:
		m.naming = true
		m.name = ""
		return m.info("room name (enter to accept, blank for \"" + model.DefaultRoomName + "\")")
	case editor.Nothing:
		return m
	case editor.RowAdded:
		return m.info(fmt.Sprintf("row %s: %s", out.Row[0].Row, pluralize(len(out.Row), "seat")))
	}
	return m.info(fmt.Sprintf("%s at %s", out.Kind, fmtPoint(geom.Pt(math.Round(out.Pixel.X), math.Round(out.Pixel.Y)))))
}

// roomColors are the fills cycled through by the color key. The first
// entry restores the export default.
var roomColors = []string{"", "#e74c3c", "#27ae60", "#f39c12", "#8e44ad"}

// recolor gives the selected room the next color of roomColors.
func (m editModel) recolor() editModel {
	room := m.s.Selection.Room()
	if room == nil {
		return m.fail(errors.New(errors.ErrCodeInvalidState, "select a room first"))
	}
	next := 0
	for i, c := range roomColors {
		if c == room.Style.Fill {
			next = (i + 1) % len(roomColors)
			break
		}
	}
	style := room.Style.Clone()
	style.Fill, style.Stroke = roomColors[next], roomColors[next]
	name := roomColors[next]
	if name == "" {
		name = "default"
	}
	return m.report(m.s.SetSelectedStyle(style), "color "+name)
}

// grab starts or ends dragging the selected vertex.
func (m editModel) grab() editModel {
	if m.dragging {
		m.dragging = false
		return m.report(m.s.Release(), "vertex moved")
	}
	if _, _, ok := m.s.Vertex.Active(); !ok {
		return m.fail(errors.New(errors.ErrCodeInvalidState, "select a vertex first"))
	}
	m.dragging = true
	return m.info("dragging vertex, g to drop")
}

func (m editModel) report(err error, ok string) editModel {
	if err != nil {
		return m.fail(err)
	}
	return m.info(ok)
}

func (m editModel) info(msg string) editModel {
	m.status, m.isErr = msg, false
	return m
}

func (m editModel) fail(err error) editModel {
	m.status, m.isErr = errors.UserMessage(err), true
	return m
}

// =============================================================================
// Rendering
// =============================================================================

func (m editModel) View() string {
	canvas := m.canvas()
	var b strings.Builder
	for _, row := range canvas {
		for _, c := range row {
			if c.style != nil {
				b.WriteString(c.style.Render(string(c.r)))
			} else {
				b.WriteRune(c.r)
			}
		}
		b.WriteByte('\n')
	}
	b.WriteString(m.statusLine())
	b.WriteByte('\n')
	if m.naming {
		b.WriteString(StyleTitle.Render("name: ") + m.name + "▏")
	} else if m.isErr {
		b.WriteString(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(m.status))
	} else {
		b.WriteString(StyleDim.Render(m.status))
	}
	return b.String()
}

func (m editModel) statusLine() string {
	s := m.s
	cfg := s.Config()
	px := s.ScreenToPixel(m.screen())
	snap := "off"
	if cfg.Snap {
		snap = num(cfg.GridSize)
	}
	parts := []string{
		StyleTitle.Render(s.Tool().String()),
		fmt.Sprintf("%.0f,%.0f", px.X, px.Y),
		"snap " + snap,
		fmt.Sprintf("zoom %.2f", s.Camera().Zoom),
	}
	if s.Draft.Drawing() {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("drawing %d", s.Draft.Count())))
	}
	line := strings.Join(parts, StyleDim.Render(" · "))
	return line + docStats(s.Doc.Rooms.Len(), s.Doc.Seats.Len(), s.History.UndoLen(), s.Doc.Background.Path)
}

func (m editModel) canvas() [][]cell {
	grid := make([][]cell, m.rows)
	for y := range grid {
		grid[y] = make([]cell, m.cols)
		for x := range grid[y] {
			grid[y][x] = cell{r: ' '}
		}
	}
	put := func(p geom.Point, r rune, st *lipgloss.Style) {
		x, y := int(math.Floor(p.X)), int(math.Floor(p.Y/rowUnits))
		if y >= 0 && y < m.rows && x >= 0 && x < m.cols {
			grid[y][x] = cell{r: r, style: st}
		}
	}
	line := func(a, b geom.Point, r rune, st *lipgloss.Style) {
		n := int(math.Ceil(math.Max(math.Abs(b.X-a.X), math.Abs(b.Y-a.Y)/rowUnits))) + 1
		for i := 0; i <= n; i++ {
			t := float64(i) / float64(n)
			put(geom.Pt(a.X+(b.X-a.X)*t, a.Y+(b.Y-a.Y)*t), r, st)
		}
	}
	s := m.s

	if s.Config().Snap {
		lines := s.PixelGrid(geom.Sz(float64(m.cols), float64(m.rows*rowUnits)))
		if len(lines.Vertical) < m.cols/2 && len(lines.Horizontal) < m.rows {
			for _, x := range lines.Vertical {
				for _, y := range lines.Horizontal {
					put(s.PixelToScreen(geom.Pt(x, y)), '·', &styleGrid)
				}
			}
		}
	}

	size := s.Doc.ImageSize()
	for _, room := range s.Doc.Rooms.Items() {
		st := &styleRoom
		if room.IsSelected {
			st = &styleSelected
		}
		pts := room.PixelPoints(size)
		if room.Path != nil {
			b := room.Path.Box
			pts = []geom.Point{{X: b.X, Y: b.Y}, {X: b.X + b.W, Y: b.Y}, {X: b.X + b.W, Y: b.Y + b.H}, {X: b.X, Y: b.Y + b.H}}
		}
		for i := range pts {
			line(s.PixelToScreen(pts[i]), s.PixelToScreen(pts[(i+1)%len(pts)]), '•', st)
		}
		if room.IsSelected && room.Path == nil {
			for _, p := range pts {
				put(s.PixelToScreen(p), 'o', &styleVertex)
			}
		}
	}
	if room, i, ok := s.Vertex.Active(); ok && i < len(room.Points) {
		put(s.PixelToScreen(room.Points[i]), '◆', &styleSelected)
	}

	for _, seat := range s.Doc.Seats.Items() {
		put(s.PixelToScreen(seat.Center()), '■', &styleSeat)
	}
	if start, ok := s.RowStart(); ok {
		line(s.PixelToScreen(start), m.screen(), '·', &styleDraft)
		put(s.PixelToScreen(start), '◎', &styleDraft)
	}

	if pts := s.Draft.Points(); len(pts) > 0 {
		for i := 1; i < len(pts); i++ {
			line(s.PixelToScreen(pts[i-1]), s.PixelToScreen(pts[i]), '·', &styleDraft)
		}
		for _, p := range pts {
			put(s.PixelToScreen(p), '+', &styleDraft)
		}
		if mk := s.Draft.Marker(); mk != nil {
			put(s.PixelToScreen(mk.Center), '◎', &styleDraft)
		}
	}

	c := m.cursor
	cur := grid[c[1]][c[0]]
	if cur.r == ' ' {
		cur.r = '▮'
	}
	grid[c[1]][c[0]] = cell{r: cur.r, style: &styleCursor}
	return grid
}
