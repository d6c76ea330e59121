// Package script replays recorded editing gestures against an editor
// session.
//
// Scripts are TOML documents with a list of steps:
//
//	background = "plan.png"
//	control = [1024, 600]
//
//	[[step]]
//	action = "tool"
//	tool = "polygon"
//
//	[[step]]
//	action = "click"
//	at = [112, 0]
//
//	[[step]]
//	action = "close"
//	name = "Lobby"
//
//	[[step]]
//	action = "export"
//	path = "plan.svg"
//
// A "row" step places a labeled seat row from at to to (optional spacing
// in pixels), and a "style" step sets fill, stroke and opacity on the
// selected room.
//
// The same script may be written as YAML (.yaml or .yml) with identical
// keys and a "step" list.
//
// Points are window coordinates unless the script sets space = "pixel".
// Refused edits (a vertex delete on a triangle, a close outside drawing)
// are collected as warnings and replay continues; other failures stop it.
package script

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/svgmapper/pkg/errors"
	"github.com/matzehuels/svgmapper/pkg/geom"
)

// Coordinate spaces for step points.
const (
	ScreenSpace = "screen"
	PixelSpace  = "pixel"
)

// Script is a parsed gesture script.
type Script struct {
	Background string    `toml:"background" yaml:"background"`
	Control    []float64 `toml:"control" yaml:"control"`
	Space      string    `toml:"space" yaml:"space"`
	Steps      []Step    `toml:"step" yaml:"step"`

	// Dir resolves relative paths in the script. Set by Load.
	Dir string `toml:"-" yaml:"-"`
}

// Step is one gesture. Which fields apply depends on Action.
type Step struct {
	Action string    `toml:"action" yaml:"action"`
	At     []float64 `toml:"at" yaml:"at"`
	To     []float64 `toml:"to" yaml:"to"`
	By     []float64 `toml:"by" yaml:"by"`
	Rect   []float64 `toml:"rect" yaml:"rect"`
	Name   string    `toml:"name" yaml:"name"`
	Tool   string    `toml:"tool" yaml:"tool"`
	Path   string    `toml:"path" yaml:"path"`
	Scale  float64   `toml:"scale" yaml:"scale"`
	Factor float64   `toml:"factor" yaml:"factor"`
	Size   float64   `toml:"size" yaml:"size"`
	On     *bool     `toml:"on" yaml:"on"`

	Spacing float64  `toml:"spacing" yaml:"spacing"`
	Fill    string   `toml:"fill" yaml:"fill"`
	Stroke  string   `toml:"stroke" yaml:"stroke"`
	Opacity *float64 `toml:"opacity" yaml:"opacity"`

	Rooms *int `toml:"rooms" yaml:"rooms"`
	Seats *int `toml:"seats" yaml:"seats"`
	Undo  *int `toml:"undo" yaml:"undo"`
	Redo  *int `toml:"redo" yaml:"redo"`
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "script %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
	}
	parse := Parse
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parse = ParseYAML
	}
	sc, err := parse(string(data))
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	sc.Dir = filepath.Dir(path)
	return sc, nil
}

// Parse parses a script. Unknown keys and actions are rejected.
func Parse(src string) (*Script, error) {
	var sc Script
	md, err := toml.Decode(src, &sc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse script")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown script keys: %s", strings.Join(keys, ", "))
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// ParseYAML parses a script written as YAML. Unknown keys and actions are
// rejected as in [Parse].
func ParseYAML(src string) (*Script, error) {
	var sc Script
	dec := yaml.NewDecoder(strings.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse script")
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Script) validate() error {
	switch sc.Space {
	case "":
		sc.Space = ScreenSpace
	case ScreenSpace, PixelSpace:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "space must be %q or %q, got %q", ScreenSpace, PixelSpace, sc.Space)
	}
	if sc.Control != nil && len(sc.Control) != 2 {
		return errors.New(errors.ErrCodeInvalidInput, "control must be [width, height]")
	}
	for i := range sc.Steps {
		if err := sc.Steps[i].validate(); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "step %d", i+1)
		}
	}
	return nil
}

type requirement struct {
	at, to, by, rect, path bool
}

var actions = map[string]requirement{
	"click":         {at: true},
	"dblclick":      {at: true},
	"drag":          {at: true, to: true},
	"row":           {at: true, to: true},
	"insert":        {at: true},
	"seat":          {at: true},
	"zoom":          {at: true},
	"pan":           {by: true},
	"move":          {by: true},
	"resize":        {rect: true},
	"background":    {path: true},
	"export":        {path: true},
	"export-png":    {path: true},
	"close":         {},
	"cancel":        {},
	"revoke":        {},
	"undo":          {},
	"redo":          {},
	"tool":          {},
	"delete":        {},
	"delete-vertex": {},
	"rename":        {},
	"field":         {},
	"style":         {},
	"copy":          {},
	"paste":         {},
	"duplicate":     {},
	"snap":          {},
	"grid":          {},
	"expect":        {},
}

func (st *Step) validate() error {
	req, ok := actions[st.Action]
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown action %q", st.Action)
	}
	check := func(need bool, v []float64, key string, n int) error {
		if need && len(v) != n {
			return errors.New(errors.ErrCodeInvalidInput, "%s needs %s with %d numbers", st.Action, key, n)
		}
		return nil
	}
	if err := check(req.at, st.At, "at", 2); err != nil {
		return err
	}
	if err := check(req.to, st.To, "to", 2); err != nil {
		return err
	}
	if err := check(req.by, st.By, "by", 2); err != nil {
		return err
	}
	if err := check(req.rect, st.Rect, "rect", 4); err != nil {
		return err
	}
	if req.path && strings.TrimSpace(st.Path) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "%s needs path", st.Action)
	}
	if st.Action == "snap" && st.On == nil {
		return errors.New(errors.ErrCodeInvalidInput, "snap needs on = true|false")
	}
	return nil
}

func point(v []float64) geom.Point { return geom.Pt(v[0], v[1]) }
