package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/svgmapper/pkg/editor"
	"github.com/matzehuels/svgmapper/pkg/errors"
	"github.com/matzehuels/svgmapper/pkg/transform"
)

// configFlags are per-command overrides of config file values.
type configFlags struct {
	grid      float64
	snap      bool
	dragSnap  bool
	stretch   string
	threshold float64
	embed     bool
	labels    bool
	spacing   float64
	width     int
	height    int
}

// addConfigFlags registers the override flags on cmd.
func (c *CLI) addConfigFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&c.overrides.grid, "grid", 0, "grid size in image pixels")
	f.BoolVar(&c.overrides.snap, "snap", true, "snap points to the grid")
	f.BoolVar(&c.overrides.dragSnap, "snap-drag", false, "snap vertices while dragging")
	f.StringVar(&c.overrides.stretch, "stretch", "", "background fit: uniform, uniform-to-fill or fill")
	f.Float64Var(&c.overrides.threshold, "close-threshold", 0, "closing gesture distance in pixels")
	f.BoolVar(&c.overrides.embed, "embed", true, "embed the background image in exports")
	f.BoolVar(&c.overrides.labels, "labels", true, "write room names as text in exports")
	f.Float64Var(&c.overrides.spacing, "row-spacing", 0, "distance between seats placed as a row")
	f.IntVar(&c.overrides.width, "width", 0, "export width without a background")
	f.IntVar(&c.overrides.height, "height", 0, "export height without a background")
}

// configFile returns the config file location: --config, else
// $XDG_CONFIG_HOME/svgmapper/config.toml.
func (c *CLI) configFile() (string, bool) {
	if c.configPath != "" {
		return c.configPath, true
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(dir, appName, "config.toml"), false
}

func defaultConfigHint() string {
	return filepath.Join("$XDG_CONFIG_HOME", appName, "config.toml")
}

// loadConfig reads the config file, then applies flags the user set.
func (c *CLI) loadConfig(cmd *cobra.Command) (editor.Config, error) {
	path, explicit := c.configFile()
	cfg, err := readConfig(path, explicit)
	if err != nil {
		return cfg, err
	}
	return c.applyFlags(cmd, cfg)
}

// readConfig decodes path over the defaults. A missing file is only an
// error when it was named explicitly.
func readConfig(path string, required bool) (editor.Config, error) {
	cfg := editor.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case os.IsNotExist(err) && !required:
		return editor.DefaultConfig(), nil
	case os.IsNotExist(err):
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	case err != nil:
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg.Normalize(), nil
}

func (c *CLI) applyFlags(cmd *cobra.Command, cfg editor.Config) (editor.Config, error) {
	f := cmd.Flags()
	changed := func(name string) bool {
		fl := f.Lookup(name)
		return fl != nil && fl.Changed
	}
	o := c.overrides
	if changed("grid") {
		cfg.GridSize = o.grid
	}
	if changed("snap") {
		cfg.Snap = o.snap
	}
	if changed("snap-drag") {
		cfg.SnapDuringDrag = o.dragSnap
	}
	if changed("stretch") {
		m, err := transform.ParseStretchMode(o.stretch)
		if err != nil {
			return cfg, err
		}
		cfg.Stretch = m
	}
	if changed("close-threshold") {
		cfg.CloseThreshold = o.threshold
	}
	if changed("embed") {
		cfg.EmbedBackground = o.embed
	}
	if changed("labels") {
		cfg.RoomLabels = o.labels
	}
	if changed("row-spacing") {
		cfg.RowSpacing = o.spacing
	}
	if changed("width") {
		cfg.DefaultWidth = o.width
	}
	if changed("height") {
		cfg.DefaultHeight = o.height
	}
	return cfg.Normalize(), nil
}
