package editor

import (
	"github.com/matzehuels/svgmapper/pkg/draft"
	"github.com/matzehuels/svgmapper/pkg/edit"
	"github.com/matzehuels/svgmapper/pkg/export"
	"github.com/matzehuels/svgmapper/pkg/snap"
	"github.com/matzehuels/svgmapper/pkg/transform"
	"github.com/matzehuels/svgmapper/pkg/undo"
)

// Config holds the tunable editor settings. It decodes from the TOML
// config file; zero values are replaced by defaults in [Config.Normalize].
type Config struct {
	GridSize          float64               `toml:"grid_size"`
	Snap              bool                  `toml:"snap"`
	SnapDuringDrag    bool                  `toml:"snap_during_drag"`
	Stretch           transform.StretchMode `toml:"stretch"`
	CloseThreshold    float64               `toml:"close_threshold"`
	MaxHistory        int                   `toml:"max_history"`
	UndoFailurePolicy undo.FailurePolicy    `toml:"undo_failure_policy"`
	DefaultWidth      int                   `toml:"default_width"`
	DefaultHeight     int                   `toml:"default_height"`
	EmbedBackground   bool                  `toml:"embed_background"`
	RoomLabels        bool                  `toml:"room_labels"`
	RowSpacing        float64               `toml:"row_spacing"`
}

// DefaultConfig returns the settings used without a config file.
func DefaultConfig() Config {
	return Config{
		GridSize:        snap.DefaultGridSize,
		Snap:            true,
		Stretch:         transform.Uniform,
		CloseThreshold:  draft.DefaultCloseThreshold,
		DefaultWidth:    export.DefaultWidth,
		DefaultHeight:   export.DefaultHeight,
		EmbedBackground: true,
		RoomLabels:      true,
		RowSpacing:      edit.DefaultRowSpacing,
	}
}

// Normalize fills unset values with defaults and clamps the grid size.
func (c Config) Normalize() Config {
	if c.GridSize == 0 {
		c.GridSize = snap.DefaultGridSize
	}
	c.GridSize = snap.ClampGridSize(c.GridSize)
	if c.CloseThreshold <= 0 {
		c.CloseThreshold = draft.DefaultCloseThreshold
	}
	if c.MaxHistory < 0 {
		c.MaxHistory = 0
	}
	if c.DefaultWidth <= 0 {
		c.DefaultWidth = export.DefaultWidth
	}
	if c.DefaultHeight <= 0 {
		c.DefaultHeight = export.DefaultHeight
	}
	if c.RowSpacing <= 0 {
		c.RowSpacing = edit.DefaultRowSpacing
	}
	return c
}

// Snapper returns the grid snapper for c.
func (c Config) Snapper() snap.Snapper {
	return snap.Snapper{Enabled: c.Snap, GridSize: c.GridSize}
}
