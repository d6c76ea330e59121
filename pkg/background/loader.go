// Package background image info background images: pixel dimensions, format
// and DPI scale.
//
// Raster formats are identified by [image.DecodeConfig], so only the image
// header is read. PNG and JPEG files additionally carry a physical
// resolution (the pHYs chunk, the JFIF density fields) which becomes the
// DPI scale relative to 96 DPI. SVG backgrounds are parsed for their root
// width, height and viewBox.
//
// Image info results are cached by file path, size and modification time.
package background

import (
	"bytes"
	"context"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/svgmapper/pkg/cache"
	"github.com/matzehuels/svgmapper/pkg/errors"
	"github.com/matzehuels/svgmapper/pkg/model"
	"github.com/matzehuels/svgmapper/pkg/observability"
)

// ReferenceDPI is the resolution at which one image pixel is one
// device-independent unit.
const ReferenceDPI = 96.0

// Loader inspects background images.
type Loader struct {
	cache  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithCache caches image info.
func WithCache(c cache.Cache, k cache.Keyer) Option {
	return func(l *Loader) {
		if c != nil {
			l.cache = c
		}
		if k != nil {
			l.keyer = k
		}
	}
}

// WithLogger sets the logger.
func WithLogger(lg *log.Logger) Option {
	return func(l *Loader) {
		if lg != nil {
			l.logger = lg
		}
	}
}

// NewLoader returns a loader without caching.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		cache:  cache.NewNullCache(),
		keyer:  cache.NewDefaultKeyer(),
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load inspects the image at path.
func (l *Loader) Load(ctx context.Context, path string) (model.Background, error) {
	start := time.Now()
	bg, err := l.load(ctx, path)
	observability.Background().OnBackgroundLoad(ctx, path, bg.Format, time.Since(start), err)
	if err != nil {
		return model.Background{}, err
	}
	l.logger.Debug("background loaded", "path", path, "format", bg.Format,
		"width", bg.Width, "height", bg.Height, "dpi_x", bg.DPIScaleX, "dpi_y", bg.DPIScaleY)
	return bg, nil
}

func (l *Loader) load(ctx context.Context, path string) (model.Background, error) {
	stamp, err := cache.Stamp(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Background{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "background %s", path)
		}
		return model.Background{}, errors.Wrap(errors.ErrCodeIO, err, "stat %s", path)
	}

	key := l.keyer.InfoKey(stamp)
	var bg model.Background
	if err := cache.GetJSON(ctx, l.cache, key, &bg); err == nil && bg.Loaded() {
		bg.Path = path
		return bg, nil
	}

	bg, err = Inspect(path)
	if err != nil {
		return model.Background{}, err
	}
	if err := cache.SetJSON(ctx, l.cache, key, bg, cache.InfoTTL); err != nil {
		l.logger.Debug("cache image info", "err", err)
	}
	return bg, nil
}

// Inspect reads the dimensions, format and DPI scale of the image at path
// without caching.
func Inspect(path string) (model.Background, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Background{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "background %s", path)
		}
		return model.Background{}, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
	}

	if isSVG(path, data) {
		w, h, err := svgSize(data, filepath.Base(path))
		if err != nil {
			return model.Background{}, err
		}
		return model.Background{Path: path, Format: "svg", Width: w, Height: h, DPIScaleX: 1, DPIScaleY: 1}, nil
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return model.Background{}, errors.Wrap(errors.ErrCodeUnsupportedFormat, err, "decode %s", path)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return model.Background{}, errors.New(errors.ErrCodeUnsupportedFormat, "%s has no pixels", path)
	}

	dx, dy := dpiScale(format, data)
	return model.Background{
		Path:      path,
		Format:    format,
		Width:     cfg.Width,
		Height:    cfg.Height,
		DPIScaleX: dx,
		DPIScaleY: dy,
	}, nil
}

func isSVG(path string, data []byte) bool {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return true
	}
	head := strings.TrimSpace(string(data[:min(len(data), 512)]))
	return strings.HasPrefix(head, "<svg") || (strings.HasPrefix(head, "<?xml") && strings.Contains(head, "<svg"))
}
