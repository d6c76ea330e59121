package background

import (
	"math"
	"strconv"
	"strings"

	"github.com/rustyoz/svg"

	"github.com/matzehuels/svgmapper/pkg/errors"
)

// Size browsers use for an SVG without width, height or viewBox.
const (
	defaultSVGWidth  = 300
	defaultSVGHeight = 150
)

// svgSize returns the pixel size of an SVG document. Explicit width and
// height win; otherwise the viewBox size is used.
func svgSize(data []byte, name string) (int, int, error) {
	doc, err := svg.ParseSvg(string(data), name, 1)
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeUnsupportedFormat, err, "parse svg %s", name)
	}

	vw, vh := viewBoxSize(doc.ViewBox)
	w, wok := parseLength(doc.Width, vw)
	h, hok := parseLength(doc.Height, vh)

	switch {
	case wok && hok:
	case wok && vw > 0:
		h = w * vh / vw
	case hok && vh > 0:
		w = h * vw / vh
	case vw > 0 && vh > 0:
		w, h = vw, vh
	default:
		w, h = defaultSVGWidth, defaultSVGHeight
	}

	iw, ih := int(math.Round(w)), int(math.Round(h))
	if iw <= 0 || ih <= 0 {
		return 0, 0, errors.New(errors.ErrCodeUnsupportedFormat, "svg %s has empty size", name)
	}
	return iw, ih, nil
}

func viewBoxSize(vb string) (float64, float64) {
	f := strings.FieldsFunc(vb, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' || r == '\n' })
	if len(f) != 4 {
		return 0, 0
	}
	w, err1 := strconv.ParseFloat(f[2], 64)
	h, err2 := strconv.ParseFloat(f[3], 64)
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 0, 0
	}
	return w, h
}

var unitPixels = map[string]float64{
	"":   1,
	"px": 1,
	"pt": ReferenceDPI / 72,
	"pc": ReferenceDPI / 6,
	"in": ReferenceDPI,
	"cm": ReferenceDPI / 2.54,
	"mm": ReferenceDPI / 25.4,
}

// parseLength converts an SVG length to pixels. Percentages resolve
// against ref.
func parseLength(s string, ref float64) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(pct, 64)
		if err != nil || ref <= 0 {
			return 0, false
		}
		return v / 100 * ref, v > 0
	}
	i := strings.IndexFunc(s, func(r rune) bool { return r >= 'a' && r <= 'z' })
	num, unit := s, ""
	if i >= 0 {
		num, unit = s[:i], s[i:]
	}
	scale, ok := unitPixels[unit]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v * scale, true
}
