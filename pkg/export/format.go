package export

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/matzehuels/svgmapper/pkg/geom"
)

const numberPlaces = 4

// FormatNumber prints v for an SVG attribute.
func FormatNumber(v float64) string {
	v = geom.Round(v, numberPlaces)
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatPoints prints points as an SVG points list: "x1,y1 x2,y2 ...".
func FormatPoints(points []geom.Point) string {
	return strings.Join(lo.Map(points, func(p geom.Point, _ int) string {
		return FormatNumber(p.X) + "," + FormatNumber(p.Y)
	}), " ")
}

var mimeTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".svg":  "image/svg+xml",
}

// MIMEType returns the media type for an image path by extension.
func MIMEType(path string) string {
	if m, ok := mimeTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return m
	}
	return "application/octet-stream"
}
