package export

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"math"
	"os"
	"time"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/matzehuels/svgmapper/pkg/errors"
	"github.com/matzehuels/svgmapper/pkg/model"
	"github.com/matzehuels/svgmapper/pkg/observability"
)

// maxPNGSide bounds the preview raster.
const maxPNGSide = 8192

// RenderPNG rasterizes the annotation layer (rooms and seats, no
// background) at scale times the export canvas size.
func (e *Exporter) RenderPNG(ctx context.Context, doc *model.Document, scale float64) ([]byte, error) {
	start := time.Now()
	observability.Export().OnExportStart(ctx, "png", doc.Rooms.Len(), doc.Seats.Len())

	data, err := e.renderPNG(ctx, doc, scale)

	observability.Export().OnExportComplete(ctx, "png", len(data), time.Since(start), err)
	return data, err
}

func (e *Exporter) renderPNG(ctx context.Context, doc *model.Document, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	var src bytes.Buffer
	e.render(ctx, &src, doc, false)

	icon, err := oksvg.ReadIconStream(&src, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse exported svg")
	}

	vw, vh := viewBox(doc, e.defaultSize)
	w := int(math.Min(math.Ceil(float64(vw)*scale), maxPNGSide))
	h := int(math.Min(math.Ceil(float64(vh)*scale), maxPNGSide))
	icon.SetTarget(0, 0, float64(w), float64(h))

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)

	var out bytes.Buffer
	if err := png.Encode(&out, rgba); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return out.Bytes(), nil
}

// ExportPNGToFile writes the annotation preview to path.
func (e *Exporter) ExportPNGToFile(ctx context.Context, doc *model.Document, path string, scale float64) error {
	if err := errors.ValidateExportPath(path, ".png"); err != nil {
		return err
	}
	data, err := e.RenderPNG(ctx, doc, scale)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	e.logger.Info("exported png", "path", path, "bytes", len(data))
	return nil
}
