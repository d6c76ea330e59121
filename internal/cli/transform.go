package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/svgmapper/pkg/errors"
	"github.com/matzehuels/svgmapper/pkg/geom"
	"github.com/matzehuels/svgmapper/pkg/transform"
)

// transformCommand creates the transform debug command.
func (c *CLI) transformCommand() *cobra.Command {
	var (
		image, control, point string
		dpi                   float64
		stretch               string
	)

	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Print the image-to-control transform (debug)",
		Long: `Compute how an image is fitted into a control and map a point both ways.

The point is read in control coordinates, mapped to image pixels and back.`,
		Example: `  svgmapper transform --image 800x600 --control 1024x600 --point 512,300`,
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := parseSize(image)
			if err != nil {
				return err
			}
			ctl, err := parseSize(control)
			if err != nil {
				return err
			}
			mode, err := transform.ParseStretchMode(stretch)
			if err != nil {
				return err
			}
			p := transform.Params{
				Image:     img,
				Control:   ctl,
				DPIScaleX: transform.DPIScale(dpi),
				DPIScaleY: transform.DPIScale(dpi),
				Stretch:   mode,
			}
			r := transform.Calculate(p)

			rows := [][]string{
				{"scale", num(r.ScaleX) + ", " + num(r.ScaleY)},
				{"offset", num(r.OffsetX) + ", " + num(r.OffsetY)},
				{"identity", strconv.FormatBool(r.IsIdentity())},
			}
			if point != "" {
				sp, err := parsePoint(point)
				if err != nil {
					return err
				}
				px := r.ToPixel(sp, p)
				back := r.ToScreen(px, p)
				rows = append(rows,
					[]string{"control", fmtPoint(sp)},
					[]string{"pixel", fmtPoint(px)},
					[]string{"normalized", fmtPoint(transform.Normalize(px, img))},
					[]string{"round trip", fmtPoint(back)},
				)
			}
			fmt.Println(StyleTitle.Render(fmt.Sprintf("%s fit", mode)))
			fmt.Println(renderTable([]string{"", "value"}, rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&image, "image", "", "image size in pixels, WxH")
	cmd.Flags().StringVar(&control, "control", "", "control size, WxH")
	cmd.Flags().StringVar(&point, "point", "", "control point to map, X,Y")
	cmd.Flags().Float64Var(&dpi, "dpi", 96, "image DPI")
	cmd.Flags().StringVar(&stretch, "stretch", "uniform", "uniform, uniform-to-fill or fill")
	_ = cmd.MarkFlagRequired("image")
	_ = cmd.MarkFlagRequired("control")
	return cmd
}

// parseSize parses "WxH".
func parseSize(s string) (geom.Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return geom.Size{}, errors.New(errors.ErrCodeInvalidInput, "size %q: want WxH", s)
	}
	fw, err1 := strconv.ParseFloat(strings.TrimSpace(w), 64)
	fh, err2 := strconv.ParseFloat(strings.TrimSpace(h), 64)
	if err1 != nil || err2 != nil {
		return geom.Size{}, errors.New(errors.ErrCodeInvalidInput, "size %q: want WxH", s)
	}
	return geom.Sz(fw, fh), nil
}

// parsePoint parses "X,Y".
func parsePoint(s string) (geom.Point, error) {
	x, y, ok := strings.Cut(s, ",")
	if !ok {
		return geom.Point{}, errors.New(errors.ErrCodeInvalidInput, "point %q: want X,Y", s)
	}
	fx, err1 := strconv.ParseFloat(strings.TrimSpace(x), 64)
	fy, err2 := strconv.ParseFloat(strings.TrimSpace(y), 64)
	if err1 != nil || err2 != nil {
		return geom.Point{}, errors.New(errors.ErrCodeInvalidInput, "point %q: want X,Y", s)
	}
	return geom.Pt(fx, fy), nil
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func fmtPoint(p geom.Point) string { return num(p.X) + ", " + num(p.Y) }
