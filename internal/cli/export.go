package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/svgmapper/pkg/errors"
)

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var opts replayOpts
	var (
		output string
		png    string
		scale  float64
	)

	cmd := &cobra.Command{
		Use:   "export <script.toml>",
		Short: "Replay a script and write the SVG",
		Long: `Replay a gesture script and write the resulting document as SVG, and
optionally a PNG preview of the rooms and seats.

The SVG uses the background's pixel coordinates; without a background the
canvas defaults to 2000x1400 and grows to fit the drawing.`,
		Example: `  svgmapper export plan.toml -o plan.svg
  svgmapper export plan.toml -b floor2.png -o floor2.svg --png floor2-preview.png --scale 0.5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return errors.New(errors.ErrCodeInvalidPath, "--output is required")
			}
			ctx := commandContext(cmd)
			s, rep, cleanup, err := c.replay(cmd, args[0], opts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := s.ExportToFile(ctx, output); err != nil {
				return err
			}
			rep.Exports = append(rep.Exports, output)

			if png != "" {
				render := func() error { return s.ExportPNGToFile(ctx, png, scale) }
				if w := cmd.ErrOrStderr(); interactive(w) {
					err = newSpinner(ctx, w, "Rendering preview...").run(render)
				} else {
					err = render()
				}
				if err != nil {
					return err
				}
				rep.Exports = append(rep.Exports, png)
			}

			printReport(s, rep)
			if png == "" {
				printNextStep("Preview", "svgmapper export "+args[0]+" -o "+output+" --png preview.png")
			}
			return nil
		},
	}
	opts.addFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "SVG output file")
	cmd.Flags().StringVar(&png, "png", "", "also write a PNG preview of the annotations")
	cmd.Flags().Float64Var(&scale, "scale", 1, "PNG preview scale")
	c.addConfigFlags(cmd)
	return cmd
}
