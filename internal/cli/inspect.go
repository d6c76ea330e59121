package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/svgmapper/pkg/background"
	"github.com/matzehuels/svgmapper/pkg/errors"
	"github.com/matzehuels/svgmapper/pkg/export"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <image>...",
		Short: "Show size, format and DPI of background images",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			store := newCache(c.noCache, c.Logger)
			defer store.Close()
			loader := background.NewLoader(
				background.WithCache(store, cacheKeyer()),
				background.WithLogger(loggerFromContext(ctx)),
			)

			var rows [][]string
			failed := 0
			for _, path := range args {
				bg, err := loader.Load(ctx, path)
				if err != nil {
					printError("%s: %s", path, errors.UserMessage(err))
					failed++
					continue
				}
				rows = append(rows, []string{
					filepath.Base(path),
					bg.Format,
					fmt.Sprintf("%d × %d", bg.Width, bg.Height),
					fmt.Sprintf("%.3g × %.3g", bg.DPIScaleX, bg.DPIScaleY),
					export.MIMEType(path),
				})
			}
			if len(rows) > 0 {
				fmt.Println(renderTable([]string{"File", "Format", "Pixels", "DPI scale", "MIME"}, rows))
			}
			if failed > 0 {
				return errors.New(errors.ErrCodeUnsupportedFormat, "%d of %d images could not be inspected", failed, len(args))
			}
			return nil
		},
	}
}
