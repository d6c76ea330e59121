package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/svgmapper/pkg/editor"
	"github.com/matzehuels/svgmapper/pkg/errors"
	"github.com/matzehuels/svgmapper/pkg/script"
)

// replayOpts are shared by run and export.
type replayOpts struct {
	strict     bool
	background string
}

func (o *replayOpts) addFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.strict, "strict", false, "fail on refused steps instead of warning")
	cmd.Flags().StringVarP(&o.background, "background", "b", "", "background image (overrides the script)")
}

// runCommand creates the run command.
func (c *CLI) runCommand() *cobra.Command {
	var opts replayOpts
	var output string

	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Replay a gesture script",
		Long: `Replay a TOML or YAML gesture script against a new document.

Exports named inside the script are written relative to the script file.
Use --output to additionally write the final document (.svg or .png).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, rep, cleanup, err := c.replay(cmd, args[0], opts)
			if err != nil {
				return err
			}
			defer cleanup()
			if output != "" {
				if err := writeOutput(commandContext(cmd), s, output, 1); err != nil {
					return err
				}
				rep.Exports = append(rep.Exports, output)
			}
			printReport(s, rep)
			return nil
		},
	}
	opts.addFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the final document to this file")
	c.addConfigFlags(cmd)
	return cmd
}

// replay loads path and replays it in a fresh session.
func (c *CLI) replay(cmd *cobra.Command, path string, opts replayOpts) (*editor.Session, *script.Report, func(), error) {
	ctx := commandContext(cmd)
	logger := loggerFromContext(ctx)

	sc, err := script.Load(path)
	if err != nil {
		return nil, nil, nil, err
	}
	if opts.background != "" {
		abs, err := filepath.Abs(opts.background)
		if err != nil {
			return nil, nil, nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "background %s", opts.background)
		}
		sc.Background = abs
	}

	s, cleanup, err := c.newSession(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	prog := newProgress(logger)
	rep, err := script.NewRunner(script.Strict(opts.strict), script.WithLogger(logger)).Run(ctx, s, sc)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	prog.done("Replayed " + pluralize(rep.Steps, "step"))
	return s, rep, cleanup, nil
}

// writeOutput exports the session by file extension.
func writeOutput(ctx context.Context, s *editor.Session, path string, scale float64) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return s.ExportPNGToFile(ctx, path, scale)
	case ".svg", "":
		return s.ExportToFile(ctx, path)
	}
	return errors.New(errors.ErrCodeUnsupportedFormat, "cannot export %s: want .svg or .png", path)
}

func printReport(s *editor.Session, rep *script.Report) {
	for _, w := range rep.Warnings {
		printWarning("%s", w)
	}
	printSuccess("Replayed %s", pluralize(rep.Steps, "step"))
	fmt.Println(docStats(s.Doc.Rooms.Len(), s.Doc.Seats.Len(), s.History.UndoLen(), s.Doc.Background.Path))
	for _, path := range rep.Exports {
		printFile(path)
	}
}

func pluralize(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
