package cli

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/svgmapper/pkg/editor"
	"github.com/matzehuels/svgmapper/pkg/errors"
	"github.com/matzehuels/svgmapper/pkg/script"
)

// editCommand creates the edit command.
func (c *CLI) editCommand() *cobra.Command {
	var (
		output string
		from   string
	)

	cmd := &cobra.Command{
		Use:   "edit [background]",
		Short: "Annotate a floor plan in the terminal",
		Long: `Open the interactive terminal editor, optionally on a background image.

The cursor stands in for the mouse: space clicks, enter double-clicks
(closing a polygon near its start point), g grabs the selected vertex.
Press ? inside the editor for the full key list and e to export.`,
		Example: `  svgmapper edit floor1.png -o floor1.svg
  svgmapper edit --from lobby.toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !interactive(os.Stdout) {
				return errors.New(errors.ErrCodeInvalidState, "edit needs an interactive terminal; use run for scripts")
			}
			ctx := commandContext(cmd)

			s, cleanup, err := c.newSession(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if from != "" {
				sc, err := script.Load(from)
				if err != nil {
					return err
				}
				rep, err := script.NewRunner(script.WithLogger(c.Logger)).Run(ctx, s, sc)
				if err != nil {
					return err
				}
				for _, w := range rep.Warnings {
					printWarning("%s", w)
				}
			}
			if len(args) == 1 {
				abs, err := filepath.Abs(args[0])
				if err != nil {
					return err
				}
				if err := s.ImportBackground(ctx, abs); err != nil {
					printWarning("Background not loaded: %v", err)
				}
			}

			defer silence(c.Logger, c.logOut)()

			final, err := tea.NewProgram(newEditModel(ctx, s, output), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(editModel); ok {
				printEditSummary(m.s)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "plan.svg", "file written by the export key")
	cmd.Flags().StringVar(&from, "from", "", "replay this script before editing")
	c.addConfigFlags(cmd)
	return cmd
}

func printEditSummary(s *editor.Session) {
	printSuccess("Editor closed")
	fmt.Println(docStats(s.Doc.Rooms.Len(), s.Doc.Seats.Len(), s.History.UndoLen(), s.Doc.Background.Path))
}
