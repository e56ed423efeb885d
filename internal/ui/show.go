package ui

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/ttg/internal/catalog"
	"github.com/javiermolinar/ttg/internal/timegrid"
)

func (a *App) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <state.json>",
		Short: "Print the timetable of a selection file",
		Long: `Print the timetable described by a selection file.

The file holds the school id, the colour mode and one selector per course:
  {"school": "mcmaster", "type": "color",
   "selectors": [["COMPSCI", "0", "0", null, "0"]]}

Example:
  ttg show picks.json --term 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := readState(args[0])
			if err != nil {
				return err
			}
			return a.printState(cmd, st)
		},
	}
}

func readState(path string) (catalog.State, error) {
	f, err := os.Open(path)
	if err != nil {
		return catalog.State{}, fmt.Errorf("opening selection file: %w", err)
	}
	defer func() { _ = f.Close() }()

	st, err := catalog.ParseState(f)
	if err != nil {
		return catalog.State{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return st, nil
}

// printState restores st into a fresh session and prints it.
func (a *App) printState(cmd *cobra.Command, st catalog.State) error {
	cat, err := a.loadCatalog()
	if err != nil {
		return err
	}
	units, err := cat.ResolveState(st)
	if err != nil {
		return fmt.Errorf("resolving selection: %w", err)
	}
	session, err := a.newSession(cat)
	if err != nil {
		return err
	}
	session.Restore(units, st.Monochrome() || a.config.Display.Monochrome)

	opts := PrintOpts{Width: termWidth()}
	if cmd.Flags().Changed("term") {
		opts.Term = timegrid.Term(a.config.Display.Term)
	}
	PrintTimetable(cmd.OutOrStdout(), cat, session, opts)
	return nil
}
