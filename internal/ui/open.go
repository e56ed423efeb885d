package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/ttg/internal/store"
)

func (a *App) openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <id>",
		Short: "Print a saved timetable",
		Long: `Print the timetable saved under a short link id.

Opening a link counts as using it, so it is kept from being reaped.

Example:
  ttg open k3x9q2a`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}

			st, err := s.Load(context.Background(), args[0])
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no timetable saved as %q", args[0])
			}
			if err != nil {
				return fmt.Errorf("loading %s: %w", args[0], err)
			}
			return a.printState(cmd, st)
		},
	}
}
