package ui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

func (a *App) saveCmd() *cobra.Command {
	var copyLink bool

	cmd := &cobra.Command{
		Use:   "save <state.json>",
		Short: "Save a selection file and print its link",
		Long: `Save the selection in a file and print a shareable link to it.

Saving the same selection twice returns the same link.

Example:
  ttg save picks.json --copy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := readState(args[0])
			if err != nil {
				return err
			}

			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}
			if _, err := cat.ResolveState(st); err != nil {
				return fmt.Errorf("resolving selection: %w", err)
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			id, err := s.Save(context.Background(), st)
			if err != nil {
				return fmt.Errorf("saving: %w", err)
			}

			link := a.config.LinkFor(id)
			fmt.Fprintln(cmd.OutOrStdout(), formatStats(link))
			if copyLink {
				if err := clipboard.WriteAll(link); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), formatMuted("could not copy link: "+err.Error()))
				} else {
					fmt.Fprintln(cmd.ErrOrStderr(), formatMuted("copied to clipboard"))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&copyLink, "copy", false, "Copy the link to the clipboard")
	return cmd
}
