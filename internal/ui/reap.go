package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *App) reapCmd() *cobra.Command {
	var before string

	cmd := &cobra.Command{
		Use:   "reap",
		Short: "Delete saved timetables nobody has opened for a while",
		Long: `Delete saved timetables that were last saved or opened before a date.

Without --before the cutoff is storage.retention_days ago.

Example:
  ttg reap --before 2026-01-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cutoff, err := a.reapCutoff(before, time.Now())
			if err != nil {
				return err
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			n, err := s.Reap(context.Background(), cutoff)
			if err != nil {
				return fmt.Errorf("reaping: %w", err)
			}

			a.logger.Info("reaped saved timetables", zap.Int64("deleted", n), zap.Time("before", cutoff))
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s saved timetable(s) last used before %s\n",
				formatStats(fmt.Sprint(n)), cutoff.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&before, "before", "", "Cutoff date (YYYY-MM-DD)")
	return cmd
}

// reapCutoff parses --before, defaulting to the configured retention.
func (a *App) reapCutoff(before string, now time.Time) (time.Time, error) {
	if before == "" {
		return now.AddDate(0, 0, -a.config.Storage.RetentionDays), nil
	}
	t, err := time.ParseInLocation("2006-01-02", before, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --before date %q (want YYYY-MM-DD)", before)
	}
	return t, nil
}
