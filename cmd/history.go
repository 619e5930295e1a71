package cmd

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/curator/internal/history"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent pipeline runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			if cfg.HistoryDB == "" {
				return errors.New("history is disabled (history_db is empty)")
			}

			store, err := history.Open(cfg.HistoryDB)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.LastRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				color.Yellow("No runs recorded yet")
				return nil
			}

			color.White("%-4s %-20s %-8s %-6s %-10s %-9s %-9s", "ID", "FINISHED", "RULES", "DOCS", "CANDIDATES", "ACCEPTED", "REJECTED")
			for _, run := range runs {
				color.White("%-4d %-20s %-8s %-6d %-10d %-9d %-9d",
					run.ID,
					run.FinishedAt.Format("2006-01-02 15:04:05"),
					run.RuleVersion,
					run.Documents,
					run.Candidates,
					run.Accepted,
					run.Rejected)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of runs to show")
	return cmd
}
