package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/curator/internal/report"
)

// printCurationSummary renders the keep-rate report after a curation
// pass.
func printCurationSummary(summary *report.CurationSummary) {
	color.Green("\n✓ Curation complete")
	color.White("  candidates  %d", summary.Candidates)
	color.White("  accepted    %d", summary.Accepted)
	color.White("  rejected    %d", summary.Rejected)
	color.White("  duplicates  %d", summary.Duplicates)
	color.Cyan("  keep rate   %d%%", summary.KeepRatePercent)
	if len(summary.ByReason) > 0 {
		color.White("  rejections by reason:")
		for reason, n := range summary.ByReason {
			color.White("    %-18s %d", reason, n)
		}
	}
}

func newCurateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "curate",
		Short: "Filter, dedupe and normalize candidates into canonical records",
		RunE: func(cmd *cobra.Command, args []string) error {
			applyStageFlags(cmd)
			cfg, rs, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			result, err := pipelineFor(cfg, rs, log).Curate(cmd.Context())
			if err != nil {
				return err
			}

			printCurationSummary(result.Summary)
			return nil
		},
	}
	stageFlags(cmd)
	return cmd
}
