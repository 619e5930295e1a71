package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: classify, extract, curate, emit",
		RunE: func(cmd *cobra.Command, args []string) error {
			applyStageFlags(cmd)
			cfg, rs, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			color.Blue("Starting curation pipeline over %s\n", cfg.CorpusDir)

			result, err := pipelineFor(cfg, rs, log).Run(cmd.Context(), classifyBar)
			if err != nil {
				return err
			}

			printCurationSummary(result.Summary)
			color.Green("\n✓ Record set written to %s\n", cfg.DataFile)
			return nil
		},
	}
	stageFlags(cmd)
	cmd.Flags().String("data", "", "output data file (overrides data_file)")
	return cmd
}
