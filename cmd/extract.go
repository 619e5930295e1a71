package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/curator/internal/config"
	"github.com/jonesrussell/curator/internal/logger"
	"github.com/jonesrussell/curator/internal/pipeline"
	"github.com/jonesrussell/curator/internal/rules"
)

func pipelineFor(cfg *config.Config, rs *rules.RuleSet, log logger.Logger) *pipeline.Pipeline {
	return pipeline.New(cfg, rs, log)
}

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract entries from the classified listing pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			applyStageFlags(cmd)
			cfg, rs, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			rep, err := pipelineFor(cfg, rs, log).Extract(cmd.Context())
			if err != nil {
				return err
			}

			color.Green("✓ Extracted %d entries\n", len(rep.Entries))
			return nil
		},
	}
	stageFlags(cmd)
	return cmd
}
