package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newEmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emit",
		Short: "Publish the accepted record set to the site data file",
		RunE: func(cmd *cobra.Command, args []string) error {
			applyStageFlags(cmd)
			cfg, rs, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			set, err := pipelineFor(cfg, rs, log).Emit(cmd.Context())
			if err != nil {
				return err
			}

			color.Green("✓ Emitted %d records to %s\n", set.Count, cfg.DataFile)
			return nil
		},
	}
	stageFlags(cmd)
	cmd.Flags().String("data", "", "output data file (overrides data_file)")
	return cmd
}
