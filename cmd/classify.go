package cmd

import (
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// stageFlags registers the path overrides shared by the stage commands.
func stageFlags(cmd *cobra.Command) {
	cmd.Flags().String("corpus", "", "corpus directory (overrides corpus_dir)")
	cmd.Flags().String("output", "", "artifact directory (overrides output_dir)")
	cmd.Flags().String("rules", "", "rule table file (overrides rules_file)")
}

// applyStageFlags copies changed flag values into viper before the
// configuration is loaded.
func applyStageFlags(cmd *cobra.Command) {
	overrides := map[string]string{
		"corpus": "corpus_dir",
		"output": "output_dir",
		"rules":  "rules_file",
		"data":   "data_file",
	}
	for flag, key := range overrides {
		if cmd.Flags().Changed(flag) {
			value, _ := cmd.Flags().GetString(flag)
			viper.Set(key, value)
		}
	}
}

// classifyBar builds the per-document progress bar for classification.
func classifyBar(total int) func() {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription(color.BlueString("Classifying documents")),
		progressbar.OptionSetItsString("docs"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionEnableColorCodes(true),
	)
	return func() { _ = bar.Add(1) }
}

func newClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Load the corpus and classify every document",
		RunE: func(cmd *cobra.Command, args []string) error {
			applyStageFlags(cmd)
			cfg, rs, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			rep, err := pipelineFor(cfg, rs, log).Classify(cmd.Context(), classifyBar)
			if err != nil {
				return err
			}

			color.Green("\n✓ Classified %d documents: %d listing pages, %d articles\n",
				rep.Stats.Total, rep.Stats.ListingPages, rep.Stats.Articles)
			for category, n := range rep.Stats.ByCategory {
				color.White("  %-12s %d", category, n)
			}
			return nil
		},
	}
	stageFlags(cmd)
	return cmd
}
