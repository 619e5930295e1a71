// Package cmd implements the command-line interface for the curation
// pipeline. It provides the root command and one subcommand per stage,
// plus a run command that executes the whole pipeline.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/curator/internal/config"
	"github.com/jonesrussell/curator/internal/logger"
	"github.com/jonesrussell/curator/internal/pipeline"
	"github.com/jonesrussell/curator/internal/rules"
)

const version = "0.3.0"

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug logging for all commands.
	debug bool

	rootCmd = &cobra.Command{
		Use:   "curator",
		Short: "Classify and curate scraped content into a site record set",
		Long: `Curator turns a directory of scraped markdown documents into the
record set behind a tools-and-tutorials site. It classifies documents,
pulls entries out of listing pages, filters and dedupes them, and emits
canonical records as JSON.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Load .env early so environment variables are visible to viper.
	_ = godotenv.Load()

	// Parse flags early so --config and --debug apply before setup.
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is ./config.yaml or ./config/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("curator version %s\n", version)
		},
	})

	rootCmd.AddCommand(newClassifyCmd())
	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newCurateCmd())
	rootCmd.AddCommand(newEmitCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newHistoryCmd())
}

// initConfig reads the config file and environment variables.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	config.SetDefaults(viper.GetViper())

	// The config file is optional: defaults plus environment variables
	// are a complete configuration.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && cfgFile != "" {
			return fmt.Errorf("read config file: %w", err)
		}
	}

	if err := viper.BindEnv("logging.level", "LOG_LEVEL"); err != nil {
		return fmt.Errorf("failed to bind LOG_LEVEL: %w", err)
	}

	if debug {
		viper.Set("logging.level", "debug")
		viper.Set("logging.development", true)
	}
	return nil
}

// setup loads the validated configuration, the logger and the rule
// table shared by every stage command.
func setup() (*config.Config, *rules.RuleSet, logger.Logger, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, nil, nil, err
	}
	log, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create logger: %w", err)
	}
	rs, err := pipeline.LoadRules(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, rs, log, nil
}
