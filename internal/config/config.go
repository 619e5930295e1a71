// Package config holds pipeline configuration, loaded from config.yaml
// and environment variables via viper.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/jonesrussell/curator/internal/logger"
)

// Default configuration values.
const (
	DefaultCorpusDir = "corpus"
	DefaultOutputDir = "reports"
	DefaultDataFile  = "data/records.json"
	DefaultHistoryDB = "curator-history.db"
	DefaultLogLevel  = "info"
)

// Config holds all configuration for the pipeline.
type Config struct {
	// CorpusDir is the scraped-document root: one subdirectory per
	// document.
	CorpusDir string `mapstructure:"corpus_dir" yaml:"corpus_dir"`
	// OutputDir receives the intermediate stage artifacts.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	// DataFile is the final record set the website's data layer reads.
	DataFile string `mapstructure:"data_file" yaml:"data_file"`
	// RulesFile overrides the embedded rule table when set.
	RulesFile string `mapstructure:"rules_file" yaml:"rules_file"`
	// HistoryDB is the run-history SQLite database; empty disables it.
	HistoryDB string `mapstructure:"history_db" yaml:"history_db"`
	// SimilarityThreshold tunes near-duplicate title detection. Zero
	// means the curator default.
	SimilarityThreshold float64 `mapstructure:"similarity_threshold" yaml:"similarity_threshold"`

	Logging logger.Config `mapstructure:"logging" yaml:"logging"`
}

// SetDefaults registers default values on a viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("corpus_dir", DefaultCorpusDir)
	v.SetDefault("output_dir", DefaultOutputDir)
	v.SetDefault("data_file", DefaultDataFile)
	v.SetDefault("history_db", DefaultHistoryDB)
	v.SetDefault("logging.level", DefaultLogLevel)
}

// Load unmarshals and validates the configuration.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.CorpusDir == "" {
		return errors.New("corpus_dir must be set")
	}
	if c.OutputDir == "" {
		return errors.New("output_dir must be set")
	}
	if c.DataFile == "" {
		return errors.New("data_file must be set")
	}
	return nil
}
