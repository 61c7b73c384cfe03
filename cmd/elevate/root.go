package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"elevate/dataset"
	"elevate/pkg/log"
)

var rootCmd = &cobra.Command{
	Use:   "elevate",
	Short: "Tabular regression experiments: summarize, split, tune, fit",
	Long: `Elevate runs a regression experiment described by a YAML config file:
it loads a CSV dataset, cleans column names, splits train/test, tunes
hyperparameters with cross-validation, and reports held-out test metrics.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		levelName, _ := cmd.Flags().GetString("log-level")
		level, err := log.ToLogLevel(levelName)
		if err != nil {
			return err
		}
		log.SetLevel(level)
		return nil
	},
}

// Execute runs the root command, exiting nonzero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "experiment.yaml", "Path to the experiment config file")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
}

// loadExperiment reads the config named by --config and loads its dataset.
// ReadCSVFile already cleans and dedupes the header names.
func loadExperiment(cmd *cobra.Command) (*Config, *dataset.Table, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, nil, err
	}

	tbl, err := dataset.ReadCSVFile(cfg.Dataset)
	if err != nil {
		return nil, nil, err
	}
	return cfg, tbl, nil
}
