package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"elevate/dataset"
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Report the configured train/test partition",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, tbl, err := loadExperiment(cmd)
		if err != nil {
			return err
		}

		split, err := dataset.InitialSplit(tbl, cfg.Split.Prop, cfg.Split.Seed)
		if err != nil {
			return err
		}

		fmt.Printf("dataset: %s (%d rows)\n", cfg.Dataset, tbl.NumRows())
		fmt.Printf("train:   %d rows (prop %.2f, seed %d)\n",
			split.Train.NumRows(), cfg.Split.Prop, cfg.Split.Seed)
		fmt.Printf("test:    %d rows\n", split.Test.NumRows())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(splitCmd)
}
