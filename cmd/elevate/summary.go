package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"elevate/dataset"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print per-column statistics for the configured dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, tbl, err := loadExperiment(cmd)
		if err != nil {
			return err
		}

		summaries, err := dataset.Summary(tbl)
		if err != nil {
			return err
		}

		fmt.Printf("%d rows, %d columns\n\n", tbl.NumRows(), tbl.NumCols())
		fmt.Print(dataset.FormatSummary(summaries))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
