package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"elevate/eda"
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render exploratory plots for the configured dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, tbl, err := loadExperiment(cmd)
		if err != nil {
			return err
		}

		hist, _ := cmd.Flags().GetString("hist")
		x, _ := cmd.Flags().GetString("x")
		out, _ := cmd.Flags().GetString("out")

		switch {
		case hist != "":
			bins, _ := cmd.Flags().GetInt("bins")
			if err := eda.Histogram(tbl, hist, bins, out); err != nil {
				return err
			}
		case x != "":
			if err := eda.Scatter(tbl, x, cfg.Target, out); err != nil {
				return err
			}
		default:
			// No flags: histogram of the target column.
			bins, _ := cmd.Flags().GetInt("bins")
			if err := eda.Histogram(tbl, cfg.Target, bins, out); err != nil {
				return err
			}
		}

		fmt.Printf("wrote %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotCmd.Flags().String("hist", "", "Numeric column to render as a histogram")
	plotCmd.Flags().String("x", "", "Numeric column to scatter against the target")
	plotCmd.Flags().Int("bins", 30, "Histogram bin count")
	plotCmd.Flags().StringP("out", "o", "plot.png", "Output image path (.png, .svg, .pdf)")
}
