package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"elevate/dataset"
	"elevate/pkg/errors"
	"elevate/tune"
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit the configured model on the training set and score the test set",
	Long: `Fit skips tuning: it trains the workflow with the hyperparameters in
the config's model section and reports metrics on the held-out test set.
With --out, the fitted estimator's parameters are written as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, tbl, err := loadExperiment(cmd)
		if err != nil {
			return err
		}

		split, err := dataset.InitialSplit(tbl, cfg.Split.Prop, cfg.Split.Seed)
		if err != nil {
			return err
		}
		wf, err := cfg.BuildWorkflow()
		if err != nil {
			return err
		}

		final, err := tune.LastFit(wf, split, cfg.Metrics)
		if err != nil {
			return err
		}

		fmt.Printf("model %s fitted on %d rows, %d features\n",
			cfg.Model.Type, split.Train.NumRows(), len(final.Workflow.FeatureNames()))
		fmt.Printf("test set (%d rows): %s\n",
			split.Test.NumRows(), formatScores(final.Metrics, cfg.Metrics))

		outPath, _ := cmd.Flags().GetString("out")
		if outPath == "" {
			return nil
		}
		return saveEstimator(final.Workflow.Estimator(), outPath)
	},
}

func init() {
	rootCmd.AddCommand(fitCmd)
	fitCmd.Flags().StringP("out", "o", "", "Write the fitted estimator's parameters as JSON")
}

func saveEstimator(est any, path string) error {
	saver, ok := est.(interface{ Save(io.Writer) error })
	if !ok {
		return errors.Newf("elevate: this model does not support parameter export")
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating model file")
	}
	defer f.Close()

	if err := saver.Save(f); err != nil {
		return err
	}
	fmt.Printf("wrote model parameters to %s\n", path)
	return nil
}
