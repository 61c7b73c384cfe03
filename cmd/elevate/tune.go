package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"elevate/dataset"
	"elevate/resample"
	"elevate/store"
	"elevate/tune"
)

var tuneCmd = &cobra.Command{
	Use:   "tune",
	Short: "Grid-search hyperparameters with cross-validation, then fit the winner",
	Long: `Tune splits the dataset, runs the configured grid over V-fold
cross-validation on the training set, selects the best candidate by the
configured metric, refits it on the full training set, and reports metrics
on the held-out test set. With a store configured, the run is persisted.`,
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

		vf := resample.NewVFold(cfg.Folds.V, cfg.Folds.Seed)
		results, err := tune.GridSearch(wf, split.Train, vf, cfg.BuildGrid(), cfg.Metrics)
		if err != nil {
			return err
		}

		best, err := results.SelectBest(cfg.Select)
		if err != nil {
			return err
		}

		fmt.Printf("model %s, %d candidates, %d-fold cv on %d training rows\n\n",
			cfg.Model.Type, len(results.Candidates), cfg.Folds.V, split.Train.NumRows())
		printCandidates(results)
		fmt.Printf("\nbest by %s: %s\n", cfg.Select, formatParams(best.Params))

		final, err := tune.LastFit(tune.Finalize(wf, best), split, cfg.Metrics)
		if err != nil {
			return err
		}
		fmt.Printf("test set (%d rows): %s\n", split.Test.NumRows(), formatScores(final.Metrics, cfg.Metrics))

		if cfg.Store == "" {
			return nil
		}
		return persistRun(cmd.Context(), cfg, best, results, final.Metrics)
	},
}

func init() {
	rootCmd.AddCommand(tuneCmd)
}

func persistRun(ctx context.Context, cfg *Config, best tune.Candidate, results *tune.Results, testScores map[string]float64) error {
	s, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	run := &store.Run{
		Name:       cfg.Name,
		Model:      cfg.Model.Type,
		Target:     cfg.Target,
		Metric:     cfg.Select,
		BestParams: best.Params,
		TestScores: testScores,
	}
	if err := s.SaveRun(ctx, run); err != nil {
		return err
	}

	candidates := make([]store.Candidate, len(results.Candidates))
	for i, c := range results.Candidates {
		candidates[i] = store.Candidate{Params: c.Params, Mean: c.Mean, Std: c.Std}
	}
	if err := s.SaveCandidates(ctx, run.ID, candidates); err != nil {
		return err
	}

	fmt.Printf("saved run %d to %s\n", run.ID, cfg.Store)
	return nil
}

func printCandidates(results *tune.Results) {
	for i, c := range results.Candidates {
		fmt.Printf("  %2d  %-28s  %s\n", i, formatParams(c.Params),
			formatScores(c.Mean, results.MetricNames))
	}
}

func formatParams(params map[string]float64) string {
	if len(params) == 0 {
		return "(no parameters)"
	}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%g", name, params[name])
	}
	return strings.Join(parts, " ")
}

func formatScores(scores map[string]float64, order []string) string {
	parts := make([]string, len(order))
	for i, name := range order {
		parts[i] = fmt.Sprintf("%s=%.4f", name, scores[name])
	}
	return strings.Join(parts, "  ")
}
