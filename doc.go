// Package elevate provides building blocks for tabular supervised-learning
// workflows in Go: exploratory summaries, train/test splitting, recipe-based
// preprocessing, resampling, and hyperparameter grid search.
//
// The library grew out of a study of the NYC elevators registration dataset
// and keeps that dataset as its running example, but every package works on
// any mixed numeric/categorical table.
//
// # Quick Start
//
// A complete workflow reads a CSV, splits it, attaches a preprocessing
// recipe to a model specification, and evaluates with cross-validation:
//
//	tbl, err := dataset.ReadCSVFile("elevators.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	split, err := dataset.InitialSplit(tbl, 0.75, 42)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rec := recipe.New().
//	    Add(recipe.StepImputeMedian()).
//	    Add(recipe.StepUnknown()).
//	    Add(recipe.StepDummy()).
//	    Add(recipe.StepNormalize())
//
//	wf := workflow.New("speed_fpm", rec, workflow.NewKNNSpec(5))
//
//	folds := resample.NewVFold(10, 42)
//	res, err := resample.CrossValidate(wf, split.Train, folds, []string{"rmse", "r2"})
//
// Hyperparameters are tuned with a regular grid over the same folds:
//
//	grid := tune.NewGrid().Add("neighbors", 1, 5, 10, 20)
//	results, err := tune.GridSearch(wf, split.Train, folds, grid, []string{"rmse"})
//	best, err := results.SelectBest("rmse")
//	final, err := tune.LastFit(tune.Finalize(wf, best), split, []string{"rmse", "mae", "r2"})
//
// # Packages
//
//   - dataset: tabular container, CSV ingest, summaries, initial split
//   - recipe: ordered preprocessing steps (impute, encode, normalize)
//   - linear: linear and ridge regression
//   - neighbors: k-nearest-neighbor regression
//   - metrics: regression metrics (MSE, RMSE, MAE, R², MAPE)
//   - resample: v-fold cross-validation
//   - workflow: recipe + model specification bundles
//   - tune: grid search and final fitting
//   - store: SQLite persistence for tuning sessions
//   - eda: histogram and scatter plots
//   - core/model: estimator interfaces and shared state
//
// # Command Line
//
// The cmd/elevate binary runs the same workflow from a YAML experiment
// file; see cmd/elevate for the config format.
package elevate
