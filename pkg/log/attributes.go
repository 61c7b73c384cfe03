// Package log defines standard attribute keys for workflow operations.
//
// Using these keys consistently across packages keeps log output filterable:
// every fit, bake, resample, and tuning event describes itself with the same
// vocabulary.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator or step type.
	// Examples: "LinearRegression", "KNNRegressor", "StepDummy"
	ModelNameKey = "model.name"

	// OperationKey names the operation being performed.
	// Standard values: "fit", "predict", "prep", "bake", "tune", "score"
	OperationKey = "ml.operation"

	// ComponentKey identifies the package performing the operation.
	// Examples: "recipe", "resample", "tune"
	ComponentKey = "ml.component"
)

// Data shape.
const (
	// SamplesKey is the number of rows being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of feature columns.
	FeaturesKey = "data.features"

	// ColumnKey names a single column an operation touches.
	ColumnKey = "data.column"
)

// Resampling and tuning progress.
const (
	// FoldKey is the fold index within a resampling run (1-based in logs).
	FoldKey = "resample.fold"

	// FoldsKey is the total number of folds.
	FoldsKey = "resample.folds"

	// CandidateKey is the candidate index within a grid search.
	CandidateKey = "tune.candidate"

	// CandidatesKey is the total number of grid candidates.
	CandidatesKey = "tune.candidates"
)

// Metric values.
const (
	// MetricKey names the metric a score belongs to.
	MetricKey = "metrics.name"

	// ScoreKey is a computed metric value.
	ScoreKey = "metrics.score"

	// DurationMsKey is the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)
