package workflow

import (
	"math"

	"elevate/core/model"
	"elevate/linear"
	"elevate/neighbors"
)

// Spec describes a model family plus its hyperparameters, separate from any
// fitted state. NewEstimator builds a fresh unfitted estimator each time it
// is called, so one spec can back many resampling fits concurrently.
type Spec interface {
	// Name identifies the model family ("linear_reg", "ridge_reg", "knn_reg").
	Name() string
	// Params returns the current hyperparameter values.
	Params() map[string]float64
	// WithParams returns a copy of the spec with the given hyperparameters
	// applied. Unknown keys are ignored.
	WithParams(params map[string]float64) Spec
	// NewEstimator constructs an unfitted estimator from the spec.
	NewEstimator() model.Regressor
}

// LinearSpec specifies ordinary least squares regression. It has no
// hyperparameters.
type LinearSpec struct{}

// NewLinearSpec creates a plain linear regression spec.
func NewLinearSpec() LinearSpec { return LinearSpec{} }

func (LinearSpec) Name() string                         { return "linear_reg" }
func (LinearSpec) Params() map[string]float64           { return map[string]float64{} }
func (s LinearSpec) WithParams(map[string]float64) Spec { return s }
func (LinearSpec) NewEstimator() model.Regressor        { return linear.NewLinearRegression() }

// RidgeSpec specifies L2-regularized linear regression. The tunable
// hyperparameter is "penalty".
type RidgeSpec struct {
	Penalty float64
}

// NewRidgeSpec creates a ridge spec with the given penalty.
func NewRidgeSpec(penalty float64) RidgeSpec {
	return RidgeSpec{Penalty: penalty}
}

func (RidgeSpec) Name() string { return "ridge_reg" }

func (s RidgeSpec) Params() map[string]float64 {
	return map[string]float64{"penalty": s.Penalty}
}

func (s RidgeSpec) WithParams(params map[string]float64) Spec {
	if v, ok := params["penalty"]; ok {
		s.Penalty = v
	}
	return s
}

func (s RidgeSpec) NewEstimator() model.Regressor {
	return linear.NewRidge(linear.WithPenalty(s.Penalty))
}

// KNNSpec specifies k-nearest-neighbor regression. The tunable
// hyperparameter is "neighbors"; the weighting scheme is fixed configuration.
type KNNSpec struct {
	Neighbors int
	Weights   neighbors.Weighting
}

// NewKNNSpec creates a kNN spec with uniform weighting.
func NewKNNSpec(k int) KNNSpec {
	return KNNSpec{Neighbors: k, Weights: neighbors.Uniform}
}

func (KNNSpec) Name() string { return "knn_reg" }

func (s KNNSpec) Params() map[string]float64 {
	return map[string]float64{"neighbors": float64(s.Neighbors)}
}

func (s KNNSpec) WithParams(params map[string]float64) Spec {
	if v, ok := params["neighbors"]; ok {
		s.Neighbors = int(math.Round(v))
	}
	return s
}

func (s KNNSpec) NewEstimator() model.Regressor {
	return neighbors.NewKNNRegressor(
		neighbors.WithK(s.Neighbors),
		neighbors.WithWeights(s.Weights),
	)
}
