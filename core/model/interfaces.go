// Package model defines the estimator interfaces shared across elevate.
package model

import "gonum.org/v1/gonum/mat"

// Regressor is a supervised model producing continuous predictions.
// Fit trains on X (n×p) and y (n×1); Predict returns an n×1 matrix.
type Regressor interface {
	Fit(X, y mat.Matrix) error
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer evaluates a fitted model on data, returning R² for regressors.
type Scorer interface {
	Score(X, y mat.Matrix) (float64, error)
}
