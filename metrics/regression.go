// Package metrics provides regression evaluation metrics over gonum vectors
// and n×1 matrices.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"elevate/pkg/errors"
)

// MSE computes the mean squared error.
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("MSE", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("MSE", n, yPred.Len(), 0)
	}

	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}
	return sum / float64(n), nil
}

// RMSE computes the root mean squared error.
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE computes the mean absolute error.
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("MAE", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("MAE", n, yPred.Len(), 0)
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}
	return sum / float64(n), nil
}

// R2Score computes the coefficient of determination R² = 1 - RSS/TSS.
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("R2Score", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("R2Score", n, yPred.Len(), 0)
	}

	var yMean float64
	for i := 0; i < n; i++ {
		yMean += yTrue.AtVec(i)
	}
	yMean /= float64(n)

	var tss, rss float64
	for i := 0; i < n; i++ {
		yTrueVal := yTrue.AtVec(i)
		yPredVal := yPred.AtVec(i)
		tss += (yTrueVal - yMean) * (yTrueVal - yMean)
		rss += (yTrueVal - yPredVal) * (yTrueVal - yPredVal)
	}

	if tss == 0 {
		return 0, errors.Newf("R2Score: total sum of squares is zero (no variance in yTrue)")
	}
	return 1 - rss/tss, nil
}

// MAPE computes the mean absolute percentage error over observations whose
// true value is nonzero. When some are zero a warning is emitted and they
// are skipped; all-zero input is an error.
func MAPE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("MAPE", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("MAPE", n, yPred.Len(), 0)
	}

	var sum float64
	validCount := 0
	for i := 0; i < n; i++ {
		yTrueVal := yTrue.AtVec(i)
		if yTrueVal != 0 {
			sum += math.Abs(yTrueVal-yPred.AtVec(i)) / math.Abs(yTrueVal)
			validCount++
		}
	}

	if validCount == 0 {
		return 0, errors.Newf("MAPE: all yTrue values are zero")
	}
	if validCount < n {
		errors.Warn(errors.NewUndefinedMetricWarning("mape", "zero true values skipped", math.NaN()))
	}
	return (sum / float64(validCount)) * 100, nil
}

// vecFromColumn converts an n×1 matrix to a vector, validating the shape.
func vecFromColumn(m mat.Matrix, op string) (*mat.VecDense, error) {
	r, c := m.Dims()
	if r == 0 {
		return nil, errors.NewValueError(op, "empty matrix")
	}
	if c != 1 {
		return nil, errors.NewValueError(op, "must be a column vector (n×1 matrix)")
	}
	v := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v.SetVec(i, m.At(i, 0))
	}
	return v, nil
}

// Metric is a named regression metric over n×1 matrices.
type Metric func(yTrue, yPred mat.Matrix) (float64, error)

func matrixMetric(name string, fn func(a, b *mat.VecDense) (float64, error)) Metric {
	return func(yTrue, yPred mat.Matrix) (float64, error) {
		a, err := vecFromColumn(yTrue, name)
		if err != nil {
			return 0, err
		}
		b, err := vecFromColumn(yPred, name)
		if err != nil {
			return 0, err
		}
		return fn(a, b)
	}
}

var registry = map[string]Metric{
	"mse":  matrixMetric("mse", MSE),
	"rmse": matrixMetric("rmse", RMSE),
	"mae":  matrixMetric("mae", MAE),
	"r2":   matrixMetric("r2", R2Score),
	"mape": matrixMetric("mape", MAPE),
}

// ByName returns the named metric. Known names: mse, rmse, mae, r2, mape.
func ByName(name string) (Metric, error) {
	m, ok := registry[name]
	if !ok {
		return nil, errors.NewValidationError("metric", "unknown metric name", name)
	}
	return m, nil
}

// LowerIsBetter reports the optimization direction for a metric name.
// Unknown names default to lower-is-better, matching loss semantics.
func LowerIsBetter(name string) bool {
	switch name {
	case "r2":
		return false
	default:
		return true
	}
}
