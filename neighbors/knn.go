// Package neighbors provides k-nearest-neighbor regression. Queries scan all
// training points; with normalized features and tutorial-scale data this is
// fast enough that a spatial index would not pay for itself.
package neighbors

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"elevate/core/model"
	"elevate/pkg/errors"
)

// Weighting controls how neighbor targets are averaged.
type Weighting string

const (
	// Uniform weights every neighbor equally.
	Uniform Weighting = "uniform"
	// Distance weights neighbors by inverse distance; an exact match
	// dominates the prediction.
	Distance Weighting = "distance"
)

// KNNRegressor predicts the (possibly distance-weighted) mean target of the
// K nearest training points under Euclidean distance.
type KNNRegressor struct {
	model.BaseEstimator

	// K is the number of neighbors consulted per prediction.
	K int
	// Weights selects uniform or inverse-distance averaging.
	Weights Weighting

	trainX    *mat.Dense
	trainY    []float64
	nFeatures int
}

// Option configures a KNNRegressor.
type Option func(*KNNRegressor)

// WithK sets the number of neighbors.
func WithK(k int) Option {
	return func(m *KNNRegressor) {
		m.K = k
	}
}

// WithWeights sets the neighbor weighting scheme.
func WithWeights(w Weighting) Option {
	return func(m *KNNRegressor) {
		m.Weights = w
	}
}

// NewKNNRegressor creates a kNN regressor with K=5 and uniform weights.
func NewKNNRegressor(opts ...Option) *KNNRegressor {
	m := &KNNRegressor{K: 5, Weights: Uniform}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Fit stores the training data. K is validated against the sample count.
func (m *KNNRegressor) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("KNNRegressor.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("KNNRegressor.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("KNNRegressor.Fit", "y must be a column vector")
	}
	if m.K < 1 {
		return errors.NewValidationError("k", "must be at least 1", m.K)
	}
	if m.K > r {
		return errors.NewValidationError("k", "cannot exceed the number of training samples", m.K)
	}
	switch m.Weights {
	case Uniform, Distance:
	default:
		return errors.NewValidationError("weights", "must be uniform or distance", string(m.Weights))
	}

	m.trainX = mat.DenseCopyOf(X)
	m.trainY = make([]float64, r)
	for i := 0; i < r; i++ {
		m.trainY[i] = y.At(i, 0)
	}
	m.nFeatures = c
	m.SetFitted()
	return nil
}

// Predict returns predictions for X as an n×1 matrix.
func (m *KNNRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("KNNRegressor", "Predict")
	}

	r, c := X.Dims()
	if c != m.nFeatures {
		return nil, errors.NewDimensionError("KNNRegressor.Predict", m.nFeatures, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	query := make([]float64, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			query[j] = X.At(i, j)
		}
		predictions.Set(i, 0, m.predictOne(query))
	}
	return predictions, nil
}

type neighbor struct {
	dist   float64
	target float64
}

func (m *KNNRegressor) predictOne(query []float64) float64 {
	n, _ := m.trainX.Dims()
	neighbors := make([]neighbor, n)
	for i := 0; i < n; i++ {
		row := m.trainX.RawRowView(i)
		var sum float64
		for j, q := range query {
			d := q - row[j]
			sum += d * d
		}
		neighbors[i] = neighbor{dist: math.Sqrt(sum), target: m.trainY[i]}
	}

	sort.Slice(neighbors, func(a, b int) bool { return neighbors[a].dist < neighbors[b].dist })
	nearest := neighbors[:m.K]

	if m.Weights == Uniform {
		var sum float64
		for _, nb := range nearest {
			sum += nb.target
		}
		return sum / float64(m.K)
	}

	// Inverse-distance weighting. An exact match (distance zero) takes
	// over the prediction entirely.
	var weighted, total float64
	for _, nb := range nearest {
		if nb.dist == 0 {
			return nb.target
		}
		w := 1 / nb.dist
		weighted += w * nb.target
		total += w
	}
	return weighted / total
}

// Score returns the coefficient of determination R² on X, y.
func (m *KNNRegressor) Score(X, y mat.Matrix) (float64, error) {
	if !m.IsFitted() {
		return 0, errors.NewNotFittedError("KNNRegressor", "Score")
	}
	yPred, err := m.Predict(X)
	if err != nil {
		return 0, err
	}

	r, _ := y.Dims()
	var yMean float64
	for i := 0; i < r; i++ {
		yMean += y.At(i, 0)
	}
	yMean /= float64(r)

	var tss, rss float64
	for i := 0; i < r; i++ {
		yTrue := y.At(i, 0)
		yHat := yPred.At(i, 0)
		tss += (yTrue - yMean) * (yTrue - yMean)
		rss += (yTrue - yHat) * (yTrue - yHat)
	}
	if tss == 0 {
		return 0, errors.Newf("total sum of squares is zero")
	}
	return 1 - rss/tss, nil
}
