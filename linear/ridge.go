package linear

import (
	"encoding/json"
	"io"

	"gonum.org/v1/gonum/mat"

	"elevate/core/model"
	"elevate/pkg/errors"
)

// Ridge is an L2-regularized linear regressor solved in closed form:
// w = (XᵀX + λI)⁻¹ Xᵀy. The intercept is not penalized.
type Ridge struct {
	model.BaseEstimator

	// Penalty is the L2 regularization strength λ. Zero reduces to OLS.
	Penalty float64

	Weights   *mat.VecDense
	Intercept float64
	NFeatures int
}

// RidgeOption configures a Ridge model.
type RidgeOption func(*Ridge)

// WithPenalty sets the regularization strength λ.
func WithPenalty(penalty float64) RidgeOption {
	return func(r *Ridge) {
		r.Penalty = penalty
	}
}

// NewRidge creates a ridge regression model. Default penalty is 1.0.
func NewRidge(opts ...RidgeOption) *Ridge {
	r := &Ridge{Penalty: 1.0}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fit trains the model on X (n×p) and y (n×1).
func (rr *Ridge) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "Ridge.Fit")

	if rr.Penalty < 0 {
		return errors.NewValidationError("penalty", "must be non-negative", rr.Penalty)
	}

	weights, intercept, nFeatures, err := solveLeastSquares(X, y, rr.Penalty, "Ridge.Fit")
	if err != nil {
		return err
	}

	rr.Weights = weights
	rr.Intercept = intercept
	rr.NFeatures = nFeatures
	rr.SetFitted()
	return nil
}

// Predict returns predictions for X as an n×1 matrix.
func (rr *Ridge) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !rr.IsFitted() {
		return nil, errors.NewNotFittedError("Ridge", "Predict")
	}
	return predictLinear(X, rr.Weights, rr.Intercept, rr.NFeatures, "Ridge.Predict")
}

// Score returns the coefficient of determination R² on X, y.
func (rr *Ridge) Score(X, y mat.Matrix) (float64, error) {
	if !rr.IsFitted() {
		return 0, errors.NewNotFittedError("Ridge", "Score")
	}
	yPred, err := rr.Predict(X)
	if err != nil {
		return 0, err
	}
	return rSquared(y, yPred)
}

// Coefficients returns the fitted weights as a slice, or nil if unfitted.
func (rr *Ridge) Coefficients() []float64 {
	if rr.Weights == nil {
		return nil
	}
	out := make([]float64, rr.Weights.Len())
	for i := range out {
		out[i] = rr.Weights.AtVec(i)
	}
	return out
}

// Save writes the fitted parameters as JSON.
func (rr *Ridge) Save(w io.Writer) error {
	if !rr.IsFitted() {
		return errors.NewNotFittedError("Ridge", "Save")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(linearParams{
		Model:        "Ridge",
		Coefficients: rr.Coefficients(),
		Intercept:    rr.Intercept,
		NFeatures:    rr.NFeatures,
		Penalty:      rr.Penalty,
	})
}

// Load restores fitted parameters from JSON written by Save.
func (rr *Ridge) Load(r io.Reader) error {
	var p linearParams
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return errors.Wrap(err, "Ridge.Load")
	}
	if p.NFeatures != len(p.Coefficients) {
		return errors.NewDimensionError("Ridge.Load", p.NFeatures, len(p.Coefficients), 1)
	}
	rr.Weights = mat.NewVecDense(len(p.Coefficients), p.Coefficients)
	rr.Intercept = p.Intercept
	rr.NFeatures = p.NFeatures
	rr.Penalty = p.Penalty
	rr.SetFitted()
	return nil
}
