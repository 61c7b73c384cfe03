// Package linear provides ordinary least squares and ridge regression fit by
// closed-form solutions on gonum matrices.
package linear

import (
	"encoding/json"
	"io"

	"gonum.org/v1/gonum/mat"

	"elevate/core/model"
	"elevate/pkg/errors"
)

// LinearRegression is an ordinary least squares regressor fit by the normal
// equations w = (XᵀX)⁻¹ Xᵀy with an intercept term.
type LinearRegression struct {
	model.BaseEstimator

	Weights   *mat.VecDense // coefficients, one per feature
	Intercept float64
	NFeatures int
}

// NewLinearRegression creates an unfitted linear regression model.
func NewLinearRegression() *LinearRegression {
	return &LinearRegression{}
}

// Fit trains the model on X (n×p) and y (n×1).
func (lr *LinearRegression) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "LinearRegression.Fit")

	weights, intercept, nFeatures, err := solveLeastSquares(X, y, 0, "LinearRegression.Fit")
	if err != nil {
		return err
	}

	lr.Weights = weights
	lr.Intercept = intercept
	lr.NFeatures = nFeatures
	lr.SetFitted()
	return nil
}

// Predict returns predictions for X as an n×1 matrix.
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError("LinearRegression", "Predict")
	}
	return predictLinear(X, lr.Weights, lr.Intercept, lr.NFeatures, "LinearRegression.Predict")
}

// Score returns the coefficient of determination R² on X, y.
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	if !lr.IsFitted() {
		return 0, errors.NewNotFittedError("LinearRegression", "Score")
	}
	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	return rSquared(y, yPred)
}

// Coefficients returns the fitted weights as a slice, or nil if unfitted.
func (lr *LinearRegression) Coefficients() []float64 {
	if lr.Weights == nil {
		return nil
	}
	out := make([]float64, lr.Weights.Len())
	for i := range out {
		out[i] = lr.Weights.AtVec(i)
	}
	return out
}

// linearParams is the JSON persistence format shared by OLS and ridge.
type linearParams struct {
	Model        string    `json:"model"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	NFeatures    int       `json:"n_features"`
	Penalty      float64   `json:"penalty,omitempty"`
}

// Save writes the fitted parameters as JSON.
func (lr *LinearRegression) Save(w io.Writer) error {
	if !lr.IsFitted() {
		return errors.NewNotFittedError("LinearRegression", "Save")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(linearParams{
		Model:        "LinearRegression",
		Coefficients: lr.Coefficients(),
		Intercept:    lr.Intercept,
		NFeatures:    lr.NFeatures,
	})
}

// Load restores fitted parameters from JSON written by Save.
func (lr *LinearRegression) Load(r io.Reader) error {
	var p linearParams
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return errors.Wrap(err, "LinearRegression.Load")
	}
	if p.NFeatures != len(p.Coefficients) {
		return errors.NewDimensionError("LinearRegression.Load", p.NFeatures, len(p.Coefficients), 1)
	}
	lr.Weights = mat.NewVecDense(len(p.Coefficients), p.Coefficients)
	lr.Intercept = p.Intercept
	lr.NFeatures = p.NFeatures
	lr.SetFitted()
	return nil
}

// solveLeastSquares solves the (optionally ridge-penalized) normal equations
// and splits the solution into intercept and feature weights. The intercept
// is never penalized.
func solveLeastSquares(X, y mat.Matrix, penalty float64, op string) (*mat.VecDense, float64, int, error) {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return nil, 0, 0, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return nil, 0, 0, errors.NewDimensionError(op, r, ry, 0)
	}
	if cy != 1 {
		return nil, 0, 0, errors.NewValueError(op, "y must be a column vector")
	}

	// Augment X with a leading column of ones for the intercept.
	XAug := mat.NewDense(r, c+1, nil)
	for i := 0; i < r; i++ {
		XAug.Set(i, 0, 1.0)
		for j := 0; j < c; j++ {
			XAug.Set(i, j+1, X.At(i, j))
		}
	}

	var XT mat.Dense
	XT.CloneFrom(XAug.T())

	var XTX mat.Dense
	XTX.Mul(&XT, XAug)

	if penalty > 0 {
		// Add λ to the diagonal, skipping the intercept term.
		for j := 1; j <= c; j++ {
			XTX.Set(j, j, XTX.At(j, j)+penalty)
		}
	}

	var XTXInv mat.Dense
	if err := XTXInv.Inverse(&XTX); err != nil {
		return nil, 0, 0, errors.NewModelError(op, "singular matrix", errors.ErrSingularMatrix)
	}

	yVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}

	var XTy mat.VecDense
	XTy.MulVec(&XT, yVec)

	sol := mat.NewVecDense(c+1, nil)
	sol.MulVec(&XTXInv, &XTy)

	weights := mat.NewVecDense(c, nil)
	for i := 0; i < c; i++ {
		weights.SetVec(i, sol.AtVec(i+1))
	}
	return weights, sol.AtVec(0), c, nil
}

// predictLinear computes Xw + b.
func predictLinear(X mat.Matrix, weights *mat.VecDense, intercept float64, nFeatures int, op string) (mat.Matrix, error) {
	r, c := X.Dims()
	if c != nFeatures {
		return nil, errors.NewDimensionError(op, nFeatures, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		pred := intercept
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * weights.AtVec(j)
		}
		predictions.Set(i, 0, pred)
	}
	return predictions, nil
}

// rSquared computes R² = 1 - RSS/TSS.
func rSquared(y mat.Matrix, yPred mat.Matrix) (float64, error) {
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
