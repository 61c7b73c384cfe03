// Package workflow bundles a preprocessing recipe with a model specification
// so that the pair can be fitted, resampled, and tuned as one unit. Fitting a
// workflow preps the recipe on the training table, bakes it, and trains a
// fresh estimator on the baked features; prediction bakes new data with the
// same trained recipe before calling the estimator.
package workflow

import (
	"gonum.org/v1/gonum/mat"

	"elevate/core/model"
	"elevate/dataset"
	"elevate/pkg/errors"
	"elevate/pkg/log"
	"elevate/recipe"
)

// Workflow ties a recipe and a model spec to a target column.
type Workflow struct {
	model.BaseEstimator

	rec    *recipe.Recipe
	spec   Spec
	target string

	estimator model.Regressor
	features  []string
}

// New creates a workflow predicting target with the given recipe and spec.
// A nil recipe means the data is used as-is.
func New(target string, rec *recipe.Recipe, spec Spec) *Workflow {
	if rec == nil {
		rec = recipe.New()
	}
	return &Workflow{rec: rec, spec: spec, target: target}
}

// Target returns the outcome column name.
func (w *Workflow) Target() string { return w.target }

// Spec returns the model specification.
func (w *Workflow) Spec() Spec { return w.spec }

// Recipe returns the workflow's recipe.
func (w *Workflow) Recipe() *recipe.Recipe { return w.rec }

// Estimator returns the fitted estimator, or nil before Fit.
func (w *Workflow) Estimator() model.Regressor { return w.estimator }

// FeatureNames returns the baked feature columns the estimator was trained
// on, in matrix column order.
func (w *Workflow) FeatureNames() []string {
	out := make([]string, len(w.features))
	copy(out, w.features)
	return out
}

// WithParams returns an unfitted copy whose spec has the given
// hyperparameters applied.
func (w *Workflow) WithParams(params map[string]float64) *Workflow {
	out := w.Clone()
	out.spec = out.spec.WithParams(params)
	return out
}

// Clone returns an unfitted copy with a cloned recipe and the same spec.
func (w *Workflow) Clone() *Workflow {
	return &Workflow{rec: w.rec.Clone(), spec: w.spec, target: w.target}
}

// Fit preps the recipe on train, bakes it, and fits the estimator on the
// resulting feature matrix.
func (w *Workflow) Fit(train *dataset.Table) (err error) {
	defer errors.Recover(&err, "Workflow.Fit")

	if w.target == "" {
		return errors.NewValidationError("target", "must not be empty", w.target)
	}
	if !train.HasColumn(w.target) {
		return errors.NewSchemaError("Workflow.Fit", w.target, "no such column")
	}

	w.rec.SetOutcome(w.target)
	if err := w.rec.Prep(train); err != nil {
		return err
	}
	baked, err := w.rec.Bake(train)
	if err != nil {
		return err
	}

	features := featureColumns(baked, w.target)
	if len(features) == 0 {
		return errors.NewModelError("Workflow.Fit", "no numeric features after preprocessing", errors.ErrEmptyData)
	}

	X, y, err := baked.Matrix(features, w.target)
	if err != nil {
		return err
	}

	est := w.spec.NewEstimator()
	if err := est.Fit(X, y); err != nil {
		return err
	}

	log.GetLoggerWithName("workflow").Info("workflow fitted",
		log.ModelNameKey, w.spec.Name(),
		log.SamplesKey, train.NumRows(),
		log.FeaturesKey, len(features),
	)

	w.estimator = est
	w.features = features
	w.SetFitted()
	return nil
}

// Predict bakes t with the trained recipe and returns estimator predictions
// as an n×1 matrix. The target column may be absent.
func (w *Workflow) Predict(t *dataset.Table) (mat.Matrix, error) {
	if !w.IsFitted() {
		return nil, errors.NewNotFittedError("Workflow", "Predict")
	}

	baked, err := w.rec.Bake(t)
	if err != nil {
		return nil, err
	}
	X, err := featureMatrix(baked, w.features)
	if err != nil {
		return nil, err
	}
	return w.estimator.Predict(X)
}

// Outcome returns the target column of t after baking with the trained
// recipe, as an n×1 matrix. Comparing predictions against it keeps metrics
// on the scale the estimator was trained on, even when a recipe step
// transforms the outcome.
func (w *Workflow) Outcome(t *dataset.Table) (*mat.Dense, error) {
	if !w.IsFitted() {
		return nil, errors.NewNotFittedError("Workflow", "Outcome")
	}

	baked, err := w.rec.Bake(t)
	if err != nil {
		return nil, err
	}

	c := baked.Column(w.target)
	if c == nil {
		return nil, errors.NewSchemaError("Workflow.Outcome", w.target, "no such column")
	}
	if c.Type != dataset.Numeric {
		return nil, errors.NewSchemaError("Workflow.Outcome", w.target, "column is not numeric")
	}

	n := c.Len()
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		if c.Missing(i) {
			return nil, errors.NewSchemaError("Workflow.Outcome", w.target, "column contains missing values")
		}
		y.Set(i, 0, c.Floats[i])
	}
	return y, nil
}

// featureColumns lists the numeric columns of a baked table excluding the
// target, in table column order.
func featureColumns(t *dataset.Table, target string) []string {
	var out []string
	for _, name := range t.NumericNames() {
		if name != target {
			out = append(out, name)
		}
	}
	return out
}

// featureMatrix builds the design matrix for the given columns, which must
// all be present, numeric, and free of missing values.
func featureMatrix(t *dataset.Table, features []string) (*mat.Dense, error) {
	n := t.NumRows()
	if n == 0 {
		return nil, errors.NewModelError("Workflow.Predict", "empty data", errors.ErrEmptyData)
	}

	X := mat.NewDense(n, len(features), nil)
	for j, name := range features {
		c := t.Column(name)
		if c == nil {
			return nil, errors.NewSchemaError("Workflow.Predict", name, "no such column")
		}
		if c.Type != dataset.Numeric {
			return nil, errors.NewSchemaError("Workflow.Predict", name, "column is not numeric")
		}
		for i := 0; i < n; i++ {
			if c.Missing(i) {
				return nil, errors.NewSchemaError("Workflow.Predict", name, "column contains missing values")
			}
			X.Set(i, j, c.Floats[i])
		}
	}
	return X, nil
}
