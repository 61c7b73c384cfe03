// Package recipe implements ordered preprocessing pipelines for tabular
// data. A Recipe is a list of Steps; Prep estimates each step's statistics
// from training data (each step seeing the output of the previous one), and
// Bake applies the trained steps to any table with the same schema.
//
// Steps never learn from data passed to Bake: statistics estimated during
// Prep are reused, so test data is transformed exactly as training data was.
package recipe

import (
	"elevate/core/model"
	"elevate/dataset"
	"elevate/pkg/errors"
	"elevate/pkg/log"
)

// Info carries prep-time context to steps. Outcome names the target column;
// steps that resolve "all numeric columns" exclude it so the target is never
// silently imputed or rescaled.
type Info struct {
	Outcome string
}

// Step is a single preprocessing operation. Prep estimates any statistics
// from the training table; Bake applies them, returning a new table. Clone
// returns an unfitted copy with the same configuration, used when a recipe
// is re-prepped per resampling fold.
type Step interface {
	Name() string
	Prep(t *dataset.Table, info Info) error
	Bake(t *dataset.Table) (*dataset.Table, error)
	Clone() Step
}

// Recipe is an ordered list of preprocessing steps.
type Recipe struct {
	model.BaseEstimator

	steps   []Step
	outcome string
}

// New creates an empty recipe.
func New() *Recipe {
	return &Recipe{}
}

// Add appends a step and returns the recipe for chaining.
func (r *Recipe) Add(s Step) *Recipe {
	r.steps = append(r.steps, s)
	return r
}

// Steps returns the recipe's steps in order.
func (r *Recipe) Steps() []Step {
	return r.steps
}

// SetOutcome declares the target column so column selectors skip it.
// Workflows call this before Prep.
func (r *Recipe) SetOutcome(name string) {
	r.outcome = name
}

// Prep trains every step on the training table. Each step is prepped on the
// output of the steps before it, mirroring how Bake will run.
func (r *Recipe) Prep(train *dataset.Table) error {
	if train.NumRows() == 0 {
		return errors.NewModelError("Recipe.Prep", "empty training data", errors.ErrEmptyData)
	}

	logger := log.GetLoggerWithName("recipe")
	info := Info{Outcome: r.outcome}

	cur := train.Clone()
	for _, s := range r.steps {
		if err := s.Prep(cur, info); err != nil {
			return errors.Wrapf(err, "prepping step %s", s.Name())
		}
		baked, err := s.Bake(cur)
		if err != nil {
			return errors.Wrapf(err, "baking step %s during prep", s.Name())
		}
		logger.Debug("step prepped",
			log.ModelNameKey, s.Name(),
			log.SamplesKey, baked.NumRows(),
			log.FeaturesKey, baked.NumCols(),
		)
		cur = baked
	}

	r.SetFitted()
	return nil
}

// Bake applies the trained steps to a table, returning the transformed copy.
func (r *Recipe) Bake(t *dataset.Table) (*dataset.Table, error) {
	if !r.IsFitted() {
		return nil, errors.NewNotFittedError("Recipe", "Bake")
	}

	cur := t.Clone()
	for _, s := range r.steps {
		baked, err := s.Bake(cur)
		if err != nil {
			return nil, errors.Wrapf(err, "baking step %s", s.Name())
		}
		cur = baked
	}
	return cur, nil
}

// Clone returns an unfitted copy of the recipe with cloned steps.
func (r *Recipe) Clone() *Recipe {
	out := &Recipe{outcome: r.outcome}
	for _, s := range r.steps {
		out.steps = append(out.steps, s.Clone())
	}
	return out
}

// resolveNumeric returns the requested columns, or every numeric column
// except the outcome when none were requested. Requested columns must exist
// and be numeric.
func resolveNumeric(t *dataset.Table, requested []string, info Info, op string) ([]string, error) {
	if len(requested) == 0 {
		var cols []string
		for _, name := range t.NumericNames() {
			if name != info.Outcome {
				cols = append(cols, name)
			}
		}
		return cols, nil
	}
	for _, name := range requested {
		c := t.Column(name)
		if c == nil {
			return nil, errors.NewSchemaError(op, name, "no such column")
		}
		if c.Type != dataset.Numeric {
			return nil, errors.NewSchemaError(op, name, "column is not numeric")
		}
	}
	return requested, nil
}

// resolveCategorical mirrors resolveNumeric for categorical columns.
func resolveCategorical(t *dataset.Table, requested []string, op string) ([]string, error) {
	if len(requested) == 0 {
		return t.CategoricalNames(), nil
	}
	for _, name := range requested {
		c := t.Column(name)
		if c == nil {
			return nil, errors.NewSchemaError(op, name, "no such column")
		}
		if c.Type != dataset.Categorical {
			return nil, errors.NewSchemaError(op, name, "column is not categorical")
		}
	}
	return requested, nil
}
