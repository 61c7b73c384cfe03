package recipe

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"elevate/core/model"
	"elevate/dataset"
	"elevate/pkg/errors"
)

// imputeStep fills missing numeric values with a statistic estimated per
// column during prep. It backs both the median and mean imputation steps.
type imputeStep struct {
	model.BaseEstimator

	name      string
	stat      func(vals []float64) float64
	requested []string

	cols []string
	fill map[string]float64
}

// StepImputeMedian fills missing values in the given numeric columns (all
// numeric predictors when none are given) with the training median.
func StepImputeMedian(cols ...string) Step {
	return &imputeStep{
		name:      "impute_median",
		requested: cols,
		stat: func(vals []float64) float64 {
			sorted := make([]float64, len(vals))
			copy(sorted, vals)
			sort.Float64s(sorted)
			return stat.Quantile(0.5, stat.Empirical, sorted, nil)
		},
	}
}

// StepImputeMean fills missing values with the training mean.
func StepImputeMean(cols ...string) Step {
	return &imputeStep{
		name:      "impute_mean",
		requested: cols,
		stat:      func(vals []float64) float64 { return stat.Mean(vals, nil) },
	}
}

func (s *imputeStep) Name() string { return s.name }

func (s *imputeStep) Prep(t *dataset.Table, info Info) error {
	cols, err := resolveNumeric(t, s.requested, info, s.name)
	if err != nil {
		return err
	}

	s.cols = cols
	s.fill = make(map[string]float64, len(cols))
	for _, name := range cols {
		c := t.Column(name)
		var vals []float64
		for _, v := range c.Floats {
			if !math.IsNaN(v) {
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			return errors.NewSchemaError(s.name, name, "all values missing, nothing to estimate from")
		}
		s.fill[name] = s.stat(vals)
	}

	s.SetFitted()
	return nil
}

func (s *imputeStep) Bake(t *dataset.Table) (*dataset.Table, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError(s.name, "Bake")
	}

	out := t.Clone()
	for _, name := range s.cols {
		c := out.Column(name)
		if c == nil || c.Type != dataset.Numeric {
			return nil, errors.NewSchemaError(s.name, name, "column missing or not numeric at bake time")
		}
		fill := s.fill[name]
		for i, v := range c.Floats {
			if math.IsNaN(v) {
				c.Floats[i] = fill
			}
		}
	}
	return out, nil
}

func (s *imputeStep) Clone() Step {
	return &imputeStep{name: s.name, stat: s.stat, requested: s.requested}
}

// normalizeStep centers and scales numeric columns to zero mean and unit
// variance using training statistics.
type normalizeStep struct {
	model.BaseEstimator

	requested []string

	cols  []string
	mean  map[string]float64
	scale map[string]float64
}

// StepNormalize z-scores the given numeric columns (all numeric predictors
// when none are given). Columns with near-zero variance keep scale 1 so
// baking never divides by zero.
func StepNormalize(cols ...string) Step {
	return &normalizeStep{requested: cols}
}

func (s *normalizeStep) Name() string { return "normalize" }

func (s *normalizeStep) Prep(t *dataset.Table, info Info) error {
	cols, err := resolveNumeric(t, s.requested, info, "normalize")
	if err != nil {
		return err
	}

	s.cols = cols
	s.mean = make(map[string]float64, len(cols))
	s.scale = make(map[string]float64, len(cols))
	for _, name := range cols {
		c := t.Column(name)
		mean := stat.Mean(c.Floats, nil)
		sd := math.Sqrt(stat.Variance(c.Floats, nil))
		if math.IsNaN(mean) {
			return errors.NewSchemaError("normalize", name, "missing values must be imputed before normalizing")
		}
		if math.Abs(sd) < 1e-8 {
			sd = 1.0
		}
		s.mean[name] = mean
		s.scale[name] = sd
	}

	s.SetFitted()
	return nil
}

func (s *normalizeStep) Bake(t *dataset.Table) (*dataset.Table, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("normalize", "Bake")
	}

	out := t.Clone()
	for _, name := range s.cols {
		c := out.Column(name)
		if c == nil || c.Type != dataset.Numeric {
			return nil, errors.NewSchemaError("normalize", name, "column missing or not numeric at bake time")
		}
		mean, scale := s.mean[name], s.scale[name]
		for i, v := range c.Floats {
			c.Floats[i] = (v - mean) / scale
		}
	}
	return out, nil
}

func (s *normalizeStep) Clone() Step {
	return &normalizeStep{requested: s.requested}
}

// rangeStep rescales numeric columns to [0, 1] using training min/max.
type rangeStep struct {
	model.BaseEstimator

	requested []string

	cols []string
	min  map[string]float64
	span map[string]float64
}

// StepRange rescales the given numeric columns to [0, 1]. Values outside the
// training range bake to values outside [0, 1]; they are not clipped.
func StepRange(cols ...string) Step {
	return &rangeStep{requested: cols}
}

func (s *rangeStep) Name() string { return "range" }

func (s *rangeStep) Prep(t *dataset.Table, info Info) error {
	cols, err := resolveNumeric(t, s.requested, info, "range")
	if err != nil {
		return err
	}

	s.cols = cols
	s.min = make(map[string]float64, len(cols))
	s.span = make(map[string]float64, len(cols))
	for _, name := range cols {
		c := t.Column(name)
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, v := range c.Floats {
			if math.IsNaN(v) {
				return errors.NewSchemaError("range", name, "missing values must be imputed before rescaling")
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		span := hi - lo
		if span < 1e-8 {
			span = 1.0
		}
		s.min[name] = lo
		s.span[name] = span
	}

	s.SetFitted()
	return nil
}

func (s *rangeStep) Bake(t *dataset.Table) (*dataset.Table, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("range", "Bake")
	}

	out := t.Clone()
	for _, name := range s.cols {
		c := out.Column(name)
		if c == nil || c.Type != dataset.Numeric {
			return nil, errors.NewSchemaError("range", name, "column missing or not numeric at bake time")
		}
		lo, span := s.min[name], s.span[name]
		for i, v := range c.Floats {
			c.Floats[i] = (v - lo) / span
		}
	}
	return out, nil
}

func (s *rangeStep) Clone() Step {
	return &rangeStep{requested: s.requested}
}

// logStep applies log10(x + offset) to named columns. Unlike selector-based
// steps, columns are always explicit: log-transforming "everything" is
// rarely intended, and transforming the outcome must be a visible choice.
type logStep struct {
	model.BaseEstimator

	offset  float64
	cols    []string
	outcome string
}

// StepLog applies log10(x + offset) to the named numeric columns. Prep
// validates that every training value is positive after the offset. When the
// named column is the recipe's outcome and is absent at bake time, the step
// skips it, so prediction tables need not carry the target.
func StepLog(offset float64, cols ...string) Step {
	return &logStep{offset: offset, cols: cols}
}

func (s *logStep) Name() string { return "log" }

func (s *logStep) Prep(t *dataset.Table, info Info) error {
	if len(s.cols) == 0 {
		return errors.NewValidationError("cols", "log step requires explicit columns", s.cols)
	}
	for _, name := range s.cols {
		c := t.Column(name)
		if c == nil {
			return errors.NewSchemaError("log", name, "no such column")
		}
		if c.Type != dataset.Numeric {
			return errors.NewSchemaError("log", name, "column is not numeric")
		}
		for _, v := range c.Floats {
			if !math.IsNaN(v) && v+s.offset <= 0 {
				return errors.NewValidationError("offset", "log undefined for non-positive values", v+s.offset)
			}
		}
	}
	s.outcome = info.Outcome
	s.SetFitted()
	return nil
}

func (s *logStep) Bake(t *dataset.Table) (*dataset.Table, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("log", "Bake")
	}

	out := t.Clone()
	for _, name := range s.cols {
		c := out.Column(name)
		if c == nil && name == s.outcome {
			continue
		}
		if c == nil || c.Type != dataset.Numeric {
			return nil, errors.NewSchemaError("log", name, "column missing or not numeric at bake time")
		}
		for i, v := range c.Floats {
			if !math.IsNaN(v) {
				c.Floats[i] = math.Log10(v + s.offset)
			}
		}
	}
	return out, nil
}

func (s *logStep) Clone() Step {
	return &logStep{offset: s.offset, cols: s.cols}
}

// zvStep drops columns with no variation in the training data.
type zvStep struct {
	model.BaseEstimator

	drop []string
}

// StepZV drops zero-variance columns: numeric columns with a single distinct
// value and categorical columns with a single level. Dropped columns are
// reported through the warning handler.
func StepZV() Step {
	return &zvStep{}
}

func (s *zvStep) Name() string { return "zv" }

func (s *zvStep) Prep(t *dataset.Table, info Info) error {
	s.drop = nil
	for _, name := range t.Names() {
		if name == info.Outcome {
			continue
		}
		c := t.Column(name)
		if zeroVariance(c) {
			s.drop = append(s.drop, name)
			errors.Warn(errors.NewDroppedColumnWarning("zv", name, "no variation in training data"))
		}
	}
	s.SetFitted()
	return nil
}

func zeroVariance(c *dataset.Column) bool {
	if c.Type == dataset.Numeric {
		first := math.NaN()
		for _, v := range c.Floats {
			if math.IsNaN(v) {
				continue
			}
			if math.IsNaN(first) {
				first = v
			} else if v != first {
				return false
			}
		}
		return true
	}

	first := ""
	for _, v := range c.Strings {
		if v == "" {
			continue
		}
		if first == "" {
			first = v
		} else if v != first {
			return false
		}
	}
	return true
}

func (s *zvStep) Bake(t *dataset.Table) (*dataset.Table, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("zv", "Bake")
	}

	out := t.Clone()
	for _, name := range s.drop {
		if out.HasColumn(name) {
			if err := out.DropColumn(name); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func (s *zvStep) Clone() Step {
	return &zvStep{}
}
