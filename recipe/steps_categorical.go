package recipe

import (
	"sort"

	"elevate/core/model"
	"elevate/dataset"
	"elevate/pkg/errors"
)

// UnknownLevel is the level assigned to missing categorical values.
const UnknownLevel = "unknown"

// OtherLevel is the level rare or unseen categories collapse into.
const OtherLevel = "other"

// unknownStep replaces missing categorical values with an explicit level.
type unknownStep struct {
	model.BaseEstimator

	requested []string
	cols      []string
}

// StepUnknown replaces missing values in the given categorical columns (all
// categorical columns when none are given) with the "unknown" level.
func StepUnknown(cols ...string) Step {
	return &unknownStep{requested: cols}
}

func (s *unknownStep) Name() string { return "unknown" }

func (s *unknownStep) Prep(t *dataset.Table, _ Info) error {
	cols, err := resolveCategorical(t, s.requested, "unknown")
	if err != nil {
		return err
	}
	s.cols = cols
	s.SetFitted()
	return nil
}

func (s *unknownStep) Bake(t *dataset.Table) (*dataset.Table, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("unknown", "Bake")
	}

	out := t.Clone()
	for _, name := range s.cols {
		c := out.Column(name)
		if c == nil || c.Type != dataset.Categorical {
			return nil, errors.NewSchemaError("unknown", name, "column missing or not categorical at bake time")
		}
		for i, v := range c.Strings {
			if v == "" {
				c.Strings[i] = UnknownLevel
			}
		}
	}
	return out, nil
}

func (s *unknownStep) Clone() Step {
	return &unknownStep{requested: s.requested}
}

// otherStep collapses rare levels into a pooled "other" level.
type otherStep struct {
	model.BaseEstimator

	threshold float64
	requested []string

	cols []string
	keep map[string]map[string]bool
}

// StepOther collapses levels whose training frequency share is below
// threshold into the "other" level. Levels unseen during prep also bake to
// "other", which keeps downstream encodings stable on new data.
func StepOther(threshold float64, cols ...string) Step {
	return &otherStep{threshold: threshold, requested: cols}
}

func (s *otherStep) Name() string { return "other" }

func (s *otherStep) Prep(t *dataset.Table, _ Info) error {
	if s.threshold <= 0 || s.threshold >= 1 {
		return errors.NewValidationError("threshold", "must be in (0, 1)", s.threshold)
	}
	cols, err := resolveCategorical(t, s.requested, "other")
	if err != nil {
		return err
	}

	s.cols = cols
	s.keep = make(map[string]map[string]bool, len(cols))
	n := float64(t.NumRows())
	for _, name := range cols {
		c := t.Column(name)
		counts := map[string]int{}
		for _, v := range c.Strings {
			if v != "" {
				counts[v]++
			}
		}
		kept := map[string]bool{}
		for level, count := range counts {
			if float64(count)/n >= s.threshold {
				kept[level] = true
			}
		}
		s.keep[name] = kept
	}

	s.SetFitted()
	return nil
}

func (s *otherStep) Bake(t *dataset.Table) (*dataset.Table, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("other", "Bake")
	}

	out := t.Clone()
	for _, name := range s.cols {
		c := out.Column(name)
		if c == nil || c.Type != dataset.Categorical {
			return nil, errors.NewSchemaError("other", name, "column missing or not categorical at bake time")
		}
		kept := s.keep[name]
		for i, v := range c.Strings {
			if v != "" && !kept[v] {
				c.Strings[i] = OtherLevel
			}
		}
	}
	return out, nil
}

func (s *otherStep) Clone() Step {
	return &otherStep{threshold: s.threshold, requested: s.requested}
}

// dummyStep one-hot encodes categorical columns using levels fixed at prep
// time.
type dummyStep struct {
	model.BaseEstimator

	requested []string

	cols   []string
	levels map[string][]string // encoded levels per column, first level dropped
}

// StepDummy one-hot encodes the given categorical columns (all categorical
// columns when none are given) into 0/1 numeric columns named
// <column>_<level>. The alphabetically first level is dropped as the
// baseline so a model with an intercept stays full rank. Levels unseen at
// prep time encode as all zeros, the same as the baseline.
func StepDummy(cols ...string) Step {
	return &dummyStep{requested: cols}
}

func (s *dummyStep) Name() string { return "dummy" }

func (s *dummyStep) Prep(t *dataset.Table, _ Info) error {
	cols, err := resolveCategorical(t, s.requested, "dummy")
	if err != nil {
		return err
	}

	s.cols = cols
	s.levels = make(map[string][]string, len(cols))
	for _, name := range cols {
		c := t.Column(name)
		seen := map[string]bool{}
		for _, v := range c.Strings {
			if v != "" {
				seen[v] = true
			}
		}
		if len(seen) == 0 {
			return errors.NewSchemaError("dummy", name, "no levels to encode; impute or fill unknowns first")
		}

		all := make([]string, 0, len(seen))
		for level := range seen {
			all = append(all, level)
		}
		sort.Strings(all)
		// Drop the first level as the baseline.
		s.levels[name] = all[1:]
	}

	s.SetFitted()
	return nil
}

func (s *dummyStep) Bake(t *dataset.Table) (*dataset.Table, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("dummy", "Bake")
	}

	out := t.Clone()
	for _, name := range s.cols {
		c := out.Column(name)
		if c == nil || c.Type != dataset.Categorical {
			return nil, errors.NewSchemaError("dummy", name, "column missing or not categorical at bake time")
		}

		values := c.Strings
		if err := out.DropColumn(name); err != nil {
			return nil, err
		}
		for _, level := range s.levels[name] {
			encoded := make([]float64, len(values))
			for i, v := range values {
				if v == level {
					encoded[i] = 1
				}
			}
			col := dataset.Column{
				Name:   name + "_" + dataset.CleanName(level),
				Type:   dataset.Numeric,
				Floats: encoded,
			}
			if err := out.AddColumn(col); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func (s *dummyStep) Clone() Step {
	return &dummyStep{requested: s.requested}
}

// modeStep fills missing categorical values with the most frequent training
// level.
type modeStep struct {
	model.BaseEstimator

	requested []string

	cols []string
	fill map[string]string
}

// StepImputeMode fills missing values in the given categorical columns with
// the most frequent level from training (ties broken alphabetically).
func StepImputeMode(cols ...string) Step {
	return &modeStep{requested: cols}
}

func (s *modeStep) Name() string { return "impute_mode" }

func (s *modeStep) Prep(t *dataset.Table, _ Info) error {
	cols, err := resolveCategorical(t, s.requested, "impute_mode")
	if err != nil {
		return err
	}

	s.cols = cols
	s.fill = make(map[string]string, len(cols))
	for _, name := range cols {
		c := t.Column(name)
		counts := map[string]int{}
		for _, v := range c.Strings {
			if v != "" {
				counts[v]++
			}
		}
		if len(counts) == 0 {
			return errors.NewSchemaError("impute_mode", name, "all values missing, nothing to estimate from")
		}

		best, bestCount := "", -1
		for level, count := range counts {
			if count > bestCount || (count == bestCount && level < best) {
				best, bestCount = level, count
			}
		}
		s.fill[name] = best
	}

	s.SetFitted()
	return nil
}

func (s *modeStep) Bake(t *dataset.Table) (*dataset.Table, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("impute_mode", "Bake")
	}

	out := t.Clone()
	for _, name := range s.cols {
		c := out.Column(name)
		if c == nil || c.Type != dataset.Categorical {
			return nil, errors.NewSchemaError("impute_mode", name, "column missing or not categorical at bake time")
		}
		fill := s.fill[name]
		for i, v := range c.Strings {
			if v == "" {
				c.Strings[i] = fill
			}
		}
	}
	return out, nil
}

func (s *modeStep) Clone() Step {
	return &modeStep{requested: s.requested}
}
