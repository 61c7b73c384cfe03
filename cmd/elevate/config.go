package main

import (
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"elevate/neighbors"
	"elevate/pkg/errors"
	"elevate/recipe"
	"elevate/tune"
	"elevate/workflow"
)

// Config is the YAML experiment file driving every subcommand. One file
// describes the dataset, the preprocessing, the model, and the tuning grid,
// so a whole experiment is reproducible from a single document.
type Config struct {
	Name    string `yaml:"name"`
	Dataset string `yaml:"dataset"`
	Target  string `yaml:"target"`

	Model struct {
		Type      string  `yaml:"type"`
		Penalty   float64 `yaml:"penalty"`
		Neighbors int     `yaml:"neighbors"`
		Weights   string  `yaml:"weights"`
	} `yaml:"model"`

	Recipe struct {
		LogTarget      bool    `yaml:"log_target"`
		Impute         string  `yaml:"impute"`
		OtherThreshold float64 `yaml:"other_threshold"`
		Normalize      bool    `yaml:"normalize"`
	} `yaml:"recipe"`

	Split struct {
		Prop float64 `yaml:"prop"`
		Seed int     `yaml:"seed"`
	} `yaml:"split"`

	Folds struct {
		V    int    `yaml:"v"`
		Seed uint64 `yaml:"seed"`
	} `yaml:"folds"`

	Grid    map[string][]float64 `yaml:"grid"`
	Metrics []string             `yaml:"metrics"`
	Select  string               `yaml:"select"`
	Store   string               `yaml:"store"`
}

// LoadConfig reads and validates an experiment file, filling defaults for
// omitted sections.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}

	cfg := &Config{}
	cfg.Model.Type = "linear_reg"
	cfg.Model.Penalty = 1.0
	cfg.Model.Neighbors = 5
	cfg.Model.Weights = string(neighbors.Uniform)
	cfg.Recipe.Impute = "median"
	cfg.Recipe.OtherThreshold = 0.05
	cfg.Recipe.Normalize = true
	cfg.Split.Prop = 0.75
	cfg.Split.Seed = 123
	cfg.Folds.V = 10
	cfg.Folds.Seed = 123

	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}

	if cfg.Dataset == "" {
		return nil, errors.NewValidationError("dataset", "must name a CSV file", cfg.Dataset)
	}
	if cfg.Target == "" {
		return nil, errors.NewValidationError("target", "must name the outcome column", cfg.Target)
	}
	if len(cfg.Metrics) == 0 {
		cfg.Metrics = []string{"rmse", "r2"}
	}
	if cfg.Select == "" {
		cfg.Select = cfg.Metrics[0]
	}
	if cfg.Name == "" {
		cfg.Name = cfg.Model.Type
	}
	return cfg, nil
}

// BuildRecipe assembles the preprocessing pipeline the config describes, in
// the order imputation → rare-level handling → dummy encoding → zero-variance
// filtering → scaling.
func (c *Config) BuildRecipe() (*recipe.Recipe, error) {
	rec := recipe.New()

	if c.Recipe.LogTarget {
		rec.Add(recipe.StepLog(0, c.Target))
	}

	switch c.Recipe.Impute {
	case "median":
		rec.Add(recipe.StepImputeMedian())
	case "mean":
		rec.Add(recipe.StepImputeMean())
	case "none":
	default:
		return nil, errors.NewValidationError("recipe.impute", "must be median, mean, or none", c.Recipe.Impute)
	}

	rec.Add(recipe.StepUnknown())
	if c.Recipe.OtherThreshold > 0 {
		rec.Add(recipe.StepOther(c.Recipe.OtherThreshold))
	}
	rec.Add(recipe.StepDummy())
	rec.Add(recipe.StepZV())
	if c.Recipe.Normalize {
		rec.Add(recipe.StepNormalize())
	}
	return rec, nil
}

// BuildSpec constructs the model specification the config names.
func (c *Config) BuildSpec() (workflow.Spec, error) {
	switch c.Model.Type {
	case "linear_reg":
		return workflow.NewLinearSpec(), nil
	case "ridge_reg":
		return workflow.NewRidgeSpec(c.Model.Penalty), nil
	case "knn_reg":
		return workflow.KNNSpec{
			Neighbors: c.Model.Neighbors,
			Weights:   neighbors.Weighting(c.Model.Weights),
		}, nil
	default:
		return nil, errors.NewValidationError("model.type", "must be linear_reg, ridge_reg, or knn_reg", c.Model.Type)
	}
}

// BuildWorkflow bundles the configured recipe and spec.
func (c *Config) BuildWorkflow() (*workflow.Workflow, error) {
	rec, err := c.BuildRecipe()
	if err != nil {
		return nil, err
	}
	spec, err := c.BuildSpec()
	if err != nil {
		return nil, err
	}
	return workflow.New(c.Target, rec, spec), nil
}

// BuildGrid converts the config's grid section. Parameters are added in
// sorted name order so candidate order is stable across runs.
func (c *Config) BuildGrid() *tune.Grid {
	names := make([]string, 0, len(c.Grid))
	for name := range c.Grid {
		names = append(names, name)
	}
	sort.Strings(names)

	g := tune.NewGrid()
	for _, name := range names {
		g.Add(name, c.Grid[name]...)
	}
	return g
}
