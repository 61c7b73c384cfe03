// Package tune implements hyperparameter grid search over cross-validated
// workflows, plus the final train/test fit once a candidate is chosen.
package tune

import (
	"elevate/pkg/errors"
)

// Grid is a regular hyperparameter grid: every combination of the registered
// values is a candidate. Parameters expand in registration order, so
// candidate order is deterministic.
type Grid struct {
	names  []string
	values map[string][]float64
}

// NewGrid creates an empty grid.
func NewGrid() *Grid {
	return &Grid{values: make(map[string][]float64)}
}

// Add registers candidate values for a parameter and returns the grid for
// chaining. Re-adding a parameter replaces its values.
func (g *Grid) Add(name string, values ...float64) *Grid {
	if _, ok := g.values[name]; !ok {
		g.names = append(g.names, name)
	}
	g.values[name] = append([]float64(nil), values...)
	return g
}

// Names returns the parameter names in registration order.
func (g *Grid) Names() []string {
	return append([]string(nil), g.names...)
}

// Size returns the number of candidates the grid expands to.
func (g *Grid) Size() int {
	size := 1
	for _, name := range g.names {
		size *= len(g.values[name])
	}
	return size
}

// Expand returns every parameter combination. An empty grid expands to a
// single empty candidate, so searching an untunable model still evaluates it
// once.
func (g *Grid) Expand() ([]map[string]float64, error) {
	for _, name := range g.names {
		if len(g.values[name]) == 0 {
			return nil, errors.NewValidationError(name, "parameter has no candidate values", nil)
		}
	}

	candidates := []map[string]float64{{}}
	for _, name := range g.names {
		next := make([]map[string]float64, 0, len(candidates)*len(g.values[name]))
		for _, base := range candidates {
			for _, v := range g.values[name] {
				params := make(map[string]float64, len(base)+1)
				for k, bv := range base {
					params[k] = bv
				}
				params[name] = v
				next = append(next, params)
			}
		}
		candidates = next
	}
	return candidates, nil
}
