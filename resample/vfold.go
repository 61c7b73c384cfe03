// Package resample provides V-fold cross-validation for workflows. Each fold
// holds out one portion of the data for assessment and fits on the rest; a
// workflow is re-fitted from scratch per fold so no preprocessing statistics
// leak from assessment rows into training.
package resample

import (
	"math/rand/v2"

	"elevate/pkg/errors"
)

// Fold is one resample: row indices for the analysis (training) set and the
// held-out assessment set.
type Fold struct {
	Analysis   []int
	Assessment []int
}

// VFold partitions rows into V folds of near-equal size. With Shuffle set,
// rows are permuted with a PCG generator seeded from Seed before assignment,
// so folds are reproducible for a given seed.
type VFold struct {
	V       int
	Shuffle bool
	Seed    uint64
}

// NewVFold creates a shuffled V-fold splitter.
func NewVFold(v int, seed uint64) *VFold {
	return &VFold{V: v, Shuffle: true, Seed: seed}
}

// Split returns the folds for n rows. Every row lands in exactly one
// assessment set; the first n%V folds get one extra row.
func (vf *VFold) Split(n int) ([]Fold, error) {
	if vf.V < 2 {
		return nil, errors.NewValidationError("v", "must be at least 2", vf.V)
	}
	if n < vf.V {
		return nil, errors.NewValidationError("v", "cannot exceed the number of rows", vf.V)
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	if vf.Shuffle {
		rng := rand.New(rand.NewPCG(vf.Seed, vf.Seed))
		rng.Shuffle(n, func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	foldSizes := make([]int, vf.V)
	base := n / vf.V
	remainder := n % vf.V
	for i := range foldSizes {
		foldSizes[i] = base
		if i < remainder {
			foldSizes[i]++
		}
	}

	folds := make([]Fold, vf.V)
	start := 0
	for i, size := range foldSizes {
		assessment := indices[start : start+size]
		analysis := make([]int, 0, n-size)
		analysis = append(analysis, indices[:start]...)
		analysis = append(analysis, indices[start+size:]...)
		folds[i] = Fold{Analysis: analysis, Assessment: assessment}
		start += size
	}
	return folds, nil
}
