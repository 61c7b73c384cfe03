package dataset

import (
	"math/rand/v2"

	"elevate/pkg/errors"
	"elevate/pkg/log"
)

// Split is the result of an initial train/test partition. The index slices
// refer to rows of the original table.
type Split struct {
	Train        *Table
	Test         *Table
	TrainIndices []int
	TestIndices  []int
}

// InitialSplit partitions a table into train and test sets. prop is the
// fraction of rows assigned to training, in (0, 1); rows are shuffled with a
// PCG seeded from seed so splits are reproducible. The remainder after
// rounding goes to the training set.
func InitialSplit(t *Table, prop float64, seed int) (*Split, error) {
	n := t.NumRows()
	if n == 0 {
		return nil, errors.NewModelError("InitialSplit", "empty table", errors.ErrEmptyData)
	}
	if prop <= 0 || prop >= 1 {
		return nil, errors.NewValidationError("prop", "must be in (0, 1)", prop)
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	r.Shuffle(n, func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	nTest := n - int(float64(n)*prop)
	if nTest == 0 {
		nTest = 1
	}
	if nTest == n {
		nTest = n - 1
	}

	testIdx := indices[:nTest]
	trainIdx := indices[nTest:]

	train, err := t.Subset(trainIdx)
	if err != nil {
		return nil, err
	}
	test, err := t.Subset(testIdx)
	if err != nil {
		return nil, err
	}

	log.GetLoggerWithName("dataset").Debug("initial split",
		"train_rows", len(trainIdx),
		"test_rows", len(testIdx),
		"prop", prop,
	)

	return &Split{
		Train:        train,
		Test:         test,
		TrainIndices: trainIdx,
		TestIndices:  testIdx,
	}, nil
}
