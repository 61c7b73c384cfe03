package dataset

import (
	"math"
	"path/filepath"
	"testing"
)

func TestInitialSplitSizes(t *testing.T) {
	tbl, err := ReadCSVFile(filepath.Join("testdata", "elevators_sample.csv"))
	if err != nil {
		t.Fatalf("ReadCSVFile() error = %v", err)
	}

	split, err := InitialSplit(tbl, 0.75, 42)
	if err != nil {
		t.Fatalf("InitialSplit() error = %v", err)
	}

	n := tbl.NumRows()
	if split.Train.NumRows()+split.Test.NumRows() != n {
		t.Errorf("train+test = %d, want %d", split.Train.NumRows()+split.Test.NumRows(), n)
	}
	wantTrain := int(float64(n) * 0.75)
	if split.Train.NumRows() != wantTrain {
		t.Errorf("train rows = %d, want %d", split.Train.NumRows(), wantTrain)
	}

	// Partitions must be disjoint.
	seen := map[int]bool{}
	for _, i := range split.TrainIndices {
		seen[i] = true
	}
	for _, i := range split.TestIndices {
		if seen[i] {
			t.Errorf("index %d appears in both partitions", i)
		}
	}
}

func TestInitialSplitReproducible(t *testing.T) {
	tbl, err := ReadCSVFile(filepath.Join("testdata", "elevators_sample.csv"))
	if err != nil {
		t.Fatalf("ReadCSVFile() error = %v", err)
	}

	a, err := InitialSplit(tbl, 0.8, 7)
	if err != nil {
		t.Fatalf("InitialSplit() error = %v", err)
	}
	b, err := InitialSplit(tbl, 0.8, 7)
	if err != nil {
		t.Fatalf("InitialSplit() error = %v", err)
	}
	for i := range a.TrainIndices {
		if a.TrainIndices[i] != b.TrainIndices[i] {
			t.Fatal("same seed should give the same split")
		}
	}

	c, err := InitialSplit(tbl, 0.8, 8)
	if err != nil {
		t.Fatalf("InitialSplit() error = %v", err)
	}
	same := true
	for i := range a.TrainIndices {
		if a.TrainIndices[i] != c.TrainIndices[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds should give different splits")
	}
}

func TestInitialSplitValidation(t *testing.T) {
	tbl := sampleTable(t)

	for _, prop := range []float64{0, 1, -0.5, 1.5} {
		if _, err := InitialSplit(tbl, prop, 1); err == nil {
			t.Errorf("prop %v should be rejected", prop)
		}
	}

	empty := &Table{}
	if _, err := InitialSplit(empty, 0.5, 1); err == nil {
		t.Error("empty table should be rejected")
	}
}

func TestSummary(t *testing.T) {
	tbl := sampleTable(t)
	sums, err := Summary(tbl)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if len(sums) != 3 {
		t.Fatalf("len(sums) = %d, want 3", len(sums))
	}

	speed := sums[0]
	if speed.Name != "speed_fpm" || speed.Numeric == nil {
		t.Fatalf("unexpected first summary: %+v", speed)
	}
	if math.Abs(speed.Numeric.Mean-287.5) > 1e-10 {
		t.Errorf("mean = %v, want 287.5", speed.Numeric.Mean)
	}
	if speed.Numeric.Min != 100 || speed.Numeric.Max != 500 {
		t.Errorf("min/max = %v/%v, want 100/500", speed.Numeric.Min, speed.Numeric.Max)
	}

	borough := sums[2]
	if borough.Categorical == nil {
		t.Fatalf("borough summary should be categorical: %+v", borough)
	}
	if borough.Categorical.Levels[0].Level != "manhattan" || borough.Categorical.Levels[0].Count != 2 {
		t.Errorf("top level = %+v, want manhattan(2)", borough.Categorical.Levels[0])
	}

	out := FormatSummary(sums)
	if out == "" {
		t.Error("FormatSummary returned empty output")
	}
}
