package recipe

import (
	"math"
	"testing"

	"elevate/dataset"
	"elevate/pkg/errors"
)

func numericColumn(name string, vals ...float64) dataset.Column {
	return dataset.Column{Name: name, Type: dataset.Numeric, Floats: vals}
}

func categoricalColumn(name string, vals ...string) dataset.Column {
	return dataset.Column{Name: name, Type: dataset.Categorical, Strings: vals}
}

func mustTable(t *testing.T, cols ...dataset.Column) *dataset.Table {
	t.Helper()
	tbl, err := dataset.NewTable(cols...)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	return tbl
}

func TestStepImputeMedian(t *testing.T) {
	tbl := mustTable(t, numericColumn("x", 1, math.NaN(), 3, 5, math.NaN()))

	s := StepImputeMedian("x")
	if err := s.Prep(tbl, Info{}); err != nil {
		t.Fatalf("Prep() error = %v", err)
	}
	baked, err := s.Bake(tbl)
	if err != nil {
		t.Fatalf("Bake() error = %v", err)
	}

	got := baked.Column("x").Floats
	if got[1] != 3 || got[4] != 3 {
		t.Errorf("imputed values = %v, want median 3", got)
	}
	// Original table untouched.
	if !math.IsNaN(tbl.Column("x").Floats[1]) {
		t.Error("Bake mutated its input")
	}
}

func TestStepImputeAllMissing(t *testing.T) {
	tbl := mustTable(t, numericColumn("x", math.NaN(), math.NaN()))
	s := StepImputeMean("x")
	if err := s.Prep(tbl, Info{}); err == nil {
		t.Error("all-missing column should fail prep")
	}
}

func TestStepNormalize(t *testing.T) {
	tbl := mustTable(t,
		numericColumn("x", 2, 4, 6, 8),
		numericColumn("y", 10, 20, 30, 40),
	)

	s := StepNormalize()
	if err := s.Prep(tbl, Info{Outcome: "y"}); err != nil {
		t.Fatalf("Prep() error = %v", err)
	}
	baked, err := s.Bake(tbl)
	if err != nil {
		t.Fatalf("Bake() error = %v", err)
	}

	x := baked.Column("x").Floats
	var mean float64
	for _, v := range x {
		mean += v
	}
	mean /= float64(len(x))
	if math.Abs(mean) > 1e-10 {
		t.Errorf("normalized mean = %v, want 0", mean)
	}

	// Outcome excluded by the selector.
	if baked.Column("y").Floats[0] != 10 {
		t.Error("outcome should not be normalized")
	}
}

func TestStepNormalizeConstantColumn(t *testing.T) {
	tbl := mustTable(t, numericColumn("x", 5, 5, 5))
	s := StepNormalize("x")
	if err := s.Prep(tbl, Info{}); err != nil {
		t.Fatalf("Prep() error = %v", err)
	}
	baked, err := s.Bake(tbl)
	if err != nil {
		t.Fatalf("Bake() error = %v", err)
	}
	for _, v := range baked.Column("x").Floats {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("constant column baked to %v", v)
		}
	}
}

func TestStepRange(t *testing.T) {
	tbl := mustTable(t, numericColumn("x", 10, 20, 30))
	s := StepRange("x")
	if err := s.Prep(tbl, Info{}); err != nil {
		t.Fatalf("Prep() error = %v", err)
	}
	baked, err := s.Bake(tbl)
	if err != nil {
		t.Fatalf("Bake() error = %v", err)
	}
	got := baked.Column("x").Floats
	want := []float64{0, 0.5, 1}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-10 {
			t.Errorf("range baked = %v, want %v", got, want)
			break
		}
	}
}

func TestStepLog(t *testing.T) {
	tbl := mustTable(t, numericColumn("speed", 10, 100, 1000))
	s := StepLog(0, "speed")
	if err := s.Prep(tbl, Info{}); err != nil {
		t.Fatalf("Prep() error = %v", err)
	}
	baked, err := s.Bake(tbl)
	if err != nil {
		t.Fatalf("Bake() error = %v", err)
	}
	got := baked.Column("speed").Floats
	for i, want := range []float64{1, 2, 3} {
		if math.Abs(got[i]-want) > 1e-10 {
			t.Errorf("log baked = %v, want [1 2 3]", got)
			break
		}
	}

	neg := mustTable(t, numericColumn("speed", -1, 10))
	s2 := StepLog(0, "speed")
	if err := s2.Prep(neg, Info{}); err == nil {
		t.Error("log over non-positive values should fail prep")
	}
}

func TestStepLogSkipsAbsentOutcome(t *testing.T) {
	train := mustTable(t,
		numericColumn("floors", 1, 2, 3),
		numericColumn("speed", 10, 100, 1000),
	)
	s := StepLog(0, "speed")
	if err := s.Prep(train, Info{Outcome: "speed"}); err != nil {
		t.Fatalf("Prep() error = %v", err)
	}

	// A prediction table has no outcome column; the step passes it through.
	fresh := mustTable(t, numericColumn("floors", 4, 5))
	baked, err := s.Bake(fresh)
	if err != nil {
		t.Fatalf("Bake() without outcome error = %v", err)
	}
	if got := baked.Column("floors").Floats[0]; got != 4 {
		t.Errorf("predictor column changed: %v", got)
	}

	// A missing non-outcome column is still an error.
	s2 := StepLog(0, "speed")
	if err := s2.Prep(train, Info{}); err != nil {
		t.Fatalf("Prep() error = %v", err)
	}
	if _, err := s2.Bake(fresh); err == nil {
		t.Error("missing non-outcome column should fail bake")
	}
}

func TestStepUnknown(t *testing.T) {
	tbl := mustTable(t, categoricalColumn("b", "a", "", "c"))
	s := StepUnknown()
	if err := s.Prep(tbl, Info{}); err != nil {
		t.Fatalf("Prep() error = %v", err)
	}
	baked, err := s.Bake(tbl)
	if err != nil {
		t.Fatalf("Bake() error = %v", err)
	}
	if got := baked.Column("b").Strings[1]; got != UnknownLevel {
		t.Errorf("missing value baked to %q, want %q", got, UnknownLevel)
	}
}

func TestStepOther(t *testing.T) {
	tbl := mustTable(t, categoricalColumn("b",
		"a", "a", "a", "a", "a", "a", "a", "a", "rare", "x"))

	s := StepOther(0.2, "b")
	if err := s.Prep(tbl, Info{}); err != nil {
		t.Fatalf("Prep() error = %v", err)
	}
	baked, err := s.Bake(tbl)
	if err != nil {
		t.Fatalf("Bake() error = %v", err)
	}

	got := baked.Column("b").Strings
	if got[8] != OtherLevel || got[9] != OtherLevel {
		t.Errorf("rare levels = %q, %q, want %q", got[8], got[9], OtherLevel)
	}
	if got[0] != "a" {
		t.Errorf("common level changed to %q", got[0])
	}

	// Unseen level on new data collapses to other.
	fresh := mustTable(t, categoricalColumn("b", "never_seen"))
	baked2, err := s.Bake(fresh)
	if err != nil {
		t.Fatalf("Bake() error = %v", err)
	}
	if got := baked2.Column("b").Strings[0]; got != OtherLevel {
		t.Errorf("unseen level baked to %q, want %q", got, OtherLevel)
	}
}

func TestStepOtherThresholdValidation(t *testing.T) {
	tbl := mustTable(t, categoricalColumn("b", "a"))
	for _, th := range []float64{0, 1, -0.1} {
		if err := StepOther(th, "b").Prep(tbl, Info{}); err == nil {
			t.Errorf("threshold %v should be rejected", th)
		}
	}
}

func TestStepDummy(t *testing.T) {
	tbl := mustTable(t,
		categoricalColumn("borough", "bronx", "manhattan", "queens", "manhattan"),
		numericColumn("y", 1, 2, 3, 4),
	)

	s := StepDummy("borough")
	if err := s.Prep(tbl, Info{}); err != nil {
		t.Fatalf("Prep() error = %v", err)
	}
	baked, err := s.Bake(tbl)
	if err != nil {
		t.Fatalf("Bake() error = %v", err)
	}

	// bronx is the baseline and gets no column.
	if baked.HasColumn("borough_bronx") {
		t.Error("first level should be dropped as baseline")
	}
	m := baked.Column("borough_manhattan")
	if m == nil {
		t.Fatalf("missing dummy column, have %v", baked.Names())
	}
	want := []float64{0, 1, 0, 1}
	for i := range want {
		if m.Floats[i] != want[i] {
			t.Errorf("borough_manhattan = %v, want %v", m.Floats, want)
			break
		}
	}

	// Unseen level encodes as all zeros.
	fresh := mustTable(t,
		categoricalColumn("borough", "staten island"),
		numericColumn("y", 9),
	)
	baked2, err := s.Bake(fresh)
	if err != nil {
		t.Fatalf("Bake() error = %v", err)
	}
	if baked2.Column("borough_manhattan").Floats[0] != 0 ||
		baked2.Column("borough_queens").Floats[0] != 0 {
		t.Error("unseen level should encode as all zeros")
	}
}

func TestStepImputeMode(t *testing.T) {
	tbl := mustTable(t, categoricalColumn("m", "t", "g", "t", "", "t"))
	s := StepImputeMode("m")
	if err := s.Prep(tbl, Info{}); err != nil {
		t.Fatalf("Prep() error = %v", err)
	}
	baked, err := s.Bake(tbl)
	if err != nil {
		t.Fatalf("Bake() error = %v", err)
	}
	if got := baked.Column("m").Strings[3]; got != "t" {
		t.Errorf("imputed mode = %q, want t", got)
	}
}

func TestStepZV(t *testing.T) {
	errors.SetWarningHandler(func(error) {})
	defer errors.SetWarningHandler(func(w error) {})

	tbl := mustTable(t,
		numericColumn("const", 7, 7, 7),
		numericColumn("x", 1, 2, 3),
		categoricalColumn("single", "a", "a", "a"),
		numericColumn("y", 4, 5, 6),
	)

	s := StepZV()
	if err := s.Prep(tbl, Info{Outcome: "y"}); err != nil {
		t.Fatalf("Prep() error = %v", err)
	}
	baked, err := s.Bake(tbl)
	if err != nil {
		t.Fatalf("Bake() error = %v", err)
	}

	if baked.HasColumn("const") || baked.HasColumn("single") {
		t.Errorf("zero-variance columns survived: %v", baked.Names())
	}
	if !baked.HasColumn("x") || !baked.HasColumn("y") {
		t.Errorf("informative columns dropped: %v", baked.Names())
	}
}

func TestStepBakeBeforePrep(t *testing.T) {
	tbl := mustTable(t, numericColumn("x", 1, 2))

	steps := []Step{
		StepImputeMedian("x"),
		StepNormalize("x"),
		StepRange("x"),
		StepLog(1, "x"),
		StepZV(),
	}
	for _, s := range steps {
		if _, err := s.Bake(tbl); err == nil {
			t.Errorf("%s: Bake before Prep should fail", s.Name())
		}
	}
}
