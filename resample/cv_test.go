package resample

import (
	"math"
	"math/rand/v2"
	"testing"

	"elevate/dataset"
	"elevate/recipe"
	"elevate/workflow"
)

func linearTable(t *testing.T, n int) *dataset.Table {
	t.Helper()
	rng := rand.New(rand.NewPCG(9, 9))

	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = rng.Float64() * 10
		y[i] = 3*x[i] + 2 + rng.NormFloat64()*0.01
	}

	tbl, err := dataset.NewTable(
		dataset.Column{Name: "x", Type: dataset.Numeric, Floats: x},
		dataset.Column{Name: "y", Type: dataset.Numeric, Floats: y},
	)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	return tbl
}

func TestCrossValidateLinear(t *testing.T) {
	tbl := linearTable(t, 40)
	wf := workflow.New("y", recipe.New(), workflow.NewLinearSpec())

	res, err := CrossValidate(wf, tbl, NewVFold(5, 1), []string{"rmse", "r2"})
	if err != nil {
		t.Fatalf("CrossValidate() error = %v", err)
	}

	if len(res.Folds) != 5 {
		t.Fatalf("got %d folds, want 5", len(res.Folds))
	}
	for _, f := range res.Folds {
		if _, ok := f.Scores["rmse"]; !ok {
			t.Fatalf("fold %d missing rmse", f.Fold)
		}
	}

	// A near-deterministic linear relationship scores near-perfectly.
	if got := res.Mean("rmse"); got > 0.1 {
		t.Errorf("mean rmse = %v, want < 0.1", got)
	}
	if got := res.Mean("r2"); got < 0.99 {
		t.Errorf("mean r2 = %v, want > 0.99", got)
	}
	if math.IsNaN(res.Std("rmse")) {
		t.Error("rmse std should be defined")
	}
}

func TestCrossValidateLogOutcome(t *testing.T) {
	// y = 10^(0.05x + 1): exact once the recipe log10-transforms the target,
	// so scores must be computed on the transformed scale.
	n := 40
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = float64(i) / 4
		y[i] = math.Pow(10, 0.05*x[i]+1)
	}
	tbl, err := dataset.NewTable(
		dataset.Column{Name: "x", Type: dataset.Numeric, Floats: x},
		dataset.Column{Name: "y", Type: dataset.Numeric, Floats: y},
	)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	wf := workflow.New("y", recipe.New().Add(recipe.StepLog(0, "y")), workflow.NewLinearSpec())
	res, err := CrossValidate(wf, tbl, NewVFold(5, 1), []string{"rmse", "r2"})
	if err != nil {
		t.Fatalf("CrossValidate() error = %v", err)
	}

	if got := res.Mean("rmse"); got > 1e-8 {
		t.Errorf("mean rmse = %v, want ~0 on the log scale", got)
	}
	if got := res.Mean("r2"); got < 0.999 {
		t.Errorf("mean r2 = %v, want ~1 on the log scale", got)
	}
}

func TestCrossValidateLeavesWorkflowUnfitted(t *testing.T) {
	tbl := linearTable(t, 20)
	wf := workflow.New("y", recipe.New(), workflow.NewLinearSpec())

	if _, err := CrossValidate(wf, tbl, NewVFold(4, 1), []string{"mae"}); err != nil {
		t.Fatalf("CrossValidate() error = %v", err)
	}
	if wf.IsFitted() {
		t.Error("cross-validation must not fit the original workflow")
	}
}

func TestCrossValidateValidation(t *testing.T) {
	tbl := linearTable(t, 20)
	wf := workflow.New("y", recipe.New(), workflow.NewLinearSpec())

	if _, err := CrossValidate(wf, tbl, NewVFold(4, 1), nil); err == nil {
		t.Error("no metrics should fail")
	}
	if _, err := CrossValidate(wf, tbl, NewVFold(4, 1), []string{"auc"}); err == nil {
		t.Error("unknown metric should fail")
	}
	if _, err := CrossValidate(wf, tbl, NewVFold(25, 1), []string{"rmse"}); err == nil {
		t.Error("more folds than rows should fail")
	}

	bad := workflow.New("nope", recipe.New(), workflow.NewLinearSpec())
	if _, err := CrossValidate(bad, tbl, NewVFold(4, 1), []string{"rmse"}); err == nil {
		t.Error("missing target should surface the fold error")
	}
}
