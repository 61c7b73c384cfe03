package errors

import (
	"strings"
	"testing"
)

func TestNotFittedError(t *testing.T) {
	err := NewNotFittedError("KNNRegressor", "Predict")

	var nfe *NotFittedError
	if !As(err, &nfe) {
		t.Fatalf("expected NotFittedError, got %T", err)
	}
	if nfe.ModelName != "KNNRegressor" || nfe.Method != "Predict" {
		t.Errorf("unexpected fields: %+v", nfe)
	}
	if !strings.Contains(err.Error(), "not fitted") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestDimensionError(t *testing.T) {
	tests := []struct {
		name string
		axis int
		want string
	}{
		{name: "row axis", axis: 0, want: "rows"},
		{name: "feature axis", axis: 1, want: "features"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDimensionError("Fit", 10, 7, tt.axis)
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("DimensionError message %q missing %q", err.Error(), tt.want)
			}

			var de *DimensionError
			if !As(err, &de) {
				t.Fatalf("expected DimensionError, got %T", err)
			}
			if de.Expected != 10 || de.Got != 7 {
				t.Errorf("unexpected fields: %+v", de)
			}
		})
	}
}

func TestSchemaError(t *testing.T) {
	err := NewSchemaError("Matrix", "borough", "categorical column must be encoded first")
	if !strings.Contains(err.Error(), "borough") {
		t.Errorf("unexpected message: %s", err.Error())
	}

	err = NewSchemaError("ReadCSV", "", "no header row")
	if strings.Contains(err.Error(), "''") {
		t.Errorf("column should be omitted when empty: %s", err.Error())
	}
}

func TestWarnHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) { captured = w })
	defer SetWarningHandler(nil)

	w := NewUndefinedMetricWarning("mape", "zero true values", 0)
	Warn(w)

	if captured == nil {
		t.Fatal("warning handler was not invoked")
	}
	if !strings.Contains(captured.Error(), "mape") {
		t.Errorf("unexpected warning: %v", captured)
	}
}

func TestRecover(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err, "test operation")
		panic("boom")
	}

	err := fn()
	if err == nil {
		t.Fatal("expected error from recovered panic")
	}

	var pe *PanicError
	if !As(err, &pe) {
		t.Fatalf("expected PanicError, got %T", err)
	}
	if pe.Operation != "test operation" {
		t.Errorf("unexpected operation: %s", pe.Operation)
	}
	if pe.StackTrace == "" {
		t.Error("expected stack trace to be captured")
	}
}

func TestSafeExecute(t *testing.T) {
	if err := SafeExecute("ok", func() error { return nil }); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := SafeExecute("panics", func() error { panic("bad index") })
	if err == nil {
		t.Fatal("expected error from panic")
	}
	if !strings.Contains(err.Error(), "bad index") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
