package resample

import (
	"sort"
	"testing"
)

func TestVFoldSplitSizes(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		v         int
		wantSizes []int
	}{
		{name: "even split", n: 10, v: 5, wantSizes: []int{2, 2, 2, 2, 2}},
		{name: "remainder spread over first folds", n: 11, v: 3, wantSizes: []int{4, 4, 3}},
		{name: "minimum rows", n: 2, v: 2, wantSizes: []int{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			folds, err := NewVFold(tt.v, 1).Split(tt.n)
			if err != nil {
				t.Fatalf("Split() error = %v", err)
			}
			if len(folds) != tt.v {
				t.Fatalf("got %d folds, want %d", len(folds), tt.v)
			}
			for i, f := range folds {
				if len(f.Assessment) != tt.wantSizes[i] {
					t.Errorf("fold %d assessment size = %d, want %d", i, len(f.Assessment), tt.wantSizes[i])
				}
				if len(f.Analysis)+len(f.Assessment) != tt.n {
					t.Errorf("fold %d does not cover all rows", i)
				}
			}
		})
	}
}

func TestVFoldAssessmentPartition(t *testing.T) {
	folds, err := NewVFold(4, 42).Split(22)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	var all []int
	for _, f := range folds {
		seen := make(map[int]bool, len(f.Analysis))
		for _, idx := range f.Analysis {
			seen[idx] = true
		}
		for _, idx := range f.Assessment {
			if seen[idx] {
				t.Fatalf("row %d appears in both analysis and assessment", idx)
			}
		}
		all = append(all, f.Assessment...)
	}

	// Assessment sets partition the rows exactly.
	sort.Ints(all)
	if len(all) != 22 {
		t.Fatalf("assessment rows = %d, want 22", len(all))
	}
	for i, idx := range all {
		if idx != i {
			t.Fatalf("row %d missing from assessment sets", i)
		}
	}
}

func TestVFoldReproducible(t *testing.T) {
	a, err := NewVFold(3, 7).Split(12)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	b, err := NewVFold(3, 7).Split(12)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	for i := range a {
		for j := range a[i].Assessment {
			if a[i].Assessment[j] != b[i].Assessment[j] {
				t.Fatal("same seed should produce identical folds")
			}
		}
	}

	c, err := NewVFold(3, 8).Split(12)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	same := true
	for i := range a {
		for j := range a[i].Assessment {
			if a[i].Assessment[j] != c[i].Assessment[j] {
				same = false
			}
		}
	}
	if same {
		t.Error("different seeds should shuffle differently")
	}
}

func TestVFoldValidation(t *testing.T) {
	if _, err := NewVFold(1, 0).Split(10); err == nil {
		t.Error("v=1 should fail")
	}
	if _, err := NewVFold(5, 0).Split(3); err == nil {
		t.Error("v larger than n should fail")
	}
}
