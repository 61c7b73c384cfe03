package tune

import (
	"testing"
)

func TestGridExpand(t *testing.T) {
	g := NewGrid().
		Add("neighbors", 1, 3, 5).
		Add("penalty", 0.1, 1.0)

	if g.Size() != 6 {
		t.Fatalf("Size() = %d, want 6", g.Size())
	}

	candidates, err := g.Expand()
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(candidates) != 6 {
		t.Fatalf("got %d candidates, want 6", len(candidates))
	}

	// First parameter varies slowest.
	if candidates[0]["neighbors"] != 1 || candidates[0]["penalty"] != 0.1 {
		t.Errorf("candidate 0 = %v", candidates[0])
	}
	if candidates[1]["neighbors"] != 1 || candidates[1]["penalty"] != 1.0 {
		t.Errorf("candidate 1 = %v", candidates[1])
	}
	if candidates[5]["neighbors"] != 5 || candidates[5]["penalty"] != 1.0 {
		t.Errorf("candidate 5 = %v", candidates[5])
	}
}

func TestGridExpandEmpty(t *testing.T) {
	candidates, err := NewGrid().Expand()
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(candidates) != 1 || len(candidates[0]) != 0 {
		t.Errorf("empty grid should expand to one empty candidate, got %v", candidates)
	}
}

func TestGridAddReplaces(t *testing.T) {
	g := NewGrid().Add("penalty", 1, 2, 3).Add("penalty", 10)
	if g.Size() != 1 {
		t.Errorf("Size() = %d, want 1 after replacement", g.Size())
	}
	if len(g.Names()) != 1 {
		t.Errorf("Names() = %v, want one entry", g.Names())
	}
}

func TestGridNoValues(t *testing.T) {
	if _, err := NewGrid().Add("penalty").Expand(); err == nil {
		t.Error("parameter with no values should fail")
	}
}
