package dataset

import (
	"math"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadCSVInference(t *testing.T) {
	in := strings.NewReader(
		"Name,Speed FPM,Capacity\n" +
			"a,350,2500\n" +
			"b,NA,3500\n" +
			"c,200,\n")

	tbl, err := ReadCSV(in)
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}

	want := []string{"name", "speed_fpm", "capacity"}
	for i, name := range tbl.Names() {
		if name != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, name, want[i])
		}
	}

	if c := tbl.Column("name"); c.Type != Categorical {
		t.Errorf("name should be categorical, got %v", c.Type)
	}
	speed := tbl.Column("speed_fpm")
	if speed.Type != Numeric {
		t.Fatalf("speed_fpm should be numeric, got %v", speed.Type)
	}
	if !math.IsNaN(speed.Floats[1]) {
		t.Errorf("NA should parse as NaN, got %v", speed.Floats[1])
	}
	if got := tbl.Column("capacity").MissingCount(); got != 1 {
		t.Errorf("capacity missing = %d, want 1", got)
	}
}

func TestReadCSVDeduplicatesHeaders(t *testing.T) {
	// "Floor To" and "floor_to" clean to the same name; the second gets a
	// suffix instead of failing the load.
	in := strings.NewReader(
		"Floor To,floor_to,Speed\n" +
			"1,2,350\n" +
			"3,4,500\n")

	tbl, err := ReadCSV(in)
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}

	want := []string{"floor_to", "floor_to_2", "speed"}
	for i, name := range tbl.Names() {
		if name != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, name, want[i])
		}
	}
	if got := tbl.Column("floor_to_2").Floats[0]; got != 2 {
		t.Errorf("floor_to_2[0] = %v, want 2", got)
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "empty input", in: ""},
		{name: "header only", in: "a,b\n"},
		{name: "ragged row", in: "a,b\n1,2\n3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadCSV(strings.NewReader(tt.in)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestReadCSVFileSample(t *testing.T) {
	tbl, err := ReadCSVFile(filepath.Join("testdata", "elevators_sample.csv"))
	if err != nil {
		t.Fatalf("ReadCSVFile() error = %v", err)
	}

	if got := tbl.NumRows(); got != 30 {
		t.Errorf("NumRows() = %d, want 30", got)
	}
	if c := tbl.Column("speed_fpm"); c == nil || c.Type != Numeric {
		t.Fatalf("speed_fpm column missing or wrong type: %v", c)
	}
	if c := tbl.Column("machine_type"); c == nil || c.Type != Categorical {
		t.Fatalf("machine_type column missing or wrong type: %v", c)
	}
	// The escalator row has no machine type.
	if got := tbl.Column("machine_type").MissingCount(); got != 1 {
		t.Errorf("machine_type missing = %d, want 1", got)
	}
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Device Number", "device_number"},
		{"Capacity (lbs)", "capacity_lbs"},
		{"speedFPM", "speed_fpm"},
		{"  Floor To ", "floor_to"},
		{"already_clean", "already_clean"},
		{"Year-Approved", "year_approved"},
	}

	for _, tt := range tests {
		if got := CleanName(tt.in); got != tt.want {
			t.Errorf("CleanName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanNamesDeduplicates(t *testing.T) {
	tbl, err := NewTable(
		Column{Name: "A B", Type: Numeric, Floats: []float64{1}},
		Column{Name: "a b", Type: Numeric, Floats: []float64{2}},
	)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	CleanNames(tbl)

	names := tbl.Names()
	if names[0] != "a_b" || names[1] != "a_b_2" {
		t.Errorf("CleanNames() = %v", names)
	}
}
