package dataset

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"elevate/pkg/errors"
)

// NumericSummary holds exploratory statistics for a numeric column,
// computed over non-missing values only.
type NumericSummary struct {
	Count   int
	Missing int
	Mean    float64
	Std     float64
	Min     float64
	Median  float64
	Max     float64
}

// LevelCount is one categorical level with its frequency.
type LevelCount struct {
	Level string
	Count int
}

// CategoricalSummary holds level frequencies for a categorical column,
// ordered most frequent first.
type CategoricalSummary struct {
	Count   int
	Missing int
	Levels  []LevelCount
}

// ColumnSummary describes one column; exactly one of Numeric or Categorical
// is set, matching Type.
type ColumnSummary struct {
	Name        string
	Type        ColumnType
	Numeric     *NumericSummary
	Categorical *CategoricalSummary
}

// Summary computes exploratory statistics for every column.
func Summary(t *Table) ([]ColumnSummary, error) {
	if t.NumCols() == 0 {
		return nil, errors.NewModelError("Summary", "empty table", errors.ErrEmptyData)
	}

	out := make([]ColumnSummary, 0, t.NumCols())
	for _, name := range t.Names() {
		c := t.Column(name)
		cs := ColumnSummary{Name: name, Type: c.Type}
		if c.Type == Numeric {
			cs.Numeric = summarizeNumeric(c)
		} else {
			cs.Categorical = summarizeCategorical(c)
		}
		out = append(out, cs)
	}
	return out, nil
}

func summarizeNumeric(c *Column) *NumericSummary {
	var vals []float64
	for _, v := range c.Floats {
		if !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}

	s := &NumericSummary{
		Count:   len(vals),
		Missing: len(c.Floats) - len(vals),
	}
	if len(vals) == 0 {
		s.Mean, s.Std, s.Min, s.Median, s.Max = math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return s
	}

	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	s.Mean = stat.Mean(vals, nil)
	s.Std = math.Sqrt(stat.Variance(vals, nil))
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	return s
}

func summarizeCategorical(c *Column) *CategoricalSummary {
	counts := map[string]int{}
	missing := 0
	for _, v := range c.Strings {
		if v == "" {
			missing++
			continue
		}
		counts[v]++
	}

	s := &CategoricalSummary{
		Count:   len(c.Strings) - missing,
		Missing: missing,
	}
	for level, n := range counts {
		s.Levels = append(s.Levels, LevelCount{Level: level, Count: n})
	}
	sort.Slice(s.Levels, func(i, j int) bool {
		if s.Levels[i].Count != s.Levels[j].Count {
			return s.Levels[i].Count > s.Levels[j].Count
		}
		return s.Levels[i].Level < s.Levels[j].Level
	})
	return s
}

// FormatSummary renders summaries as an aligned text table for terminal
// output.
func FormatSummary(summaries []ColumnSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-24s %-12s %8s %8s  %s\n", "column", "type", "count", "missing", "stats")
	for _, s := range summaries {
		switch s.Type {
		case Numeric:
			n := s.Numeric
			fmt.Fprintf(&b, "%-24s %-12s %8d %8d  mean=%.4g sd=%.4g min=%.4g med=%.4g max=%.4g\n",
				s.Name, s.Type, n.Count, n.Missing, n.Mean, n.Std, n.Min, n.Median, n.Max)
		case Categorical:
			c := s.Categorical
			top := make([]string, 0, 3)
			for i, lc := range c.Levels {
				if i == 3 {
					break
				}
				top = append(top, fmt.Sprintf("%s(%d)", lc.Level, lc.Count))
			}
			fmt.Fprintf(&b, "%-24s %-12s %8d %8d  %d levels: %s\n",
				s.Name, s.Type, c.Count, c.Missing, len(c.Levels), strings.Join(top, " "))
		}
	}
	return b.String()
}
