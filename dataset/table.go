// Package dataset provides a column-oriented tabular container with mixed
// numeric and categorical columns, CSV ingest with type inference,
// exploratory summaries, and train/test splitting.
//
// Missing values are represented as NaN in numeric columns and as the empty
// string in categorical columns; preprocessing steps in the recipe package
// decide how to resolve them.
package dataset

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"elevate/pkg/errors"
)

// ColumnType distinguishes numeric from categorical columns.
type ColumnType int

const (
	// Numeric columns hold float64 values with NaN for missing.
	Numeric ColumnType = iota
	// Categorical columns hold string levels with "" for missing.
	Categorical
)

// String returns the type name as used in summaries.
func (t ColumnType) String() string {
	if t == Numeric {
		return "numeric"
	}
	return "categorical"
}

// Column is a single named column. Exactly one of Floats or Strings is
// populated, matching Type.
type Column struct {
	Name    string
	Type    ColumnType
	Floats  []float64
	Strings []string
}

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	if c.Type == Numeric {
		return len(c.Floats)
	}
	return len(c.Strings)
}

// Missing reports whether the value at row i is missing.
func (c *Column) Missing(i int) bool {
	if c.Type == Numeric {
		return math.IsNaN(c.Floats[i])
	}
	return c.Strings[i] == ""
}

// MissingCount returns the number of missing values in the column.
func (c *Column) MissingCount() int {
	n := 0
	for i := 0; i < c.Len(); i++ {
		if c.Missing(i) {
			n++
		}
	}
	return n
}

// clone returns a deep copy of the column.
func (c *Column) clone() Column {
	out := Column{Name: c.Name, Type: c.Type}
	if c.Type == Numeric {
		out.Floats = make([]float64, len(c.Floats))
		copy(out.Floats, c.Floats)
	} else {
		out.Strings = make([]string, len(c.Strings))
		copy(out.Strings, c.Strings)
	}
	return out
}

// Table is an ordered collection of equal-length columns.
type Table struct {
	cols []Column
}

// NewTable creates a table from columns, validating equal lengths and
// unique names.
func NewTable(cols ...Column) (*Table, error) {
	t := &Table{}
	for _, c := range cols {
		if err := t.AddColumn(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return t.cols[0].Len()
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.cols)
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Column returns a pointer to the named column, or nil if absent.
// The pointer aliases table storage; mutate with care.
func (t *Table) Column(name string) *Column {
	for i := range t.cols {
		if t.cols[i].Name == name {
			return &t.cols[i]
		}
	}
	return nil
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	return t.Column(name) != nil
}

// AddColumn appends a column, validating length and name uniqueness.
func (t *Table) AddColumn(c Column) error {
	if t.HasColumn(c.Name) {
		return errors.NewSchemaError("Table.AddColumn", c.Name, "duplicate column name")
	}
	if len(t.cols) > 0 && c.Len() != t.NumRows() {
		return errors.NewDimensionError("Table.AddColumn", t.NumRows(), c.Len(), 0)
	}
	t.cols = append(t.cols, c)
	return nil
}

// DropColumn removes the named column. Dropping an absent column is an error.
func (t *Table) DropColumn(name string) error {
	for i := range t.cols {
		if t.cols[i].Name == name {
			t.cols = append(t.cols[:i], t.cols[i+1:]...)
			return nil
		}
	}
	return errors.NewSchemaError("Table.DropColumn", name, "no such column")
}

// RenameColumn renames a column in place.
func (t *Table) RenameColumn(old, new string) error {
	c := t.Column(old)
	if c == nil {
		return errors.NewSchemaError("Table.RenameColumn", old, "no such column")
	}
	if old != new && t.HasColumn(new) {
		return errors.NewSchemaError("Table.RenameColumn", new, "duplicate column name")
	}
	c.Name = new
	return nil
}

// Select returns a new table with only the named columns, in the given order.
func (t *Table) Select(names ...string) (*Table, error) {
	out := &Table{}
	for _, name := range names {
		c := t.Column(name)
		if c == nil {
			return nil, errors.NewSchemaError("Table.Select", name, "no such column")
		}
		out.cols = append(out.cols, c.clone())
	}
	return out, nil
}

// Subset returns a new table containing the given rows, in the given order.
// Indices may repeat (bootstrap resampling relies on this).
func (t *Table) Subset(rows []int) (*Table, error) {
	n := t.NumRows()
	for _, r := range rows {
		if r < 0 || r >= n {
			return nil, errors.NewValidationError("rows", "row index out of range", r)
		}
	}

	out := &Table{cols: make([]Column, len(t.cols))}
	for i, c := range t.cols {
		nc := Column{Name: c.Name, Type: c.Type}
		if c.Type == Numeric {
			nc.Floats = make([]float64, len(rows))
			for j, r := range rows {
				nc.Floats[j] = c.Floats[r]
			}
		} else {
			nc.Strings = make([]string, len(rows))
			for j, r := range rows {
				nc.Strings[j] = c.Strings[r]
			}
		}
		out.cols[i] = nc
	}
	return out, nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{cols: make([]Column, len(t.cols))}
	for i, c := range t.cols {
		out.cols[i] = c.clone()
	}
	return out
}

// NumericNames returns the names of all numeric columns, in table order.
func (t *Table) NumericNames() []string {
	var names []string
	for _, c := range t.cols {
		if c.Type == Numeric {
			names = append(names, c.Name)
		}
	}
	return names
}

// CategoricalNames returns the names of all categorical columns.
func (t *Table) CategoricalNames() []string {
	var names []string
	for _, c := range t.cols {
		if c.Type == Categorical {
			names = append(names, c.Name)
		}
	}
	return names
}

// Matrix materializes the table for estimators: X holds the listed feature
// columns (all numeric columns except target when features is nil) and y the
// target column. Categorical features must be encoded first; NaN cells must
// be imputed first.
func (t *Table) Matrix(features []string, target string) (X, y *mat.Dense, err error) {
	tc := t.Column(target)
	if tc == nil {
		return nil, nil, errors.NewSchemaError("Table.Matrix", target, "no such column")
	}
	if tc.Type != Numeric {
		return nil, nil, errors.NewSchemaError("Table.Matrix", target, "target must be numeric")
	}

	if features == nil {
		for _, name := range t.NumericNames() {
			if name != target {
				features = append(features, name)
			}
		}
	}
	if len(features) == 0 {
		return nil, nil, errors.NewSchemaError("Table.Matrix", "", "no feature columns")
	}

	n := t.NumRows()
	if n == 0 {
		return nil, nil, errors.NewModelError("Table.Matrix", "empty table", errors.ErrEmptyData)
	}

	X = mat.NewDense(n, len(features), nil)
	for j, name := range features {
		c := t.Column(name)
		if c == nil {
			return nil, nil, errors.NewSchemaError("Table.Matrix", name, "no such column")
		}
		if c.Type != Numeric {
			return nil, nil, errors.NewSchemaError("Table.Matrix", name, "categorical column must be encoded first")
		}
		for i := 0; i < n; i++ {
			v := c.Floats[i]
			if math.IsNaN(v) {
				return nil, nil, errors.NewSchemaError("Table.Matrix", name, "missing values must be imputed first")
			}
			X.Set(i, j, v)
		}
	}

	y = mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		v := tc.Floats[i]
		if math.IsNaN(v) {
			return nil, nil, errors.NewSchemaError("Table.Matrix", target, "missing values must be imputed first")
		}
		y.Set(i, 0, v)
	}

	return X, y, nil
}
