// Package eda renders exploratory plots for tabular data. Missing values are
// skipped rather than treated as zero, so plots reflect only observed data.
package eda

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"elevate/dataset"
	"elevate/pkg/errors"
)

// Histogram renders the distribution of a numeric column to an image file.
// The format follows the file extension (.png, .svg, .pdf).
func Histogram(t *dataset.Table, col string, bins int, path string) error {
	if bins < 1 {
		return errors.NewValidationError("bins", "must be at least 1", bins)
	}
	values, err := numericValues(t, col, "eda.Histogram")
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = col
	p.X.Label.Text = col
	p.Y.Label.Text = "count"

	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return errors.Wrap(err, "building histogram")
	}
	p.Add(h)

	return errors.Wrap(p.Save(6*vg.Inch, 4*vg.Inch, path), "saving histogram")
}

// Scatter renders one numeric column against another to an image file.
func Scatter(t *dataset.Table, xCol, yCol, path string) error {
	xc, err := numericColumn(t, xCol, "eda.Scatter")
	if err != nil {
		return err
	}
	yc, err := numericColumn(t, yCol, "eda.Scatter")
	if err != nil {
		return err
	}

	var pts plotter.XYs
	for i := 0; i < xc.Len(); i++ {
		if xc.Missing(i) || yc.Missing(i) {
			continue
		}
		pts = append(pts, plotter.XY{X: xc.Floats[i], Y: yc.Floats[i]})
	}
	if len(pts) == 0 {
		return errors.NewModelError("eda.Scatter", "no complete observations to plot", errors.ErrEmptyData)
	}

	p := plot.New()
	p.Title.Text = yCol + " vs " + xCol
	p.X.Label.Text = xCol
	p.Y.Label.Text = yCol

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, "building scatter")
	}
	p.Add(s, plotter.NewGrid())

	return errors.Wrap(p.Save(6*vg.Inch, 4*vg.Inch, path), "saving scatter")
}

func numericColumn(t *dataset.Table, name, op string) (*dataset.Column, error) {
	c := t.Column(name)
	if c == nil {
		return nil, errors.NewSchemaError(op, name, "no such column")
	}
	if c.Type != dataset.Numeric {
		return nil, errors.NewSchemaError(op, name, "column is not numeric")
	}
	return c, nil
}

func numericValues(t *dataset.Table, name, op string) ([]float64, error) {
	c, err := numericColumn(t, name, op)
	if err != nil {
		return nil, err
	}
	var out []float64
	for i := 0; i < c.Len(); i++ {
		if !c.Missing(i) {
			out = append(out, c.Floats[i])
		}
	}
	if len(out) == 0 {
		return nil, errors.NewModelError(op, "no observed values to plot", errors.ErrEmptyData)
	}
	return out, nil
}
