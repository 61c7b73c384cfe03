package dataset

import (
	"bufio"
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"

	"elevate/pkg/errors"
	"elevate/pkg/log"
)

// missing cell spellings recognized during ingest.
var missingTokens = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	"NULL": true,
}

// ReadCSV reads a table from r. The first record is the header; column
// names are cleaned to snake_case. A column is numeric iff every non-missing
// cell parses as a float; otherwise it is categorical.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewSchemaError("ReadCSV", "", "no header row")
	}
	if err != nil {
		return nil, errors.Wrap(err, "ReadCSV: reading header")
	}
	if len(header) == 0 {
		return nil, errors.NewSchemaError("ReadCSV", "", "empty header row")
	}

	// Clean then dedupe, so messy headers ("Floor To", "floor_to") load
	// instead of colliding.
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = CleanName(h)
	}
	names = dedupeNames(names)

	raw := make([][]string, len(names))
	row := 1
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "ReadCSV: reading row %d", row)
		}
		if len(rec) != len(names) {
			return nil, errors.NewDimensionError("ReadCSV", len(names), len(rec), 1)
		}
		for i, cell := range rec {
			raw[i] = append(raw[i], cell)
		}
		row++
	}

	if row == 1 {
		return nil, errors.NewModelError("ReadCSV", "no data rows", errors.ErrEmptyData)
	}

	t := &Table{}
	for i, name := range names {
		if err := t.AddColumn(inferColumn(name, raw[i])); err != nil {
			return nil, err
		}
	}

	log.GetLoggerWithName("dataset").Debug("csv loaded",
		log.SamplesKey, t.NumRows(),
		log.FeaturesKey, t.NumCols(),
	)
	return t, nil
}

// ReadCSVFile reads a table from a CSV file on disk.
func ReadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "ReadCSVFile")
	}
	defer f.Close()
	return ReadCSV(f)
}

// inferColumn decides the column type from its cells. All-missing columns
// are kept as numeric NaN so imputation steps can still address them.
func inferColumn(name string, cells []string) Column {
	numeric := true
	for _, cell := range cells {
		if missingTokens[cell] {
			continue
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			numeric = false
			break
		}
	}

	if numeric {
		vals := make([]float64, len(cells))
		for i, cell := range cells {
			if missingTokens[cell] {
				vals[i] = math.NaN()
				continue
			}
			v, _ := strconv.ParseFloat(cell, 64)
			vals[i] = v
		}
		return Column{Name: name, Type: Numeric, Floats: vals}
	}

	vals := make([]string, len(cells))
	for i, cell := range cells {
		if missingTokens[cell] {
			vals[i] = ""
			continue
		}
		vals[i] = cell
	}
	return Column{Name: name, Type: Categorical, Strings: vals}
}
