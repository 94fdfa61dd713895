// Package dataset provides the in-memory table used by the preprocessing pipeline.
//
// A Frame keeps the raw string cells of a delimited-text file. Column types are not
// inferred: callers ask for a column as numbers (Float64s) or as categories (Strings)
// according to the schema they were configured with.
package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scoreprep/pkg/errors"
)

// missingTokens are the cell values read as missing, following the pandas read_csv defaults.
var missingTokens = map[string]struct{}{
	"": {}, "NA": {}, "N/A": {}, "n/a": {}, "NaN": {}, "nan": {}, "-NaN": {}, "-nan": {},
	"null": {}, "NULL": {}, "None": {}, "<NA>": {}, "#N/A": {}, "#NA": {}, "#N/A N/A": {},
	"-1.#IND": {}, "1.#IND": {}, "-1.#QNAN": {}, "1.#QNAN": {},
}

// IsMissing reports whether a raw cell denotes a missing value.
func IsMissing(cell string) bool {
	_, ok := missingTokens[strings.TrimSpace(cell)]
	return ok
}

// Frame is a table of named columns with one row per sample.
type Frame struct {
	header  []string
	index   map[string]int
	records [][]string
}

// NewFrame creates a Frame. Column names must be unique and every record must have one cell
// per column.
func NewFrame(header []string, records [][]string) (*Frame, error) {
	if dup := lo.FindDuplicates(header); len(dup) > 0 {
		return nil, errors.Mark(errors.NewValidationError("header", "duplicate column names", dup), errors.ErrSchema)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, record := range records {
		if len(record) != len(header) {
			return nil, errors.Mark(errors.NewDimensionError("NewFrame", len(header), len(record)), errors.ErrSchema)
		}
	}
	return &Frame{
		header:  append([]string(nil), header...),
		index:   index,
		records: records,
	}, nil
}

// Columns returns the column names in file order.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.header...)
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.records)
}

// Has reports whether the frame contains the column.
func (f *Frame) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}

func (f *Frame) columnIndex(name string) (int, error) {
	j, ok := f.index[name]
	if !ok {
		return 0, errors.Mark(errors.Newf("column %q not found in %v", name, f.header), errors.ErrSchema)
	}
	return j, nil
}

// Strings returns a categorical column. Missing cells are returned as "".
func (f *Frame) Strings(name string) ([]string, error) {
	j, err := f.columnIndex(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(f.records))
	for i, record := range f.records {
		if IsMissing(record[j]) {
			continue
		}
		out[i] = record[j]
	}
	return out, nil
}

// Float64s returns a numeric column. Missing cells are returned as NaN; a cell that is
// neither missing nor a number is a schema error.
func (f *Frame) Float64s(name string) ([]float64, error) {
	j, err := f.columnIndex(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(f.records))
	for i, record := range f.records {
		cell := strings.TrimSpace(record[j])
		if IsMissing(cell) {
			out[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			msg := fmt.Sprintf("column %q row %d: cannot parse %q as a number", name, i+1, cell)
			return nil, errors.Mark(errors.NewValueError("Frame.Float64s", msg), errors.ErrSchema)
		}
		out[i] = v
	}
	return out, nil
}

// Select returns a frame with only the given columns, in the given order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	idx := make([]int, len(names))
	for k, name := range names {
		j, err := f.columnIndex(name)
		if err != nil {
			return nil, err
		}
		idx[k] = j
	}
	records := make([][]string, len(f.records))
	for i, record := range f.records {
		row := make([]string, len(idx))
		for k, j := range idx {
			row[k] = record[j]
		}
		records[i] = row
	}
	return NewFrame(names, records)
}

// Drop returns a frame without the given columns. Dropping an absent column is a schema error.
func (f *Frame) Drop(names ...string) (*Frame, error) {
	for _, name := range names {
		if _, err := f.columnIndex(name); err != nil {
			return nil, err
		}
	}
	return f.Select(lo.Without(f.header, names...)...)
}

// StringTable returns the given columns as a row-major table of categories.
func (f *Frame) StringTable(names []string) ([][]string, error) {
	columns := make([][]string, len(names))
	for k, name := range names {
		col, err := f.Strings(name)
		if err != nil {
			return nil, err
		}
		columns[k] = col
	}
	table := make([][]string, len(f.records))
	for i := range table {
		row := make([]string, len(names))
		for k := range names {
			row[k] = columns[k][i]
		}
		table[i] = row
	}
	return table, nil
}

// Matrix returns the given columns as a numeric matrix, with NaN for missing cells.
func (f *Frame) Matrix(names []string) (*mat.Dense, error) {
	if len(f.records) == 0 || len(names) == 0 {
		return nil, errors.NewModelError("Frame.Matrix", "no rows or columns selected", errors.ErrEmptyData)
	}
	X := mat.NewDense(len(f.records), len(names), nil)
	for k, name := range names {
		col, err := f.Float64s(name)
		if err != nil {
			return nil, err
		}
		X.SetCol(k, col)
	}
	return X, nil
}
