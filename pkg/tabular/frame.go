// Package tabular provides the dataframe and annotated-matrix value sources
// consumed by artifact registration and frame-derived feature discovery.
// A Frame exposes ordered column labels and per-column value sequences; a
// Matrix pairs an observation frame with variable labels.
package tabular

import (
	"encoding/csv"
	"io"
	"slices"

	"github.com/labelkit/labelkit/pkg/errors"
)

// Frame is an ordered set of named columns of string values. All columns
// have the same length.
type Frame struct {
	columns []string
	data    map[string][]string
}

// NewFrame creates a frame from ordered column labels and per-column data.
// Missing columns are created empty.
func NewFrame(columns []string, data map[string][]string) *Frame {
	f := &Frame{
		columns: slices.Clone(columns),
		data:    make(map[string][]string, len(columns)),
	}
	for _, col := range f.columns {
		f.data[col] = slices.Clone(data[col])
	}
	return f
}

// Columns returns the ordered column labels.
func (f *Frame) Columns() []string {
	return slices.Clone(f.columns)
}

// Column returns the values of a named column.
func (f *Frame) Column(name string) ([]string, bool) {
	values, ok := f.data[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(values), true
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	if len(f.columns) == 0 {
		return 0
	}
	return len(f.data[f.columns[0]])
}

// ReadFrame parses a CSV document with a header row into a frame.
func ReadFrame(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WrapParse("csv", "", err)
	}
	if len(rows) == 0 {
		return nil, errors.NewValidationError("header", nil, "csv document has no header row")
	}
	columns := rows[0]
	data := make(map[string][]string, len(columns))
	for _, row := range rows[1:] {
		for i, col := range columns {
			if i < len(row) {
				data[col] = append(data[col], row[i])
			} else {
				data[col] = append(data[col], "")
			}
		}
	}
	return NewFrame(columns, data), nil
}

// Matrix is an annotated matrix: per-observation metadata plus the variable
// labels of the measurement matrix (the matrix values themselves are not
// this subsystem's concern).
type Matrix struct {
	obs  *Frame
	vars []string
}

// NewMatrix creates an annotated matrix from an observation frame and
// variable labels.
func NewMatrix(obs *Frame, vars []string) *Matrix {
	if obs == nil {
		obs = NewFrame(nil, nil)
	}
	return &Matrix{obs: obs, vars: slices.Clone(vars)}
}

// Obs returns the per-observation metadata frame.
func (m *Matrix) Obs() *Frame {
	return m.obs
}

// Vars returns the variable labels.
func (m *Matrix) Vars() []string {
	return slices.Clone(m.vars)
}

// NObs returns the number of observations.
func (m *Matrix) NObs() int {
	return m.obs.Len()
}
