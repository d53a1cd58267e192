// Package mat provides helpers to convert row ordered tabular data into
// gonum matrices.
package mat

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrColMismatch = errors.New("column size mismatch")
	ErrNoRows      = errors.New("table has no rows")
)

// NewDenseFromTable converts a row ordered table into a dense matrix
// validating that all rows have the same number of columns.
func NewDenseFromTable(x [][]float64) (*mat.Dense, error) {
	m := len(x)
	if m == 0 {
		return nil, ErrNoRows
	}

	n := -1
	for i, row := range x {
		if n >= 0 && len(row) != n {
			return nil, fmt.Errorf("at row %d, %w", i, ErrColMismatch)
		}
		if n < 0 {
			n = len(row)
		}
	}

	// flatten to row order
	data := make([]float64, 0, m*n)
	for _, row := range x {
		data = append(data, row...)
	}
	return mat.NewDense(m, n, data), nil
}

// NewTargetVector converts a target slice into a single column matrix.
func NewTargetVector(y []float64) (*mat.Dense, error) {
	if len(y) == 0 {
		return nil, ErrNoRows
	}
	data := make([]float64, len(y))
	copy(data, y)
	return mat.NewDense(len(y), 1, data), nil
}
