package preprocessing

import (
	"gonum.org/v1/gonum/mat"

	"github.com/dishcision/prepkit/pkg/errors"
)

// Table is a rectangular numeric dataset: rows are samples, columns are features.
type Table = [][]float64

// Shape returns the row count and the column count of a rectangular table.
// It fails with a DimensionError if any row differs in length from the first.
func Shape(t Table) (rows, cols int, err error) {
	return shape("Shape", t)
}

func shape(op string, t Table) (rows, cols int, err error) {
	rows = len(t)
	if rows == 0 {
		return 0, 0, nil
	}
	cols = len(t[0])
	for _, row := range t[1:] {
		if len(row) != cols {
			return 0, 0, errors.NewDimensionError(op, cols, len(row), 1)
		}
	}
	return rows, cols, nil
}

// shapeNonEmpty is shape for operations that need at least one cell.
func shapeNonEmpty(op string, t Table) (rows, cols int, err error) {
	rows, cols, err = shape(op, t)
	if err != nil {
		return 0, 0, err
	}
	if rows == 0 || cols == 0 {
		return 0, 0, errors.NewEmptyDataError(op)
	}
	return rows, cols, nil
}

func newTable(rows, cols int) Table {
	backing := make([]float64, rows*cols)
	out := make(Table, rows)
	for i := range out {
		out[i] = backing[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return out
}

func cloneTable(t Table) Table {
	if len(t) == 0 {
		return Table{}
	}
	out := newTable(len(t), len(t[0]))
	for i, row := range t {
		copy(out[i], row)
	}
	return out
}

// Column returns a copy of column j.
func Column(t Table, j int) []float64 {
	col := make([]float64, len(t))
	for i, row := range t {
		col[i] = row[j]
	}
	return col
}

func columns(t Table, cols int) [][]float64 {
	out := make([][]float64, cols)
	for j := range out {
		out[j] = Column(t, j)
	}
	return out
}

// TableToDense copies a rectangular, non-empty table into a *mat.Dense.
func TableToDense(t Table) (*mat.Dense, error) {
	rows, cols, err := shapeNonEmpty("TableToDense", t)
	if err != nil {
		return nil, err
	}
	m := mat.NewDense(rows, cols, nil)
	for i, row := range t {
		m.SetRow(i, row)
	}
	return m, nil
}

// MatrixToTable copies any gonum matrix into a Table.
func MatrixToTable(m mat.Matrix) Table {
	r, c := m.Dims()
	out := newTable(r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}
