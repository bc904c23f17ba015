package preprocessing

import (
	"gonum.org/v1/gonum/mat"

	"github.com/dishcision/prepkit/core/parallel"
	"github.com/dishcision/prepkit/pkg/errors"
)

// correlationParallelThreshold is the feature count above which rows of the
// correlation matrix are computed concurrently.
const correlationParallelThreshold = 32

// CorrelationMatrix returns the numFeatures × numFeatures matrix of pairwise
// Pearson correlations between columns.
//
// A constant column correlates 0 with every column, itself included, so its
// diagonal entry is 0 rather than 1. One DegenerateWarning is emitted per
// constant column.
func CorrelationMatrix(table Table) (*mat.SymDense, error) {
	const op = "CorrelationMatrix"
	_, cols, err := shapeNonEmpty(op, table)
	if err != nil {
		return nil, err
	}

	series := columns(table, cols)
	for j, s := range series {
		if isConstant(s) {
			errors.Warn(errors.NewDegenerateWarning(op, j, 0, "zero variance"))
		}
	}

	m := mat.NewSymDense(cols, nil)
	// each worker owns rows [start, end) of the upper triangle
	parallel.ParallelizeWithThreshold(cols, correlationParallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := i; j < cols; j++ {
				m.SetSym(i, j, pearson(series[i], series[j]))
			}
		}
	})
	return m, nil
}
