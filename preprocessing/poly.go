package preprocessing

import (
	"math"
	"strconv"

	"github.com/dishcision/prepkit/pkg/errors"
)

// PolynomialFeatures appends, for each power k from 2 to degree, every
// original feature raised to k. A row [x1 x2] with degree 3 becomes
// [x1 x2 x1² x2² x1³ x2³]. There are no cross terms.
//
// Degree 0 and 1 return a copy of the input. A negative degree is invalid.
func PolynomialFeatures(table Table, degree int) (Table, error) {
	const op = "PolynomialFeatures"
	if degree < 0 {
		return nil, errors.NewValidationError("degree", "must be non-negative", degree)
	}
	rows, cols, err := shape(op, table)
	if err != nil {
		return nil, err
	}
	if degree < 2 {
		return cloneTable(table), nil
	}

	out := newTable(rows, cols*degree)
	for i, row := range table {
		copy(out[i], row)
		for k := 2; k <= degree; k++ {
			block := out[i][(k-1)*cols : k*cols]
			for j, v := range row {
				block[j] = math.Pow(v, float64(k))
			}
		}
	}
	return out, nil
}

// PolynomialFeatureNames names the output columns of PolynomialFeatures,
// e.g. ["a" "b" "a^2" "b^2"] for names ["a" "b"] and degree 2.
func PolynomialFeatureNames(names []string, degree int) []string {
	if degree < 2 {
		return append([]string(nil), names...)
	}
	out := make([]string, 0, len(names)*degree)
	out = append(out, names...)
	for k := 2; k <= degree; k++ {
		for _, n := range names {
			out = append(out, n+"^"+strconv.Itoa(k))
		}
	}
	return out
}
