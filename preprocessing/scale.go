package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/dishcision/prepkit/pkg/errors"
)

// FeatureRange is the closed target interval [Low, High] of min-max scaling.
type FeatureRange struct {
	Low  float64
	High float64
}

// DefaultFeatureRange is [0, 1].
var DefaultFeatureRange = FeatureRange{Low: 0, High: 1}

// Validate checks Low <= High and that both bounds are finite.
func (r FeatureRange) Validate() error {
	if math.IsNaN(r.Low) || math.IsNaN(r.High) || math.IsInf(r.Low, 0) || math.IsInf(r.High, 0) {
		return errors.NewValidationError("feature_range", "bounds must be finite", [2]float64{r.Low, r.High})
	}
	if r.Low > r.High {
		return errors.NewValidationError("feature_range", "low must not exceed high", [2]float64{r.Low, r.High})
	}
	return nil
}

func (r FeatureRange) String() string {
	return fmt.Sprintf("[%g, %g]", r.Low, r.High)
}

// flatten returns all cells of a rectangular table in row-major order.
func flatten(t Table, rows, cols int) []float64 {
	flat := make([]float64, 0, rows*cols)
	for _, row := range t {
		flat = append(flat, row...)
	}
	return flat
}

// checkComplete rejects the first missing cell of a flattened table.
func checkComplete(op string, flat []float64, cols int) error {
	for k, v := range flat {
		if IsMissing(v) {
			return errors.NewValueError(op, fmt.Sprintf("missing value at row %d, column %d; impute first", k/cols, k%cols))
		}
	}
	return nil
}

// Normalize rescales the whole table with a single global minimum and maximum:
// (v − min) / (max − min). Every value being equal is an invalid-input error,
// and so is a missing cell; impute first.
func Normalize(table Table) (Table, error) {
	const op = "Normalize"
	rows, cols, err := shapeNonEmpty(op, table)
	if err != nil {
		return nil, err
	}
	flat := flatten(table, rows, cols)
	if err := checkComplete(op, flat, cols); err != nil {
		return nil, err
	}
	lo, hi := floats.Min(flat), floats.Max(flat)
	if lo == hi {
		return nil, errors.NewValueError(op, fmt.Sprintf("zero range: every value equals %g", lo))
	}

	span := hi - lo
	out := newTable(rows, cols)
	for i, row := range table {
		for j, v := range row {
			out[i][j] = (v - lo) / span
		}
	}
	return out, nil
}

// Standardize z-scores the whole table with the mean and population standard
// deviation of all cells together. A zero standard deviation or a missing
// cell is an invalid-input error.
func Standardize(table Table) (Table, error) {
	const op = "Standardize"
	rows, cols, err := shapeNonEmpty(op, table)
	if err != nil {
		return nil, err
	}
	flat := flatten(table, rows, cols)
	if err := checkComplete(op, flat, cols); err != nil {
		return nil, err
	}
	if isConstant(flat) {
		return nil, errors.NewValueError(op, fmt.Sprintf("zero standard deviation: every value equals %g", flat[0]))
	}
	mean, variance := stat.PopMeanVariance(flat, nil)
	std := math.Sqrt(variance)
	if std == 0 {
		return nil, errors.NewValueError(op, "zero standard deviation")
	}

	out := newTable(rows, cols)
	for i, row := range table {
		for j, v := range row {
			out[i][j] = (v - mean) / std
		}
	}
	return out, nil
}

// MinMaxScale maps every column independently onto r. A column whose
// minimum equals its maximum maps entirely to r.Low and emits a DegenerateWarning.
func MinMaxScale(table Table, r FeatureRange) (Table, error) {
	const op = "MinMaxScale"
	rows, cols, err := shape(op, table)
	if err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	out := newTable(rows, cols)
	if rows == 0 {
		return out, nil
	}
	width := r.High - r.Low
	for j := 0; j < cols; j++ {
		col := Column(table, j)
		lo, hi := floats.Min(col), floats.Max(col)
		span := hi - lo
		if span == 0 {
			errors.Warn(errors.NewDegenerateWarning(op, j, r.Low, "zero range"))
			for i := range out {
				out[i][j] = r.Low
			}
			continue
		}
		for i := range out {
			out[i][j] = (col[i]-lo)/span*width + r.Low
		}
	}
	return out, nil
}
