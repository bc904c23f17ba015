package preprocessing

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dishcision/prepkit/pkg/errors"
)

// ImputeStrategy selects how missing cells are filled.
type ImputeStrategy int

const (
	// StrategyMean fills with the mean of the column's non-missing values.
	StrategyMean ImputeStrategy = iota
	// StrategyMedian fills with element floor(k/2) of the sorted non-missing values.
	StrategyMedian
	// StrategyZero fills with 0.
	StrategyZero
)

func (s ImputeStrategy) String() string {
	switch s {
	case StrategyMean:
		return "mean"
	case StrategyMedian:
		return "median"
	case StrategyZero:
		return "zero"
	default:
		return fmt.Sprintf("ImputeStrategy(%d)", int(s))
	}
}

// ParseImputeStrategy parses "mean", "median" or "zero".
func ParseImputeStrategy(name string) (ImputeStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mean":
		return StrategyMean, nil
	case "median":
		return StrategyMedian, nil
	case "zero":
		return StrategyZero, nil
	default:
		return 0, errors.NewValidationError("strategy", "must be one of mean, median, zero", name)
	}
}

// IsMissing reports whether v marks a missing cell.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// FillMissing returns a copy of table with every missing cell replaced
// according to strategy, column by column. Present cells are copied unchanged.
//
// With StrategyMean or StrategyMedian a column without any present value
// fails with an invalid-input error.
func FillMissing(table Table, strategy ImputeStrategy) (Table, error) {
	const op = "FillMissing"
	rows, cols, err := shape(op, table)
	if err != nil {
		return nil, err
	}
	if err := checkStrategy(strategy); err != nil {
		return nil, err
	}

	out := cloneTable(table)
	if rows == 0 {
		return out, nil
	}
	for j := 0; j < cols; j++ {
		col := Column(table, j)
		if !hasMissing(col) {
			continue
		}
		fill, err := fillValue(op, col, j, strategy)
		if err != nil {
			return nil, err
		}
		for i := range out {
			if IsMissing(out[i][j]) {
				out[i][j] = fill
			}
		}
	}
	return out, nil
}

func checkStrategy(s ImputeStrategy) error {
	switch s {
	case StrategyMean, StrategyMedian, StrategyZero:
		return nil
	default:
		return errors.NewValidationError("strategy", "must be one of mean, median, zero", s.String())
	}
}

func hasMissing(col []float64) bool {
	for _, v := range col {
		if IsMissing(v) {
			return true
		}
	}
	return false
}

func present(col []float64) []float64 {
	out := make([]float64, 0, len(col))
	for _, v := range col {
		if !IsMissing(v) {
			out = append(out, v)
		}
	}
	return out
}

// fillValue computes the replacement for missing cells of column j.
func fillValue(op string, col []float64, j int, strategy ImputeStrategy) (float64, error) {
	if strategy == StrategyZero {
		return 0, nil
	}
	values := present(col)
	if len(values) == 0 {
		return 0, errors.NewValueError(op, fmt.Sprintf("column %d has no non-missing values; %s is undefined", j, strategy))
	}
	if strategy == StrategyMean {
		return Mean(values)
	}
	sort.Float64s(values)
	return values[len(values)/2], nil
}
