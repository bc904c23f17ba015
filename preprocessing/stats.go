package preprocessing

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/dishcision/prepkit/pkg/errors"
)

// Mean returns the arithmetic mean of xs.
func Mean(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, errors.NewEmptyDataError("Mean")
	}
	return stat.Mean(xs, nil), nil
}

// Variance returns the population variance of xs (divisor N).
// A constant sequence has variance exactly 0.
func Variance(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, errors.NewEmptyDataError("Variance")
	}
	if isConstant(xs) {
		return 0, nil
	}
	_, variance := stat.PopMeanVariance(xs, nil)
	return variance, nil
}

// StdDev returns the population standard deviation of xs.
func StdDev(xs []float64) (float64, error) {
	v, err := Variance(xs)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

// PearsonCorrelation returns the Pearson correlation coefficient of x and y:
//
//	(Σxy − ΣxΣy/n) / sqrt((Σx² − (Σx)²/n)(Σy² − (Σy)²/n))
//
// If either series is constant the coefficient is 0, not an error.
func PearsonCorrelation(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, errors.NewDimensionError("PearsonCorrelation", len(x), len(y), 0)
	}
	if len(x) == 0 {
		return 0, errors.NewEmptyDataError("PearsonCorrelation")
	}
	return pearson(x, y), nil
}

// pearson assumes equal, non-zero lengths.
func pearson(x, y []float64) float64 {
	if isConstant(x) || isConstant(y) {
		return 0
	}
	n := float64(len(x))
	sx, sy := floats.Sum(x), floats.Sum(y)
	num := floats.Dot(x, y) - sx*sy/n
	fx := floats.Dot(x, x) - sx*sx/n
	fy := floats.Dot(y, y) - sy*sy/n
	// cancellation can leave a factor at or below zero for nearly constant input
	if fx <= 0 || fy <= 0 {
		return 0
	}
	den := math.Sqrt(fx * fy)
	if den == 0 {
		return 0
	}
	return num / den
}

func isConstant(xs []float64) bool {
	if len(xs) < 2 {
		return true
	}
	for _, v := range xs[1:] {
		if v != xs[0] {
			return false
		}
	}
	return true
}
