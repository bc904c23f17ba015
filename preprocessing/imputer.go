package preprocessing

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/dishcision/prepkit/core/model"
	"github.com/dishcision/prepkit/pkg/errors"
)

var (
	_ model.Transformer     = (*SimpleImputer)(nil)
	_ model.ParameterGetter = (*SimpleImputer)(nil)
)

// SimpleImputer learns one fill value per column with Fit and replaces NaN
// cells with it in Transform. It applies the FillMissing rules to data it
// was not fitted on.
type SimpleImputer struct {
	model.BaseEstimator

	// Strategy selects the fill value.
	Strategy ImputeStrategy

	// Statistics holds the learned fill value of each column.
	Statistics []float64

	// NFeatures is the column count seen by Fit.
	NFeatures int
}

// NewSimpleImputer creates an imputer using strategy.
func NewSimpleImputer(strategy ImputeStrategy) *SimpleImputer {
	return &SimpleImputer{Strategy: strategy}
}

// Fit computes the fill value of every column of X. Under StrategyMean or
// StrategyMedian a column with no present value fails.
func (s *SimpleImputer) Fit(X mat.Matrix) error {
	const op = "SimpleImputer.Fit"
	if err := checkStrategy(s.Strategy); err != nil {
		return err
	}
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewEmptyDataError(op)
	}

	s.Reset()
	stats := make([]float64, c)
	for j := 0; j < c; j++ {
		v, err := fillValue(op, mat.Col(nil, j, X), j, s.Strategy)
		if err != nil {
			return err
		}
		stats[j] = v
	}
	s.Statistics = stats
	s.NFeatures = c

	logFit("SimpleImputer", r, c)
	s.SetFitted()
	return nil
}

// Transform returns X with missing cells replaced by the learned statistics.
func (s *SimpleImputer) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("SimpleImputer", "Transform")
	}
	r, c, err := checkFeatures("SimpleImputer.Transform", X, s.NFeatures)
	if err != nil {
		return nil, err
	}

	result := mat.NewDense(r, c, nil)
	result.Apply(func(i, j int, v float64) float64 {
		if IsMissing(v) {
			return s.Statistics[j]
		}
		return v
	}, X)
	return result, nil
}

// FitTransform fits on X and returns X imputed.
func (s *SimpleImputer) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// GetParams returns the imputer configuration.
func (s *SimpleImputer) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"strategy": s.Strategy.String(),
	}
}

func (s *SimpleImputer) String() string {
	return fmt.Sprintf("SimpleImputer(strategy=%s)", s.Strategy)
}
