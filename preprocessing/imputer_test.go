package preprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/dishcision/prepkit/pkg/errors"
)

func TestSimpleImputer(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1, nan,
		3, 4,
		nan, 8,
	})

	tests := []struct {
		strategy ImputeStrategy
		stats    []float64
	}{
		{StrategyMean, []float64{2, 6}},
		{StrategyMedian, []float64{3, 8}},
		{StrategyZero, []float64{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.strategy.String(), func(t *testing.T) {
			imp := NewSimpleImputer(tt.strategy)
			require.NoError(t, imp.Fit(X))
			assert.Equal(t, tt.stats, imp.Statistics)

			got, err := imp.Transform(mat.NewDense(1, 2, []float64{nan, nan}))
			require.NoError(t, err)
			assert.Equal(t, Table{tt.stats}, MatrixToTable(got))
		})
	}
}

func TestSimpleImputerMatchesFillMissing(t *testing.T) {
	table := Table{{1, nan, 3}, {nan, 2, 3}, {5, 6, nan}, {7, nan, 1}}
	X, err := TableToDense(table)
	require.NoError(t, err)

	for _, s := range []ImputeStrategy{StrategyMean, StrategyMedian, StrategyZero} {
		want, err := FillMissing(table, s)
		require.NoError(t, err)
		got, err := NewSimpleImputer(s).FitTransform(X)
		require.NoError(t, err)
		assert.Equal(t, want, MatrixToTable(got), s.String())
	}
}

func TestSimpleImputerErrors(t *testing.T) {
	_, err := NewSimpleImputer(StrategyMean).Transform(mat.NewDense(1, 1, nil))
	var nf *errors.NotFittedError
	assert.True(t, errors.As(err, &nf))

	err = NewSimpleImputer(StrategyMedian).Fit(mat.NewDense(2, 1, []float64{nan, nan}))
	requireInvalidInput(t, err)

	err = NewSimpleImputer(ImputeStrategy(-1)).Fit(mat.NewDense(1, 1, nil))
	requireInvalidInput(t, err)

	imp := NewSimpleImputer(StrategyZero)
	require.NoError(t, imp.Fit(mat.NewDense(1, 2, nil)))
	_, err = imp.Transform(mat.NewDense(1, 3, nil))
	requireInvalidInput(t, err)

	assert.Equal(t, map[string]interface{}{"strategy": "zero"}, imp.GetParams())
}
