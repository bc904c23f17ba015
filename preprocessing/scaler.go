package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/dishcision/prepkit/core/model"
	"github.com/dishcision/prepkit/pkg/errors"
	"github.com/dishcision/prepkit/pkg/log"
)

var (
	_ model.InverseTransformer = (*StandardScaler)(nil)
	_ model.InverseTransformer = (*MinMaxScaler)(nil)
	_ model.ParameterGetter    = (*StandardScaler)(nil)
	_ model.ParameterGetter    = (*MinMaxScaler)(nil)
)

// StandardScaler centres each column on its mean and divides by its
// population standard deviation, both learned by Fit.
//
// A constant column keeps scale 1, so its transformed values are 0.
type StandardScaler struct {
	model.BaseEstimator

	// Mean holds the per-column means (zeros when WithMean is false).
	Mean []float64

	// Scale holds the per-column standard deviations (ones when WithStd is false).
	Scale []float64

	// NFeatures is the column count seen by Fit.
	NFeatures int

	// WithMean subtracts the mean. Default true.
	WithMean bool

	// WithStd divides by the standard deviation. Default true.
	WithStd bool
}

// StandardScalerOption configures a StandardScaler.
type StandardScalerOption func(*StandardScaler)

// WithMean sets whether the mean is subtracted.
func WithMean(on bool) StandardScalerOption {
	return func(s *StandardScaler) { s.WithMean = on }
}

// WithStd sets whether values are divided by the standard deviation.
func WithStd(on bool) StandardScalerOption {
	return func(s *StandardScaler) { s.WithStd = on }
}

// NewStandardScaler creates a StandardScaler that centres and scales by default.
//
//	scaler := preprocessing.NewStandardScaler()
//	XScaled, err := scaler.FitTransform(X)
func NewStandardScaler(opts ...StandardScalerOption) *StandardScaler {
	s := &StandardScaler{WithMean: true, WithStd: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fit learns per-column means and standard deviations from X.
func (s *StandardScaler) Fit(X mat.Matrix) error {
	const op = "StandardScaler.Fit"
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewEmptyDataError(op)
	}

	s.Reset()
	s.NFeatures = c
	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)

	for j := 0; j < c; j++ {
		col := mat.Col(nil, j, X)
		s.Scale[j] = 1
		if s.WithMean {
			s.Mean[j], _ = Mean(col)
		}
		if !s.WithStd {
			continue
		}
		std, _ := StdDev(col)
		if std == 0 {
			errors.Warn(errors.NewDegenerateWarning(op, j, 1, "zero variance"))
			continue
		}
		s.Scale[j] = std
	}

	logFit("StandardScaler", r, c)
	s.SetFitted()
	return nil
}

// Transform standardizes X with the statistics learned by Fit.
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "Transform")
	}
	r, c, err := checkFeatures("StandardScaler.Transform", X, s.NFeatures)
	if err != nil {
		return nil, err
	}

	result := mat.NewDense(r, c, nil)
	result.Apply(func(i, j int, v float64) float64 {
		return (v - s.Mean[j]) / s.Scale[j]
	}, X)
	return result, nil
}

// FitTransform fits on X and returns X standardized.
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform maps standardized data back to the original scale.
func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "InverseTransform")
	}
	r, c, err := checkFeatures("StandardScaler.InverseTransform", X, s.NFeatures)
	if err != nil {
		return nil, err
	}

	result := mat.NewDense(r, c, nil)
	result.Apply(func(i, j int, v float64) float64 {
		return v*s.Scale[j] + s.Mean[j]
	}, X)
	return result, nil
}

// GetParams returns the scaler configuration.
func (s *StandardScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"with_mean": s.WithMean,
		"with_std":  s.WithStd,
	}
}

func (s *StandardScaler) String() string {
	if !s.IsFitted() {
		return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t)", s.WithMean, s.WithStd)
	}
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, n_features=%d)",
		s.WithMean, s.WithStd, s.NFeatures)
}

// MinMaxScaler maps each column onto FeatureRange using the column minimum
// and maximum learned by Fit. Constant columns map to FeatureRange.Low,
// the same policy as MinMaxScale.
type MinMaxScaler struct {
	model.BaseEstimator

	// DataMin and DataMax are the per-column extremes seen by Fit.
	DataMin []float64
	DataMax []float64

	// Span is DataMax − DataMin, or 0 for a constant column.
	Span []float64

	// NFeatures is the column count seen by Fit.
	NFeatures int

	// FeatureRange is the target interval.
	FeatureRange FeatureRange
}

// NewMinMaxScaler creates a MinMaxScaler targeting r.
//
//	scaler := preprocessing.NewMinMaxScaler(preprocessing.FeatureRange{Low: -1, High: 1})
func NewMinMaxScaler(r FeatureRange) *MinMaxScaler {
	return &MinMaxScaler{FeatureRange: r}
}

// NewMinMaxScalerDefault creates a MinMaxScaler targeting [0, 1].
func NewMinMaxScalerDefault() *MinMaxScaler {
	return NewMinMaxScaler(DefaultFeatureRange)
}

// Fit learns per-column minima and maxima from X.
func (m *MinMaxScaler) Fit(X mat.Matrix) error {
	const op = "MinMaxScaler.Fit"
	if err := m.FeatureRange.Validate(); err != nil {
		return err
	}
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewEmptyDataError(op)
	}

	m.Reset()
	m.NFeatures = c
	m.DataMin = make([]float64, c)
	m.DataMax = make([]float64, c)
	m.Span = make([]float64, c)

	for j := 0; j < c; j++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for i := 0; i < r; i++ {
			v := X.At(i, j)
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		m.DataMin[j], m.DataMax[j] = lo, hi
		m.Span[j] = hi - lo
		if m.Span[j] == 0 {
			errors.Warn(errors.NewDegenerateWarning(op, j, m.FeatureRange.Low, "zero range"))
		}
	}

	logFit("MinMaxScaler", r, c)
	m.SetFitted()
	return nil
}

// Transform scales X with the extremes learned by Fit. Values outside the
// fitted extremes land outside FeatureRange; they are not clipped.
func (m *MinMaxScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("MinMaxScaler", "Transform")
	}
	r, c, err := checkFeatures("MinMaxScaler.Transform", X, m.NFeatures)
	if err != nil {
		return nil, err
	}

	width := m.FeatureRange.High - m.FeatureRange.Low
	result := mat.NewDense(r, c, nil)
	result.Apply(func(i, j int, v float64) float64 {
		if m.Span[j] == 0 {
			return m.FeatureRange.Low
		}
		return (v-m.DataMin[j])/m.Span[j]*width + m.FeatureRange.Low
	}, X)
	return result, nil
}

// FitTransform fits on X and returns X scaled.
func (m *MinMaxScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := m.Fit(X); err != nil {
		return nil, err
	}
	return m.Transform(X)
}

// InverseTransform maps scaled data back to the original range. Constant
// columns come back as their fitted value.
func (m *MinMaxScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("MinMaxScaler", "InverseTransform")
	}
	r, c, err := checkFeatures("MinMaxScaler.InverseTransform", X, m.NFeatures)
	if err != nil {
		return nil, err
	}

	width := m.FeatureRange.High - m.FeatureRange.Low
	result := mat.NewDense(r, c, nil)
	result.Apply(func(i, j int, v float64) float64 {
		if m.Span[j] == 0 || width == 0 {
			return m.DataMin[j]
		}
		return (v-m.FeatureRange.Low)/width*m.Span[j] + m.DataMin[j]
	}, X)
	return result, nil
}

// GetParams returns the scaler configuration.
func (m *MinMaxScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"feature_range": [2]float64{m.FeatureRange.Low, m.FeatureRange.High},
	}
}

func (m *MinMaxScaler) String() string {
	if !m.IsFitted() {
		return fmt.Sprintf("MinMaxScaler(feature_range=%s)", m.FeatureRange)
	}
	return fmt.Sprintf("MinMaxScaler(feature_range=%s, n_features=%d)", m.FeatureRange, m.NFeatures)
}

// checkFeatures validates a matrix passed to a fitted estimator.
func checkFeatures(op string, X mat.Matrix, nFeatures int) (r, c int, err error) {
	r, c = X.Dims()
	if r == 0 || c == 0 {
		return 0, 0, errors.NewEmptyDataError(op)
	}
	if c != nFeatures {
		return 0, 0, errors.NewDimensionError(op, nFeatures, c, 1)
	}
	return r, c, nil
}

func logFit(name string, samples, features int) {
	log.GetLoggerWithName("preprocessing").Debug("estimator fitted",
		log.ModelNameKey, name,
		log.OperationKey, log.OperationFit,
		log.SamplesKey, samples,
		log.FeaturesKey, features,
	)
}
