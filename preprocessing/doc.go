// Package preprocessing shapes numeric tables before they reach a model.
//
// The package has two layers.
//
// Pure functions take a Table ([][]float64, rows are samples, columns are
// features) and return a fresh Table. They never modify their input and keep
// no state, so they are safe to call concurrently:
//
//	filled, err := preprocessing.FillMissing(raw, preprocessing.StrategyMedian)
//	scaled, err := preprocessing.MinMaxScale(filled, preprocessing.DefaultFeatureRange)
//	expanded, err := preprocessing.PolynomialFeatures(scaled, 2)
//
// Estimators (StandardScaler, MinMaxScaler, SimpleImputer, OneHotEncoder)
// learn per-column statistics with Fit and reuse them in Transform, which is
// what you want when statistics from a train partition must be applied to a
// test partition.
//
// Missing cells are NaN. All input-validation failures match
// errors.ErrInvalidInput from pkg/errors. Zero-range or zero-variance input is
// handled per operation. Normalize and Standardize fail. MinMaxScale maps the
// column to the low end of the range and CorrelationMatrix gives it 0
// everywhere; both emit a DegenerateWarning through errors.Warn.
// PearsonCorrelation returns 0 without a warning.
package preprocessing
