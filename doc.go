// Package prepkit is a feature preprocessing toolkit for Go: descriptive
// statistics, missing-value imputation, scaling, one-hot encoding,
// polynomial feature expansion, correlation analysis and train/test splits.
//
// # Installation
//
//	go get github.com/dishcision/prepkit
//
// # Quick Start
//
// Tables are plain [][]float64 with rows as samples and NaN as missing:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//	    "math"
//
//	    "github.com/dishcision/prepkit/preprocessing"
//	)
//
//	func main() {
//	    data := preprocessing.Table{{1, math.NaN()}, {3, 4}}
//
//	    filled, err := preprocessing.FillMissing(data, preprocessing.StrategyMean)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    scaled, err := preprocessing.MinMaxScale(filled, preprocessing.DefaultFeatureRange)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(scaled) // [[0 0] [1 0]]
//	}
//
// # Packages
//
//   - preprocessing: statistics, transforms, encoders, splits and the
//     fit/transform estimators (StandardScaler, MinMaxScaler, SimpleImputer,
//     OneHotEncoder)
//   - report: correlation heatmaps rendered with gonum/plot
//   - core/model: estimator base types and interfaces
//   - core/parallel: parallel processing utilities
//   - pkg/errors: error taxonomy and the degenerate-input warning hook
//   - pkg/log: structured logging over log/slog or zerolog
//   - cmd/prepkit: runs a YAML-described pipeline over a CSV file
//
// # Errors and warnings
//
// Invalid input (ragged tables, empty data, a zero range under Normalize,
// out-of-range parameters) is returned as an error matching
// errors.ErrInvalidInput. Degenerate input with a defined fallback, such as a
// constant column under MinMaxScale, succeeds and reports a DegenerateWarning
// through errors.Warn.
package prepkit
