package model

import "gonum.org/v1/gonum/mat"

// Transformer learns column statistics from a matrix and applies them.
type Transformer interface {
	// Fit learns the statistics needed by Transform.
	Fit(X mat.Matrix) error

	// Transform returns a new matrix; X is never modified.
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform runs Fit then Transform on the same data.
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// InverseTransformer maps transformed data back to the original space.
type InverseTransformer interface {
	Transformer
	InverseTransform(X mat.Matrix) (mat.Matrix, error)
}

// ParameterGetter exposes an estimator's configuration.
type ParameterGetter interface {
	GetParams() map[string]interface{}
}
