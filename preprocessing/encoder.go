package preprocessing

import (
	"fmt"

	"github.com/dishcision/prepkit/core/model"
	"github.com/dishcision/prepkit/pkg/errors"
	"github.com/dishcision/prepkit/pkg/log"
)

// OneHotEncoder remembers the categories of the labels it was fitted on, in
// first-occurrence order, and encodes later label sequences against them.
// Classes is exported so that model.Save keeps the fitted state.
type OneHotEncoder[T comparable] struct {
	model.BaseEstimator

	Classes []T
}

// NewOneHotEncoder creates an unfitted encoder.
func NewOneHotEncoder[T comparable]() *OneHotEncoder[T] {
	return &OneHotEncoder[T]{}
}

// Fit learns the categories of labels.
func (e *OneHotEncoder[T]) Fit(labels []T) error {
	if len(labels) == 0 {
		return errors.NewEmptyDataError("OneHotEncoder.Fit")
	}
	e.Reset()
	e.Classes = Categories(labels)

	log.GetLoggerWithName("preprocessing").Debug("estimator fitted",
		log.ModelNameKey, "OneHotEncoder",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, len(labels),
		log.CategoriesKey, len(e.Classes),
	)
	e.SetFitted()
	return nil
}

// Categories returns a copy of the learned categories.
func (e *OneHotEncoder[T]) Categories() []T {
	return append([]T(nil), e.Classes...)
}

// Transform encodes labels. A label not seen by Fit is an invalid-input error.
func (e *OneHotEncoder[T]) Transform(labels []T) (Table, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("OneHotEncoder", "Transform")
	}
	index := newLabelIndex(e.Classes)
	out := newTable(len(labels), len(e.Classes))
	for i, l := range labels {
		k, ok := index.lookup(l)
		if !ok {
			return nil, errors.NewValueError("OneHotEncoder.Transform", fmt.Sprintf("unknown label %v at position %d", l, i))
		}
		out[i][k] = 1
	}
	return out, nil
}

// FitTransform fits on labels and encodes them; the result equals OneHotEncode(labels).
func (e *OneHotEncoder[T]) FitTransform(labels []T) (Table, error) {
	if err := e.Fit(labels); err != nil {
		return nil, err
	}
	return e.Transform(labels)
}

// InverseTransform returns the category at the largest entry of each row.
// Ties go to the earliest category; an all-zero row is invalid.
func (e *OneHotEncoder[T]) InverseTransform(rows Table) ([]T, error) {
	const op = "OneHotEncoder.InverseTransform"
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("OneHotEncoder", "InverseTransform")
	}
	out := make([]T, len(rows))
	for i, row := range rows {
		if len(row) != len(e.Classes) {
			return nil, errors.NewDimensionError(op, len(e.Classes), len(row), 1)
		}
		best := 0
		for k, v := range row {
			if v > row[best] {
				best = k
			}
		}
		if row[best] <= 0 {
			return nil, errors.NewValueError(op, fmt.Sprintf("row %d has no positive entry", i))
		}
		out[i] = e.Classes[best]
	}
	return out, nil
}
