package model

// EstimatorState is the fit state of an estimator.
type EstimatorState int

const (
	// NotFitted means Fit has not completed successfully yet.
	NotFitted EstimatorState = iota
	// Fitted means the estimator holds learned statistics.
	Fitted
)

// BaseEstimator tracks whether an estimator has been fitted.
// Embed it and call SetFitted at the end of a successful Fit.
type BaseEstimator struct {
	// State is exported so that gob persistence keeps the fit state.
	State EstimatorState
}

// IsFitted reports whether Fit has completed.
func (e *BaseEstimator) IsFitted() bool {
	return e.State == Fitted
}

// SetFitted marks the estimator as fitted.
func (e *BaseEstimator) SetFitted() {
	e.State = Fitted
}

// Reset returns the estimator to the unfitted state.
func (e *BaseEstimator) Reset() {
	e.State = NotFitted
}
