// Package model holds the shared estimator lifecycle and the interfaces
// implemented by every FeaGo transformer.
package model

// EstimatorState is the two-state lifecycle of a transformer.
type EstimatorState int

const (
	// Unfitted is the state before Fit has succeeded.
	Unfitted EstimatorState = iota
	// Fitted is the state after Fit has succeeded.
	Fitted
)

// BaseEstimator carries the lifecycle state embedded by every transformer.
// Fit moves the state to Fitted; Transform and Predict never change it.
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted reports whether Fit has completed successfully.
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted marks the estimator as fitted.
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset returns the estimator to the unfitted state.
func (e *BaseEstimator) Reset() {
	e.state = Unfitted
}
