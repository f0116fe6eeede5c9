// Package selection provides feature-selection transformers: an
// information-value filter over categorical variables and a probe selector
// that compares real features against random ones.
package selection

import (
	"github.com/YuminosukeSato/feago/core/model"
	"github.com/YuminosukeSato/feago/encoding"
	"github.com/YuminosukeSato/feago/pkg/errors"
	"github.com/YuminosukeSato/feago/table"
)

// DefaultIVThreshold is the information value under which a variable is
// conventionally considered not predictive.
const DefaultIVThreshold = 0.02

// InformationValue ranks categorical variables by their information value
// against a binary target and drops the ones below a threshold.
//
// The information value of a variable is computed from its weight-of-evidence
// encoding:
//
//	IV = Σ_c ( p(c|y=1) − p(c|y=0) ) · WoE(c)
//
// summed over the variable's categories.
type InformationValue struct {
	model.BaseEstimator

	declared  []string
	threshold float64
	errPolicy model.Policy

	variables_  []string
	iv_         map[string]float64
	toDrop_     []string
	nFeaturesIn int
}

// IVOption configures an InformationValue selector.
type IVOption func(*InformationValue)

// WithIVVariables restricts the selector to the given categorical variables.
func WithIVVariables(vars ...string) IVOption {
	return func(s *InformationValue) { s.declared = vars }
}

// WithIVThreshold sets the information value below which a variable is
// dropped (default DefaultIVThreshold).
func WithIVThreshold(threshold float64) IVOption {
	return func(s *InformationValue) { s.threshold = threshold }
}

// WithIVErrors sets the policy the underlying weight-of-evidence encoder
// applies to unseen categories.
func WithIVErrors(p model.Policy) IVOption {
	return func(s *InformationValue) { s.errPolicy = p }
}

// NewInformationValue creates an information-value selector. Configuration
// is validated eagerly.
func NewInformationValue(opts ...IVOption) (*InformationValue, error) {
	s := &InformationValue{
		threshold: DefaultIVThreshold,
		errPolicy: model.PolicyIgnore,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.threshold < 0 {
		return nil, errors.NewConfigurationError("threshold",
			"the information value threshold must not be negative", s.threshold)
	}
	if !s.errPolicy.Valid() {
		return nil, errors.NewConfigurationError("errors",
			"policy must be PolicyIgnore or PolicyRaise", s.errPolicy)
	}
	return s, nil
}

// Fit learns the information value of each categorical variable. The target
// must be binary with values 0 and 1.
func (s *InformationValue) Fit(X *table.Table, y []float64) error {
	op := "InformationValue.Fit"
	if X == nil || X.NumRows() == 0 {
		return errors.NewModelError(op, "empty table", errors.ErrEmptyData)
	}

	encoder, err := encoding.NewWoEEncoder(
		encoding.WithVariables(s.declared...),
		encoding.WithErrors(s.errPolicy),
	)
	if err != nil {
		return err
	}
	if err := encoder.Fit(X, y); err != nil {
		return err
	}

	woe := encoder.EncoderDict()
	diff := encoder.DistributionDiff()

	iv := make(map[string]float64, len(woe))
	var toDrop []string
	vars := encoder.Variables()
	for _, v := range vars {
		var total float64
		for c, w := range woe[v] {
			total += diff[v][c] * w
		}
		iv[v] = total
		if total < s.threshold {
			toDrop = append(toDrop, v)
		}
	}

	s.variables_ = vars
	s.iv_ = iv
	s.toDrop_ = toDrop
	s.nFeaturesIn = X.NumCols()
	s.SetFitted()
	return nil
}

// Transform returns the table without the variables whose information value
// fell below the threshold.
func (s *InformationValue) Transform(X *table.Table) (*table.Table, error) {
	op := "InformationValue.Transform"
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("InformationValue", "Transform")
	}
	if X == nil || X.NumRows() == 0 {
		return nil, errors.NewModelError(op, "empty table", errors.ErrEmptyData)
	}
	if X.NumCols() != s.nFeaturesIn {
		return nil, errors.NewSchemaMismatchError(op, "", s.nFeaturesIn, X.NumCols())
	}
	if len(s.toDrop_) == 0 {
		return X.Copy(), nil
	}
	return X.Drop(s.toDrop_)
}

// FeaturesToDrop returns the variables whose information value fell below
// the threshold.
func (s *InformationValue) FeaturesToDrop() []string {
	return append([]string(nil), s.toDrop_...)
}

// InformationValues returns the learned information value per variable.
func (s *InformationValue) InformationValues() map[string]float64 {
	out := make(map[string]float64, len(s.iv_))
	for k, v := range s.iv_ {
		out[k] = v
	}
	return out
}
