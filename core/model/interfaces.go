package model

import (
	"github.com/YuminosukeSato/feago/table"
)

// Fitter learns parameters from a training table. The target may be nil for
// unsupervised transformers.
type Fitter interface {
	Fit(X *table.Table, y []float64) error
}

// Transformer is the fit/transform contract shared by discretisers, encoders
// and selectors. Transform is a pure function of its input and the fitted
// state; it returns a new table and never mutates X.
type Transformer interface {
	Fitter
	Transform(X *table.Table) (*table.Table, error)
}

// InverseTransformer maps encoded values back to the original ones. Only
// defined when the learned mapping is injective.
type InverseTransformer interface {
	InverseTransform(X *table.Table) (*table.Table, error)
}

// Predictor produces one scalar per input row.
type Predictor interface {
	Predict(X *table.Table) ([]float64, error)
}

// Selector is a feature-selection transformer: after fit it can name the
// columns it would drop.
type Selector interface {
	Transformer
	FeaturesToDrop() []string
}
