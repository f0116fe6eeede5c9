// Package encoding replaces categories with numbers learned from a
// supervised target.
//
// Encoders learn a dictionary per variable at fit time: category → statistic
// (target mean for MeanEncoder, weight of evidence for WoEEncoder). The
// dictionary keys are exactly the distinct values observed during fit; a
// lookup miss at transform time is the defined "unseen value" condition and
// yields a missing value, governed by the errors policy.
package encoding

import (
	"math"

	"github.com/go-gota/gota/series"

	"github.com/YuminosukeSato/feago/core/model"
	"github.com/YuminosukeSato/feago/pkg/errors"
	"github.com/YuminosukeSato/feago/table"
	"github.com/YuminosukeSato/feago/variables"
)

// Option configures an encoder.
type Option func(*config)

type config struct {
	variables    []string
	ignoreFormat bool
	errors       model.Policy
}

// WithVariables restricts the encoder to the given variables. By default all
// categorical columns of the fit table are encoded.
func WithVariables(vars ...string) Option {
	return func(c *config) { c.variables = vars }
}

// WithIgnoreFormat lets the encoder treat numerical columns as categories as
// well; categories are then the string rendering of the values. This is how
// discretised bin indices are encoded.
func WithIgnoreFormat(on bool) Option {
	return func(c *config) { c.ignoreFormat = on }
}

// WithErrors sets the policy applied when encoding introduces missing
// values for unseen categories.
func WithErrors(p model.Policy) Option {
	return func(c *config) { c.errors = p }
}

// groupFunc learns the dictionary for one variable from its category
// rendering and the aligned target.
type groupFunc func(variable string, categories []string, y []float64) (map[string]float64, error)

// baseEncoder carries the configuration and fitted state shared by the
// encoders; they differ only in the statistic learned per category.
type baseEncoder struct {
	model.BaseEstimator

	name string
	cfg  config

	// fitted state
	variables_  []string
	encoder_    map[string]map[string]float64
	nFeaturesIn int
}

func newBaseEncoder(name string, opts []Option) (*baseEncoder, error) {
	cfg := config{errors: model.PolicyIgnore}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.errors.Valid() {
		return nil, errors.NewConfigurationError("errors",
			"policy must be PolicyIgnore or PolicyRaise", cfg.errors)
	}
	return &baseEncoder{name: name, cfg: cfg}, nil
}

// fit learns one dictionary per variable and commits the state wholesale.
func (e *baseEncoder) fit(X *table.Table, y []float64, group groupFunc) error {
	op := e.name + ".Fit"
	if X == nil || X.NumRows() == 0 {
		return errors.NewModelError(op, "empty table", errors.ErrEmptyData)
	}
	if len(y) != X.NumRows() {
		return errors.NewSchemaMismatchError(op, "", X.NumRows(), len(y))
	}

	vars, err := e.resolveVariables(X)
	if err != nil {
		return err
	}
	if affected := X.HasMissing(vars...); len(affected) > 0 {
		return errors.NewDataIntegrityError(op,
			"the training table contains missing values", affected)
	}

	dict := make(map[string]map[string]float64, len(vars))
	for _, v := range vars {
		categories, err := X.Records(v)
		if err != nil {
			return err
		}
		d, err := group(v, categories, y)
		if err != nil {
			return err
		}
		if len(d) == 0 {
			return errors.NewModelError(op,
				"encoder learned an empty dictionary for variable '"+v+"'", nil)
		}
		dict[v] = d
	}

	e.variables_ = vars
	e.encoder_ = dict
	e.nFeaturesIn = X.NumCols()
	e.SetFitted()
	return nil
}

func (e *baseEncoder) resolveVariables(X *table.Table) ([]string, error) {
	if e.cfg.ignoreFormat {
		if len(e.cfg.variables) == 0 {
			return X.Names(), nil
		}
		for _, v := range e.cfg.variables {
			if !X.HasColumn(v) {
				return nil, errors.NewConfigurationError("variables",
					"variable not present in the table", v)
			}
		}
		return append([]string(nil), e.cfg.variables...), nil
	}
	return variables.CheckCategorical(X, e.cfg.variables)
}

// transform replaces each category with its dictionary entry. Unseen values
// yield NaN; the errors policy decides between warning and failure.
func (e *baseEncoder) transform(X *table.Table) (*table.Table, error) {
	op := e.name + ".Transform"
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError(e.name, "Transform")
	}
	if X == nil || X.NumRows() == 0 {
		return nil, errors.NewModelError(op, "empty table", errors.ErrEmptyData)
	}
	if X.NumCols() != e.nFeaturesIn {
		return nil, errors.NewSchemaMismatchError(op, "", e.nFeaturesIn, X.NumCols())
	}

	out := X.Copy()
	var withNA []string
	for _, v := range e.variables_ {
		if !X.HasColumn(v) {
			return nil, errors.NewSchemaMismatchError(op, v, "present", "missing")
		}
		categories, err := X.Records(v)
		if err != nil {
			return nil, err
		}
		dict := e.encoder_[v]

		encoded := make([]float64, len(categories))
		hasNA := false
		for i, c := range categories {
			if val, ok := dict[c]; ok {
				encoded[i] = val
			} else {
				encoded[i] = math.NaN()
				hasNA = true
			}
		}
		if hasNA {
			withNA = append(withNA, v)
		}
		out, err = out.WithColumn(series.New(encoded, series.Float, v))
		if err != nil {
			return nil, err
		}
	}

	if len(withNA) > 0 {
		if e.cfg.errors == model.PolicyRaise {
			return nil, errors.NewDataIntegrityError(op,
				"NaN values were introduced by the encoding", withNA)
		}
		errors.Warn(errors.NewUnseenValueWarning(e.name, withNA))
	}
	return out, nil
}

// Variables returns the variables resolved at fit time.
func (e *baseEncoder) Variables() []string {
	return append([]string(nil), e.variables_...)
}

// EncoderDict returns a copy of the learned dictionary per variable. Keys
// are the string rendering of the observed categories.
func (e *baseEncoder) EncoderDict() map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(e.encoder_))
	for v, d := range e.encoder_ {
		m := make(map[string]float64, len(d))
		for k, val := range d {
			m[k] = val
		}
		out[v] = m
	}
	return out
}
