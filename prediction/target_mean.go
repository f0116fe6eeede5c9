// Package prediction implements the target-mean predictor: a pipeline that
// composes a discretiser and two mean encoders into a single fit/predict
// estimator over tables with mixed variable types.
package prediction

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/feago/core/model"
	"github.com/YuminosukeSato/feago/discretisation"
	"github.com/YuminosukeSato/feago/encoding"
	"github.com/YuminosukeSato/feago/metrics"
	"github.com/YuminosukeSato/feago/pkg/errors"
	"github.com/YuminosukeSato/feago/table"
	"github.com/YuminosukeSato/feago/variables"
)

// TargetMeanRegressor predicts the target as the average of per-variable
// target means.
//
// At fit time the variables are classified by role. Numerical variables are
// discretised into bins and a mean encoder is fitted on the bin indices;
// categorical variables are fitted by a second, separate mean encoder. The
// two encoders never share a dictionary, and the routing fixed at fit time
// holds for the lifetime of the estimator.
//
// Predict encodes every variable to its learned target mean and aggregates
// one prediction per row as the arithmetic mean across variables, skipping
// missing (unseen) entries.
type TargetMeanRegressor struct {
	model.BaseEstimator

	bins     int
	strategy discretisation.Strategy
	declared []string

	// fitted state, replaced wholesale by Fit
	variables_  []string
	catVars_    []string
	numVars_    []string
	roles_      map[string]table.Role
	disc_       model.Transformer
	encoderCat_ *encoding.MeanEncoder
	encoderNum_ *encoding.MeanEncoder
	nFeaturesIn int
}

// Option configures a TargetMeanRegressor.
type Option func(*TargetMeanRegressor)

// WithVariables restricts the estimator to the given variables. By default
// every column of the fit table is used.
func WithVariables(vars ...string) Option {
	return func(t *TargetMeanRegressor) { t.declared = vars }
}

// WithBins sets the number of bins for the discretisation of numerical
// variables (default 5).
func WithBins(bins int) Option {
	return func(t *TargetMeanRegressor) { t.bins = bins }
}

// WithStrategy sets the discretisation strategy (default EqualWidth).
func WithStrategy(s discretisation.Strategy) Option {
	return func(t *TargetMeanRegressor) { t.strategy = s }
}

// NewTargetMeanRegressor creates a target-mean regressor. Configuration is
// validated eagerly; an invalid bin count or strategy fails with a
// ConfigurationError before any data is seen.
func NewTargetMeanRegressor(opts ...Option) (*TargetMeanRegressor, error) {
	t := &TargetMeanRegressor{
		bins:     5,
		strategy: discretisation.EqualWidth,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.bins < 1 {
		return nil, errors.NewConfigurationError("bins",
			"the number of bins must be a positive integer", t.bins)
	}
	if !t.strategy.Valid() {
		return nil, errors.NewConfigurationError("strategy",
			"strategy must be EqualWidth or EqualFrequency", t.strategy)
	}
	return t, nil
}

// Fit classifies the variables, fits the discretiser on the numerical ones
// and one mean encoder per route. Fit either fully succeeds or leaves the
// previous state untouched.
func (t *TargetMeanRegressor) Fit(X *table.Table, y []float64) error {
	op := "TargetMeanRegressor.Fit"
	if X == nil || X.NumRows() == 0 {
		return errors.NewModelError(op, "empty table", errors.ErrEmptyData)
	}
	if len(y) != X.NumRows() {
		return errors.NewSchemaMismatchError(op, "", X.NumRows(), len(y))
	}

	vars := t.declared
	if len(vars) == 0 {
		vars = X.Names()
	}
	cat, num, err := variables.FindCategoricalAndNumerical(X, vars)
	if err != nil {
		return err
	}
	if affected := X.HasMissing(vars...); len(affected) > 0 {
		return errors.NewDataIntegrityError(op,
			"the training table contains missing values", affected)
	}

	Xv, err := X.Select(vars)
	if err != nil {
		return err
	}

	var disc model.Transformer
	var encoderNum *encoding.MeanEncoder
	if len(num) > 0 {
		disc, err = t.newDiscretiser(num)
		if err != nil {
			return err
		}
		Xnum, err := Xv.Select(num)
		if err != nil {
			return err
		}
		if err := disc.Fit(Xnum, nil); err != nil {
			return err
		}
		binned, err := disc.Transform(Xnum)
		if err != nil {
			return err
		}
		encoderNum, err = encoding.NewMeanEncoder(
			encoding.WithVariables(num...),
			encoding.WithIgnoreFormat(true),
		)
		if err != nil {
			return err
		}
		if err := encoderNum.Fit(binned, y); err != nil {
			return err
		}
	}

	var encoderCat *encoding.MeanEncoder
	if len(cat) > 0 {
		Xcat, err := Xv.Select(cat)
		if err != nil {
			return err
		}
		encoderCat, err = encoding.NewMeanEncoder(encoding.WithVariables(cat...))
		if err != nil {
			return err
		}
		if err := encoderCat.Fit(Xcat, y); err != nil {
			return err
		}
	}

	roles := make(map[string]table.Role, len(vars))
	for _, v := range cat {
		roles[v] = table.Categorical
	}
	for _, v := range num {
		roles[v] = table.Numerical
	}

	t.variables_ = append([]string(nil), vars...)
	t.catVars_ = cat
	t.numVars_ = num
	t.roles_ = roles
	t.disc_ = disc
	t.encoderNum_ = encoderNum
	t.encoderCat_ = encoderCat
	t.nFeaturesIn = X.NumCols()
	t.SetFitted()
	return nil
}

func (t *TargetMeanRegressor) newDiscretiser(num []string) (model.Transformer, error) {
	opts := []discretisation.Option{
		discretisation.WithVariables(num...),
		discretisation.WithReturnObject(true),
	}
	if t.strategy == discretisation.EqualFrequency {
		return discretisation.NewEqualFrequencyDiscretiser(t.bins, opts...)
	}
	return discretisation.NewEqualWidthDiscretiser(t.bins, opts...)
}

// Transform returns the table with every fitted variable replaced by its
// learned target mean, in the fitted variable order.
func (t *TargetMeanRegressor) Transform(X *table.Table) (*table.Table, error) {
	encoded, err := t.encode(X, "Transform")
	if err != nil {
		return nil, err
	}
	return encoded, nil
}

// Predict aggregates the per-variable target means into one prediction per
// row by arithmetic mean across variables. Missing encoded entries (unseen
// categories) are skipped; a row where every entry is missing predicts NaN.
func (t *TargetMeanRegressor) Predict(X *table.Table) ([]float64, error) {
	encoded, err := t.encode(X, "Predict")
	if err != nil {
		return nil, err
	}

	n := encoded.NumRows()
	sums := make([]float64, n)
	counts := make([]int, n)
	for _, v := range t.variables_ {
		col, err := encoded.Float(v)
		if err != nil {
			return nil, err
		}
		for i, val := range col {
			if math.IsNaN(val) {
				continue
			}
			sums[i] += val
			counts[i]++
		}
	}

	preds := make([]float64, n)
	for i := range preds {
		if counts[i] == 0 {
			preds[i] = math.NaN()
			continue
		}
		preds[i] = sums[i] / float64(counts[i])
	}
	return preds, nil
}

// encode runs the fitted pipeline over the fitted variables of X and
// returns a table holding their encoded values.
func (t *TargetMeanRegressor) encode(X *table.Table, method string) (*table.Table, error) {
	op := "TargetMeanRegressor." + method
	if !t.IsFitted() {
		return nil, errors.NewNotFittedError("TargetMeanRegressor", method)
	}
	if X == nil || X.NumRows() == 0 {
		return nil, errors.NewModelError(op, "empty table", errors.ErrEmptyData)
	}
	if X.NumCols() != t.nFeaturesIn {
		return nil, errors.NewSchemaMismatchError(op, "", t.nFeaturesIn, X.NumCols())
	}

	// The transform-time schema must agree with the fitted one: same
	// column count, same variables, same role per variable.
	for _, v := range t.variables_ {
		role, err := X.Role(v)
		if err != nil {
			return nil, errors.NewSchemaMismatchError(op, v, "present", "missing")
		}
		if role != t.roles_[v] {
			return nil, errors.NewSchemaMismatchError(op, v, t.roles_[v].String(), role.String())
		}
	}

	Xv, err := X.Select(t.variables_)
	if err != nil {
		return nil, err
	}

	out := Xv
	if len(t.numVars_) > 0 {
		Xnum, err := Xv.Select(t.numVars_)
		if err != nil {
			return nil, err
		}
		binned, err := t.disc_.Transform(Xnum)
		if err != nil {
			return nil, err
		}
		encodedNum, err := t.encoderNum_.Transform(binned)
		if err != nil {
			return nil, err
		}
		for _, v := range t.numVars_ {
			col, err := encodedNum.Column(v)
			if err != nil {
				return nil, err
			}
			out, err = out.WithColumn(col)
			if err != nil {
				return nil, err
			}
		}
	}
	if len(t.catVars_) > 0 {
		Xcat, err := Xv.Select(t.catVars_)
		if err != nil {
			return nil, err
		}
		encodedCat, err := t.encoderCat_.Transform(Xcat)
		if err != nil {
			return nil, err
		}
		for _, v := range t.catVars_ {
			col, err := encodedCat.Column(v)
			if err != nil {
				return nil, err
			}
			out, err = out.WithColumn(col)
			if err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// Score returns the coefficient of determination R² of the prediction.
func (t *TargetMeanRegressor) Score(X *table.Table, y []float64) (float64, error) {
	preds, err := t.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2(mat.NewVecDense(len(y), y), mat.NewVecDense(len(preds), preds))
}

// Variables returns the variables resolved at fit time, in fit order.
func (t *TargetMeanRegressor) Variables() []string {
	return append([]string(nil), t.variables_...)
}

// CategoricalVariables returns the variables routed to the categorical
// encoder at fit time.
func (t *TargetMeanRegressor) CategoricalVariables() []string {
	return append([]string(nil), t.catVars_...)
}

// NumericalVariables returns the variables routed through the discretiser at
// fit time.
func (t *TargetMeanRegressor) NumericalVariables() []string {
	return append([]string(nil), t.numVars_...)
}

// NumericalEncoderDict returns the numerical encoder's dictionary, keyed by
// bin index rendering per variable. Nil when no numerical variables were
// fitted.
func (t *TargetMeanRegressor) NumericalEncoderDict() map[string]map[string]float64 {
	if t.encoderNum_ == nil {
		return nil
	}
	return t.encoderNum_.EncoderDict()
}

// CategoricalEncoderDict returns the categorical encoder's dictionary per
// variable. Nil when no categorical variables were fitted.
func (t *TargetMeanRegressor) CategoricalEncoderDict() map[string]map[string]float64 {
	if t.encoderCat_ == nil {
		return nil
	}
	return t.encoderCat_.EncoderDict()
}
