// Package discretisation sorts continuous variables into a finite set of
// ordered bins. Two strategies are provided: equal-width intervals over the
// training range, and equal-frequency intervals at the empirical quantiles.
//
// Both discretisers learn a set of interval edges per variable at fit time
// and map values to bin indices at transform time. Values outside the
// training range fall into the first or last bin; this is a property of
// boundary-based partitioning, not an error.
package discretisation

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gota/gota/series"

	"github.com/YuminosukeSato/feago/core/model"
	"github.com/YuminosukeSato/feago/pkg/errors"
	"github.com/YuminosukeSato/feago/table"
	"github.com/YuminosukeSato/feago/variables"
)

// Option configures a discretiser.
type Option func(*config)

type config struct {
	variables        []string
	returnObject     bool
	returnBoundaries bool
	errors           model.Policy
}

// WithVariables restricts the discretiser to the given numerical variables.
// By default all numerical columns of the fit table are discretised.
func WithVariables(vars ...string) Option {
	return func(c *config) { c.variables = vars }
}

// WithReturnObject makes Transform emit bin indices as a categorical
// (string) column, so that downstream encoders treat them as categories.
func WithReturnObject(on bool) Option {
	return func(c *config) { c.returnObject = on }
}

// WithReturnBoundaries makes Transform emit the literal interval boundaries
// ("(20, 30]") instead of bin indices.
func WithReturnBoundaries(on bool) Option {
	return func(c *config) { c.returnBoundaries = on }
}

// WithErrors sets the policy applied when the transform leaves missing
// values in a discretised column.
func WithErrors(p model.Policy) Option {
	return func(c *config) { c.errors = p }
}

// baseDiscretiser carries the configuration and fitted state shared by both
// strategies. The strategy only differs in how edges are computed.
type baseDiscretiser struct {
	model.BaseEstimator

	name string
	bins int
	cfg  config

	// fitted state
	variables_  []string
	binner_     map[string][]float64
	nFeaturesIn int
}

func newBase(name string, bins int, opts []Option) (*baseDiscretiser, error) {
	cfg := config{errors: model.PolicyIgnore}
	for _, opt := range opts {
		opt(&cfg)
	}
	if bins < 1 {
		return nil, errors.NewConfigurationError("bins",
			"the number of bins must be a positive integer", bins)
	}
	if !cfg.errors.Valid() {
		return nil, errors.NewConfigurationError("errors",
			"policy must be PolicyIgnore or PolicyRaise", cfg.errors)
	}
	if cfg.returnObject && cfg.returnBoundaries {
		return nil, errors.NewConfigurationError("return_object",
			"return_object and return_boundaries are mutually exclusive", true)
	}
	return &baseDiscretiser{name: name, bins: bins, cfg: cfg}, nil
}

// edgeFunc computes the interval edges for one variable's values.
type edgeFunc func(variable string, values []float64) ([]float64, error)

// fit resolves the variables, computes the edges per variable and commits
// the state wholesale. On any failure the previous state is untouched.
func (d *baseDiscretiser) fit(X *table.Table, edges edgeFunc) error {
	op := d.name + ".Fit"
	if X == nil || X.NumRows() == 0 {
		return errors.NewModelError(op, "empty table", errors.ErrEmptyData)
	}

	vars, err := variables.CheckNumerical(X, d.cfg.variables)
	if err != nil {
		return err
	}
	if affected := X.HasMissing(vars...); len(affected) > 0 {
		return errors.NewDataIntegrityError(op,
			"the training table contains missing values", affected)
	}

	binner := make(map[string][]float64, len(vars))
	for _, v := range vars {
		values, err := X.Float(v)
		if err != nil {
			return err
		}
		e, err := edges(v, values)
		if err != nil {
			return err
		}
		binner[v] = e
	}

	d.variables_ = vars
	d.binner_ = binner
	d.nFeaturesIn = X.NumCols()
	d.SetFitted()
	return nil
}

// transform maps each configured variable to bin indices or boundary labels.
func (d *baseDiscretiser) transform(X *table.Table) (*table.Table, error) {
	op := d.name + ".Transform"
	if !d.IsFitted() {
		return nil, errors.NewNotFittedError(d.name, "Transform")
	}
	if X == nil || X.NumRows() == 0 {
		return nil, errors.NewModelError(op, "empty table", errors.ErrEmptyData)
	}
	if X.NumCols() != d.nFeaturesIn {
		return nil, errors.NewSchemaMismatchError(op, "", d.nFeaturesIn, X.NumCols())
	}

	out := X.Copy()
	var withNA []string
	for _, v := range d.variables_ {
		role, err := X.Role(v)
		if err != nil {
			return nil, errors.NewSchemaMismatchError(op, v, "present", "missing")
		}
		if role != table.Numerical {
			return nil, errors.NewSchemaMismatchError(op, v, table.Numerical.String(), role.String())
		}

		values, err := X.Float(v)
		if err != nil {
			return nil, err
		}
		edges := d.binner_[v]

		records := make([]string, len(values))
		hasNA := false
		for i, val := range values {
			if math.IsNaN(val) {
				records[i] = "NaN"
				hasNA = true
				continue
			}
			bin := binFor(val, edges)
			if d.cfg.returnBoundaries {
				records[i] = intervalLabel(edges, bin)
			} else {
				records[i] = fmt.Sprintf("%d", bin)
			}
		}
		if hasNA {
			withNA = append(withNA, v)
		}

		tp := series.Int
		if d.cfg.returnObject || d.cfg.returnBoundaries {
			tp = series.String
		}
		out, err = out.WithColumn(series.New(records, tp, v))
		if err != nil {
			return nil, err
		}
	}

	if len(withNA) > 0 {
		if d.cfg.errors == model.PolicyRaise {
			return nil, errors.NewDataIntegrityError(op,
				"NaN values were introduced by the discretisation", withNA)
		}
		errors.Warn(errors.NewUnseenValueWarning(d.name, withNA))
	}
	return out, nil
}

// binFor returns the index of the interval containing v. Values at or below
// the lowest edge map to the first bin, values above the highest edge map to
// the last bin.
func binFor(v float64, edges []float64) int {
	last := len(edges) - 2
	if v <= edges[0] {
		return 0
	}
	if v > edges[len(edges)-1] {
		return last
	}
	// smallest i with edges[i] >= v; v belongs to (edges[i-1], edges[i]]
	i := sort.SearchFloat64s(edges, v)
	return min(i-1, last)
}

func intervalLabel(edges []float64, bin int) string {
	return fmt.Sprintf("(%g, %g]", edges[bin], edges[bin+1])
}

// Variables returns the variables resolved at fit time.
func (d *baseDiscretiser) Variables() []string {
	return append([]string(nil), d.variables_...)
}

// BinEdges returns a copy of the fitted interval edges per variable.
func (d *baseDiscretiser) BinEdges() map[string][]float64 {
	out := make(map[string][]float64, len(d.binner_))
	for k, v := range d.binner_ {
		out[k] = append([]float64(nil), v...)
	}
	return out
}
