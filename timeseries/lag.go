// Package timeseries provides lag features for forecasting: each selected
// column is shifted by a fixed number of periods or by a fixed time offset,
// producing new columns aligned by the table's row index.
package timeseries

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gota/gota/series"

	"github.com/YuminosukeSato/feago/core/model"
	"github.com/YuminosukeSato/feago/pkg/errors"
	"github.com/YuminosukeSato/feago/table"
	"github.com/YuminosukeSato/feago/variables"
)

// LagTransformer shifts each selected column by a fixed integer number of
// periods (position based) or by a fixed duration (time-index based).
// Exactly one of the two may be configured; with neither, a single period is
// used.
//
// The shifted values arrive in new columns suffixed with the lag
// ("ambient_temp_lag_3pds", "ambient_temp_lag_1h"); the originals are kept
// unless drop-original is set. Rows that have no source row after the shift
// hold the configured fill value, NaN by default.
//
// The transformer holds no learned state: Transform validates its
// preconditions and shifts in a single pass.
type LagTransformer struct {
	declared     []string
	periods      int
	freq         time.Duration
	freqLabel    string
	useFreq      bool
	dropOriginal bool
	missing      model.Policy
	fill         float64
	hasFill      bool
}

// Option configures a LagTransformer.
type Option func(*lagConfig)

type lagConfig struct {
	variables    []string
	periods      int
	periodsSet   bool
	freq         string
	freqSet      bool
	dropOriginal bool
	missing      model.Policy
	fill         float64
	hasFill      bool
}

// WithVariables restricts the transformer to the given numerical variables.
// By default all numerical columns are lagged.
func WithVariables(vars ...string) Option {
	return func(c *lagConfig) { c.variables = vars }
}

// WithPeriods shifts by a fixed number of rows. Mutually exclusive with
// WithFreq.
func WithPeriods(p int) Option {
	return func(c *lagConfig) {
		c.periods = p
		c.periodsSet = true
	}
}

// WithFreq shifts by a fixed duration against the table's time index, given
// as a Go duration string such as "1h" or "15m". Mutually exclusive with
// WithPeriods.
func WithFreq(freq string) Option {
	return func(c *lagConfig) {
		c.freq = freq
		c.freqSet = true
	}
}

// WithDropOriginal drops the original columns after the shift.
func WithDropOriginal(on bool) Option {
	return func(c *lagConfig) { c.dropOriginal = on }
}

// WithMissingValues sets the policy applied to missing values: PolicyRaise
// rejects tables whose selected columns already hold missing values and
// fails when the shift leaves any after the fill; PolicyIgnore (the
// default) leaves them in place.
func WithMissingValues(p model.Policy) Option {
	return func(c *lagConfig) { c.missing = p }
}

// WithFillValue fills the rows emptied by the shift with a constant instead
// of NaN.
func WithFillValue(v float64) Option {
	return func(c *lagConfig) {
		c.fill = v
		c.hasFill = true
	}
}

// NewLagTransformer creates a lag transformer. All configuration is
// validated here, before any data is seen: a non-positive period count, an
// unparseable freq, or both periods and freq set fail with a
// ConfigurationError.
func NewLagTransformer(opts ...Option) (*LagTransformer, error) {
	cfg := lagConfig{periods: 1, missing: model.PolicyIgnore}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.periodsSet && cfg.freqSet {
		return nil, errors.NewConfigurationError("periods",
			"periods and freq are mutually exclusive, set only one", cfg.periods)
	}
	if !cfg.missing.Valid() {
		return nil, errors.NewConfigurationError("missing_values",
			"policy must be PolicyIgnore or PolicyRaise", cfg.missing)
	}

	t := &LagTransformer{
		declared:     cfg.variables,
		dropOriginal: cfg.dropOriginal,
		missing:      cfg.missing,
		fill:         cfg.fill,
		hasFill:      cfg.hasFill,
	}
	if cfg.freqSet {
		d, err := time.ParseDuration(cfg.freq)
		if err != nil || d <= 0 {
			return nil, errors.NewConfigurationError("freq",
				"freq must be a positive duration string", cfg.freq)
		}
		t.useFreq = true
		t.freq = d
		t.freqLabel = cfg.freq
	} else {
		if cfg.periods < 1 {
			return nil, errors.NewConfigurationError("periods",
				"periods must be a positive integer", cfg.periods)
		}
		t.periods = cfg.periods
	}
	return t, nil
}

// Transform shifts the selected columns and merges the lagged values back
// into a new table. All preconditions are checked before any shift is
// performed.
func (t *LagTransformer) Transform(X *table.Table) (*table.Table, error) {
	op := "LagTransformer.Transform"
	if X == nil || X.NumRows() == 0 {
		return nil, errors.NewModelError(op, "empty table", errors.ErrEmptyData)
	}

	vars, err := variables.CheckNumerical(X, t.declared)
	if err != nil {
		return nil, err
	}

	idx := X.Index()
	if idx != nil {
		if idx.HasMissing() {
			return nil, errors.NewIndexIntegrityError(op,
				"the table's index contains missing entries")
		}
		if !idx.IsUnique() {
			return nil, errors.NewIndexIntegrityError(op,
				"the table's index does not contain unique values")
		}
	}
	if t.useFreq {
		if idx == nil {
			return nil, errors.Mark(errors.NewIndexIntegrityError(op,
				"shifting by a time offset requires a time index"), errors.ErrNoIndex)
		}
		if idx.Kind() != table.TimeIndex {
			return nil, errors.NewIndexIntegrityError(op,
				"shifting by a time offset requires a time index")
		}
	}

	if t.missing == model.PolicyRaise {
		if affected := X.HasMissing(vars...); len(affected) > 0 {
			return nil, errors.NewDataIntegrityError(op,
				"the table contains missing values", affected)
		}
	}

	out := X.Copy()
	var boundaryNA []string
	for _, v := range vars {
		values, err := X.Float(v)
		if err != nil {
			return nil, err
		}

		lagged := make([]float64, len(values))
		if t.useFreq {
			for i := range values {
				src := idx.TimeAt(i).Add(-t.freq)
				if j, ok := idx.LookupTime(src); ok {
					lagged[i] = values[j]
				} else {
					lagged[i] = t.boundaryValue()
				}
			}
		} else {
			for i := range values {
				if i >= t.periods {
					lagged[i] = values[i-t.periods]
				} else {
					lagged[i] = t.boundaryValue()
				}
			}
		}

		name := t.laggedName(v)
		hasNA := false
		for _, lv := range lagged {
			if math.IsNaN(lv) {
				hasNA = true
				break
			}
		}
		if hasNA {
			boundaryNA = append(boundaryNA, name)
		}
		out, err = out.WithColumn(series.New(lagged, series.Float, name))
		if err != nil {
			return nil, err
		}
	}

	if t.missing == model.PolicyRaise && len(boundaryNA) > 0 {
		return nil, errors.NewDataIntegrityError(op,
			"the shift left missing values after the configured fill", boundaryNA)
	}

	if t.dropOriginal {
		out, err = out.Drop(vars)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (t *LagTransformer) boundaryValue() float64 {
	if t.hasFill {
		return t.fill
	}
	return math.NaN()
}

func (t *LagTransformer) laggedName(v string) string {
	if t.useFreq {
		return fmt.Sprintf("%s_lag_%s", v, t.freqLabel)
	}
	return fmt.Sprintf("%s_lag_%dpds", v, t.periods)
}
