package discretisation

import (
	"github.com/YuminosukeSato/feago/pkg/errors"
	"github.com/YuminosukeSato/feago/table"
)

// EqualWidthDiscretiser divides the training-set range of each variable into
// a fixed number of intervals of equal length.
//
// For N bins the fitted edge set holds N+1 strictly increasing boundaries.
// At transform time each value is replaced by the index of its interval, or
// by the interval boundaries when WithReturnBoundaries is set.
type EqualWidthDiscretiser struct {
	*baseDiscretiser
}

// NewEqualWidthDiscretiser creates an equal-width discretiser with the given
// number of bins. Configuration is validated eagerly; an invalid bin count
// or policy fails with a ConfigurationError before any data is seen.
func NewEqualWidthDiscretiser(bins int, opts ...Option) (*EqualWidthDiscretiser, error) {
	base, err := newBase("EqualWidthDiscretiser", bins, opts)
	if err != nil {
		return nil, err
	}
	return &EqualWidthDiscretiser{baseDiscretiser: base}, nil
}

// Fit computes the interval edges of each configured numerical variable.
// The target is not used and may be nil.
func (d *EqualWidthDiscretiser) Fit(X *table.Table, y []float64) error {
	return d.fit(X, d.edges)
}

func (d *EqualWidthDiscretiser) edges(variable string, values []float64) ([]float64, error) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi <= lo {
		return nil, errors.NewValueError("EqualWidthDiscretiser.Fit",
			"variable '"+variable+"' is constant, no intervals can be derived")
	}

	width := (hi - lo) / float64(d.bins)
	edges := make([]float64, d.bins+1)
	for i := 0; i <= d.bins; i++ {
		edges[i] = lo + float64(i)*width
	}
	// Guard the upper boundary against floating-point drift so that the
	// training maximum always falls inside the last interval.
	edges[d.bins] = hi
	return edges, nil
}

// Transform sorts the variable values into the fitted intervals.
func (d *EqualWidthDiscretiser) Transform(X *table.Table) (*table.Table, error) {
	return d.transform(X)
}

// FitTransform fits the discretiser and transforms the same table.
func (d *EqualWidthDiscretiser) FitTransform(X *table.Table, y []float64) (*table.Table, error) {
	if err := d.Fit(X, y); err != nil {
		return nil, err
	}
	return d.Transform(X)
}
