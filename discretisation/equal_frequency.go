package discretisation

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/feago/pkg/errors"
	"github.com/YuminosukeSato/feago/table"
)

// EqualFrequencyDiscretiser places the interval edges at the empirical
// quantiles of each variable, so that every interval holds roughly the same
// number of training observations.
//
// Duplicate quantile edges (heavily repeated values) are collapsed; when
// that happens fewer bins than requested remain and a DroppedBinWarning is
// emitted.
type EqualFrequencyDiscretiser struct {
	*baseDiscretiser
}

// NewEqualFrequencyDiscretiser creates an equal-frequency discretiser with
// the given number of bins. Configuration is validated eagerly.
func NewEqualFrequencyDiscretiser(bins int, opts ...Option) (*EqualFrequencyDiscretiser, error) {
	base, err := newBase("EqualFrequencyDiscretiser", bins, opts)
	if err != nil {
		return nil, err
	}
	return &EqualFrequencyDiscretiser{baseDiscretiser: base}, nil
}

// Fit computes the quantile edges of each configured numerical variable.
// The target is not used and may be nil.
func (d *EqualFrequencyDiscretiser) Fit(X *table.Table, y []float64) error {
	return d.fit(X, d.edges)
}

func (d *EqualFrequencyDiscretiser) edges(variable string, values []float64) ([]float64, error) {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	edges := make([]float64, 0, d.bins+1)
	for i := 0; i <= d.bins; i++ {
		p := float64(i) / float64(d.bins)
		edges = append(edges, stat.Quantile(p, stat.LinInterp, sorted, nil))
	}

	deduped := edges[:1]
	for _, e := range edges[1:] {
		if e > deduped[len(deduped)-1] {
			deduped = append(deduped, e)
		}
	}
	if len(deduped) < 2 {
		return nil, errors.NewValueError("EqualFrequencyDiscretiser.Fit",
			"variable '"+variable+"' is constant, no intervals can be derived")
	}
	if len(deduped) < len(edges) {
		errors.Warn(errors.NewDroppedBinWarning(variable, d.bins, len(deduped)-1))
	}
	return deduped, nil
}

// Transform sorts the variable values into the fitted intervals.
func (d *EqualFrequencyDiscretiser) Transform(X *table.Table) (*table.Table, error) {
	return d.transform(X)
}

// FitTransform fits the discretiser and transforms the same table.
func (d *EqualFrequencyDiscretiser) FitTransform(X *table.Table, y []float64) (*table.Table, error) {
	if err := d.Fit(X, y); err != nil {
		return nil, err
	}
	return d.Transform(X)
}
