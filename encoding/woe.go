package encoding

import (
	"math"

	"github.com/YuminosukeSato/feago/pkg/errors"
	"github.com/YuminosukeSato/feago/table"
)

// WoEEncoder replaces each category with its weight of evidence against a
// binary target:
//
//	WoE(c) = ln( p(c | y=1) / p(c | y=0) )
//
// where the probabilities are the category's share of all positive and all
// negative observations. A category that holds only positives or only
// negatives has no defined WoE and fails the fit.
//
// The encoder also retains the distribution difference
// p(c|y=1) − p(c|y=0) per category, which the information-value selector
// consumes.
type WoEEncoder struct {
	*baseEncoder

	// diff_ holds p(c|y=1) − p(c|y=0) per category, per variable.
	diff_ map[string]map[string]float64
}

// NewWoEEncoder creates a weight-of-evidence encoder. Configuration is
// validated eagerly.
func NewWoEEncoder(opts ...Option) (*WoEEncoder, error) {
	base, err := newBaseEncoder("WoEEncoder", opts)
	if err != nil {
		return nil, err
	}
	return &WoEEncoder{baseEncoder: base}, nil
}

// Fit learns the weight of evidence per category, per variable. The target
// must hold only the values 0 and 1.
func (e *WoEEncoder) Fit(X *table.Table, y []float64) error {
	var totalPos, totalNeg float64
	for _, v := range y {
		switch v {
		case 0:
			totalNeg++
		case 1:
			totalPos++
		default:
			return errors.NewValueError("WoEEncoder.Fit",
				"the target must be binary with values 0 and 1")
		}
	}
	if totalPos == 0 || totalNeg == 0 {
		return errors.NewValueError("WoEEncoder.Fit",
			"the target holds a single class, weight of evidence is undefined")
	}

	diff := make(map[string]map[string]float64)
	err := e.fit(X, y, func(variable string, categories []string, y []float64) (map[string]float64, error) {
		pos := make(map[string]float64)
		neg := make(map[string]float64)
		for i, c := range categories {
			if y[i] == 1 {
				pos[c]++
			} else {
				neg[c]++
			}
		}

		dict := make(map[string]float64, len(pos)+len(neg))
		diffs := make(map[string]float64, len(pos)+len(neg))
		for c := range union(pos, neg) {
			if pos[c] == 0 || neg[c] == 0 {
				return nil, errors.NewDataIntegrityError("WoEEncoder.Fit",
					"a category holds a single target class, weight of evidence is undefined",
					[]string{variable})
			}
			pShare := pos[c] / totalPos
			nShare := neg[c] / totalNeg
			dict[c] = math.Log(pShare / nShare)
			diffs[c] = pShare - nShare
		}
		diff[variable] = diffs
		return dict, nil
	})
	if err != nil {
		return err
	}
	e.diff_ = diff
	return nil
}

func union(a, b map[string]float64) map[string]struct{} {
	u := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		u[k] = struct{}{}
	}
	for k := range b {
		u[k] = struct{}{}
	}
	return u
}

// Transform replaces the categories with the learned weights of evidence.
func (e *WoEEncoder) Transform(X *table.Table) (*table.Table, error) {
	return e.transform(X)
}

// FitTransform fits the encoder and transforms the same table.
func (e *WoEEncoder) FitTransform(X *table.Table, y []float64) (*table.Table, error) {
	if err := e.Fit(X, y); err != nil {
		return nil, err
	}
	return e.Transform(X)
}

// DistributionDiff returns a copy of p(c|y=1) − p(c|y=0) per category, per
// variable.
func (e *WoEEncoder) DistributionDiff() map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(e.diff_))
	for v, d := range e.diff_ {
		m := make(map[string]float64, len(d))
		for k, val := range d {
			m[k] = val
		}
		out[v] = m
	}
	return out
}
