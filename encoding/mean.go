package encoding

import (
	"github.com/go-gota/gota/series"

	"github.com/YuminosukeSato/feago/pkg/errors"
	"github.com/YuminosukeSato/feago/table"
)

// MeanEncoder replaces each category with the mean value of the target for
// that category.
//
// For example, in a variable colour, if the mean of the target for blue, red
// and grey is 0.5, 0.8 and 0.1, blue is replaced by 0.5, red by 0.8 and grey
// by 0.1.
//
// By default only categorical variables are encoded; with WithIgnoreFormat
// numerical variables (such as discretised bin indices) are encoded the same
// way.
type MeanEncoder struct {
	*baseEncoder
}

// NewMeanEncoder creates a mean encoder. Configuration is validated eagerly.
func NewMeanEncoder(opts ...Option) (*MeanEncoder, error) {
	base, err := newBaseEncoder("MeanEncoder", opts)
	if err != nil {
		return nil, err
	}
	return &MeanEncoder{baseEncoder: base}, nil
}

// Fit learns the mean target value per category, per variable.
func (e *MeanEncoder) Fit(X *table.Table, y []float64) error {
	return e.fit(X, y, func(_ string, categories []string, y []float64) (map[string]float64, error) {
		sums := make(map[string]float64)
		counts := make(map[string]int)
		for i, c := range categories {
			sums[c] += y[i]
			counts[c]++
		}
		dict := make(map[string]float64, len(sums))
		for c, s := range sums {
			dict[c] = s / float64(counts[c])
		}
		return dict, nil
	})
}

// Transform replaces the categories with the learned target means.
func (e *MeanEncoder) Transform(X *table.Table) (*table.Table, error) {
	return e.transform(X)
}

// FitTransform fits the encoder and transforms the same table.
func (e *MeanEncoder) FitTransform(X *table.Table, y []float64) (*table.Table, error) {
	if err := e.Fit(X, y); err != nil {
		return nil, err
	}
	return e.Transform(X)
}

// InverseTransform maps encoded values back to the original categories. It
// is defined only when the learned mapping is injective for every variable;
// a variable where two categories share a mean fails with a
// DataIntegrityError naming it.
func (e *MeanEncoder) InverseTransform(X *table.Table) (*table.Table, error) {
	op := "MeanEncoder.InverseTransform"
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("MeanEncoder", "InverseTransform")
	}
	if X == nil || X.NumRows() == 0 {
		return nil, errors.NewModelError(op, "empty table", errors.ErrEmptyData)
	}

	out := X.Copy()
	for _, v := range e.variables_ {
		if !X.HasColumn(v) {
			return nil, errors.NewSchemaMismatchError(op, v, "present", "missing")
		}
		dict := e.encoder_[v]
		reverse := make(map[float64]string, len(dict))
		for category, mean := range dict {
			if _, dup := reverse[mean]; dup {
				return nil, errors.NewDataIntegrityError(op,
					"the learned mapping is not injective", []string{v})
			}
			reverse[mean] = category
		}

		values, err := X.Float(v)
		if err != nil {
			return nil, err
		}
		restored := make([]string, len(values))
		for i, val := range values {
			category, ok := reverse[val]
			if !ok {
				return nil, errors.NewDataIntegrityError(op,
					"value not present in the learned mapping", []string{v})
			}
			restored[i] = category
		}
		out, err = out.WithColumn(series.New(restored, series.String, v))
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
