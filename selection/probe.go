package selection

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/feago/core/model"
	"github.com/YuminosukeSato/feago/linear"
	"github.com/YuminosukeSato/feago/pkg/errors"
	"github.com/YuminosukeSato/feago/table"
	"github.com/YuminosukeSato/feago/variables"
)

// Estimator is the contract the probe selector needs from a model: it can
// be fitted on a feature matrix and report one importance per feature.
type Estimator interface {
	Fit(X, y mat.Matrix) error
	FeatureImportances() ([]float64, error)
}

// ProbeFeatureSelection drops features that are no more informative than
// noise.
//
// Each trial appends three synthetic reference columns (a binary draw, a
// uniform draw and a gaussian draw) to the real features, fits the
// estimator, and compares importances. A real feature whose importance
// falls below every probe's in all trials is dropped.
type ProbeFeatureSelection struct {
	model.BaseEstimator

	estimator Estimator
	nIter     int
	seed      uint64
	declared  []string

	variables_   []string
	importances_ map[string]float64
	toDrop_      []string
	nFeaturesIn  int
}

// ProbeOption configures a ProbeFeatureSelection.
type ProbeOption func(*ProbeFeatureSelection)

// WithEstimator sets the importance-reporting estimator (default: ordinary
// least squares with absolute-coefficient importances).
func WithEstimator(e Estimator) ProbeOption {
	return func(s *ProbeFeatureSelection) { s.estimator = e }
}

// WithNIter sets the number of randomized trials (default 10).
func WithNIter(n int) ProbeOption {
	return func(s *ProbeFeatureSelection) { s.nIter = n }
}

// WithSeed seeds the probe draws, making the selection reproducible.
func WithSeed(seed uint64) ProbeOption {
	return func(s *ProbeFeatureSelection) { s.seed = seed }
}

// WithProbeVariables restricts the selector to the given numerical
// variables. By default all numerical columns are considered.
func WithProbeVariables(vars ...string) ProbeOption {
	return func(s *ProbeFeatureSelection) { s.declared = vars }
}

// NewProbeFeatureSelection creates a probe selector. Configuration is
// validated eagerly.
func NewProbeFeatureSelection(opts ...ProbeOption) (*ProbeFeatureSelection, error) {
	s := &ProbeFeatureSelection{
		estimator: linear.NewRegression(),
		nIter:     10,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.nIter < 1 {
		return nil, errors.NewConfigurationError("n_iter",
			"the number of trials must be a positive integer", s.nIter)
	}
	if s.estimator == nil {
		return nil, errors.NewConfigurationError("estimator",
			"an estimator is required", nil)
	}
	return s, nil
}

// Fit runs the randomized trials and records which features to drop and the
// mean importance of each feature across trials.
func (s *ProbeFeatureSelection) Fit(X *table.Table, y []float64) error {
	op := "ProbeFeatureSelection.Fit"
	if X == nil || X.NumRows() == 0 {
		return errors.NewModelError(op, "empty table", errors.ErrEmptyData)
	}
	if len(y) != X.NumRows() {
		return errors.NewSchemaMismatchError(op, "", X.NumRows(), len(y))
	}

	vars, err := variables.CheckNumerical(X, s.declared)
	if err != nil {
		return err
	}
	if affected := X.HasMissing(vars...); len(affected) > 0 {
		return errors.NewDataIntegrityError(op,
			"the training table contains missing values", affected)
	}

	n := X.NumRows()
	k := len(vars)
	realX := mat.NewDense(n, k, nil)
	for j, v := range vars {
		col, err := X.Float(v)
		if err != nil {
			return err
		}
		realX.SetCol(j, col)
	}
	yMat := mat.NewDense(n, 1, append([]float64(nil), y...))

	src := rand.NewPCG(s.seed, s.seed)
	gaussian := distuv.Normal{Mu: 0, Sigma: 3, Src: src}
	uniform := distuv.Uniform{Min: 0, Max: 1, Src: src}
	binary := rand.New(src)

	sums := make([]float64, k)
	everBeatProbe := make([]bool, k)
	for trial := 0; trial < s.nIter; trial++ {
		full := mat.NewDense(n, k+3, nil)
		full.Slice(0, n, 0, k).(*mat.Dense).Copy(realX)
		for i := 0; i < n; i++ {
			full.Set(i, k, float64(binary.IntN(2)))
			full.Set(i, k+1, uniform.Rand())
			full.Set(i, k+2, gaussian.Rand())
		}

		if err := s.estimator.Fit(full, yMat); err != nil {
			return err
		}
		imp, err := s.estimator.FeatureImportances()
		if err != nil {
			return err
		}
		if len(imp) != k+3 {
			return errors.NewSchemaMismatchError(op, "", k+3, len(imp))
		}

		probeMin := math.Inf(1)
		for _, p := range imp[k:] {
			if p < probeMin {
				probeMin = p
			}
		}
		for j := 0; j < k; j++ {
			sums[j] += imp[j]
			if imp[j] >= probeMin {
				everBeatProbe[j] = true
			}
		}
	}

	importances := make(map[string]float64, k)
	var toDrop []string
	for j, v := range vars {
		importances[v] = sums[j] / float64(s.nIter)
		if !everBeatProbe[j] {
			toDrop = append(toDrop, v)
		}
	}

	s.variables_ = vars
	s.importances_ = importances
	s.toDrop_ = toDrop
	s.nFeaturesIn = X.NumCols()
	s.SetFitted()
	return nil
}

// Transform returns the table without the features that never outranked a
// probe.
func (s *ProbeFeatureSelection) Transform(X *table.Table) (*table.Table, error) {
	op := "ProbeFeatureSelection.Transform"
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("ProbeFeatureSelection", "Transform")
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

// FeaturesToDrop returns the features that never outranked a probe.
func (s *ProbeFeatureSelection) FeaturesToDrop() []string {
	return append([]string(nil), s.toDrop_...)
}

// FeatureImportances returns the mean importance of each feature across
// trials.
func (s *ProbeFeatureSelection) FeatureImportances() map[string]float64 {
	out := make(map[string]float64, len(s.importances_))
	for k, v := range s.importances_ {
		out[k] = v
	}
	return out
}
