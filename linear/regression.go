// Package linear provides an ordinary-least-squares regressor. It backs the
// probe feature selector as the default importance-reporting estimator.
package linear

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/feago/core/model"
	"github.com/YuminosukeSato/feago/metrics"
	"github.com/YuminosukeSato/feago/pkg/errors"
)

// Regression is an ordinary least squares linear regression solved by QR
// decomposition.
type Regression struct {
	model.BaseEstimator

	fitIntercept bool

	coef_      []float64
	intercept_ float64
	nFeatures_ int
}

// Option configures a Regression.
type Option func(*Regression)

// WithFitIntercept controls whether the intercept is learned (default true).
func WithFitIntercept(fit bool) Option {
	return func(r *Regression) { r.fitIntercept = fit }
}

// NewRegression creates a linear regression model.
func NewRegression(opts ...Option) *Regression {
	r := &Regression{fitIntercept: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fit learns the coefficients from the training data. y must be a column
// vector with as many rows as X.
func (r *Regression) Fit(X, y mat.Matrix) error {
	rows, cols := X.Dims()
	yRows, yCols := y.Dims()
	if rows == 0 || cols == 0 {
		return errors.NewModelError("Regression.Fit", "empty data", errors.ErrEmptyData)
	}
	if rows != yRows {
		return errors.NewSchemaMismatchError("Regression.Fit", "", rows, yRows)
	}
	if yCols != 1 {
		return errors.NewValueError("Regression.Fit", "y must be a column vector")
	}

	XFit := mat.DenseCopyOf(X)
	if r.fitIntercept {
		withIntercept := mat.NewDense(rows, cols+1, nil)
		for i := 0; i < rows; i++ {
			withIntercept.Set(i, 0, 1.0)
			for j := 0; j < cols; j++ {
				withIntercept.Set(i, j+1, X.At(i, j))
			}
		}
		XFit = withIntercept
	}

	var qr mat.QR
	qr.Factorize(XFit)

	_, qrCols := XFit.Dims()
	coefficients := mat.NewDense(qrCols, 1, nil)
	if err := qr.SolveTo(coefficients, false, y); err != nil {
		return errors.Wrap(err, "Regression.Fit: failed to solve linear system")
	}

	coef := make([]float64, cols)
	intercept := 0.0
	if r.fitIntercept {
		intercept = coefficients.At(0, 0)
		for i := 0; i < cols; i++ {
			coef[i] = coefficients.At(i+1, 0)
		}
	} else {
		for i := 0; i < cols; i++ {
			coef[i] = coefficients.At(i, 0)
		}
	}

	r.coef_ = coef
	r.intercept_ = intercept
	r.nFeatures_ = cols
	r.SetFitted()
	return nil
}

// Predict returns one prediction per row of X.
func (r *Regression) Predict(X mat.Matrix) (*mat.VecDense, error) {
	if !r.IsFitted() {
		return nil, errors.NewNotFittedError("Regression", "Predict")
	}
	rows, cols := X.Dims()
	if cols != r.nFeatures_ {
		return nil, errors.NewSchemaMismatchError("Regression.Predict", "", r.nFeatures_, cols)
	}

	preds := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		p := r.intercept_
		for j := 0; j < cols; j++ {
			p += X.At(i, j) * r.coef_[j]
		}
		preds.SetVec(i, p)
	}
	return preds, nil
}

// Score returns the coefficient of determination R² of the prediction.
func (r *Regression) Score(X mat.Matrix, y *mat.VecDense) (float64, error) {
	preds, err := r.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2(y, preds)
}

// Coef returns a copy of the learned coefficients.
func (r *Regression) Coef() []float64 {
	return append([]float64(nil), r.coef_...)
}

// Intercept returns the learned intercept.
func (r *Regression) Intercept() float64 {
	return r.intercept_
}

// FeatureImportances reports the absolute value of each coefficient, the
// importance measure consumed by the probe feature selector.
func (r *Regression) FeatureImportances() ([]float64, error) {
	if !r.IsFitted() {
		return nil, errors.NewNotFittedError("Regression", "FeatureImportances")
	}
	imp := make([]float64, len(r.coef_))
	for i, c := range r.coef_ {
		imp[i] = math.Abs(c)
	}
	return imp, nil
}
