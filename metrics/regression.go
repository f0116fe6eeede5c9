// Package metrics provides regression metrics for scoring estimators.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/feago/pkg/errors"
)

// MSE computes the mean squared error between two vectors.
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("MSE", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewSchemaMismatchError("MSE", "", n, yPred.Len())
	}

	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}
	return sum / float64(n), nil
}

// RMSE computes the root mean squared error between two vectors.
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// R2 computes the coefficient of determination.
//
// R² = 1 - SS_res / SS_tot. A target with zero variance has no defined R²
// and fails with a ValueError.
func R2(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("R2", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewSchemaMismatchError("R2", "", n, yPred.Len())
	}

	var yMean float64
	for i := 0; i < n; i++ {
		yMean += yTrue.AtVec(i)
	}
	yMean /= float64(n)

	var ssTot, ssRes float64
	for i := 0; i < n; i++ {
		yi := yTrue.AtVec(i)
		pi := yPred.AtVec(i)
		ssTot += (yi - yMean) * (yi - yMean)
		ssRes += (yi - pi) * (yi - pi)
	}
	if ssTot == 0 {
		return 0, errors.NewValueError("R2", "cannot compute score with zero variance in y_true")
	}
	return 1.0 - ssRes/ssTot, nil
}
