// Package linearmodel provides linear regression models sharing a common
// interface. GradientDescentRegression trains with batch gradient descent and
// OLSRegression computes the closed form solution, useful as a reference to
// sanity check a gradient descent fit.
package linearmodel

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrNoOptions          = errors.New("no initialized model options")
	ErrNoTrainingMatrix   = errors.New("no training matrix")
	ErrNoTargetMatrix     = errors.New("no target matrix")
	ErrNoDesignMatrix     = errors.New("no design matrix for inference")
	ErrNoTrainingRows     = errors.New("training matrix has no rows")
	ErrTargetLenMismatch  = errors.New("target length does not match training rows")
	ErrFeatureLenMismatch = errors.New("number of features does not match number of model coefficients")
	ErrUntrainedModel     = errors.New("model has not been fit")
)

// Model represents a linear model learning one coefficient per feature column
// of the training matrix along with an intercept. The target matrix is
// expected to be a single column with one row per training row.
type Model interface {
	Fit(x, y mat.Matrix) error
	Predict(x mat.Matrix) ([]float64, error)
	Score(x, y mat.Matrix) (float64, error)
	Intercept() float64
	Coef() []float64
}
