package linearmodel

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// OLSOptions represents input options to run the OLS Regression
type OLSOptions struct {
	// FitIntercept adds a constant 1.0 feature as the first column if set to true
	FitIntercept bool
}

// Validate runs basic validation on OLS options
func (o *OLSOptions) Validate() (*OLSOptions, error) {
	if o == nil {
		o = NewDefaultOLSOptions()
	}

	return o, nil
}

// NewDefaultOLSOptions returns a default set of OLS Regression options
func NewDefaultOLSOptions() *OLSOptions {
	return &OLSOptions{
		FitIntercept: true,
	}
}

// OLSRegression computes ordinary least squares using QR factorization. It
// serves as the closed form reference to compare a gradient descent fit
// against since both minimize the same squared error.
type OLSRegression struct {
	opt       *OLSOptions
	coef      []float64
	intercept float64
	trained   bool
}

// NewOLSRegression initializes an ordinary least squares model ready for fitting
func NewOLSRegression(opt *OLSOptions) (*OLSRegression, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &OLSRegression{
		opt: opt,
	}, nil
}

// Fit the model according to the given training data
func (o *OLSRegression) Fit(x, y mat.Matrix) error {
	if o.opt == nil {
		return ErrNoOptions
	}
	if x == nil {
		return ErrNoTrainingMatrix
	}
	if y == nil {
		return ErrNoTargetMatrix
	}
	m, n := x.Dims()
	if m == 0 {
		return ErrNoTrainingRows
	}

	ym, _ := y.Dims()
	if ym != m {
		return fmt.Errorf("training data has %d rows and target has %d rows, %w", m, ym, ErrTargetLenMismatch)
	}

	if o.opt.FitIntercept {
		x = withOnesColumn(x)
		_, n = x.Dims()
	}

	qr := new(mat.QR)
	qr.Factorize(x)

	sol := new(mat.Dense)
	if err := qr.SolveTo(sol, false, y); err != nil {
		return fmt.Errorf("unable to solve least squares system, %w", err)
	}
	c := mat.Col(nil, 0, sol)[:n]

	if o.opt.FitIntercept {
		o.intercept = c[0]
		o.coef = c[1:]
	} else {
		o.intercept = 0.0
		o.coef = c
	}
	o.trained = true

	return nil
}

// Predict using the OLS model
func (o *OLSRegression) Predict(x mat.Matrix) ([]float64, error) {
	if o.opt == nil {
		return nil, ErrNoOptions
	}
	if !o.trained {
		return nil, ErrUntrainedModel
	}
	return Predict(x, o.coef, o.intercept)
}

// Score computes the coefficient of determination of the prediction
func (o *OLSRegression) Score(x, y mat.Matrix) (float64, error) {
	if y == nil {
		return 0.0, ErrNoTargetMatrix
	}
	res, err := o.Predict(x)
	if err != nil {
		return 0.0, err
	}

	ym, _ := y.Dims()
	if ym != len(res) {
		return 0.0, fmt.Errorf("design matrix has %d rows and target has %d rows, %w", len(res), ym, ErrTargetLenMismatch)
	}

	ySlice := mat.Col(nil, 0, y)

	return stat.RSquaredFrom(res, ySlice, nil), nil
}

// Intercept returns the computed intercept if FitIntercept is set to true. Defaults to 0.0 if not set.
func (o *OLSRegression) Intercept() float64 {
	return o.intercept
}

// Coef returns a slice of the trained coefficients in the same order of the training feature Matrix by column.
func (o *OLSRegression) Coef() []float64 {
	c := make([]float64, len(o.coef))
	copy(c, o.coef)
	return c
}

// withOnesColumn prepends a constant 1.0 column for the intercept term.
func withOnesColumn(x mat.Matrix) mat.Matrix {
	m, _ := x.Dims()
	ones := make([]float64, m)
	floats.AddConst(1.0, ones)
	onesMx := mat.NewDense(1, m, ones)

	var stacked mat.Dense
	stacked.Stack(onesMx, x.T())
	return stacked.T()
}
