package linearmodel

import (
	"errors"
	"fmt"

	"github.com/aouyang1/go-regressor/floatsunrolled"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrNonPositiveLearningRate = errors.New("learning rate must be greater than zero")
	ErrNegativeIterations      = errors.New("iterations must not be negative")
	ErrNonPositiveReportStride = errors.New("report stride must be greater than zero")
)

// GradientDescentOptions represents input options to train a linear model
// with batch gradient descent
type GradientDescentOptions struct {
	// LearningRate scales each gradient step and must be greater than zero.
	// Expects standardized features for the default to be in the stable range.
	LearningRate float64

	// Iterations is the fixed number of full batch gradient steps to run.
	// There is no early stopping or convergence check.
	Iterations int

	// ReportStride sets how often the training cost is sampled into the cost
	// history. The final iteration is always sampled.
	ReportStride int

	// FitIntercept learns an additive bias term shared by all predictions
	FitIntercept bool
}

// NewDefaultGradientDescentOptions returns a default set of gradient descent options
func NewDefaultGradientDescentOptions() *GradientDescentOptions {
	return &GradientDescentOptions{
		LearningRate: 0.001,
		Iterations:   10000,
		ReportStride: 1000,
		FitIntercept: true,
	}
}

// Validate runs basic validation on gradient descent options
func (o *GradientDescentOptions) Validate() (*GradientDescentOptions, error) {
	if o == nil {
		return NewDefaultGradientDescentOptions(), nil
	}
	if o.LearningRate <= 0 {
		return nil, fmt.Errorf("got learning rate of %f, %w", o.LearningRate, ErrNonPositiveLearningRate)
	}
	if o.Iterations < 0 {
		return nil, fmt.Errorf("got %d iterations, %w", o.Iterations, ErrNegativeIterations)
	}
	if o.ReportStride <= 0 {
		return nil, fmt.Errorf("got report stride of %d, %w", o.ReportStride, ErrNonPositiveReportStride)
	}
	return o, nil
}

// CostSample records the halved mean squared error observed at a single
// training iteration
type CostSample struct {
	Iteration int     `json:"iteration"`
	Cost      float64 `json:"cost"`
}

// GradientDescentRegression minimizes the halved mean squared error with a
// fixed number of full batch gradient descent steps from zero initialized
// parameters. Training is fully deterministic for fixed inputs. A diverging
// fit is not an error, it shows up in the cost history as growing or
// non-finite cost values for the caller to inspect.
type GradientDescentRegression struct {
	opt *GradientDescentOptions

	coef        []float64
	intercept   float64
	costHistory []CostSample
	trained     bool
}

// NewGradientDescentRegression initializes a gradient descent model ready for fitting
func NewGradientDescentRegression(opt *GradientDescentOptions) (*GradientDescentRegression, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &GradientDescentRegression{
		opt: opt,
	}, nil
}

// NewGradientDescentRegressionFromParams initializes a model from previously
// learned parameters. The returned model can predict immediately and does not
// need to be trained again.
func NewGradientDescentRegressionFromParams(opt *GradientDescentOptions, coef []float64, intercept float64) (*GradientDescentRegression, error) {
	g, err := NewGradientDescentRegression(opt)
	if err != nil {
		return nil, err
	}
	g.coef = make([]float64, len(coef))
	copy(g.coef, coef)
	g.intercept = intercept
	g.trained = true
	return g, nil
}

// Fit trains the model on the given training data. Each iteration computes the
// cost gradients over the full training set at the current parameters and steps
// both the coefficients and intercept opposite to them scaled by the learning
// rate. Refitting discards previously learned parameters and cost history.
func (g *GradientDescentRegression) Fit(x, y mat.Matrix) error {
	if g.opt == nil {
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

	rows := rowsOf(x)
	target := mat.Col(nil, 0, y)

	coef := make([]float64, n)
	var intercept float64

	dcoef := make([]float64, n)
	g.costHistory = nil

	for i := 0; i < g.opt.Iterations; i++ {
		dintercept := gradientStep(rows, target, coef, intercept, dcoef)
		floatsunrolled.AddScaled(coef, -g.opt.LearningRate, dcoef)
		if g.opt.FitIntercept {
			intercept -= g.opt.LearningRate * dintercept
		}

		if i%g.opt.ReportStride == 0 || i == g.opt.Iterations-1 {
			g.costHistory = append(g.costHistory, CostSample{
				Iteration: i,
				Cost:      costOf(rows, target, coef, intercept),
			})
		}
	}

	g.coef = coef
	g.intercept = intercept
	g.trained = true
	return nil
}

// Predict using the trained gradient descent model
func (g *GradientDescentRegression) Predict(x mat.Matrix) ([]float64, error) {
	if g.opt == nil {
		return nil, ErrNoOptions
	}
	if !g.trained {
		return nil, ErrUntrainedModel
	}
	return Predict(x, g.coef, g.intercept)
}

// Score computes the coefficient of determination of the prediction
func (g *GradientDescentRegression) Score(x, y mat.Matrix) (float64, error) {
	if y == nil {
		return 0.0, ErrNoTargetMatrix
	}
	res, err := g.Predict(x)
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

// Intercept returns the learned bias if FitIntercept is set to true. Defaults to 0.0 if not set.
func (g *GradientDescentRegression) Intercept() float64 {
	return g.intercept
}

// Coef returns a slice of the trained coefficients in the same order of the training feature Matrix by column.
func (g *GradientDescentRegression) Coef() []float64 {
	c := make([]float64, len(g.coef))
	copy(c, g.coef)
	return c
}

// CostHistory returns the cost samples recorded during the last fit in
// iteration order.
func (g *GradientDescentRegression) CostHistory() []CostSample {
	h := make([]CostSample, len(g.costHistory))
	copy(h, g.costHistory)
	return h
}

// Predict computes the linear prediction coef*row + intercept for every row of x.
func Predict(x mat.Matrix, coef []float64, intercept float64) ([]float64, error) {
	if x == nil {
		return nil, ErrNoDesignMatrix
	}
	m, n := x.Dims()
	if n != len(coef) {
		return nil, fmt.Errorf("got %d features in design matrix, but expected %d, %w", n, len(coef), ErrFeatureLenMismatch)
	}

	res := make([]float64, m)
	row := make([]float64, n)
	for i := 0; i < m; i++ {
		mat.Row(row, i, x)
		res[i] = floatsunrolled.Dot(row, coef) + intercept
	}
	return res, nil
}

// Cost computes the halved mean squared error of the prediction against the
// target, J = sum((yhat-y)^2) / (2*m). A cost of 0 means a perfect fit.
func Cost(x, y mat.Matrix, coef []float64, intercept float64) (float64, error) {
	if y == nil {
		return 0.0, ErrNoTargetMatrix
	}
	res, err := Predict(x, coef, intercept)
	if err != nil {
		return 0.0, err
	}
	if len(res) == 0 {
		return 0.0, ErrNoTrainingRows
	}

	ym, _ := y.Dims()
	if ym != len(res) {
		return 0.0, fmt.Errorf("design matrix has %d rows and target has %d rows, %w", len(res), ym, ErrTargetLenMismatch)
	}

	target := mat.Col(nil, 0, y)
	var sum float64
	for i, p := range res {
		e := p - target[i]
		sum += e * e
	}
	return sum / (2.0 * float64(len(res))), nil
}

// Gradients computes the partial derivatives of Cost with respect to the
// coefficients and the intercept at the given parameters
func Gradients(x, y mat.Matrix, coef []float64, intercept float64) ([]float64, float64, error) {
	if x == nil {
		return nil, 0.0, ErrNoTrainingMatrix
	}
	if y == nil {
		return nil, 0.0, ErrNoTargetMatrix
	}
	m, n := x.Dims()
	if m == 0 {
		return nil, 0.0, ErrNoTrainingRows
	}
	if n != len(coef) {
		return nil, 0.0, fmt.Errorf("got %d features in training matrix, but expected %d, %w", n, len(coef), ErrFeatureLenMismatch)
	}
	ym, _ := y.Dims()
	if ym != m {
		return nil, 0.0, fmt.Errorf("training data has %d rows and target has %d rows, %w", m, ym, ErrTargetLenMismatch)
	}

	rows := rowsOf(x)
	target := mat.Col(nil, 0, y)
	dcoef := make([]float64, n)
	dintercept := gradientStep(rows, target, coef, intercept, dcoef)
	return dcoef, dintercept, nil
}

// Update applies a single gradient descent step returning the next set of
// parameters and leaving the inputs untouched.
func Update(coef []float64, intercept float64, dcoef []float64, dintercept, learningRate float64) ([]float64, float64, error) {
	if len(coef) != len(dcoef) {
		return nil, 0.0, fmt.Errorf("got %d gradients for %d coefficients, %w", len(dcoef), len(coef), ErrFeatureLenMismatch)
	}
	next := make([]float64, len(coef))
	copy(next, coef)
	floatsunrolled.AddScaled(next, -learningRate, dcoef)
	return next, intercept - learningRate*dintercept, nil
}

// gradientStep fills dcoef with the coefficient gradients averaged over all
// rows and returns the intercept gradient.
func gradientStep(rows [][]float64, target, coef []float64, intercept float64, dcoef []float64) float64 {
	for j := range dcoef {
		dcoef[j] = 0.0
	}
	var dintercept float64
	for i, row := range rows {
		residual := floatsunrolled.Dot(row, coef) + intercept - target[i]
		floatsunrolled.AddScaled(dcoef, residual, row)
		dintercept += residual
	}
	m := float64(len(rows))
	floatsunrolled.Scale(1.0/m, dcoef)
	return dintercept / m
}

func costOf(rows [][]float64, target, coef []float64, intercept float64) float64 {
	var sum float64
	for i, row := range rows {
		residual := floatsunrolled.Dot(row, coef) + intercept - target[i]
		sum += residual * residual
	}
	return sum / (2.0 * float64(len(rows)))
}

func rowsOf(x mat.Matrix) [][]float64 {
	m, _ := x.Dims()
	rows := make([][]float64, m)
	for i := 0; i < m; i++ {
		rows[i] = mat.Row(nil, i, x)
	}
	return rows
}
