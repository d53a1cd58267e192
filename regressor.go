// Package regressor trains an ordinary least squares linear model with batch
// gradient descent on a tabular dataset. Fitting splits the rows into a
// training and held out test partition, standardizes with the training rows
// only, trains the gradient descent model, and scores it against a closed
// form OLS reference fit on the same rows.
package regressor

import (
	"errors"
	"fmt"
	"io"

	"github.com/aouyang1/go-regressor/dataset"
	"github.com/aouyang1/go-regressor/linearmodel"
	matutil "github.com/aouyang1/go-regressor/mat"
	"github.com/aouyang1/go-regressor/preprocess"
	"github.com/aouyang1/go-regressor/stats"
	"github.com/go-echarts/go-echarts/v2/components"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrNoOptionsInModel = errors.New("no options set in model")
	ErrUntrainedModel   = errors.New("regressor has not been fit")
)

// Regressor fits a linear regression model with gradient descent and can be
// used to generate predictions on new feature rows
type Regressor struct {
	opt *Options

	model     *linearmodel.GradientDescentRegression
	reference *linearmodel.OLSRegression

	featureScaler *preprocess.StandardScaler
	targetScaler  *preprocess.TargetScaler

	fitResults *Results
}

// New creates a new instance of a Regressor using the provided options. If no
// options are provided a default is used.
func New(opt *Options) (*Regressor, error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}

	model, err := linearmodel.NewGradientDescentRegression(opt.TrainingOptions)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize gradient descent model, %w", err)
	}
	reference, err := linearmodel.NewOLSRegression(nil)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize reference model, %w", err)
	}

	return &Regressor{
		opt:       opt,
		model:     model,
		reference: reference,
	}, nil
}

// NewFromModel creates a new instance of Regressor from a pre-existing model.
// This should be generated from a previous regressor call to Model() and can
// be used for immediate predictions skipping the training step.
func NewFromModel(model Model) (*Regressor, error) {
	if model.Options == nil {
		return nil, ErrNoOptionsInModel
	}
	if model.Weights.Coef == nil {
		return nil, ErrNoWeightsInModel
	}

	gd, err := linearmodel.NewGradientDescentRegressionFromParams(
		model.Options.TrainingOptions,
		model.Weights.Coef,
		model.Weights.Intercept,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load gradient descent model, %w", err)
	}

	r := &Regressor{
		opt:           model.Options,
		model:         gd,
		featureScaler: model.FeatureScaler,
		targetScaler:  model.TargetScaler,
	}
	if model.Scores != nil || model.CostHistory != nil {
		r.fitResults = &Results{
			Scores:          model.Scores,
			ReferenceScores: model.ReferenceScores,
			CostHistory:     model.CostHistory,
		}
	}
	return r, nil
}

// Fit uses the input feature table and target slice to train the model
func (r *Regressor) Fit(x [][]float64, y []float64) error {
	ds, err := dataset.New(x, y)
	if err != nil {
		return fmt.Errorf("unable to create training dataset, %w", err)
	}

	ds, err = r.removeOutliers(ds)
	if err != nil {
		return err
	}

	train, test, err := ds.Split(r.opt.TestRatio, r.opt.Seed)
	if err != nil {
		return fmt.Errorf("unable to split dataset, %w", err)
	}

	trainX, testX, err := r.scaleFeatures(train, test)
	if err != nil {
		return err
	}
	trainY, err := r.scaleTarget(train)
	if err != nil {
		return err
	}

	if err := r.model.Fit(trainX, trainY); err != nil {
		return fmt.Errorf("unable to fit gradient descent model, %w", err)
	}
	if err := r.reference.Fit(trainX, trainY); err != nil {
		return fmt.Errorf("unable to fit reference model, %w", err)
	}

	return r.evaluate(test, testX)
}

func (r *Regressor) removeOutliers(ds *dataset.Dataset) (*dataset.Dataset, error) {
	if r.opt.OutlierOptions == nil {
		return ds, nil
	}

	for pass := 0; pass < r.opt.OutlierOptions.NumPasses; pass++ {
		outlierIdxs := stats.DetectOutliers(
			ds.Y,
			r.opt.OutlierOptions.LowerPercentile,
			r.opt.OutlierOptions.UpperPercentile,
			r.opt.OutlierOptions.TukeyFactor,
		)
		if len(outlierIdxs) == 0 {
			break
		}
		outlierSet := make(map[int]struct{})
		for _, idx := range outlierIdxs {
			outlierSet[idx] = struct{}{}
		}

		m, _ := ds.Shape()
		keep := make([]int, 0, m-len(outlierIdxs))
		for i := 0; i < m; i++ {
			if _, exists := outlierSet[i]; exists {
				continue
			}
			keep = append(keep, i)
		}
		next, err := ds.Select(keep)
		if err != nil {
			return nil, fmt.Errorf("unable to remove outlier rows, %w", err)
		}
		ds = next
	}
	return ds, nil
}

func (r *Regressor) scaleFeatures(train, test *dataset.Dataset) (mat.Matrix, mat.Matrix, error) {
	if !r.opt.ScaleFeatures {
		r.featureScaler = nil
		return train.X, test.X, nil
	}

	r.featureScaler = preprocess.NewStandardScaler()
	trainX, err := r.featureScaler.FitTransform(train.X)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to standardize training features, %w", err)
	}
	testX, err := r.featureScaler.Transform(test.X)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to standardize test features, %w", err)
	}
	return trainX, testX, nil
}

func (r *Regressor) scaleTarget(train *dataset.Dataset) (mat.Matrix, error) {
	if !r.opt.ScaleTarget {
		r.targetScaler = nil
		return train.TargetMatrix(), nil
	}

	r.targetScaler = preprocess.NewTargetScaler()
	if err := r.targetScaler.Fit(train.Y); err != nil {
		return nil, fmt.Errorf("unable to standardize training target, %w", err)
	}
	scaled, err := r.targetScaler.Transform(train.Y)
	if err != nil {
		return nil, fmt.Errorf("unable to standardize training target, %w", err)
	}
	return matutil.NewTargetVector(scaled)
}

// evaluate scores both models on the held out partition in the original
// target units.
func (r *Regressor) evaluate(test *dataset.Dataset, testX mat.Matrix) error {
	predicted, err := r.predictScaled(r.model, testX)
	if err != nil {
		return fmt.Errorf("unable to predict test partition, %w", err)
	}
	scores, err := NewScores(predicted, test.Y)
	if err != nil {
		return fmt.Errorf("unable to score test partition, %w", err)
	}

	refPredicted, err := r.predictScaled(r.reference, testX)
	if err != nil {
		return fmt.Errorf("unable to predict test partition with reference model, %w", err)
	}
	refScores, err := NewScores(refPredicted, test.Y)
	if err != nil {
		return fmt.Errorf("unable to score reference model, %w", err)
	}

	r.fitResults = &Results{
		Predicted:       predicted,
		Actual:          test.Y,
		Scores:          scores,
		ReferenceScores: refScores,
		CostHistory:     r.model.CostHistory(),
	}
	return nil
}

// predictScaled runs a model on already standardized features and maps the
// predictions back to original target units.
func (r *Regressor) predictScaled(model linearmodel.Model, x mat.Matrix) ([]float64, error) {
	predicted, err := model.Predict(x)
	if err != nil {
		return nil, err
	}
	if r.targetScaler == nil {
		return predicted, nil
	}
	return r.targetScaler.InverseTransform(predicted)
}

// Predict generates predictions for the given feature rows applying the same
// standardization as training
func (r *Regressor) Predict(x [][]float64) ([]float64, error) {
	xm, err := matutil.NewDenseFromTable(x)
	if err != nil {
		return nil, fmt.Errorf("unable to build design matrix, %w", err)
	}

	var features mat.Matrix = xm
	if r.featureScaler != nil {
		features, err = r.featureScaler.Transform(xm)
		if err != nil {
			return nil, fmt.Errorf("unable to standardize design matrix, %w", err)
		}
	}
	return r.predictScaled(r.model, features)
}

// Results returns the evaluation of the last fit
func (r *Regressor) Results() (*Results, error) {
	if r.fitResults == nil {
		return nil, ErrUntrainedModel
	}
	return r.fitResults, nil
}

// Intercept returns the learned bias of the gradient descent model
func (r *Regressor) Intercept() float64 {
	return r.model.Intercept()
}

// Coef returns the learned coefficients of the gradient descent model
func (r *Regressor) Coef() []float64 {
	return r.model.Coef()
}

// Diagnostics computes the variance inflation factor per feature column of
// the input table flagging collinear features
func (r *Regressor) Diagnostics(x [][]float64) ([]float64, error) {
	xm, err := matutil.NewDenseFromTable(x)
	if err != nil {
		return nil, fmt.Errorf("unable to build feature matrix, %w", err)
	}
	return stats.VarianceInflationFactor(xm)
}

// Model generates a serializeable representation of the fit pipeline. This
// can be used to initialize a new Regressor for immediate predictions
// skipping the training step.
func (r *Regressor) Model() (Model, error) {
	coef := r.model.Coef()
	if len(coef) == 0 {
		return Model{}, ErrUntrainedModel
	}

	m := Model{
		Options:       r.opt,
		FeatureScaler: r.featureScaler,
		TargetScaler:  r.targetScaler,
		Weights: Weights{
			Coef:      coef,
			Intercept: r.model.Intercept(),
		},
	}
	if r.fitResults != nil {
		m.Scores = r.fitResults.Scores
		m.ReferenceScores = r.fitResults.ReferenceScores
		m.CostHistory = r.fitResults.CostHistory
	}
	return m, nil
}

// PlotFit uses the Apache Echarts library to generate an html page showing
// the training cost trajectory and the held out predictions against actuals
func (r *Regressor) PlotFit(w io.Writer) error {
	if r.fitResults == nil {
		return ErrUntrainedModel
	}

	page := components.NewPage()
	page.AddCharts(
		LineCostHistory(r.fitResults.CostHistory),
		LinePredictions(r.fitResults.Actual, r.fitResults.Predicted),
	)
	return page.Render(w)
}
