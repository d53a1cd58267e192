package regressor

import "github.com/aouyang1/go-regressor/linearmodel"

// OutlierOptions controls the iterative removal of training rows whose target
// value falls outside the Tukey fences before splitting and training.
type OutlierOptions struct {
	NumPasses       int     `json:"num_passes"`
	UpperPercentile float64 `json:"upper_percentile"`
	LowerPercentile float64 `json:"lower_percentile"`
	TukeyFactor     float64 `json:"tukey_factor"`
}

// NewOutlierOptions generates a default set of outlier options
func NewOutlierOptions() *OutlierOptions {
	return &OutlierOptions{
		NumPasses:       3,
		UpperPercentile: 0.9,
		LowerPercentile: 0.1,
		TukeyFactor:     1.0,
	}
}

// Options configures the full training pipeline around the gradient descent
// model. A nil OutlierOptions disables outlier removal.
type Options struct {
	TrainingOptions *linearmodel.GradientDescentOptions `json:"training_options"`
	OutlierOptions  *OutlierOptions                     `json:"outlier_options,omitempty"`

	// TestRatio is the fraction of rows held out from training for evaluation
	TestRatio float64 `json:"test_ratio"`

	// Seed fixes the train/test partition making a fit reproducible
	Seed uint64 `json:"seed"`

	ScaleFeatures bool `json:"scale_features"`
	ScaleTarget   bool `json:"scale_target"`
}

// NewDefaultOptions generates a default set of pipeline options
func NewDefaultOptions() *Options {
	return &Options{
		TrainingOptions: linearmodel.NewDefaultGradientDescentOptions(),
		TestRatio:       0.2,
		Seed:            42,
		ScaleFeatures:   true,
		ScaleTarget:     true,
	}
}
