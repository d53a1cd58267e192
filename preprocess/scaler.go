// Package preprocess provides feature and target standardization to zero mean
// and unit variance ahead of gradient descent training.
package preprocess

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrNoData             = errors.New("no data to fit scaler")
	ErrNotFitted          = errors.New("scaler has not been fit")
	ErrFeatureLenMismatch = errors.New("number of features does not match fitted scaler")
)

// StandardScaler standardizes each feature column to zero mean and unit
// variance. Columns with zero variance are shifted to zero mean and otherwise
// passed through. The fitted state serializes so a stored model can scale
// inference inputs the same way as its training inputs.
type StandardScaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// NewStandardScaler returns a scaler ready for fitting.
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{}
}

// Fit computes the per column mean and standard deviation of x.
func (s *StandardScaler) Fit(x mat.Matrix) error {
	if x == nil {
		return ErrNoData
	}
	m, n := x.Dims()
	if m == 0 {
		return ErrNoData
	}

	s.Mean = make([]float64, n)
	s.Std = make([]float64, n)
	col := make([]float64, m)
	for j := 0; j < n; j++ {
		mat.Col(col, j, x)
		s.Mean[j] = stat.Mean(col, nil)
		std := stat.PopStdDev(col, nil)
		if std == 0.0 {
			std = 1.0
		}
		s.Std[j] = std
	}
	return nil
}

// Transform standardizes x column wise with the fitted mean and standard
// deviation leaving the input untouched.
func (s *StandardScaler) Transform(x mat.Matrix) (*mat.Dense, error) {
	if len(s.Std) == 0 {
		return nil, ErrNotFitted
	}
	if x == nil {
		return nil, ErrNoData
	}
	m, n := x.Dims()
	if n != len(s.Std) {
		return nil, fmt.Errorf("got %d features, but scaler was fit with %d, %w", n, len(s.Std), ErrFeatureLenMismatch)
	}

	res := mat.NewDense(m, n, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			res.Set(i, j, (x.At(i, j)-s.Mean[j])/s.Std[j])
		}
	}
	return res, nil
}

// FitTransform fits the scaler on x and returns the standardized copy.
func (s *StandardScaler) FitTransform(x mat.Matrix) (*mat.Dense, error) {
	if err := s.Fit(x); err != nil {
		return nil, err
	}
	return s.Transform(x)
}

// InverseTransform maps standardized values back to the original feature scale.
func (s *StandardScaler) InverseTransform(x mat.Matrix) (*mat.Dense, error) {
	if len(s.Std) == 0 {
		return nil, ErrNotFitted
	}
	if x == nil {
		return nil, ErrNoData
	}
	m, n := x.Dims()
	if n != len(s.Std) {
		return nil, fmt.Errorf("got %d features, but scaler was fit with %d, %w", n, len(s.Std), ErrFeatureLenMismatch)
	}

	res := mat.NewDense(m, n, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			res.Set(i, j, x.At(i, j)*s.Std[j]+s.Mean[j])
		}
	}
	return res, nil
}

// TargetScaler standardizes a target slice to zero mean and unit variance.
type TargetScaler struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// NewTargetScaler returns a target scaler ready for fitting.
func NewTargetScaler() *TargetScaler {
	return &TargetScaler{}
}

// Fit computes the mean and standard deviation of y.
func (s *TargetScaler) Fit(y []float64) error {
	if len(y) == 0 {
		return ErrNoData
	}
	s.Mean = stat.Mean(y, nil)
	s.Std = stat.PopStdDev(y, nil)
	if s.Std == 0.0 {
		s.Std = 1.0
	}
	return nil
}

// Transform standardizes y with the fitted mean and standard deviation.
func (s *TargetScaler) Transform(y []float64) ([]float64, error) {
	if s.Std == 0.0 {
		return nil, ErrNotFitted
	}
	res := make([]float64, len(y))
	for i, v := range y {
		res[i] = (v - s.Mean) / s.Std
	}
	return res, nil
}

// InverseTransform maps standardized values back to the original target scale.
func (s *TargetScaler) InverseTransform(y []float64) ([]float64, error) {
	if s.Std == 0.0 {
		return nil, ErrNotFitted
	}
	res := make([]float64, len(y))
	for i, v := range y {
		res[i] = v*s.Std + s.Mean
	}
	return res, nil
}
