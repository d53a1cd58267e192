// Package stats provides dataset diagnostics used around model training,
// outlier detection on the target and collinearity checks on the features.
package stats

import (
	"errors"
	"math"
	"sort"

	"github.com/aouyang1/go-regressor/linearmodel"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrMinimumFeatures = errors.New("need at least 2 features to compute VIF")
	ErrFeatureLen      = errors.New("must have at least 2 points per feature")
)

// DetectOutliers returns the indexes of values outside the Tukey fences
// derived from the given lower and upper percentiles widened by the inner
// range times the tukey factor.
func DetectOutliers(y []float64, lowerPerc, upperPerc, tukeyFactor float64) []int {
	lowerPerc = math.Max(lowerPerc, 0.0)
	upperPerc = math.Min(upperPerc, 1.0)
	tukeyFactor = math.Max(tukeyFactor, 0.0)

	yCopy := make([]float64, len(y))
	copy(yCopy, y)
	sort.Float64s(yCopy)
	lowerIdx := int(math.Floor(float64(len(yCopy)-1) * lowerPerc))
	upperIdx := int(math.Ceil(float64(len(yCopy)-1) * upperPerc))

	lower := yCopy[lowerIdx]
	upper := yCopy[upperIdx]
	innerRange := upper - lower
	lower -= innerRange * tukeyFactor
	upper += innerRange * tukeyFactor

	var outlierIdx []int
	for i := 0; i < len(y); i++ {
		if y[i] >= upper || y[i] <= lower {
			outlierIdx = append(outlierIdx, i)
		}
	}
	return outlierIdx
}

// VarianceInflationFactor computes the VIF per feature column by regressing
// each column against all others with OLS, 1/(1-R2). A value near 1 means the
// column is independent of the rest while large values flag collinear columns
// that slow or destabilize a gradient descent fit.
func VarianceInflationFactor(x mat.Matrix) ([]float64, error) {
	m, n := x.Dims()
	if n < 2 {
		return nil, ErrMinimumFeatures
	}
	if m < 2 {
		return nil, ErrFeatureLen
	}

	vif := make([]float64, n)
	others := mat.NewDense(m, n-1, nil)
	col := make([]float64, m)
	for j := 0; j < n; j++ {
		c := 0
		for k := 0; k < n; k++ {
			if k == j {
				continue
			}
			mat.Col(col, k, x)
			others.SetCol(c, col)
			c++
		}
		mat.Col(col, j, x)
		target := mat.NewDense(m, 1, nil)
		target.SetCol(0, col)

		model, err := linearmodel.NewOLSRegression(nil)
		if err != nil {
			return nil, err
		}
		if err := model.Fit(others, target); err != nil {
			return nil, err
		}
		r2, err := model.Score(others, target)
		if err != nil {
			return nil, err
		}

		if r2 >= 1.0 {
			vif[j] = math.Inf(1)
			continue
		}
		vif[j] = 1.0 / (1.0 - r2)
	}
	return vif, nil
}
