package linearmodel

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func testModel(t *testing.T, model Model, x, y mat.Matrix, intercept float64, coef []float64, tol float64) {
	err := model.Fit(x, y)
	require.Nil(t, err)

	assert.InDelta(t, intercept, model.Intercept(), tol, "intercept")

	c := model.Coef()
	assert.InDeltaSlice(t, coef, c, tol, "coefficients")

	r2, err := model.Score(x, y)
	require.Nil(t, err)
	assert.InDelta(t, 1.0, r2, tol, "score")
}

// generateStandardizedData builds an m by n standard normal feature matrix
// and a noiseless linear target from the given parameters.
func generateStandardizedData(m, n int, coef []float64, intercept float64, seed uint64) (*mat.Dense, *mat.Dense) {
	rnd := rand.New(rand.NewPCG(seed, 0))
	x := mat.NewDense(m, n, nil)
	y := mat.NewDense(m, 1, nil)
	for i := 0; i < m; i++ {
		var target float64
		for j := 0; j < n; j++ {
			val := rnd.NormFloat64()
			x.Set(i, j, val)
			target += coef[j] * val
		}
		y.Set(i, 0, target+intercept)
	}
	return x, y
}
