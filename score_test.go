package regressor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScores(t *testing.T) {
	predicted := []float64{1, 2, 3, 4}
	actual := []float64{1, 2, 3, 8}

	scores, err := NewScores(predicted, actual)
	require.Nil(t, err)

	assert.InDelta(t, 1.0, scores.MAE, 1e-12)
	assert.InDelta(t, 4.0, scores.MSE, 1e-12)
	assert.InDelta(t, 2.0, scores.RMSE, 1e-12)
	assert.Less(t, scores.R2, 1.0)
}

func TestScoresPerfectFit(t *testing.T) {
	predicted := []float64{1, 2, 3}
	actual := []float64{1, 2, 3}

	scores, err := NewScores(predicted, actual)
	require.Nil(t, err)

	assert.Equal(t, 0.0, scores.MAE)
	assert.Equal(t, 0.0, scores.MSE)
	assert.Equal(t, 0.0, scores.RMSE)
	assert.InDelta(t, 1.0, scores.R2, 1e-12)
}

func TestScoresSkipNaN(t *testing.T) {
	predicted := []float64{1, math.NaN(), 3, 4}
	actual := []float64{1, 2, math.NaN(), 4}

	mae, err := MAE(predicted, actual)
	require.Nil(t, err)
	assert.False(t, math.IsNaN(mae))

	mse, err := MSE(predicted, actual)
	require.Nil(t, err)
	assert.False(t, math.IsNaN(mse))

	r2, err := RSquared(predicted, actual)
	require.Nil(t, err)
	assert.False(t, math.IsNaN(r2))
}

func TestScoresLenMismatch(t *testing.T) {
	_, err := NewScores([]float64{1, 2}, []float64{1})
	require.ErrorIs(t, err, ErrResLenMismatch)

	_, err = MAE([]float64{1}, []float64{1, 2})
	require.ErrorIs(t, err, ErrResLenMismatch)

	_, err = MSE([]float64{1}, []float64{1, 2})
	require.ErrorIs(t, err, ErrResLenMismatch)

	_, err = RSquared([]float64{1}, []float64{1, 2})
	require.ErrorIs(t, err, ErrResLenMismatch)
}
