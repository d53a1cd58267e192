package preprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

func TestStandardScaler(t *testing.T) {
	x := mat.NewDense(4, 2, []float64{
		1, 100,
		2, 200,
		3, 300,
		4, 400,
	})

	scaler := NewStandardScaler()
	scaled, err := scaler.FitTransform(x)
	require.Nil(t, err)

	m, n := scaled.Dims()
	require.Equal(t, 4, m)
	require.Equal(t, 2, n)

	col := make([]float64, m)
	for j := 0; j < n; j++ {
		mat.Col(col, j, scaled)
		assert.InDelta(t, 0.0, stat.Mean(col, nil), 1e-12, "column %d mean", j)
		assert.InDelta(t, 1.0, stat.PopStdDev(col, nil), 1e-12, "column %d stddev", j)
	}

	// input is untouched
	assert.Equal(t, 1.0, x.At(0, 0))

	restored, err := scaler.InverseTransform(scaled)
	require.Nil(t, err)
	assert.InDeltaSlice(t, mat.Row(nil, 0, x), mat.Row(nil, 0, restored), 1e-12)
	assert.InDeltaSlice(t, mat.Row(nil, 3, x), mat.Row(nil, 3, restored), 1e-12)
}

func TestStandardScalerZeroVariance(t *testing.T) {
	x := mat.NewDense(3, 2, []float64{
		5, 1,
		5, 2,
		5, 3,
	})

	scaler := NewStandardScaler()
	scaled, err := scaler.FitTransform(x)
	require.Nil(t, err)

	// constant column is only shifted to zero mean
	assert.Equal(t, []float64{0, 0, 0}, mat.Col(nil, 0, scaled))
}

func TestStandardScalerErrors(t *testing.T) {
	scaler := NewStandardScaler()

	_, err := scaler.Transform(mat.NewDense(1, 1, []float64{1}))
	require.ErrorIs(t, err, ErrNotFitted)

	require.ErrorIs(t, scaler.Fit(nil), ErrNoData)

	require.Nil(t, scaler.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})))
	_, err = scaler.Transform(mat.NewDense(1, 3, []float64{1, 2, 3}))
	require.ErrorIs(t, err, ErrFeatureLenMismatch)

	_, err = scaler.InverseTransform(mat.NewDense(1, 3, []float64{1, 2, 3}))
	require.ErrorIs(t, err, ErrFeatureLenMismatch)
}

func TestTargetScaler(t *testing.T) {
	y := []float64{10, 20, 30, 40}

	scaler := NewTargetScaler()
	require.Nil(t, scaler.Fit(y))

	scaled, err := scaler.Transform(y)
	require.Nil(t, err)
	assert.InDelta(t, 0.0, stat.Mean(scaled, nil), 1e-12)
	assert.InDelta(t, 1.0, stat.PopStdDev(scaled, nil), 1e-12)

	restored, err := scaler.InverseTransform(scaled)
	require.Nil(t, err)
	assert.InDeltaSlice(t, y, restored, 1e-12)
}

func TestTargetScalerErrors(t *testing.T) {
	scaler := NewTargetScaler()

	_, err := scaler.Transform([]float64{1})
	require.ErrorIs(t, err, ErrNotFitted)

	require.ErrorIs(t, scaler.Fit(nil), ErrNoData)
}
