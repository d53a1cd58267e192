package dataset

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNew(t *testing.T) {
	testData := map[string]struct {
		x   [][]float64
		y   []float64
		err error
	}{
		"valid": {
			[][]float64{{1, 2}, {3, 4}},
			[]float64{1, 2},
			nil,
		},
		"no targets": {
			[][]float64{{1, 2}},
			nil,
			ErrNoTrainingData,
		},
		"row count mismatch": {
			[][]float64{{1, 2}},
			[]float64{1, 2},
			ErrDatasetLenMismatch,
		},
		"ragged rows": {
			[][]float64{{1, 2}, {3}},
			[]float64{1, 2},
			nil, // wrapped column mismatch from matrix construction
		},
	}
	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			ds, err := New(td.x, td.y)
			if name == "ragged rows" {
				require.NotNil(t, err)
				return
			}
			if td.err != nil {
				require.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)

			m, n := ds.Shape()
			assert.Equal(t, len(td.x), m)
			assert.Equal(t, len(td.x[0]), n)
		})
	}
}

func TestDatasetImmutability(t *testing.T) {
	x := [][]float64{{1, 2}, {3, 4}}
	y := []float64{5, 6}
	ds, err := New(x, y)
	require.Nil(t, err)

	// mutating the inputs does not affect the dataset
	x[0][0] = 100
	y[0] = 100
	assert.Equal(t, 1.0, ds.X.At(0, 0))
	assert.Equal(t, 5.0, ds.Y[0])

	cp := ds.Copy()
	cp.Y[0] = -1
	cp.X.Set(0, 0, -1)
	assert.Equal(t, 1.0, ds.X.At(0, 0))
	assert.Equal(t, 5.0, ds.Y[0])
}

func TestTargetMatrix(t *testing.T) {
	ds, err := New([][]float64{{1}, {2}, {3}}, []float64{4, 5, 6})
	require.Nil(t, err)

	ym := ds.TargetMatrix()
	m, n := ym.Dims()
	assert.Equal(t, 3, m)
	assert.Equal(t, 1, n)
	assert.Equal(t, []float64{4, 5, 6}, mat.Col(nil, 0, ym))
}

func TestSelect(t *testing.T) {
	ds, err := New([][]float64{{1, 10}, {2, 20}, {3, 30}}, []float64{1, 2, 3})
	require.Nil(t, err)

	sub, err := ds.Select([]int{2, 0})
	require.Nil(t, err)
	assert.Equal(t, []float64{3, 1}, sub.Y)
	assert.Equal(t, []float64{3, 30}, mat.Row(nil, 0, sub.X))
	assert.Equal(t, []float64{1, 10}, mat.Row(nil, 1, sub.X))

	_, err = ds.Select(nil)
	require.ErrorIs(t, err, ErrNoTrainingData)
}

func TestSplit(t *testing.T) {
	m := 100
	x := make([][]float64, m)
	y := make([]float64, m)
	for i := 0; i < m; i++ {
		x[i] = []float64{float64(i)}
		y[i] = float64(i)
	}
	ds, err := New(x, y)
	require.Nil(t, err)

	train, test, err := ds.Split(0.2, 42)
	require.Nil(t, err)

	trainM, _ := train.Shape()
	testM, _ := test.Shape()
	assert.Equal(t, 80, trainM)
	assert.Equal(t, 20, testM)

	// partition is disjoint and exhaustive
	seen := make([]float64, 0, m)
	seen = append(seen, train.Y...)
	seen = append(seen, test.Y...)
	sort.Float64s(seen)
	assert.Equal(t, y, seen)

	// same seed reproduces the same partition
	train2, test2, err := ds.Split(0.2, 42)
	require.Nil(t, err)
	assert.Equal(t, train.Y, train2.Y)
	assert.Equal(t, test.Y, test2.Y)

	// a different seed produces a different partition
	_, test3, err := ds.Split(0.2, 43)
	require.Nil(t, err)
	assert.NotEqual(t, test.Y, test3.Y)
}

func TestSplitErrors(t *testing.T) {
	ds, err := New([][]float64{{1}, {2}}, []float64{1, 2})
	require.Nil(t, err)

	_, _, err = ds.Split(0.0, 42)
	require.ErrorIs(t, err, ErrInvalidTestRatio)

	_, _, err = ds.Split(1.0, 42)
	require.ErrorIs(t, err, ErrInvalidTestRatio)

	// 2 samples at a 0.1 test ratio leaves an empty test partition
	_, _, err = ds.Split(0.1, 42)
	require.ErrorIs(t, err, ErrInsufficientSamples)
}

func TestFromCSV(t *testing.T) {
	csvData := `age,bmi,bp,target
0.05,0.06,0.02,151
-0.04,-0.05,-0.03,75
0.08,0.04,0.01,141
`
	ds, err := FromCSV(strings.NewReader(csvData), 3)
	require.Nil(t, err)

	m, n := ds.Shape()
	assert.Equal(t, 3, m)
	assert.Equal(t, 3, n)
	assert.Equal(t, []float64{151, 75, 141}, ds.Y)
	assert.Equal(t, []float64{0.05, 0.06, 0.02}, mat.Row(nil, 0, ds.X))
}

func TestFromCSVNoHeader(t *testing.T) {
	csvData := `151,0.05,0.06
75,-0.04,-0.05
`
	ds, err := FromCSV(strings.NewReader(csvData), 0)
	require.Nil(t, err)

	m, n := ds.Shape()
	assert.Equal(t, 2, m)
	assert.Equal(t, 2, n)
	assert.Equal(t, []float64{151, 75}, ds.Y)
}

func TestFromCSVErrors(t *testing.T) {
	_, err := FromCSV(strings.NewReader(""), 0)
	require.ErrorIs(t, err, ErrNoTrainingData)

	_, err = FromCSV(strings.NewReader("1,2\n3,4\n"), 5)
	require.ErrorIs(t, err, ErrTargetColOutOfBounds)

	_, err = FromCSV(strings.NewReader("1,2\n3,oops\n"), 0)
	require.NotNil(t, err)
}

func TestGenerateTabular(t *testing.T) {
	x := GenerateTabular(50, 4, 7)
	require.Len(t, x, 50)
	require.Len(t, x[0], 4)

	// deterministic for a fixed seed
	assert.Equal(t, x, GenerateTabular(50, 4, 7))
	assert.NotEqual(t, x, GenerateTabular(50, 4, 8))
}

func TestGenerateTarget(t *testing.T) {
	x := [][]float64{
		{1, 2},
		{3, 4},
	}
	coef := []float64{2, -1}

	// zero noise gives the exact linear target
	y := GenerateTarget(x, coef, 0.5, 0.0, 7)
	assert.InDeltaSlice(t, []float64{0.5, 2.5}, y, 1e-12)

	noisy := GenerateTarget(x, coef, 0.5, 1.0, 7)
	assert.Equal(t, noisy, GenerateTarget(x, coef, 0.5, 1.0, 7))
	assert.NotEqual(t, y, noisy)
}
