// Package dataset provides the tabular dataset container used for training
// along with CSV loading and deterministic train/test splitting.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"

	matutil "github.com/aouyang1/go-regressor/mat"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrNoTrainingData       = errors.New("no training data")
	ErrDatasetLenMismatch   = errors.New("feature matrix has a different number of rows than targets")
	ErrInvalidTestRatio     = errors.New("test ratio must be between 0 and 1 exclusive")
	ErrInsufficientSamples  = errors.New("insufficient samples for the requested split")
	ErrTargetColOutOfBounds = errors.New("target column is out of bounds")
)

// Dataset represents a tabular dataset storing a feature matrix with one row
// per observation and an index aligned target slice. Both must have the same
// number of rows.
type Dataset struct {
	X *mat.Dense
	Y []float64
}

// New returns an instance of a Dataset given a row ordered feature table and
// a target slice.
func New(x [][]float64, y []float64) (*Dataset, error) {
	if len(y) == 0 {
		return nil, ErrNoTrainingData
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf(
			"feature matrix has %d rows, but targets has a length of %d, %w",
			len(x), len(y), ErrDatasetLenMismatch,
		)
	}

	xm, err := matutil.NewDenseFromTable(x)
	if err != nil {
		return nil, fmt.Errorf("unable to build feature matrix, %w", err)
	}

	yCopy := make([]float64, len(y))
	copy(yCopy, y)
	return &Dataset{
		X: xm,
		Y: yCopy,
	}, nil
}

// Copy returns a deep copy of the dataset.
func (d *Dataset) Copy() *Dataset {
	x := new(mat.Dense)
	x.CloneFrom(d.X)
	y := make([]float64, len(d.Y))
	copy(y, d.Y)
	return &Dataset{
		X: x,
		Y: y,
	}
}

// Shape returns the number of observations and features.
func (d *Dataset) Shape() (int, int) {
	return d.X.Dims()
}

// TargetMatrix returns the targets as a single column matrix for model fitting.
func (d *Dataset) TargetMatrix() *mat.Dense {
	y, err := matutil.NewTargetVector(d.Y)
	if err != nil {
		// New rejects empty datasets so this is unreachable for a
		// constructed Dataset
		panic(err)
	}
	return y
}

// Select returns a new dataset containing the given rows in order.
func (d *Dataset) Select(rows []int) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, ErrNoTrainingData
	}
	_, n := d.X.Dims()
	x := mat.NewDense(len(rows), n, nil)
	y := make([]float64, len(rows))
	for i, r := range rows {
		x.SetRow(i, d.X.RawRowView(r))
		y[i] = d.Y[r]
	}
	return &Dataset{
		X: x,
		Y: y,
	}, nil
}

// Split partitions the dataset rows into a training and test dataset using a
// shuffled but seeded partition. The same seed always produces the same
// disjoint split.
func (d *Dataset) Split(testRatio float64, seed uint64) (*Dataset, *Dataset, error) {
	if testRatio <= 0.0 || testRatio >= 1.0 {
		return nil, nil, fmt.Errorf("got test ratio of %f, %w", testRatio, ErrInvalidTestRatio)
	}
	m, _ := d.X.Dims()

	numTest := int(float64(m) * testRatio)
	if numTest == 0 || numTest == m {
		return nil, nil, fmt.Errorf("%d samples with test ratio of %f, %w", m, testRatio, ErrInsufficientSamples)
	}

	rnd := rand.New(rand.NewPCG(seed, 0))
	perm := rnd.Perm(m)

	test, err := d.Select(perm[:numTest])
	if err != nil {
		return nil, nil, err
	}
	train, err := d.Select(perm[numTest:])
	if err != nil {
		return nil, nil, err
	}
	return train, test, nil
}

// FromCSV reads a dataset from CSV data using the given column as the target
// and all remaining columns as features. A single leading header row is
// skipped if its target column does not parse as a float.
func FromCSV(r io.Reader, targetCol int) (*Dataset, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unable to read csv data, %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoTrainingData
	}
	if targetCol < 0 || targetCol >= len(records[0]) {
		return nil, fmt.Errorf("target column %d with %d columns, %w", targetCol, len(records[0]), ErrTargetColOutOfBounds)
	}

	if _, err := strconv.ParseFloat(records[0][targetCol], 64); err != nil {
		records = records[1:]
	}

	x := make([][]float64, 0, len(records))
	y := make([]float64, 0, len(records))
	for i, record := range records {
		row := make([]float64, 0, len(record)-1)
		for j, field := range record {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("unable to parse row %d column %d, %w", i, j, err)
			}
			if j == targetCol {
				y = append(y, val)
				continue
			}
			row = append(row, val)
		}
		x = append(x, row)
	}
	return New(x, y)
}
