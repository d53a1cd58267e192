package dataset

import (
	"math/rand/v2"

	"github.com/aouyang1/go-regressor/floatsunrolled"
)

// GenerateTabular returns an m by n feature table of standard normal draws.
// The same seed always generates the same table.
func GenerateTabular(m, n int, seed uint64) [][]float64 {
	rnd := rand.New(rand.NewPCG(seed, 0))
	x := make([][]float64, m)
	for i := 0; i < m; i++ {
		row := make([]float64, n)
		for j := 0; j < n; j++ {
			row[j] = rnd.NormFloat64()
		}
		x[i] = row
	}
	return x
}

// GenerateTarget computes the linear target coef*row + intercept per table row
// with additive gaussian noise scaled by noiseScale.
func GenerateTarget(x [][]float64, coef []float64, intercept, noiseScale float64, seed uint64) []float64 {
	rnd := rand.New(rand.NewPCG(seed, 0))
	y := make([]float64, len(x))
	for i, row := range x {
		y[i] = floatsunrolled.Dot(row, coef) + intercept + rnd.NormFloat64()*noiseScale
	}
	return y
}
