package regressor

import (
	"os"
	"testing"

	"github.com/goccy/go-json"
	"github.com/pkg/profile"
)

var benchPredictRes []float64

func BenchmarkTrainToModel(b *testing.B) {
	x, y := generateExampleData()

	var r *Regressor
	var err error

	b.ResetTimer()
	for b.Loop() {
		r, err = New(nil)
		if err != nil {
			panic(err)
		}

		if err := r.Fit(x, y); err != nil {
			panic(err)
		}
	}

	m, err := r.Model()
	if err != nil {
		panic(err)
	}

	bytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		panic(err)
	}

	if err := os.WriteFile("benchmark_model.json", bytes, 0o644); err != nil {
		panic(err)
	}
}

func BenchmarkPredictFromModel(b *testing.B) {
	bytes, err := os.ReadFile("benchmark_model.json")
	if err != nil {
		panic(err)
	}

	var model Model
	if err := json.Unmarshal(bytes, &model); err != nil {
		panic(err)
	}
	r, err := NewFromModel(model)
	if err != nil {
		panic(err)
	}

	x, _ := generateExampleData()
	input := x[:2]

	b.ResetTimer()
	defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	for b.Loop() {
		benchPredictRes, err = r.Predict(input)
		if err != nil {
			panic(err)
		}
	}
}
