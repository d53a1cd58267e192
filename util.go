package regressor

import (
	"fmt"
	"math"

	"github.com/aouyang1/go-regressor/linearmodel"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LineCostHistory generates an echart line chart of the training cost
// trajectory sampled during gradient descent. A diverging run shows up here
// as a growing curve.
func LineCostHistory(history []linearmodel.CostSample) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Training Cost",
			},
		),
	)

	iterations := make([]string, 0, len(history))
	lineData := make([]opts.LineData, 0, len(history))
	for _, sample := range history {
		if math.IsNaN(sample.Cost) {
			continue
		}
		iterations = append(iterations, fmt.Sprintf("%d", sample.Iteration))
		lineData = append(lineData, opts.LineData{Value: sample.Cost})
	}

	line.SetXAxis(iterations).
		AddSeries("Cost", lineData)
	return line
}

// LinePredictions generates an echart line chart plotting the held out
// actual values along with the model predictions by sample index.
func LinePredictions(actual, predicted []float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Regression Fit",
			},
		),
	)

	n := len(actual)
	if len(predicted) < n {
		n = len(predicted)
	}

	idx := make([]string, 0, n)
	lineDataActual := make([]opts.LineData, 0, n)
	lineDataPredicted := make([]opts.LineData, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		idx = append(idx, fmt.Sprintf("%d", i))
		lineDataActual = append(lineDataActual, opts.LineData{Value: actual[i]})
		lineDataPredicted = append(lineDataPredicted, opts.LineData{Value: predicted[i]})
	}

	line.SetXAxis(idx).
		AddSeries("Actual", lineDataActual).
		AddSeries("Predicted", lineDataPredicted)
	return line
}
