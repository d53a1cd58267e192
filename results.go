package regressor

import "github.com/aouyang1/go-regressor/linearmodel"

// Results stores the held out evaluation of a fit along with the recorded
// cost trajectory of the gradient descent training run. ReferenceScores
// tracks the closed form OLS fit on the same training rows as a sanity
// check of the gradient descent output.
type Results struct {
	Predicted []float64 `json:"predicted"`
	Actual    []float64 `json:"actual"`

	Scores          *Scores `json:"scores"`
	ReferenceScores *Scores `json:"reference_scores"`

	CostHistory []linearmodel.CostSample `json:"cost_history"`
}
