package regressor

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aouyang1/go-regressor/linearmodel"
	"github.com/aouyang1/go-regressor/preprocess"
	"github.com/goccy/go-json"
)

var ErrNoWeightsInModel = errors.New("no weights set in model")

// Model represents a serializeable format of a trained regressor storing the
// pipeline options, scaler state, learned weights, fit scores, and the cost
// history of the training run. Only the latest run is represented, there is
// no versioning.
type Model struct {
	Options *Options `json:"options"`

	FeatureScaler *preprocess.StandardScaler `json:"feature_scaler,omitempty"`
	TargetScaler  *preprocess.TargetScaler   `json:"target_scaler,omitempty"`

	Weights Weights `json:"weights"`

	Scores          *Scores                  `json:"scores,omitempty"`
	ReferenceScores *Scores                  `json:"reference_scores,omitempty"`
	CostHistory     []linearmodel.CostSample `json:"cost_history,omitempty"`
}

// Weights stores the learned coefficients and intercept of the model
type Weights struct {
	Coef      []float64 `json:"coefficients"`
	Intercept float64   `json:"intercept"`
}

// Save writes the model as indented JSON
func (m Model) Save(w io.Writer) error {
	out, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to marshal model, %w", err)
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("unable to write model, %w", err)
	}
	return nil
}

// LoadModel reads a previously saved model from JSON
func LoadModel(r io.Reader) (Model, error) {
	var m Model
	bytes, err := io.ReadAll(r)
	if err != nil {
		return m, fmt.Errorf("unable to read model, %w", err)
	}
	if err := json.Unmarshal(bytes, &m); err != nil {
		return m, fmt.Errorf("unable to unmarshal model, %w", err)
	}
	return m, nil
}

// TablePrint writes a human readable representation of the model
func (m Model) TablePrint(w io.Writer, prefix, indent string) error {
	if _, err := fmt.Fprintf(w, "%s%sRegression:\n", prefix, indentExpand(indent, 0)); err != nil {
		return err
	}

	if m.Options != nil && m.Options.TrainingOptions != nil {
		if _, err := fmt.Fprintf(w, "%s%sLearning Rate: %g    Iterations: %d\n",
			prefix, indentExpand(indent, 1),
			m.Options.TrainingOptions.LearningRate,
			m.Options.TrainingOptions.Iterations,
		); err != nil {
			return err
		}
	}

	if m.Scores != nil {
		if _, err := fmt.Fprintf(w, "%s%sScores:\n", prefix, indentExpand(indent, 0)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s%sMAE: %.4f    MSE: %.4f    RMSE: %.4f    R2: %.4f\n",
			prefix, indentExpand(indent, 1),
			m.Scores.MAE,
			m.Scores.MSE,
			m.Scores.RMSE,
			m.Scores.R2,
		); err != nil {
			return err
		}
	}
	if m.ReferenceScores != nil {
		if _, err := fmt.Fprintf(w, "%s%sReference Scores (OLS):\n", prefix, indentExpand(indent, 0)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s%sMAE: %.4f    MSE: %.4f    RMSE: %.4f    R2: %.4f\n",
			prefix, indentExpand(indent, 1),
			m.ReferenceScores.MAE,
			m.ReferenceScores.MSE,
			m.ReferenceScores.RMSE,
			m.ReferenceScores.R2,
		); err != nil {
			return err
		}
	}

	return m.Weights.tablePrint(w, prefix, indent, 0)
}

func (w Weights) tablePrint(wr io.Writer, prefix, indent string, indentGrowth int) error {
	if _, err := fmt.Fprintf(wr, "%s%sWeights:\n", prefix, indentExpand(indent, indentGrowth)); err != nil {
		return err
	}
	tbl := tabwriter.NewWriter(wr, 0, 0, 1, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tbl, "%s%sFeature\tValue\t\n", prefix, indentExpand(indent, indentGrowth+1)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tbl, "%s%sintercept\t%.4f\t\n", prefix, indentExpand(indent, indentGrowth+1), w.Intercept); err != nil {
		return err
	}
	for i, coef := range w.Coef {
		if _, err := fmt.Fprintf(tbl, "%s%sx%d\t%.4f\t\n", prefix, indentExpand(indent, indentGrowth+1), i, coef); err != nil {
			return err
		}
	}
	return tbl.Flush()
}

func indentExpand(indent string, growth int) string {
	return strings.Repeat(indent, growth)
}
