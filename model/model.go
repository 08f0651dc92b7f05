package model

import (
	"fmt"

	"github.com/ut-382v-ashkan-and-david/pyrsa/rdm"
)

// Model is a representational model: something that predicts a
// dissimilarity vector over the conditions of interest.
type Model interface {
	// Name identifies the model in results and diagnostics.
	Name() string

	// Predict returns the model's predicted dissimilarity vector, in the
	// same pairwise ordering as measured RDMs.
	Predict() []float64
}

// Fixed is a model with a single fixed predicted RDM and no parameters.
type Fixed struct {
	name string
	rdm  []float64
}

// NewFixed creates a fixed model from a predicted dissimilarity vector.
func NewFixed(name string, dissimilarities []float64) *Fixed {
	pred := make([]float64, len(dissimilarities))
	copy(pred, dissimilarities)
	return &Fixed{name: name, rdm: pred}
}

// Name implements Model.
func (m *Fixed) Name() string {
	return m.name
}

// Predict implements Model.
func (m *Fixed) Predict() []float64 {
	return m.rdm
}

// EvalFunc scores one or more models against a single measured RDM
// (a one-row collection). It returns one score per model, aligned to the
// models slice.
type EvalFunc func(models []Model, data *rdm.RDMs) ([]float64, error)

// EvalFixed returns the stock evaluation function: it compares each model's
// predicted RDM to the measured one under the given comparison method.
func EvalFixed(method rdm.CompareMethod) EvalFunc {
	return func(models []Model, data *rdm.RDMs) ([]float64, error) {
		if data.NRDM != 1 {
			return nil, fmt.Errorf("expected a single-rdm collection, got %d rows", data.NRDM)
		}
		measured := data.Row(0)
		scores := make([]float64, len(models))
		for i, m := range models {
			pred := m.Predict()
			s, err := rdm.Compare(pred, measured, method)
			if err != nil {
				return nil, fmt.Errorf("model %s: %w", m.Name(), err)
			}
			scores[i] = s
		}
		return scores, nil
	}
}
