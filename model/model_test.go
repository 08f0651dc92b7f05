package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ut-382v-ashkan-and-david/pyrsa/rdm"
)

func TestFixed(t *testing.T) {
	src := []float64{1, 2, 3}
	m := NewFixed("layer7", src)

	assert.Equal(t, "layer7", m.Name())
	assert.Equal(t, src, m.Predict())

	// The model keeps its own copy.
	src[0] = 99
	assert.Equal(t, 1.0, m.Predict()[0])
}

func TestEvalFixed(t *testing.T) {
	data, err := rdm.NewRDMs([]float64{1, 2, 3, 4, 5, 6}, 1, []float64{0, 1, 2, 3}, rdm.MethodEuclidean, nil)
	require.NoError(t, err)

	perfect := NewFixed("perfect", []float64{2, 4, 6, 8, 10, 12})
	inverted := NewFixed("inverted", []float64{6, 5, 4, 3, 2, 1})

	scores, err := EvalFixed(rdm.CompareCorr)([]Model{perfect, inverted}, data)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.InDelta(t, 1, scores[0], 1e-12)
	assert.InDelta(t, -1, scores[1], 1e-12)
}

func TestEvalFixedRejectsMultiRDM(t *testing.T) {
	data, err := rdm.NewRDMs(make([]float64, 12), 2, []float64{0, 1, 2, 3}, rdm.MethodEuclidean, nil)
	require.NoError(t, err)

	_, err = EvalFixed(rdm.CompareCorr)(nil, data)
	assert.Error(t, err)
}
