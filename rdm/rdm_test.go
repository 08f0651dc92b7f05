package rdm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairCount(t *testing.T) {
	tests := []struct {
		n        int
		expected int
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{4, 6},
		{10, 45},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, PairCount(tt.n))
	}
}

func TestNewRDMsValidates(t *testing.T) {
	conds := []float64{1, 2, 3}

	_, err := NewRDMs(make([]float64, 6), 2, conds, MethodEuclidean, nil)
	require.NoError(t, err)

	_, err = NewRDMs(make([]float64, 5), 2, conds, MethodEuclidean, nil)
	assert.Error(t, err)

	_, err = NewRDMs(make([]float64, 6), 2, conds, MethodEuclidean, map[string][]int{VoxelIndexKey: {1}})
	assert.Error(t, err)
}

func TestSquare(t *testing.T) {
	r, err := NewRDMs([]float64{1, 2, 3}, 1, []float64{0, 1, 2}, MethodEuclidean, nil)
	require.NoError(t, err)

	sq := r.Square(0)
	assert.Equal(t, [][]float64{
		{0, 1, 2},
		{1, 0, 3},
		{2, 3, 0},
	}, sq)
}

func TestSubset(t *testing.T) {
	r, err := NewRDMs([]float64{1, 2, 3, 4, 5, 6}, 2, []float64{0, 1, 2}, MethodCorrelation,
		map[string][]int{VoxelIndexKey: {10, 20}})
	require.NoError(t, err)

	single, err := r.Subset(1)
	require.NoError(t, err)
	assert.Equal(t, 1, single.NRDM)
	assert.Equal(t, []float64{4, 5, 6}, single.Dissimilarities)
	assert.Equal(t, []int{20}, single.VoxelIndices())

	_, err = r.Subset(2)
	assert.Error(t, err)
}

func TestParseMethod(t *testing.T) {
	for _, m := range []Method{MethodEuclidean, MethodCorrelation, MethodMahalanobis, MethodCrossnobis} {
		got, err := ParseMethod(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	_, err := ParseMethod("bogus")
	var unknown *ErrUnknownMethod
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "bogus", unknown.Name)
}
