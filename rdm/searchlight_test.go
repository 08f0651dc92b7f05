package rdm

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ut-382v-ashkan-and-david/pyrsa/volume"
)

// testScene builds a small all-ones mask, its searchlights, and a random
// observation matrix with the given condition labels.
func testScene(t *testing.T, events []float64) (*volume.Searchlights, []float64, int) {
	t.Helper()

	dims := [3]int{4, 4, 4}
	data := make([]float64, 64)
	for i := range data {
		data[i] = 1
	}
	mask, err := volume.NewMask(dims, data)
	require.NoError(t, err)

	sl, err := volume.Generate(mask, 1.5, 0.5)
	require.NoError(t, err)
	require.NotZero(t, sl.Len())

	nChannels := mask.Len()
	rng := rand.New(rand.NewSource(42))
	obs := make([]float64, len(events)*nChannels)
	for i := range obs {
		obs[i] = rng.NormFloat64()
	}
	return sl, obs, nChannels
}

func TestCalcSearchlightRDMsShape(t *testing.T) {
	// 4 conditions x 2 repetitions: every row has C(4,2) = 6 entries.
	events := []float64{0, 1, 2, 3, 0, 1, 2, 3}
	sl, obs, nChannels := testScene(t, events)

	r, err := CalcSearchlightRDMs(obs, nChannels, sl, events, MethodCorrelation)
	require.NoError(t, err)

	assert.Equal(t, sl.Len(), r.NRDM)
	assert.Equal(t, 4, r.NConds())
	assert.Equal(t, 6, r.NPairs())
	assert.Len(t, r.Dissimilarities, sl.Len()*6)
	assert.Equal(t, sl.Centers, r.VoxelIndices())

	for i := 0; i < r.NRDM; i++ {
		for _, d := range r.Row(i) {
			assert.GreaterOrEqual(t, d, 0.0)
			assert.LessOrEqual(t, d, 2.0)
		}
	}
}

func TestCalcSearchlightRDMsMatchesCalcRDM(t *testing.T) {
	events := []float64{0, 1, 0, 1}
	sl, obs, nChannels := testScene(t, events)

	r, err := CalcSearchlightRDMs(obs, nChannels, sl, events, MethodEuclidean)
	require.NoError(t, err)

	// Row i must equal a direct single-dataset calculation on center i's
	// localized view.
	for _, i := range []int{0, sl.Len() / 2, sl.Len() - 1} {
		ds, err := localDataset(obs, nChannels, len(events), sl, i, events, nil)
		require.NoError(t, err)
		single, err := CalcRDM(ds, MethodEuclidean, EventsKey)
		require.NoError(t, err)
		assert.InDeltaSlice(t, single.Dissimilarities, r.Row(i), 1e-12)
	}
}

func TestCalcSearchlightRDMsParallelMatchesSequential(t *testing.T) {
	events := []float64{0, 1, 2, 0, 1, 2}
	sl, obs, nChannels := testScene(t, events)

	seq, err := CalcSearchlightRDMs(obs, nChannels, sl, events, MethodCorrelation, WithChunks(7))
	require.NoError(t, err)

	par, err := CalcSearchlightRDMs(obs, nChannels, sl, events, MethodCorrelation, WithChunks(7), WithWorkers(4))
	require.NoError(t, err)

	assert.Equal(t, seq.Dissimilarities, par.Dissimilarities)
	assert.Equal(t, seq.VoxelIndices(), par.VoxelIndices())
}

func TestCalcSearchlightRDMsEmpty(t *testing.T) {
	// Zero retained centers: a 0 x n_pairs matrix, not an error.
	sl := &volume.Searchlights{Dims: [3]int{2, 2, 2}, Centers: []int{}, Neighbors: [][]int{}}
	events := []float64{0, 1, 0, 1}
	obs := make([]float64, 4*8)

	r, err := CalcSearchlightRDMs(obs, 8, sl, events, MethodEuclidean)
	require.NoError(t, err)
	assert.Equal(t, 0, r.NRDM)
	assert.Equal(t, 1, r.NPairs())
	assert.Empty(t, r.Dissimilarities)
}

func TestCalcSearchlightRDMsErrors(t *testing.T) {
	events := []float64{0, 1, 0, 1}
	sl, obs, nChannels := testScene(t, events)

	t.Run("ChannelOutOfRange", func(t *testing.T) {
		bad := &volume.Searchlights{
			Dims:      sl.Dims,
			Centers:   []int{0},
			Neighbors: [][]int{{0, nChannels}},
		}
		_, err := CalcSearchlightRDMs(obs, nChannels, bad, events, MethodEuclidean)
		var rangeErr *ErrChannelRange
		require.ErrorAs(t, err, &rangeErr)
		assert.Equal(t, nChannels, rangeErr.Index)
	})

	t.Run("EventsLength", func(t *testing.T) {
		_, err := CalcSearchlightRDMs(obs, nChannels, sl, events[:3], MethodEuclidean)
		var lenErr *ErrEventsLength
		require.ErrorAs(t, err, &lenErr)
		assert.Equal(t, 3, lenErr.Got)
	})

	t.Run("BadChannelCount", func(t *testing.T) {
		_, err := CalcSearchlightRDMs(obs[:5], 3, sl, events, MethodEuclidean)
		assert.Error(t, err)
	})

	t.Run("CrossnobisWithoutFolds", func(t *testing.T) {
		_, err := CalcSearchlightRDMs(obs, nChannels, sl, events, MethodCrossnobis)
		assert.ErrorIs(t, err, ErrMissingCVDescriptor)
	})
}

func TestCalcSearchlightRDMsCrossnobisFolds(t *testing.T) {
	events := []float64{0, 1, 0, 1}
	sl, obs, nChannels := testScene(t, events)

	r, err := CalcSearchlightRDMs(obs, nChannels, sl, events, MethodCrossnobis,
		WithObsDescriptor(DefaultCVDescriptor, []float64{1, 1, 2, 2}))
	require.NoError(t, err)
	assert.Equal(t, sl.Len(), r.NRDM)
}

func TestChunkRanges(t *testing.T) {
	tests := []struct {
		name string
		n, k int
	}{
		{"Empty", 0, 100},
		{"FewerThanChunks", 7, 100},
		{"Exact", 100, 100},
		{"Uneven", 103, 10},
		{"Single", 50, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranges := chunkRanges(tt.n, tt.k)

			// Contiguous cover of [0, n), no overlap, near-equal sizes.
			next := 0
			for _, r := range ranges {
				require.Equal(t, next, r[0])
				require.Greater(t, r[1], r[0])
				next = r[1]
			}
			assert.Equal(t, tt.n, next)
			if tt.n > 0 {
				assert.LessOrEqual(t, len(ranges), tt.k)
			}
		})
	}
}
