package snapshot

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ut-382v-ashkan-and-david/pyrsa/rdm"
)

func testCollection(t *testing.T) *rdm.RDMs {
	t.Helper()
	r, err := rdm.NewRDMs([]float64{0.5, 1.5, 2.5, 0.1, 0.2, 0.3}, 2, []float64{1, 2, 3}, rdm.MethodCorrelation,
		map[string][]int{rdm.VoxelIndexKey: {42, 99}})
	require.NoError(t, err)
	return r
}

func TestRoundTrip(t *testing.T) {
	for _, compression := range []string{CompressionNone, CompressionLZ4, CompressionZstd} {
		t.Run(compression, func(t *testing.T) {
			src := testCollection(t)

			var buf bytes.Buffer
			require.NoError(t, Save(&buf, src, WithCompression(compression)))

			got, err := Load(&buf)
			require.NoError(t, err)

			assert.Equal(t, src.Dissimilarities, got.Dissimilarities)
			assert.Equal(t, src.NRDM, got.NRDM)
			assert.Equal(t, src.Conditions, got.Conditions)
			assert.Equal(t, src.Method, got.Method)
			assert.Equal(t, src.VoxelIndices(), got.VoxelIndices())
		})
	}
}

func TestRoundTripFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rdms.prsa")
	src := testCollection(t)

	require.NoError(t, SaveFile(path, src))

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, src.Dissimilarities, got.Dissimilarities)
}

func TestLoadRejectsGarbage(t *testing.T) {
	_, err := Load(bytes.NewReader([]byte("not a snapshot at all")))
	assert.ErrorContains(t, err, "magic")

	_, err = Load(bytes.NewReader(nil))
	assert.Error(t, err)
}

func TestSaveUnknownCompression(t *testing.T) {
	var buf bytes.Buffer
	err := Save(&buf, testCollection(t), WithCompression("brotli"))
	assert.ErrorContains(t, err, "brotli")
}
