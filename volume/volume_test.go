package volume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMaskValidatesShape(t *testing.T) {
	_, err := NewMask([3]int{2, 2, 2}, make([]float64, 7))
	require.Error(t, err)

	var sizeErr *ErrMaskSize
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, 7, sizeErr.Len)

	_, err = NewMask([3]int{0, 2, 2}, nil)
	assert.Error(t, err)
}

func TestRavelUnravelRoundTrip(t *testing.T) {
	m, err := NewMask([3]int{3, 4, 5}, make([]float64, 60))
	require.NoError(t, err)

	idx := 0
	for x := 0; x < 3; x++ {
		for y := 0; y < 4; y++ {
			for z := 0; z < 5; z++ {
				// C-order: the scan order is the raveled order.
				require.Equal(t, idx, m.Ravel(x, y, z))
				gx, gy, gz := m.Unravel(idx)
				require.Equal(t, [3]int{x, y, z}, [3]int{gx, gy, gz})
				idx++
			}
		}
	}
}

func TestNonzeroScanOrder(t *testing.T) {
	data := make([]float64, 27)
	m, err := NewMask([3]int{3, 3, 3}, data)
	require.NoError(t, err)

	data[m.Ravel(2, 0, 1)] = 1
	data[m.Ravel(0, 1, 2)] = 0.5
	data[m.Ravel(1, 1, 1)] = 1

	got := m.Nonzero()
	// C-order: ascending raveled index.
	assert.Equal(t, [][3]int{{0, 1, 2}, {1, 1, 1}, {2, 0, 1}}, got)
}

func TestScatterScores(t *testing.T) {
	dims := [3]int{2, 2, 2}

	out, err := ScatterScores(dims, []int{1, 6}, []float64{0.25, -1})
	require.NoError(t, err)
	require.Len(t, out, 8)
	assert.Equal(t, 0.25, out[1])
	assert.Equal(t, -1.0, out[6])
	assert.Equal(t, 0.0, out[0])

	_, err = ScatterScores(dims, []int{8}, []float64{1})
	assert.Error(t, err)

	_, err = ScatterScores(dims, []int{1, 2}, []float64{1})
	assert.Error(t, err)
}
