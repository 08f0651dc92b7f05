package rdm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5, 6}
	scaled := []float64{2, 4, 6, 8, 10, 12}
	monotone := []float64{1, 10, 100, 1000, 10000, 100000}
	reversed := []float64{6, 5, 4, 3, 2, 1}

	tests := []struct {
		name     string
		a, b     []float64
		method   CompareMethod
		expected float64
	}{
		{"CorrScaled", a, scaled, CompareCorr, 1},
		{"CorrReversed", a, reversed, CompareCorr, -1},
		{"CosineScaled", a, scaled, CompareCosine, 1},
		{"SpearmanMonotone", a, monotone, CompareSpearman, 1},
		{"KendallMonotone", a, monotone, CompareKendall, 1},
		{"KendallReversed", a, reversed, CompareKendall, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compare(tt.a, tt.b, tt.method)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-12)
		})
	}
}

func TestCompareCosineZeroVector(t *testing.T) {
	got, err := Compare([]float64{0, 0}, []float64{1, 2}, CompareCosine)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestCompareLengthMismatch(t *testing.T) {
	_, err := Compare([]float64{1, 2}, []float64{1, 2, 3}, CompareCorr)
	assert.Error(t, err)
}

func TestParseCompareMethod(t *testing.T) {
	for _, m := range []CompareMethod{CompareCorr, CompareCosine, CompareSpearman, CompareKendall} {
		got, err := ParseCompareMethod(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	_, err := ParseCompareMethod("bogus")
	assert.Error(t, err)
}
