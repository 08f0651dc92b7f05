package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoolIndex(t *testing.T) {
	desc := []float64{1, 2, 3, 2, 1}

	tests := []struct {
		name     string
		values   []float64
		expected []bool
	}{
		{"Single", []float64{2}, []bool{false, true, false, true, false}},
		{"Multiple", []float64{1, 3}, []bool{true, false, true, false, true}},
		{"NoMatch", []float64{9}, []bool{false, false, false, false, false}},
		{"Empty", nil, []bool{false, false, false, false, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BoolIndex(desc, tt.values...))
		})
	}
}

func TestUniqueValues(t *testing.T) {
	assert.Equal(t, []float64{1, 2, 4}, UniqueValues([]float64{4, 1, 2, 1, 4, 4}))
	assert.Empty(t, UniqueValues(nil))
}

func TestCheckDescriptorLength(t *testing.T) {
	desc := map[string][]float64{"a": {1, 2}, "b": {3, 4}}
	assert.NoError(t, CheckDescriptorLength(desc, "observation", 2))

	err := CheckDescriptorLength(map[string][]float64{"a": {1}}, "observation", 2)
	assert.ErrorContains(t, err, `"a"`)
}

func TestSubsetDescriptor(t *testing.T) {
	desc := map[string][]float64{"events": {10, 20, 30}}

	got := SubsetDescriptor(desc, []int{2, 0})
	assert.Equal(t, []float64{30, 10}, got["events"])

	gotBool := SubsetDescriptorBool(desc, []bool{true, false, true})
	assert.Equal(t, []float64{10, 30}, gotBool["events"])
}

func TestFormatDescriptor(t *testing.T) {
	s := FormatDescriptor(map[string]any{"center": 7, "animal": "ferret"})
	assert.Equal(t, "animal = ferret\ncenter = 7\n", s)
}
