package vecmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRank(t *testing.T) {
	tests := []struct {
		name     string
		in       []float64
		expected []float64
	}{
		{"Sorted", []float64{10, 20, 30}, []float64{1, 2, 3}},
		{"Reversed", []float64{30, 20, 10}, []float64{3, 2, 1}},
		{"Ties", []float64{1, 2, 2, 3}, []float64{1, 2.5, 2.5, 4}},
		{"AllEqual", []float64{5, 5, 5}, []float64{2, 2, 2}},
		{"Empty", nil, []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank(tt.in)
			if len(tt.expected) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}
