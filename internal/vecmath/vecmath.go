// Package vecmath provides small float64 kernels shared by the rdm and
// model packages where gonum has no direct primitive.
package vecmath

import "sort"

// Rank returns the fractional ranks of x (1-based, ties averaged), the
// rank transform used by Spearman correlation.
func Rank(x []float64) []float64 {
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return x[idx[a]] < x[idx[b]]
	})

	ranks := make([]float64, len(x))
	for i := 0; i < len(idx); {
		j := i
		for j+1 < len(idx) && x[idx[j+1]] == x[idx[i]] {
			j++
		}
		// Average rank over the tie group [i, j].
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[idx[k]] = avg
		}
		i = j + 1
	}
	return ranks
}
