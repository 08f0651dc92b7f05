package dataset

import (
	"fmt"
	"sort"
	"strings"
)

// BoolIndex returns a boolean vector marking where the descriptor takes any
// of the given values.
func BoolIndex(descriptor []float64, values ...float64) []bool {
	index := make([]bool, len(descriptor))
	for i, d := range descriptor {
		for _, v := range values {
			if d == v {
				index[i] = true
				break
			}
		}
	}
	return index
}

// UniqueValues returns the sorted distinct values of a descriptor vector.
func UniqueValues(descriptor []float64) []float64 {
	seen := make(map[float64]struct{}, len(descriptor))
	var unique []float64
	for _, v := range descriptor {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			unique = append(unique, v)
		}
	}
	sort.Float64s(unique)
	return unique
}

// CheckDescriptorLength verifies that every entry of a descriptor dictionary
// has exactly n elements. The descriptor name is used in the error message.
func CheckDescriptorLength(descriptors map[string][]float64, name string, n int) error {
	for k, v := range descriptors {
		if len(v) != n {
			return fmt.Errorf("%s descriptor %q has length %d, want %d", name, k, len(v), n)
		}
	}
	return nil
}

// SubsetDescriptor extracts the entries of every descriptor at the given
// indices, in the given order.
func SubsetDescriptor(descriptors map[string][]float64, indices []int) map[string][]float64 {
	out := make(map[string][]float64, len(descriptors))
	for k, v := range descriptors {
		sub := make([]float64, len(indices))
		for i, idx := range indices {
			sub[i] = v[idx]
		}
		out[k] = sub
	}
	return out
}

// SubsetDescriptorBool extracts the entries of every descriptor where the
// boolean index is true.
func SubsetDescriptorBool(descriptors map[string][]float64, index []bool) map[string][]float64 {
	out := make(map[string][]float64, len(descriptors))
	for k, v := range descriptors {
		var sub []float64
		for i, keep := range index {
			if keep {
				sub = append(sub, v[i])
			}
		}
		out[k] = sub
	}
	return out
}

// FormatDescriptor renders a descriptor dictionary as "key = value" lines
// with stable key order, for diagnostics.
func FormatDescriptor(descriptors map[string]any) string {
	keys := make([]string, 0, len(descriptors))
	for k := range descriptors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s = %v\n", k, descriptors[k])
	}
	return b.String()
}
