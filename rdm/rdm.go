package rdm

import (
	"fmt"
)

// VoxelIndexKey is the RDM descriptor carrying, per row, the raveled mask
// index of the searchlight center the row was computed from.
const VoxelIndexKey = "voxel_index"

// RDMs is a collection of dissimilarity vectors sharing one condition set.
// Row i of Dissimilarities is the upper-triangular RDM of source dataset i,
// stored row-major with stride NPairs().
type RDMs struct {
	// Dissimilarities is the dense NRDM x NPairs matrix.
	Dissimilarities []float64

	// NRDM is the number of rows.
	NRDM int

	// Conditions holds the sorted distinct condition labels; the pairwise
	// columns are ordered lexicographically over (Conditions[i], Conditions[j])
	// with i < j.
	Conditions []float64

	// Method is the dissimilarity measure the rows were computed with.
	Method Method

	// RDMDescriptors carries per-row annotations, e.g. VoxelIndexKey.
	RDMDescriptors map[string][]int
}

// PairCount returns C(n, 2).
func PairCount(n int) int {
	return n * (n - 1) / 2
}

// NewRDMs creates a collection and validates its shape against the condition
// set and the per-row descriptors.
func NewRDMs(dissimilarities []float64, nRDM int, conditions []float64, method Method, descriptors map[string][]int) (*RDMs, error) {
	nPairs := PairCount(len(conditions))
	if len(dissimilarities) != nRDM*nPairs {
		return nil, fmt.Errorf("dissimilarities length %d does not match %d rdms x %d pairs", len(dissimilarities), nRDM, nPairs)
	}
	if descriptors == nil {
		descriptors = map[string][]int{}
	}
	for k, v := range descriptors {
		if len(v) != nRDM {
			return nil, fmt.Errorf("rdm descriptor %q has length %d, want %d", k, len(v), nRDM)
		}
	}
	return &RDMs{
		Dissimilarities: dissimilarities,
		NRDM:            nRDM,
		Conditions:      conditions,
		Method:          method,
		RDMDescriptors:  descriptors,
	}, nil
}

// NConds returns the number of distinct conditions.
func (r *RDMs) NConds() int {
	return len(r.Conditions)
}

// NPairs returns the number of pairwise columns, C(NConds, 2).
func (r *RDMs) NPairs() int {
	return PairCount(len(r.Conditions))
}

// Row returns the dissimilarity vector of rdm i.
// The returned slice aliases the collection; callers must not mutate it.
func (r *RDMs) Row(i int) []float64 {
	n := r.NPairs()
	return r.Dissimilarities[i*n : (i+1)*n]
}

// Subset returns a single-row collection for rdm i, keeping its descriptors.
func (r *RDMs) Subset(i int) (*RDMs, error) {
	if i < 0 || i >= r.NRDM {
		return nil, fmt.Errorf("rdm index %d out of range [0, %d)", i, r.NRDM)
	}
	desc := make(map[string][]int, len(r.RDMDescriptors))
	for k, v := range r.RDMDescriptors {
		desc[k] = []int{v[i]}
	}
	row := make([]float64, r.NPairs())
	copy(row, r.Row(i))
	return &RDMs{
		Dissimilarities: row,
		NRDM:            1,
		Conditions:      r.Conditions,
		Method:          r.Method,
		RDMDescriptors:  desc,
	}, nil
}

// Square expands row i into its full symmetric n_conds x n_conds matrix with
// a zero diagonal.
func (r *RDMs) Square(i int) [][]float64 {
	n := r.NConds()
	row := r.Row(i)
	sq := make([][]float64, n)
	for a := range sq {
		sq[a] = make([]float64, n)
	}
	k := 0
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			sq[a][b] = row[k]
			sq[b][a] = row[k]
			k++
		}
	}
	return sq
}

// VoxelIndices returns the per-row center indices, or nil if the collection
// does not carry them.
func (r *RDMs) VoxelIndices() []int {
	return r.RDMDescriptors[VoxelIndexKey]
}
