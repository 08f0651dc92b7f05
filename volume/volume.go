package volume

import (
	"fmt"
)

// Mask is a 3D volume whose nonzero entries mark valid locations
// (e.g. in-brain voxels). Values are kept as float64 so that coverage
// ratios can be computed as plain means over neighborhood values.
//
// The data layout is C-order: x is the slowest axis, z the fastest.
// Mask is read-only for the duration of a run; none of the functions in
// this package mutate it.
type Mask struct {
	// Dims holds the extent of each axis.
	Dims [3]int

	// Data holds the voxel values in C-order, len = Dims[0]*Dims[1]*Dims[2].
	Data []float64
}

// ErrMaskSize indicates that mask data does not match the declared dimensions.
type ErrMaskSize struct {
	Dims [3]int
	Len  int
}

func (e *ErrMaskSize) Error() string {
	return fmt.Sprintf("mask data length %d does not match dims %dx%dx%d", e.Len, e.Dims[0], e.Dims[1], e.Dims[2])
}

// NewMask creates a Mask from C-order voxel data.
func NewMask(dims [3]int, data []float64) (*Mask, error) {
	if dims[0] <= 0 || dims[1] <= 0 || dims[2] <= 0 {
		return nil, fmt.Errorf("mask dims must be positive, got %v", dims)
	}
	if len(data) != dims[0]*dims[1]*dims[2] {
		return nil, &ErrMaskSize{Dims: dims, Len: len(data)}
	}
	return &Mask{Dims: dims, Data: data}, nil
}

// NewBoolMask creates a Mask from a boolean volume, mapping true to 1.
func NewBoolMask(dims [3]int, data []bool) (*Mask, error) {
	vals := make([]float64, len(data))
	for i, b := range data {
		if b {
			vals[i] = 1
		}
	}
	return NewMask(dims, vals)
}

// At returns the voxel value at (x, y, z).
func (m *Mask) At(x, y, z int) float64 {
	return m.Data[m.Ravel(x, y, z)]
}

// Ravel converts a 3D coordinate to its C-order linear index.
func (m *Mask) Ravel(x, y, z int) int {
	return (x*m.Dims[1]+y)*m.Dims[2] + z
}

// Unravel converts a C-order linear index back to a 3D coordinate.
func (m *Mask) Unravel(idx int) (x, y, z int) {
	z = idx % m.Dims[2]
	idx /= m.Dims[2]
	y = idx % m.Dims[1]
	x = idx / m.Dims[1]
	return x, y, z
}

// Len returns the total number of voxels.
func (m *Mask) Len() int {
	return m.Dims[0] * m.Dims[1] * m.Dims[2]
}

// Nonzero returns the coordinates of all nonzero voxels in C-order scan
// order. This ordering is load-bearing: searchlight centers, RDM rows and
// evaluation results are all aligned to it.
func (m *Mask) Nonzero() [][3]int {
	var coords [][3]int
	i := 0
	for x := 0; x < m.Dims[0]; x++ {
		for y := 0; y < m.Dims[1]; y++ {
			for z := 0; z < m.Dims[2]; z++ {
				if m.Data[i] != 0 {
					coords = append(coords, [3]int{x, y, z})
				}
				i++
			}
		}
	}
	return coords
}

// ScatterScores places one score per center into a flattened volume of the
// given dims, leaving every other voxel at zero. Use Unravel (or a reshape on
// the caller side) to get back to 3D space.
func ScatterScores(dims [3]int, centers []int, scores []float64) ([]float64, error) {
	if len(centers) != len(scores) {
		return nil, fmt.Errorf("got %d centers but %d scores", len(centers), len(scores))
	}
	out := make([]float64, dims[0]*dims[1]*dims[2])
	for i, c := range centers {
		if c < 0 || c >= len(out) {
			return nil, fmt.Errorf("center index %d out of range for dims %v", c, dims)
		}
		out[c] = scores[i]
	}
	return out, nil
}
