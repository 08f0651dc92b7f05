package volume

import (
	"errors"
	"fmt"

	"golang.org/x/time/rate"
)

var (
	// ErrRadius is returned when the searchlight radius is not positive.
	ErrRadius = errors.New("searchlight radius must be positive")

	// ErrThreshold is returned when the coverage threshold is outside [0, 1].
	ErrThreshold = errors.New("coverage threshold must be within [0, 1]")
)

// Searchlights holds the retained centers of a generator scan together with
// their full spherical neighborhoods, both as raveled indices into the
// originating mask. Centers[i] and Neighbors[i] always describe the same
// searchlight, in mask C-order scan order.
type Searchlights struct {
	// Dims is the shape of the mask the indices ravel into.
	Dims [3]int

	// Centers holds the raveled index of each retained center.
	Centers []int

	// Neighbors holds, per center, the raveled indices of every voxel within
	// the searchlight sphere. Neighborhoods are not thresholded down: voxels
	// outside the mask stay in, only the center's retention is decided by the
	// coverage ratio.
	Neighbors [][]int
}

// Len returns the number of retained searchlights.
func (s *Searchlights) Len() int {
	return len(s.Centers)
}

// GenerateOption configures a generator scan.
type GenerateOption func(*generateOptions)

type generateOptions struct {
	progress func(done, total int)
}

// WithProgress installs a progress callback invoked during the scan with the
// number of candidate centers processed so far. Reporting is rate-limited and
// purely observational; it never affects the scan result.
func WithProgress(fn func(done, total int)) GenerateOption {
	return func(o *generateOptions) {
		o.progress = fn
	}
}

// progressRate caps progress callbacks during long scans.
const progressRate = 10 // per second

// Generate scans every nonzero voxel of the mask as a candidate searchlight
// center and retains those whose neighborhood covers enough of the mask.
// The coverage ratio of a center is the sum of mask values over its in-bounds
// Neighbors sphere divided by the full sphere voxel count SphereSize(radius);
// voxels clipped at the volume edge therefore count against coverage the same
// way zero-mask voxels do. A center is kept when coverage >= threshold.
//
// Centers and neighborhoods are returned as raveled indices (mask C-order).
// The candidate order is the mask's C-order nonzero scan order and is
// preserved in the result; all downstream RDM rows and evaluation results
// align to it.
//
// A scan that retains no centers is not an error: the result is empty but
// well-formed.
func Generate(mask *Mask, radius, threshold float64, opts ...GenerateOption) (*Searchlights, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrRadius, radius)
	}
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrThreshold, threshold)
	}

	var o generateOptions
	for _, fn := range opts {
		fn(&o)
	}

	limiter := rate.NewLimiter(progressRate, 1)
	candidates := mask.Nonzero()
	sphere := float64(SphereSize(radius))

	sl := &Searchlights{
		Dims:      mask.Dims,
		Centers:   []int{},
		Neighbors: [][]int{},
	}

	for i, center := range candidates {
		coords := Neighbors(mask.Dims, center, radius)

		var sum float64
		raveled := make([]int, len(coords))
		for j, c := range coords {
			idx := mask.Ravel(c[0], c[1], c[2])
			raveled[j] = idx
			sum += mask.Data[idx]
		}
		if len(coords) > 0 && sum/sphere >= threshold {
			sl.Centers = append(sl.Centers, mask.Ravel(center[0], center[1], center[2]))
			sl.Neighbors = append(sl.Neighbors, raveled)
		}

		if o.progress != nil && (limiter.Allow() || i == len(candidates)-1) {
			o.progress(i+1, len(candidates))
		}
	}

	return sl, nil
}
