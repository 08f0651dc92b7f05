package rdm

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/ut-382v-ashkan-and-david/pyrsa/dataset"
	"github.com/ut-382v-ashkan-and-david/pyrsa/volume"
)

// EventsKey is the observation descriptor under which the batch calculator
// files the condition labels of the per-center datasets it builds.
const EventsKey = "events"

// VoxelsKey is the channel descriptor under which the batch calculator files
// the source voxel index of each localized channel.
const VoxelsKey = "voxels"

// DefaultChunks is the number of contiguous center batches one searchlight
// calculation is split into. Batching bounds the number of localized
// datasets alive at once; with hundreds of thousands of centers,
// materializing all of them would be memory-prohibitive.
const DefaultChunks = 100

// ErrChannelRange indicates a neighbor index outside the observation
// matrix's channel range.
type ErrChannelRange struct {
	Index     int
	NChannels int
}

func (e *ErrChannelRange) Error() string {
	return fmt.Sprintf("neighbor index %d out of range for %d channels", e.Index, e.NChannels)
}

// ErrEventsLength indicates a condition label vector misaligned with the
// observation rows.
type ErrEventsLength struct {
	Got  int
	Want int
}

func (e *ErrEventsLength) Error() string {
	return fmt.Sprintf("events length %d does not match %d observations", e.Got, e.Want)
}

// SearchlightOption configures a searchlight RDM calculation.
type SearchlightOption func(*searchlightOptions)

type searchlightOptions struct {
	chunks   int
	workers  int
	progress func(done, total int)
	obsDesc  map[string][]float64
	calcOpts []CalcOption
}

// WithChunks overrides the number of contiguous center batches
// (default DefaultChunks, clamped to the center count).
func WithChunks(n int) SearchlightOption {
	return func(o *searchlightOptions) {
		o.chunks = n
	}
}

// WithWorkers enables parallel chunk processing with at most n workers.
// Each worker writes only its own chunk's row range of the accumulator, so
// no synchronization is needed and row order is preserved regardless of
// scheduling. n <= 1 keeps the calculation sequential.
func WithWorkers(n int) SearchlightOption {
	return func(o *searchlightOptions) {
		o.workers = n
	}
}

// WithChunkProgress installs a rate-limited progress callback invoked as
// chunks complete. Observational only. With WithWorkers enabled the callback
// may be invoked from multiple goroutines.
func WithChunkProgress(fn func(done, total int)) SearchlightOption {
	return func(o *searchlightOptions) {
		o.progress = fn
	}
}

// WithObsDescriptor attaches an extra observation descriptor to every
// localized dataset, e.g. cross-validation folds for the crossnobis method.
func WithObsDescriptor(key string, values []float64) SearchlightOption {
	return func(o *searchlightOptions) {
		if o.obsDesc == nil {
			o.obsDesc = map[string][]float64{}
		}
		o.obsDesc[key] = values
	}
}

// WithCalcOptions passes calculation options (noise precision, cv
// descriptor key) through to the per-center CalcRDM calls.
func WithCalcOptions(opts ...CalcOption) SearchlightOption {
	return func(o *searchlightOptions) {
		o.calcOpts = append(o.calcOpts, opts...)
	}
}

// CalcSearchlightRDMs computes one RDM per searchlight center.
//
// data is the shared observation matrix, row-major with nChannels columns;
// row order matches events. For each center, the observation columns are
// restricted to that center's neighbor channels, wrapped in a localized
// dataset tagged with the center's identity, and reduced to one
// dissimilarity row by the selected method.
//
// The result matrix is exactly len(sl.Centers) x C(n_conditions, 2) with row
// i computed from sl.Centers[i]; the center's raveled voxel index is carried
// in the VoxelIndexKey descriptor. The condition set is derived from events
// once and enforced for every center.
//
// Centers are processed in contiguous chunks; any per-center failure aborts
// the whole calculation, since a partially filled accumulator would be
// indistinguishable from legitimate zero dissimilarities.
func CalcSearchlightRDMs(data []float64, nChannels int, sl *volume.Searchlights, events []float64, method Method, opts ...SearchlightOption) (*RDMs, error) {
	o := searchlightOptions{chunks: DefaultChunks}
	for _, fn := range opts {
		fn(&o)
	}

	if nChannels <= 0 {
		return nil, fmt.Errorf("observation matrix must have positive channel count, got %d", nChannels)
	}
	if len(data)%nChannels != 0 {
		return nil, fmt.Errorf("observation matrix length %d is not divisible by %d channels", len(data), nChannels)
	}
	nObs := len(data) / nChannels
	if len(events) != nObs {
		return nil, &ErrEventsLength{Got: len(events), Want: nObs}
	}
	for _, nb := range sl.Neighbors {
		for _, idx := range nb {
			if idx < 0 || idx >= nChannels {
				return nil, &ErrChannelRange{Index: idx, NChannels: nChannels}
			}
		}
	}
	for k, v := range o.obsDesc {
		if len(v) != nObs {
			return nil, fmt.Errorf("observation descriptor %q has length %d, want %d", k, len(v), nObs)
		}
	}

	// The condition set is derived once; every chunk computes against it.
	conds := dataset.UniqueValues(events)
	nPairs := PairCount(len(conds))
	nCenters := sl.Len()

	diss := make([]float64, nCenters*nPairs)
	calcOpts := append([]CalcOption{withConditions(conds)}, o.calcOpts...)

	chunks := chunkRanges(nCenters, o.chunks)
	limiter := rate.NewLimiter(progressRate, 1)
	var done int

	process := func(start, end int) error {
		for c := start; c < end; c++ {
			ds, err := localDataset(data, nChannels, nObs, sl, c, events, o.obsDesc)
			if err != nil {
				return err
			}
			r, err := CalcRDM(ds, method, EventsKey, calcOpts...)
			if err != nil {
				return fmt.Errorf("center %d (voxel %d): %w", c, sl.Centers[c], err)
			}
			copy(diss[c*nPairs:(c+1)*nPairs], r.Dissimilarities)
		}
		return nil
	}

	if o.workers > 1 && len(chunks) > 1 {
		var g errgroup.Group
		g.SetLimit(o.workers)
		var completed atomic.Int64
		for _, ch := range chunks {
			g.Go(func() error {
				// Disjoint row ranges per chunk; no locking needed.
				if err := process(ch[0], ch[1]); err != nil {
					return err
				}
				n := completed.Add(1)
				if o.progress != nil && (limiter.Allow() || int(n) == len(chunks)) {
					o.progress(int(n), len(chunks))
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, ch := range chunks {
			if err := process(ch[0], ch[1]); err != nil {
				return nil, err
			}
			done++
			if o.progress != nil && (limiter.Allow() || i == len(chunks)-1) {
				o.progress(done, len(chunks))
			}
		}
	}

	voxels := make([]int, nCenters)
	copy(voxels, sl.Centers)

	return NewRDMs(diss, nCenters, conds, method, map[string][]int{VoxelIndexKey: voxels})
}

// progressRate caps progress callbacks during long calculations.
const progressRate = 10 // per second

// localDataset builds the localized view for one center: observation rows
// unchanged, columns gathered from the center's neighbor channels.
func localDataset(data []float64, nChannels, nObs int, sl *volume.Searchlights, c int, events []float64, extraObs map[string][]float64) (*dataset.Dataset, error) {
	nb := sl.Neighbors[c]
	local := make([]float64, nObs*len(nb))
	for i := 0; i < nObs; i++ {
		row := data[i*nChannels : (i+1)*nChannels]
		for j, idx := range nb {
			local[i*len(nb)+j] = row[idx]
		}
	}

	obsDesc := map[string][]float64{EventsKey: events}
	for k, v := range extraObs {
		obsDesc[k] = v
	}
	voxels := make([]int, len(nb))
	copy(voxels, nb)

	return dataset.New(local, nObs, len(nb),
		map[string]any{"center": sl.Centers[c]},
		obsDesc,
		map[string][]int{VoxelsKey: voxels},
	)
}

// chunkRanges splits [0, n) into at most k near-equal contiguous ranges.
func chunkRanges(n, k int) [][2]int {
	if n == 0 {
		return nil
	}
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}
	ranges := make([][2]int, 0, k)
	for i := 0; i < k; i++ {
		start := i * n / k
		end := (i + 1) * n / k
		if start < end {
			ranges = append(ranges, [2]int{start, end})
		}
	}
	return ranges
}
