package dataset

import (
	"fmt"
)

// Dataset is a dense observations-by-channels measurement matrix with
// descriptor dictionaries. Measurements are stored row-major: observation i,
// channel j lives at Measurements[i*NChannels+j].
//
// Descriptors annotate the dataset as a whole (e.g. the searchlight center
// it belongs to), ObsDescriptors annotate rows (e.g. condition labels) and
// ChannelDescriptors annotate columns (e.g. source voxel indices).
type Dataset struct {
	Measurements []float64
	NObs         int
	NChannels    int

	Descriptors        map[string]any
	ObsDescriptors     map[string][]float64
	ChannelDescriptors map[string][]int
}

// New creates a Dataset and validates that the measurement matrix and all
// descriptors agree on their dimensions. Nil descriptor maps are replaced
// with empty ones.
func New(measurements []float64, nObs, nChannels int,
	descriptors map[string]any,
	obsDescriptors map[string][]float64,
	channelDescriptors map[string][]int,
) (*Dataset, error) {
	if nObs < 0 || nChannels < 0 {
		return nil, fmt.Errorf("negative dataset shape %dx%d", nObs, nChannels)
	}
	if len(measurements) != nObs*nChannels {
		return nil, fmt.Errorf("measurements length %d does not match shape %dx%d", len(measurements), nObs, nChannels)
	}
	if descriptors == nil {
		descriptors = map[string]any{}
	}
	if obsDescriptors == nil {
		obsDescriptors = map[string][]float64{}
	}
	if channelDescriptors == nil {
		channelDescriptors = map[string][]int{}
	}
	if err := CheckDescriptorLength(obsDescriptors, "observation", nObs); err != nil {
		return nil, err
	}
	for k, v := range channelDescriptors {
		if len(v) != nChannels {
			return nil, fmt.Errorf("channel descriptor %q has length %d, want %d", k, len(v), nChannels)
		}
	}
	return &Dataset{
		Measurements:       measurements,
		NObs:               nObs,
		NChannels:          nChannels,
		Descriptors:        descriptors,
		ObsDescriptors:     obsDescriptors,
		ChannelDescriptors: channelDescriptors,
	}, nil
}

// Row returns the measurement vector of observation i.
// The returned slice aliases the dataset; callers must not mutate it.
func (d *Dataset) Row(i int) []float64 {
	return d.Measurements[i*d.NChannels : (i+1)*d.NChannels]
}

// SubsetObs returns a new Dataset restricted to the observations where the
// named observation descriptor takes any of the given values. Observation
// descriptors are subset along with the rows.
func (d *Dataset) SubsetObs(key string, values ...float64) (*Dataset, error) {
	desc, ok := d.ObsDescriptors[key]
	if !ok {
		return nil, fmt.Errorf("unknown observation descriptor %q", key)
	}
	index := BoolIndex(desc, values...)

	var rows []int
	for i, keep := range index {
		if keep {
			rows = append(rows, i)
		}
	}

	measurements := make([]float64, 0, len(rows)*d.NChannels)
	for _, r := range rows {
		measurements = append(measurements, d.Row(r)...)
	}

	return &Dataset{
		Measurements:       measurements,
		NObs:               len(rows),
		NChannels:          d.NChannels,
		Descriptors:        d.Descriptors,
		ObsDescriptors:     SubsetDescriptorBool(d.ObsDescriptors, index),
		ChannelDescriptors: d.ChannelDescriptors,
	}, nil
}

// MeanPattern returns the per-channel mean over all observations.
// A dataset with zero observations yields an all-zero pattern.
func (d *Dataset) MeanPattern() []float64 {
	mean := make([]float64, d.NChannels)
	if d.NObs == 0 {
		return mean
	}
	for i := 0; i < d.NObs; i++ {
		row := d.Row(i)
		for j, v := range row {
			mean[j] += v
		}
	}
	inv := 1 / float64(d.NObs)
	for j := range mean {
		mean[j] *= inv
	}
	return mean
}
