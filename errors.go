package pyrsa

import (
	"errors"

	"github.com/ut-382v-ashkan-and-david/pyrsa/volume"
)

var (
	// ErrNilMask is returned when a pipeline run is started without a mask.
	ErrNilMask = errors.New("mask must not be nil")

	// ErrRadius is returned when the searchlight radius is not positive.
	// It is the same value as volume.ErrRadius, re-exported for callers that
	// only import the root package.
	ErrRadius = volume.ErrRadius

	// ErrThreshold is returned when the coverage threshold is outside [0, 1].
	// Same value as volume.ErrThreshold.
	ErrThreshold = volume.ErrThreshold
)
