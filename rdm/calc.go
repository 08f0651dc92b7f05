package rdm

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/ut-382v-ashkan-and-david/pyrsa/dataset"
)

// ErrMissingCVDescriptor is returned when crossnobis is requested on a
// dataset without a usable cross-validation descriptor.
var ErrMissingCVDescriptor = errors.New("crossnobis requires a cross-validation descriptor with at least two folds")

// DefaultCVDescriptor is the observation descriptor holding the
// cross-validation fold of each observation.
const DefaultCVDescriptor = "cv"

// CalcOption configures RDM calculation.
type CalcOption func(*calcOptions)

type calcOptions struct {
	precision  *mat.SymDense
	cvKey      string
	conditions []float64
}

// WithPrecision supplies the noise precision matrix (inverse noise
// covariance, n_channels x n_channels) used by the mahalanobis and
// crossnobis methods. Without it the identity is used.
func WithPrecision(p *mat.SymDense) CalcOption {
	return func(o *calcOptions) {
		o.precision = p
	}
}

// WithCVDescriptor overrides the observation descriptor naming the
// cross-validation fold of each observation (default DefaultCVDescriptor).
// Only consulted by the crossnobis method.
func WithCVDescriptor(key string) CalcOption {
	return func(o *calcOptions) {
		o.cvKey = key
	}
}

// withConditions pins the expected condition set. Used by the batch
// calculator so that every center is computed against the same columns.
func withConditions(conds []float64) CalcOption {
	return func(o *calcOptions) {
		o.conditions = conds
	}
}

// CalcRDM computes the dissimilarity vector of one dataset. The observation
// descriptor named by descriptor defines the conditions; its distinct values,
// sorted ascending, become the RDM's condition set.
func CalcRDM(ds *dataset.Dataset, method Method, descriptor string, opts ...CalcOption) (*RDMs, error) {
	o := calcOptions{cvKey: DefaultCVDescriptor}
	for _, fn := range opts {
		fn(&o)
	}

	events, ok := ds.ObsDescriptors[descriptor]
	if !ok {
		return nil, fmt.Errorf("unknown observation descriptor %q", descriptor)
	}

	conds := dataset.UniqueValues(events)
	if o.conditions != nil {
		if !floats.Equal(conds, o.conditions) {
			return nil, fmt.Errorf("condition set %v does not match expected %v", conds, o.conditions)
		}
	}

	if o.precision != nil {
		if n := o.precision.SymmetricDim(); n != ds.NChannels {
			return nil, fmt.Errorf("precision matrix is %dx%d but dataset has %d channels", n, n, ds.NChannels)
		}
	}

	var (
		diss []float64
		err  error
	)
	switch method {
	case MethodEuclidean:
		diss, err = calcDistanceOfMeans(ds, descriptor, conds, nil)
	case MethodMahalanobis:
		diss, err = calcDistanceOfMeans(ds, descriptor, conds, o.precision)
	case MethodCorrelation:
		diss, err = calcCorrelation(ds, descriptor, conds)
	case MethodCrossnobis:
		diss, err = calcCrossnobis(ds, descriptor, conds, o.cvKey, o.precision)
	default:
		err = &ErrUnknownMethod{Name: method.String()}
	}
	if err != nil {
		return nil, err
	}

	return NewRDMs(diss, 1, conds, method, nil)
}

// meanPatterns averages the rows of each condition, in condition order.
func meanPatterns(ds *dataset.Dataset, descriptor string, conds []float64) ([][]float64, error) {
	patterns := make([][]float64, len(conds))
	for i, c := range conds {
		sub, err := ds.SubsetObs(descriptor, c)
		if err != nil {
			return nil, err
		}
		patterns[i] = sub.MeanPattern()
	}
	return patterns, nil
}

// whitenedDot computes a' P b, or the plain dot product when precision is nil.
func whitenedDot(a, b []float64, precision *mat.SymDense) float64 {
	if precision == nil {
		return floats.Dot(a, b)
	}
	va := mat.NewVecDense(len(a), a)
	vb := mat.NewVecDense(len(b), b)
	tmp := mat.NewVecDense(len(b), nil)
	tmp.MulVec(precision, vb)
	return mat.Dot(va, tmp)
}

// calcDistanceOfMeans is the distance-of-means family: squared Euclidean
// between condition mean patterns, optionally whitened by the noise
// precision, normalized by the channel count.
func calcDistanceOfMeans(ds *dataset.Dataset, descriptor string, conds []float64, precision *mat.SymDense) ([]float64, error) {
	patterns, err := meanPatterns(ds, descriptor, conds)
	if err != nil {
		return nil, err
	}

	diss := make([]float64, PairCount(len(conds)))
	diff := make([]float64, ds.NChannels)
	k := 0
	for i := 0; i < len(conds); i++ {
		for j := i + 1; j < len(conds); j++ {
			floats.SubTo(diff, patterns[i], patterns[j])
			diss[k] = whitenedDot(diff, diff, precision) / float64(ds.NChannels)
			k++
		}
	}
	return diss, nil
}

// calcCorrelation computes 1 - Pearson correlation between condition mean
// patterns. Each pattern is centered and scaled to unit norm once, so every
// pairwise entry reduces to a dot product.
func calcCorrelation(ds *dataset.Dataset, descriptor string, conds []float64) ([]float64, error) {
	patterns, err := meanPatterns(ds, descriptor, conds)
	if err != nil {
		return nil, err
	}

	for _, p := range patterns {
		floats.AddConst(-floats.Sum(p)/float64(len(p)), p)
		if norm := math.Sqrt(floats.Dot(p, p)); norm > 0 {
			floats.Scale(1/norm, p)
		}
	}

	diss := make([]float64, PairCount(len(conds)))
	k := 0
	for i := 0; i < len(conds); i++ {
		for j := i + 1; j < len(conds); j++ {
			diss[k] = 1 - floats.Dot(patterns[i], patterns[j])
			k++
		}
	}
	return diss, nil
}

// calcCrossnobis estimates pattern differences on independent measurement
// folds and averages the whitened products over all fold pairs. The
// cross-validation removes the positive bias of the mahalanobis estimator;
// individual entries may be negative.
func calcCrossnobis(ds *dataset.Dataset, descriptor string, conds []float64, cvKey string, precision *mat.SymDense) ([]float64, error) {
	cv, ok := ds.ObsDescriptors[cvKey]
	if !ok {
		return nil, fmt.Errorf("%w: no observation descriptor %q", ErrMissingCVDescriptor, cvKey)
	}
	folds := dataset.UniqueValues(cv)
	if len(folds) < 2 {
		return nil, fmt.Errorf("%w: descriptor %q has %d fold(s)", ErrMissingCVDescriptor, cvKey, len(folds))
	}

	// Per-fold condition mean patterns.
	foldPatterns := make([][][]float64, len(folds))
	for f, fold := range folds {
		sub, err := ds.SubsetObs(cvKey, fold)
		if err != nil {
			return nil, err
		}
		for _, c := range conds {
			if !anyValue(sub.ObsDescriptors[descriptor], c) {
				return nil, fmt.Errorf("condition %v has no observations in fold %v", c, fold)
			}
		}
		foldPatterns[f], err = meanPatterns(sub, descriptor, conds)
		if err != nil {
			return nil, err
		}
	}

	diss := make([]float64, PairCount(len(conds)))
	diffF := make([]float64, ds.NChannels)
	diffG := make([]float64, ds.NChannels)
	nFoldPairs := PairCount(len(folds))
	k := 0
	for i := 0; i < len(conds); i++ {
		for j := i + 1; j < len(conds); j++ {
			var sum float64
			for f := 0; f < len(folds); f++ {
				for g := f + 1; g < len(folds); g++ {
					floats.SubTo(diffF, foldPatterns[f][i], foldPatterns[f][j])
					floats.SubTo(diffG, foldPatterns[g][i], foldPatterns[g][j])
					sum += whitenedDot(diffF, diffG, precision)
				}
			}
			diss[k] = sum / (float64(nFoldPairs) * float64(ds.NChannels))
			k++
		}
	}
	return diss, nil
}

func anyValue(xs []float64, v float64) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
