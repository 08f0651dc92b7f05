package rdm

import "fmt"

// Method selects the dissimilarity measure used for RDM calculation.
type Method int

const (
	// MethodEuclidean is the squared Euclidean distance between condition
	// mean patterns, normalized by the number of channels.
	MethodEuclidean Method = iota

	// MethodCorrelation is 1 minus the Pearson correlation between condition
	// mean patterns; values fall in [0, 2].
	MethodCorrelation

	// MethodMahalanobis is the noise-precision-whitened variant of
	// MethodEuclidean. With the default identity precision it coincides with
	// MethodEuclidean.
	MethodMahalanobis

	// MethodCrossnobis is the cross-validated Mahalanobis distance: pattern
	// differences are estimated on independent measurement folds, removing
	// the positive bias of MethodMahalanobis. Estimates may be negative.
	MethodCrossnobis
)

func (m Method) String() string {
	switch m {
	case MethodEuclidean:
		return "euclidean"
	case MethodCorrelation:
		return "correlation"
	case MethodMahalanobis:
		return "mahalanobis"
	case MethodCrossnobis:
		return "crossnobis"
	default:
		return fmt.Sprintf("unknown(%d)", m)
	}
}

// ErrUnknownMethod indicates an unrecognized dissimilarity method name.
type ErrUnknownMethod struct {
	Name string
}

func (e *ErrUnknownMethod) Error() string {
	return fmt.Sprintf("unknown dissimilarity method %q", e.Name)
}

// ParseMethod resolves a method by its stable string name.
func ParseMethod(name string) (Method, error) {
	switch name {
	case "euclidean":
		return MethodEuclidean, nil
	case "correlation":
		return MethodCorrelation, nil
	case "mahalanobis":
		return MethodMahalanobis, nil
	case "crossnobis":
		return MethodCrossnobis, nil
	default:
		return 0, &ErrUnknownMethod{Name: name}
	}
}
