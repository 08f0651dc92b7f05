package rdm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ut-382v-ashkan-and-david/pyrsa/internal/vecmath"
)

// CompareMethod selects the similarity measure used to compare two
// dissimilarity vectors (e.g. model RDM against data RDM).
type CompareMethod int

const (
	// CompareCorr is the Pearson correlation between the two vectors.
	CompareCorr CompareMethod = iota

	// CompareCosine is the cosine similarity between the two vectors.
	CompareCosine

	// CompareSpearman is the Pearson correlation of the rank transforms.
	CompareSpearman

	// CompareKendall is Kendall's tau between the two vectors.
	CompareKendall
)

func (m CompareMethod) String() string {
	switch m {
	case CompareCorr:
		return "corr"
	case CompareCosine:
		return "cosine"
	case CompareSpearman:
		return "spearman"
	case CompareKendall:
		return "kendall"
	default:
		return fmt.Sprintf("unknown(%d)", m)
	}
}

// ParseCompareMethod resolves a comparison method by its stable string name.
func ParseCompareMethod(name string) (CompareMethod, error) {
	switch name {
	case "corr":
		return CompareCorr, nil
	case "cosine":
		return CompareCosine, nil
	case "spearman":
		return CompareSpearman, nil
	case "kendall":
		return CompareKendall, nil
	default:
		return 0, &ErrUnknownMethod{Name: name}
	}
}

// Compare computes the similarity of two dissimilarity vectors under the
// given method. Both vectors must have the same length.
func Compare(a, b []float64, method CompareMethod) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("cannot compare rdm vectors of length %d and %d", len(a), len(b))
	}
	switch method {
	case CompareCorr:
		return stat.Correlation(a, b, nil), nil
	case CompareCosine:
		na := math.Sqrt(floats.Dot(a, a))
		nb := math.Sqrt(floats.Dot(b, b))
		if na == 0 || nb == 0 {
			return 0, nil
		}
		return floats.Dot(a, b) / (na * nb), nil
	case CompareSpearman:
		return stat.Correlation(vecmath.Rank(a), vecmath.Rank(b), nil), nil
	case CompareKendall:
		return stat.Kendall(a, b, nil), nil
	default:
		return 0, &ErrUnknownMethod{Name: method.String()}
	}
}
