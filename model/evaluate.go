package model

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/ut-382v-ashkan-and-david/pyrsa/rdm"
)

// ErrNoEvalFunc is returned when the evaluator is called without an
// evaluation function.
var ErrNoEvalFunc = errors.New("evaluation function must not be nil")

// Result is the evaluation outcome for one searchlight center.
//
// A failed evaluation is recorded in Err rather than dropped: silently
// skipping a center would desynchronize the result order from the RDM rows.
type Result struct {
	// Center is the raveled voxel index of the searchlight center, or -1 if
	// the RDM collection carries no voxel indices.
	Center int

	// Scores holds one score per model, aligned to the models passed in.
	// Nil when Err is set.
	Scores []float64

	// Err is the per-center evaluation failure, if any.
	Err error
}

// EvaluateOption configures a searchlight evaluation.
type EvaluateOption func(*evaluateOptions)

type evaluateOptions struct {
	workers int
}

// WithWorkers fans the evaluation out over at most n goroutines. Centers are
// independent and results are written by input position, so ordering is
// preserved regardless of scheduling. n <= 1 evaluates sequentially.
func WithWorkers(n int) EvaluateOption {
	return func(o *evaluateOptions) {
		o.workers = n
	}
}

// EvaluateSearchlight applies evalFn to every searchlight RDM in the
// collection and returns one Result per center, in the collection's row
// order.
//
// Per-center failures are recorded in the corresponding Result and do not
// abort the run; the returned error is non-nil only when the whole
// evaluation cannot proceed (nil evalFn, context cancellation).
func EvaluateSearchlight(ctx context.Context, rdms *rdm.RDMs, models []Model, evalFn EvalFunc, opts ...EvaluateOption) ([]Result, error) {
	if evalFn == nil {
		return nil, ErrNoEvalFunc
	}

	var o evaluateOptions
	for _, fn := range opts {
		fn(&o)
	}

	voxels := rdms.VoxelIndices()
	results := make([]Result, rdms.NRDM)

	evalOne := func(i int) {
		center := -1
		if voxels != nil {
			center = voxels[i]
		}
		single, err := rdms.Subset(i)
		if err != nil {
			results[i] = Result{Center: center, Err: err}
			return
		}
		scores, err := evalFn(models, single)
		results[i] = Result{Center: center, Scores: scores, Err: err}
	}

	if o.workers > 1 {
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(o.workers)
		for i := 0; i < rdms.NRDM; i++ {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				// Each goroutine writes only results[i]; no locking needed.
				evalOne(i)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return results, nil
	}

	for i := 0; i < rdms.NRDM; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		evalOne(i)
	}
	return results, nil
}
