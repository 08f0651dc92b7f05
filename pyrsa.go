package pyrsa

import (
	"context"
	"fmt"
	"time"

	"github.com/ut-382v-ashkan-and-david/pyrsa/model"
	"github.com/ut-382v-ashkan-and-david/pyrsa/rdm"
	"github.com/ut-382v-ashkan-and-david/pyrsa/volume"
)

// Pipeline runs the full searchlight analysis: generator scan, per-center
// RDM calculation, model evaluation. It is safe to reuse across runs; the
// searchlight scan is cached per mask, so repeated runs on the same mask
// (e.g. different methods or models) skip the geometry pass.
type Pipeline struct {
	radius    float64
	threshold float64
	method    rdm.Method
	opts      options

	// scan cache, keyed by mask identity
	cachedMask *volume.Mask
	cachedSL   *volume.Searchlights
}

// New creates a Pipeline. radius is the searchlight sphere radius in voxels,
// threshold the minimum mask coverage ratio for a center to be retained,
// method the dissimilarity measure. Parameters are validated here, before
// any data is touched.
func New(radius, threshold float64, method rdm.Method, opts ...Option) (*Pipeline, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrRadius, radius)
	}
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrThreshold, threshold)
	}

	o := options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
		chunks:  rdm.DefaultChunks,
	}
	for _, fn := range opts {
		fn(&o)
	}

	return &Pipeline{
		radius:    radius,
		threshold: threshold,
		method:    method,
		opts:      o,
	}, nil
}

// RunResult bundles the products of one pipeline run, all aligned to the
// same center order.
type RunResult struct {
	// Searchlights holds the retained centers and their neighborhoods.
	Searchlights *volume.Searchlights

	// RDMs holds one dissimilarity row per center.
	RDMs *rdm.RDMs

	// Results holds one evaluation result per center, or nil if the run was
	// started without models/evaluation function.
	Results []model.Result
}

// ScoreVolume scatters the scores of model m back into a flattened volume
// of the run's mask shape. Centers whose evaluation failed contribute zero.
func (r *RunResult) ScoreVolume(m int) ([]float64, error) {
	if r.Results == nil {
		return nil, fmt.Errorf("run has no evaluation results")
	}
	centers := make([]int, 0, len(r.Results))
	scores := make([]float64, 0, len(r.Results))
	for _, res := range r.Results {
		if res.Err != nil || m >= len(res.Scores) {
			continue
		}
		centers = append(centers, res.Center)
		scores = append(scores, res.Scores[m])
	}
	return volume.ScatterScores(r.Searchlights.Dims, centers, scores)
}

// Searchlights runs (or returns the cached) generator scan for the mask.
func (p *Pipeline) Searchlights(ctx context.Context, mask *volume.Mask) (*volume.Searchlights, error) {
	if mask == nil {
		return nil, ErrNilMask
	}
	if p.cachedMask == mask && p.cachedSL != nil {
		return p.cachedSL, nil
	}

	start := time.Now()
	var genOpts []volume.GenerateOption
	if p.opts.progress != nil {
		fn := p.opts.progress
		genOpts = append(genOpts, volume.WithProgress(func(done, total int) {
			fn("scan", done, total)
		}))
	}
	sl, err := volume.Generate(mask, p.radius, p.threshold, genOpts...)
	p.opts.metrics.RecordScan(slLen(sl), time.Since(start), err)
	p.opts.logger.WithRadius(p.radius).LogScan(ctx, slLen(sl), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	p.cachedMask = mask
	p.cachedSL = sl
	return sl, nil
}

// Run executes the full pipeline. data is the shared observation matrix,
// row-major with nChannels columns (for volumetric data, nChannels is the
// flattened voxel count of the mask shape); events holds one condition
// label per observation row.
//
// models and evalFn are optional: with either absent, Run stops after RDM
// calculation and RunResult.Results stays nil.
func (p *Pipeline) Run(ctx context.Context, mask *volume.Mask, data []float64, nChannels int, events []float64, models []model.Model, evalFn model.EvalFunc) (*RunResult, error) {
	sl, err := p.Searchlights(ctx, mask)
	if err != nil {
		return nil, err
	}

	slOpts := []rdm.SearchlightOption{
		rdm.WithChunks(p.opts.chunks),
		rdm.WithWorkers(p.opts.workers),
		rdm.WithCalcOptions(p.opts.calcOpts...),
	}
	if p.opts.cvDesc != nil {
		slOpts = append(slOpts, rdm.WithObsDescriptor(rdm.DefaultCVDescriptor, p.opts.cvDesc))
	}
	if p.opts.progress != nil {
		fn := p.opts.progress
		slOpts = append(slOpts, rdm.WithChunkProgress(func(done, total int) {
			fn("calc", done, total)
		}))
	}

	start := time.Now()
	rdms, err := rdm.CalcSearchlightRDMs(data, nChannels, sl, events, p.method, slOpts...)
	p.opts.metrics.RecordCalc(sl.Len(), time.Since(start), err)
	if err != nil {
		p.opts.logger.LogCalc(ctx, sl.Len(), 0, time.Since(start), err)
		return nil, err
	}
	p.opts.logger.WithMethod(p.method.String()).LogCalc(ctx, rdms.NRDM, rdms.NPairs(), time.Since(start), nil)

	result := &RunResult{Searchlights: sl, RDMs: rdms}
	if evalFn == nil || len(models) == 0 {
		return result, nil
	}

	start = time.Now()
	results, err := model.EvaluateSearchlight(ctx, rdms, models, evalFn, model.WithWorkers(p.opts.workers))
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	p.opts.metrics.RecordEvaluate(len(results), failed, time.Since(start), err)
	p.opts.logger.LogEvaluate(ctx, len(results), failed, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	result.Results = results
	return result, nil
}

func slLen(sl *volume.Searchlights) int {
	if sl == nil {
		return 0
	}
	return sl.Len()
}
