package pyrsa

import (
	"github.com/ut-382v-ashkan-and-david/pyrsa/rdm"
)

type options struct {
	logger   *Logger
	metrics  MetricsCollector
	chunks   int
	workers  int
	calcOpts []rdm.CalcOption
	cvDesc   []float64
	progress func(stage string, done, total int)
}

// Option configures a Pipeline.
type Option func(*options)

// WithLogger sets the structured logger. The default logs nothing.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics sets the metrics collector. The default collects nothing.
func WithMetrics(m MetricsCollector) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithChunks overrides the number of center batches used by the RDM
// calculator (default rdm.DefaultChunks).
func WithChunks(n int) Option {
	return func(o *options) {
		o.chunks = n
	}
}

// WithWorkers enables parallel execution with at most n workers for both the
// RDM calculator's chunk processing and the model evaluator's center
// fan-out. n <= 1 keeps the pipeline sequential (the default).
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithCalcOptions passes calculation options (noise precision,
// cross-validation descriptor key) through to the RDM calculator.
func WithCalcOptions(opts ...rdm.CalcOption) Option {
	return func(o *options) {
		o.calcOpts = append(o.calcOpts, opts...)
	}
}

// WithCVFolds attaches per-observation cross-validation fold labels, as
// required by the crossnobis method.
func WithCVFolds(folds []float64) Option {
	return func(o *options) {
		o.cvDesc = folds
	}
}

// WithProgress installs a progress callback invoked during long stages with
// the stage name ("scan" or "calc") and completion counts. Observational
// only; rate-limited by the underlying stages.
func WithProgress(fn func(stage string, done, total int)) Option {
	return func(o *options) {
		o.progress = fn
	}
}
