package pyrsa

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting pipeline metrics.
// Implement this interface to integrate with monitoring systems.
type MetricsCollector interface {
	// RecordScan is called after each searchlight generator scan.
	RecordScan(centers int, duration time.Duration, err error)

	// RecordCalc is called after each searchlight RDM calculation.
	RecordCalc(centers int, duration time.Duration, err error)

	// RecordEvaluate is called after each model evaluation pass.
	// failed is the number of centers whose evaluation recorded an error.
	RecordEvaluate(centers, failed int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordScan(int, time.Duration, error)          {}
func (NoopMetricsCollector) RecordCalc(int, time.Duration, error)          {}
func (NoopMetricsCollector) RecordEvaluate(int, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and tests without external dependencies.
type BasicMetricsCollector struct {
	ScanCount        atomic.Int64
	ScanErrors       atomic.Int64
	ScanTotalNanos   atomic.Int64
	CalcCount        atomic.Int64
	CalcErrors       atomic.Int64
	CalcTotalNanos   atomic.Int64
	EvalCount        atomic.Int64
	EvalErrors       atomic.Int64
	EvalCenterErrors atomic.Int64
	EvalTotalNanos   atomic.Int64
}

func (c *BasicMetricsCollector) RecordScan(centers int, d time.Duration, err error) {
	c.ScanCount.Add(1)
	c.ScanTotalNanos.Add(int64(d))
	if err != nil {
		c.ScanErrors.Add(1)
	}
}

func (c *BasicMetricsCollector) RecordCalc(centers int, d time.Duration, err error) {
	c.CalcCount.Add(1)
	c.CalcTotalNanos.Add(int64(d))
	if err != nil {
		c.CalcErrors.Add(1)
	}
}

func (c *BasicMetricsCollector) RecordEvaluate(centers, failed int, d time.Duration, err error) {
	c.EvalCount.Add(1)
	c.EvalTotalNanos.Add(int64(d))
	c.EvalCenterErrors.Add(int64(failed))
	if err != nil {
		c.EvalErrors.Add(1)
	}
}
