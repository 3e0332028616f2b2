// SPDX-License-Identifier: MIT
// Package psrf: functional configuration of the batch layout and the
// numeric guards of the multivariate factor.
//
// Invalid option values panic at construction (programmer error); runtime
// parameters such as alpha are validated by the diagnostics and returned
// as chain.ErrInvalidParameter.
package psrf

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultBatches is the number of contiguous batches a chain is split into.
	DefaultBatches = 10

	// DefaultMinBatchLength is the shortest batch accepted; shorter chains
	// shrink the batch count down to 2 before failing.
	DefaultMinBatchLength = 10

	// DefaultConditionLimit bounds the condition number of the within-batch
	// covariance W before the multivariate factor gives up.
	DefaultConditionLimit = 1e12

	// DefaultEigenTolerance is the relative off-diagonal tolerance of the
	// Jacobi solve.
	DefaultEigenTolerance = 1e-12

	// DefaultMaxSweeps is the Jacobi rotation budget per unit of d².
	DefaultMaxSweeps = 200

	// ConvergenceThreshold is the conventional cut-off below which a shrink
	// factor indicates convergence.
	ConvergenceThreshold = 1.1
)

const (
	panicBatchesInvalid   = "psrf: WithBatches: count must be >= 2"
	panicMinLengthInvalid = "psrf: WithMinBatchLength: length must be >= 2"
	panicConditionInvalid = "psrf: WithConditionLimit: limit must be finite and >= 1"
	panicToleranceInvalid = "psrf: WithEigenTolerance: tol must be finite and > 0"
	panicSweepsInvalid    = "psrf: WithMaxSweeps: budget must be > 0"
)

// Option mutates Options.
type Option func(*Options)

// Options stores the effective configuration.
type Options struct {
	batches        int
	minBatchLength int
	conditionLimit float64
	eigenTol       float64
	maxSweeps      int
}

// WithBatches sets the batch count m.
func WithBatches(m int) Option {
	if m < 2 {
		panic(panicBatchesInvalid)
	}

	return func(o *Options) { o.batches = m }
}

// WithMinBatchLength sets the minimum batch length.
func WithMinBatchLength(l int) Option {
	if l < 2 {
		panic(panicMinLengthInvalid)
	}

	return func(o *Options) { o.minBatchLength = l }
}

// WithConditionLimit sets the largest acceptable condition number of W.
func WithConditionLimit(c float64) Option {
	if math.IsNaN(c) || math.IsInf(c, 0) || c < 1 {
		panic(panicConditionInvalid)
	}

	return func(o *Options) { o.conditionLimit = c }
}

// WithEigenTolerance sets the Jacobi convergence tolerance.
func WithEigenTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.eigenTol = tol }
}

// WithMaxSweeps sets the Jacobi rotation budget per unit of d².
func WithMaxSweeps(k int) Option {
	if k <= 0 {
		panic(panicSweepsInvalid)
	}

	return func(o *Options) { o.maxSweeps = k }
}

// Batches reports the configured batch count.
func (o Options) Batches() int { return o.batches }

// MinBatchLength reports the configured minimum batch length.
func (o Options) MinBatchLength() int { return o.minBatchLength }

// NewOptions resolves setters against the documented defaults.
func NewOptions(opts ...Option) Options { return gatherOptions(opts...) }

func gatherOptions(user ...Option) Options {
	o := Options{
		batches:        DefaultBatches,
		minBatchLength: DefaultMinBatchLength,
		conditionLimit: DefaultConditionLimit,
		eigenTol:       DefaultEigenTolerance,
		maxSweeps:      DefaultMaxSweeps,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}

// Converged reports whether every finite score is below
// ConvergenceThreshold. NaN scores (failed dimensions) count as not
// converged; no scores is not converged.
func Converged(scores ...float64) bool {
	if len(scores) == 0 {
		return false
	}
	for _, r := range scores {
		if !(r < ConvergenceThreshold) {
			return false
		}
	}

	return true
}
