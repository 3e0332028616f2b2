// SPDX-License-Identifier: MIT

// Package matrix: functional configuration of the numeric policy.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the absolute tolerance used by symmetry checks and as
	// the convergence threshold (relative to the Frobenius norm) of Eigen.
	DefaultEpsilon = 1e-12

	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true

	// DefaultMaxRotations is the Jacobi rotation budget per unit of n².
	// The effective budget of Eigen on an n×n input is DefaultMaxRotations*n*n.
	DefaultMaxRotations = 100
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid   = "matrix: WithEpsilon: eps must be finite, non-negative"
	panicRotationsInvalid = "matrix: WithMaxRotations: budget must be > 0"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	eps            float64 // >= 0; DefaultEpsilon
	validateNaNInf bool    // DefaultValidateNaNInf
	maxRotations   int     // > 0; DefaultMaxRotations (per n²)
}

// WithEpsilon sets the numeric tolerance eps used by symmetry checks and
// eigen convergence.
// Panics with a stable message when eps is negative, NaN or ±Inf.
// Complexity: O(1).
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithValidateNaNInf enables strict rejection of NaN/±Inf on ingestion and Set.
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables NaN/±Inf rejection. Intended for scratch
// workspaces whose intermediate values are allowed to overflow.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// WithMaxRotations sets the Jacobi rotation budget per unit of n².
// Panics when k <= 0.
func WithMaxRotations(k int) Option {
	if k <= 0 {
		panic(panicRotationsInvalid)
	}

	return func(o *Options) { o.maxRotations = k }
}

// NewMatrixOptions resolves option setters against documented defaults.
// Last-writer-wins for conflicting setters.
// Complexity: O(k) for k=len(opts).
func NewMatrixOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// Epsilon reports the effective tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// ValidatesNaNInf reports whether finite-value validation is enabled.
func (o Options) ValidatesNaNInf() bool { return o.validateNaNInf }

// MaxRotations reports the effective rotation budget for an n×n input.
func (o Options) MaxRotations(n int) int { return o.maxRotations * n * n }

// gatherOptions applies user-provided Option setters on top of defaults.
// This is the canonical internal entry in api/impl layers.
func gatherOptions(user ...Option) Options {
	o := Options{
		eps:            DefaultEpsilon,
		validateNaNInf: DefaultValidateNaNInf,
		maxRotations:   DefaultMaxRotations,
	}
	for _, set := range user {
		set(&o) // apply in order; last-writer-wins semantics
	}

	return o
}
