// SPDX-License-Identifier: MIT

package raftery

import "math"

const (
	// DefaultConvergenceEpsilon is the tolerance ε on the distance between
	// the k-step transition probabilities and the stationary distribution
	// that defines the burn-in.
	DefaultConvergenceEpsilon = 0.001

	// DefaultMaxThin of 0 bounds the thinning search only by the chain length.
	DefaultMaxThin = 0

	// Conventional targets: the 2.5% quantile to within ±0.01 with 95% probability.
	DefaultQuantile    = 0.025
	DefaultPrecision   = 0.01
	DefaultProbability = 0.95
)

const (
	panicEpsilonInvalid = "raftery: WithConvergenceEpsilon: eps must be in (0,1)"
	panicMaxThinInvalid = "raftery: WithMaxThin: limit must be >= 0"
)

// Option mutates Options.
type Option func(*Options)

// Options stores the effective configuration.
type Options struct {
	epsilon float64
	maxThin int
}

// WithConvergenceEpsilon sets the burn-in tolerance ε.
func WithConvergenceEpsilon(eps float64) Option {
	if math.IsNaN(eps) || eps <= 0 || eps >= 1 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.epsilon = eps }
}

// WithMaxThin caps the thinning search; 0 removes the cap.
func WithMaxThin(k int) Option {
	if k < 0 {
		panic(panicMaxThinInvalid)
	}

	return func(o *Options) { o.maxThin = k }
}

func gatherOptions(user ...Option) Options {
	o := Options{epsilon: DefaultConvergenceEpsilon, maxThin: DefaultMaxThin}
	for _, set := range user {
		set(&o)
	}

	return o
}
