// SPDX-License-Identifier: MIT

package geweke

import "math"

const (
	// DefaultAlpha is the two-sided significance level of the verdict.
	DefaultAlpha = 0.05

	// DefaultSpectralLag selects the automatic Bartlett lag 2·⌊n_w^{1/3}⌋.
	DefaultSpectralLag = 0

	// MinWindow is the shortest window accepted by default.
	MinWindow = 10

	// DefaultFirst and DefaultLast are the conventional window fractions.
	DefaultFirst = 0.1
	DefaultLast  = 0.5
)

const (
	panicAlphaInvalid  = "geweke: WithAlpha: alpha must be in (0,1)"
	panicLagInvalid    = "geweke: WithSpectralLag: lag must be >= 0"
	panicWindowInvalid = "geweke: WithMinWindow: window must be >= 2"
)

// Option mutates Options.
type Option func(*Options)

// Options stores the effective configuration.
type Options struct {
	alpha       float64
	spectralLag int
	minWindow   int
	bonferroni  bool
}

// WithAlpha sets the significance level.
func WithAlpha(a float64) Option {
	if math.IsNaN(a) || a <= 0 || a >= 1 {
		panic(panicAlphaInvalid)
	}

	return func(o *Options) { o.alpha = a }
}

// WithSpectralLag fixes the Bartlett truncation lag; 0 selects it
// automatically per window.
func WithSpectralLag(l int) Option {
	if l < 0 {
		panic(panicLagInvalid)
	}

	return func(o *Options) { o.spectralLag = l }
}

// WithMinWindow sets the shortest acceptable window.
func WithMinWindow(w int) Option {
	if w < 2 {
		panic(panicWindowInvalid)
	}

	return func(o *Options) { o.minWindow = w }
}

// WithBonferroni divides alpha by the number of dimensions, controlling the
// family-wise error of the joint verdict.
func WithBonferroni() Option {
	return func(o *Options) { o.bonferroni = true }
}

func gatherOptions(user ...Option) Options {
	o := Options{
		alpha:       DefaultAlpha,
		spectralLag: DefaultSpectralLag,
		minWindow:   MinWindow,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
