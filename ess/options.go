// SPDX-License-Identifier: MIT
// Package ess: functional configuration of the autocorrelation sum.
package ess

import "fmt"

// Truncation selects where the autocorrelation sum stops.
type Truncation int

const (
	// TruncateInitialMonotone sums paired autocorrelations
	// Γ_k = ρ(2k) + ρ(2k+1) until the first non-positive pair, forcing the
	// pairs to be non-increasing (Geyer's initial monotone sequence).
	TruncateInitialMonotone Truncation = iota

	// TruncateFirstNegative sums ρ(1), ρ(2), ... until the first negative lag.
	TruncateFirstNegative
)

// String implements fmt.Stringer.
func (t Truncation) String() string {
	switch t {
	case TruncateInitialMonotone:
		return "initial-monotone"
	case TruncateFirstNegative:
		return "first-negative"
	default:
		return fmt.Sprintf("Truncation(%d)", int(t))
	}
}

// ParseTruncation maps the String form back to a Truncation.
func ParseTruncation(s string) (Truncation, error) {
	switch s {
	case "initial-monotone", "monotone", "":
		return TruncateInitialMonotone, nil
	case "first-negative":
		return TruncateFirstNegative, nil
	default:
		return 0, fmt.Errorf("ess: unknown truncation %q", s)
	}
}

const (
	// DefaultTruncation is the truncation rule used when none is set.
	DefaultTruncation = TruncateInitialMonotone

	// DefaultMaxLag caps the autocorrelation sum; the effective cap is
	// min(n-1, DefaultMaxLag).
	DefaultMaxLag = 1000
)

const (
	panicTruncationInvalid = "ess: WithTruncation: unknown rule"
	panicMaxLagInvalid     = "ess: WithMaxLag: lag must be >= 1"
)

// Option mutates Options.
type Option func(*Options)

// Options stores the effective configuration.
type Options struct {
	truncation Truncation
	maxLag     int
}

// WithTruncation selects the truncation rule.
func WithTruncation(t Truncation) Option {
	if t != TruncateInitialMonotone && t != TruncateFirstNegative {
		panic(panicTruncationInvalid)
	}

	return func(o *Options) { o.truncation = t }
}

// WithMaxLag caps the highest lag summed (still bounded by n-1).
func WithMaxLag(k int) Option {
	if k < 1 {
		panic(panicMaxLagInvalid)
	}

	return func(o *Options) { o.maxLag = k }
}

func gatherOptions(user ...Option) Options {
	o := Options{truncation: DefaultTruncation, maxLag: DefaultMaxLag}
	for _, set := range user {
		set(&o)
	}

	return o
}
