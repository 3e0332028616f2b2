// SPDX-License-Identifier: MIT

// Package ess estimates the effective sample size of every dimension of a
// chain: the number of independent draws carrying the same information
// about the mean as the correlated draws at hand,
//
//	ESS = n / τ,  τ = 1 + 2 Σ_{k≥1} ρ(k)
//
// with the sum truncated by a configurable rule. τ is floored at
// 1/log10(n), which bounds ESS by n·log10(n) on antithetic chains.
package ess

import (
	"fmt"
	"math"

	"github.com/katalvlaran/chaindiag/batch"
	"github.com/katalvlaran/chaindiag/chain"
)

// Result carries the per-dimension sizes and their minimum.
type Result struct {
	Values []float64 // one ESS per dimension; NaN for failed dimensions
	Min    float64   // minimum over finite Values; NaN if none
	MinDim int       // index of Min; -1 if none
}

// Compute returns the effective sample size of every dimension of s.
//
// A constant dimension holds NaN and contributes a *chain.DimensionError
// wrapping chain.ErrDegenerateVariance; the other slots are still filled.
func Compute(s *chain.Samples, opts ...Option) (Result, error) {
	res := Result{Values: make([]float64, s.Dims()), Min: math.NaN(), MinDim: -1}

	var errs error
	for i := range res.Values {
		row, err := s.Row(i)
		if err != nil {
			return Result{}, fmt.Errorf("ess.Compute: %w", err)
		}
		v, err := Sequence(row, opts...)
		if err != nil {
			res.Values[i] = math.NaN()
			errs = chain.AppendDimensionError(errs, i, err)
			continue
		}
		res.Values[i] = v
		if res.MinDim < 0 || v < res.Min {
			res.Min, res.MinDim = v, i
		}
	}
	if errs != nil {
		return res, fmt.Errorf("ess.Compute: %w", errs)
	}

	return res, nil
}

// Sequence returns the effective sample size of a single sequence.
//
// Errors: chain.ErrInsufficientSamples for fewer than 2 values,
// chain.ErrDegenerateVariance for a constant sequence.
func Sequence(x []float64, opts ...Option) (float64, error) {
	o := gatherOptions(opts...)
	n := len(x)
	if n < chain.MinDraws {
		return math.NaN(), fmt.Errorf("%d values: %w", n, chain.ErrInsufficientSamples)
	}
	c, _ := batch.Center(x)
	g0 := batch.AutocovarianceCentered(c, 0)
	if g0 == 0 {
		return math.NaN(), chain.ErrDegenerateVariance
	}
	maxLag := o.maxLag
	if maxLag > n-1 {
		maxLag = n - 1
	}

	var tau float64
	switch o.truncation {
	case TruncateFirstNegative:
		tau = firstNegative(c, g0, maxLag)
	default:
		tau = initialMonotone(c, g0, maxLag)
	}
	if floor := 1 / math.Log10(float64(n)); tau < floor {
		tau = floor
	}

	return float64(n) / tau, nil
}

// initialMonotone returns τ = -1 + 2 Σ Γ_k over the initial positive,
// monotone run of paired autocorrelations (Γ_0 = 1 + ρ(1)).
func initialMonotone(c []float64, g0 float64, maxLag int) float64 {
	sum, prev := 0.0, math.Inf(1)
	var gamma float64
	for k := 0; 2*k+1 <= maxLag; k++ {
		gamma = (batch.AutocovarianceCentered(c, 2*k) + batch.AutocovarianceCentered(c, 2*k+1)) / g0
		if gamma <= 0 {
			break
		}
		if gamma > prev {
			gamma = prev
		}
		prev = gamma
		sum += gamma
	}

	return -1 + 2*sum
}

// firstNegative returns τ = 1 + 2 Σ ρ(k) up to the first negative ρ(k).
func firstNegative(c []float64, g0 float64, maxLag int) float64 {
	var sum, rho float64
	for k := 1; k <= maxLag; k++ {
		rho = batch.AutocovarianceCentered(c, k) / g0
		if rho < 0 {
			break
		}
		sum += rho
	}

	return 1 + 2*sum
}
