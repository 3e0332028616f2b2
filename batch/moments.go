// SPDX-License-Identifier: MIT
// Package batch: scalar moments and autocovariances of one sequence.
//
// Purpose:
//   - Single-pass Welford mean/variance (n-1 denominator).
//   - Autocovariance with the biased 1/n normalization, which keeps the
//     autocovariance sequence positive semi-definite.
//
// Determinism:
//   - Fixed left-to-right accumulation; identical input ⇒ identical bits.

package batch

import (
	"fmt"
	"math"

	"github.com/katalvlaran/chaindiag/chain"
)

// batchErrorf wraps err with a batch operation tag.
func batchErrorf(tag string, err error) error {
	return fmt.Errorf("batch.%s: %w", tag, err)
}

// Mean returns the arithmetic mean of x, or NaN for an empty slice.
// Complexity: O(n).
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	var m float64
	for i, v := range x {
		m += (v - m) / float64(i+1)
	}

	return m
}

// MeanVariance returns the mean and the unbiased sample variance of x in
// one Welford pass.
//
// Errors: chain.ErrInsufficientSamples when len(x) < 2.
// Complexity: O(n).
func MeanVariance(x []float64) (mean, variance float64, err error) {
	if len(x) < 2 {
		return 0, 0, batchErrorf("MeanVariance", fmt.Errorf("%d values: %w", len(x), chain.ErrInsufficientSamples))
	}
	var (
		m, m2, delta float64
		k            float64
	)
	for _, v := range x {
		k++
		delta = v - m
		m += delta / k
		m2 += delta * (v - m)
	}

	return m, m2 / (k - 1), nil
}

// Variance returns the unbiased sample variance of x. See MeanVariance.
func Variance(x []float64) (float64, error) {
	_, v, err := MeanVariance(x)

	return v, err
}

// Center returns x minus its mean as a fresh slice, plus the mean.
func Center(x []float64) ([]float64, float64) {
	mu := Mean(x)
	c := make([]float64, len(x))
	for i, v := range x {
		c[i] = v - mu
	}

	return c, mu
}

// AutocovarianceCentered returns Σ_{t≥lag} c[t]·c[t-lag] / n for an already
// centered sequence c. Callers that sweep many lags center once and call
// this per lag.
// Complexity: O(n-lag).
func AutocovarianceCentered(c []float64, lag int) float64 {
	n := len(c)
	var s float64
	for t := lag; t < n; t++ {
		s += c[t] * c[t-lag]
	}

	return s / float64(n)
}

// Autocovariance returns the lag-k autocovariance of x (1/n normalization).
//
// Errors: chain.ErrInvalidParameter unless 0 ≤ lag < len(x).
func Autocovariance(x []float64, lag int) (float64, error) {
	if lag < 0 || lag >= len(x) {
		return 0, batchErrorf("Autocovariance", fmt.Errorf("lag %d for %d values: %w", lag, len(x), chain.ErrInvalidParameter))
	}
	c, _ := Center(x)

	return AutocovarianceCentered(c, lag), nil
}

// Autocorrelation returns ρ(0..maxLag), ρ(k) = γ(k)/γ(0).
//
// Errors:
//   - chain.ErrInvalidParameter unless 0 ≤ maxLag < len(x).
//   - chain.ErrDegenerateVariance when x is constant.
//
// Complexity: O(n·maxLag).
func Autocorrelation(x []float64, maxLag int) ([]float64, error) {
	if maxLag < 0 || maxLag >= len(x) {
		return nil, batchErrorf("Autocorrelation", fmt.Errorf("lag %d for %d values: %w", maxLag, len(x), chain.ErrInvalidParameter))
	}
	c, _ := Center(x)
	g0 := AutocovarianceCentered(c, 0)
	if g0 == 0 {
		return nil, batchErrorf("Autocorrelation", chain.ErrDegenerateVariance)
	}
	rho := make([]float64, maxLag+1)
	rho[0] = 1
	for k := 1; k <= maxLag; k++ {
		rho[k] = AutocovarianceCentered(c, k) / g0
	}

	return rho, nil
}
