// SPDX-License-Identifier: MIT

package batch

import (
	"fmt"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/chaindiag/chain"
)

// BartlettLag returns the automatic truncation lag 2·⌊n^{1/3}⌋, capped at n-1.
func BartlettLag(n int) int {
	l := 0
	for (l+1)*(l+1)*(l+1) <= n {
		l++
	}
	if lag := 2 * l; lag < n {
		return lag
	}

	return n - 1
}

// SpectralDensityZero estimates the spectral density of x at frequency
// zero with a Bartlett lag window:
//
//	S(0) = γ(0) + 2 Σ_{k=1..L} (1 - k/(L+1)) γ(k)
//
// lag ≤ 0 selects BartlettLag(len(x)); larger lags are capped at n-1.
// S(0)/n is the variance of the sample mean under autocorrelation.
//
// Errors: chain.ErrInsufficientSamples for fewer than 2 values.
// Complexity: O(n·L).
func SpectralDensityZero(x []float64, lag int) (float64, error) {
	n := len(x)
	if n < 2 {
		return 0, batchErrorf("SpectralDensityZero", fmt.Errorf("%d values: %w", n, chain.ErrInsufficientSamples))
	}
	if lag <= 0 {
		lag = BartlettLag(n)
	}
	if lag > n-1 {
		lag = n - 1
	}
	c, _ := Center(x)
	s := AutocovarianceCentered(c, 0)
	for k := 1; k <= lag; k++ {
		s += 2 * (1 - float64(k)/float64(lag+1)) * AutocovarianceCentered(c, k)
	}

	return s, nil
}

// Quantile returns the empirical p-quantile of an ascending slice: the
// smallest sorted[i] with (i+1) ≥ p·n.
// The caller guarantees len(sorted) > 0 and p ∈ [0,1].
func Quantile(sorted []float64, p float64) float64 {
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// Sorted returns an ascending copy of x.
func Sorted(x []float64) []float64 {
	s := make([]float64, len(x))
	copy(s, x)
	slices.Sort(s)

	return s
}

// IntervalLength returns the length of the central (1-alpha) empirical
// interval of x: Q(1-alpha/2) - Q(alpha/2).
//
// Errors:
//   - chain.ErrInvalidParameter unless alpha ∈ (0,1).
//   - chain.ErrInsufficientSamples for fewer than 2 values.
func IntervalLength(x []float64, alpha float64) (float64, error) {
	if !(alpha > 0 && alpha < 1) {
		return 0, batchErrorf("IntervalLength", fmt.Errorf("alpha %v: %w", alpha, chain.ErrInvalidParameter))
	}
	if len(x) < 2 {
		return 0, batchErrorf("IntervalLength", fmt.Errorf("%d values: %w", len(x), chain.ErrInsufficientSamples))
	}
	s := Sorted(x)

	return Quantile(s, 1-alpha/2) - Quantile(s, alpha/2), nil
}
