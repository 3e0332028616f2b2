// SPDX-License-Identifier: MIT

// Package geweke implements Geweke's test for equality of the means of an
// early and a late window of a chain.
//
// For each dimension the test compares the mean of the first ⌊frac1·n⌋
// draws with the mean of the last ⌊frac2·n⌋ draws,
//
//	z = (meanA - meanB) / sqrt(S_A(0)/n_A + S_B(0)/n_B)
//
// where S(0) is the Bartlett lag-window spectral density at zero of each
// window. Under stationarity z is asymptotically standard normal.
package geweke

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/chaindiag/batch"
	"github.com/katalvlaran/chaindiag/chain"
)

// Result carries the per-dimension statistics and the joint verdict.
type Result struct {
	Z        []float64 // z-score per dimension; NaN for failed dimensions
	PValues  []float64 // two-sided p-value per dimension
	Critical float64   // |z| bound used for the verdict
	Passed   bool      // every dimension has |z| < Critical
}

// gewekeErrorf wraps err with the Test tag.
func gewekeErrorf(err error) error {
	return fmt.Errorf("geweke.Test: %w", err)
}

// Test runs Geweke's test on every dimension of s.
//
// Errors:
//   - chain.ErrInvalidParameter unless frac1, frac2 ∈ (0,1) and frac1+frac2 ≤ 1.
//   - chain.ErrInsufficientSamples when a window is shorter than MinWindow.
//   - per dimension, chain.ErrDegenerateVariance when either window has a
//     zero spectral density; that dimension holds NaN and fails the test.
func Test(s *chain.Samples, frac1, frac2 float64, opts ...Option) (Result, error) {
	if !(frac1 > 0 && frac1 < 1) || !(frac2 > 0 && frac2 < 1) || frac1+frac2 > 1 {
		return Result{}, gewekeErrorf(fmt.Errorf("frac1=%v frac2=%v: %w", frac1, frac2, chain.ErrInvalidParameter))
	}
	o := gatherOptions(opts...)

	n := s.Len()
	na, nb := int(frac1*float64(n)), int(frac2*float64(n))
	if na < o.minWindow || nb < o.minWindow {
		return Result{}, gewekeErrorf(fmt.Errorf("windows of %d and %d draws, need %d: %w", na, nb, o.minWindow, chain.ErrInsufficientSamples))
	}

	alpha := o.alpha
	if o.bonferroni {
		alpha /= float64(s.Dims())
	}
	norm := distuv.UnitNormal
	res := Result{
		Z:        make([]float64, s.Dims()),
		PValues:  make([]float64, s.Dims()),
		Critical: norm.Quantile(1 - alpha/2),
		Passed:   true,
	}

	var errs error
	for i := range res.Z {
		row, err := s.Row(i)
		if err != nil {
			return Result{}, gewekeErrorf(err)
		}
		z, err := zScore(row[:na], row[n-nb:], o.spectralLag)
		if err != nil {
			res.Z[i], res.PValues[i] = math.NaN(), math.NaN()
			res.Passed = false
			errs = chain.AppendDimensionError(errs, i, err)
			continue
		}
		res.Z[i] = z
		res.PValues[i] = 2 * norm.Survival(math.Abs(z))
		if !(math.Abs(z) < res.Critical) {
			res.Passed = false
		}
	}
	if errs != nil {
		return res, gewekeErrorf(errs)
	}

	return res, nil
}

// zScore compares the means of windows a and b.
func zScore(a, b []float64, lag int) (float64, error) {
	sa, err := batch.SpectralDensityZero(a, lag)
	if err != nil {
		return 0, err
	}
	sb, err := batch.SpectralDensityZero(b, lag)
	if err != nil {
		return 0, err
	}
	if !(sa > 0) {
		return 0, fmt.Errorf("early window: %w", chain.ErrDegenerateVariance)
	}
	if !(sb > 0) {
		return 0, fmt.Errorf("late window: %w", chain.ErrDegenerateVariance)
	}
	se2 := sa/float64(len(a)) + sb/float64(len(b))

	return (batch.Mean(a) - batch.Mean(b)) / math.Sqrt(se2), nil
}
