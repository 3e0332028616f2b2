// SPDX-License-Identifier: MIT

package psrf

import (
	"fmt"
	"math"

	"github.com/katalvlaran/chaindiag/batch"
	"github.com/katalvlaran/chaindiag/chain"
)

// Interval returns the interval-based shrink factor of every dimension:
// the length of the pooled central (1-alpha) empirical interval over all
// batched draws, divided by the mean of the per-batch interval lengths.
// Unlike Univariate it assumes nothing about normality.
//
// Errors:
//   - chain.ErrInvalidParameter unless alpha ∈ (0,1).
//   - chain.ErrInsufficientSamples for chains too short for two batches.
//   - per dimension, chain.ErrDegenerateVariance when the mean batch
//     interval is zero (NaN in that slot).
func Interval(s *chain.Samples, alpha float64, opts ...Option) ([]float64, error) {
	if !(alpha > 0 && alpha < 1) {
		return nil, psrfErrorf(opInterval, fmt.Errorf("alpha %v: %w", alpha, chain.ErrInvalidParameter))
	}
	o := gatherOptions(opts...)
	p, err := partition(s, o)
	if err != nil {
		return nil, psrfErrorf(opInterval, err)
	}

	out := make([]float64, s.Dims())
	lengths := make([]float64, p.Count)
	var errs error
	for i := range out {
		row, err := s.Row(i)
		if err != nil {
			return nil, psrfErrorf(opInterval, err)
		}
		pooled, err := batch.IntervalLength(p.Used(row), alpha)
		if err != nil {
			return nil, psrfErrorf(opInterval, err)
		}
		for j := range lengths {
			if lengths[j], err = batch.IntervalLength(p.Batch(row, j), alpha); err != nil {
				return nil, psrfErrorf(opInterval, err)
			}
		}
		within := batch.Mean(lengths)
		if within == 0 {
			out[i] = math.NaN()
			errs = chain.AppendDimensionError(errs, i, chain.ErrDegenerateVariance)
			continue
		}
		out[i] = pooled / within
	}
	if errs != nil {
		return out, psrfErrorf(opInterval, errs)
	}

	return out, nil
}
