// SPDX-License-Identifier: MIT

package psrf

import (
	"fmt"
	"math"

	"github.com/katalvlaran/chaindiag/batch"
	"github.com/katalvlaran/chaindiag/chain"
)

const (
	opUnivariate   = "Univariate"
	opMultivariate = "Multivariate"
	opInterval     = "Interval"
)

// psrfErrorf wraps err with a psrf operation tag.
func psrfErrorf(tag string, err error) error {
	return fmt.Errorf("psrf.%s: %w", tag, err)
}

// partition plans the batch layout for s under o.
func partition(s *chain.Samples, o Options) (batch.Partition, error) {
	return batch.NewPartition(s.Len(), o.batches, o.minBatchLength)
}

// Univariate returns the potential scale reduction factor of every
// dimension, treating contiguous batches of the chain as parallel chains:
//
//	R = sqrt((b-1)/b + B/(b·W))
//
// with b the batch length, W the mean within-batch variance and B the
// between-batch variance b·var(batch means).
//
// The vector always has s.Dims() entries. A dimension with W = 0 holds NaN
// and contributes a *chain.DimensionError wrapping chain.ErrDegenerateVariance
// to the returned error. A chain too short for two batches fails the whole
// call with chain.ErrInsufficientSamples.
func Univariate(s *chain.Samples, opts ...Option) ([]float64, error) {
	o := gatherOptions(opts...)
	p, err := partition(s, o)
	if err != nil {
		return nil, psrfErrorf(opUnivariate, err)
	}

	out := make([]float64, s.Dims())
	var errs error
	b := float64(p.Length)
	for i := range out {
		row, err := s.Row(i)
		if err != nil {
			return nil, psrfErrorf(opUnivariate, err)
		}
		sum, err := batch.Summarize(row, p)
		if err != nil {
			return nil, psrfErrorf(opUnivariate, err)
		}
		if sum.W == 0 {
			out[i] = math.NaN()
			errs = chain.AppendDimensionError(errs, i, chain.ErrDegenerateVariance)
			continue
		}
		out[i] = math.Sqrt((b-1)/b + sum.B/(b*sum.W))
	}
	if errs != nil {
		return out, psrfErrorf(opUnivariate, errs)
	}

	return out, nil
}
