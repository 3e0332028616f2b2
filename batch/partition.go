// SPDX-License-Identifier: MIT

package batch

import (
	"fmt"

	"github.com/katalvlaran/chaindiag/chain"
)

// Partition splits a chain of n draws into Count contiguous batches of
// Length draws. The first Offset draws (n mod Length·Count) are dropped:
// they are the earliest, most burn-in-like draws.
type Partition struct {
	Count  int
	Length int
	Offset int
}

// NewPartition plans count batches of at least minLength draws over n.
// When n is too short the batch count shrinks, never below 2.
//
// Errors:
//   - chain.ErrInvalidParameter for count < 2 or minLength < 1.
//   - chain.ErrInsufficientSamples when even 2 batches of minLength do not fit.
func NewPartition(n, count, minLength int) (Partition, error) {
	if count < 2 || minLength < 1 {
		return Partition{}, batchErrorf("NewPartition", fmt.Errorf("count=%d minLength=%d: %w", count, minLength, chain.ErrInvalidParameter))
	}
	length := n / count
	for count > 2 && length < minLength {
		count--
		length = n / count
	}
	if length < minLength {
		return Partition{}, batchErrorf("NewPartition", fmt.Errorf("%d draws for 2 batches of %d: %w", n, minLength, chain.ErrInsufficientSamples))
	}

	return Partition{Count: count, Length: length, Offset: n - count*length}, nil
}

// Batch returns batch j of x as a subslice (no copy).
func (p Partition) Batch(x []float64, j int) []float64 {
	start := p.Offset + j*p.Length

	return x[start : start+p.Length]
}

// Used returns the draws covered by the partition.
func (p Partition) Used(x []float64) []float64 { return x[p.Offset:] }

// Summary holds the batch moments of one sequence.
type Summary struct {
	Means     []float64 // per-batch means
	Variances []float64 // per-batch sample variances
	GrandMean float64   // mean of the batch means
	W         float64   // mean within-batch variance
	B         float64   // Length · var(batch means)
}

// Summarize computes the batch moments of x under p.
//
// Errors: chain.ErrInvalidParameter when len(x) does not match p.
func Summarize(x []float64, p Partition) (Summary, error) {
	if len(x) != p.Offset+p.Count*p.Length || p.Count < 2 || p.Length < 2 {
		return Summary{}, batchErrorf("Summarize", fmt.Errorf("%d values for %+v: %w", len(x), p, chain.ErrInvalidParameter))
	}
	s := Summary{
		Means:     make([]float64, p.Count),
		Variances: make([]float64, p.Count),
	}
	var err error
	for j := 0; j < p.Count; j++ {
		if s.Means[j], s.Variances[j], err = MeanVariance(p.Batch(x, j)); err != nil {
			return Summary{}, batchErrorf("Summarize", err)
		}
	}
	s.W = Mean(s.Variances)
	var vm float64
	if s.GrandMean, vm, err = MeanVariance(s.Means); err != nil {
		return Summary{}, batchErrorf("Summarize", err)
	}
	s.B = float64(p.Length) * vm

	return s, nil
}

// BatchMeansVariance estimates the asymptotic variance σ² of the sample
// mean of x as Length · var(batch means) over exactly count batches.
// Unlike NewPartition the count never shrinks.
//
// Errors:
//   - chain.ErrInvalidParameter for count < 2.
//   - chain.ErrInsufficientSamples when x holds fewer than 2 draws per batch.
func BatchMeansVariance(x []float64, count int) (float64, error) {
	if count < 2 {
		return 0, batchErrorf("BatchMeansVariance", fmt.Errorf("count=%d: %w", count, chain.ErrInvalidParameter))
	}
	length := len(x) / count
	if length < 2 {
		return 0, batchErrorf("BatchMeansVariance", fmt.Errorf("%d draws for %d batches: %w", len(x), count, chain.ErrInsufficientSamples))
	}
	p := Partition{Count: count, Length: length, Offset: len(x) - count*length}
	s, err := Summarize(x, p)
	if err != nil {
		return 0, err
	}

	return s.B, nil
}
