// SPDX-License-Identifier: MIT

package chain

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/katalvlaran/chaindiag/matrix"
)

// FromRows builds Samples from one slice per dimension. Every row must have
// the same length. float32 input is widened to float64.
func FromRows[T constraints.Float](rows [][]T) (*Samples, error) {
	if len(rows) == 0 {
		return nil, chainErrorf("FromRows", matrix.ErrInvalidDimensions)
	}
	n := len(rows[0])
	if n == 0 {
		return nil, chainErrorf("FromRows", fmt.Errorf("0 draws, need %d: %w", MinDraws, ErrInsufficientSamples))
	}
	data := make([]float64, 0, len(rows)*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, chainErrorf("FromRows", fmt.Errorf("row %d has %d draws, want %d: %w", i, len(row), n, matrix.ErrDimensionMismatch))
		}
		for _, v := range row {
			data = append(data, float64(v))
		}
	}

	return fromData(len(rows), n, data, "FromRows")
}

// FromDraws builds Samples from one slice per draw (the sampler-dump
// layout). Every draw must carry the same number of dimensions.
func FromDraws[T constraints.Float](draws [][]T) (*Samples, error) {
	if len(draws) == 0 {
		return nil, chainErrorf("FromDraws", fmt.Errorf("0 draws, need %d: %w", MinDraws, ErrInsufficientSamples))
	}
	n, d := len(draws), len(draws[0])
	if d == 0 {
		return nil, chainErrorf("FromDraws", matrix.ErrInvalidDimensions)
	}
	data := make([]float64, d*n)
	for t, draw := range draws {
		if len(draw) != d {
			return nil, chainErrorf("FromDraws", fmt.Errorf("draw %d has %d dims, want %d: %w", t, len(draw), d, matrix.ErrDimensionMismatch))
		}
		for i, v := range draw {
			data[i*n+t] = float64(v)
		}
	}

	return fromData(d, n, data, "FromDraws")
}

func fromData(d, n int, data []float64, tag string) (*Samples, error) {
	if n < MinDraws {
		return nil, chainErrorf(tag, fmt.Errorf("%d draws, need %d: %w", n, MinDraws, ErrInsufficientSamples))
	}
	m, err := matrix.NewDenseFrom(d, n, data)
	if err != nil {
		return nil, chainErrorf(tag, err)
	}

	return &Samples{m: m, d: d, n: n}, nil
}
