// SPDX-License-Identifier: MIT
// Package simulate - deterministic synthetic chains with known mixing.
//
// This file centralizes the reproducible generators behind the CLI's
// simulate command and the diagnostic test fixtures.
//
// Goals:
//   - Determinism: same seed ⇒ bit-identical chains across platforms.
//   - Known answers: an AR(1) chain with coefficient φ has integrated
//     autocorrelation time (1+φ)/(1-φ); φ = 0 is an iid Gaussian chain.
//
// Concurrency:
//   - A Source is NOT goroutine-safe. Derive one per goroutine with NewSource.
package simulate

import (
	"fmt"
	"math"

	"github.com/katalvlaran/chaindiag/chain"
)

// Source is a SplitMix64 stream with a Box–Muller Gaussian transform.
type Source struct {
	state uint64
}

// NewSource returns a stream seeded verbatim (seed 0 is a valid seed).
func NewSource(seed uint64) *Source { return &Source{state: seed} }

// Uint64 advances the stream by one SplitMix64 step.
// Complexity: O(1).
func (r *Source) Uint64() uint64 {
	r.state += 0x9e3779b97f4a7c15
	z := r.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb

	return z ^ (z >> 31)
}

// Float64 returns a uniform value in [0, 1) with 53 random bits.
func (r *Source) Float64() float64 {
	return float64(r.Uint64()>>11) * (1.0 / (1 << 53))
}

// Normal returns a standard Gaussian variate. Each call consumes two
// uniforms and discards the sine branch, so the stream position is a pure
// function of the number of calls.
func (r *Source) Normal() float64 {
	u1 := 1.0 - r.Float64() // (0, 1], keeps the log finite
	u2 := r.Float64()

	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// AR1 generates d independent stationary AR(1) dimensions of n draws:
// x[t] = φ·x[t-1] + sqrt(1-φ²)·e[t], x[0] = e[0], unit marginal variance.
// Innovations are drawn in draw-major order (all dimensions of draw t
// before draw t+1), matching a sampler that emits one vector per step.
//
// Errors: chain.ErrInvalidParameter for |φ| >= 1, d < 1 or n < chain.MinDraws.
func AR1(seed uint64, d, n int, phi float64) (*chain.Samples, error) {
	rows, err := ar1Rows(seed, d, n, phi)
	if err != nil {
		return nil, err
	}

	return chain.FromRows(rows)
}

// Drift is AR1 plus a linear trend rising by slope over the whole chain,
// a chain that has visibly not reached stationarity.
func Drift(seed uint64, d, n int, phi, slope float64) (*chain.Samples, error) {
	rows, err := ar1Rows(seed, d, n, phi)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		for t := range row {
			row[t] += slope * float64(t) / float64(n)
		}
	}

	return chain.FromRows(rows)
}

func ar1Rows(seed uint64, d, n int, phi float64) ([][]float64, error) {
	if d < 1 || n < chain.MinDraws {
		return nil, fmt.Errorf("simulate: %d×%d chain: %w", d, n, chain.ErrInvalidParameter)
	}
	if math.IsNaN(phi) || math.Abs(phi) >= 1 {
		return nil, fmt.Errorf("simulate: phi %v outside (-1,1): %w", phi, chain.ErrInvalidParameter)
	}

	src := NewSource(seed)
	c := math.Sqrt(1 - phi*phi)
	rows := make([][]float64, d)
	for i := range rows {
		rows[i] = make([]float64, n)
	}
	var e float64
	for t := 0; t < n; t++ {
		for i := 0; i < d; i++ {
			e = src.Normal()
			if t == 0 {
				rows[i][t] = e
				continue
			}
			rows[i][t] = phi*rows[i][t-1] + c*e
		}
	}

	return rows, nil
}
