// SPDX-License-Identifier: MIT

// Package raftery implements the Raftery–Lewis run-length diagnostic.
//
// Each dimension is reduced to the indicator sequence Z_t = 1{x_t ≤ u},
// where u is the empirical q-quantile of that dimension. The sequence is
// thinned by the smallest k for which a first-order Markov chain is
// preferred to a second-order one by BIC, and the fitted 2×2 transition
// probabilities give the burn-in and the run length needed to estimate q
// to within ±r with probability prob.
package raftery

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/chaindiag/batch"
	"github.com/katalvlaran/chaindiag/chain"
)

// Record is the run-length verdict for one dimension.
type Record struct {
	BurnIn     int     // M: draws to discard
	Total      int     // N: draws to keep, burn-in included
	MinTotal   int     // Nmin: draws needed if they were independent
	Thin       int     // k: thinning interval that makes Z first-order Markov
	Dependence float64 // I = N / Nmin
}

// raftErrorf wraps err with the Diagnose tag.
func raftErrorf(err error) error {
	return fmt.Errorf("raftery.Diagnose: %w", err)
}

// MinTotal returns Nmin = ⌈q(1-q)·Φ⁻¹((prob+1)/2)² / r²⌉, the run length
// needed under independence. Values beyond math.MaxInt saturate.
func MinTotal(q, r, prob float64) int {
	phi := distuv.UnitNormal.Quantile((prob + 1) / 2)
	n, _ := ceilInt(q * (1 - q) * phi * phi / (r * r))

	return n
}

// ceilInt returns ⌈v⌉ and true when it fits an int, math.MaxInt and false
// otherwise (NaN included).
func ceilInt(v float64) (int, bool) {
	c := math.Ceil(v)
	if !(c < math.MaxInt) {
		return math.MaxInt, false
	}

	return int(c), true
}

// Diagnose returns one Record per dimension of s.
//
// Errors:
//   - chain.ErrInvalidParameter unless q, r, prob ∈ (0,1).
//   - chain.ErrInsufficientSamples when s.Len() < MinTotal(q, r, prob).
//   - per dimension, chain.ErrDegenerateBinarySequence for a single-state
//     or deterministically alternating indicator sequence, and
//     chain.ErrInsufficientSamples when no thinning within the limits fits.
//     Failed dimensions hold a zero Record with Dependence NaN.
func Diagnose(s *chain.Samples, q, r, prob float64, opts ...Option) ([]Record, error) {
	for _, v := range []float64{q, r, prob} {
		if !(v > 0 && v < 1) {
			return nil, raftErrorf(fmt.Errorf("q=%v r=%v prob=%v: %w", q, r, prob, chain.ErrInvalidParameter))
		}
	}
	o := gatherOptions(opts...)

	nmin := MinTotal(q, r, prob)
	if s.Len() < nmin {
		return nil, raftErrorf(fmt.Errorf("%d draws, need %d: %w", s.Len(), nmin, chain.ErrInsufficientSamples))
	}
	phi := distuv.UnitNormal.Quantile((prob + 1) / 2)

	out := make([]Record, s.Dims())
	var errs error
	for i := range out {
		row, err := s.Row(i)
		if err != nil {
			return nil, raftErrorf(err)
		}
		rec, err := diagnoseRow(row, q, r, phi, o)
		if err != nil {
			out[i] = Record{Dependence: math.NaN()}
			errs = chain.AppendDimensionError(errs, i, err)
			continue
		}
		rec.MinTotal = nmin
		rec.Dependence = float64(rec.Total) / float64(nmin)
		out[i] = rec
	}
	if errs != nil {
		return out, raftErrorf(errs)
	}

	return out, nil
}

func diagnoseRow(x []float64, q, r, phi float64, o Options) (Record, error) {
	u := batch.Quantile(batch.Sorted(x), q)
	z := make([]uint8, len(x))
	ones := 0
	for t, v := range x {
		if v <= u {
			z[t] = 1
			ones++
		}
	}
	if ones == 0 || ones == len(z) {
		return Record{}, chain.ErrDegenerateBinarySequence
	}

	k, err := thinning(z, o.maxThin)
	if err != nil {
		return Record{}, err
	}

	var tr [2][2]float64
	prev := z[0]
	for t := k; t < len(z); t += k {
		tr[prev][z[t]]++
		prev = z[t]
	}
	if tr[0][0]+tr[0][1] == 0 || tr[1][0]+tr[1][1] == 0 {
		return Record{}, chain.ErrDegenerateBinarySequence
	}
	alpha := tr[0][1] / (tr[0][0] + tr[0][1])
	beta := tr[1][0] / (tr[1][0] + tr[1][1])
	lambda := math.Abs(1 - alpha - beta)
	if lambda >= 1 {
		return Record{}, chain.ErrDegenerateBinarySequence
	}

	var burn float64
	if lambda > 0 {
		burn = math.Ceil(math.Log(o.epsilon*(alpha+beta)/math.Max(alpha, beta))/math.Log(lambda)) * float64(k)
	}
	prec := (2 - alpha - beta) * alpha * beta * phi * phi / (math.Pow(alpha+beta, 3) * r * r)
	m, ok1 := ceilInt(burn)
	n, ok2 := ceilInt(burn + math.Ceil(prec*float64(k)))
	if !ok1 || !ok2 {
		return Record{}, fmt.Errorf("run length beyond %d draws: %w", math.MaxInt, chain.ErrInsufficientSamples)
	}

	return Record{BurnIn: m, Total: n, Thin: k}, nil
}

// thinning returns the smallest k for which the k-thinned indicator
// sequence prefers a first-order over a second-order Markov model by BIC.
func thinning(z []uint8, maxThin int) (int, error) {
	for k := 1; ; k++ {
		if maxThin > 0 && k > maxThin {
			return 0, fmt.Errorf("no first-order thinning up to %d: %w", maxThin, chain.ErrInsufficientSamples)
		}
		m := (len(z) + k - 1) / k
		if m < 4 {
			return 0, fmt.Errorf("thinning %d leaves %d draws: %w", k, m, chain.ErrInsufficientSamples)
		}
		if g2(z, k)-2*math.Log(float64(m-2)) <= 0 {
			return k, nil
		}
	}
}

// g2 is the likelihood-ratio statistic of a second-order against a
// first-order Markov chain over the k-thinned sequence.
func g2(z []uint8, k int) float64 {
	var cnt [2][2][2]float64
	for t := 2 * k; t < len(z); t += k {
		cnt[z[t-2*k]][z[t-k]][z[t]]++
	}
	var stat, fitted, mid float64
	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			mid = cnt[0][b][0] + cnt[0][b][1] + cnt[1][b][0] + cnt[1][b][1]
			for c := 0; c < 2; c++ {
				if cnt[a][b][c] == 0 {
					continue
				}
				fitted = (cnt[a][b][0] + cnt[a][b][1]) * (cnt[0][b][c] + cnt[1][b][c]) / mid
				stat += 2 * cnt[a][b][c] * math.Log(cnt[a][b][c]/fitted)
			}
		}
	}

	return stat
}
