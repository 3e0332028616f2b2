// SPDX-License-Identifier: MIT

package psrf

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/chaindiag/chain"
	"github.com/katalvlaran/chaindiag/matrix"
)

// Multivariate returns the multivariate potential scale reduction factor
// over all dimensions jointly:
//
//	R = (b-1)/b + (λmax/b)·(m+1)/m
//
// where W is the mean of the within-batch d×d covariances, B/b the sample
// covariance of the batch mean vectors, and λmax the largest eigenvalue of
// W⁻¹B. The code works with C = B/b directly, so λmax/b = λmax(W⁻¹C).
//
// Implementation:
//   - Stage 1: per batch, the covariance of a no-copy draw window; its row
//     means are the batch mean vector.
//   - Stage 2: Cholesky W = L·Lᵀ (gonum). Failure or a condition number
//     above the limit is chain.ErrNumericalInstability.
//   - Stage 3: M = L⁻¹·C·L⁻ᵀ is symmetric with the spectrum of W⁻¹C;
//     L⁻¹ is gonum's triangular inverse, the products and the final
//     symmetrization use the matrix kernels, and λmax comes from the
//     Jacobi solver.
//
// Errors: chain.ErrInsufficientSamples, chain.ErrNumericalInstability.
// Complexity: O(m·d²·b + d³ + Jacobi).
func Multivariate(s *chain.Samples, opts ...Option) (float64, error) {
	o := gatherOptions(opts...)
	p, err := partition(s, o)
	if err != nil {
		return math.NaN(), psrfErrorf(opMultivariate, err)
	}

	d, m := s.Dims(), p.Count
	var wsum matrix.Matrix
	means := make([]float64, d*m)
	for j := 0; j < m; j++ {
		win, err := s.Window(p.Offset+j*p.Length, p.Length)
		if err != nil {
			return math.NaN(), psrfErrorf(opMultivariate, err)
		}
		cov, mu, err := matrix.Covariance(win.Matrix())
		if err != nil {
			return math.NaN(), psrfErrorf(opMultivariate, err)
		}
		if wsum == nil {
			wsum = cov
		} else if wsum, err = matrix.Add(wsum, cov); err != nil {
			return math.NaN(), psrfErrorf(opMultivariate, err)
		}
		for i := 0; i < d; i++ {
			means[i*m+j] = mu[i]
		}
	}
	within, err := matrix.Scale(wsum, 1/float64(m))
	if err != nil {
		return math.NaN(), psrfErrorf(opMultivariate, err)
	}
	w, err := symmetricOf(within)
	if err != nil {
		return math.NaN(), psrfErrorf(opMultivariate, err)
	}

	meanMat, err := matrix.NewDenseFrom(d, m, means)
	if err != nil {
		return math.NaN(), psrfErrorf(opMultivariate, err)
	}
	between, _, err := matrix.Covariance(meanMat)
	if err != nil {
		return math.NaN(), psrfErrorf(opMultivariate, err)
	}

	var ch mat.Cholesky
	if ok := ch.Factorize(w); !ok {
		return math.NaN(), psrfErrorf(opMultivariate, fmt.Errorf("within-batch covariance not positive definite: %w", chain.ErrNumericalInstability))
	}
	if cond := ch.Cond(); math.IsNaN(cond) || cond > o.conditionLimit {
		return math.NaN(), psrfErrorf(opMultivariate, fmt.Errorf("within-batch covariance condition %.3g: %w", cond, chain.ErrNumericalInstability))
	}
	var l mat.TriDense
	ch.LTo(&l)

	sym, err := whiten(&l, between)
	if err != nil {
		return math.NaN(), psrfErrorf(opMultivariate, err)
	}
	lambda, err := matrix.LargestEigenvalue(sym,
		matrix.WithEpsilon(o.eigenTol),
		matrix.WithMaxRotations(o.maxSweeps),
	)
	if err != nil {
		return math.NaN(), psrfErrorf(opMultivariate, fmt.Errorf("%w: %v", chain.ErrNumericalInstability, err))
	}

	b, mf := float64(p.Length), float64(m)

	return (b-1)/b + lambda*(mf+1)/mf, nil // lambda = λmax/b
}

// symmetricOf copies the symmetric Dense m into a gonum SymDense.
func symmetricOf(m matrix.Matrix) (*mat.SymDense, error) {
	dm, ok := m.(*matrix.Dense)
	if !ok || dm.Rows() != dm.Cols() {
		return nil, fmt.Errorf("%T %dx%d: %w", m, m.Rows(), m.Cols(), matrix.ErrDimensionMismatch)
	}
	out := mat.NewSymDense(dm.Rows(), nil)
	dm.Do(func(i, j int, v float64) bool {
		if j >= i {
			out.SetSym(i, j, v)
		}
		return true
	})

	return out, nil
}

// whiten returns the symmetric M = L⁻¹·C·L⁻ᵀ for lower-triangular L.
func whiten(l *mat.TriDense, c matrix.Matrix) (matrix.Matrix, error) {
	var li mat.TriDense
	if err := li.InverseTri(l); err != nil {
		return nil, fmt.Errorf("inverse Cholesky factor: %v: %w", err, chain.ErrNumericalInstability)
	}
	d := c.Rows()
	inv, err := matrix.NewDenseFrom(d, d, mat.DenseCopyOf(&li).RawMatrix().Data)
	if err != nil {
		return nil, err
	}

	left, err := matrix.Mul(inv, c)
	if err != nil {
		return nil, err
	}
	invT, err := matrix.Transpose(inv)
	if err != nil {
		return nil, err
	}
	m, err := matrix.Mul(left, invT)
	if err != nil {
		return nil, err
	}

	return matrix.Symmetrize(m)
}
