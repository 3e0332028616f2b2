// SPDX-License-Identifier: MIT
// Package matrix: public API facades.
//
// Purpose:
//   - Thin entry points that resolve the numeric Options and delegate to the
//     canonical kernels. No logic is duplicated here.
//
// Determinism & Policy:
//   - Facades never change the loop orders of underlying kernels.

package matrix

import (
	"math"
	"sort"
)

// NewIdentity returns I_n.
// Complexity: O(n²) zeroing + O(n) diagonal writes.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// CenterRows subtracts each row's mean. See centerRows.
func CenterRows(X Matrix) (Matrix, []float64, error) { return centerRows(X) }

// Covariance returns the sample covariance of the rows of X (variables in
// rows, observations in columns) together with the row means.
// Requires at least two columns. See covariance.
func Covariance(X Matrix) (Matrix, []float64, error) { return covariance(X) }

// Symmetrize returns (m + mᵀ)/2, composed as Transpose → Add → Scale.
// It repairs the rounding asymmetry of products such as L⁻¹·C·L⁻ᵀ.
// Complexity: O(rc).
func Symmetrize(m Matrix) (Matrix, error) {
	mt, err := Transpose(m)
	if err != nil {
		return nil, matrixErrorf("Symmetrize", err)
	}
	sum, err := Add(m, mt)
	if err != nil {
		return nil, matrixErrorf("Symmetrize", err)
	}

	return Scale(sum, 0.5)
}

// EigenSym decomposes a symmetric matrix under the resolved Options.
// The convergence threshold is Epsilon scaled by max(1, ‖m‖_F), and the
// rotation budget is MaxRotations(n). Eigenvalues are returned in ascending
// order with the eigenvector columns permuted to match.
//
// Errors: as Eigen.
// Complexity: O(n²) per rotation.
func EigenSym(m Matrix, opts ...Option) ([]float64, Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	o := gatherOptions(opts...)
	tol := o.Epsilon() * math.Max(1, frobenius(m))
	if tol == 0 {
		tol = math.SmallestNonzeroFloat64
	}

	vals, vecs, err := Eigen(m, tol, o.MaxRotations(m.Rows()))
	if err != nil {
		return nil, nil, err
	}

	n := len(vals)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return vals[order[a]] < vals[order[b]] })

	sortedVals := make([]float64, n)
	sortedVecs, err := newDenseWithPolicy(n, n, false)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	src := vecs.(*Dense)
	var i, k int
	for k = 0; k < n; k++ {
		sortedVals[k] = vals[order[k]]
		for i = 0; i < n; i++ {
			sortedVecs.data[i*n+k] = src.data[i*n+order[k]]
		}
	}

	return sortedVals, sortedVecs, nil
}

// LargestEigenvalue returns the maximum eigenvalue of a symmetric matrix.
func LargestEigenvalue(m Matrix, opts ...Option) (float64, error) {
	vals, _, err := EigenSym(m, opts...)
	if err != nil {
		return 0, err
	}

	return vals[len(vals)-1], nil
}

// frobenius returns ‖m‖_F; non-finite entries propagate.
func frobenius(m Matrix) float64 {
	sum := ZeroSum
	if d, ok := m.(*Dense); ok {
		for _, v := range d.data {
			sum += v * v
		}

		return math.Sqrt(sum)
	}
	var i, j int
	var v float64
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			v, _ = m.At(i, j)
			sum += v * v
		}
	}

	return math.Sqrt(sum)
}
