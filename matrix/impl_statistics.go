// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Row-oriented statistics for sample matrices: each row is a variable
//     (a chain dimension) and each column an observation (a draw).
//
// Exposed API:
//   - CenterRows(X)  -> (Xc, means)   // subtract per-row mean
//   - Covariance(X)  -> (Cov, means)  // sample covariance of rows: (Xc Xcᵀ)/(c-1)
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops.
//   - Dense fast paths operate on row-major flat buffers, so each dot product
//     streams two contiguous rows.

package matrix

const (
	opCenterRows = "CenterRows"
	opCovariance = "Covariance"
)

// centerRows subtracts the per-row mean from every element.
// Implementation:
//   - Stage 1: Validate X (non-nil).
//   - Stage 2: Compute row means in a deterministic pass (Dense fast path; At fallback).
//   - Stage 3: Apply ewBroadcastSubRows to produce a centered copy.
//
// Returns:
//   - Matrix: centered copy (r×c).
//   - []float64: row means (len=r).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func centerRows(X Matrix) (Matrix, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCenterRows, err)
	}

	r, c := X.Rows(), X.Cols()
	means := make([]float64, r)
	var i, j int
	var v float64
	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ {
			base := i * c
			for j = 0; j < c; j++ {
				means[i] += d.data[base+j]
			}
		}
	} else {
		var err error
		for i = 0; i < r; i++ {
			for j = 0; j < c; j++ {
				if v, err = X.At(i, j); err != nil {
					return nil, nil, matrixErrorf(opCenterRows, err)
				}
				means[i] += v
			}
		}
	}

	for i = 0; i < r; i++ {
		means[i] /= float64(c)
	}

	Xc, err := ewBroadcastSubRows(X, means)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterRows, err)
	}

	return Xc, means, nil
}

// covariance computes the r×r sample covariance of the rows of X.
// Implementation:
//   - Stage 1: Validate X, require c >= 2 observations.
//   - Stage 2: Center rows.
//   - Stage 3: Cov[a,b] = Σ_k Xc[a,k]·Xc[b,k] / (c-1), filled symmetrically
//     from the upper triangle so the result is exactly symmetric.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (c<2).
//
// Complexity:
//   - Time O(r²·c), Space O(r*c + r²).
func covariance(X Matrix) (Matrix, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	r, c := X.Rows(), X.Cols()
	if c < 2 {
		return nil, nil, matrixErrorf(opCovariance, ErrDimensionMismatch)
	}

	Xc, means, err := centerRows(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	xc := Xc.(*Dense)

	cov, err := newDenseWithPolicy(r, r, false)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	inv := 1.0 / float64(c-1)
	var a, b int
	var s float64
	for a = 0; a < r; a++ {
		for b = a; b < r; b++ {
			s = ewDotRows(xc, a, b) * inv
			cov.data[a*r+b] = s
			cov.data[b*r+a] = s
		}
	}

	return cov, means, nil
}
