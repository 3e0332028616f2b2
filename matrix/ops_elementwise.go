// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Private broadcast micro-kernels (ew*) shared by the statistics layer.
//   - Deterministic i→j loops with a Dense fast path.

package matrix

// ewBroadcastSubRows computes out[i,j] = X[i,j] - rowMeans[i].
// Time: O(r*c). Space: O(r*c).
func ewBroadcastSubRows(X Matrix, rowMeans []float64) (Matrix, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf("broadcastSubRows", err)
	}
	r, c := X.Rows(), X.Cols()
	if len(rowMeans) != r {
		return nil, matrixErrorf("broadcastSubRows", ErrDimensionMismatch)
	}
	out, err := newDenseWithPolicy(r, c, false)
	if err != nil {
		return nil, matrixErrorf("broadcastSubRows", err)
	}

	if d, ok := X.(*Dense); ok {
		for i := 0; i < r; i++ {
			base := i * c
			for j := 0; j < c; j++ {
				out.data[base+j] = d.data[base+j] - rowMeans[i]
			}
		}

		return out, nil
	}

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, e := X.At(i, j)
			if e != nil {
				return nil, matrixErrorf("broadcastSubRows", e)
			}
			out.data[i*c+j] = v - rowMeans[i]
		}
	}

	return out, nil
}

// ewDotRows returns Σ_k X[a,k]·X[b,k] over a Dense buffer.
func ewDotRows(d *Dense, a, b int) float64 {
	ra := d.data[a*d.c : (a+1)*d.c]
	rb := d.data[b*d.c : (b+1)*d.c]
	sum := ZeroSum
	for k := range ra {
		sum += ra[k] * rb[k]
	}

	return sum
}
