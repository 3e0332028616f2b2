// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/katalvlaran/chaindiag/matrix"
	"github.com/stretchr/testify/require"
)

func TestCovarianceOfRows(t *testing.T) {
	// Row 1 is 2×row 0; row 2 is constant.
	x := mustFrom(t, 3, 4,
		1, 2, 3, 4,
		2, 4, 6, 8,
		7, 7, 7, 7)

	for _, m := range []matrix.Matrix{x, hide{x}} {
		cov, means, err := matrix.Covariance(m)
		require.NoError(t, err)
		require.Equal(t, []float64{2.5, 5, 7}, means)

		want := [][]float64{
			{5.0 / 3, 10.0 / 3, 0},
			{10.0 / 3, 20.0 / 3, 0},
			{0, 0, 0},
		}
		for i := range want {
			for j := range want[i] {
				v, err := cov.At(i, j)
				require.NoError(t, err)
				require.InDelta(t, want[i][j], v, 1e-12)
			}
		}
		require.NoError(t, matrix.ValidateSymmetric(cov, 0))
	}
}

func TestCovarianceRejectsSingleObservation(t *testing.T) {
	x := mustFrom(t, 2, 1, 1, 2)
	_, _, err := matrix.Covariance(x)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, _, err = matrix.Covariance(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestCenterRows(t *testing.T) {
	x := mustFrom(t, 2, 2, 1, 3, 10, 20)
	xc, means, err := matrix.CenterRows(x)
	require.NoError(t, err)
	require.Equal(t, []float64{2, 15}, means)
	v, _ := xc.At(1, 0)
	require.Equal(t, -5.0, v)
}
