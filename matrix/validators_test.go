// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/chaindiag/matrix"
	"github.com/stretchr/testify/require"
)

func TestValidateSymmetric(t *testing.T) {
	sym := mustFrom(t, 2, 2, 1, 2, 2+1e-13, 1)
	require.NoError(t, matrix.ValidateSymmetric(sym, 1e-12))
	require.ErrorIs(t, matrix.ValidateSymmetric(sym, 0), matrix.ErrAsymmetry)
	require.ErrorIs(t, matrix.ValidateSymmetric(sym, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, matrix.ValidateSymmetric(nil, 0), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateSymmetric(mustFrom(t, 1, 2, 1, 2), 0), matrix.ErrDimensionMismatch)
}

func TestValidateFinite(t *testing.T) {
	m, err := matrix.NewDenseFrom(1, 3, []float64{1, math.NaN(), 3}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.ErrorIs(t, matrix.ValidateFinite(m), matrix.ErrNaNInf)
	require.ErrorIs(t, matrix.ValidateFinite(hide{m}), matrix.ErrNaNInf)
	require.NoError(t, matrix.ValidateFinite(mustFrom(t, 1, 1, 0)))
}

func TestIsZeroOffDiagonal(t *testing.T) {
	ok, err := matrix.IsZeroOffDiagonal(mustFrom(t, 2, 2, 3, 0, 0, 4), 0)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = matrix.IsZeroOffDiagonal(mustFrom(t, 2, 2, 3, 0.1, 0.1, 4), 0.05)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestValidateMulCompatible(t *testing.T) {
	require.NoError(t, matrix.ValidateMulCompatible(mustFrom(t, 1, 2, 1, 2), mustFrom(t, 2, 1, 1, 2)))
	require.ErrorIs(t, matrix.ValidateMulCompatible(mustFrom(t, 1, 2, 1, 2), mustFrom(t, 1, 2, 1, 2)), matrix.ErrDimensionMismatch)
}
