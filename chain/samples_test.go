// SPDX-License-Identifier: MIT
package chain_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/chaindiag/chain"
	"github.com/katalvlaran/chaindiag/matrix"
)

// hide masks the concrete matrix type to force the copying paths.
type hide struct{ matrix.Matrix }

func TestFromRowsAndDrawsAgree(t *testing.T) {
	byRow, err := chain.FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	byDraw, err := chain.FromDraws([][]float32{{1, 4}, {2, 5}, {3, 6}})
	require.NoError(t, err)

	assert.Equal(t, 2, byRow.Dims())
	assert.Equal(t, 3, byRow.Len())
	assert.Equal(t, byRow.Fingerprint(), byDraw.Fingerprint())

	rows, err := byDraw.Rows()
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, rows)

	v, err := byRow.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)
}

func TestConstructionErrors(t *testing.T) {
	_, err := chain.FromRows([][]float64{{1}})
	assert.ErrorIs(t, err, chain.ErrInsufficientSamples)

	_, err = chain.FromRows([][]float64{{1, 2}, {1}})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = chain.FromRows([][]float64{})
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = chain.FromDraws([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = chain.FromRows([][]float64{{1, math.NaN()}})
	assert.ErrorIs(t, err, matrix.ErrNaNInf)

	_, err = chain.New(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)

	m, err := matrix.NewDenseFrom(1, 2, []float64{1, math.Inf(-1)}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	_, err = chain.New(m)
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestRowIsACopy(t *testing.T) {
	s, err := chain.FromRows([][]float64{{1, 2, 3}})
	require.NoError(t, err)
	row, err := s.Row(0)
	require.NoError(t, err)
	row[0] = 99

	again, err := s.Row(0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, again[0])

	_, err = s.Row(1)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestWindow(t *testing.T) {
	m, err := matrix.NewDenseFrom(2, 5, []float64{
		0, 1, 2, 3, 4,
		5, 6, 7, 8, 9,
	})
	require.NoError(t, err)

	for name, storage := range map[string]matrix.Matrix{"dense": m, "generic": hide{m}} {
		t.Run(name, func(t *testing.T) {
			s, err := chain.New(storage)
			require.NoError(t, err)

			w, err := s.Window(2, 3)
			require.NoError(t, err)
			assert.Equal(t, 3, w.Len())
			row, err := w.Row(1)
			require.NoError(t, err)
			assert.Equal(t, []float64{7, 8, 9}, row)

			_, err = s.Window(3, 3)
			assert.ErrorIs(t, err, chain.ErrInvalidParameter)
			_, err = s.Window(0, 1)
			assert.ErrorIs(t, err, chain.ErrInsufficientSamples)

			// Shared and copied storage hash alike.
			copied, err := chain.FromRows([][]float64{{2, 3, 4}, {7, 8, 9}})
			require.NoError(t, err)
			assert.Equal(t, copied.Fingerprint(), w.Fingerprint())

			same, err := s.Window(0, 5)
			require.NoError(t, err)
			assert.Same(t, s, same)
		})
	}
}

func TestFingerprintDistinguishesShape(t *testing.T) {
	a, err := chain.FromRows([][]float64{{1, 2, 3, 4}})
	require.NoError(t, err)
	b, err := chain.FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestDimensionErrorAggregation(t *testing.T) {
	var acc error
	acc = chain.AppendDimensionError(acc, 1, chain.ErrDegenerateVariance)
	acc = chain.AppendDimensionError(acc, 3, chain.ErrNumericalInstability)

	assert.ErrorIs(t, acc, chain.ErrDegenerateVariance)
	assert.ErrorIs(t, acc, chain.ErrNumericalInstability)

	var de *chain.DimensionError
	require.True(t, errors.As(acc, &de))
	assert.Equal(t, 1, de.Dim)
	assert.Contains(t, acc.Error(), "2 dimensions failed")
	assert.Contains(t, acc.Error(), "dimension 3")
}
