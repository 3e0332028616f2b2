// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the Dense implementation
// of the Matrix interface in the matrix package.
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/chaindiag/matrix"
	"github.com/stretchr/testify/require"
)

// hide wraps any Matrix to mask its concrete type and force the At/Set paths.
type hide struct{ matrix.Matrix }

// mustFrom builds a Dense from row-major data or fails the test.
func mustFrom(t *testing.T, rows, cols int, data ...float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows, cols, data)
	require.NoError(t, err)

	return m
}

// TestNewDenseInvalidDimensions ensures that NewDense rejects non-positive dimensions.
func TestNewDenseInvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 5)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDense(5, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestNewDenseFrom(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	m := mustFrom(t, 2, 3, data...)
	data[0] = 100 // caller buffer stays independent

	v, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
	v, err = m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 6.0, v)

	_, err = matrix.NewDenseFrom(2, 3, []float64{1, 2})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.NewDenseFrom(1, 2, []float64{1, math.NaN()})
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	m, err = matrix.NewDenseFrom(1, 2, []float64{1, math.Inf(1)}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	v, _ = m.At(0, 1)
	require.True(t, math.IsInf(v, 1))
}

// TestAtSetOutOfBounds ensures At() and Set() return ErrOutOfRange on invalid access.
func TestAtSetOutOfBounds(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	_, err = m.At(-1, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.At(0, 2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(2, 0, 1.23), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, -1, 4.56), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
}

func TestRowIsCopy(t *testing.T) {
	m := mustFrom(t, 2, 3, 1, 2, 3, 4, 5, 6)
	row, err := m.Row(1)
	require.NoError(t, err)
	require.Equal(t, []float64{4, 5, 6}, row)

	row[0] = -1
	v, _ := m.At(1, 0)
	require.Equal(t, 4.0, v)

	_, err = m.Row(2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

// TestCloneIndependence ensures Clone() returns a deep copy that does not share storage.
func TestCloneIndependence(t *testing.T) {
	m := mustFrom(t, 2, 2, 1, 0, 0, 2)
	clone := m.Clone()
	require.NoError(t, clone.Set(0, 0, 3.0))

	origVal, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, origVal)

	cloneVal, err := clone.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 3.0, cloneVal)
}

func TestViewWindow(t *testing.T) {
	m := mustFrom(t, 2, 4,
		1, 2, 3, 4,
		5, 6, 7, 8)

	v, err := m.View(0, 1, 2, 2)
	require.NoError(t, err)
	require.Equal(t, 2, v.Rows())
	require.Equal(t, 2, v.Cols())

	x, err := v.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, 7.0, x)

	row, err := v.Row(0)
	require.NoError(t, err)
	require.Equal(t, []float64{2, 3}, row)

	inner, err := v.View(1, 1, 1, 1)
	require.NoError(t, err)
	x, _ = inner.At(0, 0)
	require.Equal(t, 7.0, x)

	c := v.Clone()
	require.NoError(t, c.Set(0, 0, 42))
	x, _ = m.At(0, 1)
	require.Equal(t, 2.0, x)

	_, err = m.View(1, 3, 1, 2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.View(0, 0, 0, 1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = v.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestDoEarlyStop(t *testing.T) {
	m := mustFrom(t, 2, 2, 1, 2, 3, 4)
	var seen []float64
	m.Do(func(_, _ int, v float64) bool {
		seen = append(seen, v)
		return v < 2
	})
	require.Equal(t, []float64{1, 2}, seen)
}

// TestStringOutput checks that String() formats the matrix as expected.
func TestStringOutput(t *testing.T) {
	m := mustFrom(t, 2, 2, 1, 2, 3, 4)
	require.Equal(t, "[1, 2]\n[3, 4]\n", m.String())
}
