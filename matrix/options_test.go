// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/chaindiag/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions_Documented(t *testing.T) {
	o := matrix.NewMatrixOptions()
	assert.Equal(t, matrix.DefaultEpsilon, o.Epsilon())
	assert.Equal(t, matrix.DefaultValidateNaNInf, o.ValidatesNaNInf())
	assert.Equal(t, matrix.DefaultMaxRotations*9, o.MaxRotations(3))
}

func TestOptions_LastWriterWins(t *testing.T) {
	o := matrix.NewMatrixOptions(matrix.WithNoValidateNaNInf(), matrix.WithValidateNaNInf())
	assert.True(t, o.ValidatesNaNInf())
	o = matrix.NewMatrixOptions(matrix.WithValidateNaNInf(), matrix.WithNoValidateNaNInf())
	assert.False(t, o.ValidatesNaNInf())

	o = matrix.NewMatrixOptions(matrix.WithEpsilon(1e-6), matrix.WithMaxRotations(7))
	assert.Equal(t, 1e-6, o.Epsilon())
	assert.Equal(t, 28, o.MaxRotations(2))
}

func TestOptions_PanicOnNonsense(t *testing.T) {
	require.Panics(t, func() { matrix.WithEpsilon(-1) })
	require.Panics(t, func() { matrix.WithEpsilon(math.NaN()) })
	require.Panics(t, func() { matrix.WithEpsilon(math.Inf(1)) })
	require.Panics(t, func() { matrix.WithMaxRotations(0) })
	require.NotPanics(t, func() { matrix.WithEpsilon(0) })
}
