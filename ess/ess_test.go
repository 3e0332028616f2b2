// SPDX-License-Identifier: MIT
package ess_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/chaindiag/chain"
	"github.com/katalvlaran/chaindiag/ess"
	"github.com/katalvlaran/chaindiag/simulate"
)

func TestIIDChain(t *testing.T) {
	s, err := simulate.AR1(10, 10, 10000, 0)
	require.NoError(t, err)

	res, err := ess.Compute(s)
	require.NoError(t, err)
	require.Len(t, res.Values, 10)
	assert.InDelta(t, 9756.651000003116, res.Min, 1e-6)
	assert.Equal(t, 1, res.MinDim)
	assert.Greater(t, res.Min, 100.0)

	again, err := ess.Compute(s)
	require.NoError(t, err)
	require.Equal(t, res, again)

	// Half the draws cannot carry materially more information.
	half, err := s.Window(0, 5000)
	require.NoError(t, err)
	hres, err := ess.Compute(half)
	require.NoError(t, err)
	for i := range res.Values {
		assert.LessOrEqual(t, hres.Values[i], 1.1*res.Values[i], "dim %d", i)
	}
}

func TestAR1Chain(t *testing.T) {
	s, err := simulate.AR1(3, 4, 10000, 0.95)
	require.NoError(t, err)

	res, err := ess.Compute(s)
	require.NoError(t, err)
	want := ess.Result{
		Values: []float64{251.30167429956035, 266.2971404608364, 282.4532752158651, 227.3994425650835},
		Min:    227.3994425650835,
		MinDim: 3,
	}
	if diff := cmp.Diff(want, res, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("ess.Compute mismatch (-want +got):\n%s", diff)
	}
	for _, v := range res.Values {
		assert.Less(t, v, 1000.0)
	}

	fn, err := ess.Compute(s, ess.WithTruncation(ess.TruncateFirstNegative))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{246.98165316484113, 217.77421116970538, 282.4532752158652, 204.8466115734086}, fn.Values, 1e-6)

	// A short lag cap truncates the positive tail and inflates ESS.
	capped, err := ess.Compute(s, ess.WithMaxLag(20))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{420.16385172558637, 430.1879533113398, 418.46434331211157, 429.0370121539527}, capped.Values, 1e-6)
}

func TestConstantDimension(t *testing.T) {
	s, err := chain.FromRows([][]float64{
		{1, 2, 1, 3, 2, 1, 3, 2, 2, 1},
		{5, 5, 5, 5, 5, 5, 5, 5, 5, 5},
	})
	require.NoError(t, err)

	res, err := ess.Compute(s)
	require.ErrorIs(t, err, chain.ErrDegenerateVariance)
	assert.True(t, math.IsNaN(res.Values[1]))
	assert.False(t, math.IsNaN(res.Values[0]))
	assert.Equal(t, 0, res.MinDim)
	assert.Equal(t, res.Values[0], res.Min)
}

func TestAntitheticFloor(t *testing.T) {
	// Perfect alternation drives τ to ~0, below the 1/log10(n) floor.
	x := make([]float64, 100)
	for i := range x {
		x[i] = float64(i%2)*2 - 1
	}
	v, err := ess.Sequence(x)
	require.NoError(t, err)
	assert.InDelta(t, 100*math.Log10(100), v, 1e-9)

	_, err = ess.Sequence([]float64{1})
	assert.ErrorIs(t, err, chain.ErrInsufficientSamples)
}

func TestOptions(t *testing.T) {
	assert.Panics(t, func() { ess.WithMaxLag(0) })
	assert.Panics(t, func() { ess.WithTruncation(ess.Truncation(7)) })

	for _, tr := range []ess.Truncation{ess.TruncateInitialMonotone, ess.TruncateFirstNegative} {
		got, err := ess.ParseTruncation(tr.String())
		require.NoError(t, err)
		assert.Equal(t, tr, got)
	}
	_, err := ess.ParseTruncation("bogus")
	assert.Error(t, err)
}
