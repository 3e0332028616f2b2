// SPDX-License-Identifier: MIT
package psrf_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/chaindiag/chain"
	"github.com/katalvlaran/chaindiag/psrf"
	"github.com/katalvlaran/chaindiag/simulate"
)

type PSRFSuite struct {
	suite.Suite
	iid *chain.Samples // 10 dims × 10000 iid Gaussian draws
}

func (s *PSRFSuite) SetupSuite() {
	var err error
	s.iid, err = simulate.AR1(10, 10, 10000, 0)
	require.NoError(s.T(), err)
}

func (s *PSRFSuite) TestIIDChainConverges() {
	u, err := psrf.Univariate(s.iid)
	require.NoError(s.T(), err)
	require.Len(s.T(), u, 10)
	assert.InDelta(s.T(), 1.0000639634654254, maxOf(u), 1e-9)
	assert.True(s.T(), psrf.Converged(u...))

	m, err := psrf.Multivariate(s.iid)
	require.NoError(s.T(), err)
	assert.InDelta(s.T(), 1.0013351968551527, m, 1e-9)
	assert.Less(s.T(), m, psrf.ConvergenceThreshold)

	iv, err := psrf.Interval(s.iid, 0.05)
	require.NoError(s.T(), err)
	assert.InDelta(s.T(), 1.0080350885727232, maxOf(iv), 1e-9)
	assert.Less(s.T(), maxOf(iv), psrf.ConvergenceThreshold)
}

func (s *PSRFSuite) TestIdempotent() {
	a, err := psrf.Univariate(s.iid)
	require.NoError(s.T(), err)
	b, err := psrf.Univariate(s.iid)
	require.NoError(s.T(), err)
	require.Equal(s.T(), a, b)

	ma, err := psrf.Multivariate(s.iid)
	require.NoError(s.T(), err)
	mb, err := psrf.Multivariate(s.iid)
	require.NoError(s.T(), err)
	require.Equal(s.T(), ma, mb)
}

func (s *PSRFSuite) TestOneDimensionIdentity() {
	// For d = 1 the multivariate factor is an affine map of R²:
	// Rm = (b-1)/b + (m+1)/m · (R² - (b-1)/b).
	x, err := simulate.AR1(10, 1, 500, 0.5)
	require.NoError(s.T(), err)

	u, err := psrf.Univariate(x)
	require.NoError(s.T(), err)
	m, err := psrf.Multivariate(x)
	require.NoError(s.T(), err)

	const b, batches = 50.0, 10.0
	want := (b-1)/b + (batches+1)/batches*(u[0]*u[0]-(b-1)/b)
	assert.InDelta(s.T(), want, m, 1e-12)
	assert.InDelta(s.T(), 1.0107820030235062, u[0], 1e-12)
	assert.InDelta(s.T(), 1.0258482833998324, m, 1e-9)
}

func (s *PSRFSuite) TestConstantDimension() {
	rows, err := s.iid.Window(0, 2000)
	require.NoError(s.T(), err)
	data, err := rows.Rows()
	require.NoError(s.T(), err)
	data = data[:3]
	for t := range data[1] {
		data[1][t] = 7
	}
	x, err := chain.FromRows(data)
	require.NoError(s.T(), err)

	u, err := psrf.Univariate(x)
	require.ErrorIs(s.T(), err, chain.ErrDegenerateVariance)
	require.Len(s.T(), u, 3)
	assert.True(s.T(), math.IsNaN(u[1]))
	assert.False(s.T(), math.IsNaN(u[0]))
	assert.False(s.T(), math.IsNaN(u[2]))
	var de *chain.DimensionError
	require.True(s.T(), errors.As(err, &de))
	assert.Equal(s.T(), 1, de.Dim)
	assert.False(s.T(), psrf.Converged(u...))

	iv, err := psrf.Interval(x, 0.05)
	require.ErrorIs(s.T(), err, chain.ErrDegenerateVariance)
	assert.True(s.T(), math.IsNaN(iv[1]))
	assert.False(s.T(), math.IsNaN(iv[2]))

	m, err := psrf.Multivariate(x)
	require.ErrorIs(s.T(), err, chain.ErrNumericalInstability)
	assert.True(s.T(), math.IsNaN(m))
}

func (s *PSRFSuite) TestDriftDetected() {
	x, err := simulate.Drift(5, 3, 10000, 0, 4)
	require.NoError(s.T(), err)
	u, err := psrf.Univariate(x)
	require.NoError(s.T(), err)
	for _, r := range u {
		assert.Greater(s.T(), r, psrf.ConvergenceThreshold)
	}
	assert.False(s.T(), psrf.Converged(u...))

	m, err := psrf.Multivariate(x)
	require.NoError(s.T(), err)
	assert.Greater(s.T(), m, psrf.ConvergenceThreshold)
}

func (s *PSRFSuite) TestShortChainAndParameters() {
	short, err := s.iid.Window(0, 19)
	require.NoError(s.T(), err)
	_, err = psrf.Univariate(short)
	assert.ErrorIs(s.T(), err, chain.ErrInsufficientSamples)
	_, err = psrf.Multivariate(short)
	assert.ErrorIs(s.T(), err, chain.ErrInsufficientSamples)

	// Smaller batches make the same chain usable.
	u, err := psrf.Univariate(short, psrf.WithMinBatchLength(4))
	require.NoError(s.T(), err)
	assert.Len(s.T(), u, 10)

	_, err = psrf.Interval(s.iid, 0)
	assert.ErrorIs(s.T(), err, chain.ErrInvalidParameter)
	_, err = psrf.Interval(s.iid, 1.5)
	assert.ErrorIs(s.T(), err, chain.ErrInvalidParameter)
}

func TestPSRFSuite(t *testing.T) {
	suite.Run(t, new(PSRFSuite))
}

func TestOptions(t *testing.T) {
	o := psrf.NewOptions()
	assert.Equal(t, psrf.DefaultBatches, o.Batches())
	assert.Equal(t, psrf.DefaultMinBatchLength, o.MinBatchLength())
	o = psrf.NewOptions(psrf.WithBatches(20), psrf.WithMinBatchLength(5))
	assert.Equal(t, 20, o.Batches())
	assert.Equal(t, 5, o.MinBatchLength())

	assert.Panics(t, func() { psrf.WithBatches(1) })
	assert.Panics(t, func() { psrf.WithMinBatchLength(1) })
	assert.Panics(t, func() { psrf.WithConditionLimit(0.5) })
	assert.Panics(t, func() { psrf.WithEigenTolerance(0) })
	assert.Panics(t, func() { psrf.WithMaxSweeps(0) })
}

func TestConverged(t *testing.T) {
	assert.True(t, psrf.Converged(1.0, 1.05))
	assert.False(t, psrf.Converged(1.0, 1.1))
	assert.False(t, psrf.Converged(math.NaN()))
	assert.False(t, psrf.Converged())
}

func maxOf(x []float64) float64 {
	m := math.Inf(-1)
	for _, v := range x {
		m = math.Max(m, v)
	}

	return m
}
