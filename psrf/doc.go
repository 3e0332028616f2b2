// SPDX-License-Identifier: MIT

// Package psrf computes potential scale reduction factors (Gelman–Rubin
// shrink factors) for a single chain by treating contiguous batches of it
// as parallel chains.
//
//   - Univariate: one normal-theory factor per dimension.
//   - Multivariate: one factor over all dimensions jointly (Brooks–Gelman).
//   - Interval: one distribution-free factor per dimension from empirical
//     interval lengths.
//
// Values near 1 indicate the batches agree; ConvergenceThreshold (1.1) is
// the conventional cut-off, applied by Converged. Deciding what to do with
// a factor is left to the caller.
//
// The batch layout (count, minimum length) and the numeric guards of the
// multivariate solve are functional options with documented defaults.
package psrf
