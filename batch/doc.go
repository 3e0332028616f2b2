// SPDX-License-Identifier: MIT

// Package batch provides the sequence statistics the diagnostics share:
// Welford moments, autocovariances, the batch partition with its per-batch
// summaries, the Bartlett spectral density at zero and empirical quantiles.
//
// Every function works on a plain []float64 (one dimension of a chain) and
// never mutates its input.
package batch
