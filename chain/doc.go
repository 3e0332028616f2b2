// SPDX-License-Identifier: MIT

// Package chain holds the sample matrix and the error taxonomy shared by
// the convergence diagnostics.
//
// A Samples value is a d×n matrix: one row per dimension of the target
// distribution, one column per draw, columns in the order the random walk
// produced them. Build one from storage you already own (New), from one
// slice per dimension (FromRows) or from one slice per draw (FromDraws).
//
//	s, err := chain.FromDraws(draws) // draws [][]float64, len n, each len d
//	if err != nil { ... }
//	tail, _ := s.Window(1000, s.Len()-1000)
//
// Diagnostics never mutate a Samples and keep no state between calls.
// Per-dimension failures come back as *DimensionError values aggregated in
// a multierror; use errors.Is with the sentinels below and errors.As with
// *DimensionError to inspect them.
package chain
