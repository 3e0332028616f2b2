// SPDX-License-Identifier: MIT

// Package chaindiag is a toolkit for judging whether Markov chain Monte
// Carlo output has converged to its stationary distribution.
//
// What is in the box?
//
//	A deterministic, allocation-conscious set of diagnostics over a single
//	d-dimensional chain of n draws:
//		• Potential scale reduction: univariate, multivariate and interval
//		  based, computed from contiguous batches of one chain
//		• Effective sample size with Geyer's initial monotone sequence
//		• Geweke's early-versus-late window test
//		• Raftery–Lewis run-length, burn-in and thinning estimates
//
// Under the hood the work is split into small packages:
//
//	matrix/    dense container, validators and the symmetric Jacobi eigen-solver
//	chain/     the immutable sample matrix and the shared error sentinels
//	batch/     moments, batch partitions, autocovariance and spectral density at zero
//	psrf/      Univariate, Multivariate and Interval shrink factors
//	ess/       effective sample size
//	geweke/    Geweke z-scores
//	raftery/   Raftery–Lewis diagnostic
//	report/    concurrent full run, configuration and text rendering
//	chainio/   chain files, plain or gzip/zstd/lz4/s2 compressed
//	simulate/  reproducible AR(1) and drifting fixtures
//
// The chaindiag command (cmd/chaindiag) wraps report and chainio:
//
//	chaindiag simulate --dims 10 --draws 10000 chain.csv.zst
//	chaindiag run --strict chain.csv.zst
package chaindiag
