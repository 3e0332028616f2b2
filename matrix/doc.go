// SPDX-License-Identifier: MIT

// Package matrix offers the dense numeric container and the small set of
// linear-algebra kernels the chain diagnostics are built on.
//
// The matrix package provides:
//
//   - Matrix, a minimal accessor interface (Rows/Cols/At/Set/Clone) that any
//     storage can satisfy, and Dense, a row-major implementation with
//     flat-slice fast paths.
//   - MatrixView, a no-copy window over a Dense (used to slice draw ranges
//     out of a sample matrix without copying).
//   - Kernels: Add, Mul, Transpose, Scale, the Jacobi eigen-solver Eigen
//     (sorted by EigenSym, reduced to its top value by LargestEigenvalue)
//     and the row statistics CenterRows and Covariance.
//   - A numeric policy (Options) controlling NaN/Inf rejection and the
//     tolerances of symmetric checks and eigen sweeps.
//
// All kernels are deterministic: fixed loop orders, no map iteration, no
// hidden randomness. Identical inputs yield bit-identical outputs.
package matrix
