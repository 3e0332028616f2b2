// SPDX-License-Identifier: MIT

// Package matrix: the container contract shared by every diagnostic.
// Sample matrices, covariance matrices and eigen workspaces all travel
// through this interface, so callers may plug in their own storage as long
// as it honours the accessor contract below.
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
//
// Contract:
//   - Rows/Cols are O(1) and never change for the lifetime of a value.
//   - At/Set return ErrOutOfRange instead of panicking on bad indices.
//   - Clone returns an independent deep copy.
//
// Diagnostics only ever read through At; Set is used on freshly allocated
// workspaces, never on caller-owned sample data.
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	// Complexity: O(1).
	Rows() int

	// Cols returns the number of columns in the matrix.
	// Complexity: O(1).
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	// Complexity: O(1).
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	// Complexity: O(1).
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	// The returned Matrix is independent of the original.
	// Complexity: O(rows*cols).
	Clone() Matrix
}
