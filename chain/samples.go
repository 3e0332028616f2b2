// SPDX-License-Identifier: MIT
// Package chain - the immutable sample matrix consumed by every diagnostic.
//
// Purpose:
//   - Wrap a d×n matrix.Matrix (one row per dimension, draws in temporal
//     order along columns) behind a read-only surface.
//   - Validate once at construction (shape, minimum length, finite values)
//     so diagnostics can read without re-checking.
//   - Hand out contiguous draw windows without copying.
//
// Complexity quicksheet:
//   - New: O(d*n) finiteness scan; Dims/Len/At: O(1); Row: O(n); Window: O(1)
//     over Dense storage.

package chain

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/katalvlaran/chaindiag/matrix"
)

// MinDraws is the shortest chain New accepts.
const MinDraws = 2

// Samples is a read-only d×n sample matrix.
type Samples struct {
	m matrix.Matrix
	d int // dimensions (rows)
	n int // draws (columns)
}

// rowReader is satisfied by *matrix.Dense and *matrix.MatrixView.
type rowReader interface {
	Row(i int) ([]float64, error)
}

// viewer is satisfied by *matrix.Dense and *matrix.MatrixView.
type viewer interface {
	View(r0, c0, rows, cols int) (*matrix.MatrixView, error)
}

// chainErrorf wraps err with a Samples operation tag.
func chainErrorf(tag string, err error) error {
	return fmt.Errorf("chain.%s: %w", tag, err)
}

// New validates m and wraps it.
//
// Errors:
//   - matrix.ErrNilMatrix for a nil m.
//   - ErrInsufficientSamples when m has fewer than MinDraws columns.
//   - matrix.ErrNaNInf on the first non-finite entry.
//
// The caller must not mutate m afterwards.
func New(m matrix.Matrix) (*Samples, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, chainErrorf("New", err)
	}
	if m.Rows() < 1 {
		return nil, chainErrorf("New", matrix.ErrInvalidDimensions)
	}
	if m.Cols() < MinDraws {
		return nil, chainErrorf("New", fmt.Errorf("%d draws, need %d: %w", m.Cols(), MinDraws, ErrInsufficientSamples))
	}
	if err := matrix.ValidateFinite(m); err != nil {
		return nil, chainErrorf("New", err)
	}

	return &Samples{m: m, d: m.Rows(), n: m.Cols()}, nil
}

// Dims returns the number of dimensions d.
func (s *Samples) Dims() int { return s.d }

// Len returns the number of draws n.
func (s *Samples) Len() int { return s.n }

// At returns the draw t of dimension dim.
func (s *Samples) At(dim, t int) (float64, error) {
	v, err := s.m.At(dim, t)
	if err != nil {
		return 0, chainErrorf("At", err)
	}

	return v, nil
}

// Row returns a fresh copy of the draws of one dimension.
func (s *Samples) Row(dim int) ([]float64, error) {
	if dim < 0 || dim >= s.d {
		return nil, chainErrorf("Row", fmt.Errorf("dim %d of %d: %w", dim, s.d, matrix.ErrOutOfRange))
	}
	if rr, ok := s.m.(rowReader); ok {
		row, err := rr.Row(dim)
		if err != nil {
			return nil, chainErrorf("Row", err)
		}

		return row, nil
	}
	row := make([]float64, s.n)
	var err error
	for t := range row {
		if row[t], err = s.m.At(dim, t); err != nil {
			return nil, chainErrorf("Row", err)
		}
	}

	return row, nil
}

// Rows returns a copy of every dimension.
func (s *Samples) Rows() ([][]float64, error) {
	out := make([][]float64, s.d)
	var err error
	for i := range out {
		if out[i], err = s.Row(i); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Window returns the draws [start, start+length) of every dimension.
// Dense-backed samples share storage; other storage is copied once.
//
// Errors: ErrInvalidParameter for a window outside [0, Len()),
// ErrInsufficientSamples when length < MinDraws.
func (s *Samples) Window(start, length int) (*Samples, error) {
	if start < 0 || length < 0 || start+length > s.n {
		return nil, chainErrorf("Window", fmt.Errorf("[%d,%d) of %d draws: %w", start, start+length, s.n, ErrInvalidParameter))
	}
	if length < MinDraws {
		return nil, chainErrorf("Window", fmt.Errorf("%d draws, need %d: %w", length, MinDraws, ErrInsufficientSamples))
	}
	if start == 0 && length == s.n {
		return s, nil
	}

	if v, ok := s.m.(viewer); ok {
		w, err := v.View(0, start, s.d, length)
		if err != nil {
			return nil, chainErrorf("Window", err)
		}

		return &Samples{m: w, d: s.d, n: length}, nil
	}

	data := make([]float64, 0, s.d*length)
	for i := 0; i < s.d; i++ {
		row, err := s.Row(i)
		if err != nil {
			return nil, err
		}
		data = append(data, row[start:start+length]...)
	}
	d, err := matrix.NewDenseFrom(s.d, length, data)
	if err != nil {
		return nil, chainErrorf("Window", err)
	}

	return &Samples{m: d, d: s.d, n: length}, nil
}

// Matrix exposes the underlying storage for read-only use.
func (s *Samples) Matrix() matrix.Matrix { return s.m }

// Fingerprint returns the xxHash64 of the shape and the IEEE-754 bits of
// every draw in row-major order. Equal fingerprints identify equal inputs.
func (s *Samples) Fingerprint() uint64 {
	h := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(s.d))
	_, _ = h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(s.n))
	_, _ = h.Write(buf[:])

	if dense, ok := s.m.(*matrix.Dense); ok {
		dense.Do(func(_, _ int, v float64) bool {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			_, _ = h.Write(buf[:])
			return true
		})

		return h.Sum64()
	}
	var v float64
	for i := 0; i < s.d; i++ {
		for t := 0; t < s.n; t++ {
			v, _ = s.m.At(i, t)
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			_, _ = h.Write(buf[:])
		}
	}

	return h.Sum64()
}
