// SPDX-License-Identifier: MIT
// Package chain: sentinel error set shared by every diagnostic.
//
// Diagnostics return these sentinels wrapped with an operation tag and,
// for per-dimension failures, inside a *DimensionError. Several failing
// dimensions are aggregated into a single multierror, so errors.Is still
// matches every sentinel and errors.As still finds the first DimensionError.

package chain

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrInsufficientSamples indicates the chain is too short for the
	// requested batch layout, window or precision.
	ErrInsufficientSamples = errors.New("chain: insufficient samples")

	// ErrDegenerateVariance indicates a zero within-batch variance, a zero
	// interval length or a zero spectral density.
	ErrDegenerateVariance = errors.New("chain: degenerate variance")

	// ErrNumericalInstability indicates a singular or ill-conditioned
	// within-batch covariance, or a failed eigen solve.
	ErrNumericalInstability = errors.New("chain: numerical instability")

	// ErrDegenerateBinarySequence indicates the quantile indicator sequence
	// has a single state or a deterministic alternation.
	ErrDegenerateBinarySequence = errors.New("chain: degenerate binary sequence")

	// ErrInvalidParameter indicates a runtime parameter outside its domain.
	ErrInvalidParameter = errors.New("chain: invalid parameter")
)

// DimensionError attributes a failure to one dimension of the sample matrix.
type DimensionError struct {
	Dim int
	Err error
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("dimension %d: %v", e.Dim, e.Err)
}

func (e *DimensionError) Unwrap() error { return e.Err }

// AppendDimensionError adds a DimensionError for dim to acc.
// acc may be nil; the result is always non-nil.
func AppendDimensionError(acc error, dim int, err error) error {
	merr := multierror.Append(acc, &DimensionError{Dim: dim, Err: err})
	merr.ErrorFormat = listFormat

	return merr
}

// listFormat renders aggregated errors on one line, in append order.
func listFormat(errs []error) string {
	if len(errs) == 1 {
		return errs[0].Error()
	}
	s := fmt.Sprintf("%d dimensions failed: ", len(errs))
	for i, err := range errs {
		if i > 0 {
			s += "; "
		}
		s += err.Error()
	}

	return s
}
