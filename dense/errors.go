// SPDX-License-Identifier: MIT
// Package dense: sentinel error set.
// Every message is prefixed with "dense: ..."; callers match with errors.Is.

package dense

import "errors"

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("dense: dimensions must be > 0")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("dense: index out of range")

	// ErrDimensionMismatch indicates incompatible shapes between operands.
	ErrDimensionMismatch = errors.New("dense: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required.
	ErrNonSquare = errors.New("dense: matrix is not square")

	// ErrTypeMismatch is returned by AsTarget for values that expose no
	// row-major storage.
	ErrTypeMismatch = errors.New("dense: value is not a dense target")

	// ErrNilMatrix indicates a nil matrix argument.
	ErrNilMatrix = errors.New("dense: nil matrix")
)
