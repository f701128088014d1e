// SPDX-License-Identifier: MIT

package problem

import "errors"

var (
	// ErrCallback wraps a failure reported by a problem callback.
	ErrCallback = errors.New("problem: callback failed")

	// ErrDimensionMismatch indicates slices whose lengths disagree with the problem sizes.
	ErrDimensionMismatch = errors.New("problem: dimension mismatch")

	// ErrInconsistentBounds indicates lower > upper for some variable or constraint.
	ErrInconsistentBounds = errors.New("problem: lower bound exceeds upper bound")

	// ErrConstraintIndex indicates a constraint index outside [0, m).
	ErrConstraintIndex = errors.New("problem: constraint index out of range")

	// ErrDuplicateConstraint indicates a constraint evaluated twice in one iteration.
	ErrDuplicateConstraint = errors.New("problem: constraint evaluated more than once")

	// ErrPatternIndex indicates a derivative entry outside the matrix shape.
	ErrPatternIndex = errors.New("problem: derivative entry out of range")
)
