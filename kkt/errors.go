// SPDX-License-Identifier: MIT

package kkt

import "errors"

var (
	// ErrDimensionMismatch indicates blocks whose shapes do not fit together
	// or a destination of the wrong order.
	ErrDimensionMismatch = errors.New("kkt: dimension mismatch")

	// ErrNilBlock indicates a required sparse block or destination is nil.
	ErrNilBlock = errors.New("kkt: nil block")
)
