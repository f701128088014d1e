// SPDX-License-Identifier: MIT
// Package memspace: sentinel error set.
// All functions return these sentinels (optionally wrapped with a call-site
// tag); callers match them with errors.Is.

package memspace

import (
	"errors"
	"fmt"
)

var (
	// ErrAllocation is the root of every allocation failure. A structure whose
	// allocation failed must not be used further.
	ErrAllocation = errors.New("memspace: allocation failed")

	// ErrUnknownSpace is returned when a space is not registered with the Manager.
	ErrUnknownSpace = fmt.Errorf("%w: unknown memory space", ErrAllocation)

	// ErrOutOfMemory is returned when a space has not enough capacity left.
	ErrOutOfMemory = fmt.Errorf("%w: memory space exhausted", ErrAllocation)

	// ErrNegativeLength is returned for a negative element count.
	ErrNegativeLength = fmt.Errorf("%w: negative length", ErrAllocation)

	// ErrStale is returned when a buffer side is read while the other side holds
	// newer data. Call CopyToPrimary or CopyToMirror first.
	ErrStale = errors.New("memspace: buffer side is stale")

	// ErrReleased is returned by any access to a released buffer.
	ErrReleased = errors.New("memspace: buffer released")

	// ErrLengthMismatch is returned when copying between buffers of different lengths.
	ErrLengthMismatch = errors.New("memspace: length mismatch")
)

// bufferErrorf wraps err with a uniform Buffer method tag.
func bufferErrorf(method string, err error) error {
	return fmt.Errorf("Buffer.%s: %w", method, err)
}
