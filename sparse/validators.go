// SPDX-License-Identifier: MIT
// Package: sparse
//
// Purpose:
//   - Keep the contract checks shared by all kernels in one place.
//   - Return plain sentinel errors (no wrapping) so call sites can wrap uniformly
//     with their operation tag.
//
// All validators are O(1) unless stated otherwise and allocate nothing.

package sparse

import (
	"github.com/katalvlaran/sparsekkt/dense"
)

// validateVecLen checks len(v) == want.
func validateVecLen(v []float64, want int) error {
	if len(v) != want {
		return ErrDimensionMismatch
	}

	return nil
}

// validateSquareTarget checks that w is non-nil and square, and returns its order.
func validateSquareTarget(w dense.Target) (int, error) {
	if w == nil {
		return 0, ErrNilArgument
	}
	r, c := w.Dims()
	if r != c {
		return 0, ErrNotSquare
	}

	return r, nil
}

// validateBlock checks that the rows×cols block anchored at (rowOff, colOff)
// lies inside an n×n destination.
func validateBlock(n, rowOff, colOff, rows, cols int) error {
	if rowOff < 0 || colOff < 0 || rowOff+rows > n || colOff+cols > n {
		return ErrOutOfRange
	}

	return nil
}

// blockAboveDiagonal reports whether every cell of the rows×cols block at
// (rowOff, colOff) satisfies i <= j, so no per-entry triangle check is needed.
func blockAboveDiagonal(rowOff, colOff, rows, cols int) bool {
	return rows == 0 || cols == 0 || rowOff+rows-1 <= colOff
}

// validateIndices checks every (rows[k], cols[k]) against an nrows×ncols shape.
// Complexity: O(nnz).
func validateIndices(rows, cols []int, nrows, ncols int) error {
	for k := range rows {
		if rows[k] < 0 || rows[k] >= nrows || cols[k] < 0 || cols[k] >= ncols {
			return ErrOutOfRange
		}
	}

	return nil
}

// validateUpper checks rows[k] <= cols[k] for every stored entry.
// Complexity: O(nnz).
func validateUpper(rows, cols []int) error {
	for k := range rows {
		if rows[k] > cols[k] {
			return ErrLowerTriangle
		}
	}

	return nil
}
