// SPDX-License-Identifier: MIT

// Package dense - row-major storage & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*stride + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Expose the raw buffer to kernels through the Target capability.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c).

package dense

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt  = "At"
	ctxSet = "Set"
)

// ---------- Formatting literals ----------

const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Matrix context and callsite indices.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Matrix.%s(%d,%d): %w", method, row, col, err)
}

// Matrix is a concrete row-major dense matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Matrix struct {
	r, c int
	data []float64
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Target       = (*Matrix)(nil)
	_ fmt.Stringer = (*Matrix)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate a zero-filled buffer.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Matrix{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewSquare creates an n×n zero matrix, the usual shape of a KKT block.
func NewSquare(n int) (*Matrix, error) { return NewDense(n, n) }

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.c }

// Dims returns (rows, cols).
func (m *Matrix) Dims() (r, c int) { return m.r, m.c }

// RawRowMajor exposes the backing buffer and its row stride.
// Writes through the slice are visible in m.
func (m *Matrix) RawRowMajor() (data []float64, stride int) { return m.data, m.c }

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
func (m *Matrix) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
func (m *Matrix) At(row, col int) (float64, error) {
	idx, err := m.indexOf(ctxAt, row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns v at (row, col).
func (m *Matrix) Set(row, col int, v float64) error {
	idx, err := m.indexOf(ctxSet, row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// Zero resets every element to 0 while keeping the allocation.
func (m *Matrix) Zero() {
	clear(m.data)
}

// Clone returns a deep copy.
// Complexity: O(r*c) time and memory.
func (m *Matrix) Clone() *Matrix {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Matrix{r: m.r, c: m.c, data: cp}
}

// String implements fmt.Stringer for easy debugging.
func (m *Matrix) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}

// SymmetrizeUpper copies the strict upper triangle of a square target into its
// strict lower triangle, turning an upper-triangle KKT block into a full
// symmetric matrix ready for a dense factorization.
//
// Errors:
//   - ErrNilMatrix for a nil target, ErrNonSquare when rows != cols.
//
// Complexity:
//   - Time O(n^2), Space O(1).
func SymmetrizeUpper(t Target) error {
	if t == nil {
		return fmt.Errorf("SymmetrizeUpper: %w", ErrNilMatrix)
	}
	n, c := t.Dims()
	if n != c {
		return fmt.Errorf("SymmetrizeUpper: %w", ErrNonSquare)
	}
	data, stride := t.RawRowMajor()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			data[j*stride+i] = data[i*stride+j]
		}
	}

	return nil
}

// AllClose reports whether |a-b| <= atol + rtol*|b| holds element-wise.
// NaNs never compare close.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
func AllClose(a, b Target, rtol, atol float64) (bool, error) {
	if a == nil || b == nil {
		return false, fmt.Errorf("AllClose: %w", ErrNilMatrix)
	}
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return false, fmt.Errorf("AllClose: %w", ErrDimensionMismatch)
	}
	ad, as := a.RawRowMajor()
	bd, bs := b.RawRowMajor()
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			x, y := ad[i*as+j], bd[i*bs+j]
			if math.IsNaN(x) || math.IsNaN(y) || math.Abs(x-y) > atol+rtol*math.Abs(y) {
				return false, nil
			}
		}
	}

	return true, nil
}
