// SPDX-License-Identifier: MIT

// Package sparse - diagnostics on the host mirror.
//
// Every function here refreshes a stale host mirror from the primary space
// before reading; none of them writes triplet data.

package sparse

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ---------- Formatting literals ----------

const (
	_fmtHeader   = "matrix of size %d %d and nonzeros %d, printing %d elems\n"
	_fmtIndex    = "%d; "
	_fmtValue    = "%22.16e; "
	_fmtArrClose = "];\n"
)

// Print writes a MATLAB-inspectable dump: a header line, then the 1-indexed
// row and column arrays and the values, truncated to maxElems entries
// (maxElems < 0 prints all). A non-empty msg is printed in front of the
// size header on the same line; the header itself is always written.
// A nil w selects os.Stdout. The layout is for humans, not for parsing.
func (m *Triplet) Print(w io.Writer, msg string, maxElems int) error {
	if w == nil {
		w = os.Stdout
	}
	rows, cols, vals, err := m.syncedHostViews()
	if err != nil {
		return sparseErrorf(opPrint, err)
	}
	n := m.nnz
	if maxElems >= 0 && maxElems < n {
		n = maxElems
	}

	var sb strings.Builder
	if msg != "" {
		sb.WriteString(msg)
		sb.WriteByte(' ')
	}
	fmt.Fprintf(&sb, _fmtHeader, m.nrows, m.ncols, m.nnz, n)

	sb.WriteString("iRow=[")
	for k := 0; k < n; k++ {
		fmt.Fprintf(&sb, _fmtIndex, rows[k]+1)
	}
	sb.WriteString(_fmtArrClose)

	sb.WriteString("jCol=[")
	for k := 0; k < n; k++ {
		fmt.Fprintf(&sb, _fmtIndex, cols[k]+1)
	}
	sb.WriteString(_fmtArrClose)

	sb.WriteString("v=[")
	for k := 0; k < n; k++ {
		fmt.Fprintf(&sb, _fmtValue, vals[k])
	}
	sb.WriteString(_fmtArrClose)

	if _, err = io.WriteString(w, sb.String()); err != nil {
		return sparseErrorf(opPrint, err)
	}

	return nil
}

// CheckIndexesAreOrdered reports whether the triplets are sorted by row and,
// within a row, by non-decreasing column.
func (m *Triplet) CheckIndexesAreOrdered() (bool, error) {
	rows, cols, _, err := m.syncedHostViews()
	if err != nil {
		return false, sparseErrorf(opOrdered, err)
	}

	return ordered(rows, cols), nil
}

func ordered(rows, cols []int) bool {
	for k := 1; k < len(rows); k++ {
		if rows[k] < rows[k-1] {
			return false
		}
		if rows[k] == rows[k-1] && cols[k] < cols[k-1] {
			return false
		}
	}

	return true
}

// NonzerosPerRow returns the number of stored triplets in each row.
func (m *Triplet) NonzerosPerRow() ([]int, error) {
	rows, _, _, err := m.syncedHostViews()
	if err != nil {
		return nil, sparseErrorf(opNonzerosPerRow, err)
	}

	return histogram(rows, m.nrows), nil
}

// NonzerosPerCol returns the number of stored triplets in each column.
func (m *Triplet) NonzerosPerCol() ([]int, error) {
	_, cols, _, err := m.syncedHostViews()
	if err != nil {
		return nil, sparseErrorf(opNonzerosPerCol, err)
	}

	return histogram(cols, m.ncols), nil
}

func histogram(idx []int, n int) []int {
	out := make([]int, n)
	for _, i := range idx {
		out[i]++
	}

	return out
}
