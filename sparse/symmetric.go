// SPDX-License-Identifier: MIT

// Package sparse - symmetric matrix in upper-triangle-only storage.
//
// A stored (r, c, v) with r <= c stands for both (r, c) and (c, r); a diagonal
// entry stands for itself once. Kernels that must see the implicit lower
// triangle are overridden here; the rest are inherited from Triplet:
//
//	MulVec / MulTransVec       both triangles, identical results
//	AddToSymDenseUpper         stored triangle only, atomic accumulation
//	TransAddToSymDenseUpper    writes w[c+rowOff][r+colOff], no mirroring
//	Gram kernels               unsupported (rows are only half stored)
//	AddSubDiagonalTo           symmetric-only diagonal extraction

package sparse

import (
	"fmt"

	"github.com/katalvlaran/sparsekkt/dense"
	"github.com/katalvlaran/sparsekkt/parallel"
	"gonum.org/v1/gonum/mat"
)

// SymTriplet is an n×n symmetric matrix storing only entries with row <= col.
// The embedded Triplet views the stored upper triangle as a general matrix.
type SymTriplet struct {
	*Triplet
}

// NewSymTriplet allocates an n×n symmetric matrix with room for nnz stored entries.
func NewSymTriplet(n, nnz int, opts ...Option) (*SymTriplet, error) {
	t, err := newTriplet(opNewSym, n, n, nnz, gatherOptions(opts...))
	if err != nil {
		return nil, err
	}

	return &SymTriplet{Triplet: t}, nil
}

// NewSymTripletFromEntries allocates an n×n symmetric matrix holding entries.
//
// Errors:
//   - ErrLowerTriangle when an entry has Row > Col.
//   - the errors of NewTripletFromEntries.
func NewSymTripletFromEntries(n int, entries []Entry, opts ...Option) (*SymTriplet, error) {
	for k, e := range entries {
		if e.Row > e.Col {
			return nil, sparseErrorf(opNewSym, fmt.Errorf("entry %d (%d,%d): %w", k, e.Row, e.Col, ErrLowerTriangle))
		}
	}
	t, err := newTripletFromEntries(opNewSym, n, n, entries, gatherOptions(opts...))
	if err != nil {
		return nil, err
	}

	return &SymTriplet{Triplet: t}, nil
}

// EditStructure is Triplet.EditStructure plus a check that every stored
// entry lies in the upper triangle. A rejected edit leaves the matrix unchanged.
//
// Errors:
//   - ErrLowerTriangle when fn stored an entry with row > col.
//   - the errors of Triplet.EditStructure.
func (m *SymTriplet) EditStructure(fn func(rows, cols []int)) error {
	return m.Triplet.editStructure(fn, validateUpper)
}

// MulVec computes y := beta*y + alpha*S*x over both triangles of S.
func (m *SymTriplet) MulVec(beta float64, y []float64, alpha float64, x []float64) error {
	if err := validateVecLen(x, m.ncols); err != nil {
		return sparseErrorf(opMulVec, err)
	}
	if err := validateVecLen(y, m.nrows); err != nil {
		return sparseErrorf(opMulVec, err)
	}
	rows, cols, vals, err := m.primaries()
	if err != nil {
		return sparseErrorf(opMulVec, err)
	}

	scaleVec(m.cfg.pool, beta, y)
	m.cfg.pool.ParallelFor(len(vals), func(start, end int) {
		for k := start; k < end; k++ {
			r, c := rows[k], cols[k]
			av := alpha * vals[k]
			parallel.AtomicAdd(&y[r], av*x[c])
			if r != c {
				parallel.AtomicAdd(&y[c], av*x[r])
			}
		}
	})

	return nil
}

// MulTransVec equals MulVec since S = S^T.
func (m *SymTriplet) MulTransVec(beta float64, y []float64, alpha float64, x []float64) error {
	return m.MulVec(beta, y, alpha, x)
}

// MulVecTo is MulVec on gonum vectors.
func (m *SymTriplet) MulVecTo(beta float64, y *mat.VecDense, alpha float64, x mat.Vector) error {
	return mulVecTo(opMulVec, m.MulVec, beta, y, alpha, x)
}

// MulTransVecTo is MulVecTo.
func (m *SymTriplet) MulTransVecTo(beta float64, y *mat.VecDense, alpha float64, x mat.Vector) error {
	return mulVecTo(opMulTransVec, m.MulVec, beta, y, alpha, x)
}

// AddToSymDenseUpper adds alpha*v into w[r+rowOff][c+colOff] for every stored
// (r, c, v). The lower triangle is not mirrored: w holds an upper triangle.
// With deep checks the stored entries are verified to satisfy r <= c.
func (m *SymTriplet) AddToSymDenseUpper(rowOff, colOff int, alpha float64, w dense.Target) error {
	if err := m.checkStoredUpper(opEmbed); err != nil {
		return err
	}

	return m.Triplet.AddToSymDenseUpper(rowOff, colOff, alpha, w)
}

// TransAddToSymDenseUpper adds alpha*v into w[c+rowOff][r+colOff] for every
// stored (r, c, v), without mirroring. With deep checks the stored entries are
// verified to satisfy r <= c.
func (m *SymTriplet) TransAddToSymDenseUpper(rowOff, colOff int, alpha float64, w dense.Target) error {
	if err := m.checkStoredUpper(opEmbedTrans); err != nil {
		return err
	}

	return m.Triplet.TransAddToSymDenseUpper(rowOff, colOff, alpha, w)
}

// checkStoredUpper verifies r <= c on the primary side under deep checks.
func (m *SymTriplet) checkStoredUpper(tag string) error {
	if !m.cfg.deepChecks {
		return nil
	}
	rows, cols, _, err := m.primaries()
	if err != nil {
		return sparseErrorf(tag, err)
	}
	if err = validateUpper(rows, cols); err != nil {
		return sparseErrorf(tag, err)
	}

	return nil
}

// AddMDinvMtransToDiagBlock is unsupported on upper-triangle storage.
func (m *SymTriplet) AddMDinvMtransToDiagBlock(offset int, alpha float64, d []float64, w dense.Target) error {
	return sparseErrorf(opSelfGram, ErrUnsupported)
}

// AddMDinvNtransToUpperBlock is unsupported on upper-triangle storage.
func (m *SymTriplet) AddMDinvNtransToUpperBlock(rowOff, colOff int, alpha float64, d []float64, other Matrix, w dense.Target) error {
	return sparseErrorf(opCrossGram, ErrUnsupported)
}

// AddSubDiagonalTo adds alpha*S[r][r] into dest[destStart+r-srcStart] for
// every stored diagonal entry with r in [srcStart, srcStart+count).
// A negative count selects as many diagonal positions as fit in both the
// matrix and dest. Diagonal entries stored more than once are summed.
//
// Errors:
//   - ErrOutOfRange when either window exceeds its bounds.
func (m *SymTriplet) AddSubDiagonalTo(srcStart int, alpha float64, dest []float64, destStart, count int) error {
	if srcStart < 0 || srcStart > m.nrows || destStart < 0 || destStart > len(dest) {
		return sparseErrorf(opSubDiag, ErrOutOfRange)
	}
	if count < 0 {
		count = min(m.nrows-srcStart, len(dest)-destStart)
	}
	if srcStart+count > m.nrows || destStart+count > len(dest) {
		return sparseErrorf(opSubDiag, ErrOutOfRange)
	}
	rows, cols, vals, err := m.primaries()
	if err != nil {
		return sparseErrorf(opSubDiag, err)
	}

	end := srcStart + count
	m.cfg.pool.ParallelFor(len(vals), func(start, stop int) {
		for k := start; k < stop; k++ {
			if r := rows[k]; r == cols[k] && r >= srcStart && r < end {
				parallel.AtomicAdd(&dest[destStart+r-srcStart], alpha*vals[k])
			}
		}
	})

	return nil
}

// AllocClone returns a new symmetric matrix with the same shape, nnz and options.
func (m *SymTriplet) AllocClone() (Matrix, error) {
	t, err := m.allocClone()
	if err != nil {
		return nil, err
	}

	return &SymTriplet{Triplet: t}, nil
}

// Copy returns a deep copy as a *SymTriplet.
func (m *SymTriplet) Copy() (Matrix, error) {
	t, err := m.copyTriplet()
	if err != nil {
		return nil, err
	}

	return &SymTriplet{Triplet: t}, nil
}
