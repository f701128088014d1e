// SPDX-License-Identifier: MIT

// Package sparse - weighted Gram products alpha*M*diag(D)^-1*N^T.
//
// Both kernels walk rows through the Row-Start Index and compute each
// destination cell as a merge-join of two sorted column ranges: advance the
// pointer with the smaller column, accumulate and advance both on a match.
// No dense row is ever materialized.
//
// Parallelism is over source rows i; row i writes only destination row
// i+rowOff, so no two workers touch the same cell and plain adds suffice.
//
// Complexity: O(sum over row pairs of (nnz(row i) + nnz(row j))).

package sparse

import (
	"fmt"

	"github.com/katalvlaran/sparsekkt/dense"
)

// AddMDinvMtransToDiagBlock adds the upper triangle of alpha*A*diag(d)^-1*A^T
// into the Rows()×Rows() diagonal block of w anchored at (offset, offset).
// The triplets must be sorted by (row, col); len(d) == Cols().
//
// Errors:
//   - ErrNilArgument, ErrNotSquare, ErrDimensionMismatch, ErrOutOfRange.
//   - ErrUnsorted from building the Row-Start Index.
//   - ErrZeroWeight (deep checks only) when d is zero on a used column.
func (m *Triplet) AddMDinvMtransToDiagBlock(offset int, alpha float64, d []float64, w dense.Target) error {
	n, err := validateSquareTarget(w)
	if err != nil {
		return sparseErrorf(opSelfGram, err)
	}
	if err = validateVecLen(d, m.ncols); err != nil {
		return sparseErrorf(opSelfGram, err)
	}
	if err = validateBlock(n, offset, offset, m.nrows, m.nrows); err != nil {
		return sparseErrorf(opSelfGram, err)
	}
	_, cols, vals, err := m.primaries()
	if err != nil {
		return sparseErrorf(opSelfGram, err)
	}
	starts, err := m.rowStartsPrimary()
	if err != nil {
		return sparseErrorf(opSelfGram, err)
	}
	if m.cfg.deepChecks {
		if err = checkWeights(cols, d); err != nil {
			return sparseErrorf(opSelfGram, err)
		}
	}

	data, stride := w.RawRowMajor()
	nrows := m.nrows
	m.cfg.pool.ParallelForAtomic(nrows, func(i int) {
		dst := data[(i+offset)*stride+offset:]
		ks, ke := starts[i], starts[i+1]

		var acc float64
		for k := ks; k < ke; k++ {
			acc += vals[k] * vals[k] / d[cols[k]]
		}
		dst[i] += alpha * acc

		for j := i + 1; j < nrows; j++ {
			dst[j] += alpha * mergeDot(cols, vals, ks, ke, cols, vals, starts[j], starts[j+1], d)
		}
	})

	return nil
}

// AddMDinvNtransToUpperBlock adds alpha*A*diag(d)^-1*N^T, N = other, into the
// Rows()×other.Rows() block of w anchored at (rowOff, colOff). Both matrices
// share the column space and must be sorted by (row, col).
//
// The block must lie entirely on or above the diagonal of w
// (rowOff+Rows()-1 <= colOff); a block crossing the diagonal is rejected with
// ErrLowerTriangle before anything is written.
//
// Errors:
//   - ErrTypeMismatch when other is not a general *Triplet.
//   - ErrDimensionMismatch when column counts or len(d) disagree.
//   - the errors of AddMDinvMtransToDiagBlock.
func (m *Triplet) AddMDinvNtransToUpperBlock(rowOff, colOff int, alpha float64, d []float64, other Matrix, w dense.Target) error {
	o, err := AsTriplet(other)
	if err != nil {
		return sparseErrorf(opCrossGram, err)
	}
	n, err := validateSquareTarget(w)
	if err != nil {
		return sparseErrorf(opCrossGram, err)
	}
	if m.ncols != o.ncols {
		return sparseErrorf(opCrossGram, ErrDimensionMismatch)
	}
	if err = validateVecLen(d, m.ncols); err != nil {
		return sparseErrorf(opCrossGram, err)
	}
	if err = validateBlock(n, rowOff, colOff, m.nrows, o.nrows); err != nil {
		return sparseErrorf(opCrossGram, err)
	}
	if !blockAboveDiagonal(rowOff, colOff, m.nrows, o.nrows) {
		m.cfg.logger.Warn("sparse: cross Gram block crosses the diagonal",
			"rowOff", rowOff, "colOff", colOff, "rows", m.nrows, "cols", o.nrows)

		return sparseErrorf(opCrossGram,
			fmt.Errorf("block at (%d,%d) with %d rows: %w", rowOff, colOff, m.nrows, ErrLowerTriangle))
	}

	_, cols, vals, err := m.primaries()
	if err != nil {
		return sparseErrorf(opCrossGram, err)
	}
	_, ocols, ovals, err := o.primaries()
	if err != nil {
		return sparseErrorf(opCrossGram, err)
	}
	starts, err := m.rowStartsPrimary()
	if err != nil {
		return sparseErrorf(opCrossGram, err)
	}
	ostarts, err := o.rowStartsPrimary()
	if err != nil {
		return sparseErrorf(opCrossGram, err)
	}
	if m.cfg.deepChecks {
		if err = checkWeights(cols, d); err != nil {
			return sparseErrorf(opCrossGram, err)
		}
	}

	data, stride := w.RawRowMajor()
	orows := o.nrows
	m.cfg.pool.ParallelForAtomic(m.nrows, func(i int) {
		dst := data[(i+rowOff)*stride+colOff:]
		ks, ke := starts[i], starts[i+1]
		for j := 0; j < orows; j++ {
			dst[j] += alpha * mergeDot(cols, vals, ks, ke, ocols, ovals, ostarts[j], ostarts[j+1], d)
		}
	})

	return nil
}

// mergeDot returns sum a[k]*b[l]/d[col] over the columns present in both
// sorted ranges ac[ks:ke] and bc[ls:le].
func mergeDot(ac []int, av []float64, ks, ke int, bc []int, bv []float64, ls, le int, d []float64) float64 {
	var acc float64
	for ks < ke && ls < le {
		switch {
		case ac[ks] < bc[ls]:
			ks++
		case ac[ks] > bc[ls]:
			ls++
		default:
			acc += av[ks] * bv[ls] / d[ac[ks]]
			ks++
			ls++
		}
	}

	return acc
}

// checkWeights rejects a zero weight on any column referenced by cols.
// Complexity: O(nnz).
func checkWeights(cols []int, d []float64) error {
	for k, c := range cols {
		if d[c] == 0 {
			return fmt.Errorf("triplet %d uses column %d: %w", k, c, ErrZeroWeight)
		}
	}

	return nil
}
