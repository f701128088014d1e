// SPDX-License-Identifier: MIT

// Package sparse - element-wise kernels, products with vectors and reductions.
//
// Mat-vec contract:
//   - y := beta*y + alpha*op(A)*x, op(A) = A or A^T.
//   - Two phases, each a separate parallel loop: scale y by beta (over rows),
//     then scatter alpha*v*x[c] into y[r] (over nonzeros) with atomic adds.
//     A row may own several nonzeros, so scatter writers can collide.
//   - beta == 0 clears y instead of scaling it, so NaN or Inf in y is not read.
//   - x and y must not overlap.

package sparse

import (
	"math"

	"github.com/katalvlaran/sparsekkt/parallel"
	"gonum.org/v1/gonum/mat"
)

// FillConstant sets every stored value to c on the primary side.
func (m *Triplet) FillConstant(c float64) error {
	vals, err := m.vals.PrimaryOverwrite()
	if err != nil {
		return sparseErrorf(opFill, err)
	}
	m.cfg.pool.ParallelFor(len(vals), func(start, end int) {
		for k := start; k < end; k++ {
			vals[k] = c
		}
	})

	return nil
}

// SetToZero sets every stored value to 0. The sparsity pattern is kept.
func (m *Triplet) SetToZero() error { return m.FillConstant(0) }

// MulVec computes y := beta*y + alpha*A*x with len(x) == Cols() and len(y) == Rows().
func (m *Triplet) MulVec(beta float64, y []float64, alpha float64, x []float64) error {
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
	scatter(m.cfg.pool, rows, cols, vals, alpha, x, y)

	return nil
}

// MulTransVec computes y := beta*y + alpha*A^T*x with len(x) == Rows() and len(y) == Cols().
func (m *Triplet) MulTransVec(beta float64, y []float64, alpha float64, x []float64) error {
	if err := validateVecLen(x, m.nrows); err != nil {
		return sparseErrorf(opMulTransVec, err)
	}
	if err := validateVecLen(y, m.ncols); err != nil {
		return sparseErrorf(opMulTransVec, err)
	}
	rows, cols, vals, err := m.primaries()
	if err != nil {
		return sparseErrorf(opMulTransVec, err)
	}

	scaleVec(m.cfg.pool, beta, y)
	scatter(m.cfg.pool, cols, rows, vals, alpha, x, y)

	return nil
}

// MulVecTo is MulVec on gonum vectors. y must be contiguous (Inc == 1);
// x may be any mat.Vector.
//
// Errors:
//   - ErrTypeMismatch for a strided y, ErrNilArgument for nil vectors.
func (m *Triplet) MulVecTo(beta float64, y *mat.VecDense, alpha float64, x mat.Vector) error {
	return mulVecTo(opMulVec, m.MulVec, beta, y, alpha, x)
}

// MulTransVecTo is MulTransVec on gonum vectors.
func (m *Triplet) MulTransVecTo(beta float64, y *mat.VecDense, alpha float64, x mat.Vector) error {
	return mulVecTo(opMulTransVec, m.MulTransVec, beta, y, alpha, x)
}

type mulVecFunc func(beta float64, y []float64, alpha float64, x []float64) error

func mulVecTo(tag string, mv mulVecFunc, beta float64, y *mat.VecDense, alpha float64, x mat.Vector) error {
	yd, err := outputVector(y)
	if err != nil {
		return sparseErrorf(tag, err)
	}
	xd, err := inputVector(x)
	if err != nil {
		return sparseErrorf(tag, err)
	}

	return mv(beta, yd, alpha, xd)
}

// scaleVec performs y *= beta in parallel over rows.
func scaleVec(p *parallel.Pool, beta float64, y []float64) {
	if beta == 1 {
		return
	}
	p.ParallelFor(len(y), func(start, end int) {
		seg := y[start:end]
		if beta == 0 {
			clear(seg)
			return
		}
		for i := range seg {
			seg[i] *= beta
		}
	})
}

// scatter performs y[out[k]] += alpha*vals[k]*x[in[k]] for every k.
func scatter(p *parallel.Pool, out, in []int, vals []float64, alpha float64, x, y []float64) {
	p.ParallelFor(len(vals), func(start, end int) {
		for k := start; k < end; k++ {
			parallel.AtomicAdd(&y[out[k]], alpha*vals[k]*x[in[k]])
		}
	})
}

// MaxAbs returns max |v| over the stored values, 0 for an empty matrix.
// A NaN value propagates to the result.
func (m *Triplet) MaxAbs() (float64, error) {
	vals, err := m.vals.Primary()
	if err != nil {
		return 0, sparseErrorf(opMaxAbs, err)
	}

	return m.cfg.pool.MaxFloat64(len(vals), 0, func(k int) float64 {
		return math.Abs(vals[k])
	}), nil
}

// IsFinite reports whether no stored value is NaN or ±Inf.
func (m *Triplet) IsFinite() (bool, error) {
	vals, err := m.vals.Primary()
	if err != nil {
		return false, sparseErrorf(opIsFinite, err)
	}

	return m.cfg.pool.All(len(vals), func(k int) bool {
		return !math.IsNaN(vals[k]) && !math.IsInf(vals[k], 0)
	}), nil
}
