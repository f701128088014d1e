// SPDX-License-Identifier: MIT

// Package problem - sparse derivative matrices fed by callbacks.
//
// Lifecycle:
//   - New*: one structure pass; the pattern is sorted by (row, col) and
//     written once through EditStructure, then published with CopyToDevice.
//   - Update: one value pass per iteration into a scratch slice, permuted into
//     the host mirror, then published.
//
// The permutation is the identity (and skipped) when the callback already
// reports a sorted pattern.

package problem

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/katalvlaran/sparsekkt/sparse"
)

// pattern remembers how callback order maps onto sorted storage order:
// stored entry k is callback entry perm[k].
type pattern struct {
	perm    []int // nil for the identity
	scratch []float64
}

func newPattern(rows, cols []int) pattern {
	perm := make([]int, len(rows))
	for i := range perm {
		perm[i] = i
	}
	slices.SortStableFunc(perm, func(a, b int) int {
		if c := cmp.Compare(rows[a], rows[b]); c != 0 {
			return c
		}

		return cmp.Compare(cols[a], cols[b])
	})

	p := pattern{scratch: make([]float64, len(rows))}
	for k, i := range perm {
		if k != i {
			p.perm = perm

			break
		}
	}

	return p
}

// storeStructure writes the sorted pattern into dst.
func (p pattern) storeStructure(rows, cols, dstRows, dstCols []int) {
	if p.perm == nil {
		copy(dstRows, rows)
		copy(dstCols, cols)

		return
	}
	for k, i := range p.perm {
		dstRows[k], dstCols[k] = rows[i], cols[i]
	}
}

// storeValues permutes the scratch values into dst.
func (p pattern) storeValues(dst []float64) {
	if p.perm == nil {
		copy(dst, p.scratch)

		return
	}
	for k, i := range p.perm {
		dst[k] = p.scratch[i]
	}
}

// publish copies scratch values into m and pushes them to the primary space.
func (p pattern) publish(m *sparse.Triplet) error {
	if err := m.CopyFromDevice(); err != nil {
		return err
	}
	if err := m.EditValues(p.storeValues); err != nil {
		return err
	}

	return m.CopyToDevice()
}

func checkPattern(rows, cols []int, nrows, ncols int) error {
	for k := range rows {
		if rows[k] < 0 || rows[k] >= nrows || cols[k] < 0 || cols[k] >= ncols {
			return fmt.Errorf("entry %d (%d,%d) in %dx%d: %w", k, rows[k], cols[k], nrows, ncols, ErrPatternIndex)
		}
	}

	return nil
}

func allIndices(m int) []int {
	idx := make([]int, m)
	for i := range idx {
		idx[i] = i
	}

	return idx
}

// Jacobian is the m×n constraint Jacobian of a SparseConstraints problem,
// stored sorted by (row, col) so it can feed the Gram kernels directly.
type Jacobian struct {
	*sparse.Triplet

	prob SparseConstraints
	idx  []int
	pat  pattern
}

// NewJacobian runs the structure pass of p and allocates the Jacobian with opts.
//
// Errors:
//   - ErrCallback wrapping callback failures.
//   - ErrPatternIndex when the pattern leaves the m×n shape.
//   - allocation errors from package sparse.
func NewJacobian(p SparseConstraints, opts ...sparse.Option) (*Jacobian, error) {
	n, m, err := p.ProblemSizes()
	if err != nil {
		return nil, fmt.Errorf("NewJacobian: %w: %w", ErrCallback, err)
	}
	nnz := p.JacobianNNZ()
	rows, cols := make([]int, nnz), make([]int, nnz)
	idx := allIndices(m)
	if err = p.EvalJacConsSparse(idx, nil, false, rows, cols, nil); err != nil {
		return nil, fmt.Errorf("NewJacobian: structure: %w: %w", ErrCallback, err)
	}
	if err = checkPattern(rows, cols, m, n); err != nil {
		return nil, fmt.Errorf("NewJacobian: %w", err)
	}

	t, err := sparse.NewTriplet(m, n, nnz, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewJacobian: %w", err)
	}
	j := &Jacobian{Triplet: t, prob: p, idx: idx, pat: newPattern(rows, cols)}
	err = t.EditStructure(func(r, c []int) { j.pat.storeStructure(rows, cols, r, c) })
	if err == nil {
		err = t.CopyToDevice()
	}
	if err != nil {
		t.Release()

		return nil, fmt.Errorf("NewJacobian: %w", err)
	}

	return j, nil
}

// Update runs a value pass at x and publishes the values.
func (j *Jacobian) Update(x []float64, newX bool) error {
	if err := j.prob.EvalJacConsSparse(j.idx, x, newX, nil, nil, j.pat.scratch); err != nil {
		return fmt.Errorf("Jacobian.Update: %w: %w", ErrCallback, err)
	}
	if err := j.pat.publish(j.Triplet); err != nil {
		return fmt.Errorf("Jacobian.Update: %w", err)
	}

	return nil
}

// Hessian is the n×n Hessian of the Lagrangian in upper-triangle storage.
// Callback entries below the diagonal are folded into the upper triangle.
type Hessian struct {
	*sparse.SymTriplet

	prob SparseConstraints
	m    int
	pat  pattern
}

// NewHessian runs the structure pass of p and allocates the Hessian with opts.
func NewHessian(p SparseConstraints, opts ...sparse.Option) (*Hessian, error) {
	n, m, err := p.ProblemSizes()
	if err != nil {
		return nil, fmt.Errorf("NewHessian: %w: %w", ErrCallback, err)
	}
	nnz := p.HessianNNZ()
	rows, cols := make([]int, nnz), make([]int, nnz)
	if err = p.EvalHessLagr(nil, false, 1, nil, rows, cols, nil); err != nil {
		return nil, fmt.Errorf("NewHessian: structure: %w: %w", ErrCallback, err)
	}
	if err = checkPattern(rows, cols, n, n); err != nil {
		return nil, fmt.Errorf("NewHessian: %w", err)
	}
	for k := range rows {
		if rows[k] > cols[k] {
			rows[k], cols[k] = cols[k], rows[k]
		}
	}

	s, err := sparse.NewSymTriplet(n, nnz, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewHessian: %w", err)
	}
	h := &Hessian{SymTriplet: s, prob: p, m: m, pat: newPattern(rows, cols)}
	err = s.EditStructure(func(r, c []int) { h.pat.storeStructure(rows, cols, r, c) })
	if err == nil {
		err = s.CopyToDevice()
	}
	if err != nil {
		s.Release()

		return nil, fmt.Errorf("NewHessian: %w", err)
	}

	return h, nil
}

// Update runs a value pass of objFactor*H_f + sum lambda[i]*H_ci at x and
// publishes the values. len(lambda) must equal the number of constraints.
func (h *Hessian) Update(x []float64, newX bool, objFactor float64, lambda []float64) error {
	if len(lambda) != h.m {
		return fmt.Errorf("Hessian.Update: %w", ErrDimensionMismatch)
	}
	if err := h.prob.EvalHessLagr(x, newX, objFactor, lambda, nil, nil, h.pat.scratch); err != nil {
		return fmt.Errorf("Hessian.Update: %w: %w", ErrCallback, err)
	}
	if err := h.pat.publish(h.Triplet); err != nil {
		return fmt.Errorf("Hessian.Update: %w", err)
	}

	return nil
}
