// SPDX-License-Identifier: MIT

package kkt

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/sparsekkt/dense"
	"github.com/katalvlaran/sparsekkt/sparse"
	"golang.org/x/sync/errgroup"
)

const panicNilLogger = "kkt: WithLogger: logger must be non-nil"

// Option configures an Assembler.
type Option func(*Assembler)

// WithLogger routes assembly diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}

	return func(a *Assembler) { a.logger = l }
}

// WithSymmetrize mirrors the assembled upper triangle into the lower one,
// for factorizations that read the full matrix.
func WithSymmetrize() Option {
	return func(a *Assembler) { a.symmetrize = true }
}

// Assembler builds dense KKT matrices from sparse blocks. It holds no
// per-system state and may be shared.
type Assembler struct {
	logger     *slog.Logger
	symmetrize bool
}

// New returns an Assembler configured by opts.
func New(opts ...Option) *Assembler {
	a := &Assembler{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	return a
}

// Augmented overwrites w (order n+m) with the augmented system of the
// n×n Hessian h and the m×n Jacobian j. dx (length n) and dc (length m) are
// optional diagonal regularizations; nil skips them.
//
// Errors:
//   - ErrNilBlock, ErrDimensionMismatch.
//   - errors of the sparse kernels (stale buffers, unsorted triplets).
func (a *Assembler) Augmented(w dense.Target, h *sparse.SymTriplet, j *sparse.Triplet, dx, dc []float64) error {
	if w == nil || h == nil || j == nil {
		return fmt.Errorf("Augmented: %w", ErrNilBlock)
	}
	n, m := h.Rows(), j.Rows()
	if j.Cols() != n {
		return fmt.Errorf("Augmented: Jacobian is %dx%d, Hessian order %d: %w", m, j.Cols(), n, ErrDimensionMismatch)
	}
	if err := checkOrder(w, n+m); err != nil {
		return fmt.Errorf("Augmented: %w", err)
	}
	if !optionalLen(dx, n) || !optionalLen(dc, m) {
		return fmt.Errorf("Augmented: regularization: %w", ErrDimensionMismatch)
	}

	zeroUpper(w)
	if err := h.AddToSymDenseUpper(0, 0, 1, w); err != nil {
		return fmt.Errorf("Augmented: Hessian: %w", err)
	}
	if m > 0 {
		if err := j.TransAddToSymDenseUpper(0, n, 1, w); err != nil {
			return fmt.Errorf("Augmented: Jacobian: %w", err)
		}
	}
	addDiagonal(w, 0, 1, dx)
	addDiagonal(w, n, -1, dc)
	a.logger.Debug("kkt: augmented system assembled", "n", n, "m", m,
		"hessianNNZ", h.NNZ(), "jacobianNNZ", j.NNZ())

	return a.finish(w)
}

// Normal overwrites w (order me+mi) with the constraint normal equations of
// the equality Jacobian je and the inequality Jacobian ji, weighted by
// diag(d)^-1. Either Jacobian may be nil when its constraint set is empty.
// re (length me) and ri (length mi) are optional diagonal regularizations.
//
// Errors:
//   - ErrNilBlock when both Jacobians are nil.
//   - ErrDimensionMismatch when the column spaces, len(d) or w disagree.
//   - errors of the Gram kernels.
func (a *Assembler) Normal(w dense.Target, je, ji *sparse.Triplet, d, re, ri []float64) error {
	if w == nil || (je == nil && ji == nil) {
		return fmt.Errorf("Normal: %w", ErrNilBlock)
	}
	me, mi, n := 0, 0, -1
	if je != nil {
		me, n = je.Rows(), je.Cols()
	}
	if ji != nil {
		mi = ji.Rows()
		if n >= 0 && ji.Cols() != n {
			return fmt.Errorf("Normal: column spaces %d and %d: %w", n, ji.Cols(), ErrDimensionMismatch)
		}
		n = ji.Cols()
	}
	if len(d) != n {
		return fmt.Errorf("Normal: len(d)=%d for %d columns: %w", len(d), n, ErrDimensionMismatch)
	}
	if err := checkOrder(w, me+mi); err != nil {
		return fmt.Errorf("Normal: %w", err)
	}
	if !optionalLen(re, me) || !optionalLen(ri, mi) {
		return fmt.Errorf("Normal: regularization: %w", ErrDimensionMismatch)
	}

	// row-start indices must exist before the blocks run concurrently
	for _, b := range []struct {
		name string
		m    *sparse.Triplet
	}{{"equalities", je}, {"inequalities", ji}} {
		if b.m == nil || b.m.Rows() == 0 {
			continue
		}
		if _, err := b.m.RowStarts(); err != nil {
			return fmt.Errorf("Normal: %s: %w", b.name, err)
		}
	}

	zeroUpper(w)
	// Equality rows (diagonal and coupling blocks) and inequality rows write
	// disjoint cells of w.
	var g errgroup.Group
	if me > 0 {
		g.Go(func() error {
			if err := je.AddMDinvMtransToDiagBlock(0, 1, d, w); err != nil {
				return fmt.Errorf("Normal: equalities: %w", err)
			}
			if mi == 0 {
				return nil
			}
			if err := je.AddMDinvNtransToUpperBlock(0, me, 1, d, ji, w); err != nil {
				return fmt.Errorf("Normal: coupling: %w", err)
			}

			return nil
		})
	}
	if mi > 0 {
		g.Go(func() error {
			if err := ji.AddMDinvMtransToDiagBlock(me, 1, d, w); err != nil {
				return fmt.Errorf("Normal: inequalities: %w", err)
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	addDiagonal(w, 0, 1, re)
	addDiagonal(w, me, 1, ri)
	a.logger.Debug("kkt: normal equations assembled", "equalities", me, "inequalities", mi, "n", n)

	return a.finish(w)
}

func (a *Assembler) finish(w dense.Target) error {
	if !a.symmetrize {
		return nil
	}

	return dense.SymmetrizeUpper(w)
}

func checkOrder(w dense.Target, order int) error {
	r, c := w.Dims()
	if r != order || c != order {
		return fmt.Errorf("destination %dx%d, want order %d: %w", r, c, order, ErrDimensionMismatch)
	}

	return nil
}

func optionalLen(v []float64, n int) bool { return v == nil || len(v) == n }

// zeroUpper clears the upper triangle (diagonal included) of a square target.
func zeroUpper(w dense.Target) {
	n, _ := w.Dims()
	data, stride := w.RawRowMajor()
	for i := 0; i < n; i++ {
		clear(data[i*stride+i : i*stride+n])
	}
}

// addDiagonal adds sign*v[k] to w[off+k][off+k].
func addDiagonal(w dense.Target, off int, sign float64, v []float64) {
	data, stride := w.RawRowMajor()
	for k, x := range v {
		data[(off+k)*stride+off+k] += sign * x
	}
}
