// SPDX-License-Identifier: MIT

package problem

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/mat"
)

const panicNilLogger = "problem: WithLogger: logger must be non-nil"

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger routes per-iteration diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}

	return func(e *Evaluator) { e.logger = l }
}

// Evaluator drives the callbacks of one problem and enforces the
// exactly-once rule for constraint evaluation within an iteration.
// An Evaluator is not safe for concurrent use.
type Evaluator struct {
	prob   Interface
	n, m   int
	seen   []bool
	count  int
	iter   int
	logger *slog.Logger
}

// NewEvaluator queries the problem sizes and returns an evaluator positioned
// at iteration 0.
func NewEvaluator(p Interface, opts ...Option) (*Evaluator, error) {
	n, m, err := p.ProblemSizes()
	if err != nil {
		return nil, fmt.Errorf("NewEvaluator: %w: %w", ErrCallback, err)
	}
	if n < 0 || m < 0 {
		return nil, fmt.Errorf("NewEvaluator: sizes (%d, %d): %w", n, m, ErrDimensionMismatch)
	}
	e := &Evaluator{prob: p, n: n, m: m, seen: make([]bool, m), logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	return e, nil
}

// Sizes returns (n, m).
func (e *Evaluator) Sizes() (n, m int) { return e.n, e.m }

// Iteration returns the number of completed NewIteration calls.
func (e *Evaluator) Iteration() int { return e.iter }

// NewIteration starts a new solver iteration: every constraint may be
// evaluated once more.
func (e *Evaluator) NewIteration() {
	if e.count != e.m {
		e.logger.Debug("problem: iteration ended with constraints not evaluated",
			"iteration", e.iter, "evaluated", e.count, "m", e.m)
	}
	clear(e.seen)
	e.count = 0
	e.iter++
}

// Complete reports whether every constraint has been evaluated this iteration.
func (e *Evaluator) Complete() bool { return e.count == e.m }

// EvalConstraints evaluates the constraints in idx into cons (len(cons) == len(idx)).
// Nothing is evaluated when any index is out of range or was already
// evaluated this iteration, including repeats inside idx.
//
// Errors:
//   - ErrDimensionMismatch, ErrConstraintIndex, ErrDuplicateConstraint.
//   - ErrCallback wrapping the callback's own error.
func (e *Evaluator) EvalConstraints(idx []int, x []float64, newX bool, cons []float64) error {
	if len(cons) != len(idx) || len(x) != e.n {
		return fmt.Errorf("EvalConstraints: %w", ErrDimensionMismatch)
	}
	for k, i := range idx {
		if i < 0 || i >= e.m {
			e.rollback(idx[:k])

			return fmt.Errorf("EvalConstraints: idx[%d]=%d: %w", k, i, ErrConstraintIndex)
		}
		if e.seen[i] {
			e.rollback(idx[:k])

			return fmt.Errorf("EvalConstraints: constraint %d: %w", i, ErrDuplicateConstraint)
		}
		e.seen[i] = true
	}
	if err := e.prob.EvalCons(idx, x, newX, cons); err != nil {
		e.rollback(idx)

		return fmt.Errorf("EvalConstraints: %w: %w", ErrCallback, err)
	}
	e.count += len(idx)

	return nil
}

// rollback unmarks idx after a rejected call.
func (e *Evaluator) rollback(idx []int) {
	for _, i := range idx {
		e.seen[i] = false
	}
}

// EvalAllConstraints evaluates all m constraints into cons (len m) in two
// disjoint calls, equalities first, the way the solver splits them.
func (e *Evaluator) EvalAllConstraints(x []float64, newX bool, lower, upper, cons []float64) error {
	if len(cons) != e.m {
		return fmt.Errorf("EvalAllConstraints: %w", ErrDimensionMismatch)
	}
	eq, ineq, err := SplitConstraints(lower, upper)
	if err != nil {
		return err
	}
	for _, subset := range [][]int{eq, ineq} {
		if len(subset) == 0 {
			continue
		}
		vals := make([]float64, len(subset))
		if err = e.EvalConstraints(subset, x, newX, vals); err != nil {
			return err
		}
		for k, i := range subset {
			cons[i] = vals[k]
		}
		newX = false
	}

	return nil
}

// EvalObjective returns f(x) and fills grad with its gradient.
func (e *Evaluator) EvalObjective(x []float64, newX bool, grad []float64) (float64, error) {
	if len(x) != e.n || len(grad) != e.n {
		return 0, fmt.Errorf("EvalObjective: %w", ErrDimensionMismatch)
	}
	f, err := e.prob.EvalF(x, newX)
	if err != nil {
		return 0, fmt.Errorf("EvalObjective: %w: %w", ErrCallback, err)
	}
	if err = e.prob.EvalGradF(x, false, grad); err != nil {
		return 0, fmt.Errorf("EvalObjective: gradient: %w: %w", ErrCallback, err)
	}

	return f, nil
}

// Bounds queries variable and constraint bounds.
func (e *Evaluator) Bounds() (vars, cons Bounds, err error) {
	vars = newBounds(e.n)
	if err = e.prob.VarsInfo(e.n, vars.Lower, vars.Upper, vars.Kind); err != nil {
		return Bounds{}, Bounds{}, fmt.Errorf("Bounds: vars: %w: %w", ErrCallback, err)
	}
	cons = newBounds(e.m)
	if err = e.prob.ConsInfo(e.m, cons.Lower, cons.Upper, cons.Kind); err != nil {
		return Bounds{}, Bounds{}, fmt.Errorf("Bounds: cons: %w: %w", ErrCallback, err)
	}

	return vars, cons, nil
}

// Bounds holds lower/upper bounds and kinds for n items.
type Bounds struct {
	Lower, Upper []float64
	Kind         []Nonlinearity
}

func newBounds(n int) Bounds {
	return Bounds{Lower: make([]float64, n), Upper: make([]float64, n), Kind: make([]Nonlinearity, n)}
}

// DenseJacobian evaluates the full constraint Jacobian of a dense-constraint
// problem into an m×n gonum matrix. It returns nil for m == 0 or n == 0.
func DenseJacobian(p DenseConstraints, x []float64, newX bool) (*mat.Dense, error) {
	n, m, err := p.ProblemSizes()
	if err != nil {
		return nil, fmt.Errorf("DenseJacobian: %w: %w", ErrCallback, err)
	}
	if len(x) != n {
		return nil, fmt.Errorf("DenseJacobian: %w", ErrDimensionMismatch)
	}
	if m == 0 || n == 0 {
		return nil, nil
	}
	jac := mat.NewDense(m, n, nil)
	raw := jac.RawMatrix()
	rows := make([][]float64, m)
	idx := make([]int, m)
	for i := range rows {
		rows[i] = raw.Data[i*raw.Stride : i*raw.Stride+n]
		idx[i] = i
	}
	if err = p.EvalJacCons(idx, x, newX, rows); err != nil {
		return nil, fmt.Errorf("DenseJacobian: %w: %w", ErrCallback, err)
	}

	return jac, nil
}
