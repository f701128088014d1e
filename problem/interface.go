// SPDX-License-Identifier: MIT

package problem

// Nonlinearity classifies how a variable or constraint enters the problem.
type Nonlinearity int

const (
	Linear Nonlinearity = iota
	Quadratic
	Nonlinear
)

// String implements fmt.Stringer.
func (k Nonlinearity) String() string {
	switch k {
	case Linear:
		return "linear"
	case Quadratic:
		return "quadratic"
	case Nonlinear:
		return "nonlinear"
	default:
		return "unknown"
	}
}

// Interface is the callback contract every problem implements.
// All slices are owned by the caller and sized by ProblemSizes.
type Interface interface {
	// ProblemSizes returns the number of variables n and constraints m.
	ProblemSizes() (n, m int, err error)

	// VarsInfo fills variable bounds and kinds; each slice has length n.
	VarsInfo(n int, lower, upper []float64, kind []Nonlinearity) error

	// ConsInfo fills constraint bounds and kinds; each slice has length m.
	ConsInfo(m int, lower, upper []float64, kind []Nonlinearity) error

	// EvalF returns the objective at x. newX reports whether x changed since
	// the previous callback.
	EvalF(x []float64, newX bool) (float64, error)

	// EvalGradF fills grad (length n) with the objective gradient.
	EvalGradF(x []float64, newX bool, grad []float64) error

	// EvalCons fills cons[k] with constraint idx[k]; len(cons) == len(idx).
	EvalCons(idx []int, x []float64, newX bool, cons []float64) error
}

// DenseConstraints is implemented by problems with few, dense constraints.
type DenseConstraints interface {
	Interface

	// EvalJacCons fills jac[k][j] = d cons_idx[k] / d x_j.
	EvalJacCons(idx []int, x []float64, newX bool, jac [][]float64) error
}

// SparseConstraints is implemented by problems reporting sparse derivatives.
type SparseConstraints interface {
	Interface

	// JacobianNNZ returns the number of Jacobian entries reported.
	JacobianNNZ() int

	// EvalJacConsSparse reports the Jacobian of the constraints in idx. With
	// vals == nil it fills rows and cols (the pattern); otherwise it fills
	// vals in the pattern's order and rows, cols are nil.
	EvalJacConsSparse(idx []int, x []float64, newX bool, rows, cols []int, vals []float64) error

	// HessianNNZ returns the number of Hessian-of-the-Lagrangian entries reported.
	HessianNNZ() int

	// EvalHessLagr reports objFactor*H_f + sum lambda[i]*H_ci with the same
	// two-pass convention. Entries of one triangle only; either triangle is accepted.
	EvalHessLagr(x []float64, newX bool, objFactor float64, lambda []float64, rows, cols []int, vals []float64) error
}

// Distributor is implemented by problems whose vectors are split across
// processes. Process p owns cols[p] .. cols[p+1]-1.
type Distributor interface {
	// VecDistribInfo fills cols (length ranks+1) and reports whether the
	// vectors are distributed at all.
	VecDistribInfo(globalN int, cols []int) bool
}

// Partition returns the column partition of p for ranks processes, or
// (nil, false) when p is serial. A serial problem owns every column.
func Partition(p Interface, globalN, ranks int) ([]int, bool) {
	d, ok := p.(Distributor)
	if !ok || ranks <= 0 {
		return nil, false
	}
	cols := make([]int, ranks+1)
	if !d.VecDistribInfo(globalN, cols) {
		return nil, false
	}

	return cols, true
}
