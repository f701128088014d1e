// SPDX-License-Identifier: MIT

package problem_test

import (
	"errors"

	"github.com/katalvlaran/sparsekkt/problem"
)

// hs071 is Hock–Schittkowski problem 71:
//
//	min  x0*x3*(x0+x1+x2) + x2
//	s.t. x0*x1*x2*x3 >= 25
//	     x0^2 + x1^2 + x2^2 + x3^2 = 40
//	     1 <= x <= 5
//
// The Jacobian pattern is reported column by column and the Hessian pattern
// in the lower triangle, so both exercise the reordering glue.
type hs071 struct {
	consCalls int
	failCons  bool
	ranks     int
}

var _ problem.SparseConstraints = (*hs071)(nil)
var _ problem.DenseConstraints = (*hs071)(nil)

func (p *hs071) ProblemSizes() (n, m int, err error) { return 4, 2, nil }

func (p *hs071) VarsInfo(n int, lower, upper []float64, kind []problem.Nonlinearity) error {
	for i := 0; i < n; i++ {
		lower[i], upper[i], kind[i] = 1, 5, problem.Nonlinear
	}

	return nil
}

func (p *hs071) ConsInfo(m int, lower, upper []float64, kind []problem.Nonlinearity) error {
	lower[0], upper[0] = 25, problem.PosInfBound
	lower[1], upper[1] = 40, 40
	kind[0], kind[1] = problem.Nonlinear, problem.Quadratic

	return nil
}

func (p *hs071) EvalF(x []float64, _ bool) (float64, error) {
	return x[0]*x[3]*(x[0]+x[1]+x[2]) + x[2], nil
}

func (p *hs071) EvalGradF(x []float64, _ bool, g []float64) error {
	g[0] = x[3]*(x[0]+x[1]+x[2]) + x[0]*x[3]
	g[1] = x[0] * x[3]
	g[2] = x[0]*x[3] + 1
	g[3] = x[0] * (x[0] + x[1] + x[2])

	return nil
}

func (p *hs071) EvalCons(idx []int, x []float64, _ bool, cons []float64) error {
	if p.failCons {
		return errors.New("domain error")
	}
	p.consCalls++
	for k, i := range idx {
		switch i {
		case 0:
			cons[k] = x[0] * x[1] * x[2] * x[3]
		case 1:
			cons[k] = x[0]*x[0] + x[1]*x[1] + x[2]*x[2] + x[3]*x[3]
		}
	}

	return nil
}

func (p *hs071) grads(x []float64) [2][4]float64 {
	return [2][4]float64{
		{x[1] * x[2] * x[3], x[0] * x[2] * x[3], x[0] * x[1] * x[3], x[0] * x[1] * x[2]},
		{2 * x[0], 2 * x[1], 2 * x[2], 2 * x[3]},
	}
}

func (p *hs071) EvalJacCons(idx []int, x []float64, _ bool, jac [][]float64) error {
	g := p.grads(x)
	for k, i := range idx {
		copy(jac[k], g[i][:])
	}

	return nil
}

func (p *hs071) JacobianNNZ() int { return 8 }

func (p *hs071) EvalJacConsSparse(_ []int, x []float64, _ bool, rows, cols []int, vals []float64) error {
	if vals == nil {
		for k := 0; k < 8; k++ {
			rows[k], cols[k] = k%2, k/2
		}

		return nil
	}
	g := p.grads(x)
	for k := 0; k < 8; k++ {
		vals[k] = g[k%2][k/2]
	}

	return nil
}

func (p *hs071) HessianNNZ() int { return 10 }

// hessLower lists the lower triangle row by row.
var hessLower = [10][2]int{{0, 0}, {1, 0}, {1, 1}, {2, 0}, {2, 1}, {2, 2}, {3, 0}, {3, 1}, {3, 2}, {3, 3}}

func (p *hs071) EvalHessLagr(x []float64, _ bool, of float64, l []float64, rows, cols []int, vals []float64) error {
	if vals == nil {
		for k, rc := range hessLower {
			rows[k], cols[k] = rc[0], rc[1]
		}

		return nil
	}
	vals[0] = of*2*x[3] + l[1]*2
	vals[1] = of*x[3] + l[0]*x[2]*x[3]
	vals[2] = l[1] * 2
	vals[3] = of*x[3] + l[0]*x[1]*x[3]
	vals[4] = l[0] * x[0] * x[3]
	vals[5] = l[1] * 2
	vals[6] = of*(2*x[0]+x[1]+x[2]) + l[0]*x[1]*x[2]
	vals[7] = of*x[0] + l[0]*x[0]*x[2]
	vals[8] = of*x[0] + l[0]*x[0]*x[1]
	vals[9] = l[1] * 2

	return nil
}

// VecDistribInfo splits the 4 variables evenly when ranks divide them.
func (p *hs071) VecDistribInfo(globalN int, cols []int) bool {
	ranks := len(cols) - 1
	if p.ranks == 0 || ranks != p.ranks || globalN%ranks != 0 {
		return false
	}
	for r := range cols {
		cols[r] = r * globalN / ranks
	}

	return true
}
