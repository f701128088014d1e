// SPDX-License-Identifier: MIT

// Package problem defines the contract through which an interior-point solver
// obtains a nonlinear program: sizes, bounds, objective and constraint values,
// and their derivatives. It also provides the glue that turns those callbacks
// into the triplet matrices of package sparse.
//
// Conventions:
//   - Bounds at or below NegInfBound (-1e20) or at or above PosInfBound (1e20)
//     mean "unbounded" on that side.
//   - Constraints may be evaluated in several calls on disjoint index subsets
//     (for example equalities then inequalities), but every constraint exactly
//     once per iteration. Evaluator enforces this.
//   - Sparse derivative callbacks run in two passes: a structure pass
//     (vals == nil) that reports (row, col) pairs once, and value passes
//     (rows == cols == nil) every iteration, in the same order.
//
// Jacobian and Hessian sort the reported pattern by (row, col) once and
// replay the permutation on every value pass, so callbacks may report entries
// in any order; the Hessian also folds lower-triangle entries into the upper
// triangle.
package problem
