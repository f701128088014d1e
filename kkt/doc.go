// SPDX-License-Identifier: MIT

// Package kkt folds sparse derivative blocks into dense KKT matrices.
//
// Two layouts are assembled, both as the upper triangle of a square dense
// destination (optionally mirrored into the lower triangle afterwards):
//
//	Augmented (order n+m):              Normal (order me+mi):
//	[ H + diag(dx)    J^T       ]       [ Je D^-1 Je^T + diag(re)   Je D^-1 Ji^T             ]
//	[                -diag(dc)  ]       [                           Ji D^-1 Ji^T + diag(ri)  ]
//
// H is a symmetric upper-stored Hessian, J, Je and Ji are row-sorted
// Jacobians sharing the n-column variable space, and D is a positive
// diagonal scaling of that space.
//
// Every sparse block is written through the kernels of package sparse; the
// assembler only places them and adds the diagonal regularizations.
package kkt
