// SPDX-License-Identifier: MIT

// Package parallel provides the data-parallel execution layer used by the
// sparse kernels: a persistent worker pool, parallel-for loops over index
// ranges, reductions, and atomic float64 accumulation.
//
// Every call is synchronous: it issues the work and waits for completion
// before returning. Two consecutive calls are therefore ordered, which is how
// multi-phase kernels (scale, then scatter) get their barrier.
//
// A nil *Pool is valid and runs everything on the calling goroutine.
//
// Usage:
//
//	pool := parallel.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	pool.ParallelFor(nnz, func(start, end int) {
//	    for k := start; k < end; k++ {
//	        parallel.AtomicAdd(&y[rows[k]], alpha*vals[k]*x[cols[k]])
//	    }
//	})
package parallel
