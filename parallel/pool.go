// SPDX-License-Identifier: MIT

package parallel

import (
	"os"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultGrain is the smallest range worth splitting across workers.
	// Shorter ranges run on the calling goroutine.
	DefaultGrain = 1024

	// EnvWorkers overrides the worker count of the Default pool.
	EnvWorkers = "SPARSEKKT_WORKERS"
)

const panicGrainInvalid = "parallel: WithGrain: grain must be positive"

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	grain      int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
	mu         sync.RWMutex // serializes Close against dispatch
}

// workItem represents a single chunk of a parallel operation.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// Option configures a Pool.
type Option func(*Pool)

// WithGrain sets the minimum range length that is split across workers.
// Panics on grain <= 0 (programmer error).
func WithGrain(grain int) Option {
	if grain <= 0 {
		panic(panicGrainInvalid)
	}

	return func(p *Pool) { p.grain = grain }
}

// New creates a worker pool with numWorkers persistent goroutines.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int, opts ...Option) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		grain:      DefaultGrain,
		// Buffer enough for all workers to have pending work
		workC: make(chan workItem, numWorkers*2),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	for range numWorkers {
		go p.worker()
	}

	return p
}

var (
	defaultOnce sync.Once
	defaultPool *Pool
)

// Default returns the shared process-wide pool. Its size comes from
// SPARSEKKT_WORKERS when set to a positive integer, else GOMAXPROCS.
// The default pool is never closed.
func Default() *Pool {
	defaultOnce.Do(func() {
		n := 0
		if v, ok := os.LookupEnv(EnvWorkers); ok {
			if w, err := strconv.Atoi(v); err == nil && w > 0 {
				n = w
			}
		}
		defaultPool = New(n)
	})

	return defaultPool
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers; 1 for a nil pool.
func (p *Pool) NumWorkers() int {
	if p == nil {
		return 1
	}

	return p.numWorkers
}

// Close shuts down the worker pool. Loops already handed to the workers
// complete; later calls run sequentially on the caller. Calling Close multiple
// times, or concurrently with running loops, is safe.
func (p *Pool) Close() {
	if p == nil {
		return
	}
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed.Store(true)
		close(p.workC)
		p.mu.Unlock()
	})
}

// chunking returns how many chunks [0,n) is split into and their size.
func (p *Pool) chunking(n int) (chunks, size int) {
	if p == nil || p.closed.Load() || n < p.grain {
		return 1, n
	}
	workers := min(p.numWorkers, n)
	if workers <= 1 {
		return 1, n
	}
	size = (n + workers - 1) / workers
	chunks = (n + size - 1) / size

	return chunks, size
}

// dispatch hands task(0..chunks-1) to the workers and waits for all of them.
// It reports false, having run nothing, when the pool was closed after
// chunking; the caller then runs the loop inline.
func (p *Pool) dispatch(chunks int, task func(chunk int)) bool {
	var wg sync.WaitGroup

	p.mu.RLock()
	if p.closed.Load() {
		p.mu.RUnlock()

		return false
	}
	wg.Add(chunks)
	for c := range chunks {
		p.workC <- workItem{fn: func() { task(c) }, barrier: &wg}
	}
	p.mu.RUnlock()

	wg.Wait()

	return true
}

// forChunks runs fn(chunk, start, end) for every chunk of [0,n) and waits.
func (p *Pool) forChunks(n int, fn func(chunk, start, end int)) {
	if n <= 0 {
		return
	}
	chunks, size := p.chunking(n)
	if chunks == 1 {
		fn(0, 0, n)
		return
	}

	ok := p.dispatch(chunks, func(c int) {
		start := c * size
		fn(c, start, min(start+size, n))
	})
	if !ok {
		for c := range chunks {
			start := c * size
			fn(c, start, min(start+size, n))
		}
	}
}

// ParallelFor executes fn over [0, n) split into contiguous (start, end)
// ranges, one per worker. Blocks until all work completes.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	p.forChunks(n, func(_, start, end int) { fn(start, end) })
}

// ParallelForAtomic executes fn for each index in [0, n) using atomic work
// stealing. This balances load when the cost per index varies, as it does for
// the rows of a Gram product. Blocks until all work completes.
func (p *Pool) ParallelForAtomic(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	chunks, _ := p.chunking(n)

	var nextIdx atomic.Int64
	steal := func(int) {
		for {
			idx := int(nextIdx.Add(1)) - 1
			if idx >= n {
				return
			}
			fn(idx)
		}
	}
	if chunks == 1 || !p.dispatch(chunks, steal) {
		steal(0)
	}
}

// ParallelForErr is ParallelFor for range bodies that can fail. It runs on the
// pool's workers and returns the error of the lowest failing chunk; the
// remaining chunks still run to completion.
func (p *Pool) ParallelForErr(n int, fn func(start, end int) error) error {
	if n <= 0 {
		return nil
	}
	chunks, _ := p.chunking(n)
	errs := make([]paddedErr, chunks)
	p.forChunks(n, func(chunk, start, end int) {
		errs[chunk].err = fn(start, end)
	})
	for _, e := range errs {
		if e.err != nil {
			return e.err
		}
	}

	return nil
}
