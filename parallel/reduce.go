// SPDX-License-Identifier: MIT

package parallel

import (
	"math"

	"golang.org/x/sys/cpu"
)

// Per-chunk partial results are padded to a cache line so workers finishing
// at the same time do not contend on one line.
type paddedFloat struct {
	v float64
	_ cpu.CacheLinePad
}

type paddedBool struct {
	v bool
	_ cpu.CacheLinePad
}

type paddedErr struct {
	err error
	_   cpu.CacheLinePad
}

// MaxFloat64 returns max(floor, fn(0), ..., fn(n-1)). For n <= 0 it returns floor.
func (p *Pool) MaxFloat64(n int, floor float64, fn func(i int) float64) float64 {
	if n <= 0 {
		return floor
	}
	chunks, _ := p.chunking(n)
	partials := make([]paddedFloat, chunks)
	p.forChunks(n, func(chunk, start, end int) {
		m := floor
		for i := start; i < end; i++ {
			m = math.Max(m, fn(i))
		}
		partials[chunk].v = m
	})

	m := floor
	for i := range partials {
		m = math.Max(m, partials[i].v)
	}

	return m
}

// All reports whether pred holds for every index in [0, n). True for n <= 0.
func (p *Pool) All(n int, pred func(i int) bool) bool {
	if n <= 0 {
		return true
	}
	chunks, _ := p.chunking(n)
	partials := make([]paddedBool, chunks)
	p.forChunks(n, func(chunk, start, end int) {
		ok := true
		for i := start; i < end && ok; i++ {
			ok = pred(i)
		}
		partials[chunk].v = ok
	})

	for i := range partials {
		if !partials[i].v {
			return false
		}
	}

	return true
}
