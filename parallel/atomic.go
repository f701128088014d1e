// SPDX-License-Identifier: MIT

package parallel

import (
	"math"
	"sync/atomic"
	"unsafe"
)

// AtomicAdd performs *addr += delta atomically with a compare-and-swap loop on
// the IEEE-754 bit pattern. addr must be 8-byte aligned, which holds for every
// element of a []float64.
func AtomicAdd(addr *float64, delta float64) {
	p := (*uint64)(unsafe.Pointer(addr))
	for {
		old := atomic.LoadUint64(p)
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if atomic.CompareAndSwapUint64(p, old, next) {
			return
		}
	}
}
