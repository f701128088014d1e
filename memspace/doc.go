// SPDX-License-Identifier: MIT

// Package memspace models the memory spaces a sparse matrix can live in and
// the buffers that own storage inside them.
//
// A Space is either host-addressable (Host) or not (Device). A Buffer whose
// primary space is not host-addressable carries an explicit host mirror, and
// the two sides are reconciled only through CopyToPrimary and CopyToMirror.
//
// Every side of a Buffer carries a fresh/stale tag:
//
//   - writing through PrimaryMut/PrimaryOverwrite marks the mirror stale;
//   - writing through HostMut/HostOverwrite marks the primary stale;
//   - reading or mutating a stale side returns ErrStale.
//
// Allocation goes through a Manager, which keeps per-space byte accounting and
// an optional capacity. The Device space is emulated in ordinary Go memory:
// the contract (no host reads without a sync) is enforced by the Buffer API,
// not by the hardware.
//
// Complexity:
//   - Allocate: O(n) zeroing by the runtime.
//   - CopyToPrimary / CopyToMirror / Clone: O(n).
//   - Accessors: O(1).
package memspace
