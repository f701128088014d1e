// SPDX-License-Identifier: MIT

// Package sparse: functional configuration for triplet matrices.
// This file defines:
//   - Option (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that resolves defaults.
//
// Notes:
//   - Options are captured at construction; AllocClone and Copy inherit them.
//   - Deep checks cost O(nnz) per call; keep them for tests and debugging.

package sparse

import (
	"log/slog"

	"github.com/katalvlaran/sparsekkt/memspace"
	"github.com/katalvlaran/sparsekkt/parallel"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultDeepChecks toggles O(nnz) integrity checks (column order inside a
	// row, zero weights on used columns, stored-entry triangle checks).
	DefaultDeepChecks = false
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicNilManager = "sparse: WithManager: manager must be non-nil"
	panicNilPool    = "sparse: WithPool: pool must be non-nil"
	panicNilLogger  = "sparse: WithLogger: logger must be non-nil"
	panicNoSpace    = "sparse: WithMemorySpace: space must be non-empty"
)

// Option mutates the internal configuration of a matrix under construction.
type Option func(*config)

// config is the effective configuration after applying Option setters.
type config struct {
	space      memspace.Space    // memspace.DefaultSpace()
	mgr        *memspace.Manager // memspace.Default()
	pool       *parallel.Pool    // parallel.Default()
	deepChecks bool              // DefaultDeepChecks
	logger     *slog.Logger      // discards
}

// WithMemorySpace selects the primary memory space of all matrix buffers.
// Unknown spaces are reported by the constructor as memspace.ErrUnknownSpace.
func WithMemorySpace(s memspace.Space) Option {
	if s == "" {
		panic(panicNoSpace)
	}

	return func(c *config) { c.space = s }
}

// WithManager selects the resource manager that accounts for buffer bytes.
func WithManager(m *memspace.Manager) Option {
	if m == nil {
		panic(panicNilManager)
	}

	return func(c *config) { c.mgr = m }
}

// WithPool selects the worker pool that runs the kernels.
func WithPool(p *parallel.Pool) Option {
	if p == nil {
		panic(panicNilPool)
	}

	return func(c *config) { c.pool = p }
}

// WithDeepChecks enables the O(nnz) integrity checks.
func WithDeepChecks() Option {
	return func(c *config) { c.deepChecks = true }
}

// WithLogger routes diagnostic records (index builds, releases, rejected
// lower-triangle writes) to l.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}

	return func(c *config) { c.logger = l }
}

// gatherOptions resolves defaults and applies opts in order.
func gatherOptions(opts ...Option) config {
	c := config{
		space:      memspace.DefaultSpace(),
		mgr:        memspace.Default(),
		pool:       parallel.Default(),
		deepChecks: DefaultDeepChecks,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}

	return c
}

// options rebuilds an Option list reproducing c, used by clones.
func (c config) options() []Option {
	opts := []Option{
		WithMemorySpace(c.space),
		WithManager(c.mgr),
		WithPool(c.pool),
		WithLogger(c.logger),
	}
	if c.deepChecks {
		opts = append(opts, WithDeepChecks())
	}

	return opts
}
