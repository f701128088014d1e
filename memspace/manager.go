// SPDX-License-Identifier: MIT

// Package memspace: Manager is the resource manager handing out storage in the
// registered spaces.
//
// Purpose:
//   - Single source of truth for which spaces exist and whether they are
//     host-addressable.
//   - Byte accounting per space, with an optional capacity (0 = unlimited).
//   - Device requests resolve to Host when device support is disabled, the
//     same way a CPU-only build maps every allocation onto host memory.
//
// Concurrency:
//   - Manager is safe for concurrent use; Buffers are not.

package memspace

import (
	"fmt"
	"sync"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultHostCapacity is the host capacity in bytes (0 = unlimited).
	DefaultHostCapacity int64 = 0
	// DefaultDeviceCapacity is the emulated device capacity in bytes (0 = unlimited).
	DefaultDeviceCapacity int64 = 0
	// DefaultDeviceEnabled controls whether Device is a distinct space.
	DefaultDeviceEnabled = true
)

const panicCapacityInvalid = "memspace: capacity must be non-negative"

type spaceState struct {
	hostAddressable bool
	capacity        int64 // bytes; 0 means unlimited
	inUse           int64 // bytes currently reserved
}

// Manager owns the registry of memory spaces and their byte accounting.
type Manager struct {
	mu            sync.Mutex
	spaces        map[Space]*spaceState
	deviceEnabled bool
}

// ManagerOption configures a Manager at construction.
type ManagerOption func(*managerConfig)

type managerConfig struct {
	hostCapacity   int64
	deviceCapacity int64
	deviceEnabled  bool
}

// WithHostCapacity caps the host space at the given number of bytes.
// Panics on a negative value (programmer error).
func WithHostCapacity(bytes int64) ManagerOption {
	if bytes < 0 {
		panic(panicCapacityInvalid)
	}

	return func(c *managerConfig) { c.hostCapacity = bytes }
}

// WithDeviceCapacity caps the device space at the given number of bytes.
// Panics on a negative value (programmer error).
func WithDeviceCapacity(bytes int64) ManagerOption {
	if bytes < 0 {
		panic(panicCapacityInvalid)
	}

	return func(c *managerConfig) { c.deviceCapacity = bytes }
}

// WithoutDevice disables the device space; Device requests resolve to Host.
func WithoutDevice() ManagerOption {
	return func(c *managerConfig) { c.deviceEnabled = false }
}

// NewManager builds a Manager with Host always registered and Device
// registered unless WithoutDevice is given.
func NewManager(opts ...ManagerOption) *Manager {
	cfg := managerConfig{
		hostCapacity:   DefaultHostCapacity,
		deviceCapacity: DefaultDeviceCapacity,
		deviceEnabled:  DefaultDeviceEnabled,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	m := &Manager{
		spaces:        make(map[Space]*spaceState, 2),
		deviceEnabled: cfg.deviceEnabled,
	}
	m.spaces[Host] = &spaceState{hostAddressable: true, capacity: cfg.hostCapacity}
	if cfg.deviceEnabled {
		m.spaces[Device] = &spaceState{hostAddressable: false, capacity: cfg.deviceCapacity}
	}

	return m
}

var (
	defaultOnce    sync.Once
	defaultManager *Manager
)

// Default returns the process-wide Manager (unlimited host and device).
func Default() *Manager {
	defaultOnce.Do(func() { defaultManager = NewManager() })

	return defaultManager
}

// DeviceEnabled reports whether Device is a distinct space.
func (m *Manager) DeviceEnabled() bool { return m.deviceEnabled }

// Resolve maps a requested space onto the space that will actually be used.
func (m *Manager) Resolve(s Space) Space {
	if s == Device && !m.deviceEnabled {
		return Host
	}

	return s
}

// HostAddressable reports whether the (resolved) space can be read by the host.
func (m *Manager) HostAddressable(s Space) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.spaces[m.Resolve(s)]
	if !ok {
		return false, fmt.Errorf("HostAddressable(%q): %w", s, ErrUnknownSpace)
	}

	return st.hostAddressable, nil
}

// InUse returns the number of bytes currently reserved in s.
func (m *Manager) InUse(s Space) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if st, ok := m.spaces[m.Resolve(s)]; ok {
		return st.inUse
	}

	return 0
}

// reserve accounts bytes in s or fails with ErrUnknownSpace / ErrOutOfMemory.
func (m *Manager) reserve(s Space, bytes int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.spaces[s]
	if !ok {
		return fmt.Errorf("reserve(%q): %w", s, ErrUnknownSpace)
	}
	if st.capacity > 0 && st.inUse+bytes > st.capacity {
		return fmt.Errorf("reserve(%q, %d bytes, %d/%d in use): %w",
			s, bytes, st.inUse, st.capacity, ErrOutOfMemory)
	}
	st.inUse += bytes

	return nil
}

// release returns bytes to s. Unknown spaces are ignored.
func (m *Manager) release(s Space, bytes int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if st, ok := m.spaces[s]; ok {
		st.inUse -= bytes
		if st.inUse < 0 {
			st.inUse = 0
		}
	}
}
