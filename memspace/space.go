// SPDX-License-Identifier: MIT

package memspace

import (
	"os"
	"strings"
)

// Space names a memory space. The string form matches the allocator names
// used by resource managers ("HOST", "DEVICE").
type Space string

const (
	// Host is ordinary host-addressable memory.
	Host Space = "HOST"
	// Device is accelerator memory; it is not host-addressable, so buffers
	// allocated there carry a host mirror.
	Device Space = "DEVICE"
)

// EnvSpace is the environment variable consulted by DefaultSpace.
const EnvSpace = "SPARSEKKT_MEMSPACE"

// String implements fmt.Stringer.
func (s Space) String() string { return string(s) }

// ParseSpace maps a case-insensitive name onto a Space.
// Returns ErrUnknownSpace for anything other than "host" or "device".
func ParseSpace(name string) (Space, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case string(Host):
		return Host, nil
	case string(Device):
		return Device, nil
	}

	return "", ErrUnknownSpace
}

// DefaultSpace returns the space named by SPARSEKKT_MEMSPACE, or Host when the
// variable is unset or invalid.
func DefaultSpace() Space {
	v, ok := os.LookupEnv(EnvSpace)
	if !ok {
		return Host
	}
	s, err := ParseSpace(v)
	if err != nil {
		return Host
	}

	return s
}
