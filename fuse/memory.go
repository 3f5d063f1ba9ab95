// memory.go - Flat 64K memory image with a reproducible background

package fuse

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// DefaultBackground is the fill every address carries unless a test case
// patches it.
var DefaultBackground = []byte{0xDE, 0xAD, 0xBE, 0xEF}

// MemoryImage is the whole 16-bit memory space of one machine.
type MemoryImage [0x10000]uint8

// Patch overrides one byte of the background.
type Patch struct {
	Addr  uint16
	Value uint8
}

// Fill repeats pattern across the image starting at address 0. An empty
// pattern zeroes it.
func (m *MemoryImage) Fill(pattern []byte) {
	if len(pattern) == 0 {
		*m = MemoryImage{}
		return
	}
	for i := range m {
		m[i] = pattern[i%len(pattern)]
	}
}

// Apply writes patches in order; a later patch to the same address wins.
func (m *MemoryImage) Apply(patches []Patch) {
	for _, p := range patches {
		m[p.Addr] = p.Value
	}
}

// ParseBackground reads a fill pattern written as hex digits, "deadbeef"
// for DefaultBackground. "zero" or "" select an all-zero image.
func ParseBackground(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "zero") {
		return []byte{}, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("background %q: %w", s, ErrSyntax)
	}
	return b, nil
}
