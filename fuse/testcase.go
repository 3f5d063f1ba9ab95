// testcase.go - One parsed conformance case

package fuse

import "github.com/intuitionamiga/z80conform/z80"

// TestCase is everything needed to build and run one machine: the initial
// registers, the bytes that differ from the background and the cycle count
// at which to stop.
type TestCase struct {
	Description string
	Line        int // input line of the description

	Initial    z80.State
	Patches    []Patch
	EndTStates uint32
}
