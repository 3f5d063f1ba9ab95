// frames.go - Frame loop with a periodic maskable interrupt

package main

import (
	"github.com/intuitionamiga/z80conform/fuse"
	"github.com/intuitionamiga/z80conform/periph"
	"github.com/intuitionamiga/z80conform/z80"
)

// runner drives one machine a video frame at a time. Every frame begins
// with an interrupt request; a request the CPU has not taken by the end of
// the frame is withdrawn, as the INT line of real hardware is only held
// briefly.
type runner struct {
	driver  *z80.Driver
	machine *fuse.Machine
	beeper  *periph.Beeper

	frameTStates uint32
	vector       uint8
	frames       int

	frame   int
	missed  int
	elapsed uint64
	audio   []float32
}

func (r *runner) finished() bool {
	return r.frame >= r.frames
}

// runFrame executes one frame and rebases the cycle counter so it never
// wraps on long runs.
func (r *runner) runFrame() {
	s := r.driver.State()
	r.driver.DeliverInterrupt(r.vector)
	r.driver.RunUntil(r.frameTStates)
	if s.IntPending {
		s.ClearInterrupt()
		r.missed++
	}

	r.elapsed += uint64(r.frameTStates)
	s.TStates -= r.frameTStates
	r.machine.Events = r.machine.Events[:0]

	if r.beeper != nil {
		r.audio = append(r.audio, r.beeper.Render(sampleRate, periph.DefaultClockHz, beeperVolume)...)
		r.beeper.Reset()
	}
	r.frame++
}

func (r *runner) runAll() {
	for !r.finished() {
		r.runFrame()
	}
}

// totalTStates is the cycle count since the start of the run.
func (r *runner) totalTStates() uint64 {
	return r.elapsed + uint64(r.driver.State().TStates)
}
