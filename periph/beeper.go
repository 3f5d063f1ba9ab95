// beeper.go - One-bit speaker on the ULA port

package periph

import (
	"github.com/intuitionamiga/z80conform/fuse"
	"github.com/intuitionamiga/z80conform/z80"
)

const (
	// SpeakerBit is the bit of an even-port write that drives the speaker.
	SpeakerBit = 0x10

	// DefaultClockHz is the 48K Spectrum CPU clock.
	DefaultClockHz = 3500000
)

// Edge is a change of speaker level at a cycle count.
type Edge struct {
	Cycle uint64
	High  bool
}

// Beeper records speaker edges from writes to even ports and passes every
// access on to the wrapped Ports.
type Beeper struct {
	Next fuse.Ports

	edges   []Edge
	level   bool
	initial bool // level at cycle 0
	cycles  uint64

	// Sample clock. phase is the time of the next sample after the start
	// of the window, in cycles scaled by the sample rate.
	rate, clock int
	phase       uint64
	nextPhase   uint64
	rendered    bool
}

var (
	_ fuse.Ports = (*Beeper)(nil)
	_ z80.Ticker = (*Beeper)(nil)
)

// NewBeeper wraps next; a nil next means fuse.HighBytePorts.
func NewBeeper(next fuse.Ports) *Beeper {
	if next == nil {
		next = fuse.HighBytePorts{}
	}
	return &Beeper{Next: next}
}

func (b *Beeper) In(port uint16) uint8 {
	return b.Next.In(port)
}

func (b *Beeper) Out(port uint16, value uint8) {
	if port&1 == 0 {
		high := value&SpeakerBit != 0
		if high != b.level {
			b.level = high
			b.edges = append(b.edges, Edge{Cycle: b.cycles, High: high})
		}
	}
	b.Next.Out(port, value)
}

func (b *Beeper) Tick(cycles int) {
	b.cycles += uint64(cycles)
	if t, ok := b.Next.(z80.Ticker); ok {
		t.Tick(cycles)
	}
}

// Edges returns the recorded level changes in cycle order.
func (b *Beeper) Edges() []Edge {
	return b.edges
}

// Cycles is the time the beeper has seen.
func (b *Beeper) Cycles() uint64 {
	return b.cycles
}

// Render turns the edges into mono float32 samples covering every cycle
// seen so far. High is volume, low is silence. Across Reset calls the
// samples stay on one continuous clock: the part of a sample period left
// over at the end of a window is carried into the next one.
func (b *Beeper) Render(sampleRate, clockHz int, volume float32) []float32 {
	if sampleRate <= 0 || clockHz <= 0 {
		return nil
	}
	if sampleRate != b.rate || clockHz != b.clock {
		b.rate, b.clock = sampleRate, clockHz
		b.phase = 0
	}
	end := b.cycles * uint64(sampleRate)
	step := uint64(clockHz)

	var n uint64
	if end > b.phase {
		n = (end - b.phase + step - 1) / step
	}
	out := make([]float32, n)
	level := b.initial
	next := 0
	for i := range out {
		at := (b.phase + uint64(i)*step) / uint64(sampleRate)
		for next < len(b.edges) && b.edges[next].Cycle <= at {
			level = b.edges[next].High
			next++
		}
		if level {
			out[i] = volume
		}
	}
	b.nextPhase = b.phase + n*step - end
	b.rendered = true
	return out
}

// Reset forgets the recorded edges and time. The current speaker level
// becomes the starting level of the next Render, and the sample clock
// continues from the last Render.
func (b *Beeper) Reset() {
	b.edges = b.edges[:0]
	b.cycles = 0
	b.initial = b.level
	if b.rendered {
		b.phase = b.nextPhase
		b.rendered = false
	}
}
