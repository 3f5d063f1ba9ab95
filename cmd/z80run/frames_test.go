package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intuitionamiga/z80conform/fuse"
	"github.com/intuitionamiga/z80conform/periph"
	"github.com/intuitionamiga/z80conform/z80"
)

func newTestRunner(t *testing.T, mem *fuse.MemoryImage, ports fuse.Ports, frames int) *runner {
	t.Helper()
	m := fuse.NewMachine(mem, ports)
	s := z80.NewState()
	s.PC = 0x8000
	s.Main.SetWord(z80.SP, 0xFF00)
	s.IM = 1
	return &runner{
		driver:       z80.NewDriver(z80.NewCore(), s, m),
		machine:      m,
		frameTStates: 100,
		vector:       0xFF,
		frames:       frames,
	}
}

func TestRunnerServicesOneInterruptPerFrame(t *testing.T) {
	mem := &fuse.MemoryImage{}
	copy(mem[0x8000:], []uint8{0xFB, 0x76, 0x18, 0xFD}) // EI ; HALT ; JR -3
	copy(mem[0x0038:], []uint8{0x3C, 0xFB, 0xC9})       // INC A ; EI ; RET

	r := newTestRunner(t, mem, nil, 3)
	r.runAll()

	s := r.driver.State()
	assert.Equal(t, uint8(3), s.Main.Byte(z80.A))
	assert.Equal(t, 0, r.missed)
	assert.Equal(t, 3, r.frame)
	assert.True(t, r.finished())
	assert.Less(t, s.TStates, uint32(100))
	assert.GreaterOrEqual(t, r.totalTStates(), uint64(300))
	assert.True(t, s.IsHalted())
}

func TestRunnerWithdrawsIgnoredInterrupts(t *testing.T) {
	mem := &fuse.MemoryImage{}
	copy(mem[0x8000:], []uint8{0xF3, 0x18, 0xFE}) // DI ; JR -2

	r := newTestRunner(t, mem, nil, 4)
	r.runAll()

	assert.Equal(t, 4, r.missed)
	assert.False(t, r.driver.State().IntPending)
}

func TestRunnerRendersBeeper(t *testing.T) {
	mem := &fuse.MemoryImage{}
	copy(mem[0x8000:], []uint8{
		0x3E, 0x10, // LD A,10H
		0xD3, 0xFE, // OUT (FEH),A
		0x18, 0xFE, // JR -2
	})
	bp := periph.NewBeeper(nil)
	r := newTestRunner(t, mem, bp, 2)
	r.beeper = bp
	r.frameTStates = 3500

	r.runAll()

	require.NotEmpty(t, r.audio)
	assert.Equal(t, float32(beeperVolume), r.audio[len(r.audio)-1])
	assert.Empty(t, bp.Edges())
}

func TestParseHex16(t *testing.T) {
	v, err := parseHex16("org", "0x8000")
	require.NoError(t, err)
	assert.Equal(t, uint16(0x8000), v)

	_, err = parseHex16("org", "10000")
	assert.Error(t, err)
}
