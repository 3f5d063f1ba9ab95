package fuse

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPorts struct {
	outs  []uint16
	ticks int
}

func (p *recordingPorts) In(port uint16) uint8 { return 0x42 }

func (p *recordingPorts) Out(port uint16, value uint8) { p.outs = append(p.outs, port) }

func (p *recordingPorts) Tick(cycles int) { p.ticks += cycles }

func TestMachineDefaultPorts(t *testing.T) {
	m := NewMachine(&MemoryImage{}, nil)

	assert.Equal(t, uint8(0xAB), m.ReadIO(0xABCD))
	m.Tick(7)
	m.WriteIO(0x00FE, 0x10)

	assert.Equal(t, []Event{
		{Cycle: 0, Port: 0xABCD, Value: 0xAB},
		{Cycle: 7, Write: true, Port: 0x00FE, Value: 0x10},
	}, m.Events)

	var out bytes.Buffer
	require.NoError(t, WriteEvents(&out, m.Events))
	assert.Equal(t, "PR abcd ab\nPW 00fe 10\n", out.String())
}

func TestMachineForwardsToPorts(t *testing.T) {
	ports := &recordingPorts{}
	mem := &MemoryImage{}
	m := NewMachine(mem, ports)

	m.WriteMem(0x1234, 0x99)
	assert.Equal(t, uint8(0x99), mem[0x1234])
	assert.Equal(t, uint8(0x99), m.ReadMem(0x1234))

	assert.Equal(t, uint8(0x42), m.ReadIO(0x0001))
	m.WriteIO(0x0002, 0)
	m.Tick(4)
	m.Tick(3)

	assert.Equal(t, []uint16{0x0002}, ports.outs)
	assert.Equal(t, 7, ports.ticks)
	assert.Equal(t, uint64(7), m.Cycles())
}
