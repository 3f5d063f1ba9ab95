package z80

import "testing"

type ioAccess struct {
	write bool
	port  uint16
	value uint8
}

type coreTestBus struct {
	mem   [0x10000]uint8
	io    [0x10000]uint8
	log   []ioAccess
	ticks uint64
}

func (b *coreTestBus) ReadMem(addr uint16) uint8 {
	return b.mem[addr]
}

func (b *coreTestBus) WriteMem(addr uint16, value uint8) {
	b.mem[addr] = value
}

func (b *coreTestBus) ReadIO(port uint16) uint8 {
	b.log = append(b.log, ioAccess{port: port, value: b.io[port]})
	return b.io[port]
}

func (b *coreTestBus) WriteIO(port uint16, value uint8) {
	b.log = append(b.log, ioAccess{write: true, port: port, value: value})
	b.io[port] = value
}

func (b *coreTestBus) Tick(cycles int) {
	b.ticks += uint64(cycles)
}

type coreTestRig struct {
	bus    *coreTestBus
	state  *State
	driver *Driver
}

func newCoreTestRig() *coreTestRig {
	bus := &coreTestBus{}
	state := NewState()
	return &coreTestRig{
		bus:    bus,
		state:  state,
		driver: NewDriver(NewCore(), state, bus),
	}
}

func (r *coreTestRig) load(start uint16, program ...uint8) {
	for i, value := range program {
		r.bus.mem[start+uint16(i)] = value
	}
	r.state.PC = start
}

func requireEqualU16(t *testing.T, name string, got, want uint16) {
	t.Helper()
	if got != want {
		t.Fatalf("%s = 0x%04X, want 0x%04X", name, got, want)
	}
}

func requireEqualU8(t *testing.T, name string, got, want uint8) {
	t.Helper()
	if got != want {
		t.Fatalf("%s = 0x%02X, want 0x%02X", name, got, want)
	}
}

func requireTStates(t *testing.T, s *State, want uint32) {
	t.Helper()
	if s.TStates != want {
		t.Fatalf("TStates = %d, want %d", s.TStates, want)
	}
}
