// machine.go - Bus over a memory image with logged I/O

package fuse

import (
	"fmt"
	"io"

	"github.com/intuitionamiga/z80conform/z80"
)

// Ports answers the I/O space of a Machine.
type Ports interface {
	In(port uint16) uint8
	Out(port uint16, value uint8)
}

// HighBytePorts reads back the high byte of the port address and ignores
// writes, the behaviour conformance vectors expect from an empty bus.
type HighBytePorts struct{}

func (HighBytePorts) In(port uint16) uint8 {
	return uint8(port >> 8)
}

func (HighBytePorts) Out(uint16, uint8) {}

// Event is one I/O access, stamped with the cycle count at which the
// executor reported it.
type Event struct {
	Cycle uint64
	Write bool
	Port  uint16
	Value uint8
}

func (e Event) String() string {
	kind := "PR"
	if e.Write {
		kind = "PW"
	}
	return fmt.Sprintf("%s %04x %02x", kind, e.Port, e.Value)
}

// Machine is the Bus handed to the executor for one test case. Memory goes
// to the image; I/O goes to Ports and is appended to the event log.
type Machine struct {
	Mem    *MemoryImage
	Ports  Ports
	Events []Event

	cycles uint64
	ticker z80.Ticker
}

var (
	_ z80.Bus    = (*Machine)(nil)
	_ z80.Ticker = (*Machine)(nil)
)

// NewMachine wires mem and ports together. A nil ports means
// HighBytePorts. Ports that also implement z80.Ticker follow the
// executor's clock.
func NewMachine(mem *MemoryImage, ports Ports) *Machine {
	if ports == nil {
		ports = HighBytePorts{}
	}
	m := &Machine{Mem: mem, Ports: ports}
	m.ticker, _ = ports.(z80.Ticker)
	return m
}

func (m *Machine) ReadMem(addr uint16) uint8 {
	return m.Mem[addr]
}

func (m *Machine) WriteMem(addr uint16, value uint8) {
	m.Mem[addr] = value
}

func (m *Machine) ReadIO(port uint16) uint8 {
	v := m.Ports.In(port)
	m.Events = append(m.Events, Event{Cycle: m.cycles, Port: port, Value: v})
	return v
}

func (m *Machine) WriteIO(port uint16, value uint8) {
	m.Events = append(m.Events, Event{Cycle: m.cycles, Write: true, Port: port, Value: value})
	m.Ports.Out(port, value)
}

func (m *Machine) Tick(cycles int) {
	m.cycles += uint64(cycles)
	if m.ticker != nil {
		m.ticker.Tick(cycles)
	}
}

// Cycles is the total the executor has reported through Tick.
func (m *Machine) Cycles() uint64 {
	return m.cycles
}

// WriteEvents prints an event log in the PR/PW trace format.
func WriteEvents(w io.Writer, events []Event) error {
	for _, e := range events {
		if _, err := fmt.Fprintln(w, e); err != nil {
			return err
		}
	}
	return nil
}
