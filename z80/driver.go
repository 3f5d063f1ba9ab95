// driver.go - Sequences instructions and interrupt requests for one machine

package z80

// Driver binds an Executor to the State and Bus of one machine. It does no
// validation: a malformed State is passed to the executor as is.
//
// A Driver is not safe for concurrent use. Separate machines, each with its
// own Driver, State and Bus, may run in parallel.
type Driver struct {
	exec  Executor
	state *State
	bus   Bus
}

func NewDriver(exec Executor, state *State, bus Bus) *Driver {
	return &Driver{exec: exec, state: state, bus: bus}
}

func (d *Driver) State() *State {
	return d.state
}

// Reset returns the machine to power-on through the executor.
func (d *Driver) Reset() {
	d.exec.Reset(d.state)
}

// Step executes exactly one instruction and returns its cycle count.
func (d *Driver) Step() uint32 {
	before := d.state.TStates
	d.exec.Execute(d.state, d.bus)
	return d.state.TStates - before
}

// RunUntil steps while the cycle counter is below target and returns the
// cycles consumed. Instructions are never split, so the counter can end up
// past target by up to one instruction.
func (d *Driver) RunUntil(target uint32) uint32 {
	before := d.state.TStates
	for d.state.TStates < target {
		d.exec.Execute(d.state, d.bus)
	}
	return d.state.TStates - before
}

// RunFor hands a cycle budget to the executor and returns what it consumed.
func (d *Driver) RunFor(budget uint32) uint32 {
	return d.exec.ExecuteTStates(d.state, d.bus, budget)
}

// DeliverNMI requests a non-maskable interrupt for the next instruction
// boundary.
func (d *Driver) DeliverNMI() {
	d.exec.NMI(d.state)
}

// DeliverInterrupt requests a maskable interrupt for the next instruction
// boundary; vector is the value the device drives onto the data bus.
func (d *Driver) DeliverInterrupt(vector uint8) {
	d.exec.Interrupt(d.state, vector)
}
