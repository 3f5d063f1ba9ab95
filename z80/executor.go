// executor.go - Entry points an instruction engine must provide

package z80

// Executor advances a State by whole instructions over a Bus. The Driver
// holds one as an injected capability; Core is the built-in engine and
// tests substitute doubles.
type Executor interface {
	// Reset puts s into the power-on configuration.
	Reset(s *State)

	// Execute runs one instruction, or accepts one pending interrupt,
	// adding the cycles it took to s.TStates.
	Execute(s *State, bus Bus)

	// ExecuteTStates runs whole instructions until at least budget cycles
	// have elapsed and returns the cycles actually consumed, which may
	// exceed budget.
	ExecuteTStates(s *State, bus Bus, budget uint32) uint32

	// Interrupt latches a maskable interrupt with the given data bus value.
	Interrupt(s *State, vector uint8)

	// NMI latches a non-maskable interrupt.
	NMI(s *State)
}
