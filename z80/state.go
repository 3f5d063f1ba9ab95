// state.go - Architectural state of one Z80 machine

package z80

// HaltedSentinel is the value of State.Halted while the CPU sits in HALT.
// Executors write exactly this value; anything else means "running".
const HaltedSentinel uint8 = 1

// State is everything an Executor reads and writes between instructions.
// A State belongs to a single machine and must not be shared between
// concurrent executions.
type State struct {
	Main   RegisterFile
	Shadow RegisterFile

	PC uint16
	R  uint8
	I  uint8

	IFF1 uint8
	IFF2 uint8
	IM   uint8

	Halted  uint8
	TStates uint32

	// Request latches. IntVector is the byte the interrupting device puts
	// on the data bus; ExecIntVector marks that the next opcode fetch must
	// take it instead of reading memory (IM 0).
	NMIPending    bool
	IntPending    bool
	DeferInt      bool
	IntVector     uint8
	ExecIntVector bool

	// WZ is the internal MEMPTR register. It is not part of the text format.
	WZ uint16
}

// NewState returns a State in the power-on configuration.
func NewState() *State {
	s := &State{}
	s.PowerOn()
	return s
}

// PowerOn puts every register to zero, disables interrupts, clears all
// request latches and the cycle counter.
func (s *State) PowerOn() {
	*s = State{}
}

// RequestInterrupt latches a maskable interrupt carrying vector. Whether it
// is accepted is decided by the executor at the next instruction boundary.
func (s *State) RequestInterrupt(vector uint8) {
	s.IntPending = true
	s.IntVector = vector
}

// ClearInterrupt drops a maskable request that has not been accepted yet,
// as when a device releases the INT line.
func (s *State) ClearInterrupt() {
	s.IntPending = false
}

// RequestNMI latches a non-maskable interrupt.
func (s *State) RequestNMI() {
	s.NMIPending = true
}

func (s *State) IsHalted() bool {
	return s.Halted == HaltedSentinel
}

// InterruptsEnabled reports IFF1, the flip-flop that gates maskable interrupts.
func (s *State) InterruptsEnabled() bool {
	return s.IFF1 != 0
}

// ExchangeAF swaps AF with its shadow.
func (s *State) ExchangeAF() {
	s.Main[AF], s.Shadow[AF] = s.Shadow[AF], s.Main[AF]
}

// Exchange swaps BC, DE and HL with their shadows.
func (s *State) Exchange() {
	for _, p := range [...]Pair{BC, DE, HL} {
		s.Main[p], s.Shadow[p] = s.Shadow[p], s.Main[p]
	}
}
