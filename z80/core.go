// core.go - Built-in Z80 instruction engine

package z80

const (
	flagS  = 0x80
	flagZ  = 0x40
	flagY  = 0x20
	flagH  = 0x10
	flagX  = 0x08
	flagPV = 0x04
	flagN  = 0x02
	flagC  = 0x01
)

const (
	prefixNone byte = iota
	prefixDD
	prefixFD
)

// Core is the built-in Executor. It keeps no machine state of its own
// between calls beyond its dispatch tables, so one Core may serve several
// machines as long as the calls are not concurrent.
type Core struct {
	s      *State
	bus    Bus
	ticker Ticker

	// prefix is the index register selected by a DD/FD prefix for the
	// instruction being executed.
	prefix byte

	baseOps [256]func(*Core)
	cbOps   [256]func(*Core)
	edOps   [256]func(*Core)
}

var _ Executor = (*Core)(nil)

func NewCore() *Core {
	c := &Core{}
	c.initBaseOps()
	c.initCBOps()
	c.initEDOps()
	return c
}

func (c *Core) bind(s *State, bus Bus) {
	c.s = s
	c.bus = bus
	c.ticker, _ = bus.(Ticker)
}

func (c *Core) Reset(s *State) {
	s.PowerOn()
}

func (c *Core) Execute(s *State, bus Bus) {
	c.bind(s, bus)
	c.step()
}

func (c *Core) ExecuteTStates(s *State, bus Bus, budget uint32) uint32 {
	c.bind(s, bus)
	start := s.TStates
	for s.TStates-start < budget {
		c.step()
	}
	return s.TStates - start
}

func (c *Core) Interrupt(s *State, vector uint8) {
	s.RequestInterrupt(vector)
}

func (c *Core) NMI(s *State) {
	s.RequestNMI()
}

// step handles one instruction boundary: a pending NMI first, then an
// enabled maskable interrupt unless the previous instruction was EI, then
// a regular instruction.
func (c *Core) step() {
	s := c.s
	if s.NMIPending {
		c.acceptNMI()
		return
	}
	if s.IntPending && !s.DeferInt && s.InterruptsEnabled() {
		c.acceptInterrupt()
		return
	}
	s.DeferInt = false

	if s.IsHalted() {
		c.incrementR()
		c.tick(4)
		return
	}

	c.prefix = prefixNone
	opcode := c.fetchOpcode()
	c.baseOps[opcode](c)
}

func (c *Core) acceptNMI() {
	s := c.s
	s.NMIPending = false
	s.Halted = 0
	s.IFF1 = 0
	c.incrementR()
	c.push(s.PC)
	s.PC = 0x0066
	s.WZ = s.PC
	c.tick(11)
}

func (c *Core) acceptInterrupt() {
	s := c.s
	s.IntPending = false
	s.Halted = 0
	s.IFF1 = 0
	s.IFF2 = 0

	switch s.IM {
	case 0:
		// The device's byte is executed as the opcode, two wait states
		// longer than the same instruction fetched from memory.
		s.ExecIntVector = true
		c.tick(2)
		c.prefix = prefixNone
		opcode := c.fetchOpcode()
		c.baseOps[opcode](c)
	case 2:
		c.incrementR()
		table := uint16(s.I)<<8 | uint16(s.IntVector)
		c.push(s.PC)
		s.PC = c.read16(table)
		s.WZ = s.PC
		c.tick(19)
	default:
		c.incrementR()
		c.push(s.PC)
		s.PC = 0x0038
		s.WZ = s.PC
		c.tick(13)
	}
}

func (c *Core) tick(cycles int) {
	c.s.TStates += uint32(cycles)
	if c.ticker != nil {
		c.ticker.Tick(cycles)
	}
}

// incrementR advances the low seven bits of R once per M1 cycle.
func (c *Core) incrementR() {
	c.s.R = c.s.R&0x80 | (c.s.R+1)&0x7F
}

func (c *Core) fetchOpcode() uint8 {
	c.incrementR()
	if c.s.ExecIntVector {
		c.s.ExecIntVector = false
		return c.s.IntVector
	}
	op := c.bus.ReadMem(c.s.PC)
	c.s.PC++
	return op
}

func (c *Core) fetchByte() uint8 {
	v := c.bus.ReadMem(c.s.PC)
	c.s.PC++
	return v
}

func (c *Core) fetchWord() uint16 {
	lo := c.fetchByte()
	hi := c.fetchByte()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *Core) read(addr uint16) uint8 {
	return c.bus.ReadMem(addr)
}

func (c *Core) write(addr uint16, value uint8) {
	c.bus.WriteMem(addr, value)
}

func (c *Core) read16(addr uint16) uint16 {
	lo := c.read(addr)
	hi := c.read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *Core) write16(addr uint16, value uint16) {
	c.write(addr, uint8(value))
	c.write(addr+1, uint8(value>>8))
}

func (c *Core) push(value uint16) {
	sp := c.s.Main[SP] - 1
	c.write(sp, uint8(value>>8))
	sp--
	c.write(sp, uint8(value))
	c.s.Main[SP] = sp
}

func (c *Core) pop() uint16 {
	sp := c.s.Main[SP]
	lo := c.read(sp)
	hi := c.read(sp + 1)
	c.s.Main[SP] = sp + 2
	return uint16(hi)<<8 | uint16(lo)
}

func (c *Core) in(port uint16) uint8 {
	return c.bus.ReadIO(port)
}

func (c *Core) out(port uint16, value uint8) {
	c.bus.WriteIO(port, value)
}

func (c *Core) a() uint8 {
	return uint8(c.s.Main[AF] >> 8)
}

func (c *Core) setA(v uint8) {
	c.s.Main[AF] = c.s.Main[AF]&0x00FF | uint16(v)<<8
}

func (c *Core) f() uint8 {
	return uint8(c.s.Main[AF])
}

func (c *Core) setF(v uint8) {
	c.s.Main[AF] = c.s.Main[AF]&0xFF00 | uint16(v)
}

func (c *Core) flag(mask uint8) bool {
	return c.f()&mask != 0
}

func (c *Core) carry() uint8 {
	return c.f() & flagC
}

// index is HL, or IX/IY under a DD/FD prefix.
func (c *Core) index() Pair {
	switch c.prefix {
	case prefixDD:
		return IX
	case prefixFD:
		return IY
	}
	return HL
}

var codeHalves = [8]Half{B, C, D, E, H, L, 0, A}

// reg8 maps a 3-bit register code to a Half. Under a prefix H and L become
// the halves of the index register.
func (c *Core) reg8(code uint8) Half {
	h := codeHalves[code]
	if code == 4 || code == 5 {
		switch c.prefix {
		case prefixDD:
			h += IXH - H
		case prefixFD:
			h += IYH - H
		}
	}
	return h
}

func (c *Core) getReg8(code uint8) uint8 {
	return c.s.Main.Byte(c.reg8(code))
}

func (c *Core) setReg8(code uint8, v uint8) {
	c.s.Main.SetByte(c.reg8(code), v)
}

// getPlain8 and setPlain8 ignore the prefix; they serve instructions that
// also address (IX+d), where H and L keep their meaning.
func (c *Core) getPlain8(code uint8) uint8 {
	return c.s.Main.Byte(codeHalves[code])
}

func (c *Core) setPlain8(code uint8, v uint8) {
	c.s.Main.SetByte(codeHalves[code], v)
}

// memOperand returns the address of the (HL) operand, or of (IX+d)/(IY+d)
// after fetching the displacement. immediate is set when an immediate byte
// follows the displacement, which overlaps part of the address calculation.
func (c *Core) memOperand(immediate bool) uint16 {
	if c.prefix == prefixNone {
		return c.s.Main[HL]
	}
	d := int8(c.fetchByte())
	addr := uint16(int32(c.s.Main[c.index()]) + int32(d))
	c.s.WZ = addr
	if immediate {
		c.tick(5)
	} else {
		c.tick(8)
	}
	return addr
}

// rp maps the 2-bit register pair code used by 16-bit loads and arithmetic.
func (c *Core) rp(code uint8) Pair {
	switch code {
	case 0:
		return BC
	case 1:
		return DE
	case 2:
		return c.index()
	}
	return SP
}

// rp2 is the PUSH/POP variant where code 3 is AF.
func (c *Core) rp2(code uint8) Pair {
	if code == 3 {
		return AF
	}
	return c.rp(code)
}

// cond evaluates the 3-bit condition code NZ Z NC C PO PE P M.
func (c *Core) cond(code uint8) bool {
	f := c.f()
	switch code {
	case 0:
		return f&flagZ == 0
	case 1:
		return f&flagZ != 0
	case 2:
		return f&flagC == 0
	case 3:
		return f&flagC != 0
	case 4:
		return f&flagPV == 0
	case 5:
		return f&flagPV != 0
	case 6:
		return f&flagS == 0
	}
	return f&flagS != 0
}
