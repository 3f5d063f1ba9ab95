// core_alu.go - Z80 arithmetic, logic and flag computation

package z80

type aluOp uint8

const (
	aluAdd aluOp = iota
	aluAdc
	aluSub
	aluSbc
	aluAnd
	aluXor
	aluOr
	aluCp
)

func parity8(v uint8) bool {
	v ^= v >> 4
	v ^= v >> 2
	v ^= v >> 1
	return v&1 == 0
}

// sz53 returns S and Z for v plus the undocumented copies of bits 5 and 3.
func sz53(v uint8) uint8 {
	f := v & (flagS | flagY | flagX)
	if v == 0 {
		f |= flagZ
	}
	return f
}

func sz53p(v uint8) uint8 {
	f := sz53(v)
	if parity8(v) {
		f |= flagPV
	}
	return f
}

func (c *Core) alu(op aluOp, v uint8) {
	switch op {
	case aluAdd:
		c.add8(v, 0)
	case aluAdc:
		c.add8(v, c.carry())
	case aluSub:
		c.setA(c.sub8(v, 0))
	case aluSbc:
		c.setA(c.sub8(v, c.carry()))
	case aluAnd:
		res := c.a() & v
		c.setA(res)
		c.setF(sz53p(res) | flagH)
	case aluXor:
		res := c.a() ^ v
		c.setA(res)
		c.setF(sz53p(res))
	case aluOr:
		res := c.a() | v
		c.setA(res)
		c.setF(sz53p(res))
	case aluCp:
		c.sub8(v, 0)
		// CP takes bits 5 and 3 from the operand, not the result.
		c.setF(c.f()&^(flagY|flagX) | v&(flagY|flagX))
	}
}

func (c *Core) add8(v, carry uint8) {
	a := c.a()
	sum := uint16(a) + uint16(v) + uint16(carry)
	res := uint8(sum)
	f := sz53(res) | (a^v^res)&flagH
	if (a^v)&0x80 == 0 && (a^res)&0x80 != 0 {
		f |= flagPV
	}
	if sum > 0xFF {
		f |= flagC
	}
	c.setA(res)
	c.setF(f)
}

// sub8 computes A-v-carry, sets flags and returns the result without
// storing it, so CP can share it.
func (c *Core) sub8(v, carry uint8) uint8 {
	a := c.a()
	diff := int(a) - int(v) - int(carry)
	res := uint8(diff)
	f := sz53(res) | flagN | (a^v^res)&flagH
	if (a^v)&0x80 != 0 && (a^res)&0x80 != 0 {
		f |= flagPV
	}
	if diff < 0 {
		f |= flagC
	}
	c.setF(f)
	return res
}

func (c *Core) inc8(v uint8) uint8 {
	res := v + 1
	f := c.carry() | sz53(res)
	if res&0x0F == 0 {
		f |= flagH
	}
	if v == 0x7F {
		f |= flagPV
	}
	c.setF(f)
	return res
}

func (c *Core) dec8(v uint8) uint8 {
	res := v - 1
	f := c.carry() | flagN | sz53(res)
	if v&0x0F == 0 {
		f |= flagH
	}
	if v == 0x80 {
		f |= flagPV
	}
	c.setF(f)
	return res
}

// add16 is ADD HL/IX/IY,rr: S Z and P/V are kept.
func (c *Core) add16(dst Pair, v uint16) {
	x := c.s.Main[dst]
	sum := uint32(x) + uint32(v)
	res := uint16(sum)
	f := c.f()&(flagS|flagZ|flagPV) | uint8(res>>8)&(flagY|flagX)
	if (x^v^res)&0x1000 != 0 {
		f |= flagH
	}
	if sum > 0xFFFF {
		f |= flagC
	}
	c.s.WZ = x + 1
	c.s.Main[dst] = res
	c.setF(f)
}

func (c *Core) adc16(v uint16) {
	hl := c.s.Main[HL]
	sum := uint32(hl) + uint32(v) + uint32(c.carry())
	res := uint16(sum)
	f := uint8(res>>8) & (flagS | flagY | flagX)
	if res == 0 {
		f |= flagZ
	}
	if (hl^v^res)&0x1000 != 0 {
		f |= flagH
	}
	if (hl^v)&0x8000 == 0 && (hl^res)&0x8000 != 0 {
		f |= flagPV
	}
	if sum > 0xFFFF {
		f |= flagC
	}
	c.s.WZ = hl + 1
	c.s.Main[HL] = res
	c.setF(f)
}

func (c *Core) sbc16(v uint16) {
	hl := c.s.Main[HL]
	diff := int32(hl) - int32(v) - int32(c.carry())
	res := uint16(diff)
	f := flagN | uint8(res>>8)&(flagS|flagY|flagX)
	if res == 0 {
		f |= flagZ
	}
	if (hl^v^res)&0x1000 != 0 {
		f |= flagH
	}
	if (hl^v)&0x8000 != 0 && (hl^res)&0x8000 != 0 {
		f |= flagPV
	}
	if diff < 0 {
		f |= flagC
	}
	c.s.WZ = hl + 1
	c.s.Main[HL] = res
	c.setF(f)
}

// rotShift implements the eight CB rotate/shift groups. SLL (group 6) is
// the undocumented shift that feeds a 1 into bit 0.
func (c *Core) rotShift(group, v uint8) uint8 {
	var res, carry uint8
	switch group {
	case 0: // RLC
		carry = v >> 7
		res = v<<1 | carry
	case 1: // RRC
		carry = v & 1
		res = v>>1 | carry<<7
	case 2: // RL
		carry = v >> 7
		res = v<<1 | c.carry()
	case 3: // RR
		carry = v & 1
		res = v>>1 | c.carry()<<7
	case 4: // SLA
		carry = v >> 7
		res = v << 1
	case 5: // SRA
		carry = v & 1
		res = v>>1 | v&0x80
	case 6: // SLL
		carry = v >> 7
		res = v<<1 | 1
	default: // SRL
		carry = v & 1
		res = v >> 1
	}
	c.setF(sz53p(res) | carry)
	return res
}

// bit sets flags for BIT n; xy supplies the undocumented bits 5 and 3.
func (c *Core) bit(n, v, xy uint8) {
	f := c.carry() | flagH | xy&(flagY|flagX)
	if v&(1<<n) == 0 {
		f |= flagZ | flagPV
	} else if n == 7 {
		f |= flagS
	}
	c.setF(f)
}

// rotateA is RLCA/RRCA/RLA/RRA: only C, H, N and bits 5/3 change.
func (c *Core) rotateA(group uint8) {
	a := c.a()
	var res, carry uint8
	switch group {
	case 0:
		carry = a >> 7
		res = a<<1 | carry
	case 1:
		carry = a & 1
		res = a>>1 | carry<<7
	case 2:
		carry = a >> 7
		res = a<<1 | c.carry()
	default:
		carry = a & 1
		res = a>>1 | c.carry()<<7
	}
	c.setA(res)
	c.setF(c.f()&(flagS|flagZ|flagPV) | res&(flagY|flagX) | carry)
}

func (c *Core) daa() {
	a := c.a()
	f := c.f()
	adj := uint8(0)
	carry := f & flagC
	if f&flagH != 0 || a&0x0F > 0x09 {
		adj |= 0x06
	}
	if carry != 0 || a > 0x99 {
		adj |= 0x60
		carry = flagC
	}
	var res uint8
	if f&flagN != 0 {
		res = a - adj
	} else {
		res = a + adj
	}
	c.setA(res)
	c.setF(sz53p(res) | f&flagN | (a^res)&flagH | carry)
}

func (c *Core) cpl() {
	a := ^c.a()
	c.setA(a)
	c.setF(c.f()&(flagS|flagZ|flagPV|flagC) | flagH | flagN | a&(flagY|flagX))
}

func (c *Core) scf() {
	c.setF(c.f()&(flagS|flagZ|flagPV) | c.a()&(flagY|flagX) | flagC)
}

func (c *Core) ccf() {
	f := c.f()
	nf := f&(flagS|flagZ|flagPV) | c.a()&(flagY|flagX)
	if f&flagC != 0 {
		nf |= flagH
	} else {
		nf |= flagC
	}
	c.setF(nf)
}

func (c *Core) neg() {
	a := c.a()
	c.setA(0)
	c.setA(c.sub8(a, 0))
}
