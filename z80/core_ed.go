// core_ed.go - ED prefixed instructions

package z80

func (c *Core) initEDOps() {
	for i := range c.edOps {
		// Undefined ED opcodes behave as two NOPs.
		c.edOps[i] = func(c *Core) { c.tick(8) }
	}

	for code := uint8(0); code < 8; code++ {
		y := code
		c.edOps[0x40|y<<3] = func(c *Core) { c.opINRegC(y) }
		c.edOps[0x41|y<<3] = func(c *Core) { c.opOUTCReg(y) }
		c.edOps[0x44|y<<3] = func(c *Core) {
			c.neg()
			c.tick(8)
		}
		c.edOps[0x45|y<<3] = (*Core).opRETN
		mode := [8]uint8{0, 0, 1, 2, 0, 0, 1, 2}[y]
		c.edOps[0x46|y<<3] = func(c *Core) {
			c.s.IM = mode
			c.tick(8)
		}
	}

	for code := uint8(0); code < 4; code++ {
		p := code
		c.edOps[0x42|p<<4] = func(c *Core) {
			c.sbc16(c.s.Main[c.rp(p)])
			c.tick(15)
		}
		c.edOps[0x4A|p<<4] = func(c *Core) {
			c.adc16(c.s.Main[c.rp(p)])
			c.tick(15)
		}
		c.edOps[0x43|p<<4] = func(c *Core) {
			addr := c.fetchWord()
			c.write16(addr, c.s.Main[c.rp(p)])
			c.s.WZ = addr + 1
			c.tick(20)
		}
		c.edOps[0x4B|p<<4] = func(c *Core) {
			addr := c.fetchWord()
			c.s.Main[c.rp(p)] = c.read16(addr)
			c.s.WZ = addr + 1
			c.tick(20)
		}
	}

	c.edOps[0x47] = func(c *Core) {
		c.s.I = c.a()
		c.tick(9)
	}
	c.edOps[0x4F] = func(c *Core) {
		c.s.R = c.a()
		c.tick(9)
	}
	c.edOps[0x57] = func(c *Core) { c.opLDAIR(c.s.I) }
	c.edOps[0x5F] = func(c *Core) { c.opLDAIR(c.s.R) }
	c.edOps[0x67] = (*Core).opRRD
	c.edOps[0x6F] = (*Core).opRLD

	c.edOps[0xA0] = func(c *Core) { c.opLDBlock(1, false) }
	c.edOps[0xA8] = func(c *Core) { c.opLDBlock(-1, false) }
	c.edOps[0xB0] = func(c *Core) { c.opLDBlock(1, true) }
	c.edOps[0xB8] = func(c *Core) { c.opLDBlock(-1, true) }
	c.edOps[0xA1] = func(c *Core) { c.opCPBlock(1, false) }
	c.edOps[0xA9] = func(c *Core) { c.opCPBlock(-1, false) }
	c.edOps[0xB1] = func(c *Core) { c.opCPBlock(1, true) }
	c.edOps[0xB9] = func(c *Core) { c.opCPBlock(-1, true) }
	c.edOps[0xA2] = func(c *Core) { c.opINBlock(1, false) }
	c.edOps[0xAA] = func(c *Core) { c.opINBlock(-1, false) }
	c.edOps[0xB2] = func(c *Core) { c.opINBlock(1, true) }
	c.edOps[0xBA] = func(c *Core) { c.opINBlock(-1, true) }
	c.edOps[0xA3] = func(c *Core) { c.opOUTBlock(1, false) }
	c.edOps[0xAB] = func(c *Core) { c.opOUTBlock(-1, false) }
	c.edOps[0xB3] = func(c *Core) { c.opOUTBlock(1, true) }
	c.edOps[0xBB] = func(c *Core) { c.opOUTBlock(-1, true) }
}

// opEDPrefix ignores any DD/FD prefix in front of it.
func (c *Core) opEDPrefix() {
	c.prefix = prefixNone
	opcode := c.fetchOpcode()
	c.edOps[opcode](c)
}

// opINRegC is IN r,(C); code 6 only sets flags.
func (c *Core) opINRegC(r uint8) {
	port := c.s.Main[BC]
	v := c.in(port)
	if r != 6 {
		c.setPlain8(r, v)
	}
	c.setF(c.carry() | sz53p(v))
	c.s.WZ = port + 1
	c.tick(12)
}

// opOUTCReg is OUT (C),r; code 6 writes zero.
func (c *Core) opOUTCReg(r uint8) {
	port := c.s.Main[BC]
	v := uint8(0)
	if r != 6 {
		v = c.getPlain8(r)
	}
	c.out(port, v)
	c.s.WZ = port + 1
	c.tick(12)
}

// opRETN covers RETN, RETI and their mirrors; all restore IFF1 from IFF2.
func (c *Core) opRETN() {
	c.s.IFF1 = c.s.IFF2
	c.s.PC = c.pop()
	c.s.WZ = c.s.PC
	c.tick(14)
}

func (c *Core) opLDAIR(v uint8) {
	c.setA(v)
	f := c.carry() | sz53(v)
	if c.s.IFF2 != 0 {
		f |= flagPV
	}
	c.setF(f)
	c.tick(9)
}

func (c *Core) opRRD() {
	hl := c.s.Main[HL]
	v := c.read(hl)
	a := c.a()
	c.write(hl, a<<4|v>>4)
	a = a&0xF0 | v&0x0F
	c.setA(a)
	c.setF(c.carry() | sz53p(a))
	c.s.WZ = hl + 1
	c.tick(18)
}

func (c *Core) opRLD() {
	hl := c.s.Main[HL]
	v := c.read(hl)
	a := c.a()
	c.write(hl, v<<4|a&0x0F)
	a = a&0xF0 | v>>4
	c.setA(a)
	c.setF(c.carry() | sz53p(a))
	c.s.WZ = hl + 1
	c.tick(18)
}

// repeatBlock rewinds PC onto the ED prefix so the next Execute runs the
// same instruction again.
func (c *Core) repeatBlock() {
	c.s.PC -= 2
	c.s.WZ = c.s.PC + 1
	c.tick(5)
}

func (c *Core) opLDBlock(dir int, repeat bool) {
	m := &c.s.Main
	v := c.read(m[HL])
	c.write(m[DE], v)
	m[HL] = uint16(int(m[HL]) + dir)
	m[DE] = uint16(int(m[DE]) + dir)
	m[BC]--

	n := c.a() + v
	f := c.f()&(flagS|flagZ|flagC) | n&flagX
	if n&0x02 != 0 {
		f |= flagY
	}
	if m[BC] != 0 {
		f |= flagPV
	}
	c.setF(f)
	c.tick(16)
	if repeat && m[BC] != 0 {
		c.repeatBlock()
	}
}

func (c *Core) opCPBlock(dir int, repeat bool) {
	m := &c.s.Main
	v := c.read(m[HL])
	a := c.a()
	res := a - v
	m[HL] = uint16(int(m[HL]) + dir)
	m[BC]--
	c.s.WZ = uint16(int(c.s.WZ) + dir)

	f := c.carry() | flagN | (a^v^res)&flagH | res&flagS
	if res == 0 {
		f |= flagZ
	}
	n := res
	if f&flagH != 0 {
		n--
	}
	f |= n & flagX
	if n&0x02 != 0 {
		f |= flagY
	}
	if m[BC] != 0 {
		f |= flagPV
	}
	c.setF(f)
	c.tick(16)
	if repeat && m[BC] != 0 && res != 0 {
		c.repeatBlock()
	}
}

// blockIOFlags computes the flags shared by INI/IND/OUTI/OUTD from the
// transferred byte and the helper sum k.
func (c *Core) blockIOFlags(v uint8, k uint16) {
	b := c.s.Main.Byte(B)
	f := sz53(b)
	if v&0x80 != 0 {
		f |= flagN
	}
	if k > 0xFF {
		f |= flagH | flagC
	}
	if parity8(uint8(k)&7 ^ b) {
		f |= flagPV
	}
	c.setF(f)
}

func (c *Core) opINBlock(dir int, repeat bool) {
	m := &c.s.Main
	port := m[BC]
	v := c.in(port)
	c.write(m[HL], v)
	c.s.WZ = uint16(int(port) + dir)
	m.SetByte(B, m.Byte(B)-1)
	m[HL] = uint16(int(m[HL]) + dir)
	k := uint16(v) + uint16(uint8(int(m.Byte(C))+dir))
	c.blockIOFlags(v, k)
	c.tick(16)
	if repeat && m.Byte(B) != 0 {
		c.repeatBlock()
	}
}

func (c *Core) opOUTBlock(dir int, repeat bool) {
	m := &c.s.Main
	v := c.read(m[HL])
	m.SetByte(B, m.Byte(B)-1)
	port := m[BC]
	c.out(port, v)
	c.s.WZ = uint16(int(port) + dir)
	m[HL] = uint16(int(m[HL]) + dir)
	k := uint16(v) + uint16(m.Byte(L))
	c.blockIOFlags(v, k)
	c.tick(16)
	if repeat && m.Byte(B) != 0 {
		c.repeatBlock()
	}
}
