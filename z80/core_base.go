// core_base.go - Unprefixed opcode table, also used under DD/FD prefixes

package z80

func (c *Core) initBaseOps() {
	c.baseOps[0x00] = func(c *Core) { c.tick(4) }
	c.baseOps[0x76] = (*Core).opHALT

	for op := 0x40; op <= 0x7F; op++ {
		if op == 0x76 {
			continue
		}
		dst, src := uint8(op>>3)&7, uint8(op)&7
		c.baseOps[op] = func(c *Core) { c.opLDRegReg(dst, src) }
	}

	for code := uint8(0); code < 8; code++ {
		r := code
		c.baseOps[0x06|r<<3] = func(c *Core) { c.opLDRegImm(r) }
		c.baseOps[0x04|r<<3] = func(c *Core) { c.opIncDec(r, false) }
		c.baseOps[0x05|r<<3] = func(c *Core) { c.opIncDec(r, true) }
		for op := aluAdd; op <= aluCp; op++ {
			alu := op
			c.baseOps[0x80|uint8(alu)<<3|r] = func(c *Core) { c.opALUReg(alu, r) }
		}
		c.baseOps[0xC6|r<<3] = func(c *Core) {
			c.alu(aluOp(r), c.fetchByte())
			c.tick(7)
		}
		c.baseOps[0xC0|r<<3] = func(c *Core) { c.opRETCond(r) }
		c.baseOps[0xC2|r<<3] = func(c *Core) { c.opJPCond(r) }
		c.baseOps[0xC4|r<<3] = func(c *Core) { c.opCALLCond(r) }
		c.baseOps[0xC7|r<<3] = func(c *Core) { c.opRST(uint16(r) << 3) }
	}

	for code := uint8(0); code < 4; code++ {
		p := code
		c.baseOps[0x01|p<<4] = func(c *Core) {
			c.s.Main[c.rp(p)] = c.fetchWord()
			c.tick(10)
		}
		c.baseOps[0x03|p<<4] = func(c *Core) {
			c.s.Main[c.rp(p)]++
			c.tick(6)
		}
		c.baseOps[0x0B|p<<4] = func(c *Core) {
			c.s.Main[c.rp(p)]--
			c.tick(6)
		}
		c.baseOps[0x09|p<<4] = func(c *Core) {
			c.add16(c.index(), c.s.Main[c.rp(p)])
			c.tick(11)
		}
		c.baseOps[0xC5|p<<4] = func(c *Core) {
			c.push(c.s.Main[c.rp2(p)])
			c.tick(11)
		}
		c.baseOps[0xC1|p<<4] = func(c *Core) {
			c.s.Main[c.rp2(p)] = c.pop()
			c.tick(10)
		}
	}

	for group := uint8(0); group < 4; group++ {
		g := group
		c.baseOps[0x07|g<<3] = func(c *Core) {
			c.rotateA(g)
			c.tick(4)
		}
	}

	c.baseOps[0x02] = func(c *Core) { c.opStoreAIndirect(BC) }
	c.baseOps[0x12] = func(c *Core) { c.opStoreAIndirect(DE) }
	c.baseOps[0x0A] = func(c *Core) { c.opLoadAIndirect(BC) }
	c.baseOps[0x1A] = func(c *Core) { c.opLoadAIndirect(DE) }
	c.baseOps[0x22] = (*Core).opLDNNIndex
	c.baseOps[0x2A] = (*Core).opLDIndexNN
	c.baseOps[0x32] = (*Core).opLDNNA
	c.baseOps[0x3A] = (*Core).opLDANN

	c.baseOps[0x08] = func(c *Core) {
		c.s.ExchangeAF()
		c.tick(4)
	}
	c.baseOps[0xD9] = func(c *Core) {
		c.s.Exchange()
		c.tick(4)
	}
	c.baseOps[0xEB] = func(c *Core) {
		m := &c.s.Main
		m[DE], m[HL] = m[HL], m[DE]
		c.tick(4)
	}
	c.baseOps[0xE3] = (*Core).opEXSPIndex

	c.baseOps[0x10] = (*Core).opDJNZ
	c.baseOps[0x18] = func(c *Core) { c.opJR(true) }
	c.baseOps[0x20] = func(c *Core) { c.opJR(!c.flag(flagZ)) }
	c.baseOps[0x28] = func(c *Core) { c.opJR(c.flag(flagZ)) }
	c.baseOps[0x30] = func(c *Core) { c.opJR(!c.flag(flagC)) }
	c.baseOps[0x38] = func(c *Core) { c.opJR(c.flag(flagC)) }

	c.baseOps[0x27] = func(c *Core) {
		c.daa()
		c.tick(4)
	}
	c.baseOps[0x2F] = func(c *Core) {
		c.cpl()
		c.tick(4)
	}
	c.baseOps[0x37] = func(c *Core) {
		c.scf()
		c.tick(4)
	}
	c.baseOps[0x3F] = func(c *Core) {
		c.ccf()
		c.tick(4)
	}

	c.baseOps[0xC3] = func(c *Core) {
		c.s.PC = c.fetchWord()
		c.s.WZ = c.s.PC
		c.tick(10)
	}
	c.baseOps[0xC9] = func(c *Core) {
		c.s.PC = c.pop()
		c.s.WZ = c.s.PC
		c.tick(10)
	}
	c.baseOps[0xCD] = func(c *Core) { c.opCALLCond(0xFF) }
	c.baseOps[0xE9] = func(c *Core) {
		c.s.PC = c.s.Main[c.index()]
		c.tick(4)
	}
	c.baseOps[0xF9] = func(c *Core) {
		c.s.Main[SP] = c.s.Main[c.index()]
		c.tick(6)
	}

	c.baseOps[0xD3] = (*Core).opOUTNA
	c.baseOps[0xDB] = (*Core).opINAN

	c.baseOps[0xF3] = func(c *Core) {
		c.s.IFF1 = 0
		c.s.IFF2 = 0
		c.tick(4)
	}
	c.baseOps[0xFB] = func(c *Core) {
		c.s.IFF1 = 1
		c.s.IFF2 = 1
		c.s.DeferInt = true
		c.tick(4)
	}

	c.baseOps[0xCB] = (*Core).opCBPrefix
	c.baseOps[0xED] = (*Core).opEDPrefix
	c.baseOps[0xDD] = func(c *Core) { c.opIndexPrefix(prefixDD) }
	c.baseOps[0xFD] = func(c *Core) { c.opIndexPrefix(prefixFD) }
}

func (c *Core) opHALT() {
	c.s.Halted = HaltedSentinel
	c.tick(4)
}

func (c *Core) opLDRegReg(dst, src uint8) {
	switch {
	case src == 6:
		c.setPlain8(dst, c.read(c.memOperand(false)))
		c.tick(7)
	case dst == 6:
		addr := c.memOperand(false)
		c.write(addr, c.getPlain8(src))
		c.tick(7)
	default:
		c.setReg8(dst, c.getReg8(src))
		c.tick(4)
	}
}

func (c *Core) opLDRegImm(dst uint8) {
	if dst == 6 {
		addr := c.memOperand(true)
		c.write(addr, c.fetchByte())
		c.tick(10)
		return
	}
	c.setReg8(dst, c.fetchByte())
	c.tick(7)
}

func (c *Core) opIncDec(r uint8, dec bool) {
	step := c.inc8
	if dec {
		step = c.dec8
	}
	if r == 6 {
		addr := c.memOperand(false)
		c.write(addr, step(c.read(addr)))
		c.tick(11)
		return
	}
	c.setReg8(r, step(c.getReg8(r)))
	c.tick(4)
}

func (c *Core) opALUReg(op aluOp, src uint8) {
	if src == 6 {
		c.alu(op, c.read(c.memOperand(false)))
		c.tick(7)
		return
	}
	c.alu(op, c.getReg8(src))
	c.tick(4)
}

func (c *Core) opStoreAIndirect(p Pair) {
	addr := c.s.Main[p]
	c.write(addr, c.a())
	c.s.WZ = uint16(c.a())<<8 | (addr+1)&0xFF
	c.tick(7)
}

func (c *Core) opLoadAIndirect(p Pair) {
	addr := c.s.Main[p]
	c.setA(c.read(addr))
	c.s.WZ = addr + 1
	c.tick(7)
}

func (c *Core) opLDNNIndex() {
	addr := c.fetchWord()
	c.write16(addr, c.s.Main[c.index()])
	c.s.WZ = addr + 1
	c.tick(16)
}

func (c *Core) opLDIndexNN() {
	addr := c.fetchWord()
	c.s.Main[c.index()] = c.read16(addr)
	c.s.WZ = addr + 1
	c.tick(16)
}

func (c *Core) opLDNNA() {
	addr := c.fetchWord()
	c.write(addr, c.a())
	c.s.WZ = uint16(c.a())<<8 | (addr+1)&0xFF
	c.tick(13)
}

func (c *Core) opLDANN() {
	addr := c.fetchWord()
	c.setA(c.read(addr))
	c.s.WZ = addr + 1
	c.tick(13)
}

func (c *Core) opEXSPIndex() {
	sp := c.s.Main[SP]
	p := c.index()
	v := c.read16(sp)
	c.write16(sp, c.s.Main[p])
	c.s.Main[p] = v
	c.s.WZ = v
	c.tick(19)
}

func (c *Core) opDJNZ() {
	d := int8(c.fetchByte())
	b := c.s.Main.Byte(B) - 1
	c.s.Main.SetByte(B, b)
	if b != 0 {
		c.s.PC = uint16(int32(c.s.PC) + int32(d))
		c.s.WZ = c.s.PC
		c.tick(13)
		return
	}
	c.tick(8)
}

func (c *Core) opJR(taken bool) {
	d := int8(c.fetchByte())
	if taken {
		c.s.PC = uint16(int32(c.s.PC) + int32(d))
		c.s.WZ = c.s.PC
		c.tick(12)
		return
	}
	c.tick(7)
}

func (c *Core) opJPCond(cc uint8) {
	addr := c.fetchWord()
	c.s.WZ = addr
	if c.cond(cc) {
		c.s.PC = addr
	}
	c.tick(10)
}

// opCALLCond is CALL cc,nn; cc 0xFF is the unconditional CALL.
func (c *Core) opCALLCond(cc uint8) {
	addr := c.fetchWord()
	c.s.WZ = addr
	if cc == 0xFF || c.cond(cc) {
		c.push(c.s.PC)
		c.s.PC = addr
		c.tick(17)
		return
	}
	c.tick(10)
}

func (c *Core) opRETCond(cc uint8) {
	if c.cond(cc) {
		c.s.PC = c.pop()
		c.s.WZ = c.s.PC
		c.tick(11)
		return
	}
	c.tick(5)
}

func (c *Core) opRST(vector uint16) {
	c.push(c.s.PC)
	c.s.PC = vector
	c.s.WZ = vector
	c.tick(11)
}

func (c *Core) opOUTNA() {
	n := c.fetchByte()
	a := c.a()
	c.out(uint16(a)<<8|uint16(n), a)
	c.s.WZ = uint16(a)<<8 | uint16(n+1)
	c.tick(11)
}

func (c *Core) opINAN() {
	port := uint16(c.a())<<8 | uint16(c.fetchByte())
	c.setA(c.in(port))
	c.s.WZ = port + 1
	c.tick(11)
}

// opIndexPrefix handles DD and FD. The prefix costs one M1 cycle and then
// selects IX or IY for the following opcode; a second prefix simply
// replaces the first.
func (c *Core) opIndexPrefix(prefix byte) {
	c.tick(4)
	c.prefix = prefix
	opcode := c.fetchOpcode()
	c.baseOps[opcode](c)
	c.prefix = prefixNone
}
