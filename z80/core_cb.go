// core_cb.go - CB prefixed bit operations, plain and indexed

package z80

func (c *Core) initCBOps() {
	for op := 0; op < 256; op++ {
		x, y, z := uint8(op>>6), uint8(op>>3)&7, uint8(op)&7
		switch x {
		case 0:
			c.cbOps[op] = func(c *Core) { c.opCBRotShift(y, z) }
		case 1:
			c.cbOps[op] = func(c *Core) { c.opCBBIT(y, z) }
		case 2:
			c.cbOps[op] = func(c *Core) { c.opCBSetRes(y, z, false) }
		default:
			c.cbOps[op] = func(c *Core) { c.opCBSetRes(y, z, true) }
		}
	}
}

func (c *Core) opCBPrefix() {
	if c.prefix != prefixNone {
		c.opIndexedCB()
		return
	}
	opcode := c.fetchOpcode()
	c.cbOps[opcode](c)
}

func (c *Core) opCBRotShift(group, r uint8) {
	if r == 6 {
		addr := c.s.Main[HL]
		c.write(addr, c.rotShift(group, c.read(addr)))
		c.tick(15)
		return
	}
	c.setPlain8(r, c.rotShift(group, c.getPlain8(r)))
	c.tick(8)
}

func (c *Core) opCBBIT(n, r uint8) {
	if r == 6 {
		c.bit(n, c.read(c.s.Main[HL]), uint8(c.s.WZ>>8))
		c.tick(12)
		return
	}
	v := c.getPlain8(r)
	c.bit(n, v, v)
	c.tick(8)
}

func (c *Core) opCBSetRes(n, r uint8, set bool) {
	apply := func(v uint8) uint8 {
		if set {
			return v | 1<<n
		}
		return v &^ (1 << n)
	}
	if r == 6 {
		addr := c.s.Main[HL]
		c.write(addr, apply(c.read(addr)))
		c.tick(15)
		return
	}
	c.setPlain8(r, apply(c.getPlain8(r)))
	c.tick(8)
}

// opIndexedCB is DD CB d op / FD CB d op. Neither the displacement nor the
// final opcode is an M1 fetch, so R advances only for the two prefixes.
// Except for BIT, the result is also copied into the register named by the
// low three bits when they are not 6.
func (c *Core) opIndexedCB() {
	d := int8(c.fetchByte())
	op := c.fetchByte()
	addr := uint16(int32(c.s.Main[c.index()]) + int32(d))
	c.s.WZ = addr
	x, y, z := op>>6, (op>>3)&7, op&7

	v := c.read(addr)
	var res uint8
	switch x {
	case 0:
		res = c.rotShift(y, v)
	case 1:
		c.bit(y, v, uint8(addr>>8))
		c.tick(16)
		return
	case 2:
		res = v &^ (1 << y)
	default:
		res = v | 1<<y
	}
	c.write(addr, res)
	if z != 6 {
		c.setPlain8(z, res)
	}
	c.tick(19)
}
