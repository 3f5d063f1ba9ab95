package z80

import "testing"

func TestCoreLoadPairImmediate(t *testing.T) {
	rig := newCoreTestRig()
	rig.load(0x0000, 0x01, 0x34, 0x12) // LD BC,1234H

	cycles := rig.driver.Step()

	requireEqualU16(t, "BC", rig.state.Main.Word(BC), 0x1234)
	requireEqualU8(t, "B", rig.state.Main.Byte(B), 0x12)
	requireEqualU8(t, "C", rig.state.Main.Byte(C), 0x34)
	requireEqualU16(t, "PC", rig.state.PC, 0x0003)
	requireEqualU8(t, "R", rig.state.R, 0x01)
	if cycles != 10 {
		t.Fatalf("cycles = %d, want 10", cycles)
	}
	if rig.bus.ticks != 10 {
		t.Fatalf("bus ticks = %d, want 10", rig.bus.ticks)
	}
}

func TestCoreAddSetsHalfCarry(t *testing.T) {
	rig := newCoreTestRig()
	rig.load(0x0000, 0xC6, 0x01) // ADD A,1
	rig.state.Main.SetByte(A, 0x0F)

	rig.driver.Step()

	requireEqualU8(t, "A", rig.state.Main.Byte(A), 0x10)
	requireEqualU8(t, "F", rig.state.Main.Byte(F), 0x10)
	requireTStates(t, rig.state, 7)
}

func TestCoreSubBorrowFlags(t *testing.T) {
	rig := newCoreTestRig()
	rig.load(0x0000, 0xD6, 0x01) // SUB 1

	rig.driver.Step()

	requireEqualU8(t, "A", rig.state.Main.Byte(A), 0xFF)
	requireEqualU8(t, "F", rig.state.Main.Byte(F), 0xBB)
}

func TestCoreDAAAfterAdd(t *testing.T) {
	rig := newCoreTestRig()
	rig.load(0x0000,
		0x3E, 0x15, // LD A,15H
		0xC6, 0x27, // ADD A,27H
		0x27, // DAA
	)

	rig.driver.Step()
	rig.driver.Step()
	rig.driver.Step()

	requireEqualU8(t, "A", rig.state.Main.Byte(A), 0x42)
	requireEqualU8(t, "F", rig.state.Main.Byte(F), 0x14)
	requireTStates(t, rig.state, 7+7+4)
}

func TestCoreBit7(t *testing.T) {
	rig := newCoreTestRig()
	rig.load(0x0000, 0xCB, 0x7F) // BIT 7,A
	rig.state.Main.SetByte(A, 0x80)

	rig.driver.Step()

	f := rig.state.Main.Byte(F)
	if f&flagZ != 0 {
		t.Fatalf("Z set for a set bit, F=0x%02X", f)
	}
	if f&flagS == 0 || f&flagH == 0 {
		t.Fatalf("S and H should be set, F=0x%02X", f)
	}
	requireEqualU8(t, "R", rig.state.R, 0x02)
	requireTStates(t, rig.state, 8)
}

func TestCoreRKeepsBit7(t *testing.T) {
	rig := newCoreTestRig()
	rig.load(0x0000, 0x00, 0x00)
	rig.state.R = 0xFF

	rig.driver.Step()
	requireEqualU8(t, "R", rig.state.R, 0x80)

	rig.state.R = 0x7F
	rig.driver.Step()
	requireEqualU8(t, "R", rig.state.R, 0x00)
}

func TestCoreIndexLoadImmediate(t *testing.T) {
	rig := newCoreTestRig()
	rig.load(0x0000, 0xDD, 0x21, 0x34, 0x12) // LD IX,1234H

	rig.driver.Step()

	requireEqualU16(t, "IX", rig.state.Main.Word(IX), 0x1234)
	requireEqualU16(t, "HL", rig.state.Main.Word(HL), 0x0000)
	requireEqualU8(t, "R", rig.state.R, 0x02)
	requireTStates(t, rig.state, 14)
}

func TestCoreIndexedStoreImmediate(t *testing.T) {
	rig := newCoreTestRig()
	rig.load(0x0000, 0xFD, 0x36, 0xFE, 0x42) // LD (IY-2),42H
	rig.state.Main.SetWord(IY, 0x2000)

	rig.driver.Step()

	requireEqualU8(t, "(1FFE)", rig.bus.mem[0x1FFE], 0x42)
	requireEqualU16(t, "PC", rig.state.PC, 0x0004)
	requireTStates(t, rig.state, 19)
}

func TestCoreIndexHalfRegisters(t *testing.T) {
	rig := newCoreTestRig()
	rig.load(0x0000, 0xDD, 0x65) // LD IXH,IXL
	rig.state.Main.SetWord(IX, 0x12AB)
	rig.state.Main.SetWord(HL, 0x5566)

	rig.driver.Step()

	requireEqualU16(t, "IX", rig.state.Main.Word(IX), 0xABAB)
	requireEqualU16(t, "HL", rig.state.Main.Word(HL), 0x5566)
	requireTStates(t, rig.state, 8)
}

func TestCoreIndexedLoadKeepsPlainH(t *testing.T) {
	rig := newCoreTestRig()
	rig.load(0x0000, 0xDD, 0x66, 0x01) // LD H,(IX+1)
	rig.state.Main.SetWord(IX, 0x3000)
	rig.bus.mem[0x3001] = 0x99

	rig.driver.Step()

	requireEqualU8(t, "H", rig.state.Main.Byte(H), 0x99)
	requireEqualU16(t, "IX", rig.state.Main.Word(IX), 0x3000)
	requireTStates(t, rig.state, 19)
}

func TestCoreIndexedCBRotate(t *testing.T) {
	rig := newCoreTestRig()
	rig.load(0x0000, 0xDD, 0xCB, 0x01, 0x06) // RLC (IX+1)
	rig.state.Main.SetWord(IX, 0x1000)
	rig.bus.mem[0x1001] = 0x80

	rig.driver.Step()

	requireEqualU8(t, "(1001)", rig.bus.mem[0x1001], 0x01)
	if rig.state.Main.Byte(F)&flagC == 0 {
		t.Fatalf("carry should be set")
	}
	requireEqualU8(t, "R", rig.state.R, 0x02)
	requireTStates(t, rig.state, 23)
}

func TestCoreLDIR(t *testing.T) {
	rig := newCoreTestRig()
	rig.load(0x0000, 0xED, 0xB0)
	rig.state.Main.SetWord(HL, 0x1000)
	rig.state.Main.SetWord(DE, 0x2000)
	rig.state.Main.SetWord(BC, 0x0003)
	copy(rig.bus.mem[0x1000:], []uint8{0xAA, 0xBB, 0xCC})

	rig.driver.Step()
	requireEqualU16(t, "PC", rig.state.PC, 0x0000)
	rig.driver.Step()
	rig.driver.Step()

	requireEqualU16(t, "PC", rig.state.PC, 0x0002)
	requireEqualU16(t, "BC", rig.state.Main.Word(BC), 0x0000)
	requireEqualU16(t, "HL", rig.state.Main.Word(HL), 0x1003)
	requireEqualU16(t, "DE", rig.state.Main.Word(DE), 0x2003)
	for i, want := range []uint8{0xAA, 0xBB, 0xCC} {
		requireEqualU8(t, "dest", rig.bus.mem[0x2000+i], want)
	}
	requireTStates(t, rig.state, 21+21+16)
}

func TestCoreInputImmediatePort(t *testing.T) {
	rig := newCoreTestRig()
	rig.load(0x0000, 0xDB, 0x34) // IN A,(34H)
	rig.state.Main.SetByte(A, 0x12)
	rig.bus.io[0x1234] = 0x99

	rig.driver.Step()

	requireEqualU8(t, "A", rig.state.Main.Byte(A), 0x99)
	if len(rig.bus.log) != 1 || rig.bus.log[0].port != 0x1234 || rig.bus.log[0].write {
		t.Fatalf("io log = %+v", rig.bus.log)
	}
}

func TestCoreOutputRegisterC(t *testing.T) {
	rig := newCoreTestRig()
	rig.load(0x0000, 0xED, 0x79) // OUT (C),A
	rig.state.Main.SetWord(BC, 0x7FFE)
	rig.state.Main.SetByte(A, 0x10)

	rig.driver.Step()

	want := ioAccess{write: true, port: 0x7FFE, value: 0x10}
	if len(rig.bus.log) != 1 || rig.bus.log[0] != want {
		t.Fatalf("io log = %+v, want %+v", rig.bus.log, want)
	}
	requireTStates(t, rig.state, 12)
}

func TestCoreExchangeShadowSets(t *testing.T) {
	rig := newCoreTestRig()
	rig.load(0x0000, 0x08, 0xD9) // EX AF,AF' ; EXX
	rig.state.Main.SetWord(AF, 0x1111)
	rig.state.Main.SetWord(BC, 0x2222)
	rig.state.Shadow.SetWord(AF, 0x3333)
	rig.state.Shadow.SetWord(BC, 0x4444)

	rig.driver.Step()
	rig.driver.Step()

	requireEqualU16(t, "AF", rig.state.Main.Word(AF), 0x3333)
	requireEqualU16(t, "AF'", rig.state.Shadow.Word(AF), 0x1111)
	requireEqualU16(t, "BC", rig.state.Main.Word(BC), 0x4444)
	requireEqualU16(t, "BC'", rig.state.Shadow.Word(BC), 0x2222)
}

func TestCoreCallAndReturn(t *testing.T) {
	rig := newCoreTestRig()
	rig.load(0x0100, 0xCD, 0x00, 0x02) // CALL 0200H
	rig.bus.mem[0x0200] = 0xC9         // RET
	rig.state.Main.SetWord(SP, 0x8000)

	rig.driver.Step()
	requireEqualU16(t, "PC", rig.state.PC, 0x0200)
	requireEqualU16(t, "SP", rig.state.Main.Word(SP), 0x7FFE)
	requireEqualU8(t, "(7FFE)", rig.bus.mem[0x7FFE], 0x03)
	requireEqualU8(t, "(7FFF)", rig.bus.mem[0x7FFF], 0x01)

	rig.driver.Step()
	requireEqualU16(t, "PC", rig.state.PC, 0x0103)
	requireEqualU16(t, "SP", rig.state.Main.Word(SP), 0x8000)
	requireTStates(t, rig.state, 17+10)
}

func TestCoreExecuteTStatesOvershoots(t *testing.T) {
	rig := newCoreTestRig()
	rig.load(0x0000, 0x01, 0x00, 0x00, 0x01, 0x00, 0x00) // LD BC,0 twice

	consumed := rig.driver.RunFor(11)

	if consumed != 20 {
		t.Fatalf("consumed = %d, want 20", consumed)
	}
	requireTStates(t, rig.state, 20)
}
