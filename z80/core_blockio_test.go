package z80

import "testing"

func TestCoreINIRRepeatsUntilBZero(t *testing.T) {
	rig := newCoreTestRig()
	rig.load(0x0000, 0xED, 0xB2) // INIR
	rig.state.Main.SetWord(BC, 0x0210)
	rig.state.Main.SetWord(HL, 0x3000)
	rig.bus.io[0x0210] = 0xAB
	rig.bus.io[0x0110] = 0x01

	rig.driver.Step()

	requireEqualU16(t, "PC", rig.state.PC, 0x0000)
	requireEqualU8(t, "B", rig.state.Main.Byte(B), 0x01)
	requireEqualU16(t, "WZ", rig.state.WZ, 0x0001)
	requireEqualU8(t, "F", rig.state.Main.Byte(F), flagN|flagPV)
	requireTStates(t, rig.state, 21)

	rig.driver.Step()

	requireEqualU16(t, "PC", rig.state.PC, 0x0002)
	requireEqualU8(t, "B", rig.state.Main.Byte(B), 0x00)
	requireEqualU16(t, "HL", rig.state.Main.Word(HL), 0x3002)
	requireEqualU16(t, "WZ", rig.state.WZ, 0x0111)
	requireEqualU8(t, "(3000)", rig.bus.mem[0x3000], 0xAB)
	requireEqualU8(t, "(3001)", rig.bus.mem[0x3001], 0x01)
	requireEqualU8(t, "F", rig.state.Main.Byte(F), flagZ)
	requireTStates(t, rig.state, 21+16)

	want := []ioAccess{{port: 0x0210, value: 0xAB}, {port: 0x0110, value: 0x01}}
	if len(rig.bus.log) != len(want) || rig.bus.log[0] != want[0] || rig.bus.log[1] != want[1] {
		t.Fatalf("io log = %+v, want %+v", rig.bus.log, want)
	}
}

func TestCoreOUTIUsesDecrementedB(t *testing.T) {
	rig := newCoreTestRig()
	rig.load(0x0000, 0xED, 0xA3) // OUTI
	rig.state.Main.SetWord(BC, 0x01FE)
	rig.state.Main.SetWord(HL, 0x4000)
	rig.bus.mem[0x4000] = 0x80

	rig.driver.Step()

	want := ioAccess{write: true, port: 0x00FE, value: 0x80}
	if len(rig.bus.log) != 1 || rig.bus.log[0] != want {
		t.Fatalf("io log = %+v, want %+v", rig.bus.log, want)
	}
	requireEqualU8(t, "B", rig.state.Main.Byte(B), 0x00)
	requireEqualU16(t, "HL", rig.state.Main.Word(HL), 0x4001)
	requireEqualU16(t, "WZ", rig.state.WZ, 0x00FF)
	requireEqualU8(t, "F", rig.state.Main.Byte(F), flagZ|flagN)
	requireTStates(t, rig.state, 16)
}

func TestCoreOTDRSetsHalfAndCarryOnOverflow(t *testing.T) {
	rig := newCoreTestRig()
	rig.load(0x0000, 0xED, 0xBB) // OTDR
	rig.state.Main.SetWord(BC, 0x0298)
	rig.state.Main.SetWord(HL, 0x40FF)
	rig.bus.mem[0x40FF] = 0xF0
	rig.bus.mem[0x40FE] = 0x20

	rig.driver.Step()

	requireEqualU8(t, "F", rig.state.Main.Byte(F), flagH|flagN|flagC)
	requireEqualU16(t, "PC", rig.state.PC, 0x0000)

	rig.driver.Step()

	requireEqualU16(t, "PC", rig.state.PC, 0x0002)
	requireEqualU16(t, "HL", rig.state.Main.Word(HL), 0x40FD)
	requireEqualU16(t, "WZ", rig.state.WZ, 0x0097)
	requireEqualU8(t, "F", rig.state.Main.Byte(F), flagZ|flagH|flagPV|flagC)
	requireTStates(t, rig.state, 21+16)

	want := []ioAccess{
		{write: true, port: 0x0198, value: 0xF0},
		{write: true, port: 0x0098, value: 0x20},
	}
	if len(rig.bus.log) != len(want) || rig.bus.log[0] != want[0] || rig.bus.log[1] != want[1] {
		t.Fatalf("io log = %+v, want %+v", rig.bus.log, want)
	}
}

func TestCoreINDStepsDown(t *testing.T) {
	rig := newCoreTestRig()
	rig.load(0x0000, 0xED, 0xAA) // IND
	rig.state.Main.SetWord(BC, 0x0500)
	rig.state.Main.SetWord(HL, 0x2000)
	rig.state.Main.SetByte(F, flagC)
	rig.bus.io[0x0500] = 0x01

	rig.driver.Step()

	requireEqualU8(t, "(2000)", rig.bus.mem[0x2000], 0x01)
	requireEqualU8(t, "B", rig.state.Main.Byte(B), 0x04)
	requireEqualU16(t, "HL", rig.state.Main.Word(HL), 0x1FFF)
	requireEqualU16(t, "WZ", rig.state.WZ, 0x04FF)
	// k = 0x01 + (C-1)&0xFF = 0x100 carries out; parity of (0^4) is odd.
	requireEqualU8(t, "F", rig.state.Main.Byte(F), flagH|flagC)
	requireTStates(t, rig.state, 16)
}
