// field.go - Table driven access to every externally visible State field

package z80

import "fmt"

// Field identifies one externally visible value of a State.
type Field uint8

const (
	FieldAF Field = iota
	FieldBC
	FieldDE
	FieldHL
	FieldAF2
	FieldBC2
	FieldDE2
	FieldHL2
	FieldIX
	FieldIY
	FieldSP
	FieldPC
	FieldI
	FieldR
	FieldIFF1
	FieldIFF2
	FieldIM
	FieldHalted
	FieldTStates

	fieldCount
)

// FieldInfo describes how a field is stored and written as text.
type FieldInfo struct {
	Name  string
	Bits  int // 8, 16 or 32
	Radix int // 16 or 10
}

// Max returns the largest value the field can hold.
func (fi FieldInfo) Max() uint32 {
	if fi.Bits >= 32 {
		return 0xFFFFFFFF
	}
	return 1<<fi.Bits - 1
}

var fieldTable = [fieldCount]FieldInfo{
	FieldAF:      {"AF", 16, 16},
	FieldBC:      {"BC", 16, 16},
	FieldDE:      {"DE", 16, 16},
	FieldHL:      {"HL", 16, 16},
	FieldAF2:     {"AF'", 16, 16},
	FieldBC2:     {"BC'", 16, 16},
	FieldDE2:     {"DE'", 16, 16},
	FieldHL2:     {"HL'", 16, 16},
	FieldIX:      {"IX", 16, 16},
	FieldIY:      {"IY", 16, 16},
	FieldSP:      {"SP", 16, 16},
	FieldPC:      {"PC", 16, 16},
	FieldI:       {"I", 8, 16},
	FieldR:       {"R", 8, 16},
	FieldIFF1:    {"IFF1", 8, 10},
	FieldIFF2:    {"IFF2", 8, 10},
	FieldIM:      {"IM", 8, 10},
	FieldHalted:  {"HALTED", 8, 10},
	FieldTStates: {"TSTATES", 32, 10},
}

// GeneralFields is the order of the twelve register words in the text format.
var GeneralFields = []Field{
	FieldAF, FieldBC, FieldDE, FieldHL,
	FieldAF2, FieldBC2, FieldDE2, FieldHL2,
	FieldIX, FieldIY, FieldSP, FieldPC,
}

// ExtraFields is the order of the interrupt and state fields in the text
// format. The cycle count follows them on the same line.
var ExtraFields = []Field{FieldI, FieldR, FieldIFF1, FieldIFF2, FieldIM, FieldHalted}

func (f Field) Info() FieldInfo {
	if f < fieldCount {
		return fieldTable[f]
	}
	return FieldInfo{Name: fmt.Sprintf("Field(%d)", uint8(f))}
}

func (f Field) String() string {
	return f.Info().Name
}

// Get returns the value of f widened to 32 bits.
func (s *State) Get(f Field) uint32 {
	switch f {
	case FieldAF, FieldBC, FieldDE, FieldHL:
		return uint32(s.Main[Pair(f-FieldAF)])
	case FieldAF2, FieldBC2, FieldDE2, FieldHL2:
		return uint32(s.Shadow[Pair(f-FieldAF2)])
	case FieldIX:
		return uint32(s.Main[IX])
	case FieldIY:
		return uint32(s.Main[IY])
	case FieldSP:
		return uint32(s.Main[SP])
	case FieldPC:
		return uint32(s.PC)
	case FieldI:
		return uint32(s.I)
	case FieldR:
		return uint32(s.R)
	case FieldIFF1:
		return uint32(s.IFF1)
	case FieldIFF2:
		return uint32(s.IFF2)
	case FieldIM:
		return uint32(s.IM)
	case FieldHalted:
		return uint32(s.Halted)
	case FieldTStates:
		return s.TStates
	}
	panic(fmt.Sprintf("z80: unknown field %d", uint8(f)))
}

// Set stores v into f, truncated to the field's width.
func (s *State) Set(f Field, v uint32) {
	switch f {
	case FieldAF, FieldBC, FieldDE, FieldHL:
		s.Main[Pair(f-FieldAF)] = uint16(v)
	case FieldAF2, FieldBC2, FieldDE2, FieldHL2:
		s.Shadow[Pair(f-FieldAF2)] = uint16(v)
	case FieldIX:
		s.Main[IX] = uint16(v)
	case FieldIY:
		s.Main[IY] = uint16(v)
	case FieldSP:
		s.Main[SP] = uint16(v)
	case FieldPC:
		s.PC = uint16(v)
	case FieldI:
		s.I = uint8(v)
	case FieldR:
		s.R = uint8(v)
	case FieldIFF1:
		s.IFF1 = uint8(v)
	case FieldIFF2:
		s.IFF2 = uint8(v)
	case FieldIM:
		s.IM = uint8(v)
	case FieldHalted:
		s.Halted = uint8(v)
	case FieldTStates:
		s.TStates = v
	default:
		panic(fmt.Sprintf("z80: unknown field %d", uint8(f)))
	}
}
