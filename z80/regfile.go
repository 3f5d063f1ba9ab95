// regfile.go - Z80 register file with 16-bit pairs and 8-bit halves

package z80

import "fmt"

// Pair names one 16-bit word of a RegisterFile. The values are the storage
// index of the word.
type Pair uint8

const (
	AF Pair = iota
	BC
	DE
	HL
	IX
	IY
	SP

	pairCount
)

var pairNames = [pairCount]string{"AF", "BC", "DE", "HL", "IX", "IY", "SP"}

func (p Pair) String() string {
	if p < pairCount {
		return pairNames[p]
	}
	return fmt.Sprintf("Pair(%d)", uint8(p))
}

// Half names one byte of a RegisterFile. Even values are the high byte of
// pair Half/2, odd values the low byte.
type Half uint8

const (
	A Half = iota
	F
	B
	C
	D
	E
	H
	L
	IXH
	IXL
	IYH
	IYL
	SPH
	SPL

	halfCount
)

var halfNames = [halfCount]string{"A", "F", "B", "C", "D", "E", "H", "L", "IXH", "IXL", "IYH", "IYL", "SPH", "SPL"}

func (h Half) String() string {
	if h < halfCount {
		return halfNames[h]
	}
	return fmt.Sprintf("Half(%d)", uint8(h))
}

// Pair returns the word this half belongs to.
func (h Half) Pair() Pair {
	return Pair(h >> 1)
}

// High reports whether h is the most significant byte of its pair.
func (h Half) High() bool {
	return h&1 == 0
}

// RegisterFile is seven 16-bit words. The byte view is computed from the
// words on every access: the high half of a pair is word>>8 and the low
// half is word&0xFF, so the two views cannot drift apart.
type RegisterFile [pairCount]uint16

func (r *RegisterFile) Word(p Pair) uint16 {
	return r[p]
}

func (r *RegisterFile) SetWord(p Pair, value uint16) {
	r[p] = value
}

func (r *RegisterFile) Byte(h Half) uint8 {
	w := r[h.Pair()]
	if h.High() {
		return uint8(w >> 8)
	}
	return uint8(w)
}

func (r *RegisterFile) SetByte(h Half, value uint8) {
	p := h.Pair()
	if h.High() {
		r[p] = r[p]&0x00FF | uint16(value)<<8
	} else {
		r[p] = r[p]&0xFF00 | uint16(value)
	}
}

// Clear zeroes every word.
func (r *RegisterFile) Clear() {
	*r = RegisterFile{}
}
