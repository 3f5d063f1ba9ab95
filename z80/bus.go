// bus.go - Memory and I/O address spaces seen by an executor

package z80

import (
	"errors"
	"fmt"
)

// Bus is the embedder's side of the machine: a 64K memory space and a 64K
// I/O space. Executors call it synchronously from inside Execute; an
// implementation must not call back into the Driver that owns it.
type Bus interface {
	ReadMem(addr uint16) uint8
	WriteMem(addr uint16, value uint8)
	ReadIO(port uint16) uint8
	WriteIO(port uint16, value uint8)
}

// Ticker is implemented by buses that want to follow elapsed time. The
// executor calls Tick after each group of cycles it accounts for.
type Ticker interface {
	Tick(cycles int)
}

var (
	ErrCallbackMissing = errors.New("z80: bus callback missing")
)

// ReadFunc is the read shape of the callback contract: the space's tag, the
// address and the opaque context are passed through unchanged.
type ReadFunc func(tag int, addr uint16, ctx any) uint8

// WriteFunc is the write shape of the callback contract.
type WriteFunc func(tag int, addr uint16, value uint8, ctx any)

// Callbacks adapts four loose functions to Bus. Memory and I/O each have
// their own read and write function and their own tag. Context is handed to
// every call.
type Callbacks struct {
	MemRead  ReadFunc
	MemWrite WriteFunc
	MemTag   int

	IORead  ReadFunc
	IOWrite WriteFunc
	IOTag   int

	Context any
}

// Validate reports which callbacks are unset. Stepping an executor over a
// Callbacks with a missing function panics on the first access to it.
func (cb *Callbacks) Validate() error {
	var missing []string
	if cb.MemRead == nil {
		missing = append(missing, "MemRead")
	}
	if cb.MemWrite == nil {
		missing = append(missing, "MemWrite")
	}
	if cb.IORead == nil {
		missing = append(missing, "IORead")
	}
	if cb.IOWrite == nil {
		missing = append(missing, "IOWrite")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", ErrCallbackMissing, missing)
	}
	return nil
}

func (cb *Callbacks) ReadMem(addr uint16) uint8 {
	if cb.MemRead == nil {
		panic(fmt.Errorf("%w: MemRead at %04x", ErrCallbackMissing, addr))
	}
	return cb.MemRead(cb.MemTag, addr, cb.Context)
}

func (cb *Callbacks) WriteMem(addr uint16, value uint8) {
	if cb.MemWrite == nil {
		panic(fmt.Errorf("%w: MemWrite at %04x", ErrCallbackMissing, addr))
	}
	cb.MemWrite(cb.MemTag, addr, value, cb.Context)
}

func (cb *Callbacks) ReadIO(port uint16) uint8 {
	if cb.IORead == nil {
		panic(fmt.Errorf("%w: IORead at %04x", ErrCallbackMissing, port))
	}
	return cb.IORead(cb.IOTag, port, cb.Context)
}

func (cb *Callbacks) WriteIO(port uint16, value uint8) {
	if cb.IOWrite == nil {
		panic(fmt.Errorf("%w: IOWrite at %04x", ErrCallbackMissing, port))
	}
	cb.IOWrite(cb.IOTag, port, value, cb.Context)
}
