// script.go - I/O ports implemented by a Lua script

package periph

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/intuitionamiga/z80conform/fuse"
	"github.com/intuitionamiga/z80conform/z80"
)

var ErrScript = errors.New("port script")

// ScriptPorts forwards I/O accesses to two global Lua functions:
//
//	function port_in(port) return value end
//	function port_out(port, value) end
//
// Either may be left undefined: reads then fall back to the high byte of
// the port and writes are dropped. The script can call cycles() to learn
// how many T-states the executor has reported so far.
//
// The bus contract has no error return, so the first script failure is
// kept and returned by Err; later calls keep running.
type ScriptPorts struct {
	L *lua.LState

	in     lua.LValue
	out    lua.LValue
	cycles uint64
	err    error
}

var (
	_ fuse.Ports = (*ScriptPorts)(nil)
	_ z80.Ticker = (*ScriptPorts)(nil)
)

// NewScriptPorts runs src once and binds its port functions.
func NewScriptPorts(src string) (*ScriptPorts, error) {
	return newScriptPorts(func(L *lua.LState) error { return L.DoString(src) })
}

// LoadScriptPorts is NewScriptPorts for a script file.
func LoadScriptPorts(path string) (*ScriptPorts, error) {
	return newScriptPorts(func(L *lua.LState) error { return L.DoFile(path) })
}

func newScriptPorts(load func(*lua.LState) error) (*ScriptPorts, error) {
	sp := &ScriptPorts{L: lua.NewState()}
	sp.L.SetGlobal("cycles", sp.L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(sp.cycles))
		return 1
	}))
	if err := load(sp.L); err != nil {
		sp.L.Close()
		return nil, fmt.Errorf("%w: %v", ErrScript, err)
	}
	sp.in = sp.function("port_in")
	sp.out = sp.function("port_out")
	return sp, nil
}

func (sp *ScriptPorts) function(name string) lua.LValue {
	fn := sp.L.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		return nil
	}
	return fn
}

func (sp *ScriptPorts) fail(err error) {
	if sp.err == nil {
		sp.err = fmt.Errorf("%w: %v", ErrScript, err)
	}
}

func (sp *ScriptPorts) In(port uint16) uint8 {
	if sp.in == nil {
		return uint8(port >> 8)
	}
	if err := sp.L.CallByParam(lua.P{Fn: sp.in, NRet: 1, Protect: true}, lua.LNumber(port)); err != nil {
		sp.fail(err)
		return 0xFF
	}
	ret := sp.L.Get(-1)
	sp.L.Pop(1)
	n, ok := ret.(lua.LNumber)
	if !ok {
		sp.fail(fmt.Errorf("port_in(%04x) returned %s", port, ret.Type()))
		return 0xFF
	}
	return uint8(int64(n))
}

func (sp *ScriptPorts) Out(port uint16, value uint8) {
	if sp.out == nil {
		return
	}
	if err := sp.L.CallByParam(lua.P{Fn: sp.out, NRet: 0, Protect: true}, lua.LNumber(port), lua.LNumber(value)); err != nil {
		sp.fail(err)
	}
}

func (sp *ScriptPorts) Tick(cycles int) {
	sp.cycles += uint64(cycles)
}

// Err returns the first error raised by the script, if any.
func (sp *ScriptPorts) Err() error {
	return sp.err
}

func (sp *ScriptPorts) Close() {
	sp.L.Close()
}
