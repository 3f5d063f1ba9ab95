// main.go - Runs a raw Z80 binary for a number of interrupt-driven frames

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/intuitionamiga/z80conform/fuse"
	"github.com/intuitionamiga/z80conform/periph"
	"github.com/intuitionamiga/z80conform/z80"
)

const (
	sampleRate   = 44100
	beeperVolume = 0.25
)

func parseHex16(name, s string) (uint16, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("-%s: %q is not a 16-bit hex value", name, s)
	}
	return uint16(v), nil
}

func main() {
	org := flag.String("org", "8000", "Load address (hex)")
	pc := flag.String("pc", "", "Entry point (hex, default: load address)")
	sp := flag.String("sp", "0000", "Initial stack pointer (hex)")
	frames := flag.Int("frames", 50, "Number of frames to run")
	frameTStates := flag.Uint("frame-tstates", 69888, "T-states per frame")
	mode := flag.Uint("mode", 1, "Initial interrupt mode (0, 1 or 2)")
	vector := flag.String("im", "ff", "Byte placed on the data bus by the frame interrupt (hex)")
	ei := flag.Bool("ei", false, "Start with interrupts enabled")
	ports := flag.String("ports", "", "Lua script answering port_in/port_out")
	beeper := flag.Bool("beeper", false, "Play the speaker driven by even port writes")
	wavOut := flag.String("wav", "", "Write the speaker output to a WAV file")
	view := flag.Bool("view", false, "Show memory and registers in a window")
	fill := flag.String("fill", "zero", "Memory background as hex bytes, or \"zero\"")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: z80run [options] program.bin\n\nLoads a raw binary and runs it with one maskable interrupt per frame.\n\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  z80run -org 8000 -frames 100 demo.bin\n")
		fmt.Fprintf(os.Stderr, "  z80run -beeper -ei -sp ff00 beep.bin\n")
		fmt.Fprintf(os.Stderr, "  z80run -wav beep.wav -frames 250 beep.bin\n")
		fmt.Fprintf(os.Stderr, "  z80run -view -ports keyboard.lua game.bin\n")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	path := flag.Arg(0)

	if err := run(config{
		path:         path,
		org:          *org,
		pc:           *pc,
		sp:           *sp,
		frames:       *frames,
		frameTStates: uint32(*frameTStates),
		mode:         uint8(*mode),
		vector:       *vector,
		ei:           *ei,
		ports:        *ports,
		beeper:       *beeper,
		wav:          *wavOut,
		view:         *view,
		fill:         *fill,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type config struct {
	path         string
	org, pc, sp  string
	frames       int
	frameTStates uint32
	mode         uint8
	vector       string
	ei           bool
	ports        string
	beeper       bool
	wav          string
	view         bool
	fill         string
}

func run(cfg config) error {
	if cfg.frameTStates == 0 {
		return fmt.Errorf("-frame-tstates must be positive")
	}
	if cfg.mode > 2 {
		return fmt.Errorf("-mode must be 0, 1 or 2")
	}
	org, err := parseHex16("org", cfg.org)
	if err != nil {
		return err
	}
	entry := org
	if cfg.pc != "" {
		if entry, err = parseHex16("pc", cfg.pc); err != nil {
			return err
		}
	}
	stack, err := parseHex16("sp", cfg.sp)
	if err != nil {
		return err
	}
	vec, err := parseHex16("im", cfg.vector)
	if err != nil || vec > 0xFF {
		return fmt.Errorf("-im: %q is not a byte", cfg.vector)
	}
	background, err := fuse.ParseBackground(cfg.fill)
	if err != nil {
		return fmt.Errorf("-fill: %w", err)
	}

	program, err := os.ReadFile(cfg.path)
	if err != nil {
		return err
	}
	if int(org)+len(program) > len(fuse.MemoryImage{}) {
		return fmt.Errorf("%s: %d bytes do not fit at %04x", cfg.path, len(program), org)
	}

	mem := &fuse.MemoryImage{}
	mem.Fill(background)
	copy(mem[org:], program)
	loaded := *mem

	var portsImpl fuse.Ports = fuse.HighBytePorts{}
	var script *periph.ScriptPorts
	if cfg.ports != "" {
		if script, err = periph.LoadScriptPorts(cfg.ports); err != nil {
			return err
		}
		defer script.Close()
		portsImpl = script
	}
	var bp *periph.Beeper
	if cfg.beeper || cfg.wav != "" {
		bp = periph.NewBeeper(portsImpl)
		portsImpl = bp
	}

	machine := fuse.NewMachine(mem, portsImpl)
	state := z80.NewState()
	state.PC = entry
	state.Main.SetWord(z80.SP, stack)
	state.IM = cfg.mode
	if cfg.ei {
		state.IFF1, state.IFF2 = 1, 1
	}

	r := &runner{
		driver:       z80.NewDriver(z80.NewCore(), state, machine),
		machine:      machine,
		beeper:       bp,
		frameTStates: cfg.frameTStates,
		vector:       uint8(vec),
		frames:       cfg.frames,
	}

	if cfg.view {
		if err := runViewer(r, mem); err != nil {
			return err
		}
	}
	r.runAll()

	if script != nil && script.Err() != nil {
		return script.Err()
	}

	res := &fuse.Result{
		Case:  &fuse.TestCase{Description: cfg.path},
		Final: *state,
		Runs:  fuse.DiffMemory(&loaded, mem),
	}
	if err := fuse.WriteResult(os.Stdout, res, false); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "%d frames, %d T-states, %d interrupts missed\n", r.frame, r.totalTStates(), r.missed)

	if cfg.wav != "" {
		if err := writeWAV(cfg.wav, r.audio, sampleRate); err != nil {
			return err
		}
	}
	if cfg.beeper && len(r.audio) > 0 {
		if err := playSamples(r.audio, sampleRate); err != nil {
			fmt.Fprintf(os.Stderr, "warning: audio: %v\n", err)
		}
	}
	return nil
}
