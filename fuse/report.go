// report.go - Runs test cases and prints their final state

package fuse

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/intuitionamiga/z80conform/z80"
)

// Result is the outcome of one case.
type Result struct {
	Case   *TestCase
	Final  z80.State
	Runs   []MemoryRun
	Events []Event
}

// Reporter turns test cases into results. The zero value runs the built-in
// core over DefaultBackground with HighBytePorts.
type Reporter struct {
	// Background is the memory fill; nil means DefaultBackground.
	Background []byte

	// NewExecutor builds the executor. It is called once per Reporter.
	NewExecutor func() z80.Executor

	// NewPorts builds the I/O handler for each case; nil means
	// HighBytePorts.
	NewPorts func() Ports

	// Events prints the PR/PW trace after each description.
	Events bool

	exec z80.Executor
}

// Summary describes a run. RunAll fills in Cases; Failed stays zero until
// the output has been checked against a reference with RecordMismatches.
type Summary struct {
	Cases  int
	Failed int
}

// RecordMismatches sets Failed to the number of cases ms touches.
func (s *Summary) RecordMismatches(ms []Mismatch) {
	s.Failed = FailedCases(ms)
}

func (r *Reporter) executor() z80.Executor {
	if r.exec == nil {
		if r.NewExecutor != nil {
			r.exec = r.NewExecutor()
		} else {
			r.exec = z80.NewCore()
		}
	}
	return r.exec
}

func (r *Reporter) background() []byte {
	if r.Background == nil {
		return DefaultBackground
	}
	return r.Background
}

// Run executes tc on a newly built machine. The diff snapshot is taken
// after the patches, so only bytes the program itself changed show up.
func (r *Reporter) Run(tc *TestCase) *Result {
	mem := &MemoryImage{}
	mem.Fill(r.background())
	mem.Apply(tc.Patches)
	snapshot := *mem

	var ports Ports
	if r.NewPorts != nil {
		ports = r.NewPorts()
	}
	machine := NewMachine(mem, ports)

	state := tc.Initial
	d := z80.NewDriver(r.executor(), &state, machine)
	d.RunUntil(tc.EndTStates)

	return &Result{
		Case:   tc,
		Final:  state,
		Runs:   DiffMemory(&snapshot, mem),
		Events: machine.Events,
	}
}

// formatField writes v the way the text format stores f.
func formatField(f z80.Field, v uint32) string {
	info := f.Info()
	if info.Radix == 16 {
		return fmt.Sprintf("%0*x", info.Bits/4, v)
	}
	return fmt.Sprintf("%d", v)
}

// WriteResult prints one result block: description, optional events, the
// two register lines, the memory runs and a blank line.
func WriteResult(w io.Writer, res *Result, events bool) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, res.Case.Description)
	if events {
		if err := WriteEvents(bw, res.Events); err != nil {
			return err
		}
	}

	for i, f := range z80.GeneralFields {
		if i > 0 {
			bw.WriteByte(' ')
		}
		bw.WriteString(formatField(f, res.Final.Get(f)))
	}
	bw.WriteByte('\n')
	for _, f := range z80.ExtraFields {
		bw.WriteString(formatField(f, res.Final.Get(f)))
		bw.WriteByte(' ')
	}
	fmt.Fprintf(bw, "%d\n", res.Final.TStates)

	for _, run := range res.Runs {
		fmt.Fprintf(bw, "%04x ", run.Addr)
		for _, b := range run.Bytes {
			fmt.Fprintf(bw, "%02x ", b)
		}
		bw.WriteString("-1\n")
	}
	bw.WriteByte('\n')
	return bw.Flush()
}

// RunAll runs every case p yields and writes each result to w. It stops at
// the first parse or write error; cases already written stay written.
func (r *Reporter) RunAll(p *Parser, w io.Writer) (Summary, error) {
	var sum Summary
	for {
		tc, err := p.Next()
		if errors.Is(err, io.EOF) {
			return sum, nil
		}
		if err != nil {
			return sum, err
		}
		if err := WriteResult(w, r.Run(tc), r.Events); err != nil {
			return sum, fmt.Errorf("write %q: %w", tc.Description, err)
		}
		sum.Cases++
	}
}
