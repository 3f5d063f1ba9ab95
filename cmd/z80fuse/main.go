// main.go - Runs FUSE-style conformance vectors through the Z80 core

package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/intuitionamiga/z80conform/fuse"
	"github.com/intuitionamiga/z80conform/periph"
)

const (
	colorRed   = "\x1b[31m"
	colorGreen = "\x1b[32m"
	colorReset = "\x1b[0m"
)

func main() {
	outFile := flag.String("o", "", "Write results to file (default: stdout)")
	expected := flag.String("expected", "", "Compare results with this reference file")
	fill := flag.String("fill", "deadbeef", "Memory background as hex bytes, or \"zero\"")
	events := flag.Bool("events", false, "Print PR/PW lines for every port access")
	ports := flag.String("ports", "", "Lua script answering port_in/port_out")
	clip := flag.Bool("clipboard", false, "Copy the first failing case to the clipboard")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: z80fuse [options] [tests.in]\n\nRuns conformance test vectors and prints the final machine state of each case.\n\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  z80fuse fuse_files/tests.in\n")
		fmt.Fprintf(os.Stderr, "  z80fuse -expected fuse_files/tests.expected -o out.txt fuse_files/tests.in\n")
		fmt.Fprintf(os.Stderr, "  z80fuse -events -fill zero tests.in\n")
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}
	inputPath := "tests.in"
	if flag.NArg() == 1 {
		inputPath = flag.Arg(0)
	}

	background, err := fuse.ParseBackground(*fill)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: -fill: %v\n", err)
		os.Exit(1)
	}

	in, err := os.Open(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer in.Close()

	reporter := &fuse.Reporter{Background: background, Events: *events}

	var script *periph.ScriptPorts
	if *ports != "" {
		script, err = periph.LoadScriptPorts(*ports)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		defer script.Close()
		// One Lua state serves every case, so script globals persist
		// between cases.
		reporter.NewPorts = func() fuse.Ports { return script }
	}

	var out io.Writer = os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	// Keep a copy of the output when it has to be compared afterwards.
	var results bytes.Buffer
	if *expected != "" {
		out = io.MultiWriter(out, &results)
	}

	summary, err := reporter.RunAll(fuse.NewParser(in), out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s: %v\n", inputPath, err)
		os.Exit(1)
	}
	if script != nil && script.Err() != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", script.Err())
		os.Exit(1)
	}

	if *expected == "" {
		return
	}

	ref, err := os.Open(*expected)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer ref.Close()

	mismatches, err := fuse.Compare(&results, ref)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	summary.RecordMismatches(mismatches)

	color := term.IsTerminal(int(os.Stderr.Fd()))
	for _, m := range mismatches {
		printMismatch(os.Stderr, m, color)
	}

	status := fmt.Sprintf("%d cases, %d failed", summary.Cases, summary.Failed)
	switch {
	case !color:
	case summary.Failed == 0:
		status = colorGreen + status + colorReset
	default:
		status = colorRed + status + colorReset
	}
	fmt.Fprintln(os.Stderr, status)

	if *clip && summary.Failed > 0 {
		if err := copyToClipboard(firstFailure(mismatches)); err != nil {
			fmt.Fprintf(os.Stderr, "warning: clipboard: %v\n", err)
		}
	}

	if summary.Failed > 0 {
		os.Exit(1)
	}
}

func printMismatch(w io.Writer, m fuse.Mismatch, color bool) {
	if !color {
		fmt.Fprintln(w, m)
		return
	}
	fmt.Fprintf(w, "%s:%d:\n  got  %s%s%s\n  want %s%s%s\n",
		m.Case, m.Line, colorRed, m.Got, colorReset, colorGreen, m.Want, colorReset)
}

// firstFailure renders every mismatch of the first failing case.
func firstFailure(ms []fuse.Mismatch) string {
	var sb strings.Builder
	for _, m := range ms {
		if m.Index != ms[0].Index {
			break
		}
		fmt.Fprintln(&sb, m)
	}
	return sb.String()
}
