// compare.go - Case-by-case comparison of harness output with a reference

package fuse

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Mismatch is one line where the output and the reference disagree. An
// empty Got or Want means the line is missing on that side.
type Mismatch struct {
	Index int    // 0-based position of the case
	Case  string // description of the reference case, or of the output case past its end
	Line  int    // 1-based line within the case block
	Got   string
	Want  string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s:%d: got %q, want %q", m.Case, m.Line, m.Got, m.Want)
}

// readBlocks splits r into blank-line separated blocks of trimmed lines.
func readBlocks(r io.Reader) ([][]string, error) {
	var blocks [][]string
	var cur []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxToken)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			if cur != nil {
				blocks = append(blocks, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, line)
	}
	if cur != nil {
		blocks = append(blocks, cur)
	}
	return blocks, sc.Err()
}

// Compare reads two outputs in the result format and lists every line that
// differs. Cases are matched by position.
func Compare(got, want io.Reader) ([]Mismatch, error) {
	gotBlocks, err := readBlocks(got)
	if err != nil {
		return nil, fmt.Errorf("read output: %w", err)
	}
	wantBlocks, err := readBlocks(want)
	if err != nil {
		return nil, fmt.Errorf("read reference: %w", err)
	}

	var out []Mismatch
	for i := 0; i < max(len(gotBlocks), len(wantBlocks)); i++ {
		var g, w []string
		if i < len(gotBlocks) {
			g = gotBlocks[i]
		}
		if i < len(wantBlocks) {
			w = wantBlocks[i]
		}
		name := ""
		switch {
		case len(w) > 0:
			name = w[0]
		case len(g) > 0:
			name = g[0]
		}
		for j := 0; j < max(len(g), len(w)); j++ {
			var gl, wl string
			if j < len(g) {
				gl = g[j]
			}
			if j < len(w) {
				wl = w[j]
			}
			if gl != wl {
				out = append(out, Mismatch{Index: i, Case: name, Line: j + 1, Got: gl, Want: wl})
			}
		}
	}
	return out, nil
}

// FailedCases counts the distinct cases in ms.
func FailedCases(ms []Mismatch) int {
	seen := make(map[int]struct{})
	for _, m := range ms {
		seen[m.Index] = struct{}{}
	}
	return len(seen)
}
