// parser.go - Line-oriented reader for conformance test vectors

package fuse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/intuitionamiga/z80conform/z80"
)

// ParseState is the section of a test case the parser expects next.
type ParseState uint8

const (
	StateDescription ParseState = iota
	StateGeneralRegs
	StateExtraRegs
	StateMemory
)

func (s ParseState) String() string {
	switch s {
	case StateDescription:
		return "description"
	case StateGeneralRegs:
		return "general registers"
	case StateExtraRegs:
		return "extra registers"
	case StateMemory:
		return "memory"
	}
	return fmt.Sprintf("ParseState(%d)", uint8(s))
}

const (
	caseEnd  = "-1"
	maxToken = 1 << 20
)

// Parser reads test cases one at a time. Blank lines are skipped and every
// line is trimmed before it is looked at.
type Parser struct {
	sc    *bufio.Scanner
	line  int
	state ParseState
}

func NewParser(r io.Reader) *Parser {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxToken)
	return &Parser{sc: sc}
}

// Line is the number of the last line read.
func (p *Parser) Line() int {
	return p.line
}

// State is the section the parser is in.
func (p *Parser) State() ParseState {
	return p.state
}

// Next returns the next complete case, io.EOF after the last one, or a
// *ParseError. A parse error is final: the parser does not resynchronise.
func (p *Parser) Next() (*TestCase, error) {
	tc := &TestCase{}
	p.state = StateDescription
	for {
		line, ok := p.nextLine()
		if !ok {
			if err := p.sc.Err(); err != nil {
				return nil, fmt.Errorf("line %d: %w", p.line+1, err)
			}
			if p.state == StateDescription {
				return nil, io.EOF
			}
			return nil, &ParseError{Line: p.line, Field: p.state.String(), Err: ErrTruncated}
		}

		if line == caseEnd {
			if p.state != StateMemory {
				return nil, &ParseError{Line: p.line, Field: p.state.String(), Token: line, Err: ErrSyntax}
			}
			p.state = StateDescription
			return tc, nil
		}

		var err error
		switch p.state {
		case StateDescription:
			tc.Description = line
			tc.Line = p.line
			p.state = StateGeneralRegs
		case StateGeneralRegs:
			err = p.parseGeneral(tc, line)
			p.state = StateExtraRegs
		case StateExtraRegs:
			err = p.parseExtra(tc, line)
			p.state = StateMemory
		case StateMemory:
			err = p.parseMemory(tc, line)
		}
		if err != nil {
			return nil, err
		}
	}
}

func (p *Parser) nextLine() (string, bool) {
	for p.sc.Scan() {
		p.line++
		line := strings.TrimSpace(p.sc.Text())
		if line != "" {
			return line, true
		}
	}
	return "", false
}

func (p *Parser) errorf(field, token string, err error) *ParseError {
	return &ParseError{Line: p.line, Field: field, Token: token, Err: err}
}

// parseField converts tok with the radix and width the field table gives f.
func (p *Parser) parseField(f z80.Field, name, tok string) (uint32, error) {
	info := f.Info()
	v, err := strconv.ParseUint(tok, info.Radix, info.Bits)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, p.errorf(name, tok, ErrRange)
		}
		return 0, p.errorf(name, tok, ErrSyntax)
	}
	return uint32(v), nil
}

func (p *Parser) expectTokens(line string, names []string) ([]string, error) {
	toks := strings.Fields(line)
	if len(toks) < len(names) {
		return nil, p.errorf(names[len(toks)], "", ErrMissingField)
	}
	if len(toks) > len(names) {
		return nil, p.errorf(p.state.String(), toks[len(names)], ErrSyntax)
	}
	return toks, nil
}

func (p *Parser) parseGeneral(tc *TestCase, line string) error {
	names := make([]string, len(z80.GeneralFields))
	for i, f := range z80.GeneralFields {
		names[i] = f.String()
	}
	toks, err := p.expectTokens(line, names)
	if err != nil {
		return err
	}
	for i, f := range z80.GeneralFields {
		v, err := p.parseField(f, names[i], toks[i])
		if err != nil {
			return err
		}
		tc.Initial.Set(f, v)
	}
	return nil
}

func (p *Parser) parseExtra(tc *TestCase, line string) error {
	names := make([]string, 0, len(z80.ExtraFields)+1)
	for _, f := range z80.ExtraFields {
		names = append(names, f.String())
	}
	names = append(names, "END_TSTATES")
	toks, err := p.expectTokens(line, names)
	if err != nil {
		return err
	}
	for i, f := range z80.ExtraFields {
		v, err := p.parseField(f, names[i], toks[i])
		if err != nil {
			return err
		}
		tc.Initial.Set(f, v)
	}
	end, err := p.parseField(z80.FieldTStates, "END_TSTATES", toks[len(z80.ExtraFields)])
	if err != nil {
		return err
	}
	tc.EndTStates = end
	return nil
}

// parseMemory reads "addr byte... -1". The -1 is required and must be the
// last token; a run may not wrap past the top of memory.
func (p *Parser) parseMemory(tc *TestCase, line string) error {
	toks := strings.Fields(line)
	addr, err := strconv.ParseUint(toks[0], 16, 16)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return p.errorf("address", toks[0], ErrRange)
		}
		return p.errorf("address", toks[0], ErrSyntax)
	}

	next := uint32(addr)
	for i, tok := range toks[1:] {
		if tok == caseEnd {
			if i != len(toks)-2 {
				return p.errorf("memory", toks[i+2], ErrSyntax)
			}
			return nil
		}
		v, err := strconv.ParseUint(tok, 16, 8)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return p.errorf("byte", tok, ErrRange)
			}
			return p.errorf("byte", tok, ErrSyntax)
		}
		if next > 0xFFFF {
			return p.errorf("byte", tok, ErrRange)
		}
		tc.Patches = append(tc.Patches, Patch{Addr: uint16(next), Value: uint8(v)})
		next++
	}
	return p.errorf("terminator", "", ErrMissingField)
}
