// Copyright © 2025 Termtest contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vterm/parser.go
// Summary: Escape-sequence state machine feeding a VTerm.
// Usage: Create with NewParser(vterm) and call Parse for each rune.
// Notes: DCS payloads (sixel and friends) are swallowed here so they never
//        reach the cell grid; position/size extraction happens elsewhere.

package vterm

import (
	"strconv"
)

type State int

const (
	StateGround State = iota
	StateEscape
	StateCSI
	StateOSC
	StateCharset
	StateDCS
	StateDCSEscape
)

// Parser is a rune-driven VT escape-sequence parser. Its state persists
// between calls, so input may be fed in arbitrary chunks.
type Parser struct {
	state        State
	vterm        *VTerm
	params       []int
	currentParam int
	private      bool
	oscBuffer    []rune
	intermediate rune
}

func NewParser(v *VTerm) *Parser {
	return &Parser{
		state:     StateGround,
		vterm:     v,
		params:    make([]int, 0, 16),
		oscBuffer: make([]rune, 0, 128),
	}
}

// Parse processes one rune of terminal output.
func (p *Parser) Parse(r rune) {
	switch p.state {
	case StateGround:
		switch r {
		case '\x1b':
			p.state = StateEscape
		case '\n':
			p.vterm.LineFeed()
		case '\r':
			p.vterm.CarriageReturn()
		case '\b':
			p.vterm.Backspace()
		case '\t':
			p.vterm.Tab()
		default:
			if r >= ' ' {
				p.vterm.placeChar(r)
			}
		}
	case StateEscape:
		switch r {
		case '[':
			p.state = StateCSI
			p.params = p.params[:0]
			p.currentParam = 0
			p.private = false
			p.intermediate = 0
		case ']':
			p.state = StateOSC
			p.oscBuffer = p.oscBuffer[:0]
		case 'P':
			p.state = StateDCS
		case 'c':
			p.vterm.Reset()
			p.state = StateGround
		case '(', ')':
			p.state = StateCharset
		case 'D':
			p.vterm.Index()
			p.state = StateGround
		case 'E':
			p.vterm.NextLine()
			p.state = StateGround
		case 'M':
			p.vterm.ReverseIndex()
			p.state = StateGround
		case '7':
			p.vterm.SaveCursor()
			p.state = StateGround
		case '8':
			p.vterm.RestoreCursor()
			p.state = StateGround
		case '=', '>':
			p.state = StateGround
		default:
			p.state = StateGround
		}
	case StateCSI:
		switch {
		case r >= '0' && r <= '9':
			p.currentParam = p.currentParam*10 + int(r-'0')
		case r == ';':
			p.params = append(p.params, p.currentParam)
			p.currentParam = 0
		case r >= '<' && r <= '?':
			p.private = true
		case r >= ' ' && r <= '/':
			p.intermediate = r
		case r >= '@' && r <= '~':
			p.params = append(p.params, p.currentParam)
			p.vterm.ProcessCSI(r, p.params, p.intermediate, p.private)
			p.state = StateGround
		}
	case StateOSC:
		if r == '\x07' || r == '\x1b' { // terminated by BEL or ST
			p.handleOSC(p.oscBuffer)
			p.state = StateGround
			if r == '\x1b' {
				p.Parse(r) // re-parse the ESC (start of ST)
			}
		} else {
			p.oscBuffer = append(p.oscBuffer, r)
		}
	case StateDCS:
		// Payload bytes are dropped; the grid has no use for them.
		if r == '\x1b' {
			p.state = StateDCSEscape
		}
	case StateDCSEscape:
		if r == '\\' {
			p.state = StateGround
		} else {
			p.state = StateDCS
		}
	case StateCharset:
		p.state = StateGround
	}
}

func (p *Parser) handleOSC(sequence []rune) {
	parts := splitRunesN(sequence, ';', 2)
	if len(parts) < 2 {
		return
	}
	command, err := strconv.Atoi(string(parts[0]))
	if err != nil {
		return
	}
	switch command {
	case 0, 2: // icon name + title / title
		p.vterm.SetTitle(string(parts[1]))
	}
}

func splitRunesN(r []rune, sep rune, n int) [][]rune {
	if n <= 1 {
		return [][]rune{r}
	}
	res := make([][]rune, 0, n)
	start := 0
	count := 1
	for i, ru := range r {
		if ru == sep && count < n {
			res = append(res, r[start:i])
			start = i + 1
			count++
		}
	}
	res = append(res, r[start:])
	return res
}
