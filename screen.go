// Copyright © 2025 Termtest contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screen.go
// Summary: Terminal screen state - cell grid queries plus Sixel tracking.
// Usage: Fed raw PTY output via Feed; queried by tests and the waiter.
// Notes: The cell grid lives behind the Emulator interface so the default
//        vterm backend can be swapped without touching Sixel extraction.

package termtest

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/framegrace/termtest/vterm"
)

// Emulator is the narrow view of a cell-grid terminal emulator that
// ScreenState needs: it consumes output runes and answers cell and
// cursor queries.
type Emulator interface {
	// Parse processes one rune of terminal output.
	Parse(r rune)
	// CharAt returns the character at a 0-based cell, or false when the
	// position is outside the grid.
	CharAt(row, col int) (rune, bool)
	// Cursor returns the 0-based cursor position as (row, col).
	Cursor() (row, col int)
}

// vtermEmulator adapts the vterm package to the Emulator interface.
type vtermEmulator struct {
	term   *vterm.VTerm
	parser *vterm.Parser
}

func newVtermEmulator(width, height int) *vtermEmulator {
	term := vterm.NewVTerm(width, height)
	return &vtermEmulator{term: term, parser: vterm.NewParser(term)}
}

func (e *vtermEmulator) Parse(r rune) { e.parser.Parse(r) }

func (e *vtermEmulator) CharAt(row, col int) (rune, bool) {
	cell, ok := e.term.Cell(row, col)
	if !ok {
		return 0, false
	}
	if cell.Rune == 0 {
		return ' ', true
	}
	return cell.Rune, true
}

func (e *vtermEmulator) Cursor() (row, col int) { return e.term.Cursor() }

// ScreenState is the reconstructed state of the terminal: a cell grid
// maintained by the emulator and the list of Sixel regions detected in the
// same byte stream. The region list only grows; callers that want cleared
// semantics construct a fresh ScreenState.
type ScreenState struct {
	width, height int
	emu           Emulator
	extractor     sixelExtractor
	regions       []SixelRegion
	pending       []byte // partial UTF-8 rune carried between feeds
}

// NewScreenState creates a screen state with the given cell dimensions,
// backed by the vterm emulator.
func NewScreenState(width, height int) *ScreenState {
	return NewScreenStateWithEmulator(newVtermEmulator(width, height), width, height)
}

// NewScreenStateWithEmulator creates a screen state over a caller-supplied
// emulator. Useful for testing the Sixel extraction path in isolation.
func NewScreenStateWithEmulator(emu Emulator, width, height int) *ScreenState {
	return &ScreenState{width: width, height: height, emu: emu}
}

// Feed processes raw terminal output: the emulator updates cell contents
// and cursor position, and the Sixel extractor scans the identical bytes.
// Each region is tagged with the cursor position at the moment its
// introducer was seen. Feed never fails; malformed sequences fall through
// to the emulator's own recovery behavior.
func (s *ScreenState) Feed(data []byte) {
	buf := data
	if len(s.pending) > 0 {
		buf = append(s.pending, data...)
		s.pending = nil
	}
	for len(buf) > 0 {
		r, size := utf8.DecodeRune(buf)
		if r == utf8.RuneError && size == 1 && !utf8.FullRune(buf) {
			// Incomplete rune at the end of the chunk; keep it for
			// the next feed.
			s.pending = append([]byte(nil), buf...)
			return
		}
		// The extractor sees each byte before the emulator consumes the
		// rune, so the position sampled at the introducer's ESC reflects
		// all output that preceded it.
		for _, b := range buf[:size] {
			row, col := s.emu.Cursor()
			if region, done := s.extractor.advance(b, row, col); done {
				s.regions = append(s.regions, region)
			}
		}
		s.emu.Parse(r)
		buf = buf[size:]
	}
}

// Size returns the screen dimensions as (width, height).
func (s *ScreenState) Size() (width, height int) {
	return s.width, s.height
}

// Contents returns the visible character grid as a single string, one line
// per row, with trailing blanks trimmed from each row.
func (s *ScreenState) Contents() string {
	rows := make([]string, s.height)
	for row := 0; row < s.height; row++ {
		rows[row] = strings.TrimRight(s.RowContents(row), " ")
	}
	return strings.Join(rows, "\n")
}

// RowContents returns a single row's full-width character content, or an
// empty string for an out-of-range row.
func (s *ScreenState) RowContents(row int) string {
	if row < 0 || row >= s.height {
		return ""
	}
	var b strings.Builder
	b.Grow(s.width)
	for col := 0; col < s.width; col++ {
		r, ok := s.emu.CharAt(row, col)
		if !ok {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CharAt returns the character at a cell, or false when out of range.
func (s *ScreenState) CharAt(row, col int) (rune, bool) {
	if row < 0 || row >= s.height || col < 0 || col >= s.width {
		return 0, false
	}
	return s.emu.CharAt(row, col)
}

// CursorPosition returns the 0-based cursor position as (row, col).
func (s *ScreenState) CursorPosition() (row, col int) {
	return s.emu.Cursor()
}

// Contains reports whether the visible screen contains text anywhere.
func (s *ScreenState) Contains(text string) bool {
	return strings.Contains(s.Contents(), text)
}

// TextAt reports whether the screen shows text starting at (row, col).
func (s *ScreenState) TextAt(row, col int, text string) bool {
	if row < 0 || row >= s.height || col < 0 || col >= s.width {
		return false
	}
	rowRunes := []rune(s.RowContents(row))
	if col >= len(rowRunes) {
		return false
	}
	return strings.HasPrefix(string(rowRunes[col:]), text)
}

// DebugContents returns the screen formatted with line numbers, for test
// failure output.
func (s *ScreenState) DebugContents() string {
	rows := make([]string, s.height)
	for row := 0; row < s.height; row++ {
		rows[row] = fmt.Sprintf("%3d | %s", row, s.RowContents(row))
	}
	return strings.Join(rows, "\n")
}

// SixelRegions returns the accumulated Sixel regions in detection order,
// oldest first.
func (s *ScreenState) SixelRegions() []SixelRegion {
	return s.regions
}

// HasSixelAt reports whether some region's start position is exactly
// (row, col).
func (s *ScreenState) HasSixelAt(row, col int) bool {
	for _, region := range s.regions {
		if region.StartRow == row && region.StartCol == col {
			return true
		}
	}
	return false
}
