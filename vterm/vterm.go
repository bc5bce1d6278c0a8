// Copyright © 2025 Termtest contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vterm/vterm.go
// Summary: Virtual terminal grid - cursor, character placement, scrolling.
// Usage: Driven by Parser; queried by the screen-state layer.
// Notes: Keeps a plain width x height grid; scrollback is out of scope here.

package vterm

import (
	"github.com/mattn/go-runewidth"
)

// VTerm holds the state of a virtual terminal: a fixed-size cell grid,
// cursor, scrolling region, and current text attributes. Applications that
// switch to the alternate screen get a separate buffer; the main buffer is
// restored when they leave it.
type VTerm struct {
	width, height    int
	cursorX, cursorY int

	mainBuffer  [][]Cell
	altBuffer   [][]Cell
	inAltScreen bool

	savedMainCursorX, savedMainCursorY int
	savedAltCursorX, savedAltCursorY   int

	currentFG, currentBG Color
	currentAttr          Attribute
	defaultFG, defaultBG Color

	tabStops      map[int]bool
	cursorVisible bool
	autoWrapMode  bool
	wrapNext      bool
	originMode    bool

	marginTop, marginBottom int

	title        string
	TitleChanged func(string)

	lastGraphicChar rune // for REP
}

// Option configures a VTerm at construction time.
type Option func(*VTerm)

// WithTitleChangeHandler registers a callback for OSC title updates.
func WithTitleChangeHandler(handler func(string)) Option {
	return func(v *VTerm) { v.TitleChanged = handler }
}

// NewVTerm creates and initializes a new virtual terminal.
func NewVTerm(width, height int, opts ...Option) *VTerm {
	v := &VTerm{
		width:         width,
		height:        height,
		currentFG:     DefaultFG,
		currentBG:     DefaultBG,
		defaultFG:     DefaultFG,
		defaultBG:     DefaultBG,
		tabStops:      make(map[int]bool),
		cursorVisible: true,
		autoWrapMode:  true,
		marginTop:     0,
		marginBottom:  height - 1,
	}
	for _, opt := range opts {
		opt(v)
	}
	for i := 0; i < width; i++ {
		if i%8 == 0 {
			v.tabStops[i] = true
		}
	}
	v.mainBuffer = v.newBuffer()
	v.altBuffer = v.newBuffer()
	return v
}

func (v *VTerm) newBuffer() [][]Cell {
	buf := make([][]Cell, v.height)
	for y := range buf {
		buf[y] = make([]Cell, v.width)
		for x := range buf[y] {
			buf[y][x] = blank(v.defaultFG, v.defaultBG)
		}
	}
	return buf
}

// buffer returns the active cell buffer.
func (v *VTerm) buffer() [][]Cell {
	if v.inAltScreen {
		return v.altBuffer
	}
	return v.mainBuffer
}

// Size returns the terminal dimensions as (width, height).
func (v *VTerm) Size() (int, int) { return v.width, v.height }

// Cell returns the cell at the given position. The second return value is
// false when the position is outside the grid.
func (v *VTerm) Cell(row, col int) (Cell, bool) {
	if row < 0 || row >= v.height || col < 0 || col >= v.width {
		return Cell{}, false
	}
	return v.buffer()[row][col], true
}

// Grid returns a copy of the currently visible cell grid.
func (v *VTerm) Grid() [][]Cell {
	src := v.buffer()
	grid := make([][]Cell, v.height)
	for y := range grid {
		grid[y] = make([]Cell, v.width)
		copy(grid[y], src[y])
	}
	return grid
}

// Cursor returns the cursor position as 0-based (row, col).
func (v *VTerm) Cursor() (row, col int) { return v.cursorY, v.cursorX }

// CursorVisible reports whether the cursor is currently shown.
func (v *VTerm) CursorVisible() bool { return v.cursorVisible }

// Title returns the last title set via OSC 0.
func (v *VTerm) Title() string { return v.title }

// SetTitle records the window title and notifies any handler.
func (v *VTerm) SetTitle(title string) {
	v.title = title
	if v.TitleChanged != nil {
		v.TitleChanged(title)
	}
}

// SetCursorPos moves the cursor to the specified position, clamping to
// valid bounds.
func (v *VTerm) SetCursorPos(y, x int) {
	if x < 0 {
		x = 0
	}
	if x >= v.width {
		x = v.width - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= v.height {
		y = v.height - 1
	}
	if y != v.cursorY || x != v.cursorX {
		v.wrapNext = false
	}
	v.cursorX = x
	v.cursorY = y
}

// SaveCursor saves the cursor position for the active screen.
func (v *VTerm) SaveCursor() {
	if v.inAltScreen {
		v.savedAltCursorX, v.savedAltCursorY = v.cursorX, v.cursorY
	} else {
		v.savedMainCursorX, v.savedMainCursorY = v.cursorX, v.cursorY
	}
}

// RestoreCursor restores the saved cursor position for the active screen.
// Per xterm, DECRC also resets origin mode.
func (v *VTerm) RestoreCursor() {
	v.wrapNext = false
	v.originMode = false
	if v.inAltScreen {
		v.SetCursorPos(v.savedAltCursorY, v.savedAltCursorX)
	} else {
		v.SetCursorPos(v.savedMainCursorY, v.savedMainCursorX)
	}
}

// placeChar writes a printable rune at the cursor and advances it,
// wrapping to the next line when auto-wrap is enabled.
func (v *VTerm) placeChar(r rune) {
	if v.wrapNext && v.autoWrapMode {
		v.wrapNext = false
		v.CarriageReturn()
		v.LineFeed()
	}

	width := runewidth.RuneWidth(r)
	if width == 0 {
		// Combining marks attach to the previous cell.
		if v.cursorX > 0 {
			cell := &v.buffer()[v.cursorY][v.cursorX-1]
			cell.Rune = r // keep last mark; full grapheme handling is not needed
		}
		return
	}

	buf := v.buffer()
	buf[v.cursorY][v.cursorX] = Cell{
		Rune: r,
		FG:   v.currentFG,
		BG:   v.currentBG,
		Attr: v.currentAttr,
		Wide: width == 2,
	}
	v.lastGraphicChar = r

	// Blank the shadow cell of a wide rune.
	if width == 2 && v.cursorX+1 < v.width {
		buf[v.cursorY][v.cursorX+1] = blank(v.currentFG, v.currentBG)
	}

	if v.cursorX+width >= v.width {
		v.cursorX = v.width - 1
		v.wrapNext = true
	} else {
		v.cursorX += width
	}
}

// RepeatCharacter (REP) repeats the last graphic character n times.
func (v *VTerm) RepeatCharacter(n int) {
	if v.lastGraphicChar == 0 {
		return
	}
	for i := 0; i < n; i++ {
		v.placeChar(v.lastGraphicChar)
	}
}

// LineFeed moves the cursor down one line, scrolling at the bottom margin.
func (v *VTerm) LineFeed() {
	v.wrapNext = false
	if v.cursorY == v.marginBottom {
		v.scrollRegion(1, v.marginTop, v.marginBottom)
	} else if v.cursorY < v.height-1 {
		v.cursorY++
	}
}

// CarriageReturn moves the cursor to column 0.
func (v *VTerm) CarriageReturn() {
	v.wrapNext = false
	v.cursorX = 0
}

// Backspace moves the cursor back one column.
func (v *VTerm) Backspace() {
	v.wrapNext = false
	if v.cursorX > 0 {
		v.cursorX--
	}
}

// Tab moves the cursor to the next tab stop.
func (v *VTerm) Tab() {
	v.wrapNext = false
	for x := v.cursorX + 1; x < v.width; x++ {
		if v.tabStops[x] {
			v.SetCursorPos(v.cursorY, x)
			return
		}
	}
	v.SetCursorPos(v.cursorY, v.width-1)
}

// Index (IND) moves the cursor down one line, scrolling at the bottom margin.
func (v *VTerm) Index() { v.LineFeed() }

// ReverseIndex (RI) moves the cursor up one line, scrolling at the top margin.
func (v *VTerm) ReverseIndex() {
	v.wrapNext = false
	if v.cursorY == v.marginTop {
		v.scrollRegion(-1, v.marginTop, v.marginBottom)
	} else if v.cursorY > 0 {
		v.cursorY--
	}
}

// NextLine (NEL) moves the cursor down one line and to column 0.
func (v *VTerm) NextLine() {
	v.Index()
	v.CarriageReturn()
}

// scrollRegion shifts lines between top and bottom (inclusive) by n:
// positive n scrolls content up, negative scrolls down.
func (v *VTerm) scrollRegion(n, top, bottom int) {
	if n == 0 || top > bottom {
		return
	}
	buf := v.buffer()
	if n > 0 {
		for i := 0; i < n; i++ {
			for y := top; y < bottom; y++ {
				copy(buf[y], buf[y+1])
			}
			v.clearRow(buf[bottom])
		}
	} else {
		for i := 0; i < -n; i++ {
			for y := bottom; y > top; y-- {
				copy(buf[y], buf[y-1])
			}
			v.clearRow(buf[top])
		}
	}
}

func (v *VTerm) clearRow(row []Cell) {
	for x := range row {
		row[x] = blank(v.currentFG, v.currentBG)
	}
}

// ClearScreen erases the entire visible screen.
func (v *VTerm) ClearScreen() {
	buf := v.buffer()
	for y := range buf {
		v.clearRow(buf[y])
	}
}

// Reset restores the terminal to its initial state (RIS).
func (v *VTerm) Reset() {
	v.inAltScreen = false
	v.cursorX, v.cursorY = 0, 0
	v.wrapNext = false
	v.originMode = false
	v.autoWrapMode = true
	v.cursorVisible = true
	v.marginTop, v.marginBottom = 0, v.height-1
	v.ResetAttributes()
	v.tabStops = make(map[int]bool)
	for i := 0; i < v.width; i++ {
		if i%8 == 0 {
			v.tabStops[i] = true
		}
	}
	v.mainBuffer = v.newBuffer()
	v.altBuffer = v.newBuffer()
}

// enterAltScreen switches to the alternate buffer, clearing it.
func (v *VTerm) enterAltScreen(saveCursor bool) {
	if v.inAltScreen {
		return
	}
	if saveCursor {
		v.SaveCursor()
	}
	v.inAltScreen = true
	v.altBuffer = v.newBuffer()
	v.SetCursorPos(0, 0)
}

// exitAltScreen switches back to the main buffer.
func (v *VTerm) exitAltScreen(restoreCursor bool) {
	if !v.inAltScreen {
		return
	}
	v.inAltScreen = false
	if restoreCursor {
		v.RestoreCursor()
	}
}
