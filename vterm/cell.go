// Copyright © 2025 Termtest contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vterm/cell.go
// Summary: Cell, color, and attribute types for the terminal emulator.
// Usage: Consumed by the grid and by callers inspecting screen contents.

package vterm

// Attribute is a bit set of text rendition flags.
type Attribute uint16

const (
	AttrBold Attribute = 1 << iota
	AttrUnderline
	AttrReverse
)

// ColorMode defines the type of color stored in a Color.
type ColorMode int

const (
	ColorModeDefault  ColorMode = iota // Default terminal color
	ColorModeStandard                  // The basic 16 ANSI colors
	ColorMode256                       // 256-color palette
	ColorModeRGB                       // 24-bit "true" color
)

// Color represents a color in one of several addressing modes.
type Color struct {
	Mode    ColorMode
	Value   uint8 // Palette index for Standard (0-15) and 256-mode (0-255)
	R, G, B uint8 // Components for RGB mode
}

// Cell is a single character cell on the screen.
type Cell struct {
	Rune rune
	FG   Color
	BG   Color
	Attr Attribute
	Wide bool // True for the first column of a 2-column character
}

var (
	DefaultFG = Color{Mode: ColorModeDefault}
	DefaultBG = Color{Mode: ColorModeDefault}
)

// blank is what erased cells are filled with.
func blank(fg, bg Color) Cell {
	return Cell{Rune: ' ', FG: fg, BG: bg}
}
