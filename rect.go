// Copyright © 2025 Termtest contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: rect.go
// Summary: Axis-aligned rectangle algebra used for region validation.
// Notes: Half-open interval semantics - rectangles that only touch on an
//        edge do not overlap.

package termtest

import "fmt"

// Position is a 0-based (row, col) screen coordinate.
type Position struct {
	Row, Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Rect is an axis-aligned rectangle: a top-left origin plus an extent.
// Both axes use the same unit - cell coordinates for cursor rectangles,
// pixel coordinates for Sixel bounding boxes. Callers must not mix units.
type Rect struct {
	Row, Col      int
	Width, Height int
}

// NewRect builds a rectangle from the conventional
// (row, col, width, height) argument order.
func NewRect(row, col, width, height int) Rect {
	return Rect{Row: row, Col: col, Width: width, Height: height}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", r.Row, r.Col, r.Width, r.Height)
}

// Position returns the rectangle's top-left corner.
func (r Rect) Position() Position {
	return Position{Row: r.Row, Col: r.Col}
}

// Contains reports whether b lies fully inside r. A rectangle always
// contains itself; a zero-width or zero-height b is contained when its
// origin falls within r's bounds.
func (r Rect) Contains(b Rect) bool {
	return b.Row >= r.Row &&
		b.Col >= r.Col &&
		b.Row+b.Height <= r.Row+r.Height &&
		b.Col+b.Width <= r.Col+r.Width
}

// Overlaps reports whether r and b share at least one point. Touching
// edges do not count as overlap.
func (r Rect) Overlaps(b Rect) bool {
	return !(r.Row+r.Height <= b.Row ||
		r.Col+r.Width <= b.Col ||
		r.Row >= b.Row+b.Height ||
		r.Col >= b.Col+b.Width)
}
