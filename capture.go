// Copyright © 2025 Termtest contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: capture.go
// Summary: Point-in-time snapshots of Sixel sequences with area validation.
// Usage: Build with NewSixelCapture(state); compare captures to detect
//        graphics changes between two points in a test.

package termtest

import "bytes"

// SixelSequence is a captured Sixel graphics block: the raw payload, the
// cursor position when it was emitted, and its pixel bounding box.
type SixelSequence struct {
	Raw      []byte
	Position Position
	Bounds   Rect
}

// NewSixelSequence builds a sequence from its parts. Bounds is fixed at
// construction and does not change.
func NewSixelSequence(raw []byte, pos Position, bounds Rect) SixelSequence {
	return SixelSequence{Raw: raw, Position: pos, Bounds: bounds}
}

// IsWithin reports whether the sequence's bounding box lies fully inside area.
func (s SixelSequence) IsWithin(area Rect) bool {
	return area.Contains(s.Bounds)
}

// Overlaps reports whether the sequence's bounding box shares any point
// with area.
func (s SixelSequence) Overlaps(area Rect) bool {
	return area.Overlaps(s.Bounds)
}

// equal compares position, bounds, and raw payload.
func (s SixelSequence) equal(other SixelSequence) bool {
	return s.Position == other.Position &&
		s.Bounds == other.Bounds &&
		bytes.Equal(s.Raw, other.Raw)
}

// SixelCapture is an immutable ordered snapshot of the Sixel sequences
// present in a ScreenState at one instant. Later mutation of the screen
// state does not affect an already-taken capture.
type SixelCapture struct {
	sequences []SixelSequence
}

// NewSixelCapture snapshots every region currently tracked by state.
// A nil state yields an empty capture.
func NewSixelCapture(state *ScreenState) *SixelCapture {
	c := &SixelCapture{}
	if state == nil {
		return c
	}
	for _, region := range state.SixelRegions() {
		raw := make([]byte, len(region.Data))
		copy(raw, region.Data)
		c.sequences = append(c.sequences, NewSixelSequence(
			raw,
			Position{Row: region.StartRow, Col: region.StartCol},
			region.Bounds(),
		))
	}
	return c
}

// Sequences returns all captured sequences in detection order.
func (c *SixelCapture) Sequences() []SixelSequence {
	return c.sequences
}

// IsEmpty reports whether no Sixel sequences were captured.
func (c *SixelCapture) IsEmpty() bool {
	return len(c.sequences) == 0
}

// SequencesInArea returns the sequences fully contained in area.
func (c *SixelCapture) SequencesInArea(area Rect) []SixelSequence {
	var in []SixelSequence
	for _, seq := range c.sequences {
		if seq.IsWithin(area) {
			in = append(in, seq)
		}
	}
	return in
}

// SequencesOutsideArea returns the sequences not fully contained in area.
func (c *SixelCapture) SequencesOutsideArea(area Rect) []SixelSequence {
	var out []SixelSequence
	for _, seq := range c.sequences {
		if !seq.IsWithin(area) {
			out = append(out, seq)
		}
	}
	return out
}

// AssertAllWithin returns a *SixelValidationError listing the position of
// every sequence not contained in area, or nil when all fit (an empty
// capture always passes).
func (c *SixelCapture) AssertAllWithin(area Rect) error {
	outside := c.SequencesOutsideArea(area)
	if len(outside) == 0 {
		return nil
	}
	positions := make([]Position, len(outside))
	for i, seq := range outside {
		positions[i] = seq.Position
	}
	return &SixelValidationError{Area: area, Positions: positions}
}

// DiffersFrom reports whether the two captures' ordered sequence lists are
// not element-wise equal. Useful for detecting Sixel clearing on screen
// transitions.
func (c *SixelCapture) DiffersFrom(other *SixelCapture) bool {
	if len(c.sequences) != len(other.sequences) {
		return true
	}
	for i := range c.sequences {
		if !c.sequences[i].equal(other.sequences[i]) {
			return true
		}
	}
	return false
}
