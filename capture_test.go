// Copyright © 2025 Termtest contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: capture_test.go
// Summary: Tests for Sixel capture snapshots and area validation.

package termtest

import (
	"errors"
	"testing"
)

func TestSixelSequenceWithin(t *testing.T) {
	seq := NewSixelSequence(nil, Position{Row: 5, Col: 5}, NewRect(5, 5, 10, 10))

	if !seq.IsWithin(NewRect(0, 0, 20, 20)) {
		t.Error("sequence should be within the larger area")
	}
	if seq.IsWithin(NewRect(0, 0, 10, 10)) {
		t.Error("sequence should not fit in the smaller area")
	}
}

func TestSixelSequenceOverlaps(t *testing.T) {
	seq := NewSixelSequence(nil, Position{Row: 5, Col: 5}, NewRect(5, 5, 10, 10))

	if !seq.Overlaps(NewRect(0, 0, 10, 10)) {
		t.Error("expected overlap with upper-left area")
	}
	if !seq.Overlaps(NewRect(10, 10, 10, 10)) {
		t.Error("expected overlap with lower-right area")
	}
	if seq.Overlaps(NewRect(0, 0, 5, 5)) {
		t.Error("edge-touching area should not overlap")
	}
}

func TestSixelCaptureEmpty(t *testing.T) {
	c := NewSixelCapture(nil)
	if !c.IsEmpty() {
		t.Error("nil-state capture should be empty")
	}
	if len(c.Sequences()) != 0 {
		t.Errorf("expected no sequences, got %d", len(c.Sequences()))
	}
}

func TestSixelCaptureFiltering(t *testing.T) {
	s := NewScreenState(80, 24)
	s.Feed([]byte("\x1b[6;6H"))
	feedSixel(s, `"1;1;10;10`)
	s.Feed([]byte("\x1b[21;21H"))
	feedSixel(s, `"1;1;10;10`)

	c := NewSixelCapture(s)
	area := NewRect(0, 0, 15, 15)
	if got := len(c.SequencesInArea(area)); got != 1 {
		t.Errorf("expected 1 sequence in area, got %d", got)
	}
	if got := len(c.SequencesOutsideArea(area)); got != 1 {
		t.Errorf("expected 1 sequence outside area, got %d", got)
	}
}

func TestAssertAllWithinEmptyCaptureSucceeds(t *testing.T) {
	c := NewSixelCapture(NewScreenState(80, 24))
	if err := c.AssertAllWithin(NewRect(0, 0, 1, 1)); err != nil {
		t.Errorf("empty capture must pass validation, got %v", err)
	}
}

func TestAssertAllWithinReportsOffendingPositions(t *testing.T) {
	s := NewScreenState(80, 24)
	s.Feed([]byte("\x1b[2;2H"))
	feedSixel(s, `"1;1;5;5`) // inside
	s.Feed([]byte("\x1b[10;41H"))
	feedSixel(s, `"1;1;5;5`) // outside
	s.Feed([]byte("\x1b[12;43H"))
	feedSixel(s, `"1;1;5;5`) // outside

	area := NewRect(0, 0, 25, 25)
	err := NewSixelCapture(s).AssertAllWithin(area)
	if err == nil {
		t.Fatal("expected a validation error")
	}

	var verr *SixelValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *SixelValidationError, got %T", err)
	}
	if verr.Area != area {
		t.Errorf("error should carry the asserted area, got %v", verr.Area)
	}
	want := []Position{{Row: 9, Col: 40}, {Row: 11, Col: 42}}
	if len(verr.Positions) != len(want) {
		t.Fatalf("expected %d offending positions, got %v", len(want), verr.Positions)
	}
	for i, pos := range want {
		if verr.Positions[i] != pos {
			t.Errorf("position %d: expected %v, got %v", i, pos, verr.Positions[i])
		}
	}
}

func TestCaptureDiffersFrom(t *testing.T) {
	s1 := NewScreenState(80, 24)
	feedSixel(s1, `"1;1;100;50`)

	c1 := NewSixelCapture(s1)
	if c1.DiffersFrom(c1) {
		t.Error("capture must not differ from itself")
	}
	if c1.DiffersFrom(NewSixelCapture(s1)) {
		t.Error("captures of the same unchanged state must not differ")
	}

	s2 := NewScreenState(80, 24)
	feedSixel(s2, `"1;1;200;50`)
	if !c1.DiffersFrom(NewSixelCapture(s2)) {
		t.Error("different raster dimensions must differ")
	}

	empty := NewSixelCapture(NewScreenState(80, 24))
	if !c1.DiffersFrom(empty) {
		t.Error("capture with sixel must differ from an empty one")
	}
}

func TestCaptureIsSnapshot(t *testing.T) {
	s := NewScreenState(80, 24)
	feedSixel(s, `"1;1;10;10`)

	c := NewSixelCapture(s)
	feedSixel(s, `"1;1;20;20`) // mutate the source afterwards

	if len(c.Sequences()) != 1 {
		t.Errorf("capture must not track later mutations, got %d sequences",
			len(c.Sequences()))
	}
	if !NewSixelCapture(s).DiffersFrom(c) {
		t.Error("a fresh capture should now differ from the old snapshot")
	}
}
