// Copyright © 2025 Termtest contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: rect_test.go
// Summary: Tests for rectangle containment and overlap.

package termtest

import "testing"

func TestRectContainsItself(t *testing.T) {
	rects := []Rect{
		NewRect(0, 0, 10, 10),
		NewRect(5, 7, 1, 1),
		NewRect(3, 4, 0, 0),
		NewRect(0, 0, 0, 5),
	}
	for _, r := range rects {
		if !r.Contains(r) {
			t.Errorf("rect %v should contain itself", r)
		}
	}
}

func TestRectContains(t *testing.T) {
	outer := NewRect(0, 0, 20, 20)

	if !outer.Contains(NewRect(5, 5, 10, 10)) {
		t.Error("inner rect should be contained")
	}
	if !outer.Contains(NewRect(0, 0, 20, 20)) {
		t.Error("identical rect should be contained")
	}
	if outer.Contains(NewRect(5, 5, 20, 10)) {
		t.Error("rect extending past the right edge should not be contained")
	}
	if outer.Contains(NewRect(15, 15, 10, 10)) {
		t.Error("rect extending past both edges should not be contained")
	}

	small := NewRect(0, 0, 10, 10)
	if small.Contains(NewRect(5, 5, 10, 10)) {
		t.Error("overlapping but protruding rect should not be contained")
	}
}

func TestRectContainsDegenerate(t *testing.T) {
	area := NewRect(2, 2, 10, 10)

	// Zero-sized rect inside the area.
	if !area.Contains(NewRect(5, 5, 0, 0)) {
		t.Error("zero-sized rect with origin inside should be contained")
	}
	// On the far boundary: origin at row+height is still "inside" for a
	// zero-extent rect per the closed comparison.
	if !area.Contains(NewRect(12, 12, 0, 0)) {
		t.Error("zero-sized rect on the closing edge should be contained")
	}
	// Outside the origin side.
	if area.Contains(NewRect(1, 5, 0, 0)) {
		t.Error("zero-sized rect above the area should not be contained")
	}
}

func TestRectOverlaps(t *testing.T) {
	a := NewRect(5, 5, 10, 10)

	if !a.Overlaps(NewRect(0, 0, 10, 10)) {
		t.Error("corner-sharing area should overlap")
	}
	if !a.Overlaps(NewRect(10, 10, 10, 10)) {
		t.Error("partially covering area should overlap")
	}
	if !a.Overlaps(a) {
		t.Error("rect should overlap itself")
	}
	if a.Overlaps(NewRect(0, 0, 5, 5)) {
		t.Error("edge-touching rects should not overlap")
	}
	if a.Overlaps(NewRect(15, 15, 5, 5)) {
		t.Error("corner-touching rects should not overlap")
	}
	if a.Overlaps(NewRect(20, 20, 3, 3)) {
		t.Error("disjoint rects should not overlap")
	}
}

func TestRectOverlapsSymmetry(t *testing.T) {
	pairs := [][2]Rect{
		{NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10)},
		{NewRect(0, 0, 5, 5), NewRect(5, 5, 5, 5)},
		{NewRect(2, 3, 4, 5), NewRect(100, 100, 1, 1)},
	}
	for _, pair := range pairs {
		if pair[0].Overlaps(pair[1]) != pair[1].Overlaps(pair[0]) {
			t.Errorf("overlap not symmetric for %v and %v", pair[0], pair[1])
		}
	}
}

func TestRectContainsImpliesOverlaps(t *testing.T) {
	outer := NewRect(0, 0, 50, 50)
	inners := []Rect{
		NewRect(0, 0, 50, 50),
		NewRect(10, 10, 5, 5),
		NewRect(49, 49, 1, 1),
	}
	for _, inner := range inners {
		if outer.Contains(inner) && !outer.Overlaps(inner) {
			t.Errorf("contained rect %v must overlap %v", inner, outer)
		}
	}
}
