// Copyright © 2025 Termtest contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screen_test.go
// Summary: Tests for screen-state queries over the vterm emulator.

package termtest

import (
	"strings"
	"testing"
)

func TestScreenStateFeedSimpleText(t *testing.T) {
	s := NewScreenState(80, 24)
	s.Feed([]byte("Hello, World!"))

	if !s.Contains("Hello, World!") {
		t.Errorf("screen should contain the fed text:\n%s", s.DebugContents())
	}
}

func TestScreenStateCursorStartsAtOrigin(t *testing.T) {
	s := NewScreenState(80, 24)
	row, col := s.CursorPosition()
	if row != 0 || col != 0 {
		t.Errorf("expected cursor at (0, 0), got (%d, %d)", row, col)
	}
}

func TestScreenStateCursorAddressingIsConverted(t *testing.T) {
	s := NewScreenState(80, 24)
	s.Feed([]byte("\x1b[5;10H")) // 1-based escape input

	row, col := s.CursorPosition()
	if row != 4 || col != 9 {
		t.Errorf("expected 0-based cursor (4, 9), got (%d, %d)", row, col)
	}
}

func TestScreenStateTextAt(t *testing.T) {
	s := NewScreenState(80, 24)
	s.Feed([]byte("\x1b[3;5HStatus: OK"))

	if !s.TextAt(2, 4, "Status: OK") {
		t.Errorf("expected text at (2, 4):\n%s", s.DebugContents())
	}
	if s.TextAt(2, 5, "Status") {
		t.Error("text should not match at a shifted column")
	}
	if s.TextAt(99, 0, "Status") {
		t.Error("out-of-range row should not match")
	}
}

func TestScreenStateRowContents(t *testing.T) {
	s := NewScreenState(20, 5)
	s.Feed([]byte("abc"))

	row := s.RowContents(0)
	if len([]rune(row)) != 20 {
		t.Errorf("row contents should be full width, got %d runes", len([]rune(row)))
	}
	if !strings.HasPrefix(row, "abc ") {
		t.Errorf("unexpected row contents %q", row)
	}
	if s.RowContents(5) != "" {
		t.Error("out-of-range row should be empty")
	}
	if s.RowContents(-1) != "" {
		t.Error("negative row should be empty")
	}
}

func TestScreenStateCharAt(t *testing.T) {
	s := NewScreenState(20, 5)
	s.Feed([]byte("xy"))

	if r, ok := s.CharAt(0, 1); !ok || r != 'y' {
		t.Errorf("expected 'y' at (0, 1), got %q ok=%v", r, ok)
	}
	if r, ok := s.CharAt(0, 5); !ok || r != ' ' {
		t.Errorf("expected blank at untouched cell, got %q ok=%v", r, ok)
	}
	if _, ok := s.CharAt(5, 0); ok {
		t.Error("out-of-range cell should report not ok")
	}
	if _, ok := s.CharAt(0, 20); ok {
		t.Error("out-of-range column should report not ok")
	}
}

func TestScreenStateContentsOneLinePerRow(t *testing.T) {
	s := NewScreenState(40, 4)
	s.Feed([]byte("first\r\nsecond\r\nthird"))

	lines := strings.Split(s.Contents(), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if lines[0] != "first" || lines[1] != "second" || lines[2] != "third" {
		t.Errorf("unexpected contents %q", lines)
	}
}

func TestScreenStateSize(t *testing.T) {
	s := NewScreenState(132, 43)
	w, h := s.Size()
	if w != 132 || h != 43 {
		t.Errorf("expected size (132, 43), got (%d, %d)", w, h)
	}
}

func TestScreenStateDebugContents(t *testing.T) {
	s := NewScreenState(10, 2)
	s.Feed([]byte("hi"))

	dump := s.DebugContents()
	if !strings.Contains(dump, "0 | hi") {
		t.Errorf("debug dump should carry line numbers:\n%s", dump)
	}
	if len(strings.Split(dump, "\n")) != 2 {
		t.Errorf("debug dump should have one line per row:\n%s", dump)
	}
}

func TestScreenStateRegionListOnlyGrows(t *testing.T) {
	s := NewScreenState(80, 24)
	feedSixel(s, `"1;1;5;5`)
	s.Feed([]byte("\x1b[2J\x1b[H")) // clear screen does not prune regions
	feedSixel(s, `"1;1;6;6`)

	if len(s.SixelRegions()) != 2 {
		t.Errorf("region list must only grow, got %d regions", len(s.SixelRegions()))
	}
}

func TestScreenStateSplitUTF8AcrossFeeds(t *testing.T) {
	s := NewScreenState(20, 2)
	data := []byte("héllo")
	s.Feed(data[:2]) // second byte is half of the é encoding
	s.Feed(data[2:])

	if !s.Contains("héllo") {
		t.Errorf("split rune should survive chunking: %q", s.Contents())
	}
}
