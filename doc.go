// Copyright © 2025 Termtest contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package termtest is a test harness for terminal UI applications.

It runs a target program inside a pseudo-terminal, reconstructs the
terminal's visible state from the raw byte stream the program emits, and
lets test code assert on that state - text content, cursor position, and
embedded Sixel graphics regions - with bounded-time polling instead of
fixed sleeps.

# Quick start

	h, err := termtest.NewHarness(80, 24,
	    termtest.WithTimeout(2*time.Second))
	if err != nil { ... }
	defer h.Close()

	if err := h.SpawnCommand("my-app"); err != nil { ... }
	if err := h.WaitForText("Ready"); err != nil { ... }
	h.SendKeys("hello<Enter>")

# Sixel graphics

Graphics emitted as Sixel DCS sequences are tracked with the cursor
position at emission time and a pixel bounding box from the raster
attributes. A SixelCapture snapshots them for validation:

	cap := termtest.NewSixelCapture(h.State())
	if err := cap.AssertAllWithin(termtest.NewRect(5, 5, 400, 300)); err != nil { ... }

Screen reconstruction is handled by the vterm subpackage; ScreenState
accepts any emulator implementing the Emulator interface.
*/
package termtest
