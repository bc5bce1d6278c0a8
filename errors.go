// Copyright © 2025 Termtest contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: errors.go
// Summary: Error types surfaced by the harness and validation layers.

package termtest

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrWouldBlock is returned by a ByteSource when no data is
	// currently available. It is not a failure; the waiter keeps polling.
	ErrWouldBlock = errors.New("termtest: no data currently available")

	// ErrProcessRunning is returned by Spawn when a child is already attached.
	ErrProcessRunning = errors.New("termtest: process is already running")

	// ErrNoProcess is returned by operations that need a spawned child.
	ErrNoProcess = errors.New("termtest: no process is running")
)

// TimeoutError reports that a wait exceeded its deadline. It carries the
// configured timeout, not the elapsed time.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout waiting for condition after %v", e.Timeout)
}

// SixelValidationError reports Sixel sequences found outside an asserted
// area. Positions holds the cursor position of every offending sequence.
type SixelValidationError struct {
	Area      Rect
	Positions []Position
}

func (e *SixelValidationError) Error() string {
	return fmt.Sprintf("found %d sixel sequence(s) outside area %v: %v",
		len(e.Positions), e.Area, e.Positions)
}

// InvalidDimensionsError reports a zero or otherwise unusable terminal size.
type InvalidDimensionsError struct {
	Width, Height int
}

func (e *InvalidDimensionsError) Error() string {
	return fmt.Sprintf("invalid terminal dimensions: width=%d, height=%d", e.Width, e.Height)
}
