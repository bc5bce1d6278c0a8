// Copyright © 2025 Termtest contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: harness.go
// Summary: High-level test harness combining PTY, screen state, and waiter.
// Usage: NewHarness + Spawn + WaitFor*/Send* from test code.

package termtest

import (
	"os"
	"os/exec"
	"time"
)

// HarnessOption configures a Harness at construction time.
type HarnessOption func(*Harness)

// WithTimeout sets the timeout for wait operations.
func WithTimeout(timeout time.Duration) HarnessOption {
	return func(h *Harness) { h.timeout = timeout }
}

// WithPollInterval sets the polling interval for wait operations.
func WithPollInterval(interval time.Duration) HarnessOption {
	return func(h *Harness) { h.interval = interval }
}

// Harness drives a TUI application under test: it spawns the program in a
// pseudo-terminal, keeps a ScreenState reconstructed from its output, and
// blocks test code on conditions over that state.
type Harness struct {
	term     *Terminal
	state    *ScreenState
	timeout  time.Duration
	interval time.Duration
}

// NewHarness creates a harness with the given terminal dimensions.
func NewHarness(width, height int, opts ...HarnessOption) (*Harness, error) {
	term, err := NewTerminal(width, height)
	if err != nil {
		return nil, err
	}
	h := &Harness{
		term:     term,
		state:    NewScreenState(width, height),
		timeout:  DefaultTimeout,
		interval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Spawn starts cmd inside the harness's PTY.
func (h *Harness) Spawn(cmd *exec.Cmd) error {
	return h.term.Spawn(cmd)
}

// SpawnCommand is a convenience wrapper building the exec.Cmd itself.
func (h *Harness) SpawnCommand(name string, args ...string) error {
	return h.Spawn(exec.Command(name, args...))
}

// SendInput writes raw bytes to the program under test and folds any
// output produced so far into the screen state.
func (h *Harness) SendInput(data []byte) error {
	if _, err := h.term.Write(data); err != nil {
		return err
	}
	return h.UpdateState()
}

// SendText sends plain text.
func (h *Harness) SendText(text string) error {
	return h.SendInput([]byte(text))
}

// SendKeys sends text with embedded key descriptions, e.g. "ls<Enter>".
func (h *Harness) SendKeys(input string) error {
	return h.SendInput(ParseInputString(input))
}

// SendEnter sends the Enter key.
func (h *Harness) SendEnter() error {
	return h.SendInput([]byte{'\r'})
}

// SendCtrlC sends an interrupt (Ctrl+C).
func (h *Harness) SendCtrlC() error {
	return h.SendInput([]byte{0x03})
}

// UpdateState drains all currently available PTY output into the screen
// state. Wait operations call this automatically.
func (h *Harness) UpdateState() error {
	return drain(h.term, h.state)
}

// WaitFor blocks until cond is true of the screen state, or the
// configured timeout elapses.
func (h *Harness) WaitFor(cond Condition) error {
	return wait(h.term, h.state, cond, h.timeout, h.interval)
}

// WaitForText blocks until text appears anywhere on the screen.
func (h *Harness) WaitForText(text string) error {
	return h.WaitFor(func(s *ScreenState) bool { return s.Contains(text) })
}

// WaitForTextTimeout is WaitForText with a one-off timeout.
func (h *Harness) WaitForTextTimeout(text string, timeout time.Duration) error {
	return wait(h.term, h.state,
		func(s *ScreenState) bool { return s.Contains(text) },
		timeout, h.interval)
}

// WaitForCursor blocks until the cursor reaches the 0-based (row, col).
func (h *Harness) WaitForCursor(row, col int) error {
	return h.WaitFor(func(s *ScreenState) bool {
		r, c := s.CursorPosition()
		return r == row && c == col
	})
}

// ScreenContents returns the current visible screen as a string.
func (h *Harness) ScreenContents() string {
	return h.state.Contents()
}

// CursorPosition returns the current 0-based cursor position.
func (h *Harness) CursorPosition() (row, col int) {
	return h.state.CursorPosition()
}

// State returns the live screen state for direct queries.
func (h *Harness) State() *ScreenState {
	return h.state
}

// Terminal returns the underlying PTY terminal.
func (h *Harness) Terminal() *Terminal {
	return h.term
}

// CaptureSixel snapshots the Sixel sequences currently on screen.
func (h *Harness) CaptureSixel() *SixelCapture {
	return NewSixelCapture(h.state)
}

// AssertSixelWithin validates that every Sixel sequence seen so far lies
// inside area.
func (h *Harness) AssertSixelWithin(area Rect) error {
	return h.CaptureSixel().AssertAllWithin(area)
}

// Resize changes the PTY size and replaces the screen state wholesale:
// the Sixel region history is tied to the old cell geometry, so it cannot
// be carried across a resize.
func (h *Harness) Resize(width, height int) error {
	if err := h.term.Resize(width, height); err != nil {
		return err
	}
	h.state = NewScreenState(width, height)
	return nil
}

// Running reports whether the child process is still alive.
func (h *Harness) Running() bool {
	return h.term.Running()
}

// WaitExit blocks until the child exits.
func (h *Harness) WaitExit() (*os.ProcessState, error) {
	return h.term.WaitExit()
}

// Close tears down the child process and the PTY.
func (h *Harness) Close() error {
	return h.term.Close()
}
