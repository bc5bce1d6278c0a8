// Copyright © 2025 Termtest contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: pty.go
// Summary: Pseudo-terminal process management for the harness.
// Usage: Owned by Harness; also usable standalone as a ByteSource/ByteSink.
// Notes: Reads are non-blocking so the waiter's drain loop can terminate
//        on every poll.

package termtest

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/term"
)

// Terminal is a test terminal backed by a pseudo-terminal. It spawns the
// program under test on the PTY slave side and exposes the master side as
// a pollable byte source and an input sink.
type Terminal struct {
	width, height int
	ptmx          *os.File
	fd            int
	cmd           *exec.Cmd
	exited        chan struct{}
	waitErr       error
}

// NewTerminal creates a terminal of the given cell dimensions. The PTY
// itself is allocated when a process is spawned.
func NewTerminal(width, height int) (*Terminal, error) {
	if width <= 0 || height <= 0 {
		return nil, &InvalidDimensionsError{Width: width, Height: height}
	}
	return &Terminal{width: width, height: height}, nil
}

// Size returns the terminal dimensions as (width, height).
func (t *Terminal) Size() (width, height int) {
	return t.width, t.height
}

// Spawn starts cmd on the PTY. Exactly one child may be attached at a
// time. The child sees TERM, COLUMNS, and LINES matching the terminal.
func (t *Terminal) Spawn(cmd *exec.Cmd) error {
	if t.cmd != nil {
		return ErrProcessRunning
	}

	if cmd.Env == nil {
		cmd.Env = os.Environ()
	}
	cmd.Env = append(cmd.Env,
		fmt.Sprintf("COLUMNS=%d", t.width),
		fmt.Sprintf("LINES=%d", t.height),
		"TERM=xterm-256color",
	)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(t.height),
		Cols: uint16(t.width),
	})
	if err != nil {
		return fmt.Errorf("spawn process: %w", err)
	}

	// Raw mode on the master disables echo, so input sent by the test and
	// terminal responses are not captured back as output.
	fd := int(ptmx.Fd())
	if _, err := term.MakeRaw(fd); err != nil {
		ptmx.Close()
		cmd.Process.Kill()
		return fmt.Errorf("make pty raw: %w", err)
	}
	if err := syscall.SetNonblock(fd, true); err != nil {
		ptmx.Close()
		cmd.Process.Kill()
		return fmt.Errorf("set pty non-blocking: %w", err)
	}

	t.ptmx = ptmx
	t.fd = fd
	t.cmd = cmd
	t.exited = make(chan struct{})
	go func() {
		t.waitErr = cmd.Wait()
		close(t.exited)
	}()
	return nil
}

// TryRead reads whatever output is available right now. It returns
// ErrWouldBlock when the child has produced nothing new, and io.EOF once
// the slave side is gone (child exited and output fully consumed).
func (t *Terminal) TryRead(p []byte) (int, error) {
	if t.ptmx == nil {
		// No child attached yet; nothing to read is not an error, so
		// waits over a manually fed ScreenState still work.
		return 0, ErrWouldBlock
	}
	for {
		n, err := syscall.Read(t.fd, p)
		switch {
		case err == syscall.EINTR:
			continue
		case err == syscall.EAGAIN:
			return 0, ErrWouldBlock
		case err == syscall.EIO:
			// Linux PTY masters report EIO when the slave side closes.
			return 0, io.EOF
		case err != nil:
			return 0, fmt.Errorf("read pty: %w", err)
		case n == 0:
			return 0, io.EOF
		default:
			return n, nil
		}
	}
}

// Write sends input to the program under test.
func (t *Terminal) Write(p []byte) (int, error) {
	if t.ptmx == nil {
		return 0, ErrNoProcess
	}
	return t.ptmx.Write(p)
}

// Resize changes the PTY dimensions and signals the child (SIGWINCH is
// delivered by the kernel).
func (t *Terminal) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return &InvalidDimensionsError{Width: width, Height: height}
	}
	if t.ptmx != nil {
		if err := pty.Setsize(t.ptmx, &pty.Winsize{
			Rows: uint16(height),
			Cols: uint16(width),
		}); err != nil {
			return fmt.Errorf("resize pty: %w", err)
		}
	}
	t.width, t.height = width, height
	return nil
}

// Running reports whether the child process is still alive.
func (t *Terminal) Running() bool {
	if t.cmd == nil {
		return false
	}
	select {
	case <-t.exited:
		return false
	default:
		return true
	}
}

// WaitExit blocks until the child exits and returns its process state.
func (t *Terminal) WaitExit() (*os.ProcessState, error) {
	if t.cmd == nil {
		return nil, ErrNoProcess
	}
	<-t.exited
	state := t.cmd.ProcessState
	err := t.waitErr
	if _, isExit := err.(*exec.ExitError); isExit {
		// A non-zero exit is an outcome for the test to inspect, not a
		// harness failure.
		err = nil
	}
	return state, err
}

// Close kills the child if it is still running and releases the PTY.
func (t *Terminal) Close() error {
	if t.cmd != nil {
		if t.Running() {
			t.cmd.Process.Kill()
		}
		<-t.exited
	}
	if t.ptmx != nil {
		err := t.ptmx.Close()
		t.ptmx = nil
		return err
	}
	return nil
}
