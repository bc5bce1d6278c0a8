// Copyright © 2025 Termtest contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: waiter.go
// Summary: Bounded-time condition polling over a non-blocking byte source.
// Notes: Single-threaded and blocking; the only suspension point is the
//        sleep between polls, so the worst case overshoots the deadline by
//        one poll interval.

package termtest

import (
	"errors"
	"io"
	"time"
)

const (
	// DefaultTimeout bounds wait operations unless overridden.
	DefaultTimeout = 5 * time.Second
	// DefaultPollInterval is the sleep between condition evaluations.
	DefaultPollInterval = 10 * time.Millisecond
)

// ByteSource is a pollable stream of terminal output. TryRead must not
// block past its response: it returns the bytes read, ErrWouldBlock when
// nothing is available right now, io.EOF when the stream has ended, or a
// genuine I/O error.
type ByteSource interface {
	TryRead(p []byte) (int, error)
}

// ByteSink accepts input destined for the program under test.
type ByteSink interface {
	Write(p []byte) (int, error)
}

// Condition is a predicate over the reconstructed screen state.
type Condition func(*ScreenState) bool

// drain pulls every currently available chunk from src into state, so a
// single condition evaluation sees the freshest state. "No data right now"
// and end-of-stream both terminate the drain without failing; real I/O
// errors propagate.
func drain(src ByteSource, state *ScreenState) error {
	buf := make([]byte, 4096)
	for {
		n, err := src.TryRead(buf)
		if n > 0 {
			state.Feed(buf[:n])
		}
		switch {
		case err == nil:
			if n == 0 {
				return nil
			}
		case errors.Is(err, ErrWouldBlock), errors.Is(err, io.EOF):
			return nil
		default:
			return err
		}
	}
}

// wait polls src into state until cond is true or timeout elapses. On
// timeout it returns a *TimeoutError carrying the configured timeout. An
// exhausted source is not an error: bytes already fed may still satisfy
// the condition, and a quiet source may simply be slow.
func wait(src ByteSource, state *ScreenState, cond Condition, timeout, interval time.Duration) error {
	start := time.Now()
	for {
		if err := drain(src, state); err != nil {
			return err
		}
		if cond(state) {
			return nil
		}
		if time.Since(start) >= timeout {
			return &TimeoutError{Timeout: timeout}
		}
		time.Sleep(interval)
	}
}
