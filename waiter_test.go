// Copyright © 2025 Termtest contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: waiter_test.go
// Summary: Tests for the condition-polling loop over a scripted byte source.

package termtest

import (
	"errors"
	"io"
	"testing"
	"time"
)

// scriptedSource returns one queued chunk per TryRead, then finalErr
// (ErrWouldBlock when unset).
type scriptedSource struct {
	chunks   [][]byte
	finalErr error
	reads    int
}

func (s *scriptedSource) TryRead(p []byte) (int, error) {
	s.reads++
	if len(s.chunks) == 0 {
		if s.finalErr != nil {
			return 0, s.finalErr
		}
		return 0, ErrWouldBlock
	}
	chunk := s.chunks[0]
	s.chunks = s.chunks[1:]
	n := copy(p, chunk)
	return n, nil
}

func TestWaitSucceedsBeforeTimeout(t *testing.T) {
	src := &scriptedSource{chunks: [][]byte{[]byte("loading"), []byte(" done")}}
	state := NewScreenState(80, 24)

	start := time.Now()
	err := wait(src, state,
		func(s *ScreenState) bool { return s.Contains("done") },
		5*time.Second, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("wait should succeed, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("success must not wait out the timeout, took %v", elapsed)
	}
}

func TestWaitDrainsAllChunksPerPoll(t *testing.T) {
	// Both chunks must be visible to the first evaluation: the predicate
	// only matches across the chunk boundary.
	src := &scriptedSource{chunks: [][]byte{[]byte("he"), []byte("llo")}}
	state := NewScreenState(80, 24)

	err := wait(src, state,
		func(s *ScreenState) bool { return s.Contains("hello") },
		200*time.Millisecond, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("wait should see text spanning chunks, got %v", err)
	}
	if src.reads < 3 {
		t.Errorf("drain should read until would-block, got %d reads", src.reads)
	}
}

func TestWaitTimeoutCarriesConfiguredValue(t *testing.T) {
	src := &scriptedSource{}
	state := NewScreenState(80, 24)
	timeout := 500 * time.Millisecond
	interval := 50 * time.Millisecond

	start := time.Now()
	err := wait(src, state, func(*ScreenState) bool { return false }, timeout, interval)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("expected a timeout error")
	}
	var terr *TimeoutError
	if !errors.As(err, &terr) {
		t.Fatalf("expected *TimeoutError, got %T: %v", err, err)
	}
	if terr.Timeout != timeout {
		t.Errorf("error should carry the configured timeout, got %v", terr.Timeout)
	}
	if elapsed < timeout {
		t.Errorf("wait returned before the deadline: %v", elapsed)
	}
	// One poll interval of overshoot is the documented worst case; allow
	// generous scheduler slack on top.
	if elapsed > timeout+interval+200*time.Millisecond {
		t.Errorf("wait overshot the deadline by too much: %v", elapsed)
	}
}

func TestWaitPropagatesIOError(t *testing.T) {
	ioErr := errors.New("pty exploded")
	src := &scriptedSource{finalErr: ioErr}
	state := NewScreenState(80, 24)

	err := wait(src, state, func(*ScreenState) bool { return false },
		time.Second, 10*time.Millisecond)
	if !errors.Is(err, ioErr) {
		t.Errorf("genuine I/O failures must propagate, got %v", err)
	}
}

func TestWaitEOFIsNotFatal(t *testing.T) {
	// An exhausted source can still satisfy the condition from bytes that
	// were already fed.
	src := &scriptedSource{chunks: [][]byte{[]byte("final frame")}, finalErr: io.EOF}
	state := NewScreenState(80, 24)

	err := wait(src, state,
		func(s *ScreenState) bool { return s.Contains("final frame") },
		time.Second, 10*time.Millisecond)
	if err != nil {
		t.Errorf("EOF must not fail a satisfiable wait, got %v", err)
	}

	// And an unsatisfiable one ends in a timeout, not an EOF error.
	err = wait(src, state, func(*ScreenState) bool { return false },
		50*time.Millisecond, 10*time.Millisecond)
	var terr *TimeoutError
	if !errors.As(err, &terr) {
		t.Errorf("expected timeout after EOF, got %v", err)
	}
}
