// Copyright © 2025 Termtest contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/termtest-dump/main.go
// Summary: Runs a command in the harness and dumps the reconstructed screen.
// Usage: termtest-dump [-cols N] [-rows N] [-wait TEXT] [-keys INPUT] cmd [args...]

package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/framegrace/termtest"
)

func main() {
	var (
		cols    = flag.Int("cols", 80, "terminal width in columns")
		rows    = flag.Int("rows", 24, "terminal height in rows")
		waitFor = flag.String("wait", "", "wait until this text appears before dumping")
		keys    = flag.String("keys", "", "input to send after spawn, e.g. 'ls<Enter>'")
		timeout = flag.Duration("timeout", 5*time.Second, "wait timeout")
		settle  = flag.Duration("settle", 200*time.Millisecond, "extra time to let output settle")
		sixel   = flag.Bool("sixel", false, "list detected sixel regions")
	)
	flag.Parse()
	if flag.NArg() == 0 {
		log.Fatal("termtest-dump: no command given")
	}

	h, err := termtest.NewHarness(*cols, *rows, termtest.WithTimeout(*timeout))
	if err != nil {
		log.Fatalf("termtest-dump: %v", err)
	}
	defer h.Close()

	if err := h.SpawnCommand(flag.Arg(0), flag.Args()[1:]...); err != nil {
		log.Fatalf("termtest-dump: %v", err)
	}

	if *keys != "" {
		if err := h.SendKeys(*keys); err != nil {
			log.Fatalf("termtest-dump: send keys: %v", err)
		}
	}

	if *waitFor != "" {
		if err := h.WaitForText(*waitFor); err != nil {
			log.Fatalf("termtest-dump: %v\n%s", err, h.State().DebugContents())
		}
	}

	time.Sleep(*settle)
	if err := h.UpdateState(); err != nil {
		log.Fatalf("termtest-dump: %v", err)
	}

	fmt.Println(h.State().DebugContents())

	if *sixel {
		for i, region := range h.State().SixelRegions() {
			fmt.Printf("sixel %d: pos=(%d,%d) size=%dx%d payload=%d bytes\n",
				i, region.StartRow, region.StartCol,
				region.Width, region.Height, len(region.Data))
		}
	}
}
