// Copyright © 2025 Termtest contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: keys.go
// Summary: Key-description DSL for sending special keys to the PTY.
// Usage: h.SendKeys("vim<Enter>") or ParseKeySequence("<Ctrl-C>") directly.

package termtest

import "bytes"

// ParseKeySequence converts a key description to the bytes a terminal
// would send. Supported: <Enter>, <Escape>, <Tab>, <Backspace>, <Space>,
// arrow keys, and <Ctrl-X> where X is a letter. Anything else is returned
// as-is.
func ParseKeySequence(keyDesc string) []byte {
	switch keyDesc {
	case "<Enter>", "<Return>", "<CR>":
		return []byte{'\r'}
	case "<Escape>", "<Esc>":
		return []byte{0x1b}
	case "<Tab>":
		return []byte{'\t'}
	case "<Backspace>", "<BS>":
		return []byte{0x7f}
	case "<Space>":
		return []byte{' '}
	case "<Up>":
		return []byte("\x1b[A")
	case "<Down>":
		return []byte("\x1b[B")
	case "<Right>":
		return []byte("\x1b[C")
	case "<Left>":
		return []byte("\x1b[D")
	}

	if len(keyDesc) > 7 && keyDesc[:6] == "<Ctrl-" && keyDesc[len(keyDesc)-1] == '>' {
		char := keyDesc[6]
		if char >= 'a' && char <= 'z' {
			return []byte{char - 'a' + 1}
		}
		if char >= 'A' && char <= 'Z' {
			return []byte{char - 'A' + 1}
		}
	}

	return []byte(keyDesc)
}

// ParseInputString converts a string with embedded key descriptions to
// bytes. Example: "hello<Enter>world" -> "hello\rworld".
func ParseInputString(input string) []byte {
	var result bytes.Buffer
	i := 0
	for i < len(input) {
		if input[i] == '<' {
			end := i + 1
			for end < len(input) && input[end] != '>' {
				end++
			}
			if end < len(input) {
				result.Write(ParseKeySequence(input[i : end+1]))
				i = end + 1
				continue
			}
		}
		result.WriteByte(input[i])
		i++
	}
	return result.Bytes()
}
