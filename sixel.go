// Copyright © 2025 Termtest contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: sixel.go
// Summary: Streaming extractor locating Sixel DCS blocks in terminal output.
// Usage: Owned by ScreenState; fed one byte at a time alongside the emulator.
// Notes: Extracts position and raster dimensions only. Payload pixels are
//        captured raw, never decoded.

package termtest

import "strings"

// SixelRegion records one detected Sixel graphics block: the 0-based cell
// position of the cursor when the DCS introducer was seen, the pixel
// dimensions declared by the raster attributes (zero when absent), and the
// raw payload between the introducer and the string terminator.
type SixelRegion struct {
	StartRow, StartCol int
	Width, Height      int
	Data               []byte
}

// Bounds returns the region's pixel bounding box anchored at its cell
// position, in the (row, col, width, height) convention.
func (r SixelRegion) Bounds() Rect {
	return NewRect(r.StartRow, r.StartCol, r.Width, r.Height)
}

type extractorState int

const (
	extractorIdle extractorState = iota
	extractorAwaitingRaster
	extractorInPayload
)

// sixelExtractor recognizes `ESC P q [raster] payload ESC \` in an
// arbitrary byte stream. Its state persists across feeds, so a sequence
// may arrive split into any number of chunks. A sequence that never
// receives its terminator is never finalized: it produces no region but
// can still be completed by a later chunk.
type sixelExtractor struct {
	state extractorState

	// Idle-state introducer matching: how much of ESC 'P' 'q' we have seen.
	introMatched int

	// Cursor position sampled when the introducer's ESC byte arrived.
	startRow, startCol int

	inRaster      bool
	rasterBuf     []byte
	width, height int

	data       []byte
	escPending bool // saw ESC inside the payload, awaiting '\'
}

// advance consumes one byte of output. row/col is the emulator's current
// cursor position, sampled before the emulator has processed the byte.
// It returns a finalized region when the byte completes a sequence.
func (e *sixelExtractor) advance(b byte, row, col int) (SixelRegion, bool) {
	switch e.state {
	case extractorIdle:
		switch {
		case b == 0x1b:
			// Restarting on ESC keeps matching correct for input
			// like ESC ESC P q, and refreshes the sampled cursor.
			e.introMatched = 1
			e.startRow, e.startCol = row, col
		case e.introMatched == 1 && b == 'P':
			e.introMatched = 2
		case e.introMatched == 2 && b == 'q':
			e.state = extractorAwaitingRaster
			e.introMatched = 0
			e.inRaster = false
			e.rasterBuf = e.rasterBuf[:0]
			e.width, e.height = 0, 0
			e.data = nil
			e.escPending = false
		default:
			e.introMatched = 0
		}
	case extractorAwaitingRaster:
		if b == '"' && !e.inRaster {
			e.inRaster = true
			e.data = append(e.data, b)
			return SixelRegion{}, false
		}
		if e.inRaster && (b == ';' || (b >= '0' && b <= '9')) {
			e.rasterBuf = append(e.rasterBuf, b)
			e.data = append(e.data, b)
			return SixelRegion{}, false
		}
		// First non-raster byte: fix the dimensions and fall through
		// to the payload. Malformed raster data degrades to 0x0.
		if e.inRaster {
			e.width, e.height = parseRasterAttributes(string(e.rasterBuf))
		}
		e.state = extractorInPayload
		return e.payloadByte(b)
	case extractorInPayload:
		return e.payloadByte(b)
	}
	return SixelRegion{}, false
}

func (e *sixelExtractor) payloadByte(b byte) (SixelRegion, bool) {
	if e.escPending {
		e.escPending = false
		if b == '\\' { // ST: sequence complete
			region := SixelRegion{
				StartRow: e.startRow,
				StartCol: e.startCol,
				Width:    e.width,
				Height:   e.height,
				Data:     e.data,
			}
			e.state = extractorIdle
			e.introMatched = 0
			e.data = nil
			return region, true
		}
		// Lone ESC inside the payload; keep both bytes.
		e.data = append(e.data, 0x1b, b)
		return SixelRegion{}, false
	}
	if b == 0x1b {
		e.escPending = true
		return SixelRegion{}, false
	}
	e.data = append(e.data, b)
	return SixelRegion{}, false
}

// parseRasterAttributes interprets the digits between the `"` and the first
// payload byte. The full form is Pa;Pb;Ph;Pv (aspect numerator/denominator
// then width/height); the abbreviated form is Ph;Pv. Anything else counts
// as "no raster attributes" and yields zero dimensions.
func parseRasterAttributes(s string) (width, height int) {
	fields := strings.Split(s, ";")
	switch len(fields) {
	case 2:
		return atoiField(fields[0]), atoiField(fields[1])
	case 4:
		return atoiField(fields[2]), atoiField(fields[3])
	default:
		return 0, 0
	}
}

// atoiField parses a non-empty all-digit field, returning 0 otherwise.
func atoiField(s string) int {
	if s == "" {
		return 0
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0
		}
		n = n*10 + int(s[i]-'0')
	}
	return n
}
