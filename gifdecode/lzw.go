package gifdecode

// maxLZWCode is the largest dictionary size a 12-bit GIF LZW code space can
// address.
const maxLZWCode = 4096

// decodeLZW seeks raw to frame.BufferFrameStart, reads the initial code
// size, and drives the variable-width LZW decoder described in spec §4.4
// against frame's chained sub-blocks, writing iw*ih palette indices into
// out (which must be at least iw*ih long). It returns StatusOK,
// StatusFormatError (BufferFrameStart is out of range, the code-size byte
// cannot be read, or the code size is outside 2..8; a frame with no color
// table is handled by the caller before this is reached), or
// StatusPartialDecode (the sub-block chain ran out, or the code table
// overflowed, before iw*ih pixels were produced — out's undecoded tail is
// left zeroed).
//
// The code-width growth rule `codeMask += available` (rather than
// recomputing `(1<<codeSize)-1`) is a deliberate bug-compatible quirk: many
// real-world GIFs were only ever tested against encoders/decoders that
// share it, and "fixing" it corrupts those streams. See spec §9; DESIGN.md
// records where this quirk is taken from.
func decodeLZW(raw []byte, frame *Frame, out []byte) Status {
	for i := range out {
		out[i] = 0
	}

	r := newByteReader(raw)
	if !r.seek(frame.BufferFrameStart) {
		return StatusFormatError
	}
	dataSize, ok := r.readU8()
	if !ok {
		return StatusFormatError
	}
	if dataSize < 2 || dataSize > 8 {
		return StatusFormatError
	}

	clear := 1 << dataSize
	eoi := clear + 1

	var prefix [maxLZWCode]uint16
	var suffix [maxLZWCode]uint8
	var pixelStack [maxLZWCode + 1]uint8

	for c := 0; c < clear; c++ {
		prefix[c] = 0
		suffix[c] = uint8(c)
	}

	codeSize := int(dataSize) + 1
	codeMask := (1 << codeSize) - 1
	available := clear + 2
	oldCode := -1
	first := 0

	sb := newSubBlockReader(r)
	datum := 0
	bits := 0

	nPix := len(out)
	outPos := 0
	stackTop := 0

	partial := false

readLoop:
	for outPos < nPix {
		for bits < codeSize {
			b, ok := sb.nextByte()
			if !ok {
				partial = true
				break readLoop
			}
			datum |= int(b) << bits
			bits += 8
		}

		code := datum & codeMask
		datum >>= codeSize
		bits -= codeSize

		switch {
		case code == clear:
			codeSize = int(dataSize) + 1
			codeMask = (1 << codeSize) - 1
			available = clear + 2
			oldCode = -1
			continue

		case code == eoi:
			break readLoop

		case code > available:
			partial = true
			break readLoop
		}

		if oldCode == -1 {
			pixelStack[stackTop] = suffix[code]
			stackTop++
			oldCode = code
			first = code
		} else {
			inCode := code
			if code >= available {
				pixelStack[stackTop] = uint8(first)
				stackTop++
				code = oldCode
			}
			for code >= clear {
				pixelStack[stackTop] = suffix[code]
				stackTop++
				code = int(prefix[code])
			}
			first = int(suffix[code]) & 0xFF
			pixelStack[stackTop] = uint8(first)
			stackTop++

			if available < maxLZWCode {
				prefix[available] = uint16(oldCode)
				suffix[available] = uint8(first)
				available++
				if available&codeMask == 0 && available < maxLZWCode {
					codeSize++
					codeMask += available
				}
			}
			oldCode = inCode
		}

		for stackTop > 0 && outPos < nPix {
			stackTop--
			out[outPos] = pixelStack[stackTop]
			outPos++
		}
	}

	if partial || outPos < nPix {
		return StatusPartialDecode
	}
	return StatusOK
}
