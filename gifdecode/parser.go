package gifdecode

// Block codes recognized by the content loop, grounded on
// IllusionMan1212-gif-extractor-go/datatypes.go's constant block.
const (
	blockExtensionIntroducer = 0x21
	blockImageSeparator      = 0x2C
	blockTrailer             = 0x3B

	extGraphicControl = 0xF9
	extComment        = 0xFE
	extPlainText      = 0x01
	extApplication    = 0xFF
)

// ParseOptions controls the Header Parser; MaxFrames implements the
// "animation probe" mode from spec §4.3 (stop after the Nth frame to
// cheaply decide "is this animated?").
type ParseOptions struct {
	MaxFrames int
}

// ParseHeader walks data as a GIF87a/GIF89a byte stream and returns a
// Header with its ordered Frames. Header.Status records OPEN_ERROR or
// FORMAT_ERROR on failure; a non-nil Header is always returned so that
// frames found before a later error remain usable (status is sticky but
// does not retroactively invalidate earlier frames, per spec §3's
// Invariants).
func ParseHeader(data []byte, opts ParseOptions) *Header {
	h := &Header{Status: StatusOK}
	if len(data) < 6 {
		h.Status = StatusOpenError
		return h
	}
	if string(data[0:3]) != "GIF" {
		h.Status = StatusOpenError
		return h
	}

	r := newByteReader(data)
	r.skip(6) // signature + version, already validated above

	width, ok1 := r.readU16LE()
	height, ok2 := r.readU16LE()
	packed, ok3 := r.readU8()
	bgIndex, ok4 := r.readU8()
	pixelAspect, ok5 := r.readU8()
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
		h.Status = StatusFormatError
		return h
	}
	h.Width = int(width)
	h.Height = int(height)
	h.BGIndex = bgIndex
	h.PixelAspect = pixelAspect

	h.GCTFlag = packed&0x80 != 0
	h.GCTSize = 2 << (packed & 0x07)

	if h.GCTFlag {
		raw := make([]byte, 3*h.GCTSize)
		if !r.readFull(raw) {
			h.Status = StatusFormatError
			return h
		}
		h.GCT = materializeColorTable(raw, h.GCTSize)
		h.BGColor = h.GCT[h.BGIndex]
	}

	var cur *Frame
	maxFrames := opts.MaxFrames

parseLoop:
	for {
		code, ok := r.readU8()
		if !ok {
			h.Status = StatusFormatError
			break
		}
		switch code {
		case blockImageSeparator:
			if cur == nil {
				cur = &Frame{Dispose: DisposeNone}
			}
			if !parseImageDescriptor(r, h, cur) {
				h.Status = StatusFormatError
				break parseLoop
			}
			h.Frames = append(h.Frames, cur)
			if cur.Dispose == DisposePrevious {
				h.hasDisposePrevious = true
			}
			cur = nil
			if maxFrames > 0 && len(h.Frames) >= maxFrames {
				break parseLoop
			}

		case blockExtensionIntroducer:
			sub, ok := r.readU8()
			if !ok {
				h.Status = StatusFormatError
				break parseLoop
			}
			switch sub {
			case extGraphicControl:
				cur = &Frame{Dispose: DisposeNone}
				if !parseGraphicControl(r, cur) {
					h.Status = StatusFormatError
					break parseLoop
				}
			case extApplication:
				if !parseApplicationExtension(r, h) {
					h.Status = StatusFormatError
					break parseLoop
				}
			case extComment, extPlainText:
				sb := newSubBlockReader(r)
				if !sb.skipBlocks() {
					h.Status = StatusFormatError
					break parseLoop
				}
			default:
				sb := newSubBlockReader(r)
				if !sb.skipBlocks() {
					h.Status = StatusFormatError
					break parseLoop
				}
			}

		case blockTrailer:
			break parseLoop

		default:
			h.Status = StatusFormatError
			break parseLoop
		}
	}

	return h
}

func parseGraphicControl(r *byteReader, f *Frame) bool {
	blockSize, ok1 := r.readU8()
	packed, ok2 := r.readU8()
	delayCentis, ok3 := r.readU16LE()
	transIndex, ok4 := r.readU8()
	terminator, ok5 := r.readU8()
	_ = blockSize
	_ = terminator
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
		return false
	}

	dispose := Dispose((packed >> 2) & 0x07)
	if dispose == DisposeUnspecified {
		dispose = DisposeNone
	}
	f.Dispose = dispose
	f.Transparency = packed&0x01 != 0
	f.TransIndex = transIndex

	delayMs := uint32(delayCentis) * 10
	if delayCentis < 2 {
		delayMs = 100
	}
	f.DelayMs = delayMs
	return true
}

func parseImageDescriptor(r *byteReader, h *Header, f *Frame) bool {
	ix, ok1 := r.readU16LE()
	iy, ok2 := r.readU16LE()
	iw, ok3 := r.readU16LE()
	ih, ok4 := r.readU16LE()
	packed, ok5 := r.readU8()
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
		return false
	}
	f.IX, f.IY, f.IW, f.IH = int(ix), int(iy), int(iw), int(ih)

	lctFlag := packed&0x80 != 0
	f.Interlace = packed&0x40 != 0
	lctSize := 2 << (packed & 0x07)

	if lctFlag {
		f.LCTSize = lctSize
		raw := make([]byte, 3*lctSize)
		if !r.readFull(raw) {
			return false
		}
		f.LCT = materializeColorTable(raw, lctSize)
	}

	if h.GCT == nil && f.LCT == nil {
		// Spec §3: a frame with neither table aborts that frame's decode
		// with FORMAT_ERROR but must not invalidate earlier frames. The
		// parser still needs to skip past this frame's LZW data so later
		// frames remain parsable.
		f.BufferFrameStart = r.position()
		if !skipLZWData(r) {
			return false
		}
		f.missingColorTable = true
		return true
	}

	f.BufferFrameStart = r.position()
	return skipLZWData(r)
}

func skipLZWData(r *byteReader) bool {
	if _, ok := r.readU8(); !ok { // lzw_min_code_size
		return false
	}
	sb := newSubBlockReader(r)
	return sb.skipBlocks()
}

func parseApplicationExtension(r *byteReader, h *Header) bool {
	sb := newSubBlockReader(r)
	n, ok := sb.readBlock()
	if !ok {
		return false
	}
	if n >= 11 && string(sb.scratch[:11]) == "NETSCAPE2.0" {
		return parseNetscapeLoop(r, h)
	}
	return sb.skipBlocks()
}

func parseNetscapeLoop(r *byteReader, h *Header) bool {
	sb := newSubBlockReader(r)
	for {
		n, ok := sb.readBlock()
		if !ok {
			return false
		}
		if n == 0 {
			return true
		}
		if n >= 3 && sb.scratch[0] == 0x01 {
			count := int32(sb.scratch[1]) | int32(sb.scratch[2])<<8
			if count == 0 {
				h.LoopCount = LoopForever
			} else {
				h.LoopCount = count
			}
		}
	}
}
