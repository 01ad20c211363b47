package gifdecode

// compositeState bundles the cross-call pieces the compositor needs beyond
// the current/previous Frame pair: the decoder's sample size, its current
// previous-frame snapshot (only meaningful once a DisposePrevious frame has
// been seen), and the sticky firstFrameTransparent flag. Grounded directly
// on GifDecoder.java's setPixels/fillRect/averageColorsNear (see
// _examples/original_source/.../GifDecoder.java), which this package
// reimplements in Go rather than translates line-for-line.
type compositeState struct {
	header     *Header
	sample     int
	downW      int
	downH      int
	prevImage  []uint32 // snapshot of the previous DisposeNone/Unspecified composite
	firstFrameTransparent bool
}

// composite renders frameIdx's indexed pixels into dst (len == downW*downH),
// applying previous's disposal first. dst is the decoder's reused
// "main scratch" raster — composite does not allocate per call.
func (cs *compositeState) composite(cur, prev *Frame, frameIdx int, indexed []byte, dst []uint32) Status {
	h := cs.header

	active := cur.LCT
	if active == nil {
		active = h.GCT
	}
	if active == nil {
		return StatusFormatError
	}

	if cur.Transparency {
		var local [colorTableEntries]uint32
		local = *active
		local[cur.TransIndex] = 0
		active = &local
	}

	if prev == nil {
		for i := range dst {
			dst[i] = 0
		}
	} else if prev.Dispose != DisposeNone {
		switch prev.Dispose {
		case DisposeBackground:
			c := uint32(0)
			if !cur.Transparency {
				c = h.BGColor
				if cur.LCT != nil && int(h.BGIndex) == int(cur.TransIndex) {
					c = 0
				}
			} else if frameIdx == 0 {
				cs.firstFrameTransparent = true
			}
			cs.fillRect(dst, prev, c)
		case DisposePrevious:
			if cs.prevImage == nil {
				cs.fillRect(dst, prev, 0)
			} else {
				cs.copyRect(dst, prev)
			}
		}
	}

	downIH := cur.IH / cs.sample
	downIY := cur.IY / cs.sample
	downIW := cur.IW / cs.sample
	downIX := cur.IX / cs.sample

	isFirstFrame := frameIdx == 0
	pass, inc, iline := 1, 8, 0

	for i := 0; i < downIH; i++ {
		line := i
		if cur.Interlace {
			if iline >= downIH {
				pass++
				switch pass {
				case 2:
					iline = 4
				case 3:
					iline = 2
					inc = 4
				case 4:
					iline = 1
					inc = 2
				}
			}
			line = iline
			iline += inc
		}
		line += downIY
		if line < 0 || line >= cs.downH {
			continue
		}

		k := line * cs.downW
		dx := k + downIX
		dlim := dx + downIW
		if k+cs.downW < dlim {
			dlim = k + cs.downW
		}
		sx := i * cs.sample * cur.IW
		maxPos := sx + (dlim-dx)*cs.sample

		for dx < dlim {
			var color uint32
			if cs.sample == 1 {
				if sx >= 0 && sx < len(indexed) {
					color = active[indexed[sx]]
				}
			} else {
				color = averageColorsNear(indexed, active, sx, maxPos, cur.IW, cs.sample)
			}
			if color != 0 {
				dst[dx] = color
			} else if isFirstFrame {
				cs.firstFrameTransparent = true
			}
			sx += cs.sample
			dx++
		}
	}

	if cs.saveAsPrevious(cur) {
		if cs.prevImage == nil {
			cs.prevImage = make([]uint32, cs.downW*cs.downH)
		}
		copy(cs.prevImage, dst)
	}

	return StatusOK
}

func (cs *compositeState) saveAsPrevious(cur *Frame) bool {
	if !cs.header.hasDisposePrevious {
		return false
	}
	return cur.Dispose == DisposeUnspecified || cur.Dispose == DisposeNone
}

func (cs *compositeState) fillRect(dst []uint32, frame *Frame, color uint32) {
	downIH := frame.IH / cs.sample
	downIY := frame.IY / cs.sample
	downIW := frame.IW / cs.sample
	downIX := frame.IX / cs.sample
	topLeft := downIY*cs.downW + downIX
	bottomLeft := topLeft + downIH*cs.downW
	for left := topLeft; left < bottomLeft; left += cs.downW {
		right := left + downIW
		for p := left; p < right && p >= 0 && p < len(dst); p++ {
			dst[p] = color
		}
	}
}

func (cs *compositeState) copyRect(dst []uint32, frame *Frame) {
	downIH := frame.IH / cs.sample
	downIY := frame.IY / cs.sample
	downIW := frame.IW / cs.sample
	downIX := frame.IX / cs.sample
	topLeft := downIY * cs.downW
	for row := 0; row < downIH; row++ {
		base := topLeft + row*cs.downW + downIX
		for col := 0; col < downIW; col++ {
			p := base + col
			if p < 0 || p >= len(dst) || p >= len(cs.prevImage) {
				continue
			}
			dst[p] = cs.prevImage[p]
		}
	}
}

func averageColorsNear(indexed []byte, active *[colorTableEntries]uint32, pos, maxPos, frameIW, sample int) uint32 {
	var alphaSum, redSum, greenSum, blueSum, total uint32

	for i := pos; i < pos+sample && i < len(indexed) && i < maxPos; i++ {
		c := active[indexed[i]]
		if c != 0 {
			alphaSum += (c >> 24) & 0xFF
			redSum += (c >> 16) & 0xFF
			greenSum += (c >> 8) & 0xFF
			blueSum += c & 0xFF
			total++
		}
	}
	nextRow := pos + frameIW
	for i := nextRow; i < nextRow+sample && i < len(indexed) && i < maxPos; i++ {
		c := active[indexed[i]]
		if c != 0 {
			alphaSum += (c >> 24) & 0xFF
			redSum += (c >> 16) & 0xFF
			greenSum += (c >> 8) & 0xFF
			blueSum += c & 0xFF
			total++
		}
	}

	if total == 0 {
		return 0
	}
	return (alphaSum/total)<<24 | (redSum/total)<<16 | (greenSum/total)<<8 | (blueSum / total)
}
