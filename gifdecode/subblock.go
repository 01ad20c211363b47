package gifdecode

// subBlockReader reads GIF's length-prefixed, zero-terminated data
// sub-blocks (each up to 255 bytes) off a byteReader and hands the bytes
// back one at a time, refilling its scratch block on demand. Grounded on
// IllusionMan1212-gif-extractor-go/blockreader.go's blockReader, which does
// the same length-then-payload chunking against an io.Reader; here the
// source is an in-memory byteReader instead since the whole stream is
// always resident.
type subBlockReader struct {
	r       *byteReader
	scratch [256]byte
	n       int
	next    int
	done    bool
}

func newSubBlockReader(r *byteReader) *subBlockReader {
	return &subBlockReader{r: r}
}

// readBlock reads one length byte followed by exactly that many bytes into
// the scratch buffer, returning the length. A length of 0 is the
// terminator. ok is false only on a read failure (truncated stream); a
// clean terminator returns (0, true).
func (s *subBlockReader) readBlock() (n int, ok bool) {
	length, readOK := s.r.readU8()
	if !readOK {
		return 0, false
	}
	if length == 0 {
		return 0, true
	}
	if !s.r.readFull(s.scratch[:length]) {
		return 0, false
	}
	return int(length), true
}

// skipBlocks discards sub-blocks up to and including the terminator.
func (s *subBlockReader) skipBlocks() bool {
	for {
		length, ok := s.r.readU8()
		if !ok {
			return false
		}
		if length == 0 {
			return true
		}
		if !s.r.skip(int(length)) {
			return false
		}
	}
}

// fill loads the next non-empty sub-block into the scratch buffer for
// byte-at-a-time consumption by the LZW bit reader.
func (s *subBlockReader) fill() bool {
	if s.done {
		return false
	}
	n, ok := s.readBlock()
	if !ok {
		s.done = true
		return false
	}
	if n == 0 {
		s.done = true
		return false
	}
	s.n = n
	s.next = 0
	return true
}

// nextByte returns the next byte of sub-block payload, transparently
// crossing sub-block boundaries. ok is false once the terminator or a
// truncated stream is reached.
func (s *subBlockReader) nextByte() (byte, bool) {
	if s.next >= s.n {
		if !s.fill() {
			return 0, false
		}
	}
	b := s.scratch[s.next]
	s.next++
	return b, true
}
