package gifdecode

import "sync"

// Decoder is the façade spec §4.6 describes: parse once via Read, step the
// frame pointer forward with Advance, and pull the frame it now names with
// GetCurrentFrame. Advance only moves the pointer (and applies the loop
// budget); GetCurrentFrame is what decodes and composites — calling it more
// than once for the same pointer position is cheap, it only re-renders
// after Advance or SetFrameIndex moves the pointer. A Decoder is safe for
// concurrent use — all public methods take an internal mutex — but is a
// single-instance contract: two goroutines calling Advance concurrently
// will each get a distinct, valid frame, never a torn one, but the pair of
// calls race on *which* frame each one sees, same as the reference Java
// decoder this mirrors.
type Decoder struct {
	mu sync.Mutex

	provider BufferProvider

	header *Header
	raw    []byte
	status Status
	err    error

	framePointer int
	loopIndex    int32
	decodedFor   int // framePointer value last rendered into main, or -1

	sampleSize int
	downW      int
	downH      int

	indexed []byte
	main    []uint32 // persistent compositing scratch, reused across frames
	cs      compositeState
}

// New returns an empty Decoder bound to provider, which services every
// scratch allocation the Decoder needs (indexed-pixel buffers, the main
// compositing raster, and returned Rasters). Pass &NopProvider{} for a
// one-shot caller that has no use for pooling.
func New(provider BufferProvider) *Decoder {
	return &Decoder{
		provider:     provider,
		framePointer: -1,
		decodedFor:   -1,
		sampleSize:   1,
	}
}

// Read parses data as a GIF stream and resets all playback state. Frames
// are decompressed lazily, on GetCurrentFrame, not here; Read only runs
// the Header Parser. framePointer starts at -1, "before frame 0" — the
// first Advance moves it to frame 0.
func (d *Decoder) Read(data []byte) Status {
	return d.ReadSample(data, 1)
}

// ReadSample is Read with an explicit downsampling factor (spec §4.5's
// sample_size), rounded down to a power of two: 1 keeps full resolution;
// N>1 yields one output pixel per NxN block of source pixels, set to the
// average of the non-transparent colors among the N pixels that start the
// block's first source row. The block's other rows do not contribute.
func (d *Decoder) ReadSample(data []byte, sampleSize int) Status {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.releaseLocked()

	if sampleSize < 1 {
		sampleSize = 1
	}
	for sampleSize&(sampleSize-1) != 0 {
		sampleSize &= sampleSize - 1
	}
	d.sampleSize = sampleSize

	h := ParseHeader(data, ParseOptions{})
	d.header = h
	d.raw = data
	d.status = h.Status
	d.framePointer = -1
	d.loopIndex = 0
	d.decodedFor = -1

	if h.Status != StatusOK {
		d.err = h.Status.Err()
		return d.status
	}
	if len(h.Frames) == 0 {
		d.status = StatusFormatError
		d.err = ErrNoFrames
		return d.status
	}

	d.downW = d.header.Width / sampleSize
	d.downH = d.header.Height / sampleSize
	if d.downW < 1 {
		d.downW = 1
	}
	if d.downH < 1 {
		d.downH = 1
	}

	d.main = d.provider.ObtainInts(d.downW * d.downH)
	for i := range d.main {
		d.main[i] = 0
	}
	d.cs = compositeState{header: h, sample: sampleSize, downW: d.downW, downH: d.downH}

	d.err = nil
	return d.status
}

// Advance moves framePointer to the next frame, wrapping to 0 and
// incrementing LoopIndex whenever it wraps. It returns false, leaving the
// pointer unchanged, once LoopCount is not LoopForever and the wrap would
// push LoopIndex past it, or when no Read has parsed any frames. Advance does not
// decode or composite anything; call GetCurrentFrame to render the frame
// the pointer now names.
func (d *Decoder) Advance() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.header == nil || len(d.header.Frames) == 0 {
		return false
	}

	frameCount := len(d.header.Frames)
	loopIndex := d.loopIndex
	if d.framePointer == frameCount-1 {
		loopIndex++
	}
	if d.header.LoopCount != LoopForever && loopIndex > d.header.LoopCount {
		return false
	}

	d.loopIndex = loopIndex
	d.framePointer = (d.framePointer + 1) % frameCount
	return true
}

// GetCurrentFrame decodes and composites the frame framePointer currently
// names — unless it was already rendered by an earlier call and the
// pointer hasn't moved since — and copies the result into a freshly
// obtained Raster. The caller owns the returned Raster and must return it
// to the same BufferProvider via ReleaseRaster when done. Calling this
// before the first Advance (pointer still at -1) returns a nil Raster and
// StatusFormatError, per spec. Once the status is StatusFormatError or
// StatusOpenError it is sticky: every later call returns a nil Raster and
// that status.
func (d *Decoder) GetCurrentFrame() (*Raster, Status) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.main == nil || d.header == nil {
		st := d.status.orOpenError()
		d.err = st.Err()
		return nil, st
	}
	if d.framePointer < 0 {
		d.status = StatusFormatError
		d.err = ErrFormat
		return nil, StatusFormatError
	}
	if d.status == StatusFormatError || d.status == StatusOpenError {
		d.err = d.status.Err()
		return nil, d.status
	}

	if d.status == StatusPartialDecode {
		d.status = StatusOK
	}

	if d.decodedFor != d.framePointer {
		cur := d.header.Frames[d.framePointer]
		var prev *Frame
		if d.framePointer > 0 {
			prev = d.header.Frames[d.framePointer-1]
		}

		if cur.missingColorTable {
			d.status = StatusFormatError
		} else {
			need := cur.IW * cur.IH
			if cap(d.indexed) < need {
				if d.indexed != nil {
					d.provider.ReleaseBytes(d.indexed)
				}
				d.indexed = d.provider.ObtainBytes(need)
			} else {
				d.indexed = d.indexed[:need]
			}
			st := decodeLZW(d.raw, cur, d.indexed)
			if st != StatusOK {
				d.status = st
			}
			cst := d.cs.composite(cur, prev, d.framePointer, d.indexed, d.main)
			if cst != StatusOK && d.status == StatusOK {
				d.status = cst
			}
		}
		d.decodedFor = d.framePointer
	}

	d.err = d.status.Err()
	r := d.provider.ObtainRaster(d.downW, d.downH, FormatARGB8888)
	copy(r.Pix, d.main)
	return r, d.status
}

// Delay returns the i'th frame's hold time in milliseconds, or -1 if i is
// out of range.
func (d *Decoder) Delay(i int) int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.header == nil || i < 0 || i >= len(d.header.Frames) {
		return -1
	}
	return int32(d.header.Frames[i].DelayMs)
}

// NextDelay is Delay(CurrentFrameIndex()).
func (d *Decoder) NextDelay() int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.header == nil || d.framePointer < 0 || d.framePointer >= len(d.header.Frames) {
		return -1
	}
	return int32(d.header.Frames[d.framePointer].DelayMs)
}

func (d *Decoder) FrameCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.header == nil {
		return 0
	}
	return len(d.header.Frames)
}

func (d *Decoder) CurrentFrameIndex() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.framePointer
}

func (d *Decoder) LoopCount() int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.header == nil {
		return 0
	}
	return d.header.LoopCount
}

func (d *Decoder) LoopIndex() int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loopIndex
}

// SetFrameIndex jumps playback directly to frame i, or to -1 ("before
// frame 0", the same state Read leaves it in), without decoding anything;
// the next GetCurrentFrame call decodes/composites frame i. Returns false
// if i is out of range.
func (d *Decoder) SetFrameIndex(i int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.header == nil || i < -1 || i >= len(d.header.Frames) {
		d.err = ErrBadFramePtr
		return false
	}
	d.framePointer = i
	d.err = nil
	return true
}

// ResetFrameIndex rewinds playback as if Read had just succeeded: the
// pointer returns to -1, so the next Advance moves it to frame 0.
func (d *Decoder) ResetFrameIndex() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.framePointer = -1
}

func (d *Decoder) ResetLoopIndex() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.loopIndex = 0
}

// Width and Height report the logical screen size declared by the header
// — never the downsampled render size.
func (d *Decoder) Width() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.header == nil {
		return 0
	}
	return d.header.Width
}

func (d *Decoder) Height() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.header == nil {
		return 0
	}
	return d.header.Height
}

// ByteSize estimates the Decoder's current live memory: the retained raw
// stream plus its scratch buffers.
func (d *Decoder) ByteSize() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.raw) + len(d.indexed) + len(d.main)*4
}

// Err returns the sentinel error matching the Decoder's last operation —
// ErrOpen/ErrFormat/ErrPartialDecode mirroring Status, or ErrNoFrames /
// ErrBadFramePtr for the cases Status alone can't distinguish — for
// callers that prefer an idiomatic Go error over polling Status directly.
// Only Read/ReadSample, GetCurrentFrame, SetFrameIndex and Clear update it;
// it is nil when the last of those calls succeeded.
func (d *Decoder) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Clear releases every scratch buffer back to the provider and drops the
// parsed header; the Decoder is left ready for a new Read.
func (d *Decoder) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.releaseLocked()
}

func (d *Decoder) releaseLocked() {
	if d.indexed != nil {
		d.provider.ReleaseBytes(d.indexed)
		d.indexed = nil
	}
	if d.main != nil {
		d.provider.ReleaseInts(d.main)
		d.main = nil
	}
	d.header = nil
	d.raw = nil
	d.status = StatusOK
	d.err = nil
	d.framePointer = -1
	d.loopIndex = 0
	d.decodedFor = -1
}

func (s Status) orOpenError() Status {
	if s == StatusOK {
		return StatusOpenError
	}
	return s
}
