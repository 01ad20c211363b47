package gifdecode

import (
	"testing"

	"github.com/gifrender/gifcore/internal/testutil"
)

func TestDecoderStaticGIFRoundTrip(t *testing.T) {
	dec := New(NopProvider{})
	data := testutil.MakeStaticGIF()
	if st := dec.Read(data); st != StatusOK {
		t.Fatalf("Read() = %v, want OK", st)
	}
	if dec.FrameCount() != 1 {
		t.Fatalf("FrameCount() = %d, want 1", dec.FrameCount())
	}
	if dec.Width() != 4 || dec.Height() != 3 {
		t.Fatalf("dims = %dx%d, want 4x3", dec.Width(), dec.Height())
	}
	if dec.CurrentFrameIndex() != -1 {
		t.Fatalf("CurrentFrameIndex() before any Advance = %d, want -1", dec.CurrentFrameIndex())
	}

	if !dec.Advance() {
		t.Fatalf("Advance() from the initial -1 pointer should move to frame 0 and return true")
	}
	raster, st := dec.GetCurrentFrame()
	if st != StatusOK {
		t.Fatalf("GetCurrentFrame() status = %v, want OK", st)
	}
	if raster == nil || raster.Width != 4 || raster.Height != 3 {
		t.Fatalf("raster = %+v, want 4x3", raster)
	}

	if dec.Advance() {
		t.Fatalf("Advance() past a single-frame GIF's one pass should return false")
	}
}

func TestDecoderGetCurrentFrameBeforeFirstAdvanceIsFormatError(t *testing.T) {
	dec := New(NopProvider{})
	if st := dec.Read(testutil.MakeStaticGIF()); st != StatusOK {
		t.Fatalf("Read() = %v, want OK", st)
	}
	raster, st := dec.GetCurrentFrame()
	if st != StatusFormatError {
		t.Fatalf("GetCurrentFrame() status = %v, want FormatError", st)
	}
	if raster != nil {
		t.Fatalf("GetCurrentFrame() raster = %+v, want nil", raster)
	}
}

func TestDecoderAnimatedGIFLoops(t *testing.T) {
	dec := New(NopProvider{})
	data := testutil.MakeAnimatedGIF()
	if st := dec.Read(data); st != StatusOK {
		t.Fatalf("Read() = %v, want OK", st)
	}
	if dec.FrameCount() != 2 {
		t.Fatalf("FrameCount() = %d, want 2", dec.FrameCount())
	}
	if dec.LoopCount() != LoopForever {
		t.Fatalf("LoopCount() = %d, want LoopForever", dec.LoopCount())
	}

	if !dec.Advance() {
		t.Fatalf("Advance() from the initial pointer should return true")
	}
	if dec.CurrentFrameIndex() != 0 {
		t.Fatalf("CurrentFrameIndex() = %d, want 0", dec.CurrentFrameIndex())
	}

	if !dec.Advance() {
		t.Fatalf("Advance() to frame 1 should return true")
	}
	if dec.CurrentFrameIndex() != 1 {
		t.Fatalf("CurrentFrameIndex() = %d, want 1", dec.CurrentFrameIndex())
	}
	if dec.LoopIndex() != 0 {
		t.Fatalf("LoopIndex() = %d, want 0 before wrapping", dec.LoopIndex())
	}

	if !dec.Advance() {
		t.Fatalf("Advance() wrapping back to frame 0 should return true")
	}
	if dec.CurrentFrameIndex() != 0 {
		t.Fatalf("CurrentFrameIndex() = %d, want 0 after wrap", dec.CurrentFrameIndex())
	}
	if dec.LoopIndex() != 1 {
		t.Fatalf("LoopIndex() = %d, want 1 after wrapping once", dec.LoopIndex())
	}
}

// TestDecoderFiniteLoopCountStopsAdvancing exercises spec §4.6/§8's loop
// budget: once loop_index would exceed an explicit, finite loop_count,
// Advance returns false and leaves the pointer where it was.
func TestDecoderFiniteLoopCountStopsAdvancing(t *testing.T) {
	dec := New(NopProvider{})
	data := testutil.MakeLoopingGIF(1)
	if st := dec.Read(data); st != StatusOK {
		t.Fatalf("Read() = %v, want OK", st)
	}
	if dec.LoopCount() != 1 {
		t.Fatalf("LoopCount() = %d, want 1", dec.LoopCount())
	}

	if !dec.Advance() { // -1 -> 0
		t.Fatalf("1st Advance() should return true")
	}
	if !dec.Advance() { // 0 -> 1
		t.Fatalf("2nd Advance() should return true")
	}
	if !dec.Advance() { // 1 -> wrap to 0, loop_index = 1 (still within budget)
		t.Fatalf("3rd Advance() (first wrap) should return true")
	}
	if dec.LoopIndex() != 1 {
		t.Fatalf("LoopIndex() = %d, want 1", dec.LoopIndex())
	}
	if !dec.Advance() { // 0 -> 1
		t.Fatalf("4th Advance() should return true")
	}
	if dec.Advance() { // 1 -> would wrap again, loop_index -> 2 > loop_count(1)
		t.Fatalf("5th Advance() should return false once the loop budget is exhausted")
	}
	if dec.CurrentFrameIndex() != 1 {
		t.Fatalf("CurrentFrameIndex() after budget exhaustion = %d, want 1 (pointer left unchanged)", dec.CurrentFrameIndex())
	}
}

func TestDecoderSetFrameIndexOutOfRange(t *testing.T) {
	dec := New(NopProvider{})
	data := testutil.MakeAnimatedGIF()
	if st := dec.Read(data); st != StatusOK {
		t.Fatalf("Read() = %v, want OK", st)
	}
	if dec.SetFrameIndex(5) {
		t.Fatalf("SetFrameIndex(5) on a 2-frame GIF should fail")
	}
	if !dec.SetFrameIndex(1) {
		t.Fatalf("SetFrameIndex(1) should succeed")
	}
	if dec.CurrentFrameIndex() != 1 {
		t.Fatalf("CurrentFrameIndex() = %d, want 1", dec.CurrentFrameIndex())
	}
}

func TestDecoderSetFrameIndexAcceptsNegativeOne(t *testing.T) {
	dec := New(NopProvider{})
	data := testutil.MakeAnimatedGIF()
	if st := dec.Read(data); st != StatusOK {
		t.Fatalf("Read() = %v, want OK", st)
	}
	dec.Advance()
	dec.Advance()
	if !dec.SetFrameIndex(-1) {
		t.Fatalf("SetFrameIndex(-1) should succeed, matching the initial pointer state")
	}
	if dec.CurrentFrameIndex() != -1 {
		t.Fatalf("CurrentFrameIndex() = %d, want -1", dec.CurrentFrameIndex())
	}
	if dec.SetFrameIndex(-2) {
		t.Fatalf("SetFrameIndex(-2) should fail")
	}
}

// TestDecoderSeekBackIsDeterministic exercises the boundary scenario
// where re-rendering an earlier frame after visiting a later one
// reproduces the same result: "previous" is always framePointer-1, not
// a record of render history.
func TestDecoderSeekBackIsDeterministic(t *testing.T) {
	data := testutil.MakeAnimatedGIF()

	fresh := New(NopProvider{})
	fresh.Read(data)
	fresh.Advance() // -1 -> 0
	freshRaster, _ := fresh.GetCurrentFrame()

	visited := New(NopProvider{})
	visited.Read(data)
	visited.Advance() // -1 -> 0
	visited.GetCurrentFrame()
	visited.Advance() // 0 -> 1
	visited.GetCurrentFrame()
	visited.Advance() // 1 -> wrap to 0
	visitedRaster, _ := visited.GetCurrentFrame()

	if len(freshRaster.Pix) != len(visitedRaster.Pix) {
		t.Fatalf("raster sizes differ: %d vs %d", len(freshRaster.Pix), len(visitedRaster.Pix))
	}
	for i := range freshRaster.Pix {
		if freshRaster.Pix[i] != visitedRaster.Pix[i] {
			t.Fatalf("pixel %d differs after a seek-back round trip: %#x vs %#x", i, freshRaster.Pix[i], visitedRaster.Pix[i])
		}
	}
}

func TestDecoderReadBadInput(t *testing.T) {
	dec := New(NopProvider{})
	if st := dec.Read([]byte("nope")); st != StatusOpenError {
		t.Fatalf("Read() = %v, want OpenError", st)
	}
	if dec.Err() != ErrOpen {
		t.Fatalf("Err() = %v, want ErrOpen", dec.Err())
	}
}

func TestDecoderClearResetsState(t *testing.T) {
	dec := New(NopProvider{})
	data := testutil.MakeAnimatedGIF()
	dec.Read(data)
	dec.Clear()
	if dec.FrameCount() != 0 {
		t.Fatalf("FrameCount() after Clear() = %d, want 0", dec.FrameCount())
	}
	if _, st := dec.GetCurrentFrame(); st != StatusOpenError {
		t.Fatalf("GetCurrentFrame() after Clear() = %v, want OpenError", st)
	}
}

func TestPoolProviderReusesBuffers(t *testing.T) {
	p := NewPoolProvider()
	b := p.ObtainBytes(16)
	for i := range b {
		b[i] = 0xFF
	}
	p.ReleaseBytes(b)
	b2 := p.ObtainBytes(8)
	if len(b2) != 8 {
		t.Fatalf("ObtainBytes(8) after release len = %d, want 8", len(b2))
	}
}
