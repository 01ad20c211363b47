package gifdecode

import "sync"

// BufferProvider is the pluggable pooling allocator for the core's large
// scratch arrays and output rasters (spec §5/§6). A decoder never retains a
// Raster once it has released it back through this interface.
type BufferProvider interface {
	ObtainBytes(size int) []byte
	ReleaseBytes(b []byte)
	ObtainInts(size int) []uint32
	ReleaseInts(v []uint32)
	ObtainRaster(w, h int, format Format) *Raster
	ReleaseRaster(r *Raster)
}

// NopProvider always allocates fresh buffers and discards on release. It is
// the simplest correct BufferProvider, useful for tests and for one-shot
// callers (a CLI process) that gain nothing from pooling.
type NopProvider struct{}

func (NopProvider) ObtainBytes(size int) []byte { return make([]byte, size) }
func (NopProvider) ReleaseBytes([]byte)          {}
func (NopProvider) ObtainInts(size int) []uint32 { return make([]uint32, size) }
func (NopProvider) ReleaseInts([]uint32)         {}
func (NopProvider) ObtainRaster(w, h int, format Format) *Raster {
	return &Raster{Pix: make([]uint32, w*h), Width: w, Height: h, Format: format}
}
func (NopProvider) ReleaseRaster(*Raster) {}

// PoolProvider pools byte slices, int slices, and rasters behind
// sync.Pool, grounded on the teacher's pngPool sync.Pool
// (gifdecode/decode.go in _examples/steipete-gifgrep): get, reset the
// reusable state, use, put back.
type PoolProvider struct {
	bytesPool  sync.Pool
	intsPool   sync.Pool
	rasterPool sync.Pool
}

func NewPoolProvider() *PoolProvider {
	return &PoolProvider{}
}

func (p *PoolProvider) ObtainBytes(size int) []byte {
	if v := p.bytesPool.Get(); v != nil {
		b := v.([]byte)
		if cap(b) >= size {
			return b[:size]
		}
	}
	return make([]byte, size)
}

func (p *PoolProvider) ReleaseBytes(b []byte) {
	p.bytesPool.Put(b[:0])
}

func (p *PoolProvider) ObtainInts(size int) []uint32 {
	if v := p.intsPool.Get(); v != nil {
		ints := v.([]uint32)
		if cap(ints) >= size {
			return ints[:size]
		}
	}
	return make([]uint32, size)
}

func (p *PoolProvider) ReleaseInts(v []uint32) {
	p.intsPool.Put(v[:0])
}

func (p *PoolProvider) ObtainRaster(w, h int, format Format) *Raster {
	size := w * h
	if v := p.rasterPool.Get(); v != nil {
		r := v.(*Raster)
		if cap(r.Pix) >= size {
			r.Pix = r.Pix[:size]
			r.Width, r.Height, r.Format = w, h, format
			return r
		}
	}
	return &Raster{Pix: make([]uint32, size), Width: w, Height: h, Format: format}
}

func (p *PoolProvider) ReleaseRaster(r *Raster) {
	if r == nil {
		return
	}
	r.Pix = r.Pix[:0]
	p.rasterPool.Put(r)
}
