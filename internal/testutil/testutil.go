// Package testutil holds GIF fixture builders shared by the gifdecode and
// cmd/gifcore-probe test suites.
package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
)

// MakeAnimatedGIF encodes a small two-frame animated GIF via the standard
// library's own encoder, covering the parts of GIF89a it can produce:
// a global color table, per-frame delay and disposal, no transparency.
func MakeAnimatedGIF() []byte {
	pal := color.Palette{color.Black, color.White}
	frame1 := image.NewPaletted(image.Rect(0, 0, 2, 2), pal)
	frame2 := image.NewPaletted(image.Rect(0, 0, 2, 2), pal)
	frame1.SetColorIndex(0, 0, 1)
	frame2.SetColorIndex(1, 1, 1)

	g := &gif.GIF{
		Image:    []*image.Paletted{frame1, frame2},
		Delay:    []int{5, 7},
		Disposal: []byte{gif.DisposalNone, gif.DisposalBackground},
		Config: image.Config{
			Width:      2,
			Height:     2,
			ColorModel: pal,
		},
	}
	var buf bytes.Buffer
	_ = gif.EncodeAll(&buf, g)
	return buf.Bytes()
}

// MakeStaticGIF encodes a single-frame, non-animated GIF.
func MakeStaticGIF() []byte {
	pal := color.Palette{color.Black, color.White, color.RGBA{R: 255, A: 255}}
	frame := image.NewPaletted(image.Rect(0, 0, 4, 3), pal)
	for x := 0; x < 4; x++ {
		frame.SetColorIndex(x, 0, uint8(x%3))
	}
	g := &gif.GIF{
		Image: []*image.Paletted{frame},
		Delay: []int{0},
		Config: image.Config{
			Width:      4,
			Height:     3,
			ColorModel: pal,
		},
	}
	var buf bytes.Buffer
	_ = gif.EncodeAll(&buf, g)
	return buf.Bytes()
}

// MakeLoopingGIF encodes an animated GIF with an explicit NETSCAPE2.0
// loop count (0 = loop forever), which image/gif.EncodeAll writes for
// every multi-frame GIF whose LoopCount is not negative (so MakeAnimatedGIF,
// which leaves LoopCount at 0, also carries one).
func MakeLoopingGIF(loopCount int) []byte {
	pal := color.Palette{color.Black, color.White}
	frame1 := image.NewPaletted(image.Rect(0, 0, 2, 2), pal)
	frame2 := image.NewPaletted(image.Rect(0, 0, 2, 2), pal)
	frame1.SetColorIndex(0, 0, 1)
	frame2.SetColorIndex(1, 1, 1)

	g := &gif.GIF{
		Image:     []*image.Paletted{frame1, frame2},
		Delay:     []int{5, 5},
		Disposal:  []byte{gif.DisposalNone, gif.DisposalNone},
		LoopCount: loopCount,
		Config: image.Config{
			Width:      2,
			Height:     2,
			ColorModel: pal,
		},
	}
	var buf bytes.Buffer
	_ = gif.EncodeAll(&buf, g)
	return buf.Bytes()
}
