package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/gifrender/gifcore/gifdecode"
)

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writePNG(path string, img image.Image, stdout io.Writer) error {
	if path == "-" {
		return png.Encode(stdout, img)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gifcore-probe: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("gifcore-probe: %w", err)
	}
	return f.Close()
}

func rasterToImage(r *gifdecode.Raster) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			argb := r.Pix[y*r.Width+x]
			a := byte(argb >> 24)
			c := color.NRGBA{R: byte(argb >> 16), G: byte(argb >> 8), B: byte(argb), A: a}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
