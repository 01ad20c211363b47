package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gifrender/gifcore/gifdecode"
	"github.com/gifrender/gifcore/internal/model"
	"github.com/gifrender/gifcore/internal/reveal"
)

type CLI struct {
	Globals Globals `embed:""`

	Inspect InspectCmd `cmd:"" help:"Parse a GIF's header and print a frame table."`
	Frame   FrameCmd   `cmd:"" help:"Render one frame and write it as PNG."`
}

type Globals struct {
	Color   string           `help:"Color output." enum:"auto,always,never" default:"auto"`
	Verbose int              `help:"Verbose stderr logs (-vv for more)." short:"v" type:"counter"`
	Quiet   bool             `help:"Suppress non-essential stderr output." short:"q"`
	Version kong.VersionFlag `help:"Show version."`
}

func (g Globals) toOptions() model.Options {
	return model.Options{
		Color:   g.Color,
		Verbose: g.Verbose,
		Quiet:   g.Quiet,
	}
}

type InspectCmd struct {
	Path string `arg:"" name:"path" help:"GIF file path, or - for stdin."`
	JSON bool   `help:"Emit a JSON summary instead of a table."`
}

func (c *InspectCmd) Run(ctx *kong.Context, cli *CLI) error {
	opts := cli.Globals.toOptions()
	data, err := readInput(c.Path)
	if err != nil {
		return err
	}

	header := gifdecode.ParseHeader(data, gifdecode.ParseOptions{})
	summary := buildSummary(header, len(data))

	if c.JSON {
		enc := json.NewEncoder(ctx.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	useColor := shouldUseColor(opts, ctx.Stdout)
	printSummary(ctx.Stdout, summary, useColor)
	if header.Status != gifdecode.StatusOK {
		return fmt.Errorf("gifcore-probe: %w", header.Status.Err())
	}
	return nil
}

type FrameCmd struct {
	Path   string `arg:"" name:"path" help:"GIF file path, or - for stdin."`
	Index  int    `arg:"" name:"index" help:"Zero-based frame index to render."`
	Sample int    `help:"Downsampling factor (1 = full resolution)." default:"1"`
	Output string `help:"Output path or '-' for stdout." short:"o" default:"frame.png"`
	Reveal bool   `help:"Reveal the written file in the OS file manager."`
}

func (c *FrameCmd) Run(ctx *kong.Context, cli *CLI) error {
	opts := cli.Globals.toOptions()
	data, err := readInput(c.Path)
	if err != nil {
		return err
	}

	dec := gifdecode.New(gifdecode.NewPoolProvider())
	if st := dec.ReadSample(data, c.Sample); st != gifdecode.StatusOK {
		return fmt.Errorf("gifcore-probe: %w", dec.Err())
	}
	if c.Index < 0 || c.Index >= dec.FrameCount() {
		return fmt.Errorf("gifcore-probe: %w: index %d (0..%d)", gifdecode.ErrBadFramePtr, c.Index, dec.FrameCount()-1)
	}
	if !dec.SetFrameIndex(c.Index) {
		return fmt.Errorf("gifcore-probe: %w", dec.Err())
	}
	raster, st := dec.GetCurrentFrame()
	if st != gifdecode.StatusOK && st != gifdecode.StatusPartialDecode {
		return fmt.Errorf("gifcore-probe: %w", dec.Err())
	}

	img := rasterToImage(raster)
	if err := writePNG(c.Output, img, ctx.Stdout); err != nil {
		return err
	}

	if opts.Reveal || c.Reveal {
		if c.Output != "-" {
			return reveal.Reveal(c.Output)
		}
	}
	return nil
}

func buildSummary(h *gifdecode.Header, byteSize int) model.Summary {
	s := model.Summary{
		Width:      h.Width,
		Height:     h.Height,
		FrameCount: len(h.Frames),
		LoopCount:  h.LoopCount,
		ByteSize:   byteSize,
		Status:     h.Status.String(),
	}
	for i, f := range h.Frames {
		s.Frames = append(s.Frames, model.FrameRow{
			Index:       i,
			OffsetBytes: f.BufferFrameStart,
			Width:       f.IW,
			Height:      f.IH,
			DelayMs:     f.DelayMs,
			Disposal:    f.Dispose.String(),
			Transparent: f.Transparency,
			Interlaced:  f.Interlace,
		})
	}
	return s
}

func printSummary(w io.Writer, s model.Summary, useColor bool) {
	p := message.NewPrinter(language.English)
	title := fmt.Sprintf("%dx%d, %s frame(s), loop=%d, %s", s.Width, s.Height, p.Sprintf("%d", s.FrameCount), s.LoopCount, humanize.Bytes(uint64(s.ByteSize)))
	if useColor {
		title = "\x1b[1m" + title + "\x1b[0m"
	}
	_, _ = fmt.Fprintln(w, title)
	if s.Status != gifdecode.StatusOK.String() {
		status := s.Status
		if useColor {
			status = "\x1b[31m" + status + "\x1b[0m"
		}
		_, _ = fmt.Fprintln(w, "status:", status)
	}
	for _, row := range s.Frames {
		idx := p.Sprintf("%d", row.Index)
		if useColor {
			idx = "\x1b[36m" + idx + "\x1b[0m"
		}
		_, _ = fmt.Fprintf(w, "  %s\toffset=%d\t%dx%d\tdelay=%dms\tdispose=%s\ttransparent=%v\tinterlace=%v\n",
			idx, row.OffsetBytes, row.Width, row.Height, row.DelayMs, row.Disposal, row.Transparent, row.Interlaced)
	}
}

func shouldUseColor(opts model.Options, w io.Writer) bool {
	if opts.Color == "never" {
		return false
	}
	if opts.Color == "always" {
		return true
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if strings.ToLower(strings.TrimSpace(os.Getenv("TERM"))) == "dumb" {
		return false
	}
	return isTerminalWriter(w)
}
