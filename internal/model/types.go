// Package model holds the small, CLI-facing value types shared between
// cmd/gifcore-probe's subcommands. It deliberately knows nothing about
// gifdecode internals beyond the exported Header/Frame shapes.
package model

const AppName = "gifcore-probe"

const Tagline = "Inspect and render GIF89a frames from the command line."

var Version = "0.1.0"

// FrameRow is one line of an inspect table: derived entirely from a
// gifdecode.Frame, never persisted.
type FrameRow struct {
	Index        int    `json:"index"`
	OffsetBytes  int    `json:"offset_bytes"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	DelayMs      uint32 `json:"delay_ms"`
	Disposal     string `json:"disposal"`
	Transparent  bool   `json:"transparent"`
	Interlaced   bool   `json:"interlaced"`
}

// Summary is the header-level report inspect prints (and, with --json,
// marshals directly).
type Summary struct {
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	FrameCount int        `json:"frame_count"`
	LoopCount  int32      `json:"loop_count"`
	ByteSize   int        `json:"byte_size"`
	Status     string     `json:"status"`
	Frames     []FrameRow `json:"frames"`
}

// Options carries the globals every subcommand shares: color policy and
// verbosity, same shape as a one-process CLI tool needs, nothing more.
type Options struct {
	Color   string
	Verbose int
	Quiet   bool
	Reveal  bool
}
