package gifdecode

import "errors"

// Status mirrors the sticky/non-sticky error taxonomy a caller polls after
// each operation instead of a returned error: the core never panics or
// returns an error across advance/get-current-frame, it just sets a status.
type Status uint8

const (
	StatusOK Status = iota
	StatusFormatError
	StatusOpenError
	StatusPartialDecode
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusFormatError:
		return "FORMAT_ERROR"
	case StatusOpenError:
		return "OPEN_ERROR"
	case StatusPartialDecode:
		return "PARTIAL_DECODE"
	default:
		return "UNKNOWN"
	}
}

// Sentinel errors for callers that prefer the idiomatic Go error path (the
// CLI inspector, tests) over polling Status directly.
var (
	ErrOpen          = errors.New("gifdecode: empty input or bad signature")
	ErrFormat        = errors.New("gifdecode: malformed GIF stream")
	ErrPartialDecode = errors.New("gifdecode: truncated LZW stream")
	ErrNoFrames      = errors.New("gifdecode: no frames")
	ErrBadFramePtr   = errors.New("gifdecode: frame pointer out of range")
)

// Err returns the sentinel error matching s, or nil for StatusOK.
func (s Status) Err() error {
	switch s {
	case StatusOpenError:
		return ErrOpen
	case StatusFormatError:
		return ErrFormat
	case StatusPartialDecode:
		return ErrPartialDecode
	default:
		return nil
	}
}
