package bmp

import "errors"

// Decode failure kinds. Decode errors wrap exactly one of these sentinels,
// so callers can classify failures with errors.Is.
var (
	ErrUnreadableStream    = errors.New("bmp: stream is not readable")
	ErrInvalidSignature    = errors.New("bmp: invalid file signature")
	ErrTruncatedStream     = errors.New("bmp: truncated stream")
	ErrMissingColorMask    = errors.New("bmp: 32-bit image without color mask information")
	ErrUnsupportedBitDepth = errors.New("bmp: only 24-bit and 32-bit images are supported")
	ErrUnsupportedFormat   = errors.New("bmp: unsupported bitmap layout")
)

// Encode failure kinds. ErrUnsupportedBitDepth is shared with decode.
var ErrUnwritableStream = errors.New("bmp: stream is not writable")

// ErrBufferTooSmall is returned by transforms whose working window does not
// fit inside the image.
var ErrBufferTooSmall = errors.New("bmp: image too small for this transform")
