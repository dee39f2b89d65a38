// bmp package implements a codec for uncompressed 24-bit and 32-bit
// bitmaps, built around a flat stride-addressed pixel buffer.
package bmp

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/anas-shakeel/bmpfx/internal/utils"
)

// Image is a decoded bitmap. Data holds exactly Stride*height bytes, rows
// stored bottom-up, each row left-to-right, channels in BMP's native
// B,G,R[,A] order. The alignment padding at the end of each row stays inside
// the buffer so that row y always starts at Data[Stride*y].
type Image struct {
	FileHeader FileHeader
	InfoHeader InfoHeader
	ColorMask  *ColorMaskHeader // only set for 32-bit images
	Channels   int              // bytes per pixel (3 or 4)
	Stride     int              // bytes per row, including alignment padding
	Data       []byte
}

// rowStride returns the padded byte width of a pixel row: the unpadded width
// rounded up to the next multiple of 4.
func rowStride(width, channels int) int {
	return ((width*channels + 3) / 4) * 4
}

// Decode sizes its buffer from header fields it has not verified against the
// stream yet, so the declared dimensions are capped at values no real
// uncompressed bitmap exceeds before anything is allocated.
const (
	maxDimension  = 1 << 20 // pixels per side
	maxPixelBytes = 1 << 30 // total buffer size
)

func (b *Image) Width() int  { return int(b.InfoHeader.Width) }
func (b *Image) Height() int { return int(b.InfoHeader.Height) }

// Padding returns the number of alignment bytes at the end of each row.
func (b *Image) Padding() int {
	return b.Stride - b.Width()*b.Channels
}

// Pixel returns the channel slice of the pixel at column x and buffer row y
// (row 0 is the visual bottom). The slice is capped to Channels bytes, so a
// write through it can never spill into the neighboring pixel or row.
func (b *Image) Pixel(x, y int) []byte {
	off := y*b.Stride + x*b.Channels
	return b.Data[off : off+b.Channels : off+b.Channels]
}

// Row returns buffer row y without its alignment padding.
func (b *Image) Row(y int) []byte {
	off := y * b.Stride
	return b.Data[off : off+b.Width()*b.Channels]
}

// New creates a blank canonical bitmap (24 or 32 bits per pixel).
func New(width, height, bitCount int) (*Image, error) {
	if width <= 0 {
		return nil, errors.New("width must be greater than 0")
	} else if height <= 0 {
		return nil, errors.New("height must be greater than 0")
	}
	if bitCount != 24 && bitCount != 32 {
		return nil, fmt.Errorf("%w: got %d", ErrUnsupportedBitDepth, bitCount)
	}

	b := &Image{
		FileHeader: FileHeader{Type: [2]byte{'B', 'M'}},
		InfoHeader: InfoHeader{
			Width:    int32(width),
			Height:   int32(height),
			Planes:   1,
			BitCount: uint16(bitCount),
		},
	}
	if bitCount == 32 {
		b.ColorMask = &ColorMaskHeader{
			RedMask:        0x00ff0000,
			GreenMask:      0x0000ff00,
			BlueMask:       0x000000ff,
			AlphaMask:      0xff000000,
			ColorSpaceType: srgbColorSpace,
		}
	}
	b.UpdateMeta()
	b.Data = make([]byte, b.Stride*height)
	return b, nil
}

// Decode reads a bitmap from the stream. Only bottom-up, uncompressed
// images with 24 or 32 bits per pixel are accepted; 32-bit images must carry
// the color-mask header extension. Headers on the returned image are
// canonical (minimal layout, no gap before pixel data) regardless of quirks
// in the source bytes.
func Decode(r io.Reader) (*Image, error) {
	if r == nil {
		return nil, ErrUnreadableStream
	}

	// Read File Header
	var fh FileHeader
	if err := binary.Read(r, binary.LittleEndian, &fh); err != nil {
		return nil, readErr(err)
	}
	if fh.Type[0] != 'B' || fh.Type[1] != 'M' {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidSignature, fh.Type[:])
	}

	// Read Info Header OR (more commonly) DIB Header!
	var ih InfoHeader
	if err := binary.Read(r, binary.LittleEndian, &ih); err != nil {
		return nil, readErr(err)
	}
	switch {
	case ih.Planes != 1:
		return nil, fmt.Errorf("%w: %d color planes", ErrUnsupportedFormat, ih.Planes)
	case ih.Compression != 0:
		return nil, fmt.Errorf("%w: compression method %d", ErrUnsupportedFormat, ih.Compression)
	case ih.Height < 0:
		return nil, fmt.Errorf("%w: top-down row order", ErrUnsupportedFormat)
	case ih.Width <= 0 || ih.Height == 0:
		return nil, fmt.Errorf("%w: %dx%d pixels", ErrUnsupportedFormat, ih.Width, ih.Height)
	case ih.Width > maxDimension || ih.Height > maxDimension:
		return nil, fmt.Errorf("%w: %dx%d pixels", ErrUnsupportedFormat, ih.Width, ih.Height)
	}

	var cm *ColorMaskHeader
	headerBytes := uint32(fileHeaderLen + infoHeaderLen)
	switch ih.BitCount {
	case 24:
		// no extension
	case 32:
		if ih.Size < infoHeaderLen+colorMaskLen {
			return nil, fmt.Errorf("%w: info header is only %d bytes", ErrMissingColorMask, ih.Size)
		}
		cm = new(ColorMaskHeader)
		if err := binary.Read(r, binary.LittleEndian, cm); err != nil {
			return nil, readErr(err)
		}
		headerBytes += colorMaskLen
	default:
		return nil, fmt.Errorf("%w: got %d", ErrUnsupportedBitDepth, ih.BitCount)
	}

	// Skip to the pixel array. Files may leave a gap between the headers and
	// OffBits (an unread palette, a longer DIB header tail), but the offset
	// can never point back inside the headers.
	gap := int64(fh.OffBits) - int64(headerBytes)
	if gap < 0 {
		return nil, fmt.Errorf("%w: pixel data offset %d inside the headers", ErrUnsupportedFormat, fh.OffBits)
	}
	if gap > 0 {
		if _, err := io.CopyN(io.Discard, r, gap); err != nil {
			return nil, readErr(err)
		}
	}

	width := int(ih.Width)
	height := int(ih.Height)
	channels := int(ih.BitCount) / 8
	stride := rowStride(width, channels)
	if int64(stride)*int64(height) > maxPixelBytes {
		return nil, fmt.Errorf("%w: pixel buffer would need %d bytes", ErrUnsupportedFormat, int64(stride)*int64(height))
	}
	data := make([]byte, stride*height)

	if width%4 == 0 {
		// Padded and unpadded rows coincide, so the whole pixel block can be
		// read as one contiguous extent.
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, readErr(err)
		}
	} else {
		unpadded := width * channels
		pad := int64(stride - unpadded)
		for y := 0; y < height; y++ {
			if _, err := io.ReadFull(r, data[y*stride:y*stride+unpadded]); err != nil {
				return nil, readErr(err)
			}
			if _, err := io.CopyN(io.Discard, r, pad); err != nil {
				return nil, readErr(err)
			}
		}
	}

	b := &Image{
		FileHeader: fh,
		InfoHeader: ih,
		ColorMask:  cm,
		Channels:   channels,
		Stride:     stride,
		Data:       data,
	}
	b.UpdateMeta()
	return b, nil
}

// Encode writes the bitmap to the stream. The image is read-only to Encode;
// padding bytes are written as zeros whatever the buffer holds.
func Encode(w io.Writer, b *Image) error {
	if w == nil {
		return ErrUnwritableStream
	}

	// Create a buffer (to reduce syscalls)
	bw := bufio.NewWriter(w)

	switch b.InfoHeader.BitCount {
	case 32:
		if b.ColorMask == nil {
			return fmt.Errorf("%w: image carries none", ErrMissingColorMask)
		}
		if err := writeHeaders(bw, b); err != nil {
			return err
		}
		// Buffer rows are already stride-padded.
		if _, err := bw.Write(b.Data); err != nil {
			return writeErr(err)
		}

	case 24:
		if err := writeHeaders(bw, b); err != nil {
			return err
		}
		width := b.Width()
		if width%4 == 0 {
			if _, err := bw.Write(b.Data); err != nil {
				return writeErr(err)
			}
		} else {
			unpadded := width * b.Channels
			padding := make([]byte, b.Stride-unpadded)
			for y := 0; y < b.Height(); y++ {
				if _, err := bw.Write(b.Data[y*b.Stride : y*b.Stride+unpadded]); err != nil {
					return writeErr(err)
				}
				if _, err := bw.Write(padding); err != nil {
					return writeErr(err)
				}
			}
		}

	default:
		return fmt.Errorf("%w: got %d", ErrUnsupportedBitDepth, b.InfoHeader.BitCount)
	}

	if err := bw.Flush(); err != nil {
		return writeErr(err)
	}
	return nil
}

func writeHeaders(w io.Writer, b *Image) error {
	if err := binary.Write(w, binary.LittleEndian, &b.FileHeader); err != nil {
		return writeErr(err)
	}
	if err := binary.Write(w, binary.LittleEndian, &b.InfoHeader); err != nil {
		return writeErr(err)
	}
	if b.InfoHeader.BitCount == 32 {
		if err := binary.Write(w, binary.LittleEndian, b.ColorMask); err != nil {
			return writeErr(err)
		}
	}
	return nil
}

// readErr maps stream failures onto the decode taxonomy: short reads are a
// truncated file, anything else is an unusable stream.
func readErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %v", ErrTruncatedStream, err)
	}
	return fmt.Errorf("%w: %v", ErrUnreadableStream, err)
}

func writeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrUnwritableStream, err)
}

// UpdateMeta recomputes the derived fields and canonical header values from
// the current width, height and bit depth: minimal header sizes, pixel data
// immediately after the headers, file size covering the padded buffer.
func (b *Image) UpdateMeta() {
	width := b.Width()
	height := b.Height()
	b.Channels = int(b.InfoHeader.BitCount) / 8
	b.Stride = rowStride(width, b.Channels)

	b.InfoHeader.Size = infoHeaderLen
	b.FileHeader.OffBits = fileHeaderLen + infoHeaderLen
	if b.InfoHeader.BitCount == 32 {
		b.InfoHeader.Size += colorMaskLen
		b.FileHeader.OffBits += colorMaskLen
	}
	b.InfoHeader.SizeImage = uint32(b.Stride * height)
	b.FileHeader.Size = b.FileHeader.OffBits + uint32(b.Stride*height)
}

// Clone returns a deep copy of the image.
func (b *Image) Clone() *Image {
	out := *b
	if b.ColorMask != nil {
		cm := *b.ColorMask
		out.ColorMask = &cm
	}
	out.Data = make([]byte, len(b.Data))
	copy(out.Data, b.Data)
	return &out
}

// Channel returns a copy of the image with every color channel except the
// requested one zeroed. channel can be one of (`red`, `green`, and `blue`);
// alpha is left alone on 32-bit images.
func (b *Image) Channel(channel string) (*Image, error) {
	out := b.Clone()
	for y := 0; y < out.Height(); y++ {
		for x := 0; x < out.Width(); x++ {
			p := out.Pixel(x, y)
			switch channel {
			case "red":
				p[0], p[1] = 0, 0
			case "green":
				p[0], p[2] = 0, 0
			case "blue":
				p[1], p[2] = 0, 0
			default:
				return nil, errors.New("invalid color channel: only red, green, and blue are supported")
			}
		}
	}
	return out, nil
}

// Metadata returns the image metadata in human-readable form.
func (b *Image) Metadata() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Filesize: \t%v bytes\n", b.FileHeader.Size)
	fmt.Fprintf(&sb, "Width: \t\t%v px\n", b.Width())
	fmt.Fprintf(&sb, "Height: \t%v px\n", b.Height())
	fmt.Fprintf(&sb, "BitCount: \t%vbits\n", b.InfoHeader.BitCount)
	fmt.Fprintf(&sb, "PixelOffset: \t%v bytes\n", b.FileHeader.OffBits)
	fmt.Fprintf(&sb, "PixelCount: \t%v pixels\n", b.Width()*b.Height())
	fmt.Fprintf(&sb, "Stride: \t%v bytes\n", b.Stride)
	fmt.Fprintf(&sb, "Padding: \t%v bytes\n", b.Padding())
	return sb.String()
}

// Preview renders the bitmap in the terminal. Use for small images only
func (b *Image) Preview(w io.Writer) {
	for y := b.Height() - 1; y >= 0; y-- {
		for x := 0; x < b.Width(); x++ {
			p := b.Pixel(x, y)
			fmt.Fprint(w, utils.ColoredBlock("  ", int(p[2]), int(p[1]), int(p[0])))
		}
		fmt.Fprintln(w)
	}
}
