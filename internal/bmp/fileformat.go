// BMP-specific structs and types
package bmp

// On-disk header sizes and the canonical pixel-data offsets derived from
// them. A 32-bit image always carries the color-mask extension, so its info
// header totals infoHeaderLen+colorMaskLen bytes.
const (
	fileHeaderLen = 14
	infoHeaderLen = 40
	colorMaskLen  = 68
)

// sRGB color-space tag ("sRGB" as a little-endian uint32).
const srgbColorSpace = 0x73524742

// The FileHeader structure contains information about the type, size,
// and layout of a file that contains a DIB [device-independent bitmap].
// https://learn.microsoft.com/en-us/windows/win32/api/wingdi/ns-wingdi-bitmapfileheader

type FileHeader struct {
	Type      [2]byte // The file type: must be 0x4d42 (ASCII string "BM").
	Size      uint32  // The size, in bytes, of the bitmap file.
	Reserved1 uint16  // Reserved; must be zero.
	Reserved2 uint16  // Reserved; must be zero.
	OffBits   uint32  // Bitmap File Offset (In bytes) to Pixel Arrays
}

// The InfoHeader structure contains information about the
// dimensions and color format of DIB [device-independent bitmap].

type InfoHeader struct {
	Size            uint32 // The number of bytes required by the structure.
	Width           int32  // The width of the bitmap, in pixels.
	Height          int32  // The height of the bitmap, in pixels (negative = top-down).
	Planes          uint16 // The number of planes for the target device. Always 1.
	BitCount        uint16 // The number of bits-per-pixel.
	Compression     uint32 // The type of compression. 0 = uncompressed.
	SizeImage       uint32 // The size of the image (in bytes).
	XPixelsPerM     int32  // The horizontal resolution, in pixels-per-meter.
	YPixelsPerM     int32  // The vertical resolution, in pixels-per-meter.
	ColorsUsed      uint32 // Number of color indexes that are actually used by bitmap.
	ColorsImportant uint32 // Number of color indexes required for displaying the bitmap.
}

// The ColorMaskHeader extension follows the InfoHeader in 32-bit bitmaps and
// describes which bits of a pixel belong to which channel.

type ColorMaskHeader struct {
	RedMask        uint32 // Bit mask for the red channel.
	GreenMask      uint32 // Bit mask for the green channel.
	BlueMask       uint32 // Bit mask for the blue channel.
	AlphaMask      uint32 // Bit mask for the alpha channel.
	ColorSpaceType uint32 // Color space, "sRGB" for images produced here.
	Unused         [12]uint32
}
