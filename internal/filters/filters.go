// Filters perform color manipulation and per-pixel operations
package filters

import (
	"fmt"

	"github.com/anas-shakeel/bmpfx/internal/bmp"
	"github.com/anas-shakeel/bmpfx/internal/utils"
)

// minSize rejects images whose buffer cannot hold the transform's working
// window.
func minSize(b *bmp.Image, min int) error {
	if len(b.Data) == 0 || b.Width() < min || b.Height() < min {
		return fmt.Errorf("%w: need at least %dx%d pixels", bmp.ErrBufferTooSmall, min, min)
	}
	return nil
}

// shadeLevels is the palette cell shading snaps to.
var shadeLevels = [3]byte{0, 128, 255}

// nearestLevel returns the shade level closest to v. Comparison is strict,
// so an exact tie keeps the earlier level.
func nearestLevel(v byte) byte {
	best := shadeLevels[0]
	min := 256
	for _, level := range shadeLevels {
		d := int(v) - int(level)
		if d < 0 {
			d = -d
		}
		if d < min {
			min = d
			best = level
		}
	}
	return best
}

// CellShade snaps every channel of every pixel to the nearest of 0, 128 and
// 255. This has the effect of making the image look hand-colored.
func CellShade(b *bmp.Image) error {
	if err := minSize(b, 1); err != nil {
		return err
	}
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			p := b.Pixel(x, y)
			for ch := range p {
				p[ch] = nearestLevel(p[ch])
			}
		}
	}
	return nil
}

// Grayscale converts the image to gray by averaging all of its channels.
// On 32-bit images the mean includes the pre-update alpha, and alpha is then
// overwritten with the gray value too.
func Grayscale(b *bmp.Image) error {
	if err := minSize(b, 1); err != nil {
		return err
	}
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			p := b.Pixel(x, y)
			var gray int
			if b.Channels == 3 {
				gray = utils.Average(int(p[0]), int(p[1]), int(p[2]))
			} else {
				gray = utils.Average(int(p[0]), int(p[1]), int(p[2]), int(p[3]))
				p[3] = byte(gray)
			}
			p[0], p[1], p[2] = byte(gray), byte(gray), byte(gray)
		}
	}
	return nil
}

// GrayscaleLuma converts the image to gray with the ITU-R 601-2 luma
// transform instead of a plain channel average. Alpha is left alone on
// 32-bit images.
func GrayscaleLuma(b *bmp.Image) error {
	if err := minSize(b, 1); err != nil {
		return err
	}
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			p := b.Pixel(x, y)
			l := int(p[2])*299/1000 + int(p[1])*587/1000 + int(p[0])*114/1000
			p[0], p[1], p[2] = byte(l), byte(l), byte(l)
		}
	}
	return nil
}

// Inverts (negates) the color channels. Alpha is left alone on 32-bit
// images.
func Invert(b *bmp.Image) error {
	if err := minSize(b, 1); err != nil {
		return err
	}
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			p := b.Pixel(x, y)
			p[0] = 255 - p[0]
			p[1] = 255 - p[1]
			p[2] = 255 - p[2]
		}
	}
	return nil
}

// Pixelate replaces 16x16 blocks with their per-channel mean. Block centers
// are 8 pixels apart starting at (8,8) and stop 8 pixels short of each edge,
// so the outer border keeps its original pixels. Means are sampled from a
// snapshot of the pre-transform buffer.
func Pixelate(b *bmp.Image) error {
	if err := minSize(b, 24); err != nil {
		return err
	}
	src := b.Clone()
	for y := 8; y < b.Height()-8; y += 8 {
		for x := 8; x < b.Width()-8; x += 8 {
			var sum [4]int
			for oy := -8; oy < 8; oy++ {
				for ox := -8; ox < 8; ox++ {
					p := src.Pixel(x+ox, y+oy)
					for ch := range p {
						sum[ch] += int(p[ch])
					}
				}
			}
			for oy := -8; oy < 8; oy++ {
				for ox := -8; ox < 8; ox++ {
					p := b.Pixel(x+ox, y+oy)
					for ch := range p {
						p[ch] = byte(sum[ch] / 256)
					}
				}
			}
		}
	}
	return nil
}

// blurKernel is the 5x5 Gaussian kernel. Its weights sum to 256.
var blurKernel = [5][5]int{
	{1, 4, 6, 4, 1},
	{4, 16, 24, 16, 4},
	{6, 24, 36, 24, 6},
	{4, 16, 24, 16, 4},
	{1, 4, 6, 4, 1},
}

// Blur applies the 5x5 Gaussian kernel to every channel independently,
// sampling from a snapshot of the pre-transform buffer. A two-pixel border
// (three at the far edges) keeps its original values. The divisor is 255
// rather than the kernel sum of 256; existing output depends on the exact
// byte values, so it stays.
func Blur(b *bmp.Image) error {
	if err := minSize(b, 6); err != nil {
		return err
	}
	src := b.Clone()
	for y := 2; y < b.Height()-3; y++ {
		for x := 2; x < b.Width()-3; x++ {
			var sum [4]int
			for ky := 0; ky < 5; ky++ {
				for kx := 0; kx < 5; kx++ {
					p := src.Pixel(x+kx-2, y+ky-2)
					weight := blurKernel[ky][kx]
					for ch := range p {
						sum[ch] += int(p[ch]) * weight
					}
				}
			}
			p := b.Pixel(x, y)
			for ch := range p {
				p[ch] = byte(sum[ch] / 255)
			}
		}
	}
	return nil
}
