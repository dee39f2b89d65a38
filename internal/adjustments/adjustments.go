// Adjusts image dimensions, orientation, or structure.
//
// Every transform here snapshots the pre-transform buffer before writing,
// since source and destination would otherwise alias the same memory.
// Coordinates are buffer coordinates: row 0 is the visual bottom.
package adjustments

import (
	"errors"
	"fmt"

	"github.com/anas-shakeel/bmpfx/internal/bmp"
)

func notEmpty(b *bmp.Image) error {
	if len(b.Data) == 0 || b.Width() == 0 || b.Height() == 0 {
		return fmt.Errorf("%w: empty image", bmp.ErrBufferTooSmall)
	}
	return nil
}

// resize updates the headers for the new dimensions and swaps in a fresh
// zeroed buffer. Callers clone the image first if they still need the old
// pixels.
func resize(b *bmp.Image, width, height int) {
	b.InfoHeader.Width = int32(width)
	b.InfoHeader.Height = int32(height)
	b.UpdateMeta()
	b.Data = make([]byte, b.Stride*height)
}

// FlipVertical mirrors the image top-to-bottom by reversing the row order.
func FlipVertical(b *bmp.Image) error {
	if err := notEmpty(b); err != nil {
		return err
	}
	src := b.Clone()
	h := b.Height()
	for y := 0; y < h; y++ {
		copy(b.Row(y), src.Row(h-1-y))
	}
	return nil
}

// FlipHorizontal mirrors the image left-to-right by reversing the pixel
// order within each row.
func FlipHorizontal(b *bmp.Image) error {
	if err := notEmpty(b); err != nil {
		return err
	}
	src := b.Clone()
	w := b.Width()
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < w; x++ {
			copy(b.Pixel(x, y), src.Pixel(w-1-x, y))
		}
	}
	return nil
}

// Rotate90 rotates the image a quarter turn clockwise, swapping width and
// height.
func Rotate90(b *bmp.Image) error {
	if err := notEmpty(b); err != nil {
		return err
	}
	src := b.Clone()
	w, h := src.Width(), src.Height()
	resize(b, h, w)
	for y := 0; y < w; y++ {
		for x := 0; x < h; x++ {
			copy(b.Pixel(x, y), src.Pixel(w-1-y, x))
		}
	}
	return nil
}

// Rotate180 rotates the image a half turn.
func Rotate180(b *bmp.Image) error {
	if err := notEmpty(b); err != nil {
		return err
	}
	src := b.Clone()
	w, h := b.Width(), b.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			copy(b.Pixel(x, y), src.Pixel(w-1-x, h-1-y))
		}
	}
	return nil
}

// Rotate270 rotates the image a quarter turn counter-clockwise, swapping
// width and height.
func Rotate270(b *bmp.Image) error {
	if err := notEmpty(b); err != nil {
		return err
	}
	src := b.Clone()
	w, h := src.Width(), src.Height()
	resize(b, h, w)
	for y := 0; y < w; y++ {
		for x := 0; x < h; x++ {
			copy(b.Pixel(x, y), src.Pixel(y, h-1-x))
		}
	}
	return nil
}

// FlipDiagonal mirrors the image across its main diagonal (top-left to
// bottom-right), swapping width and height.
func FlipDiagonal(b *bmp.Image) error {
	if err := notEmpty(b); err != nil {
		return err
	}
	src := b.Clone()
	w, h := src.Width(), src.Height()
	resize(b, h, w)
	for y := 0; y < w; y++ {
		for x := 0; x < h; x++ {
			copy(b.Pixel(x, y), src.Pixel(w-1-y, h-1-x))
		}
	}
	return nil
}

// FlipAntiDiagonal mirrors the image across its anti diagonal (top-right to
// bottom-left), swapping width and height.
func FlipAntiDiagonal(b *bmp.Image) error {
	if err := notEmpty(b); err != nil {
		return err
	}
	src := b.Clone()
	w, h := src.Width(), src.Height()
	resize(b, h, w)
	for y := 0; y < w; y++ {
		for x := 0; x < h; x++ {
			copy(b.Pixel(x, y), src.Pixel(y, x))
		}
	}
	return nil
}

// ScaleUp doubles the image size, replicating every source pixel into a 2x2
// block. The doubled width is rounded up to a multiple of 4; columns beyond
// twice the old width are left zero.
func ScaleUp(b *bmp.Image) error {
	if err := notEmpty(b); err != nil {
		return err
	}
	src := b.Clone()
	w, h := src.Width(), src.Height()
	newWidth := w * 2
	newWidth += newWidth % 4
	resize(b, newWidth, h*2)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := src.Pixel(x, y)
			copy(b.Pixel(2*x, 2*y), p)
			copy(b.Pixel(2*x+1, 2*y), p)
			copy(b.Pixel(2*x, 2*y+1), p)
			copy(b.Pixel(2*x+1, 2*y+1), p)
		}
	}
	return nil
}

// ScaleDown halves the image size by sampling every odd source row and
// column. The halved width is rounded up to a multiple of 4; columns beyond
// the sampled count are left zero.
func ScaleDown(b *bmp.Image) error {
	if err := notEmpty(b); err != nil {
		return err
	}
	if b.Width() < 2 || b.Height() < 2 {
		return fmt.Errorf("%w: need at least 2x2 pixels", bmp.ErrBufferTooSmall)
	}
	src := b.Clone()
	w, h := src.Width(), src.Height()
	newWidth := w / 2
	newWidth += newWidth % 4
	resize(b, newWidth, h/2)
	for y := 0; y < h/2; y++ {
		for x := 0; x < w/2; x++ {
			copy(b.Pixel(x, y), src.Pixel(2*x+1, 2*y+1))
		}
	}
	return nil
}

// Crop cuts out the width x height region whose lower-left corner sits at
// (x, y).
func Crop(b *bmp.Image, x, y, width, height int) error {
	if err := notEmpty(b); err != nil {
		return err
	}
	if x < 0 || y < 0 || width <= 0 || height <= 0 {
		return errors.New("invalid bounds: origin and size must be non-negative")
	}
	if x+width > b.Width() {
		return errors.New("invalid bounds: width out of bounds")
	} else if y+height > b.Height() {
		return errors.New("invalid bounds: height out of bounds")
	}
	src := b.Clone()
	resize(b, width, height)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			copy(b.Pixel(col, row), src.Pixel(col+x, row+y))
		}
	}
	return nil
}
