package adjustments

import (
	"bytes"
	"errors"
	"testing"

	"github.com/anas-shakeel/bmpfx/internal/bmp"
)

func patternImage(t testing.TB, w, h, bitCount int) *bmp.Image {
	t.Helper()
	img, err := bmp.New(w, h, bitCount)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := img.Pixel(x, y)
			for ch := range p {
				p[ch] = byte(x*16 + y + ch*64)
			}
		}
	}
	return img
}

// samePixels compares two images pixel by pixel, ignoring the padding bytes
// that different strides place differently.
func samePixels(t *testing.T, got, want *bmp.Image) {
	t.Helper()
	if got.Width() != want.Width() || got.Height() != want.Height() {
		t.Fatalf("dimensions: got %dx%d want %dx%d", got.Width(), got.Height(), want.Width(), want.Height())
	}
	for y := 0; y < want.Height(); y++ {
		for x := 0; x < want.Width(); x++ {
			if !bytes.Equal(got.Pixel(x, y), want.Pixel(x, y)) {
				t.Fatalf("pixel (%d,%d): got %v want %v", x, y, got.Pixel(x, y), want.Pixel(x, y))
			}
		}
	}
}

func TestFlipVertical(t *testing.T) {
	img := patternImage(t, 3, 2, 24)
	want := img.Clone()
	if err := FlipVertical(img); err != nil {
		t.Fatalf("FlipVertical: %v", err)
	}
	for x := 0; x < 3; x++ {
		if !bytes.Equal(img.Pixel(x, 0), want.Pixel(x, 1)) {
			t.Fatalf("column %d: rows not swapped", x)
		}
	}
	if err := FlipVertical(img); err != nil {
		t.Fatalf("FlipVertical (second pass): %v", err)
	}
	if !bytes.Equal(img.Data, want.Data) {
		t.Fatal("double flip did not restore the buffer")
	}
}

func TestFlipHorizontal(t *testing.T) {
	img := patternImage(t, 3, 2, 32)
	want := img.Clone()
	if err := FlipHorizontal(img); err != nil {
		t.Fatalf("FlipHorizontal: %v", err)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if !bytes.Equal(img.Pixel(x, y), want.Pixel(2-x, y)) {
				t.Fatalf("pixel (%d,%d): columns not reversed", x, y)
			}
		}
	}
	if err := FlipHorizontal(img); err != nil {
		t.Fatalf("FlipHorizontal (second pass): %v", err)
	}
	if !bytes.Equal(img.Data, want.Data) {
		t.Fatal("double flip did not restore the buffer")
	}
}

func TestRotate90Geometry(t *testing.T) {
	// Source, 2 wide and 3 tall. Buffer rows are bottom-up, so row 2 is the
	// visual top:   A B      after a clockwise        E C A
	//               C D      quarter turn:            F D B
	//               E F
	src := patternImage(t, 2, 3, 24)
	img := src.Clone()
	if err := Rotate90(img); err != nil {
		t.Fatalf("Rotate90: %v", err)
	}
	if img.Width() != 3 || img.Height() != 2 {
		t.Fatalf("dimensions: got %dx%d want 3x2", img.Width(), img.Height())
	}
	for _, tc := range []struct {
		dx, dy, sx, sy int
	}{
		{0, 1, 0, 0}, // E
		{1, 1, 0, 1}, // C
		{2, 1, 0, 2}, // A
		{0, 0, 1, 0}, // F
		{1, 0, 1, 1}, // D
		{2, 0, 1, 2}, // B
	} {
		if !bytes.Equal(img.Pixel(tc.dx, tc.dy), src.Pixel(tc.sx, tc.sy)) {
			t.Errorf("pixel (%d,%d): got %v want source (%d,%d) %v",
				tc.dx, tc.dy, img.Pixel(tc.dx, tc.dy), tc.sx, tc.sy, src.Pixel(tc.sx, tc.sy))
		}
	}
}

func TestRotationInvolutions(t *testing.T) {
	for _, tc := range []struct {
		name  string
		steps []func(*bmp.Image) error
	}{
		{"rot90_rot270", []func(*bmp.Image) error{Rotate90, Rotate270}},
		{"rot90_four_times", []func(*bmp.Image) error{Rotate90, Rotate90, Rotate90, Rotate90}},
		{"rot180_twice", []func(*bmp.Image) error{Rotate180, Rotate180}},
		{"flipd1_twice", []func(*bmp.Image) error{FlipDiagonal, FlipDiagonal}},
		{"flipd2_twice", []func(*bmp.Image) error{FlipAntiDiagonal, FlipAntiDiagonal}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			img := patternImage(t, 5, 3, 24)
			want := img.Clone()
			for _, step := range tc.steps {
				if err := step(img); err != nil {
					t.Fatalf("step: %v", err)
				}
			}
			samePixels(t, img, want)
		})
	}
}

func TestScaleUp(t *testing.T) {
	src := patternImage(t, 3, 2, 24)
	img := src.Clone()
	if err := ScaleUp(img); err != nil {
		t.Fatalf("ScaleUp: %v", err)
	}
	// 2*3 = 6, rounded up to the next multiple of 4.
	if img.Width() != 8 || img.Height() != 4 {
		t.Fatalf("dimensions: got %dx%d want 8x4", img.Width(), img.Height())
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			want := src.Pixel(x, y)
			for _, dup := range [][2]int{{2 * x, 2 * y}, {2*x + 1, 2 * y}, {2 * x, 2*y + 1}, {2*x + 1, 2*y + 1}} {
				if !bytes.Equal(img.Pixel(dup[0], dup[1]), want) {
					t.Fatalf("pixel (%d,%d): not replicated from source (%d,%d)", dup[0], dup[1], x, y)
				}
			}
		}
	}
	// Columns beyond twice the old width are zero filled.
	for y := 0; y < 4; y++ {
		for x := 6; x < 8; x++ {
			if !bytes.Equal(img.Pixel(x, y), []byte{0, 0, 0}) {
				t.Fatalf("pixel (%d,%d): fill column not zero", x, y)
			}
		}
	}
}

func TestScaleDown(t *testing.T) {
	src := patternImage(t, 4, 4, 24)
	img := src.Clone()
	if err := ScaleDown(img); err != nil {
		t.Fatalf("ScaleDown: %v", err)
	}
	// 4/2 = 2, rounded up to the next multiple of 4.
	if img.Width() != 4 || img.Height() != 2 {
		t.Fatalf("dimensions: got %dx%d want 4x2", img.Width(), img.Height())
	}
	// Odd source rows and columns, sampled sequentially.
	for _, tc := range []struct {
		dx, dy, sx, sy int
	}{
		{0, 0, 1, 1},
		{1, 0, 3, 1},
		{0, 1, 1, 3},
		{1, 1, 3, 3},
	} {
		if !bytes.Equal(img.Pixel(tc.dx, tc.dy), src.Pixel(tc.sx, tc.sy)) {
			t.Errorf("pixel (%d,%d): want source (%d,%d)", tc.dx, tc.dy, tc.sx, tc.sy)
		}
	}
	for y := 0; y < 2; y++ {
		for x := 2; x < 4; x++ {
			if !bytes.Equal(img.Pixel(x, y), []byte{0, 0, 0}) {
				t.Errorf("pixel (%d,%d): fill column not zero", x, y)
			}
		}
	}
}

func TestScaleUpThenDownRestoresBlank(t *testing.T) {
	img, err := bmp.New(16, 16, 24)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := ScaleUp(img); err != nil {
		t.Fatalf("ScaleUp: %v", err)
	}
	if img.Width() != 32 || img.Height() != 32 {
		t.Fatalf("after scale up: got %dx%d want 32x32", img.Width(), img.Height())
	}
	if err := ScaleDown(img); err != nil {
		t.Fatalf("ScaleDown: %v", err)
	}
	if img.Width() != 16 || img.Height() != 16 {
		t.Fatalf("after scale down: got %dx%d want 16x16", img.Width(), img.Height())
	}
	for _, v := range img.Data {
		if v != 0 {
			t.Fatal("buffer not all zero")
		}
	}
}

func TestCrop(t *testing.T) {
	src := patternImage(t, 4, 4, 24)
	img := src.Clone()
	if err := Crop(img, 1, 1, 2, 2); err != nil {
		t.Fatalf("Crop: %v", err)
	}
	if img.Width() != 2 || img.Height() != 2 {
		t.Fatalf("dimensions: got %dx%d want 2x2", img.Width(), img.Height())
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if !bytes.Equal(img.Pixel(x, y), src.Pixel(x+1, y+1)) {
				t.Fatalf("pixel (%d,%d): wrong source pixel", x, y)
			}
		}
	}

	if err := Crop(src.Clone(), 2, 0, 3, 2); err == nil {
		t.Error("width out of bounds: expected error")
	}
	if err := Crop(src.Clone(), 0, 3, 2, 2); err == nil {
		t.Error("height out of bounds: expected error")
	}
	if err := Crop(src.Clone(), -1, 0, 2, 2); err == nil {
		t.Error("negative origin: expected error")
	}
}

func TestTooSmall(t *testing.T) {
	empty := &bmp.Image{}
	for _, transform := range []func(*bmp.Image) error{
		FlipVertical, FlipHorizontal, Rotate90, Rotate180, Rotate270,
		FlipDiagonal, FlipAntiDiagonal, ScaleUp, ScaleDown,
	} {
		if err := transform(empty); !errors.Is(err, bmp.ErrBufferTooSmall) {
			t.Fatalf("empty image: got %v, want ErrBufferTooSmall", err)
		}
	}

	tiny, err := bmp.New(1, 1, 24)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := ScaleDown(tiny); !errors.Is(err, bmp.ErrBufferTooSmall) {
		t.Fatalf("1x1 scale down: got %v, want ErrBufferTooSmall", err)
	}
}
