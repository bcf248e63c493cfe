package ili9341

import (
	"image"
	"image/color"
	"testing"

	"github.com/BeatGlow/ili9341/pixel"
)

func TestDrawBitmap(t *testing.T) {
	d, r := testDriver(t)
	if err := d.DrawBitmap(8, 1, 0, 0, pixel.White, pixel.Black, Bytes([]byte{0b10110000})); err != nil {
		t.Fatal(err)
	}
	testSegments(t, r, []string{
		"2a: 00 00 00 07",
		"2b: 00 00 00 00",
		"2c: ff ff 00 00 ff ff ff ff 00 00 00 00 00 00 00 00",
	})
	if r.last().op != opCommandMode {
		t.Error("expected command mode after bitmap")
	}
}

func TestDrawBitmapWindow(t *testing.T) {
	d, r := testDriver(t)
	if err := d.DrawBitmap(16, 16, 100, 200, pixel.White, pixel.Black, Bytes(make([]byte, 32))); err != nil {
		t.Fatal(err)
	}
	segments := r.segments()
	if segments[0] != "2a: 00 64 00 73" {
		t.Errorf("unexpected column address %q", segments[0])
	}
	if segments[1] != "2b: 00 c8 00 d7" {
		t.Errorf("unexpected page address %q", segments[1])
	}
	if n := len(r.data()) - 8; n != 2*16*16 {
		t.Errorf("expected %d pixel bytes, got %d", 2*16*16, n)
	}
}

func TestDrawBitmapEmpty(t *testing.T) {
	d, r := testDriver(t)
	var calls int
	src := BitSourceFunc(func() byte {
		calls++
		return 0xFF
	})
	if err := d.DrawBitmap(0, 16, 10, 10, pixel.White, pixel.Black, src); err != nil {
		t.Fatal(err)
	}
	if err := d.DrawBitmap(16, 0, 10, 10, pixel.White, pixel.Black, src); err != nil {
		t.Fatal(err)
	}
	if len(r.events) != 0 || calls != 0 {
		t.Errorf("expected no traffic, got %d events and %d source reads", len(r.events), calls)
	}
}

func TestDrawBitmapBatches(t *testing.T) {
	for _, size := range []image.Point{
		{8, 1},
		{8, 14},
		{8, 15},
		{8, 16},
		{240, 320},
		{13, 8},
	} {
		d, r := testDriver(t)

		var (
			calls int
			bits  []byte
		)
		src := BitSourceFunc(func() byte {
			v := byte(calls*37 + 11)
			calls++
			bits = append(bits, v)
			return v
		})
		if err := d.DrawBitmap(uint16(size.X), uint16(size.Y), 0, 0, pixel.Yellow, pixel.Navy, src); err != nil {
			t.Fatal(err)
		}

		total := size.X * size.Y
		if calls != total/8 {
			t.Errorf("%s: expected %d source reads, got %d", size, total/8, calls)
		}

		var pixels []byte
		for _, call := range r.dataCalls()[2:] {
			if len(call) > 256 {
				t.Errorf("%s: expected at most 256 bytes per batch, got %d", size, len(call))
			}
			pixels = append(pixels, call...)
		}
		if len(pixels) != 2*total {
			t.Fatalf("%s: expected %d pixel bytes, got %d", size, 2*total, len(pixels))
		}
		for i := 0; i < total; i++ {
			want := pixel.Navy
			if bits[i/8]&(0x80>>(i%8)) != 0 {
				want = pixel.Yellow
			}
			if got := pixel.RGB565(uint16(pixels[2*i])<<8 | uint16(pixels[2*i+1])); got != want {
				t.Fatalf("%s: pixel %d: expected %#04x, got %#04x", size, i, uint16(want), uint16(got))
			}
		}
	}
}

func TestBytes(t *testing.T) {
	src := Bytes([]byte{0x01, 0x02})
	for i, want := range []byte{0x01, 0x02, 0x00, 0x00} {
		if v := src.Next(); v != want {
			t.Errorf("byte %d: expected %#02x, got %#02x", i, want, v)
		}
	}
}

func TestImageSource(t *testing.T) {
	img := image.NewGray(image.Rect(2, 3, 14, 5))
	// Diagonal-ish pattern: first pixel of each row, and the last of the image.
	img.SetGray(2, 3, color.Gray{Y: 0xFF})
	img.SetGray(2, 4, color.Gray{Y: 0xFF})
	img.SetGray(13, 4, color.Gray{Y: 0xFF})
	img.SetGray(5, 3, color.Gray{Y: 0x40})

	src := ImageSource(img)
	// 24 pixels: row 3 is 12 pixels, row 4 starts at bit 4 of the second byte.
	for i, want := range []byte{0b10000000, 0b00001000, 0b00000001, 0x00} {
		if v := src.Next(); v != want {
			t.Errorf("byte %d: expected %08b, got %08b", i, want, v)
		}
	}
}
