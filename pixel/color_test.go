package pixel

import (
	"image/color"
	"testing"
)

func TestMono(t *testing.T) {
	for y := 0; y < 2; y++ {
		t.Run("", func(it *testing.T) {
			c := Off
			if y > 0 {
				c = On
			}
			r, g, b, _ := c.RGBA()
			y *= 0xF
			want := uint32(y | y<<4 | y<<8 | y<<12)
			if r != want {
				it.Errorf("expected red to be %#04x, got %#04x", want, r)
			}
			if g != want {
				it.Errorf("expected green to be %#04x, got %#04x", want, g)
			}
			if b != want {
				it.Errorf("expected blue to be %#04x, got %#04x", want, b)
			}
		})
	}
}

func TestMonoModel(t *testing.T) {
	tests := []struct {
		name string
		c    color.Color
		want Mono
	}{
		{"black", color.Black, Off},
		{"white", color.White, On},
		{"transparent", color.Transparent, Off},
		{"dark gray", color.Gray{Y: 0x40}, Off},
		{"light gray", color.Gray{Y: 0xC0}, On},
		{"rgb565 white", White, On},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			if v := MonoModel.Convert(test.c); v != test.want {
				it.Errorf("expected %v, got %v", test.want, v)
			}
		})
	}
}

func TestRGB(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    RGB565
	}{
		{0x00, 0x00, 0x00, Black},
		{0xFF, 0xFF, 0xFF, White},
		{0xFF, 0x00, 0x00, Red},
		{0x00, 0xFF, 0x00, Green},
		{0x00, 0x00, 0xFF, Blue},
		{0x00, 0xFF, 0xFF, Cyan},
	}
	for _, test := range tests {
		if v := RGB(test.r, test.g, test.b); v != test.want {
			t.Errorf("RGB(%#02x, %#02x, %#02x): expected %#04x, got %#04x", test.r, test.g, test.b, uint16(test.want), uint16(v))
		}
	}
}

func TestRGB565RGBA(t *testing.T) {
	for _, c := range []RGB565{Black, White, Red, Green, Blue, Orange, Gray} {
		if v := ToRGB565(c); v != c {
			t.Errorf("expected %#04x to convert to itself, got %#04x", uint16(c), uint16(v))
		}
		r, g, b, _ := c.RGBA()
		if v := ToRGB565(color.RGBA64{R: uint16(r), G: uint16(g), B: uint16(b), A: 0xffff}); v != c {
			t.Errorf("expected %#04x to survive a RGBA round trip, got %#04x", uint16(c), uint16(v))
		}
	}
}

func TestRGB565Bytes(t *testing.T) {
	c := RGB565(0xABCD)
	if c.Hi() != 0xAB {
		t.Errorf("expected high byte %#02x, got %#02x", 0xAB, c.Hi())
	}
	if c.Lo() != 0xCD {
		t.Errorf("expected low byte %#02x, got %#02x", 0xCD, c.Lo())
	}
}
