package pixel

import "image/color"

// Models for the color types in this package.
var (
	MonoModel   color.Model = color.ModelFunc(monoModel)
	RGB565Model color.Model = color.ModelFunc(rgb565Model)
)

var (
	Off = Mono{false}
	On  = Mono{true}
)

// Common RGB565 colors.
const (
	Black   RGB565 = 0x0000
	Navy    RGB565 = 0x000F
	Blue    RGB565 = 0x001F
	Green   RGB565 = 0x07E0
	Cyan    RGB565 = 0x07FF
	Maroon  RGB565 = 0x7800
	Purple  RGB565 = 0x780F
	Olive   RGB565 = 0x7BE0
	Gray    RGB565 = 0x8410
	Red     RGB565 = 0xF800
	Magenta RGB565 = 0xF81F
	Orange  RGB565 = 0xFD20
	Yellow  RGB565 = 0xFFE0
	White   RGB565 = 0xFFFF
)

// Mono represents a 1-bit monochrome color.
type Mono struct {
	On bool
}

func (c Mono) RGBA() (r, g, b, a uint32) {
	if c.On {
		return 0xffff, 0xffff, 0xffff, 0xffff
	}
	return 0, 0, 0, 0xffff
}

func monoModel(c color.Color) color.Color {
	if _, ok := c.(Mono); ok {
		return c
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Off
	}

	// Luma with the JFIF coefficients (19595 + 38470 + 7471 = 65536), the
	// pixel is on when it is at least half intensity.
	y := (19595*r + 38470*g + 7471*b + 1<<15) >> 16
	return Mono{On: y >= 0x8000}
}

// RGB565 represents a 16-bit 5-6-5 RGB color, as sent on the wire.
//
//	bit 76543210  76543210
//	    RRRRRGGG  GGGBBBBB
//	   high byte  low byte
type RGB565 uint16

// RGB returns the RGB565 color closest to the 8-bit components r, g and b.
func RGB(r, g, b uint8) RGB565 {
	return RGB565(uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b)>>3)
}

// Hi is the first byte sent on the bus.
func (c RGB565) Hi() byte { return byte(c >> 8) }

// Lo is the second byte sent on the bus.
func (c RGB565) Lo() byte { return byte(c) }

func (c RGB565) RGBA() (r, g, b, a uint32) {
	// Build a 5- or 6-bit value at the top of the low byte of each component.
	red := uint32(c&0xF800) >> 8
	grn := uint32(c&0x07E0) >> 3
	blu := uint32(c&0x001F) << 3
	// Duplicate the high bits in the low bits.
	red |= red >> 5
	grn |= grn >> 6
	blu |= blu >> 5
	// Duplicate the whole value in the high byte.
	red |= red << 8
	grn |= grn << 8
	blu |= blu << 8
	return red, grn, blu, 0xffff
}

func rgb565Model(c color.Color) color.Color {
	switch c := c.(type) {
	case RGB565:
		return c
	case Mono:
		if c.On {
			return White
		}
		return Black
	default:
		r, g, b, _ := c.RGBA()
		return RGB565((r & 0xF800) | (g&0xFC00)>>5 | (b&0xF800)>>11)
	}
}

// ToRGB565 converts any color to RGB565.
func ToRGB565(c color.Color) RGB565 {
	return rgb565Model(c).(RGB565)
}
