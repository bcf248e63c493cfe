package ili9341

import (
	"image"

	"go.uber.org/zap"

	"github.com/BeatGlow/ili9341/pixel"
)

// BitSource yields packed monochrome pixels, 8 per byte, most significant
// bit first. Bytes are consumed strictly in order.
type BitSource interface {
	Next() byte
}

// BitSourceFunc adapts a function to a BitSource.
type BitSourceFunc func() byte

func (f BitSourceFunc) Next() byte {
	return f()
}

type byteSource struct {
	b []byte
}

// Bytes is a BitSource over b. Reading past the end yields zero bytes.
func Bytes(b []byte) BitSource {
	return &byteSource{b: b}
}

func (s *byteSource) Next() (v byte) {
	if len(s.b) == 0 {
		return 0
	}
	v, s.b = s.b[0], s.b[1:]
	return
}

type imageSource struct {
	img image.Image
	r   image.Rectangle
	p   image.Point
}

// ImageSource packs the pixels of img row by row, thresholded with
// pixel.MonoModel. Pixels past the bounds read as off.
func ImageSource(img image.Image) BitSource {
	r := img.Bounds()
	return &imageSource{img: img, r: r, p: r.Min}
}

func (s *imageSource) Next() (v byte) {
	for mask := byte(0x80); mask != 0; mask >>= 1 {
		if !s.p.In(s.r) {
			continue
		}
		if pixel.MonoModel.Convert(s.img.At(s.p.X, s.p.Y)).(pixel.Mono).On {
			v |= mask
		}
		if s.p.X++; s.p.X >= s.r.Max.X {
			s.p.X = s.r.Min.X
			s.p.Y++
		}
	}
	return
}

// DrawBitmap expands width×height pixels from src into fg (bit set) and bg
// (bit clear) and streams them to the rectangle at (x, y).
//
// width*height must be a multiple of 8 and src must yield width*height/8
// bytes.
func (d *Driver) DrawBitmap(width, height, x, y uint16, fg, bg pixel.RGB565, src BitSource) error {
	total := int(width) * int(height)
	if total == 0 {
		return nil
	}
	if err := d.SetWindow(x, y, x+width-1, y+height-1); err != nil {
		return err
	}

	return d.stream(func() error {
		var (
			scratch [scratchWords]pixel.RGB565
			ready   int
			flushes int
		)
		for emitted := 0; emitted < total; emitted += 8 {
			bits := src.Next()
			for mask := byte(0x80); mask != 0; mask >>= 1 {
				if bits&mask != 0 {
					scratch[ready] = fg
				} else {
					scratch[ready] = bg
				}
				ready++
			}
			if ready > scratchWords-scratchMargin {
				if err := d.SendWords(scratch[:ready]); err != nil {
					return err
				}
				ready = 0
				flushes++
			}
		}
		if ready > 0 {
			if err := d.SendWords(scratch[:ready]); err != nil {
				return err
			}
			flushes++
		}

		d.log.Debug("bitmap",
			zap.Int("pixels", total),
			zap.Int("flushes", flushes))
		return nil
	})
}
