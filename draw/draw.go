// Package draw renders shapes with the display's rectangle fill, so no
// framebuffer is needed on the host.
package draw

import (
	"image"

	"github.com/BeatGlow/ili9341/pixel"
)

// Filler fills rectangles on a display; both the driver and the remote
// client are Fillers.
type Filler interface {
	FillRectangle(x, y, w, h uint16, c pixel.RGB565) error
}

// addressable is the range of controller coordinates.
var addressable = image.Rect(0, 0, 0x10000, 0x10000)

// Fill fills r, clipped to the addressable area.
func Fill(dst Filler, r image.Rectangle, c pixel.RGB565) error {
	r = r.Canon().Intersect(addressable)
	if r.Empty() {
		return nil
	}
	return dst.FillRectangle(uint16(r.Min.X), uint16(r.Min.Y), uint16(r.Dx()), uint16(r.Dy()), c)
}

// spans merges plotted points into horizontal runs, one fill per run.
type spans struct {
	dst   Filler
	c     pixel.RGB565
	run   image.Rectangle
	err   error
	fills int
}

func (s *spans) plot(x, y int) {
	if s.err != nil {
		return
	}
	if !s.run.Empty() && y == s.run.Min.Y && x == s.run.Max.X {
		s.run.Max.X++
		return
	}
	s.flush()
	s.run = image.Rect(x, y, x+1, y+1)
}

func (s *spans) flush() error {
	if s.err == nil && !s.run.Empty() {
		s.err = Fill(s.dst, s.run, s.c)
		s.fills++
	}
	s.run = image.Rectangle{}
	return s.err
}
