package draw

import (
	"image"

	"github.com/BeatGlow/ili9341/pixel"
)

// Line draws a line between two points, both included.
func Line(dst Filler, a, b image.Point, c pixel.RGB565) error {
	if a.X == b.X || a.Y == b.Y {
		r := image.Rectangle{Min: a, Max: b}.Canon()
		r.Max = r.Max.Add(image.Pt(1, 1))
		return Fill(dst, r, c)
	}
	s := &spans{dst: dst, c: c}
	bresenham(s, a.X, a.Y, b.X, b.Y)
	return s.flush()
}

// HorizontalLine draws a line between (x,y) and (x+w-1,y).
func HorizontalLine(dst Filler, x, y, w int, c pixel.RGB565) error {
	return Fill(dst, image.Rect(x, y, x+w, y+1), c)
}

// VerticalLine draws a line between (x,y) and (x,y+h-1).
func VerticalLine(dst Filler, x, y, h int, c pixel.RGB565) error {
	return Fill(dst, image.Rect(x, y, x+1, y+h), c)
}

// Rectangle draws the outline of rect.
func Rectangle(dst Filler, rect image.Rectangle, c pixel.RGB565) error {
	rect = rect.Canon()
	if rect.Dx() <= 2 || rect.Dy() <= 2 {
		return Box(dst, rect, c)
	}
	for _, r := range []image.Rectangle{
		image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+1),
		image.Rect(rect.Min.X, rect.Max.Y-1, rect.Max.X, rect.Max.Y),
		image.Rect(rect.Min.X, rect.Min.Y+1, rect.Min.X+1, rect.Max.Y-1),
		image.Rect(rect.Max.X-1, rect.Min.Y+1, rect.Max.X, rect.Max.Y-1),
	} {
		if err := Fill(dst, r, c); err != nil {
			return err
		}
	}
	return nil
}

// Box draws a filled rectangle.
func Box(dst Filler, rect image.Rectangle, c pixel.RGB565) error {
	return Fill(dst, rect, c)
}

// RoundedRectangle draws the outline of rect with radius pixels rounded corners.
func RoundedRectangle(dst Filler, rect image.Rectangle, radius int, c pixel.RGB565) error {
	rect = rect.Canon()
	radius = clampRadius(rect, radius)
	if radius == 0 {
		return Rectangle(dst, rect, c)
	}
	var (
		r    = radius
		x, y = rect.Min.X, rect.Min.Y
		w, h = rect.Dx(), rect.Dy()
	)
	for _, line := range []image.Rectangle{
		image.Rect(x+r, y, x+w-r, y+1),
		image.Rect(x+r, y+h-1, x+w-r, y+h),
		image.Rect(x, y+r, x+1, y+h-r),
		image.Rect(x+w-1, y+r, x+w, y+h-r),
	} {
		if err := Fill(dst, line, c); err != nil {
			return err
		}
	}

	s := &spans{dst: dst, c: c}
	for _, q := range []struct{ cx, cy, sx, sy int }{
		{x + r, y + r, -1, -1},
		{x + w - r - 1, y + r, 1, -1},
		{x + r, y + h - r - 1, -1, 1},
		{x + w - r - 1, y + h - r - 1, 1, 1},
	} {
		corners(r, func(dx, dy int) {
			s.plot(q.cx+q.sx*dx, q.cy+q.sy*dy)
		})
	}
	return s.flush()
}

// RoundedBox draws a filled rectangle with radius pixels rounded corners.
func RoundedBox(dst Filler, rect image.Rectangle, radius int, c pixel.RGB565) error {
	rect = rect.Canon()
	radius = clampRadius(rect, radius)
	if radius == 0 {
		return Box(dst, rect, c)
	}
	var (
		r    = radius
		x, y = rect.Min.X, rect.Min.Y
		w, h = rect.Dx(), rect.Dy()
	)
	if err := Fill(dst, image.Rect(x, y+r, x+w, y+h-r), c); err != nil {
		return err
	}

	// Widest inset per corner row, the rows above and below the middle band.
	inset := make([]int, r)
	for i := range inset {
		inset[i] = r
	}
	corners(r, func(dx, dy int) {
		if row := r - dy; row >= 0 && row < r && r-dx < inset[row] {
			inset[row] = r - dx
		}
	})
	for row, in := range inset {
		top := image.Rect(x+in, y+row, x+w-in, y+row+1)
		bottom := image.Rect(x+in, y+h-1-row, x+w-in, y+h-row)
		if err := Fill(dst, top, c); err != nil {
			return err
		}
		if err := Fill(dst, bottom, c); err != nil {
			return err
		}
	}
	return nil
}

func clampRadius(rect image.Rectangle, radius int) int {
	return max(0, min(radius, rect.Dx()/2, rect.Dy()/2))
}

// corners walks a quarter of a midpoint circle of radius r, calling fn with
// offsets from the center. The points on the axes are left to straight lines.
func corners(r int, fn func(dx, dy int)) {
	var (
		f    = 1 - r
		ddFx = 1
		ddFy = -2 * r
		x    = 0
		y    = r
	)
	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}

		x++
		ddFx += 2
		f += ddFx

		fn(x, y)
		fn(y, x)
	}
}

func bresenham(s *spans, x1, y1, x2, y2 int) {
	var dx, dy, e, slope int

	// Drawing p1 -> p2 equals p2 -> p1, sort on x to halve the cases.
	if x1 > x2 {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}

	dx, dy = x2-x1, y2-y1
	if dy < 0 {
		dy = -dy
	}

	step := 1
	if y2 < y1 {
		step = -1
	}

	switch {
	case dx >= dy:
		dy, e, slope = 2*dy, dx, 2*dx
		for ; dx != 0; dx-- {
			s.plot(x1, y1)
			x1++
			e -= dy
			if e < 0 {
				y1 += step
				e += slope
			}
		}
	default:
		dx, e, slope = 2*dx, dy, 2*dy
		for ; dy != 0; dy-- {
			s.plot(x1, y1)
			y1 += step
			e -= dx
			if e < 0 {
				x1++
				e += slope
			}
		}
	}
	s.plot(x2, y2)
}
