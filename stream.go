package ili9341

import (
	"image"

	"github.com/BeatGlow/ili9341/pixel"
)

const (
	// scratchWords is the capacity of the pixel scratch buffer.
	scratchWords = 128

	// scratchMargin is the free space kept in the scratch buffer between
	// flush checks; it must hold at least one source byte (8 pixels).
	scratchMargin = 16

	// fillWords is the number of pixels per transfer when filling.
	fillWords = 256
)

// BeginData switches the bus to data mode for streaming pixels.
func (d *Driver) BeginData() error {
	return d.c.SetDataMode()
}

// EndData returns the bus to command mode.
func (d *Driver) EndData() error {
	return d.c.SetCommandMode()
}

// stream runs fn in data mode. EndData runs on every return path of fn.
func (d *Driver) stream(fn func() error) (err error) {
	if err = d.BeginData(); err != nil {
		return
	}
	defer func() {
		if endErr := d.EndData(); err == nil {
			err = endErr
		}
	}()
	return fn()
}

// SendWords writes each color high byte first. The bus must be in data mode.
func (d *Driver) SendWords(words []pixel.RGB565) error {
	var buf [2 * scratchWords]byte
	for len(words) > 0 {
		n := min(len(words), scratchWords)
		for i, c := range words[:n] {
			buf[2*i] = c.Hi()
			buf[2*i+1] = c.Lo()
		}
		if err := d.c.Data(buf[:2*n]...); err != nil {
			return err
		}
		words = words[n:]
	}
	return nil
}

// FillColor writes c count times into the current address window.
func (d *Driver) FillColor(c pixel.RGB565, count int) error {
	if count <= 0 {
		return nil
	}
	return d.stream(func() error {
		var buf [2 * fillWords]byte
		for i := 0; i < min(count, fillWords); i++ {
			buf[2*i] = c.Hi()
			buf[2*i+1] = c.Lo()
		}
		for count > 0 {
			n := min(count, fillWords)
			if err := d.c.Data(buf[:2*n]...); err != nil {
				return err
			}
			count -= n
		}
		return nil
	})
}

// FillScreen fills the entire display with c.
func (d *Driver) FillScreen(c pixel.RGB565) error {
	w, h := d.state.Width, d.state.Height
	if err := d.SetWindow(0, 0, w-1, h-1); err != nil {
		return err
	}
	return d.FillColor(c, int(w)*int(h))
}

// FillRectangle fills the w×h rectangle at (x, y) with c.
func (d *Driver) FillRectangle(x, y, w, h uint16, c pixel.RGB565) error {
	if w == 0 || h == 0 {
		return nil
	}
	if err := d.SetWindow(x, y, x+w-1, y+h-1); err != nil {
		return err
	}
	return d.FillColor(c, int(w)*int(h))
}

// DrawPixel sets the pixel at (x, y) to c.
func (d *Driver) DrawPixel(x, y uint16, c pixel.RGB565) error {
	if err := d.SetWindow(x, y, x, y); err != nil {
		return err
	}
	return d.FillColor(c, 1)
}

// DrawImage streams img into the rectangle of the same size at (x, y).
func (d *Driver) DrawImage(x, y uint16, img image.Image) error {
	r := img.Bounds()
	if r.Empty() {
		return nil
	}
	if err := d.SetWindow(x, y, x+uint16(r.Dx())-1, y+uint16(r.Dy())-1); err != nil {
		return err
	}

	return d.stream(func() error {
		row := make([]pixel.RGB565, r.Dx())
		for py := r.Min.Y; py < r.Max.Y; py++ {
			switch img := img.(type) {
			case *pixel.RGB565Image:
				for px := r.Min.X; px < r.Max.X; px++ {
					row[px-r.Min.X] = img.RGB565At(px, py)
				}
			default:
				for px := r.Min.X; px < r.Max.X; px++ {
					row[px-r.Min.X] = pixel.ToRGB565(img.At(px, py))
				}
			}
			if err := d.SendWords(row); err != nil {
				return err
			}
		}
		return nil
	})
}
