package ili9341

import (
	"image/color"

	"go.uber.org/zap"
	"tinygo.org/x/drivers"

	"github.com/BeatGlow/ili9341/pixel"
)

var _ drivers.Displayer = (*Driver)(nil)

// Size is the display size at the current rotation.
func (d *Driver) Size() (x, y int16) {
	return int16(d.state.Width), int16(d.state.Height)
}

// SetPixel draws one pixel directly on the display. Coordinates outside the
// display are ignored.
func (d *Driver) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || int(x) >= int(d.state.Width) || int(y) >= int(d.state.Height) {
		return
	}
	if err := d.DrawPixel(uint16(x), uint16(y), pixel.ToRGB565(c)); err != nil {
		d.log.Warn("set pixel", zap.Int16("x", x), zap.Int16("y", y), zap.Error(err))
	}
}

// Display is a no-op, pixels are written as they are set.
func (d *Driver) Display() error {
	return nil
}
