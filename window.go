package ili9341

import "go.uber.org/zap"

// SetWindow selects the controller rectangle (x1,y1)-(x2,y2), bounds
// inclusive, and arms it for a memory write. The pixels streamed afterwards
// fill it row by row; their count must be (x2-x1+1)*(y2-y1+1).
//
// Coordinates are not checked against the display size.
func (d *Driver) SetWindow(x1, y1, x2, y2 uint16) error {
	if ce := d.log.Check(zap.DebugLevel, "window"); ce != nil {
		ce.Write(
			zap.Stringer("rotation", d.state.Rotation),
			zap.Uint16s("rect", []uint16{x1, y1, x2, y2}))
	}
	if err := d.command(ili9341CASET, byte(x1>>8), byte(x1), byte(x2>>8), byte(x2)); err != nil {
		return err
	}
	if err := d.command(ili9341PASET, byte(y1>>8), byte(y1), byte(y2>>8), byte(y2)); err != nil {
		return err
	}
	return d.command(ili9341RAMWR)
}
