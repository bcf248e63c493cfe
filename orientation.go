package ili9341

import "go.uber.org/zap"

// Rotation defines pixel rotation.
type Rotation uint8

// Supported rotations.
const (
	NoRotation Rotation = iota // Landscape
	Rotate90                   // Portrait
	Rotate180                  // Landscape, flipped
	Rotate270                  // Portrait, flipped
)

func (r Rotation) String() string {
	switch r {
	case NoRotation:
		return "0°"
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return "invalid"
	}
}

// Orientation maps a rotation to its MADCTL control byte and the logical
// width and height for a panel of nativeWidth×nativeHeight pixels. ok is
// false for rotations other than the four supported ones.
func Orientation(nativeWidth, nativeHeight uint16, r Rotation) (control byte, width, height uint16, ok bool) {
	switch r {
	case NoRotation:
		return madctlColumnAddressOrder, nativeWidth, nativeHeight, true
	case Rotate90:
		return madctlRowColumnExchange, nativeHeight, nativeWidth, true
	case Rotate180:
		return madctlRowAddressOrder, nativeWidth, nativeHeight, true
	case Rotate270:
		return madctlRowAddressOrder | madctlColumnAddressOrder | madctlRowColumnExchange, nativeHeight, nativeWidth, true
	default:
		return 0, 0, 0, false
	}
}

// SetRotation writes the memory access control for r and swaps the logical
// dimensions accordingly. Unsupported rotations are ignored.
func (d *Driver) SetRotation(r Rotation) error {
	control, width, height, ok := Orientation(d.nativeWidth, d.nativeHeight, r)
	if !ok {
		d.log.Debug("ignoring rotation", zap.Uint8("rotation", uint8(r)))
		return nil
	}

	d.log.Debug("madctl",
		zap.Stringer("rotation", r),
		zap.Uint8("control", control))
	if err := d.command(ili9341MADCTL, control); err != nil {
		return err
	}

	d.state = State{
		Width:    width,
		Height:   height,
		Rotation: r,
	}
	return nil
}
