// Package ili9341 drives ILI9341 TFT display controllers over an 8-bit
// parallel (or 4-wire SPI) bus.
//
// The driver is not safe for concurrent use. Callers that share one Driver
// between goroutines must serialize access to it.
package ili9341

import (
	"fmt"
	"image"
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

const (
	DefaultWidth  = 320
	DefaultHeight = 240
)

var debug bool

func init() {
	debug = os.Getenv("ILI9341_DEBUG") != ""
}

// Errors
var (
	ErrSize     = errors.New("ili9341: invalid display size")
	ErrRotation = errors.New("ili9341: invalid rotation")
)

// Config is the display configuration.
type Config struct {
	// Width of the panel in pixels at NoRotation.
	Width int

	// Height of the panel in pixels at NoRotation.
	Height int

	// Rotation of the display after initialization.
	Rotation Rotation

	// Backlight pin, optional.
	Backlight gpio.PinOut

	// Logger for diagnostics, defaults to a no-op logger.
	Logger *zap.Logger

	// Sleep blocks the caller, defaults to time.Sleep.
	Sleep func(time.Duration)

	// ResetTable and WakeTable replace the built-in power up tables.
	ResetTable *Table
	WakeTable  *Table
}

// State is the geometry the driver currently addresses.
type State struct {
	Width    uint16
	Height   uint16
	Rotation Rotation
}

// Driver for an ILI9341 controller.
type Driver struct {
	c            Conn
	log          *zap.Logger
	sleep        func(time.Duration)
	nativeWidth  uint16
	nativeHeight uint16
	state        State
	backlight    gpio.PinOut
}

// New initializes the controller on c.
func New(c Conn, config *Config) (*Driver, error) {
	if config == nil {
		config = new(Config)
	}
	if config.Width == 0 {
		config.Width = DefaultWidth
	}
	if config.Height == 0 {
		config.Height = DefaultHeight
	}
	if config.Width < 0 || config.Width > 0xFFFF || config.Height < 0 || config.Height > 0xFFFF {
		return nil, errors.Wrapf(ErrSize, "%dx%d", config.Width, config.Height)
	}
	if config.Rotation > Rotate270 {
		return nil, errors.Wrapf(ErrRotation, "%d", config.Rotation)
	}

	d := &Driver{
		c:            c,
		log:          config.Logger,
		sleep:        config.Sleep,
		nativeWidth:  uint16(config.Width),
		nativeHeight: uint16(config.Height),
		backlight:    config.Backlight,
	}
	if d.log == nil {
		d.log = newLogger()
	}
	if d.sleep == nil {
		d.sleep = time.Sleep
	}

	if err := d.init(config); err != nil {
		return nil, err
	}
	return d, nil
}

func newLogger() *zap.Logger {
	if debug {
		if l, err := zap.NewDevelopment(); err == nil {
			return l.Named("ili9341")
		}
	}
	return zap.NewNop()
}

func (d *Driver) init(config *Config) (err error) {
	if d.backlight != nil {
		if err = d.backlight.PWM(gpio.DutyMax, 2*physic.KiloHertz); err != nil {
			return
		}
	} else {
		d.log.Debug("no backlight control")
	}

	// reset the device.
	if err = d.c.Select(gpio.Low); err != nil {
		return
	}
	if err = d.c.Reset(gpio.High); err != nil {
		return
	}
	if err = d.c.Reset(gpio.Low); err != nil {
		return
	}
	if err = d.c.Reset(gpio.High); err != nil {
		return
	}
	d.sleep(10 * time.Millisecond)

	resetOff, wakeOn := ResetOffTable, WakeOnTable
	if config.ResetTable != nil {
		resetOff = *config.ResetTable
	}
	if config.WakeTable != nil {
		wakeOn = *config.WakeTable
	}
	if err = d.RunSequence(resetOff); err != nil {
		return
	}
	if err = d.RunSequence(wakeOn); err != nil {
		return
	}

	d.state = State{Width: d.nativeWidth, Height: d.nativeHeight}
	if err = d.SetRotation(config.Rotation); err != nil {
		return
	}

	d.log.Info("initialized",
		zap.Stringer("conn", d.c),
		zap.Uint16("width", d.state.Width),
		zap.Uint16("height", d.state.Height),
		zap.Stringer("rotation", d.state.Rotation))
	return nil
}

func (d *Driver) String() string {
	return fmt.Sprintf("ILI9341 %dx%d", d.state.Width, d.state.Height)
}

// command writes cmnd in command mode, then its parameters in data mode.
func (d *Driver) command(cmnd byte, data ...byte) error {
	if err := d.c.Command(cmnd); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if err := d.c.SetDataMode(); err != nil {
		return err
	}
	return d.c.Data(data...)
}

// State returns the current geometry.
func (d *Driver) State() State {
	return d.state
}

// Rotation returns the current rotation.
func (d *Driver) Rotation() Rotation {
	return d.state.Rotation
}

// Bounds is the display bounding box at the current rotation.
func (d *Driver) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(d.state.Width), int(d.state.Height))
}

// Show toggles the display on or off.
func (d *Driver) Show(show bool) error {
	var command = byte(ili9341DISPOFF)
	if show {
		command = byte(ili9341DISPON)
	}
	return d.command(command)
}

// SetInverted toggles display inversion.
func (d *Driver) SetInverted(invert bool) error {
	var command = byte(ili9341INVOFF)
	if invert {
		command = byte(ili9341INVON)
	}
	return d.command(command)
}

// SetBacklight adjusts the backlight duty cycle, if there is a backlight pin.
func (d *Driver) SetBacklight(level uint8) error {
	if d.backlight == nil {
		return nil
	}
	const (
		step = gpio.DutyMax / 0xFF
		rate = 2 * physic.KiloHertz
	)
	d.log.Debug("backlight", zap.Stringer("duty", step*gpio.Duty(level)))
	return d.backlight.PWM(step*gpio.Duty(level), rate)
}

// Close turns the display off and closes the connection.
func (d *Driver) Close() error {
	if err := d.Show(false); err != nil {
		_ = d.c.Close()
		return err
	}
	return d.c.Close()
}
