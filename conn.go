package ili9341

import (
	"fmt"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"

	"github.com/BeatGlow/ili9341/conn"
)

// Conn errors.
var (
	ErrResetPin = errors.New("ili9341: reset GPIO pin is invalid")
	ErrDCPin    = errors.New("ili9341: data/command (DC) GPIO pin is invalid")
)

// Conn is the connection interface for communicating with the controller.
//
// Command always switches the bus to command mode before writing. Data writes
// in whatever mode the bus is currently in, use SetDataMode first.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// Reset sets the reset pin to the provided level.
	Reset(gpio.Level) error

	// Select sets the chip select pin to the provided level (active low).
	Select(gpio.Level) error

	// Command sends a command byte.
	Command(byte) error

	// Data sends data bytes.
	Data(...byte) error

	// SetDataMode selects data mode (DC high).
	SetDataMode() error

	// SetCommandMode selects command mode (DC low).
	SetCommandMode() error
}

// dcPin tracks the data/command line to avoid redundant writes.
type dcPin struct {
	pin   gpio.PinOut
	level gpio.Level
	valid bool
}

func (p *dcPin) update(level gpio.Level) error {
	if p.valid && p.level == level {
		return nil
	}
	if err := p.pin.Out(level); err != nil {
		p.valid = false
		return err
	}
	p.level, p.valid = level, true
	return nil
}

func optionalOut(pin gpio.PinOut, level gpio.Level) error {
	if pin == nil || pin == gpio.INVALID {
		return nil
	}
	return pin.Out(level)
}

// ParallelConfig describes the 8-bit parallel bus wiring.
type ParallelConfig struct {
	// Data pins D0 through D7.
	Data [8]gpio.PinOut

	// WR is the write strobe.
	WR gpio.PinOut

	// RD is the read strobe, held high. Optional.
	RD gpio.PinOut

	// DC is the data/command select.
	DC gpio.PinOut

	// CS is the chip select. Optional if tied low.
	CS gpio.PinOut

	// Reset pin. Optional if tied high.
	Reset gpio.PinOut
}

type parallelConn struct {
	bus   *conn.Parallel8
	dc    dcPin
	rd    gpio.PinOut
	cs    gpio.PinOut
	reset gpio.PinOut
}

// OpenParallel claims the pins in config as an 8-bit parallel connection.
func OpenParallel(config *ParallelConfig) (Conn, error) {
	if config == nil {
		return nil, errors.New("ili9341: parallel bus configuration is required")
	}
	if config.DC == nil || config.DC == gpio.INVALID {
		return nil, ErrDCPin
	}

	bus, err := conn.NewParallel8(config.Data, config.WR)
	if err != nil {
		return nil, err
	}
	if err = optionalOut(config.RD, gpio.High); err != nil {
		return nil, errors.Wrap(err, "ili9341: RD idle")
	}
	if err = optionalOut(config.CS, gpio.High); err != nil {
		return nil, errors.Wrap(err, "ili9341: CS idle")
	}

	return &parallelConn{
		bus:   bus,
		dc:    dcPin{pin: config.DC},
		rd:    config.RD,
		cs:    config.CS,
		reset: config.Reset,
	}, nil
}

func (c *parallelConn) String() string {
	return c.bus.String()
}

func (c *parallelConn) Close() error {
	if err := optionalOut(c.cs, gpio.High); err != nil {
		return err
	}
	return c.bus.Halt()
}

func (c *parallelConn) Reset(level gpio.Level) error {
	return optionalOut(c.reset, level)
}

func (c *parallelConn) Select(level gpio.Level) error {
	return optionalOut(c.cs, level)
}

func (c *parallelConn) Command(cmnd byte) error {
	if err := c.dc.update(gpio.Low); err != nil {
		return err
	}
	return c.bus.WriteByte(cmnd)
}

func (c *parallelConn) Data(data ...byte) (err error) {
	_, err = c.bus.Write(data)
	return
}

func (c *parallelConn) SetDataMode() error {
	return c.dc.update(gpio.High)
}

func (c *parallelConn) SetCommandMode() error {
	return c.dc.update(gpio.Low)
}

// SPIConfig describes the 4-wire SPI bus configuration.
type SPIConfig struct {
	// Port is the spireg port name, empty for the first available.
	Port string

	// Speed of the bus clock.
	Speed physic.Frequency

	// BatchSize is the largest single transfer.
	BatchSize int

	Reset gpio.PinOut
	DC    gpio.PinOut
	CS    gpio.PinOut
}

// DefaultSPIConfig are the default configuration values.
var DefaultSPIConfig = SPIConfig{
	Speed:     10 * physic.MegaHertz,
	BatchSize: 4096,
}

type spiConn struct {
	port      spi.PortCloser
	bus       spi.Conn
	dc        dcPin
	cs        gpio.PinOut
	reset     gpio.PinOut
	batchSize int
}

// OpenSPI opens the controller in 4-wire SPI mode, with DC on a GPIO pin.
func OpenSPI(config *SPIConfig) (Conn, error) {
	if config == nil {
		config = new(SPIConfig)
		*config = DefaultSPIConfig
	}
	if config.DC == nil || config.DC == gpio.INVALID {
		return nil, ErrDCPin
	}
	if config.Reset == nil || config.Reset == gpio.INVALID {
		return nil, ErrResetPin
	}
	if config.Speed == 0 {
		config.Speed = DefaultSPIConfig.Speed
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultSPIConfig.BatchSize
	}

	port, err := spireg.Open(config.Port)
	if err != nil {
		return nil, errors.Wrap(err, "ili9341: open SPI port")
	}
	bus, err := port.Connect(config.Speed, spi.Mode0, 8)
	if err != nil {
		_ = port.Close()
		return nil, errors.Wrap(err, "ili9341: connect SPI port")
	}

	return &spiConn{
		port:      port,
		bus:       bus,
		dc:        dcPin{pin: config.DC},
		cs:        config.CS,
		reset:     config.Reset,
		batchSize: config.BatchSize,
	}, nil
}

func (c *spiConn) String() string {
	return fmt.Sprintf("SPI bus %s", c.port)
}

func (c *spiConn) Close() error {
	return c.port.Close()
}

func (c *spiConn) Reset(level gpio.Level) error {
	return c.reset.Out(level)
}

func (c *spiConn) Select(level gpio.Level) error {
	return optionalOut(c.cs, level)
}

func (c *spiConn) Command(cmnd byte) error {
	if err := c.dc.update(gpio.Low); err != nil {
		return err
	}
	return c.bus.Tx([]byte{cmnd}, nil)
}

func (c *spiConn) Data(data ...byte) error {
	for len(data) > 0 {
		n := min(len(data), c.batchSize)
		if err := c.bus.Tx(data[:n], nil); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

func (c *spiConn) SetDataMode() error {
	return c.dc.update(gpio.High)
}

func (c *spiConn) SetCommandMode() error {
	return c.dc.update(gpio.Low)
}
