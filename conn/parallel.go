// Package conn implements low-level buses for display controllers.
package conn

import (
	"fmt"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/gpio"
)

// Parallel8 errors.
var (
	ErrDataPin  = errors.New("conn: parallel data GPIO pin is invalid")
	ErrWritePin = errors.New("conn: parallel write strobe (WR) GPIO pin is invalid")
)

// Parallel8 is an 8-bit 8080-style parallel bus driven by GPIO pins.
//
// A byte is presented on D0..D7 and latched by the controller on the rising
// edge of the WR strobe. The bus carries no notion of command or data, that
// is selected by a separate DC pin owned by the caller.
type Parallel8 struct {
	data  [8]gpio.PinOut
	wr    gpio.PinOut
	last  byte
	valid bool
}

// NewParallel8 claims the data pins (D0 first) and the WR strobe pin.
func NewParallel8(data [8]gpio.PinOut, wr gpio.PinOut) (*Parallel8, error) {
	for i, pin := range data {
		if pin == nil || pin == gpio.INVALID {
			return nil, errors.Wrapf(ErrDataPin, "D%d", i)
		}
	}
	if wr == nil || wr == gpio.INVALID {
		return nil, ErrWritePin
	}
	if err := wr.Out(gpio.High); err != nil {
		return nil, errors.Wrap(err, "conn: WR idle")
	}
	return &Parallel8{
		data: data,
		wr:   wr,
	}, nil
}

func (p *Parallel8) String() string {
	return fmt.Sprintf("parallel8 D0=%s WR=%s", p.data[0], p.wr)
}

// WriteByte presents b on the data lines and strobes WR.
func (p *Parallel8) WriteByte(b byte) error {
	if err := p.present(b); err != nil {
		return err
	}
	if err := p.wr.Out(gpio.Low); err != nil {
		return err
	}
	return p.wr.Out(gpio.High)
}

// Write implements io.Writer, one strobe per byte.
func (p *Parallel8) Write(b []byte) (n int, err error) {
	for _, v := range b {
		if err = p.WriteByte(v); err != nil {
			return
		}
		n++
	}
	return
}

// present only toggles the data lines that differ from the previous byte.
func (p *Parallel8) present(b byte) error {
	changed := ^byte(0)
	if p.valid {
		changed = b ^ p.last
		if changed == 0 {
			return nil
		}
	}
	for i, pin := range p.data {
		mask := byte(1) << uint(i)
		if changed&mask == 0 {
			continue
		}
		if err := pin.Out(gpio.Level(b&mask != 0)); err != nil {
			p.valid = false
			return err
		}
	}
	p.last, p.valid = b, true
	return nil
}

// Halt releases the bus pins.
func (p *Parallel8) Halt() error {
	for _, pin := range p.data {
		if err := pin.Halt(); err != nil {
			return err
		}
	}
	return p.wr.Halt()
}
