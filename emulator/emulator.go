// Package emulator implements an in-memory ILI9341 controller.
//
// A Panel satisfies the ili9341.Conn interface. It interprets the command
// stream (address window, memory write, memory access control, display
// on/off) and renders memory writes into an RGB565 image, which makes it
// useful for tests and for previewing output without hardware.
package emulator

import (
	"fmt"
	"image"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/ili9341/pixel"
)

// Commands understood by the emulator.
const (
	cmdSWRESET = 0x01
	cmdSLPIN   = 0x10
	cmdSLPOUT  = 0x11
	cmdINVOFF  = 0x20
	cmdINVON   = 0x21
	cmdDISPOFF = 0x28
	cmdDISPON  = 0x29
	cmdCASET   = 0x2A
	cmdPASET   = 0x2B
	cmdRAMWR   = 0x2C
	cmdMADCTL  = 0x36
)

// MADCTL bits.
const (
	madctlMV = 0x20
	madctlMX = 0x40
	madctlMY = 0x80
)

// DefaultBase is the MADCTL value at which memory coordinates equal image
// coordinates, matching the driver's NoRotation.
const DefaultBase = madctlMX

// Panel is an emulated controller with a width×height glass.
type Panel struct {
	// Base is the MADCTL value that maps memory to the image unrotated.
	Base byte

	img      *pixel.RGB565Image
	selected bool
	reset    gpio.Level
	dc       gpio.Level
	cmd      byte
	args     []byte
	madctl   byte
	col, row [2]int
	x, y     int
	hi       byte
	half     bool
	on       bool
	asleep   bool
	inverted bool
	commands []byte
	pixels   int
}

// New returns a powered up panel, asleep with the display off.
func New(width, height int) *Panel {
	p := &Panel{
		Base:  DefaultBase,
		img:   pixel.NewRGB565Image(width, height),
		reset: gpio.High,
	}
	p.powerOn()
	return p
}

func (p *Panel) powerOn() {
	p.madctl = 0
	p.col = [2]int{0, p.img.Rect.Dx() - 1}
	p.row = [2]int{0, p.img.Rect.Dy() - 1}
	p.on, p.asleep, p.inverted = false, true, false
	p.cmd, p.args, p.half = 0, p.args[:0], false
}

func (p *Panel) String() string {
	return fmt.Sprintf("emulated ILI9341 %s", p.img.Rect.Size())
}

// Image is the glass contents.
func (p *Panel) Image() *pixel.RGB565Image {
	return p.img
}

// Commands returns every command byte received, in order.
func (p *Panel) Commands() []byte {
	return append([]byte(nil), p.commands...)
}

// Pixels is the number of pixels written to memory.
func (p *Panel) Pixels() int {
	return p.pixels
}

// On reports whether the display is on and awake.
func (p *Panel) On() bool {
	return p.on && !p.asleep
}

// Inverted reports whether display inversion is on.
func (p *Panel) Inverted() bool {
	return p.inverted
}

// MADCTL is the current memory access control value.
func (p *Panel) MADCTL() byte {
	return p.madctl
}

// Window is the current address window in memory coordinates.
func (p *Panel) Window() image.Rectangle {
	return image.Rect(p.col[0], p.row[0], p.col[1]+1, p.row[1]+1)
}

func (p *Panel) Close() error {
	return nil
}

func (p *Panel) Reset(level gpio.Level) error {
	if p.reset == gpio.Low && level == gpio.High {
		p.powerOn()
	}
	p.reset = level
	return nil
}

func (p *Panel) Select(level gpio.Level) error {
	p.selected = level == gpio.Low
	return nil
}

func (p *Panel) Command(cmnd byte) error {
	p.dc = gpio.Low
	p.write(cmnd)
	return nil
}

func (p *Panel) Data(data ...byte) error {
	for _, b := range data {
		p.write(b)
	}
	return nil
}

func (p *Panel) SetDataMode() error {
	p.dc = gpio.High
	return nil
}

func (p *Panel) SetCommandMode() error {
	p.dc = gpio.Low
	return nil
}

func (p *Panel) write(b byte) {
	if !p.selected || p.reset == gpio.Low {
		return
	}
	if p.dc == gpio.Low {
		p.execute(b)
	} else {
		p.parameter(b)
	}
}

func (p *Panel) execute(cmnd byte) {
	p.commands = append(p.commands, cmnd)
	p.cmd, p.args, p.half = cmnd, p.args[:0], false
	switch cmnd {
	case cmdSWRESET:
		p.powerOn()
	case cmdSLPIN:
		p.asleep = true
	case cmdSLPOUT:
		p.asleep = false
	case cmdDISPOFF:
		p.on = false
	case cmdDISPON:
		p.on = true
	case cmdINVOFF:
		p.inverted = false
	case cmdINVON:
		p.inverted = true
	case cmdRAMWR:
		p.x, p.y = p.col[0], p.row[0]
	}
}

func (p *Panel) parameter(b byte) {
	switch p.cmd {
	case cmdCASET, cmdPASET:
		p.args = append(p.args, b)
		if len(p.args) == 4 {
			start := int(p.args[0])<<8 | int(p.args[1])
			end := int(p.args[2])<<8 | int(p.args[3])
			if p.cmd == cmdCASET {
				p.col = [2]int{start, end}
			} else {
				p.row = [2]int{start, end}
			}
		}
	case cmdMADCTL:
		if len(p.args) == 0 {
			p.madctl = b
		}
		p.args = append(p.args, b)
	case cmdRAMWR:
		if !p.half {
			p.hi, p.half = b, true
			return
		}
		p.half = false
		p.store(pixel.RGB565(uint16(p.hi)<<8 | uint16(b)))
	default:
		p.args = append(p.args, b)
	}
}

// store writes one pixel at the memory pointer and advances it row-major,
// wrapping within the address window.
func (p *Panel) store(c pixel.RGB565) {
	var (
		m      = p.madctl ^ p.Base
		x, y   = p.x, p.y
		bounds = p.img.Rect.Size()
	)
	if m&madctlMV != 0 {
		x, y = y, x
	}
	if m&madctlMX != 0 {
		x = bounds.X - 1 - x
	}
	if m&madctlMY != 0 {
		y = bounds.Y - 1 - y
	}
	p.img.SetRGB565(x, y, c)
	p.pixels++

	if p.x++; p.x > p.col[1] {
		p.x = p.col[0]
		if p.y++; p.y > p.row[1] {
			p.y = p.row[0]
		}
	}
}
