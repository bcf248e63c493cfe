package emulator

import (
	"image"
	"testing"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/ili9341/pixel"
)

func command(p *Panel, cmnd byte, data ...byte) {
	_ = p.Command(cmnd)
	if len(data) > 0 {
		_ = p.SetDataMode()
		_ = p.Data(data...)
	}
}

func selected(w, h int) *Panel {
	p := New(w, h)
	_ = p.Select(gpio.Low)
	command(p, cmdMADCTL, DefaultBase)
	return p
}

func TestPanelPower(t *testing.T) {
	p := New(4, 4)
	if p.On() {
		t.Fatal("expected new panel to be off")
	}

	// Not selected: everything is ignored.
	command(p, cmdSLPOUT)
	command(p, cmdDISPON)
	if p.On() || len(p.Commands()) != 0 {
		t.Fatal("expected unselected panel to ignore commands")
	}

	_ = p.Select(gpio.Low)
	command(p, cmdSLPOUT)
	command(p, cmdDISPON)
	command(p, cmdINVON)
	if !p.On() || !p.Inverted() {
		t.Fatal("expected panel to be on and inverted")
	}

	command(p, cmdSLPIN)
	if p.On() {
		t.Error("expected sleeping panel to be off")
	}

	_ = p.Reset(gpio.Low)
	command(p, cmdSLPOUT)
	_ = p.Reset(gpio.High)
	if p.On() || p.Inverted() {
		t.Error("expected hardware reset to power cycle the panel")
	}
	if v := len(p.Commands()); v != 4 {
		t.Errorf("expected 4 commands, got %d", v)
	}
}

func TestPanelWindow(t *testing.T) {
	p := selected(8, 6)
	command(p, cmdCASET, 0x00, 0x02, 0x00, 0x04)
	command(p, cmdPASET, 0x00, 0x01, 0x00, 0x02)
	if w := p.Window(); w != image.Rect(2, 1, 5, 3) {
		t.Fatalf("unexpected window %s", w)
	}

	// Seven pixels into a 3x2 window wraps to the top left.
	var data []byte
	for i := 1; i <= 7; i++ {
		data = append(data, 0x00, byte(i))
	}
	command(p, cmdRAMWR, data...)

	img := p.Image()
	for _, test := range []struct {
		X, Y int
		Want pixel.RGB565
	}{
		{2, 1, 7},
		{3, 1, 2},
		{4, 1, 3},
		{2, 2, 4},
		{3, 2, 5},
		{4, 2, 6},
		{1, 1, 0},
		{5, 2, 0},
	} {
		if c := img.RGB565At(test.X, test.Y); c != test.Want {
			t.Errorf("(%d,%d): expected %#04x, got %#04x", test.X, test.Y, uint16(test.Want), uint16(c))
		}
	}
	if p.Pixels() != 7 {
		t.Errorf("expected 7 pixels, got %d", p.Pixels())
	}
}

func TestPanelMADCTL(t *testing.T) {
	for _, test := range []struct {
		Name   string
		MADCTL byte
		Want   image.Point
	}{
		{"base", DefaultBase, image.Pt(1, 0)},
		{"bgr", DefaultBase | 0x08, image.Pt(1, 0)},
		{"mirror x", 0x00, image.Pt(2, 0)},
		{"mirror y", 0xC0, image.Pt(1, 2)},
		{"exchange", 0x60, image.Pt(0, 1)},
		{"rotate", 0x20, image.Pt(3, 1)},
	} {
		t.Run(test.Name, func(it *testing.T) {
			p := selected(4, 3)
			command(p, cmdMADCTL, test.MADCTL)
			if p.MADCTL() != test.MADCTL {
				it.Fatalf("expected MADCTL %#02x, got %#02x", test.MADCTL, p.MADCTL())
			}
			command(p, cmdCASET, 0, 1, 0, 1)
			command(p, cmdPASET, 0, 0, 0, 0)
			command(p, cmdRAMWR, 0xF8, 0x00)
			if c := p.Image().RGB565At(test.Want.X, test.Want.Y); c != pixel.Red {
				it.Errorf("expected pixel at %s", test.Want)
			}
		})
	}
}
