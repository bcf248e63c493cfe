// Package bus opens a display from command line flags.
package bus

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/ili9341"
	"github.com/BeatGlow/ili9341/emulator"
)

// Flags configure the bus, the pins and the driver.
type Flags struct {
	Bus       string
	Width     int
	Height    int
	Rotate    string
	Data      []string
	WR        string
	RD        string
	DC        string
	CS        string
	Reset     string
	Backlight string
	SPIPort   string
	SPISpeed  int
	ResetFile string
	WakeFile  string
	Debug     bool
}

// Register adds the flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Bus, "bus", "emulate", "Bus type (parallel, spi or emulate)")
	fs.IntVar(&f.Width, "width", ili9341.DefaultWidth, "Panel width")
	fs.IntVar(&f.Height, "height", ili9341.DefaultHeight, "Panel height")
	fs.StringVar(&f.Rotate, "rotate", "", "Display rotation")
	fs.StringSliceVar(&f.Data, "data", []string{"GPIO5", "GPIO6", "GPIO12", "GPIO13", "GPIO16", "GPIO19", "GPIO20", "GPIO21"}, "Parallel data GPIO pins D0 through D7")
	fs.StringVar(&f.WR, "wr", "GPIO22", "Parallel write strobe GPIO pin")
	fs.StringVar(&f.RD, "rd", "", "Parallel read strobe GPIO pin")
	fs.StringVar(&f.DC, "dc", "GPIO24", "Data/Command GPIO pin (DC)")
	fs.StringVar(&f.CS, "cs", "GPIO8", "Chip select GPIO pin")
	fs.StringVar(&f.Reset, "reset", "GPIO25", "Reset GPIO pin")
	fs.StringVar(&f.Backlight, "bl", "", "Backlight GPIO pin")
	fs.StringVar(&f.SPIPort, "spi-port", "", "SPI port (default: use first available)")
	fs.IntVar(&f.SPISpeed, "spi-mhz", 10, "SPI clock in MHz")
	fs.StringVar(&f.ResetFile, "reset-table", "", "File with the reset command table")
	fs.StringVar(&f.WakeFile, "wake-table", "", "File with the wake command table")
	fs.BoolVarP(&f.Debug, "debug", "d", false, "Debug logging")
}

// Rotation parses the rotation flag.
func (f *Flags) Rotation() (ili9341.Rotation, error) {
	switch f.Rotate {
	case "", "no", "0":
		return ili9341.NoRotation, nil
	case "90", "right", "cw":
		return ili9341.Rotate90, nil
	case "180", "flip":
		return ili9341.Rotate180, nil
	case "270", "left", "ccw":
		return ili9341.Rotate270, nil
	default:
		return 0, fmt.Errorf("invalid rotation %q specified", f.Rotate)
	}
}

// Logger is a development logger when debugging, a production one otherwise.
func (f *Flags) Logger() (*zap.Logger, error) {
	if f.Debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Open initializes the display. The panel is only set when emulating.
func (f *Flags) Open(logger *zap.Logger) (*ili9341.Driver, *emulator.Panel, error) {
	rotation, err := f.Rotation()
	if err != nil {
		return nil, nil, err
	}
	config := &ili9341.Config{
		Width:    f.Width,
		Height:   f.Height,
		Rotation: rotation,
		Logger:   logger.Named("ili9341"),
	}
	if err = f.loadTables(afero.NewOsFs(), config); err != nil {
		return nil, nil, err
	}

	var (
		c     ili9341.Conn
		panel *emulator.Panel
	)
	switch bus := strings.ToLower(f.Bus); bus {
	case "emulate":
		panel = emulator.New(f.Width, f.Height)
		c = panel
	case "parallel", "spi":
		if _, err = host.Init(); err != nil {
			return nil, nil, err
		}
		config.Backlight = pin(f.Backlight)
		if bus == "parallel" {
			c, err = f.openParallel()
		} else {
			c, err = ili9341.OpenSPI(&ili9341.SPIConfig{
				Port:  f.SPIPort,
				Speed: physic.Frequency(f.SPISpeed) * physic.MegaHertz,
				Reset: pin(f.Reset),
				DC:    pin(f.DC),
				CS:    pin(f.CS),
			})
		}
		if err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("unsupported bus type %q", f.Bus)
	}
	logger.Info("using connection", zap.Stringer("conn", c))

	d, err := ili9341.New(c, config)
	if err != nil {
		_ = c.Close()
		return nil, nil, err
	}
	return d, panel, nil
}

func (f *Flags) openParallel() (ili9341.Conn, error) {
	if len(f.Data) != 8 {
		return nil, fmt.Errorf("expected 8 data pins, got %d", len(f.Data))
	}
	config := &ili9341.ParallelConfig{
		WR:    pin(f.WR),
		RD:    pin(f.RD),
		DC:    pin(f.DC),
		CS:    pin(f.CS),
		Reset: pin(f.Reset),
	}
	for i, name := range f.Data {
		if config.Data[i] = pin(name); config.Data[i] == nil {
			return nil, fmt.Errorf("unknown data pin %q", name)
		}
	}
	return ili9341.OpenParallel(config)
}

func (f *Flags) loadTables(fs afero.Fs, config *ili9341.Config) error {
	if f.ResetFile != "" {
		t, err := ili9341.LoadTable(fs, f.ResetFile)
		if err != nil {
			return errors.WithMessage(err, "reset table")
		}
		config.ResetTable = &t
	}
	if f.WakeFile != "" {
		t, err := ili9341.LoadTable(fs, f.WakeFile)
		if err != nil {
			return errors.WithMessage(err, "wake table")
		}
		config.WakeTable = &t
	}
	return nil
}

// pin looks up a GPIO pin by name, nil when name is empty or unknown.
func pin(name string) gpio.PinOut {
	if name == "" {
		return nil
	}
	if p := gpioreg.ByName(name); p != nil {
		return p
	}
	return nil
}
