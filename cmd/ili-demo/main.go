package main

import (
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/BeatGlow/ili9341"
	"github.com/BeatGlow/ili9341/draw"
	"github.com/BeatGlow/ili9341/emulator"
	"github.com/BeatGlow/ili9341/internal/bus"
	"github.com/BeatGlow/ili9341/pixel"
	"github.com/BeatGlow/ili9341/remote"
)

func main() {
	var flags bus.Flags
	flags.Register(flag.CommandLine)
	remoteFlag := flag.String("remote", "", "Draw on an ili-serve server at this address")
	textFlag := flag.String("text", "Hello, ILI9341", "Label text")
	fontSizeFlag := flag.Float64("font-size", 24, "Label font size in points")
	imageFlag := flag.String("image", "", "Image file to draw")
	monoFlag := flag.Bool("mono", false, "Draw the image as a monochrome bitmap")
	pngFlag := flag.String("png", "", "Save the emulated panel to a PNG file")
	flag.Parse()

	logger, err := flags.Logger()
	if err != nil {
		fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	var (
		output remote.Display
		panel  *emulator.Panel
		size   image.Point
	)
	if *remoteFlag != "" {
		client, err := remote.Dial(*remoteFlag)
		if err != nil {
			fatal(err)
		}
		defer client.Close()

		state, err := client.State()
		if err != nil {
			fatal(err)
		}
		output, size = client, image.Pt(int(state.Width), int(state.Height))
		logger.Info("using remote display", zap.String("addr", *remoteFlag))
	} else {
		d, p, err := flags.Open(logger)
		if err != nil {
			fatal(err)
		}
		defer d.Close()
		output, panel, size = d, p, d.Bounds().Size()
		logger.Info("using driver", zap.Stringer("driver", d))
	}

	// Background with a frame around the edge.
	if err = output.FillScreen(pixel.Navy); err != nil {
		fatal(err)
	}
	frame := image.Rectangle{Max: size}
	for i := 0; i < 2; i++ {
		if err = draw.Rectangle(output, frame.Inset(i), pixel.White); err != nil {
			fatal(err)
		}
	}
	if err = draw.Line(output, image.Pt(2, size.Y-3), image.Pt(size.X-3, 2), pixel.Gray); err != nil {
		fatal(err)
	}

	top := 8
	if *textFlag != "" {
		label, err := renderLabel(*textFlag, *fontSizeFlag, size.X-16)
		if err != nil {
			fatal(err)
		}
		b := label.Bounds()
		if err = draw.RoundedBox(output, image.Rect(4, top-4, 12+b.Dx(), top+b.Dy()+4), 4, pixel.Maroon); err != nil {
			fatal(err)
		}
		if err = output.DrawBitmap(uint16(b.Dx()), uint16(b.Dy()), 8, uint16(top), pixel.Yellow, pixel.Maroon, ili9341.ImageSource(label)); err != nil {
			fatal(err)
		}
		top += b.Dy() + 8
	}

	if *imageFlag != "" {
		img, err := imaging.Open(*imageFlag)
		if err != nil {
			fatal(err)
		}
		img = imaging.Fit(img, size.X-16, size.Y-top-8, imaging.Lanczos)
		logger.Debug("image", zap.String("file", *imageFlag), zap.Stringer("size", img.Bounds().Size()))

		if *monoFlag {
			gray := imaging.Grayscale(img)
			b := gray.Bounds()
			gray = imaging.Crop(gray, image.Rect(0, 0, b.Dx()&^7, b.Dy()))
			b = gray.Bounds()
			err = output.DrawBitmap(uint16(b.Dx()), uint16(b.Dy()), 8, uint16(top), pixel.White, pixel.Black, ili9341.ImageSource(gray))
		} else {
			err = output.DrawImage(8, uint16(top), img)
		}
		if err != nil {
			fatal(err)
		}
	}

	if *pngFlag != "" {
		if panel == nil {
			fatal(fmt.Errorf("--png requires the emulated bus"))
		}
		if err = imaging.Save(panel.Image(), *pngFlag); err != nil {
			fatal(err)
		}
		logger.Info("saved panel", zap.String("file", *pngFlag), zap.Int("pixels", panel.Pixels()))
	}
}

// renderLabel draws text in a gray image at most maxWidth wide. The width is
// a multiple of 8 so the image packs into whole bitmap bytes.
func renderLabel(text string, size float64, maxWidth int) (*image.Gray, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	defer face.Close()

	var (
		metrics = face.Metrics()
		width   = min((font.MeasureString(face, text).Ceil()+7)&^7, maxWidth&^7)
		height  = (metrics.Ascent + metrics.Descent).Ceil()
		dst     = image.NewGray(image.Rect(0, 0, width, height))
		c       = freetype.NewContext()
	)
	c.SetDPI(72)
	c.SetFont(f)
	c.SetFontSize(size)
	c.SetHinting(font.HintingFull)
	c.SetClip(dst.Bounds())
	c.SetDst(dst)
	c.SetSrc(image.White)
	if _, err = c.DrawString(text, fixed.Point26_6{Y: metrics.Ascent}); err != nil {
		return nil, err
	}
	return dst, nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
