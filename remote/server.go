// Package remote exposes a display driver over net/rpc.
package remote

import (
	"bytes"
	"context"
	"image"
	"net/http"
	"net/rpc"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/inhies/go-bytesize"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/BeatGlow/ili9341"
	"github.com/BeatGlow/ili9341/pixel"
)

// Errors
var (
	ErrCommand      = errors.New("remote: unknown command")
	ErrBitmapSize   = errors.New("remote: bitmap pixel count is not a multiple of 8")
	ErrBitmapLength = errors.New("remote: bitmap length does not match its size")
)

// Display is the part of the driver that is served.
type Display interface {
	Show(bool) error
	SetInverted(bool) error
	SetRotation(ili9341.Rotation) error
	FillScreen(pixel.RGB565) error
	FillRectangle(x, y, w, h uint16, c pixel.RGB565) error
	DrawBitmap(width, height, x, y uint16, fg, bg pixel.RGB565, src ili9341.BitSource) error
	DrawImage(x, y uint16, img image.Image) error
}

type stater interface {
	State() ili9341.State
}

// Service serves one Display. Calls are serialized.
type Service struct {
	mu  sync.Mutex
	dev Display
	log *zap.Logger
}

func NewService(dev Display, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{dev: dev, log: logger.Named("remote")}
}

// Register publishes s on srv as "Service".
func Register(srv *rpc.Server, s *Service) error {
	return srv.RegisterName("Service", s)
}

// Proxy serves s over HTTP on srv for the lifetime of the application.
func Proxy(s *Service, srv *http.Server, lifecycle fx.Lifecycle) error {
	rs := rpc.NewServer()
	if err := Register(rs, s); err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle(rpc.DefaultRPCPath, rs)
	srv.Handler = mux

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.log.Info("listening", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != http.ErrServerClosed {
					s.log.Fatal("serve", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return nil
}

func (s *Service) call(name string, fn func() error, fields ...zap.Field) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.With(zap.String("req", xid.New().String()))
	start := time.Now()
	err := fn()
	fields = append(fields, zap.Duration("took", time.Since(start)))
	if err != nil {
		log.With(zap.Error(err)).Info(name+" failed", fields...)
		return err
	}
	log.Debug(name, fields...)
	return nil
}

func (s *Service) Command(name string, _ *EmptyResponse) error {
	return s.call("command", func() error {
		switch name {
		case "show":
			return s.dev.Show(true)
		case "hide":
			return s.dev.Show(false)
		case "invert":
			return s.dev.SetInverted(true)
		case "normal":
			return s.dev.SetInverted(false)
		}
		return errors.Wrap(ErrCommand, name)
	}, zap.String("name", name))
}

func (s *Service) SetRotation(req SetRotationRequest, _ *EmptyResponse) error {
	return s.call("set-rotation", func() error {
		if r := ili9341.Rotation(req.Rotation); r > ili9341.Rotate270 {
			return errors.Wrapf(ili9341.ErrRotation, "%d", req.Rotation)
		}
		return s.dev.SetRotation(ili9341.Rotation(req.Rotation))
	}, zap.Uint8("rotation", req.Rotation))
}

func (s *Service) FillScreen(req FillRequest, _ *EmptyResponse) error {
	return s.call("fill-screen", func() error {
		return s.dev.FillScreen(pixel.RGB565(req.Color))
	}, zap.Uint16("color", req.Color))
}

func (s *Service) FillRectangle(req FillRequest, _ *EmptyResponse) error {
	return s.call("fill-rectangle", func() error {
		return s.dev.FillRectangle(req.X, req.Y, req.Width, req.Height, pixel.RGB565(req.Color))
	},
		zap.Uint16s("rect", []uint16{req.X, req.Y, req.Width, req.Height}),
		zap.Uint16("color", req.Color))
}

func (s *Service) DrawBitmap(req *DrawBitmapRequest, _ *EmptyResponse) error {
	return s.call("draw-bitmap", func() error {
		total := int(req.Width) * int(req.Height)
		if total%8 != 0 {
			return errors.Wrapf(ErrBitmapSize, "%dx%d", req.Width, req.Height)
		}
		if len(req.Bits) != total/8 {
			return errors.Wrapf(ErrBitmapLength, "%dx%d wants %d bytes, got %d", req.Width, req.Height, total/8, len(req.Bits))
		}
		return s.dev.DrawBitmap(req.Width, req.Height, req.X, req.Y,
			pixel.RGB565(req.Foreground), pixel.RGB565(req.Background),
			ili9341.Bytes(req.Bits))
	},
		zap.Uint16s("rect", []uint16{req.X, req.Y, req.Width, req.Height}),
		zap.Stringer("payload", bytesize.New(float64(len(req.Bits)))))
}

func (s *Service) DrawImage(req *DrawImageRequest, _ *EmptyResponse) error {
	return s.call("draw-image", func() error {
		img, err := imaging.Decode(bytes.NewReader(req.Image))
		if err != nil {
			return errors.Wrap(err, "remote: decode image")
		}
		return s.dev.DrawImage(req.X, req.Y, img)
	},
		zap.Uint16("x", req.X),
		zap.Uint16("y", req.Y),
		zap.Stringer("payload", bytesize.New(float64(len(req.Image)))))
}

func (s *Service) State(_ EmptyResponse, resp *StateResponse) error {
	return s.call("state", func() error {
		st, ok := s.dev.(stater)
		if !ok {
			return errors.New("remote: display does not report its state")
		}
		state := st.State()
		*resp = StateResponse{
			Width:    state.Width,
			Height:   state.Height,
			Rotation: uint8(state.Rotation),
		}
		return nil
	})
}
