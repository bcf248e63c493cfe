package main

import (
	"context"
	"net/http"

	"github.com/disintegration/imaging"
	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/BeatGlow/ili9341/internal/bus"
	"github.com/BeatGlow/ili9341/remote"
)

func main() {
	var flags bus.Flags
	flags.Register(flag.CommandLine)
	listen := flag.String("listen", ":9341", "listen addr")
	snapshot := flag.String("png", "", "Save the emulated panel to a PNG file on exit")
	flag.Parse()

	fx.New(
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		fx.Provide(
			flags.Logger,
			func(logger *zap.Logger, lifecycle fx.Lifecycle) (remote.Display, error) {
				d, panel, err := flags.Open(logger)
				if err != nil {
					return nil, err
				}
				lifecycle.Append(fx.Hook{
					OnStop: func(ctx context.Context) error {
						if panel != nil && *snapshot != "" {
							if err := imaging.Save(panel.Image(), *snapshot); err != nil {
								logger.With(zap.Error(err)).Info("snapshot failed")
							}
						}
						return d.Close()
					},
				})
				return d, nil
			},
			func() *http.Server {
				return &http.Server{Addr: *listen}
			},
			remote.NewService,
		),
		fx.Invoke(
			remote.Proxy,
		),
	).Run()
}
