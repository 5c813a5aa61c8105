package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/prode/app"
	"github.com/Black-And-White-Club/prode/config"
	"github.com/Black-And-White-Club/prode/internal/observability"
	"github.com/Black-And-White-Club/prode/internal/observability/attr"
	"github.com/urfave/cli/v2"
)

func newServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API and background workers",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			obs := observability.Init(config.ToObsConfig(cfg))
			logger := obs.Provider.Logger

			application := &app.App{}
			if err := application.Initialize(ctx, cfg, obs); err != nil {
				logger.Error("Failed to initialize application", attr.Error(err))
				_ = application.Close()
				return err
			}
			defer func() {
				if err := application.Close(); err != nil {
					logger.Error("Shutdown finished with errors", attr.Error(err))
				}
			}()

			return application.Run(ctx)
		},
	}
}
