package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Black-And-White-Club/prode/internal/observability/attr"
)

const shutdownTimeout = 15 * time.Second

// Run serves HTTP, runs the message router and every module until ctx is
// cancelled, then shuts everything down.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Provider.Logger

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for _, run := range []func(context.Context, *sync.WaitGroup){
		app.Modules.Auth.Run,
		app.Modules.User.Run,
		app.Modules.Match.Run,
		app.Modules.Room.Run,
		app.Modules.Prediction.Run,
		app.Modules.Standings.Run,
	} {
		wg.Add(1)
		go run(ctx, &wg)
	}

	errCh := make(chan error, 3)
	go func() {
		if err := app.Router.Run(ctx); err != nil {
			errCh <- fmt.Errorf("message router: %w", err)
		}
	}()

	srv := &http.Server{
		Addr:              app.Config.HTTP.Addr,
		Handler:           app.HTTPRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.InfoContext(ctx, "HTTP server listening", attr.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var metricsSrv *http.Server
	if addr := app.Config.Observability.MetricsAddress; addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", app.Observability.MetricsHandler())
		metricsSrv = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown requested")
	case runErr = <-errCh:
		logger.Error("Component failed, shutting down", attr.Error(runErr))
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", attr.Error(err))
	}
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}

	wg.Wait()
	return runErr
}

// Close releases modules first, then the transports and the database.
func (app *App) Close() error {
	logger := app.Observability.Provider.Logger
	var errs []error

	if app.Modules != nil {
		for _, c := range []interface{ Close() error }{
			app.Modules.Standings,
			app.Modules.Prediction,
			app.Modules.Room,
			app.Modules.Match,
			app.Modules.User,
			app.Modules.Auth,
		} {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if app.Router != nil {
		if err := app.Router.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close message router: %w", err))
		}
	}
	if app.EventBus != nil {
		if err := app.EventBus.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if app.Pool != nil {
		app.Pool.Close()
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}

	logger.Info("Application closed")
	return errors.Join(errs...)
}
