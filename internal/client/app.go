// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/roadwatch/roadwatch/internal/config"
	handlerhttp "github.com/roadwatch/roadwatch/internal/handler/http"
	"github.com/roadwatch/roadwatch/internal/logger"
	"github.com/roadwatch/roadwatch/internal/service"
	"github.com/roadwatch/roadwatch/internal/workers"
)

type App struct {
	cfg      *config.StructuredConfig
	services *service.Services
	workers  *workers.Workers
	facade   *http.Server
	logger   *logger.Logger
}

func NewApp(cfg *config.StructuredConfig, services *service.Services, background *workers.Workers, handler *handlerhttp.Handler, log *logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}

	facade := &http.Server{
		Addr:              cfg.Facade.HTTPAddress,
		Handler:           handler.Init(),
		ReadHeaderTimeout: cfg.Facade.RequestTimeout,
	}

	return &App{
		cfg:      cfg,
		services: services,
		workers:  background,
		facade:   facade,
		logger:   log,
	}, nil
}

// Run starts the background workers and the localhost façade, then blocks
// until the process receives SIGINT or SIGTERM.
func (a *App) Run() error {
	// surfaces a persisted session into the auth-state hub before the UI
	// asks for it
	if _, err := a.services.Auth.Session(context.Background()); err != nil &&
		!errors.Is(err, service.ErrNoSession) {
		a.logger.Warn().Err(err).Msg("stored session restore failed")
	}

	a.workers.Run()
	defer a.workers.Stop()

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info().Str("address", a.facade.Addr).Msg("facade listening")
		if err := a.facade.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return fmt.Errorf("facade serve: %w", err)
	case sig := <-stop:
		a.logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Facade.RequestTimeout)
	defer cancel()
	if err := a.facade.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("facade shutdown: %w", err)
	}
	return nil
}
