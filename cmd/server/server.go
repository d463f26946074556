package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"opsagent/internal/config"
	"opsagent/internal/infrastructure/crontab"
	"opsagent/internal/infrastructure/logger"
	"opsagent/internal/infrastructure/metrics"
	"opsagent/internal/infrastructure/observability"
	"opsagent/internal/infrastructure/seed"
	"opsagent/internal/interfaces/httpserver"

	_ "net/http/pprof"
)

type Application struct {
	httpServer *httpserver.HTTPServer
	crontab    *crontab.Crontab
	seeder     *seed.Seeder
	config     *config.Config
	logger     zerolog.Logger
}

// @title OpsAgent API
// @version 1.0
// @description Operations agent exposing CRM, ERP and HR tooling through a natural-language command endpoint.
// @BasePath /

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func (application *Application) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var eg errgroup.Group
	eg.Go(func() error {
		err := application.serveMetrics(runCtx)
		if err != nil {
			cancel()
		}
		return err
	})
	eg.Go(func() error {
		err := application.crontab.Run(runCtx)
		if err != nil {
			cancel()
		}
		return err
	})
	eg.Go(func() error {
		err := application.httpServer.Run(runCtx)
		if err != nil {
			cancel()
		}
		return err
	})
	if application.config.IsDev() {
		eg.Go(func() error {
			err := servePprof(runCtx, application.config.PprofPort)
			if err != nil {
				cancel()
			}
			return err
		})
	}

	return eg.Wait()
}

func (application *Application) serveMetrics(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	server := &http.Server{
		Addr:    application.config.MetricsAddr(),
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		application.logger.Info().Str("addr", server.Addr).Msg("metrics server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// servePprof exposes the net/http/pprof handlers registered on the default
// mux by the blank import above.
func servePprof(ctx context.Context, port int) error {
	server := &http.Server{Addr: fmt.Sprintf(":%d", port)}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func main() {
	loadEnvFiles()

	log := logger.GetLogger()

	application, err := CreateApplication()
	if err != nil {
		log.Fatal().Err(err).Msg("create application")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	otelShutdown, err := observability.Setup(ctx, application.config, application.logger)
	if err != nil {
		application.logger.Error().Err(err).Msg("initialize observability")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(shutdownCtx); err != nil {
				application.logger.Error().Err(err).Msg("shutdown telemetry")
			}
		}()
	}

	if err := application.seeder.Run(ctx); err != nil {
		application.logger.Fatal().Err(err).Msg("seed demo data")
	}

	if err := application.Start(ctx); err != nil {
		application.logger.Fatal().Err(err).Msg("application stopped with error")
	}

	application.logger.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
