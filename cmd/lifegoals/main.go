// Command lifegoals serves the life goals dashboard.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"lifegoals/internal/amqp"
	"lifegoals/internal/backend"
	"lifegoals/internal/cli"
	"lifegoals/internal/dashboard"
	apphttp "lifegoals/internal/http"
	applog "lifegoals/internal/log"
	"lifegoals/internal/worker"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cli.LoadEnvFile()
	cfg, logger := cli.LoadAndValidateConfig()

	ctx, stop := cli.SignalContext(logger)
	defer stop()

	source, err := backend.Open(ctx, cfg.BackendConfig(), logger)
	if err != nil {
		logger.Error("Failed to initialize goal source", applog.FieldError, err, applog.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if err := source.Close(); err != nil {
			logger.Warn("Goal source cleanup failed", applog.FieldError, err, applog.FieldBackend, source.Type)
		}
	}()

	locale, err := dashboard.LookupLocale(cfg.Locale)
	if err != nil {
		logger.Error("Unknown locale", applog.FieldError, err)
		os.Exit(1)
	}

	srv, err := apphttp.NewServer(apphttp.Options{
		Addr:               ":" + cfg.Port,
		Lister:             source.Lister,
		Locale:             locale,
		CacheTTL:           cfg.CacheTTL,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		TrustedProxies:     cfg.TrustedProxies,
		Logger:             logger,
	})
	if err != nil {
		logger.Error("Failed to build HTTP server", applog.FieldError, err)
		os.Exit(1)
	}

	refresher := worker.NewRefreshWorker(srv, logger)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting lifegoals server",
			"port", cfg.Port,
			applog.FieldBackend, cfg.DataBackend,
			"locale", locale.Code,
			applog.FieldOperation, applog.OpStartup)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()

		g.Go(func() error {
			err := amqpClient.ConsumeRefresh(gctx, cfg.AMQPQueue, refresher.HandleRefreshMessage)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	} else {
		logger.Info("AMQP refresh notifications disabled - no AMQP_URL provided")
	}

	if cfg.RefreshInterval > 0 {
		g.Go(func() error {
			if err := refresher.PeriodicRefresh(gctx, cfg.RefreshInterval); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
