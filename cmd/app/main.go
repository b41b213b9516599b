package main

import (
	"booking-calendar/internal/config"
	"booking-calendar/internal/http-server/router"
	"booking-calendar/internal/lock"
	"booking-calendar/internal/service"
	"booking-calendar/internal/storage/postgres"
	"booking-calendar/pkg/handlers/slogpretty"
	"booking-calendar/pkg/sl"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const migrateTimeout = 30 * time.Second

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting booking calendar", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("Service stopped with error", sl.Err(err))
		os.Exit(1)
	}

	log.Info("Shutdown finished, server stopped")
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	loc, err := cfg.Calendar.Location()
	if err != nil {
		return err
	}

	storage, err := postgres.New(cfg.StoragePath)
	if err != nil {
		return err
	}
	defer func() {
		if err := storage.Close(); err != nil {
			log.Error("Failed to close storage", sl.Err(err))
		}
	}()

	migrateCtx, cancel := context.WithTimeout(ctx, migrateTimeout)
	defer cancel()

	if err := storage.Migrate(migrateCtx); err != nil {
		return err
	}

	locker, err := lock.NewRedisLock(cfg.RedisAddr)
	if err != nil {
		return err
	}
	defer func() {
		if err := locker.Close(); err != nil {
			log.Error("Failed to close locker", sl.Err(err))
		}
	}()

	svc := service.NewService(storage, locker,
		service.WithLockTTL(cfg.LockTTL),
		service.WithFetchLimit(cfg.Calendar.BookingFetchLimit),
		service.WithLocation(loc),
	)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router.New(log, svc),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	serverErrCh := make(chan error, 1)

	go func() {
		log.Info("Starting HTTP server", slog.String("addr", cfg.Address), slog.String("timezone", loc.String()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	select {
	case <-ctx.Done():
		log.Info("Received shutdown signal")
	case err := <-serverErrCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancelShutdown()

	log.Info("Shutting down HTTP server", slog.Duration("timeout", cfg.HTTPServer.ShutdownTimeout))

	return srv.Shutdown(shutdownCtx)
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return setupPrettySlog()
	case envDev:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	return slog.New(opts.NewPrettyHandler(os.Stdout))
}
