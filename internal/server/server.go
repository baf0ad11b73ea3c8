// Package server boots automart: configuration, logging, the database,
// cache and storage, then the HTTP and gRPC servers and the scheduler. It
// blocks until SIGINT/SIGTERM and shuts everything down gracefully.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/automart/app/services"
	"github.com/shashiranjanraj/automart/config"
	"github.com/shashiranjanraj/automart/internal/kernel"
	"github.com/shashiranjanraj/automart/pkg/cache"
	"github.com/shashiranjanraj/automart/pkg/database"
	"github.com/shashiranjanraj/automart/pkg/grpc"
	"github.com/shashiranjanraj/automart/pkg/logger"
	"github.com/shashiranjanraj/automart/pkg/schedule"
	"github.com/shashiranjanraj/automart/pkg/storage"
)

const shutdownTimeout = 15 * time.Second

// Boot loads configuration and connects the shared infrastructure. The CLI
// calls it before any command that touches the database.
func Boot(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := logger.Setup(); err != nil {
		return err
	}
	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(ctx); err != nil {
		logger.Warn("cache: redis unavailable, continuing without it", "error", err)
	}
	return storage.Connect(ctx)
}

// Start serves until ctx is cancelled or a termination signal arrives.
// Boot must have been called.
func Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	k := kernel.NewHTTPKernel()
	if l := k.Limiter(); l != nil {
		go l.Sweep(ctx)
	}

	auth := services.NewAuthService()
	schedule.Every(config.TokenPurgeInterval()).
		Name("tokens:purge").
		WithoutOverlapping().
		Run(func(ctx context.Context) error {
			n, err := auth.PurgeExpiredTokens(ctx)
			if err == nil && n > 0 {
				logger.Info("purged expired revoked tokens", "count", n)
			}
			return err
		})
	schedule.Start(ctx)

	grpcSrv, err := grpc.Start(config.GRPCPort(), database.Ping)
	if err != nil {
		return err
	}
	defer grpc.Stop(grpcSrv)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           k.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("automart HTTP server starting", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", shutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http: shutdown: %w", err)
	}
	return nil
}
