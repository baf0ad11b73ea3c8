// Package logger provides a structured, levelled logger built on log/slog.
//
// WithCtx returns the request-scoped logger installed by middleware.Logger,
// so every line from a handler or service carries the request_id:
//
//	logger.WithCtx(ctx).Info("listing created", "car_id", car.ID)
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/shashiranjanraj/automart/config"
)

var L *slog.Logger

var mongoOut *MongoHandler

func init() {
	L = slog.New(baseHandler())
	slog.SetDefault(L)
}

func baseHandler() slog.Handler {
	switch config.AppEnv() {
	case "production", "prod":
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	case "testing", "test":
		return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn})
	default:
		return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}

// Setup attaches the MongoDB sink when LOG_MONGO_URI is configured.
// Call Close on shutdown to flush it.
func Setup() error {
	uri := config.Get("LOG_MONGO_URI", "")
	if uri == "" {
		return nil
	}

	h, err := NewMongoHandler(uri,
		config.Get("LOG_MONGO_DB", "automart"),
		config.Get("LOG_MONGO_COLLECTION", "logs"),
		slog.LevelInfo,
	)
	if err != nil {
		return fmt.Errorf("logger: mongo sink: %w", err)
	}

	mongoOut = h
	L = slog.New(NewMultiHandler(baseHandler(), h))
	slog.SetDefault(L)
	return nil
}

// Close flushes and disconnects the MongoDB sink, if any.
func Close() {
	if mongoOut != nil {
		mongoOut.Close()
		mongoOut = nil
	}
}

type ctxKey struct{}

// WithCtx returns the logger stored by InjectLogger, or the base logger.
func WithCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return L
	}
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a request-tagged logger in ctx.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
