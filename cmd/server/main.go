// Package main is the entry point for the storefront API server.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/storefrontdev/storefront/internal/auth"
	"github.com/storefrontdev/storefront/internal/config"
	"github.com/storefrontdev/storefront/internal/model"
	"github.com/storefrontdev/storefront/internal/repository"
	"github.com/storefrontdev/storefront/internal/server"
	"github.com/storefrontdev/storefront/internal/storage"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Use a basic logger for startup errors
		basicLogger, _ := zap.NewProduction()
		basicLogger.Fatal("failed to load configuration", zap.Error(err))
	}

	// Initialize logger
	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		basicLogger, _ := zap.NewProduction()
		basicLogger.Fatal("failed to initialize logger", zap.Error(err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("configuration loaded",
		zap.Int("server_port", cfg.ServerPort),
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("shutdown_timeout", cfg.ShutdownTimeout),
		zap.Bool("metrics_enabled", cfg.MetricsEnabled),
		zap.String("data_dir", cfg.DataDir),
		zap.Duration("token_ttl", cfg.TokenTTL),
	)

	// Open the store
	store, err := storage.OpenLevelDB(cfg.DataDir)
	if err != nil {
		logger.Error("failed to open store", zap.Error(err))
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close store", zap.Error(err))
		}
	}()

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		logger.Error("failed to create token manager", zap.Error(err))
		return 1
	}
	hasher := auth.NewHasher(cfg.BcryptCost)

	// Seed the admin account before the server accepts requests
	if cfg.AdminUsername != "" {
		if err := seedAdmin(store, hasher, cfg, logger); err != nil {
			logger.Error("failed to seed admin user", zap.Error(err))
			return 1
		}
	}

	// Create and start server
	srv := server.New(cfg, logger, store, tokens, hasher)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Start()
	}()

	// Wait for shutdown signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("server error", zap.Error(err))
		return 1
	case sig := <-shutdown:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
			return 1
		}
	}

	logger.Info("server stopped")
	return 0
}

// seedAdmin makes sure the configured admin account exists. An
// existing account with that username is promoted to admin instead of
// being recreated; its password is left untouched.
func seedAdmin(store storage.Store, hasher *auth.Hasher, cfg *config.Config, logger *zap.Logger) error {
	users := repository.NewUsers(store, hasher)
	ctx := context.Background()

	existing, err := users.FindByUsername(ctx, cfg.AdminUsername)
	if errors.Is(err, repository.ErrNotFound) {
		if _, err := users.Create(ctx, cfg.AdminUsername, cfg.AdminPassword, model.UserTypeAdmin); err != nil {
			return err
		}
		logger.Info("admin user created", zap.String("username", cfg.AdminUsername))
		return nil
	}
	if err != nil {
		return err
	}

	if existing.Type != model.UserTypeAdmin {
		adminType := model.UserTypeAdmin
		if _, err := users.UpdateByUsername(ctx, cfg.AdminUsername,
			&model.UpdateUserRequest{Type: &adminType}); err != nil {
			return err
		}
		logger.Info("existing user promoted to admin", zap.String("username", cfg.AdminUsername))
		return nil
	}

	logger.Info("admin user already exists", zap.String("username", cfg.AdminUsername))
	return nil
}

// initLogger initializes a zap logger with the specified log level.
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	zapConfig := zap.Config{
		Level:       zap.NewAtomicLevelAt(zapLevel),
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding: "json",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "message",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return zapConfig.Build()
}
