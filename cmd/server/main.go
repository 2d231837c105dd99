package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dragonspire/sentinel/internal/api"
	"github.com/dragonspire/sentinel/internal/config"
	"github.com/dragonspire/sentinel/internal/factory"
	"github.com/dragonspire/sentinel/internal/services/session"
	"github.com/dragonspire/sentinel/internal/services/vault"
	redisstorage "github.com/dragonspire/sentinel/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.InternalSecret == "" {
		logger.Error("SENTINEL_INTERNAL_SECRET is required")
		os.Exit(1)
	}

	credentialHash, err := vault.HashSecret(cfg.InternalSecret)
	if err != nil {
		logger.Error("failed to hash internal secret", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sessionCfg := session.DefaultConfig()
	sessionCfg.StoreTimeout = cfg.StoreTimeout
	sessionCfg.BalanceCacheSize = cfg.BalanceCacheSize

	// Build factory config
	appCfg := factory.Config{
		Logger:         logger,
		StorageType:    cfg.StorageType,
		SessionConfig:  sessionCfg,
		CredentialHash: credentialHash,
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		if cfg.RedisURL == "" {
			logger.Error("SENTINEL_REDIS_URL required when SENTINEL_STORAGE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		appCfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(appCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		Coordinator: app.Coordinator,
		Vault:       app.Vault,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
