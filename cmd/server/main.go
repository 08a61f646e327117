package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/veldt-labs/switchboard/cmd"
	"github.com/veldt-labs/switchboard/internal/analytics"
	"github.com/veldt-labs/switchboard/internal/clientpool"
	"github.com/veldt-labs/switchboard/internal/config"
	"github.com/veldt-labs/switchboard/internal/dispatch"
	"github.com/veldt-labs/switchboard/internal/platform/logger"
	"github.com/veldt-labs/switchboard/internal/platform/otel"
	"github.com/veldt-labs/switchboard/internal/registry"
	"github.com/veldt-labs/switchboard/internal/server"
	"github.com/veldt-labs/switchboard/internal/store/cache"
	"github.com/veldt-labs/switchboard/internal/store/cache/memory"
	"github.com/veldt-labs/switchboard/internal/store/cache/redis"
	"github.com/veldt-labs/switchboard/internal/store/sqlite"
	"go.uber.org/zap"

	// adapters register themselves on import
	_ "github.com/veldt-labs/switchboard/internal/llm/anthropic"
	_ "github.com/veldt-labs/switchboard/internal/llm/cartesia"
	_ "github.com/veldt-labs/switchboard/internal/llm/google"
	_ "github.com/veldt-labs/switchboard/internal/llm/openai"
	_ "github.com/veldt-labs/switchboard/internal/llm/together"
)

func main() {
	logger.Initialize(logger.DefaultConfig())
	log := logger.Get()
	defer log.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	go cmd.CheckForUpdates()

	shutdownTracer, err := otel.InitTracer("switchboard", log, os.Stdout)
	if err != nil {
		log.Fatal("failed to init tracer", zap.Error(err))
	}

	repo, err := sqlite.NewSQLiteStorage(cfg.Database.DSN, log)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer repo.Close()

	var cacheService cache.CacheService
	if cfg.Redis.Enabled {
		redisCache, err := redis.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		cacheService = redisCache
		log.Info("resolver cache backed by redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		cacheService = memory.NewMemoryCache()
	}

	pool, err := clientpool.New(clientpool.Credentials{
		OpenAIKey:       cfg.Providers.OpenAIKey,
		AnthropicKey:    cfg.Providers.AnthropicKey,
		GoogleKey:       cfg.Providers.GoogleKey,
		DeepSeekKey:     cfg.Providers.DeepSeekKey,
		TogetherKey:     cfg.Providers.TogetherKey,
		CartesiaKey:     cfg.Providers.CartesiaKey,
		OpenAIBaseURL:   cfg.Providers.OpenAIBaseURL,
		GoogleProjectID: cfg.Providers.GoogleProjectID,
		GoogleLocation:  cfg.Providers.GoogleLocation,
	}, log)
	if err != nil {
		log.Fatal("failed to build client pool", zap.Error(err))
	}
	log.Info("client pool ready", zap.Strings("providers", pool.Keys()))

	resolver := registry.NewResolver(repo.Models(), cacheService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ingestor := analytics.NewIngestor(log, repo)
	ingestor.Start(ctx)

	dispatcher := dispatch.New(resolver, pool, ingestor, log)

	srv := server.New(cfg, log, dispatcher, resolver, pool, repo, cmd.AppVersion)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      srv.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // video generation is slow
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("starting switchboard", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}

	ingestor.Stop()

	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Error("tracer shutdown failed", zap.Error(err))
	}
}
