// @title                       Commodity Marketplace API
// @version                     1.0
// @description                 Users, JWT sessions and commodity listings with ownership rules.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/marketplace/commodity-api/docs"
	"github.com/marketplace/commodity-api/internal/api"
	"github.com/marketplace/commodity-api/internal/api/handler"
	"github.com/marketplace/commodity-api/internal/core/service"
	"github.com/marketplace/commodity-api/internal/infrastructure/db/mongo"
	"github.com/marketplace/commodity-api/internal/infrastructure/db/redis"
	"github.com/marketplace/commodity-api/internal/infrastructure/queue"
	"github.com/marketplace/commodity-api/internal/pkg/config"
	"github.com/marketplace/commodity-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "commodity-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}

	hashPool := queue.NewHashPool(cfg.Hash.Workers, cfg.Hash.Cost, logger.For("hash_pool"))
	// The pool outlives the signal so in-flight requests can finish hashing.
	poolCtx, stopPool := context.WithCancel(context.Background())
	hashPool.Start(poolCtx)

	revoker := redis.NewRevocationList(rdb)
	authService := service.NewAuthService(
		mongo.NewUserRepository(store.Database()),
		hashPool,
		revoker,
		cfg.JWTSecret,
		cfg.JWTTTL,
		logger.For("auth"),
	)
	commodityService := service.NewCommodityService(
		mongo.NewCommodityRepository(store.Database()),
		logger.For("commodity"),
	)

	e := api.NewRouter(api.Deps{
		Log:              logger.For("http"),
		JWTSecret:        cfg.JWTSecret,
		Revoker:          revoker,
		AuthService:      authService,
		CommodityService: commodityService,
		Checks: []handler.DependencyCheck{
			{Name: "mongodb", Ping: store.Ping},
			handler.RedisCheck(rdb),
		},
		CORSOrigins:   cfg.CORSOrigins,
		AuthRateLimit: cfg.AuthRateLimit,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	stopPool()
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close failed")
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo close failed")
	}

	log.Info().Msg("shutdown complete")
}
