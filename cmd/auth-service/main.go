package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/AutoJunjie/aidlc-AWSomeShop/docs"
	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/api"
	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/password"
	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/service"
	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/token"
	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/infrastructure/config"
	mongodb "github.com/AutoJunjie/aidlc-AWSomeShop/internal/infrastructure/db/mongo"
	redisdb "github.com/AutoJunjie/aidlc-AWSomeShop/internal/infrastructure/db/redis"
	healthhandlers "github.com/AutoJunjie/aidlc-AWSomeShop/internal/infrastructure/http/handlers"
	"github.com/AutoJunjie/aidlc-AWSomeShop/pkg/logger"
)

// @title AWSomeShop Auth Service
// @version 1.0
// @description Authentication and account management for the employee rewards shop.
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Service: "auth-service",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongodb index creation failed")
	}

	redisClient, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer redisClient.Close()

	authService := service.NewAuthService(
		userRepo,
		password.NewHasher(cfg.BcryptCost),
		token.NewCodec(cfg.JWTSecret, time.Duration(cfg.JWTExpireHours)*time.Hour),
		service.PasswordPolicy{
			MinLength:         cfg.Password.MinLength,
			RequireComplexity: cfg.Password.Complexity,
		},
		redisdb.NewAuditRecorder(redisClient),
		log,
	)

	readiness := map[string]healthhandlers.CheckFunc{
		"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
		"redis":   func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	}

	e := api.NewAuthRouter(authService, readiness, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("auth service listening")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
