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
	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/service"
	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/infrastructure/authclient"
	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/infrastructure/config"
	mongodb "github.com/AutoJunjie/aidlc-AWSomeShop/internal/infrastructure/db/mongo"
	healthhandlers "github.com/AutoJunjie/aidlc-AWSomeShop/internal/infrastructure/http/handlers"
	s3storage "github.com/AutoJunjie/aidlc-AWSomeShop/internal/infrastructure/storage/s3"
	"github.com/AutoJunjie/aidlc-AWSomeShop/pkg/logger"
)

// @title AWSomeShop Products Service
// @version 1.0
// @description Product catalog for the employee rewards shop.
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Service: "products-service",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

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

	storage, err := s3storage.New(ctx, s3storage.Config{
		Bucket:          cfg.S3.Bucket,
		Region:          cfg.S3.Region,
		Endpoint:        cfg.S3.Endpoint,
		AccessKeyID:     cfg.S3.AccessKeyID,
		SecretAccessKey: cfg.S3.SecretAccessKey,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("s3 client initialisation failed")
	}

	verifier := authclient.New(cfg.Auth.URL, cfg.Auth.Timeout)

	productService := service.NewProductService(
		mongodb.NewProductRepository(db),
		storage,
		log,
	)

	readiness := map[string]healthhandlers.CheckFunc{
		"mongodb":      func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
		"s3":           storage.Ping,
		"auth_service": verifier.Ping,
	}

	e := api.NewProductsRouter(productService, verifier, cfg.S3.MaxUploadBytes, readiness, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("products service listening")
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
