package main

import (
	"context"
	"fmt"

	"storypad/internal/app"
	"storypad/internal/model"
	"storypad/pkg/assets"
	"storypad/pkg/config"
	"storypad/pkg/database"
	"storypad/pkg/logger"
	"storypad/pkg/s3"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.IdentitySecret == "change-me-in-production" || cfg.IdentitySecret == "" {
		panic("IDENTITY_SECRET must be set in environment variables")
	}

	log := logger.New()

	db, err := database.New(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	// Postgres migrations are handled by goose - see cmd/migrate/main.go.
	// The sqlite driver is for local development, so the schema is created here.
	if cfg.DBDriver == "sqlite" {
		if err := db.AutoMigrate(&model.PostModel{}); err != nil {
			log.Error("Failed to migrate database: %v", err)
			panic(err)
		}
	}

	var assetStore assets.Store
	switch cfg.AssetBackend {
	case "s3":
		assetStore, err = s3.NewClient(cfg)
		if err != nil {
			log.Error("Failed to create S3 client: %v", err)
			panic(err)
		}
	default:
		assetStore, err = assets.NewLocalStore(cfg.UploadDir, "/file")
		if err != nil {
			log.Error("Failed to create upload directory: %v", err)
			panic(err)
		}
	}

	var redisClient *redis.Client
	if cfg.RedisHost != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis unavailable, continuing without cache: %v", err)
			redisClient = nil
		}
	}

	app.Run(cfg, log, db, assetStore, redisClient)
}
