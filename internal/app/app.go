package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	controller "storypad/internal/controller/http"
	"storypad/internal/repo/persistent"
	"storypad/internal/usecase"
	"storypad/pkg/assets"
	"storypad/pkg/config"
	"storypad/pkg/identity"
	"storypad/pkg/logger"
	"storypad/pkg/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, assetStore assets.Store, redisClient *redis.Client) {
	identityService := identity.NewService(cfg.IdentitySecret)

	// Initialize repositories
	postRepo := persistent.NewPostRepository(db, cfg.CodeLen, cfg.SlugLen)

	// Initialize use cases
	postUseCase := usecase.NewPostUseCase(postRepo, redisClient)
	uploadUseCase := usecase.NewUploadUseCase(assetStore, cfg.FileMaxWidth, cfg.FileNameLen)

	// Initialize HTTP handlers
	postHandler := controller.NewPostHandler(postUseCase, log, cfg.AMPIframePlaceholder)
	uploadHandler := controller.NewUploadHandler(uploadUseCase, log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Locally stored assets
	if cfg.AssetBackend == "local" {
		r.Static("/file", cfg.UploadDir)
	}

	r.Use(middleware.IdentityMiddleware(identityService))

	writes := r.Group("/")
	if redisClient != nil {
		writes.Use(middleware.RateLimitMiddleware(redisClient, 60, time.Minute))
	}
	writes.POST("/save", postHandler.Save)
	writes.POST("/upload", uploadHandler.Upload)

	r.GET("/:slug", postHandler.Show)
	r.GET("/:slug/edit", postHandler.Edit)
	r.GET("/:slug/amp", postHandler.ShowAMP)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("storypad starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("storypad exited")
}
