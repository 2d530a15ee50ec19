package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IbsanjU/yt-downloader/config"
	"github.com/IbsanjU/yt-downloader/internal/extractor"
	"github.com/IbsanjU/yt-downloader/internal/handler"
	"github.com/IbsanjU/yt-downloader/internal/service"
	"github.com/IbsanjU/yt-downloader/internal/storage"
	"github.com/IbsanjU/yt-downloader/internal/videolist"
	"github.com/IbsanjU/yt-downloader/pkg/logger"
	"github.com/IbsanjU/yt-downloader/pkg/middleware"
	"github.com/IbsanjU/yt-downloader/web"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	if err := logger.Init(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting YouTube Downloader Server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
	)

	// Extraction agent and client
	agent := extractor.NewAgent(&cfg.Extractor)
	ex := extractor.NewClient(agent)
	requestTimeout := time.Duration(cfg.Extractor.RequestTimeout) * time.Second

	// Metadata cache
	cache := storage.NewCache(&cfg.Cache)
	cache.Start()
	defer cache.Stop()

	// Services
	videoService := service.NewVideoService(ex, cache, requestTimeout)
	downloadService := service.NewDownloadService(ex, requestTimeout)

	rateLimitService := service.NewRateLimitService(&cfg.RateLimit)
	defer rateLimitService.Stop()

	// Video list store
	listStore := videolist.NewStore(videoService, &cfg.Sessions)
	listStore.Start()
	defer listStore.Stop()

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLogger())

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(rateLimitService))
		logger.Logger.Info("Rate limiting enabled",
			zap.Int("requests_per_minute", cfg.RateLimit.RequestsPerMinute))
	}

	// Frontend
	index, err := web.Index()
	if err != nil {
		logger.Logger.Fatal("Failed to load frontend", zap.Error(err))
	}
	staticFS, err := web.Static()
	if err != nil {
		logger.Logger.Fatal("Failed to load static assets", zap.Error(err))
	}
	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	})
	router.StaticFS("/static", http.FS(staticFS))

	// API handlers
	videoHandler := handler.NewVideoHandler(videoService)
	downloadHandler := handler.NewDownloadHandler(downloadService)
	listHandler := handler.NewListHandler(listStore)

	api := router.Group("/api")
	{
		api.POST("/video-info", videoHandler.GetVideoInfo)
		api.POST("/download", downloadHandler.Download)

		api.GET("/videos", listHandler.ListVideos)
		api.POST("/videos", listHandler.AddVideos)
		api.DELETE("/videos/:id", listHandler.RemoveVideo)

		api.GET("/health", videoHandler.HealthCheck)
	}

	// No WriteTimeout: download streams are long-running transfers with
	// no overall time bound, cancellable only by client disconnect.
	srv := &http.Server{
		Addr:        fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:     router,
		ReadTimeout: time.Duration(cfg.Server.ReadTimeout) * time.Second,
		IdleTimeout: time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logger.Logger.Info("Server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server stopped")
}
