package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/agrilink/internal/httpserver"
	"github.com/Skotchmaster/agrilink/internal/models"
	"github.com/Skotchmaster/agrilink/internal/repo"
	"github.com/Skotchmaster/agrilink/internal/service"
	"github.com/Skotchmaster/agrilink/internal/storage"
	"github.com/Skotchmaster/agrilink/pkg/cache"
	"github.com/Skotchmaster/agrilink/pkg/config"
	"github.com/Skotchmaster/agrilink/pkg/db"
	"github.com/Skotchmaster/agrilink/pkg/events"
	"github.com/Skotchmaster/agrilink/pkg/logging"
	authmw "github.com/Skotchmaster/agrilink/pkg/middleware/auth"
	"github.com/Skotchmaster/agrilink/pkg/search"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("load .env: %v", err)
	}

	cfg := config.Load()
	cfg.Validate()

	logger := logging.New(cfg.ServiceName, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx := context.Background()

	gdb, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db init: %v", err)
	}
	if err := gdb.AutoMigrate(models.All()...); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	var publisher events.Publisher = events.Nop{}
	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers)
		publisher = producer
	} else {
		logger.Info("kafka disabled", "reason", "KAFKA_BROKERS empty")
	}

	var indexer search.Indexer = search.Nop{}
	if cfg.ESURL != "" {
		esClient, err := search.NewClient(ctx, cfg.ESURL, cfg.ESUser, cfg.ESPassword, cfg.ESIndex)
		if err != nil {
			logger.Warn("elasticsearch disabled", "error", err)
		} else {
			indexer = esClient
		}
	}

	var refCache cache.Cache = cache.Nop{}
	var redisClient *cache.RedisClient
	if cfg.RedisAddr != "" {
		redisClient, err = cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.ServiceName)
		if err != nil {
			logger.Warn("redis disabled", "error", err)
		} else {
			refCache = redisClient
		}
	}

	store := &storage.Store{
		Dir:       cfg.StorageDir,
		BaseURL:   cfg.PublicBaseURL,
		FilesPath: httpserver.FilesPath,
		Secret:    cfg.StorageSigningSecret,
		Public:    cfg.StoragePublic,
	}

	r := &repo.GormRepo{DB: gdb}
	authSvc := &service.AuthService{
		Repo:          r,
		JWTSecret:     cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	for _, m := range httpserver.Common(logger, cfg.CORSOrigins) {
		e.Use(m)
	}

	httpserver.Register(e, &httpserver.Deps{
		DB:   gdb,
		Auth: authmw.NewAutoRefreshMiddleware(cfg.JWTAccessSecret, authSvc),

		AuthHandler:      &httpserver.AuthHandler{Auth: authSvc},
		CartHandler:      &httpserver.CartHandler{Cart: &service.CartService{Repo: r}},
		OrderHandler:     &httpserver.OrderHandler{Orders: &service.OrderService{Repo: r, Events: publisher, Search: indexer}},
		ProductHandler:   &httpserver.ProductHandler{Catalog: &service.CatalogService{Repo: r, Events: publisher, Search: indexer}},
		ProducerHandler:  &httpserver.ProducerHandler{Producers: &service.ProducerService{Repo: r}, Profiles: &service.ProfileService{Repo: r}},
		MessagingHandler: &httpserver.MessagingHandler{Messaging: &service.MessagingService{Repo: r, Events: publisher}},
		ReviewHandler:    &httpserver.ReviewHandler{Reviews: &service.ReviewService{Repo: r, Events: publisher}},
		FavoriteHandler:  &httpserver.FavoriteHandler{Favorites: &service.FavoriteService{Repo: r}},
		UploadHandler:    &httpserver.UploadHandler{Uploads: &service.UploadService{Store: store}},
		ReferenceHandler: &httpserver.ReferenceHandler{Reference: &service.ReferenceService{Repo: r, Cache: refCache}},
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("redis close error", "error", err)
		}
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db close error", "error", err)
	}

	logger.Info("shutdown complete")
}
