package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/osworks/service-orders/internal/api"
	"github.com/osworks/service-orders/internal/core/service"
	"github.com/osworks/service-orders/internal/infrastructure/db/mongo"
	"github.com/osworks/service-orders/internal/infrastructure/db/redis"
	"github.com/osworks/service-orders/internal/infrastructure/events"
	"github.com/osworks/service-orders/internal/infrastructure/queue"
	"github.com/osworks/service-orders/internal/infrastructure/storage"
	"github.com/osworks/service-orders/internal/pkg/config"
	"github.com/osworks/service-orders/internal/pkg/tokens"
	"github.com/osworks/service-orders/pkg/logger"
)

const (
	shutdownTimeout  = 10 * time.Second
	maxLoginFailures = 10
	throttleWindow   = 15 * time.Minute
	eventWorkers     = 4
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
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

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongodb index creation failed")
	}

	// --- Redis ---
	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Event pipeline: handlers -> dispatcher -> kafka ---
	kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer func() {
		if err := kafkaPublisher.Close(); err != nil {
			log.Error().Err(err).Msg("kafka writer close failed")
		}
	}()

	dispatcher := queue.NewDispatcher(eventWorkers, kafkaPublisher, log)
	dispatcher.Start(ctx)

	// --- File storage ---
	fileStore, err := storage.NewLocalStore(cfg.Uploads.Dir, "/uploads")
	if err != nil {
		log.Fatal().Err(err).Msg("uploads directory unavailable")
	}

	// --- Repositories ---
	userRepo := mongo.NewUserRepository(db)
	tokenStore := mongo.NewTokenStore(db)
	orderRepo := mongo.NewOrderRepository(db)
	clientRepo := mongo.NewClientRepository(db)
	equipmentRepo := mongo.NewEquipmentRepository(db)
	checklistRepo := mongo.NewChecklistRepository(db)
	photoRepo := mongo.NewPhotoRepository(db)

	// --- Services ---
	issuer := tokens.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	throttle := redis.NewLoginThrottle(rdb, maxLoginFailures, throttleWindow)

	authService := service.NewAuthService(userRepo, tokenStore, issuer, throttle, log)
	userService := service.NewUserService(userRepo, dispatcher, log)
	orderService := service.NewOrderService(orderRepo, clientRepo, equipmentRepo, userRepo, photoRepo, dispatcher, log)
	catalogService := service.NewCatalogService(clientRepo, equipmentRepo, log)
	checklistService := service.NewChecklistService(checklistRepo, orderRepo, log)
	photoService := service.NewPhotoService(photoRepo, orderRepo, fileStore, cfg.Uploads.MaxSizeMB*1024*1024, log)

	e := api.NewRouter(api.Deps{
		Auth:       authService,
		Users:      userService,
		Orders:     orderService,
		Catalog:    catalogService,
		Checklists: checklistService,
		Photos:     photoService,
		Mongo:      db,
		Redis:      rdb,
		UploadsDir: fileStore.Dir(),
		Logger:     log,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting http server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
