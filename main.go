package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"billiard-club/cmd"
	"billiard-club/internal/data/repository"
	"billiard-club/internal/events"
	"billiard-club/internal/redisx"
	"billiard-club/internal/wire"
	"billiard-club/pkg/database"
	"billiard-club/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Redis cache is best-effort: a failed connection degrades to
	// nil-safe no-ops instead of blocking startup.
	var cache *redisx.Cache
	if config.Redis.Enabled {
		cache, err = redisx.NewCache(config.Redis, logger)
		if err != nil {
			logger.Warn("Redis unavailable, running without cache", zap.Error(err))
			cache = nil
		} else {
			defer cache.Close()
			logger.Info("Redis connected successfully")
		}
	}

	// Shutdown on SIGINT/SIGTERM: the server drains first, then the
	// publisher flushes whatever the drained requests produced.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pubCtx, pubCancel := context.WithCancel(context.Background())
	defer pubCancel()

	// Event publisher
	var publisher events.Publisher = events.NoopPublisher{}
	var kafkaPublisher *events.KafkaPublisher
	if config.Kafka.Enabled {
		kafkaPublisher = events.NewKafkaPublisher(config.Kafka.Brokers, config.Kafka.Buffer, logger)
		kafkaPublisher.Start(pubCtx)
		publisher = kafkaPublisher
		logger.Info("Kafka publisher started", zap.Strings("brokers", config.Kafka.Brokers))
	}

	// Wire all dependencies
	app := wire.Wiring(repos, publisher, cache, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(ctx, app.Router, config.App.Port); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}

	if kafkaPublisher != nil {
		pubCancel()
		kafkaPublisher.WaitClosed()
		logger.Info("Kafka publisher flushed")
	}

	logger.Info("Shutdown complete")
}
