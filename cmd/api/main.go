package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/joshua-takyi/mba/internal/config"
	"github.com/joshua-takyi/mba/internal/connect"
	"github.com/joshua-takyi/mba/internal/container"
	"github.com/joshua-takyi/mba/internal/events"
	"github.com/joshua-takyi/mba/internal/models"
	"github.com/joshua-takyi/mba/internal/models/memory"
	"github.com/joshua-takyi/mba/internal/notify"
	"github.com/joshua-takyi/mba/internal/routes"
)

func main() {
	// Load environment variables
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg)
	logger.Info("Starting MBA API server", "environment", cfg.Environment, "store", cfg.StoreDriver)

	ctx := context.Background()

	var (
		store       container.Store
		mongoClient *mongo.Client
	)
	switch cfg.StoreDriver {
	case config.StoreMemory:
		store = memory.New()
		logger.Warn("Using the in-memory store, data is lost on restart")
	default:
		mongoClient, err = connect.MongoDBConnect(ctx, cfg.MongoURI())
		if err != nil {
			logger.Error("Failed to connect to MongoDB", "error", err)
			os.Exit(1)
		}
		repo := models.MongodbNewRepo(mongoClient, cfg.MongoDBDatabase)
		if err := repo.EnsureIndexes(ctx); err != nil {
			logger.Error("Failed to create MongoDB indexes", "error", err)
			os.Exit(1)
		}
		store = repo
		logger.Info("Connected to MongoDB successfully", "database", cfg.MongoDBDatabase)
	}

	var notifier notify.Notifier = notify.Noop{}
	if cfg.NotiService != "" {
		client, err := notify.NewHTTPClient(cfg.NotiService, cfg.NotifyTimeout, logger)
		if err != nil {
			logger.Error("Invalid notification service URL", "error", err)
			os.Exit(1)
		}
		notifier = client
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQPURL != "" {
		p, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, logger)
		if err != nil {
			logger.Error("Failed to connect to RabbitMQ", "error", err)
			os.Exit(1)
		}
		publisher = p
		logger.Info("Connected to RabbitMQ successfully", "exchange", cfg.AMQPExchange)
	}

	rdb, err := connect.RedisConnect(ctx, cfg.Redis)
	if err != nil {
		logger.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	if rdb == nil {
		logger.Info("REDIS_ADDR not set, rate limiting disabled")
	}

	appContainer := container.NewContainer(logger, cfg, store, notifier, publisher, rdb)
	router := routes.SetupRoutes(appContainer)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	if err := connect.MongoDBDisconnect(mongoClient); err != nil {
		logger.Error("Error disconnecting from MongoDB", "error", err)
	}
	if err := appContainer.Close(); err != nil {
		logger.Error("Error closing connections", "error", err)
	}

	logger.Info("Server exited")
}

func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

	var handler slog.Handler
	if cfg.IsProduction() {
		// JSON logging for production
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
