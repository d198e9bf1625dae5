package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/DHYEY166/teamflow-enterprise/internal/api"
	"github.com/DHYEY166/teamflow-enterprise/internal/collaborator"
	"github.com/DHYEY166/teamflow-enterprise/internal/engine"
	"github.com/DHYEY166/teamflow-enterprise/internal/handlers"
	"github.com/DHYEY166/teamflow-enterprise/internal/models"
	"github.com/DHYEY166/teamflow-enterprise/internal/notify"
	"github.com/DHYEY166/teamflow-enterprise/internal/storage"
	"github.com/DHYEY166/teamflow-enterprise/pkg/config"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	ctx := context.Background()

	// Initialize persistence
	var persister storage.Persister
	if cfg.Database.UseInMemory {
		logger.Info("Using in-memory storage")
		persister = storage.NopPersister{}
	} else {
		logger.Info("Using PostgreSQL persistence")
		persister, err = storage.NewPostgresPersister(storage.DatabaseConfig{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to initialize persistence", zap.Error(err))
		}
	}
	defer persister.Close()

	// Load the workspace; corrupt or missing state falls back to the
	// built-in seed.
	store := storage.NewMemoryStore(storage.LoadWorkspace(ctx, persister, logger))
	store.SetOnChange(func(snapshot models.Workspace) {
		if err := persister.Save(ctx, snapshot); err != nil {
			logger.Error("Failed to persist workspace", zap.Error(err))
		}
	})

	// Initialize notifications
	var notifier notify.Notifier = notify.NewLogNotifier(logger)
	if cfg.Redis.Enabled {
		redisNotifier, err := notify.NewRedisNotifier(ctx, cfg.Redis.URL, cfg.Redis.Channel, logger)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisNotifier.Close()
		notifier = notify.Multi{notifier, redisNotifier}
		logger.Info("Publishing notifications to Redis", zap.String("channel", cfg.Redis.Channel))
	}

	// Initialize the collaborator and the reconciliation engine
	collab := collaborator.NewOpenAICollaborator(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.Model,
		cfg.OpenAI.MaxTokens,
		cfg.OpenAI.Temperature,
		logger,
	)

	eng := engine.New(store, collab, notifier, logger,
		time.Duration(cfg.Collaborator.TimeoutSeconds)*time.Second)

	h := handlers.NewHandler(store, eng, logger)
	router := api.NewRouter(logger, h)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting TeamFlow server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Forced shutdown", zap.Error(err))
	}

	logger.Info("Server stopped")
}
