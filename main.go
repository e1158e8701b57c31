package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"plateshare/controllers"
	"plateshare/middleware"
	"plateshare/routes"
	"plateshare/services"
	"plateshare/store"
	"plateshare/utils"

	"go.uber.org/zap"
)

func main() {
	cfg, dotenv, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := utils.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()
	if !dotenv {
		logger.Info("No .env file found. Proceeding with environment variables.")
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("Plate Share server exited", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

// run serves until the process is signalled. It returns instead of exiting
// so the MongoDB client is always disconnected.
func run(cfg *utils.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to MongoDB once; every store shares this client
	client, err := utils.ConnectDB(ctx, cfg.DatabaseURI())
	if err != nil {
		return fmt.Errorf("connect to MongoDB: %w", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Error("Failed to disconnect from MongoDB", zap.Error(err))
		}
	}()

	stores := store.New(client.Database(cfg.DBName))
	indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	err = stores.EnsureIndexes(indexCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}

	// Initialize services and controllers
	base := controllers.NewBase(logger, cfg.RequestTimeout)
	handler := routes.NewHandler(routes.Controllers{
		Users:    controllers.NewUserController(base, services.NewUserRegistry(stores.Users)),
		Foods:    controllers.NewFoodController(base, services.NewFoodCatalog(stores.Foods)),
		Requests: controllers.NewFoodRequestController(base, services.NewRequestWorkflow(stores.Requests)),
		Stats:    controllers.NewStatsController(base, services.NewStats(stores.Users, stores.Foods, stores.Requests)),
	}, routes.Options{
		Logger:         logger,
		Metrics:        middleware.NewMetrics(),
		AllowedOrigins: cfg.AllowedOrigins(),
		Port:           cfg.Port,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Plate Share server listening", zap.String("port", cfg.Port))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
	}
	return nil
}
