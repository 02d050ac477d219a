package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/hadik12/items-api/internal/adapter/handler"
	"github.com/hadik12/items-api/internal/adapter/storage"
	"github.com/hadik12/items-api/internal/config"
	"github.com/hadik12/items-api/internal/core/service"
	"github.com/hadik12/items-api/internal/logging"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	if err := cfg.EnsureLogDirectory(); err != nil {
		log.Fatalf("failed to prepare log directory: %v", err)
	}
	logger, logFile, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}

	// Initialize MySQL
	db, err := sql.Open("mysql", cfg.DatabaseDSN)
	if err != nil {
		logger.Fatalf("failed to connect mysql: %v", err)
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		logger.Fatalf("failed to ping mysql: %v", err)
	}
	logger.Info("connected to mysql")

	itemStore := storage.NewMySQLAdapter(db)

	logger.Info("creating items table if it does not exist")
	if err := itemStore.InitSchema(ctx); err != nil {
		logger.Fatalf("failed to initialize schema: %v", err)
	}

	itemService := service.NewItemService(itemStore)
	httpHandler := handler.NewHTTPHandler(itemService, logger)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler.NewRouter(httpHandler, cfg.APIKey, logger),
	}

	go func() {
		logger.Infof("HTTP server listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Errorf("HTTP server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	logger.Info("HTTP server stopped")

	db.Close()
	logger.Info("connections closed")

	if logFile != nil {
		logFile.Close()
	}
}
