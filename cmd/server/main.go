// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/gudangkita/inventory-backend/internal/config"
	"github.com/gudangkita/inventory-backend/internal/database"
	"github.com/gudangkita/inventory-backend/internal/i18n"
	"github.com/gudangkita/inventory-backend/internal/projector"
	"github.com/gudangkita/inventory-backend/internal/router"
	"github.com/gudangkita/inventory-backend/internal/services"
	"github.com/gudangkita/inventory-backend/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}

	if cfg.Environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize i18n
	if err := i18n.Initialize(); err != nil {
		logrus.Fatal("Failed to initialize i18n: ", err)
	}

	// Initialize the state store
	var st store.Store
	var db *gorm.DB
	switch cfg.Store.Driver {
	case "memory":
		st = store.NewMemory()
		logrus.Warn("Using in-memory store; state will not survive restarts")
	default:
		db, err = database.Initialize(cfg.Database)
		if err != nil {
			logrus.Fatal("Failed to initialize database: ", err)
		}
		defer database.Close(db)

		if err := database.RunMigrations(db); err != nil {
			logrus.Fatal("Failed to run migrations: ", err)
		}

		st, err = store.NewPostgres(db, cfg.Database.DSN())
		if err != nil {
			logrus.Fatal("Failed to initialize store: ", err)
		}
	}

	// Start the live views
	proj := projector.New(st)
	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	if err := proj.Start(startCtx, projector.LastDays(cfg.History.QuickRangeDays)); err != nil {
		cancelStart()
		logrus.Fatal("Failed to start live views: ", err)
	}
	cancelStart()

	history := services.NewHistoryService(st)

	// Initialize router
	r := router.Initialize(st, proj, history, cfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logrus.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatal("Failed to start server: ", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatal("Server forced to shutdown: ", err)
	}

	// Release subscriptions, drain pending history appends, then close
	// the store.
	proj.Close()
	history.Wait()
	if err := st.Close(); err != nil {
		logrus.WithError(err).Warn("Error closing store")
	}

	logrus.Info("Server exited")
}
