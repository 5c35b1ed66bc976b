package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"blood-bank-api-server/config"
	"blood-bank-api-server/internal/api/routes"
	"blood-bank-api-server/internal/database"
	"blood-bank-api-server/internal/socket"
	"blood-bank-api-server/internal/store/mongostore"
	"blood-bank-api-server/pkg/logger"
)

func main() {
	// A missing .env is fine; config falls back to the environment.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)

	if cfg.JWT.Secret == "" {
		baseLogger.Fatal("JWT_SECRET must be configured")
	}

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelBoot()

	client, db, err := database.Connect(bootCtx, cfg.Mongo.URI, cfg.Mongo.DBName)
	if err != nil {
		baseLogger.Fatal("failed to connect to mongodb", zap.Error(err))
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	ledger := mongostore.NewInventoryStore(db)
	requests := mongostore.NewRequestStore(db)
	admins := mongostore.NewAdminStore(db)

	if err := ledger.EnsureIndexes(bootCtx); err != nil {
		baseLogger.Fatal("failed to create indexes", zap.Error(err))
	}
	if err := database.SeedInventory(bootCtx, ledger, baseLogger.Named("seeder")); err != nil {
		baseLogger.Fatal("failed to seed inventory", zap.Error(err))
	}
	if err := database.SeedAdmin(bootCtx, admins, cfg.Admin.Email, cfg.Admin.Password, baseLogger.Named("seeder")); err != nil {
		baseLogger.Fatal("failed to seed admin", zap.Error(err))
	}

	hub := socket.NewHub(baseLogger.Named("socket"))
	router := routes.SetupRouter(cfg, ledger, requests, admins, hub, baseLogger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
