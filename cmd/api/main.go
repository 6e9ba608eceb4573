package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hireflow-backend/config"
	v1 "hireflow-backend/internal/delivery/http/v1"
	"hireflow-backend/internal/repository/postgres"
	"hireflow-backend/internal/usecase"
	"hireflow-backend/pkg/auth"
	"hireflow-backend/pkg/database"
	"hireflow-backend/pkg/logger"
	"hireflow-backend/pkg/upload"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting hireflow backend", "port", cfg.Port)

	// 3. Setup Database
	if err := database.RunMigrations(context.Background(), cfg.DBUrl); err != nil {
		logger.Log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	offerRepo := postgres.NewOfferRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)

	// 5. Setup Resume Store
	resumeStore := upload.NewStore(cfg.UploadDir)

	// 6. Setup UseCases
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.TokenTTL)*time.Hour)
	authUC := usecase.NewAuthUsecase(userRepo, tokens)
	profileUC := usecase.NewProfileUsecase(userRepo, applicationRepo, resumeStore)
	offerUC := usecase.NewOfferUsecase(offerRepo, resumeStore)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, offerRepo, resumeStore)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		ProfileUC:     profileUC,
		OfferUC:       offerUC,
		ApplicationUC: applicationUC,
		Tokens:        tokens,
		Config:        cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
