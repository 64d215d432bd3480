package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docuverify/internal/api"
	"docuverify/internal/app/service"
	"docuverify/internal/app/worker"
	"docuverify/internal/common/security"
	"docuverify/internal/domain/repository"
	"docuverify/internal/platform/blob"
	"docuverify/internal/platform/config"
	"docuverify/internal/platform/database"
	"docuverify/internal/platform/logger"
	"docuverify/internal/platform/queue"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(true)
		bootLog.Fatal().Err(err).Msg("Could not load configuration")
	}

	log := logger.New(!cfg.IsProduction())
	log.Info().Msg("Configuration loaded")

	tokens := security.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExp)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not connect to database")
	}
	defer db.Close()
	log.Info().Msg("Database connected")

	rdb, err := queue.Connect(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	blobStore, err := blob.NewCloudinaryStore(cfg.CloudinaryURL, cfg.UploadFolder)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not initialize blob store")
	}

	userRepo := repository.NewPgUserRepository(db)
	requestRepo := repository.NewPgRequestRepository(db)

	events := service.NewRedisEventPublisher(rdb, cfg.NotifyQueueName, log)
	authService := service.NewAuthService(userRepo, tokens, log)
	requestService := service.NewRequestService(requestRepo, events, log)
	uploadService := service.NewUploadService(blobStore, log)

	notifier := worker.NewNotifier(rdb, cfg.NotifyQueueName, cfg.NotifyWebhookURL, log)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go notifier.Start(workerCtx)

	router := api.NewRouter(tokens, authService, requestService, uploadService, cfg.UploadMaxBytes, cfg.IsProduction())

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", cfg.APIPort).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Could not listen")
		}
	}()

	<-stop // Wait for interrupt signal

	log.Info().Msg("Shutting down server...")
	workerCancel() // Signal notifier to stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Server and notifier stopped gracefully")
}
