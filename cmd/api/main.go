package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"tabadul/internal/adapter/api"
	"tabadul/internal/adapter/api/handler"
	apimiddleware "tabadul/internal/adapter/api/middleware"
	"tabadul/internal/adapter/api/router"
	"tabadul/internal/adapter/repository"
	"tabadul/internal/domain/service"
	"tabadul/internal/infrastructure/metrics"
	"tabadul/internal/infrastructure/storage"
	"tabadul/internal/usecase"
	"tabadul/pkg/config"
	"tabadul/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	logger.SetLogger(logger.New(cfg.LogLevel, cfg.LogFormat))
	defer logger.Sync()

	ctx := context.Background()

	var opts []option.ClientOption
	switch {
	case cfg.ServiceAccountJSON != "":
		logger.Info("Using Firebase service account from environment variable")
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON)))
	case cfg.ServiceAccountPath != "":
		if _, err := os.Stat(cfg.ServiceAccountPath); os.IsNotExist(err) {
			logger.Error("Service account file does not exist: %s", cfg.ServiceAccountPath)
			os.Exit(1)
		}
		logger.Info("Using Firebase service account from file: %s", cfg.ServiceAccountPath)
		opts = append(opts, option.WithCredentialsFile(cfg.ServiceAccountPath))
	default:
		logger.Info("Using application default credentials")
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{
		ProjectID:     cfg.FirebaseProject,
		StorageBucket: cfg.StorageBucket,
	}, opts...)
	if err != nil {
		logger.Error("Failed to initialize Firebase: %v", err)
		os.Exit(1)
	}

	firestoreClient, err := firebaseApp.Firestore(ctx)
	if err != nil {
		logger.Error("Failed to create Firestore client: %v", err)
		os.Exit(1)
	}
	defer firestoreClient.Close()

	objectStorage, err := newObjectStorage(ctx, cfg, opts)
	if err != nil {
		logger.Error("Failed to initialize object storage: %v", err)
		os.Exit(1)
	}
	defer objectStorage.Close()

	listingRepo := repository.NewFirestoreListingRepository(firestoreClient)
	categoryRepo := repository.NewFirestoreCategoryRepository(firestoreClient)
	hashtagRepo := repository.NewFirestoreHashtagRepository(firestoreClient)
	userRepo := repository.NewFirestoreUserRepository(firestoreClient)

	metricsManager := metrics.NewManager(cfg.MetricsNamespace)

	refs := usecase.NewReferenceCache(categoryRepo, hashtagRepo, userRepo)
	assetUseCase := usecase.NewAssetUseCase(objectStorage, metricsManager)
	catalogUseCase := usecase.NewCatalogUseCase(listingRepo, refs, assetUseCase, metricsManager)
	bulkUseCase := usecase.NewBulkUseCase(catalogUseCase, cfg.DefaultOwnerID, cfg.ImportConcurrency, metricsManager)
	quickAddUseCase := usecase.NewQuickAddUseCase(catalogUseCase, categoryRepo, userRepo, hashtagRepo, cfg.DefaultOwnerID)

	handler.Setup(catalogUseCase, bulkUseCase, quickAddUseCase, cfg.MaxUploadSizeMB*1024*1024)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	router.Setup(e, apimiddleware.NewCallerMiddleware(cfg.DefaultOwnerID), metricsManager.Handler())

	go func() {
		logger.Info("Starting server on port %s (%s)...", cfg.ServerPort, cfg.Environment)
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			logger.Error("Server stopped: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed: %v", err)
	}
}

func newObjectStorage(ctx context.Context, cfg *config.Config, opts []option.ClientOption) (service.ObjectStorage, error) {
	if cfg.StorageDriver == "minio" {
		logger.Info("Using MinIO object storage at %s", cfg.MinioEndpoint)
		return storage.NewMinioStorageClient(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.StorageBucket, cfg.MinioUseSSL)
	}

	logger.Info("Using Firebase Storage bucket %s", cfg.StorageBucket)
	return storage.NewCloudStorageClient(ctx, cfg.StorageBucket, opts...)
}
