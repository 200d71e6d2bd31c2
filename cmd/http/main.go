package main

import (
	"careplan-service/internal/app/config"
	"careplan-service/internal/app/contracts"
	"careplan-service/internal/app/delivery/http/controllers"
	"careplan-service/internal/app/delivery/http/middlewares"
	"careplan-service/internal/app/delivery/http/routers"
	"careplan-service/internal/app/drivers/database"
	"careplan-service/internal/app/drivers/logger"
	"careplan-service/internal/app/drivers/messaging"
	"careplan-service/internal/app/drivers/storage"
	"careplan-service/internal/app/services/careplan"
	"careplan-service/internal/app/services/careplan/providers"
	"careplan-service/internal/app/services/careplan/providers/aha"
	"careplan-service/internal/app/services/careplan/providers/rean"
	"careplan-service/internal/app/services/careplan/repository"
	"careplan-service/internal/app/services/careplan/tokencache"
	activitySync "careplan-service/internal/app/services/core/activity_sync"
	"careplan-service/internal/app/services/shared/activityqueue"
	"careplan-service/internal/app/services/shared/locker"
	"careplan-service/internal/app/services/shared/redis"
	sharedStorage "careplan-service/internal/app/services/shared/storage"
	"careplan-service/internal/pkg/constvars"
	"careplan-service/internal/pkg/utils"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Redis:          database.NewRedisClient(driverConfig),
		RabbitMQ:       messaging.NewRabbitMQ(driverConfig),
		Logger:         zapLogger,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}
	if internalConfig.App.StorageDriver != constvars.StorageDriverMemory {
		bootstrap.MongoDB = database.NewMongoDB(driverConfig)
	}

	runCtx, cancelRun := context.WithCancel(context.Background())
	defer cancelRun()

	err = bootstrapingTheApp(runCtx, bootstrap)
	if err != nil {
		zapLogger.Fatal("Failed to bootstrap the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", internalConfig.App.Port),
		Handler: bootstrap.Router,
	}

	go func() {
		zapLogger.Info("Server started", zap.String("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	zapLogger.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	cancelRun()
	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Failed to release resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(ctx context.Context, bootstrap *config.Bootstrap) error {
	cfg := bootstrap.InternalConfig
	clock := utils.SystemClock{}

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)

	// Persistence
	var (
		participants contracts.ParticipantRepository
		enrollments  contracts.EnrollmentRepository
		activities   contracts.ActivityRepository
	)
	if bootstrap.MongoDB != nil {
		dbName := bootstrap.DriverConfig.MongoDB.DbName
		participantRepository := repository.NewParticipantMongoRepository(bootstrap.MongoDB, dbName)
		enrollmentRepository := repository.NewEnrollmentMongoRepository(bootstrap.MongoDB, dbName)
		activityRepository := repository.NewActivityMongoRepository(bootstrap.MongoDB, dbName)
		for _, ensure := range []func(context.Context) error{
			participantRepository.EnsureIndexes,
			enrollmentRepository.EnsureIndexes,
			activityRepository.EnsureIndexes,
		} {
			if err := ensure(ctx); err != nil {
				return err
			}
		}
		participants, enrollments, activities = participantRepository, enrollmentRepository, activityRepository
	} else {
		bootstrap.Logger.Warn("Using in-memory care plan storage; data is lost on restart")
		store := repository.NewMemoryStore()
		participants, enrollments, activities = store.Participants(), store.Enrollments(), store.Activities()
	}

	// Raw content archive
	minioClient := storage.NewMinio(bootstrap.DriverConfig)
	if err := storage.EnsureBucket(ctx, minioClient, cfg.Minio.RawContentBucketName); err != nil {
		return err
	}
	archive := sharedStorage.NewMinioRawContentArchive(minioClient, cfg.Minio.RawContentBucketName, bootstrap.Logger)

	// Activity events
	publisher, err := activityqueue.NewService(bootstrap.RabbitMQ, bootstrap.Logger, cfg.RabbitMQ.ActivityEventQueue)
	if err != nil {
		return err
	}

	// Provider adapters
	timeout := time.Duration(cfg.ProviderHTTP.TimeoutInSeconds) * time.Second
	tokenOptions := []tokencache.Option{
		tokencache.WithLogger(bootstrap.Logger),
		tokencache.WithRefreshTimeout(timeout),
	}
	if cfg.ProviderHTTP.TokenMirrorEnabled {
		tokenOptions = append(tokenOptions, tokencache.WithMirror(tokencache.NewRedisTokenMirror(redisRepository, clock)))
	}
	deps := providers.Dependencies{
		Participants:        participants,
		Enrollments:         enrollments,
		Locker:              lockerService,
		Tokens:              tokencache.New(clock, tokenOptions...),
		Clock:               clock,
		HTTPClient:          &http.Client{Timeout: timeout},
		Log:                 bootstrap.Logger,
		RegistrationLockTTL: time.Duration(cfg.ProviderHTTP.RegistrationLockTTLInSeconds) * time.Second,
	}

	ahaService := aha.NewCareplanService(aha.Config{
		BaseURL:                  cfg.AHA.BaseUrl,
		ClientID:                 cfg.AHA.ClientID,
		ClientSecret:             cfg.AHA.ClientSecret,
		PageSize:                 cfg.AHA.PageSize,
		DefaultTokenTTLInSeconds: cfg.AHA.DefaultTokenTTLInSeconds,
		Timeout:                  timeout,
		RateLimitPerSecond:       cfg.ProviderHTTP.RateLimitPerSecond,
		RateLimitBurst:           cfg.ProviderHTTP.RateLimitBurst,
	}, deps)
	reanService := rean.NewCareplanService(rean.Config{
		BaseURL:                  cfg.REAN.BaseUrl,
		APIKey:                   cfg.REAN.APIKey,
		APIKeyTTLInSeconds:       cfg.REAN.APIKeyTTLInSeconds,
		EnrollmentDurationInDays: cfg.REAN.EnrollmentDurationInDays,
		Timeout:                  timeout,
		RateLimitPerSecond:       cfg.ProviderHTTP.RateLimitPerSecond,
		RateLimitBurst:           cfg.ProviderHTTP.RateLimitBurst,
	}, deps)

	registry := careplan.NewRegistry(bootstrap.Logger, ahaService, reanService)
	registry.InitAll(utils.WithRequestID(ctx, utils.GenerateRequestID()))

	// Activity sync
	activityService := careplan.NewActivityService(registry, activities, archive, publisher, clock, bootstrap.Logger)
	worker := activitySync.NewWorker(bootstrap.Logger, cfg, lockerService, enrollments, activityService, clock)
	worker.Start(ctx)
	bootstrap.SyncWorkerStop = worker.Stop

	// HTTP
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, cfg)
	careplanController := controllers.NewCareplanController(bootstrap.Logger, registry, clock)
	routers.SetupRoutes(bootstrap.Router, cfg, middlewares, careplanController)

	return nil
}
