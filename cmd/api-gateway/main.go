package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/maestre-ai/maestre-api/api/swagger"
	"github.com/maestre-ai/maestre-api/internal/handler"
	"github.com/maestre-ai/maestre-api/internal/middleware"
	"github.com/maestre-ai/maestre-api/internal/repository"
	"github.com/maestre-ai/maestre-api/internal/service"
	"github.com/maestre-ai/maestre-api/pkg/cache"
	"github.com/maestre-ai/maestre-api/pkg/config"
	"github.com/maestre-ai/maestre-api/pkg/database"
	"github.com/maestre-ai/maestre-api/pkg/llm"
	"github.com/maestre-ai/maestre-api/pkg/logger"
	corsmiddleware "github.com/maestre-ai/maestre-api/pkg/middleware/cors"
	reqidmiddleware "github.com/maestre-ai/maestre-api/pkg/middleware/requestid"
	"github.com/maestre-ai/maestre-api/pkg/storage"
)

// @title Maestre API
// @version 0.1.0
// @description Classroom management and AI teaching tools
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching and history disabled", "error", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	materialStore, err := storage.NewLocalStorage(cfg.Materials.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init material storage", "error", err)
	}
	exportStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init export storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)

	validate := validator.New()
	service.RegisterCustomValidations(validate)

	userRepo := repository.NewUserRepository(db)
	classroomRepo := repository.NewClassroomRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	tagRepo := repository.NewTagRepository(db)
	termRepo := repository.NewTermRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.ClassroomTTL, logr, cfg.Cache.Enabled)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      "maestre-api",
	})
	classroomSvc := service.NewClassroomService(classroomRepo, cacheSvc, validate, logr, cfg.Cache.ClassroomTTL)
	materialSvc := service.NewMaterialService(materialRepo, tagRepo, materialStore, classroomSvc, validate, logr, service.MaterialConfig{
		MaxPerClassroom:  cfg.Materials.MaxPerClassroom,
		MaxFileSizeBytes: cfg.Materials.MaxFileSizeBytes,
	})
	tagSvc := service.NewTagService(tagRepo, validate, logr)
	termSvc := service.NewTermService(termRepo, exportStore, validate, logr)
	extractionSvc := service.NewExtractionService(materialSvc, logr, service.ExtractionConfig{
		MaxFileSizeBytes: cfg.Extraction.MaxFileSizeBytes,
		FetchTimeout:     cfg.Extraction.FetchTimeout,
	})

	llmClient := llm.New(cfg.Generation.BaseURL, cfg.Generation.Temperature, cfg.Generation.Timeout)
	generationSvc := service.NewGenerationService(llmClient, classroomSvc, userRepo, extractionSvc, validate, logr, metricsSvc, service.GenerationConfig{
		DefaultModel:  cfg.Generation.DefaultModel,
		AllowedModels: cfg.Generation.AllowedModels,
	})
	artifactSvc := service.NewArtifactService(exportStore, signer, materialSvc, logr, service.ArtifactConfig{
		APIPrefix:       cfg.APIPrefix,
		ResultTTL:       cfg.Exports.SignedURLTTL,
		CleanupInterval: cfg.Exports.CleanupInterval,
	})
	artifactSvc.StartCleanup(ctx)
	translatorSvc := service.NewTranslatorService(llmClient, cacheRepo, validate, logr, service.TranslatorConfig{
		DefaultModel: cfg.Generation.DefaultModel,
		HistoryLimit: int64(cfg.Translator.HistoryLimit),
		HistoryTTL:   cfg.Translator.HistoryTTL,
	})

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, handler.Handlers{
		Auth:       handler.NewAuthHandler(authSvc),
		Classrooms: handler.NewClassroomHandler(classroomSvc),
		Materials:  handler.NewMaterialHandler(materialSvc, extractionSvc),
		Tags:       handler.NewTagHandler(tagSvc),
		Terms:      handler.NewTermHandler(termSvc),
		Generation: handler.NewGenerationHandler(generationSvc, artifactSvc, translatorSvc),
		Metrics:    handler.NewMetricsHandler(metricsSvc),
	}, authSvc)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
