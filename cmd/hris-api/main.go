package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/lms-hris-api/api/swagger"
	"github.com/noah-isme/lms-hris-api/internal/handler"
	"github.com/noah-isme/lms-hris-api/internal/middleware"
	"github.com/noah-isme/lms-hris-api/internal/repository"
	"github.com/noah-isme/lms-hris-api/internal/service"
	"github.com/noah-isme/lms-hris-api/pkg/cache"
	"github.com/noah-isme/lms-hris-api/pkg/config"
	"github.com/noah-isme/lms-hris-api/pkg/database"
	"github.com/noah-isme/lms-hris-api/pkg/export"
	"github.com/noah-isme/lms-hris-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/lms-hris-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/lms-hris-api/pkg/middleware/requestid"
)

// @title LMS HRIS API
// @version 1.0.0
// @description Read-only reporting bridge between the learning platform and the HR system
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.HRIS.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.HRIS.CacheTTL, logr, true)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}

	gate := service.NewAccessService(cfg.HRIS.APIKey)
	courseRepo := repository.NewCourseRepository(db, cfg.HRIS.SiteCourseID)
	participantRepo := repository.NewParticipantRepository(db, cfg.HRIS.SiteCourseID, cfg.HRIS.BranchField)
	resultRepo := repository.NewResultRepository(db, cfg.HRIS.SiteCourseID, cfg.HRIS.BranchField)
	quizRepo := repository.NewQuizRepository(db, cfg.HRIS.QuizTypeField)
	questionnaireRepo := repository.NewQuestionnaireRepository(db)

	scoreSvc := service.NewScoreService(quizRepo, questionnaireRepo, logr)
	reportSvc := service.NewReportService(gate, courseRepo, participantRepo, resultRepo, scoreSvc, cacheSvc, metricsSvc, logr)

	var exportSvc *service.ExportService
	if cfg.HRIS.ExportEnabled {
		exportSvc = service.NewExportService(reportSvc, export.NewCSVExporter(), export.NewPDFExporter(), nil)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	metricsHandler := handler.NewMetricsHandler(metricsSvc)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.HRIS.Enabled {
		reportHandler := handler.NewReportHandler(reportSvc, nil)
		if exportSvc != nil {
			reportHandler = handler.NewReportHandler(reportSvc, exportSvc)
		}
		hris := r.Group(cfg.APIPrefix + "/hris")
		hris.GET("/courses", reportHandler.Courses)
		hris.GET("/participants", reportHandler.Participants)
		hris.GET("/results", reportHandler.Results)
		hris.GET("/results/all", reportHandler.AllResults)
		if cfg.HRIS.ExportEnabled {
			hris.GET("/results/export", reportHandler.Export)
		}
	} else {
		logr.Warn("hris endpoints disabled by configuration")
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "hris_enabled", cfg.HRIS.Enabled)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
