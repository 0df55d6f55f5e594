package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/nasma-hq/nasma-insights-api/api/swagger"
	"github.com/nasma-hq/nasma-insights-api/internal/handler"
	"github.com/nasma-hq/nasma-insights-api/internal/middleware"
	"github.com/nasma-hq/nasma-insights-api/internal/normalize"
	"github.com/nasma-hq/nasma-insights-api/internal/repository"
	"github.com/nasma-hq/nasma-insights-api/internal/service"
	"github.com/nasma-hq/nasma-insights-api/pkg/cache"
	"github.com/nasma-hq/nasma-insights-api/pkg/config"
	"github.com/nasma-hq/nasma-insights-api/pkg/database"
	"github.com/nasma-hq/nasma-insights-api/pkg/logger"
	corsmiddleware "github.com/nasma-hq/nasma-insights-api/pkg/middleware/cors"
	reqidmiddleware "github.com/nasma-hq/nasma-insights-api/pkg/middleware/requestid"
	"github.com/nasma-hq/nasma-insights-api/pkg/odoo"
	"github.com/nasma-hq/nasma-insights-api/pkg/storage"
	"github.com/nasma-hq/nasma-insights-api/pkg/supabase"
)

// @title Nasma Insights API
// @version 1.0.0
// @description Usage analytics and reconciliation reports for the Nasma assistant
// @BasePath /api/v1
// @schemes http https

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	exclusions := normalize.NewExclusionLists(cfg.Exclusions.ExactNames, cfg.Exclusions.Substrings)

	// Data sources. The table store and ERP clients are mandatory; the
	// Postgres fast path and Redis cache are optional extras.
	tableClient := supabase.New(cfg.Supabase)
	erpClient, err := odoo.New(cfg.Odoo)
	if err != nil {
		logr.Sugar().Fatalw("erp client init failed", "error", err)
	}

	metricsSvc := service.NewMetricsService()
	tableClient.OnRequest(func(d time.Duration) { metricsSvc.ObserveUpstream("supabase", d) })
	erpClient.OnRequest(func(d time.Duration) { metricsSvc.ObserveUpstream("odoo", d) })

	var cacheSvc *service.CacheService
	if cfg.Analytics.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Analytics.CacheTTL, logr, true)
		}
	}

	var fastPath service.DepartmentAdoptionSQL
	if cfg.Database.URL != "" {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Warnw("postgres fast path unavailable", "error", err)
		} else {
			fastPath = repository.NewAdoptionSQLRepository(db)
		}
	}

	settingsStore, err := storage.NewLocalStorage(cfg.Settings.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("settings storage init failed", "error", err)
	}

	metricRepo := repository.NewMetricRepository(tableClient, cfg.Supabase)
	messageRepo := repository.NewMessageRepository(tableClient, cfg.Supabase)
	tokenRepo := repository.NewTokenRepository(tableClient, cfg.Supabase)
	employeeRepo := repository.NewEmployeeRepository(tableClient, cfg.Supabase)
	planningRepo := repository.NewPlanningRepository(erpClient)
	settingsRepo := repository.NewSettingsRepository(settingsStore)

	metricSvc := service.NewMetricService(service.MetricServiceParams{
		Events:     metricRepo,
		Tokens:     tokenRepo,
		Exclusions: exclusions,
		Logger:     logr,
	})
	messageSvc := service.NewMessageService(service.MessageServiceParams{
		Messages:   messageRepo,
		Exclusions: exclusions,
		Logger:     logr,
	})
	adoptionSvc := service.NewAdoptionService(service.AdoptionServiceParams{
		Employees:  employeeRepo,
		Usage:      metricRepo,
		FastPath:   fastPath,
		Exclusions: exclusions,
		Substrings: cfg.Exclusions.Substrings,
		Strategy:   cfg.Adoption.JoinStrategy,
		Logger:     logr,
	})
	coverageSvc := service.NewCoverageService(service.CoverageServiceParams{
		Planning: planningRepo,
		Logger:   logr,
	})
	durationSvc := service.NewDurationService(service.DurationServiceParams{
		Events:     metricRepo,
		Threads:    messageRepo,
		Exclusions: exclusions,
		Families:   cfg.Durations.RequestTypes,
		Logger:     logr,
	})
	settingsSvc := service.NewSettingsService(service.SettingsServiceParams{
		Store:  settingsRepo,
		Logger: logr,
	})
	exportSvc := service.NewExportService(service.ExportServiceParams{
		Messages: messageSvc,
		Adoption: adoptionSvc,
		Logger:   logr,
	})

	warmer := service.NewReportWarmer(service.ReportWarmerParams{
		Adoption: adoptionSvc,
		Cache:    cacheSvc,
		Interval: cfg.Analytics.WarmInterval,
		Logger:   logr,
	})
	warmer.Start(context.Background())
	defer warmer.Stop()

	analyticsHandler := handler.NewAnalyticsHandler(metricSvc, durationSvc)
	messagesHandler := handler.NewMessagesHandler(messageSvc)
	adoptionHandler := handler.NewAdoptionHandler(metricSvc, adoptionSvc, cacheSvc)
	coverageHandler := handler.NewCoverageHandler(coverageSvc, cacheSvc)
	settingsHandler := handler.NewSettingsHandler(settingsSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/active-users", messagesHandler.ActiveUsers)
		api.GET("/messages", messagesHandler.Summary)
		api.GET("/log-hours", messagesHandler.LogHoursUsers)

		api.GET("/requests", analyticsHandler.Requests)
		api.GET("/success-rates", analyticsHandler.SuccessRates)
		api.GET("/activities-today", analyticsHandler.ActivitiesToday)
		api.GET("/request-durations", analyticsHandler.RequestDurations)

		api.GET("/adoption", adoptionHandler.Count)
		api.GET("/adoption-by-department", adoptionHandler.ByDepartment)

		api.GET("/planning-coverage", coverageHandler.PlanningCoverage)
		api.GET("/monthly-hours", coverageHandler.MonthlyHours)

		api.GET("/satisfaction", settingsHandler.GetSatisfaction)
		api.POST("/satisfaction", settingsHandler.SaveSatisfaction)
		api.GET("/ease-comparison", settingsHandler.GetEaseComparison)
		api.POST("/ease-comparison", settingsHandler.SaveEaseComparison)

		api.GET("/export/messages.csv", exportHandler.MessagesCSV)
		api.GET("/export/adoption.pdf", exportHandler.AdoptionPDF)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
