package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/aseerhc/physio-booking-api/api/swagger"
	"github.com/aseerhc/physio-booking-api/internal/handler"
	"github.com/aseerhc/physio-booking-api/internal/middleware"
	"github.com/aseerhc/physio-booking-api/internal/repository"
	"github.com/aseerhc/physio-booking-api/internal/service"
	"github.com/aseerhc/physio-booking-api/pkg/cache"
	"github.com/aseerhc/physio-booking-api/pkg/config"
	"github.com/aseerhc/physio-booking-api/pkg/database"
	"github.com/aseerhc/physio-booking-api/pkg/logger"
	corsmiddleware "github.com/aseerhc/physio-booking-api/pkg/middleware/cors"
	reqidmiddleware "github.com/aseerhc/physio-booking-api/pkg/middleware/requestid"
)

// @title Physio Booking API
// @version 1.0.0
// @description Appointment scheduling service for the physical therapy department
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

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logr.Sugar().Fatalw("invalid clinic timezone", "timezone", cfg.Timezone, "error", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, availability caching disabled", "error", err)
		redisClient = nil
	}

	providerRepo := repository.NewProviderRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	vacationRepo := repository.NewVacationRepository(db)
	timeOffRepo := repository.NewTimeOffRepository(db)
	extraRepo := repository.NewExtraCapacityRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := settingsRepo.EnsureDefaults(seedCtx, cfg.Scheduling); err != nil {
		cancel()
		logr.Sugar().Fatalw("failed to seed scheduler settings", "error", err)
	}
	cancel()

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Availability.CacheTTL, logr, cfg.Availability.CacheEnabled && redisClient != nil)

	bookingSvc := service.NewBookingService(
		providerRepo, appointmentRepo, vacationRepo, timeOffRepo, extraRepo,
		settingsRepo, auditRepo, cacheSvc, metricsSvc, validator.New(), logr, loc, cfg.Scheduling.BookingRetries)
	availabilitySvc := service.NewAvailabilityService(
		providerRepo, appointmentRepo, vacationRepo, timeOffRepo, extraRepo,
		settingsRepo, cacheSvc, logr, loc)
	providerSvc := service.NewProviderService(providerRepo, cacheSvc, logr)
	settingsSvc := service.NewSettingsService(settingsRepo, auditRepo, cacheSvc, logr)
	scheduleSvc := service.NewScheduleExceptionService(vacationRepo, timeOffRepo, extraRepo, providerRepo, cacheSvc, logr)
	auditSvc := service.NewAuditService(auditRepo)

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
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, handler.Handlers{
		Booking:      handler.NewBookingHandler(bookingSvc),
		Availability: handler.NewAvailabilityHandler(availabilitySvc),
		Provider:     handler.NewProviderHandler(providerSvc),
		Schedule:     handler.NewScheduleExceptionHandler(scheduleSvc),
		Settings:     handler.NewSettingsHandler(settingsSvc),
		Audit:        handler.NewAuditHandler(auditSvc),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "timezone", cfg.Timezone)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
