package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/ojtrack/ojt-tracker-api/api/swagger"
	"github.com/ojtrack/ojt-tracker-api/internal/handler"
	internalmiddleware "github.com/ojtrack/ojt-tracker-api/internal/middleware"
	"github.com/ojtrack/ojt-tracker-api/internal/models"
	"github.com/ojtrack/ojt-tracker-api/internal/repository"
	"github.com/ojtrack/ojt-tracker-api/internal/service"
	"github.com/ojtrack/ojt-tracker-api/pkg/cache"
	"github.com/ojtrack/ojt-tracker-api/pkg/config"
	"github.com/ojtrack/ojt-tracker-api/pkg/database"
	"github.com/ojtrack/ojt-tracker-api/pkg/export"
	"github.com/ojtrack/ojt-tracker-api/pkg/logger"
	corsmiddleware "github.com/ojtrack/ojt-tracker-api/pkg/middleware/cors"
	reqidmiddleware "github.com/ojtrack/ojt-tracker-api/pkg/middleware/requestid"
)

// @title OJT Tracker API
// @version 1.0.0
// @description Attendance ledger and progress dashboard for on-the-job training
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, dashboard caching disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	timeLogRepo := repository.NewTimeLogRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)

	cacheEnabled := cfg.Dashboard.CacheEnabled && redisClient != nil
	var cacheRepo service.CacheRepository
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, cacheEnabled)

	authSvc := service.NewAuthService(subjectRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	sessionSvc := service.NewSessionService(timeLogRepo, cacheSvc, metricsSvc, logr, service.SessionServiceConfig{
		MaxSessionHours: cfg.Tracking.MaxSessionHours,
	})
	ledgerSvc := service.NewLedgerService(service.LedgerServiceParams{
		Logs:      timeLogRepo,
		Docs:      documentRepo,
		Directory: subjectRepo,
		Cache:     cacheSvc,
		Logger:    logr,
		Config: service.LedgerServiceConfig{
			TargetHours: cfg.Tracking.TargetHours,
			CacheTTL:    cfg.Dashboard.CacheTTL,
		},
	})
	activitySvc := service.NewActivityService(timeLogRepo, documentRepo, logr, cfg.Tracking.ActivityLimit)
	documentSvc := service.NewDocumentService(documentRepo, cacheSvc, validate, logr, cfg.Tracking.TrustedDocHosts)
	directorySvc := service.NewDirectoryService(subjectRepo, logr)
	exportSvc := service.NewExportService(ledgerSvc, logr, export.NewCSVExporter(), export.NewPDFExporter())

	authHandler := handler.NewAuthHandler(authSvc)
	sessionHandler := handler.NewSessionHandler(sessionSvc)
	dashboardHandler := handler.NewDashboardHandler(ledgerSvc, activitySvc)
	documentHandler := handler.NewDocumentHandler(documentSvc)
	subjectHandler := handler.NewSubjectHandler(directorySvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	secured := api.Group("")
	secured.Use(internalmiddleware.JWT(authSvc))

	me := secured.Group("/me")
	{
		me.GET("/clock", sessionHandler.State)
		me.POST("/clock-in", sessionHandler.ClockIn)
		me.POST("/clock-out", sessionHandler.ClockOut)
		me.GET("/logs", dashboardHandler.History)
		me.GET("/logs/today", dashboardHandler.Today)
		me.GET("/stats", dashboardHandler.Stats)
		me.GET("/activity", dashboardHandler.Activity)
		me.GET("/documents", documentHandler.List)
		me.POST("/documents", documentHandler.Upload)
		me.DELETE("/documents/:id", documentHandler.Delete)
	}

	cohort := secured.Group("/cohort")
	cohort.Use(internalmiddleware.RequireRoles(models.RoleCoordinator, models.RoleAdmin))
	{
		cohort.GET("/overview", dashboardHandler.CohortOverview)
		cohort.GET("/students", dashboardHandler.CohortStudents)
		cohort.GET("/students/:id", dashboardHandler.StudentDetail)
		cohort.GET("/submissions", dashboardHandler.CohortSubmissions)
		if cfg.Export.Enabled {
			cohort.GET("/export", exportHandler.CohortProgress)
		}
	}

	admin := secured.Group("/admin")
	admin.Use(internalmiddleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/overview", dashboardHandler.AdminOverview)
		admin.GET("/users", subjectHandler.List)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
