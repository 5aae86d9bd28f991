package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/itzjmbruhhh/NU-Admission/api/swagger"
	"github.com/itzjmbruhhh/NU-Admission/internal/handler"
	"github.com/itzjmbruhhh/NU-Admission/internal/middleware"
	"github.com/itzjmbruhhh/NU-Admission/internal/ml"
	"github.com/itzjmbruhhh/NU-Admission/internal/models"
	"github.com/itzjmbruhhh/NU-Admission/internal/repository"
	"github.com/itzjmbruhhh/NU-Admission/internal/service"
	"github.com/itzjmbruhhh/NU-Admission/pkg/cache"
	"github.com/itzjmbruhhh/NU-Admission/pkg/config"
	"github.com/itzjmbruhhh/NU-Admission/pkg/database"
	"github.com/itzjmbruhhh/NU-Admission/pkg/logger"
	"github.com/itzjmbruhhh/NU-Admission/pkg/middleware/cors"
	"github.com/itzjmbruhhh/NU-Admission/pkg/middleware/requestid"
)

// @title NU Admission API
// @version 1.0.0
// @description Admission portal backend: applicant registration, enrollment chance scoring and registrar reporting.
// @BasePath /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log, err := logger.New(cfg)
	if err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}
	defer func() { _ = log.Sync() }()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, dashboard caching disabled", zap.Error(err))
		redisClient = nil
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	validate := validator.New()

	applicantRepo := repository.NewApplicantRepository(db)
	userRepo := repository.NewUserRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, log)

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, log, redisClient != nil)

	modelPath := cfg.ML.ModelPath
	if !cfg.ML.Enabled {
		log.Info("model scoring disabled, heuristic fallback in effect")
		modelPath = ""
	}
	modelCache := ml.NewModelCache(modelPath, log)
	predictor := ml.NewPredictor(modelCache, log)

	chanceSvc := service.NewChanceService(predictor, applicantRepo, metricsSvc, cfg.ML.PredictTimeout, log)
	exportFeatures := service.NewFeatureExportService(cfg.Export.FeatureDir, log)
	applicantSvc := service.NewApplicantService(applicantRepo, chanceSvc, exportFeatures, cacheSvc, validate, log)
	dashboardSvc := service.NewDashboardService(applicantRepo, predictor, cacheSvc, cfg.Dashboard.CacheTTL, log)
	exportSvc := service.NewExportService(applicantRepo, nil, nil, log)
	authSvc := service.NewAuthService(userRepo, validate, log, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})

	applicantHandler := handler.NewApplicantHandler(applicantSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	authHandler := handler.NewAuthHandler(authSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestid.Middleware())
	r.Use(logger.GinMiddleware(log))
	r.Use(cors.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/applicants", applicantHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		protected := api.Group("")
		protected.Use(middleware.JWT(authSvc))
		{
			protected.GET("/auth/me", authHandler.Me)
			protected.GET("/applicants", applicantHandler.List)
			protected.GET("/applicants/:id", applicantHandler.Get)
			protected.PUT("/applicants/:id", applicantHandler.Update)

			if cfg.Dashboard.Enabled {
				protected.GET("/dashboard", dashboardHandler.Summary)
			}
			protected.GET("/exports/applicants", exportHandler.Roster)

			admin := protected.Group("")
			admin.Use(middleware.RequireRole(models.RoleSuperAdmin, models.RoleAdmin))
			{
				admin.DELETE("/applicants/:id", applicantHandler.Delete)
				admin.POST("/applicants/rescore", applicantHandler.Rescore)
			}
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info("starting admission api", zap.String("addr", addr), zap.String("env", cfg.Env))

	if err := r.Run(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
