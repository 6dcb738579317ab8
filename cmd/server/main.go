package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/henley-workshops/survey-service/internal/cache"
	"github.com/henley-workshops/survey-service/internal/config"
	"github.com/henley-workshops/survey-service/internal/handlers"
	"github.com/henley-workshops/survey-service/internal/repositories/postgres"
	"github.com/henley-workshops/survey-service/internal/services"
	"github.com/henley-workshops/survey-service/internal/utils"
	"github.com/henley-workshops/survey-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
	} else {
		logger = utils.NewDevelopmentLogger()
	}
	slogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("failed to init database: %v", err)
	}
	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("failed to init redis: %v", err)
	}
	cacheService := cache.NewRedisCache(redisClient, slogger)

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		log.Fatalf("failed to create event publisher: %v", err)
	}
	defer publisher.Close()

	repo := postgres.NewRepository(db)
	validate := utils.NewValidator()

	responseService := services.NewResponseServiceWithLogging(
		services.NewResponseService(repo, validate, publisher, cacheService, slogger),
		slogger,
	)
	statisticsService := services.NewStatisticsService(repo, cacheService, slogger)
	exportService := services.NewExportService(repo, slogger)
	intakeService := services.NewIntakeService(repo, validate, publisher, slogger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(
		responseService,
		statisticsService,
		exportService,
		intakeService,
		cfg.AdminPasswordHash,
		cfg.JWTSecret,
		logger,
	)
	handlerManager.SetupRoutes(router)

	logger.Info("survey service listening", "port", cfg.Port, "environment", cfg.Environment)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
