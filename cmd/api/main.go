package main

// @title Incident Microservice API
// @version 1.0.0
// @description Микросервис для ведения чрезвычайных инцидентов. Делит нарисованную на карте зону поиска на дивизионы примерно равной площади, ведёт отметку поисковых команд и их назначения, находит ближайшие больницы к точке.
// @description
// @description Основные возможности:
// @description - Создание инцидентов с автоматической нарезкой зоны поиска на дивизионы
// @description - Перегенерация дивизионов с новой целевой площадью
// @description - Отметка поисковых команд и контроль переходов статусов
// @description - Назначение команд на дивизионы
// @description - Поиск ближайших больниц с дистанцией
// @description - Операционная сводка по инцидентам, дивизионам и командам

// @contact.name API Support
// @contact.email support@incident-microservice.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/incident-microservice/docs/swagger"
	"github.com/incident-microservice/internal/config"
	httpDelivery "github.com/incident-microservice/internal/delivery/http"
	"github.com/incident-microservice/internal/delivery/http/handler"
	"github.com/incident-microservice/internal/pkg/logger"
	"github.com/incident-microservice/internal/repository/cache"
	"github.com/incident-microservice/internal/repository/postgres"
	redisRepo "github.com/incident-microservice/internal/repository/redis"
	"github.com/incident-microservice/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Incident Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	incidentRepo := postgres.NewIncidentRepository(db)
	divisionRepo := postgres.NewDivisionRepository(db)
	unitRepo := postgres.NewUnitRepository(db)
	hospitalRepo := postgres.NewHospitalRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	incidentUC := usecase.NewIncidentUseCase(
		incidentRepo,
		divisionRepo,
		streamRepo,
		log,
		cfg.Division.TargetAreaM2,
		cfg.Division.AsyncCellThreshold,
	)

	divisionUC := usecase.NewDivisionUseCase(
		divisionRepo,
		incidentRepo,
		log,
	)

	unitUC := usecase.NewUnitUseCase(
		unitRepo,
		divisionRepo,
		incidentRepo,
		log,
	)

	hospitalUC := usecase.NewHospitalUseCase(
		hospitalRepo,
		cacheRepo,
		log,
		cfg.Cache.HospitalCacheTTL,
	)

	statsUC := usecase.NewStatsUseCase(
		incidentRepo,
		divisionRepo,
		unitRepo,
		cacheRepo,
		log,
		cfg.Cache.StatsCacheTTL,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	incidentHandler := handler.NewIncidentHandler(incidentUC, log)
	divisionHandler := handler.NewDivisionHandler(divisionUC, log)
	unitHandler := handler.NewUnitHandler(unitUC, log)
	hospitalHandler := handler.NewHospitalHandler(hospitalUC, log)
	statsHandler := handler.NewStatsHandler(statsUC, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		incidentHandler,
		divisionHandler,
		unitHandler,
		hospitalHandler,
		statsHandler,
	)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
