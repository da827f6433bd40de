package main

// @title Risk Map Service API
// @version 1.0.0
// @description Choropleth уровней риска наводнений по муниципалитетам Metro Manila.
// @description
// @description Основные возможности:
// @description - GeoJSON границ муниципалитетов со стилем каждой фичи
// @description - Раскраска по году из CSV и сброс к базовой карте
// @description - Команды reset/update через Redis Streams
// @description - Статистика сопоставления названий и метрики Prometheus

// @contact.name API Support

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

	"github.com/jonboulle/clockwork"
	_ "github.com/risk-map-service/docs/swagger"
	"github.com/risk-map-service/internal/config"
	httpDelivery "github.com/risk-map-service/internal/delivery/http"
	"github.com/risk-map-service/internal/delivery/http/handler"
	"github.com/risk-map-service/internal/domain"
	"github.com/risk-map-service/internal/domain/repository"
	"github.com/risk-map-service/internal/observability"
	"github.com/risk-map-service/internal/pkg/logger"
	"github.com/risk-map-service/internal/render"
	"github.com/risk-map-service/internal/repository/cache"
	"github.com/risk-map-service/internal/repository/postgres"
	redisRepo "github.com/risk-map-service/internal/repository/redis"
	"github.com/risk-map-service/internal/repository/source"
	"github.com/risk-map-service/internal/usecase"
	"github.com/risk-map-service/internal/worker"
	"github.com/risk-map-service/internal/worker/command"
	"go.uber.org/zap"
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

	log.Info("Starting Risk Map Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("boundary_source", cfg.Data.BoundarySource),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.Bool("worker_enabled", cfg.Worker.Enabled),
	)

	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	// 3. Boundary source: GeoJSON file/URL or PostGIS
	var db *postgres.DB
	var boundarySource repository.BoundarySource
	switch cfg.Data.BoundarySource {
	case config.BoundarySourcePostgres:
		db, err = postgres.New(&cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		boundarySource = postgres.NewBoundaryRepository(db, cfg.Data.BoundaryAdminLevel)
	default:
		boundarySource = source.NewGeoJSONSource(cfg.Data.BoundaryPath, cfg.Data.FetchTimeout, log)
	}
	riskTableSource := source.NewCSVSource(cfg.Data.RiskTablePath, cfg.Data.FetchTimeout, log)

	// 4. Connect to Redis (snapshot cache + streams)
	var (
		redisClient *cache.Redis
		cacheRepo   repository.CacheRepository
		streamRepo  repository.StreamRepository
		publisher   repository.EventPublisher
	)
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		cacheRepo = cache.NewCacheRepository(redisClient.Client(), log)
		streamRepo = redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)
		publisher = redisRepo.NewEventPublisher(streamRepo, cfg.Worker.EventStream)
	}

	// 5. Use cases
	binding := usecase.NewMapBinding(clock, log)
	loader := usecase.NewMapLoader(
		boundarySource,
		riskTableSource,
		binding,
		func() usecase.Renderer { return render.NewLayer() },
		metrics,
		log,
	)
	riskMapUC := usecase.NewRiskMapUseCase(
		binding,
		cacheRepo,
		publisher,
		metrics,
		clock,
		usecase.RiskMapConfig{
			View: domain.MapView{
				Center:          domain.Point{Lat: cfg.Map.CenterLat, Lon: cfg.Map.CenterLon},
				Zoom:            cfg.Map.Zoom,
				TileURL:         cfg.Map.TileURL,
				TileAttribution: cfg.Map.TileAttribution,
			},
			SnapshotTTL: cfg.Cache.MapSnapshotTTL,
		},
		log,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 6. Load data in background; until it finishes the map answers 503
	go loader.Load(ctx)

	// 7. Command worker
	var workerManager *worker.WorkerManager
	if cfg.Worker.Enabled {
		workerManager = worker.NewWorkerManager(cfg.Worker.ShutdownTimeout, log)
		workerManager.Register(command.NewCommandWorker(streamRepo, riskMapUC, metrics, command.Config{
			Stream:        cfg.Worker.CommandStream,
			ConsumerGroup: cfg.Worker.ConsumerGroup,
			ConsumerName:  cfg.Worker.ConsumerName,
			MaxRetries:    cfg.Worker.MaxRetries,
			RetryDelay:    cfg.Worker.RetryDelay,
		}, log))
		if err := workerManager.Start(ctx); err != nil {
			log.Fatal("Failed to start workers", zap.Error(err))
		}
	}

	// 8. HTTP server
	server := httpDelivery.NewServer(cfg, log, handler.NewMapHandler(riskMapUC, log))

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if workerManager != nil {
		if err := workerManager.Stop(); err != nil {
			log.Error("Error stopping workers", zap.Error(err))
		}
	}

	if db != nil {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL", zap.Error(err))
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
